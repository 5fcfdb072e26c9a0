package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Reference Errors (R001-R009)
	// ============================================

	"R001": {
		Category: CategoryRefs,
		Message:  "Invalid reference declaration",
		Detail:   "A reference must map to a selector string, or to a list holding exactly one selector string for select-all references.",
		DocURL:   "https://vango.dev/docs/errors/R001",
	},
	"R002": {
		Category: CategoryRefs,
		Message:  "Reference declarations could not be produced",
		Detail:   "The declaration producer of a component failed while the component was being created. The component was not mounted.",
		DocURL:   "https://vango.dev/docs/errors/R002",
	},
	"R003": {
		Category: CategoryRefs,
		Message:  "Unknown reference",
		Detail:   "The reference name was never declared by the component.",
		DocURL:   "https://vango.dev/docs/errors/R003",
	},
	"R004": {
		Category: CategoryRefs,
		Message:  "Component created twice",
		Detail:   "The created hook ran more than once for the same component instance.",
		DocURL:   "https://vango.dev/docs/errors/R004",
	},

	// ============================================
	// Fixture Errors (R010-R019)
	// ============================================

	"R010": {
		Category: CategoryFixture,
		Message:  "Fixture file could not be read",
		Detail:   "The tree fixture file does not exist or is not readable.",
		DocURL:   "https://vango.dev/docs/errors/R010",
	},
	"R011": {
		Category: CategoryFixture,
		Message:  "Fixture is not valid YAML or JSON",
		Detail:   "The tree fixture could not be decoded.",
		DocURL:   "https://vango.dev/docs/errors/R011",
	},
	"R012": {
		Category: CategoryFixture,
		Message:  "Unknown component",
		Detail:   "A template placeholder names a component that the fixture does not define.",
		DocURL:   "https://vango.dev/docs/errors/R012",
	},
	"R013": {
		Category: CategoryFixture,
		Message:  "Invalid fixture node",
		Detail:   "A template node must set exactly one of tag, component or text.",
		DocURL:   "https://vango.dev/docs/errors/R013",
	},
	"R014": {
		Category: CategoryFixture,
		Message:  "Unknown instance",
		Detail:   "No mounted instance matches the requested id.",
		DocURL:   "https://vango.dev/docs/errors/R014",
	},

	// ============================================
	// Config Errors (R020-R029)
	// ============================================

	"R020": {
		Category: CategoryConfig,
		Message:  "Configuration could not be loaded",
		Detail:   "The configuration file exists but could not be read or decoded.",
		DocURL:   "https://vango.dev/docs/errors/R020",
	},
	"R021": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		DocURL:   "https://vango.dev/docs/errors/R021",
	},

	// ============================================
	// CLI Errors (R030-R039)
	// ============================================

	"R030": {
		Category: CategoryCLI,
		Message:  "Command failed",
		DocURL:   "https://vango.dev/docs/errors/R030",
	},
}

// GetAllCodes returns all registered error codes in sorted order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}

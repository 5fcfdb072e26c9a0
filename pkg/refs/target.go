package refs

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// TagAttr is the prop that carries an instance's reference group tag.
const TagAttr = "data-vango-ref"

// allPrefix marks a select-all key in the Registry.
const allPrefix = "[]"

// Mode is the multiplicity of a reference.
type Mode uint8

const (
	// ModeOne resolves to a single instance or element.
	ModeOne Mode = iota
	// ModeAll resolves to every matching instance or element.
	ModeAll
)

// String returns a human-readable name for the mode.
func (m Mode) String() string {
	switch m {
	case ModeOne:
		return "one"
	case ModeAll:
		return "all"
	default:
		return "unknown"
	}
}

// Target is a declared reference: a selector plus its multiplicity.
type Target struct {
	Selector string
	Mode     Mode
}

// One declares a single-match reference.
func One(selector string) Target {
	return Target{Selector: selector, Mode: ModeOne}
}

// All declares a select-all reference.
func All(selector string) Target {
	return Target{Selector: selector, Mode: ModeAll}
}

// Key returns the Registry key this target is looked up under.
func (t Target) Key() string {
	return GroupKey(t.Selector, t.Mode == ModeAll)
}

// String renders the target in its declaration form: "sel" or "[sel]".
func (t Target) String() string {
	if t.Mode == ModeAll {
		return "[" + t.Selector + "]"
	}
	return t.Selector
}

// GroupKey builds the Registry key for a selector. Select-all keys carry the
// "[]" prefix so producers and consumers agree on multiplicity.
//
// The same helper is meant for writing group tags on child components:
//
//	Props{refs.TagAttr: refs.GroupKey(".item", true)} // "[].item"
func GroupKey(selector string, all bool) string {
	if all {
		return allPrefix + selector
	}
	return selector
}

// ParseTag turns a group tag into its Registry key and reports whether the
// tagged instance is one of many. Tags written as "[sel]" are accepted as a
// shorthand for "[]sel". An empty tag yields an empty key.
func ParseTag(tag string) (key string, multi bool) {
	if tag == "" || tag[0] != '[' {
		return tag, false
	}
	if strings.HasPrefix(tag, allPrefix) {
		return tag, true
	}
	if len(tag) > 2 && tag[len(tag)-1] == ']' {
		return allPrefix + tag[1:len(tag)-1], true
	}
	return tag, true
}

// Declarations maps reference names to their targets.
type Declarations map[string]Target

// Clone returns a copy of d. A nil map clones to nil.
func (d Declarations) Clone() Declarations {
	if d == nil {
		return nil
	}
	return maps.Clone(d)
}

// Names returns the declared names in sorted order.
func (d Declarations) Names() []string {
	return slices.Sorted(maps.Keys(d))
}

// ParseDeclarations converts the raw template form into Declarations.
//
// Each value must be either a selector string (single match) or a list that
// holds exactly one selector string (select all). This is the shape template
// compilers emit and the shape JSON or YAML decoding produces:
//
//	{"header": "#header", "items": [".item"]}
func ParseDeclarations(raw map[string]any) (Declarations, error) {
	if raw == nil {
		return nil, nil
	}

	decls := make(Declarations, len(raw))
	for name, value := range raw {
		t, err := parseTarget(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidDeclaration, name, err)
		}
		decls[name] = t
	}
	return decls, nil
}

func parseTarget(value any) (Target, error) {
	switch v := value.(type) {
	case string:
		if v == "" {
			return Target{}, fmt.Errorf("empty selector")
		}
		return One(v), nil
	case []string:
		if len(v) != 1 {
			return Target{}, fmt.Errorf("select-all form needs exactly one selector, got %d", len(v))
		}
		if v[0] == "" {
			return Target{}, fmt.Errorf("empty selector")
		}
		return All(v[0]), nil
	case []any:
		if len(v) != 1 {
			return Target{}, fmt.Errorf("select-all form needs exactly one selector, got %d", len(v))
		}
		s, ok := v[0].(string)
		if !ok || s == "" {
			return Target{}, fmt.Errorf("select-all selector must be a non-empty string, got %T", v[0])
		}
		return All(s), nil
	case Target:
		return v, nil
	default:
		return Target{}, fmt.Errorf("unsupported value type %T", value)
	}
}

// Source produces declarations on demand. Hooks evaluate it once, when the
// instance is created.
type Source func() (Declarations, error)

// Static returns a Source that always yields d.
func Static(d Declarations) Source {
	return func() (Declarations, error) {
		return d, nil
	}
}

// Normalize coerces a raw declaration value into a Source.
//
// Accepted values are Declarations, map[string]any, map[string]string, a
// Source, func() Declarations, func() (Declarations, error) and
// func() map[string]any. A nil value yields a nil Source.
//
// Static maps handed to a page are used as they are. For components the map
// is wrapped into a producer returning a fresh copy, so instances built from
// one definition never share a declaration map.
func Normalize(isPage bool, raw any) (Source, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case Source:
		return v, nil
	case func() (Declarations, error):
		return Source(v), nil
	case func() Declarations:
		return func() (Declarations, error) {
			return v(), nil
		}, nil
	case func() map[string]any:
		return func() (Declarations, error) {
			return ParseDeclarations(v())
		}, nil
	case Declarations:
		return staticFor(isPage, v), nil
	case map[string]any:
		decls, err := ParseDeclarations(v)
		if err != nil {
			return nil, err
		}
		return staticFor(isPage, decls), nil
	case map[string]string:
		decls := make(Declarations, len(v))
		for name, sel := range v {
			if sel == "" {
				return nil, fmt.Errorf("%w: %q: empty selector", ErrInvalidDeclaration, name)
			}
			decls[name] = One(sel)
		}
		return staticFor(isPage, decls), nil
	default:
		return nil, fmt.Errorf("%w: unsupported type %T", ErrInvalidDeclaration, raw)
	}
}

func staticFor(isPage bool, d Declarations) Source {
	if isPage {
		return Static(d)
	}
	return func() (Declarations, error) {
		return d.Clone(), nil
	}
}

package fixture

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/vango-refs/internal/errors"
)

// Tree is a page description read from a fixture file.
type Tree struct {
	Page       Component            `yaml:"page"`
	Components map[string]Component `yaml:"components"`

	file string
}

// Component describes one component type of a fixture.
type Component struct {
	// Name is required for the page and taken from the map key otherwise.
	Name string `yaml:"name"`

	// Refs holds the reference declarations. Values are a selector string
	// for a single reference or a one-element list for a collection.
	Refs map[string]any `yaml:"refs"`

	Template *Node `yaml:"template"`
}

// Node is one node of a component template.
//
// Exactly one of Tag and Component is set for element and placeholder
// nodes. A node with only Text is a text node.
type Node struct {
	Tag       string         `yaml:"tag"`
	Component string         `yaml:"component"`
	Text      string         `yaml:"text"`
	Ref       string         `yaml:"ref"`
	Attrs     map[string]any `yaml:"attrs"`
	Children  []*Node        `yaml:"children"`

	line   int
	column int
}

// UnmarshalYAML records the position of the node for error reporting.
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	type plain Node
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*n = Node(p)
	n.line = value.Line
	n.column = value.Column
	return nil
}

// Position returns the line and column the node was declared at.
func (n *Node) Position() (line, column int) {
	return n.line, n.column
}

// Load reads and parses the fixture at path.
func Load(path string) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("R010").Wrap(err).
			WithDetail(fmt.Sprintf("Could not read %s.", path))
	}
	return Parse(path, data)
}

// Parse decodes a YAML or JSON fixture. name is used in error locations.
func Parse(name string, data []byte) (*Tree, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var t Tree
	if err := dec.Decode(&t); err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, errors.New("R011").WithDetail(fmt.Sprintf("%s is empty.", name))
		}
		verr := errors.New("R011").Wrap(err)
		var typeErr *yaml.TypeError
		if !stderrors.As(err, &typeErr) {
			if line := yamlErrorLine(err); line > 0 {
				verr = verr.WithLocation(name, line, 0)
			}
		}
		return nil, verr
	}
	t.file = name

	if t.Page.Name == "" {
		return nil, errors.New("R013").WithDetail("The page has no name.")
	}
	for key, c := range t.Components {
		if c.Name == "" {
			c.Name = key
			t.Components[key] = c
		}
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// File returns the name the fixture was parsed from.
func (t *Tree) File() string {
	return t.file
}

func (t *Tree) validate() error {
	if err := t.validateNode(t.Page.Template); err != nil {
		return err
	}
	for _, c := range t.Components {
		if err := t.validateNode(c.Template); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tree) validateNode(n *Node) error {
	if n == nil {
		return nil
	}

	switch {
	case n.Tag != "" && n.Component != "":
		return t.nodeError("R013", n, "A node cannot set both tag and component.")
	case n.Tag == "" && n.Component == "" && n.Text == "":
		return t.nodeError("R013", n, "A node needs a tag, a component or text.")
	case n.Tag == "" && n.Component == "" && (len(n.Children) > 0 || len(n.Attrs) > 0 || n.Ref != ""):
		return t.nodeError("R013", n, "A text node cannot have attributes, a ref or children.")
	case n.Component != "":
		if _, ok := t.Components[n.Component]; !ok {
			return t.nodeError("R012", n, fmt.Sprintf("Component %q is not defined.", n.Component))
		}
	}

	for _, child := range n.Children {
		if err := t.validateNode(child); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tree) nodeError(code string, n *Node, detail string) *errors.VangoError {
	return errors.New(code).WithDetail(detail).WithLocation(t.file, n.line, n.column)
}

// yamlErrorLine extracts the line from a yaml syntax error message.
func yamlErrorLine(err error) int {
	var line int
	if _, scanErr := fmt.Sscanf(err.Error(), "yaml: line %d:", &line); scanErr != nil {
		return 0
	}
	return line
}

package vdom

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement   VKind = iota // <div>, <button>, etc.
	KindText                   // Plain text node
	KindFragment               // Grouping without wrapper
	KindComponent              // Nested component placeholder or inline render function
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindComponent:
		return "Component"
	default:
		return "Unknown"
	}
}

// VNode is the virtual DOM node.
//
// A KindComponent node with a Tag marks where a child component sits in its
// parent's template. Tag holds the component name and Props the props handed
// to it, including its reference group tag.
//
// A KindComponent node without a Tag wraps a render function (see Func). Its
// output is part of the enclosing template and is rendered in place.
type VNode struct {
	Kind     VKind     // Node type
	Tag      string    // Element tag or component name
	Props    Props     // Attributes
	Children []*VNode  // Child nodes
	Text     string    // For KindText
	Comp     Component // Render function of an inline component
}

// IsInline reports whether v wraps a render function that belongs to the
// enclosing template.
func (v *VNode) IsInline() bool {
	return v != nil && v.Kind == KindComponent && v.Tag == "" && v.Comp != nil
}

// Expand renders an inline component. Other nodes are returned as is.
func (v *VNode) Expand() *VNode {
	for v.IsInline() {
		v = v.Comp.Render()
	}
	return v
}

// Props holds attributes.
type Props map[string]any

// String returns the prop value for key if it is a string.
func (p Props) String(key string) string {
	s, _ := p[key].(string)
	return s
}

// Clone returns a shallow copy of p.
func (p Props) Clone() Props {
	if p == nil {
		return nil
	}
	out := make(Props, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// Component is anything that can render to a VNode.
type Component interface {
	Render() *VNode
}

// FuncComponent wraps a render function.
type FuncComponent struct {
	render func() *VNode
}

// Render implements Component.
func (f *FuncComponent) Render() *VNode {
	return f.render()
}

// Func creates a component from a render function.
func Func(render func() *VNode) Component {
	return &FuncComponent{render: render}
}

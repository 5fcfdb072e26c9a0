package vdom

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: content,
	}
}

// Fragment groups children without a wrapper element.
func Fragment(children ...any) *VNode {
	node := &VNode{
		Kind:     KindFragment,
		Children: make([]*VNode, 0),
	}
	appendChildren(node, children)
	return node
}

// Comp creates a component placeholder named name. Arguments follow the
// element rules; attributes become the component's props.
func Comp(name string, args ...any) *VNode {
	node := createElement(name, args)
	node.Kind = KindComponent
	return node
}

// Range maps items to nodes.
func Range[T any](items []T, fn func(item T, index int) *VNode) []*VNode {
	result := make([]*VNode, 0, len(items))
	for i, item := range items {
		if node := fn(item, i); node != nil {
			result = append(result, node)
		}
	}
	return result
}

// If returns node when condition holds, nil otherwise.
func If(condition bool, node *VNode) *VNode {
	if condition {
		return node
	}
	return nil
}

// Walk visits node and its descendants depth-first in document order.
// Returning false from fn skips the node's children. Inline components are
// rendered and their output visited in their place.
func Walk(node *VNode, fn func(*VNode) bool) {
	node = node.Expand()
	if node == nil {
		return
	}
	if !fn(node) {
		return
	}
	for _, child := range node.Children {
		Walk(child, fn)
	}
}

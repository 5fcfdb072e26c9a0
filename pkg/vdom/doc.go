// Package vdom provides the virtual DOM nodes component templates render to.
//
// # Core Types
//
// VNode represents elements, text, fragments, component placeholders and
// inline render functions (Func). Props holds attributes. Attr values build Props:
//
//	Div(Class("card"), ID("main"),
//	    H1(Text("Title")),
//	    Comp("item-card", Class("item"), RefAll(".item")),
//	)
//
// # Queries
//
// Query runs CSS selectors against a rendered tree and returns the matching
// VNodes. Component placeholders are matched by their props but their own
// content stays out of reach, the same boundary a component's template
// draws in the browser. Inline render functions are part of the enclosing
// template and are rendered in place on every query.
//
//	q := QueryTree(tree)
//	header, err := q.Select("#header")
//	items, err := q.SelectAll("item-card.item")
package vdom

// Package fixture describes component trees in YAML or JSON files and mounts
// them with package vango.
//
// A fixture names a page, the component types it uses and a template for
// each of them:
//
//	page:
//	  name: home
//	  refs:
//	    title: "#title"
//	    cards: [".item"]
//	  template:
//	    tag: main
//	    children:
//	      - tag: h1
//	        attrs: {id: title}
//	        text: Welcome
//	      - component: item-card
//	        ref: "[].item"
//	        attrs: {id: c1, class: item}
//	components:
//	  item-card:
//	    refs: {label: .label}
//	    template: {tag: span, attrs: {class: label}, text: card}
//
// Parse errors carry the file position of the offending node.
package fixture

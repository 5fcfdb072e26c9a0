package vdom

import (
	"strings"

	"github.com/vango-dev/vango-refs/pkg/refs"
)

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// Identity attributes

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// Data sets a data-* attribute.
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Name sets the name attribute.
func Name(name string) Attr { return attr("name", name) }

// Type sets the type attribute.
func Type(t string) Attr { return attr("type", t) }

// Hidden sets the hidden attribute.
func Hidden() Attr { return attr("hidden", true) }

// AttrKV sets an arbitrary attribute.
func AttrKV(key string, value any) Attr { return attr(key, value) }

// Reference group tags

// RefTag tags a component placeholder with a raw reference group tag.
func RefTag(tag string) Attr { return attr(refs.TagAttr, tag) }

// RefOne tags a component as the sole holder of selector's group.
func RefOne(selector string) Attr { return RefTag(refs.GroupKey(selector, false)) }

// RefAll tags a component as one of many in selector's group.
func RefAll(selector string) Attr { return RefTag(refs.GroupKey(selector, true)) }

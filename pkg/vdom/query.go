package vdom

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/andybalholm/cascadia"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Compiled selectors are kept around; the trees they run against are not.
const (
	selectorExpiration      = 10 * time.Minute
	selectorCleanupInterval = 30 * time.Minute
)

var selectorCache = gocache.New(selectorExpiration, selectorCleanupInterval)

// Query selects nodes of a rendered tree with CSS selectors.
//
// The tree is read through a function on every call, so results follow the
// latest render. Matching covers the root, its elements, the output of inline
// components and the placeholders of nested components, but never descends
// into a nested component's own content or below a void element.
type Query struct {
	root func() *VNode
}

// NewQuery creates a Query over the tree returned by root.
func NewQuery(root func() *VNode) *Query {
	return &Query{root: root}
}

// QueryTree creates a Query over a fixed tree.
func QueryTree(root *VNode) *Query {
	return NewQuery(func() *VNode { return root })
}

// Select returns the first node matching selector in document order, or nil.
func (q *Query) Select(selector string) (*VNode, error) {
	sel, err := Compile(selector)
	if err != nil {
		return nil, err
	}

	doc, nodes := q.build()
	if doc == nil {
		return nil, nil
	}
	match := sel.MatchFirst(doc)
	if match == nil {
		return nil, nil
	}
	return nodes[match], nil
}

// SelectAll returns every node matching selector in document order.
func (q *Query) SelectAll(selector string) ([]*VNode, error) {
	sel, err := Compile(selector)
	if err != nil {
		return nil, err
	}

	doc, nodes := q.build()
	if doc == nil {
		return nil, nil
	}
	matches := sel.MatchAll(doc)
	if len(matches) == 0 {
		return nil, nil
	}
	out := make([]*VNode, 0, len(matches))
	for _, m := range matches {
		out = append(out, nodes[m])
	}
	return out, nil
}

// Compile parses a CSS selector, reusing earlier compilations.
func Compile(selector string) (cascadia.Selector, error) {
	if cached, ok := selectorCache.Get(selector); ok {
		return cached.(cascadia.Selector), nil
	}

	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("vdom: invalid selector %q: %w", selector, err)
	}
	selectorCache.SetDefault(selector, sel)
	return sel, nil
}

// build mirrors the tree as an html.Node document and maps every element
// back to the VNode it came from.
func (q *Query) build() (*html.Node, map[*html.Node]*VNode) {
	if q == nil || q.root == nil {
		return nil, nil
	}
	root := q.root()
	if root == nil {
		return nil, nil
	}

	doc := &html.Node{Type: html.DocumentNode}
	nodes := make(map[*html.Node]*VNode)
	mirror(doc, root, nodes)
	return doc, nodes
}

func mirror(parent *html.Node, v *VNode, nodes map[*html.Node]*VNode) {
	v = v.Expand()
	if v == nil {
		return
	}

	switch v.Kind {
	case KindText:
		parent.AppendChild(&html.Node{Type: html.TextNode, Data: v.Text})

	case KindFragment:
		for _, child := range v.Children {
			mirror(parent, child, nodes)
		}

	case KindElement, KindComponent:
		if v.Tag == "" {
			return
		}
		tag := strings.ToLower(v.Tag)
		n := &html.Node{
			Type:     html.ElementNode,
			Data:     tag,
			DataAtom: atom.Lookup([]byte(tag)),
			Attr:     htmlAttrs(v.Props),
		}
		parent.AppendChild(n)
		nodes[n] = v

		if v.Kind == KindComponent || IsVoidElement(tag) {
			return
		}
		for _, child := range v.Children {
			mirror(n, child, nodes)
		}
	}
}

// htmlAttrs renders props the way they would appear in markup. Boolean true
// yields a bare attribute; false, nil and function values are dropped.
func htmlAttrs(props Props) []html.Attribute {
	if len(props) == 0 {
		return nil
	}

	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	attrs := make([]html.Attribute, 0, len(keys))
	for _, k := range keys {
		val, ok := attrValue(props[k])
		if !ok {
			continue
		}
		attrs = append(attrs, html.Attribute{Key: strings.ToLower(k), Val: val})
	}
	return attrs
}

func attrValue(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case bool:
		return "", val
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case fmt.Stringer:
		return val.String(), true
	default:
		return "", false
	}
}

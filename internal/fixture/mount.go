package fixture

import (
	"context"
	"fmt"

	"github.com/vango-dev/vango-refs/internal/errors"
	"github.com/vango-dev/vango-refs/pkg/vango"
	"github.com/vango-dev/vango-refs/pkg/vdom"
)

// Defs converts the fixture into component definitions.
func (t *Tree) Defs() (vango.Def, vango.Components) {
	components := make(vango.Components, len(t.Components))
	for key, c := range t.Components {
		components[key] = c.def()
	}
	return t.Page.def(), components
}

// Mount mounts the page of the fixture.
func (t *Tree) Mount(ctx context.Context, opts ...vango.Option) (*vango.Instance, error) {
	page, components := t.Defs()
	opts = append([]vango.Option{vango.WithComponents(components)}, opts...)
	return vango.MountPage(ctx, page, nil, opts...)
}

func (c Component) def() vango.Def {
	def := vango.Def{Name: c.Name}
	if c.Refs != nil {
		def.Refs = c.Refs
	}
	if c.Template != nil {
		tmpl := c.Template
		def.Template = func(*vango.Instance) *vdom.VNode {
			return tmpl.build()
		}
	}
	return def
}

func (n *Node) build() *vdom.VNode {
	if n.Tag == "" && n.Component == "" {
		return vdom.Text(n.Text)
	}

	args := make([]any, 0, len(n.Attrs)+len(n.Children)+2)
	for k, v := range n.Attrs {
		args = append(args, vdom.AttrKV(k, v))
	}
	if n.Ref != "" {
		args = append(args, vdom.RefTag(n.Ref))
	}
	if n.Text != "" {
		args = append(args, vdom.Text(n.Text))
	}
	for _, child := range n.Children {
		args = append(args, child.build())
	}

	if n.Component != "" {
		return vdom.Comp(n.Component, args...)
	}
	return vdom.El(n.Tag, args...)
}

// Find returns the mounted instance whose id prop equals id. An empty id
// matches nothing.
func Find(page *vango.Instance, id string) *vango.Instance {
	if id == "" {
		return nil
	}
	var found *vango.Instance
	page.Walk(func(inst *vango.Instance) {
		if found == nil && inst.Props().String("id") == id {
			found = inst
		}
	})
	return found
}

// Detach unmounts the instance whose id prop equals id.
func Detach(ctx context.Context, page *vango.Instance, id string) error {
	inst := Find(page, id)
	if inst == nil {
		return errors.New("R014").
			WithDetail(fmt.Sprintf("No mounted instance has id %q.", id))
	}
	inst.Unmount(ctx)
	return nil
}

package vango

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/vango-dev/vango-refs/pkg/refs"
	"github.com/vango-dev/vango-refs/pkg/vdom"
)

// Def describes a component type.
type Def struct {
	// Name is the component name. Parent templates place the component with
	// a vdom.Comp placeholder carrying this name.
	Name string

	// Refs holds the reference declarations compiled from the template.
	// See refs.Normalize for the accepted forms. nil declares nothing.
	Refs any

	// Template renders the instance's tree. nil renders nothing.
	Template func(inst *Instance) *vdom.VNode
}

// Components maps component names to their definitions. Placeholders in a
// rendered tree whose name is found here are mounted as child instances.
type Components map[string]Def

// Option configures a mounted page. Child instances inherit the page's
// configuration.
type Option func(*options)

type options struct {
	logger     *slog.Logger
	components Components
	refOpts    []refs.Option
}

// WithLogger sets the logger. If nil, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
		o.refOpts = append(o.refOpts, refs.WithLogger(logger))
	}
}

// WithComponents sets the definitions used to mount template placeholders.
func WithComponents(components Components) Option {
	return func(o *options) {
		o.components = components
	}
}

// WithRefOptions passes options to the reference hooks of the page.
func WithRefOptions(opts ...refs.Option) Option {
	return func(o *options) {
		o.refOpts = append(o.refOpts, opts...)
	}
}

// Instance is a mounted component.
type Instance struct {
	id     uint64
	def    Def
	props  vdom.Props
	owner  *Owner
	parent *Instance
	page   *Instance
	hooks  *refs.Hooks
	query  *vdom.Query
	opts   *options

	mu       sync.RWMutex
	tree     *vdom.VNode
	children []*Instance
}

// MountPage mounts def as a page: a root instance that owns the reference
// scope of everything mounted beneath it.
func MountPage(ctx context.Context, def Def, props vdom.Props, opts ...Option) (*Instance, error) {
	o := &options{logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}
	return mount(ctx, nil, def, props, o)
}

// Mount mounts def as a child of i.
func (i *Instance) Mount(ctx context.Context, def Def, props vdom.Props) (*Instance, error) {
	return mount(ctx, i, def, props, i.opts)
}

func mount(ctx context.Context, parent *Instance, def Def, props vdom.Props, o *options) (*Instance, error) {
	inst := &Instance{
		id:     nextID(),
		def:    def,
		props:  props.Clone(),
		parent: parent,
		opts:   o,
	}
	inst.query = vdom.NewQuery(inst.Tree)

	var pageHooks *refs.Hooks
	if parent == nil {
		inst.owner = NewOwner(nil)
		inst.hooks = refs.NewHooks(inst, queryProvider{inst}, nil, o.refOpts...)
	} else {
		inst.owner = NewOwner(parent.owner)
		inst.page = parent.Root()
		pageHooks = inst.page.hooks
		inst.hooks = refs.NewHooks(inst, queryProvider{inst}, pageHooks)
	}

	if err := inst.hooks.Init(inst.page == nil, &refs.InitOptions{Refs: def.Refs}); err != nil {
		inst.owner.Dispose(ctx)
		return nil, fmt.Errorf("vango: init %s: %w", def.Name, err)
	}

	inst.Render()

	if err := inst.hooks.Created(ctx); err != nil {
		inst.owner.Dispose(ctx)
		return nil, fmt.Errorf("vango: create %s: %w", def.Name, err)
	}

	inst.owner.OnCleanup(func(ctx context.Context) {
		inst.hooks.Detached(ctx)
		if inst.parent != nil {
			inst.parent.removeChild(inst)
		}
		o.logger.Debug("vango: instance detached", "component", def.Name, "id", inst.id)
	})
	if parent != nil {
		parent.addChild(inst)
	}
	o.logger.Debug("vango: instance created", "component", def.Name, "id", inst.id, "tag", inst.RefTag())

	if err := inst.mountPlaceholders(ctx); err != nil {
		inst.owner.Dispose(ctx)
		return nil, err
	}
	return inst, nil
}

// mountPlaceholders mounts every component placeholder of the rendered tree
// that has a known definition.
func (i *Instance) mountPlaceholders(ctx context.Context) error {
	if len(i.opts.components) == 0 {
		return nil
	}

	var placeholders []*vdom.VNode
	vdom.Walk(i.Tree(), func(n *vdom.VNode) bool {
		if n.Kind != vdom.KindComponent {
			return true
		}
		placeholders = append(placeholders, n)
		return false
	})

	for _, p := range placeholders {
		def, ok := i.opts.components[p.Tag]
		if !ok {
			i.opts.logger.Debug("vango: unknown component placeholder", "component", p.Tag, "parent", i.def.Name)
			continue
		}
		if _, err := i.Mount(ctx, def, p.Props); err != nil {
			return err
		}
	}
	return nil
}

// Unmount detaches i and all of its descendants.
func (i *Instance) Unmount(ctx context.Context) {
	i.owner.Dispose(ctx)
}

// Render runs the template and stores the resulting tree.
func (i *Instance) Render() *vdom.VNode {
	var tree *vdom.VNode
	if i.def.Template != nil {
		tree = i.def.Template(i)
	}
	i.mu.Lock()
	i.tree = tree
	i.mu.Unlock()
	return tree
}

// Tree returns the last rendered tree.
func (i *Instance) Tree() *vdom.VNode {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.tree
}

// ID returns the unique identifier of the instance.
func (i *Instance) ID() uint64 {
	return i.id
}

// Name returns the component name.
func (i *Instance) Name() string {
	return i.def.Name
}

// Props returns the props the instance was mounted with.
func (i *Instance) Props() vdom.Props {
	return i.props
}

// RefTag implements refs.Host.
func (i *Instance) RefTag() string {
	return i.props.String(refs.TagAttr)
}

// Parent returns the parent instance, or nil for a page.
func (i *Instance) Parent() *Instance {
	return i.parent
}

// Page returns the page the instance belongs to, or nil if i is the page.
func (i *Instance) Page() *Instance {
	return i.page
}

// Root returns the page, or i itself when i is the page.
func (i *Instance) Root() *Instance {
	if i.page != nil {
		return i.page
	}
	return i
}

// Children returns the mounted child instances in mount order.
func (i *Instance) Children() []*Instance {
	i.mu.RLock()
	defer i.mu.RUnlock()
	out := make([]*Instance, len(i.children))
	copy(out, i.children)
	return out
}

// Owner returns the owner scope of the instance.
func (i *Instance) Owner() *Owner {
	return i.owner
}

// Hooks returns the reference hooks of the instance.
func (i *Instance) Hooks() *refs.Hooks {
	return i.hooks
}

// Refs returns the instance's `$refs` table. It is nil once unmounted.
func (i *Instance) Refs() *refs.Refs {
	return i.hooks.Refs()
}

// Ref resolves one reference of the instance.
func (i *Instance) Ref(name string) refs.Result {
	return i.hooks.Refs().Get(name)
}

// Select returns the first element of the instance's tree matching selector.
func (i *Instance) Select(selector string) (*vdom.VNode, error) {
	return i.query.Select(selector)
}

// SelectAll returns every element of the instance's tree matching selector.
func (i *Instance) SelectAll(selector string) ([]*vdom.VNode, error) {
	return i.query.SelectAll(selector)
}

func (i *Instance) addChild(child *Instance) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.children = append(i.children, child)
}

func (i *Instance) removeChild(child *Instance) {
	i.mu.Lock()
	defer i.mu.Unlock()
	for idx, c := range i.children {
		if c == child {
			i.children = append(i.children[:idx], i.children[idx+1:]...)
			return
		}
	}
}

// Walk visits i and its mounted descendants depth-first in mount order.
func (i *Instance) Walk(fn func(*Instance)) {
	fn(i)
	for _, c := range i.Children() {
		c.Walk(fn)
	}
}

// AsInstance returns the registered instance of a reference result, or nil
// when the result came from an element query.
func AsInstance(res refs.Result) *Instance {
	inst, _ := res.Instance().(*Instance)
	return inst
}

// AsInstances returns the registered instances of a reference result.
func AsInstances(res refs.Result) []*Instance {
	hosts := res.Instances()
	out := make([]*Instance, 0, len(hosts))
	for _, h := range hosts {
		if inst, ok := h.(*Instance); ok {
			out = append(out, inst)
		}
	}
	return out
}

// AsNodes returns the matched elements of a reference result.
func AsNodes(res refs.Result) []*vdom.VNode {
	els := res.Elements()
	out := make([]*vdom.VNode, 0, len(els))
	for _, el := range els {
		if n, ok := el.(*vdom.VNode); ok {
			out = append(out, n)
		}
	}
	return out
}

// queryProvider adapts an instance's tree query to refs.QueryProvider.
type queryProvider struct {
	inst *Instance
}

func (p queryProvider) Select(selector string) refs.Element {
	node, err := p.inst.query.Select(selector)
	if err != nil {
		p.inst.opts.logger.Warn("vango: ref selector rejected",
			"component", p.inst.def.Name, "selector", selector, "error", err)
		return nil
	}
	if node == nil {
		return nil
	}
	return node
}

func (p queryProvider) SelectAll(selector string) []refs.Element {
	nodes, err := p.inst.query.SelectAll(selector)
	if err != nil {
		p.inst.opts.logger.Warn("vango: ref selector rejected",
			"component", p.inst.def.Name, "selector", selector, "error", err)
		return nil
	}
	if len(nodes) == 0 {
		return nil
	}
	out := make([]refs.Element, len(nodes))
	for idx, n := range nodes {
		out[idx] = n
	}
	return out
}

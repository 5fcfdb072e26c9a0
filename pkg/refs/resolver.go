package refs

import (
	"fmt"
	"slices"
)

// Element is an opaque element handle produced by a QueryProvider.
type Element any

// QueryProvider selects rendered elements within an instance's subtree.
// Both operations return an empty result when nothing matches; Select must
// return an untyped nil on a miss.
type QueryProvider interface {
	Select(selector string) Element
	SelectAll(selector string) []Element
}

// Origin tells where a Result came from.
type Origin uint8

const (
	// OriginNone means neither the registry nor the query matched.
	OriginNone Origin = iota
	// OriginRegistry means registered component instances were found.
	OriginRegistry
	// OriginQuery means the query provider matched elements.
	OriginQuery
)

// String returns a human-readable name for the origin.
func (o Origin) String() string {
	switch o {
	case OriginNone:
		return "none"
	case OriginRegistry:
		return "registry"
	case OriginQuery:
		return "query"
	default:
		return "unknown"
	}
}

// Result is the value of one reference read.
type Result struct {
	Mode   Mode
	Origin Origin

	instances []Host
	elements  []Element
}

// Instance returns the first registered instance, or nil.
func (r Result) Instance() Host {
	if len(r.instances) == 0 {
		return nil
	}
	return r.instances[0]
}

// Instances returns the registered instances in registration order.
func (r Result) Instances() []Host {
	return r.instances
}

// Element returns the first matched element, or nil.
func (r Result) Element() Element {
	if len(r.elements) == 0 {
		return nil
	}
	return r.elements[0]
}

// Elements returns the matched elements in document order.
func (r Result) Elements() []Element {
	return r.elements
}

// Len returns the number of instances or elements in the result.
func (r Result) Len() int {
	return len(r.instances) + len(r.elements)
}

// Empty reports whether nothing matched.
func (r Result) Empty() bool {
	return r.Len() == 0
}

// Refs is the `$refs` table of one instance. Every read is resolved on the
// spot; nothing is cached between reads.
//
// A nil *Refs behaves as an empty table.
type Refs struct {
	accessors map[string]func() Result
	names     []string
}

// Get resolves name. Undeclared names resolve to an empty Result.
func (r *Refs) Get(name string) Result {
	res, _ := r.Lookup(name)
	return res
}

// Lookup resolves name and reports whether it was declared.
func (r *Refs) Lookup(name string) (Result, bool) {
	if r == nil {
		return Result{}, false
	}
	get, ok := r.accessors[name]
	if !ok {
		return Result{}, false
	}
	return get(), true
}

// Require resolves name and fails with ErrUnknownRef if it was not declared.
func (r *Refs) Require(name string) (Result, error) {
	res, ok := r.Lookup(name)
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownRef, name)
	}
	return res, nil
}

// Names returns the declared names in sorted order.
func (r *Refs) Names() []string {
	if r == nil {
		return nil
	}
	return slices.Clone(r.names)
}

// Len returns the number of declared names.
func (r *Refs) Len() int {
	if r == nil {
		return 0
	}
	return len(r.names)
}

// Each resolves every declared name in sorted order.
func (r *Refs) Each(fn func(name string, res Result)) {
	if r == nil {
		return
	}
	for _, name := range r.names {
		fn(name, r.accessors[name]())
	}
}

// newRefs builds the accessor table for decls. scope may be nil when the
// instance has no page registry; query may be nil when the instance renders
// nothing selectable.
func newRefs(decls Declarations, scope *Scope, query QueryProvider, metrics *Metrics) *Refs {
	r := &Refs{
		accessors: make(map[string]func() Result, len(decls)),
		names:     decls.Names(),
	}
	for name, target := range decls {
		r.accessors[name] = func() Result {
			res := resolve(target, scope, query)
			metrics.resolved(res.Mode, res.Origin)
			return res
		}
	}
	return r
}

// resolve looks target up in the scope's registry and falls back to the
// query provider when no instance was registered under its key.
func resolve(target Target, scope *Scope, query QueryProvider) Result {
	res := Result{Mode: target.Mode}
	key := target.Key()

	if target.Mode == ModeAll {
		if scope != nil {
			if hosts := scope.registry.All(key); len(hosts) > 0 {
				res.Origin = OriginRegistry
				res.instances = hosts
				return res
			}
		}
		if query != nil {
			if els := query.SelectAll(target.Selector); len(els) > 0 {
				res.Origin = OriginQuery
				res.elements = els
			}
		}
		return res
	}

	if scope != nil {
		if h, ok := scope.registry.One(key); ok {
			res.Origin = OriginRegistry
			res.instances = []Host{h}
			return res
		}
	}
	if query != nil {
		if el := query.Select(target.Selector); el != nil {
			res.Origin = OriginQuery
			res.elements = []Element{el}
		}
	}
	return res
}

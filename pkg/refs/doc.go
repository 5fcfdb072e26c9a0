// Package refs resolves template references (`$refs`) for a component tree.
//
// A component declares named references in its template. Each name points at
// a selector and a multiplicity:
//
//	decls := refs.Declarations{
//	    "header": refs.One("#header"),
//	    "items":  refs.All(".item"),
//	}
//
// Child components that should be reachable through a reference carry a
// group tag under the TagAttr prop. A tag starting with "[" marks the child
// as one of many; any other tag marks it as the sole holder of its group.
// Tagged children register themselves into the Scope owned by their page
// (the root instance) when they are created and leave it when detached.
//
// # Resolution
//
// Reading a reference consults the page's Registry first. If no component
// instance was registered for the reference's key, the lookup falls back to
// the instance's QueryProvider, which selects rendered elements:
//
//	res := hooks.Refs().Get("items")
//	for _, inst := range res.Instances() {
//	    // registered components
//	}
//
// Results are never cached. Every read reflects the registry and the
// rendered tree as they are at that moment.
//
// # Lifecycle
//
// Hosts drive a Hooks value through three points:
//
//	h := refs.NewHooks(inst, query, pageHooks)
//	_ = h.Init(isPage, &refs.InitOptions{Refs: decls})
//	_ = h.Created(ctx)   // builds $refs, registers the tagged instance
//	h.Detached(ctx)      // drops $refs, unregisters (or discards the Scope on the root)
package refs

package refs

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// InitOptions carries the extra values a host passes to Init.
type InitOptions struct {
	// Refs holds the reference declarations compiled from the template.
	// See Normalize for the accepted forms.
	Refs any
}

// Hooks implements the reference lifecycle for one component instance.
//
// The host calls Init before the instance is normalized, Created once its
// props and page linkage are in place, and Detached when it leaves the tree.
type Hooks struct {
	host     Host
	query    QueryProvider
	page     *Hooks
	settings settings

	mu      sync.Mutex
	source  Source
	refs    *Refs
	scope   *Scope // owned by root instances only
	created bool
}

// NewHooks creates the lifecycle hooks for host. page is the hooks of the
// enclosing page; nil makes host its own root. query may be nil.
func NewHooks(host Host, query QueryProvider, page *Hooks, opts ...Option) *Hooks {
	h := &Hooks{
		host:     host,
		query:    query,
		page:     page,
		settings: defaultSettings(),
	}
	if page != nil {
		h.settings = page.settings
	}
	for _, opt := range opts {
		opt(&h.settings)
	}
	return h
}

// IsRoot reports whether the instance has no page and owns its own scope.
func (h *Hooks) IsRoot() bool {
	return h.page == nil
}

// Init stores the raw reference declarations from opts. Without
// declarations it does nothing.
func (h *Hooks) Init(isPage bool, opts *InitOptions) error {
	if opts == nil || opts.Refs == nil {
		return nil
	}

	source, err := Normalize(isPage, opts.Refs)
	if err != nil {
		return err
	}

	h.mu.Lock()
	h.source = source
	h.mu.Unlock()
	return nil
}

// Created builds the instance's `$refs` table and, when the instance is
// tagged, registers it into its page's scope. An instance without
// declarations ends up with an empty table and touches no registry.
//
// An error from the declaration producer aborts setup and is returned
// wrapped.
func (h *Hooks) Created(ctx context.Context) error {
	tag := h.host.RefTag()
	_, span := h.settings.tracer.Start(ctx, "refs.Created",
		trace.WithAttributes(
			attribute.String("refs.tag", tag),
			attribute.Bool("refs.root", h.IsRoot()),
		),
	)
	defer span.End()

	h.mu.Lock()
	if h.created {
		h.mu.Unlock()
		span.SetStatus(codes.Error, ErrAlreadyCreated.Error())
		return ErrAlreadyCreated
	}
	h.created = true
	h.refs = &Refs{}
	source := h.source
	h.mu.Unlock()

	if source == nil {
		return nil
	}

	decls, err := source()
	if err != nil {
		err = fmt.Errorf("refs: evaluate declarations: %w", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if decls == nil {
		return nil
	}

	scope := h.root().openScope()
	if tag != "" {
		scope.register(h.host, tag)
	}

	refs := newRefs(decls, scope, h.query, h.settings.metrics)
	h.mu.Lock()
	h.refs = refs
	h.mu.Unlock()

	span.SetAttributes(
		attribute.Int("refs.count", refs.Len()),
		attribute.String("refs.scope", scope.ID()),
	)
	return nil
}

// Detached drops the `$refs` table. On a root instance the scope is
// discarded with every registration in it; otherwise a tagged instance is
// removed from its page's registry.
func (h *Hooks) Detached(ctx context.Context) {
	tag := h.host.RefTag()
	_, span := h.settings.tracer.Start(ctx, "refs.Detached",
		trace.WithAttributes(
			attribute.String("refs.tag", tag),
			attribute.Bool("refs.root", h.IsRoot()),
		),
	)
	defer span.End()

	h.mu.Lock()
	h.refs = nil
	if h.page == nil {
		scope := h.scope
		h.scope = nil
		h.mu.Unlock()
		if scope != nil {
			scope.discard()
		}
		return
	}
	h.mu.Unlock()

	if tag == "" {
		return
	}
	if scope := h.page.Scope(); scope != nil {
		scope.unregister(h.host, tag)
	}
}

// Refs returns the instance's `$refs` table. It is nil before Created and
// after Detached.
func (h *Hooks) Refs() *Refs {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.refs
}

// Scope returns the scope owned by this instance, or nil if the instance is
// not a root or no descendant has opened one yet.
func (h *Hooks) Scope() *Scope {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.scope
}

// Host returns the instance the hooks belong to.
func (h *Hooks) Host() Host {
	return h.host
}

func (h *Hooks) root() *Hooks {
	if h.page != nil {
		return h.page
	}
	return h
}

// openScope returns the scope owned by h, creating it on first use.
func (h *Hooks) openScope() *Scope {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.scope == nil {
		h.scope = newScope(h.settings)
	}
	return h.scope
}

package refs

import (
	"log/slog"

	"github.com/google/uuid"
)

// Scope is the reference namespace of one page. It owns the Registry that
// tagged descendants of the page register into.
type Scope struct {
	id       string
	registry Registry
	logger   *slog.Logger
	metrics  *Metrics
}

func newScope(s settings) *Scope {
	sc := &Scope{
		id:      uuid.NewString(),
		logger:  s.logger,
		metrics: s.metrics,
	}
	sc.metrics.scopeOpened()
	sc.logger.Debug("refs: scope opened", "scope", sc.id)
	return sc
}

// ID returns the unique identifier of the scope.
func (s *Scope) ID() string {
	if s == nil {
		return ""
	}
	return s.id
}

// Registry returns the scope's registry.
func (s *Scope) Registry() *Registry {
	return &s.registry
}

// register adds h under the key derived from its tag.
func (s *Scope) register(h Host, tag string) {
	key, multi := ParseTag(tag)
	s.registry.Register(key, h, multi)
	s.metrics.registered(modeOf(multi))
	s.logger.Debug("refs: instance registered", "scope", s.id, "key", key, "multi", multi)
}

// unregister removes h from the key derived from its tag.
func (s *Scope) unregister(h Host, tag string) {
	key, multi := ParseTag(tag)
	if !s.registry.Unregister(key, h) {
		return
	}
	s.metrics.unregistered(modeOf(multi))
	s.logger.Debug("refs: instance unregistered", "scope", s.id, "key", key, "multi", multi)
}

// discard drops every registration. Accessors still holding the scope see
// an empty registry afterwards.
func (s *Scope) discard() {
	s.registry.Clear()
	s.metrics.scopeClosed()
	s.logger.Debug("refs: scope discarded", "scope", s.id)
}

func modeOf(multi bool) Mode {
	if multi {
		return ModeAll
	}
	return ModeOne
}

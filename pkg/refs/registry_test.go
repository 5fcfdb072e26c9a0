package refs

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type testHost struct {
	name string
	tag  string
}

func (h *testHost) RefTag() string { return h.tag }

func TestRegistry_Single(t *testing.T) {
	var r Registry
	a := &testHost{name: "a"}
	b := &testHost{name: "b"}

	r.Register("card", a, false)
	if got, ok := r.One("card"); !ok || got != a {
		t.Fatalf("One() = (%v, %v), want a", got, ok)
	}

	// Last writer wins.
	r.Register("card", b, false)
	if got, _ := r.One("card"); got != b {
		t.Fatalf("One() after second register = %v, want b", got)
	}

	// Stale holder cannot clear the newer registration.
	if r.Unregister("card", a) {
		t.Error("Unregister(a) should not remove b's entry")
	}
	if _, ok := r.One("card"); !ok {
		t.Error("entry should survive stale unregister")
	}

	if !r.Unregister("card", b) {
		t.Error("Unregister(b) should remove the entry")
	}
	if _, ok := r.One("card"); ok {
		t.Error("entry should be gone")
	}
	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0", r.Len())
	}
}

func TestRegistry_Multi(t *testing.T) {
	var r Registry
	a := &testHost{name: "a"}
	b := &testHost{name: "b"}
	c := &testHost{name: "c"}

	r.Register("[]item", a, true)
	r.Register("[]item", b, true)
	r.Register("[]item", c, true)

	if got := r.All("[]item"); !slices.Equal(got, []Host{a, b, c}) {
		t.Fatalf("All() = %v, want [a b c]", got)
	}

	if !r.Unregister("[]item", b) {
		t.Fatal("Unregister(b) = false")
	}
	if got := r.All("[]item"); !slices.Equal(got, []Host{a, c}) {
		t.Fatalf("All() after remove = %v, want [a c]", got)
	}

	// Removing an absent instance is a no-op.
	if r.Unregister("[]item", b) {
		t.Error("second Unregister(b) should report false")
	}
	if r.Unregister("[]missing", a) {
		t.Error("Unregister on missing key should report false")
	}
}

func TestRegistry_DuplicateInstanceRemovesFirst(t *testing.T) {
	var r Registry
	a := &testHost{name: "a"}
	b := &testHost{name: "b"}

	r.Register("[]x", a, true)
	r.Register("[]x", b, true)
	r.Register("[]x", a, true)
	r.Unregister("[]x", a)

	if got := r.All("[]x"); !slices.Equal(got, []Host{b, a}) {
		t.Fatalf("All() = %v, want [b a]", got)
	}
}

func TestRegistry_AllReturnsCopy(t *testing.T) {
	var r Registry
	a := &testHost{name: "a"}
	r.Register("[]x", a, true)

	got := r.All("[]x")
	got[0] = &testHost{name: "other"}

	if r.All("[]x")[0] != a {
		t.Error("All() must not expose internal storage")
	}
}

func TestRegistry_ModeMismatch(t *testing.T) {
	var r Registry
	a := &testHost{name: "a"}
	r.Register("k", a, false)

	if got := r.All("k"); got != nil {
		t.Errorf("All() on single entry = %v, want nil", got)
	}

	r.Register("[]k", a, true)
	if _, ok := r.One("[]k"); ok {
		t.Error("One() on collection entry should miss")
	}
}

func TestRegistry_KeysAndClear(t *testing.T) {
	var r Registry
	r.Register("b", &testHost{}, false)
	r.Register("[]a", &testHost{}, true)

	if got := r.Keys(); !slices.Equal(got, []string{"[]a", "b"}) {
		t.Fatalf("Keys() = %v", got)
	}

	r.Clear()
	if r.Len() != 0 {
		t.Errorf("Len() after Clear = %d", r.Len())
	}
	if _, ok := r.One("b"); ok {
		t.Error("One() after Clear should miss")
	}
}

// TestProperty_RegistryMatchesModel drives the registry with random
// register/unregister sequences and compares it to a slice-based model.
func TestProperty_RegistryMatchesModel(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		hosts := []*testHost{{name: "h0"}, {name: "h1"}, {name: "h2"}, {name: "h3"}}
		keys := []string{"[]a", "[]b"}

		var r Registry
		model := map[string][]Host{}

		steps := rapid.IntRange(0, 60).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			key := rapid.SampledFrom(keys).Draw(rt, "key")
			h := rapid.SampledFrom(hosts).Draw(rt, "host")

			if rapid.Bool().Draw(rt, "register") {
				r.Register(key, h, true)
				model[key] = append(model[key], h)
				continue
			}

			removed := r.Unregister(key, h)
			idx := slices.Index(model[key], Host(h))
			require.Equal(rt, idx != -1, removed, "Unregister result for %s", h.name)
			if idx != -1 {
				model[key] = slices.Delete(model[key], idx, idx+1)
			}
		}

		for _, key := range keys {
			got := r.All(key)
			want := model[key]
			require.Equal(rt, len(want), len(got), "collection length for %s", key)
			for i := range want {
				require.Same(rt, want[i], got[i], "order at %d for %s", i, key)
			}
		}
	})
}

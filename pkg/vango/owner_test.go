package vango

import (
	"context"
	"sync"
	"testing"
)

func TestOwnerBasic(t *testing.T) {
	owner := NewOwner(nil)

	if owner.ID() == 0 {
		t.Error("owner should have non-zero ID")
	}

	if owner.Parent() != nil {
		t.Error("root owner should have nil parent")
	}

	if owner.IsDisposed() {
		t.Error("new owner should not be disposed")
	}
}

func TestOwnerHierarchy(t *testing.T) {
	root := NewOwner(nil)
	child1 := NewOwner(root)
	child2 := NewOwner(root)
	grandchild := NewOwner(child1)

	if child1.Parent() != root {
		t.Error("child1 parent should be root")
	}

	if child2.Parent() != root {
		t.Error("child2 parent should be root")
	}

	if grandchild.Parent() != child1 {
		t.Error("grandchild parent should be child1")
	}

	if got := root.Children(); len(got) != 2 || got[0] != child1 || got[1] != child2 {
		t.Errorf("root children = %v, want [child1 child2]", got)
	}
}

func TestOwnerDisposeHierarchy(t *testing.T) {
	root := NewOwner(nil)
	child1 := NewOwner(root)
	child2 := NewOwner(root)
	grandchild := NewOwner(child1)

	// Track disposal order
	disposalOrder := []string{}
	var mu sync.Mutex

	addDisposal := func(name string) func(context.Context) {
		return func(context.Context) {
			mu.Lock()
			disposalOrder = append(disposalOrder, name)
			mu.Unlock()
		}
	}

	grandchild.OnCleanup(addDisposal("grandchild"))
	child1.OnCleanup(addDisposal("child1"))
	child2.OnCleanup(addDisposal("child2"))
	root.OnCleanup(addDisposal("root"))

	root.Dispose(context.Background())

	for name, o := range map[string]*Owner{"root": root, "child1": child1, "child2": child2, "grandchild": grandchild} {
		if !o.IsDisposed() {
			t.Errorf("%s should be disposed", name)
		}
	}

	// Children in reverse mount order, descendants before their parents.
	want := []string{"child2", "grandchild", "child1", "root"}
	if len(disposalOrder) != len(want) {
		t.Fatalf("disposal order = %v, want %v", disposalOrder, want)
	}
	for i := range want {
		if disposalOrder[i] != want[i] {
			t.Fatalf("disposal order = %v, want %v", disposalOrder, want)
		}
	}
}

func TestOwnerOnCleanupMultiple(t *testing.T) {
	owner := NewOwner(nil)

	order := []int{}
	owner.OnCleanup(func(context.Context) { order = append(order, 1) })
	owner.OnCleanup(func(context.Context) { order = append(order, 2) })
	owner.OnCleanup(func(context.Context) { order = append(order, 3) })

	owner.Dispose(context.Background())

	// Should run in reverse order
	if len(order) != 3 {
		t.Fatalf("expected 3 cleanups, got %d", len(order))
	}
	if order[0] != 3 || order[1] != 2 || order[2] != 1 {
		t.Errorf("expected reverse order [3,2,1], got %v", order)
	}
}

func TestOwnerCleanupReceivesContext(t *testing.T) {
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "v")

	owner := NewOwner(nil)
	var got any
	owner.OnCleanup(func(ctx context.Context) { got = ctx.Value(key{}) })
	owner.Dispose(ctx)

	if got != "v" {
		t.Errorf("cleanup context value = %v, want v", got)
	}
}

func TestOwnerOnCleanupAfterDispose(t *testing.T) {
	owner := NewOwner(nil)
	owner.Dispose(context.Background())

	cleanupRan := false
	owner.OnCleanup(func(context.Context) {
		cleanupRan = true
	})

	// Cleanup should run immediately when registered on disposed owner
	if !cleanupRan {
		t.Error("cleanup should run immediately on disposed owner")
	}
}

func TestOwnerDoubleDispose(t *testing.T) {
	owner := NewOwner(nil)

	cleanupCount := 0
	owner.OnCleanup(func(context.Context) {
		cleanupCount++
	})

	owner.Dispose(context.Background())
	owner.Dispose(context.Background()) // Should be no-op

	if cleanupCount != 1 {
		t.Errorf("cleanup should only run once, got %d", cleanupCount)
	}
}

func TestOwnerDisposeRemovesFromParent(t *testing.T) {
	root := NewOwner(nil)
	child := NewOwner(root)

	child.Dispose(context.Background())

	if got := root.Children(); len(got) != 0 {
		t.Errorf("root children after child dispose = %d, want 0", len(got))
	}
}

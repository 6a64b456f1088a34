package arena

import "testing"

func TestAllocateIsIdempotentForSameID(t *testing.T) {
	a := New()
	i1 := a.Allocate("root")
	i2 := a.Allocate("root")
	if i1 != i2 {
		t.Errorf("expected same index for same id, got %d and %d", i1, i2)
	}
}

func TestAllocateAnonymousReusesFreedIndex(t *testing.T) {
	a := New()
	i1 := a.Allocate("")
	a.Release(i1)
	i2 := a.Allocate("")
	if i2 != i1 {
		t.Errorf("expected freed index %d to be reused, got %d", i1, i2)
	}
}

func TestReleaseUnknownIsNoop(t *testing.T) {
	a := New()
	a.Release(Index(999)) // must not panic
}

func TestReleaseRecursivelyFreesDescendants(t *testing.T) {
	a := New()
	root := a.Allocate("")
	a.PushParentContext(root)
	child := a.Allocate("")
	a.PushParentContext(child)
	grandchild := a.Allocate("")
	a.PopParentContext()
	a.PopParentContext()

	a.Release(root)

	for _, idx := range []Index{root, child, grandchild} {
		if a.IsLive(idx) {
			t.Errorf("expected %d to be released", idx)
		}
	}
}

func TestEmptyResetReusesIndexZero(t *testing.T) {
	a := New()
	i1 := a.Allocate("")
	i2 := a.Allocate("")
	a.Release(i1)
	a.Release(i2)

	i3 := a.Allocate("")
	if i3 != 0 {
		t.Errorf("expected index 0 after empty-reset, got %d", i3)
	}
}

func TestParentContextStack(t *testing.T) {
	a := New()
	if a.CurrentParent() != None {
		t.Errorf("expected None with empty stack")
	}
	root := a.Allocate("")
	a.PushParentContext(root)
	if a.CurrentParent() != root {
		t.Errorf("expected %d, got %d", root, a.CurrentParent())
	}
	child := a.Allocate("")
	if a.Parent(child) != root {
		t.Errorf("expected child's parent to be root")
	}
	a.PopParentContext()
	if a.CurrentParent() != None {
		t.Errorf("expected None after pop")
	}
}

func TestOnReleaseHookFires(t *testing.T) {
	a := New()
	var freed []Index
	a.OnRelease(func(idx Index) { freed = append(freed, idx) })

	i := a.Allocate("")
	a.Release(i)

	if len(freed) != 1 || freed[0] != i {
		t.Errorf("expected release hook to fire once with %d, got %v", i, freed)
	}
}

func TestOnEmptyResetHookFires(t *testing.T) {
	a := New()
	resets := 0
	a.OnEmptyReset(func() { resets++ })

	i1 := a.Allocate("")
	i2 := a.Allocate("")
	a.Release(i1)
	if resets != 0 {
		t.Errorf("should not reset while live set is non-empty")
	}
	a.Release(i2)
	if resets != 1 {
		t.Errorf("expected exactly one reset once live set emptied, got %d", resets)
	}
}

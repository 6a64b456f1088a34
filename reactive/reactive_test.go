package reactive

import "testing"

func TestSignal(t *testing.T) {
	count := New(0)
	if count.Get() != 0 {
		t.Errorf("Expected 0, got %d", count.Get())
	}
	count.Set(1)
	if count.Get() != 1 {
		t.Errorf("Expected 1, got %d", count.Get())
	}
}

func TestSignalNoopWrite(t *testing.T) {
	count := New(5)
	runs := 0
	CreateEffect(func() {
		count.Get()
		runs++
	})
	count.Set(5) // same value, equal predicate should suppress
	if runs != 1 {
		t.Errorf("expected no rerun on equal write, got %d runs", runs)
	}
	count.Set(6)
	if runs != 2 {
		t.Errorf("expected rerun on real write, got %d runs", runs)
	}
}

func TestEffectRunsImmediatelyAndOnUpdate(t *testing.T) {
	count := New(0)
	runCount := 0

	CreateEffect(func() {
		_ = count.Get()
		runCount++
	})

	if runCount != 1 {
		t.Errorf("Effect should run immediately. Got %d", runCount)
	}
	count.Set(1)
	if runCount != 2 {
		t.Errorf("Effect should run on update. Got %d", runCount)
	}
}

func TestDerived(t *testing.T) {
	count := New(1)
	double := NewDerived(func() int { return count.Get() * 2 })

	if double.Get() != 2 {
		t.Errorf("Expected 2, got %d", double.Get())
	}
	count.Set(2)
	if double.Get() != 4 {
		t.Errorf("Expected 4, got %d", double.Get())
	}
}

func TestDerivedCachesWhenUnchanged(t *testing.T) {
	count := New(1)
	double := NewDerived(func() int { return count.Get() * 2 })

	double.Get()
	before := double.RecomputeCount()
	double.Get()
	double.Get()
	if double.RecomputeCount() != before {
		t.Errorf("expected cached read, recompute count grew from %d to %d", before, double.RecomputeCount())
	}
}

func TestDependencyTracking(t *testing.T) {
	a := New(1)
	b := New(2)
	sum := 0

	CreateEffect(func() {
		sum = a.Get() + b.Get()
	})

	if sum != 3 {
		t.Errorf("Expected 3, got %d", sum)
	}
	a.Set(2)
	if sum != 4 {
		t.Errorf("Expected 4, got %d", sum)
	}
	b.Set(3)
	if sum != 5 {
		t.Errorf("Expected 5, got %d", sum)
	}
}

func TestBatchCoalescesEffectReruns(t *testing.T) {
	a := New(1)
	b := New(2)
	runs := 0

	CreateEffect(func() {
		a.Get()
		b.Get()
		runs++
	})

	Batch(func() {
		a.Set(10)
		b.Set(20)
	})

	if runs != 2 {
		t.Errorf("expected exactly one rerun from the batch (2 total), got %d", runs)
	}
}

func TestDerivedCycleDetected(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on self-referential derived")
		}
		if _, ok := r.(*ErrCycle); !ok {
			t.Fatalf("expected *ErrCycle, got %T", r)
		}
	}()

	var self *Derived[int]
	self = NewDerived(func() int { return self.Get() + 1 })
	self.Get()
}

func TestScopeDisposesEffectsLIFO(t *testing.T) {
	var order []int
	scope := NewScope()
	scope.OnDispose(func() { order = append(order, 1) })
	scope.OnDispose(func() { order = append(order, 2) })

	runs := 0
	sig := New(0)
	scope.Effect(func() {
		sig.Get()
		runs++
	})

	scope.Stop()
	sig.Set(1) // effect must no longer rerun

	if runs != 1 {
		t.Errorf("expected effect to have run exactly once before disposal, got %d", runs)
	}
	if len(order) != 2 || order[0] != 2 || order[1] != 1 {
		t.Errorf("expected LIFO dispose order [2 1], got %v", order)
	}
}

func TestSlotArrayLiteralAndClear(t *testing.T) {
	arr := NewSlotArray[int]()
	arr.Set(3, 42)

	if arr.Get(3) != 42 {
		t.Errorf("expected 42, got %d", arr.Get(3))
	}
	if arr.Get(0) != 0 {
		t.Errorf("expected zero value for unset slot, got %d", arr.Get(0))
	}

	arr.Clear(3)
	if arr.Get(3) != 0 {
		t.Errorf("expected zero value after Clear, got %d", arr.Get(3))
	}
}

func TestSlotArraySetSourceReactsToSignal(t *testing.T) {
	width := New(10)
	arr := NewSlotArray[int]()
	arr.SetSource(0, func() int { return width.Get() * 2 })

	if arr.Get(0) != 20 {
		t.Errorf("expected 20, got %d", arr.Get(0))
	}
	width.Set(5)
	if arr.Get(0) != 10 {
		t.Errorf("expected 10 after source update, got %d", arr.Get(0))
	}
}

func TestReactiveSetTracksAddRemove(t *testing.T) {
	set := NewSet[int]()
	sum := 0
	CreateEffect(func() {
		sum = 0
		set.Each(func(v int) { sum += v })
	})

	if sum != 0 {
		t.Errorf("expected 0, got %d", sum)
	}
	set.Add(5)
	if sum != 5 {
		t.Errorf("expected 5, got %d", sum)
	}
	set.Remove(5)
	if sum != 0 {
		t.Errorf("expected 0 after remove, got %d", sum)
	}
}

func TestReactiveMapGetSetDelete(t *testing.T) {
	m := NewMap[string, int]()
	m.Set("a", 1)
	if v, ok := m.Get("a"); !ok || v != 1 {
		t.Errorf("expected (1, true), got (%d, %v)", v, ok)
	}
	m.Delete("a")
	if _, ok := m.Get("a"); ok {
		t.Errorf("expected key removed")
	}
}

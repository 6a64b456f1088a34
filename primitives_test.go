package flexterm

import (
	"testing"

	"flexterm/arena"
	"flexterm/reactive"
)

func TestShowSwitchesBranchesOnSignalChange(t *testing.T) {
	withEngine(t, func() {
		on := reactive.New(true)
		var thenRuns, elseRuns int

		Box(BoxProps{}, func() {
			Show(func() bool { return on.Get() },
				func() { thenRuns++ },
				func() { elseRuns++ },
			)
		})

		if thenRuns != 1 || elseRuns != 0 {
			t.Fatalf("expected only then to run initially, got then=%d else=%d", thenRuns, elseRuns)
		}

		on.Set(false)
		reactive.FlushSync()
		if thenRuns != 1 || elseRuns != 1 {
			t.Fatalf("expected else to run after flip, got then=%d else=%d", thenRuns, elseRuns)
		}

		on.Set(true)
		reactive.FlushSync()
		if thenRuns != 2 || elseRuns != 1 {
			t.Fatalf("expected then to run again after flipping back, got then=%d else=%d", thenRuns, elseRuns)
		}
	})
}

func TestWhenDispatchesOnStatus(t *testing.T) {
	withEngine(t, func() {
		state := reactive.New(&AsyncState[int]{Status: AsyncPending})
		var pending, resolved, rejected int
		var lastValue int
		var lastErr error

		Box(BoxProps{}, func() {
			When(state.Get, WhenHandlers[int]{
				Pending: func() { pending++ },
				Then:    func(v int) { resolved++; lastValue = v },
				Catch:   func(err error) { rejected++; lastErr = err },
			})
		})
		if pending != 1 || resolved != 0 || rejected != 0 {
			t.Fatalf("expected pending branch first, got p=%d r=%d j=%d", pending, resolved, rejected)
		}

		state.Set(&AsyncState[int]{Status: AsyncResolved, Value: 7})
		reactive.FlushSync()
		if resolved != 1 || lastValue != 7 {
			t.Fatalf("expected resolved branch with value 7, got resolved=%d value=%d", resolved, lastValue)
		}

		boom := &reportedError{msg: "boom"}
		state.Set(&AsyncState[int]{Status: AsyncRejected, Err: boom})
		reactive.FlushSync()
		if rejected != 1 || lastErr != boom {
			t.Fatalf("expected rejected branch with error boom, got rejected=%d err=%v", rejected, lastErr)
		}
	})
}

func TestEachReconcilesByKey(t *testing.T) {
	withEngine(t, func() {
		items := reactive.NewWithEqual([]string{"a", "b", "c"}, func(a, b []string) bool { return false })
		rendered := map[string]int{}

		Box(BoxProps{}, func() {
			Each(items.Get, func(item string, _ int) arena.Index {
				rendered[item]++
				return Text(TextProps{Content: item})
			}, EachOptions[string]{
				Key: func(item string, _ int) string { return item },
			})
		})

		if rendered["a"] != 1 || rendered["b"] != 1 || rendered["c"] != 1 {
			t.Fatalf("expected each item rendered once, got %+v", rendered)
		}

		items.Set([]string{"b", "c", "d"})
		reactive.FlushSync()

		if rendered["a"] != 1 {
			t.Fatalf("expected removed key 'a' not re-rendered, got %d", rendered["a"])
		}
		if rendered["b"] != 1 || rendered["c"] != 1 {
			t.Fatalf("expected surviving keys not re-rendered, got b=%d c=%d", rendered["b"], rendered["c"])
		}
		if rendered["d"] != 1 {
			t.Fatalf("expected new key 'd' rendered once, got %d", rendered["d"])
		}
	})
}

func TestEachReleasesRemovedKeys(t *testing.T) {
	withEngine(t, func() {
		items := reactive.NewWithEqual([]string{"a", "b"}, func(a, b []string) bool { return false })
		indices := map[string]arena.Index{}

		Box(BoxProps{}, func() {
			Each(items.Get, func(item string, _ int) arena.Index {
				idx := Text(TextProps{Content: item})
				indices[item] = idx
				return idx
			}, EachOptions[string]{Key: func(item string, _ int) string { return item }})
		})

		aIdx := indices["a"]
		items.Set([]string{"b"})
		reactive.FlushSync()

		if activeEngine.Arena.IsLive(aIdx) {
			t.Errorf("expected removed item's index to be released")
		}
	})
}

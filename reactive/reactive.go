// Package reactive is the pull-based reactivity substrate: Signal, Derived,
// Effect, Scope, and the sparse SlotArray/Set/Map collections that the
// component store and layout engine read through.
//
// The engine is single-threaded and cooperative (spec §5): every signal
// mutation, derived recompute, and effect rerun happens on the one
// goroutine that owns the mount loop. Nothing here takes a mutex —
// callers that need to feed events from another goroutine (raw stdin
// reads) must hand them off over a channel and let the mount loop process
// them, exactly as input.Decoder does.
package reactive

// Getter is a type-erased value source — Signal[T] and Derived[T] both
// implement it so Bind[T] can hold either uniformly.
type Getter interface {
	GetValue() interface{}
}

// dependency is anything that can be subscribed to.
type dependency interface {
	subscribe(s subscriber)
	unsubscribe(s subscriber)
}

// subscriber is anything that depends on others.
type subscriber interface {
	onDependencyUpdated()
	addDependency(d dependency)
}

var activeSubscriber subscriber

var (
	batchDepth int
	batchQueue map[subscriber]struct{}
)

// Batch coalesces effect reruns: writes inside fn mark dependents dirty
// but effects don't run until the outermost Batch returns (spec §4.2/§5).
func Batch(fn func()) {
	batchDepth++
	defer func() {
		batchDepth--
		if batchDepth == 0 && len(batchQueue) > 0 {
			queue := batchQueue
			batchQueue = nil
			for sub := range queue {
				sub.onDependencyUpdated()
			}
		}
	}()
	fn()
}

func enqueueOrRun(e *Effect) {
	if batchDepth > 0 {
		if batchQueue == nil {
			batchQueue = make(map[subscriber]struct{})
		}
		batchQueue[e] = struct{}{}
		return
	}
	e.Run()
}

// FlushSync runs any effects queued by a batch immediately. Present for
// hosts that want to force a synchronous flush boundary (spec §6: "flush_sync").
func FlushSync() {
	if len(batchQueue) == 0 {
		return
	}
	queue := batchQueue
	batchQueue = nil
	for sub := range queue {
		sub.onDependencyUpdated()
	}
}

func track(d dependency, sub func(subscriber)) {
	if activeSubscriber != nil {
		activeSubscriber.addDependency(d)
		sub(activeSubscriber)
	}
}

func withSubscriber(s subscriber, fn func()) {
	prev := activeSubscriber
	activeSubscriber = s
	defer func() { activeSubscriber = prev }()
	fn()
}

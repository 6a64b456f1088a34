package flexterm

import (
	"os"
	"os/signal"
	"syscall"

	"flexterm/input"
	"flexterm/reactive"
	"flexterm/render"
)

// Options configures Mount (spec §6 "mount(root_closure, options) →
// handle. Options: { mode, mouse, kitty_keyboard, get_static_height? }").
// BracketedPaste/FocusReporting extend the spec's option table with the
// remaining protocol toggles term.go already knows how to enable/disable.
type Options struct {
	Mode            render.Mode
	Mouse           bool
	KittyKeyboard   bool
	BracketedPaste  bool
	FocusReporting  bool
	GetStaticHeight func() int
}

// Handle is mount's return value: cleanup() plus, in append mode,
// render_to_history (spec §6).
type Handle struct {
	engine    *engine
	writer    render.Writer
	raw       *render.RawState
	decoder   *input.Decoder
	resizeCh  chan os.Signal
	done      chan struct{}
	rootScope *reactive.Scope
	protoOpts render.ProtocolOptions
}

// Mount builds the engine, runs root once to populate the component tree,
// installs a render effect, and starts the single goroutine that drains
// both decoded input events and SIGWINCH — the one thread that, after
// Mount returns, is allowed to touch the reactive graph (spec §5
// "single-threaded, cooperative... multi-thread access is undefined").
// Only one application may be mounted per process at a time (spec §5).
func Mount(root func(), opts Options) (*Handle, error) {
	if activeEngine != nil {
		return nil, &reportedError{msg: "mount: an application is already mounted in this process"}
	}

	width, height := render.TermSize(os.Stdout)
	fullscreen := opts.Mode == render.ModeFullscreen
	e := newEngine(width, height, fullscreen, fullscreen)
	activeEngine = e

	var w render.Writer
	switch opts.Mode {
	case render.ModeFullscreen:
		w = render.NewFullscreen(os.Stdout)
	case render.ModeAppend:
		getStatic := opts.GetStaticHeight
		if getStatic == nil {
			getStatic = func() int { return 0 }
		}
		w = render.NewAppend(os.Stdout, getStatic)
	default:
		w = render.NewInline(os.Stdout)
	}

	raw, err := render.EnableRawMode(os.Stdin)
	if err != nil {
		reportf("mount", "failed to enable raw mode: %v", err)
	}

	protoOpts := render.ProtocolOptions{
		Mouse: opts.Mouse, KittyKeyboard: opts.KittyKeyboard,
		BracketedPaste: opts.BracketedPaste, FocusReporting: opts.FocusReporting,
	}
	render.EnableProtocols(os.Stdout, protoOpts)

	decoder := input.StartDecoder(os.Stdin)

	resizeCh := make(chan os.Signal, 1)
	signal.Notify(resizeCh, syscall.SIGWINCH)

	h := &Handle{
		engine: e, writer: w, raw: raw, decoder: decoder,
		resizeCh: resizeCh, done: make(chan struct{}),
		protoOpts: protoOpts,
	}

	h.rootScope = reactive.NewScope()
	e.pushScope(h.rootScope)
	e.pushContextFrame()
	runGuarded("mount.root", root)
	e.popContextFrame()
	e.popScope()

	h.rootScope.Effect(func() {
		res := e.Frame.Get()
		e.Router.Grid.Resize(res.Buffer.Width, res.Buffer.Height)
		for _, hr := range res.HitRegions {
			e.Router.Grid.Write(hr.X, hr.Y, hr.W, hr.H, hr.Index)
		}
		w.Draw(res.Buffer)
		if err := w.Flush(); err != nil {
			reportf("render", "flush failed: %v", err)
		}
	})

	go h.loop()

	return h, nil
}

// loop is the one goroutine allowed to mutate the reactive graph after
// Mount returns: it serializes decoded input dispatch and resize handling
// onto a single select, exactly the discipline spec §5 requires.
func (h *Handle) loop() {
	for {
		select {
		case <-h.done:
			return
		case ev, ok := <-h.decoder.Events():
			if !ok {
				return
			}
			if ev.Key != nil {
				h.engine.Router.DispatchKey(*ev.Key)
			}
			if ev.Mouse != nil {
				h.engine.Router.DispatchMouse(*ev.Mouse)
			}
		case <-h.resizeCh:
			w, ht := render.TermSize(os.Stdout)
			h.engine.TerminalWidth.Set(w)
			h.engine.TerminalHeight.Set(ht)
			h.writer.Invalidate()
		}
	}
}

// RenderToHistory synchronously paints subRoot's tree into the append
// writer's permanent scrollback region, out of band from the main
// reactive render loop (spec §6 "render_to_history(sub_root_closure)").
// subRoot is built in a throwaway engine sized to the current terminal
// width rather than the mounted application's own arena, since its output
// is a one-shot snapshot that must not entangle with the live component
// tree's indices or layout.
func (h *Handle) RenderToHistory(subRoot func()) error {
	app, ok := h.writer.(*render.Append)
	if !ok {
		return &reportedError{msg: "render_to_history is only valid in append mode"}
	}

	width, _ := render.TermSize(os.Stdout)
	tmp := newEngine(width, 0, false, false)

	prev := activeEngine
	activeEngine = tmp
	tmp.pushContextFrame()
	runGuarded("render_to_history", subRoot)
	tmp.popContextFrame()
	activeEngine = prev

	res := tmp.Frame.Get()
	app.RenderToHistory(res.Buffer)
	return app.Flush()
}

// Cleanup stops the input/resize loop, tears down every reactive effect
// and on_destroy callback the mount created, reverses protocol toggles and
// raw mode, and frees the process-wide engine slot so a later Mount call
// can succeed (spec §5 "the returned cleanup closure guarantees release on
// all exit paths").
func (h *Handle) Cleanup() error {
	close(h.done)
	signal.Stop(h.resizeCh)
	h.decoder.Stop()

	h.rootScope.Stop()
	for _, idx := range h.engine.Arena.LiveSet().Snapshot() {
		h.engine.Arena.Release(idx)
	}

	render.DisableProtocols(os.Stdout, h.protoOpts)
	err := h.writer.Close()

	if h.raw != nil {
		if rerr := render.DisableRawMode(os.Stdin, h.raw); err == nil {
			err = rerr
		}
	}

	if activeEngine == h.engine {
		activeEngine = nil
	}
	return err
}

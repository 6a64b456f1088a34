package render

import (
	"io"
	"os"

	"golang.org/x/term"
)

// RawState wraps the terminal state golang.org/x/term needs to restore
// on teardown.
type RawState struct {
	state *term.State
}

// EnableRawMode puts f into raw mode, disabling line buffering and
// signal generation so every byte (including Ctrl-C) reaches the input
// decoder (spec §4.6).
func EnableRawMode(f *os.File) (*RawState, error) {
	s, err := term.MakeRaw(int(f.Fd()))
	if err != nil {
		return nil, err
	}
	return &RawState{state: s}, nil
}

// DisableRawMode restores f to the state captured by EnableRawMode.
func DisableRawMode(f *os.File, s *RawState) error {
	if s == nil || s.state == nil {
		return nil
	}
	return term.Restore(int(f.Fd()), s.state)
}

// TermSize returns the current terminal dimensions, falling back to
// 80x24 when the descriptor isn't a terminal (grounded on
// tui.NewScreen's size probe).
func TermSize(f *os.File) (width, height int) {
	w, h, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 80, 24
	}
	return w, h
}

// Protocol extensions beyond the base cursor/color escapes, enabled
// optionally at mount and always reversed at teardown (spec §6 "wire
// protocol", §4.5 "reverses all enabled protocol extensions").
const (
	seqMouseSGROn   = "\x1b[?1002h\x1b[?1006h"
	seqMouseSGROff  = "\x1b[?1006l\x1b[?1002l"
	seqKittyOn      = "\x1b[>1u"
	seqKittyOff     = "\x1b[<u"
	seqBracketedOn  = "\x1b[?2004h"
	seqBracketedOff = "\x1b[?2004l"
	seqFocusOn      = "\x1b[?1004h"
	seqFocusOff     = "\x1b[?1004l"
)

// ProtocolOptions selects which optional input protocols mount enables,
// mirroring spec §6's mount option table.
type ProtocolOptions struct {
	Mouse          bool
	KittyKeyboard  bool
	BracketedPaste bool
	FocusReporting bool
}

// EnableProtocols writes the escape sequences for every protocol opted
// into by opts.
func EnableProtocols(out io.Writer, opts ProtocolOptions) {
	if opts.Mouse {
		io.WriteString(out, seqMouseSGROn)
	}
	if opts.KittyKeyboard {
		io.WriteString(out, seqKittyOn)
	}
	if opts.BracketedPaste {
		io.WriteString(out, seqBracketedOn)
	}
	if opts.FocusReporting {
		io.WriteString(out, seqFocusOn)
	}
}

// DisableProtocols reverses exactly the sequences EnableProtocols wrote,
// in the opposite order (spec §4.5 teardown "reverses all enabled
// protocol extensions").
func DisableProtocols(out io.Writer, opts ProtocolOptions) {
	if opts.FocusReporting {
		io.WriteString(out, seqFocusOff)
	}
	if opts.BracketedPaste {
		io.WriteString(out, seqBracketedOff)
	}
	if opts.KittyKeyboard {
		io.WriteString(out, seqKittyOff)
	}
	if opts.Mouse {
		io.WriteString(out, seqMouseSGROff)
	}
}

package vtterm

import "testing"

func feedAndDisplay(t *testing.T, lines, columns int, text string) *Screen {
	t.Helper()
	sc := NewScreen(lines, columns)
	s := NewStream(sc)
	s.Feed(text)
	return sc
}

func TestStreamDrawsPlainText(t *testing.T) {
	sc := feedAndDisplay(t, 2, 10, "hi")
	if got := sc.LineContent(0); got[:2] != "hi" {
		t.Errorf("line 0 = %q, want prefix hi", got)
	}
}

func TestStreamBasicControls(t *testing.T) {
	sc := feedAndDisplay(t, 2, 10, "ab\rcd")
	if got := sc.LineContent(0)[:2]; got != "cd" {
		t.Errorf("after CR overwrite, line 0 = %q, want cd", got)
	}
}

func TestStreamLinefeed(t *testing.T) {
	sc := feedAndDisplay(t, 2, 10, "a\nb")
	if got := sc.CharAt(0, 0).Data; got != "a" {
		t.Errorf("line0 col0 = %q, want a", got)
	}
	// Without LNM, LF moves down but keeps the column, so b lands at col 1.
	if got := sc.CharAt(1, 1).Data; got != "b" {
		t.Errorf("line1 col1 = %q, want b", got)
	}
}

func TestStreamCSICursorPosition(t *testing.T) {
	sc := feedAndDisplay(t, 5, 10, "\x1b[3;4Hx")
	cur := sc.Cursor()
	if got := sc.CharAt(2, 3).Data; got != "x" {
		t.Errorf("expected x written at (2,3) after CUP 3;4, got %q at cursor %+v", got, cur)
	}
}

func TestStreamCSIDefaultParam(t *testing.T) {
	sc := feedAndDisplay(t, 5, 10, "\x1b[Hx")
	if got := sc.CharAt(0, 0).Data; got != "x" {
		t.Errorf("CUP with no params should default to 1;1, got %q", got)
	}
}

func TestStreamCSISGRBold(t *testing.T) {
	sc := feedAndDisplay(t, 1, 10, "\x1b[1mx")
	if !sc.CharAt(0, 0).Bold {
		t.Error("expected cell written after SGR 1 to be bold")
	}
}

func TestStreamCSIPrivateMode(t *testing.T) {
	sc := NewScreen(5, 10)
	s := NewStream(sc)
	s.Feed("\x1b[?25l") // hide cursor (DECTCEM reset)
	if !sc.Cursor().Hidden {
		t.Error("expected cursor hidden after CSI ?25l")
	}
	s.Feed("\x1b[?25h")
	if sc.Cursor().Hidden {
		t.Error("expected cursor visible after CSI ?25h")
	}
}

func TestStreamOSCSetTitle(t *testing.T) {
	sc := NewScreen(5, 10)
	s := NewStream(sc)
	s.Feed("\x1b]2;hello\x07")
	if got := sc.Title(); got != "hello" {
		t.Errorf("Title() = %q, want hello", got)
	}
}

func TestStreamOSCTerminatedByST(t *testing.T) {
	sc := NewScreen(5, 10)
	s := NewStream(sc)
	s.Feed("\x1b]0;both\x1b\\")
	if sc.Title() != "both" || sc.IconName() != "both" {
		t.Errorf("Title=%q IconName=%q, want both/both", sc.Title(), sc.IconName())
	}
}

func TestStreamFeedAcrossChunkBoundaries(t *testing.T) {
	sc := NewScreen(5, 10)
	s := NewStream(sc)
	s.Feed("\x1b[1")
	s.Feed(";4Hx")
	if got := sc.CharAt(0, 3).Data; got != "x" {
		t.Errorf("split CUP sequence should still land at (0,3), got %q", got)
	}
}

func TestStreamReinitializesAfterPanic(t *testing.T) {
	sc := NewScreen(5, 10)
	s := NewStream(panicListener{sc})

	func() {
		defer func() { recover() }()
		s.Feed("\x1b[1m") // SGR dispatch panics
	}()

	// Feeding the same stream again should behave as if nothing happened:
	// the parser must have reset its CSI-in-progress state, otherwise "x"
	// would be taken as a CSI final instead of being drawn.
	s.Feed("x")
	if got := sc.CharAt(0, 0).Data; got != "x" {
		t.Errorf("parser should recover to ground state, got %q", got)
	}
}

// panicListener wraps a Screen and panics on SelectGraphicRendition, to
// exercise Feed's recover-and-reinitialize path.
type panicListener struct{ *Screen }

func (p panicListener) SelectGraphicRendition(attrs []int) {
	panic("boom")
}

func TestEnterCsiRejectsStalePrivateFlag(t *testing.T) {
	sc := NewScreen(5, 10)
	s := NewStream(sc)
	s.Feed("\x1b[?1h")
	s.Feed("\x1b[4h") // a plain (non-private) CSI must not inherit private=true
	// set_mode must have received private=false: public IRM (4) is set,
	// not the shifted private mode 4.
	if !sc.Modes().Has(ModeIRM) || sc.Modes().Has(privateMode(4)) {
		t.Errorf("expected public IRM set by CSI 4h, modes = %v", sc.Modes())
	}
}

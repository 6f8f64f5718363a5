package vtterm

import (
	"log/slog"
	"strings"
)

// C0/C1 control bytes the parser treats specially outside of text.
const (
	cES  = 0x1b // ESC
	cCSI = 0x9b // CSI (C1)
	cOSC = 0x9d // OSC (C1)
	cCAN = 0x18
	cSUB = 0x1a
	cBEL = 0x07
)

type parserState int

const (
	stateGround parserState = iota
	stateEscape
	stateEscapeCharsetG0
	stateEscapeCharsetG1
	stateEscapeSelectCharset
	stateSharp
	stateCsi
	stateCsiDollar
	stateOsc
	stateOscEsc
)

// Stream is a byte/character parser: a table-driven state machine that
// recognizes C0 controls and ESC/CSI/OSC sequences and dispatches each as a
// single call on its Listener. It holds a reference to exactly one
// listener; the listener holds no reference back.
//
// Stream is a long-lived, resumable FSM: Feed may be called repeatedly with
// arbitrary chunk boundaries, including mid-sequence, from a single
// goroutine.
type Stream struct {
	listener Listener
	logger   *slog.Logger

	state        parserState
	private      bool
	csiFirstByte bool
	params       []int
	current      int
	hasDigits    bool
	osc          []rune

	utf8Enabled  bool
	onUTF8Toggle func(bool)
}

// StreamOption configures a Stream at construction.
type StreamOption func(*Stream)

// WithLogger overrides the *slog.Logger used to report recovered dispatch
// panics. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) StreamOption {
	return func(s *Stream) { s.logger = logger }
}

// NewStream returns a parser dispatching to listener. Because Listener is a
// Go interface, the compiler has already proven listener resolves every
// event Stream may dispatch; see AttachDynamic for the runtime-checked path.
func NewStream(listener Listener, opts ...StreamOption) *Stream {
	s := &Stream{
		listener:    listener,
		logger:      slog.Default(),
		utf8Enabled: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EventNames returns every event name Stream may dispatch, in a stable
// order. HistoryScreen wraps this set plus next_page/prev_page.
func EventNames() []string {
	out := make([]string, len(eventNames))
	copy(out, eventNames)
	return out
}

// OnUTF8Toggle registers a callback invoked whenever an ESC % sequence turns
// UTF-8 decoding on or off. ByteStream uses this to reset its own decoder in
// lockstep with the parser.
func (s *Stream) OnUTF8Toggle(fn func(enabled bool)) {
	s.onUTF8Toggle = fn
}

// Feed parses decoded text, dispatching events to the listener as they are
// recognized. If a listener method panics, Feed re-initializes the parser's
// internal state before the panic continues to propagate, so the stream
// remains usable on the next Feed call.
func (s *Stream) Feed(text string) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("vtterm: listener dispatch panicked; reinitializing parser", "panic", r)
			s.reinitialize()
			panic(r)
		}
	}()

	var plain strings.Builder
	flush := func() {
		if plain.Len() > 0 {
			s.listener.Draw(plain.String())
			plain.Reset()
		}
	}

	for _, r := range text {
		if s.state == stateGround && isPlain(r) {
			plain.WriteRune(r)
			continue
		}
		flush()
		s.step(r)
	}
	flush()
}

// isPlain reports whether r can go through the plain-text fast path: it is
// not ESC, a C1 CSI/OSC introducer, NUL, DEL, or a basic-control key.
func isPlain(r rune) bool {
	switch r {
	case cES, cCSI, cOSC, 0x00, 0x7f:
		return false
	}
	return !isBasicControl(r)
}

func isBasicControl(r rune) bool {
	switch r {
	case cBEL, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f:
		return true
	}
	return false
}

// dispatchBasic handles a single C0 control. Returns false if r was not one
// of the recognized basic-table keys.
func (s *Stream) dispatchBasic(r rune) bool {
	switch r {
	case cBEL:
		s.listener.Bell()
	case 0x08:
		s.listener.Backspace()
	case 0x09:
		s.listener.Tab(1)
	case 0x0a, 0x0b, 0x0c:
		s.listener.Linefeed()
	case 0x0d:
		s.listener.CarriageReturn()
	case 0x0e:
		s.listener.ShiftOut()
	case 0x0f:
		s.listener.ShiftIn()
	default:
		return false
	}
	return true
}

func (s *Stream) step(r rune) {
	switch s.state {
	case stateGround:
		s.stepGround(r)
	case stateEscape:
		s.stepEscape(r)
	case stateSharp:
		s.stepSharp(r)
	case stateEscapeCharsetG0:
		s.stepCharset(0, r)
		s.state = stateGround
	case stateEscapeCharsetG1:
		s.stepCharset(1, r)
		s.state = stateGround
	case stateEscapeSelectCharset:
		s.stepSelectCharset(r)
	case stateCsi:
		s.stepCsi(r)
	case stateCsiDollar:
		s.state = stateGround
	case stateOsc:
		s.stepOsc(r)
	case stateOscEsc:
		s.stepOscEsc(r)
	}
}

func (s *Stream) stepGround(r rune) {
	switch r {
	case cES:
		s.state = stateEscape
	case cCSI:
		s.enterCsi()
	case cOSC:
		s.enterOsc()
	case 0x00, 0x7f:
		// DEL/NUL ignored
	default:
		s.dispatchBasic(r)
	}
}

func (s *Stream) stepEscape(r rune) {
	switch r {
	case '[':
		s.enterCsi()
		return
	case ']':
		s.enterOsc()
		return
	case '#':
		s.state = stateSharp
		return
	case '(':
		s.state = stateEscapeCharsetG0
		return
	case ')':
		s.state = stateEscapeCharsetG1
		return
	case '%':
		s.state = stateEscapeSelectCharset
		return
	case 'c':
		s.listener.Reset()
	case 'D':
		s.listener.Index()
	case 'E':
		s.listener.Linefeed()
	case 'H':
		s.listener.SetTabStop()
	case 'M':
		s.listener.ReverseIndex()
	case '7':
		s.listener.SaveCursor()
	case '8':
		s.listener.RestoreCursor()
	default:
		s.listener.Debug("esc", nil, string(r))
	}
	s.state = stateGround
}

func (s *Stream) stepSharp(r rune) {
	if r == '8' {
		s.listener.AlignmentDisplay()
	} else {
		s.listener.Debug("sharp", nil, string(r))
	}
	s.state = stateGround
}

// stepCharset handles the designator byte of an ESC ( / ESC ) sequence: it
// dispatches DefineCharset to the listener unless UTF-8 decoding is active
// (in which case the sequence is consumed but skipped) or the designator
// code is not one of the four recognized tables (silently ignored).
func (s *Stream) stepCharset(mode byte, r rune) {
	code := string(r)
	if _, ok := DefineCharset(code); !ok {
		return
	}
	if s.utf8Enabled {
		return
	}
	s.listener.DefineCharset(code, mode)
}

func (s *Stream) stepSelectCharset(r rune) {
	switch r {
	case '@':
		s.utf8Enabled = false
	case 'G', '8':
		s.utf8Enabled = true
	}
	if s.onUTF8Toggle != nil {
		s.onUTF8Toggle(s.utf8Enabled)
	}
	s.state = stateGround
}

func (s *Stream) enterCsi() {
	s.state = stateCsi
	s.private = false
	s.csiFirstByte = true
	s.params = s.params[:0]
	s.current = 0
	s.hasDigits = false
}

func (s *Stream) pushParam() {
	v := s.current
	if v > 9999 {
		v = 9999
	}
	s.params = append(s.params, v)
	s.current = 0
	s.hasDigits = false
}

func (s *Stream) resetCsiGround() {
	s.state = stateGround
	s.private = false
	s.params = s.params[:0]
	s.current = 0
	s.hasDigits = false
}

func (s *Stream) stepCsi(r rune) {
	if s.csiFirstByte {
		s.csiFirstByte = false
		if r == '?' {
			s.private = true
			return
		}
	}

	switch {
	case r >= '0' && r <= '9':
		s.hasDigits = true
		s.current = s.current*10 + int(r-'0')
		if s.current > 9999 {
			s.current = 9999
		}
	case r == ';':
		s.pushParam()
	case r == ' ' || r == '>':
		// SP, secondary-DA marker: skipped
	case r == cCAN || r == cSUB:
		s.listener.Draw(string(r))
		s.resetCsiGround()
	case r == '$':
		s.state = stateCsiDollar
	case isBasicControl(r):
		s.dispatchBasic(r)
	default:
		s.pushParam()
		s.dispatchCSI(byte(r))
		s.resetCsiGround()
	}
}

func getParam(params []int, idx int) int {
	if idx < len(params) {
		return params[idx]
	}
	return 0
}

func (s *Stream) dispatchCSI(final byte) {
	p0 := getParam(s.params, 0)
	p1 := getParam(s.params, 1)
	private := s.private
	l := s.listener

	switch final {
	case '@':
		l.InsertCharacters(p0)
	case 'A':
		l.CursorUp(p0)
	case 'B', 'e':
		l.CursorDown(p0)
	case 'C', 'a':
		l.CursorForward(p0)
	case 'D':
		l.CursorBack(p0)
	case 'E':
		l.CursorDown1(p0)
	case 'F':
		l.CursorUp1(p0)
	case 'G', '\'':
		l.CursorToColumn(p0)
	case 'H', 'f':
		l.CursorPosition(p0, p1)
	case 'J':
		l.EraseInDisplay(p0)
	case 'K':
		l.EraseInLine(p0)
	case 'L':
		l.InsertLines(p0)
	case 'M':
		l.DeleteLines(p0)
	case 'P':
		l.DeleteCharacters(p0)
	case 'X':
		l.EraseCharacters(p0)
	case 'c':
		l.ReportDeviceAttributes(p0, private)
	case 'd':
		l.CursorToLine(p0)
	case 'g':
		l.ClearTabStop(p0)
	case 'h':
		l.SetMode(private, s.params...)
	case 'l':
		l.ResetMode(private, s.params...)
	case 'm':
		l.SelectGraphicRendition(append([]int(nil), s.params...))
	case 'n':
		l.ReportDeviceStatus(p0)
	case 'r':
		l.SetMargins(p0, p1)
	default:
		l.Debug("csi", append([]int(nil), s.params...), string(rune(final)))
	}
}

func (s *Stream) enterOsc() {
	s.state = stateOsc
	s.osc = s.osc[:0]
}

func (s *Stream) stepOsc(r rune) {
	switch r {
	case cBEL:
		s.finishOSC()
	case cES:
		s.state = stateOscEsc
	default:
		s.osc = append(s.osc, r)
	}
}

func (s *Stream) stepOscEsc(r rune) {
	if r == '\\' {
		s.finishOSC()
		return
	}
	s.state = stateEscape
	s.stepEscape(r)
}

func (s *Stream) finishOSC() {
	text := string(s.osc)
	code, param := splitOSC(text)
	switch code {
	case "0":
		s.listener.SetIconName(param)
		s.listener.SetTitle(param)
	case "1":
		s.listener.SetIconName(param)
	case "2":
		s.listener.SetTitle(param)
	case "P", "R":
		// palette set/reset: accepted and discarded
	default:
		s.listener.Debug("osc", nil, text)
	}
	s.state = stateGround
}

func splitOSC(text string) (code, param string) {
	idx := strings.IndexByte(text, ';')
	if idx < 0 {
		return text, ""
	}
	return text[:idx], text[idx+1:]
}

func (s *Stream) reinitialize() {
	s.state = stateGround
	s.private = false
	s.csiFirstByte = false
	s.params = s.params[:0]
	s.current = 0
	s.hasDigits = false
	s.osc = s.osc[:0]
}

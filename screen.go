package vtterm

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Ensure Screen implements Listener.
var _ Listener = (*Screen)(nil)

// Screen is the default Listener: it owns the cursor, the sparse character
// buffer, scroll margins, modes, tab stops, and graphic-rendition
// attributes, and mutates them in response to Stream events. It never holds
// a reference back to the Stream that feeds it.
type Screen struct {
	lines, columns int
	buffer         Buffer
	cursor         Cursor
	savepoints     []Savepoint
	margins        *Margins
	modes          ModeSet
	tabstops       map[int]struct{}

	charset               int
	g0Charset, g1Charset  CharsetID

	dirty map[int]struct{}

	title, iconName string
	savedColumns    int

	response io.Writer
	logger   *slog.Logger
}

// Option configures a Screen during construction.
type Option func(*Screen)

// WithResponseWriter sets the sink for write_process_input (DA/DSR
// replies). Nil (the default) makes those replies no-ops.
func WithResponseWriter(w io.Writer) Option {
	return func(sc *Screen) { sc.response = w }
}

// WithScreenLogger overrides the logger used for recoverable/ignored
// conditions. Defaults to slog.Default().
func WithScreenLogger(logger *slog.Logger) Option {
	return func(sc *Screen) { sc.logger = logger }
}

// NewScreen constructs a Screen of the given size and resets it to initial
// state (blank buffer, no margins, DECAWM+DECTCEM modes, tab stops every 8
// columns, cursor home, G0=Latin-1, G1=VT100).
func NewScreen(lines, columns int, opts ...Option) *Screen {
	sc := &Screen{lines: lines, columns: columns, logger: slog.Default()}
	for _, opt := range opts {
		opt(sc)
	}
	sc.Reset()
	return sc
}

// Lines returns the screen height.
func (sc *Screen) Lines() int { return sc.lines }

// Columns returns the screen width.
func (sc *Screen) Columns() int { return sc.columns }

// Cursor returns a copy of the current cursor state.
func (sc *Screen) Cursor() Cursor { return sc.cursor }

// Margins returns the current scroll margins, or nil for full-screen.
func (sc *Screen) Margins() *Margins { return sc.margins }

// Modes returns the live mode set (mutating it bypasses side effects; treat
// it as read-only outside of tests).
func (sc *Screen) Modes() ModeSet { return sc.modes }

// Title returns the current window title (OSC 2 / OSC 0).
func (sc *Screen) Title() string { return sc.title }

// IconName returns the current icon name (OSC 1 / OSC 0).
func (sc *Screen) IconName() string { return sc.iconName }

// Dirty returns the caller-owned set of line indexes touched since
// construction or the last ClearDirty. The core only ever adds to it.
func (sc *Screen) Dirty() map[int]struct{} { return sc.dirty }

// ClearDirty empties the dirty set.
func (sc *Screen) ClearDirty() { sc.dirty = map[int]struct{}{} }

func (sc *Screen) markDirty(y int) { sc.dirty[y] = struct{}{} }

func (sc *Screen) markAllDirty() {
	for y := 0; y < sc.lines; y++ {
		sc.dirty[y] = struct{}{}
	}
}

// CharAt returns the cell at (y, x), honoring the buffer's sparse default
// semantics.
func (sc *Screen) CharAt(y, x int) Char {
	return sc.buffer.CharAt(y, x, sc.lineDefault(y))
}

// Display renders every row as a plain string (stub cells from wide
// characters contribute nothing; this is a read helper, not a renderer).
func (sc *Screen) Display() []string {
	out := make([]string, sc.lines)
	for y := 0; y < sc.lines; y++ {
		var sb strings.Builder
		def := sc.lineDefault(y)
		for x := 0; x < sc.columns; x++ {
			c := sc.buffer.CharAt(y, x, def)
			sb.WriteString(c.Data)
		}
		out[y] = sb.String()
	}
	return out
}

// LineContent is Display()[y], or "" if y is out of range.
func (sc *Screen) LineContent(y int) string {
	if y < 0 || y >= sc.lines {
		return ""
	}
	return sc.Display()[y]
}

func (sc *Screen) defaultChar() Char {
	c := DefaultChar
	if sc.modes.Has(ModeDECSCNM) {
		c.Reverse = true
	}
	return c
}

func (sc *Screen) lineDefault(y int) Char {
	if l := sc.buffer.Get(y); l != nil {
		return l.Default
	}
	return sc.defaultChar()
}

func (sc *Screen) setChar(y, x int, c Char) {
	sc.buffer.GetOrCreate(y, sc.lineDefault(y)).Set(x, c)
}

func (sc *Screen) effectiveMargins() (top, bottom int) {
	if sc.margins != nil {
		return sc.margins.Top, sc.margins.Bottom
	}
	return 0, sc.lines - 1
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func positive(n int) int {
	if n <= 0 {
		return 1
	}
	return n
}

func defaultTabstops(columns int) map[int]struct{} {
	m := make(map[int]struct{})
	for x := 8; x < columns; x += 8 {
		m[x] = struct{}{}
	}
	return m
}

// Reset returns the buffer and all mutable state (except the line/column
// count) to their initial values.
func (sc *Screen) Reset() {
	sc.buffer = NewBuffer()
	sc.margins = nil
	sc.modes = NewModeSet()
	sc.tabstops = defaultTabstops(sc.columns)
	sc.cursor = NewCursor()
	sc.g0Charset = CharsetLatin1
	sc.g1Charset = CharsetVT100
	sc.charset = 0
	sc.dirty = map[int]struct{}{}
	sc.savepoints = nil
	sc.title = ""
	sc.iconName = ""
	sc.savedColumns = 0
}

// Resize clips lines from the top and columns from the right when shrinking,
// preserving existing tab stops within the new bounds and extending the
// default every-8 grid into any newly added columns.
func (sc *Screen) Resize(lines, columns int) {
	oldLines, oldColumns := sc.lines, sc.columns
	sc.buffer.Resize(oldLines, lines, columns)

	newTabs := make(map[int]struct{})
	for x := range sc.tabstops {
		if x < columns {
			newTabs[x] = struct{}{}
		}
	}
	if columns > oldColumns {
		start := maxInt(8, (oldColumns+7)/8*8)
		for x := start; x < columns; x += 8 {
			newTabs[x] = struct{}{}
		}
	}
	sc.tabstops = newTabs

	sc.lines, sc.columns = lines, columns

	if sc.margins != nil {
		if sc.margins.Top >= sc.margins.Bottom || sc.margins.Bottom > lines-1 {
			sc.margins = nil
		}
	}

	sc.cursor.Y = clampInt(sc.cursor.Y, 0, maxInt(lines-1, 0))
	sc.cursor.X = clampInt(sc.cursor.X, 0, columns)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// --- Text ---

// Draw writes decoded text starting at the cursor, translating through the
// active charset, honoring wide/combining characters, IRM, and DECAWM.
func (sc *Screen) Draw(text string) {
	for _, r := range text {
		sc.drawRune(r)
	}
}

func (sc *Screen) drawRune(r rune) {
	table := sc.g0Charset
	if sc.charset == 1 {
		table = sc.g1Charset
	}
	r = Translate(table, r)
	w := wcwidth(r)

	if sc.cursor.X == sc.columns {
		if sc.modes.Has(ModeDECAWM) {
			sc.markDirty(sc.cursor.Y)
			sc.CarriageReturn()
			sc.Linefeed()
		} else if w > 0 {
			sc.cursor.X -= w
		}
	}

	if sc.modes.Has(ModeIRM) && w > 0 {
		sc.InsertCharacters(w)
	}

	switch {
	case w == 1:
		sc.setChar(sc.cursor.Y, sc.cursor.X, sc.cursor.Attrs.Replace(WithData(string(r))))
	case w == 2:
		sc.setChar(sc.cursor.Y, sc.cursor.X, sc.cursor.Attrs.Replace(WithData(string(r))))
		if sc.cursor.X+1 < sc.columns {
			sc.setChar(sc.cursor.Y, sc.cursor.X+1, sc.cursor.Attrs.Replace(WithData("")))
		}
	case w == 0 && isCombining(r):
		sc.combine(r)
	default:
		return
	}

	if w > 0 {
		sc.cursor.X = minInt(sc.cursor.X+w, sc.columns)
	}
	sc.markDirty(sc.cursor.Y)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// combine composes a zero-width combining mark into the preceding cell's
// Data (same line, or the last column of the previous line if the cursor is
// at column 0), normalizing the result to NFC.
func (sc *Screen) combine(r rune) {
	y, x := sc.cursor.Y, sc.cursor.X-1
	if x < 0 {
		if sc.cursor.Y == 0 {
			return
		}
		y = sc.cursor.Y - 1
		x = sc.columns - 1
	}
	def := sc.lineDefault(y)
	prev := sc.buffer.CharAt(y, x, def)
	composed := norm.NFC.String(prev.Data + string(r))
	sc.setChar(y, x, prev.Replace(WithData(composed)))
	sc.markDirty(y)
}

// --- Basic C0 events ---

func (sc *Screen) Bell() {}

func (sc *Screen) Backspace() {
	if sc.cursor.X > 0 {
		sc.cursor.X--
	}
}

func (sc *Screen) CarriageReturn() { sc.cursor.X = 0 }

func (sc *Screen) ShiftOut() { sc.charset = 1 }
func (sc *Screen) ShiftIn()  { sc.charset = 0 }

func (sc *Screen) Tab(count int) {
	count = positive(count)
	for i := 0; i < count; i++ {
		next := -1
		for x := sc.cursor.X + 1; x < sc.columns; x++ {
			if _, ok := sc.tabstops[x]; ok {
				next = x
				break
			}
		}
		if next == -1 {
			sc.cursor.X = sc.columns - 1
			return
		}
		sc.cursor.X = next
	}
}

func (sc *Screen) SetTabStop() { sc.tabstops[sc.cursor.X] = struct{}{} }

func (sc *Screen) ClearTabStop(how int) {
	switch how {
	case 0:
		delete(sc.tabstops, sc.cursor.X)
	case 3:
		sc.tabstops = make(map[int]struct{})
	}
}

// --- Escape events ---

func (sc *Screen) Index() {
	top, bottom := sc.effectiveMargins()
	if sc.cursor.Y == bottom {
		sc.buffer.ShiftUp(top, bottom)
		sc.markAllDirty()
	} else {
		sc.CursorDown(1)
	}
}

func (sc *Screen) ReverseIndex() {
	top, bottom := sc.effectiveMargins()
	if sc.cursor.Y == top {
		sc.buffer.ShiftDown(top, bottom)
		sc.markAllDirty()
	} else {
		sc.CursorUp(1)
	}
}

func (sc *Screen) Linefeed() {
	sc.Index()
	if sc.modes.Has(ModeLNM) {
		sc.CarriageReturn()
	}
}

func (sc *Screen) SaveCursor() {
	sc.savepoints = append(sc.savepoints, Savepoint{
		Cursor:       sc.cursor,
		G0Charset:    sc.g0Charset,
		G1Charset:    sc.g1Charset,
		CharsetIndex: sc.charset,
		OriginMode:   sc.modes.Has(ModeDECOM),
		AutowrapMode: sc.modes.Has(ModeDECAWM),
	})
}

func (sc *Screen) RestoreCursor() {
	if len(sc.savepoints) == 0 {
		sc.modes.Reset(ModeDECOM)
		sc.cursor.X, sc.cursor.Y = 0, 0
		return
	}
	n := len(sc.savepoints) - 1
	sp := sc.savepoints[n]
	sc.savepoints = sc.savepoints[:n]

	sc.cursor = sp.Cursor
	sc.g0Charset = sp.G0Charset
	sc.g1Charset = sp.G1Charset
	sc.charset = sp.CharsetIndex
	if sp.OriginMode {
		sc.modes.Set(ModeDECOM)
	} else {
		sc.modes.Reset(ModeDECOM)
	}
	if sp.AutowrapMode {
		sc.modes.Set(ModeDECAWM)
	} else {
		sc.modes.Reset(ModeDECAWM)
	}
}

func (sc *Screen) AlignmentDisplay() {
	for y := 0; y < sc.lines; y++ {
		for x := 0; x < sc.columns; x++ {
			sc.setChar(y, x, Char{Data: "E", Fg: ColorDefault, Bg: ColorDefault})
		}
		sc.markDirty(y)
	}
}

// --- Cursor movement ---

func (sc *Screen) CursorUp(count int) {
	top, _ := sc.effectiveMargins()
	sc.cursor.Y = maxInt(top, sc.cursor.Y-positive(count))
}

func (sc *Screen) CursorDown(count int) {
	_, bottom := sc.effectiveMargins()
	sc.cursor.Y = minInt(bottom, sc.cursor.Y+positive(count))
}

func (sc *Screen) CursorForward(count int) {
	sc.cursor.X = clampInt(sc.cursor.X+positive(count), 0, sc.columns-1)
}

func (sc *Screen) CursorBack(count int) {
	n := positive(count)
	if sc.cursor.X == sc.columns {
		n++
	}
	sc.cursor.X = maxInt(0, sc.cursor.X-n)
}

func (sc *Screen) CursorDown1(count int) {
	sc.CursorDown(count)
	sc.CarriageReturn()
}

func (sc *Screen) CursorUp1(count int) {
	sc.CursorUp(count)
	sc.CarriageReturn()
}

func (sc *Screen) CursorToColumn(column int) {
	if column <= 0 {
		column = 1
	}
	sc.cursor.X = clampInt(column-1, 0, sc.columns-1)
}

func (sc *Screen) CursorToLine(line int) {
	if line <= 0 {
		line = 1
	}
	top, bottom := sc.effectiveMargins()
	y := line - 1
	if sc.modes.Has(ModeDECOM) {
		y += top
		if y < top || y > bottom {
			return
		}
	}
	sc.cursor.Y = clampInt(y, 0, sc.lines-1)
}

func (sc *Screen) CursorPosition(line, column int) {
	if line <= 0 {
		line = 1
	}
	if column <= 0 {
		column = 1
	}
	top, bottom := sc.effectiveMargins()
	y := line - 1
	if sc.modes.Has(ModeDECOM) {
		y += top
		if y < top || y > bottom {
			return
		}
	}
	sc.cursor.Y = clampInt(y, 0, sc.lines-1)
	sc.cursor.X = clampInt(column-1, 0, sc.columns-1)
}

// --- Insert/delete/erase ---

func (sc *Screen) InsertCharacters(n int) {
	n = positive(n)
	y := sc.cursor.Y
	line := sc.buffer.GetOrCreate(y, sc.lineDefault(y))
	blank := sc.cursor.Attrs.Replace(WithData(" "))
	for x := sc.columns - 1; x >= sc.cursor.X; x-- {
		src := x - n
		if src >= sc.cursor.X {
			line.Set(x, line.Get(src))
		} else {
			line.Set(x, blank)
		}
	}
	sc.markDirty(y)
}

func (sc *Screen) DeleteCharacters(n int) {
	n = positive(n)
	y := sc.cursor.Y
	line := sc.buffer.GetOrCreate(y, sc.lineDefault(y))
	blank := sc.cursor.Attrs.Replace(WithData(" "))
	for x := sc.cursor.X; x < sc.columns; x++ {
		src := x + n
		if src < sc.columns {
			line.Set(x, line.Get(src))
		} else {
			line.Set(x, blank)
		}
	}
	sc.markDirty(y)
}

func (sc *Screen) EraseCharacters(n int) {
	n = positive(n)
	hi := minInt(sc.cursor.X+n-1, sc.columns-1)
	sc.eraseLineRange(sc.cursor.Y, sc.cursor.X, hi)
}

func (sc *Screen) eraseLineRange(y, lo, hi int) {
	if y < 0 || y >= sc.lines || lo > hi {
		return
	}
	blank := sc.cursor.Attrs.Replace(WithData(" "))
	for x := lo; x <= hi; x++ {
		sc.setChar(y, x, blank)
	}
	sc.markDirty(y)
}

func (sc *Screen) EraseInLine(how int) {
	switch how {
	case 0:
		sc.eraseLineRange(sc.cursor.Y, sc.cursor.X, sc.columns-1)
	case 1:
		sc.eraseLineRange(sc.cursor.Y, 0, sc.cursor.X)
	default:
		sc.eraseLineRange(sc.cursor.Y, 0, sc.columns-1)
	}
}

func (sc *Screen) EraseInDisplay(how int) {
	switch how {
	case 0:
		sc.eraseLineRange(sc.cursor.Y, sc.cursor.X, sc.columns-1)
		for y := sc.cursor.Y + 1; y < sc.lines; y++ {
			sc.eraseLineRange(y, 0, sc.columns-1)
		}
	case 1:
		for y := 0; y < sc.cursor.Y; y++ {
			sc.eraseLineRange(y, 0, sc.columns-1)
		}
		sc.eraseLineRange(sc.cursor.Y, 0, sc.cursor.X)
	default:
		for y := 0; y < sc.lines; y++ {
			sc.eraseLineRange(y, 0, sc.columns-1)
		}
	}
}

func (sc *Screen) InsertLines(n int) {
	top, bottom := sc.effectiveMargins()
	if sc.cursor.Y < top || sc.cursor.Y > bottom {
		return
	}
	n = minInt(positive(n), bottom-sc.cursor.Y+1)
	for i := 0; i < n; i++ {
		sc.buffer.ShiftDown(sc.cursor.Y, bottom)
	}
	sc.markAllDirty()
}

func (sc *Screen) DeleteLines(n int) {
	top, bottom := sc.effectiveMargins()
	if sc.cursor.Y < top || sc.cursor.Y > bottom {
		return
	}
	n = minInt(positive(n), bottom-sc.cursor.Y+1)
	for i := 0; i < n; i++ {
		sc.buffer.ShiftUp(sc.cursor.Y, bottom)
	}
	sc.markAllDirty()
}

// --- Modes ---

func resolveMode(raw int, private bool) Mode {
	if private {
		return privateMode(raw)
	}
	return Mode(raw)
}

func (sc *Screen) SetMode(private bool, modes ...int) {
	for _, m := range modes {
		mode := resolveMode(m, private)
		sc.modes.Set(mode)
		sc.applySetSideEffect(mode)
	}
}

func (sc *Screen) ResetMode(private bool, modes ...int) {
	for _, m := range modes {
		mode := resolveMode(m, private)
		sc.modes.Reset(mode)
		sc.applyResetSideEffect(mode)
	}
}

func (sc *Screen) applySetSideEffect(mode Mode) {
	switch mode {
	case ModeDECCOLM:
		sc.savedColumns = sc.columns
		sc.Resize(sc.lines, 132)
		sc.EraseInDisplay(2)
		sc.CursorPosition(1, 1)
	case ModeDECOM:
		sc.CursorPosition(1, 1)
	case ModeDECSCNM:
		sc.applyReverseVideo(true)
	case ModeDECTCEM:
		sc.cursor.Hidden = false
	}
}

func (sc *Screen) applyResetSideEffect(mode Mode) {
	switch mode {
	case ModeDECCOLM:
		cols := 80
		if sc.savedColumns > 0 {
			cols = sc.savedColumns
		}
		sc.Resize(sc.lines, cols)
		sc.EraseInDisplay(2)
		sc.CursorPosition(1, 1)
	case ModeDECOM:
		sc.CursorPosition(1, 1)
	case ModeDECSCNM:
		sc.applyReverseVideo(false)
	case ModeDECTCEM:
		sc.cursor.Hidden = true
	}
}

func (sc *Screen) applyReverseVideo(enabled bool) {
	for y, line := range sc.buffer {
		line.Default = line.Default.Replace(WithReverse(enabled))
		for _, x := range line.Columns() {
			line.Set(x, line.Get(x).Replace(WithReverse(enabled)))
		}
		sc.markDirty(y)
	}
	sc.cursor.Attrs = sc.cursor.Attrs.Replace(WithReverse(enabled))
}

// --- SGR ---

func (sc *Screen) SelectGraphicRendition(attrs []int) {
	if len(attrs) == 0 || (len(attrs) == 1 && attrs[0] == 0) {
		sc.cursor.Attrs = sc.defaultChar()
		return
	}

	i := 0
	for i < len(attrs) {
		code := attrs[i]
		switch {
		case code == 0:
			sc.cursor.Attrs = sc.defaultChar()
		case code == 1:
			sc.cursor.Attrs.Bold = true
		case code == 3:
			sc.cursor.Attrs.Italics = true
		case code == 4:
			sc.cursor.Attrs.Underscore = true
		case code == 5:
			sc.cursor.Attrs.Blink = true
		case code == 7:
			sc.cursor.Attrs.Reverse = true
		case code == 9:
			sc.cursor.Attrs.Strikethrough = true
		case code == 22:
			sc.cursor.Attrs.Bold = false
		case code == 23:
			sc.cursor.Attrs.Italics = false
		case code == 24:
			sc.cursor.Attrs.Underscore = false
		case code == 25:
			sc.cursor.Attrs.Blink = false
		case code == 27:
			sc.cursor.Attrs.Reverse = false
		case code == 29:
			sc.cursor.Attrs.Strikethrough = false
		case code >= 30 && code <= 37:
			sc.cursor.Attrs.Fg = NamedColor(code - 30)
		case code == 39:
			sc.cursor.Attrs.Fg = ColorDefault
		case code >= 40 && code <= 47:
			sc.cursor.Attrs.Bg = NamedColor(code - 40)
		case code == 49:
			sc.cursor.Attrs.Bg = ColorDefault
		case code >= 90 && code <= 97:
			sc.cursor.Attrs.Fg = NamedColor(8 + code - 90)
		case code >= 100 && code <= 107:
			sc.cursor.Attrs.Bg = NamedColor(8 + code - 100)
		case code == 38 || code == 48:
			consumed, color, ok := parseExtendedColor(attrs[i+1:])
			if !ok {
				return
			}
			if code == 38 {
				sc.cursor.Attrs.Fg = color
			} else {
				sc.cursor.Attrs.Bg = color
			}
			i += consumed
		}
		i++
	}
}

func parseExtendedColor(rest []int) (consumed int, color Color, ok bool) {
	if len(rest) == 0 {
		return 0, "", false
	}
	switch rest[0] {
	case 5:
		if len(rest) < 2 {
			return 0, "", false
		}
		return 2, IndexedColor(rest[1]), true
	case 2:
		if len(rest) < 4 {
			return 0, "", false
		}
		return 4, RGBColor(uint8(rest[1]), uint8(rest[2]), uint8(rest[3])), true
	default:
		return 0, "", false
	}
}

// --- Margins ---

func (sc *Screen) SetMargins(top, bottom int) {
	if top <= 0 {
		top = 1
	}
	if bottom <= 0 {
		bottom = sc.lines
	}
	t, b := top-1, bottom-1
	if t < 0 {
		t = 0
	}
	if b > sc.lines-1 {
		b = sc.lines - 1
	}
	if t >= b {
		return
	}
	sc.margins = &Margins{Top: t, Bottom: b}
}

// --- Charsets ---

func (sc *Screen) DefineCharset(code string, mode byte) {
	id, ok := DefineCharset(code)
	if !ok {
		sc.logger.Debug("vtterm: unsupported charset designator ignored", "code", code)
		return
	}
	if mode == 0 {
		sc.g0Charset = id
	} else {
		sc.g1Charset = id
	}
}

// --- Title/icon ---

func (sc *Screen) SetTitle(title string)    { sc.title = title }
func (sc *Screen) SetIconName(name string)  { sc.iconName = name }

// --- Device reports ---

func (sc *Screen) ReportDeviceAttributes(mode int, private bool) {
	if mode == 0 && !private {
		sc.WriteProcessInput("\x1b[?6c")
	}
}

func (sc *Screen) ReportDeviceStatus(mode int) {
	switch mode {
	case 5:
		sc.WriteProcessInput("\x1b[0n")
	case 6:
		top, _ := sc.effectiveMargins()
		y := sc.cursor.Y + 1
		if sc.modes.Has(ModeDECOM) {
			y -= top
		}
		sc.WriteProcessInput(fmt.Sprintf("\x1b[%d;%dR", y, sc.cursor.X+1))
	}
}

// WriteProcessInput sends data to the configured ResponseWriter, if any.
func (sc *Screen) WriteProcessInput(data string) {
	if sc.response != nil {
		sc.response.Write([]byte(data))
	}
}

// --- Debug (unknown sequences) ---

// Debug is the default no-op handler for sequences Stream could not
// recognize.
func (sc *Screen) Debug(event string, args []int, text string) {
	sc.logger.Debug("vtterm: unrecognized sequence", "event", event, "args", args, "text", text)
}

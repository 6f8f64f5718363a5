package vtterm

import "math"

// History is the scrollback state HistoryScreen adds on top of Screen: two
// bounded deques of lines that scrolled off the top or bottom edge, a ratio
// controlling how many lines a single page move shifts, a total size (the
// capacity of each deque), and the current position. Invariant: 0 <= position
// <= size; position == size means the live screen is at the bottom edge.
type History struct {
	top, bottom []*Line
	size        int
	ratio       float64
	position    int
}

func newHistory(size int, ratio float64) History {
	if size <= 0 {
		size = 100
	}
	if ratio <= 0 {
		ratio = 0.5
	}
	return History{size: size, ratio: ratio, position: size}
}

func (h *History) pushTop(l *Line) {
	h.top = append(h.top, l)
	if len(h.top) > h.size {
		h.top = h.top[len(h.top)-h.size:]
	}
}

func (h *History) pushBottom(l *Line) {
	h.bottom = append(h.bottom, l)
	if len(h.bottom) > h.size {
		h.bottom = h.bottom[len(h.bottom)-h.size:]
	}
}

// Size returns the capacity of each deque.
func (h History) Size() int { return h.size }

// Ratio returns the fraction of a screen height a single page move shifts.
func (h History) Ratio() float64 { return h.ratio }

// Position returns the current scroll position (size == at the live bottom).
func (h History) Position() int { return h.position }

// HistoryScreen wraps Screen with scrollback: a fixed set of events (every
// Screen event plus NextPage/PrevPage) runs through a before/after hook that
// keeps the view synced to the live bottom and keeps cursor visibility
// consistent with the current scroll position.
type HistoryScreen struct {
	*Screen
	history History
}

// NewHistoryScreen constructs a HistoryScreen. size bounds the scrollback
// depth (default 100 if <= 0); ratio controls how many lines a page move
// shifts, as a fraction of the screen height (default 0.5 if <= 0).
func NewHistoryScreen(lines, columns, size int, ratio float64, opts ...Option) *HistoryScreen {
	return &HistoryScreen{
		Screen:  NewScreen(lines, columns, opts...),
		history: newHistory(size, ratio),
	}
}

var _ Listener = (*HistoryScreen)(nil)

func ceilLines(lines int, ratio float64) int {
	n := int(math.Ceil(float64(lines) * ratio))
	if n < 1 {
		n = 1
	}
	return n
}

func (hs *HistoryScreen) lineAt(y int) *Line {
	return hs.buffer.GetOrCreate(y, hs.lineDefault(y))
}

func (hs *HistoryScreen) setLine(y int, l *Line) {
	hs.buffer[y] = l
}

func (hs *HistoryScreen) beforeEvent(pageMove bool) {
	if pageMove {
		return
	}
	for hs.history.position < hs.history.size {
		before := hs.history.position
		hs.NextPage()
		if hs.history.position == before {
			break
		}
	}
}

func (hs *HistoryScreen) afterEvent(pageMove bool) {
	if pageMove {
		hs.clipOverflowColumns()
	}
	hs.cursor.Hidden = !(hs.history.position == hs.history.size && hs.modes.Has(ModeDECTCEM))
}

func (hs *HistoryScreen) clipOverflowColumns() {
	clip := func(l *Line) {
		for _, x := range l.Columns() {
			if x >= hs.columns {
				l.Delete(x)
			}
		}
	}
	for _, l := range hs.buffer {
		clip(l)
	}
	for _, l := range hs.history.top {
		clip(l)
	}
	for _, l := range hs.history.bottom {
		clip(l)
	}
}

func (hs *HistoryScreen) wrap(fn func()) {
	hs.beforeEvent(false)
	fn()
	hs.afterEvent(false)
}

// History returns the current scrollback state.
func (hs *HistoryScreen) History() History { return hs.history }

// --- Overridden events ---

func (hs *HistoryScreen) Reset() {
	hs.beforeEvent(false)
	hs.Screen.Reset()
	hs.resetHistory()
	hs.afterEvent(false)
}

func (hs *HistoryScreen) resetHistory() {
	hs.history.top = hs.history.top[:0]
	hs.history.bottom = hs.history.bottom[:0]
	hs.history.position = hs.history.size
}

func (hs *HistoryScreen) EraseInDisplay(how int) {
	hs.beforeEvent(false)
	hs.Screen.EraseInDisplay(how)
	if how == 3 {
		hs.resetHistory()
	}
	hs.afterEvent(false)
}

func (hs *HistoryScreen) Index() {
	hs.beforeEvent(false)
	top, bottom := hs.effectiveMargins()
	if hs.cursor.Y == bottom {
		hs.history.pushTop(hs.lineAt(top))
	}
	hs.Screen.Index()
	hs.afterEvent(false)
}

func (hs *HistoryScreen) ReverseIndex() {
	hs.beforeEvent(false)
	top, bottom := hs.effectiveMargins()
	if hs.cursor.Y == top {
		hs.history.pushBottom(hs.lineAt(bottom))
	}
	hs.Screen.ReverseIndex()
	hs.afterEvent(false)
}

// Linefeed is reimplemented rather than forwarded to Screen.Linefeed: that
// method calls its own Index internally, which would bypass the scrollback
// capture in HistoryScreen's override above.
func (hs *HistoryScreen) Linefeed() {
	hs.wrap(func() {
		hs.Index()
		if hs.modes.Has(ModeLNM) {
			hs.CarriageReturn()
		}
	})
}

// --- Pagination ---

// PrevPage scrolls the view back (toward older content) by roughly
// lines*ratio rows, clamped to the available top-deque history.
func (hs *HistoryScreen) PrevPage() {
	hs.beforeEvent(true)
	defer hs.afterEvent(true)

	if len(hs.history.top) == 0 {
		return
	}
	mid := minInt(len(hs.history.top), ceilLines(hs.lines, hs.history.ratio))
	if mid == 0 {
		return
	}

	for y := hs.lines - 1; y >= hs.lines-mid; y-- {
		hs.history.pushBottom(hs.lineAt(y))
	}
	for y := hs.lines - 1; y >= mid; y-- {
		hs.setLine(y, hs.lineAt(y-mid))
	}
	for y := mid - 1; y >= 0; y-- {
		n := len(hs.history.top)
		l := hs.history.top[n-1]
		hs.history.top = hs.history.top[:n-1]
		hs.setLine(y, l)
	}

	hs.history.position -= mid
	hs.markAllDirty()
}

// NextPage scrolls the view forward (toward the live bottom) by roughly
// lines*ratio rows, clamped to the available bottom-deque history and to the
// distance left to the live bottom (position never exceeds size).
func (hs *HistoryScreen) NextPage() {
	hs.beforeEvent(true)
	defer hs.afterEvent(true)

	if len(hs.history.bottom) == 0 {
		return
	}
	mid := minInt(len(hs.history.bottom), ceilLines(hs.lines, hs.history.ratio))
	mid = minInt(mid, hs.history.size-hs.history.position)
	if mid == 0 {
		return
	}

	for y := 0; y < mid; y++ {
		hs.history.pushTop(hs.lineAt(y))
	}
	for y := 0; y < hs.lines-mid; y++ {
		hs.setLine(y, hs.lineAt(y+mid))
	}
	for y := hs.lines - mid; y < hs.lines; y++ {
		n := len(hs.history.bottom)
		l := hs.history.bottom[n-1]
		hs.history.bottom = hs.history.bottom[:n-1]
		hs.setLine(y, l)
	}

	hs.history.position += mid
	hs.markAllDirty()
}

// --- Forwarded events (before/after-wrapped, no scrollback-specific logic) ---

func (hs *HistoryScreen) Bell()           { hs.wrap(hs.Screen.Bell) }
func (hs *HistoryScreen) Backspace()      { hs.wrap(hs.Screen.Backspace) }
func (hs *HistoryScreen) Tab(count int)   { hs.wrap(func() { hs.Screen.Tab(count) }) }
func (hs *HistoryScreen) CarriageReturn() { hs.wrap(hs.Screen.CarriageReturn) }
func (hs *HistoryScreen) ShiftOut()       { hs.wrap(hs.Screen.ShiftOut) }
func (hs *HistoryScreen) ShiftIn()        { hs.wrap(hs.Screen.ShiftIn) }

func (hs *HistoryScreen) SetTabStop()    { hs.wrap(hs.Screen.SetTabStop) }
func (hs *HistoryScreen) SaveCursor()    { hs.wrap(hs.Screen.SaveCursor) }
func (hs *HistoryScreen) RestoreCursor() { hs.wrap(hs.Screen.RestoreCursor) }

func (hs *HistoryScreen) AlignmentDisplay() { hs.wrap(hs.Screen.AlignmentDisplay) }

func (hs *HistoryScreen) InsertCharacters(count int) {
	hs.wrap(func() { hs.Screen.InsertCharacters(count) })
}
func (hs *HistoryScreen) CursorUp(count int)      { hs.wrap(func() { hs.Screen.CursorUp(count) }) }
func (hs *HistoryScreen) CursorDown(count int)    { hs.wrap(func() { hs.Screen.CursorDown(count) }) }
func (hs *HistoryScreen) CursorForward(count int) { hs.wrap(func() { hs.Screen.CursorForward(count) }) }
func (hs *HistoryScreen) CursorBack(count int)    { hs.wrap(func() { hs.Screen.CursorBack(count) }) }
func (hs *HistoryScreen) CursorDown1(count int)   { hs.wrap(func() { hs.Screen.CursorDown1(count) }) }
func (hs *HistoryScreen) CursorUp1(count int)     { hs.wrap(func() { hs.Screen.CursorUp1(count) }) }
func (hs *HistoryScreen) CursorToColumn(column int) {
	hs.wrap(func() { hs.Screen.CursorToColumn(column) })
}
func (hs *HistoryScreen) CursorPosition(line, column int) {
	hs.wrap(func() { hs.Screen.CursorPosition(line, column) })
}

func (hs *HistoryScreen) EraseInLine(how int) { hs.wrap(func() { hs.Screen.EraseInLine(how) }) }
func (hs *HistoryScreen) InsertLines(count int) {
	hs.wrap(func() { hs.Screen.InsertLines(count) })
}
func (hs *HistoryScreen) DeleteLines(count int) {
	hs.wrap(func() { hs.Screen.DeleteLines(count) })
}
func (hs *HistoryScreen) DeleteCharacters(count int) {
	hs.wrap(func() { hs.Screen.DeleteCharacters(count) })
}
func (hs *HistoryScreen) EraseCharacters(count int) {
	hs.wrap(func() { hs.Screen.EraseCharacters(count) })
}
func (hs *HistoryScreen) ReportDeviceAttributes(mode int, private bool) {
	hs.wrap(func() { hs.Screen.ReportDeviceAttributes(mode, private) })
}
func (hs *HistoryScreen) CursorToLine(line int) { hs.wrap(func() { hs.Screen.CursorToLine(line) }) }
func (hs *HistoryScreen) ClearTabStop(how int)  { hs.wrap(func() { hs.Screen.ClearTabStop(how) }) }
func (hs *HistoryScreen) SetMode(private bool, modes ...int) {
	hs.wrap(func() { hs.Screen.SetMode(private, modes...) })
}
func (hs *HistoryScreen) ResetMode(private bool, modes ...int) {
	hs.wrap(func() { hs.Screen.ResetMode(private, modes...) })
}
func (hs *HistoryScreen) SelectGraphicRendition(attrs []int) {
	hs.wrap(func() { hs.Screen.SelectGraphicRendition(attrs) })
}
func (hs *HistoryScreen) ReportDeviceStatus(mode int) {
	hs.wrap(func() { hs.Screen.ReportDeviceStatus(mode) })
}
func (hs *HistoryScreen) SetMargins(top, bottom int) {
	hs.wrap(func() { hs.Screen.SetMargins(top, bottom) })
}

func (hs *HistoryScreen) Draw(text string) { hs.wrap(func() { hs.Screen.Draw(text) }) }
func (hs *HistoryScreen) Debug(event string, args []int, text string) {
	hs.wrap(func() { hs.Screen.Debug(event, args, text) })
}
func (hs *HistoryScreen) DefineCharset(code string, mode byte) {
	hs.wrap(func() { hs.Screen.DefineCharset(code, mode) })
}
func (hs *HistoryScreen) SetTitle(title string)   { hs.wrap(func() { hs.Screen.SetTitle(title) }) }
func (hs *HistoryScreen) SetIconName(name string) { hs.wrap(func() { hs.Screen.SetIconName(name) }) }

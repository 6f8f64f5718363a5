package vtterm

// Line is a sparse column->Char map for one screen row, plus the default
// Char returned for any column that was never explicitly written. The
// default normally equals the screen's current default_char (which depends
// on reverse-video screen mode at the time the line was created or last
// rewritten), never the zero Char.
type Line struct {
	cells   map[int]Char
	Default Char
}

// newLine returns an empty line whose unwritten columns read back as def.
func newLine(def Char) *Line {
	return &Line{cells: make(map[int]Char), Default: def}
}

// Get returns the Char at column x, or Default if x was never written.
// Reading an absent column never inserts an entry.
func (l *Line) Get(x int) Char {
	if c, ok := l.cells[x]; ok {
		return c
	}
	return l.Default
}

// Set writes the Char at column x.
func (l *Line) Set(x int, c Char) {
	l.cells[x] = c
}

// Delete removes any explicit entry at column x, so it reads back as Default.
func (l *Line) Delete(x int) {
	delete(l.cells, x)
}

// Columns returns the explicitly-written column indexes, in no particular
// order. Used by rewrite passes (DECSCNM) and by resize's column clipping.
func (l *Line) Columns() []int {
	cols := make([]int, 0, len(l.cells))
	for x := range l.cells {
		cols = append(cols, x)
	}
	return cols
}

// Margins is a scrolling-region boundary pair. A nil *Margins means the
// scrolling region is the whole screen.
type Margins struct {
	Top, Bottom int
}

// Buffer is a sparse line-index -> Line map. Missing line indexes read as
// fully-default lines; writing is always explicit.
type Buffer map[int]*Line

// NewBuffer returns an empty buffer.
func NewBuffer() Buffer {
	return make(Buffer)
}

// Get returns the line at y, or nil if y has never been touched.
func (b Buffer) Get(y int) *Line {
	return b[y]
}

// GetOrCreate returns the line at y, creating it (with the given default
// Char) if absent.
func (b Buffer) GetOrCreate(y int, def Char) *Line {
	if l, ok := b[y]; ok {
		return l
	}
	l := newLine(def)
	b[y] = l
	return l
}

// CharAt reads the Char at (y, x), returning def if the line itself is
// absent.
func (b Buffer) CharAt(y, x int, def Char) Char {
	l := b.Get(y)
	if l == nil {
		return def
	}
	return l.Get(x)
}

// DeleteLine removes line y entirely.
func (b Buffer) DeleteLine(y int) {
	delete(b, y)
}

// ShiftUp moves every line in [top+1, bottom] up by one (buffer[y] =
// buffer[y+1]) and leaves bottom empty. This is the scroll-up primitive
// behind index-at-bottom-margin and delete_lines. It returns the Line that
// left the buffer at top (nil if top was already absent), for callers that
// maintain scrollback.
func (b Buffer) ShiftUp(top, bottom int) *Line {
	leaving := b.Get(top)
	for y := top; y < bottom; y++ {
		if l, ok := b[y+1]; ok {
			b[y] = l
		} else {
			delete(b, y)
		}
	}
	delete(b, bottom)
	return leaving
}

// ShiftDown moves every line in [top, bottom-1] down by one (buffer[y] =
// buffer[y-1]) and leaves top empty. It returns the Line that left the
// buffer at bottom (nil if bottom was already absent).
func (b Buffer) ShiftDown(top, bottom int) *Line {
	leaving := b.Get(bottom)
	for y := bottom; y > top; y-- {
		if l, ok := b[y-1]; ok {
			b[y] = l
		} else {
			delete(b, y)
		}
	}
	delete(b, top)
	return leaving
}

// Resize clips the buffer after a line/column count change: lines are
// clipped from the top (the oldest rows are dropped first, keeping content
// near the cursor at the bottom) and columns are clipped from the right.
func (b Buffer) Resize(oldLines, newLines, newColumns int) {
	if newLines < oldLines {
		shift := oldLines - newLines
		for y := shift; y < oldLines; y++ {
			if l, ok := b[y]; ok {
				b[y-shift] = l
			} else {
				delete(b, y-shift)
			}
		}
		for y := newLines; y < oldLines; y++ {
			delete(b, y)
		}
	}
	for y, l := range b {
		if y >= newLines {
			delete(b, y)
			continue
		}
		for _, x := range l.Columns() {
			if x >= newColumns {
				l.Delete(x)
			}
		}
	}
}

package vtterm

import "testing"

func TestLineSparseDefault(t *testing.T) {
	def := Char{Data: "."}
	l := newLine(def)

	if got := l.Get(5); got != def {
		t.Errorf("Get on untouched column = %+v, want default %+v", got, def)
	}
	l.Set(5, Char{Data: "x"})
	if got := l.Get(5); got.Data != "x" {
		t.Errorf("Get(5) after Set = %+v", got)
	}
	l.Delete(5)
	if got := l.Get(5); got != def {
		t.Errorf("Get(5) after Delete = %+v, want default", got)
	}
}

func TestLineColumns(t *testing.T) {
	l := newLine(DefaultChar)
	l.Set(1, Char{Data: "a"})
	l.Set(3, Char{Data: "b"})
	cols := l.Columns()
	if len(cols) != 2 {
		t.Fatalf("Columns() = %v, want 2 entries", cols)
	}
}

func TestBufferCharAtAbsentLine(t *testing.T) {
	b := NewBuffer()
	def := Char{Data: "."}
	if got := b.CharAt(3, 3, def); got != def {
		t.Errorf("CharAt on untouched line = %+v, want default %+v", got, def)
	}
}

func TestBufferGetOrCreate(t *testing.T) {
	b := NewBuffer()
	l1 := b.GetOrCreate(2, DefaultChar)
	l2 := b.GetOrCreate(2, DefaultChar)
	if l1 != l2 {
		t.Error("GetOrCreate should return the same Line on repeated calls")
	}
}

func TestBufferShiftUp(t *testing.T) {
	b := NewBuffer()
	top := b.GetOrCreate(0, DefaultChar)
	top.Set(0, Char{Data: "top"})
	b.GetOrCreate(1, DefaultChar).Set(0, Char{Data: "mid"})
	bottom := b.GetOrCreate(2, DefaultChar)
	bottom.Set(0, Char{Data: "bot"})

	leaving := b.ShiftUp(0, 2)
	if leaving != top {
		t.Error("ShiftUp should return the line that left at top")
	}
	if got := b.Get(0).Get(0).Data; got != "mid" {
		t.Errorf("buffer[0] after ShiftUp = %q, want mid", got)
	}
	if got := b.Get(1).Get(0).Data; got != "bot" {
		t.Errorf("buffer[1] after ShiftUp = %q, want bot", got)
	}
	if b.Get(2) != nil {
		t.Error("buffer[2] should be dropped after ShiftUp")
	}
}

func TestBufferShiftDown(t *testing.T) {
	b := NewBuffer()
	b.GetOrCreate(0, DefaultChar).Set(0, Char{Data: "top"})
	b.GetOrCreate(1, DefaultChar).Set(0, Char{Data: "mid"})
	bottom := b.GetOrCreate(2, DefaultChar)
	bottom.Set(0, Char{Data: "bot"})

	leaving := b.ShiftDown(0, 2)
	if leaving != bottom {
		t.Error("ShiftDown should return the line that left at bottom")
	}
	if got := b.Get(2).Get(0).Data; got != "mid" {
		t.Errorf("buffer[2] after ShiftDown = %q, want mid", got)
	}
	if got := b.Get(1).Get(0).Data; got != "top" {
		t.Errorf("buffer[1] after ShiftDown = %q, want top", got)
	}
	if b.Get(0) != nil {
		t.Error("buffer[0] should be dropped after ShiftDown")
	}
}

func TestBufferResizeClipsTopAndRight(t *testing.T) {
	b := NewBuffer()
	for y := 0; y < 5; y++ {
		l := b.GetOrCreate(y, DefaultChar)
		l.Set(0, Char{Data: "a"})
		l.Set(9, Char{Data: "b"})
	}

	b.Resize(5, 3, 5)

	if b.Get(4) != nil {
		t.Error("line 4 should have been dropped by top clip")
	}
	for y := 0; y < 3; y++ {
		if b.Get(y) == nil {
			t.Errorf("line %d should survive resize", y)
		}
	}
	if got := b.Get(0).Get(9); got != DefaultChar {
		t.Errorf("column 9 should have been clipped, got %+v", got)
	}
}

package vtterm

import "testing"

func TestHistoryScrollsOffTopIntoTopDeque(t *testing.T) {
	hs := NewHistoryScreen(3, 5, 10, 0.5)
	hs.Draw("aaaaa")
	hs.CarriageReturn()
	hs.Linefeed()
	hs.Draw("bbbbb")
	hs.CarriageReturn()
	hs.Linefeed()
	hs.Draw("ccccc")
	hs.CarriageReturn()
	hs.Linefeed() // scrolls: "aaaaa" leaves the top

	if got := len(hs.History().top); got != 1 {
		t.Fatalf("history.top length = %d, want 1", got)
	}
	if got := hs.History().top[0].Get(0).Data; got != "a" {
		t.Errorf("history.top[0] col0 = %q, want a", got)
	}
}

func TestHistoryPrevPageThenNextPageRoundTrips(t *testing.T) {
	hs := NewHistoryScreen(3, 5, 20, 1.0)
	lines := []string{"aaaaa", "bbbbb", "ccccc", "ddddd", "eeeee", "fffff"}
	for _, l := range lines {
		hs.Draw(l)
		hs.CarriageReturn()
		hs.Linefeed()
	}

	before := append([]string(nil), hs.Display()...)

	hs.PrevPage()
	if hs.Display()[0] == before[0] {
		t.Fatal("PrevPage should have changed the visible buffer")
	}

	hs.NextPage()
	after := hs.Display()
	for i := range before {
		if after[i] != before[i] {
			t.Errorf("after PrevPage+NextPage, line %d = %q, want %q", i, after[i], before[i])
		}
	}
}

func TestHistoryPositionInvariant(t *testing.T) {
	hs := NewHistoryScreen(3, 5, 20, 0.5)
	for i := 0; i < 10; i++ {
		hs.Draw("x")
		hs.CarriageReturn()
		hs.Linefeed()
	}
	if hs.History().Position() != hs.History().Size() {
		t.Errorf("position = %d, want size %d (at live bottom)", hs.History().Position(), hs.History().Size())
	}

	hs.PrevPage()
	if p := hs.History().Position(); p < 0 || p > hs.History().Size() {
		t.Errorf("position = %d, want within [0, size]", p)
	}
	if hs.History().Position() == hs.History().Size() {
		t.Error("expected position < size after PrevPage")
	}
}

func TestHistoryResetClearsScrollback(t *testing.T) {
	hs := NewHistoryScreen(3, 5, 20, 0.5)
	for i := 0; i < 10; i++ {
		hs.Draw("x")
		hs.CarriageReturn()
		hs.Linefeed()
	}
	if len(hs.History().top) == 0 {
		t.Fatal("expected scrollback to be populated before reset")
	}
	hs.Reset()
	if len(hs.History().top) != 0 || len(hs.History().bottom) != 0 {
		t.Error("Reset should clear both history deques")
	}
	if hs.History().Position() != hs.History().Size() {
		t.Error("Reset should set position back to size")
	}
}

func TestHistoryEraseInDisplay3ClearsScrollback(t *testing.T) {
	hs := NewHistoryScreen(3, 5, 20, 0.5)
	for i := 0; i < 10; i++ {
		hs.Draw("x")
		hs.CarriageReturn()
		hs.Linefeed()
	}
	hs.EraseInDisplay(3)
	if len(hs.History().top) != 0 {
		t.Error("erase_in_display(3) should clear history.top")
	}
}

func TestHistoryCursorHiddenWhenScrolledBack(t *testing.T) {
	hs := NewHistoryScreen(3, 5, 20, 1.0)
	for i := 0; i < 10; i++ {
		hs.Draw("x")
		hs.CarriageReturn()
		hs.Linefeed()
	}
	hs.PrevPage()
	if !hs.Cursor().Hidden {
		t.Error("cursor should be hidden while scrolled back")
	}
	hs.Draw("y") // any ordinary event should sync back to the bottom first
	if hs.Cursor().Hidden {
		t.Error("cursor should be visible again once synced back to the bottom")
	}
}

package vtterm

import "testing"

func TestDefineCharset(t *testing.T) {
	cases := []struct {
		code   string
		want   CharsetID
		wantOK bool
	}{
		{"B", CharsetLatin1, true},
		{"0", CharsetVT100, true},
		{"U", CharsetCP437, true},
		{"V", CharsetVAX42, true},
		{"Z", 0, false},
	}
	for _, tc := range cases {
		id, ok := DefineCharset(tc.code)
		if ok != tc.wantOK {
			t.Errorf("DefineCharset(%q) ok = %v, want %v", tc.code, ok, tc.wantOK)
			continue
		}
		if ok && id != tc.want {
			t.Errorf("DefineCharset(%q) = %v, want %v", tc.code, id, tc.want)
		}
	}
}

func TestTranslateLatin1Identity(t *testing.T) {
	if got := Translate(CharsetLatin1, 'A'); got != 'A' {
		t.Errorf("Translate(Latin1, 'A') = %q, want 'A'", got)
	}
}

func TestTranslateVT100LineDrawing(t *testing.T) {
	if got := Translate(CharsetVT100, 'q'); got != '─' {
		t.Errorf("Translate(VT100, 'q') = %q, want '─'", got)
	}
	if got := Translate(CharsetVT100, 'A'); got != 'A' {
		t.Errorf("Translate(VT100, 'A') = %q, want identity 'A'", got)
	}
}

func TestTranslatePassesThroughAboveByteRange(t *testing.T) {
	if got := Translate(CharsetVT100, '世'); got != '世' {
		t.Errorf("Translate should pass through code points above 255, got %q", got)
	}
}

func TestTranslateCP437(t *testing.T) {
	if got := Translate(CharsetCP437, rune(0x80)); got != 'Ç' {
		t.Errorf("Translate(CP437, 0x80) = %q, want 'Ç'", got)
	}
}

func TestTranslateVAX42Cyrillic(t *testing.T) {
	if got := Translate(CharsetVAX42, rune(0xc1)); got != 'А' {
		t.Errorf("Translate(VAX42, 0xc1) = %q, want 'А'", got)
	}
}

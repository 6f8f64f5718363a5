package vtterm

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNamedColor(t *testing.T) {
	cases := []struct {
		index int
		want  Color
	}{
		{0, "black"},
		{7, "white"},
		{8, "brightblack"},
		{15, "brightwhite"},
		{16, ColorDefault},
		{-1, ColorDefault},
	}
	for _, tc := range cases {
		if got := NamedColor(tc.index); got != tc.want {
			t.Errorf("NamedColor(%d) = %q, want %q", tc.index, got, tc.want)
		}
	}
}

func TestRGBColor(t *testing.T) {
	if got := RGBColor(0xff, 0x80, 0x00); got != "ff8000" {
		t.Errorf("RGBColor(255,128,0) = %q, want ff8000", got)
	}
}

func TestIndexedColor(t *testing.T) {
	if got := IndexedColor(1); got != "red" {
		t.Errorf("IndexedColor(1) = %q, want red", got)
	}
	if got := IndexedColor(16); got != "000000" {
		t.Errorf("IndexedColor(16) = %q, want 000000", got)
	}
	if got := IndexedColor(255); got != "eeeeee" {
		t.Errorf("IndexedColor(255) = %q, want eeeeee", got)
	}
}

func TestColorIsDefault(t *testing.T) {
	if !ColorDefault.IsDefault() {
		t.Error("ColorDefault.IsDefault() = false, want true")
	}
	if !Color("").IsDefault() {
		t.Error(`Color("").IsDefault() = false, want true`)
	}
	if Color("red").IsDefault() {
		t.Error(`Color("red").IsDefault() = true, want false`)
	}
}

func TestCharReplace(t *testing.T) {
	c := DefaultChar
	r := c.Replace(WithData("x"), WithFg("red"), WithReverse(true))

	want := Char{Data: "x", Fg: "red", Bg: ColorDefault, Reverse: true}
	if diff := cmp.Diff(want, r); diff != "" {
		t.Errorf("Replace result mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(DefaultChar, c); diff != "" {
		t.Errorf("Replace mutated receiver (-want +got):\n%s", diff)
	}
}

func TestCharEqual(t *testing.T) {
	a := Char{Data: "x", Fg: "red"}
	b := Char{Data: "x", Fg: "red"}
	c := Char{Data: "y", Fg: "red"}

	if !a.Equal(b) {
		t.Error("expected a.Equal(b)")
	}
	if a.Equal(c) {
		t.Error("expected !a.Equal(c)")
	}
}

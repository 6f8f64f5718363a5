package vtterm

import "fmt"

// Color is a cell foreground or background color: either a named ANSI color
// ("default", "red", "brightred", ...) or a 6-hex-digit RGB string such as
// "ff8000". It is comparable, so two Chars compare equal exactly when every
// field matches.
type Color string

// ColorDefault is the default foreground/background color.
const ColorDefault Color = "default"

// named holds the SGR base-code -> name table for codes 30-37/40-49 and
// their bright 90-97/100-107 counterparts.
var named = [8]string{"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white"}

// NamedColor returns the color name for an ANSI color index 0-7 (or 8-15 for
// the bright range, which is prefixed with "bright"). Out-of-range indexes
// return ColorDefault.
func NamedColor(index int) Color {
	switch {
	case index >= 0 && index < 8:
		return Color(named[index])
	case index >= 8 && index < 16:
		return Color("bright" + named[index-8])
	default:
		return ColorDefault
	}
}

// RGBColor renders an RGB triple as the 6-hex-digit string form used by
// 24-bit SGR sequences (CSI 38;2;r;g;bm / 48;2;r;g;bm).
func RGBColor(r, g, b uint8) Color {
	return Color(fmt.Sprintf("%02x%02x%02x", r, g, b))
}

// IndexedColor renders one of the 256 palette entries. Indexes 0-15 reuse
// the named ANSI colors; the rest render as their RGB equivalent from the
// standard xterm 256-color cube/grayscale ramp.
func IndexedColor(index int) Color {
	if index >= 0 && index < 16 {
		return NamedColor(index)
	}
	r, g, b := palette256(index)
	return RGBColor(r, g, b)
}

// palette256 computes the RGB value of xterm 256-color palette index n
// (16-231 is the 6x6x6 color cube, 232-255 is the grayscale ramp).
func palette256(n int) (uint8, uint8, uint8) {
	switch {
	case n >= 16 && n <= 231:
		n -= 16
		levels := [6]uint8{0, 95, 135, 175, 215, 255}
		b := levels[n%6]
		g := levels[(n/6)%6]
		r := levels[(n/36)%6]
		return r, g, b
	case n >= 232 && n <= 255:
		gray := uint8(8 + (n-232)*10)
		return gray, gray, gray
	default:
		return 0, 0, 0
	}
}

// IsDefault reports whether the color is the default (unset) color.
func (c Color) IsDefault() bool {
	return c == ColorDefault || c == ""
}

// Char is an immutable styled cell value. Data is normally a single base
// code point as a one-rune string; a zero-width combining mark is composed
// into a preceding Char's Data rather than stored in its own cell. Data ==
// "" marks the stub cell to the right of a wide character; a never-written
// cell reads back as its Line's Default, not as a zero-value Char.
type Char struct {
	Data                                                     string
	Fg, Bg                                                   Color
	Bold, Italics, Underscore, Strikethrough, Reverse, Blink bool
}

// DefaultChar is the cell value a newly constructed or erased screen reads
// back for any position that was never explicitly written.
var DefaultChar = Char{Data: " ", Fg: ColorDefault, Bg: ColorDefault}

// CharOption overrides one field of a Char inside Replace.
type CharOption func(*Char)

// WithData overrides the Data field.
func WithData(data string) CharOption { return func(c *Char) { c.Data = data } }

// WithFg overrides the foreground color.
func WithFg(fg Color) CharOption { return func(c *Char) { c.Fg = fg } }

// WithBg overrides the background color.
func WithBg(bg Color) CharOption { return func(c *Char) { c.Bg = bg } }

// WithReverse overrides the reverse-video flag.
func WithReverse(v bool) CharOption { return func(c *Char) { c.Reverse = v } }

// Replace returns a copy of c with the given options applied, leaving c
// itself unmodified. This is the cell-level "replace" operation from the
// data model: it never mutates in place.
func (c Char) Replace(opts ...CharOption) Char {
	next := c
	for _, opt := range opts {
		opt(&next)
	}
	return next
}

// Equal reports whether two Chars are structurally identical.
func (c Char) Equal(other Char) bool {
	return c == other
}

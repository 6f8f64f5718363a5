package vtterm

import (
	"unicode"

	"github.com/unilibs/uniwidth"
)

// wcwidth returns the visible column width of r: -1 for unprintable control
// characters, 0 for zero-width/combining marks, 1 for narrow, 2 for wide.
// This is the external pure function the spec treats as a collaborator; the
// actual East-Asian-width/combining-mark tables are delegated to uniwidth
// rather than hand-maintained here.
func wcwidth(r rune) int {
	if r < 0x20 || (r >= 0x7f && r < 0xa0) {
		return -1
	}
	return uniwidth.RuneWidth(r)
}

// isCombining reports whether r is a zero-width combining mark (Unicode
// category Mn, Mc, or Me) that should be composed into the preceding cell's
// Data rather than occupy a column of its own.
func isCombining(r rune) bool {
	return unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r) || unicode.Is(unicode.Me, r)
}

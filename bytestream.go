package vtterm

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ByteStream incrementally decodes a raw byte stream into text and feeds it
// to a wrapped Stream. By default bytes are interpreted as UTF-8 with the
// standard replacement-character error policy; an ESC % @ sequence (seen by
// the wrapped Stream) switches it to a 1:1 byte-to-code-point mapping, and
// ESC % G / ESC % 8 switches back, resetting the incremental decoder state
// either way.
type ByteStream struct {
	stream  *Stream
	useUTF8 bool
	decoder *encoding.Decoder
	pending []byte
}

// NewByteStream wraps stream, registering a hook so ESC % charset-selection
// sequences toggle this ByteStream's decode mode in lockstep with the
// parser that observes them.
func NewByteStream(stream *Stream) *ByteStream {
	bs := &ByteStream{
		stream:  stream,
		useUTF8: true,
		decoder: newUTF8Decoder(),
	}
	stream.OnUTF8Toggle(bs.setUseUTF8)
	return bs
}

func newUTF8Decoder() *encoding.Decoder {
	return unicode.UTF8.NewDecoder()
}

func (bs *ByteStream) setUseUTF8(enabled bool) {
	bs.useUTF8 = enabled
	bs.pending = bs.pending[:0]
	bs.decoder = newUTF8Decoder()
}

// UseUTF8 reports whether UTF-8 decoding is currently active.
func (bs *ByteStream) UseUTF8() bool {
	return bs.useUTF8
}

// Feed decodes data and forwards the result to the wrapped Stream. A
// trailing incomplete UTF-8 sequence is buffered and completed by the next
// call to Feed, so callers may split input at arbitrary byte boundaries.
func (bs *ByteStream) Feed(data []byte) {
	if !bs.useUTF8 {
		bs.stream.Feed(rawPassThrough(data))
		return
	}

	input := data
	if len(bs.pending) > 0 {
		input = append(append([]byte(nil), bs.pending...), data...)
		bs.pending = bs.pending[:0]
	}

	dst := make([]byte, len(input)*3+64)
	for len(input) > 0 {
		nDst, nSrc, err := bs.decoder.Transform(dst, input, false)
		if nDst > 0 {
			bs.stream.Feed(string(dst[:nDst]))
		}
		input = input[nSrc:]

		switch err {
		case nil:
			return
		case transform.ErrShortDst:
			dst = make([]byte, len(dst)*2)
		case transform.ErrShortSrc:
			bs.pending = append(bs.pending, input...)
			return
		default:
			// Unexpected transform error: drop the offending byte and resync,
			// consistent with the decoder's own "replace" policy for the rest.
			if len(input) > 0 {
				input = input[1:]
			} else {
				return
			}
		}
	}
}

// rawPassThrough maps each byte 1:1 to a code point, used when UTF-8
// decoding has been disabled by an ESC % @ sequence.
func rawPassThrough(data []byte) string {
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes)
}

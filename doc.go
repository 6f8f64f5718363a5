// Package vtterm implements an in-process VT220/ECMA-48-compatible terminal
// emulator: a byte/character parser that recognizes control, escape, and CSI
// sequences and dispatches them as semantic events, and a screen model that
// applies those events to a character-cell buffer.
//
// The package has no display of its own. It is meant to sit between a host
// program's byte stream (a pty, a recorded session, a network relay) and
// whatever renders the result — a test assertion, a web UI, a second
// terminal.
//
// # Quick start
//
//	screen := vtterm.NewScreen(24, 80)
//	stream := vtterm.NewStream(screen)
//	stream.Feed("\x1b[31mHello \x1b[32mWorld\x1b[0m!")
//	fmt.Println(screen.Display()[0]) // "Hello World!" padded with spaces to 80 columns
//
// # Architecture
//
// Bytes flow through three cooperating types:
//
//   - [ByteStream] decodes a raw byte stream to text incrementally (a
//     multi-byte sequence may be split across Feed calls), using UTF-8 with the standard replacement-character error policy
//     (or raw 1:1 byte-to-code-point mapping when UTF-8 is turned off by a
//     charset-selection escape).
//   - [Stream] is the parser: a table-driven state machine that recognizes
//     C0 controls, ESC/CSI/OSC sequences and invokes one method per
//     recognized event on a [Listener].
//   - [Screen] is the default [Listener]: it owns the cursor, the character
//     buffer, scroll margins, modes, tab stops, and graphic-rendition
//     attributes, and mutates them in response to parser events.
//
// [HistoryScreen] wraps a [Screen] and adds bounded scrollback with
// pagination; [DebugScreen] is a [Listener] that records every event as a
// JSON line instead of mutating any state, useful for tracing and for
// building new listeners against a known-good event trace.
//
// # Thread model
//
// None of these types are safe for concurrent use from multiple goroutines.
// [Stream] is a long-lived, resumable state machine: callers may split a
// single logical write across many Feed calls, but all calls must come from
// one goroutine at a time.
package vtterm

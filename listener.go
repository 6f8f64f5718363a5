package vtterm

import "reflect"

// Listener is the full set of semantic events Stream may dispatch. Screen,
// HistoryScreen, and DebugScreen all implement it. Because Go resolves
// interface satisfaction at compile time, the "every event name must
// resolve on the listener, or attach fails in strict mode" requirement
// becomes a compile-time obligation here rather than a runtime check: any
// type passed to NewStream is statically guaranteed to handle every event.
// AttachDynamic (below) recovers the original runtime behavior for
// listeners whose concrete type is not known at compile time.
type Listener interface {
	Bell()
	Backspace()
	Tab(count int)
	Linefeed()
	CarriageReturn()
	ShiftOut()
	ShiftIn()

	Reset()
	Index()
	SetTabStop()
	ReverseIndex()
	SaveCursor()
	RestoreCursor()

	AlignmentDisplay()

	InsertCharacters(count int)
	CursorUp(count int)
	CursorDown(count int)
	CursorForward(count int)
	CursorBack(count int)
	CursorDown1(count int)
	CursorUp1(count int)
	CursorToColumn(column int)
	CursorPosition(line, column int)
	EraseInDisplay(how int)
	EraseInLine(how int)
	InsertLines(count int)
	DeleteLines(count int)
	DeleteCharacters(count int)
	EraseCharacters(count int)
	ReportDeviceAttributes(mode int, private bool)
	CursorToLine(line int)
	ClearTabStop(how int)
	SetMode(private bool, modes ...int)
	ResetMode(private bool, modes ...int)
	SelectGraphicRendition(attrs []int)
	ReportDeviceStatus(mode int)
	SetMargins(top, bottom int)

	Draw(text string)
	Debug(event string, args []int, text string)
	DefineCharset(code string, mode byte)
	SetTitle(title string)
	SetIconName(name string)
}

// eventNames is every event Stream may dispatch (used to validate a dynamic
// listener and returned by EventNames).
var eventNames = []string{
	"Bell", "Backspace", "Tab", "Linefeed", "CarriageReturn", "ShiftOut", "ShiftIn",
	"Reset", "Index", "SetTabStop", "ReverseIndex", "SaveCursor", "RestoreCursor",
	"AlignmentDisplay",
	"InsertCharacters", "CursorUp", "CursorDown", "CursorForward", "CursorBack",
	"CursorDown1", "CursorUp1", "CursorToColumn", "CursorPosition",
	"EraseInDisplay", "EraseInLine", "InsertLines", "DeleteLines",
	"DeleteCharacters", "EraseCharacters", "ReportDeviceAttributes",
	"CursorToLine", "ClearTabStop", "SetMode", "ResetMode",
	"SelectGraphicRendition", "ReportDeviceStatus", "SetMargins",
	"Draw", "Debug", "DefineCharset", "SetTitle", "SetIconName",
}

// ValidateListener checks, via reflection, that listener exposes a method
// for every event Stream may dispatch (arity is not checked; Go's method
// set already fixes it for any type implementing Listener). It returns the
// first missing event wrapped in *UnsupportedListenerError, or nil.
func ValidateListener(listener any) error {
	v := reflect.ValueOf(listener)
	for _, name := range eventNames {
		if !v.MethodByName(name).IsValid() {
			return &UnsupportedListenerError{Event: name}
		}
	}
	return nil
}

// AttachDynamic validates listener against the full event set and, on
// success, wraps it in a Stream. Use this when the listener's concrete type
// is only known at runtime (e.g. a scripted or plugin-provided listener);
// NewStream is preferred whenever the listener type is known at compile
// time, since it makes the same guarantee statically.
func AttachDynamic(listener any) (*Stream, error) {
	if err := ValidateListener(listener); err != nil {
		return nil, err
	}
	return NewStream(listener.(Listener)), nil
}

package vtterm

import "fmt"

// UnsupportedListenerError is returned by ValidateListener and AttachDynamic
// when the supplied listener does not implement one of the event methods the
// parser may dispatch.
type UnsupportedListenerError struct {
	Event string
}

func (e *UnsupportedListenerError) Error() string {
	return fmt.Sprintf("vtterm: listener does not support event %q", e.Event)
}

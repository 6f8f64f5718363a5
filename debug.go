package vtterm

import (
	"io"
	"log/slog"

	"github.com/goccy/go-json"
)

// DebugScreen is a stand-in Listener that records every event it receives as
// a JSON line shaped like ["<event>", [args], {}] (the trailing object is
// always empty: Go events carry no keyword arguments) to sink. It never
// mutates a screen; use it to trace what a Stream dispatches, or as a
// template for a custom listener that only cares about a handful of events.
type DebugScreen struct {
	sink   io.Writer
	only   map[string]struct{}
	logger *slog.Logger
}

var _ Listener = (*DebugScreen)(nil)

// NewDebugScreen returns a DebugScreen writing to sink. When only is
// non-empty, events not named in it are silent no-ops; otherwise every event
// is logged.
func NewDebugScreen(sink io.Writer, only ...string) *DebugScreen {
	d := &DebugScreen{sink: sink, logger: slog.Default()}
	if len(only) > 0 {
		d.only = make(map[string]struct{}, len(only))
		for _, name := range only {
			d.only[name] = struct{}{}
		}
	}
	return d
}

func (d *DebugScreen) emit(event string, args ...any) {
	if d.only != nil {
		if _, ok := d.only[event]; !ok {
			return
		}
	}
	if args == nil {
		args = []any{}
	}
	line, err := json.Marshal([]any{event, args, map[string]any{}})
	if err != nil {
		d.logger.Error("vtterm: debug screen failed to marshal event", "event", event, "error", err)
		return
	}
	line = append(line, '\n')
	if _, err := d.sink.Write(line); err != nil {
		d.logger.Error("vtterm: debug screen failed to write event", "event", event, "error", err)
	}
}

func (d *DebugScreen) Bell()           { d.emit("bell") }
func (d *DebugScreen) Backspace()      { d.emit("backspace") }
func (d *DebugScreen) Tab(count int)   { d.emit("tab", count) }
func (d *DebugScreen) Linefeed()       { d.emit("linefeed") }
func (d *DebugScreen) CarriageReturn() { d.emit("carriage_return") }
func (d *DebugScreen) ShiftOut()       { d.emit("shift_out") }
func (d *DebugScreen) ShiftIn()        { d.emit("shift_in") }

func (d *DebugScreen) Reset()         { d.emit("reset") }
func (d *DebugScreen) Index()         { d.emit("index") }
func (d *DebugScreen) SetTabStop()    { d.emit("set_tab_stop") }
func (d *DebugScreen) ReverseIndex()  { d.emit("reverse_index") }
func (d *DebugScreen) SaveCursor()    { d.emit("save_cursor") }
func (d *DebugScreen) RestoreCursor() { d.emit("restore_cursor") }

func (d *DebugScreen) AlignmentDisplay() { d.emit("alignment_display") }

func (d *DebugScreen) InsertCharacters(count int)  { d.emit("insert_characters", count) }
func (d *DebugScreen) CursorUp(count int)          { d.emit("cursor_up", count) }
func (d *DebugScreen) CursorDown(count int)        { d.emit("cursor_down", count) }
func (d *DebugScreen) CursorForward(count int)     { d.emit("cursor_forward", count) }
func (d *DebugScreen) CursorBack(count int)        { d.emit("cursor_back", count) }
func (d *DebugScreen) CursorDown1(count int)       { d.emit("cursor_down1", count) }
func (d *DebugScreen) CursorUp1(count int)         { d.emit("cursor_up1", count) }
func (d *DebugScreen) CursorToColumn(column int)   { d.emit("cursor_to_column", column) }
func (d *DebugScreen) CursorPosition(line, column int) {
	d.emit("cursor_position", line, column)
}
func (d *DebugScreen) EraseInDisplay(how int)       { d.emit("erase_in_display", how) }
func (d *DebugScreen) EraseInLine(how int)          { d.emit("erase_in_line", how) }
func (d *DebugScreen) InsertLines(count int)        { d.emit("insert_lines", count) }
func (d *DebugScreen) DeleteLines(count int)        { d.emit("delete_lines", count) }
func (d *DebugScreen) DeleteCharacters(count int)   { d.emit("delete_characters", count) }
func (d *DebugScreen) EraseCharacters(count int)    { d.emit("erase_characters", count) }
func (d *DebugScreen) ReportDeviceAttributes(mode int, private bool) {
	d.emit("report_device_attributes", mode, private)
}
func (d *DebugScreen) CursorToLine(line int) { d.emit("cursor_to_line", line) }
func (d *DebugScreen) ClearTabStop(how int)  { d.emit("clear_tab_stop", how) }
func (d *DebugScreen) SetMode(private bool, modes ...int) {
	d.emit("set_mode", private, modes)
}
func (d *DebugScreen) ResetMode(private bool, modes ...int) {
	d.emit("reset_mode", private, modes)
}
func (d *DebugScreen) SelectGraphicRendition(attrs []int) {
	d.emit("select_graphic_rendition", attrs)
}
func (d *DebugScreen) ReportDeviceStatus(mode int) { d.emit("report_device_status", mode) }
func (d *DebugScreen) SetMargins(top, bottom int)  { d.emit("set_margins", top, bottom) }

func (d *DebugScreen) Draw(text string) { d.emit("draw", text) }
func (d *DebugScreen) Debug(event string, args []int, text string) {
	d.emit("debug", event, args, text)
}
func (d *DebugScreen) DefineCharset(code string, mode byte) {
	d.emit("define_charset", code, mode)
}
func (d *DebugScreen) SetTitle(title string)   { d.emit("set_title", title) }
func (d *DebugScreen) SetIconName(name string) { d.emit("set_icon_name", name) }

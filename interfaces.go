package hxbind

// EventKind identifies a control event a binding can react to.
type EventKind int

const (
	// EventBlur fires when the control loses focus. It is the default
	// commit trigger.
	EventBlur EventKind = iota
	// EventFocus fires when the control gains focus.
	EventFocus
	// EventBeforeInsert fires before a pending text mutation is applied.
	// Handlers may call PreventDefault to suppress it.
	EventBeforeInsert
	// EventChange fires when an edited text is committed by the user: on
	// blur or Enter, when the text differs from the text the control held
	// at focus or at the last programmatic update.
	EventChange
	// EventInput fires after every text mutation made through editing.
	EventInput
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case EventBlur:
		return "blur"
	case EventFocus:
		return "focus"
	case EventBeforeInsert:
		return "beforeinsert"
	case EventChange:
		return "change"
	case EventInput:
		return "input"
	default:
		return "unknown"
	}
}

// Event is delivered to control event handlers.
//
// For EventBeforeInsert, Data holds the text about to be inserted (empty for
// deletions) and InputType tags the edit kind, e.g. "insertText",
// "insertFromPaste" or "deleteContentBackward".
type Event struct {
	Kind      EventKind
	Data      string
	InputType string

	prevented bool
}

// PreventDefault suppresses the control's native handling of the event.
func (e *Event) PreventDefault() {
	e.prevented = true
}

// DefaultPrevented reports whether a handler called PreventDefault.
func (e *Event) DefaultPrevented() bool {
	return e.prevented
}

// Handler receives control events.
type Handler func(*Event)

// Control is the text-entry widget a binding synchronizes with.
//
// Implementations wrap a concrete toolkit widget (or, for tests and server
// side form handling, the in-memory TextBox). Selection bounds are counted
// in characters.
//
// SetRangeText replaces the current selection with text. The selection is
// then adjusted the way a browser's setRangeText "preserve" mode does: a
// collapsed caret stays in front of the inserted text, while a range
// selection ends up covering the replacement.
type Control interface {
	Text() string
	SetText(text string)
	Selection() (start, end int)
	SetSelection(start, end int)
	SelectedText() string
	SetRangeText(text string)
	Subscribe(kind EventKind, h Handler) (unsubscribe func())
}

package hxbind

// TextBox is an in-memory Control.
//
// It models a single-line text input: a character buffer, a selection, and
// the focus, blur, before-insert and change events. Use it to drive
// bindings in tests, in command line tools, or when filling a Set from a
// form submission.
//
// Insertions made through Insert, Type, Paste, Backspace and Delete raise
// EventBeforeInsert first and are dropped when a handler prevents them.
// Edits and SetRangeText raise EventInput. Blur and Enter raise
// EventChange when the text differs from the baseline, which is the text
// held at focus or at the last SetText. SetText raises no event.
type TextBox struct {
	text     []rune
	baseline string
	start    int
	end      int
	focused  bool
	nextID   int
	handlers []textBoxHandler
}

type textBoxHandler struct {
	id   int
	kind EventKind
	h    Handler
}

// NewTextBox creates a TextBox holding text with the caret at its end.
func NewTextBox(text string) *TextBox {
	t := &TextBox{text: []rune(text), baseline: text}
	t.start, t.end = len(t.text), len(t.text)
	return t
}

// Text returns the current text.
func (t *TextBox) Text() string {
	return string(t.text)
}

// SetText replaces the text, moves the caret to its end and resets the
// change baseline. It raises no event.
func (t *TextBox) SetText(text string) {
	t.text = []rune(text)
	t.baseline = text
	t.start, t.end = len(t.text), len(t.text)
}

// Selection returns the selection bounds.
func (t *TextBox) Selection() (start, end int) {
	return t.start, t.end
}

// SetSelection selects [start, end), clamped to the text.
func (t *TextBox) SetSelection(start, end int) {
	t.start = clamp(start, 0, len(t.text))
	t.end = clamp(end, t.start, len(t.text))
}

// Select is an alias for SetSelection.
func (t *TextBox) Select(start, end int) {
	t.SetSelection(start, end)
}

// SelectedText returns the selected characters.
func (t *TextBox) SelectedText() string {
	return string(t.text[t.start:t.end])
}

// SetRangeText replaces the selection with text. A collapsed caret stays in
// front of the inserted text; a range selection ends up covering it.
func (t *TextBox) SetRangeText(text string) {
	start, end := t.start, t.end
	r := []rune(text)
	if len(r) == 0 && start == end {
		return
	}
	t.splice(start, end, r)
	t.start, t.end = start, start
	if end > start {
		t.end = start + len(r)
	}
	t.fire(&Event{Kind: EventInput})
}

// Subscribe registers h for kind and returns the func removing it.
func (t *TextBox) Subscribe(kind EventKind, h Handler) func() {
	t.nextID++
	id := t.nextID
	t.handlers = append(t.handlers, textBoxHandler{id: id, kind: kind, h: h})
	return func() {
		for i, entry := range t.handlers {
			if entry.id == id {
				t.handlers = append(t.handlers[:i:i], t.handlers[i+1:]...)
				return
			}
		}
	}
}

// Handlers returns the number of handlers registered for kind.
func (t *TextBox) Handlers(kind EventKind) int {
	n := 0
	for _, entry := range t.handlers {
		if entry.kind == kind {
			n++
		}
	}
	return n
}

// Focused reports whether the box has focus.
func (t *TextBox) Focused() bool {
	return t.focused
}

// Focus gives the box focus and raises EventFocus.
func (t *TextBox) Focus() {
	if t.focused {
		return
	}
	t.focused = true
	t.baseline = string(t.text)
	t.fire(&Event{Kind: EventFocus})
}

// Blur raises EventChange if the text was edited, then removes focus and
// raises EventBlur.
func (t *TextBox) Blur() {
	if !t.focused {
		return
	}
	t.change()
	t.focused = false
	t.fire(&Event{Kind: EventBlur})
}

// Enter raises EventChange if the text of the focused box was edited, as
// pressing Enter in a single-line input does. It reports whether the event
// was raised.
func (t *TextBox) Enter() bool {
	if !t.focused {
		return false
	}
	return t.change()
}

// Insert replaces the selection with data, placing the caret after it.
// It reports whether the edit was applied.
func (t *TextBox) Insert(data, inputType string) bool {
	if !t.before(data, inputType) {
		return false
	}
	r := []rune(data)
	start := t.start
	t.splice(t.start, t.end, r)
	t.start, t.end = start+len(r), start+len(r)
	t.fire(&Event{Kind: EventInput})
	return true
}

// Type inserts s one character at a time, as keystrokes.
func (t *TextBox) Type(s string) {
	for _, r := range s {
		t.Insert(string(r), "insertText")
	}
}

// Paste inserts s as a single edit.
func (t *TextBox) Paste(s string) bool {
	return t.Insert(s, "insertFromPaste")
}

// Backspace deletes the selection, or the character before the caret.
func (t *TextBox) Backspace() bool {
	if t.start == t.end && t.start == 0 {
		return false
	}
	if !t.before("", "deleteContentBackward") {
		return false
	}
	start, end := t.start, t.end
	if start == end {
		start--
	}
	t.splice(start, end, nil)
	t.start, t.end = start, start
	t.fire(&Event{Kind: EventInput})
	return true
}

// Delete deletes the selection, or the character after the caret.
func (t *TextBox) Delete() bool {
	if t.start == t.end && t.end == len(t.text) {
		return false
	}
	if !t.before("", "deleteContentForward") {
		return false
	}
	start, end := t.start, t.end
	if start == end {
		end++
	}
	t.splice(start, end, nil)
	t.start, t.end = start, start
	t.fire(&Event{Kind: EventInput})
	return true
}

// change raises EventChange when the text moved off the baseline.
func (t *TextBox) change() bool {
	text := string(t.text)
	if text == t.baseline {
		return false
	}
	t.baseline = text
	t.fire(&Event{Kind: EventChange})
	return true
}

// before raises EventBeforeInsert and reports whether the edit may proceed.
func (t *TextBox) before(data, inputType string) bool {
	ev := &Event{Kind: EventBeforeInsert, Data: data, InputType: inputType}
	t.fire(ev)
	return !ev.DefaultPrevented()
}

func (t *TextBox) splice(start, end int, r []rune) {
	out := make([]rune, 0, len(t.text)-(end-start)+len(r))
	out = append(out, t.text[:start]...)
	out = append(out, r...)
	out = append(out, t.text[end:]...)
	t.text = out
}

func (t *TextBox) fire(ev *Event) {
	handlers := append([]textBoxHandler(nil), t.handlers...)
	for _, entry := range handlers {
		if entry.kind == ev.Kind {
			entry.h(ev)
		}
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package hxbind

import "github.com/pthm/hxbind/lib/mask"

// InsertEvent is an alias for mask.InsertEvent for convenience.
type InsertEvent = mask.InsertEvent

// handleBeforeInsert runs the field's mask over a pending insertion and
// applies the outcome to the control.
//
// A cancelled edit is suppressed. A rewritten insertion suppresses the
// native edit and splices the rewritten text into the selection instead.
// A moved selection is applied explicitly.
func (b *Binding) handleBeforeInsert(ev *Event) {
	if b.field.OnBeforeInsert == nil {
		return
	}
	c := b.field.Control
	start, end := c.Selection()

	e := &InsertEvent{
		Text:           c.Text(),
		RangeText:      ev.Data,
		Type:           ev.InputType,
		SelectedText:   c.SelectedText(),
		SelectionStart: start,
		SelectionEnd:   end,
	}
	b.field.OnBeforeInsert(e)

	if e.Cancel {
		ev.PreventDefault()
		b.log.Debug().Str("input", ev.Data).Msg("insert cancelled")
		return
	}

	if e.RangeText != ev.Data {
		ev.PreventDefault()
		c.SetRangeText(e.RangeText)
		b.log.Debug().Str("input", ev.Data).Str("replacement", e.RangeText).Msg("insert rewritten")
	}

	if s, en := c.Selection(); s != e.SelectionStart || en != e.SelectionEnd {
		c.SetSelection(e.SelectionStart, e.SelectionEnd)
	}
}

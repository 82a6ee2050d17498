package hxbind

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pthm/hxbind/lib/format"
	"github.com/pthm/hxbind/lib/mask"
)

// Kind names a standard field flavor.
type Kind string

const (
	KindText       Kind = "text"
	KindCurrency   Kind = "currency"
	KindDate       Kind = "date"
	KindDateString Kind = "datestring"
)

// Valid reports whether k is one of the standard kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindText, KindCurrency, KindDate, KindDateString:
		return true
	}
	return false
}

// TextField binds a string leaf. Focusing the control selects its text.
func TextField(name string, path Path, c Control) Field {
	return Field{
		Name:    name,
		Path:    path,
		Kind:    KindText,
		Control: c,
		ToControl: func(c Control, v any) {
			c.SetText(textOf(v))
		},
		ToValue: func(c Control) any {
			return c.Text()
		},
		OnFocus: selectAll,
	}
}

// CurrencyField binds a float64 leaf shown as a grouped amount ("1.234,56").
//
// Focusing the control strips the grouping separators and currency symbol
// so the amount can be edited as plain digits, then selects it. Input is
// restricted by mask.NewCurrency to the formatter's decimal separator and
// fraction digits. Text that does not parse commits as nil.
func CurrencyField(name string, path Path, c Control, cur format.Currency) Field {
	nf := cur.NumberFormat()
	decimal, _ := utf8.DecodeRuneInString(nf.Decimal)
	if nf.Decimal == "" {
		decimal = ','
	}
	return Field{
		Name:    name,
		Path:    path,
		Kind:    KindCurrency,
		Control: c,
		ToControl: func(c Control, v any) {
			f, ok := toFloat(v)
			if !ok || isNil(v) {
				c.SetText("")
				return
			}
			c.SetText(cur.Format(f))
		},
		ToValue: func(c Control) any {
			f, ok := cur.Parse(c.Text())
			if !ok {
				return nil
			}
			return f
		},
		OnFocus: func(c Control, _ any) {
			text := c.Text()
			for _, chrome := range []string{nf.Group, nf.Symbol} {
				if chrome != "" {
					text = strings.ReplaceAll(text, chrome, "")
				}
			}
			c.SetText(strings.TrimSpace(text))
			selectAll(c, nil)
		},
		OnBeforeInsert: mask.NewCurrency(decimal, nf.Fraction),
	}
}

// DateStringField binds a string leaf holding a DD/MM/YYYY date.
//
// Committed text is normalized; text that is not a valid date commits as
// nil. Focusing the control selects the day. Typing "/" steps over existing
// separators (mask.Date).
func DateStringField(name string, path Path, c Control, d format.Date) Field {
	return Field{
		Name:    name,
		Path:    path,
		Kind:    KindDateString,
		Control: c,
		ToControl: func(c Control, v any) {
			s, ok := d.Normalize(textOf(v))
			if !ok {
				c.SetText("")
				return
			}
			c.SetText(s)
		},
		ToValue: func(c Control) any {
			s, ok := d.Normalize(c.Text())
			if !ok {
				return nil
			}
			return s
		},
		OnFocus:        selectDay,
		OnBeforeInsert: mask.Date,
	}
}

// DateField binds a time.Time leaf shown as DD/MM/YYYY.
//
// Text that is not a valid date commits as nil. A commit that keeps the
// calendar day leaves the leaf untouched, whatever zone it is stored in.
// Focusing the control selects the day. Typing "/" steps over existing separators (mask.Date).
func DateField(name string, path Path, c Control, d format.Date) Field {
	return Field{
		Name:    name,
		Path:    path,
		Kind:    KindDate,
		Control: c,
		ToControl: func(c Control, v any) {
			t, ok := v.(time.Time)
			if !ok {
				c.SetText("")
				return
			}
			c.SetText(d.Format(t))
		},
		ToValue: func(c Control) any {
			t, ok := d.Parse(c.Text())
			if !ok {
				return nil
			}
			return t
		},
		OnFocus:        selectDay,
		OnBeforeInsert: mask.Date,
		Equal:          sameDay,
	}
}

// sameDay compares times by the calendar date each carries in its own
// location, and anything else loosely.
func sameDay(a, b any) bool {
	ta, okA := a.(time.Time)
	tb, okB := b.(time.Time)
	if !okA || !okB {
		return looseEqual(a, b)
	}
	ya, ma, da := ta.Date()
	yb, mb, db := tb.Date()
	return ya == yb && ma == mb && da == db
}

func textOf(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	}
	return fmt.Sprint(v)
}

func selectAll(c Control, _ any) {
	c.SetSelection(0, len([]rune(c.Text())))
}

func selectDay(c Control, _ any) {
	c.SetSelection(0, 2)
}

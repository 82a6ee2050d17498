package format

import "time"

// DateLayout is the on-screen date shape, DD/MM/YYYY.
const DateLayout = "02/01/2006"

// Date formats and parses strict DD/MM/YYYY dates.
type Date struct {
	loc *time.Location
}

// NewDate creates a date formatter for loc. A nil loc means UTC.
func NewDate(loc *time.Location) Date {
	if loc == nil {
		loc = time.UTC
	}
	return Date{loc: loc}
}

// Location returns the zone dates are parsed into.
func (d Date) Location() *time.Location {
	if d.loc == nil {
		return time.UTC
	}
	return d.loc
}

// Format renders the calendar date t carries in its own location, so a
// midnight stored in another zone keeps its day. The zero time renders as
// empty text.
func (d Date) Format(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// Parse reads DD/MM/YYYY text. Day and month must be two digits, the year
// four, and the date must exist in the calendar.
func (d Date) Parse(text string) (time.Time, bool) {
	if len(text) != len(DateLayout) {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(DateLayout, text, d.Location())
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Normalize parses text and renders it back, yielding the canonical form
// of a date kept as a string.
func (d Date) Normalize(text string) (string, bool) {
	t, ok := d.Parse(text)
	if !ok {
		return "", false
	}
	return d.Format(t), true
}

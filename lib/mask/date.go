package mask

// DateSeparator splits day, month and year.
const DateSeparator = '/'

// Date lets typing "/" step over a separator that is already present in
// DD/MM/YYYY text instead of inserting a second one.
//
// At the first separator the caret moves past it and the month is selected
// (up to the second separator when there is one). At the second separator
// the caret moves past it and the rest of the text, the year, is selected.
// Other keystrokes, and any edit that replaces a selection, pass through.
func Date(e *InsertEvent) {
	if e.RangeText == "" || e.SelectionStart != e.SelectionEnd {
		return
	}
	if e.RangeText != string(DateSeparator) {
		return
	}

	first := indexFrom(e.Text, DateSeparator, 0)
	if first == -1 {
		return
	}
	second := indexFrom(e.Text, DateSeparator, first+1)

	switch e.SelectionStart {
	case first:
		e.RangeText = ""
		e.SelectionStart++
		if second != -1 {
			e.SelectionEnd = second
		} else {
			e.SelectionEnd = e.SelectionStart
		}
	case second:
		e.RangeText = ""
		e.SelectionStart++
		e.SelectionEnd = length(e.Text)
	}
}

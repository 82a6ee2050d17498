// Package mask holds the keystroke policies applied before text reaches a
// control.
//
// A policy inspects one pending insertion and may rewrite the inserted text,
// move the selection, or cancel the edit. Policies keep no state between
// calls. Positions are counted in characters, not bytes.
package mask

import "strings"

// InsertEvent describes a pending edit. Policies mutate it in place.
type InsertEvent struct {
	// Cancel suppresses the edit entirely.
	Cancel bool
	// Text is the control's full text before the edit.
	Text string
	// RangeText is the text about to be inserted. Empty for deletions and
	// other non-inserting edits.
	RangeText string
	// Type tags the kind of edit (insertText, insertFromPaste,
	// deleteContentBackward, ...).
	Type string
	// SelectedText is the text currently selected.
	SelectedText string
	// SelectionStart and SelectionEnd bound the current selection.
	SelectionStart int
	SelectionEnd   int
}

// Policy transforms a pending edit.
type Policy func(*InsertEvent)

// indexFrom returns the character index of the first sep in text at or
// after character index from, or -1.
func indexFrom(text string, sep rune, from int) int {
	i := 0
	for _, r := range text {
		if i >= from && r == sep {
			return i
		}
		i++
	}
	return -1
}

func length(text string) int {
	return len([]rune(text))
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	return strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' }) == -1
}

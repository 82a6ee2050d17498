package hxbind

import "fmt"

// TestResult captures a field after a simulated edit session.
//
// Provides convenience methods for asserting on the control text, the
// committed value and the field's validation findings.
type TestResult struct {
	// EditedText and the selection are the control state after the edit,
	// before the commit re-rendered it.
	EditedText     string
	SelectionStart int
	SelectionEnd   int
	// Text is the control text after the commit.
	Text   string
	Value  any
	Errors ValidationErrors
}

// TestEdit runs edit against the named field's TextBox inside a focus/blur
// cycle, then validates the field and returns its state.
//
// The Set should be subscribed so the binding sees the focus, insertion and
// commit events, exactly as it would for a user:
//
//	result, err := hxbind.TestEdit(set, "total", func(tb *hxbind.TextBox) {
//	    tb.Type("1234.5")
//	})
//	if result.Text != "1.234,50" {
//	    t.Fatal("unexpected text")
//	}
func TestEdit(s *Set, name string, edit func(tb *TextBox)) (*TestResult, error) {
	b, err := s.Binding(name)
	if err != nil {
		return nil, err
	}
	tb, ok := b.Control().(*TextBox)
	if !ok {
		return nil, fmt.Errorf("hxbind: field %q is bound to %T, not *TextBox", name, b.Control())
	}

	tb.Focus()
	if edit != nil {
		edit(tb)
	}
	result := &TestResult{EditedText: tb.Text()}
	result.SelectionStart, result.SelectionEnd = tb.Selection()

	tb.Blur()
	result.Text = tb.Text()
	result.Value = b.Value()
	result.Errors = b.Validate()
	return result, nil
}

// TestType focuses the named field, selects its text, types input as
// keystrokes and blurs the field.
//
//	result, err := hxbind.TestType(set, "firstName", "A")
//	if !result.HasError("X-011") {
//	    t.Fatal("expected validation error")
//	}
func TestType(s *Set, name, input string) (*TestResult, error) {
	return TestEdit(s, name, func(tb *TextBox) {
		tb.Select(0, len([]rune(tb.Text())))
		tb.Type(input)
	})
}

// HasError checks if a finding with the given code was reported.
func (r *TestResult) HasError(code string) bool {
	for _, e := range r.Errors {
		if e.Code == code {
			return true
		}
	}
	return false
}

// IsValid checks that no findings were reported.
func (r *TestResult) IsValid() bool {
	return len(r.Errors) == 0
}

// IsEmpty checks that the committed value is "no value".
func (r *TestResult) IsEmpty() bool {
	return r.Value == nil
}

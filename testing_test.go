package hxbind

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// controlStub is a Control that is not a *TextBox.
type controlStub struct{ TextBox }

func newHarnessSet(t *testing.T) *Set {
	t.Helper()

	name := TextField("firstName", Path{"firstName"}, NewTextBox(""))
	name.OnValidate = func(ctx *ValidationContext) {
		if s, _ := ctx.Value.(string); utf8.RuneCountInString(s) < 2 {
			ctx.Add("X-011", "first name is too short")
		}
	}
	total := CurrencyField("total", Path{"total"}, NewTextBox(""), spanish)

	set, err := New(Record{"firstName": "Daniel", "total": nil}, []Field{name, total})
	require.NoError(t, err)
	set.Subscribe()
	t.Cleanup(set.Dispose)
	return set
}

func TestTestType(t *testing.T) {
	set := newHarnessSet(t)

	result, err := TestType(set, "firstName", "A")
	require.NoError(t, err)
	assert.Equal(t, "A", result.Text)
	assert.Equal(t, "A", result.Value)
	assert.True(t, result.HasError("X-011"))
	assert.False(t, result.IsValid())

	result, err = TestType(set, "firstName", "Ana")
	require.NoError(t, err)
	assert.True(t, result.IsValid())
	assert.False(t, result.HasError("X-011"))
}

func TestTestTypeCurrency(t *testing.T) {
	set := newHarnessSet(t)

	result, err := TestType(set, "total", "1234.5")
	require.NoError(t, err)
	assert.Equal(t, "1234,5", result.EditedText)
	assert.Equal(t, 6, result.SelectionStart)
	assert.Equal(t, "1.234,50", result.Text)
	assert.Equal(t, 1234.5, result.Value)

	// Letters are masked out, so the amount survives.
	result, err = TestType(set, "total", "x")
	require.NoError(t, err)
	assert.Equal(t, "1234,50", result.EditedText)
	assert.Equal(t, 1234.5, result.Value)

	result, err = TestEdit(set, "total", func(tb *TextBox) {
		tb.Select(0, len([]rune(tb.Text())))
		tb.Backspace()
	})
	require.NoError(t, err)
	assert.True(t, result.IsEmpty())
	assert.Equal(t, "", result.Text)
}

func TestTestEdit(t *testing.T) {
	set := newHarnessSet(t)

	result, err := TestEdit(set, "firstName", func(tb *TextBox) {
		tb.Select(6, 6)
		tb.Type("a")
	})
	require.NoError(t, err)
	assert.Equal(t, "Daniela", result.Value)

	result, err = TestEdit(set, "firstName", nil)
	require.NoError(t, err)
	assert.Equal(t, "Daniela", result.Text)
}

func TestTestEditErrors(t *testing.T) {
	set := newHarnessSet(t)

	_, err := TestEdit(set, "lastName", nil)
	assert.True(t, IsUnknownField(err))

	stub := &controlStub{}
	other, err := New(Record{}, []Field{TextField("x", Path{"x"}, stub)})
	require.NoError(t, err)
	_, err = TestEdit(other, "x", nil)
	assert.ErrorContains(t, err, "not *TextBox")
}

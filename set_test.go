package hxbind

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/hxbind/lib/format"
)

var spanish = format.NewCurrency(format.Spanish())

// newTestSet binds firstName, total and createDate over a fresh record.
func newTestSet(t *testing.T) (*Set, map[string]*TextBox) {
	t.Helper()

	boxes := map[string]*TextBox{
		"firstName":  NewTextBox(""),
		"total":      NewTextBox(""),
		"createDate": NewTextBox(""),
	}
	rec := Record{
		"firstName": "Daniel",
		"invoice": map[string]any{
			"total":      1234.5,
			"createDate": "09/12/2085",
		},
	}
	set, err := New(rec, []Field{
		TextField("firstName", Path{"firstName"}, boxes["firstName"]),
		CurrencyField("total", Path{"invoice", "total"}, boxes["total"], spanish),
		DateStringField("createDate", Path{"invoice", "createDate"}, boxes["createDate"], format.NewDate(time.UTC)),
	})
	require.NoError(t, err)
	return set, boxes
}

func TestNewRendersRecordIntoControls(t *testing.T) {
	_, boxes := newTestSet(t)

	assert.Equal(t, "Daniel", boxes["firstName"].Text())
	assert.Equal(t, "1.234,50", boxes["total"].Text())
	assert.Equal(t, "09/12/2085", boxes["createDate"].Text())
}

func TestNewDoesNotFireChangeHooksForCurrentValues(t *testing.T) {
	called := false
	f := TextField("name", Path{"name"}, NewTextBox(""))
	f.OnChanged = func(ChangedEvent) { called = true }

	_, err := New(Record{"name": "Daniel"}, []Field{f})
	require.NoError(t, err)
	assert.False(t, called)
}

func TestNewAggregatesContractViolations(t *testing.T) {
	box := NewTextBox("")
	noCodec := Field{Name: "noCodec", Path: Path{"x"}, Control: box}
	badCommit := TextField("badCommit", Path{"y"}, box)
	badCommit.CommitOn = EventFocus

	_, err := New(Record{}, []Field{
		TextField("name", Path{"name"}, box),
		TextField("name", Path{"other"}, box),
		TextField("", Path{"z"}, box),
		TextField("badPath", Path{"a", ""}, box),
		TextField("noControl", Path{"b"}, nil),
		noCodec,
		badCommit,
	})

	require.Error(t, err)
	assert.True(t, IsContractViolation(err))
	assert.ErrorIs(t, err, ErrDuplicateField)
	assert.ErrorIs(t, err, ErrInvalidPath)
	assert.ErrorIs(t, err, ErrInvalidField)
	for _, name := range []string{`"name"`, "badPath", "noControl", "noCodec", "badCommit"} {
		assert.Contains(t, err.Error(), name)
	}
}

func TestNewRejectsNilRecord(t *testing.T) {
	_, err := New(nil, nil)
	assert.ErrorIs(t, err, ErrInvalidField)
}

func TestSetGetAndSet(t *testing.T) {
	set, boxes := newTestSet(t)

	v, err := set.Get("total")
	require.NoError(t, err)
	assert.Equal(t, 1234.5, v)

	require.NoError(t, set.Set("total", 99.0))
	assert.Equal(t, "99,00", boxes["total"].Text())
	assert.Equal(t, 99.0, set.Record()["invoice"].(map[string]any)["total"])

	require.NoError(t, set.Set("total", nil))
	assert.Equal(t, "", boxes["total"].Text())
}

func TestSetUnknownField(t *testing.T) {
	set, _ := newTestSet(t)

	_, err := set.Get("lastName")
	assert.True(t, IsUnknownField(err))

	err = set.Set("lastName", "x")
	assert.True(t, IsUnknownField(err))
	_, exists := set.Record()["lastName"]
	assert.False(t, exists)
}

func TestSetNames(t *testing.T) {
	set, _ := newTestSet(t)
	assert.Equal(t, []string{"firstName", "total", "createDate"}, set.Names())
}

func TestSetValidateAggregatesInDeclarationOrder(t *testing.T) {
	boxes := []*TextBox{NewTextBox(""), NewTextBox(""), NewTextBox("")}
	a := TextField("a", Path{"a"}, boxes[0])
	a.OnValidate = func(ctx *ValidationContext) {
		ctx.Add("A1", "first")
		ctx.Add("A2", "second")
	}
	b := TextField("b", Path{"b"}, boxes[1])
	c := TextField("c", Path{"c"}, boxes[2])
	c.OnValidate = func(ctx *ValidationContext) {
		ctx.Add("C1", "third")
	}

	set, err := New(Record{"a": "", "b": "", "c": ""}, []Field{a, b, c})
	require.NoError(t, err)

	errs := set.Validate()
	require.Len(t, errs, 3)
	assert.Equal(t, []string{"A1", "A2", "C1"}, []string{errs[0].Code, errs[1].Code, errs[2].Code})
	assert.Equal(t, "a", errs[0].Field)
	assert.Same(t, boxes[0], errs[0].Control)
	assert.Equal(t, "c", errs[2].Field)
	assert.Same(t, boxes[2], errs[2].Control)

	assert.Equal(t, errs, set.Errors())
}

func TestSetValidateReplacesPreviousFindings(t *testing.T) {
	fail := true
	f := TextField("a", Path{"a"}, NewTextBox(""))
	f.OnValidate = func(ctx *ValidationContext) {
		if fail {
			ctx.Add("A", "bad")
		}
	}
	set, err := New(Record{"a": ""}, []Field{f})
	require.NoError(t, err)

	assert.Len(t, set.Validate(), 1)
	fail = false
	assert.Empty(t, set.Validate())
	assert.Empty(t, set.Errors())
}

func TestValidationSnapshotIsDetached(t *testing.T) {
	f := TextField("a", Path{"nested", "a"}, NewTextBox(""))
	f.OnValidate = func(ctx *ValidationContext) {
		assert.Equal(t, "x", ctx.Value)
		nested := ctx.Snapshot["nested"].(map[string]any)
		assert.Equal(t, "x", nested["a"])
		nested["a"] = "mutated"
	}
	rec := Record{"nested": map[string]any{"a": "x"}}
	set, err := New(rec, []Field{f})
	require.NoError(t, err)

	set.Validate()
	assert.Equal(t, "x", rec["nested"].(map[string]any)["a"])
}

func TestValidationSnapshotFailureUsesEmptyRecord(t *testing.T) {
	var got Record
	f := TextField("a", Path{"a"}, NewTextBox(""))
	f.OnValidate = func(ctx *ValidationContext) {
		got = ctx.Snapshot
		ctx.Add("A", "still reported")
	}
	// Functions cannot be snapshotted.
	set, err := New(Record{"a": "x", "fn": func() {}}, []Field{f}, WithLogger(zerolog.Nop()))
	require.NoError(t, err)

	errs := set.Validate()
	assert.Len(t, errs, 1)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestWithSnapshot(t *testing.T) {
	calls := 0
	f := TextField("a", Path{"a"}, NewTextBox(""))
	f.OnValidate = func(ctx *ValidationContext) {
		assert.Equal(t, "stub", ctx.Snapshot["a"])
	}
	set, err := New(Record{"a": "x"}, []Field{f}, WithSnapshot(func(Record) (Record, error) {
		calls++
		return Record{"a": "stub"}, nil
	}))
	require.NoError(t, err)

	set.Validate()
	assert.Equal(t, 1, calls)
}

func TestSetClearErrors(t *testing.T) {
	a := TextField("a", Path{"a"}, NewTextBox(""))
	a.OnValidate = func(ctx *ValidationContext) {
		ctx.Add("REQUIRED", "a is required")
		ctx.Add("FORMAT", "a is malformed")
	}
	b := TextField("b", Path{"b"}, NewTextBox(""))
	b.OnValidate = func(ctx *ValidationContext) {
		ctx.Add("REQUIRED", "b is required")
	}
	set, err := New(Record{}, []Field{a, b})
	require.NoError(t, err)

	set.Validate()
	set.ClearErrors(func(e ValidationError) bool { return e.Code == "REQUIRED" })
	errs := set.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, "FORMAT", errs[0].Code)

	set.Validate()
	set.ClearErrors(nil)
	assert.Empty(t, set.Errors())
}

func TestSetSubscribeAndDispose(t *testing.T) {
	set, boxes := newTestSet(t)
	box := boxes["firstName"]

	set.Subscribe()
	set.Subscribe()
	assert.Equal(t, 1, box.Handlers(EventBlur))
	assert.Equal(t, 1, box.Handlers(EventFocus))
	assert.Equal(t, 1, box.Handlers(EventBeforeInsert))

	set.Unsubscribe()
	assert.Equal(t, 0, box.Handlers(EventBlur))

	set.Subscribe()
	set.Dispose()
	for _, b := range boxes {
		assert.Equal(t, 0, b.Handlers(EventBlur))
		assert.Equal(t, 0, b.Handlers(EventFocus))
		assert.Equal(t, 0, b.Handlers(EventBeforeInsert))
	}

	_, err := set.Get("firstName")
	assert.ErrorIs(t, err, ErrDisposed)
	assert.ErrorIs(t, set.Set("firstName", "x"), ErrDisposed)
	assert.Empty(t, set.Errors())

	// Typing into a disposed set's control no longer reaches the record.
	box.Focus()
	box.Type("Z")
	box.Blur()
	assert.Equal(t, "Daniel", set.Record()["firstName"])
}

func TestSetMarshalJSON(t *testing.T) {
	set, _ := newTestSet(t)

	data, err := json.Marshal(set)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"firstName": "Daniel",
		"invoice": {"total": 1234.5, "createDate": "09/12/2085"}
	}`, string(data))
}

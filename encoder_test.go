package hxbind

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/hxbind/lib/format"
)

func TestStateRoundTrip(t *testing.T) {
	enc, err := NewEncoder([]byte("test-key"))
	require.NoError(t, err)

	for _, sensitive := range []bool{false, true} {
		src, _ := newTestSet(t)
		require.NoError(t, src.Set("firstName", "Ana"))
		require.NoError(t, src.Set("total", 42.5))

		token, err := src.EncodeState(enc, sensitive)
		require.NoError(t, err)

		dst, boxes := newTestSet(t)
		require.NoError(t, dst.RestoreState(enc, token, sensitive))

		assert.Equal(t, "Ana", dst.Record()["firstName"])
		assert.Equal(t, 42.5, dst.Record()["invoice"].(map[string]any)["total"])
		assert.Equal(t, "42,50", boxes["total"].Text())
		assert.Equal(t, "09/12/2085", boxes["createDate"].Text())
	}
}

func TestStateRoundTripDate(t *testing.T) {
	enc, err := NewEncoder([]byte("test-key"))
	require.NoError(t, err)
	d := format.NewDate(time.UTC)
	when := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	src, err := New(Record{"d": when}, []Field{DateField("d", Path{"d"}, NewTextBox(""), d)})
	require.NoError(t, err)
	token, err := src.EncodeState(enc, false)
	require.NoError(t, err)

	box := NewTextBox("")
	dst, err := New(Record{"d": nil}, []Field{DateField("d", Path{"d"}, box, d)})
	require.NoError(t, err)
	require.NoError(t, dst.RestoreState(enc, token, false))

	got, ok := dst.Record()["d"].(time.Time)
	require.True(t, ok)
	assert.True(t, when.Equal(got))
	assert.Equal(t, "01/02/2024", box.Text())
}

func TestRestoreStateFiresChangeHooks(t *testing.T) {
	enc, err := NewEncoder([]byte("test-key"))
	require.NoError(t, err)

	token, err := enc.Encode(map[string]any{"name": "Ana", "unbound": 1}, false)
	require.NoError(t, err)

	var got []any
	f := TextField("name", Path{"name"}, NewTextBox(""))
	f.OnChanged = func(e ChangedEvent) { got = append(got, e.Value) }
	set, err := New(Record{"name": "Daniel"}, []Field{f})
	require.NoError(t, err)

	require.NoError(t, set.RestoreState(enc, token, false))
	assert.Equal(t, []any{"Ana"}, got)
	assert.NotContains(t, set.Record(), "unbound")
}

func TestRestoreStateRejectsTampering(t *testing.T) {
	enc, err := NewEncoder([]byte("test-key"))
	require.NoError(t, err)
	set, _ := newTestSet(t)

	token, err := set.EncodeState(enc, false)
	require.NoError(t, err)

	err = set.RestoreState(enc, token+"x", false)
	assert.Error(t, err)
	assert.Equal(t, "Daniel", set.Record()["firstName"])

	set.Dispose()
	_, err = set.EncodeState(enc, false)
	assert.ErrorIs(t, err, ErrDisposed)
	assert.ErrorIs(t, set.RestoreState(enc, token, false), ErrDisposed)
}

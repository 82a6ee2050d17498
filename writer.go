package hxbind

import (
	"reflect"
	"time"
)

// ChangingEvent is passed to OnChanging before a leaf is mutated.
type ChangingEvent struct {
	Current  any
	Proposed any
}

// ChangedEvent is passed to OnChanged after a leaf was mutated.
type ChangedEvent struct {
	Prev  any
	Value any
}

// ChangingFunc observes a pending change.
type ChangingFunc func(ChangingEvent)

// ChangedFunc observes a committed change.
type ChangedFunc func(ChangedEvent)

// WriteOptions carries the hooks of one guarded write.
type WriteOptions struct {
	OnChanging ChangingFunc
	OnChanged  ChangedFunc
	// Equal reports whether the current leaf already holds the proposed
	// value. Nil compares loosely: numbers across kinds, times by instant.
	Equal func(current, proposed any) bool
	// Skip drops the write entirely, mutation and hooks alike.
	Skip bool
}

// Writer performs a guarded assignment into rec and reports whether the
// leaf was mutated.
type Writer func(rec Record, value any, opts WriteOptions) bool

// Compile builds the guarded write for p.
//
// The write is dropped silently when any intermediate record along p is
// missing, nil or not a record, and when the current leaf already equals
// value by opts.Equal. Otherwise OnChanging runs, the leaf is replaced, and OnChanged
// runs, in that order.
func Compile(p Path) (Writer, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	path := append(Path(nil), p...)
	leaf := path[len(path)-1]

	return func(rec Record, value any, opts WriteOptions) bool {
		if opts.Skip {
			return false
		}
		parent, ok := path.parent(rec)
		if !ok {
			return false
		}
		prev := parent[leaf]
		equal := opts.Equal
		if equal == nil {
			equal = looseEqual
		}
		if equal(prev, value) {
			return false
		}
		if opts.OnChanging != nil {
			opts.OnChanging(ChangingEvent{Current: prev, Proposed: value})
		}
		parent[leaf] = value
		if opts.OnChanged != nil {
			opts.OnChanged(ChangedEvent{Prev: prev, Value: value})
		}
		return true
	}, nil
}

// looseEqual compares values by content: nil matches nil pointers and
// absent keys, numbers compare across kinds, times compare instants.
func looseEqual(a, b any) bool {
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b)
	}
	if ta, ok := a.(time.Time); ok {
		tb, ok := b.(time.Time)
		return ok && ta.Equal(tb)
	}
	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		return ok && fa == fb
	}
	return reflect.DeepEqual(a, b)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// toFloat widens any numeric kind to float64.
func toFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

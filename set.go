package hxbind

import (
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"

	"github.com/pthm/hxbind/lib/encoding"
)

// Option configures a Set.
type Option func(*options)

type options struct {
	logger   zerolog.Logger
	snapshot func(Record) (Record, error)
}

// WithLogger sets the logger used for commit, masking and validation
// events. Defaults to a disabled logger.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithSnapshot replaces the deep copy handed to validation hooks.
// Defaults to encoding.Clone.
func WithSnapshot(fn func(Record) (Record, error)) Option {
	return func(o *options) {
		if fn != nil {
			o.snapshot = fn
		}
	}
}

// Set binds a record to a group of controls.
//
// A Set owns one Binding per Field, keyed by name. Values are read and
// written by name through Get and Set, which route to the matching
// binding; group operations (Subscribe, Validate, Errors, ...) apply to
// every binding in declaration order.
//
//	rec := hxbind.Record{"firstName": "Daniel", "total": nil}
//	set, err := hxbind.New(rec, []hxbind.Field{
//	    hxbind.TextField("firstName", hxbind.Path{"firstName"}, nameBox),
//	    hxbind.CurrencyField("total", hxbind.Path{"total"}, totalBox, format.NewCurrency(format.Spanish())),
//	})
//	set.Subscribe()
//	defer set.Dispose()
type Set struct {
	rec      Record
	bindings []*Binding
	byName   map[string]*Binding
	log      zerolog.Logger
	disposed bool
}

// New creates a Set over rec.
//
// Every field is checked before any binding is created; all contract
// violations (duplicate or empty names, invalid paths, missing controls or
// codecs) are reported together. Once built, each binding renders the
// record's current value into its control.
func New(rec Record, fields []Field, opts ...Option) (*Set, error) {
	o := &options{
		logger:   zerolog.Nop(),
		snapshot: encoding.Clone,
	}
	for _, opt := range opts {
		opt(o)
	}

	if rec == nil {
		return nil, fmt.Errorf("%w: nil record", ErrInvalidField)
	}

	var merr *multierror.Error
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if err := f.validate(); err != nil {
			merr = multierror.Append(merr, err)
			continue
		}
		if seen[f.Name] {
			merr = multierror.Append(merr, fmt.Errorf("%w: %q", ErrDuplicateField, f.Name))
			continue
		}
		seen[f.Name] = true
	}
	if err := merr.ErrorOrNil(); err != nil {
		return nil, err
	}

	s := &Set{
		rec:    rec,
		byName: make(map[string]*Binding, len(fields)),
		log:    o.logger,
	}
	for _, f := range fields {
		b, err := newBinding(f, rec, o)
		if err != nil {
			return nil, err
		}
		s.bindings = append(s.bindings, b)
		s.byName[f.Name] = b
	}

	for _, b := range s.bindings {
		b.SetValue(b.Value())
	}
	return s, nil
}

// Record returns the bound record.
func (s *Set) Record() Record {
	return s.rec
}

// Names returns the field names in declaration order.
func (s *Set) Names() []string {
	names := make([]string, len(s.bindings))
	for i, b := range s.bindings {
		names[i] = b.Name()
	}
	return names
}

// Binding returns the binding for name.
func (s *Set) Binding(name string) (*Binding, error) {
	if s.disposed {
		return nil, ErrDisposed
	}
	b, ok := s.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return b, nil
}

// Get reads the value of the named field.
func (s *Set) Get(name string) (any, error) {
	b, err := s.Binding(name)
	if err != nil {
		return nil, err
	}
	return b.Value(), nil
}

// Set writes v into the named field and its control, as Binding.SetValue.
func (s *Set) Set(name string, v any) error {
	b, err := s.Binding(name)
	if err != nil {
		return err
	}
	b.SetValue(v)
	return nil
}

// Subscribe attaches every binding to its control.
func (s *Set) Subscribe() {
	if s.disposed {
		return
	}
	for _, b := range s.bindings {
		b.Subscribe()
	}
}

// Unsubscribe detaches every binding from its control.
func (s *Set) Unsubscribe() {
	for _, b := range s.bindings {
		b.Unsubscribe()
	}
}

// Errors returns the stored findings of every binding, in declaration
// order and, within a binding, in the order they were reported.
func (s *Set) Errors() ValidationErrors {
	var errs ValidationErrors
	for _, b := range s.bindings {
		errs = append(errs, b.errs...)
	}
	return errs
}

// ClearErrors removes the findings match selects, or all findings when
// match is nil.
func (s *Set) ClearErrors(match func(ValidationError) bool) {
	for _, b := range s.bindings {
		b.ClearErrors(match)
	}
}

// Validate runs every binding's validation hook and returns the combined
// findings. Fields validate independently of each other.
func (s *Set) Validate() ValidationErrors {
	for _, b := range s.bindings {
		b.Validate()
	}
	errs := s.Errors()
	s.log.Debug().Int("errors", len(errs)).Msg("validate set")
	return errs
}

// Dispose detaches every binding and clears their findings. Field access
// afterwards fails with ErrDisposed.
func (s *Set) Dispose() {
	for _, b := range s.bindings {
		b.Dispose()
	}
	s.disposed = true
}

// MarshalJSON serializes the bound record.
func (s *Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.rec)
}

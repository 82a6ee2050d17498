package hxbind

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Field declares one binding between a record leaf and a control.
//
// Name, Path, Control, ToControl and ToValue are required. The constructors
// in fields.go (TextField, CurrencyField, DateStringField, DateField) fill
// the codec, focus and mask hooks for the standard kinds; callers typically
// add OnChanged or OnValidate to the returned Field.
type Field struct {
	// Name identifies the field within its Set.
	Name string
	// Path addresses the leaf in the record.
	Path Path
	// Kind tags the field for rendering and layouts. Informational only.
	Kind Kind
	// Control is the widget the leaf is shown in.
	Control Control

	// ToControl renders a value into the control.
	ToControl func(c Control, v any)
	// ToValue parses the control's text. It returns nil for "no value".
	ToValue func(c Control) any

	// OnFocus runs when the control gains focus.
	OnFocus func(c Control, v any)
	// OnBeforeInsert masks pending insertions.
	OnBeforeInsert func(e *InsertEvent)
	// OnChanging runs before the leaf is mutated.
	OnChanging ChangingFunc
	// OnChanged runs after the leaf was mutated.
	OnChanged ChangedFunc
	// OnValidate reports findings about the field's value.
	OnValidate func(ctx *ValidationContext)
	// Equal decides whether a write would leave the leaf unchanged. Nil
	// compares loosely (see WriteOptions.Equal).
	Equal func(current, proposed any) bool

	// CommitOn selects the control event that commits the control's text
	// into the record: EventBlur (the default) or EventChange.
	CommitOn EventKind
}

func (f Field) validate() error {
	if f.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidField)
	}
	if err := f.Path.Validate(); err != nil {
		return fmt.Errorf("field %q: %w", f.Name, err)
	}
	if f.Control == nil {
		return fmt.Errorf("%w: %q: nil control", ErrInvalidField, f.Name)
	}
	if f.ToControl == nil || f.ToValue == nil {
		return fmt.Errorf("%w: %q: ToControl and ToValue are required", ErrInvalidField, f.Name)
	}
	if f.CommitOn != EventBlur && f.CommitOn != EventChange {
		return fmt.Errorf("%w: %q: cannot commit on %s", ErrInvalidField, f.Name, f.CommitOn)
	}
	return nil
}

// Binding synchronizes one record leaf with one control.
//
// Bindings are created by New and live as long as their Set. They are not
// safe for concurrent use; all calls are expected on the goroutine that
// delivers control events.
type Binding struct {
	field Field
	rec   Record
	write Writer
	opts  *options
	log   zerolog.Logger

	// suppressed is raised while the binding itself pushes text into the
	// control, so the control's own events do not re-enter the write path.
	suppressed bool
	errs       ValidationErrors
	unsubs     []func()
}

func newBinding(f Field, rec Record, opts *options) (*Binding, error) {
	write, err := Compile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", f.Name, err)
	}
	return &Binding{
		field: f,
		rec:   rec,
		write: write,
		opts:  opts,
		log:   opts.logger.With().Str("field", f.Name).Logger(),
	}, nil
}

// Name returns the field name.
func (b *Binding) Name() string { return b.field.Name }

// Path returns the leaf path.
func (b *Binding) Path() Path { return b.field.Path }

// Kind returns the field kind.
func (b *Binding) Kind() Kind { return b.field.Kind }

// Control returns the bound control.
func (b *Binding) Control() Control { return b.field.Control }

// Value reads the leaf from the record.
func (b *Binding) Value() any {
	v, _ := b.field.Path.Get(b.rec)
	return v
}

// SetValue writes v into the record and renders it into the control.
//
// Change hooks fire when v differs from the current value. Events the
// control raises while its text is being replaced are ignored.
func (b *Binding) SetValue(v any) {
	defer b.suppress()()

	b.write(b.rec, v, b.writeOptions())
	b.field.ToControl(b.field.Control, v)
}

// Commit parses the control's text, writes the value into the record and
// renders it back so the control shows the canonical text. It reports
// whether the record changed. Commit does nothing while the binding is
// pushing text into its own control.
//
// Subscribed bindings commit on their CommitOn event; Commit is exposed for
// drivers that fill controls without raising events, such as form
// submissions.
func (b *Binding) Commit() bool {
	if b.suppressed {
		return false
	}
	v := b.field.ToValue(b.field.Control)
	changed := b.write(b.rec, v, b.writeOptions())
	b.render(v)

	b.log.Debug().Bool("changed", changed).Interface("value", v).Msg("commit")
	return changed
}

// Subscribe attaches the binding to its control's events. Calling it again
// replaces the previous subscription.
func (b *Binding) Subscribe() {
	b.Unsubscribe()

	c := b.field.Control
	commitOn := b.field.CommitOn
	b.unsubs = append(b.unsubs,
		c.Subscribe(commitOn, func(*Event) { b.Commit() }),
		c.Subscribe(EventFocus, b.handleFocus),
		c.Subscribe(EventBeforeInsert, b.handleBeforeInsert),
	)
}

// Unsubscribe detaches the binding from its control. It is safe to call
// on an unsubscribed binding.
func (b *Binding) Unsubscribe() {
	for _, unsubscribe := range b.unsubs {
		unsubscribe()
	}
	b.unsubs = nil
}

// Subscribed reports whether the binding reacts to control events.
func (b *Binding) Subscribed() bool {
	return len(b.unsubs) > 0
}

// Errors returns the findings of the last validation pass.
func (b *Binding) Errors() ValidationErrors {
	return append(ValidationErrors(nil), b.errs...)
}

// Validate runs the field's OnValidate hook over a snapshot of the record
// and stores the findings, replacing those of the previous pass.
func (b *Binding) Validate() ValidationErrors {
	b.errs = nil
	if b.field.OnValidate == nil {
		return nil
	}

	snapshot, err := b.opts.snapshot(b.rec)
	if err != nil {
		b.log.Error().Err(err).Msg("snapshot record for validation")
		snapshot = Record{}
	}

	ctx := &ValidationContext{
		Value:    b.Value(),
		Snapshot: snapshot,
	}
	b.field.OnValidate(ctx)

	for i := range ctx.Errors {
		ctx.Errors[i].Field = b.field.Name
		ctx.Errors[i].Control = b.field.Control
	}
	b.errs = append(ValidationErrors(nil), ctx.Errors...)

	b.log.Debug().Int("errors", len(b.errs)).Msg("validate")
	return b.Errors()
}

// ClearErrors removes the findings match selects, or all of them when
// match is nil.
func (b *Binding) ClearErrors(match func(ValidationError) bool) {
	if match == nil {
		b.errs = nil
		return
	}
	kept := b.errs[:0]
	for _, e := range b.errs {
		if !match(e) {
			kept = append(kept, e)
		}
	}
	b.errs = kept
}

// Dispose clears the findings and detaches the binding.
func (b *Binding) Dispose() {
	b.errs = nil
	b.Unsubscribe()
}

// render pushes v into the control without reacting to the control's own
// events.
func (b *Binding) render(v any) {
	defer b.suppress()()
	b.field.ToControl(b.field.Control, v)
}

func (b *Binding) handleFocus(*Event) {
	if b.field.OnFocus == nil {
		return
	}
	defer b.suppress()()
	b.field.OnFocus(b.field.Control, b.Value())
}

// suppress raises the suppression flag and returns the func restoring it.
func (b *Binding) suppress() func() {
	prev := b.suppressed
	b.suppressed = true
	return func() { b.suppressed = prev }
}

func (b *Binding) writeOptions() WriteOptions {
	return WriteOptions{
		OnChanging: b.field.OnChanging,
		OnChanged:  b.field.OnChanged,
		Equal:      b.field.Equal,
	}
}

// Package layout declares binding sets in YAML.
//
// A layout names the number format for currency fields, the location dates
// are read in, and one entry per field:
//
//	currency:
//	  group: "."
//	  decimal: ","
//	  symbol: "€"
//	  fraction: 2
//	date:
//	  location: Europe/Madrid
//	fields:
//	  - name: firstName
//	    path: firstName
//	    required: true
//	  - name: total
//	    path: invoice.total
//	    kind: currency
//	    forbid: ["0,00"]
//	  - name: createDate
//	    path: invoice.createDate
//	    kind: datestring
//	    commit: change
//
// Bind turns a layout into hxbind.Field values bound to caller-supplied
// controls.
package layout

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
	"unicode/utf8"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"github.com/pthm/hxbind"
	"github.com/pthm/hxbind/lib/format"
)

// Validation codes reported by declarative rules.
const (
	CodeRequired  = "REQUIRED"
	CodeForbidden = "FORBIDDEN"
)

// ErrInvalidLayout is returned for layouts that cannot be bound.
var ErrInvalidLayout = errors.New("layout: invalid layout")

// Layout is a parsed layout document.
type Layout struct {
	Currency *Currency `yaml:"currency"`
	Date     Date      `yaml:"date"`
	Fields   []Field   `yaml:"fields"`
}

// Currency overrides the number format of currency fields. Unset keys keep
// the Spanish defaults.
type Currency struct {
	Group    *string `yaml:"group"`
	Decimal  *string `yaml:"decimal"`
	Symbol   *string `yaml:"symbol"`
	Fraction *int    `yaml:"fraction"`
}

// Date configures date fields.
type Date struct {
	// Location is an IANA zone name. Empty means UTC.
	Location string `yaml:"location"`
}

// Field declares one binding.
type Field struct {
	Name string `yaml:"name"`
	// Path is the dotted leaf path. Defaults to Name.
	Path string `yaml:"path"`
	// Kind is one of text, currency, date, datestring. Defaults to text.
	Kind string `yaml:"kind"`
	// Control keys the control in the map passed to Bind. Defaults to Name.
	Control string `yaml:"control"`
	// Commit is blur (the default) or change.
	Commit   string   `yaml:"commit"`
	Required bool     `yaml:"required"`
	Forbid   []string `yaml:"forbid"`
}

// Load reads and validates the layout at path.
func Load(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	l, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// Parse decodes and validates a layout document. Unknown keys are errors.
func Parse(data []byte) (*Layout, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var l Layout
	if err := dec.Decode(&l); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidLayout)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// Validate reports every problem in the layout at once.
func (l *Layout) Validate() error {
	var merr *multierror.Error
	fail := func(msg string, args ...any) {
		merr = multierror.Append(merr, fmt.Errorf("%w: "+msg, append([]any{ErrInvalidLayout}, args...)...))
	}

	if len(l.Fields) == 0 {
		fail("no fields")
	}

	nf := l.NumberFormat()
	if utf8.RuneCountInString(nf.Decimal) != 1 {
		fail("currency: decimal separator %q must be a single character", nf.Decimal)
	}
	if nf.Group == nf.Decimal {
		fail("currency: group and decimal separators are both %q", nf.Group)
	}
	if nf.Fraction < 0 || nf.Fraction > 6 {
		fail("currency: fraction %d out of range 0-6", nf.Fraction)
	}
	if _, err := l.Location(); err != nil {
		fail("date: %v", err)
	}

	seen := make(map[string]bool, len(l.Fields))
	for i, f := range l.Fields {
		if f.Name == "" {
			fail("fields[%d]: missing name", i)
			continue
		}
		if seen[f.Name] {
			fail("fields[%d]: duplicate name %q", i, f.Name)
		}
		seen[f.Name] = true

		if _, err := hxbind.ParsePath(f.path()); err != nil {
			fail("field %q: %v", f.Name, err)
		}
		if !hxbind.Kind(f.kind()).Valid() {
			fail("field %q: unknown kind %q", f.Name, f.Kind)
		}
		if _, err := f.commitOn(); err != nil {
			fail("field %q: %v", f.Name, err)
		}
	}
	return merr.ErrorOrNil()
}

// NumberFormat returns the currency convention, with defaults applied.
func (l *Layout) NumberFormat() format.NumberFormat {
	nf := format.Spanish()
	if c := l.Currency; c != nil {
		if c.Group != nil {
			nf.Group = *c.Group
		}
		if c.Decimal != nil {
			nf.Decimal = *c.Decimal
		}
		if c.Symbol != nil {
			nf.Symbol = *c.Symbol
		}
		if c.Fraction != nil {
			nf.Fraction = *c.Fraction
		}
	}
	return nf
}

// Location loads the date location.
func (l *Layout) Location() (*time.Location, error) {
	if l.Date.Location == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(l.Date.Location)
}

// ControlNames returns the control key of every field, in order.
func (l *Layout) ControlNames() []string {
	names := make([]string, len(l.Fields))
	for i, f := range l.Fields {
		names[i] = f.control()
	}
	return names
}

// TextBoxes creates an empty TextBox for every field, keyed by control name.
func (l *Layout) TextBoxes() map[string]hxbind.Control {
	controls := make(map[string]hxbind.Control, len(l.Fields))
	for _, name := range l.ControlNames() {
		controls[name] = hxbind.NewTextBox("")
	}
	return controls
}

// Bind builds the hxbind fields of the layout. Every field's control is
// looked up in controls by its control name; missing controls are reported
// together.
func (l *Layout) Bind(controls map[string]hxbind.Control) ([]hxbind.Field, error) {
	loc, err := l.Location()
	if err != nil {
		return nil, fmt.Errorf("%w: date: %v", ErrInvalidLayout, err)
	}
	cur := format.NewCurrency(l.NumberFormat())
	date := format.NewDate(loc)

	var merr *multierror.Error
	fields := make([]hxbind.Field, 0, len(l.Fields))
	for _, decl := range l.Fields {
		c, ok := controls[decl.control()]
		if !ok || c == nil {
			merr = multierror.Append(merr, fmt.Errorf("%w: field %q: no control %q", ErrInvalidLayout, decl.Name, decl.control()))
			continue
		}
		path, err := hxbind.ParsePath(decl.path())
		if err != nil {
			merr = multierror.Append(merr, fmt.Errorf("field %q: %w", decl.Name, err))
			continue
		}
		commitOn, err := decl.commitOn()
		if err != nil {
			merr = multierror.Append(merr, fmt.Errorf("field %q: %w", decl.Name, err))
			continue
		}

		var f hxbind.Field
		switch hxbind.Kind(decl.kind()) {
		case hxbind.KindCurrency:
			f = hxbind.CurrencyField(decl.Name, path, c, cur)
		case hxbind.KindDate:
			f = hxbind.DateField(decl.Name, path, c, date)
		case hxbind.KindDateString:
			f = hxbind.DateStringField(decl.Name, path, c, date)
		case hxbind.KindText:
			f = hxbind.TextField(decl.Name, path, c)
		default:
			merr = multierror.Append(merr, fmt.Errorf("%w: field %q: unknown kind %q", ErrInvalidLayout, decl.Name, decl.Kind))
			continue
		}
		f.CommitOn = commitOn
		f.OnValidate = decl.validator(c)
		fields = append(fields, f)
	}
	if err := merr.ErrorOrNil(); err != nil {
		return nil, err
	}
	return fields, nil
}

// validator builds the declarative rules of f, or nil when it has none.
func (f Field) validator(c hxbind.Control) func(*hxbind.ValidationContext) {
	if !f.Required && len(f.Forbid) == 0 {
		return nil
	}
	return func(ctx *hxbind.ValidationContext) {
		if f.Required && isEmpty(ctx.Value) {
			ctx.Add(CodeRequired, fmt.Sprintf("%s is required", f.Name))
			return
		}
		text := c.Text()
		for _, forbidden := range f.Forbid {
			if text == forbidden {
				ctx.Add(CodeForbidden, fmt.Sprintf("%s must not be %q", f.Name, forbidden))
				return
			}
		}
	}
}

func isEmpty(v any) bool {
	switch s := v.(type) {
	case nil:
		return true
	case string:
		return s == ""
	}
	return false
}

func (f Field) path() string {
	if f.Path == "" {
		return f.Name
	}
	return f.Path
}

func (f Field) kind() string {
	if f.Kind == "" {
		return string(hxbind.KindText)
	}
	return f.Kind
}

func (f Field) control() string {
	if f.Control == "" {
		return f.Name
	}
	return f.Control
}

func (f Field) commitOn() (hxbind.EventKind, error) {
	switch f.Commit {
	case "", "blur":
		return hxbind.EventBlur, nil
	case "change":
		return hxbind.EventChange, nil
	}
	return 0, fmt.Errorf("%w: unknown commit event %q", ErrInvalidLayout, f.Commit)
}

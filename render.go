package hxbind

import (
	"context"
	"io"
	"sort"
	"strings"

	"github.com/a-h/templ"
)

// Input renders the binding as an <input> element carrying the control's
// current text.
//
// The element gets the field name as id and name, the text as value and
// the kind as data-hxbind-kind, so client-side code can attach the matching
// mask. Extra attributes are merged in and win over the defaults:
//
//	@binding.Input(templ.Attributes{"class": "amount", "autocomplete": "off"})
func (b *Binding) Input(attrs templ.Attributes) templ.Component {
	merged := templ.Attributes{
		"type":  "text",
		"id":    b.field.Name,
		"name":  b.field.Name,
		"value": b.field.Control.Text(),
	}
	if b.field.Kind != "" {
		merged["data-hxbind-kind"] = string(b.field.Kind)
	}
	if len(b.errs) > 0 {
		merged["aria-invalid"] = "true"
	}
	for k, v := range attrs {
		merged[k] = v
	}

	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var sb strings.Builder
		sb.WriteString("<input")
		writeAttributes(&sb, merged)
		sb.WriteString(">")
		_, err := io.WriteString(w, sb.String())
		return err
	})
}

// ErrorSummary renders findings as a list. It renders nothing when errs is
// empty.
//
//	@hxbind.ErrorSummary(set.Validate())
func ErrorSummary(errs ValidationErrors) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(errs) == 0 {
			return nil
		}

		var sb strings.Builder
		sb.WriteString(`<ul class="hxbind-errors">`)
		for _, e := range errs {
			sb.WriteString(`<li data-field="`)
			sb.WriteString(templ.EscapeString(e.Field))
			sb.WriteString(`" data-code="`)
			sb.WriteString(templ.EscapeString(e.Code))
			sb.WriteString(`">`)
			sb.WriteString(templ.EscapeString(e.Message))
			sb.WriteString(`</li>`)
		}
		sb.WriteString(`</ul>`)

		_, err := io.WriteString(w, sb.String())
		return err
	})
}

// writeAttributes writes attrs in key order. Boolean attributes are written
// bare when true and skipped when false.
func writeAttributes(sb *strings.Builder, attrs templ.Attributes) {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		switch v := attrs[k].(type) {
		case bool:
			if v {
				sb.WriteString(" ")
				sb.WriteString(templ.EscapeString(k))
			}
		case string:
			sb.WriteString(" ")
			sb.WriteString(templ.EscapeString(k))
			sb.WriteString(`="`)
			sb.WriteString(templ.EscapeString(v))
			sb.WriteString(`"`)
		}
	}
}

// Package hxbind keeps the leaves of a nested record in sync with the
// text-entry controls of a form.
//
// A Set is built from a Record and a list of Fields. Each Field names a
// leaf by Path, a Control that shows it, and the codecs converting between
// the two. The Set creates one Binding per Field and renders the current
// record into every control.
//
//	rec := hxbind.Record{"firstName": "Daniel", "total": 1234.5}
//	set, err := hxbind.New(rec, []hxbind.Field{
//	    hxbind.TextField("firstName", hxbind.Path{"firstName"}, nameBox),
//	    hxbind.CurrencyField("total", hxbind.Path{"total"}, totalBox, cur),
//	})
//	if err != nil {
//	    return err
//	}
//	set.Subscribe()
//	defer set.Dispose()
//
// # Commit
//
// A subscribed binding commits when its control raises the field's
// CommitOn event (blur by default): the control text is parsed with
// ToValue, written into the record, and rendered back with ToControl so
// the control shows the canonical text. Writes go through a compiled
// Writer that drops the write when the value did not change or when an
// intermediate record along the path is missing. OnChanging and OnChanged
// hooks run around every effective write.
//
// While a binding pushes text into its own control (SetValue, the render
// after a commit, focus hooks) the control's events are ignored, so text
// set programmatically never commits back into the record.
//
// # Masking
//
// Before an insertion reaches the control, the field's OnBeforeInsert
// policy may cancel it, rewrite the inserted text, or move the selection.
// Policies for dates and currency amounts live in lib/mask.
//
// # Validation
//
// OnValidate hooks receive the field value and a deep copy of the record.
// Findings are stamped with the field name and control and kept until the
// next validation pass or ClearErrors.
//
// # Controls
//
// Control abstracts the widget. TextBox is an in-memory implementation for
// tests, command line tools and form submissions; TestEdit and TestType
// drive it through a focus, edit, blur cycle.
//
// # Rendering and state
//
// Binding.Input and ErrorSummary render a Set as templ components.
// Set.EncodeState and Set.RestoreState carry bound values through a signed
// or encrypted token.
package hxbind

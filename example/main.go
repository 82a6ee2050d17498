// Command example binds a small invoice record to headless text boxes,
// types into them the way a user would, and prints the record, the
// validation findings and the rendered form.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/pthm/hxbind"
	"github.com/pthm/hxbind/lib/format"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if err := run(logger); err != nil {
		logger.Fatal().Err(err).Msg("example failed")
	}
}

func run(logger zerolog.Logger) error {
	rec := hxbind.Record{
		"id":         1,
		"createDate": "01/11/2080",
		"firstName":  "Daniel",
		"total":      nil,
		"nativeDate": time.Date(2050, 5, 6, 0, 0, 0, 0, time.UTC),
	}

	cur := format.NewCurrency(format.Spanish())
	date := format.NewDate(time.UTC)

	firstName := hxbind.TextField("firstName", hxbind.Path{"firstName"}, hxbind.NewTextBox(""))
	firstName.OnValidate = func(ctx *hxbind.ValidationContext) {
		logger.Info().Interface("snapshot", ctx.Snapshot).Interface("value", ctx.Value).Msg("validating")
		if ctx.Value == "A" {
			ctx.Add("X-011", `One letter "A" is not allowed`)
		}
	}
	total := hxbind.CurrencyField("total", hxbind.Path{"total"}, hxbind.NewTextBox(""), cur)
	total.OnChanged = func(e hxbind.ChangedEvent) {
		logger.Info().Interface("prev", e.Prev).Interface("value", e.Value).Msg("total changed")
	}

	set, err := hxbind.New(rec, []hxbind.Field{
		firstName,
		total,
		hxbind.DateStringField("createDate", hxbind.Path{"createDate"}, hxbind.NewTextBox(""), date),
		hxbind.DateField("nativeDate", hxbind.Path{"nativeDate"}, hxbind.NewTextBox(""), date),
	}, hxbind.WithLogger(logger.Level(zerolog.InfoLevel)))
	if err != nil {
		return err
	}
	set.Subscribe()
	defer set.Dispose()

	edits := []struct{ name, text string }{
		{"firstName", "A"},
		{"total", "1234.5"},
		{"createDate", "15/03/2081"},
	}
	for _, edit := range edits {
		result, err := hxbind.TestType(set, edit.name, edit.text)
		if err != nil {
			return err
		}
		fmt.Printf("%-10s typed %-12q shows %q\n", edit.name, edit.text, result.Text)
	}

	data, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return err
	}
	fmt.Printf("record: %s\n", data)

	errs := set.Validate()
	for _, e := range errs {
		fmt.Printf("invalid: %s\n", e.Error())
	}

	ctx := context.Background()
	for _, name := range set.Names() {
		b, err := set.Binding(name)
		if err != nil {
			return err
		}
		if err := b.Input(nil).Render(ctx, os.Stdout); err != nil {
			return err
		}
		fmt.Println()
	}
	if err := hxbind.ErrorSummary(errs).Render(ctx, os.Stdout); err != nil {
		return err
	}
	fmt.Println()
	return nil
}

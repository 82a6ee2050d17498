package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/pthm/hxbind"
	"github.com/pthm/hxbind/lib/format"
	"github.com/pthm/hxbind/lib/layout"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "check":
		err = runCheck(args)
	case "format":
		err = runFormat(args)
	case "parse":
		err = runParse(args)
	case "fill":
		err = runFill(args)
	case "version":
		fmt.Printf("hxbind version %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`hxbind - record to form binding tools

Usage:
  hxbind <command> [arguments]

Commands:
  check <layout>                       Validate a layout file
  format <kind> <value>                Render a value as field text
  parse <kind> <text>                  Parse field text into a value
  fill [-v] [-dump] <layout> <record> name=text...
                                       Type text into fields and print the record
  version                              Print version
  help                                 Show this help

Kinds:
  currency     amounts such as 1.234,56 (format takes 1234.56)
  date         DD/MM/YYYY dates (format takes YYYY-MM-DD)
  datestring   DD/MM/YYYY dates kept as text

Options for fill:
  -v                Log commits and masking to stderr
  -dump             Dump the resulting record structure

Examples:
  hxbind check invoice.yaml
  hxbind format currency 1234.5
  hxbind fill invoice.yaml invoice.json total=99.9 createDate=01/02/2024`)
}

func runCheck(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: hxbind check <layout>")
	}
	l, err := layout.Load(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d fields ok\n", args[0], len(l.Fields))
	return nil
}

func runFormat(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: hxbind format <kind> <value>")
	}
	kind, value := args[0], args[1]

	switch hxbind.Kind(kind) {
	case hxbind.KindCurrency:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("not a number: %q", value)
		}
		fmt.Println(format.NewCurrency(format.Spanish()).Format(v))
	case hxbind.KindDate:
		t, err := time.Parse(time.DateOnly, value)
		if err != nil {
			return fmt.Errorf("not a YYYY-MM-DD date: %q", value)
		}
		fmt.Println(format.NewDate(time.UTC).Format(t))
	case hxbind.KindDateString:
		s, ok := format.NewDate(time.UTC).Normalize(value)
		if !ok {
			return fmt.Errorf("not a DD/MM/YYYY date: %q", value)
		}
		fmt.Println(s)
	default:
		return fmt.Errorf("unknown kind: %s", kind)
	}
	return nil
}

func runParse(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: hxbind parse <kind> <text>")
	}
	kind, text := args[0], args[1]

	switch hxbind.Kind(kind) {
	case hxbind.KindCurrency:
		v, ok := format.NewCurrency(format.Spanish()).Parse(text)
		if !ok {
			return fmt.Errorf("not an amount: %q", text)
		}
		fmt.Println(strconv.FormatFloat(v, 'f', -1, 64))
	case hxbind.KindDate, hxbind.KindDateString:
		t, ok := format.NewDate(time.UTC).Parse(text)
		if !ok {
			return fmt.Errorf("not a DD/MM/YYYY date: %q", text)
		}
		fmt.Println(t.Format(time.DateOnly))
	default:
		return fmt.Errorf("unknown kind: %s", kind)
	}
	return nil
}

func runFill(args []string) error {
	var verbose, dump bool
	var positional []string
	for _, arg := range args {
		switch arg {
		case "-v", "--verbose":
			verbose = true
		case "-dump", "--dump":
			dump = true
		default:
			positional = append(positional, arg)
		}
	}
	if len(positional) < 2 {
		return errors.New("usage: hxbind fill [-v] [-dump] <layout> <record> name=text...")
	}

	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	l, err := layout.Load(positional[0])
	if err != nil {
		return err
	}
	rec, err := loadRecord(positional[1])
	if err != nil {
		return err
	}

	fields, err := l.Bind(l.TextBoxes())
	if err != nil {
		return err
	}
	set, err := hxbind.New(rec, fields, hxbind.WithLogger(logger))
	if err != nil {
		return err
	}
	set.Subscribe()
	defer set.Dispose()

	for _, edit := range positional[2:] {
		name, text, ok := strings.Cut(edit, "=")
		if !ok {
			return fmt.Errorf("edit %q: want name=text", edit)
		}
		result, err := hxbind.TestType(set, name, text)
		if err != nil {
			return err
		}
		logger.Info().Str("field", name).Str("typed", result.EditedText).Str("text", result.Text).Msg("filled")
	}

	errs := set.Validate()

	if dump {
		spew.Fdump(os.Stderr, set.Record())
	}
	out, err := yaml.Marshal(set.Record())
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	os.Stdout.Write(out)

	for _, e := range errs {
		fmt.Fprintf(os.Stderr, "invalid: %s\n", e.Error())
	}
	if len(errs) > 0 {
		return fmt.Errorf("%d validation errors", len(errs))
	}
	return nil
}

// loadRecord reads a YAML or JSON record file.
func loadRecord(path string) (hxbind.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read record: %w", err)
	}
	rec := hxbind.Record{}
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rec, nil
}

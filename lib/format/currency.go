// Package format converts domain values to and from their on-screen text.
//
// Every formatter is a plain value constructed by the caller, so locale
// conventions are chosen per field rather than per process. Parsers never
// fail loudly: malformed text yields (zero, false), which callers store as
// "no value".
package format

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// NumberFormat describes how a decimal amount is written.
type NumberFormat struct {
	Group    string // thousands separator, e.g. "."
	Decimal  string // decimal separator, e.g. ","
	Symbol   string // currency symbol tolerated on parse, e.g. "€"
	Fraction int    // fixed number of fractional digits
}

// Spanish returns the es-ES euro convention: "1.234,56".
func Spanish() NumberFormat {
	return NumberFormat{Group: ".", Decimal: ",", Symbol: "€", Fraction: 2}
}

// Currency formats and parses grouped decimal amounts.
type Currency struct {
	nf NumberFormat
}

// NewCurrency creates a currency formatter for the given number format.
func NewCurrency(nf NumberFormat) Currency {
	if nf.Fraction < 0 {
		nf.Fraction = 0
	}
	return Currency{nf: nf}
}

// NumberFormat returns the convention this formatter writes.
func (c Currency) NumberFormat() NumberFormat {
	return c.nf
}

// Format renders v with grouping and exactly Fraction decimals.
// Ties are resolved by strconv's correctly rounded conversion.
func (c Currency) Format(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}

	digits := strconv.FormatFloat(math.Abs(v), 'f', c.nf.Fraction, 64)
	intPart, fracPart, _ := strings.Cut(digits, ".")

	var b strings.Builder
	if v < 0 && strings.Trim(digits, "0.") != "" {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(c.nf.Group)
		}
		b.WriteRune(r)
	}
	if fracPart != "" {
		b.WriteString(c.nf.Decimal)
		b.WriteString(fracPart)
	}
	return b.String()
}

// Parse reads text such as "1.234,56 €" back into a number.
//
// The symbol, whitespace and group separators are dropped. When the text
// holds no decimal separator and a single group separator that is not
// followed by exactly three digits, that separator is read as the decimal
// point, so "1.5" parses as 1.5 while "1.500" parses as 1500.
func (c Currency) Parse(text string) (float64, bool) {
	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)
	if c.nf.Symbol != "" {
		s = strings.ReplaceAll(s, c.nf.Symbol, "")
	}
	if s == "" {
		return 0, false
	}

	if c.nf.Group != "" {
		if c.nf.Decimal != "" && !strings.Contains(s, c.nf.Decimal) && strings.Count(s, c.nf.Group) == 1 {
			_, after, _ := strings.Cut(s, c.nf.Group)
			if len(after) != 3 {
				s = strings.Replace(s, c.nf.Group, ".", 1)
			} else {
				s = strings.ReplaceAll(s, c.nf.Group, "")
			}
		} else {
			s = strings.ReplaceAll(s, c.nf.Group, "")
		}
	}
	if c.nf.Decimal != "" && c.nf.Decimal != "." {
		s = strings.ReplaceAll(s, c.nf.Decimal, ".")
	}
	if !isPlainDecimal(s) {
		return 0, false
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// isPlainDecimal accepts an optional sign, digits and at most one point.
func isPlainDecimal(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == '-' || s[0] == '+' {
		s = s[1:]
	}
	digits, points := 0, 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.':
			points++
		default:
			return false
		}
	}
	return digits > 0 && points <= 1
}

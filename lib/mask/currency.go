package mask

import "strings"

// MaxDecimals is the number of fractional digits Currency admits.
const MaxDecimals = 2

// Currency restricts input to a decimal-comma amount such as "1234,56",
// admitting at most MaxDecimals fractional digits.
func Currency(e *InsertEvent) {
	decimalComma(e)
}

var decimalComma = NewCurrency(',', MaxDecimals)

// NewCurrency returns a policy restricting input to an amount written with
// the given decimal separator, such as "1234.56" for '.'.
//
// Only digits and a single separator are accepted. A typed "." or "," is
// rewritten to decimal with the caret placed after it. A second separator
// is refused unless the selection being replaced contains the existing one.
// Digits typed after the separator are refused once they would leave more
// than maxDecimals fractional digits. With maxDecimals <= 0 separators are
// refused outright.
func NewCurrency(decimal rune, maxDecimals int) Policy {
	sep := string(decimal)
	return func(e *InsertEvent) {
		if e.RangeText == "" {
			return
		}

		if e.RangeText == "." || e.RangeText == "," || e.RangeText == sep {
			if maxDecimals <= 0 {
				e.Cancel = true
				return
			}
			if strings.Contains(e.Text, sep) && !strings.Contains(e.SelectedText, sep) {
				e.Cancel = true
				return
			}
			if e.RangeText != sep {
				e.RangeText = sep
				e.SelectionStart++
				e.SelectionEnd = e.SelectionStart
			}
			return
		}

		if !isDigits(e.RangeText) {
			e.Cancel = true
			return
		}

		at := indexFrom(e.Text, decimal, 0)
		if at == -1 || strings.Contains(e.SelectedText, sep) || e.SelectionStart <= at {
			return
		}
		// Decimals kept on either side of the edit window.
		kept := (e.SelectionStart - (at + 1)) + (length(e.Text) - e.SelectionEnd)
		if kept+length(e.RangeText) > maxDecimals {
			e.Cancel = true
		}
	}
}

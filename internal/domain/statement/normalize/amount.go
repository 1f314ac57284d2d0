package normalize

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a raw amount string into a decimal. Currency letters
// and symbols are stripped, a leading/trailing minus or enclosing
// parentheses mark the value negative, the thousands separator is removed
// and the decimal separator normalized. When the separators are not
// configured they are inferred from the string itself, the way European
// and US exports disagree about ',' and '.'.
func ParseAmount(raw string, decimalSep, thousandsSep rune) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Decimal{}, fmt.Errorf("empty amount")
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	s = stripCurrency(s)
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	} else if strings.HasPrefix(s, "+") {
		s = s[1:]
	}
	if strings.HasSuffix(s, "-") {
		negative = true
		s = s[:len(s)-1]
	}

	// Spaces (including non-breaking) only ever group thousands.
	s = strings.Map(func(r rune) rune {
		if r == ' ' || r == '\u00A0' || r == '\u202F' {
			return -1
		}
		return r
	}, s)
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, fmt.Errorf("no digits in amount %q", raw)
	}

	if decimalSep == 0 {
		decimalSep, thousandsSep = inferSeparators(s)
	}
	if thousandsSep != 0 {
		s = strings.ReplaceAll(s, string(thousandsSep), "")
	}
	if decimalSep != 0 && decimalSep != '.' {
		s = strings.ReplaceAll(s, string(decimalSep), ".")
	}

	value, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	if negative {
		value = value.Neg()
	}
	return value, nil
}

// stripCurrency removes currency letters and symbols (EUR, FCFA, €, $ and
// friends) while keeping digits, separators and signs.
func stripCurrency(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsDigit(r):
			return r
		case r == '.' || r == ',' || r == '-' || r == '+' || r == ' ' || r == '\u00A0' || r == '\u202F':
			return r
		default:
			return -1
		}
	}, s)
}

// inferSeparators decides which of ',' and '.' is the decimal separator
// when the caller did not say. When both appear, the later one is the
// decimal; a lone separator followed by at most two digits is a decimal.
func inferSeparators(s string) (decimalSep, thousandsSep rune) {
	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			return ',', '.'
		}
		return '.', ','
	case lastComma >= 0:
		if len(s)-lastComma-1 <= 2 {
			return ',', 0
		}
		return 0, ','
	case lastDot >= 0:
		if len(s)-lastDot-1 <= 2 {
			return '.', 0
		}
		return 0, '.'
	}
	return 0, 0
}

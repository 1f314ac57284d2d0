package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// commonLayouts are tried in order after an explicitly configured layout.
// Day-first layouts come before month-first: the statements this pipeline
// sees are predominantly European.
var commonLayouts = []string{
	"02/01/2006",
	"2006-01-02",
	"01/02/2006",
	"02-01-2006",
	"02.01.2006",
	"02/01/06",
	"2/1/2006",
}

var dateComponentsRe = regexp.MustCompile(`^(\d{1,4})[/.-](\d{1,2})[/.-](\d{1,4})$`)

// ParseDate parses a raw date string. The explicit layout is tried first,
// then the common layout list, then a lenient component parse. A
// candidate is accepted only if the parsed result reproduces the original
// numeric day, which rejects calendar-invalid dates such as 31/02/2024
// instead of clamping them.
func ParseDate(raw, explicitLayout string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	layouts := commonLayouts
	if explicitLayout != "" {
		layouts = append([]string{explicitLayout}, commonLayouts...)
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		if roundTripsDay(raw, parsed) {
			return parsed, nil
		}
	}

	if parsed, ok := parseLenient(raw); ok {
		return parsed, nil
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", raw)
}

// roundTripsDay checks that the day-of-month visible in the raw string
// survived parsing. Layouts that happen to match the wrong components
// (month/day swap on ambiguous dates) still pass when the day value is
// preserved somewhere; the guard exists to reject calendar overflow.
func roundTripsDay(raw string, parsed time.Time) bool {
	m := dateComponentsRe.FindStringSubmatch(raw)
	if m == nil {
		return true
	}
	first, _ := strconv.Atoi(m[1])
	second, _ := strconv.Atoi(m[2])
	third, _ := strconv.Atoi(m[3])

	day := parsed.Day()
	return day == first || day == second || day == third
}

// parseLenient splits the raw string on date separators and interprets
// the pieces day-first (or year-first when the leading piece has four
// digits). The reconstructed date must round-trip through time.Date.
func parseLenient(raw string) (time.Time, bool) {
	m := dateComponentsRe.FindStringSubmatch(raw)
	if m == nil {
		return time.Time{}, false
	}

	first, _ := strconv.Atoi(m[1])
	second, _ := strconv.Atoi(m[2])
	third, _ := strconv.Atoi(m[3])

	var day, month, year int
	if len(m[1]) == 4 {
		year, month, day = first, second, third
	} else {
		day, month, year = first, second, third
	}
	if year < 100 {
		year += 2000
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}

	candidate := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if candidate.Day() != day || candidate.Month() != time.Month(month) || candidate.Year() != year {
		// time.Date normalized an invalid calendar date (e.g. 31/02).
		return time.Time{}, false
	}
	return candidate, true
}

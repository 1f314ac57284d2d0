// Package heuristic reconstructs transaction rows from unstructured text
// lines, the kind produced by PDF extraction or OCR. It keys on positional
// cues: a date-shaped prefix, amount-shaped substrings, and the text in
// between as the description.
package heuristic

import (
	"regexp"
	"strings"

	"github.com/FACorreiaa/statement-ingest/internal/domain/statement/model"
)

const minLineLength = 10

// Statement header vocabulary (multi-language). A line containing two or
// more of these is a column header, not a transaction.
var headerKeywords = []string{
	"date", "description", "amount", "balance", "debit", "credit", "reference",
	"libellé", "libelle", "montant", "solde", "opération", "operation", "valeur",
}

var (
	dateRe = regexp.MustCompile(`\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4}`)
	// Digit groups with optional space/dot/comma thousands separators, an
	// optional 1-2 digit decimal part, optional sign or parentheses.
	amountRe = regexp.MustCompile(`[-+]?\(?(?:\d{1,3}(?:[ \x{00A0}.,]\d{3})+|\d+)(?:[.,]\d{1,2})?\)?-?`)
)

// Reconstruct turns ordered plain-text lines into ImportedRows. Lines that
// are too short, look like headers, or lack a date or an amount are
// dropped. The first amount on a line is the transaction amount; a second
// one, when present, is the running balance. Further amounts are ignored.
func Reconstruct(lines []string) []model.ImportedRow {
	var rows []model.ImportedRow
	for _, line := range lines {
		if row, ok := reconstructLine(line); ok {
			rows = append(rows, row)
		}
	}
	return rows
}

func reconstructLine(line string) (model.ImportedRow, bool) {
	line = strings.TrimSpace(line)
	if len(line) < minLineLength || isHeaderLine(line) {
		return nil, false
	}

	dateLoc := dateRe.FindStringIndex(line)
	if dateLoc == nil {
		return nil, false
	}
	date := line[dateLoc[0]:dateLoc[1]]
	rest := line[dateLoc[1]:]

	// A trailing value date must not be mistaken for an amount.
	dateLocs := dateRe.FindAllStringIndex(rest, -1)
	amountLocs := excludeOverlaps(amountRe.FindAllStringIndex(rest, -1), dateLocs)
	if len(amountLocs) == 0 {
		return nil, false
	}

	description := describeBetween(rest, amountLocs)
	row := model.ImportedRow{
		string(model.FieldDate):        model.TextCell(date),
		string(model.FieldDescription): model.TextCell(description),
		string(model.FieldAmount):      model.TextCell(strings.TrimSpace(rest[amountLocs[0][0]:amountLocs[0][1]])),
	}
	if len(amountLocs) > 1 {
		row[string(model.FieldBalance)] = model.TextCell(strings.TrimSpace(rest[amountLocs[1][0]:amountLocs[1][1]]))
	}
	return row, true
}

// describeBetween extracts the description between the date and the first
// amount. When that window is too narrow it falls back to the whole
// remainder with the amount substrings stripped out.
func describeBetween(rest string, amountLocs [][]int) string {
	description := trimPunct(rest[:amountLocs[0][0]])
	if len([]rune(description)) >= 3 {
		return description
	}

	stripped := rest
	for i := len(amountLocs) - 1; i >= 0; i-- {
		stripped = stripped[:amountLocs[i][0]] + stripped[amountLocs[i][1]:]
	}
	return trimPunct(stripped)
}

func excludeOverlaps(locs, forbidden [][]int) [][]int {
	if len(forbidden) == 0 {
		return locs
	}
	kept := locs[:0]
	for _, loc := range locs {
		overlaps := false
		for _, f := range forbidden {
			if loc[0] < f[1] && f[0] < loc[1] {
				overlaps = true
				break
			}
		}
		if !overlaps {
			kept = append(kept, loc)
		}
	}
	return kept
}

func trimPunct(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		switch r {
		case ' ', '\t', '.', ',', ':', ';', '-', '*', '|', '_':
			return true
		}
		return false
	})
}

func isHeaderLine(line string) bool {
	lower := strings.ToLower(line)
	matches := 0
	for _, kw := range headerKeywords {
		if strings.Contains(lower, kw) {
			matches++
			if matches >= 2 {
				return true
			}
		}
	}
	return false
}

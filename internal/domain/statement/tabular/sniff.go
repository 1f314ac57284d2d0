// Package tabular reads delimited tables and spreadsheets into the shared
// row representation. Both readers emit the same ImportedRow shape so the
// rest of the pipeline does not care which one produced a row.
package tabular

import (
	"strings"
	"unicode/utf8"
)

// NormalizeBytes strips a UTF-8 BOM and re-decodes Latin-1 exports so the
// readers always see valid UTF-8.
func NormalizeBytes(data []byte) []byte {
	data = stripUTF8BOM(data)
	if utf8.Valid(data) {
		return data
	}
	return decodeLatin1(data)
}

func stripUTF8BOM(data []byte) []byte {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return data[3:]
	}
	return data
}

func decodeLatin1(data []byte) []byte {
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return []byte(string(runes))
}

// DetectDelimiter picks the most frequent candidate delimiter on the given
// line. Semicolon and tab are tried before comma so European exports with
// decimal commas are not split apart.
func DetectDelimiter(line string) rune {
	delimiters := []rune{';', '\t', ',', '|'}
	best := ','
	bestCount := 0
	for _, d := range delimiters {
		count := strings.Count(line, string(d))
		if count > bestCount {
			bestCount = count
			best = d
		}
	}
	return best
}

func firstNonEmptyLine(data []byte) string {
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) != "" {
			return line
		}
	}
	return ""
}

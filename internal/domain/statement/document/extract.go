// Package document extracts ordered text lines from PDF statements. Text
// documents go through positioned-run extraction and line clustering; when
// that yields nothing usable the pages are rasterized and re-read through
// the OCR adapter. The fallback is a second pipeline stage behind an
// explicit predicate, not an exception handler.
package document

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// yBucketSize is the vertical tolerance used to cluster text runs into
// lines: runs whose Y coordinate rounds into the same 5-unit bucket are
// the same line.
const yBucketSize = 5.0

// wordSpaceMultiplier of the font size decides whether two adjacent runs
// need a space inserted between them.
const wordSpaceMultiplier = 0.3

// PageText is the extracted plain text of one page.
type PageText struct {
	Lines []string
	Chars int
}

// ExtractPages pulls positioned text runs from every page and clusters
// them into top-to-bottom, left-to-right reading order.
func ExtractPages(data []byte) ([]PageText, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening document: %w", err)
	}

	pages := make([]PageText, 0, reader.NumPage())
	for n := 1; n <= reader.NumPage(); n++ {
		page := reader.Page(n)
		if page.V.IsNull() {
			pages = append(pages, PageText{})
			continue
		}
		lines := clusterLines(page.Content().Text)
		chars := 0
		for _, l := range lines {
			chars += len(l)
		}
		pages = append(pages, PageText{Lines: lines, Chars: chars})
	}
	return pages, nil
}

// clusterLines groups runs into lines by rounding the vertical coordinate
// into fixed-size buckets. Runs within a bucket keep their original
// stream order; buckets are emitted top-to-bottom (descending PDF Y).
func clusterLines(runs []pdf.Text) []string {
	type bucket struct {
		y    float64
		runs []pdf.Text
	}

	byBucket := make(map[int]*bucket)
	var order []int
	for _, run := range runs {
		if strings.TrimSpace(run.S) == "" {
			continue
		}
		key := int(math.Round(run.Y / yBucketSize))
		b, ok := byBucket[key]
		if !ok {
			b = &bucket{y: run.Y}
			byBucket[key] = b
			order = append(order, key)
		}
		if run.Y > b.y {
			b.y = run.Y
		}
		b.runs = append(b.runs, run)
	}

	sort.Slice(order, func(i, j int) bool {
		return byBucket[order[i]].y > byBucket[order[j]].y
	})

	lines := make([]string, 0, len(order))
	for _, key := range order {
		if line := joinRuns(byBucket[key].runs); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// joinRuns concatenates a line's runs in stream order, inserting a space
// where the horizontal gap between runs is wider than a fraction of the
// font size.
func joinRuns(runs []pdf.Text) string {
	var sb strings.Builder
	var prevEnd float64
	for i, run := range runs {
		if i > 0 {
			threshold := run.FontSize * wordSpaceMultiplier
			if threshold == 0 {
				threshold = 1.0
			}
			if run.X-prevEnd > threshold {
				sb.WriteString(" ")
			}
		}
		sb.WriteString(run.S)
		prevEnd = run.X + run.W
	}
	return strings.TrimSpace(sb.String())
}

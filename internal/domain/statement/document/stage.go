package document

import (
	"context"
	"log/slog"
	"strings"

	"github.com/FACorreiaa/statement-ingest/internal/domain/statement/heuristic"
	"github.com/FACorreiaa/statement-ingest/internal/domain/statement/model"
	"github.com/FACorreiaa/statement-ingest/internal/domain/statement/ocr"
)

// Stage identifies which extraction stage produced the rows.
type Stage string

const (
	StageDirect Stage = "direct"
	StageOCR    Stage = "ocr"
)

// pageBreak joins per-page OCR text so downstream consumers can still see
// page boundaries.
const pageBreak = "\f"

// OCRError marks a failure propagated from the recognition engine, as
// opposed to an unreadable document container.
type OCRError struct {
	Err error
}

func (e *OCRError) Error() string { return "ocr: " + e.Err.Error() }
func (e *OCRError) Unwrap() error { return e.Err }

// Extractor runs the two-stage text extraction pipeline over a PDF.
type Extractor struct {
	recognizer ocr.Recognizer
	logger     *slog.Logger
}

func NewExtractor(recognizer ocr.Recognizer, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{recognizer: recognizer, logger: logger}
}

// Rows extracts transaction-shaped rows from a PDF. Stage one clusters
// the document's own text runs into lines and reconstructs rows from
// them. If that produces zero rows, or the first page yields fewer
// extractable characters than the configured threshold, the document is
// treated as image-based: every page is rasterized and recognized, and
// the combined text goes through the reconstructor once more. The second
// stage runs at most once per document.
func (e *Extractor) Rows(ctx context.Context, data []byte, cfg model.ImportConfig) ([]model.ImportedRow, Stage, error) {
	pages, err := ExtractPages(data)
	if err != nil {
		return nil, StageDirect, err
	}

	var lines []string
	for _, page := range pages {
		lines = append(lines, page.Lines...)
	}
	rows := heuristic.Reconstruct(lines)

	firstPageChars := 0
	if len(pages) > 0 {
		firstPageChars = pages[0].Chars
	}
	if !needsFallback(len(rows), firstPageChars, cfg.TextYield()) {
		return rows, StageDirect, nil
	}

	e.logger.Info("direct extraction insufficient, falling back to ocr",
		"rows", len(rows), "first_page_chars", firstPageChars, "min_text_yield", cfg.TextYield())

	text, err := e.recognizePages(ctx, data, cfg.Scale())
	if err != nil {
		return nil, StageOCR, err
	}
	return heuristic.Reconstruct(splitLines(text)), StageOCR, nil
}

func splitLines(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == '\f' || r == '\r'
	})
}

// needsFallback is the explicit gate between the two stages.
func needsFallback(rowCount, firstPageChars, minTextYield int) bool {
	return rowCount == 0 || firstPageChars < minTextYield
}

func (e *Extractor) recognizePages(ctx context.Context, data []byte, scale float64) (string, error) {
	images, err := RasterizePages(data, scale)
	if err != nil {
		return "", err
	}
	return recognizeImages(ctx, e.recognizer, e.logger, images)
}

// recognizeImages runs the recognizer exactly once per page image and
// joins the page texts with the page-break marker.
func recognizeImages(ctx context.Context, recognizer ocr.Recognizer, logger *slog.Logger, images [][]byte) (string, error) {
	texts := make([]string, 0, len(images))
	for i, image := range images {
		result, err := recognizer.Recognize(ctx, image)
		if err != nil {
			return "", &OCRError{Err: err}
		}
		logger.Debug("recognized page", "page", i+1, "confidence", result.Confidence)
		texts = append(texts, result.Text)
	}
	return strings.Join(texts, pageBreak), nil
}

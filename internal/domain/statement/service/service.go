// Package service orchestrates the full ingestion pipeline: size gate,
// format detection, routing to the right reader, column mapping, row
// normalization and result aggregation.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/FACorreiaa/statement-ingest/internal/domain/statement/detect"
	"github.com/FACorreiaa/statement-ingest/internal/domain/statement/document"
	"github.com/FACorreiaa/statement-ingest/internal/domain/statement/heuristic"
	"github.com/FACorreiaa/statement-ingest/internal/domain/statement/mapping"
	"github.com/FACorreiaa/statement-ingest/internal/domain/statement/model"
	"github.com/FACorreiaa/statement-ingest/internal/domain/statement/normalize"
	"github.com/FACorreiaa/statement-ingest/internal/domain/statement/ocr"
	"github.com/FACorreiaa/statement-ingest/internal/domain/statement/tabular"
)

// heuristicHeaders are the labels the line reconstructor emits; they feed
// the same mapping resolver the tabular paths use.
var heuristicHeaders = []string{"date", "description", "amount", "balance"}

// Service runs imports. The recognizer is owned by the caller: the
// service never closes it, so one engine can serve many imports.
type Service struct {
	logger     *slog.Logger
	recognizer ocr.Recognizer
	extractor  *document.Extractor
}

func New(logger *slog.Logger, recognizer ocr.Recognizer) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		logger:     logger,
		recognizer: recognizer,
		extractor:  document.NewExtractor(recognizer, logger),
	}
}

// Import processes one document synchronously and returns the result
// envelope. File-level failures short-circuit with a single error and
// zero rows processed; row-level failures accumulate alongside the
// transactions that did normalize.
func (s *Service) Import(ctx context.Context, doc model.RawDocument, cfg model.ImportConfig) *model.ImportResult {
	if doc.Size() > cfg.MaxBytes() {
		return s.fail(doc, model.ErrFileTooLarge,
			fmt.Sprintf("file is %d bytes, limit is %d", doc.Size(), cfg.MaxBytes()))
	}

	format := detect.Detect(doc)
	filesProcessed.WithLabelValues(string(format)).Inc()
	s.logger.Info("importing statement", "file", doc.Name, "format", format, "bytes", doc.Size())

	var (
		headers []string
		rows    []model.ImportedRow
	)
	switch format {
	case detect.FormatDelimited:
		table, err := tabular.ReadDelimited(doc.Data, cfg.HasHeader)
		if err != nil {
			return s.fail(doc, model.ErrFileParseFailure, err.Error())
		}
		headers, rows = table.Headers, table.Rows

	case detect.FormatSpreadsheet:
		table, err := tabular.ReadSpreadsheet(doc.Data, cfg.HasHeader)
		if err != nil {
			return s.fail(doc, model.ErrFileParseFailure, err.Error())
		}
		headers, rows = table.Headers, table.Rows

	case detect.FormatDocument:
		extracted, stage, err := s.extractor.Rows(ctx, doc.Data, cfg)
		if err != nil {
			var ocrErr *document.OCRError
			if errors.As(err, &ocrErr) {
				return s.fail(doc, model.ErrOcrFailure, ocrErr.Error())
			}
			return s.fail(doc, model.ErrFileParseFailure, err.Error())
		}
		if stage == document.StageOCR {
			ocrFallbacks.Inc()
		}
		if len(extracted) == 0 {
			return s.fail(doc, model.ErrNoTransactionsDetected, "no transaction lines found after both extraction stages")
		}
		headers, rows = heuristicHeaders, extracted

	case detect.FormatImage:
		result, err := s.recognizer.Recognize(ctx, doc.Data)
		if err != nil {
			return s.fail(doc, model.ErrOcrFailure, err.Error())
		}
		s.logger.Debug("recognized image", "file", doc.Name, "confidence", result.Confidence)
		extracted := heuristic.Reconstruct(splitText(result.Text))
		if len(extracted) == 0 {
			return s.fail(doc, model.ErrNoTransactionsDetected, "no transaction lines recognized in image")
		}
		headers, rows = heuristicHeaders, extracted

	default:
		return s.fail(doc, model.ErrUnsupportedFormat,
			fmt.Sprintf("cannot ingest %q (media type %q)", doc.Name, doc.MediaType))
	}

	if cfg.SkipRows > 0 && cfg.SkipRows < len(rows) {
		rows = rows[cfg.SkipRows:]
	} else if cfg.SkipRows >= len(rows) {
		rows = nil
	}

	byField := mapping.ByField(mapping.Resolve(headers, cfg))
	normalizer := normalize.New(cfg, byField)

	result := &model.ImportResult{TotalRows: len(rows)}
	for i, row := range rows {
		tx, rejection := normalizer.Row(row, i+1)
		if rejection != nil {
			result.Errors = append(result.Errors, *rejection)
			result.SkippedRows++
			continue
		}
		result.Transactions = append(result.Transactions, tx)
		result.ImportedRows++
	}
	result.Success = len(result.Errors) == 0

	rowsImported.Add(float64(result.ImportedRows))
	rowsSkipped.Add(float64(result.SkippedRows))
	s.logger.Info("import finished", "file", doc.Name,
		"total", result.TotalRows, "imported", result.ImportedRows, "skipped", result.SkippedRows)
	return result
}

func (s *Service) fail(doc model.RawDocument, kind model.ErrorKind, reason string) *model.ImportResult {
	fileErrors.WithLabelValues(string(kind)).Inc()
	s.logger.Warn("import failed", "file", doc.Name, "kind", kind, "reason", reason)
	return model.FileFailure(kind, reason)
}

func splitText(text string) []string {
	var lines []string
	start := 0
	for i, r := range text {
		if r == '\n' || r == '\r' || r == '\f' {
			if i > start {
				lines = append(lines, text[start:i])
			}
			start = i + 1
		}
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

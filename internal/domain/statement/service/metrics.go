package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	filesProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "statement_ingest_files_total",
		Help: "Statement files processed, by detected format.",
	}, []string{"format"})

	fileErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "statement_ingest_file_errors_total",
		Help: "File-level ingestion failures, by error kind.",
	}, []string{"kind"})

	rowsImported = promauto.NewCounter(prometheus.CounterOpts{
		Name: "statement_ingest_rows_imported_total",
		Help: "Rows successfully normalized into transactions.",
	})

	rowsSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "statement_ingest_rows_skipped_total",
		Help: "Rows rejected during normalization.",
	})

	ocrFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "statement_ingest_ocr_fallbacks_total",
		Help: "Documents that required the OCR extraction stage.",
	})
)

// Package model defines the canonical records shared by every ingestion
// path: the raw input document, the intermediate row representation, the
// normalized Transaction, and the ImportResult envelope returned to callers.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultMaxFileSize is the byte limit applied when ImportConfig leaves
// MaxFileSize unset.
const DefaultMaxFileSize = 10 << 20 // 10 MiB

// DefaultMinTextYield is the minimum number of extractable characters on
// the first page of a text document before the OCR fallback kicks in.
const DefaultMinTextYield = 50

// DefaultRasterScale is the upscale factor applied when rasterizing
// document pages for OCR.
const DefaultRasterScale = 2.0

// RawDocument is the caller-owned input to the pipeline. The pipeline
// only reads it.
type RawDocument struct {
	Name      string
	MediaType string
	Data      []byte
}

// Size returns the byte length of the document content.
func (d RawDocument) Size() int64 { return int64(len(d.Data)) }

// CellKind discriminates the closed set of raw cell value types.
type CellKind int

const (
	CellAbsent CellKind = iota
	CellText
	CellNumber
	CellDate
)

// CellValue is a raw cell extracted from a source row. It replaces the
// dynamically-typed record of ad hoc readers with a small closed value
// type behind typed accessors.
type CellValue struct {
	kind CellKind
	text string
	num  decimal.Decimal
	date time.Time
}

// TextCell wraps a string cell.
func TextCell(s string) CellValue { return CellValue{kind: CellText, text: s} }

// NumberCell wraps a numeric cell.
func NumberCell(d decimal.Decimal) CellValue { return CellValue{kind: CellNumber, num: d} }

// DateCell wraps a date cell.
func DateCell(t time.Time) CellValue { return CellValue{kind: CellDate, date: t} }

// AbsentCell is the zero cell.
func AbsentCell() CellValue { return CellValue{} }

// Kind reports the cell's discriminator.
func (c CellValue) Kind() CellKind { return c.kind }

// IsAbsent reports whether the cell carries no value.
func (c CellValue) IsAbsent() bool { return c.kind == CellAbsent }

// Text returns the cell rendered as a string. Numbers and dates are
// formatted; absent cells yield "".
func (c CellValue) Text() string {
	switch c.kind {
	case CellText:
		return c.text
	case CellNumber:
		return c.num.String()
	case CellDate:
		return c.date.Format("2006-01-02")
	default:
		return ""
	}
}

// Number returns the numeric value when the cell holds one.
func (c CellValue) Number() (decimal.Decimal, bool) {
	if c.kind != CellNumber {
		return decimal.Decimal{}, false
	}
	return c.num, true
}

// Date returns the date value when the cell holds one.
func (c CellValue) Date() (time.Time, bool) {
	if c.kind != CellDate {
		return time.Time{}, false
	}
	return c.date, true
}

// ImportedRow maps a column label (original header or synthetic "Col<N>")
// to its raw cell value. Rows are produced by the tabular readers or the
// heuristic line reconstructor and consumed once by the normalizer.
type ImportedRow map[string]CellValue

// Field identifies a canonical transaction field that a source column can
// feed.
type Field string

const (
	FieldDate          Field = "date"
	FieldValueDate     Field = "valueDate"
	FieldAmount        Field = "amount"
	FieldBalance       Field = "balance"
	FieldDescription   Field = "description"
	FieldReference     Field = "reference"
	FieldAccountNumber Field = "accountNumber"
)

// Fields lists canonical fields in resolution order: more specific fields
// come before the generic ones that could otherwise claim their headers.
func Fields() []Field {
	return []Field{
		FieldDate, FieldValueDate, FieldAmount, FieldBalance,
		FieldDescription, FieldReference, FieldAccountNumber,
	}
}

// Transform is a pure string transform attached to a column mapping. It
// must not capture mutable state; config objects stay testable in
// isolation.
type Transform func(string) string

// ColumnMapping associates a source column label with a canonical field.
type ColumnMapping struct {
	SourceColumn string
	TargetField  Field
	Transform    Transform
}

// ImportConfig carries caller-supplied parsing hints and the identity
// fields stamped onto every produced transaction. The zero value is
// usable; MaxFileSize falls back to DefaultMaxFileSize.
type ImportConfig struct {
	HasHeader    bool
	SkipRows     int
	DateLayout   string
	DecimalSep   rune
	ThousandsSep rune
	Mappings     []ColumnMapping

	ClientID      string
	BankCode      string
	AccountNumber string

	MaxFileSize  int64
	MinTextYield int
	RasterScale  float64
}

// MaxBytes returns the effective file size limit.
func (c ImportConfig) MaxBytes() int64 {
	if c.MaxFileSize > 0 {
		return c.MaxFileSize
	}
	return DefaultMaxFileSize
}

// TextYield returns the effective OCR fallback threshold.
func (c ImportConfig) TextYield() int {
	if c.MinTextYield > 0 {
		return c.MinTextYield
	}
	return DefaultMinTextYield
}

// Scale returns the effective raster upscale factor.
func (c ImportConfig) Scale() float64 {
	if c.RasterScale > 0 {
		return c.RasterScale
	}
	return DefaultRasterScale
}

// TransactionType classifies a transaction from its description keywords
// or, failing that, the sign of its amount.
type TransactionType string

const (
	TypeCredit   TransactionType = "CREDIT"
	TypeDebit    TransactionType = "DEBIT"
	TypeFee      TransactionType = "FEE"
	TypeInterest TransactionType = "INTEREST"
	TypeTransfer TransactionType = "TRANSFER"
	TypeCard     TransactionType = "CARD"
	TypeATM      TransactionType = "ATM"
	TypeCheck    TransactionType = "CHECK"
	TypeOther    TransactionType = "OTHER"
)

// Transaction is the canonical record every ingestion path converges on.
// It is never constructed partially-invalid: description is non-empty and
// amount/date parsed, or the source row was rejected instead.
type Transaction struct {
	ID            uuid.UUID
	ClientID      string
	AccountNumber string
	BankCode      string
	Date          time.Time
	ValueDate     time.Time
	Amount        decimal.Decimal
	Balance       decimal.Decimal
	Description   string
	Reference     string
	Type          TransactionType
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ErrorKind is the closed taxonomy of ingestion failures.
type ErrorKind string

const (
	ErrFileTooLarge           ErrorKind = "FileTooLarge"
	ErrUnsupportedFormat      ErrorKind = "UnsupportedFormat"
	ErrFileParseFailure       ErrorKind = "FileParseFailure"
	ErrNoTransactionsDetected ErrorKind = "NoTransactionsDetected"
	ErrOcrFailure             ErrorKind = "OcrFailure"
	ErrInvalidDate            ErrorKind = "InvalidDate"
	ErrInvalidAmount          ErrorKind = "InvalidAmount"
	ErrMissingDescription     ErrorKind = "MissingDescription"
)

// ImportError describes one failure. Row is 1-based; 0 marks a file-level
// error.
type ImportError struct {
	Row    int
	Kind   ErrorKind
	Reason string
}

func (e ImportError) Error() string {
	return string(e.Kind) + ": " + e.Reason
}

// IsFileLevel reports whether the error is terminal for the whole file.
func (e ImportError) IsFileLevel() bool { return e.Row == 0 }

// ImportResult is the sole output contract of the pipeline.
type ImportResult struct {
	Success      bool
	TotalRows    int
	ImportedRows int
	SkippedRows  int
	Errors       []ImportError
	Transactions []Transaction
}

// FileFailure builds the short-circuit result for a terminal file-level
// error: zero transactions, zero rows processed, a single error.
func FileFailure(kind ErrorKind, reason string) *ImportResult {
	return &ImportResult{
		Success: false,
		Errors:  []ImportError{{Row: 0, Kind: kind, Reason: reason}},
	}
}

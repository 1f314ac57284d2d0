// Package normalize converts raw ImportedRows into canonical Transaction
// records. A row either produces a fully-valid transaction or a single
// typed rejection; partially-filled transactions are never emitted.
package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/statement-ingest/internal/domain/statement/model"
)

// Normalizer turns rows into transactions using resolved column mappings.
type Normalizer struct {
	cfg     model.ImportConfig
	byField map[model.Field]model.ColumnMapping
}

func New(cfg model.ImportConfig, byField map[model.Field]model.ColumnMapping) *Normalizer {
	return &Normalizer{cfg: cfg, byField: byField}
}

// Row normalizes one ImportedRow. rowIndex is the 1-based position of the
// row after the configured skip and is echoed on rejections.
func (n *Normalizer) Row(row model.ImportedRow, rowIndex int) (model.Transaction, *model.ImportError) {
	date, err := n.parseDateField(row, model.FieldDate)
	if err != nil {
		return model.Transaction{}, &model.ImportError{Row: rowIndex, Kind: model.ErrInvalidDate, Reason: err.Error()}
	}

	amountRaw := n.fieldValue(row, model.FieldAmount)
	amount, err := ParseAmount(amountRaw, n.cfg.DecimalSep, n.cfg.ThousandsSep)
	if err != nil {
		return model.Transaction{}, &model.ImportError{Row: rowIndex, Kind: model.ErrInvalidAmount, Reason: err.Error()}
	}

	description := cleanDescription(n.fieldValue(row, model.FieldDescription))
	if description == "" {
		return model.Transaction{}, &model.ImportError{Row: rowIndex, Kind: model.ErrMissingDescription, Reason: "description is empty"}
	}

	valueDate := date
	if raw := n.fieldValue(row, model.FieldValueDate); strings.TrimSpace(raw) != "" {
		if parsed, err := n.parseDateField(row, model.FieldValueDate); err == nil {
			valueDate = parsed
		}
	}

	balance := decimal.Zero
	if raw := n.fieldValue(row, model.FieldBalance); strings.TrimSpace(raw) != "" {
		if parsed, err := ParseAmount(raw, n.cfg.DecimalSep, n.cfg.ThousandsSep); err == nil {
			balance = parsed
		}
	}

	accountNumber := strings.TrimSpace(n.fieldValue(row, model.FieldAccountNumber))
	if accountNumber == "" {
		accountNumber = n.cfg.AccountNumber
	}

	now := time.Now().UTC()
	return model.Transaction{
		ID:            uuid.New(),
		ClientID:      n.cfg.ClientID,
		AccountNumber: accountNumber,
		BankCode:      n.cfg.BankCode,
		Date:          date,
		ValueDate:     valueDate,
		Amount:        amount,
		Balance:       balance,
		Description:   description,
		Reference:     strings.TrimSpace(n.fieldValue(row, model.FieldReference)),
		Type:          InferType(description, amount),
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// fieldValue resolves a field's raw string through its mapping and
// transform. Fields without a mapping yield "".
func (n *Normalizer) fieldValue(row model.ImportedRow, field model.Field) string {
	m, ok := n.byField[field]
	if !ok {
		return ""
	}
	value := row[m.SourceColumn].Text()
	if m.Transform != nil {
		value = m.Transform(value)
	}
	return value
}

func (n *Normalizer) parseDateField(row model.ImportedRow, field model.Field) (time.Time, error) {
	m, ok := n.byField[field]
	if !ok {
		return time.Time{}, fmt.Errorf("no column mapped for %s", field)
	}
	cell := row[m.SourceColumn]
	if d, ok := cell.Date(); ok {
		return d, nil
	}
	raw := cell.Text()
	if m.Transform != nil {
		raw = m.Transform(raw)
	}
	return ParseDate(raw, n.cfg.DateLayout)
}

func cleanDescription(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

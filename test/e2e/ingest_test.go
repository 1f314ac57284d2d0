// Package e2etest provides end-to-end tests for full ingestion flows.
package e2etest

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/FACorreiaa/statement-ingest/internal/domain/statement/model"
	"github.com/FACorreiaa/statement-ingest/internal/domain/statement/ocr"
	"github.com/FACorreiaa/statement-ingest/internal/domain/statement/service"
)

type stubRecognizer struct {
	text string
}

func (s *stubRecognizer) Recognize(_ context.Context, _ []byte) (ocr.Result, error) {
	return ocr.Result{Text: s.text, Confidence: 85}, nil
}

// TestSemicolonCSVImport covers the francophone statement layout:
// semicolon delimiter, comma decimals, space-grouped thousands.
func TestSemicolonCSVImport(t *testing.T) {
	doc := model.RawDocument{
		Name:      "releve.csv",
		MediaType: "text/csv",
		Data: []byte("Date;Date valeur;Libelle;Montant;Solde\n" +
			"15/03/2024;16/03/2024;Virement recu salaire;150 000,00;1 250 000,00\n" +
			"18/03/2024;18/03/2024;Frais de tenue de compte;-5 000,00;1 245 000,00\n" +
			"20/03/2024;20/03/2024;Retrait DAB centre ville;-20 000,00;1 225 000,00\n"),
	}

	svc := service.New(nil, &stubRecognizer{})
	result := svc.Import(context.Background(), doc, model.ImportConfig{
		HasHeader: true,
		ClientID:  "client-42",
		BankCode:  "BK01",
	})

	require.True(t, result.Success)
	require.Len(t, result.Transactions, 3)

	first := result.Transactions[0]
	assert.Equal(t, "150000", first.Amount.String())
	assert.Equal(t, "1250000", first.Balance.String())
	assert.Equal(t, model.TypeTransfer, first.Type)
	assert.Equal(t, 16, first.ValueDate.Day())
	assert.Equal(t, "client-42", first.ClientID)

	assert.Equal(t, model.TypeFee, result.Transactions[1].Type)
	assert.Equal(t, model.TypeATM, result.Transactions[2].Type)
}

// TestSpreadsheetImport builds a workbook in memory and runs it through
// the same pipeline as the CSV path.
func TestSpreadsheetImport(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"Date", "Description", "Montant", "Solde"},
		{"15/03/2024", "Virement recu", "150000", "270000"},
		{"16/03/2024", "Paiement carte 4411", "-4500", "265500"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	doc := model.RawDocument{Name: "releve.xlsx", Data: buf.Bytes()}
	svc := service.New(nil, &stubRecognizer{})
	result := svc.Import(context.Background(), doc, model.ImportConfig{HasHeader: true})

	require.True(t, result.Success)
	require.Len(t, result.Transactions, 2)
	assert.Equal(t, model.TypeTransfer, result.Transactions[0].Type)
	assert.Equal(t, model.TypeCard, result.Transactions[1].Type)
	assert.Equal(t, "-4500", result.Transactions[1].Amount.String())
}

// TestScannedImageImport drives the OCR path with a stubbed engine.
func TestScannedImageImport(t *testing.T) {
	rec := &stubRecognizer{text: "BANQUE ATLANTIQUE\n15/03/2024 Virement recu 150 000,00\n"}
	doc := model.RawDocument{Name: "scan.jpg", MediaType: "image/jpeg", Data: []byte{0xFF, 0xD8}}

	svc := service.New(nil, rec)
	result := svc.Import(context.Background(), doc, model.ImportConfig{})

	require.True(t, result.Success)
	require.Len(t, result.Transactions, 1)
	assert.Equal(t, "150000", result.Transactions[0].Amount.String())
}

package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/statement-ingest/internal/domain/statement/model"
)

func TestResolveFrenchStatementHeaders(t *testing.T) {
	headers := []string{"Date", "Date valeur", "Libelle", "Montant", "Solde"}

	byField := ByField(Resolve(headers, model.ImportConfig{}))

	assert.Equal(t, "Date", byField[model.FieldDate].SourceColumn)
	assert.Equal(t, "Date valeur", byField[model.FieldValueDate].SourceColumn)
	assert.Equal(t, "Libelle", byField[model.FieldDescription].SourceColumn)
	assert.Equal(t, "Montant", byField[model.FieldAmount].SourceColumn)
	assert.Equal(t, "Solde", byField[model.FieldBalance].SourceColumn)
}

func TestResolveValueDateNotClaimedByDate(t *testing.T) {
	// Only a value-date column exists: the generic date field must not
	// claim it.
	byField := ByField(Resolve([]string{"Date valeur", "Montant"}, model.ImportConfig{}))

	_, hasDate := byField[model.FieldDate]
	assert.False(t, hasDate)
	assert.Equal(t, "Date valeur", byField[model.FieldValueDate].SourceColumn)
}

func TestResolveClaimedHeaderNotReused(t *testing.T) {
	// "Solde" must go to balance even though "Montant" also appears; and
	// once claimed by amount, "Montant" is off the table.
	byField := ByField(Resolve([]string{"Montant", "Solde"}, model.ImportConfig{}))

	assert.Equal(t, "Montant", byField[model.FieldAmount].SourceColumn)
	assert.Equal(t, "Solde", byField[model.FieldBalance].SourceColumn)
}

func TestResolveHeuristicKeys(t *testing.T) {
	byField := ByField(Resolve([]string{"date", "description", "amount", "balance"}, model.ImportConfig{}))

	require.Len(t, byField, 4)
	assert.Equal(t, "date", byField[model.FieldDate].SourceColumn)
	assert.Equal(t, "amount", byField[model.FieldAmount].SourceColumn)
}

func TestResolveExplicitMappingShortCircuits(t *testing.T) {
	cfg := model.ImportConfig{Mappings: []model.ColumnMapping{
		{SourceColumn: "Col1", TargetField: model.FieldDate},
		{SourceColumn: "Col2", TargetField: model.FieldDescription},
		{SourceColumn: "Col3", TargetField: model.FieldAmount},
	}}

	mappings := Resolve([]string{"Date", "Libelle", "Montant"}, cfg)
	require.Len(t, mappings, 3)
	assert.Equal(t, "Col1", mappings[0].SourceColumn)
}

func TestResolveEnglishHeaders(t *testing.T) {
	byField := ByField(Resolve([]string{"Transaction Date", "Description", "Amount", "Balance", "Reference", "Account"}, model.ImportConfig{}))

	assert.Equal(t, "Transaction Date", byField[model.FieldDate].SourceColumn)
	assert.Equal(t, "Reference", byField[model.FieldReference].SourceColumn)
	assert.Equal(t, "Account", byField[model.FieldAccountNumber].SourceColumn)
}

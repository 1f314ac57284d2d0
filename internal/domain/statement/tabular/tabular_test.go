package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadDelimitedWithHeader(t *testing.T) {
	data := []byte("Date,Description,Montant,Solde\n15/03/2024,Frais de tenue de compte,-5000,120000\n16/03/2024,Virement recu,150000,270000\n")

	table, err := ReadDelimited(data, true)
	require.NoError(t, err)

	assert.Equal(t, []string{"Date", "Description", "Montant", "Solde"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Frais de tenue de compte", table.Rows[0]["Description"].Text())
	assert.Equal(t, "-5000", table.Rows[0]["Montant"].Text())
	assert.Equal(t, "270000", table.Rows[1]["Solde"].Text())
}

func TestReadDelimitedSniffsSemicolon(t *testing.T) {
	data := []byte("Date;Libelle;Montant\n15/03/2024;Retrait DAB;-20000\n")

	table, err := ReadDelimited(data, true)
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Retrait DAB", table.Rows[0]["Libelle"].Text())
}

func TestReadDelimitedHeaderless(t *testing.T) {
	data := []byte("15/03/2024\tVirement\t150000\n16/03/2024\tRetrait\t-20000\n")

	table, err := ReadDelimited(data, false)
	require.NoError(t, err)

	assert.Equal(t, []string{"Col1", "Col2", "Col3"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Virement", table.Rows[0]["Col2"].Text())
	assert.Equal(t, "-20000", table.Rows[1]["Col3"].Text())
}

func TestReadDelimitedStripsBOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Date,Montant\n15/03/2024,100\n")...)

	table, err := ReadDelimited(data, true)
	require.NoError(t, err)
	assert.Equal(t, "Date", table.Headers[0])
}

func TestReadDelimitedLatin1Fallback(t *testing.T) {
	// "Opération" in Latin-1: 0xE9 for é.
	data := []byte("Date,Op\xe9ration\n15/03/2024,Retrait\n")

	table, err := ReadDelimited(data, true)
	require.NoError(t, err)
	assert.Equal(t, "Opération", table.Headers[1])
}

func TestReadDelimitedEmpty(t *testing.T) {
	_, err := ReadDelimited([]byte("   \n"), true)
	assert.ErrorIs(t, err, ErrEmptyTable)
}

func TestReadSpreadsheetRejectsGarbage(t *testing.T) {
	_, err := ReadSpreadsheet([]byte("not a zip archive"), true)
	assert.Error(t, err)
}

func TestDetectDelimiter(t *testing.T) {
	tests := []struct {
		line string
		want rune
	}{
		{"a;b;c", ';'},
		{"a,b,c", ','},
		{"a\tb\tc", '\t'},
		{"a|b|c", '|'},
		{"15/03/2024;Frais, divers;1 000,50", ';'},
		{"singlecolumn", ','},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectDelimiter(tt.line), tt.line)
	}
}

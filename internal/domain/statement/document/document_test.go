package document

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/statement-ingest/internal/domain/statement/ocr"
)

type fakeRecognizer struct {
	calls int
	texts []string
	err   error
}

func (f *fakeRecognizer) Recognize(_ context.Context, _ []byte) (ocr.Result, error) {
	f.calls++
	if f.err != nil {
		return ocr.Result{}, f.err
	}
	text := ""
	if f.calls-1 < len(f.texts) {
		text = f.texts[f.calls-1]
	}
	return ocr.Result{Text: text, Confidence: 88}, nil
}

func TestClusterLines(t *testing.T) {
	runs := []pdf.Text{
		// Two lines: the higher Y value is higher on the page.
		{S: "15/03/2024", X: 10, Y: 700, W: 50, FontSize: 10},
		{S: "Virement", X: 70, Y: 701, W: 40, FontSize: 10},
		{S: "recu", X: 115, Y: 699, W: 20, FontSize: 10},
		{S: "150 000,00", X: 200, Y: 700, W: 50, FontSize: 10},
		{S: "16/03/2024", X: 10, Y: 680, W: 50, FontSize: 10},
		{S: "Retrait DAB", X: 70, Y: 680, W: 55, FontSize: 10},
		{S: "-20000", X: 200, Y: 680, W: 30, FontSize: 10},
	}

	lines := clusterLines(runs)
	require.Len(t, lines, 2)
	assert.Equal(t, "15/03/2024 Virement recu 150 000,00", lines[0])
	assert.Equal(t, "16/03/2024 Retrait DAB -20000", lines[1])
}

func TestClusterLinesSkipsBlankRuns(t *testing.T) {
	runs := []pdf.Text{
		{S: "  ", X: 10, Y: 700, W: 5, FontSize: 10},
		{S: "Solde initial", X: 20, Y: 700, W: 60, FontSize: 10},
	}
	lines := clusterLines(runs)
	require.Len(t, lines, 1)
	assert.Equal(t, "Solde initial", lines[0])
}

func TestJoinRunsNoSpuriousSpaces(t *testing.T) {
	// Glyph-fragmented runs with tight spacing stay one word.
	runs := []pdf.Text{
		{S: "Vir", X: 10, Y: 700, W: 15, FontSize: 10},
		{S: "ement", X: 25.5, Y: 700, W: 25, FontSize: 10},
	}
	assert.Equal(t, "Virement", joinRuns(runs))
}

func TestNeedsFallback(t *testing.T) {
	assert.True(t, needsFallback(0, 500, 50), "zero rows")
	assert.True(t, needsFallback(3, 10, 50), "first page below yield")
	assert.False(t, needsFallback(3, 500, 50))
}

func TestRecognizeImagesOncePerPage(t *testing.T) {
	rec := &fakeRecognizer{texts: []string{"page one", "page two", "page three"}}
	images := [][]byte{{1}, {2}, {3}}

	text, err := recognizeImages(context.Background(), rec, slog.Default(), images)
	require.NoError(t, err)

	assert.Equal(t, 3, rec.calls)
	assert.Equal(t, "page one\fpage two\fpage three", text)
}

func TestRecognizeImagesPropagatesOCRFailure(t *testing.T) {
	rec := &fakeRecognizer{err: errors.New("engine crashed")}

	_, err := recognizeImages(context.Background(), rec, slog.Default(), [][]byte{{1}})
	var ocrErr *OCRError
	require.ErrorAs(t, err, &ocrErr)
}

func TestSplitLines(t *testing.T) {
	lines := splitLines("a\nb\fc\r\nd")
	assert.Equal(t, []string{"a", "b", "c", "d"}, lines)
}

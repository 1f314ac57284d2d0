// Package detect classifies an incoming document into one of the four
// ingestion routes. The file extension wins over the declared media type;
// the media type is only consulted when the extension says nothing.
package detect

import (
	"path/filepath"
	"strings"

	"github.com/FACorreiaa/statement-ingest/internal/domain/statement/model"
)

// Format is the ingestion route selected for a document.
type Format string

const (
	FormatDelimited   Format = "delimited"
	FormatSpreadsheet Format = "spreadsheet"
	FormatDocument    Format = "document"
	FormatImage       Format = "image"
	FormatUnsupported Format = "unsupported"
)

var extFormats = map[string]Format{
	".csv":  FormatDelimited,
	".tsv":  FormatDelimited,
	".txt":  FormatDelimited,
	".xlsx": FormatSpreadsheet,
	".xls":  FormatSpreadsheet,
	".pdf":  FormatDocument,
	".png":  FormatImage,
	".jpg":  FormatImage,
	".jpeg": FormatImage,
	".tiff": FormatImage,
	".tif":  FormatImage,
	".bmp":  FormatImage,
}

var mediaFormats = map[string]Format{
	"text/csv":                 FormatDelimited,
	"text/tab-separated-values": FormatDelimited,
	"text/plain":               FormatDelimited,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": FormatSpreadsheet,
	"application/vnd.ms-excel": FormatSpreadsheet,
	"application/pdf":          FormatDocument,
	"image/png":                FormatImage,
	"image/jpeg":               FormatImage,
	"image/tiff":               FormatImage,
	"image/bmp":                FormatImage,
}

// Detect resolves the ingestion route for a document. Unknown extensions
// fall back to the media type; when neither matches the document is
// unsupported.
func Detect(doc model.RawDocument) Format {
	ext := strings.ToLower(filepath.Ext(doc.Name))
	if f, ok := extFormats[ext]; ok {
		return f
	}
	media := strings.ToLower(strings.TrimSpace(doc.MediaType))
	if i := strings.IndexByte(media, ';'); i >= 0 {
		media = strings.TrimSpace(media[:i])
	}
	if f, ok := mediaFormats[media]; ok {
		return f
	}
	return FormatUnsupported
}

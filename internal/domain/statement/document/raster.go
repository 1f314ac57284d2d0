package document

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/gen2brain/go-fitz"
)

const baseDPI = 72.0

// RasterizePages renders every page of a PDF to PNG at the given upscale
// factor. Upscaling before recognition measurably improves OCR accuracy
// on low-resolution scans.
func RasterizePages(data []byte, scale float64) ([][]byte, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("opening document for rasterization: %w", err)
	}
	defer doc.Close()

	if scale <= 0 {
		scale = 1
	}
	dpi := baseDPI * scale

	pages := make([][]byte, 0, doc.NumPage())
	for n := 0; n < doc.NumPage(); n++ {
		img, err := doc.ImageDPI(n, dpi)
		if err != nil {
			return nil, fmt.Errorf("rendering page %d: %w", n+1, err)
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encoding page %d: %w", n+1, err)
		}
		pages = append(pages, buf.Bytes())
	}
	return pages, nil
}

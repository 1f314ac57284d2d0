// Package ocr wraps the Tesseract engine behind a small recognizer
// contract. The engine is expensive to initialize and not safe for
// concurrent recognition, so the adapter owns both concerns: first use
// pays the init cost exactly once, and recognition calls are serialized.
package ocr

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"
)

// Result is one recognition outcome. Confidence is the mean word
// confidence reported by the engine, clamped to [0,100].
type Result struct {
	Text       string
	Confidence float64
}

// Recognizer is the contract the document pipeline depends on. Tests and
// alternative engines plug in here.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte) (Result, error)
}

// ErrClosed is returned when Recognize is called after Close.
var ErrClosed = errors.New("ocr engine is closed")

// Engine adapts a gosseract client. Construct with NewEngine and release
// with Close; the zero value is not usable.
type Engine struct {
	language    string
	tessdataDir string

	initOnce sync.Once
	initErr  error

	mu     sync.Mutex
	client *gosseract.Client
	closed bool
}

// NewEngine returns an engine for the given language selection (e.g.
// "eng+fra"). Nothing is allocated until the first Recognize call.
func NewEngine(language, tessdataDir string) *Engine {
	return &Engine{language: language, tessdataDir: tessdataDir}
}

func (e *Engine) init() {
	client := gosseract.NewClient()
	if e.tessdataDir != "" {
		if err := client.SetTessdataPrefix(e.tessdataDir); err != nil {
			client.Close()
			e.initErr = fmt.Errorf("setting tessdata dir: %w", err)
			return
		}
	}
	if e.language != "" {
		langs := strings.Split(e.language, "+")
		if err := client.SetLanguage(langs...); err != nil {
			client.Close()
			e.initErr = fmt.Errorf("setting languages %q: %w", e.language, err)
			return
		}
	}
	e.client = client
}

// Recognize runs the engine over PNG or JPEG image bytes. Calls on the
// same engine are serialized; the context is honored between calls, not
// inside the engine itself.
func (e *Engine) Recognize(ctx context.Context, image []byte) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	e.initOnce.Do(e.init)
	if e.initErr != nil {
		return Result{}, e.initErr
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return Result{}, ErrClosed
	}

	if err := e.client.SetImageFromBytes(image); err != nil {
		return Result{}, fmt.Errorf("loading image: %w", err)
	}
	text, err := e.client.Text()
	if err != nil {
		return Result{}, fmt.Errorf("recognizing text: %w", err)
	}

	boxes, err := e.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return Result{}, fmt.Errorf("reading word confidences: %w", err)
	}

	return Result{Text: text, Confidence: meanConfidence(boxes)}, nil
}

// Close releases the underlying client. Safe to call more than once.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || e.client == nil {
		e.closed = true
		return nil
	}
	e.closed = true
	return e.client.Close()
}

func meanConfidence(boxes []gosseract.BoundingBox) float64 {
	if len(boxes) == 0 {
		return 0
	}
	var sum float64
	for _, b := range boxes {
		sum += b.Confidence
	}
	mean := sum / float64(len(boxes))
	if mean < 0 {
		return 0
	}
	if mean > 100 {
		return 100
	}
	return mean
}

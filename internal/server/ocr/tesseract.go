package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// engine is the part of *gosseract.Client used here.
type engine interface {
	SetTessdataPrefix(prefix string) error
	SetLanguage(langs ...string) error
	SetImageFromBytes(data []byte) error
	Text() (string, error)
	GetBoundingBoxes(level gosseract.PageIteratorLevel) ([]gosseract.BoundingBox, error)
	Close() error
}

// TesseractClient implements Client on top of libtesseract.
type TesseractClient struct {
	tessdataPrefix string
	languages      []string
	newEngine      func() engine
}

// NewTesseractClient creates a client using the trained data under
// tessdataPrefix (empty means the library default) for the given
// "+"-separated languages, e.g. "eng+deu".
func NewTesseractClient(tessdataPrefix, languages string) *TesseractClient {
	return &TesseractClient{
		tessdataPrefix: tessdataPrefix,
		languages:      splitLanguages(languages),
		newEngine:      func() engine { return gosseract.NewClient() },
	}
}

// DetectText runs recognition on img. A fresh engine is used per call;
// gosseract clients are not safe for concurrent use.
func (c *TesseractClient) DetectText(ctx context.Context, img []byte) ([]Annotation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e := c.newEngine()
	defer e.Close()

	if c.tessdataPrefix != "" {
		if err := e.SetTessdataPrefix(c.tessdataPrefix); err != nil {
			return nil, fmt.Errorf("set tessdata prefix: %w", err)
		}
	}
	if len(c.languages) > 0 {
		if err := e.SetLanguage(c.languages...); err != nil {
			return nil, fmt.Errorf("set languages: %w", err)
		}
	}
	if err := e.SetImageFromBytes(img); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}

	text, err := e.Text()
	if err != nil {
		return nil, fmt.Errorf("recognize text: %w", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	words, avg := wordAnnotations(e)
	full := Annotation{Description: text, Confidence: avg}
	for _, w := range words {
		full.Bounds = full.Bounds.Union(w.Bounds)
	}

	return append([]Annotation{full}, words...), nil
}

// wordAnnotations returns per-word annotations and their mean confidence
// (0..1). Bounding box failures are not fatal; the full text is enough.
func wordAnnotations(e engine) ([]Annotation, float64) {
	boxes, err := e.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil || len(boxes) == 0 {
		return nil, 0
	}

	words := make([]Annotation, 0, len(boxes))
	var sum float64
	for _, b := range boxes {
		if strings.TrimSpace(b.Word) == "" {
			continue
		}
		conf := b.Confidence / 100.0
		sum += conf
		words = append(words, Annotation{Description: b.Word, Bounds: b.Box, Confidence: conf})
	}
	if len(words) == 0 {
		return nil, 0
	}
	return words, sum / float64(len(words))
}

func splitLanguages(s string) []string {
	var out []string
	for _, l := range strings.Split(s, "+") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

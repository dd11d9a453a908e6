// Package ocr extracts text from uploaded images.
//
// A Client returns annotations in provider order: the first annotation holds
// the whole recognised text block, the following ones hold single words.
// An image without text yields no annotations and no error.
package ocr

import (
	"context"
	"errors"
	"image"
	"net/http"
	"strings"
)

// Annotation is one unit of recognised text.
type Annotation struct {
	Description string
	Bounds      image.Rectangle
	Confidence  float64
}

// Client detects text in raw image bytes.
type Client interface {
	DetectText(ctx context.Context, img []byte) ([]Annotation, error)
}

// ErrUnsupportedImage is returned for payloads that are not a supported
// image format.
var ErrUnsupportedImage = errors.New("unsupported image format")

var supportedFormats = map[string]struct{}{
	"image/png":  {},
	"image/jpeg": {},
	"image/gif":  {},
	"image/bmp":  {},
	"image/webp": {},
	"image/tiff": {},
}

// DetectFormat sniffs the content type of img and returns it when it is an
// image format the OCR engine accepts.
func DetectFormat(img []byte) (string, error) {
	ct := http.DetectContentType(img)
	if isTIFF(img) {
		ct = "image/tiff"
	}
	ct, _, _ = strings.Cut(ct, ";")
	if _, ok := supportedFormats[ct]; !ok {
		return "", ErrUnsupportedImage
	}
	return ct, nil
}

// http.DetectContentType does not know TIFF.
func isTIFF(b []byte) bool {
	return len(b) >= 4 && (string(b[:4]) == "II*\x00" || string(b[:4]) == "MM\x00*")
}

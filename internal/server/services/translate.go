package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/phototranslate/internal/common"
	"github.com/dmitrijs2005/phototranslate/internal/logging"
	"github.com/dmitrijs2005/phototranslate/internal/server/ocr"
	"github.com/dmitrijs2005/phototranslate/internal/server/translator"
)

// Translator translates text between languages.
type Translator interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// Archive keeps a copy of uploaded images.
type Archive interface {
	Put(ctx context.Context, data []byte, contentType string) (string, error)
}

// TranslateResult is the outcome of one image translation.
type TranslateResult struct {
	Original    string
	Translation string
	TargetLang  string
}

const (
	// maxPendingArchives caps background uploads; images beyond it are not archived.
	maxPendingArchives = 8
	archiveTimeout     = 30 * time.Second
)

// TranslateService runs the OCR -> translation pipeline for one image.
type TranslateService struct {
	ocr               ocr.Client
	translator        Translator
	archive           Archive
	defaultTargetLang string
	logger            logging.Logger

	archiveSlots chan struct{}
	archiveWG    sync.WaitGroup
}

// NewTranslateService wires the pipeline. archive may be nil.
func NewTranslateService(o ocr.Client, t Translator, archive Archive, defaultTargetLang string, l logging.Logger) *TranslateService {
	return &TranslateService{
		ocr:               o,
		translator:        t,
		archive:           archive,
		defaultTargetLang: defaultTargetLang,
		logger:            l.With("module", "translate_service"),
		archiveSlots:      make(chan struct{}, maxPendingArchives),
	}
}

// Translate extracts text from img and translates it to targetLang (the
// configured default when empty).
//
// Errors:
//   - common.ErrorValidation: img is not a supported image.
//   - common.ErrNoText: OCR found nothing; the translator is not called.
//   - common.ErrOCRFailed: the OCR engine returned an error.
//   - common.ErrTranslatorUnavailable: the translator could not be reached
//     or returned a non-2xx status.
//   - common.ErrorInternal: anything else.
func (s *TranslateService) Translate(ctx context.Context, img []byte, targetLang string) (*TranslateResult, error) {
	targetLang = strings.TrimSpace(targetLang)
	if targetLang == "" {
		targetLang = s.defaultTargetLang
	}

	format, err := ocr.DetectFormat(img)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}

	s.archiveImage(ctx, img, format)

	annotations, err := s.ocr.DetectText(ctx, img)
	if err != nil {
		s.logger.Error(ctx, "ocr failed", "error", err)
		return nil, fmt.Errorf("%w: %v", common.ErrOCRFailed, err)
	}
	if len(annotations) == 0 {
		return nil, common.ErrNoText
	}

	// The first annotation is the whole text block; the rest are single words.
	block := annotations[0]
	detected := block.Description
	s.logger.Debug(ctx, "text detected",
		"words", len(annotations)-1,
		"confidence", block.Confidence,
		"region", block.Bounds.String(),
	)

	translated, err := s.translator.Translate(ctx, detected, translator.SourceAuto, targetLang)
	if err != nil {
		if translator.IsUnavailable(err) || errors.Is(err, context.DeadlineExceeded) {
			s.logger.Warn(ctx, "translator unavailable", "error", err, "target_lang", targetLang)
			return nil, fmt.Errorf("%w: %v", common.ErrTranslatorUnavailable, err)
		}
		return nil, fmt.Errorf("%w: translate: %v", common.ErrorInternal, err)
	}

	return &TranslateResult{Original: detected, Translation: translated, TargetLang: targetLang}, nil
}

// archiveImage uploads img in the background with a context detached from
// the request. When all slots are busy the image is skipped.
func (s *TranslateService) archiveImage(ctx context.Context, img []byte, format string) {
	if s.archive == nil {
		return
	}

	select {
	case s.archiveSlots <- struct{}{}:
	default:
		s.logger.Warn(ctx, "image archive busy, skipping upload")
		return
	}

	s.archiveWG.Add(1)
	go func() {
		defer s.archiveWG.Done()
		defer func() { <-s.archiveSlots }()

		actx, cancel := context.WithTimeout(context.WithoutCancel(ctx), archiveTimeout)
		defer cancel()

		key, err := s.archive.Put(actx, img, format)
		if err != nil {
			s.logger.Warn(actx, "image archive failed", "error", err)
			return
		}
		s.logger.Debug(actx, "image archived", "key", key)
	}()
}

// Wait blocks until background archive uploads have finished.
func (s *TranslateService) Wait() {
	s.archiveWG.Wait()
}

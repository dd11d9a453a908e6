package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/phototranslate/internal/common"
	"github.com/dmitrijs2005/phototranslate/internal/server/models"
	"github.com/dmitrijs2005/phototranslate/internal/server/repositories/repomanager"
)

// maxLangCodeLen matches translations.target_lang.
const maxLangCodeLen = 10

// TranslationService stores and lists a user's saved translations.
type TranslationService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTranslationService(db *sql.DB, m repomanager.RepositoryManager) *TranslationService {
	return &TranslationService{db: db, repomanager: m}
}

// Save stores a translation owned by userID. original and targetLang must be
// non-empty; translated may be empty, as the translate endpoint can return "".
func (s *TranslationService) Save(ctx context.Context, userID int64, original, translated, targetLang string) (*models.Translation, error) {
	targetLang = strings.TrimSpace(targetLang)
	if original == "" || targetLang == "" {
		return nil, fmt.Errorf("%w: original, translation and target_lang are required", common.ErrorValidation)
	}
	if len(targetLang) > maxLangCodeLen {
		return nil, fmt.Errorf("%w: target_lang is too long", common.ErrorValidation)
	}

	t, err := s.repomanager.Translations(s.db).Create(ctx, &models.Translation{
		UserID:         userID,
		OriginalText:   original,
		TranslatedText: translated,
		TargetLang:     targetLang,
	})
	if err != nil {
		return nil, fmt.Errorf("error saving translation: %w", err)
	}

	return t, nil
}

// List returns every translation owned by userID.
func (s *TranslationService) List(ctx context.Context, userID int64) ([]*models.Translation, error) {
	items, err := s.repomanager.Translations(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing translations: %w", err)
	}
	return items, nil
}

package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/phototranslate/internal/common"
	"github.com/gin-gonic/gin"
)

// Fields are pointers so an absent field can be told apart from "".
type saveTranslationRequest struct {
	Original    *string `json:"original"`
	Translation *string `json:"translation"`
	TargetLang  *string `json:"target_lang"`
}

type translationItem struct {
	ID          int64  `json:"id"`
	Original    string `json:"original"`
	Translation string `json:"translation"`
	Lang        string `json:"lang"`
}

// SaveTranslation handles POST /api/translations.
func (h *Handlers) SaveTranslation(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": msgUnauthorized})
		return
	}

	var req saveTranslationRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Original == nil || req.Translation == nil || req.TargetLang == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgSaveFieldsRequired})
		return
	}

	t, err := h.translations.Save(c.Request.Context(), user.ID, *req.Original, *req.Translation, *req.TargetLang)
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err)})
			return
		}
		h.logger.Error(c.Request.Context(), "save translation failed", "error", err, "user_id", user.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternal})
		return
	}

	h.logger.Info(c.Request.Context(), "translation saved", "user_id", user.ID, "id", t.ID, "lang", t.TargetLang)
	c.JSON(http.StatusCreated, gin.H{"message": msgTranslationSaved})
}

// ListTranslations handles GET /api/translations.
func (h *Handlers) ListTranslations(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": msgUnauthorized})
		return
	}

	items, err := h.translations.List(c.Request.Context(), user.ID)
	if err != nil {
		h.logger.Error(c.Request.Context(), "list translations failed", "error", err, "user_id", user.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternal})
		return
	}

	out := make([]translationItem, 0, len(items))
	for _, t := range items {
		out = append(out, translationItem{
			ID:          t.ID,
			Original:    t.OriginalText,
			Translation: t.TranslatedText,
			Lang:        t.TargetLang,
		})
	}

	c.JSON(http.StatusOK, out)
}

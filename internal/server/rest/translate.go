package rest

import (
	"errors"
	"io"
	"net/http"

	"github.com/dmitrijs2005/phototranslate/internal/common"
	"github.com/gin-gonic/gin"
)

// multipartOverhead is allowed on top of the file limit for boundaries,
// part headers and the target_lang field.
const multipartOverhead = 64 << 10

// Translate handles POST /api/translate.
func (h *Handlers) Translate(c *gin.Context) {
	ctx := c.Request.Context()
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+multipartOverhead)

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusBadRequest, gin.H{"error": msgFileTooLarge})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": msgNoFile})
		return
	}
	if fh.Size > h.maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgFileTooLarge})
		return
	}

	f, err := fh.Open()
	if err != nil {
		h.logger.Error(ctx, "open upload failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternal})
		return
	}
	defer f.Close()

	img, err := io.ReadAll(io.LimitReader(f, h.maxUploadBytes+1))
	if err != nil {
		h.logger.Error(ctx, "read upload failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternal})
		return
	}
	if int64(len(img)) > h.maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgFileTooLarge})
		return
	}

	res, err := h.translate.Translate(ctx, img, c.PostForm("target_lang"))
	if err != nil {
		switch {
		case errors.Is(err, common.ErrNoText):
			c.JSON(http.StatusOK, gin.H{"original": msgNoText, "translation": ""})
		case errors.Is(err, common.ErrorValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": msgUnsupportedImage})
		case errors.Is(err, common.ErrTranslatorUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": msgTranslatorDown})
		case errors.Is(err, common.ErrOCRFailed):
			c.JSON(http.StatusInternalServerError, gin.H{"error": msgOCRFailed})
		default:
			h.logger.Error(ctx, "translate failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternal})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"original":    res.Original,
		"translation": res.Translation,
		"target_lang": res.TargetLang,
	})
}

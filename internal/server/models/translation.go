package models

import "time"

// Translation is a saved OCR/translation result owned by exactly one user.
type Translation struct {
	ID             int64
	UserID         int64
	OriginalText   string
	TranslatedText string
	TargetLang     string
	CreatedAt      time.Time
}

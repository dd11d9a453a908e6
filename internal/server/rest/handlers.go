package rest

import (
	"context"
	"time"

	"github.com/dmitrijs2005/phototranslate/internal/logging"
	"github.com/dmitrijs2005/phototranslate/internal/server/models"
	"github.com/dmitrijs2005/phototranslate/internal/server/services"
)

// Response messages that clients match on.
const (
	msgUserCreated         = "User created successfully"
	msgUserExists          = "user already exists"
	msgCredentialsRequired = "email and password are required"
	msgInvalidCredentials  = "Invalid credentials"
	msgUnauthorized        = "Unauthorized"
	msgNoFile              = "No file part in the request"
	msgFileTooLarge        = "File exceeds the maximum upload size"
	msgUnsupportedImage    = "Unsupported image format"
	msgNoText              = "No text found in image."
	msgTranslatorDown      = "Translation service is currently unavailable."
	msgOCRFailed           = "OCR failed"
	msgSaveFieldsRequired  = "original, translation and target_lang are required"
	msgTranslationSaved    = "Translation saved successfully"
	msgInternal            = "Internal server error"
)

const healthPingTimeout = 2 * time.Second

type UserService interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

type TranslationService interface {
	Save(ctx context.Context, userID int64, original, translated, targetLang string) (*models.Translation, error)
	List(ctx context.Context, userID int64) ([]*models.Translation, error)
}

type TranslateService interface {
	Translate(ctx context.Context, img []byte, targetLang string) (*services.TranslateResult, error)
}

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	users          UserService
	translations   TranslationService
	translate      TranslateService
	db             Pinger
	maxUploadBytes int64
	logger         logging.Logger
}

func NewHandlers(us UserService, ts TranslationService, tr TranslateService, db Pinger, maxUploadBytes int64, l logging.Logger) *Handlers {
	return &Handlers{
		users:          us,
		translations:   ts,
		translate:      tr,
		db:             db,
		maxUploadBytes: maxUploadBytes,
		logger:         l.With("module", "http_handlers"),
	}
}

package translations

import (
	"context"

	"github.com/dmitrijs2005/phototranslate/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, t *models.Translation) (*models.Translation, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Translation, error)
}

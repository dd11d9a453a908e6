// Package translations stores saved translation results. Every read is
// scoped to the owning user.
package translations

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/phototranslate/internal/dbx"
	"github.com/dmitrijs2005/phototranslate/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, t *models.Translation) (*models.Translation, error) {

	query :=
		`INSERT INTO translations (user_id, original_text, translated_text, target_lang)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		t.UserID, t.OriginalText, t.TranslatedText, t.TargetLang).Scan(&t.ID, &t.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return t, nil
}

// ListByUser returns the user's translations ordered by id. The result is
// empty, not nil, when the user has none.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Translation, error) {

	query :=
		`SELECT id, user_id, original_text, translated_text, target_lang, created_at
		 FROM translations
		 WHERE user_id = $1
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Translation, 0)
	for rows.Next() {
		t := &models.Translation{}
		if err := rows.Scan(&t.ID, &t.UserID, &t.OriginalText, &t.TranslatedText, &t.TargetLang, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

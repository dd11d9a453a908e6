package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/phototranslate/internal/dbx"
	"github.com/dmitrijs2005/phototranslate/internal/server/repositories/translations"
	"github.com/dmitrijs2005/phototranslate/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to either the pool or an open
// transaction, and owns schema migrations.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Translations(db dbx.DBTX) translations.Repository
}

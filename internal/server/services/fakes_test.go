package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/phototranslate/internal/common"
	"github.com/dmitrijs2005/phototranslate/internal/dbx"
	"github.com/dmitrijs2005/phototranslate/internal/logging"
	"github.com/dmitrijs2005/phototranslate/internal/server/models"
	"github.com/dmitrijs2005/phototranslate/internal/server/ocr"
	"github.com/dmitrijs2005/phototranslate/internal/server/repositories/translations"
	"github.com/dmitrijs2005/phototranslate/internal/server/repositories/users"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

type fakeUsersRepo struct {
	createIn  *models.User
	createOut *models.User
	createErr error

	getIn  string
	getOut *models.User
	getErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.createIn = u
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	out := *u
	out.ID = 1
	return &out, nil
}

func (f *fakeUsersRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	f.getIn = email
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

type fakeTranslationsRepo struct {
	createIn  *models.Translation
	createErr error

	listIn  int64
	listOut []*models.Translation
	listErr error
}

func (f *fakeTranslationsRepo) Create(ctx context.Context, t *models.Translation) (*models.Translation, error) {
	f.createIn = t
	if f.createErr != nil {
		return nil, f.createErr
	}
	out := *t
	out.ID = 7
	return &out, nil
}

func (f *fakeTranslationsRepo) ListByUser(ctx context.Context, userID int64) ([]*models.Translation, error) {
	f.listIn = userID
	return f.listOut, f.listErr
}

type fakeRepoManager struct {
	users        *fakeUsersRepo
	translations *fakeTranslationsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository            { return m.users }
func (m *fakeRepoManager) Translations(dbx.DBTX) translations.Repository {
	return m.translations
}

type fakeOCR struct {
	calls int
	out   []ocr.Annotation
	err   error
}

func (f *fakeOCR) DetectText(ctx context.Context, img []byte) ([]ocr.Annotation, error) {
	f.calls++
	return f.out, f.err
}

type translateCall struct {
	text, source, target string
}

type fakeTranslator struct {
	calls []translateCall
	out   string
	err   error
}

func (f *fakeTranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	f.calls = append(f.calls, translateCall{text, source, target})
	return f.out, f.err
}

type fakeArchive struct {
	mu          sync.Mutex
	puts        int
	contentType string
	ctxErr      error
	err         error
	release     chan struct{}
}

func (f *fakeArchive) Put(ctx context.Context, data []byte, contentType string) (string, error) {
	if f.release != nil {
		<-f.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.puts++
	f.contentType = contentType
	f.ctxErr = ctx.Err()
	if f.err != nil {
		return "", f.err
	}
	return "uploads/key", nil
}

func (f *fakeArchive) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.puts
}

type logEntry struct {
	msg  string
	args []any
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (r *recordingLogger) record(msg string, args []any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, logEntry{msg: msg, args: args})
}

func (r *recordingLogger) Debug(_ context.Context, msg string, args ...any) { r.record(msg, args) }
func (r *recordingLogger) Info(_ context.Context, msg string, args ...any)  { r.record(msg, args) }
func (r *recordingLogger) Warn(_ context.Context, msg string, args ...any)  { r.record(msg, args) }
func (r *recordingLogger) Error(_ context.Context, msg string, args ...any) { r.record(msg, args) }
func (r *recordingLogger) With(...any) logging.Logger                       { return r }

func (r *recordingLogger) find(msg string) (logEntry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.msg == msg {
			return e, true
		}
	}
	return logEntry{}, false
}

// memUsersRepo stores users by email.
type memUsersRepo struct {
	mu     sync.Mutex
	nextID int64
	byMail map[string]*models.User
}

func newMemUsersRepo() *memUsersRepo {
	return &memUsersRepo{byMail: map[string]*models.User{}}
}

func (r *memUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byMail[u.Email]; ok {
		return nil, common.ErrorAlreadyExists
	}
	r.nextID++
	out := *u
	out.ID = r.nextID
	r.byMail[u.Email] = &out
	return &out, nil
}

func (r *memUsersRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byMail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *u
	return &out, nil
}

// memTranslationsRepo stores translations keyed by owner.
type memTranslationsRepo struct {
	mu     sync.Mutex
	nextID int64
	byUser map[int64][]*models.Translation
}

func newMemTranslationsRepo() *memTranslationsRepo {
	return &memTranslationsRepo{byUser: map[int64][]*models.Translation{}}
}

func (r *memTranslationsRepo) Create(ctx context.Context, t *models.Translation) (*models.Translation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	out := *t
	out.ID = r.nextID
	r.byUser[t.UserID] = append(r.byUser[t.UserID], &out)
	return &out, nil
}

func (r *memTranslationsRepo) ListByUser(ctx context.Context, userID int64) ([]*models.Translation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Translation, 0, len(r.byUser[userID]))
	out = append(out, r.byUser[userID]...)
	return out, nil
}

type memRepoManager struct {
	users        *memUsersRepo
	translations *memTranslationsRepo
}

func (m *memRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *memRepoManager) Users(dbx.DBTX) users.Repository            { return m.users }
func (m *memRepoManager) Translations(dbx.DBTX) translations.Repository {
	return m.translations
}

// Package server wires the PhotoTranslate application together: it opens the
// database, runs migrations, builds the OCR, translation and archive clients,
// and runs the HTTP API and the gRPC health service until shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/phototranslate/internal/logging"
	"github.com/dmitrijs2005/phototranslate/internal/server/config"
	"github.com/dmitrijs2005/phototranslate/internal/server/imagestore"
	"github.com/dmitrijs2005/phototranslate/internal/server/ocr"
	"github.com/dmitrijs2005/phototranslate/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/phototranslate/internal/server/rest"
	"github.com/dmitrijs2005/phototranslate/internal/server/services"
	"github.com/dmitrijs2005/phototranslate/internal/server/translator"
	"github.com/gin-gonic/gin"

	gs "github.com/dmitrijs2005/phototranslate/internal/server/grpc"
)

// ErrDefaultSecretInProduction is returned by NewApp when production mode is
// requested without a signing secret of its own.
var ErrDefaultSecretInProduction = errors.New("default secret key is not allowed in production; set PHOTOTRANSLATE_SECRET_KEY or -s")

type runner interface {
	Run(ctx context.Context) error
}

type App struct {
	config    *config.Config
	logger    logging.Logger
	db        *sql.DB
	servers   map[string]runner
	translate *services.TranslateService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	if c.UsesDefaultSecret() {
		if c.Production {
			return nil, ErrDefaultSecretInProduction
		}
		logger.Warn(ctx, "using the default secret key; set PHOTOTRANSLATE_SECRET_KEY or -s in production")
	}
	if c.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := repomanager.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	var archive services.Archive
	if c.ArchiveEnabled() {
		store, err := imagestore.NewS3Store(ctx, imagestore.Options{
			AccessKey:    c.S3RootUser,
			SecretKey:    c.S3RootPassword,
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
		})
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("image archive init error: %w", err)
		}
		archive = store
		logger.Info(ctx, "image archive enabled", "bucket", c.S3Bucket)
	}

	us := services.NewUserService(db, rm, c)
	ts := services.NewTranslationService(db, rm)
	tr := services.NewTranslateService(
		ocr.NewTesseractClient(c.TessdataPrefix, c.OCRLanguages),
		translator.New(c.TranslatorURL, c.TranslatorTimeout),
		archive,
		c.DefaultTargetLang,
		logger,
	)

	handlers := rest.NewHandlers(us, ts, tr, db, c.MaxUploadBytes, logger)

	return &App{
		config: c,
		logger: logger,
		db:     db,
		servers: map[string]runner{
			"http": rest.NewServer(c.EndpointAddrHTTP, logger, handlers),
			"grpc": gs.NewGRPCServer(c.EndpointAddrGRPC, logger),
		},
		translate: tr,
	}, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case s := <-sigs:
			app.logger.Info(ctx, "Received signal", "signal", s.String())
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

// startServer runs one server; a failure stops the whole app.
func (app *App) startServer(ctx context.Context, cancelFunc context.CancelFunc, name string, s runner) {
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, "server failed", "server", name, "error", err)
		cancelFunc()
	}
}

// Run blocks until ctx is cancelled, a termination signal arrives or one of
// the servers fails. Pending image uploads are awaited and the database is
// closed after every server has stopped.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(ctx, cancelFunc)

	var wg sync.WaitGroup

	for name, s := range app.servers {
		name, s := name, s
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startServer(ctx, cancelFunc, name, s)
		}()
	}

	wg.Wait()

	if app.translate != nil {
		app.translate.Wait()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "db close error", "error", err)
		}
	}

	app.logger.Info(ctx, "App stopped")
}

// Package server initializes and runs the application server. It opens the
// database, runs migrations, wires the services behind the HTTP API, and
// handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/gauravjot/my-it-tools/internal/logging"
	"github.com/gauravjot/my-it-tools/internal/server/config"
	"github.com/gauravjot/my-it-tools/internal/server/httpapi"
	"github.com/gauravjot/my-it-tools/internal/server/repositories/repomanager"
	"github.com/gauravjot/my-it-tools/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	handler *httpapi.Handler
}

func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	userService := services.NewUserService(db, rm, cfg)
	noteService, err := services.NewNoteService(db, rm, cfg)
	if err != nil {
		return nil, fmt.Errorf("note service init error: %w", err)
	}
	shareService := services.NewShareService(db, rm, noteService)
	trackerService := services.NewTrackerService(db, rm)
	attachmentService := services.NewAttachmentService(db, rm, cfg)

	handler := httpapi.NewHandler(logger, cfg,
		userService, noteService, shareService, trackerService, attachmentService)

	return &App{config: cfg, logger: logger, db: db, handler: handler}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	mux := http.NewServeMux()
	app.handler.RegisterRoutes(mux)

	server := &http.Server{
		Addr:    app.config.EndpointAddr,
		Handler: mux,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(ctx, "server shutdown error", "error", err)
		}
	}()

	app.logger.Info(ctx, "starting HTTP server", "addr", app.config.EndpointAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
}

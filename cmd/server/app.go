package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/phrazzld/studydeck/internal/config"
	"github.com/phrazzld/studydeck/internal/store"
	"github.com/phrazzld/studydeck/internal/store/jsonfile"
	"github.com/phrazzld/studydeck/internal/store/postgres"
	"github.com/phrazzld/studydeck/internal/study"
	"github.com/phrazzld/studydeck/migrations"
)

// application holds the wired dependencies for the server. The study
// engine is single-threaded; engineMu serializes every handler that
// touches the registry or the session.
type application struct {
	config   *config.Config
	logger   *slog.Logger
	registry *study.Registry
	session  *study.Session
	engineMu sync.Mutex
	pool     *pgxpool.Pool
}

// newApplication connects the configured storage backend, loads the
// course registry from it, and binds a fresh study session.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	courseStore, err := app.setupStore(context.Background())
	if err != nil {
		return nil, err
	}

	registry, err := study.NewRegistry(context.Background(), courseStore)
	if err != nil {
		return nil, fmt.Errorf("failed to load courses: %w", err)
	}

	app.registry = registry
	app.session = study.NewSession(registry)
	return app, nil
}

// setupStore creates the CourseStore named by the storage backend
// configuration. The postgres backend runs pending migrations first.
func (app *application) setupStore(ctx context.Context) (store.CourseStore, error) {
	switch app.config.Storage.Backend {
	case "jsonfile":
		app.logger.Info("Using JSON file storage",
			"path", app.config.Storage.FilePath)
		return jsonfile.New(app.config.Storage.FilePath), nil

	case "postgres":
		if err := runMigrations(app.config.Storage.DatabaseURL); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}

		pool, err := pgxpool.New(ctx, app.config.Storage.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to create connection pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}

		app.pool = pool
		app.logger.Info("Connected to PostgreSQL storage")
		return postgres.NewPostgresCourseStore(pool, app.logger), nil

	default:
		return nil, fmt.Errorf("unknown storage backend: %q", app.config.Storage.Backend)
	}
}

// runMigrations applies the embedded goose migrations through a
// short-lived database/sql connection; the pgx pool used for serving
// requests is opened afterwards.
func runMigrations(databaseURL string) error {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("opening migration connection: %w", err)
	}
	defer func() {
		_ = db.Close()
	}()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("setting migration dialect: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("applying migrations: %w", err)
	}
	return nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.pool != nil {
		app.logger.Info("Closing database connection pool")
		app.pool.Close()
	}
}

package main

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"volei-app/internal/config"
	"volei-app/internal/logging"
	"volei-app/internal/model"
	"volei-app/internal/source"
	"volei-app/internal/store"
	"volei-app/internal/web"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

//go:embed templates static migrations
var content embed.FS

func main() {
	cfg := config.Load()
	logger, err := logging.New(cfg.LogLevel, cfg.App)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	templates, err := web.NewTemplates(content)
	if err != nil {
		logger.Fatal("templates", zap.Error(err))
	}

	appStore, err := openStore(cfg, content, logger)
	if err != nil {
		logger.Fatal("store", zap.Error(err))
	}

	server := web.NewServer(appStore, templates, logger, web.Options{
		Title:             cfg.Title,
		AdminUser:         cfg.AdminUser,
		AdminPasswordHash: cfg.AdminPasswordHash,
		IsDev:             cfg.IsDev(),
	})
	if err := importSource(cfg, appStore, logger); err != nil {
		logger.Error("initial import failed", zap.Error(err))
		server.SetSourceError(err)
	}
	if !cfg.AdminEnabled() {
		logger.Info("admin endpoints disabled: ADMIN_PASSWORD_HASH not set")
	}

	staticFS, err := fs.Sub(content, "static")
	if err != nil {
		logger.Fatal("static fs", zap.Error(err))
	}
	r := chi.NewRouter()
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	r.Mount("/", server.Routes())

	if cfg.IsLambda() {
		logger.Info("starting in lambda mode", zap.String("function", cfg.LambdaFunction))
		adapter := httpadapter.New(r)
		lambda.Start(adapter.ProxyWithContext)
		return
	}
	logger.Info("listening", zap.String("addr", cfg.Addr))
	if err := http.ListenAndServe(cfg.Addr, r); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("http server", zap.Error(err))
	}
}

func openStore(cfg config.Config, assets fs.FS, logger *zap.Logger) (store.Store, error) {
	if cfg.PostgresDSN != "" {
		logger.Info("using postgres store")
		migrations, err := fs.Sub(assets, "migrations/postgres")
		if err != nil {
			return nil, err
		}
		return store.NewPostgresStore(cfg.PostgresDSN, store.PostgresOptions{
			MigrationsDir: cfg.PostgresMigrationsDir,
			Migrations:    migrations,
		})
	}
	if cfg.DBPath != "" {
		logger.Info("using sqlite store", zap.String("path", cfg.DBPath))
		migrations, err := fs.Sub(assets, "migrations")
		if err != nil {
			return nil, err
		}
		return store.NewSQLiteStore(cfg.DBPath, store.SQLiteOptions{
			MigrationsDir: cfg.DBMigrationsDir,
			Migrations:    migrations,
		})
	}
	logger.Info("using memory store", zap.Bool("seeded", !cfg.IsProd()))
	return store.NewMemoryStore(), nil
}

// importSource replaces the stored tournament with DATA_FILE or DATA_URL when
// one is configured. Without either the store keeps what it has.
func importSource(cfg config.Config, appStore store.Store, logger *zap.Logger) error {
	var (
		t   model.Tournament
		err error
	)
	switch {
	case cfg.DataFile != "":
		t, err = source.LoadFile(cfg.DataFile)
	case cfg.DataURL != "":
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		t, err = source.Fetch(ctx, &http.Client{Timeout: 15 * time.Second}, cfg.DataURL)
	default:
		return nil
	}
	if err != nil {
		return err
	}
	saved, err := appStore.ReplaceTournament(t)
	if err != nil {
		return err
	}
	logger.Info("tournament loaded",
		zap.Int("teams", len(saved.Teams)),
		zap.Int("matches", len(saved.Matches)),
	)
	return nil
}

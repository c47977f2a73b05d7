// Package app wires configuration into the database pool and the loaded
// model resources shared by the server and the CLI.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"github.com/sudhakarreddy2005/heart-disease-Rf-ml/internal/artifact"
	"github.com/sudhakarreddy2005/heart-disease-Rf-ml/internal/config"
)

type App struct {
	Resources *artifact.Resources
	// Pool is nil unless the configuration needs a database.
	Pool *pgxpool.Pool
}

// Open connects to the database when configured and loads the model
// resources. Any error is fatal for the caller.
func Open(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{}

	if cfg.UsesDB() {
		pool, err := ConnectDB(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("database connection failed: %w", err)
		}
		a.Pool = pool
		log.Info("database connection established")
	}

	var db artifact.RowQuerier
	if a.Pool != nil {
		db = a.Pool
	}
	res, err := LoadResources(ctx, cfg, db)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Resources = res
	return a, nil
}

func (a *App) Close() {
	if a.Pool != nil {
		a.Pool.Close()
	}
}

func LoadResources(ctx context.Context, cfg *config.Config, db artifact.RowQuerier) (*artifact.Resources, error) {
	var source artifact.Source = artifact.FileSource{Dir: cfg.Artifacts.Dir}
	if cfg.Artifacts.Source == config.SourcePostgres {
		if db == nil {
			return nil, fmt.Errorf("%w: postgres artifact source without a database", artifact.ErrLoad)
		}
		source = artifact.PostgresSource{DB: db}
	}

	loader := artifact.NewLoader(source, artifact.Options{
		ModelName:     cfg.Artifacts.ModelPath,
		ScalerName:    cfg.Artifacts.ScalerPath,
		RemoteURL:     cfg.Artifacts.RemoteURL,
		RemoteTimeout: cfg.Artifacts.RemoteTimeout,
	})

	loadCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return loader.Load(loadCtx)
}

func ConnectDB(ctx context.Context, url string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse db url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	return pool, nil
}

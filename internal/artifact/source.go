package artifact

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5"
)

var ErrNotFound = errors.New("artifact not found")

// Source fetches the raw bytes of a named artifact.
type Source interface {
	Read(ctx context.Context, name string) ([]byte, error)
	String() string
}

// FileSource reads artifacts from a local directory.
type FileSource struct {
	Dir string
}

func (s FileSource) Read(_ context.Context, name string) ([]byte, error) {
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.Dir, name)
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func (s FileSource) String() string {
	return "file:" + s.Dir
}

// RowQuerier is the subset of pgxpool.Pool used to read artifacts.
type RowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresSource reads artifacts from the model_artifacts table:
//
//	CREATE TABLE model_artifacts (name text PRIMARY KEY, payload jsonb NOT NULL);
type PostgresSource struct {
	DB RowQuerier
}

const selectArtifact = `SELECT payload FROM model_artifacts WHERE name = $1`

func (s PostgresSource) Read(ctx context.Context, name string) ([]byte, error) {
	var payload []byte
	err := s.DB.QueryRow(ctx, selectArtifact, name).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("query artifact %s: %w", name, err)
	}
	return payload, nil
}

func (s PostgresSource) String() string {
	return "postgres:model_artifacts"
}

package typecache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
)

// Store persists raw type definition JSON across sessions.
type Store interface {
	// Get returns nil, nil when the definition is not stored.
	Get(ctx context.Context, repositoryID, typeID string) ([]byte, error)
	Put(ctx context.Context, repositoryID, typeID string, definition []byte) error
	DeleteRepository(ctx context.Context, repositoryID string) error
	Close() error
}

// PostgresStore implements Store backed by Postgres.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens dsn with the given database/sql driver ("postgres"
// for lib/pq, "pgx" for pgx) and ensures the schema exists.
func NewPostgresStore(driver, dsn string) (*PostgresStore, error) {
	if dsn == "" {
		return nil, errors.New("type store DSN not set")
	}
	switch driver {
	case "":
		driver = "postgres"
	case "postgres", "pgx":
	default:
		return nil, fmt.Errorf("unsupported type store driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open type store: %w", err)
	}
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	store, err := NewPostgresStoreWithDB(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// NewPostgresStoreWithDB reuses an existing *sql.DB.
func NewPostgresStoreWithDB(db *sql.DB) (*PostgresStore, error) {
	if db == nil {
		return nil, errors.New("db is required")
	}
	if err := ensureTable(db); err != nil {
		return nil, fmt.Errorf("ensure type store schema: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func ensureTable(db *sql.DB) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS cmis_type_definitions (
  repository_id text NOT NULL,
  type_id text NOT NULL,
  definition jsonb NOT NULL,
  updated_at timestamptz NOT NULL DEFAULT now(),
  PRIMARY KEY (repository_id, type_id)
);
`
	_, err := db.Exec(ddl)
	return err
}

func (s *PostgresStore) Get(ctx context.Context, repositoryID, typeID string) ([]byte, error) {
	var definition []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT definition FROM cmis_type_definitions WHERE repository_id=$1 AND type_id=$2`,
		repositoryID, typeID).Scan(&definition)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return definition, nil
}

func (s *PostgresStore) Put(ctx context.Context, repositoryID, typeID string, definition []byte) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO cmis_type_definitions (repository_id, type_id, definition)
VALUES ($1, $2, $3::jsonb)
ON CONFLICT (repository_id, type_id)
DO UPDATE SET definition = EXCLUDED.definition, updated_at = now()`,
		repositoryID, typeID, string(definition))
	return err
}

func (s *PostgresStore) DeleteRepository(ctx context.Context, repositoryID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM cmis_type_definitions WHERE repository_id=$1`, repositoryID)
	return err
}

func (s *PostgresStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

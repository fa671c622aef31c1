package kv

import (
	"context"
	"errors"
	"fmt"

	"orcafacil/internal/usecase/interfaces"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgresDB is the subset of pgxpool.Pool the store uses.
type PostgresDB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore keeps values in a two-column table.
type PostgresStore struct {
	db     PostgresDB
	table  string
	prefix string
}

var _ interfaces.IKeyValueStore = (*PostgresStore)(nil)

// NewPostgresStore creates the table when it does not exist yet.
func NewPostgresStore(ctx context.Context, db PostgresDB, table, prefix string) (*PostgresStore, error) {
	s := &PostgresStore{db: db, table: pgx.Identifier{table}.Sanitize(), prefix: prefix}
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (key TEXT PRIMARY KEY, value TEXT NOT NULL)`, s.table)
	if _, err := db.Exec(ctx, ddl); err != nil {
		return nil, fmt.Errorf("create %s: %w", table, err)
	}
	return s, nil
}

func (s *PostgresStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(ctx, fmt.Sprintf(`SELECT value FROM %s WHERE key = $1`, s.table), s.prefix+key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *PostgresStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.Exec(ctx,
		fmt.Sprintf(`INSERT INTO %s (key, value) VALUES ($1, $2) ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`, s.table),
		s.prefix+key, value)
	return err
}

func (s *PostgresStore) Remove(ctx context.Context, key string) error {
	_, err := s.db.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE key = $1`, s.table), s.prefix+key)
	return err
}

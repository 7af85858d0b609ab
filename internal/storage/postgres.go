package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgTable         = "shelf_kv"
	pgColName       = "name"
	pgColValue      = "value"
	dialectPostgres = "postgres"

	// pgTimeout bounds each statement; the shelf API itself is synchronous.
	pgTimeout = 10 * time.Second
)

const pgCreateTable = `CREATE TABLE IF NOT EXISTS shelf_kv (
	name  TEXT PRIMARY KEY,
	value BYTEA NOT NULL
)`

// PostgresKV stores key-value pairs in a PostgreSQL table through pgx.
type PostgresKV struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects to dsn and creates the kv table if missing.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresKV, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres backend requires postgres_dsn")
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if _, err := pool.Exec(ctx, pgCreateTable); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create %s table: %w", pgTable, err)
	}

	return &PostgresKV{pool: pool}, nil
}

// Get returns the value stored under key.
func (p *PostgresKV) Get(key string) ([]byte, bool, error) {
	query, args, err := goqu.Dialect(dialectPostgres).
		From(pgTable).
		Select(pgColValue).
		Where(goqu.C(pgColName).Eq(key)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, false, fmt.Errorf("failed to build select query: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pgTimeout)
	defer cancel()

	var value []byte
	if err := p.pool.QueryRow(ctx, query, args...).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, true, nil
}

// Set overwrites the value stored under key.
func (p *PostgresKV) Set(key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	query, args, err := goqu.Dialect(dialectPostgres).
		Insert(pgTable).
		Rows(goqu.Record{pgColName: key, pgColValue: value}).
		OnConflict(goqu.DoUpdate(pgColName, goqu.Record{pgColValue: goqu.I("excluded." + pgColValue)})).
		Prepared(true).
		ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pgTimeout)
	defer cancel()

	if _, err := p.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Delete removes the value stored under key. Deleting a missing key is not an error.
func (p *PostgresKV) Delete(key string) error {
	query, args, err := goqu.Dialect(dialectPostgres).
		Delete(pgTable).
		Where(goqu.C(pgColName).Eq(key)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pgTimeout)
	defer cancel()

	if _, err := p.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Keys returns all stored keys in sorted order.
func (p *PostgresKV) Keys() ([]string, error) {
	query, _, err := goqu.Dialect(dialectPostgres).
		From(pgTable).
		Select(pgColName).
		Order(goqu.I(pgColName).Asc()).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pgTimeout)
	defer cancel()

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	keys, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	return keys, nil
}

// Close releases the connection pool.
func (p *PostgresKV) Close() error {
	p.pool.Close()
	return nil
}

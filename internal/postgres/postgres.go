// internal/postgres/postgres.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // goqu dialect registration
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // database/sql driver
)

// Dialect is the goqu dialect name used by every query builder in this repo.
const Dialect = "postgres"

// DB wraps the connection pool and owns transaction scoping. Every gateway
// call runs under queryTimeout so a stuck statement cannot hold a caller
// (or a row lock) indefinitely.
type DB struct {
	*sqlx.DB
	queryTimeout time.Duration
}

// Open connects and verifies the connection.
func Open(ctx context.Context, databaseURL string, queryTimeout time.Duration) (*DB, error) {
	db, err := sqlx.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{DB: db, queryTimeout: queryTimeout}, nil
}

func (db *DB) queryCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if db.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, db.queryTimeout)
}

// GetContext applies the query timeout before delegating to the pool.
func (db *DB) GetContext(ctx context.Context, dest any, query string, args ...any) error {
	ctx, cancel := db.queryCtx(ctx)
	defer cancel()
	return db.DB.GetContext(ctx, dest, query, args...)
}

// SelectContext applies the query timeout before delegating to the pool.
func (db *DB) SelectContext(ctx context.Context, dest any, query string, args ...any) error {
	ctx, cancel := db.queryCtx(ctx)
	defer cancel()
	return db.DB.SelectContext(ctx, dest, query, args...)
}

// ExecContext applies the query timeout before delegating to the pool.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	ctx, cancel := db.queryCtx(ctx)
	defer cancel()
	return db.DB.ExecContext(ctx, query, args...)
}

// WithinTx runs fn inside a transaction and guarantees exactly one of
// commit or rollback on every exit path, including panics. The error
// returned by fn propagates unchanged so typed errors survive. The whole
// transaction shares one query-timeout deadline.
func (db *DB) WithinTx(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	ctx, cancel := db.queryCtx(ctx)
	defer cancel()

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				err = fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
			}
			return
		}
		err = tx.Commit()
	}()

	err = fn(tx)
	return err
}

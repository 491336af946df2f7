package postgres

import (
	"context"
	"database/sql"
	"log"

	"github.com/chestno/chestno/internal/config"
	"github.com/chestno/chestno/internal/logger"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// DB wraps sqlx.DB to provide transaction management
type DB struct {
	*sqlx.DB
	logger *logger.Logger
}

// Querier interface defines all database operations
// Both *sqlx.DB and *sqlx.Tx implement these methods
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	NamedExec(query string, arg interface{}) (sql.Result, error)
	NamedQuery(query string, arg interface{}) (*sqlx.Rows, error)
	Queryx(query string, args ...interface{}) (*sqlx.Rows, error)
	PrepareNamed(query string) (*sqlx.NamedStmt, error)
	Preparex(query string) (*sqlx.Stmt, error)
}

// NewDB creates a new DB instance
func NewDB(config *config.Configuration, logger *logger.Logger) (*DB, error) {
	dsn := config.Postgres.GetDSN()
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, err
	}

	return &DB{DB: db, logger: logger}, nil
}

// Close closes the database connection
func (db *DB) Close() {
	if err := db.DB.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}
}

// GetQuerier returns either the transaction from context or the base DB
func (db *DB) GetQuerier(ctx context.Context) Querier {
	if tx, ok := GetTx(ctx); ok {
		return NewTracedQuerier(tx.Tx, db.logger, tx.ID)
	}
	return NewTracedQuerier(db.DB, db.logger, "")
}

// NamedExecContext is a helper method that wraps NamedExec with context
func (db *DB) NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error) {
	q := db.GetQuerier(ctx)
	return q.NamedExec(query, arg)
}

// NamedQueryContext is a helper method that wraps NamedQuery with context
func (db *DB) NamedQueryContext(ctx context.Context, query string, arg interface{}) (*sqlx.Rows, error) {
	q := db.GetQuerier(ctx)
	return q.NamedQuery(query, arg)
}

// NamedInQueryContext runs a named query whose parameters may include
// slices, expanding them into IN lists via sqlx.In before execution.
func (db *DB) NamedInQueryContext(ctx context.Context, query string, arg interface{}) (*sqlx.Rows, error) {
	bound, args, err := bindNamedIn(query, arg)
	if err != nil {
		return nil, err
	}
	return db.GetQuerier(ctx).Queryx(bound, args...)
}

// bindNamedIn resolves named parameters, expands slice values into IN
// lists, and rebinds to Postgres placeholders.
func bindNamedIn(query string, arg interface{}) (string, []interface{}, error) {
	bound, args, err := sqlx.Named(query, arg)
	if err != nil {
		return "", nil, err
	}
	bound, args, err = sqlx.In(bound, args...)
	if err != nil {
		return "", nil, err
	}
	return sqlx.Rebind(sqlx.DOLLAR, bound), args, nil
}

// IClient is the transactional surface services depend on. *DB implements
// it; tests substitute a client that runs the function without a real
// transaction.
type IClient interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

var _ IClient = (*DB)(nil)

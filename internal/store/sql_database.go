package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-project-board/internal/config"
	"github.com/MKhiriev/go-project-board/internal/logger"
	"github.com/MKhiriev/go-project-board/migrations"
)

// Dialect identifies the SQL backend behind a [DB].
type Dialect string

const (
	DialectPostgres Dialect = migrations.DialectPostgres
	DialectSQLite   Dialect = migrations.DialectSQLite
)

// DB wraps a connection pool with the dialect specific pieces the
// repositories need: the statement builder and the error classifier.
type DB struct {
	*sql.DB
	dialect            Dialect
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func newDB(conn *sql.DB, dialect Dialect, classifier ErrorClassificator, log *logger.Logger) *DB {
	var placeholder sq.PlaceholderFormat = sq.Question
	if dialect == DialectPostgres {
		placeholder = sq.Dollar
	}

	return &DB{
		DB:                 conn,
		dialect:            dialect,
		builder:            sq.StatementBuilder.PlaceholderFormat(placeholder),
		errorClassificator: classifier,
		logger:             log,
	}
}

// NewConnect opens the backend selected by the DSN form: "postgres://",
// "postgresql://" and "host=..." DSNs open PostgreSQL, "sqlite://",
// "file:", ":memory:" and "*.db" DSNs open SQLite.
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	dialect, err := DialectFromDSN(cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnect").Msg("cannot select database backend")
		return nil, err
	}

	switch dialect {
	case DialectPostgres:
		return NewConnectPostgres(ctx, cfg, log)
	default:
		return NewConnectSQLite(ctx, cfg, log)
	}
}

// DialectFromDSN reports which backend a DSN addresses.
func DialectFromDSN(dsn string) (Dialect, error) {
	lower := strings.ToLower(strings.TrimSpace(dsn))
	switch {
	case strings.HasPrefix(lower, "postgres://"),
		strings.HasPrefix(lower, "postgresql://"),
		strings.Contains(lower, "host="):
		return DialectPostgres, nil
	case strings.HasPrefix(lower, "sqlite://"),
		strings.HasPrefix(lower, "file:"),
		lower == ":memory:",
		strings.HasSuffix(lower, ".db"),
		strings.HasSuffix(lower, ".sqlite3"):
		return DialectSQLite, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedDSN, dsn)
}

// Dialect returns the backend of the connection.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Migrate applies the embedded schema migrations of the connection dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, string(db.dialect))
}

// withTx runs fn inside a transaction and commits when fn succeeds.
// fn must use only tx: SQLite connections are limited to one.
func (db *DB) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}
	return nil
}

// translate maps driver errors to store sentinels. Unique violations become
// the matching *AlreadyExists error, a missing row becomes ErrNotFound and
// transient failures additionally match ErrTemporarilyUnavailable. Every
// other error is wrapped with op.
func (db *DB) translate(err error, op error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if db.errorClassificator != nil {
		if constraint, ok := db.errorClassificator.UniqueViolation(err); ok {
			return uniqueViolationError(constraint)
		}
		if db.errorClassificator.Classify(err) == Retryable {
			return fmt.Errorf("%w: %w: %w", ErrTemporarilyUnavailable, op, err)
		}
	}
	return fmt.Errorf("%w: %w", op, err)
}

func uniqueViolationError(constraint string) error {
	switch {
	case strings.Contains(constraint, "username"):
		return ErrUsernameAlreadyExists
	case strings.Contains(constraint, "email"):
		return ErrEmailAlreadyExists
	case strings.Contains(constraint, "auth_tokens"):
		return ErrTokenAlreadyExists
	default:
		return fmt.Errorf("%w: %s", ErrUniqueViolation, constraint)
	}
}

package sqlite

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx, so the same repository
// code serves standalone reads and page-transaction writes.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Repo provides a base for Squirrel-based repositories.
type Repo struct {
	DB DBTX
	SQ sq.StatementBuilderType
}

func NewRepo(db DBTX) *Repo {
	return &Repo{DB: db, SQ: sq.StatementBuilder}
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/marine-term-translations/setup-harvest-action/internal/domain"
	"github.com/marine-term-translations/setup-harvest-action/internal/ports"
)

// Store implements ports.Store: it owns the database handle and hands
// the reconciler a transaction-bound TermRepo per page.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) WithTx(ctx context.Context, fn func(ports.TermRepository) error) error {
	err := WithTx(ctx, s.db, func(tx *sql.Tx) error {
		return fn(NewTermRepo(tx))
	})
	if err == nil {
		return nil
	}
	// Repos wrap their own failures; anything else came from Begin or
	// Commit.
	var se *domain.StoreError
	if errors.As(err, &se) {
		return err
	}
	return &domain.StoreError{Op: "page transaction", Err: err}
}

// RecordHarvest upserts the collection's metadata row with the run
// timestamp and member count.
func (s *Store) RecordHarvest(ctx context.Context, collectionURI string, conceptCount int) error {
	r := NewRepo(s.db)
	now := time.Now().UTC().Format(time.RFC3339)
	q := r.SQ.Insert("collection_metadata").
		Columns("collection_uri", "harvested_at", "concept_count").
		Values(collectionURI, now, conceptCount).
		Suffix("ON CONFLICT(collection_uri) DO UPDATE SET harvested_at=excluded.harvested_at, concept_count=excluded.concept_count")
	sqlStr, args, _ := q.ToSql()
	if _, err := s.db.ExecContext(ctx, sqlStr, args...); err != nil {
		return &domain.StoreError{Op: "record harvest metadata", Err: err}
	}
	return nil
}

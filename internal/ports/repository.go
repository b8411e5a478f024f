package ports

import (
	"context"

	"github.com/marine-term-translations/setup-harvest-action/internal/domain"
)

// TermRepository is the write surface the reconciler needs. Both
// operations are idempotent: EnsureTerm is an explicit insert-or-get
// primitive, InsertField reports false instead of failing on an
// already-known fact.
type TermRepository interface {
	// EnsureTerm resolves or creates the term for uri. inserted is true
	// when a new row was created; an existing row gets its updated_at
	// touched instead.
	EnsureTerm(ctx context.Context, uri string) (id int64, inserted bool, err error)
	// InsertField stores one harvested fact. A duplicate (term, field,
	// value) triple is a no-op and returns inserted=false.
	InsertField(ctx context.Context, f *domain.TermField) (inserted bool, err error)
}

// TranslationRepository is the downstream workflow's surface over
// translations. The harvest pipeline never calls it.
type TranslationRepository interface {
	Upsert(ctx context.Context, t *domain.Translation) error
	Get(ctx context.Context, termFieldID int64, language string) (*domain.Translation, error)
	ListByTermField(ctx context.Context, termFieldID int64) ([]*domain.Translation, error)
}

// Store owns transaction boundaries. WithTx runs fn against a
// TermRepository bound to a single transaction; fn returning an error
// rolls the whole page back.
type Store interface {
	WithTx(ctx context.Context, fn func(TermRepository) error) error
	// RecordHarvest upserts the per-collection metadata row after a
	// successful run.
	RecordHarvest(ctx context.Context, collectionURI string, conceptCount int) error
}

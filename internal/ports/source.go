package ports

import (
	"context"

	"github.com/marine-term-translations/setup-harvest-action/internal/domain"
)

// ConceptSource is the remote end of the harvest: a SPARQL endpoint in
// production, a fake in tests.
type ConceptSource interface {
	// Validate rejects a malformed collection identifier with
	// domain.InvalidInputError before any network traffic happens.
	Validate(collectionURI string) error
	// CountMembers returns the number of distinct concepts in the
	// collection.
	CountMembers(ctx context.Context, collectionURI string) (int, error)
	// FetchPage returns the records in [offset, offset+limit), ordered
	// by concept URI.
	FetchPage(ctx context.Context, collectionURI string, limit, offset int) ([]domain.Record, error)
}

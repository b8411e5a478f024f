package harvester

import (
	"context"
	"strings"

	"github.com/marine-term-translations/setup-harvest-action/internal/domain"
	"github.com/marine-term-translations/setup-harvest-action/internal/ports"
)

// reconcilePage merges one fetched page into the store. All writes run
// on the transaction-bound repository the caller provides, so the page
// commits or rolls back as a unit.
func (s *Service) reconcilePage(ctx context.Context, repo ports.TermRepository, records []domain.Record) (Stats, error) {
	var stats Stats
	for _, rec := range records {
		st, err := s.reconcileRecord(ctx, repo, rec)
		if err != nil {
			return stats, err
		}
		stats.add(st)
	}
	return stats, nil
}

// reconcileRecord merges a single record. The merge is additive and
// convergent: known facts are no-ops, absent attributes never delete
// previously stored fields, and a changed literal becomes a new
// TermField row so translations stay anchored to the text they were
// written for.
func (s *Service) reconcileRecord(ctx context.Context, repo ports.TermRepository, rec domain.Record) (Stats, error) {
	var stats Stats

	uri := strings.TrimSpace(rec["concept"])
	if uri == "" {
		// Not an error: a row without a concept binding carries nothing
		// to merge.
		return stats, nil
	}

	termID, inserted, err := repo.EnsureTerm(ctx, uri)
	if err != nil {
		return stats, err
	}
	if inserted {
		stats.TermsInserted++
	} else {
		stats.TermsUpdated++
	}

	for _, f := range s.fields {
		value, ok := rec[f.Var]
		if !ok || strings.TrimSpace(value) == "" {
			continue
		}
		added, err := repo.InsertField(ctx, &domain.TermField{
			TermID:        termID,
			FieldURI:      f.URI,
			FieldTerm:     f.Label,
			OriginalValue: value,
		})
		if err != nil {
			return stats, err
		}
		if added {
			stats.FieldsInserted++
		}
	}
	return stats, nil
}

package harvester

import (
	"context"

	"go.uber.org/zap"

	"github.com/marine-term-translations/setup-harvest-action/internal/domain"
	"github.com/marine-term-translations/setup-harvest-action/internal/ports"
)

// Stats counts the store mutations one run (or one page) performed.
type Stats struct {
	TermsInserted  int
	TermsUpdated   int
	FieldsInserted int
}

func (s *Stats) add(o Stats) {
	s.TermsInserted += o.TermsInserted
	s.TermsUpdated += o.TermsUpdated
	s.FieldsInserted += o.FieldsInserted
}

// Summary is the aggregate result of a completed run.
type Summary struct {
	Collection string
	Total      int
	Pages      int
	Stats      Stats
}

// Service drives the harvest: validate, count, then fetch and reconcile
// consecutive pages, committing one transaction per page. Strictly
// sequential; a failed page fails the run and leaves earlier pages
// committed.
type Service struct {
	source    ports.ConceptSource
	store     ports.Store
	fields    []domain.Field
	batchSize int
	log       *zap.Logger
}

func New(source ports.ConceptSource, store ports.Store, fields []domain.Field, batchSize int, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{source: source, store: store, fields: fields, batchSize: batchSize, log: log}
}

// Run harvests the whole collection. Re-running after a failure is the
// documented recovery path: reconciliation is idempotent, so already
// committed pages simply converge.
func (s *Service) Run(ctx context.Context, collectionURI string) (Summary, error) {
	if err := s.source.Validate(collectionURI); err != nil {
		return Summary{}, err
	}

	total, err := s.source.CountMembers(ctx, collectionURI)
	if err != nil {
		return Summary{}, err
	}
	s.log.Info("collection counted", zap.String("collection", collectionURI), zap.Int("members", total))

	summary := Summary{Collection: collectionURI, Total: total}
	for offset := 0; offset < total; offset += s.batchSize {
		records, err := s.source.FetchPage(ctx, collectionURI, s.batchSize, offset)
		if err != nil {
			return summary, err
		}

		var page Stats
		err = s.store.WithTx(ctx, func(repo ports.TermRepository) error {
			st, err := s.reconcilePage(ctx, repo, records)
			page = st
			return err
		})
		if err != nil {
			return summary, err
		}

		summary.Pages++
		summary.Stats.add(page)
		s.log.Info("page committed",
			zap.Int("offset", offset),
			zap.Int("records", len(records)),
			zap.Int("terms_inserted", page.TermsInserted),
			zap.Int("terms_updated", page.TermsUpdated),
			zap.Int("fields_inserted", page.FieldsInserted))
	}

	if err := s.store.RecordHarvest(ctx, collectionURI, total); err != nil {
		return summary, err
	}

	s.log.Info("harvest complete",
		zap.String("collection", collectionURI),
		zap.Int("members", total),
		zap.Int("pages", summary.Pages),
		zap.Int("terms_inserted", summary.Stats.TermsInserted),
		zap.Int("terms_updated", summary.Stats.TermsUpdated),
		zap.Int("fields_inserted", summary.Stats.FieldsInserted))
	return summary, nil
}

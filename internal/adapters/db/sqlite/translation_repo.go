package sqlite

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/marine-term-translations/setup-harvest-action/internal/domain"
)

// TranslationRepo is the translation workflow's surface over the
// translations table. The harvest pipeline never goes through it.
type TranslationRepo struct{ *Repo }

func NewTranslationRepo(db DBTX) *TranslationRepo { return &TranslationRepo{NewRepo(db)} }

func (r *TranslationRepo) Upsert(ctx context.Context, t *domain.Translation) error {
	now := time.Now().UTC().Format(time.RFC3339)
	q := r.SQ.Insert("translations").
		Columns("term_field_id", "language", "value", "status", "created_by", "reviewed_by", "created_at", "updated_at").
		Values(t.TermFieldID, t.Language, t.Value, t.Status, t.CreatedBy, t.ReviewedBy, now, now).
		Suffix("ON CONFLICT(term_field_id, language) DO UPDATE SET value=excluded.value, status=excluded.status, reviewed_by=excluded.reviewed_by, updated_at=excluded.updated_at")
	sqlStr, args, _ := q.ToSql()
	if _, err := r.DB.ExecContext(ctx, sqlStr, args...); err != nil {
		return &domain.StoreError{Op: "upsert translation", Err: err}
	}
	return nil
}

func (r *TranslationRepo) Get(ctx context.Context, termFieldID int64, language string) (*domain.Translation, error) {
	q := r.SQ.Select("id", "term_field_id", "language", "value", "status", "created_by", "reviewed_by", "created_at", "updated_at").
		From("translations").Where(sq.Eq{"term_field_id": termFieldID}).Where(sq.Eq{"language": language}).Limit(1)
	sqlStr, args, _ := q.ToSql()
	row := r.DB.QueryRowContext(ctx, sqlStr, args...)
	t, err := scanTranslation(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, &domain.StoreError{Op: "select translation", Err: err}
	}
	return t, nil
}

func (r *TranslationRepo) ListByTermField(ctx context.Context, termFieldID int64) ([]*domain.Translation, error) {
	q := r.SQ.Select("id", "term_field_id", "language", "value", "status", "created_by", "reviewed_by", "created_at", "updated_at").
		From("translations").Where(sq.Eq{"term_field_id": termFieldID}).OrderBy("language")
	sqlStr, args, _ := q.ToSql()
	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, &domain.StoreError{Op: "list translations", Err: err}
	}
	defer rows.Close()
	var out []*domain.Translation
	for rows.Next() {
		t, err := scanTranslation(rows.Scan)
		if err != nil {
			return nil, &domain.StoreError{Op: "list translations", Err: err}
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func scanTranslation(scan func(dest ...any) error) (*domain.Translation, error) {
	var t domain.Translation
	var created, updated string
	var reviewed sql.NullString
	if err := scan(&t.ID, &t.TermFieldID, &t.Language, &t.Value, &t.Status, &t.CreatedBy, &reviewed, &created, &updated); err != nil {
		return nil, err
	}
	if reviewed.Valid {
		v := reviewed.String
		t.ReviewedBy = &v
	}
	t.CreatedAt, _ = time.Parse(time.RFC3339, created)
	t.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
	return &t, nil
}

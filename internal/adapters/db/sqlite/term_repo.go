package sqlite

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/marine-term-translations/setup-harvest-action/internal/domain"
)

// TermRepo implements ports.TermRepository over a DBTX, so the
// reconciler can run it inside a page transaction.
type TermRepo struct{ *Repo }

func NewTermRepo(db DBTX) *TermRepo { return &TermRepo{NewRepo(db)} }

// EnsureTerm resolves or creates the term row for uri. An existing row
// only gets its updated_at touched; the URI itself is never rewritten.
func (r *TermRepo) EnsureTerm(ctx context.Context, uri string) (int64, bool, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	q := r.SQ.Select("id").From("terms").Where(sq.Eq{"uri": uri})
	sqlStr, args, _ := q.ToSql()
	var id int64
	err := r.DB.QueryRowContext(ctx, sqlStr, args...).Scan(&id)
	if err == sql.ErrNoRows {
		ins := r.SQ.Insert("terms").Columns("uri", "created_at", "updated_at").Values(uri, now, now)
		sqlStr, args, _ = ins.ToSql()
		res, err := r.DB.ExecContext(ctx, sqlStr, args...)
		if err != nil {
			return 0, false, &domain.StoreError{Op: "insert term", Err: err}
		}
		id, _ = res.LastInsertId()
		return id, true, nil
	}
	if err != nil {
		return 0, false, &domain.StoreError{Op: "select term", Err: err}
	}
	upd := r.SQ.Update("terms").Set("updated_at", now).Where(sq.Eq{"id": id})
	sqlStr, args, _ = upd.ToSql()
	if _, err := r.DB.ExecContext(ctx, sqlStr, args...); err != nil {
		return 0, false, &domain.StoreError{Op: "touch term", Err: err}
	}
	return id, false, nil
}

// InsertField stores one harvested fact. A duplicate
// (term, field, value) triple is swallowed by ON CONFLICT DO NOTHING
// and reported as inserted=false, leaving any translations attached to
// the existing row untouched.
func (r *TermRepo) InsertField(ctx context.Context, f *domain.TermField) (bool, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	ins := r.SQ.Insert("term_fields").
		Columns("term_id", "field_uri", "field_term", "original_value", "created_at").
		Values(f.TermID, f.FieldURI, f.FieldTerm, f.OriginalValue, now).
		Suffix("ON CONFLICT(term_id, field_uri, original_value) DO NOTHING")
	sqlStr, args, _ := ins.ToSql()
	res, err := r.DB.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return false, &domain.StoreError{Op: "insert term field", Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, &domain.StoreError{Op: "insert term field", Err: err}
	}
	if n > 0 {
		id, _ := res.LastInsertId()
		f.ID = id
		return true, nil
	}
	return false, nil
}

// GetByURI returns the stored term or nil when absent.
func (r *TermRepo) GetByURI(ctx context.Context, uri string) (*domain.Term, error) {
	q := r.SQ.Select("id", "uri", "created_at", "updated_at").From("terms").Where(sq.Eq{"uri": uri}).Limit(1)
	sqlStr, args, _ := q.ToSql()
	row := r.DB.QueryRowContext(ctx, sqlStr, args...)
	var t domain.Term
	var created, updated string
	if err := row.Scan(&t.ID, &t.URI, &created, &updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, &domain.StoreError{Op: "select term", Err: err}
	}
	t.CreatedAt, _ = time.Parse(time.RFC3339, created)
	t.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
	return &t, nil
}

// ListFields returns every stored fact for a term, ordered by field URI
// then value.
func (r *TermRepo) ListFields(ctx context.Context, termID int64) ([]*domain.TermField, error) {
	q := r.SQ.Select("id", "term_id", "field_uri", "field_term", "original_value", "created_at").
		From("term_fields").Where(sq.Eq{"term_id": termID}).OrderBy("field_uri", "original_value")
	sqlStr, args, _ := q.ToSql()
	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, &domain.StoreError{Op: "list term fields", Err: err}
	}
	defer rows.Close()
	var out []*domain.TermField
	for rows.Next() {
		var f domain.TermField
		var created string
		if err := rows.Scan(&f.ID, &f.TermID, &f.FieldURI, &f.FieldTerm, &f.OriginalValue, &created); err != nil {
			return nil, &domain.StoreError{Op: "list term fields", Err: err}
		}
		f.CreatedAt, _ = time.Parse(time.RFC3339, created)
		out = append(out, &f)
	}
	return out, rows.Err()
}

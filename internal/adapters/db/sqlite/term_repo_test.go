package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marine-term-translations/setup-harvest-action/internal/domain"
)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *TermRepo) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return db, mock, NewTermRepo(db)
}

const conceptURI = "https://vocab.nerc.ac.uk/collection/X/current/P01"

func TestEnsureTerm_InsertsNewTerm(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT id FROM terms WHERE uri = \?`).
		WithArgs(conceptURI).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(`INSERT INTO terms \(uri,created_at,updated_at\)`).
		WithArgs(conceptURI, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(7, 1))

	id, inserted, err := repo.EnsureTerm(context.Background(), conceptURI)
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.True(t, inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureTerm_TouchesExistingTerm(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT id FROM terms WHERE uri = \?`).
		WithArgs(conceptURI).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	// Only updated_at moves; the URI is never part of the SET clause.
	mock.ExpectExec(`UPDATE terms SET updated_at = \? WHERE id = \?`).
		WithArgs(sqlmock.AnyArg(), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	id, inserted, err := repo.EnsureTerm(context.Background(), conceptURI)
	require.NoError(t, err)
	assert.Equal(t, int64(3), id)
	assert.False(t, inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureTerm_WrapsStoreError(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT id FROM terms`).
		WillReturnError(errors.New("disk I/O error"))

	_, _, err := repo.EnsureTerm(context.Background(), conceptURI)

	var se *domain.StoreError
	require.True(t, errors.As(err, &se))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertField_NewFact(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO term_fields .+ ON CONFLICT\(term_id, field_uri, original_value\) DO NOTHING`).
		WithArgs(int64(3), "http://www.w3.org/2004/02/skos/core#prefLabel", "preferred label", "Foo", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(11, 1))

	f := &domain.TermField{TermID: 3, FieldURI: "http://www.w3.org/2004/02/skos/core#prefLabel", FieldTerm: "preferred label", OriginalValue: "Foo"}
	inserted, err := repo.InsertField(context.Background(), f)
	require.NoError(t, err)
	assert.True(t, inserted)
	assert.Equal(t, int64(11), f.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertField_DuplicateFactIsNoop(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	// The conflict clause swallows the duplicate: zero rows affected,
	// no error, and no DELETE or UPDATE ever touches the existing row.
	mock.ExpectExec(`INSERT INTO term_fields`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	inserted, err := repo.InsertField(context.Background(), &domain.TermField{
		TermID: 3, FieldURI: "u", FieldTerm: "n", OriginalValue: "v",
	})
	require.NoError(t, err)
	assert.False(t, inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByURI_AbsentTermIsNil(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, uri, created_at, updated_at FROM terms`).
		WithArgs(conceptURI).
		WillReturnError(sql.ErrNoRows)

	term, err := repo.GetByURI(context.Background(), conceptURI)
	require.NoError(t, err)
	assert.Nil(t, term)
}

func TestListFields(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "term_id", "field_uri", "field_term", "original_value", "created_at"}).
		AddRow(1, 3, "http://www.w3.org/2004/02/skos/core#definition", "definition", "A thing", "2026-01-01T00:00:00Z").
		AddRow(2, 3, "http://www.w3.org/2004/02/skos/core#prefLabel", "preferred label", "Foo", "2026-01-01T00:00:00Z")
	mock.ExpectQuery(`SELECT .+ FROM term_fields WHERE term_id = \? ORDER BY field_uri, original_value`).
		WithArgs(int64(3)).
		WillReturnRows(rows)

	fields, err := repo.ListFields(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, fields, 2)
	assert.Equal(t, "A thing", fields[0].OriginalValue)
	assert.Equal(t, "Foo", fields[1].OriginalValue)
}

package sparql

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/marine-term-translations/setup-harvest-action/internal/domain"
)

func newObservedBuilder(expectedHost string) (*QueryBuilder, *observer.ObservedLogs) {
	core, logs := observer.New(zap.WarnLevel)
	b := NewQueryBuilder(expectedHost, domain.CoreFields(), zap.New(core))
	return b, logs
}

func TestValidate_RejectsNonHTTPScheme(t *testing.T) {
	b, logs := newObservedBuilder("vocab.nerc.ac.uk")

	err := b.Validate("ftp://example.org/x")
	require.Error(t, err)

	var ii *domain.InvalidInputError
	require.True(t, errors.As(err, &ii))
	assert.Equal(t, "ftp://example.org/x", ii.URI)
	assert.Equal(t, 0, logs.Len())
}

func TestValidate_RejectsMissingHost(t *testing.T) {
	b, _ := newObservedBuilder("vocab.nerc.ac.uk")

	var ii *domain.InvalidInputError
	require.True(t, errors.As(b.Validate("http://"), &ii))
	require.True(t, errors.As(b.Validate("no scheme at all"), &ii))
}

func TestValidate_ExpectedHostPassesCleanly(t *testing.T) {
	b, logs := newObservedBuilder("vocab.nerc.ac.uk")

	err := b.Validate("http://vocab.nerc.ac.uk/collection/P07/current/")
	require.NoError(t, err)
	assert.Equal(t, 0, logs.Len(), "expected host must not draw a warning")
}

func TestValidate_ForeignHostWarnsButPasses(t *testing.T) {
	b, logs := newObservedBuilder("vocab.nerc.ac.uk")

	err := b.Validate("https://example.org/foo")
	require.NoError(t, err, "a well-formed foreign host is advisory, never fatal")
	require.Equal(t, 1, logs.Len())
	assert.Contains(t, logs.All()[0].Message, "unexpected host")
}

func TestCountQuery(t *testing.T) {
	b, _ := newObservedBuilder("")

	q, err := b.CountQuery("http://vocab.nerc.ac.uk/collection/P07/current/")
	require.NoError(t, err)
	assert.Contains(t, q, "SELECT (COUNT(DISTINCT ?concept) AS ?count)")
	assert.Contains(t, q, "skos:inScheme <http://vocab.nerc.ac.uk/collection/P07/current/>")

	_, err = b.CountQuery("ftp://example.org/x")
	var ii *domain.InvalidInputError
	require.True(t, errors.As(err, &ii))
}

func TestPageQuery_WindowAndOrdering(t *testing.T) {
	b, _ := newObservedBuilder("")

	q, err := b.PageQuery("http://vocab.nerc.ac.uk/collection/P07/current/", 50, 100)
	require.NoError(t, err)
	assert.Contains(t, q, "ORDER BY ?concept")
	assert.Contains(t, q, "LIMIT 50 OFFSET 100")
	assert.Contains(t, q, "SELECT DISTINCT ?concept ?prefLabel ?altLabel ?definition")
	assert.Contains(t, q, "OPTIONAL { ?concept <http://www.w3.org/2004/02/skos/core#prefLabel> ?prefLabel }")
	assert.NotContains(t, q, "?notation", "core mode must not fetch extended attributes")
}

func TestPageQuery_ExtendedFields(t *testing.T) {
	b := NewQueryBuilder("", domain.ExtendedFields(), zap.NewNop())

	q, err := b.PageQuery("http://vocab.nerc.ac.uk/collection/P07/current/", 10, 0)
	require.NoError(t, err)
	for _, v := range []string{"?notation", "?broader", "?narrower", "?related"} {
		assert.Contains(t, q, v)
	}
}

func TestPageQuery_DeterministicAcrossCalls(t *testing.T) {
	b, _ := newObservedBuilder("")

	first, err := b.PageQuery("http://vocab.nerc.ac.uk/collection/P07/current/", 1000, 2000)
	require.NoError(t, err)
	second, err := b.PageQuery("http://vocab.nerc.ac.uk/collection/P07/current/", 1000, 2000)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPageQuery_WindowsPartitionCollection(t *testing.T) {
	b, _ := newObservedBuilder("")

	total, batch := 2500, 1000
	covered := make(map[int]bool)
	for offset := 0; offset < total; offset += batch {
		q, err := b.PageQuery("http://vocab.nerc.ac.uk/collection/P07/current/", batch, offset)
		require.NoError(t, err)
		assert.Contains(t, q, fmt.Sprintf("OFFSET %d", offset))
		for i := offset; i < offset+batch && i < total; i++ {
			require.False(t, covered[i], "window overlap at %d", i)
			covered[i] = true
		}
	}
	assert.Len(t, covered, total, "windows must cover [0, total) exactly")
}

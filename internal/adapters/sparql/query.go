package sparql

import (
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/marine-term-translations/setup-harvest-action/internal/domain"
)

const queryPrefixes = `PREFIX skos: <http://www.w3.org/2004/02/skos/core#>
PREFIX dc: <http://purl.org/dc/terms/>
PREFIX owl: <http://www.w3.org/2002/07/owl#>
`

// QueryBuilder constructs the count and page queries for one harvest
// run. The field set and the expected host are injected so tests can
// run with a reduced vocabulary and a fake endpoint.
type QueryBuilder struct {
	expectedHost string
	fields       []domain.Field
	log          *zap.Logger
}

func NewQueryBuilder(expectedHost string, fields []domain.Field, log *zap.Logger) *QueryBuilder {
	if log == nil {
		log = zap.NewNop()
	}
	return &QueryBuilder{expectedHost: expectedHost, fields: fields, log: log}
}

// Validate rejects identifiers that are not absolute http(s) URIs. A
// well-formed URI pointing at an unexpected host is allowed; it only
// draws an advisory warning, since the endpoint may legitimately serve
// mirrored collections.
func (b *QueryBuilder) Validate(collectionURI string) error {
	u, err := url.Parse(collectionURI)
	if err != nil {
		return &domain.InvalidInputError{URI: collectionURI, Reason: err.Error()}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &domain.InvalidInputError{URI: collectionURI, Reason: "must start with http:// or https://"}
	}
	if u.Host == "" {
		return &domain.InvalidInputError{URI: collectionURI, Reason: "missing host"}
	}
	if b.expectedHost != "" && !strings.Contains(u.Host, b.expectedHost) {
		b.log.Warn("collection URI points at an unexpected host",
			zap.String("uri", collectionURI),
			zap.String("expected_host", b.expectedHost))
	}
	return nil
}

// CountQuery yields a query whose single binding "count" is the number
// of distinct concepts in the collection.
func (b *QueryBuilder) CountQuery(collectionURI string) (string, error) {
	if err := b.Validate(collectionURI); err != nil {
		return "", err
	}
	return fmt.Sprintf(`%s
SELECT (COUNT(DISTINCT ?concept) AS ?count)
WHERE {
    ?concept skos:inScheme <%s> .
}`, queryPrefixes, collectionURI), nil
}

// PageQuery yields a query selecting the concepts in
// [offset, offset+limit) with one OPTIONAL clause per configured field.
// ORDER BY ?concept keeps repeated pagination a stable, non-overlapping
// partition of the collection.
func (b *QueryBuilder) PageQuery(collectionURI string, limit, offset int) (string, error) {
	if err := b.Validate(collectionURI); err != nil {
		return "", err
	}
	var vars, optionals strings.Builder
	for _, f := range b.fields {
		fmt.Fprintf(&vars, " ?%s", f.Var)
		fmt.Fprintf(&optionals, "    OPTIONAL { ?concept <%s> ?%s }\n", f.URI, f.Var)
	}
	return fmt.Sprintf(`%s
SELECT DISTINCT ?concept%s
WHERE {
    ?concept skos:inScheme <%s> .
%s}
ORDER BY ?concept
LIMIT %d OFFSET %d`, queryPrefixes, vars.String(), collectionURI, optionals.String(), limit, offset), nil
}

package domain

import "time"

// Term is one controlled-vocabulary concept harvested from the remote
// collection. The URI is the concept's identity and never changes after
// the row is created; re-harvests only touch UpdatedAt.
type Term struct {
	ID        int64     `json:"id"`
	URI       string    `json:"uri"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TermField is a single harvested fact about a Term. OriginalValue is
// immutable once written: if the remote source changes the text of a
// fact, the harvest stores a new row instead of rewriting this one,
// because translations reference TermField rows by id.
type TermField struct {
	ID            int64     `json:"id"`
	TermID        int64     `json:"term_id"`
	FieldURI      string    `json:"field_uri"`
	FieldTerm     string    `json:"field_term"`
	OriginalValue string    `json:"original_value"`
	CreatedAt     time.Time `json:"created_at"`
}

// Record is one row of a SPARQL result, mapping variable names to
// literal values. Variables whose OPTIONAL clause produced no binding
// are absent from the map.
type Record map[string]string

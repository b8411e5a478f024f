package domain

import "time"

// Target languages the translation workflow supports.
var Languages = []string{"nl", "fr", "de", "es", "it", "pt"}

// Translation workflow statuses.
const (
	StatusDraft    = "draft"
	StatusReview   = "review"
	StatusApproved = "approved"
	StatusRejected = "rejected"
	StatusMerged   = "merged"
)

// Translation is a human-authored rendering of one TermField value into
// a target language. At most one Translation exists per (TermField,
// language) pair. Translations are created and mutated only by the
// translation workflow; the harvest pipeline never writes them.
type Translation struct {
	ID          int64     `json:"id"`
	TermFieldID int64     `json:"term_field_id"`
	Language    string    `json:"language"`
	Value       string    `json:"value"`
	Status      string    `json:"status"`
	CreatedBy   string    `json:"created_by"`
	ReviewedBy  *string   `json:"reviewed_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Appeal, AppealMessage and User are downstream workflow entities. The
// harvest treats their tables as opaque: it never reads or writes them
// and must not break their referential integrity when refreshing terms.
type Appeal struct {
	ID            int64     `json:"id"`
	TranslationID int64     `json:"translation_id"`
	Status        string    `json:"status"`
	OpenedBy      string    `json:"opened_by"`
	CreatedAt     time.Time `json:"created_at"`
}

type AppealMessage struct {
	ID        int64     `json:"id"`
	AppealID  int64     `json:"appeal_id"`
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

type User struct {
	ID        int64     `json:"id"`
	Login     string    `json:"login"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

package models

import "time"

// Reference types a note may point at. The (reference_type, reference_id)
// pair identifies exactly one entity; referential existence is not checked,
// so a note may reference an entity that was since deleted.
const (
	ReferenceTypeArticle  = "article"
	ReferenceTypeTopic    = "topic"
	ReferenceTypeCategory = "category"
	ReferenceTypeEvent    = "event"
)

// Note is a user annotation attached to any other entity kind.
type Note struct {
	ID      string `json:"id"`
	Content string `json:"content" validate:"required"`

	ReferenceType string `json:"reference_type" validate:"required,oneof=article topic category event"`
	ReferenceID   string `json:"reference_id"`

	Tags     []string               `json:"tags"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`

	Priority   int  `json:"priority"`
	IsArchived bool `json:"is_archived"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidReferenceType reports whether t is one of the four reference kinds.
func ValidReferenceType(t string) bool {
	switch t {
	case ReferenceTypeArticle, ReferenceTypeTopic, ReferenceTypeCategory, ReferenceTypeEvent:
		return true
	}
	return false
}

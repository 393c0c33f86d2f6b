package models

import "encoding/json"

// BatchRequest is the POST /entities payload: per-kind ordered lists of raw
// entity payloads. Absent kinds are skipped entirely (selective processing).
type BatchRequest struct {
	Topics     []json.RawMessage `json:"topics,omitempty"`
	Categories []json.RawMessage `json:"categories,omitempty"`
	Events     []json.RawMessage `json:"events,omitempty"`
	Notes      []json.RawMessage `json:"notes,omitempty"`
}

// Items returns the raw item list for a kind and whether the kind key was
// present in the request.
func (b *BatchRequest) Items(kind EntityKind) ([]json.RawMessage, bool) {
	switch kind {
	case KindTopics:
		return b.Topics, b.Topics != nil
	case KindCategories:
		return b.Categories, b.Categories != nil
	case KindEvents:
		return b.Events, b.Events != nil
	case KindNotes:
		return b.Notes, b.Notes != nil
	}
	return nil, false
}

// ItemError records a single failed batch item. Data carries the original
// payload for create/update failures; ID is set for ID-addressed failures.
type ItemError struct {
	Data  json.RawMessage `json:"data,omitempty"`
	ID    string          `json:"id,omitempty"`
	Error string          `json:"error"`
}

// BatchResult aggregates a createOrUpdate batch. Empty per-kind arrays are
// never present; Success is true iff Errors has no keys.
type BatchResult struct {
	Success bool                         `json:"success"`
	Created map[EntityKind][]interface{} `json:"created,omitempty"`
	Updated map[EntityKind][]interface{} `json:"updated,omitempty"`
	Errors  map[EntityKind][]ItemError   `json:"errors,omitempty"`
}

// GetResult aggregates a multi-get, mirroring the BatchResult shape.
type GetResult struct {
	Success bool                         `json:"success"`
	Data    map[EntityKind][]interface{} `json:"data,omitempty"`
	Errors  map[EntityKind][]ItemError   `json:"errors,omitempty"`
}

// DeleteRequest is the DELETE /entities payload.
type DeleteRequest struct {
	TopicIDs    []string `json:"topicIds,omitempty"`
	CategoryIDs []string `json:"categoryIds,omitempty"`
	EventIDs    []string `json:"eventIds,omitempty"`
	NoteIDs     []string `json:"noteIds,omitempty"`
}

// IDs returns the ID list for a kind.
func (d *DeleteRequest) IDs(kind EntityKind) []string {
	switch kind {
	case KindTopics:
		return d.TopicIDs
	case KindCategories:
		return d.CategoryIDs
	case KindEvents:
		return d.EventIDs
	case KindNotes:
		return d.NoteIDs
	}
	return nil
}

// DeleteResult aggregates a multi-delete.
type DeleteResult struct {
	Success bool                       `json:"success"`
	Deleted map[EntityKind][]string    `json:"deleted,omitempty"`
	Errors  map[EntityKind][]ItemError `json:"errors,omitempty"`
}

// Partial reports whether any per-kind error was recorded, which maps to
// HTTP 207 at the handler layer.
func (r *BatchResult) Partial() bool  { return len(r.Errors) > 0 }
func (r *GetResult) Partial() bool    { return len(r.Errors) > 0 }
func (r *DeleteResult) Partial() bool { return len(r.Errors) > 0 }

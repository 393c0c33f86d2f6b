package models

// Topic groups articles under a named subject. Topics hold many-to-many
// relationships with articles and categories via ID arrays.
type Topic struct {
	ID          string `json:"id"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`

	Keywords []string `json:"keywords"`

	ArticlesIDs      []string `json:"articles_ids"`
	CategoriesIDs    []string `json:"categories_ids"`
	RelatedTopicsIDs []string `json:"related_topics_ids"`

	// Timeline holds event references describing how the topic evolved.
	Timeline Timeline `json:"timeline"`

	UnreadCount int `json:"unread_count"`
	Priority    int `json:"priority"`
}

// Timeline is an ordered list of dated entries referencing articles and events.
type Timeline struct {
	Entries []TimelineEntry `json:"entries"`
}

// TimelineEntry is a single dated point on a timeline.
type TimelineEntry struct {
	Date        string   `json:"date"`
	Description string   `json:"description,omitempty"`
	ArticlesIDs []string `json:"articles_ids,omitempty"`
	EventsIDs   []string `json:"events_ids,omitempty"`
}

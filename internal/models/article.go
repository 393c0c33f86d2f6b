package models

import "time"

// Article represents a stored news article. Articles are referenced by
// topics, categories, events and notes via ID arrays but never embed them.
type Article struct {
	ID            string    `json:"id"`
	Title         string    `json:"title" validate:"required"`
	Publisher     string    `json:"publisher,omitempty"`
	Author        string    `json:"author,omitempty"`
	PublishedDate time.Time `json:"published_date,omitempty"`
	URL           string    `json:"url,omitempty" validate:"omitempty,url"`
	Summary       string    `json:"summary,omitempty"`

	ImageURLs []string `json:"image_urls"`
	Keywords  []string `json:"keywords"`

	// Cross-references. Existence of the referenced IDs is not enforced;
	// dangling IDs are tolerated.
	TopicsIDs        []string `json:"topics_ids"`
	CategoriesIDs    []string `json:"categories_ids"`
	RelatedTopicsIDs []string `json:"related_topics_ids"`
	EventsIDs        []string `json:"events_ids"`

	UnreadCount int `json:"unread_count"`
	Priority    int `json:"priority"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

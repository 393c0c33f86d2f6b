package models

// Event represents a dated occurrence articles can be attached to.
type Event struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Description string `json:"description" validate:"required"`

	ImageURLs []string `json:"image_urls"`

	RelatedEventsIDs []string `json:"related_events_ids"`
	ArticlesIDs      []string `json:"articles_ids"`

	// Timeline is an embedded ordered list of sub-events.
	Timeline Timeline `json:"timeline"`

	UnreadCount int `json:"unread_count"`
	Priority    int `json:"priority"`
}

package common

import (
	"github.com/google/uuid"
)

// NewArticleID generates a unique article ID
// Format: article_<uuid>
func NewArticleID() string {
	return "article_" + uuid.New().String()
}

// NewTopicID generates a unique topic ID
func NewTopicID() string {
	return "topic_" + uuid.New().String()
}

// NewCategoryID generates a unique category ID
func NewCategoryID() string {
	return "category_" + uuid.New().String()
}

// NewSubcategoryID generates an ID for a subcategory embedded in a category
func NewSubcategoryID() string {
	return "sub_" + uuid.New().String()
}

// NewEventID generates a unique event ID
func NewEventID() string {
	return "event_" + uuid.New().String()
}

// NewNoteID generates a unique note ID
func NewNoteID() string {
	return "note_" + uuid.New().String()
}

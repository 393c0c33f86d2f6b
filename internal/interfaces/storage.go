package interfaces

import (
	"github.com/ternarybob/colligo/internal/models"
)

// EntityStore is the canonical persistence contract shared by every entity
// kind. There is exactly one method per operation; callers never probe for
// alternate method names.
type EntityStore[T any] interface {
	// Create assigns an ID when absent, initializes nested structures and
	// inserts the document, returning the stored value.
	Create(entity *T) (*T, error)

	// GetByID returns the document, or (nil, nil) when no document exists.
	// Not-found is a sentinel, not an error.
	GetByID(id string) (*T, error)

	// Update persists the merged document under id. The boolean reports
	// whether a document was modified.
	Update(id string, entity *T) (bool, error)

	// Delete removes the document. The boolean reports whether a document
	// was removed.
	Delete(id string) (bool, error)

	// Search performs a case-insensitive substring match over the kind's
	// text fields, paginated.
	Search(query string, limit, skip int) ([]*T, error)

	// List returns the paginated full listing in the kind's default order.
	List(limit, skip int) ([]*T, error)

	// Count returns the number of documents in the collection.
	Count() (int, error)
}

// Per-kind aliases keep call sites explicit about which collection they touch.
type (
	ArticleStorage  = EntityStore[models.Article]
	TopicStorage    = EntityStore[models.Topic]
	CategoryStorage = EntityStore[models.Category]
	EventStorage    = EntityStore[models.Event]
	NoteStorage     = EntityStore[models.Note]
)

// StorageManager owns the shared store handle, initialized once per process
// and reused across all requests.
type StorageManager interface {
	Articles() ArticleStorage
	Topics() TopicStorage
	Categories() CategoryStorage
	Events() EventStorage
	Notes() NoteStorage
	Close() error
}

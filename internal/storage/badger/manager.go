package badger

import (
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/colligo/internal/common"
	"github.com/ternarybob/colligo/internal/interfaces"
	"github.com/timshannon/badgerhold/v4"
)

// Manager implements the StorageManager interface for Badger
type Manager struct {
	db       *BadgerDB
	article  interfaces.ArticleStorage
	topic    interfaces.TopicStorage
	category interfaces.CategoryStorage
	event    interfaces.EventStorage
	note     interfaces.NoteStorage
	logger   arbor.ILogger
}

// NewManager creates a new Badger storage manager
func NewManager(logger arbor.ILogger, config *common.BadgerConfig) (*Manager, error) {
	db, err := NewBadgerDB(logger, config)
	if err != nil {
		return nil, err
	}

	manager := &Manager{
		db:       db,
		article:  NewArticleStorage(db, logger),
		topic:    NewTopicStorage(db, logger),
		category: NewCategoryStorage(db, logger),
		event:    NewEventStorage(db, logger),
		note:     NewNoteStorage(db, logger),
		logger:   logger,
	}

	logger.Info().Msg("Badger storage manager initialized")

	return manager, nil
}

// Articles returns the Article storage interface
func (m *Manager) Articles() interfaces.ArticleStorage {
	return m.article
}

// Topics returns the Topic storage interface
func (m *Manager) Topics() interfaces.TopicStorage {
	return m.topic
}

// Categories returns the Category storage interface
func (m *Manager) Categories() interfaces.CategoryStorage {
	return m.category
}

// Events returns the Event storage interface
func (m *Manager) Events() interfaces.EventStorage {
	return m.event
}

// Notes returns the Note storage interface
func (m *Manager) Notes() interfaces.NoteStorage {
	return m.note
}

// Store returns the underlying badgerhold store, used by maintenance tasks.
func (m *Manager) Store() *badgerhold.Store {
	if m.db != nil {
		return m.db.Store()
	}
	return nil
}

// Close closes the database connection
func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

package badger

import (
	"fmt"
	"sort"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/colligo/internal/common"
	"github.com/ternarybob/colligo/internal/interfaces"
	"github.com/ternarybob/colligo/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// TopicStorage implements the TopicStorage interface for Badger
type TopicStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewTopicStorage creates a new TopicStorage instance
func NewTopicStorage(db *BadgerDB, logger arbor.ILogger) interfaces.TopicStorage {
	return &TopicStorage{
		db:     db,
		logger: logger,
	}
}

func (s *TopicStorage) Create(topic *models.Topic) (*models.Topic, error) {
	if topic.ID == "" {
		topic.ID = common.NewTopicID()
	}
	initTopic(topic)

	if err := s.db.Store().Insert(topic.ID, topic); err != nil {
		return nil, fmt.Errorf("failed to create topic: %w", err)
	}
	return topic, nil
}

func (s *TopicStorage) GetByID(id string) (*models.Topic, error) {
	var topic models.Topic
	if err := s.db.Store().Get(id, &topic); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get topic: %w", err)
	}
	return &topic, nil
}

func (s *TopicStorage) Update(id string, topic *models.Topic) (bool, error) {
	topic.ID = id
	if err := s.db.Store().Update(id, topic); err != nil {
		if err == badgerhold.ErrNotFound {
			return false, nil
		}
		return false, fmt.Errorf("failed to update topic: %w", err)
	}
	return true, nil
}

func (s *TopicStorage) Delete(id string) (bool, error) {
	if err := s.db.Store().Delete(id, &models.Topic{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return false, nil
		}
		return false, fmt.Errorf("failed to delete topic: %w", err)
	}
	return true, nil
}

// Search performs a case-insensitive substring match over name, description
// and keywords.
func (s *TopicStorage) Search(query string, limit, skip int) ([]*models.Topic, error) {
	re, err := searchPattern(query)
	if err != nil {
		return nil, err
	}

	q := badgerhold.Where("ID").MatchFunc(func(ra *badgerhold.RecordAccess) (bool, error) {
		topic, ok := ra.Record().(*models.Topic)
		if !ok {
			return false, nil
		}
		return re.MatchString(topic.Name) || re.MatchString(topic.Description) || matchAny(re, topic.Keywords), nil
	}).Skip(skip).Limit(limit)

	var topics []models.Topic
	if err := s.db.Store().Find(&topics, q); err != nil {
		return nil, fmt.Errorf("topic search failed: %w", err)
	}
	return toPtrs(topics), nil
}

// List returns topics ordered by priority (descending) then name (ascending).
// Mixed sort directions are not expressible in a badgerhold query, so the
// ordering is applied in memory before pagination.
func (s *TopicStorage) List(limit, skip int) ([]*models.Topic, error) {
	var topics []models.Topic
	if err := s.db.Store().Find(&topics, badgerhold.Where("ID").Ne("")); err != nil {
		return nil, fmt.Errorf("failed to list topics: %w", err)
	}

	sort.SliceStable(topics, func(i, j int) bool {
		if topics[i].Priority != topics[j].Priority {
			return topics[i].Priority > topics[j].Priority
		}
		return topics[i].Name < topics[j].Name
	})

	return pageSlice(topics, limit, skip), nil
}

func (s *TopicStorage) Count() (int, error) {
	count, err := s.db.Store().Count(&models.Topic{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count topics: %w", err)
	}
	return int(count), nil
}

// initTopic ensures nested structures are present so stored documents
// serialize with empty arrays instead of nulls.
func initTopic(topic *models.Topic) {
	if topic.Keywords == nil {
		topic.Keywords = []string{}
	}
	if topic.ArticlesIDs == nil {
		topic.ArticlesIDs = []string{}
	}
	if topic.CategoriesIDs == nil {
		topic.CategoriesIDs = []string{}
	}
	if topic.RelatedTopicsIDs == nil {
		topic.RelatedTopicsIDs = []string{}
	}
	if topic.Timeline.Entries == nil {
		topic.Timeline.Entries = []models.TimelineEntry{}
	}
}

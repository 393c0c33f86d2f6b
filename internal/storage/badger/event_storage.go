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

// EventStorage implements the EventStorage interface for Badger
type EventStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewEventStorage creates a new EventStorage instance
func NewEventStorage(db *BadgerDB, logger arbor.ILogger) interfaces.EventStorage {
	return &EventStorage{
		db:     db,
		logger: logger,
	}
}

func (s *EventStorage) Create(event *models.Event) (*models.Event, error) {
	if event.ID == "" {
		event.ID = common.NewEventID()
	}
	initEvent(event)

	if err := s.db.Store().Insert(event.ID, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return event, nil
}

func (s *EventStorage) GetByID(id string) (*models.Event, error) {
	var event models.Event
	if err := s.db.Store().Get(id, &event); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return &event, nil
}

func (s *EventStorage) Update(id string, event *models.Event) (bool, error) {
	event.ID = id
	if err := s.db.Store().Update(id, event); err != nil {
		if err == badgerhold.ErrNotFound {
			return false, nil
		}
		return false, fmt.Errorf("failed to update event: %w", err)
	}
	return true, nil
}

func (s *EventStorage) Delete(id string) (bool, error) {
	if err := s.db.Store().Delete(id, &models.Event{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return false, nil
		}
		return false, fmt.Errorf("failed to delete event: %w", err)
	}
	return true, nil
}

// Search performs a case-insensitive substring match over description and date.
func (s *EventStorage) Search(query string, limit, skip int) ([]*models.Event, error) {
	re, err := searchPattern(query)
	if err != nil {
		return nil, err
	}

	q := badgerhold.Where("ID").MatchFunc(func(ra *badgerhold.RecordAccess) (bool, error) {
		event, ok := ra.Record().(*models.Event)
		if !ok {
			return false, nil
		}
		return re.MatchString(event.Description) || re.MatchString(event.Date), nil
	}).Skip(skip).Limit(limit)

	var events []models.Event
	if err := s.db.Store().Find(&events, q); err != nil {
		return nil, fmt.Errorf("event search failed: %w", err)
	}
	return toPtrs(events), nil
}

// List returns events ordered by date (most recent first).
func (s *EventStorage) List(limit, skip int) ([]*models.Event, error) {
	var events []models.Event
	if err := s.db.Store().Find(&events, badgerhold.Where("ID").Ne("")); err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date > events[j].Date
	})

	return pageSlice(events, limit, skip), nil
}

func (s *EventStorage) Count() (int, error) {
	count, err := s.db.Store().Count(&models.Event{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return int(count), nil
}

func initEvent(event *models.Event) {
	if event.ImageURLs == nil {
		event.ImageURLs = []string{}
	}
	if event.RelatedEventsIDs == nil {
		event.RelatedEventsIDs = []string{}
	}
	if event.ArticlesIDs == nil {
		event.ArticlesIDs = []string{}
	}
	if event.Timeline.Entries == nil {
		event.Timeline.Entries = []models.TimelineEntry{}
	}
}

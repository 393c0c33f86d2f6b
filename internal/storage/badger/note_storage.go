package badger

import (
	"fmt"
	"sort"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/colligo/internal/common"
	"github.com/ternarybob/colligo/internal/interfaces"
	"github.com/ternarybob/colligo/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// NoteStorage implements the NoteStorage interface for Badger
type NoteStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewNoteStorage creates a new NoteStorage instance
func NewNoteStorage(db *BadgerDB, logger arbor.ILogger) interfaces.NoteStorage {
	return &NoteStorage{
		db:     db,
		logger: logger,
	}
}

func (s *NoteStorage) Create(note *models.Note) (*models.Note, error) {
	if note.ID == "" {
		note.ID = common.NewNoteID()
	}
	initNote(note)

	if err := s.db.Store().Insert(note.ID, note); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	return note, nil
}

func (s *NoteStorage) GetByID(id string) (*models.Note, error) {
	var note models.Note
	if err := s.db.Store().Get(id, &note); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	return &note, nil
}

func (s *NoteStorage) Update(id string, note *models.Note) (bool, error) {
	note.ID = id
	note.UpdatedAt = time.Now()
	if err := s.db.Store().Update(id, note); err != nil {
		if err == badgerhold.ErrNotFound {
			return false, nil
		}
		return false, fmt.Errorf("failed to update note: %w", err)
	}
	return true, nil
}

func (s *NoteStorage) Delete(id string) (bool, error) {
	if err := s.db.Store().Delete(id, &models.Note{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return false, nil
		}
		return false, fmt.Errorf("failed to delete note: %w", err)
	}
	return true, nil
}

// Search performs a case-insensitive substring match over content and tags.
func (s *NoteStorage) Search(query string, limit, skip int) ([]*models.Note, error) {
	re, err := searchPattern(query)
	if err != nil {
		return nil, err
	}

	q := badgerhold.Where("ID").MatchFunc(func(ra *badgerhold.RecordAccess) (bool, error) {
		note, ok := ra.Record().(*models.Note)
		if !ok {
			return false, nil
		}
		return re.MatchString(note.Content) || matchAny(re, note.Tags), nil
	}).Skip(skip).Limit(limit)

	var notes []models.Note
	if err := s.db.Store().Find(&notes, q); err != nil {
		return nil, fmt.Errorf("note search failed: %w", err)
	}
	return toPtrs(notes), nil
}

// List returns notes ordered by creation time (most recent first).
func (s *NoteStorage) List(limit, skip int) ([]*models.Note, error) {
	var notes []models.Note
	if err := s.db.Store().Find(&notes, badgerhold.Where("ID").Ne("")); err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].CreatedAt.After(notes[j].CreatedAt)
	})

	return pageSlice(notes, limit, skip), nil
}

func (s *NoteStorage) Count() (int, error) {
	count, err := s.db.Store().Count(&models.Note{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count notes: %w", err)
	}
	return int(count), nil
}

func initNote(note *models.Note) {
	if note.Tags == nil {
		note.Tags = []string{}
	}
}

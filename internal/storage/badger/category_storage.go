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

// CategoryStorage implements the CategoryStorage interface for Badger.
// Subcategories are embedded in the parent document; every mutation goes
// through a whole-document write of the parent.
type CategoryStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewCategoryStorage creates a new CategoryStorage instance
func NewCategoryStorage(db *BadgerDB, logger arbor.ILogger) interfaces.CategoryStorage {
	return &CategoryStorage{
		db:     db,
		logger: logger,
	}
}

func (s *CategoryStorage) Create(category *models.Category) (*models.Category, error) {
	if category.ID == "" {
		category.ID = common.NewCategoryID()
	}
	initCategory(category)

	if err := s.db.Store().Insert(category.ID, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

func (s *CategoryStorage) GetByID(id string) (*models.Category, error) {
	var category models.Category
	if err := s.db.Store().Get(id, &category); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &category, nil
}

func (s *CategoryStorage) Update(id string, category *models.Category) (bool, error) {
	category.ID = id
	if err := s.db.Store().Update(id, category); err != nil {
		if err == badgerhold.ErrNotFound {
			return false, nil
		}
		return false, fmt.Errorf("failed to update category: %w", err)
	}
	return true, nil
}

func (s *CategoryStorage) Delete(id string) (bool, error) {
	if err := s.db.Store().Delete(id, &models.Category{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return false, nil
		}
		return false, fmt.Errorf("failed to delete category: %w", err)
	}
	return true, nil
}

// Search performs a case-insensitive substring match over name, description,
// keywords and embedded subcategory names.
func (s *CategoryStorage) Search(query string, limit, skip int) ([]*models.Category, error) {
	re, err := searchPattern(query)
	if err != nil {
		return nil, err
	}

	q := badgerhold.Where("ID").MatchFunc(func(ra *badgerhold.RecordAccess) (bool, error) {
		category, ok := ra.Record().(*models.Category)
		if !ok {
			return false, nil
		}
		if re.MatchString(category.Name) || re.MatchString(category.Description) || matchAny(re, category.Keywords) {
			return true, nil
		}
		for i := range category.Subcategories {
			if re.MatchString(category.Subcategories[i].Name) {
				return true, nil
			}
		}
		return false, nil
	}).Skip(skip).Limit(limit)

	var categories []models.Category
	if err := s.db.Store().Find(&categories, q); err != nil {
		return nil, fmt.Errorf("category search failed: %w", err)
	}
	return toPtrs(categories), nil
}

// List returns categories ordered by priority (descending) then name (ascending).
func (s *CategoryStorage) List(limit, skip int) ([]*models.Category, error) {
	var categories []models.Category
	if err := s.db.Store().Find(&categories, badgerhold.Where("ID").Ne("")); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	sort.SliceStable(categories, func(i, j int) bool {
		if categories[i].Priority != categories[j].Priority {
			return categories[i].Priority > categories[j].Priority
		}
		return categories[i].Name < categories[j].Name
	})

	return pageSlice(categories, limit, skip), nil
}

func (s *CategoryStorage) Count() (int, error) {
	count, err := s.db.Store().Count(&models.Category{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count categories: %w", err)
	}
	return int(count), nil
}

func initCategory(category *models.Category) {
	if category.Keywords == nil {
		category.Keywords = []string{}
	}
	if category.TopicsIDs == nil {
		category.TopicsIDs = []string{}
	}
	if category.Subcategories == nil {
		category.Subcategories = []models.Subcategory{}
	}
}

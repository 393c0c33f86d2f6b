// Package articles implements the dedicated article subsystem. Articles are
// structurally simpler than the consolidated kinds: single-entity CRUD with
// fail-fast semantics and no batch envelope.
package articles

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/colligo/internal/interfaces"
	"github.com/ternarybob/colligo/internal/models"
	"github.com/ternarybob/colligo/internal/services/validation"
)

// ErrNotFound is returned when the requested article does not exist.
var ErrNotFound = errors.New("article not found")

// Service provides article CRUD operations
type Service struct {
	storage   interfaces.ArticleStorage
	validator *validation.Service
	logger    arbor.ILogger
}

// NewService creates a new article service
func NewService(storage interfaces.ArticleStorage, validator *validation.Service, logger arbor.ILogger) *Service {
	return &Service{
		storage:   storage,
		validator: validator,
		logger:    logger,
	}
}

// Create validates and persists a new article, assigning an ID when absent.
func (s *Service) Create(article *models.Article) (*models.Article, error) {
	if err := s.validator.ValidateArticle(article, false); err != nil {
		return nil, err
	}

	created, err := s.storage.Create(article)
	if err != nil {
		return nil, fmt.Errorf("failed to create article: %w", err)
	}

	s.logger.Debug().Str("id", created.ID).Str("title", created.Title).Msg("Article created")
	return created, nil
}

// Get returns the article or ErrNotFound.
func (s *Service) Get(id string) (*models.Article, error) {
	article, err := s.storage.GetByID(id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrNotFound
	}
	return article, nil
}

// Update merges the raw partial payload onto the stored article. Unspecified
// fields are retained.
func (s *Service) Update(id string, raw json.RawMessage) (*models.Article, error) {
	existing, err := s.storage.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	if err := json.Unmarshal(raw, existing); err != nil {
		return nil, fmt.Errorf("invalid article payload: %w", err)
	}
	if err := s.validator.ValidateArticle(existing, true); err != nil {
		return nil, err
	}

	modified, err := s.storage.Update(id, existing)
	if err != nil {
		return nil, err
	}
	if !modified {
		return nil, ErrNotFound
	}

	return s.storage.GetByID(id)
}

// Delete removes the article or returns ErrNotFound.
func (s *Service) Delete(id string) error {
	removed, err := s.storage.Delete(id)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotFound
	}
	s.logger.Debug().Str("id", id).Msg("Article deleted")
	return nil
}

// List returns the paginated article listing, most recently published first.
func (s *Service) List(limit, skip int) ([]*models.Article, error) {
	return s.storage.List(limit, skip)
}

// Search performs a substring search over article titles, summaries and keywords.
func (s *Service) Search(query string, limit, skip int) ([]*models.Article, error) {
	return s.storage.Search(query, limit, skip)
}

// Count returns the total number of stored articles.
func (s *Service) Count() (int, error) {
	return s.storage.Count()
}

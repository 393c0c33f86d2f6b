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

// ArticleStorage implements the ArticleStorage interface for Badger
type ArticleStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewArticleStorage creates a new ArticleStorage instance
func NewArticleStorage(db *BadgerDB, logger arbor.ILogger) interfaces.ArticleStorage {
	return &ArticleStorage{
		db:     db,
		logger: logger,
	}
}

func (s *ArticleStorage) Create(article *models.Article) (*models.Article, error) {
	if article.ID == "" {
		article.ID = common.NewArticleID()
	}
	initArticle(article)

	now := time.Now()
	if article.CreatedAt.IsZero() {
		article.CreatedAt = now
	}
	article.UpdatedAt = now

	if err := s.db.Store().Insert(article.ID, article); err != nil {
		return nil, fmt.Errorf("failed to create article: %w", err)
	}
	return article, nil
}

func (s *ArticleStorage) GetByID(id string) (*models.Article, error) {
	var article models.Article
	if err := s.db.Store().Get(id, &article); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get article: %w", err)
	}
	return &article, nil
}

func (s *ArticleStorage) Update(id string, article *models.Article) (bool, error) {
	article.ID = id
	article.UpdatedAt = time.Now()
	if err := s.db.Store().Update(id, article); err != nil {
		if err == badgerhold.ErrNotFound {
			return false, nil
		}
		return false, fmt.Errorf("failed to update article: %w", err)
	}
	return true, nil
}

func (s *ArticleStorage) Delete(id string) (bool, error) {
	if err := s.db.Store().Delete(id, &models.Article{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return false, nil
		}
		return false, fmt.Errorf("failed to delete article: %w", err)
	}
	return true, nil
}

// Search performs a case-insensitive substring match over title, summary
// and keywords.
func (s *ArticleStorage) Search(query string, limit, skip int) ([]*models.Article, error) {
	re, err := searchPattern(query)
	if err != nil {
		return nil, err
	}

	q := badgerhold.Where("ID").MatchFunc(func(ra *badgerhold.RecordAccess) (bool, error) {
		article, ok := ra.Record().(*models.Article)
		if !ok {
			return false, nil
		}
		return re.MatchString(article.Title) || re.MatchString(article.Summary) || matchAny(re, article.Keywords), nil
	}).Skip(skip).Limit(limit)

	var articles []models.Article
	if err := s.db.Store().Find(&articles, q); err != nil {
		return nil, fmt.Errorf("article search failed: %w", err)
	}
	return toPtrs(articles), nil
}

// List returns articles ordered by published date (most recent first).
func (s *ArticleStorage) List(limit, skip int) ([]*models.Article, error) {
	var articles []models.Article
	if err := s.db.Store().Find(&articles, badgerhold.Where("ID").Ne("")); err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}

	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].PublishedDate.After(articles[j].PublishedDate)
	})

	return pageSlice(articles, limit, skip), nil
}

func (s *ArticleStorage) Count() (int, error) {
	count, err := s.db.Store().Count(&models.Article{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count articles: %w", err)
	}
	return int(count), nil
}

func initArticle(article *models.Article) {
	if article.ImageURLs == nil {
		article.ImageURLs = []string{}
	}
	if article.Keywords == nil {
		article.Keywords = []string{}
	}
	if article.TopicsIDs == nil {
		article.TopicsIDs = []string{}
	}
	if article.CategoriesIDs == nil {
		article.CategoriesIDs = []string{}
	}
	if article.RelatedTopicsIDs == nil {
		article.RelatedTopicsIDs = []string{}
	}
	if article.EventsIDs == nil {
		article.EventsIDs = []string{}
	}
}

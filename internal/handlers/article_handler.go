package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/colligo/internal/common"
	"github.com/ternarybob/colligo/internal/models"
	"github.com/ternarybob/colligo/internal/services/articles"
	"github.com/ternarybob/colligo/internal/services/validation"
)

// ArticleHandler exposes article CRUD endpoints
type ArticleHandler struct {
	service *articles.Service
	config  *common.Config
	logger  arbor.ILogger
}

// NewArticleHandler creates a new article handler with dependencies
func NewArticleHandler(service *articles.Service, config *common.Config, logger arbor.ILogger) *ArticleHandler {
	return &ArticleHandler{
		service: service,
		config:  config,
		logger:  logger,
	}
}

// CollectionHandler dispatches /articles by method: POST creates, GET lists.
func (h *ArticleHandler) CollectionHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.create(w, r)
	case http.MethodGet:
		h.list(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// SearchHandler handles GET /articles/search?q=&limit=&skip=
func (h *ArticleHandler) SearchHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		WriteError(w, http.StatusBadRequest, "Query parameter 'q' is required")
		return
	}

	limit := QueryInt(r, "limit", h.config.Entities.SearchLimit)
	if limit <= 0 {
		limit = h.config.Entities.SearchLimit
	}
	if limit > h.config.Entities.MaxSearchLimit {
		limit = h.config.Entities.MaxSearchLimit
	}
	skip := QueryInt(r, "skip", 0)

	results, err := h.service.Search(query, limit, skip)
	if err != nil {
		h.logger.Error().Err(err).Str("query", query).Msg("Article search failed")
		WriteError(w, http.StatusInternalServerError, "Failed to search articles")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"query":    query,
		"articles": results,
		"count":    len(results),
	})
}

// ItemHandler dispatches /articles/{id} by method: GET, PUT, DELETE.
func (h *ArticleHandler) ItemHandler(w http.ResponseWriter, r *http.Request) {
	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/articles/"), "/")
	if id == "" || strings.Contains(id, "/") {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.get(w, id)
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *ArticleHandler) create(w http.ResponseWriter, r *http.Request) {
	var article models.Article
	if err := json.NewDecoder(r.Body).Decode(&article); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.service.Create(&article)
	if err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			WriteError(w, http.StatusBadRequest, verr.Error())
			return
		}
		h.logger.Error().Err(err).Msg("Failed to create article")
		WriteError(w, http.StatusInternalServerError, "Failed to create article")
		return
	}

	WriteJSON(w, http.StatusCreated, created)
}

func (h *ArticleHandler) list(w http.ResponseWriter, r *http.Request) {
	limit := QueryInt(r, "limit", h.config.Entities.ListLimit)
	if limit <= 0 {
		limit = h.config.Entities.ListLimit
	}
	skip := QueryInt(r, "skip", 0)
	if skip < 0 {
		skip = 0
	}

	items, err := h.service.List(limit, skip)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list articles")
		WriteError(w, http.StatusInternalServerError, "Failed to list articles")
		return
	}

	total, err := h.service.Count()
	if err != nil {
		total = len(items)
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"articles": items,
		"count":    len(items),
		"total":    total,
		"limit":    limit,
		"skip":     skip,
	})
}

func (h *ArticleHandler) get(w http.ResponseWriter, id string) {
	article, err := h.service.Get(id)
	if err != nil {
		if errors.Is(err, articles.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "Article not found: "+id)
			return
		}
		h.logger.Error().Err(err).Str("id", id).Msg("Failed to get article")
		WriteError(w, http.StatusInternalServerError, "Failed to get article")
		return
	}
	WriteJSON(w, http.StatusOK, article)
}

func (h *ArticleHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	raw, err := io.ReadAll(r.Body)
	if err != nil || len(raw) == 0 {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.Update(id, raw)
	if err != nil {
		if errors.Is(err, articles.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "Article not found: "+id)
			return
		}
		var verr *validation.Error
		if errors.As(err, &verr) {
			WriteError(w, http.StatusBadRequest, verr.Error())
			return
		}
		h.logger.Error().Err(err).Str("id", id).Msg("Failed to update article")
		WriteError(w, http.StatusInternalServerError, "Failed to update article")
		return
	}

	WriteJSON(w, http.StatusOK, updated)
}

func (h *ArticleHandler) delete(w http.ResponseWriter, id string) {
	if err := h.service.Delete(id); err != nil {
		if errors.Is(err, articles.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "Article not found: "+id)
			return
		}
		h.logger.Error().Err(err).Str("id", id).Msg("Failed to delete article")
		WriteError(w, http.StatusInternalServerError, "Failed to delete article")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{"deleted": id})
}

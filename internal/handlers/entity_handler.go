package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/colligo/internal/common"
	"github.com/ternarybob/colligo/internal/models"
	"github.com/ternarybob/colligo/internal/services/entities"
)

// kindQueryParams maps the multi-get query parameter names to entity kinds.
var kindQueryParams = map[string]models.EntityKind{
	"topicIds":    models.KindTopics,
	"categoryIds": models.KindCategories,
	"eventIds":    models.KindEvents,
	"noteIds":     models.KindNotes,
}

// EntityHandler exposes the consolidated entity endpoints
type EntityHandler struct {
	coordinator *entities.Coordinator
	config      *common.Config
	logger      arbor.ILogger
}

// NewEntityHandler creates a new entity handler with dependencies
func NewEntityHandler(coordinator *entities.Coordinator, config *common.Config, logger arbor.ILogger) *EntityHandler {
	return &EntityHandler{
		coordinator: coordinator,
		config:      config,
		logger:      logger,
	}
}

// BatchHandler handles POST /entities: heterogeneous create-or-update
// batches. Any partial failure yields 207 with per-item detail in the body.
func (h *EntityHandler) BatchHandler(w http.ResponseWriter, r *http.Request) {
	var batch models.BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
		h.logger.Debug().Err(err).Msg("Failed to decode batch request")
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result := h.coordinator.CreateOrUpdate(&batch)
	WriteJSON(w, batchStatus(result.Partial()), result)
}

// GetByIDsHandler handles GET /entities?topicIds=&categoryIds=&eventIds=&noteIds=
func (h *EntityHandler) GetByIDsHandler(w http.ResponseWriter, r *http.Request) {
	ids := map[models.EntityKind][]string{}
	for param, kind := range kindQueryParams {
		if list := ParseIDList(r.URL.Query().Get(param)); len(list) > 0 {
			ids[kind] = list
		}
	}

	result := h.coordinator.GetByIDs(ids)
	WriteJSON(w, batchStatus(result.Partial()), result)
}

// DeleteHandler handles DELETE /entities with a body of per-kind ID arrays.
func (h *EntityHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	var req models.DeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug().Err(err).Msg("Failed to decode delete request")
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result := h.coordinator.DeleteByIDs(&req)
	WriteJSON(w, batchStatus(result.Partial()), result)
}

// SearchHandler handles GET /entities/search?q=&types=&limit=. The query is
// required: without it the request fails with 400 before any collection is
// touched. The response is a direct read-only fan-out, not the batch envelope.
func (h *EntityHandler) SearchHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		WriteError(w, http.StatusBadRequest, "Query parameter 'q' is required")
		return
	}

	kinds, ok := parseKinds(r.URL.Query().Get("types"))
	if !ok {
		WriteError(w, http.StatusBadRequest, "Unknown entity type in 'types'")
		return
	}

	limit := QueryInt(r, "limit", h.config.Entities.SearchLimit)
	if limit <= 0 {
		limit = h.config.Entities.SearchLimit
	}
	if limit > h.config.Entities.MaxSearchLimit {
		limit = h.config.Entities.MaxSearchLimit
	}

	results, err := h.coordinator.Search(query, kinds, limit)
	if err != nil {
		h.logger.Error().Err(err).Str("query", query).Msg("Cross-kind search failed")
		WriteError(w, http.StatusInternalServerError, "Failed to execute search")
		return
	}

	response := map[string]interface{}{"query": query}
	for kind, items := range results {
		response[string(kind)] = items
	}
	WriteJSON(w, http.StatusOK, response)
}

// KindRoutesHandler dispatches /entities/{kind} and /entities/{kind}/{id}.
func (h *EntityHandler) KindRoutesHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/entities/"), "/")
	parts := strings.Split(rest, "/")

	kind, ok := models.ParseKind(parts[0])
	if !ok {
		WriteError(w, http.StatusNotFound, "Unknown entity kind: "+parts[0])
		return
	}

	switch len(parts) {
	case 1:
		h.listKind(w, r, kind)
	case 2:
		h.getOne(w, kind, parts[1])
	default:
		WriteError(w, http.StatusNotFound, "Not found")
	}
}

// listKind handles GET /entities/{kind}?limit=&skip=. Store unavailability
// degrades to the fallback dataset; the status stays 200.
func (h *EntityHandler) listKind(w http.ResponseWriter, r *http.Request, kind models.EntityKind) {
	limit := QueryInt(r, "limit", h.config.Entities.ListLimit)
	if limit <= 0 {
		limit = h.config.Entities.ListLimit
	}
	skip := QueryInt(r, "skip", 0)
	if skip < 0 {
		skip = 0
	}

	items, fallback := h.coordinator.List(kind, limit, skip)

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		string(kind): items,
		"count":      len(items),
		"limit":      limit,
		"skip":       skip,
		"fallback":   fallback,
	})
}

// getOne handles GET /entities/{kind}/{id}.
func (h *EntityHandler) getOne(w http.ResponseWriter, kind models.EntityKind, id string) {
	entity, err := h.coordinator.GetOne(kind, id)
	if err != nil {
		h.logger.Error().Err(err).Str("kind", string(kind)).Str("id", id).Msg("Failed to get entity")
		if h.config.Environment == "development" {
			WriteErrorDetails(w, http.StatusInternalServerError, "Failed to get entity", err.Error())
		} else {
			WriteError(w, http.StatusInternalServerError, "Failed to get entity")
		}
		return
	}
	if entity == nil {
		WriteError(w, http.StatusNotFound, "Entity not found: "+id)
		return
	}
	WriteJSON(w, http.StatusOK, entity)
}

// parseKinds parses the comma-separated types filter; an empty filter selects
// all four kinds.
func parseKinds(raw string) ([]models.EntityKind, bool) {
	if raw == "" {
		return models.AllKinds, true
	}
	names := ParseIDList(raw)
	kinds := make([]models.EntityKind, 0, len(names))
	for _, name := range names {
		kind, ok := models.ParseKind(name)
		if !ok {
			return nil, false
		}
		kinds = append(kinds, kind)
	}
	return kinds, true
}

// batchStatus maps partial failure to 207 Multi-Status; the response body,
// not the status code, carries the authoritative per-item detail.
func batchStatus(partial bool) int {
	if partial {
		return http.StatusMultiStatus
	}
	return http.StatusOK
}

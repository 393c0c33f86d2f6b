// Package entities implements the batch entity coordinator: heterogeneous
// batches of topics, categories, events and notes are validated and upserted
// independently, with partial successes and failures aggregated into one
// structured response. Nothing here is transactional; a failing item never
// affects its siblings.
package entities

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/colligo/internal/interfaces"
	"github.com/ternarybob/colligo/internal/models"
	"github.com/ternarybob/colligo/internal/services/validation"
)

// singular maps a kind to the noun used in error messages.
var singular = map[models.EntityKind]string{
	models.KindTopics:     "topic",
	models.KindCategories: "category",
	models.KindEvents:     "event",
	models.KindNotes:      "note",
}

// Coordinator orchestrates batch operations across the four entity kinds.
type Coordinator struct {
	storage   interfaces.StorageManager
	validator *validation.Service
	logger    arbor.ILogger
}

// NewCoordinator creates a new batch entity coordinator
func NewCoordinator(storage interfaces.StorageManager, validator *validation.Service, logger arbor.ILogger) *Coordinator {
	return &Coordinator{
		storage:   storage,
		validator: validator,
		logger:    logger,
	}
}

// kindOps binds the typed storage and validator calls for one entity kind so
// the batch loops can be written once. There is no method-name probing: each
// kind wires exactly one implementation per operation.
type kindOps[T any] struct {
	kind     models.EntityKind
	store    interfaces.EntityStore[T]
	validate func(*T, bool) error
	getID    func(*T) string
	defaults func(*T)
}

func (c *Coordinator) topicOps() kindOps[models.Topic] {
	return kindOps[models.Topic]{
		kind:     models.KindTopics,
		store:    c.storage.Topics(),
		validate: c.validator.ValidateTopic,
		getID:    func(t *models.Topic) string { return t.ID },
		defaults: func(t *models.Topic) {},
	}
}

func (c *Coordinator) categoryOps() kindOps[models.Category] {
	return kindOps[models.Category]{
		kind:     models.KindCategories,
		store:    c.storage.Categories(),
		validate: c.validator.ValidateCategory,
		getID:    func(cat *models.Category) string { return cat.ID },
		defaults: func(cat *models.Category) {},
	}
}

func (c *Coordinator) eventOps() kindOps[models.Event] {
	return kindOps[models.Event]{
		kind:     models.KindEvents,
		store:    c.storage.Events(),
		validate: c.validator.ValidateEvent,
		getID:    func(e *models.Event) string { return e.ID },
		defaults: func(e *models.Event) {},
	}
}

func (c *Coordinator) noteOps() kindOps[models.Note] {
	return kindOps[models.Note]{
		kind:     models.KindNotes,
		store:    c.storage.Notes(),
		validate: c.validator.ValidateNote,
		getID:    func(n *models.Note) string { return n.ID },
		defaults: func(n *models.Note) {
			now := time.Now()
			n.CreatedAt = now
			n.UpdatedAt = now
			n.IsArchived = false
		},
	}
}

// CreateOrUpdate processes a heterogeneous batch. Kinds absent from the
// request are skipped entirely; within a kind every item is validated and
// persisted independently, and failures are recorded per item.
func (c *Coordinator) CreateOrUpdate(batch *models.BatchRequest) *models.BatchResult {
	result := &models.BatchResult{
		Created: map[models.EntityKind][]interface{}{},
		Updated: map[models.EntityKind][]interface{}{},
		Errors:  map[models.EntityKind][]models.ItemError{},
	}

	if items, ok := batch.Items(models.KindTopics); ok {
		upsertKind(c, c.topicOps(), items, result)
	}
	if items, ok := batch.Items(models.KindCategories); ok {
		upsertKind(c, c.categoryOps(), items, result)
	}
	if items, ok := batch.Items(models.KindEvents); ok {
		upsertKind(c, c.eventOps(), items, result)
	}
	if items, ok := batch.Items(models.KindNotes); ok {
		upsertKind(c, c.noteOps(), items, result)
	}

	pruneBatch(result)
	result.Success = len(result.Errors) == 0
	return result
}

// upsertKind runs the per-item validate -> (create|update) loop for one kind.
func upsertKind[T any](c *Coordinator, ops kindOps[T], items []json.RawMessage, result *models.BatchResult) {
	noun := singular[ops.kind]

	for _, raw := range items {
		var entity T
		if err := json.Unmarshal(raw, &entity); err != nil {
			addError(result, ops.kind, models.ItemError{Data: raw, Error: fmt.Sprintf("invalid %s payload: %v", noun, err)})
			continue
		}

		id := ops.getID(&entity)
		isUpdate := id != ""

		if err := ops.validate(&entity, isUpdate); err != nil {
			addError(result, ops.kind, models.ItemError{Data: raw, Error: err.Error()})
			continue
		}

		if isUpdate {
			updateItem(c, ops, id, raw, result)
			continue
		}

		ops.defaults(&entity)
		created, err := ops.store.Create(&entity)
		if err != nil {
			c.logger.Warn().Err(err).Str("kind", string(ops.kind)).Msg("Batch create failed")
			addError(result, ops.kind, models.ItemError{Data: raw, Error: fmt.Sprintf("failed to create %s", noun)})
			continue
		}
		result.Created[ops.kind] = append(result.Created[ops.kind], created)
	}
}

// updateItem merges a partial payload onto the stored document and persists
// the result. Unspecified fields are retained; there is no optimistic
// concurrency, so two concurrent updates to the same ID race last-write-wins.
func updateItem[T any](c *Coordinator, ops kindOps[T], id string, raw json.RawMessage, result *models.BatchResult) {
	noun := singular[ops.kind]

	existing, err := ops.store.GetByID(id)
	if err != nil {
		c.logger.Warn().Err(err).Str("id", id).Msg("Batch update lookup failed")
		addError(result, ops.kind, models.ItemError{Data: raw, ID: id, Error: fmt.Sprintf("failed to update %s", noun)})
		return
	}
	if existing == nil {
		addError(result, ops.kind, models.ItemError{Data: raw, ID: id, Error: fmt.Sprintf("%s not found: %s", noun, id)})
		return
	}

	// Unmarshalling onto the existing value overwrites only the fields
	// present in the payload.
	if err := json.Unmarshal(raw, existing); err != nil {
		addError(result, ops.kind, models.ItemError{Data: raw, ID: id, Error: fmt.Sprintf("invalid %s payload: %v", noun, err)})
		return
	}

	// Re-normalize the merged document (priority clamps, subcategory IDs).
	if err := ops.validate(existing, true); err != nil {
		addError(result, ops.kind, models.ItemError{Data: raw, ID: id, Error: err.Error()})
		return
	}

	modified, err := ops.store.Update(id, existing)
	if err != nil || !modified {
		if err != nil {
			c.logger.Warn().Err(err).Str("id", id).Msg("Batch update failed")
		}
		addError(result, ops.kind, models.ItemError{Data: raw, ID: id, Error: fmt.Sprintf("failed to update %s", noun)})
		return
	}

	stored, err := ops.store.GetByID(id)
	if err != nil || stored == nil {
		addError(result, ops.kind, models.ItemError{Data: raw, ID: id, Error: fmt.Sprintf("failed to update %s", noun)})
		return
	}
	result.Updated[ops.kind] = append(result.Updated[ops.kind], stored)
}

// GetByIDs fetches each requested ID individually so a missing ID yields a
// per-ID error entry instead of silently shrinking the result list.
func (c *Coordinator) GetByIDs(ids map[models.EntityKind][]string) *models.GetResult {
	result := &models.GetResult{
		Data:   map[models.EntityKind][]interface{}{},
		Errors: map[models.EntityKind][]models.ItemError{},
	}

	fetchKind(c, c.storage.Topics(), models.KindTopics, ids[models.KindTopics], result)
	fetchKind(c, c.storage.Categories(), models.KindCategories, ids[models.KindCategories], result)
	fetchKind(c, c.storage.Events(), models.KindEvents, ids[models.KindEvents], result)
	fetchKind(c, c.storage.Notes(), models.KindNotes, ids[models.KindNotes], result)

	if len(result.Data) == 0 {
		result.Data = nil
	}
	if len(result.Errors) == 0 {
		result.Errors = nil
	}
	result.Success = len(result.Errors) == 0
	return result
}

func fetchKind[T any](c *Coordinator, store interfaces.EntityStore[T], kind models.EntityKind, ids []string, result *models.GetResult) {
	noun := singular[kind]

	for _, id := range ids {
		entity, err := store.GetByID(id)
		if err != nil {
			c.logger.Warn().Err(err).Str("id", id).Msg("Multi-get fetch failed")
			result.Errors[kind] = append(result.Errors[kind], models.ItemError{ID: id, Error: fmt.Sprintf("failed to fetch %s", noun)})
			continue
		}
		if entity == nil {
			result.Errors[kind] = append(result.Errors[kind], models.ItemError{ID: id, Error: fmt.Sprintf("%s not found: %s", noun, id)})
			continue
		}
		result.Data[kind] = append(result.Data[kind], entity)
	}
}

// DeleteByIDs deletes each requested ID. The existence check precedes the
// delete so "not found" and "delete operation failed" surface as different
// causes. References held by other kinds are never cascaded.
func (c *Coordinator) DeleteByIDs(req *models.DeleteRequest) *models.DeleteResult {
	result := &models.DeleteResult{
		Deleted: map[models.EntityKind][]string{},
		Errors:  map[models.EntityKind][]models.ItemError{},
	}

	deleteKind(c, c.storage.Topics(), models.KindTopics, req.IDs(models.KindTopics), result)
	deleteKind(c, c.storage.Categories(), models.KindCategories, req.IDs(models.KindCategories), result)
	deleteKind(c, c.storage.Events(), models.KindEvents, req.IDs(models.KindEvents), result)
	deleteKind(c, c.storage.Notes(), models.KindNotes, req.IDs(models.KindNotes), result)

	if len(result.Deleted) == 0 {
		result.Deleted = nil
	}
	if len(result.Errors) == 0 {
		result.Errors = nil
	}
	result.Success = len(result.Errors) == 0
	return result
}

func deleteKind[T any](c *Coordinator, store interfaces.EntityStore[T], kind models.EntityKind, ids []string, result *models.DeleteResult) {
	noun := singular[kind]

	for _, id := range ids {
		existing, err := store.GetByID(id)
		if err != nil {
			c.logger.Warn().Err(err).Str("id", id).Msg("Multi-delete lookup failed")
			result.Errors[kind] = append(result.Errors[kind], models.ItemError{ID: id, Error: fmt.Sprintf("failed to delete %s", noun)})
			continue
		}
		if existing == nil {
			result.Errors[kind] = append(result.Errors[kind], models.ItemError{ID: id, Error: fmt.Sprintf("%s not found: %s", noun, id)})
			continue
		}

		removed, err := store.Delete(id)
		if err != nil || !removed {
			if err != nil {
				c.logger.Warn().Err(err).Str("id", id).Msg("Multi-delete failed")
			}
			result.Errors[kind] = append(result.Errors[kind], models.ItemError{ID: id, Error: fmt.Sprintf("failed to delete %s", noun)})
			continue
		}
		result.Deleted[kind] = append(result.Deleted[kind], id)
	}
}

func addError(result *models.BatchResult, kind models.EntityKind, entry models.ItemError) {
	result.Errors[kind] = append(result.Errors[kind], entry)
}

// pruneBatch removes empty per-kind maps so the response never carries empty
// array values.
func pruneBatch(result *models.BatchResult) {
	if len(result.Created) == 0 {
		result.Created = nil
	}
	if len(result.Updated) == 0 {
		result.Updated = nil
	}
	if len(result.Errors) == 0 {
		result.Errors = nil
	}
}

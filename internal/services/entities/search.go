package entities

import (
	"errors"
	"fmt"

	"github.com/ternarybob/colligo/internal/models"
)

// ErrEmptyQuery is returned when a search is attempted without a query
// string. The HTTP layer maps it to 400 before any collection is touched.
var ErrEmptyQuery = errors.New("search query is required")

// DefaultSearchLimit caps per-kind search results when the client does not
// specify a limit.
const DefaultSearchLimit = 10

// Search fans a free-text query out to the selected kinds' stores. The
// result maps each selected kind to its matches; it deliberately does not
// use the created/updated/errors batch envelope.
func (c *Coordinator) Search(query string, kinds []models.EntityKind, limit int) (map[models.EntityKind][]interface{}, error) {
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if len(kinds) == 0 {
		kinds = models.AllKinds
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	results := map[models.EntityKind][]interface{}{}

	for _, kind := range kinds {
		switch kind {
		case models.KindTopics:
			topics, err := c.storage.Topics().Search(query, limit, 0)
			if err != nil {
				return nil, fmt.Errorf("topic search failed: %w", err)
			}
			results[kind] = asInterfaces(topics)
		case models.KindCategories:
			categories, err := c.storage.Categories().Search(query, limit, 0)
			if err != nil {
				return nil, fmt.Errorf("category search failed: %w", err)
			}
			results[kind] = asInterfaces(categories)
		case models.KindEvents:
			events, err := c.storage.Events().Search(query, limit, 0)
			if err != nil {
				return nil, fmt.Errorf("event search failed: %w", err)
			}
			results[kind] = asInterfaces(events)
		case models.KindNotes:
			notes, err := c.storage.Notes().Search(query, limit, 0)
			if err != nil {
				return nil, fmt.Errorf("note search failed: %w", err)
			}
			results[kind] = asInterfaces(notes)
		}
	}

	return results, nil
}

// List returns the paginated listing for one kind in its default order. When
// the store is unavailable it degrades to the fixed fallback dataset rather
// than failing: availability wins over correctness on read-only listings.
// The boolean reports whether the fallback was used.
func (c *Coordinator) List(kind models.EntityKind, limit, skip int) ([]interface{}, bool) {
	var (
		items []interface{}
		err   error
	)

	switch kind {
	case models.KindTopics:
		var topics []*models.Topic
		topics, err = c.storage.Topics().List(limit, skip)
		items = asInterfaces(topics)
	case models.KindCategories:
		var categories []*models.Category
		categories, err = c.storage.Categories().List(limit, skip)
		items = asInterfaces(categories)
	case models.KindEvents:
		var events []*models.Event
		events, err = c.storage.Events().List(limit, skip)
		items = asInterfaces(events)
	case models.KindNotes:
		var notes []*models.Note
		notes, err = c.storage.Notes().List(limit, skip)
		items = asInterfaces(notes)
	}

	if err != nil {
		c.logger.Warn().Err(err).Str("kind", string(kind)).Msg("Store unavailable for listing, serving fallback dataset")
		return fallbackDataset(kind), true
	}
	return items, false
}

// GetOne returns a single entity of the given kind, or (nil, nil) when no
// document exists. Single-entity reads fail fast; they never degrade to the
// fallback dataset.
func (c *Coordinator) GetOne(kind models.EntityKind, id string) (interface{}, error) {
	switch kind {
	case models.KindTopics:
		topic, err := c.storage.Topics().GetByID(id)
		if err != nil || topic == nil {
			return nil, err
		}
		return topic, nil
	case models.KindCategories:
		category, err := c.storage.Categories().GetByID(id)
		if err != nil || category == nil {
			return nil, err
		}
		return category, nil
	case models.KindEvents:
		event, err := c.storage.Events().GetByID(id)
		if err != nil || event == nil {
			return nil, err
		}
		return event, nil
	case models.KindNotes:
		note, err := c.storage.Notes().GetByID(id)
		if err != nil || note == nil {
			return nil, err
		}
		return note, nil
	}
	return nil, fmt.Errorf("unknown entity kind: %s", kind)
}

func asInterfaces[T any](items []*T) []interface{} {
	result := make([]interface{}, 0, len(items))
	for _, item := range items {
		result = append(result, item)
	}
	return result
}

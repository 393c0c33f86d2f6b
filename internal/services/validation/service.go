// Package validation provides per-kind entity validation and normalization.
// Validators are pure: they never touch storage.
package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/colligo/internal/common"
	"github.com/ternarybob/colligo/internal/models"
)

const (
	// MinPriority and MaxPriority bound the priority field on every kind.
	MinPriority = 0
	MaxPriority = 10
)

// Error is a client-caused validation failure. Handlers map it to 400;
// everything else is treated as a server-side failure.
type Error struct {
	Kind    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s validation failed: %s", e.Kind, e.Message)
}

// Service validates and normalizes entities before they reach storage.
type Service struct {
	validate *validator.Validate
	logger   arbor.ILogger
}

// NewService creates a new validation service
func NewService(logger arbor.ILogger) *Service {
	v := validator.New()

	// Report field names from json tags so error messages match the wire format
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Service{
		validate: v,
		logger:   logger,
	}
}

// ValidateTopic validates a topic payload. Required-field checks are relaxed
// for updates, where partial payloads are legal.
func (s *Service) ValidateTopic(topic *models.Topic, isUpdate bool) error {
	if !isUpdate {
		if err := s.validate.Struct(topic); err != nil {
			return formatError("topic", err)
		}
	}
	normalizeCounters(&topic.Priority, &topic.UnreadCount)
	return nil
}

// ValidateCategory validates a category payload including its embedded
// subcategories. Missing subcategory IDs are assigned here; a subcategory ID
// is unique only within its parent's array.
func (s *Service) ValidateCategory(category *models.Category, isUpdate bool) error {
	if !isUpdate {
		if err := s.validate.Struct(category); err != nil {
			return formatError("category", err)
		}
	} else {
		for i := range category.Subcategories {
			if category.Subcategories[i].Name == "" {
				return &Error{Kind: "category", Message: fmt.Sprintf("field 'subcategories[%d].name' is required", i)}
			}
		}
	}

	for i := range category.Subcategories {
		if category.Subcategories[i].ID == "" {
			category.Subcategories[i].ID = common.NewSubcategoryID()
		}
	}

	normalizeCounters(&category.Priority, &category.UnreadCount)
	return nil
}

// ValidateEvent validates an event payload.
func (s *Service) ValidateEvent(event *models.Event, isUpdate bool) error {
	if !isUpdate {
		if err := s.validate.Struct(event); err != nil {
			return formatError("event", err)
		}
	}
	normalizeCounters(&event.Priority, &event.UnreadCount)
	return nil
}

// ValidateNote validates a note payload. The reference_type enum is closed:
// it is checked whenever the field is present, including on updates.
func (s *Service) ValidateNote(note *models.Note, isUpdate bool) error {
	if !isUpdate {
		if err := s.validate.Struct(note); err != nil {
			return formatError("note", err)
		}
	} else if note.ReferenceType != "" && !models.ValidReferenceType(note.ReferenceType) {
		return &Error{Kind: "note", Message: "field 'reference_type' must be one of article, topic, category, event"}
	}

	var unread int
	normalizeCounters(&note.Priority, &unread)
	return nil
}

// ValidateArticle validates an article payload for the article subsystem.
func (s *Service) ValidateArticle(article *models.Article, isUpdate bool) error {
	if !isUpdate {
		if err := s.validate.Struct(article); err != nil {
			return formatError("article", err)
		}
	}
	normalizeCounters(&article.Priority, &article.UnreadCount)
	return nil
}

// normalizeCounters clamps priority to [0,10] and unread_count to >= 0.
// Out-of-range values are normalized, not rejected.
func normalizeCounters(priority, unreadCount *int) {
	if *priority < MinPriority {
		*priority = MinPriority
	}
	if *priority > MaxPriority {
		*priority = MaxPriority
	}
	if *unreadCount < 0 {
		*unreadCount = 0
	}
}

// formatError converts validator errors into a single client-facing message.
func formatError(kind string, err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return &Error{Kind: kind, Message: err.Error()}
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field '%s' is required", fe.Field()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("field '%s' must be one of %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", ")))
		case "url":
			msgs = append(msgs, fmt.Sprintf("field '%s' must be a valid URL", fe.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("field '%s' failed '%s' validation", fe.Field(), fe.Tag()))
		}
	}
	return &Error{Kind: kind, Message: strings.Join(msgs, "; ")}
}

package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/ternarybob/colligo/internal/common"
	"github.com/ternarybob/colligo/internal/models"
)

func newTestService() *Service {
	return NewService(common.GetLogger())
}

func TestValidateTopic_RequiresName(t *testing.T) {
	s := newTestService()

	err := s.ValidateTopic(&models.Topic{}, false)
	if err == nil {
		t.Fatal("Expected error for topic without name")
	}
	if !strings.Contains(err.Error(), "'name' is required") {
		t.Errorf("Expected json field name in message, got '%s'", err.Error())
	}

	var verr *Error
	if !errors.As(err, &verr) {
		t.Errorf("Expected typed validation error, got %T", err)
	}

	// Updates accept partial payloads
	if err := s.ValidateTopic(&models.Topic{}, true); err != nil {
		t.Errorf("Expected no error for partial update, got %v", err)
	}
}

func TestValidateTopic_ClampsCounters(t *testing.T) {
	s := newTestService()

	topic := &models.Topic{Name: "x", Priority: 42, UnreadCount: -1}
	if err := s.ValidateTopic(topic, false); err != nil {
		t.Fatalf("Expected clamping, not rejection: %v", err)
	}
	if topic.Priority != MaxPriority {
		t.Errorf("Expected priority %d, got %d", MaxPriority, topic.Priority)
	}
	if topic.UnreadCount != 0 {
		t.Errorf("Expected unread_count 0, got %d", topic.UnreadCount)
	}
}

func TestValidateCategory_AssignsSubcategoryIDs(t *testing.T) {
	s := newTestService()

	category := &models.Category{
		Name: "Tech",
		Subcategories: []models.Subcategory{
			{Name: "Software"},
			{ID: "sub_existing", Name: "Hardware"},
		},
	}
	if err := s.ValidateCategory(category, false); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !strings.HasPrefix(category.Subcategories[0].ID, "sub_") {
		t.Errorf("Expected generated subcategory ID, got '%s'", category.Subcategories[0].ID)
	}
	if category.Subcategories[1].ID != "sub_existing" {
		t.Errorf("Expected existing ID preserved, got '%s'", category.Subcategories[1].ID)
	}
}

func TestValidateCategory_SubcategoryNameRequired(t *testing.T) {
	s := newTestService()

	category := &models.Category{
		Name:          "Tech",
		Subcategories: []models.Subcategory{{Description: "anonymous"}},
	}

	if err := s.ValidateCategory(category, false); err == nil {
		t.Error("Expected error for subcategory without name on create")
	}
	if err := s.ValidateCategory(category, true); err == nil {
		t.Error("Expected error for subcategory without name on update")
	}
}

func TestValidateNote_ReferenceTypeEnum(t *testing.T) {
	s := newTestService()

	valid := &models.Note{Content: "x", ReferenceType: models.ReferenceTypeArticle}
	if err := s.ValidateNote(valid, false); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	invalid := &models.Note{Content: "x", ReferenceType: "webpage"}
	err := s.ValidateNote(invalid, false)
	if err == nil {
		t.Fatal("Expected error for unknown reference_type")
	}
	if !strings.Contains(err.Error(), "reference_type") {
		t.Errorf("Expected reference_type in message, got '%s'", err.Error())
	}

	// The enum holds on updates whenever the field is present
	if err := s.ValidateNote(&models.Note{ReferenceType: "webpage"}, true); err == nil {
		t.Error("Expected error for unknown reference_type on update")
	}
	if err := s.ValidateNote(&models.Note{}, true); err != nil {
		t.Errorf("Expected absent reference_type to pass on update, got %v", err)
	}
}

func TestValidateEvent_RequiresDescription(t *testing.T) {
	s := newTestService()

	if err := s.ValidateEvent(&models.Event{Date: "2026-01-01"}, false); err == nil {
		t.Error("Expected error for event without description")
	}
	if err := s.ValidateEvent(&models.Event{Description: "happened"}, false); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestValidateArticle_URLFormat(t *testing.T) {
	s := newTestService()

	bad := &models.Article{Title: "t", URL: "not a url"}
	err := s.ValidateArticle(bad, false)
	if err == nil {
		t.Fatal("Expected error for malformed URL")
	}
	if !strings.Contains(err.Error(), "url") {
		t.Errorf("Expected url in message, got '%s'", err.Error())
	}

	good := &models.Article{Title: "t", URL: "https://example.com/story"}
	if err := s.ValidateArticle(good, false); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}

	// URL is optional
	if err := s.ValidateArticle(&models.Article{Title: "t"}, false); err != nil {
		t.Errorf("Unexpected error for absent URL: %v", err)
	}
}

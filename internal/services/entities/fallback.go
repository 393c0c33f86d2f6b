package entities

import (
	_ "embed"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/ternarybob/colligo/internal/models"
)

//go:embed fallback.yaml
var fallbackYAML []byte

// Fallback file schema. Kept separate from the wire models so the fixture
// format can stay minimal.
type fallbackFile struct {
	Topics []struct {
		ID          string   `yaml:"id"`
		Name        string   `yaml:"name"`
		Description string   `yaml:"description"`
		Keywords    []string `yaml:"keywords"`
		Priority    int      `yaml:"priority"`
	} `yaml:"topics"`
	Categories []struct {
		ID            string   `yaml:"id"`
		Name          string   `yaml:"name"`
		Description   string   `yaml:"description"`
		Keywords      []string `yaml:"keywords"`
		Priority      int      `yaml:"priority"`
		Subcategories []struct {
			ID   string `yaml:"id"`
			Name string `yaml:"name"`
		} `yaml:"subcategories"`
	} `yaml:"categories"`
	Events []struct {
		ID          string `yaml:"id"`
		Date        string `yaml:"date"`
		Description string `yaml:"description"`
		Priority    int    `yaml:"priority"`
	} `yaml:"events"`
	Notes []struct {
		ID            string   `yaml:"id"`
		Content       string   `yaml:"content"`
		ReferenceType string   `yaml:"reference_type"`
		ReferenceID   string   `yaml:"reference_id"`
		Tags          []string `yaml:"tags"`
	} `yaml:"notes"`
}

var (
	fallbackOnce sync.Once
	fallbackSets map[models.EntityKind][]interface{}
)

// fallbackDataset returns the fixed sample listing for a kind. The embedded
// file is parsed once per process; a parse failure yields empty listings,
// never an error.
func fallbackDataset(kind models.EntityKind) []interface{} {
	fallbackOnce.Do(loadFallback)

	if items, ok := fallbackSets[kind]; ok {
		return items
	}
	return []interface{}{}
}

func loadFallback() {
	fallbackSets = map[models.EntityKind][]interface{}{}

	var file fallbackFile
	if err := yaml.Unmarshal(fallbackYAML, &file); err != nil {
		// The fallback path must not fail; serve empty listings instead.
		return
	}

	topics := make([]interface{}, 0, len(file.Topics))
	for _, t := range file.Topics {
		topics = append(topics, &models.Topic{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			Keywords:    t.Keywords,
			Priority:    t.Priority,
		})
	}
	fallbackSets[models.KindTopics] = topics

	categories := make([]interface{}, 0, len(file.Categories))
	for _, c := range file.Categories {
		subs := make([]models.Subcategory, 0, len(c.Subcategories))
		for _, s := range c.Subcategories {
			subs = append(subs, models.Subcategory{ID: s.ID, Name: s.Name})
		}
		categories = append(categories, &models.Category{
			ID:            c.ID,
			Name:          c.Name,
			Description:   c.Description,
			Keywords:      c.Keywords,
			Priority:      c.Priority,
			Subcategories: subs,
		})
	}
	fallbackSets[models.KindCategories] = categories

	events := make([]interface{}, 0, len(file.Events))
	for _, e := range file.Events {
		events = append(events, &models.Event{
			ID:          e.ID,
			Date:        e.Date,
			Description: e.Description,
			Priority:    e.Priority,
		})
	}
	fallbackSets[models.KindEvents] = events

	notes := make([]interface{}, 0, len(file.Notes))
	for _, n := range file.Notes {
		notes = append(notes, &models.Note{
			ID:            n.ID,
			Content:       n.Content,
			ReferenceType: n.ReferenceType,
			ReferenceID:   n.ReferenceID,
			Tags:          n.Tags,
		})
	}
	fallbackSets[models.KindNotes] = notes
}

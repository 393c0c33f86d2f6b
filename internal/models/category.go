package models

// Category groups topics. Subcategories are embedded sub-documents owned by
// their parent: they exist only as long as the parent exists and are mutated
// only through parent-scoped writes of the whole category document.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`

	Keywords  []string `json:"keywords"`
	TopicsIDs []string `json:"topics_ids"`

	Subcategories []Subcategory `json:"subcategories" validate:"dive"`

	UnreadCount int `json:"unread_count"`
	Priority    int `json:"priority"`
}

// Subcategory is an embedded sub-document. Its ID is unique only within the
// parent category's subcategories array, not globally.
type Subcategory struct {
	ID          string   `json:"id"`
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description,omitempty"`
	Keywords    []string `json:"keywords"`
	TopicsIDs   []string `json:"topics_ids"`
}

// Subcategory returns the embedded subcategory with the given ID, or nil.
func (c *Category) Subcategory(id string) *Subcategory {
	for i := range c.Subcategories {
		if c.Subcategories[i].ID == id {
			return &c.Subcategories[i]
		}
	}
	return nil
}

// UpsertSubcategory replaces the subcategory with a matching ID, or appends
// it when no match exists. The parent document must be persisted afterwards.
func (c *Category) UpsertSubcategory(sub Subcategory) {
	for i := range c.Subcategories {
		if c.Subcategories[i].ID == sub.ID {
			c.Subcategories[i] = sub
			return
		}
	}
	c.Subcategories = append(c.Subcategories, sub)
}

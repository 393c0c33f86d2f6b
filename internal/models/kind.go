package models

// EntityKind names one of the four consolidated entity collections.
// Articles are handled by a separate dedicated subsystem.
type EntityKind string

const (
	KindTopics     EntityKind = "topics"
	KindCategories EntityKind = "categories"
	KindEvents     EntityKind = "events"
	KindNotes      EntityKind = "notes"
)

// AllKinds lists the consolidated kinds in canonical processing order.
var AllKinds = []EntityKind{KindTopics, KindCategories, KindEvents, KindNotes}

// ParseKind returns the kind matching name, or false when unknown.
func ParseKind(name string) (EntityKind, bool) {
	switch EntityKind(name) {
	case KindTopics, KindCategories, KindEvents, KindNotes:
		return EntityKind(name), true
	}
	return "", false
}

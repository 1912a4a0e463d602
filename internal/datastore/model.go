// model.go: defines the data model for persisted tagging results.
package datastore

import "time"

// Tag is one presentation label with its confidence.
type Tag struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"score"`
}

// TagSet is the ranked list of tags persisted for one image, ordered by
// descending confidence.
type TagSet []Tag

// Labels returns just the label strings, in rank order.
func (t TagSet) Labels() []string {
	labels := make([]string, len(t))
	for i, tag := range t {
		labels[i] = tag.Label
	}
	return labels
}

// Contains reports whether the set holds the given presentation label at any
// rank position.
func (t TagSet) Contains(label string) bool {
	for _, tag := range t {
		if tag.Label == label {
			return true
		}
	}
	return false
}

// TaggedImage is one tagging record, keyed by the absolute image path.
// The table is deliberately owned by this application alone: schema setup
// never touches other tables in the same database.
type TaggedImage struct {
	ID         uint       `gorm:"primaryKey"`
	Path       string     `gorm:"uniqueIndex:idx_ai_photo_tags_path;size:1000;not null"`
	Tags       string     `gorm:"not null"` // encoded TagSet, see tagset.go
	CapturedAt *time.Time `gorm:"index:idx_ai_photo_tags_captured_at"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName keeps the table clearly namespaced next to unrelated tables that
// may live in the same database.
func (TaggedImage) TableName() string {
	return "ai_photo_tags"
}

// TagSet decodes the stored tag encoding.
func (ti *TaggedImage) TagSet() (TagSet, error) {
	return DecodeTagSet(ti.Tags)
}

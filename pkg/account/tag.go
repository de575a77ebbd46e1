package account

import (
	"regexp"

	"github.com/google/uuid"
)

const (
	// TagIDPrefix starts every generated tag id.
	TagIDPrefix = "tag_"
	// DefaultTagColor is used when no color is picked.
	DefaultTagColor = "#6b7280"

	maxTagName = 50
)

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Tag groups accounts into a named, colored view.
type Tag struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// NewTagID generates a stable, prefixed tag id.
func NewTagID() string {
	return TagIDPrefix + uuid.NewString()
}

// IndexTags builds the id lookup for tags.
func IndexTags(tags []Tag) map[string]Tag {
	m := make(map[string]Tag, len(tags))
	for _, t := range tags {
		m[t.ID] = t
	}
	return m
}

// ValidColor reports whether c is a 6-hex-digit color code.
func ValidColor(c string) bool {
	return colorPattern.MatchString(c)
}

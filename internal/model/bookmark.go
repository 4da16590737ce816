package model

import (
	"slices"
	"strings"
	"time"
)

// Bookmark represents a saved link with metadata.
type Bookmark struct {
	ID        int       `json:"id"`
	UID       string    `json:"uid,omitempty"`
	Title     string    `json:"title"`
	Category  Category  `json:"category"`
	URL       string    `json:"url,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	Status    Status    `json:"status"`
	Hidden    bool      `json:"hidden"`
	CreatedAt time.Time `json:"created_at"`
}

// HasURL returns true if the bookmark has a URL.
func (b *Bookmark) HasURL() bool {
	return b.URL != ""
}

// HasNotes returns true if the bookmark has notes.
func (b *Bookmark) HasNotes() bool {
	return b.Notes != ""
}

// IsDone returns true if the bookmark has been marked as done.
func (b *Bookmark) IsDone() bool {
	return b.Status == StatusDone
}

// HasTag reports whether tag is one of the bookmark's tags. Matching is case-sensitive.
func (b *Bookmark) HasTag(tag string) bool {
	return len(b.Tags) > 0 && slices.Contains(b.Tags, tag)
}

// Category is the closed set of bookmark kinds.
type Category int

const (
	CategoryOther Category = iota
	CategoryBook
	CategoryArticle
	CategoryTopic
	CategoryProject
	CategoryTool
	CategoryCourse
)

var categoryNames = map[Category]string{
	CategoryBook:    "Book",
	CategoryArticle: "Article",
	CategoryTopic:   "Topic",
	CategoryProject: "Project",
	CategoryTool:    "Tool",
	CategoryCourse:  "Course",
	CategoryOther:   "Other",
}

// Categories lists every category in display order.
func Categories() []Category {
	return []Category{
		CategoryBook, CategoryArticle, CategoryTopic, CategoryProject,
		CategoryTool, CategoryCourse, CategoryOther,
	}
}

// ParseCategory parses a category name case-insensitively.
func ParseCategory(s string) (Category, error) {
	for c, name := range categoryNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return c, nil
		}
	}
	return CategoryOther, &CategoryParseError{Value: s}
}

func (c Category) String() string {
	return strings.ToLower(c.name())
}

func (c Category) name() string {
	if n, ok := categoryNames[c]; ok {
		return n
	}
	return categoryNames[CategoryOther]
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.name()), nil
}

func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Status tracks progress on a bookmark.
type Status int

const (
	StatusNone Status = iota
	StatusPending
	StatusDone
)

var statusNames = map[Status]string{
	StatusNone:    "None",
	StatusPending: "Pending",
	StatusDone:    "Done",
}

// ParseStatus parses a status name case-insensitively.
func ParseStatus(s string) (Status, error) {
	for st, name := range statusNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return st, nil
		}
	}
	return StatusNone, &StatusParseError{Value: s}
}

// String returns the glyph shown in listings.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusDone:
		return "DONE"
	default:
		return "━━"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	if n, ok := statusNames[s]; ok {
		return []byte(n), nil
	}
	return []byte(statusNames[StatusNone]), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

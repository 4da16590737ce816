package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/bunchhieng/arx/internal/model"
)

// ErrEmptyTitle indicates a bookmark was given no title.
var ErrEmptyTitle = errors.New("bookmark title must not be empty")

// Store is the persisted bookmark document. It owns every bookmark it holds;
// callers receive copies or pointers valid only until the next mutation.
type Store struct {
	NextID    int              `json:"next_id"`
	Bookmarks []model.Bookmark `json:"bookmarks"`

	path  string
	match Matcher
	now   func() time.Time
}

// New creates an empty store that saves to path.
func New(path string) *Store {
	return &Store{
		Bookmarks: []model.Bookmark{},
		path:      path,
		match:     FuzzyMatch,
		now:       time.Now,
	}
}

// Load reads the store at path. A missing or empty file yields a fresh store.
func Load(path string) (*Store, error) {
	s := New(path)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read bookmarks: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse bookmarks %s: %w", path, err)
	}
	if s.Bookmarks == nil {
		s.Bookmarks = []model.Bookmark{}
	}
	for i := range s.Bookmarks {
		if s.Bookmarks[i].UID == "" {
			s.Bookmarks[i].UID = model.NewUID()
		}
	}
	return s, nil
}

// Save writes the whole document to the store's path, creating parent directories.
func (s *Store) Save() error {
	if s.path == "" {
		return errors.New("bookmarks path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode bookmarks: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write bookmarks: %w", err)
	}
	return nil
}

// Path returns the file the store saves to.
func (s *Store) Path() string {
	return s.path
}

// SetPath changes where the store saves to. The file itself is not moved.
func (s *Store) SetPath(path string) {
	s.path = path
}

// SetMatcher replaces the fuzzy scorer used for text queries.
func (s *Store) SetMatcher(m Matcher) {
	if m == nil {
		m = FuzzyMatch
	}
	s.match = m
}

// Len returns the number of bookmarks.
func (s *Store) Len() int {
	return len(s.Bookmarks)
}

// NewBookmark holds the fields accepted by Add.
type NewBookmark struct {
	Title    string
	URL      string
	Category model.Category
	Tags     []string
	Notes    string
	Status   model.Status
	Hidden   bool
}

// Add appends a bookmark with the next ID.
func (s *Store) Add(nb NewBookmark) (*model.Bookmark, error) {
	if strings.TrimSpace(nb.Title) == "" {
		return nil, ErrEmptyTitle
	}
	s.Bookmarks = append(s.Bookmarks, model.Bookmark{
		ID:        s.NextID,
		UID:       model.NewUID(),
		Title:     nb.Title,
		Category:  nb.Category,
		URL:       nb.URL,
		Tags:      nb.Tags,
		Notes:     nb.Notes,
		Status:    nb.Status,
		Hidden:    nb.Hidden,
		CreatedAt: s.now().UTC(),
	})
	s.NextID++
	return &s.Bookmarks[len(s.Bookmarks)-1], nil
}

// Find resolves q to a bookmark. The second result reports whether the
// bookmark was found by fuzzy text match rather than by ID.
func (s *Store) Find(q Query) (*model.Bookmark, bool, error) {
	i, err := Resolve(s.Bookmarks, q, s.match)
	if err != nil {
		return nil, false, err
	}
	return &s.Bookmarks[i], !q.IsID(), nil
}

// ConfirmFunc asks whether a fuzzy-matched bookmark should be removed.
type ConfirmFunc func(b model.Bookmark) (bool, error)

// Remove deletes the bookmarks targeted by queries and renumbers the rest.
// Bookmarks found by ID are removed directly; fuzzy matches are removed only
// when confirm approves them. IDs refer to the numbering before this call.
// On error the store is left untouched.
func (s *Store) Remove(queries []Query, confirm ConfirmFunc) ([]model.Bookmark, error) {
	work := slices.Clone(s.Bookmarks)
	var removed []model.Bookmark

	for _, q := range queries {
		i, err := Resolve(work, q, s.match)
		if err != nil {
			return nil, err
		}
		if !q.IsID() {
			ok := false
			if confirm != nil {
				ok, err = confirm(work[i])
				if err != nil {
					return nil, fmt.Errorf("confirm removal: %w", err)
				}
			}
			if !ok {
				continue
			}
		}
		removed = append(removed, work[i])
		work = slices.Delete(work, i, i+1)
	}

	s.Bookmarks = work
	s.Normalize()
	return removed, nil
}

// Normalize renumbers bookmarks so each ID equals its position.
func (s *Store) Normalize() {
	for i := range s.Bookmarks {
		s.Bookmarks[i].ID = i
	}
	s.NextID = len(s.Bookmarks)
}

// Edit lists field updates. Nil fields are left unchanged.
type Edit struct {
	Category *model.Category
	Hidden   *bool
	Notes    *string
	Status   *model.Status
	Tags     []string
	Title    *string
	URL      *string
}

// Empty reports whether the edit changes nothing.
func (e Edit) Empty() bool {
	return e.Category == nil && e.Hidden == nil && e.Notes == nil &&
		e.Status == nil && e.Tags == nil && e.Title == nil && e.URL == nil
}

// Edit applies every present field of e to the bookmark targeted by q.
func (s *Store) Edit(q Query, e Edit) (*model.Bookmark, error) {
	if e.Empty() {
		return nil, model.ErrNoEditSpecified
	}
	if e.Title != nil && strings.TrimSpace(*e.Title) == "" {
		return nil, ErrEmptyTitle
	}
	b, _, err := s.Find(q)
	if err != nil {
		return nil, err
	}

	if e.Category != nil {
		b.Category = *e.Category
	}
	if e.Hidden != nil {
		b.Hidden = *e.Hidden
	}
	if e.Notes != nil {
		b.Notes = *e.Notes
	}
	if e.Status != nil {
		b.Status = *e.Status
	}
	if e.Tags != nil {
		b.Tags = e.Tags
	}
	if e.Title != nil {
		b.Title = *e.Title
	}
	if e.URL != nil {
		b.URL = *e.URL
	}
	return b, nil
}

// SetStatus changes the status of the bookmark targeted by q.
func (s *Store) SetStatus(q Query, status model.Status) (*model.Bookmark, error) {
	b, _, err := s.Find(q)
	if err != nil {
		return nil, err
	}
	b.Status = status
	return b, nil
}

// MarkDone sets the status of the bookmark targeted by q to done.
func (s *Store) MarkDone(q Query) (*model.Bookmark, error) {
	return s.SetStatus(q, model.StatusDone)
}

// Export returns a copy of all bookmarks.
func (s *Store) Export() []model.Bookmark {
	return slices.Clone(s.Bookmarks)
}

// Import appends bookmarks with fresh IDs. Entries without a title or whose
// UID is already present are skipped. Returns the number added.
func (s *Store) Import(bookmarks []model.Bookmark) int {
	seen := make(map[string]bool, len(s.Bookmarks))
	for _, b := range s.Bookmarks {
		seen[b.UID] = true
	}

	added := 0
	for _, b := range bookmarks {
		if strings.TrimSpace(b.Title) == "" {
			continue
		}
		if b.UID == "" {
			b.UID = model.NewUID()
		}
		if seen[b.UID] {
			continue
		}
		seen[b.UID] = true
		if b.CreatedAt.IsZero() {
			b.CreatedAt = s.now().UTC()
		}
		b.ID = s.NextID
		s.Bookmarks = append(s.Bookmarks, b)
		s.NextID++
		added++
	}
	return added
}

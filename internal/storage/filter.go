package storage

import (
	"fmt"
	"strings"

	"github.com/bunchhieng/arx/internal/model"
)

// View selects which field set a listing shows and filters on.
type View int

const (
	ViewDefault View = iota
	ViewURLs
	ViewNotes
	ViewHidden
)

// ParseView parses a view name. The empty string is the default view.
func ParseView(s string) (View, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return ViewDefault, nil
	case "urls", "url":
		return ViewURLs, nil
	case "notes", "note":
		return ViewNotes, nil
	case "hidden":
		return ViewHidden, nil
	}
	return ViewDefault, fmt.Errorf("invalid view %q: expected urls, notes or hidden", s)
}

func (v View) String() string {
	switch v {
	case ViewURLs:
		return "urls"
	case ViewNotes:
		return "notes"
	case ViewHidden:
		return "hidden"
	default:
		return "default"
	}
}

// ListOptions specifies filtering and paging for List.
type ListOptions struct {
	View     View
	Category string
	Tag      string
	All      bool
	Page     int
	PageSize int
}

// Filter narrows bookmarks by view, category, tag and default visibility,
// in that order. The input slice is not modified.
func Filter(bookmarks []model.Bookmark, opts ListOptions) ([]model.Bookmark, error) {
	var category model.Category
	if opts.Category != "" {
		c, err := model.ParseCategory(opts.Category)
		if err != nil {
			return nil, err
		}
		category = c
	}

	result := make([]model.Bookmark, 0, len(bookmarks))
	for _, b := range bookmarks {
		switch opts.View {
		case ViewURLs:
			if !b.HasURL() {
				continue
			}
		case ViewNotes:
			if !b.HasNotes() {
				continue
			}
		case ViewHidden:
			if !b.Hidden {
				continue
			}
		}
		if opts.Category != "" && b.Category != category {
			continue
		}
		if opts.Tag != "" && !b.HasTag(opts.Tag) {
			continue
		}
		if !opts.All {
			if b.IsDone() {
				continue
			}
			if b.Hidden && opts.View != ViewHidden {
				continue
			}
		}
		result = append(result, b)
	}
	return result, nil
}

// List filters the store and returns the requested page.
func (s *Store) List(opts ListOptions) (Page, error) {
	filtered, err := Filter(s.Bookmarks, opts)
	if err != nil {
		return Page{}, err
	}
	return Paginate(filtered, opts.Page, opts.PageSize)
}

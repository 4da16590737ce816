package storage

import "github.com/bunchhieng/arx/internal/model"

// DefaultPageSize is used when no page size is configured.
const DefaultPageSize = 10

// Page is one slice of a filtered listing.
type Page struct {
	Bookmarks []model.Bookmark
	Number    int
	Total     int
	Matched   int
}

// Paginate returns page number (1-based, 0 meaning 1) of items.
func Paginate(items []model.Bookmark, number, size int) (Page, error) {
	if number <= 0 {
		number = 1
	}
	if size <= 0 {
		size = DefaultPageSize
	}

	start := (number - 1) * size
	if start >= len(items) {
		return Page{}, &model.PageNotFoundError{Page: number}
	}
	end := min(start+size, len(items))

	return Page{
		Bookmarks: items[start:end],
		Number:    number,
		Total:     (len(items) + size - 1) / size,
		Matched:   len(items),
	}, nil
}

package storage

import (
	"errors"
	"fmt"
	"testing"

	"github.com/bunchhieng/arx/internal/model"
)

func numbered(n int) []model.Bookmark {
	out := make([]model.Bookmark, n)
	for i := range out {
		out[i] = model.Bookmark{ID: i, Title: fmt.Sprintf("b%d", i)}
	}
	return out
}

func TestPaginateBounds(t *testing.T) {
	items := numbered(25)

	page, err := Paginate(items, 3, 10)
	if err != nil {
		t.Fatalf("Paginate failed: %v", err)
	}
	if len(page.Bookmarks) != 5 {
		t.Errorf("Expected 5 items on page 3, got %d", len(page.Bookmarks))
	}
	if page.Total != 3 {
		t.Errorf("Expected 3 total pages, got %d", page.Total)
	}
	if page.Bookmarks[0].ID != 20 {
		t.Errorf("Expected page 3 to start at 20, got %d", page.Bookmarks[0].ID)
	}

	_, err = Paginate(items, 4, 10)
	var pnf *model.PageNotFoundError
	if !errors.As(err, &pnf) || pnf.Page != 4 {
		t.Errorf("Expected PageNotFoundError(4), got %v", err)
	}
}

func TestPaginatePageZeroIsFirst(t *testing.T) {
	page, err := Paginate(numbered(12), 0, 10)
	if err != nil {
		t.Fatalf("Paginate failed: %v", err)
	}
	if page.Number != 1 || len(page.Bookmarks) != 10 {
		t.Errorf("Expected first page of 10, got page %d with %d", page.Number, len(page.Bookmarks))
	}
}

func TestPaginateDefaultSize(t *testing.T) {
	page, _ := Paginate(numbered(30), 1, 0)
	if len(page.Bookmarks) != DefaultPageSize {
		t.Errorf("Expected %d items, got %d", DefaultPageSize, len(page.Bookmarks))
	}
}

func TestPaginateEmpty(t *testing.T) {
	_, err := Paginate(nil, 1, 10)
	var pnf *model.PageNotFoundError
	if !errors.As(err, &pnf) || pnf.Page != 1 {
		t.Errorf("Expected PageNotFoundError(1), got %v", err)
	}
}

func TestPaginateExactMultiple(t *testing.T) {
	page, _ := Paginate(numbered(20), 2, 10)
	if page.Total != 2 || len(page.Bookmarks) != 10 {
		t.Errorf("Expected 2 pages of 10, got total %d with %d", page.Total, len(page.Bookmarks))
	}
}

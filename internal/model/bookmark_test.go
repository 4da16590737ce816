package model

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParseCategory(t *testing.T) {
	for _, in := range []string{"book", "BOOK", " Book "} {
		c, err := ParseCategory(in)
		if err != nil {
			t.Fatalf("ParseCategory(%q) failed: %v", in, err)
		}
		if c != CategoryBook {
			t.Errorf("ParseCategory(%q) = %v, expected book", in, c)
		}
	}

	c, err := ParseCategory("other")
	if err != nil || c != CategoryOther {
		t.Errorf("Expected other to parse, got %v, %v", c, err)
	}

	_, err = ParseCategory("podcast")
	var perr *CategoryParseError
	if !errors.As(err, &perr) {
		t.Fatalf("Expected CategoryParseError, got %v", err)
	}
	if perr.Value != "podcast" {
		t.Errorf("Expected value 'podcast', got '%s'", perr.Value)
	}
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("pending")
	if err != nil || s != StatusPending {
		t.Errorf("Expected pending, got %v, %v", s, err)
	}

	_, err = ParseStatus("later")
	var perr *StatusParseError
	if !errors.As(err, &perr) {
		t.Errorf("Expected StatusParseError, got %v", err)
	}
}

func TestBookmarkJSON(t *testing.T) {
	b := Bookmark{
		ID:        3,
		Title:     "Go Spec",
		Category:  CategoryArticle,
		URL:       "https://go.dev/ref/spec",
		Tags:      []string{"go", "lang"},
		Status:    StatusPending,
		CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if raw["category"] != "Article" {
		t.Errorf("Expected category 'Article', got %v", raw["category"])
	}
	if raw["status"] != "Pending" {
		t.Errorf("Expected status 'Pending', got %v", raw["status"])
	}
	if _, ok := raw["notes"]; ok {
		t.Error("Expected empty notes to be omitted")
	}
}

func TestBookmarkUnmarshalNulls(t *testing.T) {
	doc := `{"id":0,"title":"Rust Book","category":"Book","url":null,"tags":null,"notes":null,"status":"None","hidden":false,"created_at":"2024-05-01T12:00:00.123456Z"}`

	var b Bookmark
	if err := json.Unmarshal([]byte(doc), &b); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if b.HasURL() || b.HasNotes() || b.Tags != nil {
		t.Errorf("Expected null fields to stay empty, got %+v", b)
	}
	if b.Category != CategoryBook {
		t.Errorf("Expected book, got %v", b.Category)
	}
}

func TestBookmarkUnmarshalBadCategory(t *testing.T) {
	doc := `{"id":0,"title":"x","category":"Podcast","status":"None"}`
	var b Bookmark
	if err := json.Unmarshal([]byte(doc), &b); err == nil {
		t.Error("Expected error for unknown category")
	}
}

func TestHasTag(t *testing.T) {
	b := Bookmark{Tags: []string{"go", "Web"}}
	if !b.HasTag("go") {
		t.Error("Expected tag 'go'")
	}
	if b.HasTag("web") {
		t.Error("Expected tag match to be case-sensitive")
	}
	empty := Bookmark{}
	if empty.HasTag("go") {
		t.Error("Expected no tags")
	}
}

func TestNewUID(t *testing.T) {
	a, b := NewUID(), NewUID()
	if a == b {
		t.Error("Expected distinct UIDs")
	}
	if !ValidUID(a) {
		t.Errorf("Expected valid UID, got %s", a)
	}
	if ValidUID("not-a-uid") {
		t.Error("Expected invalid UID to be rejected")
	}
}

package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNoEditSpecified indicates an edit was requested without any field to change.
	ErrNoEditSpecified = errors.New("edit command requires at least one field")

	// ErrOpen wraps failures of the browser launcher.
	ErrOpen = errors.New("could not open url")

	// ErrClipboard wraps failures of the clipboard writer.
	ErrClipboard = errors.New("could not copy to clipboard")
)

// IDNotFoundError is returned when no bookmark carries the requested ID.
type IDNotFoundError struct {
	ID int
}

func (e *IDNotFoundError) Error() string {
	return fmt.Sprintf("bookmark with ID %d not found", e.ID)
}

// QueryNotFoundError is returned when a fuzzy query matches no title.
type QueryNotFoundError struct {
	Query string
}

func (e *QueryNotFoundError) Error() string {
	return fmt.Sprintf("no bookmark matches %q", e.Query)
}

// NoURLError is returned by open and copy-url for bookmarks without a URL.
type NoURLError struct {
	ID int
}

func (e *NoURLError) Error() string {
	return fmt.Sprintf("bookmark with ID %d has no URL", e.ID)
}

// PageNotFoundError is returned when a listing page lies past the end.
type PageNotFoundError struct {
	Page int
}

func (e *PageNotFoundError) Error() string {
	return fmt.Sprintf("page %d not found", e.Page)
}

// CategoryParseError is returned for category names outside the closed set.
type CategoryParseError struct {
	Value string
}

func (e *CategoryParseError) Error() string {
	return fmt.Sprintf("invalid category: %s", e.Value)
}

// StatusParseError is returned for status names outside the closed set.
type StatusParseError struct {
	Value string
}

func (e *StatusParseError) Error() string {
	return fmt.Sprintf("invalid status: %s", e.Value)
}

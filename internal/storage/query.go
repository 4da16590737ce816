package storage

import (
	"strconv"
	"strings"

	"github.com/bunchhieng/arx/internal/model"
	"github.com/sahilm/fuzzy"
)

// Query targets a bookmark either by numeric ID or by fuzzy title text.
type Query struct {
	id   int
	text string
	isID bool
}

// ParseQuery treats s as an ID when it is a non-negative integer and as
// free text otherwise.
func ParseQuery(s string) Query {
	if id, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && id >= 0 {
		return IDQuery(id)
	}
	return TextQuery(s)
}

// ParseQueries parses every argument with ParseQuery.
func ParseQueries(args []string) []Query {
	qs := make([]Query, 0, len(args))
	for _, a := range args {
		qs = append(qs, ParseQuery(a))
	}
	return qs
}

// IDQuery targets the bookmark with the given ID.
func IDQuery(id int) Query {
	return Query{id: id, isID: true}
}

// TextQuery targets the bookmark whose title best matches text.
func TextQuery(text string) Query {
	return Query{text: text}
}

// IsID reports whether q is an exact ID lookup.
func (q Query) IsID() bool {
	return q.isID
}

// ID returns the targeted ID for ID queries.
func (q Query) ID() int {
	return q.id
}

// Text returns the query text for fuzzy queries.
func (q Query) Text() string {
	return q.text
}

func (q Query) String() string {
	if q.isID {
		return strconv.Itoa(q.id)
	}
	return q.text
}

// Matcher scores how well title matches query. ok is false when it does not match at all.
type Matcher func(query, title string) (score int, ok bool)

// FuzzyMatch scores title with sahilm/fuzzy.
func FuzzyMatch(query, title string) (int, bool) {
	matches := fuzzy.Find(query, []string{title})
	if len(matches) == 0 {
		return 0, false
	}
	return matches[0].Score, true
}

// Resolve returns the index of the bookmark targeted by q. Text queries pick
// the highest score; on equal scores the earliest bookmark wins.
func Resolve(bookmarks []model.Bookmark, q Query, match Matcher) (int, error) {
	if q.isID {
		for i := range bookmarks {
			if bookmarks[i].ID == q.id {
				return i, nil
			}
		}
		return -1, &model.IDNotFoundError{ID: q.id}
	}

	if match == nil {
		match = FuzzyMatch
	}
	best, bestScore := -1, 0
	for i := range bookmarks {
		score, ok := match(q.text, bookmarks[i].Title)
		if !ok {
			continue
		}
		if best < 0 || score > bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 {
		return -1, &model.QueryNotFoundError{Query: q.text}
	}
	return best, nil
}

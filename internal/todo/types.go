package todo

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// DefaultKey is the slot key the item sequence is persisted under.
const DefaultKey = "todos-advanced"

// Item is a single todo entry.
type Item struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Done      bool   `json:"done"`
	CreatedAt int64  `json:"createdAt"` // epoch milliseconds
}

// Created returns CreatedAt as a time.Time in UTC.
func (i Item) Created() time.Time {
	return time.UnixMilli(i.CreatedAt).UTC()
}

// Filter selects which items VisibleItems returns.
type Filter string

const (
	FilterAll    Filter = "all"
	FilterActive Filter = "active"
	FilterDone   Filter = "done"
)

// Filters lists the valid filters in display order.
var Filters = []Filter{FilterAll, FilterActive, FilterDone}

// ErrInvalidFilter is returned when a filter outside Filters is requested.
var ErrInvalidFilter = errors.New("invalid filter")

// Valid reports whether f is one of Filters.
func (f Filter) Valid() bool {
	switch f {
	case FilterAll, FilterActive, FilterDone:
		return true
	}
	return false
}

func (f Filter) String() string {
	return string(f)
}

// Match reports whether item belongs in the view selected by f.
// An invalid filter matches nothing.
func (f Filter) Match(item Item) bool {
	switch f {
	case FilterAll:
		return true
	case FilterActive:
		return !item.Done
	case FilterDone:
		return item.Done
	}
	return false
}

// ParseFilter converts raw input into a Filter.
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseFilter(s string) (Filter, error) {
	f := Filter(strings.ToLower(strings.TrimSpace(s)))
	if !f.Valid() {
		return "", fmt.Errorf("%w %q: must be one of %v", ErrInvalidFilter, s, Filters)
	}
	return f, nil
}

// Stats are counts over the whole item sequence, independent of the filter.
type Stats struct {
	Total   int `json:"total"`
	Pending int `json:"pending"`
	Done    int `json:"done"`
}

// ComputeStats counts items. Pending is always Total - Done.
func ComputeStats(items []Item) Stats {
	done := 0
	for _, item := range items {
		if item.Done {
			done++
		}
	}
	return Stats{
		Total:   len(items),
		Pending: len(items) - done,
		Done:    done,
	}
}

// NormalizeText trims surrounding whitespace and applies Unicode NFC, so
// visually identical input is stored identically. The result is empty when
// the input holds no visible text.
func NormalizeText(raw string) string {
	return norm.NFC.String(strings.TrimSpace(raw))
}

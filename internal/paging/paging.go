// Package paging computes page windows and totals for the list views.
package paging

import (
	"errors"
	"net/url"
	"strconv"
)

// Entity-specific page-size defaults.
const (
	DefaultItems  = 9
	DefaultVideos = 9
	DefaultPhotos = 12
)

var (
	ErrBadPage     = errors.New("page must be a positive number")
	ErrBadPageSize = errors.New("pagination must be a positive number")
)

// Request is a 1-based page plus a page size.
type Request struct {
	Page    int
	PerPage int
}

// Parse reads the page/pagination query parameters, falling back to
// defaultPerPage when absent. Zero and negative values are rejected rather
// than clamped.
func Parse(query url.Values, defaultPerPage int) (Request, error) {
	req := Request{Page: 1, PerPage: defaultPerPage}

	if raw := query.Get("page"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			return Request{}, ErrBadPage
		}
		req.Page = v
	}
	if raw := query.Get("pagination"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			return Request{}, ErrBadPageSize
		}
		req.PerPage = v
	}
	return req, nil
}

// Window returns the skip/limit pair for the store query.
func (r Request) Window() (skip, limit int64) {
	return int64(r.Page-1) * int64(r.PerPage), int64(r.PerPage)
}

// TotalPages is ceil(total / perPage). perPage is validated upstream.
func TotalPages(total int64, perPage int) int {
	if total <= 0 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

// Pages enumerates 1..total for the template pagination bar.
func Pages(total int) []int {
	pages := make([]int, total)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}

// DedupeOrdered keeps the first occurrence of each value, in order. Used
// for the item category facet.
func DedupeOrdered(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

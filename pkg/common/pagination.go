package common

import (
	"net/http"
	"strconv"
)

const (
	// DefaultLimit is used when the limit query parameter is absent or invalid
	DefaultLimit = 10
	// MaxLimit caps the number of items a single page may request
	MaxLimit = 100
)

// PaginationParams represents offset based pagination parameters
type PaginationParams struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// DefaultPaginationParams returns default pagination parameters
func DefaultPaginationParams() PaginationParams {
	return PaginationParams{
		Limit:  DefaultLimit,
		Offset: 0,
	}
}

// ExtractPaginationParams extracts limit and offset from the query string.
// A zero, negative or unparsable limit falls back to DefaultLimit; a negative
// or unparsable offset falls back to 0.
func ExtractPaginationParams(r *http.Request) PaginationParams {
	params := DefaultPaginationParams()

	if limit := r.URL.Query().Get("limit"); limit != "" {
		if l, err := strconv.Atoi(limit); err == nil && l > 0 {
			if l > MaxLimit {
				l = MaxLimit
			}
			params.Limit = l
		}
	}

	if offset := r.URL.Query().Get("offset"); offset != "" {
		if o, err := strconv.Atoi(offset); err == nil && o > 0 {
			params.Offset = o
		}
	}

	return params
}

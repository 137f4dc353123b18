package helpers

import (
	"net/http"
	"strconv"
)

// List query parameter defaults and limits.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// ParseLimitOffset reads limit and offset from the request query string and
// clamps them to valid ranges. Invalid or missing values fall back to defaults.
func ParseLimitOffset(r *http.Request) (limit, offset int) {
	limit = DefaultLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 1 {
			limit = v
			if limit > MaxLimit {
				limit = MaxLimit
			}
		}
	}
	if s := r.URL.Query().Get("offset"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 0 {
			offset = v
		}
	}
	return limit, offset
}

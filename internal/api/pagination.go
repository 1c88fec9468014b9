package api

import (
	"net/http"
	"strconv"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// ParseLimitOffset reads limit and offset query params. Out-of-range or
// unparsable values fall back to the defaults rather than erroring.
func ParseLimitOffset(r *http.Request) (limit, offset int) {
	limit, offset = defaultLimit, 0
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			limit = min(n, maxLimit)
		}
	}
	if s := r.URL.Query().Get("offset"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}

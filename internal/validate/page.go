package validate

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Page is a normalized limit/offset window.
type Page struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// NewPage clamps limit to [1, MaxLimit] and offset to >= 0. A non-positive
// limit falls back to DefaultLimit.
func NewPage(limit, offset int) Page {
	switch {
	case limit <= 0:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return Page{Limit: limit, Offset: offset}
}

// PageFromQuery reads limit and offset from query parameters. Missing or
// unparseable values fall back to the defaults instead of failing.
func PageFromQuery(q url.Values) Page {
	return NewPage(atoi(q.Get("limit"), DefaultLimit), atoi(q.Get("offset"), 0))
}

func atoi(s string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return n
}

// LooseInt decodes a JSON number or numeric string. Anything else, including
// null and fractional numbers, decodes as zero so the page defaults apply.
type LooseInt int

func (n *LooseInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	*n = LooseInt(atoi(s, 0))
	return nil
}

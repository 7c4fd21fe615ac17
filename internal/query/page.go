package query

import (
	"math"
	"strconv"

	"github.com/board-game-reviews-api/internal/apperr"
)

const (
	DefaultLimit = 10
	DefaultPage  = 1
)

// Limits bounds page sizes. A zero Max means no upper bound.
type Limits struct {
	Default int
	Max     int
}

// DefaultLimits is used when no configuration overrides it.
var DefaultLimits = Limits{Default: DefaultLimit, Max: 100}

// Page is a validated limit/page pair.
type Page struct {
	Limit int
	Page  int
}

// Offset returns the number of rows skipped before this page.
func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ParsePage validates raw limit and page query values. Empty values take defaults.
func ParsePage(limit, page string, limits Limits) (Page, error) {
	out := Page{Limit: limits.Default, Page: DefaultPage}
	if out.Limit <= 0 {
		out.Limit = DefaultLimit
	}

	if limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 1 {
			return Page{}, apperr.BadRequest("Invalid limit query, %q is not a positive integer", limit)
		}
		if limits.Max > 0 && n > limits.Max {
			return Page{}, apperr.BadRequest("Invalid limit query, maximum is %d", limits.Max)
		}
		out.Limit = n
	}

	if page != "" {
		n, err := strconv.Atoi(page)
		if err != nil || n < 1 {
			return Page{}, apperr.BadRequest("Invalid page query, %q is not a positive integer", page)
		}
		out.Page = n
	}

	if out.Page-1 > math.MaxInt/out.Limit {
		return Page{}, apperr.BadRequest("Invalid page query, %q is out of range", page)
	}

	return out, nil
}

package query

import (
	"strings"

	"github.com/board-game-reviews-api/internal/apperr"
)

// reviewSortColumns maps accepted sort_by values to the expression sorted on.
// comment_id sorts by the derived comment count since rows are grouped per review.
var reviewSortColumns = map[string]string{
	"owner":          "reviews.owner",
	"title":          "reviews.title",
	"review_id":      "reviews.review_id",
	"category":       "reviews.category",
	"review_img_url": "reviews.review_img_url",
	"created_at":     "reviews.created_at",
	"votes":          "reviews.votes",
	"comment_id":     "comment_count",
}

const (
	DefaultSortBy = "created_at"
	DefaultOrder  = "asc"
)

// ReviewListColumns is the column order of rows produced by ReviewList.Select.
const ReviewListColumns = `reviews.review_id, reviews.title, reviews.designer, reviews.review_img_url,
		reviews.votes, reviews.category, reviews.owner, reviews.created_at,
		COUNT(comments.comment_id)::INT AS comment_count`

// ReviewListParams holds the raw query-string values of GET /api/reviews.
// Empty strings mean the parameter was not supplied.
type ReviewListParams struct {
	SortBy   string
	Order    string
	Category string
	Limit    string
	Page     string
}

// ReviewList is a validated reviews listing request.
type ReviewList struct {
	SortBy   string
	Order    string // "ASC" or "DESC"
	Category string
	Page
}

// ParseReviewList validates the raw listing parameters. Nothing here touches
// the database, so rejected requests never issue a query.
func ParseReviewList(p ReviewListParams, limits Limits) (*ReviewList, error) {
	sortBy := p.SortBy
	if sortBy == "" {
		sortBy = DefaultSortBy
	}
	if _, ok := reviewSortColumns[sortBy]; !ok {
		return nil, apperr.BadRequest("Invalid sort query, column %q does not exist", p.SortBy)
	}

	order := strings.ToLower(p.Order)
	if order == "" {
		order = DefaultOrder
	}
	if order != "asc" && order != "desc" {
		return nil, apperr.BadRequest("Invalid order by query, cannot order by %q", p.Order)
	}

	page, err := ParsePage(p.Limit, p.Page, limits)
	if err != nil {
		return nil, err
	}

	return &ReviewList{
		SortBy:   sortBy,
		Order:    strings.ToUpper(order),
		Category: p.Category,
		Page:     page,
	}, nil
}

func (l *ReviewList) predicates() Predicates {
	var preds Predicates
	if l.Category != "" {
		preds = preds.And(Eq("reviews.category", l.Category))
	}
	return preds
}

// Select builds the paged listing query. Rows tied on the sort column are
// ordered by review_id so pages never overlap.
func (l *ReviewList) Select() (string, []any, error) {
	var args Args
	where, err := l.predicates().Compile(&args)
	if err != nil {
		return "", nil, err
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(ReviewListColumns)
	sb.WriteString("\n\tFROM reviews\n\tLEFT JOIN comments ON comments.review_id = reviews.review_id")
	if where != "" {
		sb.WriteString("\n\t")
		sb.WriteString(where)
	}
	sb.WriteString("\n\tGROUP BY reviews.review_id")
	sb.WriteString("\n\tORDER BY ")
	sb.WriteString(reviewSortColumns[l.SortBy])
	sb.WriteString(" ")
	sb.WriteString(l.Order)
	if l.SortBy != "review_id" {
		sb.WriteString(", reviews.review_id ASC")
	}
	sb.WriteString("\n\tLIMIT ")
	sb.WriteString(args.Bind(l.Limit))
	sb.WriteString(" OFFSET ")
	sb.WriteString(args.Bind(l.Offset()))

	return sb.String(), args.Values(), nil
}

// Count builds the total-count query over the same predicates, without paging.
func (l *ReviewList) Count() (string, []any, error) {
	var args Args
	where, err := l.predicates().Compile(&args)
	if err != nil {
		return "", nil, err
	}

	q := "SELECT COUNT(*) FROM reviews"
	if where != "" {
		q += " " + where
	}
	return q, args.Values(), nil
}

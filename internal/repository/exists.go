package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/board-game-reviews-api/internal/database"
	"github.com/lib/pq"
)

// Ref names a column whose values other rows refer to
type Ref struct {
	Table  string
	Column string
}

// The only references the API checks. Identifiers never come from requests.
var (
	CategorySlug = Ref{Table: "categories", Column: "slug"}
	Username     = Ref{Table: "users", Column: "username"}
	ReviewID     = Ref{Table: "reviews", Column: "review_id"}
	CommentID    = Ref{Table: "comments", Column: "comment_id"}
)

func (r Ref) existsQuery() string {
	return fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1)",
		pq.QuoteIdentifier(r.Table), pq.QuoteIdentifier(r.Column))
}

type checker struct {
	db *database.DB
}

// NewChecker creates an existence checker
func NewChecker(db *database.DB) Checker {
	return &checker{db: db}
}

// Exists reports whether at least one row of ref's table has value in ref's column
func (c *checker) Exists(ctx context.Context, ref Ref, value any) (bool, error) {
	start := time.Now()
	var exists bool
	err := c.db.QueryRowContext(ctx, ref.existsQuery(), value).Scan(&exists)
	observe("exists", ref.Table, start, err)
	if err != nil {
		return false, fmt.Errorf("check %s.%s: %w", ref.Table, ref.Column, err)
	}
	return exists, nil
}

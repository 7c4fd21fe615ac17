package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/board-game-reviews-api/internal/database"
	"github.com/board-game-reviews-api/internal/models"
	"github.com/board-game-reviews-api/internal/query"
)

const reviewColumns = `review_id, title, review_body, designer, review_img_url, votes, category, owner, created_at`

// reviewReturning appends the derived comment count to an UPDATE's RETURNING list
const reviewReturning = reviewColumns +
	`, (SELECT COUNT(*) FROM comments WHERE comments.review_id = reviews.review_id)::INT AS comment_count`

const reviewByIDQuery = `
	SELECT reviews.review_id, reviews.title, reviews.review_body, reviews.designer,
		reviews.review_img_url, reviews.votes, reviews.category, reviews.owner, reviews.created_at,
		COUNT(comments.comment_id)::INT AS comment_count
	FROM reviews
	LEFT JOIN comments ON comments.review_id = reviews.review_id
	WHERE reviews.review_id = $1
	GROUP BY reviews.review_id
`

// reviewRepo is the concrete implementation of ReviewRepository
type reviewRepo struct {
	db *database.DB
}

// NewReviewRepo creates a new review repository
func NewReviewRepo(db *database.DB) ReviewRepository {
	return &reviewRepo{db: db}
}

func scanReview(s scanner) (*models.Review, error) {
	var r models.Review
	err := s.Scan(
		&r.ReviewID, &r.Title, &r.ReviewBody, &r.Designer, &r.ReviewImgURL,
		&r.Votes, &r.Category, &r.Owner, &r.CreatedAt, &r.CommentCount,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// scanReviewSummary reads a row shaped by query.ReviewListColumns
func scanReviewSummary(s scanner) (models.Review, error) {
	var r models.Review
	err := s.Scan(
		&r.ReviewID, &r.Title, &r.Designer, &r.ReviewImgURL,
		&r.Votes, &r.Category, &r.Owner, &r.CreatedAt, &r.CommentCount,
	)
	return r, err
}

// List returns one page of reviews and the number of reviews matching the filters
func (r *reviewRepo) List(ctx context.Context, list *query.ReviewList) ([]models.Review, int, error) {
	countSQL, countArgs, err := list.Count()
	if err != nil {
		return nil, 0, err
	}

	start := time.Now()
	var total int
	err = r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total)
	observe("count", "reviews", start, err)
	if err != nil {
		return nil, 0, fmt.Errorf("count reviews: %w", err)
	}

	reviews := make([]models.Review, 0, list.Limit)
	if total == 0 {
		return reviews, 0, nil
	}

	selectSQL, selectArgs, err := list.Select()
	if err != nil {
		return nil, 0, err
	}

	start = time.Now()
	rows, err := r.db.QueryContext(ctx, selectSQL, selectArgs...)
	observe("select", "reviews", start, err)
	if err != nil {
		return nil, 0, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		review, err := scanReviewSummary(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list reviews: %w", err)
	}

	return reviews, total, nil
}

// GetByID retrieves a review with its comment count
func (r *reviewRepo) GetByID(ctx context.Context, id string) (*models.Review, error) {
	start := time.Now()
	review, err := scanReview(r.db.QueryRowContext(ctx, reviewByIDQuery, id))
	observe("select", "reviews", start, ignoreNoRows(err))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get review %s: %w", id, err)
	}
	return review, nil
}

// Create inserts a review with zero votes
func (r *reviewRepo) Create(ctx context.Context, review *models.NewReview) (*models.Review, error) {
	imgURL := review.ReviewImgURL
	if imgURL == "" {
		imgURL = models.DefaultReviewImgURL
	}

	q := `
		INSERT INTO reviews (owner, title, review_body, designer, category, review_img_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + reviewColumns + `, 0`

	start := time.Now()
	created, err := scanReview(r.db.QueryRowContext(ctx, q,
		review.Owner, review.Title, review.ReviewBody, review.Designer, review.Category, imgURL,
	))
	observe("insert", "reviews", start, err)
	if err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	return created, nil
}

// Update applies a validated partial update in a single statement
func (r *reviewRepo) Update(ctx context.Context, id string, set []query.Assignment) (*models.Review, error) {
	q, args, err := query.Update("reviews", set, query.Predicates{query.Eq("review_id", id)}, reviewReturning)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	review, err := scanReview(r.db.QueryRowContext(ctx, q, args...))
	observe("update", "reviews", start, ignoreNoRows(err))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update review %s: %w", id, err)
	}
	return review, nil
}

// Delete removes a review and, through the foreign key, its comments
func (r *reviewRepo) Delete(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, r.db, ReviewID, id)
}

// BatchInsert inserts reviews with their ids using PostgreSQL COPY
func (r *reviewRepo) BatchInsert(ctx context.Context, reviews []*models.Review) (int, error) {
	rows := make([][]any, 0, len(reviews))
	for _, rv := range reviews {
		rows = append(rows, []any{
			rv.ReviewID, rv.Title, rv.ReviewBody, rv.Designer, rv.ReviewImgURL,
			rv.Votes, rv.Category, rv.Owner, rv.CreatedAt,
		})
	}
	return copyRows(ctx, r.db, "reviews", []string{
		"review_id", "title", "review_body", "designer", "review_img_url",
		"votes", "category", "owner", "created_at",
	}, rows, "review_id")
}

// deleteByID removes the row ref identifies, reporting whether one existed
func deleteByID(ctx context.Context, db *database.DB, ref Ref, id string) (bool, error) {
	q := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", ref.Table, ref.Column)

	start := time.Now()
	res, err := db.ExecContext(ctx, q, id)
	observe("delete", ref.Table, start, err)
	if err != nil {
		return false, fmt.Errorf("delete %s %s: %w", ref.Table, id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete %s %s: %w", ref.Table, id, err)
	}
	return n > 0, nil
}

// ignoreNoRows keeps a missing row out of the error metrics
func ignoreNoRows(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	return err
}

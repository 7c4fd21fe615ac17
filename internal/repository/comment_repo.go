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

const commentColumns = `comment_id, author, review_id, votes, created_at, body`

// commentRepo is the concrete implementation of CommentRepository
type commentRepo struct {
	db *database.DB
}

// NewCommentRepo creates a new comment repository
func NewCommentRepo(db *database.DB) CommentRepository {
	return &commentRepo{db: db}
}

func scanComment(s scanner) (*models.Comment, error) {
	var c models.Comment
	if err := s.Scan(&c.CommentID, &c.Author, &c.ReviewID, &c.Votes, &c.CreatedAt, &c.Body); err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByReview returns one page of a review's comments, newest first
func (r *commentRepo) ListByReview(ctx context.Context, reviewID string, page query.Page) ([]models.Comment, error) {
	var args query.Args
	where, err := query.Predicates{query.Eq("review_id", reviewID)}.Compile(&args)
	if err != nil {
		return nil, err
	}
	q := fmt.Sprintf("SELECT %s FROM comments %s ORDER BY created_at DESC, comment_id DESC LIMIT %s OFFSET %s",
		commentColumns, where, args.Bind(page.Limit), args.Bind(page.Offset()))

	start := time.Now()
	rows, err := r.db.QueryContext(ctx, q, args.Values()...)
	observe("select", "comments", start, err)
	if err != nil {
		return nil, fmt.Errorf("list comments of review %s: %w", reviewID, err)
	}
	defer rows.Close()

	comments := make([]models.Comment, 0, page.Limit)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list comments of review %s: %w", reviewID, err)
	}
	return comments, nil
}

// Create inserts a comment with zero votes
func (r *commentRepo) Create(ctx context.Context, reviewID string, comment *models.NewComment) (*models.Comment, error) {
	q := `
		INSERT INTO comments (review_id, author, body)
		VALUES ($1, $2, $3)
		RETURNING ` + commentColumns

	start := time.Now()
	created, err := scanComment(r.db.QueryRowContext(ctx, q, reviewID, comment.Username, comment.Body))
	observe("insert", "comments", start, err)
	if err != nil {
		return nil, fmt.Errorf("create comment on review %s: %w", reviewID, err)
	}
	return created, nil
}

// Update applies a validated partial update in a single statement
func (r *commentRepo) Update(ctx context.Context, id string, set []query.Assignment) (*models.Comment, error) {
	q, args, err := query.Update("comments", set, query.Predicates{query.Eq("comment_id", id)}, commentColumns)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	comment, err := scanComment(r.db.QueryRowContext(ctx, q, args...))
	observe("update", "comments", start, ignoreNoRows(err))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update comment %s: %w", id, err)
	}
	return comment, nil
}

// Delete removes a comment
func (r *commentRepo) Delete(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, r.db, CommentID, id)
}

// BatchInsert inserts comments with their ids using PostgreSQL COPY
func (r *commentRepo) BatchInsert(ctx context.Context, comments []*models.Comment) (int, error) {
	rows := make([][]any, 0, len(comments))
	for _, c := range comments {
		rows = append(rows, []any{c.CommentID, c.Body, c.ReviewID, c.Author, c.Votes, c.CreatedAt})
	}
	return copyRows(ctx, r.db, "comments",
		[]string{"comment_id", "body", "review_id", "author", "votes", "created_at"},
		rows, "comment_id")
}

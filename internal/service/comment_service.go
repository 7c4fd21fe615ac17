package service

import (
	"context"

	"github.com/board-game-reviews-api/internal/apperr"
	"github.com/board-game-reviews-api/internal/models"
	"github.com/board-game-reviews-api/internal/query"
	"github.com/board-game-reviews-api/internal/repository"
	"github.com/board-game-reviews-api/internal/validation"
	"github.com/rs/zerolog"
)

// commentService is the concrete implementation of CommentService
type commentService struct {
	repos     *repository.Repositories
	validator *validation.Validator
	limits    query.Limits
	log       zerolog.Logger
}

func newCommentService(repos *repository.Repositories, v *validation.Validator, limits query.Limits, log zerolog.Logger) *commentService {
	return &commentService{
		repos:     repos,
		validator: v,
		limits:    limits,
		log:       log.With().Str("service", "comment").Logger(),
	}
}

// ListComments returns a page of a review's comments, newest first
func (s *commentService) ListComments(ctx context.Context, reviewID, limit, page string) ([]models.Comment, error) {
	p, err := query.ParsePage(limit, page, s.limits)
	if err != nil {
		return nil, err
	}

	comments, err := s.repos.Comment.ListByReview(ctx, reviewID, p)
	if err != nil {
		return nil, apperr.FromDB(err, "review_id", reviewID)
	}
	if len(comments) == 0 {
		if err := s.requireReview(ctx, reviewID); err != nil {
			return nil, err
		}
	}
	return comments, nil
}

// PostComment validates the body, then checks the review and the author exist
func (s *commentService) PostComment(ctx context.Context, reviewID string, body Body) (*models.Comment, error) {
	var req models.NewComment
	if err := s.validator.DecodeCreate(body, &req); err != nil {
		return nil, err
	}

	if err := s.requireReview(ctx, reviewID); err != nil {
		return nil, err
	}
	if err := requireUser(ctx, s.repos.Checker, req.Username); err != nil {
		return nil, err
	}

	comment, err := s.repos.Comment.Create(ctx, reviewID, &req)
	if err != nil {
		return nil, apperr.FromDB(err, "username", req.Username)
	}

	s.log.Info().
		Int("comment_id", comment.CommentID).
		Int("review_id", comment.ReviewID).
		Str("author", comment.Author).
		Msg("Comment posted")
	return comment, nil
}

func (s *commentService) PatchComment(ctx context.Context, id string, body Body) (*models.Comment, error) {
	patch, err := validation.CommentPatch.Validate(body)
	if err != nil {
		return nil, err
	}

	comment, err := s.repos.Comment.Update(ctx, id, patch.Assignments)
	if err != nil {
		return nil, apperr.FromDB(err, "comment_id", id)
	}
	if comment == nil {
		return nil, commentNotFound(id)
	}
	return comment, nil
}

func (s *commentService) DeleteComment(ctx context.Context, id string) error {
	deleted, err := s.repos.Comment.Delete(ctx, id)
	if err != nil {
		return apperr.FromDB(err, "comment_id", id)
	}
	if !deleted {
		return commentNotFound(id)
	}

	s.log.Info().Str("comment_id", id).Msg("Comment deleted")
	return nil
}

func (s *commentService) requireReview(ctx context.Context, reviewID string) error {
	exists, err := s.repos.Checker.Exists(ctx, repository.ReviewID, reviewID)
	if err != nil {
		return apperr.FromDB(err, "review_id", reviewID)
	}
	if !exists {
		return reviewNotFound(reviewID)
	}
	return nil
}

func commentNotFound(id string) error {
	return apperr.NotFound("Comment id %s not found", id)
}

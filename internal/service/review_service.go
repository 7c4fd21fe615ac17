package service

import (
	"context"
	"errors"

	"github.com/board-game-reviews-api/internal/apperr"
	"github.com/board-game-reviews-api/internal/models"
	"github.com/board-game-reviews-api/internal/query"
	"github.com/board-game-reviews-api/internal/repository"
	"github.com/board-game-reviews-api/internal/validation"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// reviewService is the concrete implementation of ReviewService
type reviewService struct {
	repos     *repository.Repositories
	validator *validation.Validator
	limits    query.Limits
	log       zerolog.Logger
}

func newReviewService(repos *repository.Repositories, v *validation.Validator, limits query.Limits, log zerolog.Logger) *reviewService {
	return &reviewService{
		repos:     repos,
		validator: v,
		limits:    limits,
		log:       log.With().Str("service", "review").Logger(),
	}
}

// ListReviews returns a page of reviews. An empty result for a category
// filter is only an error when the category itself does not exist.
func (s *reviewService) ListReviews(ctx context.Context, params query.ReviewListParams) (*models.ReviewPage, error) {
	list, err := query.ParseReviewList(params, s.limits)
	if err != nil {
		return nil, err
	}

	reviews, total, err := s.repos.Review.List(ctx, list)
	if err != nil {
		return nil, err
	}

	if total == 0 && list.Category != "" {
		exists, err := s.repos.Checker.Exists(ctx, repository.CategorySlug, list.Category)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperr.NotFound("Category %q not found", list.Category)
		}
	}

	s.log.Debug().
		Str("sort_by", list.SortBy).
		Str("order", list.Order).
		Str("category", list.Category).
		Int("total", total).
		Msg("Listed reviews")

	return &models.ReviewPage{Reviews: reviews, TotalCount: total}, nil
}

func (s *reviewService) GetReview(ctx context.Context, id string) (*models.Review, error) {
	review, err := s.repos.Review.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.FromDB(err, "review_id", id)
	}
	if review == nil {
		return nil, reviewNotFound(id)
	}
	return review, nil
}

// CreateReview checks the owner and category before inserting
func (s *reviewService) CreateReview(ctx context.Context, body Body) (*models.Review, error) {
	var req models.NewReview
	if err := s.validator.DecodeCreate(body, &req); err != nil {
		return nil, err
	}

	if err := requireUser(ctx, s.repos.Checker, req.Owner); err != nil {
		return nil, err
	}
	exists, err := s.repos.Checker.Exists(ctx, repository.CategorySlug, req.Category)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("Category %q not found", req.Category)
	}

	review, err := s.repos.Review.Create(ctx, &req)
	if err != nil {
		return nil, createReviewError(err, &req)
	}

	s.log.Info().Int("review_id", review.ReviewID).Str("owner", review.Owner).Msg("Review created")
	return review, nil
}

func (s *reviewService) PatchReview(ctx context.Context, id string, body Body) (*models.Review, error) {
	patch, err := validation.ReviewPatch.Validate(body)
	if err != nil {
		return nil, err
	}

	review, err := s.repos.Review.Update(ctx, id, patch.Assignments)
	if err != nil {
		return nil, apperr.FromDB(err, "review_id", id)
	}
	if review == nil {
		return nil, reviewNotFound(id)
	}
	return review, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, id string) error {
	deleted, err := s.repos.Review.Delete(ctx, id)
	if err != nil {
		return apperr.FromDB(err, "review_id", id)
	}
	if !deleted {
		return reviewNotFound(id)
	}

	s.log.Info().Str("review_id", id).Msg("Review deleted")
	return nil
}

// createReviewError names the reference that disappeared between the
// existence checks and the insert.
func createReviewError(err error, req *models.NewReview) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Constraint == "reviews_owner_fkey" {
		return apperr.FromDB(err, "owner", req.Owner)
	}
	return apperr.FromDB(err, "category", req.Category)
}

func reviewNotFound(id string) error {
	return apperr.NotFound("Review id %s not found", id)
}

// requireUser rejects usernames that do not exist
func requireUser(ctx context.Context, checker repository.Checker, username string) error {
	exists, err := checker.Exists(ctx, repository.Username, username)
	if err != nil {
		return err
	}
	if !exists {
		return userNotFound(username)
	}
	return nil
}

func userNotFound(username string) error {
	return apperr.NotFound("Username %q not found", username)
}

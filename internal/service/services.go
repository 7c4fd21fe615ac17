package service

import (
	"context"
	"encoding/json"

	"github.com/board-game-reviews-api/internal/config"
	"github.com/board-game-reviews-api/internal/models"
	"github.com/board-game-reviews-api/internal/query"
	"github.com/board-game-reviews-api/internal/repository"
	"github.com/board-game-reviews-api/internal/validation"
	"github.com/rs/zerolog"
)

// Body is a decoded JSON object whose values are validated per property
type Body = map[string]json.RawMessage

// ReviewService defines the interface for review operations
type ReviewService interface {
	ListReviews(ctx context.Context, params query.ReviewListParams) (*models.ReviewPage, error)
	GetReview(ctx context.Context, id string) (*models.Review, error)
	CreateReview(ctx context.Context, body Body) (*models.Review, error)
	PatchReview(ctx context.Context, id string, body Body) (*models.Review, error)
	DeleteReview(ctx context.Context, id string) error
}

// CommentService defines the interface for comment operations
type CommentService interface {
	ListComments(ctx context.Context, reviewID, limit, page string) ([]models.Comment, error)
	PostComment(ctx context.Context, reviewID string, body Body) (*models.Comment, error)
	PatchComment(ctx context.Context, id string, body Body) (*models.Comment, error)
	DeleteComment(ctx context.Context, id string) error
}

// UserService defines the interface for user operations
type UserService interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, body Body) (*models.User, error)
	PatchUser(ctx context.Context, username string, body Body) (*models.User, error)
}

// CategoryService defines the interface for category operations
type CategoryService interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, body Body) (*models.Category, error)
}

// HealthService reports whether the database is reachable
type HealthService interface {
	Check(ctx context.Context) error
}

// Pinger is satisfied by *database.DB
type Pinger interface {
	HealthCheck(ctx context.Context) error
}

// Services holds all service interfaces
type Services struct {
	Review   ReviewService
	Comment  CommentService
	User     UserService
	Category CategoryService
	Health   HealthService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, db Pinger, cfg *config.Config, log zerolog.Logger) *Services {
	v := validation.NewValidator()
	limits := query.Limits{Default: cfg.API.DefaultLimit, Max: cfg.API.MaxLimit}

	return &Services{
		Review:   newReviewService(repos, v, limits, log),
		Comment:  newCommentService(repos, v, limits, log),
		User:     newUserService(repos, v, log),
		Category: newCategoryService(repos, v, log),
		Health:   &healthService{db: db},
	}
}

type healthService struct {
	db Pinger
}

func (s *healthService) Check(ctx context.Context) error {
	return s.db.HealthCheck(ctx)
}

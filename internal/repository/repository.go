package repository

import (
	"context"
	"time"

	"github.com/board-game-reviews-api/internal/database"
	"github.com/board-game-reviews-api/internal/metrics"
	"github.com/board-game-reviews-api/internal/models"
	"github.com/board-game-reviews-api/internal/query"
)

// Checker answers whether a referenced row exists
type Checker interface {
	Exists(ctx context.Context, ref Ref, value any) (bool, error)
}

// ReviewRepository defines the interface for review data operations.
// Lookups by id return nil, nil when no row matches.
type ReviewRepository interface {
	List(ctx context.Context, list *query.ReviewList) ([]models.Review, int, error)
	GetByID(ctx context.Context, id string) (*models.Review, error)
	Create(ctx context.Context, review *models.NewReview) (*models.Review, error)
	Update(ctx context.Context, id string, set []query.Assignment) (*models.Review, error)
	Delete(ctx context.Context, id string) (bool, error)
	BatchInsert(ctx context.Context, reviews []*models.Review) (int, error)
}

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	ListByReview(ctx context.Context, reviewID string, page query.Page) ([]models.Comment, error)
	Create(ctx context.Context, reviewID string, comment *models.NewComment) (*models.Comment, error)
	Update(ctx context.Context, id string, set []query.Assignment) (*models.Comment, error)
	Delete(ctx context.Context, id string) (bool, error)
	BatchInsert(ctx context.Context, comments []*models.Comment) (int, error)
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	List(ctx context.Context) ([]models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.NewUser) (*models.User, error)
	Update(ctx context.Context, username string, set []query.Assignment) (*models.User, error)
	BatchInsert(ctx context.Context, users []*models.User) (int, error)
}

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	List(ctx context.Context) ([]models.Category, error)
	Create(ctx context.Context, category *models.NewCategory) (*models.Category, error)
	BatchInsert(ctx context.Context, categories []*models.Category) (int, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Checker  Checker
	Review   ReviewRepository
	Comment  CommentRepository
	User     UserRepository
	Category CategoryRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Checker:  NewChecker(db),
		Review:   NewReviewRepo(db),
		Comment:  NewCommentRepo(db),
		User:     NewUserRepo(db),
		Category: NewCategoryRepo(db),
	}
}

// scanner is satisfied by *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

// observe records the duration and outcome of a query
func observe(operation, table string, start time.Time, err error) {
	metrics.RecordDBQuery(operation, table, time.Since(start), err)
}

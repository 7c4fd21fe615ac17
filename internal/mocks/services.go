package mocks

import (
	"context"

	"github.com/board-game-reviews-api/internal/apperr"
	"github.com/board-game-reviews-api/internal/models"
	"github.com/board-game-reviews-api/internal/query"
	"github.com/board-game-reviews-api/internal/service"
)

// MockReviewService is a mock implementation of ReviewService
type MockReviewService struct {
	ListFunc   func(ctx context.Context, params query.ReviewListParams) (*models.ReviewPage, error)
	GetFunc    func(ctx context.Context, id string) (*models.Review, error)
	CreateFunc func(ctx context.Context, body service.Body) (*models.Review, error)
	PatchFunc  func(ctx context.Context, id string, body service.Body) (*models.Review, error)
	DeleteFunc func(ctx context.Context, id string) error

	ListParams []query.ReviewListParams
	Bodies     []service.Body
}

// Verify interface compliance
var _ service.ReviewService = (*MockReviewService)(nil)

func NewMockReviewService() *MockReviewService {
	return &MockReviewService{}
}

func (m *MockReviewService) ListReviews(ctx context.Context, params query.ReviewListParams) (*models.ReviewPage, error) {
	m.ListParams = append(m.ListParams, params)
	if m.ListFunc != nil {
		return m.ListFunc(ctx, params)
	}
	return &models.ReviewPage{Reviews: []models.Review{}}, nil
}

func (m *MockReviewService) GetReview(ctx context.Context, id string) (*models.Review, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return &models.Review{}, nil
}

func (m *MockReviewService) CreateReview(ctx context.Context, body service.Body) (*models.Review, error) {
	m.Bodies = append(m.Bodies, body)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, body)
	}
	return &models.Review{}, nil
}

func (m *MockReviewService) PatchReview(ctx context.Context, id string, body service.Body) (*models.Review, error) {
	m.Bodies = append(m.Bodies, body)
	if m.PatchFunc != nil {
		return m.PatchFunc(ctx, id, body)
	}
	return &models.Review{}, nil
}

func (m *MockReviewService) DeleteReview(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockCommentService is a mock implementation of CommentService
type MockCommentService struct {
	ListFunc   func(ctx context.Context, reviewID, limit, page string) ([]models.Comment, error)
	PostFunc   func(ctx context.Context, reviewID string, body service.Body) (*models.Comment, error)
	PatchFunc  func(ctx context.Context, id string, body service.Body) (*models.Comment, error)
	DeleteFunc func(ctx context.Context, id string) error
}

// Verify interface compliance
var _ service.CommentService = (*MockCommentService)(nil)

func NewMockCommentService() *MockCommentService {
	return &MockCommentService{}
}

func (m *MockCommentService) ListComments(ctx context.Context, reviewID, limit, page string) ([]models.Comment, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, reviewID, limit, page)
	}
	return []models.Comment{}, nil
}

func (m *MockCommentService) PostComment(ctx context.Context, reviewID string, body service.Body) (*models.Comment, error) {
	if m.PostFunc != nil {
		return m.PostFunc(ctx, reviewID, body)
	}
	return &models.Comment{}, nil
}

func (m *MockCommentService) PatchComment(ctx context.Context, id string, body service.Body) (*models.Comment, error) {
	if m.PatchFunc != nil {
		return m.PatchFunc(ctx, id, body)
	}
	return &models.Comment{}, nil
}

func (m *MockCommentService) DeleteComment(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockUserService is a mock implementation of UserService
type MockUserService struct {
	Users      map[string]*models.User
	CreateFunc func(ctx context.Context, body service.Body) (*models.User, error)
	PatchFunc  func(ctx context.Context, username string, body service.Body) (*models.User, error)
}

// Verify interface compliance
var _ service.UserService = (*MockUserService)(nil)

func NewMockUserService() *MockUserService {
	return &MockUserService{Users: make(map[string]*models.User)}
}

func (m *MockUserService) ListUsers(ctx context.Context) ([]models.User, error) {
	users := make([]models.User, 0, len(m.Users))
	for _, u := range m.Users {
		users = append(users, *u)
	}
	return users, nil
}

func (m *MockUserService) GetUser(ctx context.Context, username string) (*models.User, error) {
	if u, ok := m.Users[username]; ok {
		return u, nil
	}
	return nil, apperr.NotFound("Username %q not found", username)
}

func (m *MockUserService) CreateUser(ctx context.Context, body service.Body) (*models.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, body)
	}
	return &models.User{}, nil
}

func (m *MockUserService) PatchUser(ctx context.Context, username string, body service.Body) (*models.User, error) {
	if m.PatchFunc != nil {
		return m.PatchFunc(ctx, username, body)
	}
	return &models.User{}, nil
}

// MockCategoryService is a mock implementation of CategoryService
type MockCategoryService struct {
	Categories []models.Category
	CreateFunc func(ctx context.Context, body service.Body) (*models.Category, error)
}

// Verify interface compliance
var _ service.CategoryService = (*MockCategoryService)(nil)

func NewMockCategoryService() *MockCategoryService {
	return &MockCategoryService{Categories: []models.Category{}}
}

func (m *MockCategoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return m.Categories, nil
}

func (m *MockCategoryService) CreateCategory(ctx context.Context, body service.Body) (*models.Category, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, body)
	}
	return &models.Category{}, nil
}

// MockHealthService is a mock implementation of HealthService
type MockHealthService struct {
	Err error
}

// Verify interface compliance
var _ service.HealthService = (*MockHealthService)(nil)

func (m *MockHealthService) Check(ctx context.Context) error {
	return m.Err
}

var _ service.Pinger = (*MockHealthService)(nil)

// HealthCheck lets MockHealthService stand in for the database
func (m *MockHealthService) HealthCheck(ctx context.Context) error {
	return m.Err
}

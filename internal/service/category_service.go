package service

import (
	"context"

	"github.com/board-game-reviews-api/internal/apperr"
	"github.com/board-game-reviews-api/internal/models"
	"github.com/board-game-reviews-api/internal/repository"
	"github.com/board-game-reviews-api/internal/validation"
	"github.com/rs/zerolog"
)

type categoryService struct {
	repos     *repository.Repositories
	validator *validation.Validator
	log       zerolog.Logger
}

func newCategoryService(repos *repository.Repositories, v *validation.Validator, log zerolog.Logger) *categoryService {
	return &categoryService{
		repos:     repos,
		validator: v,
		log:       log.With().Str("service", "category").Logger(),
	}
}

func (s *categoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.repos.Category.List(ctx)
}

func (s *categoryService) CreateCategory(ctx context.Context, body Body) (*models.Category, error) {
	var req models.NewCategory
	if err := s.validator.DecodeCreate(body, &req); err != nil {
		return nil, err
	}

	category, err := s.repos.Category.Create(ctx, &req)
	if err != nil {
		return nil, apperr.FromDB(err, "slug", req.Slug)
	}

	s.log.Info().Str("slug", category.Slug).Msg("Category created")
	return category, nil
}

package service

import (
	"context"

	"github.com/board-game-reviews-api/internal/apperr"
	"github.com/board-game-reviews-api/internal/models"
	"github.com/board-game-reviews-api/internal/repository"
	"github.com/board-game-reviews-api/internal/validation"
	"github.com/rs/zerolog"
)

type userService struct {
	repos     *repository.Repositories
	validator *validation.Validator
	log       zerolog.Logger
}

func newUserService(repos *repository.Repositories, v *validation.Validator, log zerolog.Logger) *userService {
	return &userService{
		repos:     repos,
		validator: v,
		log:       log.With().Str("service", "user").Logger(),
	}
}

func (s *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.repos.User.List(ctx)
}

func (s *userService) GetUser(ctx context.Context, username string) (*models.User, error) {
	user, err := s.repos.User.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, userNotFound(username)
	}
	return user, nil
}

// CreateUser inserts a user; a taken username is a conflict
func (s *userService) CreateUser(ctx context.Context, body Body) (*models.User, error) {
	var req models.NewUser
	if err := s.validator.DecodeCreate(body, &req); err != nil {
		return nil, err
	}

	user, err := s.repos.User.Create(ctx, &req)
	if err != nil {
		return nil, apperr.FromDB(err, "username", req.Username)
	}

	s.log.Info().Str("username", user.Username).Msg("User created")
	return user, nil
}

func (s *userService) PatchUser(ctx context.Context, username string, body Body) (*models.User, error) {
	patch, err := validation.UserPatch.Validate(body)
	if err != nil {
		return nil, err
	}

	user, err := s.repos.User.Update(ctx, username, patch.Assignments)
	if err != nil {
		return nil, apperr.FromDB(err, "username", username)
	}
	if user == nil {
		return nil, userNotFound(username)
	}
	return user, nil
}

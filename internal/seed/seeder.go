package seed

import (
	"context"
	"fmt"

	"github.com/board-game-reviews-api/internal/database"
	"github.com/board-game-reviews-api/internal/repository"
	"github.com/rs/zerolog"
)

const truncateAll = `TRUNCATE comments, reviews, users, categories RESTART IDENTITY CASCADE`

// Seeder replaces the database content with a dataset
type Seeder struct {
	db    *database.DB
	repos *repository.Repositories
	log   zerolog.Logger
}

// New creates a seeder
func New(db *database.DB, repos *repository.Repositories, log zerolog.Logger) *Seeder {
	return &Seeder{
		db:    db,
		repos: repos,
		log:   log.With().Str("component", "seed").Logger(),
	}
}

// Run empties every table and inserts ds
func (s *Seeder) Run(ctx context.Context, ds *Dataset) error {
	comments, err := ds.ResolveComments()
	if err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, truncateAll); err != nil {
		return fmt.Errorf("truncate tables: %w", err)
	}

	categories, err := s.repos.Category.BatchInsert(ctx, ds.Categories)
	if err != nil {
		return err
	}
	users, err := s.repos.User.BatchInsert(ctx, ds.Users)
	if err != nil {
		return err
	}
	reviews, err := s.repos.Review.BatchInsert(ctx, ds.Reviews)
	if err != nil {
		return err
	}
	inserted, err := s.repos.Comment.BatchInsert(ctx, comments)
	if err != nil {
		return err
	}

	s.log.Info().
		Int("categories", categories).
		Int("users", users).
		Int("reviews", reviews).
		Int("comments", inserted).
		Msg("Database seeded")
	return nil
}

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

const userColumns = `username, name, avatar_url`

// userRepo is the concrete implementation of UserRepository
type userRepo struct {
	db *database.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *database.DB) UserRepository {
	return &userRepo{db: db}
}

func scanUser(s scanner) (*models.User, error) {
	var u models.User
	if err := s.Scan(&u.Username, &u.Name, &u.AvatarURL); err != nil {
		return nil, err
	}
	return &u, nil
}

// List returns all users ordered by username
func (r *userRepo) List(ctx context.Context) ([]models.User, error) {
	start := time.Now()
	rows, err := r.db.QueryContext(ctx, "SELECT "+userColumns+" FROM users ORDER BY username")
	observe("select", "users", start, err)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// GetByUsername retrieves a user
func (r *userRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	start := time.Now()
	user, err := scanUser(r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username = $1", username))
	observe("select", "users", start, ignoreNoRows(err))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", username, err)
	}
	return user, nil
}

// Create inserts a new user
func (r *userRepo) Create(ctx context.Context, user *models.NewUser) (*models.User, error) {
	q := `
		INSERT INTO users (username, name, avatar_url)
		VALUES ($1, $2, $3)
		RETURNING ` + userColumns

	start := time.Now()
	created, err := scanUser(r.db.QueryRowContext(ctx, q, user.Username, user.Name, user.AvatarURL))
	observe("insert", "users", start, err)
	if err != nil {
		return nil, fmt.Errorf("create user %s: %w", user.Username, err)
	}
	return created, nil
}

// Update applies a validated partial update in a single statement
func (r *userRepo) Update(ctx context.Context, username string, set []query.Assignment) (*models.User, error) {
	q, args, err := query.Update("users", set, query.Predicates{query.Eq("username", username)}, userColumns)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	user, err := scanUser(r.db.QueryRowContext(ctx, q, args...))
	observe("update", "users", start, ignoreNoRows(err))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update user %s: %w", username, err)
	}
	return user, nil
}

// BatchInsert inserts multiple users using PostgreSQL COPY for efficiency
func (r *userRepo) BatchInsert(ctx context.Context, users []*models.User) (int, error) {
	rows := make([][]any, 0, len(users))
	for _, u := range users {
		rows = append(rows, []any{u.Username, u.Name, u.AvatarURL})
	}
	return copyRows(ctx, r.db, "users", []string{"username", "name", "avatar_url"}, rows, "")
}

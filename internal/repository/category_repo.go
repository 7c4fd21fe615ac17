package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/board-game-reviews-api/internal/database"
	"github.com/board-game-reviews-api/internal/models"
)

type categoryRepo struct {
	db *database.DB
}

// NewCategoryRepo creates a new category repository
func NewCategoryRepo(db *database.DB) CategoryRepository {
	return &categoryRepo{db: db}
}

// List returns all categories ordered by slug
func (r *categoryRepo) List(ctx context.Context) ([]models.Category, error) {
	start := time.Now()
	rows, err := r.db.QueryContext(ctx, "SELECT slug, description FROM categories ORDER BY slug")
	observe("select", "categories", start, err)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]models.Category, 0)
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.Slug, &c.Description); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// Create inserts a new category
func (r *categoryRepo) Create(ctx context.Context, category *models.NewCategory) (*models.Category, error) {
	start := time.Now()
	var c models.Category
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO categories (slug, description) VALUES ($1, $2) RETURNING slug, description",
		category.Slug, category.Description,
	).Scan(&c.Slug, &c.Description)
	observe("insert", "categories", start, err)
	if err != nil {
		return nil, fmt.Errorf("create category %s: %w", category.Slug, err)
	}
	return &c, nil
}

// BatchInsert inserts categories using PostgreSQL COPY
func (r *categoryRepo) BatchInsert(ctx context.Context, categories []*models.Category) (int, error) {
	rows := make([][]any, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, []any{c.Slug, c.Description})
	}
	return copyRows(ctx, r.db, "categories", []string{"slug", "description"}, rows, "")
}

package postgres

import (
	"context"
	"fmt"

	"github.com/clinicdesk/booking-api/internal/model"
)

func (r *categoryRepository) Create(ctx context.Context, category *model.Category) error {
	query := `INSERT INTO categories (name) VALUES ($1) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query, category.Name).Scan(&category.ID); err != nil {
		return translateError(err, "category")
	}
	return nil
}

func (r *categoryRepository) Get(ctx context.Context, id int64) (*model.Category, error) {
	query := `SELECT id, name FROM categories WHERE id = $1`
	var category model.Category
	if err := r.db.GetContext(ctx, &category, query, id); err != nil {
		return nil, translateError(err, "category")
	}
	return &category, nil
}

func (r *categoryRepository) GetByName(ctx context.Context, name string) (*model.Category, error) {
	query := `SELECT id, name FROM categories WHERE name = $1`
	var category model.Category
	if err := r.db.GetContext(ctx, &category, query, name); err != nil {
		return nil, translateError(err, "category")
	}
	return &category, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *model.Category) error {
	query := `UPDATE categories SET name = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, category.Name, category.ID)
	if err != nil {
		return translateError(err, "category")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return translateErrorNoRows("category")
	}
	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM categories WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return translateError(err, "category")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return translateErrorNoRows("category")
	}
	return nil
}

func (r *categoryRepository) List(ctx context.Context) ([]*model.Category, error) {
	query := `SELECT id, name FROM categories ORDER BY name ASC`
	var categories []*model.Category
	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

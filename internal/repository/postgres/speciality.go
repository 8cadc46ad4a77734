package postgres

import (
	"context"
	"fmt"

	"github.com/clinicdesk/booking-api/internal/model"
)

func (r *specialityRepository) Create(ctx context.Context, speciality *model.Speciality) error {
	query := `INSERT INTO specialities (name) VALUES ($1) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query, speciality.Name).Scan(&speciality.ID); err != nil {
		return translateError(err, "speciality")
	}
	return nil
}

func (r *specialityRepository) Get(ctx context.Context, id int64) (*model.Speciality, error) {
	query := `SELECT id, name FROM specialities WHERE id = $1`
	var speciality model.Speciality
	if err := r.db.GetContext(ctx, &speciality, query, id); err != nil {
		return nil, translateError(err, "speciality")
	}
	return &speciality, nil
}

func (r *specialityRepository) GetByName(ctx context.Context, name string) (*model.Speciality, error) {
	query := `SELECT id, name FROM specialities WHERE name = $1`
	var speciality model.Speciality
	if err := r.db.GetContext(ctx, &speciality, query, name); err != nil {
		return nil, translateError(err, "speciality")
	}
	return &speciality, nil
}

func (r *specialityRepository) Update(ctx context.Context, speciality *model.Speciality) error {
	query := `UPDATE specialities SET name = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, speciality.Name, speciality.ID)
	if err != nil {
		return translateError(err, "speciality")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return translateErrorNoRows("speciality")
	}
	return nil
}

func (r *specialityRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM specialities WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return translateError(err, "speciality")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return translateErrorNoRows("speciality")
	}
	return nil
}

func (r *specialityRepository) List(ctx context.Context) ([]*model.Speciality, error) {
	query := `SELECT id, name FROM specialities ORDER BY name ASC`
	var specialities []*model.Speciality
	if err := r.db.SelectContext(ctx, &specialities, query); err != nil {
		return nil, fmt.Errorf("failed to list specialities: %w", err)
	}
	return specialities, nil
}

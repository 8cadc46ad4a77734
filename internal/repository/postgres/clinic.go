package postgres

import (
	"context"
	"fmt"

	"github.com/clinicdesk/booking-api/internal/model"
)

func (r *clinicRepository) Create(ctx context.Context, clinic *model.Clinic) error {
	query := `
		INSERT INTO clinics (name, address)
		VALUES ($1, $2)
		RETURNING id
	`
	err := r.db.QueryRowxContext(ctx, query, clinic.Name, clinic.Address).Scan(&clinic.ID)
	if err != nil {
		return translateError(err, "clinic")
	}
	return nil
}

func (r *clinicRepository) Get(ctx context.Context, id int64) (*model.Clinic, error) {
	query := `SELECT id, name, address FROM clinics WHERE id = $1`
	var clinic model.Clinic
	if err := r.db.GetContext(ctx, &clinic, query, id); err != nil {
		return nil, translateError(err, "clinic")
	}
	return &clinic, nil
}

func (r *clinicRepository) GetByName(ctx context.Context, name string) (*model.Clinic, error) {
	query := `SELECT id, name, address FROM clinics WHERE name = $1`
	var clinic model.Clinic
	if err := r.db.GetContext(ctx, &clinic, query, name); err != nil {
		return nil, translateError(err, "clinic")
	}
	return &clinic, nil
}

func (r *clinicRepository) Update(ctx context.Context, clinic *model.Clinic) error {
	query := `UPDATE clinics SET name = $1, address = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, clinic.Name, clinic.Address, clinic.ID)
	if err != nil {
		return translateError(err, "clinic")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return translateErrorNoRows("clinic")
	}
	return nil
}

func (r *clinicRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM clinics WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return translateError(err, "clinic")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return translateErrorNoRows("clinic")
	}
	return nil
}

func (r *clinicRepository) List(ctx context.Context) ([]*model.Clinic, error) {
	query := `SELECT id, name, address FROM clinics ORDER BY name ASC`
	var clinics []*model.Clinic
	if err := r.db.SelectContext(ctx, &clinics, query); err != nil {
		return nil, fmt.Errorf("failed to list clinics: %w", err)
	}
	return clinics, nil
}

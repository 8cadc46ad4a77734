package postgres

import (
	"context"
	"fmt"

	"github.com/clinicdesk/booking-api/internal/model"
)

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	query := `
		INSERT INTO patients (first_name, last_name, email, birth_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.db.QueryRowxContext(ctx, query,
		patient.FirstName,
		patient.LastName,
		patient.Email,
		patient.BirthDate,
	).Scan(&patient.ID)
	if err != nil {
		return translateError(err, "patient")
	}
	return nil
}

func (r *patientRepository) Get(ctx context.Context, id int64) (*model.Patient, error) {
	query := `
		SELECT id, first_name, last_name, email, birth_date
		FROM patients
		WHERE id = $1
	`
	var patient model.Patient
	if err := r.db.GetContext(ctx, &patient, query, id); err != nil {
		return nil, translateError(err, "patient")
	}
	return &patient, nil
}

func (r *patientRepository) GetByEmail(ctx context.Context, email string) (*model.Patient, error) {
	query := `
		SELECT id, first_name, last_name, email, birth_date
		FROM patients
		WHERE lower(email) = lower($1)
	`
	var patient model.Patient
	if err := r.db.GetContext(ctx, &patient, query, email); err != nil {
		return nil, translateError(err, "patient")
	}
	return &patient, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	query := `
		UPDATE patients
		SET first_name = $1, last_name = $2, email = $3, birth_date = $4
		WHERE id = $5
	`
	result, err := r.db.ExecContext(ctx, query,
		patient.FirstName,
		patient.LastName,
		patient.Email,
		patient.BirthDate,
		patient.ID,
	)
	if err != nil {
		return translateError(err, "patient")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return translateErrorNoRows("patient")
	}
	return nil
}

func (r *patientRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM patients WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return translateError(err, "patient")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return translateErrorNoRows("patient")
	}
	return nil
}

func (r *patientRepository) List(ctx context.Context) ([]*model.Patient, error) {
	query := `
		SELECT id, first_name, last_name, email, birth_date
		FROM patients
		ORDER BY last_name ASC, first_name ASC
	`
	var patients []*model.Patient
	if err := r.db.SelectContext(ctx, &patients, query); err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

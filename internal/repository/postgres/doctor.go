package postgres

import (
	"context"
	"fmt"

	"github.com/clinicdesk/booking-api/internal/model"
)

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	query := `
		INSERT INTO doctors (first_name, last_name, clinic_id, speciality_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.db.QueryRowxContext(ctx, query,
		doctor.FirstName,
		doctor.LastName,
		doctor.ClinicID,
		doctor.SpecialityID,
	).Scan(&doctor.ID)
	if err != nil {
		return translateError(err, "doctor")
	}
	return nil
}

func (r *doctorRepository) Get(ctx context.Context, id int64) (*model.Doctor, error) {
	query := `
		SELECT id, first_name, last_name, clinic_id, speciality_id
		FROM doctors
		WHERE id = $1
	`
	var doctor model.Doctor
	if err := r.db.GetContext(ctx, &doctor, query, id); err != nil {
		return nil, translateError(err, "doctor")
	}
	return &doctor, nil
}

func (r *doctorRepository) GetByTuple(ctx context.Context, firstName, lastName string, clinicID, specialityID int64) (*model.Doctor, error) {
	query := `
		SELECT id, first_name, last_name, clinic_id, speciality_id
		FROM doctors
		WHERE first_name = $1 AND last_name = $2 AND clinic_id = $3 AND speciality_id = $4
	`
	var doctor model.Doctor
	if err := r.db.GetContext(ctx, &doctor, query, firstName, lastName, clinicID, specialityID); err != nil {
		return nil, translateError(err, "doctor")
	}
	return &doctor, nil
}

func (r *doctorRepository) Update(ctx context.Context, doctor *model.Doctor) error {
	query := `
		UPDATE doctors
		SET first_name = $1, last_name = $2, clinic_id = $3, speciality_id = $4
		WHERE id = $5
	`
	result, err := r.db.ExecContext(ctx, query,
		doctor.FirstName,
		doctor.LastName,
		doctor.ClinicID,
		doctor.SpecialityID,
		doctor.ID,
	)
	if err != nil {
		return translateError(err, "doctor")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return translateErrorNoRows("doctor")
	}
	return nil
}

func (r *doctorRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM doctors WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return translateError(err, "doctor")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return translateErrorNoRows("doctor")
	}
	return nil
}

func (r *doctorRepository) List(ctx context.Context) ([]*model.Doctor, error) {
	query := `
		SELECT id, first_name, last_name, clinic_id, speciality_id
		FROM doctors
		ORDER BY last_name ASC, first_name ASC
	`
	var doctors []*model.Doctor
	if err := r.db.SelectContext(ctx, &doctors, query); err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

func (r *doctorRepository) CountByClinic(ctx context.Context, clinicID int64) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM doctors WHERE clinic_id = $1`, clinicID); err != nil {
		return 0, fmt.Errorf("failed to count doctors by clinic: %w", err)
	}
	return count, nil
}

func (r *doctorRepository) CountBySpeciality(ctx context.Context, specialityID int64) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM doctors WHERE speciality_id = $1`, specialityID); err != nil {
		return 0, fmt.Errorf("failed to count doctors by speciality: %w", err)
	}
	return count, nil
}

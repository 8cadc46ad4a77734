package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/clinicdesk/booking-api/internal/model"
	"github.com/clinicdesk/booking-api/pkg/errors"
)

const appointmentDetailQuery = `
	SELECT a.id, a.patient_id, a.doctor_id, a.clinic_id, a.category_id,
		   a.start_utc, a.duration_minutes,
		   p.first_name AS patient_first_name, p.last_name AS patient_last_name,
		   d.first_name AS doctor_first_name, d.last_name AS doctor_last_name,
		   d.speciality_id AS speciality_id, s.name AS speciality_name,
		   c.name AS clinic_name, cat.name AS category_name
	FROM appointments a
	JOIN patients p ON p.id = a.patient_id
	JOIN doctors d ON d.id = a.doctor_id
	JOIN specialities s ON s.id = d.speciality_id
	JOIN clinics c ON c.id = a.clinic_id
	JOIN categories cat ON cat.id = a.category_id
`

// Create inserts the appointment inside a transaction that first locks the
// patient+clinic rows and re-runs the overlap predicate, so two concurrent
// bookings for the same slot serialize and the loser gets a conflict.
func (r *appointmentRepository) Create(ctx context.Context, apt *model.Appointment) (err error) {
	start := time.Now()
	defer func() { r.observe("appointment_create", start, err) }()

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := lockAndCheckOverlap(ctx, tx, apt, 0); err != nil {
			return err
		}

		query := `
			INSERT INTO appointments (patient_id, doctor_id, clinic_id, category_id, start_utc, duration_minutes)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`
		err := tx.QueryRowxContext(ctx, query,
			apt.PatientID,
			apt.DoctorID,
			apt.ClinicID,
			apt.CategoryID,
			apt.StartUTC,
			apt.DurationMinutes,
		).Scan(&apt.ID)
		if err != nil {
			return translateError(err, "appointment")
		}
		return nil
	})
}

func (r *appointmentRepository) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	query := `
		SELECT id, patient_id, doctor_id, clinic_id, category_id, start_utc, duration_minutes
		FROM appointments
		WHERE id = $1
	`
	var apt model.Appointment
	if err := r.db.GetContext(ctx, &apt, query, id); err != nil {
		return nil, translateError(err, "appointment")
	}
	return &apt, nil
}

func (r *appointmentRepository) GetDetail(ctx context.Context, id int64) (*model.AppointmentDetail, error) {
	query := appointmentDetailQuery + ` WHERE a.id = $1`
	var detail model.AppointmentDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		return nil, translateError(err, "appointment")
	}
	return &detail, nil
}

func (r *appointmentRepository) ListDetails(ctx context.Context) ([]*model.AppointmentDetail, error) {
	query := appointmentDetailQuery + ` ORDER BY a.start_utc ASC`
	var details []*model.AppointmentDetail
	if err := r.db.SelectContext(ctx, &details, query); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return details, nil
}

func (r *appointmentRepository) ListForPatientClinic(ctx context.Context, patientID, clinicID int64) ([]*model.Appointment, error) {
	query := `
		SELECT id, patient_id, doctor_id, clinic_id, category_id, start_utc, duration_minutes
		FROM appointments
		WHERE patient_id = $1 AND clinic_id = $2
		ORDER BY start_utc ASC
	`
	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, patientID, clinicID); err != nil {
		return nil, fmt.Errorf("failed to list appointments for patient and clinic: %w", err)
	}
	return appointments, nil
}

// Update overwrites the row with the same transactional overlap re-check as
// Create, excluding the appointment itself from the scan.
func (r *appointmentRepository) Update(ctx context.Context, apt *model.Appointment) (err error) {
	start := time.Now()
	defer func() { r.observe("appointment_update", start, err) }()

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := lockAndCheckOverlap(ctx, tx, apt, apt.ID); err != nil {
			return err
		}

		query := `
			UPDATE appointments
			SET patient_id = $1, doctor_id = $2, clinic_id = $3, category_id = $4,
				start_utc = $5, duration_minutes = $6
			WHERE id = $7
		`
		result, err := tx.ExecContext(ctx, query,
			apt.PatientID,
			apt.DoctorID,
			apt.ClinicID,
			apt.CategoryID,
			apt.StartUTC,
			apt.DurationMinutes,
			apt.ID,
		)
		if err != nil {
			return translateError(err, "appointment")
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rows == 0 {
			return translateErrorNoRows("appointment")
		}
		return nil
	})
}

func (r *appointmentRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM appointments WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return translateError(err, "appointment")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return translateErrorNoRows("appointment")
	}
	return nil
}

func (r *appointmentRepository) CountByClinic(ctx context.Context, clinicID int64) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM appointments WHERE clinic_id = $1`, clinicID)
}

func (r *appointmentRepository) CountByDoctor(ctx context.Context, doctorID int64) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM appointments WHERE doctor_id = $1`, doctorID)
}

func (r *appointmentRepository) CountByPatient(ctx context.Context, patientID int64) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM appointments WHERE patient_id = $1`, patientID)
}

func (r *appointmentRepository) CountByCategory(ctx context.Context, categoryID int64) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM appointments WHERE category_id = $1`, categoryID)
}

func (r *appointmentRepository) count(ctx context.Context, query string, arg int64) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, query, arg); err != nil {
		return 0, fmt.Errorf("failed to count appointments: %w", err)
	}
	return count, nil
}

// lockAndCheckOverlap takes row locks on the patient+clinic appointments and
// evaluates the half-open overlap predicate against the candidate interval.
func lockAndCheckOverlap(ctx context.Context, tx *sqlx.Tx, apt *model.Appointment, excludeID int64) error {
	lock := `SELECT id FROM appointments WHERE patient_id = $1 AND clinic_id = $2 FOR UPDATE`
	if _, err := tx.ExecContext(ctx, lock, apt.PatientID, apt.ClinicID); err != nil {
		return fmt.Errorf("failed to lock appointments: %w", err)
	}

	end := apt.StartUTC.Add(time.Duration(apt.DurationMinutes) * time.Minute)
	query := `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE patient_id = $1
			AND clinic_id = $2
			AND id <> $3
			AND start_utc < $4
			AND $5 < start_utc + (duration_minutes * interval '1 minute')
		)
	`
	var clash bool
	if err := tx.GetContext(ctx, &clash, query, apt.PatientID, apt.ClinicID, excludeID, end, apt.StartUTC); err != nil {
		return fmt.Errorf("failed to check overlap: %w", err)
	}
	if clash {
		return errors.Conflict("patient already has an appointment at this clinic during the selected time", nil)
	}
	return nil
}

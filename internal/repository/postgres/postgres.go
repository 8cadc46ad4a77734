package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/clinicdesk/booking-api/internal/repository"
	"github.com/clinicdesk/booking-api/pkg/metrics"
)

type clinicRepository struct {
	db *sqlx.DB
}

type specialityRepository struct {
	db *sqlx.DB
}

type categoryRepository struct {
	db *sqlx.DB
}

type doctorRepository struct {
	db *sqlx.DB
}

type patientRepository struct {
	db *sqlx.DB
}

type appointmentRepository struct {
	BaseRepository
}

type entityStore struct {
	db *sqlx.DB
}

func NewClinicRepository(db *sqlx.DB) repository.ClinicRepository {
	return &clinicRepository{db: db}
}

func NewSpecialityRepository(db *sqlx.DB) repository.SpecialityRepository {
	return &specialityRepository{db: db}
}

func NewCategoryRepository(db *sqlx.DB) repository.CategoryRepository {
	return &categoryRepository{db: db}
}

func NewDoctorRepository(db *sqlx.DB) repository.DoctorRepository {
	return &doctorRepository{db: db}
}

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{db: db}
}

func NewAppointmentRepository(db *sqlx.DB, m *metrics.Metrics) repository.AppointmentRepository {
	return &appointmentRepository{BaseRepository{db: db, metrics: m}}
}

func NewEntityStore(db *sqlx.DB) repository.EntityStore {
	return &entityStore{db: db}
}

var entityTables = map[repository.EntityKind]string{
	repository.EntityClinic:     "clinics",
	repository.EntitySpeciality: "specialities",
	repository.EntityCategory:   "categories",
	repository.EntityDoctor:     "doctors",
	repository.EntityPatient:    "patients",
}

func (s *entityStore) Exists(ctx context.Context, kind repository.EntityKind, id int64) (bool, error) {
	table, ok := entityTables[kind]
	if !ok {
		return false, fmt.Errorf("unknown entity kind %q", kind)
	}

	query := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)", table)
	var exists bool
	if err := s.db.GetContext(ctx, &exists, query, id); err != nil {
		return false, fmt.Errorf("failed to check %s existence: %w", kind, err)
	}
	return exists, nil
}

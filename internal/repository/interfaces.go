package repository

import (
	"context"

	"github.com/clinicdesk/booking-api/internal/model"
)

// EntityKind identifies a referenced entity for existence probes.
type EntityKind string

const (
	EntityClinic     EntityKind = "clinic"
	EntitySpeciality EntityKind = "speciality"
	EntityCategory   EntityKind = "category"
	EntityDoctor     EntityKind = "doctor"
	EntityPatient    EntityKind = "patient"
)

// All repository interfaces in one file
type (
	// EntityStore answers polymorphic existence probes so validation logic
	// does not depend on a concrete store.
	EntityStore interface {
		Exists(ctx context.Context, kind EntityKind, id int64) (bool, error)
	}

	ClinicRepository interface {
		Create(ctx context.Context, clinic *model.Clinic) error
		Get(ctx context.Context, id int64) (*model.Clinic, error)
		GetByName(ctx context.Context, name string) (*model.Clinic, error)
		Update(ctx context.Context, clinic *model.Clinic) error
		Delete(ctx context.Context, id int64) error
		List(ctx context.Context) ([]*model.Clinic, error)
	}

	SpecialityRepository interface {
		Create(ctx context.Context, speciality *model.Speciality) error
		Get(ctx context.Context, id int64) (*model.Speciality, error)
		GetByName(ctx context.Context, name string) (*model.Speciality, error)
		Update(ctx context.Context, speciality *model.Speciality) error
		Delete(ctx context.Context, id int64) error
		List(ctx context.Context) ([]*model.Speciality, error)
	}

	CategoryRepository interface {
		Create(ctx context.Context, category *model.Category) error
		Get(ctx context.Context, id int64) (*model.Category, error)
		GetByName(ctx context.Context, name string) (*model.Category, error)
		Update(ctx context.Context, category *model.Category) error
		Delete(ctx context.Context, id int64) error
		List(ctx context.Context) ([]*model.Category, error)
	}

	DoctorRepository interface {
		Create(ctx context.Context, doctor *model.Doctor) error
		Get(ctx context.Context, id int64) (*model.Doctor, error)
		// GetByTuple looks up a doctor by the unique
		// (firstName, lastName, clinicId, specialityId) combination.
		GetByTuple(ctx context.Context, firstName, lastName string, clinicID, specialityID int64) (*model.Doctor, error)
		Update(ctx context.Context, doctor *model.Doctor) error
		Delete(ctx context.Context, id int64) error
		List(ctx context.Context) ([]*model.Doctor, error)
		CountByClinic(ctx context.Context, clinicID int64) (int64, error)
		CountBySpeciality(ctx context.Context, specialityID int64) (int64, error)
	}

	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, id int64) (*model.Patient, error)
		// GetByEmail matches against the lowercased stored email.
		GetByEmail(ctx context.Context, email string) (*model.Patient, error)
		Update(ctx context.Context, patient *model.Patient) error
		Delete(ctx context.Context, id int64) error
		List(ctx context.Context) ([]*model.Patient, error)
	}

	AppointmentRepository interface {
		// Create persists the appointment after re-checking the patient+clinic
		// overlap rule inside one transaction. Returns a conflict error when a
		// concurrent booking won the slot between pre-check and commit.
		Create(ctx context.Context, apt *model.Appointment) error
		Get(ctx context.Context, id int64) (*model.Appointment, error)
		GetDetail(ctx context.Context, id int64) (*model.AppointmentDetail, error)
		ListDetails(ctx context.Context) ([]*model.AppointmentDetail, error)
		// ListForPatientClinic returns every appointment for the given
		// patient at the given clinic, regardless of doctor or category.
		ListForPatientClinic(ctx context.Context, patientID, clinicID int64) ([]*model.Appointment, error)
		// Update overwrites the appointment in place with the same
		// transactional overlap re-check as Create, excluding the row itself.
		Update(ctx context.Context, apt *model.Appointment) error
		Delete(ctx context.Context, id int64) error
		CountByClinic(ctx context.Context, clinicID int64) (int64, error)
		CountByDoctor(ctx context.Context, doctorID int64) (int64, error)
		CountByPatient(ctx context.Context, patientID int64) (int64, error)
		CountByCategory(ctx context.Context, categoryID int64) (int64, error)
	}
)

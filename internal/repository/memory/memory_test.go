package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/booking-api/internal/model"
	"github.com/clinicdesk/booking-api/internal/repository"
	"github.com/clinicdesk/booking-api/internal/repository/memory"
	"github.com/clinicdesk/booking-api/pkg/errors"
)

func TestExists(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	clinic := &model.Clinic{Name: "Downtown Clinic"}
	require.NoError(t, store.Clinics().Create(ctx, clinic))

	ok, err := store.Exists(ctx, repository.EntityClinic, clinic.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Exists(ctx, repository.EntityClinic, 9999)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = store.Exists(ctx, repository.EntityPatient, clinic.ID)
	require.NoError(t, err)
	assert.False(t, ok, "ids are not shared across entity kinds")

	_, err = store.Exists(ctx, "unknown", 1)
	assert.Error(t, err)
}

func TestAppointmentCreate_RechecksOverlap(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	repo := store.Appointments()

	base := &model.Appointment{
		PatientID: 1, DoctorID: 2, ClinicID: 3, CategoryID: 4,
		StartUTC: time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC), DurationMinutes: 30,
	}
	require.NoError(t, repo.Create(ctx, base))

	// The store itself rejects an overlapping insert, independent of any
	// validation done above it.
	clash := &model.Appointment{
		PatientID: 1, DoctorID: 9, ClinicID: 3, CategoryID: 4,
		StartUTC: time.Date(2026, 9, 1, 9, 15, 0, 0, time.UTC), DurationMinutes: 30,
	}
	err := repo.Create(ctx, clash)
	assert.True(t, errors.IsConflict(err))
	assert.Zero(t, clash.ID)

	backToBack := &model.Appointment{
		PatientID: 1, DoctorID: 2, ClinicID: 3, CategoryID: 4,
		StartUTC: time.Date(2026, 9, 1, 9, 30, 0, 0, time.UTC), DurationMinutes: 30,
	}
	assert.NoError(t, repo.Create(ctx, backToBack))
}

func TestAppointmentUpdate_ExcludesSelf(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	repo := store.Appointments()

	apt := &model.Appointment{
		PatientID: 1, DoctorID: 2, ClinicID: 3, CategoryID: 4,
		StartUTC: time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC), DurationMinutes: 30,
	}
	require.NoError(t, repo.Create(ctx, apt))

	// Overwriting with its own window must not self-conflict.
	assert.NoError(t, repo.Update(ctx, apt))

	other := &model.Appointment{
		PatientID: 1, DoctorID: 2, ClinicID: 3, CategoryID: 4,
		StartUTC: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC), DurationMinutes: 30,
	}
	require.NoError(t, repo.Create(ctx, other))

	// Moving onto the other booking is caught at the store.
	apt.StartUTC = time.Date(2026, 9, 1, 10, 15, 0, 0, time.UTC)
	err := repo.Update(ctx, apt)
	assert.True(t, errors.IsConflict(err))
}

func TestGetDetail_ProjectsReferencedNames(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	clinic := &model.Clinic{Name: "Downtown Clinic"}
	require.NoError(t, store.Clinics().Create(ctx, clinic))
	speciality := &model.Speciality{Name: "Cardiology"}
	require.NoError(t, store.Specialities().Create(ctx, speciality))
	cat := &model.Category{Name: "Consultation"}
	require.NoError(t, store.Categories().Create(ctx, cat))
	doc := &model.Doctor{FirstName: "Greta", LastName: "Holm", ClinicID: clinic.ID, SpecialityID: speciality.ID}
	require.NoError(t, store.Doctors().Create(ctx, doc))
	pat := &model.Patient{FirstName: "Ada", LastName: "Nilsen", Email: "ada@example.com", BirthDate: time.Date(1990, 3, 14, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, store.Patients().Create(ctx, pat))

	apt := &model.Appointment{
		PatientID: pat.ID, DoctorID: doc.ID, ClinicID: clinic.ID, CategoryID: cat.ID,
		StartUTC: time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC), DurationMinutes: 30,
	}
	require.NoError(t, store.Appointments().Create(ctx, apt))

	detail, err := store.Appointments().GetDetail(ctx, apt.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", detail.PatientFirstName)
	assert.Equal(t, "Greta", detail.DoctorFirstName)
	assert.Equal(t, speciality.ID, detail.SpecialityID)
	assert.Equal(t, "Cardiology", detail.SpecialityName)
	assert.Equal(t, "Downtown Clinic", detail.ClinicName)
	assert.Equal(t, "Consultation", detail.CategoryName)
}

func TestCopySemantics(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	clinic := &model.Clinic{Name: "Downtown Clinic"}
	require.NoError(t, store.Clinics().Create(ctx, clinic))

	got, err := store.Clinics().Get(ctx, clinic.ID)
	require.NoError(t, err)
	got.Name = "Mutated"

	again, err := store.Clinics().Get(ctx, clinic.ID)
	require.NoError(t, err)
	assert.Equal(t, "Downtown Clinic", again.Name, "reads must not alias stored state")
}

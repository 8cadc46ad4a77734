package clinic_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/booking-api/internal/model"
	"github.com/clinicdesk/booking-api/internal/repository/memory"
	"github.com/clinicdesk/booking-api/internal/service/clinic"
	"github.com/clinicdesk/booking-api/pkg/errors"
)

func newService(store *memory.Store) *clinic.Service {
	return clinic.NewService(store.Clinics(), store.Doctors(), store.Appointments())
}

func TestCreateClinic(t *testing.T) {
	store := memory.NewStore()
	svc := newService(store)
	ctx := context.Background()

	created, err := svc.CreateClinic(ctx, &model.CreateClinicRequest{Name: "Downtown Clinic", Address: "1 Main St"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := svc.GetClinic(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Downtown Clinic", got.Name)
	assert.Equal(t, "1 Main St", got.Address)
}

func TestCreateClinic_DuplicateName(t *testing.T) {
	store := memory.NewStore()
	svc := newService(store)
	ctx := context.Background()

	_, err := svc.CreateClinic(ctx, &model.CreateClinicRequest{Name: "Downtown Clinic"})
	require.NoError(t, err)

	_, err = svc.CreateClinic(ctx, &model.CreateClinicRequest{Name: "Downtown Clinic"})
	assert.True(t, errors.IsConflict(err))
}

func TestUpdateClinic(t *testing.T) {
	store := memory.NewStore()
	svc := newService(store)
	ctx := context.Background()

	created, err := svc.CreateClinic(ctx, &model.CreateClinicRequest{Name: "Downtown Clinic"})
	require.NoError(t, err)

	t.Run("id mismatch", func(t *testing.T) {
		err := svc.UpdateClinic(ctx, created.ID, &model.UpdateClinicRequest{ID: created.ID + 1, Name: "Renamed"})
		assert.Equal(t, errors.ErrIDMismatch, errors.CodeOf(err))
	})

	t.Run("not found", func(t *testing.T) {
		err := svc.UpdateClinic(ctx, 9999, &model.UpdateClinicRequest{ID: 9999, Name: "Ghost"})
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("rename to taken name", func(t *testing.T) {
		other, err := svc.CreateClinic(ctx, &model.CreateClinicRequest{Name: "Uptown Clinic"})
		require.NoError(t, err)
		err = svc.UpdateClinic(ctx, other.ID, &model.UpdateClinicRequest{ID: other.ID, Name: "Downtown Clinic"})
		assert.True(t, errors.IsConflict(err))
	})

	t.Run("keeping own name is fine", func(t *testing.T) {
		err := svc.UpdateClinic(ctx, created.ID, &model.UpdateClinicRequest{ID: created.ID, Name: "Downtown Clinic", Address: "2 Main St"})
		require.NoError(t, err)
		got, err := svc.GetClinic(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "2 Main St", got.Address)
	})
}

func TestDeleteClinic_Protective(t *testing.T) {
	store := memory.NewStore()
	svc := newService(store)
	ctx := context.Background()

	created, err := svc.CreateClinic(ctx, &model.CreateClinicRequest{Name: "Downtown Clinic"})
	require.NoError(t, err)

	speciality := &model.Speciality{Name: "Cardiology"}
	require.NoError(t, store.Specialities().Create(ctx, speciality))
	doctor := &model.Doctor{FirstName: "Greta", LastName: "Holm", ClinicID: created.ID, SpecialityID: speciality.ID}
	require.NoError(t, store.Doctors().Create(ctx, doctor))

	err = svc.DeleteClinic(ctx, created.ID)
	assert.True(t, errors.IsConflict(err), "clinic with doctors must not be deletable")

	require.NoError(t, store.Doctors().Delete(ctx, doctor.ID))

	patient := &model.Patient{FirstName: "Ada", LastName: "Nilsen", Email: "ada@example.com", BirthDate: time.Date(1990, 3, 14, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, store.Patients().Create(ctx, patient))
	category := &model.Category{Name: "Consultation"}
	require.NoError(t, store.Categories().Create(ctx, category))
	apt := &model.Appointment{
		PatientID:       patient.ID,
		DoctorID:        doctor.ID,
		ClinicID:        created.ID,
		CategoryID:      category.ID,
		StartUTC:        time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
		DurationMinutes: 30,
	}
	require.NoError(t, store.Appointments().Create(ctx, apt))

	err = svc.DeleteClinic(ctx, created.ID)
	assert.True(t, errors.IsConflict(err), "clinic with appointments must not be deletable")

	require.NoError(t, store.Appointments().Delete(ctx, apt.ID))

	assert.NoError(t, svc.DeleteClinic(ctx, created.ID))
	_, err = svc.GetClinic(ctx, created.ID)
	assert.True(t, errors.IsNotFound(err))
}

func TestDeleteClinic_NotFound(t *testing.T) {
	store := memory.NewStore()
	svc := newService(store)
	err := svc.DeleteClinic(context.Background(), 9999)
	assert.True(t, errors.IsNotFound(err))
}

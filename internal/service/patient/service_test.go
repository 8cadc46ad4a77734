package patient_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/booking-api/internal/model"
	"github.com/clinicdesk/booking-api/internal/repository/memory"
	"github.com/clinicdesk/booking-api/internal/service/patient"
	"github.com/clinicdesk/booking-api/pkg/errors"
)

func newService(store *memory.Store) *patient.Service {
	return patient.NewService(store.Patients(), store.Appointments())
}

func createReq(email string) *model.CreatePatientRequest {
	return &model.CreatePatientRequest{
		FirstName: "Ada",
		LastName:  "Nilsen",
		Email:     email,
		BirthDate: time.Date(1990, 3, 14, 0, 0, 0, 0, time.UTC),
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ada@example.com", patient.NormalizeEmail("  Ada@Example.COM "))
	assert.Equal(t, "", patient.NormalizeEmail("   "))
}

func TestCreatePatient_StoresNormalizedEmail(t *testing.T) {
	store := memory.NewStore()
	svc := newService(store)
	ctx := context.Background()

	created, err := svc.CreatePatient(ctx, createReq(" Ada@Example.COM "))
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", created.Email)
}

func TestCreatePatient_DuplicateEmailCaseInsensitive(t *testing.T) {
	store := memory.NewStore()
	svc := newService(store)
	ctx := context.Background()

	_, err := svc.CreatePatient(ctx, createReq("ada@example.com"))
	require.NoError(t, err)

	_, err = svc.CreatePatient(ctx, createReq("ADA@EXAMPLE.COM"))
	assert.True(t, errors.IsConflict(err))
}

func TestGetPatientByEmail(t *testing.T) {
	store := memory.NewStore()
	svc := newService(store)
	ctx := context.Background()

	created, err := svc.CreatePatient(ctx, createReq("ada@example.com"))
	require.NoError(t, err)

	got, err := svc.GetPatientByEmail(ctx, "Ada@Example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.GetPatientByEmail(ctx, "nobody@example.com")
	assert.True(t, errors.IsNotFound(err))

	_, err = svc.GetPatientByEmail(ctx, "   ")
	assert.True(t, errors.IsNotFound(err))
}

func TestUpdatePatient(t *testing.T) {
	store := memory.NewStore()
	svc := newService(store)
	ctx := context.Background()

	created, err := svc.CreatePatient(ctx, createReq("ada@example.com"))
	require.NoError(t, err)
	other, err := svc.CreatePatient(ctx, &model.CreatePatientRequest{
		FirstName: "Bo", LastName: "Odin", Email: "bo@example.com",
		BirthDate: time.Date(1985, 7, 2, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	t.Run("id mismatch", func(t *testing.T) {
		req := &model.UpdatePatientRequest{ID: created.ID + 1, FirstName: "Ada", LastName: "Nilsen", Email: "ada@example.com", BirthDate: created.BirthDate}
		err := svc.UpdatePatient(ctx, created.ID, req)
		assert.Equal(t, errors.ErrIDMismatch, errors.CodeOf(err))
	})

	t.Run("taking another patient's email conflicts", func(t *testing.T) {
		req := &model.UpdatePatientRequest{ID: created.ID, FirstName: "Ada", LastName: "Nilsen", Email: "BO@example.com", BirthDate: created.BirthDate}
		err := svc.UpdatePatient(ctx, created.ID, req)
		assert.True(t, errors.IsConflict(err))
	})

	t.Run("keeping own email is fine", func(t *testing.T) {
		req := &model.UpdatePatientRequest{ID: other.ID, FirstName: "Bo", LastName: "Odin", Email: " BO@Example.com ", BirthDate: other.BirthDate}
		require.NoError(t, svc.UpdatePatient(ctx, other.ID, req))
		got, err := svc.GetPatient(ctx, other.ID)
		require.NoError(t, err)
		assert.Equal(t, "bo@example.com", got.Email)
	})
}

func TestDeletePatient_Protective(t *testing.T) {
	store := memory.NewStore()
	svc := newService(store)
	ctx := context.Background()

	created, err := svc.CreatePatient(ctx, createReq("ada@example.com"))
	require.NoError(t, err)

	apt := &model.Appointment{
		PatientID:       created.ID,
		DoctorID:        1,
		ClinicID:        1,
		CategoryID:      1,
		StartUTC:        time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
		DurationMinutes: 30,
	}
	require.NoError(t, store.Appointments().Create(ctx, apt))

	err = svc.DeletePatient(ctx, created.ID)
	assert.True(t, errors.IsConflict(err))

	require.NoError(t, store.Appointments().Delete(ctx, apt.ID))
	assert.NoError(t, svc.DeletePatient(ctx, created.ID))
}

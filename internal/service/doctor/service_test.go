package doctor_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/booking-api/internal/model"
	"github.com/clinicdesk/booking-api/internal/repository/memory"
	"github.com/clinicdesk/booking-api/internal/service/doctor"
	"github.com/clinicdesk/booking-api/pkg/errors"
)

type fixture struct {
	store      *memory.Store
	svc        *doctor.Service
	clinic     *model.Clinic
	clinic2    *model.Clinic
	speciality *model.Speciality
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	f := &fixture{
		store:      store,
		clinic:     &model.Clinic{Name: "Downtown Clinic"},
		clinic2:    &model.Clinic{Name: "Uptown Clinic"},
		speciality: &model.Speciality{Name: "Cardiology"},
	}
	require.NoError(t, store.Clinics().Create(ctx, f.clinic))
	require.NoError(t, store.Clinics().Create(ctx, f.clinic2))
	require.NoError(t, store.Specialities().Create(ctx, f.speciality))

	f.svc = doctor.NewService(store.Doctors(), store, store.Appointments())
	return f
}

func (f *fixture) createReq() *model.CreateDoctorRequest {
	return &model.CreateDoctorRequest{
		FirstName:    "Greta",
		LastName:     "Holm",
		ClinicID:     f.clinic.ID,
		SpecialityID: f.speciality.ID,
	}
}

func TestCreateDoctor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateDoctor(ctx, f.createReq())
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, f.clinic.ID, created.ClinicID)
}

func TestCreateDoctor_InvalidReference(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := f.createReq()
	req.ClinicID = 9999
	_, err := f.svc.CreateDoctor(ctx, req)
	assert.Equal(t, errors.ErrInvalidReference, errors.CodeOf(err))

	req = f.createReq()
	req.SpecialityID = 9999
	_, err = f.svc.CreateDoctor(ctx, req)
	assert.Equal(t, errors.ErrInvalidReference, errors.CodeOf(err))
}

func TestCreateDoctor_DuplicateTuple(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateDoctor(ctx, f.createReq())
	require.NoError(t, err)

	// Identical name, clinic and speciality.
	_, err = f.svc.CreateDoctor(ctx, f.createReq())
	assert.True(t, errors.IsConflict(err))

	// Same name at a different clinic is a different doctor.
	req := f.createReq()
	req.ClinicID = f.clinic2.ID
	_, err = f.svc.CreateDoctor(ctx, req)
	assert.NoError(t, err)
}

func TestUpdateDoctor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateDoctor(ctx, f.createReq())
	require.NoError(t, err)

	t.Run("id mismatch", func(t *testing.T) {
		req := &model.UpdateDoctorRequest{ID: created.ID + 1, FirstName: "Greta", LastName: "Holm", ClinicID: f.clinic.ID, SpecialityID: f.speciality.ID}
		err := f.svc.UpdateDoctor(ctx, created.ID, req)
		assert.Equal(t, errors.ErrIDMismatch, errors.CodeOf(err))
	})

	t.Run("re-submitting own tuple is fine", func(t *testing.T) {
		req := &model.UpdateDoctorRequest{ID: created.ID, FirstName: "Greta", LastName: "Holm", ClinicID: f.clinic.ID, SpecialityID: f.speciality.ID}
		assert.NoError(t, f.svc.UpdateDoctor(ctx, created.ID, req))
	})

	t.Run("moving onto another doctor's tuple conflicts", func(t *testing.T) {
		otherReq := f.createReq()
		otherReq.FirstName = "Ivan"
		otherReq.LastName = "Petrov"
		other, err := f.svc.CreateDoctor(ctx, otherReq)
		require.NoError(t, err)

		req := &model.UpdateDoctorRequest{ID: other.ID, FirstName: "Greta", LastName: "Holm", ClinicID: f.clinic.ID, SpecialityID: f.speciality.ID}
		err = f.svc.UpdateDoctor(ctx, other.ID, req)
		assert.True(t, errors.IsConflict(err))
	})
}

func TestDeleteDoctor_Protective(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateDoctor(ctx, f.createReq())
	require.NoError(t, err)

	apt := &model.Appointment{
		PatientID:       1,
		DoctorID:        created.ID,
		ClinicID:        f.clinic.ID,
		CategoryID:      1,
		StartUTC:        time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
		DurationMinutes: 30,
	}
	require.NoError(t, f.store.Appointments().Create(ctx, apt))

	err = f.svc.DeleteDoctor(ctx, created.ID)
	assert.True(t, errors.IsConflict(err))

	require.NoError(t, f.store.Appointments().Delete(ctx, apt.ID))
	assert.NoError(t, f.svc.DeleteDoctor(ctx, created.ID))
	_, err = f.svc.GetDoctor(ctx, created.ID)
	assert.True(t, errors.IsNotFound(err))
}

package category_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/booking-api/internal/model"
	"github.com/clinicdesk/booking-api/internal/repository/memory"
	"github.com/clinicdesk/booking-api/internal/service/category"
	"github.com/clinicdesk/booking-api/pkg/errors"
)

func newService(store *memory.Store) *category.Service {
	return category.NewService(store.Categories(), store.Appointments())
}

func TestCategoryCRUD(t *testing.T) {
	store := memory.NewStore()
	svc := newService(store)
	ctx := context.Background()

	created, err := svc.CreateCategory(ctx, &model.CreateCategoryRequest{Name: "Consultation"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	_, err = svc.CreateCategory(ctx, &model.CreateCategoryRequest{Name: "Consultation"})
	assert.True(t, errors.IsConflict(err))

	err = svc.UpdateCategory(ctx, created.ID, &model.UpdateCategoryRequest{ID: created.ID + 1, Name: "Surgery"})
	assert.Equal(t, errors.ErrIDMismatch, errors.CodeOf(err))

	require.NoError(t, svc.UpdateCategory(ctx, created.ID, &model.UpdateCategoryRequest{ID: created.ID, Name: "Surgery"}))
	got, err := svc.GetCategory(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Surgery", got.Name)
}

func TestDeleteCategory_Protective(t *testing.T) {
	store := memory.NewStore()
	svc := newService(store)
	ctx := context.Background()

	created, err := svc.CreateCategory(ctx, &model.CreateCategoryRequest{Name: "Consultation"})
	require.NoError(t, err)

	apt := &model.Appointment{
		PatientID:       1,
		DoctorID:        1,
		ClinicID:        1,
		CategoryID:      created.ID,
		StartUTC:        time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
		DurationMinutes: 30,
	}
	require.NoError(t, store.Appointments().Create(ctx, apt))

	err = svc.DeleteCategory(ctx, created.ID)
	assert.True(t, errors.IsConflict(err))

	require.NoError(t, store.Appointments().Delete(ctx, apt.ID))
	assert.NoError(t, svc.DeleteCategory(ctx, created.ID))
	_, err = svc.GetCategory(ctx, created.ID)
	assert.True(t, errors.IsNotFound(err))
}

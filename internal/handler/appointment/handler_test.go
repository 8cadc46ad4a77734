package appointment_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appointmentHandler "github.com/clinicdesk/booking-api/internal/handler/appointment"
	"github.com/clinicdesk/booking-api/internal/model"
	"github.com/clinicdesk/booking-api/internal/repository/memory"
	appointmentService "github.com/clinicdesk/booking-api/internal/service/appointment"
)

type testEnv struct {
	router  *gin.Engine
	clinic  *model.Clinic
	doctor  *model.Doctor
	patient *model.Patient
	cat     *model.Category
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()
	store := memory.NewStore()

	env := &testEnv{
		clinic:  &model.Clinic{Name: "Downtown Clinic"},
		cat:     &model.Category{Name: "Consultation"},
		patient: &model.Patient{FirstName: "Ada", LastName: "Nilsen", Email: "ada@example.com", BirthDate: time.Date(1990, 3, 14, 0, 0, 0, 0, time.UTC)},
	}
	require.NoError(t, store.Clinics().Create(ctx, env.clinic))
	speciality := &model.Speciality{Name: "Cardiology"}
	require.NoError(t, store.Specialities().Create(ctx, speciality))
	require.NoError(t, store.Categories().Create(ctx, env.cat))
	env.doctor = &model.Doctor{FirstName: "Greta", LastName: "Holm", ClinicID: env.clinic.ID, SpecialityID: speciality.ID}
	require.NoError(t, store.Doctors().Create(ctx, env.doctor))
	require.NoError(t, store.Patients().Create(ctx, env.patient))

	svc := appointmentService.NewService(store.Appointments(), store.Doctors(), store, nil, nil)
	h := appointmentHandler.NewHandler(svc)

	router := gin.New()
	h.RegisterRoutes(router.Group("/api/v1"))
	env.router = router
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) bookingBody(start time.Time, minutes int) map[string]interface{} {
	return map[string]interface{}{
		"patient_id":       e.patient.ID,
		"doctor_id":        e.doctor.ID,
		"clinic_id":        e.clinic.ID,
		"category_id":      e.cat.ID,
		"start_utc":        start.Format(time.RFC3339),
		"duration_minutes": minutes,
	}
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestCreateAppointmentEndpoint(t *testing.T) {
	e := newTestEnv(t)
	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

	w := e.do(t, http.MethodPost, "/api/v1/appointments", e.bookingBody(start, 30))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	env := decode(t, w)
	assert.Equal(t, "success", env.Status)

	var detail model.AppointmentDetail
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	assert.NotZero(t, detail.ID)
	assert.Equal(t, "Downtown Clinic", detail.ClinicName)
	assert.Equal(t, "Cardiology", detail.SpecialityName)
}

func TestCreateAppointmentEndpoint_Statuses(t *testing.T) {
	e := newTestEnv(t)
	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

	w := e.do(t, http.MethodPost, "/api/v1/appointments", e.bookingBody(start, 30))
	require.Equal(t, http.StatusCreated, w.Code)

	t.Run("overlap is 409", func(t *testing.T) {
		w := e.do(t, http.MethodPost, "/api/v1/appointments", e.bookingBody(start.Add(15*time.Minute), 30))
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "error", decode(t, w).Status)
	})

	t.Run("dangling reference is 400", func(t *testing.T) {
		body := e.bookingBody(start.Add(2*time.Hour), 30)
		body["patient_id"] = 9999
		w := e.do(t, http.MethodPost, "/api/v1/appointments", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed body is 400", func(t *testing.T) {
		w := e.do(t, http.MethodPost, "/api/v1/appointments", map[string]interface{}{"patient_id": "not-a-number"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAppointmentReadEndpoints(t *testing.T) {
	e := newTestEnv(t)
	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

	w := e.do(t, http.MethodPost, "/api/v1/appointments", e.bookingBody(start, 30))
	require.Equal(t, http.StatusCreated, w.Code)
	var detail model.AppointmentDetail
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &detail))

	w = e.do(t, http.MethodGet, fmt.Sprintf("/api/v1/appointments/%d", detail.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = e.do(t, http.MethodGet, "/api/v1/appointments", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = e.do(t, http.MethodGet, "/api/v1/appointments/9999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = e.do(t, http.MethodGet, "/api/v1/appointments/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateAppointmentEndpoint(t *testing.T) {
	e := newTestEnv(t)
	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

	w := e.do(t, http.MethodPost, "/api/v1/appointments", e.bookingBody(start, 30))
	require.Equal(t, http.StatusCreated, w.Code)
	var detail model.AppointmentDetail
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &detail))

	body := e.bookingBody(start.Add(time.Hour), 30)
	body["id"] = detail.ID

	w = e.do(t, http.MethodPut, fmt.Sprintf("/api/v1/appointments/%d", detail.ID), body)
	assert.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	t.Run("route and payload id disagree", func(t *testing.T) {
		body := e.bookingBody(start, 30)
		body["id"] = detail.ID + 1
		w := e.do(t, http.MethodPut, fmt.Sprintf("/api/v1/appointments/%d", detail.ID), body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown appointment is 404", func(t *testing.T) {
		body := e.bookingBody(start, 30)
		body["id"] = 9999
		w := e.do(t, http.MethodPut, "/api/v1/appointments/9999", body)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDeleteAppointmentEndpoint(t *testing.T) {
	e := newTestEnv(t)
	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

	w := e.do(t, http.MethodPost, "/api/v1/appointments", e.bookingBody(start, 30))
	require.Equal(t, http.StatusCreated, w.Code)
	var detail model.AppointmentDetail
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &detail))

	w = e.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/appointments/%d", detail.ID), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = e.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/appointments/%d", detail.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

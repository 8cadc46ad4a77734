package appointment

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/clinicdesk/booking-api/internal/model"
	"github.com/clinicdesk/booking-api/internal/repository"
	"github.com/clinicdesk/booking-api/pkg/errors"
	"github.com/clinicdesk/booking-api/pkg/messaging"
	"github.com/clinicdesk/booking-api/pkg/metrics"
)

const (
	EventCreated = "appointment.created"
	EventUpdated = "appointment.updated"
	EventDeleted = "appointment.deleted"

	eventsChannel = "appointments"

	detailCacheTTL = 5 * time.Minute
	listCacheKey   = "appointments:all"
)

type Service struct {
	appointments repository.AppointmentRepository
	doctors      repository.DoctorRepository
	store        repository.EntityStore
	broker       messaging.Broker
	metrics      *metrics.Metrics
	readCache    *gocache.Cache
}

// NewService wires the booking coordinator. Broker and metrics may be nil;
// events and counters are then skipped.
func NewService(
	appointments repository.AppointmentRepository,
	doctors repository.DoctorRepository,
	store repository.EntityStore,
	broker messaging.Broker,
	m *metrics.Metrics,
) *Service {
	return &Service{
		appointments: appointments,
		doctors:      doctors,
		store:        store,
		broker:       broker,
		metrics:      m,
		readCache:    gocache.New(detailCacheTTL, 2*detailCacheTTL),
	}
}

// overlaps reports whether two half-open intervals [s1, e1) and [s2, e2)
// share at least one instant. Back-to-back intervals do not overlap.
func overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// validateReferences checks the candidate against the reference data:
// all four existence probes run unconditionally so the outcome does not
// depend on probe order, then doctor affiliation, then duration.
func (s *Service) validateReferences(ctx context.Context, patientID, doctorID, clinicID, categoryID int64, durationMinutes int) error {
	patientOK, err := s.store.Exists(ctx, repository.EntityPatient, patientID)
	if err != nil {
		return fmt.Errorf("failed to check patient: %w", err)
	}
	doctorOK, err := s.store.Exists(ctx, repository.EntityDoctor, doctorID)
	if err != nil {
		return fmt.Errorf("failed to check doctor: %w", err)
	}
	clinicOK, err := s.store.Exists(ctx, repository.EntityClinic, clinicID)
	if err != nil {
		return fmt.Errorf("failed to check clinic: %w", err)
	}
	categoryOK, err := s.store.Exists(ctx, repository.EntityCategory, categoryID)
	if err != nil {
		return fmt.Errorf("failed to check category: %w", err)
	}

	if !patientOK || !doctorOK || !clinicOK || !categoryOK {
		s.countRejection("invalid_reference")
		return errors.InvalidReference()
	}

	doctor, err := s.doctors.Get(ctx, doctorID)
	if err != nil {
		return fmt.Errorf("failed to get doctor: %w", err)
	}
	if doctor.ClinicID != clinicID {
		s.countRejection("doctor_clinic_mismatch")
		return errors.DoctorClinicMismatch()
	}

	if durationMinutes <= 0 {
		s.countRejection("invalid_duration")
		return errors.InvalidDuration()
	}

	return nil
}

// checkOverlap scans every appointment for the same patient and clinic,
// skipping excludeID when updating, and fails on the first overlap found.
func (s *Service) checkOverlap(ctx context.Context, patientID, clinicID int64, start time.Time, durationMinutes int, excludeID int64) error {
	existing, err := s.appointments.ListForPatientClinic(ctx, patientID, clinicID)
	if err != nil {
		return fmt.Errorf("failed to list appointments: %w", err)
	}

	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	for _, apt := range existing {
		if apt.ID == excludeID {
			continue
		}
		if overlaps(start, end, apt.StartUTC, apt.EndUTC()) {
			s.countRejection("overlap")
			return errors.Conflict("patient already has an appointment at this clinic during the selected time", nil)
		}
	}
	return nil
}

func (s *Service) CreateAppointment(ctx context.Context, req *model.CreateAppointmentRequest) (*model.AppointmentDetail, error) {
	if err := s.validateReferences(ctx, req.PatientID, req.DoctorID, req.ClinicID, req.CategoryID, req.DurationMinutes); err != nil {
		return nil, err
	}

	if err := s.checkOverlap(ctx, req.PatientID, req.ClinicID, req.StartUTC, req.DurationMinutes, 0); err != nil {
		return nil, err
	}

	apt := &model.Appointment{
		PatientID:       req.PatientID,
		DoctorID:        req.DoctorID,
		ClinicID:        req.ClinicID,
		CategoryID:      req.CategoryID,
		StartUTC:        req.StartUTC.UTC(),
		DurationMinutes: req.DurationMinutes,
	}

	// The store repeats the overlap check inside its transaction; a
	// concurrent booking that won the slot surfaces here as a conflict.
	if err := s.appointments.Create(ctx, apt); err != nil {
		if errors.IsConflict(err) {
			s.countRejection("overlap")
			return nil, err
		}
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	s.invalidateReadCache(apt.ID)
	s.countBooking("created")
	s.publish(ctx, EventCreated, apt)

	detail, err := s.appointments.GetDetail(ctx, apt.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load created appointment: %w", err)
	}
	return detail, nil
}

func (s *Service) UpdateAppointment(ctx context.Context, id int64, req *model.UpdateAppointmentRequest) error {
	// Identity check comes first: a route/payload disagreement is a caller
	// bug and must not touch the store at all.
	if req.ID != id {
		return errors.IDMismatch()
	}

	existing, err := s.appointments.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.validateReferences(ctx, req.PatientID, req.DoctorID, req.ClinicID, req.CategoryID, req.DurationMinutes); err != nil {
		return err
	}

	if err := s.checkOverlap(ctx, req.PatientID, req.ClinicID, req.StartUTC, req.DurationMinutes, id); err != nil {
		return err
	}

	existing.PatientID = req.PatientID
	existing.DoctorID = req.DoctorID
	existing.ClinicID = req.ClinicID
	existing.CategoryID = req.CategoryID
	existing.StartUTC = req.StartUTC.UTC()
	existing.DurationMinutes = req.DurationMinutes

	if err := s.appointments.Update(ctx, existing); err != nil {
		if errors.IsConflict(err) {
			s.countRejection("overlap")
			return err
		}
		return fmt.Errorf("failed to update appointment: %w", err)
	}

	s.invalidateReadCache(id)
	s.countBooking("updated")
	s.publish(ctx, EventUpdated, existing)
	return nil
}

func (s *Service) DeleteAppointment(ctx context.Context, id int64) error {
	apt, err := s.appointments.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.appointments.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}

	s.invalidateReadCache(id)
	s.countBooking("deleted")
	s.publish(ctx, EventDeleted, apt)
	return nil
}

func (s *Service) GetAppointment(ctx context.Context, id int64) (*model.AppointmentDetail, error) {
	key := detailCacheKey(id)
	if cached, ok := s.readCache.Get(key); ok {
		return cached.(*model.AppointmentDetail), nil
	}

	detail, err := s.appointments.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}

	s.readCache.Set(key, detail, gocache.DefaultExpiration)
	return detail, nil
}

func (s *Service) ListAppointments(ctx context.Context) ([]*model.AppointmentDetail, error) {
	if cached, ok := s.readCache.Get(listCacheKey); ok {
		return cached.([]*model.AppointmentDetail), nil
	}

	details, err := s.appointments.ListDetails(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	s.readCache.Set(listCacheKey, details, gocache.DefaultExpiration)
	return details, nil
}

func detailCacheKey(id int64) string {
	return fmt.Sprintf("appointments:%d", id)
}

func (s *Service) invalidateReadCache(id int64) {
	s.readCache.Delete(detailCacheKey(id))
	s.readCache.Delete(listCacheKey)
}

func (s *Service) publish(ctx context.Context, eventType string, apt *model.Appointment) {
	if s.broker == nil {
		return
	}
	// Best effort: a lost event never fails the booking.
	_ = s.broker.Publish(ctx, eventsChannel, messaging.Message{
		Type:    eventType,
		Payload: apt,
	})
}

func (s *Service) countBooking(op string) {
	if s.metrics != nil {
		s.metrics.BookingsTotal.WithLabelValues(op).Inc()
	}
}

func (s *Service) countRejection(reason string) {
	if s.metrics != nil {
		s.metrics.RejectionsTotal.WithLabelValues(reason).Inc()
	}
}

package patient

import (
	"context"
	"fmt"
	"strings"

	"github.com/clinicdesk/booking-api/internal/model"
	"github.com/clinicdesk/booking-api/internal/repository"
	"github.com/clinicdesk/booking-api/pkg/errors"
)

type Service struct {
	repo         repository.PatientRepository
	appointments repository.AppointmentRepository
}

func NewService(repo repository.PatientRepository, appointments repository.AppointmentRepository) *Service {
	return &Service{repo: repo, appointments: appointments}
}

// NormalizeEmail lowercases and trims an email address. Emails are stored
// and compared in this form only.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) CreatePatient(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error) {
	email := NormalizeEmail(req.Email)
	if err := s.checkEmailFree(ctx, email, 0); err != nil {
		return nil, err
	}

	patient := &model.Patient{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     email,
		BirthDate: req.BirthDate,
	}
	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}
	return patient, nil
}

func (s *Service) GetPatient(ctx context.Context, id int64) (*model.Patient, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) GetPatientByEmail(ctx context.Context, email string) (*model.Patient, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, errors.NotFound("patient", nil)
	}
	return s.repo.GetByEmail(ctx, email)
}

func (s *Service) ListPatients(ctx context.Context) ([]*model.Patient, error) {
	patients, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

func (s *Service) UpdatePatient(ctx context.Context, id int64, req *model.UpdatePatientRequest) error {
	if req.ID != id {
		return errors.IDMismatch()
	}

	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	email := NormalizeEmail(req.Email)
	if err := s.checkEmailFree(ctx, email, id); err != nil {
		return err
	}

	patient.FirstName = req.FirstName
	patient.LastName = req.LastName
	patient.Email = email
	patient.BirthDate = req.BirthDate
	if err := s.repo.Update(ctx, patient); err != nil {
		return fmt.Errorf("failed to update patient: %w", err)
	}
	return nil
}

func (s *Service) DeletePatient(ctx context.Context, id int64) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}

	count, err := s.appointments.CountByPatient(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count appointments: %w", err)
	}
	if count > 0 {
		return errors.Conflict("cannot delete patient with existing appointments", nil)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}
	return nil
}

func (s *Service) checkEmailFree(ctx context.Context, email string, selfID int64) error {
	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to check patient email: %w", err)
	}
	if existing.ID != selfID {
		return errors.Conflict("email already exists", nil)
	}
	return nil
}

package clinic

import (
	"context"
	"fmt"

	"github.com/clinicdesk/booking-api/internal/model"
	"github.com/clinicdesk/booking-api/internal/repository"
	"github.com/clinicdesk/booking-api/pkg/errors"
)

type Service struct {
	repo         repository.ClinicRepository
	doctors      repository.DoctorRepository
	appointments repository.AppointmentRepository
}

func NewService(repo repository.ClinicRepository, doctors repository.DoctorRepository, appointments repository.AppointmentRepository) *Service {
	return &Service{
		repo:         repo,
		doctors:      doctors,
		appointments: appointments,
	}
}

func (s *Service) CreateClinic(ctx context.Context, req *model.CreateClinicRequest) (*model.Clinic, error) {
	if err := s.checkNameFree(ctx, req.Name, 0); err != nil {
		return nil, err
	}

	clinic := &model.Clinic{
		Name:    req.Name,
		Address: req.Address,
	}
	if err := s.repo.Create(ctx, clinic); err != nil {
		return nil, fmt.Errorf("failed to create clinic: %w", err)
	}
	return clinic, nil
}

func (s *Service) GetClinic(ctx context.Context, id int64) (*model.Clinic, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) ListClinics(ctx context.Context) ([]*model.Clinic, error) {
	clinics, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list clinics: %w", err)
	}
	return clinics, nil
}

func (s *Service) UpdateClinic(ctx context.Context, id int64, req *model.UpdateClinicRequest) error {
	if req.ID != id {
		return errors.IDMismatch()
	}

	clinic, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.checkNameFree(ctx, req.Name, id); err != nil {
		return err
	}

	clinic.Name = req.Name
	clinic.Address = req.Address
	if err := s.repo.Update(ctx, clinic); err != nil {
		return fmt.Errorf("failed to update clinic: %w", err)
	}
	return nil
}

// DeleteClinic is protective: a clinic with doctors or appointments stays.
func (s *Service) DeleteClinic(ctx context.Context, id int64) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}

	doctorCount, err := s.doctors.CountByClinic(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count doctors: %w", err)
	}
	if doctorCount > 0 {
		return errors.Conflict("cannot delete clinic with assigned doctors", nil)
	}

	aptCount, err := s.appointments.CountByClinic(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count appointments: %w", err)
	}
	if aptCount > 0 {
		return errors.Conflict("cannot delete clinic with existing appointments", nil)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete clinic: %w", err)
	}
	return nil
}

func (s *Service) checkNameFree(ctx context.Context, name string, selfID int64) error {
	existing, err := s.repo.GetByName(ctx, name)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to check clinic name: %w", err)
	}
	if existing.ID != selfID {
		return errors.Conflict("clinic name already exists", nil)
	}
	return nil
}

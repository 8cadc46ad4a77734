package doctor

import (
	"context"
	"fmt"

	"github.com/clinicdesk/booking-api/internal/model"
	"github.com/clinicdesk/booking-api/internal/repository"
	"github.com/clinicdesk/booking-api/pkg/errors"
)

type Service struct {
	repo         repository.DoctorRepository
	store        repository.EntityStore
	appointments repository.AppointmentRepository
}

func NewService(repo repository.DoctorRepository, store repository.EntityStore, appointments repository.AppointmentRepository) *Service {
	return &Service{
		repo:         repo,
		store:        store,
		appointments: appointments,
	}
}

func (s *Service) CreateDoctor(ctx context.Context, req *model.CreateDoctorRequest) (*model.Doctor, error) {
	if err := s.checkReferences(ctx, req.ClinicID, req.SpecialityID); err != nil {
		return nil, err
	}
	if err := s.checkTupleFree(ctx, req.FirstName, req.LastName, req.ClinicID, req.SpecialityID, 0); err != nil {
		return nil, err
	}

	doctor := &model.Doctor{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		ClinicID:     req.ClinicID,
		SpecialityID: req.SpecialityID,
	}
	if err := s.repo.Create(ctx, doctor); err != nil {
		return nil, fmt.Errorf("failed to create doctor: %w", err)
	}
	return doctor, nil
}

func (s *Service) GetDoctor(ctx context.Context, id int64) (*model.Doctor, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) ListDoctors(ctx context.Context) ([]*model.Doctor, error) {
	doctors, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

func (s *Service) UpdateDoctor(ctx context.Context, id int64, req *model.UpdateDoctorRequest) error {
	if req.ID != id {
		return errors.IDMismatch()
	}

	doctor, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.checkReferences(ctx, req.ClinicID, req.SpecialityID); err != nil {
		return err
	}
	if err := s.checkTupleFree(ctx, req.FirstName, req.LastName, req.ClinicID, req.SpecialityID, id); err != nil {
		return err
	}

	doctor.FirstName = req.FirstName
	doctor.LastName = req.LastName
	doctor.ClinicID = req.ClinicID
	doctor.SpecialityID = req.SpecialityID
	if err := s.repo.Update(ctx, doctor); err != nil {
		return fmt.Errorf("failed to update doctor: %w", err)
	}
	return nil
}

func (s *Service) DeleteDoctor(ctx context.Context, id int64) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}

	count, err := s.appointments.CountByDoctor(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count appointments: %w", err)
	}
	if count > 0 {
		return errors.Conflict("cannot delete doctor with existing appointments", nil)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete doctor: %w", err)
	}
	return nil
}

func (s *Service) checkReferences(ctx context.Context, clinicID, specialityID int64) error {
	clinicOK, err := s.store.Exists(ctx, repository.EntityClinic, clinicID)
	if err != nil {
		return fmt.Errorf("failed to check clinic: %w", err)
	}
	specialityOK, err := s.store.Exists(ctx, repository.EntitySpeciality, specialityID)
	if err != nil {
		return fmt.Errorf("failed to check speciality: %w", err)
	}
	if !clinicOK || !specialityOK {
		return errors.InvalidReference()
	}
	return nil
}

func (s *Service) checkTupleFree(ctx context.Context, firstName, lastName string, clinicID, specialityID, selfID int64) error {
	existing, err := s.repo.GetByTuple(ctx, firstName, lastName, clinicID, specialityID)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to check doctor uniqueness: %w", err)
	}
	if existing.ID != selfID {
		return errors.Conflict("doctor already exists at this clinic with this speciality", nil)
	}
	return nil
}

package speciality

import (
	"context"
	"fmt"

	"github.com/clinicdesk/booking-api/internal/model"
	"github.com/clinicdesk/booking-api/internal/repository"
	"github.com/clinicdesk/booking-api/pkg/errors"
)

type Service struct {
	repo    repository.SpecialityRepository
	doctors repository.DoctorRepository
}

func NewService(repo repository.SpecialityRepository, doctors repository.DoctorRepository) *Service {
	return &Service{repo: repo, doctors: doctors}
}

func (s *Service) CreateSpeciality(ctx context.Context, req *model.CreateSpecialityRequest) (*model.Speciality, error) {
	if err := s.checkNameFree(ctx, req.Name, 0); err != nil {
		return nil, err
	}

	speciality := &model.Speciality{Name: req.Name}
	if err := s.repo.Create(ctx, speciality); err != nil {
		return nil, fmt.Errorf("failed to create speciality: %w", err)
	}
	return speciality, nil
}

func (s *Service) GetSpeciality(ctx context.Context, id int64) (*model.Speciality, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) ListSpecialities(ctx context.Context) ([]*model.Speciality, error) {
	specialities, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list specialities: %w", err)
	}
	return specialities, nil
}

func (s *Service) UpdateSpeciality(ctx context.Context, id int64, req *model.UpdateSpecialityRequest) error {
	if req.ID != id {
		return errors.IDMismatch()
	}

	speciality, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.checkNameFree(ctx, req.Name, id); err != nil {
		return err
	}

	speciality.Name = req.Name
	if err := s.repo.Update(ctx, speciality); err != nil {
		return fmt.Errorf("failed to update speciality: %w", err)
	}
	return nil
}

func (s *Service) DeleteSpeciality(ctx context.Context, id int64) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}

	count, err := s.doctors.CountBySpeciality(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count doctors: %w", err)
	}
	if count > 0 {
		return errors.Conflict("cannot delete speciality with assigned doctors", nil)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete speciality: %w", err)
	}
	return nil
}

func (s *Service) checkNameFree(ctx context.Context, name string, selfID int64) error {
	existing, err := s.repo.GetByName(ctx, name)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to check speciality name: %w", err)
	}
	if existing.ID != selfID {
		return errors.Conflict("speciality name already exists", nil)
	}
	return nil
}

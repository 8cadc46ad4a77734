package category

import (
	"context"
	"fmt"

	"github.com/clinicdesk/booking-api/internal/model"
	"github.com/clinicdesk/booking-api/internal/repository"
	"github.com/clinicdesk/booking-api/pkg/errors"
)

type Service struct {
	repo         repository.CategoryRepository
	appointments repository.AppointmentRepository
}

func NewService(repo repository.CategoryRepository, appointments repository.AppointmentRepository) *Service {
	return &Service{repo: repo, appointments: appointments}
}

func (s *Service) CreateCategory(ctx context.Context, req *model.CreateCategoryRequest) (*model.Category, error) {
	if err := s.checkNameFree(ctx, req.Name, 0); err != nil {
		return nil, err
	}

	category := &model.Category{Name: req.Name}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

func (s *Service) GetCategory(ctx context.Context, id int64) (*model.Category, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) ListCategories(ctx context.Context) ([]*model.Category, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *Service) UpdateCategory(ctx context.Context, id int64, req *model.UpdateCategoryRequest) error {
	if req.ID != id {
		return errors.IDMismatch()
	}

	category, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.checkNameFree(ctx, req.Name, id); err != nil {
		return err
	}

	category.Name = req.Name
	if err := s.repo.Update(ctx, category); err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	return nil
}

func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}

	count, err := s.appointments.CountByCategory(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count appointments: %w", err)
	}
	if count > 0 {
		return errors.Conflict("cannot delete category used by appointments", nil)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

func (s *Service) checkNameFree(ctx context.Context, name string, selfID int64) error {
	existing, err := s.repo.GetByName(ctx, name)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to check category name: %w", err)
	}
	if existing.ID != selfID {
		return errors.Conflict("category name already exists", nil)
	}
	return nil
}

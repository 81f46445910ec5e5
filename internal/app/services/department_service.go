package services

import (
	"context"

	"github.com/edutech/studify/internal/app/auth"
	"github.com/edutech/studify/internal/app/models"
	"github.com/edutech/studify/internal/app/models/dto"
	"github.com/edutech/studify/internal/pkg/apperrors"
	"github.com/edutech/studify/internal/pkg/helpers"
	"github.com/edutech/studify/internal/pkg/logger"
)

// departmentStore is the storage the department service depends on.
type departmentStore interface {
	Create(ctx context.Context, dept *models.Department) error
	GetByID(ctx context.Context, id int64) (*models.Department, error)
	List(ctx context.Context, page helpers.PageRequest) ([]*models.Department, int64, error)
	Update(ctx context.Context, dept *models.Department) error
	Delete(ctx context.Context, id int64) error
}

// DepartmentService manages departments.
type DepartmentService struct {
	departments departmentStore
}

// NewDepartmentService creates a new department service.
func NewDepartmentService(departments departmentStore) *DepartmentService {
	return &DepartmentService{departments: departments}
}

// Create adds a department. ADMIN only.
func (s *DepartmentService) Create(ctx context.Context, p auth.Principal, req dto.CreateDepartmentRequest) (*models.Department, error) {
	if err := auth.Authorize(p, auth.ActionManageDepartment, auth.Target{}); err != nil {
		return nil, err
	}

	dept := &models.Department{
		Name:      req.Name,
		Code:      req.Code,
		CreatedBy: p.Username,
	}
	if err := s.departments.Create(ctx, dept); err != nil {
		return nil, err
	}

	logger.Info().Int64("departmentId", dept.ID).Str("code", dept.Code).Msg("Created department")
	return dept, nil
}

// GetByID fetches a department with live membership counts.
func (s *DepartmentService) GetByID(ctx context.Context, id int64) (*models.Department, error) {
	return s.departments.GetByID(ctx, id)
}

// List returns a page of departments.
func (s *DepartmentService) List(ctx context.Context, page helpers.PageRequest) ([]*models.Department, int64, error) {
	return s.departments.List(ctx, page)
}

// Update renames or recodes a department. ADMIN only.
func (s *DepartmentService) Update(ctx context.Context, p auth.Principal, id int64, req dto.UpdateDepartmentRequest) (*models.Department, error) {
	if err := auth.Authorize(p, auth.ActionManageDepartment, auth.Target{}); err != nil {
		return nil, err
	}

	dept, err := s.departments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		dept.Name = *req.Name
	}
	if req.Code != nil {
		dept.Code = *req.Code
	}
	updatedBy := p.Username
	dept.UpdatedBy = &updatedBy

	if err := s.departments.Update(ctx, dept); err != nil {
		return nil, err
	}
	return dept, nil
}

// Delete removes a department. ADMIN only; blocked while any non-deleted
// student or any course still references it.
func (s *DepartmentService) Delete(ctx context.Context, p auth.Principal, id int64) error {
	if err := auth.Authorize(p, auth.ActionManageDepartment, auth.Target{}); err != nil {
		return err
	}

	dept, err := s.departments.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if dept.StudentCount > 0 || dept.CourseCount > 0 {
		return apperrors.NewBusinessError(
			"cannot delete department %q: it has %d active students and %d courses",
			dept.Name, dept.StudentCount, dept.CourseCount)
	}

	if err := s.departments.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info().Int64("departmentId", id).Msg("Deleted department")
	return nil
}

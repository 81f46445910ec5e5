package services

import (
	"context"

	"github.com/edutech/studify/internal/app/auth"
	"github.com/edutech/studify/internal/app/models"
	"github.com/edutech/studify/internal/app/models/dto"
	"github.com/edutech/studify/internal/app/repositories"
	"github.com/edutech/studify/internal/pkg/apperrors"
	pkgauth "github.com/edutech/studify/internal/pkg/auth"
	"github.com/edutech/studify/internal/pkg/helpers"
	"github.com/edutech/studify/internal/pkg/logger"
)

// teacherStore is the storage the teacher service depends on.
type teacherStore interface {
	CreateWithUser(ctx context.Context, user *models.User, teacher *models.Teacher) error
	GetByID(ctx context.Context, id int64, includeDeleted bool) (*models.Teacher, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Teacher, error)
	List(ctx context.Context, filter repositories.TeacherFilter, page helpers.PageRequest) ([]*models.Teacher, int64, error)
	Update(ctx context.Context, teacher *models.Teacher) error
	SoftDelete(ctx context.Context, id int64, deletedBy string) error
	Restore(ctx context.Context, id int64, restoredBy string) error
	CountOwnedCourses(ctx context.Context, teacherID int64) (int64, error)
}

// TeacherService manages teacher profiles and their login accounts.
type TeacherService struct {
	teachers teacherStore
	accounts usernameChecker
}

// NewTeacherService creates a new teacher service.
func NewTeacherService(teachers teacherStore, accounts usernameChecker) *TeacherService {
	return &TeacherService{teachers: teachers, accounts: accounts}
}

// Create adds a teacher profile with a generated username and a fresh login
// account. ADMIN only.
func (s *TeacherService) Create(ctx context.Context, p auth.Principal, req dto.CreateTeacherRequest) (*models.Teacher, error) {
	if err := auth.Authorize(p, auth.ActionManageTeacher, auth.Target{}); err != nil {
		return nil, err
	}

	username, err := generateUsername(ctx, s.accounts, req.FirstName, req.LastName)
	if err != nil {
		return nil, err
	}
	hash, err := pkgauth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: username,
		Email:    req.Email,
		Password: hash,
		Role:     models.RoleTeacher,
		IsActive: true,
	}
	teacher := &models.Teacher{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		Specialization: req.Specialization,
		DepartmentID:   req.DepartmentID,
		CreatedBy:      p.Username,
	}
	if err := s.teachers.CreateWithUser(ctx, user, teacher); err != nil {
		return nil, err
	}
	teacher.User = user

	logger.Info().Int64("teacherId", teacher.ID).Str("username", username).Msg("Created teacher")
	return teacher, nil
}

// GetByID fetches a teacher.
func (s *TeacherService) GetByID(ctx context.Context, p auth.Principal, id int64) (*models.Teacher, error) {
	teacher, err := s.teachers.GetByID(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if err := auth.Authorize(p, auth.ActionViewTeacher, auth.Target{OwnerUserID: teacher.UserID}); err != nil {
		return nil, err
	}
	return teacher, nil
}

// GetOwnProfile fetches the caller's own teacher profile.
func (s *TeacherService) GetOwnProfile(ctx context.Context, p auth.Principal) (*models.Teacher, error) {
	return s.teachers.GetByUserID(ctx, p.UserID)
}

// List returns a page of teachers.
func (s *TeacherService) List(ctx context.Context, p auth.Principal, filter repositories.TeacherFilter, page helpers.PageRequest) ([]*models.Teacher, int64, error) {
	if err := auth.Authorize(p, auth.ActionViewTeacher, auth.Target{}); err != nil {
		return nil, 0, err
	}
	if !p.IsAdmin() {
		filter.IncludeDeleted = false
	}
	return s.teachers.List(ctx, filter, page)
}

// Update edits a teacher. Admins may set every field; teachers editing
// their own profile are limited to phone and specialization.
func (s *TeacherService) Update(ctx context.Context, p auth.Principal, id int64, req dto.UpdateTeacherRequest) (*models.Teacher, error) {
	teacher, err := s.teachers.GetByID(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if err := auth.Authorize(p, auth.ActionUpdateTeacher, auth.Target{OwnerUserID: teacher.UserID}); err != nil {
		return nil, err
	}
	if !p.IsAdmin() && req.TouchesRestrictedFields() {
		return nil, apperrors.NewForbiddenError("teachers may only update phone and specialization")
	}

	if req.FirstName != nil {
		teacher.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		teacher.LastName = *req.LastName
	}
	if req.Email != nil {
		teacher.Email = *req.Email
	}
	if req.Phone != nil {
		teacher.Phone = req.Phone
	}
	if req.Specialization != nil {
		teacher.Specialization = req.Specialization
	}
	if req.DepartmentID != nil {
		teacher.DepartmentID = req.DepartmentID
	}
	updatedBy := p.Username
	teacher.UpdatedBy = &updatedBy

	if err := s.teachers.Update(ctx, teacher); err != nil {
		return nil, err
	}
	return teacher, nil
}

// Delete soft-deletes a teacher and deactivates the login account. ADMIN
// only; blocked while the teacher still owns courses.
func (s *TeacherService) Delete(ctx context.Context, p auth.Principal, id int64) error {
	if err := auth.Authorize(p, auth.ActionManageTeacher, auth.Target{}); err != nil {
		return err
	}

	owned, err := s.teachers.CountOwnedCourses(ctx, id)
	if err != nil {
		return err
	}
	if owned > 0 {
		return apperrors.NewBusinessError(
			"cannot delete teacher: %d courses are still assigned", owned)
	}

	if err := s.teachers.SoftDelete(ctx, id, p.Username); err != nil {
		return err
	}
	logger.Info().Int64("teacherId", id).Msg("Soft-deleted teacher")
	return nil
}

// Restore reverses a soft delete and reactivates the login account. ADMIN
// only; fails if the teacher is not currently deleted.
func (s *TeacherService) Restore(ctx context.Context, p auth.Principal, id int64) (*models.Teacher, error) {
	if err := auth.Authorize(p, auth.ActionManageTeacher, auth.Target{}); err != nil {
		return nil, err
	}
	if err := s.teachers.Restore(ctx, id, p.Username); err != nil {
		return nil, err
	}
	logger.Info().Int64("teacherId", id).Msg("Restored teacher")
	return s.teachers.GetByID(ctx, id, false)
}

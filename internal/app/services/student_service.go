package services

import (
	"context"
	"time"

	"github.com/edutech/studify/internal/app/auth"
	"github.com/edutech/studify/internal/app/models"
	"github.com/edutech/studify/internal/app/models/dto"
	"github.com/edutech/studify/internal/app/repositories"
	"github.com/edutech/studify/internal/pkg/apperrors"
	pkgauth "github.com/edutech/studify/internal/pkg/auth"
	"github.com/edutech/studify/internal/pkg/helpers"
	"github.com/edutech/studify/internal/pkg/logger"
)

// studentStore is the storage the student service depends on.
type studentStore interface {
	CreateWithUser(ctx context.Context, user *models.User, student *models.Student) error
	GetByID(ctx context.Context, id int64, includeDeleted bool) (*models.Student, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Student, error)
	List(ctx context.Context, filter repositories.StudentFilter, page helpers.PageRequest) ([]*models.Student, int64, error)
	Update(ctx context.Context, student *models.Student) error
	SoftDelete(ctx context.Context, id int64, deletedBy string) error
	Restore(ctx context.Context, id int64, restoredBy string) error
}

// StudentService manages student profiles and their login accounts.
type StudentService struct {
	students studentStore
	accounts usernameChecker
}

// NewStudentService creates a new student service.
func NewStudentService(students studentStore, accounts usernameChecker) *StudentService {
	return &StudentService{students: students, accounts: accounts}
}

func parseBirthDate(value string) (time.Time, error) {
	dob, err := time.Parse(helpers.DateFormat, value)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError("invalid date format, expected YYYY-MM-DD",
			map[string]interface{}{"dateOfBirth": value})
	}
	if !dob.Before(helpers.Today()) {
		return time.Time{}, apperrors.NewValidationError("date of birth must be in the past",
			map[string]interface{}{"dateOfBirth": value})
	}
	return dob, nil
}

// Create adds a student profile with a generated username and a fresh login
// account. ADMIN only.
func (s *StudentService) Create(ctx context.Context, p auth.Principal, req dto.CreateStudentRequest) (*models.Student, error) {
	if err := auth.Authorize(p, auth.ActionCreateStudent, auth.Target{}); err != nil {
		return nil, err
	}

	dob, err := parseBirthDate(req.DateOfBirth)
	if err != nil {
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
		Role:     models.RoleStudent,
		IsActive: true,
	}
	student := &models.Student{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		DateOfBirth:    dob,
		Address:        req.Address,
		DepartmentID:   req.DepartmentID,
		EnrollmentDate: helpers.Today(),
		Status:         models.StudentActive,
		CreatedBy:      p.Username,
	}
	if err := s.students.CreateWithUser(ctx, user, student); err != nil {
		return nil, err
	}
	student.User = user

	logger.Info().Int64("studentId", student.ID).Str("username", username).Msg("Created student")
	return student, nil
}

// GetByID fetches a student. Students may only fetch themselves; a foreign
// id yields Forbidden whether or not it exists.
func (s *StudentService) GetByID(ctx context.Context, p auth.Principal, id int64) (*models.Student, error) {
	student, err := s.students.GetByID(ctx, id, false)
	if err != nil {
		return nil, auth.ObscureNotFound(p, err)
	}
	if err := auth.Authorize(p, auth.ActionViewStudent, auth.Target{OwnerUserID: student.UserID}); err != nil {
		return nil, err
	}
	return student, nil
}

// GetOwnProfile fetches the caller's own student profile.
func (s *StudentService) GetOwnProfile(ctx context.Context, p auth.Principal) (*models.Student, error) {
	return s.students.GetByUserID(ctx, p.UserID)
}

// List returns a page of students. ADMIN and TEACHER only.
func (s *StudentService) List(ctx context.Context, p auth.Principal, filter repositories.StudentFilter, page helpers.PageRequest) ([]*models.Student, int64, error) {
	if err := auth.Authorize(p, auth.ActionViewStudent, auth.Target{}); err != nil {
		return nil, 0, err
	}
	if !p.IsAdmin() {
		filter.IncludeDeleted = false
	}
	return s.students.List(ctx, filter, page)
}

// Update edits a student. Admins may set every field; students editing
// their own profile are limited to phone and address.
func (s *StudentService) Update(ctx context.Context, p auth.Principal, id int64, req dto.UpdateStudentRequest) (*models.Student, error) {
	student, err := s.students.GetByID(ctx, id, false)
	if err != nil {
		return nil, auth.ObscureNotFound(p, err)
	}
	if err := auth.Authorize(p, auth.ActionUpdateStudent, auth.Target{OwnerUserID: student.UserID}); err != nil {
		return nil, err
	}
	if !p.IsAdmin() && req.TouchesRestrictedFields() {
		return nil, apperrors.NewForbiddenError("students may only update phone and address")
	}

	if req.FirstName != nil {
		student.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		student.LastName = *req.LastName
	}
	if req.Email != nil {
		student.Email = *req.Email
	}
	if req.Phone != nil {
		student.Phone = req.Phone
	}
	if req.DateOfBirth != nil {
		dob, err := parseBirthDate(*req.DateOfBirth)
		if err != nil {
			return nil, err
		}
		student.DateOfBirth = dob
	}
	if req.Address != nil {
		student.Address = req.Address
	}
	if req.DepartmentID != nil {
		student.DepartmentID = req.DepartmentID
	}
	if req.Status != nil {
		if !models.IsValidStudentStatus(models.StudentStatus(*req.Status)) {
			return nil, apperrors.NewValidationError("invalid student status",
				map[string]interface{}{"status": *req.Status})
		}
		student.Status = models.StudentStatus(*req.Status)
	}
	updatedBy := p.Username
	student.UpdatedBy = &updatedBy

	if err := s.students.Update(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// Delete soft-deletes a student and deactivates the login account. ADMIN
// only.
func (s *StudentService) Delete(ctx context.Context, p auth.Principal, id int64) error {
	if err := auth.Authorize(p, auth.ActionDeleteStudent, auth.Target{}); err != nil {
		return err
	}
	if err := s.students.SoftDelete(ctx, id, p.Username); err != nil {
		return err
	}
	logger.Info().Int64("studentId", id).Msg("Soft-deleted student")
	return nil
}

// Restore reverses a soft delete and reactivates the login account. ADMIN
// only; fails if the student is not currently deleted.
func (s *StudentService) Restore(ctx context.Context, p auth.Principal, id int64) (*models.Student, error) {
	if err := auth.Authorize(p, auth.ActionDeleteStudent, auth.Target{}); err != nil {
		return nil, err
	}
	if err := s.students.Restore(ctx, id, p.Username); err != nil {
		return nil, err
	}
	logger.Info().Int64("studentId", id).Msg("Restored student")
	return s.students.GetByID(ctx, id, false)
}

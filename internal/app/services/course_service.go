package services

import (
	"context"

	"github.com/edutech/studify/internal/app/auth"
	"github.com/edutech/studify/internal/app/models"
	"github.com/edutech/studify/internal/app/models/dto"
	"github.com/edutech/studify/internal/app/repositories"
	"github.com/edutech/studify/internal/pkg/apperrors"
	"github.com/edutech/studify/internal/pkg/helpers"
	"github.com/edutech/studify/internal/pkg/logger"
)

// courseStore is the storage the course service depends on.
type courseStore interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	GetByCode(ctx context.Context, code string) (*models.Course, error)
	List(ctx context.Context, filter repositories.CourseFilter, page helpers.PageRequest) ([]*models.Course, int64, error)
	ListAvailable(ctx context.Context, page helpers.PageRequest) ([]*models.Course, int64, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id int64) error
	CountEnrollments(ctx context.Context, courseID int64) (int64, error)
	CountActiveEnrollments(ctx context.Context, courseID int64) (int64, error)
}

// CourseService manages courses.
type CourseService struct {
	courses     courseStore
	departments departmentReader
	teachers    teacherReader
}

// NewCourseService creates a new course service.
func NewCourseService(courses courseStore, departments departmentReader, teachers teacherReader) *CourseService {
	return &CourseService{courses: courses, departments: departments, teachers: teachers}
}

// Create adds a course. ADMIN only.
func (s *CourseService) Create(ctx context.Context, p auth.Principal, req dto.CreateCourseRequest) (*models.Course, error) {
	if err := auth.Authorize(p, auth.ActionManageCourse, auth.Target{}); err != nil {
		return nil, err
	}

	if _, err := s.departments.GetByID(ctx, req.DepartmentID); err != nil {
		return nil, err
	}
	if req.TeacherID != nil {
		if _, err := s.teachers.GetByID(ctx, *req.TeacherID, false); err != nil {
			return nil, err
		}
	}

	course := &models.Course{
		CourseCode:   req.CourseCode,
		Name:         req.Name,
		Description:  req.Description,
		Credits:      req.Credits,
		Semester:     req.Semester,
		MaxCapacity:  req.MaxCapacity,
		DepartmentID: req.DepartmentID,
		TeacherID:    req.TeacherID,
		CreatedBy:    p.Username,
	}
	if err := s.courses.Create(ctx, course); err != nil {
		return nil, err
	}

	logger.Info().Int64("courseId", course.ID).Str("code", course.CourseCode).Msg("Created course")
	return course, nil
}

// GetByID fetches a course with live occupancy.
func (s *CourseService) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	return s.courses.GetByID(ctx, id)
}

// GetByCode fetches a course by its unique course code.
func (s *CourseService) GetByCode(ctx context.Context, code string) (*models.Course, error) {
	return s.courses.GetByCode(ctx, code)
}

// List returns a page of courses.
func (s *CourseService) List(ctx context.Context, filter repositories.CourseFilter, page helpers.PageRequest) ([]*models.Course, int64, error) {
	return s.courses.List(ctx, filter, page)
}

// ListAvailable returns a page of courses that still have open seats.
func (s *CourseService) ListAvailable(ctx context.Context, page helpers.PageRequest) ([]*models.Course, int64, error) {
	return s.courses.ListAvailable(ctx, page)
}

// AssignTeacher sets or replaces the teacher of a course. ADMIN only.
func (s *CourseService) AssignTeacher(ctx context.Context, p auth.Principal, id, teacherID int64) (*models.Course, error) {
	if err := auth.Authorize(p, auth.ActionManageCourse, auth.Target{}); err != nil {
		return nil, err
	}

	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	teacher, err := s.teachers.GetByID(ctx, teacherID, false)
	if err != nil {
		return nil, err
	}

	course.TeacherID = &teacher.ID
	course.Teacher = teacher
	updatedBy := p.Username
	course.UpdatedBy = &updatedBy

	if err := s.courses.Update(ctx, course); err != nil {
		return nil, err
	}
	logger.Info().Int64("courseId", id).Int64("teacherId", teacherID).Msg("Assigned course teacher")
	return course, nil
}

// Update edits a course. ADMIN only. Reducing max capacity below the
// current ACTIVE enrollment count is rejected and leaves the course
// unchanged.
func (s *CourseService) Update(ctx context.Context, p auth.Principal, id int64, req dto.UpdateCourseRequest) (*models.Course, error) {
	if err := auth.Authorize(p, auth.ActionManageCourse, auth.Target{}); err != nil {
		return nil, err
	}

	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.MaxCapacity != nil && *req.MaxCapacity < course.MaxCapacity {
		active, err := s.courses.CountActiveEnrollments(ctx, id)
		if err != nil {
			return nil, err
		}
		if int64(*req.MaxCapacity) < active {
			return nil, apperrors.NewBusinessError(
				"cannot reduce capacity to %d: %d students are actively enrolled",
				*req.MaxCapacity, active)
		}
	}
	if req.DepartmentID != nil {
		if _, err := s.departments.GetByID(ctx, *req.DepartmentID); err != nil {
			return nil, err
		}
		course.DepartmentID = *req.DepartmentID
	}
	if req.TeacherID != nil {
		if _, err := s.teachers.GetByID(ctx, *req.TeacherID, false); err != nil {
			return nil, err
		}
		course.TeacherID = req.TeacherID
	}

	if req.Name != nil {
		course.Name = *req.Name
	}
	if req.Description != nil {
		course.Description = req.Description
	}
	if req.Credits != nil {
		course.Credits = *req.Credits
	}
	if req.Semester != nil {
		course.Semester = *req.Semester
	}
	if req.MaxCapacity != nil {
		course.MaxCapacity = *req.MaxCapacity
	}
	updatedBy := p.Username
	course.UpdatedBy = &updatedBy

	if err := s.courses.Update(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// Delete removes a course. ADMIN only; blocked while any enrollment of any
// status references it, preserving historical records.
func (s *CourseService) Delete(ctx context.Context, p auth.Principal, id int64) error {
	if err := auth.Authorize(p, auth.ActionManageCourse, auth.Target{}); err != nil {
		return err
	}

	enrollments, err := s.courses.CountEnrollments(ctx, id)
	if err != nil {
		return err
	}
	if enrollments > 0 {
		return apperrors.NewBusinessError(
			"cannot delete course: %d enrollment records reference it", enrollments)
	}

	if err := s.courses.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info().Int64("courseId", id).Msg("Deleted course")
	return nil
}

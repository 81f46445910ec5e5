package services

import (
	"context"

	"github.com/edutech/studify/internal/app/auth"
	"github.com/edutech/studify/internal/app/models"
	"github.com/edutech/studify/internal/pkg/apperrors"
	"github.com/edutech/studify/internal/pkg/helpers"
	"github.com/edutech/studify/internal/pkg/logger"
)

// enrollmentStore is the storage the enrollment service depends on.
type enrollmentStore interface {
	CreateEnrolled(ctx context.Context, enrollment *models.Enrollment) error
	GetByID(ctx context.Context, id int64) (*models.Enrollment, error)
	FindActive(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error)
	ListByStudent(ctx context.Context, studentID int64, status *models.EnrollmentStatus, page helpers.PageRequest) ([]*models.Enrollment, int64, error)
	ListByCourse(ctx context.Context, courseID int64, status *models.EnrollmentStatus, page helpers.PageRequest) ([]*models.Enrollment, int64, error)
	ListActiveByStudent(ctx context.Context, studentID int64) ([]*models.Enrollment, error)
	ListActiveByCourse(ctx context.Context, courseID int64) ([]*models.Enrollment, error)
	UpdateStatus(ctx context.Context, id int64, status models.EnrollmentStatus, updatedBy string) error
	HasGrade(ctx context.Context, enrollmentID int64) (bool, error)
}

// EnrollmentService enrolls and drops students against course capacity.
type EnrollmentService struct {
	enrollments enrollmentStore
	students    studentReader
	courses     courseReader
}

// NewEnrollmentService creates a new enrollment service.
func NewEnrollmentService(enrollments enrollmentStore, students studentReader, courses courseReader) *EnrollmentService {
	return &EnrollmentService{enrollments: enrollments, students: students, courses: courses}
}

// Enroll creates an ACTIVE enrollment dated today. Students may only enroll
// themselves; ADMIN may enroll anyone. The friendly duplicate and capacity
// checks here are advisory; the store enforces both under a course row lock
// so concurrent calls for the last seat admit exactly one.
func (s *EnrollmentService) Enroll(ctx context.Context, p auth.Principal, studentID, courseID int64) (*models.Enrollment, error) {
	student, err := s.students.GetByID(ctx, studentID, false)
	if err != nil {
		return nil, auth.ObscureNotFound(p, err)
	}
	if err := auth.Authorize(p, auth.ActionEnrollStudent, auth.Target{OwnerUserID: student.UserID}); err != nil {
		return nil, err
	}
	if student.Status != models.StudentActive {
		return nil, apperrors.NewBusinessError(
			"student is %s and cannot enroll", student.Status)
	}

	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if _, err := s.enrollments.FindActive(ctx, studentID, courseID); err == nil {
		return nil, apperrors.NewCustomError(apperrors.ErrAlreadyEnrolled,
			"student is already enrolled in this course")
	} else if !apperrors.Is(err, apperrors.ErrEnrollmentNotFound) {
		return nil, err
	}
	if course.IsFull() {
		return nil, apperrors.NewCustomError(apperrors.ErrCourseFull,
			"course is full, no available seats")
	}

	enrollment := &models.Enrollment{
		StudentID:      studentID,
		CourseID:       courseID,
		EnrollmentDate: helpers.Today(),
		Status:         models.EnrollmentActive,
		CreatedBy:      p.Username,
	}
	if err := s.enrollments.CreateEnrolled(ctx, enrollment); err != nil {
		return nil, err
	}

	logger.Info().
		Int64("enrollmentId", enrollment.ID).
		Int64("studentId", studentID).
		Int64("courseId", courseID).
		Msg("Enrolled student")
	return s.enrollments.GetByID(ctx, enrollment.ID)
}

// Drop transitions an enrollment to DROPPED, keeping the row for history.
// Blocked once a grade exists.
func (s *EnrollmentService) Drop(ctx context.Context, p auth.Principal, enrollmentID int64) error {
	enrollment, err := s.enrollments.GetByID(ctx, enrollmentID)
	if err != nil {
		return auth.ObscureNotFound(p, err)
	}
	if err := auth.Authorize(p, auth.ActionDropEnrollment,
		auth.Target{OwnerUserID: enrollment.StudentUserID}); err != nil {
		return err
	}

	if enrollment.Status == models.EnrollmentDropped {
		return apperrors.NewBusinessError("enrollment is already dropped")
	}
	graded, err := s.enrollments.HasGrade(ctx, enrollmentID)
	if err != nil {
		return err
	}
	if graded {
		return apperrors.NewBusinessError("cannot drop an enrollment that has been graded")
	}

	if err := s.enrollments.UpdateStatus(ctx, enrollmentID, models.EnrollmentDropped, p.Username); err != nil {
		return err
	}
	logger.Info().Int64("enrollmentId", enrollmentID).Msg("Dropped enrollment")
	return nil
}

// GetByID fetches an enrollment, applying the ownership rules.
func (s *EnrollmentService) GetByID(ctx context.Context, p auth.Principal, id int64) (*models.Enrollment, error) {
	enrollment, err := s.enrollments.GetByID(ctx, id)
	if err != nil {
		return nil, auth.ObscureNotFound(p, err)
	}
	if err := auth.Authorize(p, auth.ActionViewEnrollment, auth.Target{
		OwnerUserID:       enrollment.StudentUserID,
		CourseOwnerUserID: enrollment.CourseOwnerUserID,
	}); err != nil {
		return nil, err
	}
	return enrollment, nil
}

// ListByStudent returns a page of a student's enrollments. ADMIN, teachers,
// or the student themselves.
func (s *EnrollmentService) ListByStudent(ctx context.Context, p auth.Principal, studentID int64, status *models.EnrollmentStatus, page helpers.PageRequest) ([]*models.Enrollment, int64, error) {
	student, err := s.students.GetByID(ctx, studentID, false)
	if err != nil {
		return nil, 0, auth.ObscureNotFound(p, err)
	}
	if err := auth.Authorize(p, auth.ActionViewStudent, auth.Target{OwnerUserID: student.UserID}); err != nil {
		return nil, 0, err
	}
	return s.enrollments.ListByStudent(ctx, studentID, status, page)
}

// ListByCourse returns a page of a course's roster. ADMIN or the owning
// teacher.
func (s *EnrollmentService) ListByCourse(ctx context.Context, p auth.Principal, courseID int64, status *models.EnrollmentStatus, page helpers.PageRequest) ([]*models.Enrollment, int64, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, 0, err
	}
	if err := auth.Authorize(p, auth.ActionViewEnrollment,
		auth.Target{CourseOwnerUserID: course.OwnerUserID()}); err != nil {
		return nil, 0, err
	}
	return s.enrollments.ListByCourse(ctx, courseID, status, page)
}

// ActiveByStudent returns a student's current ACTIVE enrollments, unpaged,
// for schedule views. ADMIN, teachers, or the student themselves.
func (s *EnrollmentService) ActiveByStudent(ctx context.Context, p auth.Principal, studentID int64) ([]*models.Enrollment, error) {
	student, err := s.students.GetByID(ctx, studentID, false)
	if err != nil {
		return nil, auth.ObscureNotFound(p, err)
	}
	if err := auth.Authorize(p, auth.ActionViewStudent, auth.Target{OwnerUserID: student.UserID}); err != nil {
		return nil, err
	}
	return s.enrollments.ListActiveByStudent(ctx, studentID)
}

// ActiveByCourse returns the current ACTIVE roster of a course, unpaged.
// ADMIN or the owning teacher.
func (s *EnrollmentService) ActiveByCourse(ctx context.Context, p auth.Principal, courseID int64) ([]*models.Enrollment, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if err := auth.Authorize(p, auth.ActionViewEnrollment,
		auth.Target{CourseOwnerUserID: course.OwnerUserID()}); err != nil {
		return nil, err
	}
	return s.enrollments.ListActiveByCourse(ctx, courseID)
}

package services

import (
	"context"
	"time"

	"github.com/edutech/studify/internal/app/auth"
	"github.com/edutech/studify/internal/app/models"
	"github.com/edutech/studify/internal/app/models/dto"
	"github.com/edutech/studify/internal/app/repositories"
	"github.com/edutech/studify/internal/pkg/apperrors"
	"github.com/edutech/studify/internal/pkg/helpers"
	"github.com/edutech/studify/internal/pkg/logger"
)

// gradeStore is the storage the grade service depends on.
type gradeStore interface {
	Upsert(ctx context.Context, grade *models.Grade) error
	GetByID(ctx context.Context, id int64) (*models.Grade, error)
	GetByEnrollment(ctx context.Context, enrollmentID int64) (*models.Grade, error)
	Delete(ctx context.Context, id int64) error
	ListByStudent(ctx context.Context, studentID int64) ([]*models.Grade, error)
	PageByStudent(ctx context.Context, studentID int64, semester string, page helpers.PageRequest) ([]*models.Grade, int64, error)
	ListByCourse(ctx context.Context, courseID int64) ([]*models.Grade, error)
	DistributionByCourse(ctx context.Context, courseID int64) (map[string]int64, error)
	TopPerformers(ctx context.Context, limit int) ([]repositories.TopPerformerRow, error)
}

// enrollmentReader is the slice of enrollment storage grading needs.
type enrollmentReader interface {
	GetByID(ctx context.Context, id int64) (*models.Enrollment, error)
}

// GradeService records grades and answers GPA and statistics queries.
type GradeService struct {
	grades      gradeStore
	enrollments enrollmentReader
	students    studentReader
	courses     courseReader
}

// NewGradeService creates a new grade service.
func NewGradeService(grades gradeStore, enrollments enrollmentReader, students studentReader, courses courseReader) *GradeService {
	return &GradeService{grades: grades, enrollments: enrollments, students: students, courses: courses}
}

// AddOrUpdate records the grade of an enrollment, replacing any existing
// one. The numeric point is derived from the letter; only ACTIVE
// enrollments can be graded.
func (s *GradeService) AddOrUpdate(ctx context.Context, p auth.Principal, req dto.GradeRequest) (*models.Grade, error) {
	enrollment, err := s.enrollments.GetByID(ctx, req.EnrollmentID)
	if err != nil {
		return nil, auth.ObscureNotFound(p, err)
	}
	if enrollment.Status != models.EnrollmentActive {
		return nil, apperrors.NewBusinessError("cannot grade a %s enrollment",
			enrollment.Status)
	}
	if err := auth.Authorize(p, auth.ActionGradeEnrollment,
		auth.Target{CourseOwnerUserID: enrollment.CourseOwnerUserID}); err != nil {
		return nil, err
	}

	if !models.IsValidLetterGrade(req.Grade) {
		return nil, apperrors.NewValidationError("unrecognized letter grade",
			map[string]interface{}{"grade": req.Grade})
	}

	gradedDate := helpers.Today()
	if req.GradedDate != nil {
		gradedDate, err = time.Parse(helpers.DateFormat, *req.GradedDate)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid date format, expected YYYY-MM-DD",
				map[string]interface{}{"gradedDate": *req.GradedDate})
		}
	}

	grade := &models.Grade{
		EnrollmentID: req.EnrollmentID,
		Remarks:      req.Remarks,
		GradedDate:   gradedDate,
		CreatedBy:    p.Username,
	}
	grade.SetGrade(req.Grade)

	if err := s.grades.Upsert(ctx, grade); err != nil {
		return nil, err
	}

	logger.Info().
		Int64("enrollmentId", req.EnrollmentID).
		Str("grade", grade.Grade).
		Msg("Recorded grade")
	return s.grades.GetByID(ctx, grade.ID)
}

// GetByEnrollment fetches the grade of an enrollment, applying the
// ownership rules.
func (s *GradeService) GetByEnrollment(ctx context.Context, p auth.Principal, enrollmentID int64) (*models.Grade, error) {
	grade, err := s.grades.GetByEnrollment(ctx, enrollmentID)
	if err != nil {
		return nil, auth.ObscureNotFound(p, err)
	}
	if err := auth.Authorize(p, auth.ActionViewGrade, auth.Target{
		OwnerUserID:       grade.Enrollment.StudentUserID,
		CourseOwnerUserID: grade.Enrollment.CourseOwnerUserID,
	}); err != nil {
		return nil, err
	}
	return grade, nil
}

// Delete removes a grade. ADMIN only.
func (s *GradeService) Delete(ctx context.Context, p auth.Principal, id int64) error {
	if err := auth.Authorize(p, auth.ActionDeleteGrade, auth.Target{}); err != nil {
		return err
	}
	if err := s.grades.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info().Int64("gradeId", id).Msg("Deleted grade")
	return nil
}

// Transcript assembles a student's graded courses with the plain average of
// grade points as the GPA. ADMIN or the student themselves.
func (s *GradeService) Transcript(ctx context.Context, p auth.Principal, studentID int64) (*dto.TranscriptResponse, error) {
	student, err := s.students.GetByID(ctx, studentID, false)
	if err != nil {
		return nil, auth.ObscureNotFound(p, err)
	}
	if err := auth.Authorize(p, auth.ActionViewGrade,
		auth.Target{OwnerUserID: student.UserID}); err != nil {
		return nil, err
	}

	grades, err := s.grades.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	transcript := &dto.TranscriptResponse{
		StudentID:   studentID,
		StudentName: student.FullName(),
		Entries:     make([]dto.TranscriptEntry, 0, len(grades)),
	}
	var pointSum float64
	for _, grade := range grades {
		course := grade.Enrollment.Course
		transcript.Entries = append(transcript.Entries, dto.TranscriptEntry{
			CourseCode: course.CourseCode,
			CourseName: course.Name,
			Credits:    course.Credits,
			Semester:   course.Semester,
			Grade:      grade.Grade,
			GradePoint: grade.GradePoint,
		})
		transcript.TotalCredits += course.Credits
		pointSum += grade.GradePoint
	}
	if len(grades) > 0 {
		transcript.GPA = pointSum / float64(len(grades))
	}
	return transcript, nil
}

// StudentGrades returns a page of a student's grades, optionally narrowed
// to one semester. ADMIN or the student themselves.
func (s *GradeService) StudentGrades(ctx context.Context, p auth.Principal, studentID int64, semester string, page helpers.PageRequest) ([]*models.Grade, int64, error) {
	student, err := s.students.GetByID(ctx, studentID, false)
	if err != nil {
		return nil, 0, auth.ObscureNotFound(p, err)
	}
	if err := auth.Authorize(p, auth.ActionViewGrade,
		auth.Target{OwnerUserID: student.UserID}); err != nil {
		return nil, 0, err
	}
	return s.grades.PageByStudent(ctx, studentID, semester, page)
}

// CourseGrades lists every grade in a course. ADMIN or the owning teacher.
func (s *GradeService) CourseGrades(ctx context.Context, p auth.Principal, courseID int64) ([]*models.Grade, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if err := auth.Authorize(p, auth.ActionViewGrade,
		auth.Target{CourseOwnerUserID: course.OwnerUserID()}); err != nil {
		return nil, err
	}
	return s.grades.ListByCourse(ctx, courseID)
}

// Distribution counts a course's grades per letter. ADMIN or the owning
// teacher.
func (s *GradeService) Distribution(ctx context.Context, p auth.Principal, courseID int64) (*dto.GradeDistributionResponse, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if err := auth.Authorize(p, auth.ActionViewGrade,
		auth.Target{CourseOwnerUserID: course.OwnerUserID()}); err != nil {
		return nil, err
	}

	distribution, err := s.grades.DistributionByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	return &dto.GradeDistributionResponse{
		CourseID:     courseID,
		CourseCode:   course.CourseCode,
		Distribution: distribution,
	}, nil
}

// TopPerformers ranks students by average grade point. ADMIN only.
func (s *GradeService) TopPerformers(ctx context.Context, p auth.Principal, limit int) ([]dto.TopPerformerResponse, error) {
	if err := auth.Authorize(p, auth.ActionViewStatistics, auth.Target{}); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.grades.TopPerformers(ctx, limit)
	if err != nil {
		return nil, err
	}

	performers := make([]dto.TopPerformerResponse, 0, len(rows))
	for _, row := range rows {
		performers = append(performers, dto.TopPerformerResponse{
			StudentID:   row.StudentID,
			StudentName: row.FirstName + " " + row.LastName,
			GPA:         row.GPA,
			GradedCount: row.GradedCount,
		})
	}
	return performers, nil
}

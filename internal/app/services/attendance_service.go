package services

import (
	"context"
	"time"

	"github.com/edutech/studify/internal/app/auth"
	"github.com/edutech/studify/internal/app/models"
	"github.com/edutech/studify/internal/app/models/dto"
	"github.com/edutech/studify/internal/pkg/apperrors"
	"github.com/edutech/studify/internal/pkg/helpers"
	"github.com/edutech/studify/internal/pkg/logger"
)

// teacherEditWindowDays bounds how far back a teacher may correct a mark.
const teacherEditWindowDays = 7

// attendanceStore is the storage the attendance service depends on.
type attendanceStore interface {
	UpsertBatch(ctx context.Context, records []*models.Attendance) error
	GetByID(ctx context.Context, id int64) (*models.Attendance, error)
	UpdateStatus(ctx context.Context, id int64, status models.AttendanceStatus, updatedBy string) error
	ListByCourseAndDate(ctx context.Context, courseID int64, date time.Time) ([]*models.Attendance, error)
	ListByEnrollment(ctx context.Context, enrollmentID int64) ([]*models.Attendance, error)
	ListByStudent(ctx context.Context, studentID int64, courseID *int64, from, to *time.Time) ([]*models.Attendance, error)
	CountByStatus(ctx context.Context, courseID int64, date time.Time) (map[models.AttendanceStatus]int, error)
	CountAllByStatus(ctx context.Context, courseID int64) (map[models.AttendanceStatus]int, error)
}

// attendanceEnrollmentStore is the slice of enrollment storage attendance
// needs.
type attendanceEnrollmentStore interface {
	GetByID(ctx context.Context, id int64) (*models.Enrollment, error)
	ActiveIDSet(ctx context.Context, courseID int64) (map[int64]bool, error)
}

// AttendanceService records and corrects attendance marks.
type AttendanceService struct {
	attendance  attendanceStore
	enrollments attendanceEnrollmentStore
	students    studentReader
	courses     courseReader
}

// NewAttendanceService creates a new attendance service.
func NewAttendanceService(attendance attendanceStore, enrollments attendanceEnrollmentStore, students studentReader, courses courseReader) *AttendanceService {
	return &AttendanceService{attendance: attendance, enrollments: enrollments, students: students, courses: courses}
}

// Mark records one course-day of attendance. The date may not lie in the
// future and every enrollment id must belong to the course's ACTIVE roster.
// Re-marking a (enrollment, date) pair replaces the earlier status. The
// returned summary's rate counts the full active roster in the denominator,
// so a partial submission dilutes the rate.
func (s *AttendanceService) Mark(ctx context.Context, p auth.Principal, req dto.MarkAttendanceRequest) (*dto.AttendanceSummaryResponse, error) {
	date, err := time.Parse(helpers.DateFormat, req.Date)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid date format, expected YYYY-MM-DD",
			map[string]interface{}{"date": req.Date})
	}
	if date.After(helpers.Today()) {
		return nil, apperrors.NewBusinessError("cannot mark attendance for a future date")
	}

	course, err := s.courses.GetByID(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}
	if err := auth.Authorize(p, auth.ActionMarkAttendance,
		auth.Target{CourseOwnerUserID: course.OwnerUserID()}); err != nil {
		return nil, err
	}

	activeIDs, err := s.enrollments.ActiveIDSet(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}
	for _, record := range req.Records {
		if !activeIDs[record.EnrollmentID] {
			return nil, apperrors.NewBusinessError(
				"enrollment %d is not an active enrollment of this course", record.EnrollmentID)
		}
	}

	records := make([]*models.Attendance, 0, len(req.Records))
	for _, record := range req.Records {
		records = append(records, &models.Attendance{
			EnrollmentID: record.EnrollmentID,
			Date:         date,
			Status:       models.AttendanceStatus(record.Status),
			CreatedBy:    p.Username,
		})
	}
	if err := s.attendance.UpsertBatch(ctx, records); err != nil {
		return nil, err
	}

	logger.Info().
		Int64("courseId", req.CourseID).
		Str("date", req.Date).
		Int("records", len(records)).
		Msg("Marked attendance")
	return s.buildSummary(ctx, req.CourseID, date, len(activeIDs))
}

// Update corrects one recorded mark. Teachers may only edit marks of their
// own courses dated within the last week; ADMIN is unrestricted.
func (s *AttendanceService) Update(ctx context.Context, p auth.Principal, id int64, req dto.UpdateAttendanceRequest) (*models.Attendance, error) {
	record, err := s.attendance.GetByID(ctx, id)
	if err != nil {
		return nil, auth.ObscureNotFound(p, err)
	}
	if err := auth.Authorize(p, auth.ActionUpdateAttendance,
		auth.Target{CourseOwnerUserID: record.CourseOwnerUserID}); err != nil {
		return nil, err
	}
	if p.IsTeacher() && helpers.DaysBetween(record.Date, helpers.Today()) > teacherEditWindowDays {
		return nil, apperrors.NewBusinessError(
			"attendance older than %d days can no longer be edited", teacherEditWindowDays)
	}

	if err := s.attendance.UpdateStatus(ctx, id, models.AttendanceStatus(req.Status), p.Username); err != nil {
		return nil, err
	}
	return s.attendance.GetByID(ctx, id)
}

// CourseDay lists a course's marks on one date. ADMIN or the owning
// teacher.
func (s *AttendanceService) CourseDay(ctx context.Context, p auth.Principal, courseID int64, dateStr string) ([]*models.Attendance, error) {
	date, err := time.Parse(helpers.DateFormat, dateStr)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid date format, expected YYYY-MM-DD",
			map[string]interface{}{"date": dateStr})
	}

	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if err := auth.Authorize(p, auth.ActionViewAttendance,
		auth.Target{CourseOwnerUserID: course.OwnerUserID()}); err != nil {
		return nil, err
	}
	return s.attendance.ListByCourseAndDate(ctx, courseID, date)
}

// History lists the full attendance record of one enrollment, applying the
// ownership rules.
func (s *AttendanceService) History(ctx context.Context, p auth.Principal, enrollmentID int64) ([]*models.Attendance, error) {
	enrollment, err := s.enrollments.GetByID(ctx, enrollmentID)
	if err != nil {
		return nil, auth.ObscureNotFound(p, err)
	}
	if err := auth.Authorize(p, auth.ActionViewAttendance, auth.Target{
		OwnerUserID:       enrollment.StudentUserID,
		CourseOwnerUserID: enrollment.CourseOwnerUserID,
	}); err != nil {
		return nil, err
	}
	return s.attendance.ListByEnrollment(ctx, enrollmentID)
}

// StudentHistory lists a student's marks across courses, optionally
// narrowed to one course and an inclusive date range. ADMIN or the
// student themselves.
func (s *AttendanceService) StudentHistory(ctx context.Context, p auth.Principal, studentID int64, courseID *int64, fromStr, toStr string) ([]*models.Attendance, error) {
	student, err := s.students.GetByID(ctx, studentID, false)
	if err != nil {
		return nil, auth.ObscureNotFound(p, err)
	}
	if err := auth.Authorize(p, auth.ActionViewAttendance,
		auth.Target{OwnerUserID: student.UserID}); err != nil {
		return nil, err
	}

	from, err := parseOptionalDate(fromStr, "from")
	if err != nil {
		return nil, err
	}
	to, err := parseOptionalDate(toStr, "to")
	if err != nil {
		return nil, err
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, apperrors.NewValidationError("date range end precedes its start",
			map[string]interface{}{"from": fromStr, "to": toStr})
	}
	return s.attendance.ListByStudent(ctx, studentID, courseID, from, to)
}

func parseOptionalDate(raw, field string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	date, err := time.Parse(helpers.DateFormat, raw)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid date format, expected YYYY-MM-DD",
			map[string]interface{}{field: raw})
	}
	return &date, nil
}

// Statistics aggregates every recorded mark of a course across all dates.
// ADMIN or the owning teacher. Unlike the one-day summary, the denominator
// is the number of recorded marks, not the roster size.
func (s *AttendanceService) Statistics(ctx context.Context, p auth.Principal, courseID int64) (*dto.AttendanceStatisticsResponse, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if err := auth.Authorize(p, auth.ActionViewAttendance,
		auth.Target{CourseOwnerUserID: course.OwnerUserID()}); err != nil {
		return nil, err
	}

	counts, err := s.attendance.CountAllByStatus(ctx, courseID)
	if err != nil {
		return nil, err
	}

	present := counts[models.AttendancePresent]
	late := counts[models.AttendanceLate]
	absent := counts[models.AttendanceAbsent]
	total := present + late + absent
	return &dto.AttendanceStatisticsResponse{
		CourseID:       courseID,
		CourseCode:     course.CourseCode,
		TotalRecords:   total,
		PresentCount:   present,
		AbsentCount:    absent,
		LateCount:      late,
		AttendanceRate: models.ComputeAttendancePercentage(present, late, total),
	}, nil
}

// Summary aggregates one course-day. ADMIN or the owning teacher.
func (s *AttendanceService) Summary(ctx context.Context, p auth.Principal, courseID int64, dateStr string) (*dto.AttendanceSummaryResponse, error) {
	date, err := time.Parse(helpers.DateFormat, dateStr)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid date format, expected YYYY-MM-DD",
			map[string]interface{}{"date": dateStr})
	}

	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if err := auth.Authorize(p, auth.ActionViewAttendance,
		auth.Target{CourseOwnerUserID: course.OwnerUserID()}); err != nil {
		return nil, err
	}

	activeIDs, err := s.enrollments.ActiveIDSet(ctx, courseID)
	if err != nil {
		return nil, err
	}
	return s.buildSummary(ctx, courseID, date, len(activeIDs))
}

func (s *AttendanceService) buildSummary(ctx context.Context, courseID int64, date time.Time, totalActive int) (*dto.AttendanceSummaryResponse, error) {
	counts, err := s.attendance.CountByStatus(ctx, courseID, date)
	if err != nil {
		return nil, err
	}

	present := counts[models.AttendancePresent]
	late := counts[models.AttendanceLate]
	return &dto.AttendanceSummaryResponse{
		CourseID:       courseID,
		Date:           date.Format(helpers.DateFormat),
		TotalStudents:  totalActive,
		PresentCount:   present,
		AbsentCount:    counts[models.AttendanceAbsent],
		LateCount:      late,
		AttendanceRate: models.ComputeAttendancePercentage(present, late, totalActive),
	}, nil
}

package dto

import (
	"github.com/edutech/studify/internal/app/models"
	"github.com/edutech/studify/internal/pkg/helpers"
)

// AttendanceRecordRequest is one student's mark inside a bulk submission.
type AttendanceRecordRequest struct {
	EnrollmentID int64  `json:"enrollmentId" binding:"required"`
	Status       string `json:"status" binding:"required,oneof=PRESENT ABSENT LATE"`
}

// MarkAttendanceRequest records attendance for a course on one date. Every
// enrollment id must belong to the course's active roster; the date may not
// lie in the future.
type MarkAttendanceRequest struct {
	CourseID int64                     `json:"courseId" binding:"required"`
	Date     string                    `json:"date" binding:"required,datestring"`
	Records  []AttendanceRecordRequest `json:"records" binding:"required,min=1,dive"`
}

// UpdateAttendanceRequest corrects a single recorded mark.
type UpdateAttendanceRequest struct {
	Status string `json:"status" binding:"required,oneof=PRESENT ABSENT LATE"`
}

// AttendanceResponse is the API view of one attendance mark.
type AttendanceResponse struct {
	ID           int64                   `json:"id"`
	EnrollmentID int64                   `json:"enrollmentId"`
	StudentName  string                  `json:"studentName,omitempty"`
	CourseID     int64                   `json:"courseId,omitempty"`
	Date         string                  `json:"date"`
	Status       models.AttendanceStatus `json:"status"`
}

// NewAttendanceResponse maps an attendance model to its response view.
func NewAttendanceResponse(a *models.Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:           a.ID,
		EnrollmentID: a.EnrollmentID,
		CourseID:     a.CourseID,
		Date:         a.Date.Format(helpers.DateFormat),
		Status:       a.Status,
	}
	if a.Enrollment != nil && a.Enrollment.Student != nil {
		resp.StudentName = a.Enrollment.Student.FullName()
	}
	return resp
}

// AttendanceSummaryResponse aggregates one course-day of attendance. The
// rate denominator is the full active roster, so unmarked students count
// against it.
type AttendanceSummaryResponse struct {
	CourseID       int64   `json:"courseId"`
	Date           string  `json:"date"`
	TotalStudents  int     `json:"totalStudents"`
	PresentCount   int     `json:"presentCount"`
	AbsentCount    int     `json:"absentCount"`
	LateCount      int     `json:"lateCount"`
	AttendanceRate float64 `json:"attendanceRate"`
}

// AttendanceStatisticsResponse aggregates every recorded mark of a course
// across all dates. The rate denominator is the number of recorded marks.
type AttendanceStatisticsResponse struct {
	CourseID       int64   `json:"courseId"`
	CourseCode     string  `json:"courseCode"`
	TotalRecords   int     `json:"totalRecords"`
	PresentCount   int     `json:"presentCount"`
	AbsentCount    int     `json:"absentCount"`
	LateCount      int     `json:"lateCount"`
	AttendanceRate float64 `json:"attendanceRate"`
}

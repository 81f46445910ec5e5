package dto

import (
	"github.com/edutech/studify/internal/app/models"
	"github.com/edutech/studify/internal/pkg/helpers"
)

// EnrollRequest enrolls a student into a course.
type EnrollRequest struct {
	StudentID int64 `json:"studentId" binding:"required"`
	CourseID  int64 `json:"courseId" binding:"required"`
}

// EnrollmentResponse is the API view of an enrollment.
type EnrollmentResponse struct {
	ID                   int64                   `json:"id"`
	StudentID            int64                   `json:"studentId"`
	StudentName          string                  `json:"studentName,omitempty"`
	CourseID             int64                   `json:"courseId"`
	CourseCode           string                  `json:"courseCode,omitempty"`
	CourseName           string                  `json:"courseName,omitempty"`
	EnrollmentDate       string                  `json:"enrollmentDate"`
	Status               models.EnrollmentStatus `json:"status"`
	AttendancePercentage float64                 `json:"attendancePercentage"`
}

// NewEnrollmentResponse maps an enrollment model to its response view.
func NewEnrollmentResponse(e *models.Enrollment) EnrollmentResponse {
	resp := EnrollmentResponse{
		ID:                   e.ID,
		StudentID:            e.StudentID,
		CourseID:             e.CourseID,
		EnrollmentDate:       e.EnrollmentDate.Format(helpers.DateFormat),
		Status:               e.Status,
		AttendancePercentage: e.AttendancePercentage,
	}
	if e.Student != nil {
		resp.StudentName = e.Student.FullName()
	}
	if e.Course != nil {
		resp.CourseCode = e.Course.CourseCode
		resp.CourseName = e.Course.Name
	}
	return resp
}

package dto

import (
	"github.com/edutech/studify/internal/app/models"
	"github.com/edutech/studify/internal/pkg/helpers"
)

// GradeRequest creates or replaces the grade of an enrollment. The numeric
// point is derived server-side from the letter.
type GradeRequest struct {
	EnrollmentID int64   `json:"enrollmentId" binding:"required"`
	Grade        string  `json:"grade" binding:"required,lettergrade"`
	Remarks      *string `json:"remarks,omitempty" binding:"omitempty,max=500"`
	GradedDate   *string `json:"gradedDate,omitempty" binding:"omitempty,datestring"`
}

// GradeResponse is the API view of a grade.
type GradeResponse struct {
	ID           int64   `json:"id"`
	EnrollmentID int64   `json:"enrollmentId"`
	StudentName  string  `json:"studentName,omitempty"`
	CourseCode   string  `json:"courseCode,omitempty"`
	CourseName   string  `json:"courseName,omitempty"`
	Grade        string  `json:"grade"`
	GradePoint   float64 `json:"gradePoint"`
	Remarks      *string `json:"remarks,omitempty"`
	GradedDate   string  `json:"gradedDate"`
}

// NewGradeResponse maps a grade model to its response view.
func NewGradeResponse(g *models.Grade) GradeResponse {
	resp := GradeResponse{
		ID:           g.ID,
		EnrollmentID: g.EnrollmentID,
		Grade:        g.Grade,
		GradePoint:   g.GradePoint,
		Remarks:      g.Remarks,
		GradedDate:   g.GradedDate.Format(helpers.DateFormat),
	}
	if g.Enrollment != nil {
		if g.Enrollment.Student != nil {
			resp.StudentName = g.Enrollment.Student.FullName()
		}
		if g.Enrollment.Course != nil {
			resp.CourseCode = g.Enrollment.Course.CourseCode
			resp.CourseName = g.Enrollment.Course.Name
		}
	}
	return resp
}

// TranscriptEntry is one graded course in a student's transcript.
type TranscriptEntry struct {
	CourseCode string  `json:"courseCode"`
	CourseName string  `json:"courseName"`
	Credits    int     `json:"credits"`
	Semester   string  `json:"semester"`
	Grade      string  `json:"grade"`
	GradePoint float64 `json:"gradePoint"`
}

// TranscriptResponse is a student's full academic record with the
// credit-weighted GPA.
type TranscriptResponse struct {
	StudentID    int64             `json:"studentId"`
	StudentName  string            `json:"studentName"`
	Entries      []TranscriptEntry `json:"entries"`
	TotalCredits int               `json:"totalCredits"`
	GPA          float64           `json:"gpa"`
}

// GradeDistributionResponse counts grades per letter for one course.
type GradeDistributionResponse struct {
	CourseID     int64            `json:"courseId"`
	CourseCode   string           `json:"courseCode"`
	Distribution map[string]int64 `json:"distribution"`
}

// TopPerformerResponse is one ranked student by GPA.
type TopPerformerResponse struct {
	StudentID   int64   `json:"studentId"`
	StudentName string  `json:"studentName"`
	GPA         float64 `json:"gpa"`
	GradedCount int     `json:"gradedCount"`
}

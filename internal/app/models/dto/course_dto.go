package dto

import "github.com/edutech/studify/internal/app/models"

// CreateCourseRequest creates a course. The teacher assignment is optional
// and may be set later.
type CreateCourseRequest struct {
	CourseCode   string  `json:"courseCode" binding:"required,coursecode"`
	Name         string  `json:"name" binding:"required,min=2,max=150"`
	Description  *string `json:"description,omitempty" binding:"omitempty,max=1000"`
	Credits      int     `json:"credits" binding:"required,min=1,max=6"`
	Semester     string  `json:"semester" binding:"required,max=50"`
	MaxCapacity  int     `json:"maxCapacity" binding:"required,min=10,max=200"`
	DepartmentID int64   `json:"departmentId" binding:"required"`
	TeacherID    *int64  `json:"teacherId,omitempty"`
}

// UpdateCourseRequest updates a course. Reducing maxCapacity below the
// current active enrollment count is rejected by the service.
type UpdateCourseRequest struct {
	Name         *string `json:"name,omitempty" binding:"omitempty,min=2,max=150"`
	Description  *string `json:"description,omitempty" binding:"omitempty,max=1000"`
	Credits      *int    `json:"credits,omitempty" binding:"omitempty,min=1,max=6"`
	Semester     *string `json:"semester,omitempty" binding:"omitempty,max=50"`
	MaxCapacity  *int    `json:"maxCapacity,omitempty" binding:"omitempty,min=10,max=200"`
	DepartmentID *int64  `json:"departmentId,omitempty"`
	TeacherID    *int64  `json:"teacherId,omitempty"`
}

// AssignTeacherRequest sets or replaces the teacher of a course.
type AssignTeacherRequest struct {
	TeacherID int64 `json:"teacherId" binding:"required"`
}

// CourseResponse is the API view of a course, including live occupancy.
type CourseResponse struct {
	ID             int64   `json:"id"`
	CourseCode     string  `json:"courseCode"`
	Name           string  `json:"name"`
	Description    *string `json:"description,omitempty"`
	Credits        int     `json:"credits"`
	Semester       string  `json:"semester"`
	MaxCapacity    int     `json:"maxCapacity"`
	EnrolledCount  int     `json:"enrolledCount"`
	AvailableSeats int     `json:"availableSeats"`
	DepartmentID   int64   `json:"departmentId"`
	DepartmentName string  `json:"departmentName,omitempty"`
	TeacherID      *int64  `json:"teacherId,omitempty"`
	TeacherName    string  `json:"teacherName,omitempty"`
}

// NewCourseResponse maps a course model to its response view.
func NewCourseResponse(c *models.Course) CourseResponse {
	resp := CourseResponse{
		ID:             c.ID,
		CourseCode:     c.CourseCode,
		Name:           c.Name,
		Description:    c.Description,
		Credits:        c.Credits,
		Semester:       c.Semester,
		MaxCapacity:    c.MaxCapacity,
		EnrolledCount:  c.EnrolledCount,
		AvailableSeats: c.AvailableSeats(),
		DepartmentID:   c.DepartmentID,
		TeacherID:      c.TeacherID,
	}
	if c.Department != nil {
		resp.DepartmentName = c.Department.Name
	}
	if c.Teacher != nil {
		resp.TeacherName = c.Teacher.FullName()
	}
	return resp
}

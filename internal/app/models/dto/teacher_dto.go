package dto

import "github.com/edutech/studify/internal/app/models"

// CreateTeacherRequest creates a teacher profile together with its login
// account.
type CreateTeacherRequest struct {
	FirstName      string  `json:"firstName" binding:"required,min=2,max=100"`
	LastName       string  `json:"lastName" binding:"required,min=2,max=100"`
	Email          string  `json:"email" binding:"required,email"`
	Password       string  `json:"password" binding:"required,min=8"`
	Phone          *string `json:"phone,omitempty" binding:"omitempty,phone"`
	Specialization *string `json:"specialization,omitempty" binding:"omitempty,max=150"`
	DepartmentID   *int64  `json:"departmentId,omitempty"`
}

// UpdateTeacherRequest updates a teacher. Teachers editing themselves are
// limited to phone and specialization, which the service enforces.
type UpdateTeacherRequest struct {
	FirstName      *string `json:"firstName,omitempty" binding:"omitempty,min=2,max=100"`
	LastName       *string `json:"lastName,omitempty" binding:"omitempty,min=2,max=100"`
	Email          *string `json:"email,omitempty" binding:"omitempty,email"`
	Phone          *string `json:"phone,omitempty" binding:"omitempty,phone"`
	Specialization *string `json:"specialization,omitempty" binding:"omitempty,max=150"`
	DepartmentID   *int64  `json:"departmentId,omitempty"`
}

// TouchesRestrictedFields reports whether the update sets anything beyond
// the self-service fields phone and specialization.
func (r UpdateTeacherRequest) TouchesRestrictedFields() bool {
	return r.FirstName != nil || r.LastName != nil || r.Email != nil || r.DepartmentID != nil
}

// TeacherResponse is the API view of a teacher.
type TeacherResponse struct {
	ID             int64   `json:"id"`
	Username       string  `json:"username,omitempty"`
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	Email          string  `json:"email"`
	Phone          *string `json:"phone,omitempty"`
	Specialization *string `json:"specialization,omitempty"`
	DepartmentID   *int64  `json:"departmentId,omitempty"`
	DepartmentName string  `json:"departmentName,omitempty"`
	CourseCount    int64   `json:"courseCount"`
	Deleted        bool    `json:"deleted"`
}

// NewTeacherResponse maps a teacher model to its response view.
func NewTeacherResponse(t *models.Teacher) TeacherResponse {
	resp := TeacherResponse{
		ID:             t.ID,
		FirstName:      t.FirstName,
		LastName:       t.LastName,
		Email:          t.Email,
		Phone:          t.Phone,
		Specialization: t.Specialization,
		DepartmentID:   t.DepartmentID,
		CourseCount:    t.CourseCount,
		Deleted:        t.Deleted,
	}
	if t.User != nil {
		resp.Username = t.User.Username
	}
	if t.Department != nil {
		resp.DepartmentName = t.Department.Name
	}
	return resp
}

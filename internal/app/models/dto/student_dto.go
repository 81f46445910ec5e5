package dto

import (
	"github.com/edutech/studify/internal/app/models"
	"github.com/edutech/studify/internal/pkg/helpers"
)

// CreateStudentRequest creates a student profile together with its login
// account. The username is generated from the name, so only a password is
// taken here. Dates use the YYYY-MM-DD form.
type CreateStudentRequest struct {
	FirstName    string  `json:"firstName" binding:"required,min=2,max=100"`
	LastName     string  `json:"lastName" binding:"required,min=2,max=100"`
	Email        string  `json:"email" binding:"required,email"`
	Password     string  `json:"password" binding:"required,min=8"`
	Phone        *string `json:"phone,omitempty" binding:"omitempty,phone"`
	DateOfBirth  string  `json:"dateOfBirth" binding:"required,datestring"`
	Address      *string `json:"address,omitempty" binding:"omitempty,max=255"`
	DepartmentID *int64  `json:"departmentId,omitempty"`
}

// UpdateStudentRequest updates a student. Admins may set every field;
// students editing their own profile are limited to phone and address, which
// the service enforces.
type UpdateStudentRequest struct {
	FirstName    *string `json:"firstName,omitempty" binding:"omitempty,min=2,max=100"`
	LastName     *string `json:"lastName,omitempty" binding:"omitempty,min=2,max=100"`
	Email        *string `json:"email,omitempty" binding:"omitempty,email"`
	Phone        *string `json:"phone,omitempty" binding:"omitempty,phone"`
	DateOfBirth  *string `json:"dateOfBirth,omitempty" binding:"omitempty,datestring"`
	Address      *string `json:"address,omitempty" binding:"omitempty,max=255"`
	DepartmentID *int64  `json:"departmentId,omitempty"`
	Status       *string `json:"status,omitempty" binding:"omitempty,oneof=ACTIVE INACTIVE GRADUATED"`
}

// TouchesRestrictedFields reports whether the update sets anything beyond
// the self-service fields phone and address.
func (r UpdateStudentRequest) TouchesRestrictedFields() bool {
	return r.FirstName != nil || r.LastName != nil || r.Email != nil ||
		r.DateOfBirth != nil || r.DepartmentID != nil || r.Status != nil
}

// StudentResponse is the API view of a student.
type StudentResponse struct {
	ID             int64                `json:"id"`
	Username       string               `json:"username,omitempty"`
	FirstName      string               `json:"firstName"`
	LastName       string               `json:"lastName"`
	Email          string               `json:"email"`
	Phone          *string              `json:"phone,omitempty"`
	DateOfBirth    string               `json:"dateOfBirth"`
	Address        *string              `json:"address,omitempty"`
	DepartmentID   *int64               `json:"departmentId,omitempty"`
	DepartmentName string               `json:"departmentName,omitempty"`
	EnrollmentDate string               `json:"enrollmentDate"`
	Status         models.StudentStatus `json:"status"`
	Deleted        bool                 `json:"deleted"`
}

// NewStudentResponse maps a student model to its response view.
func NewStudentResponse(s *models.Student) StudentResponse {
	resp := StudentResponse{
		ID:             s.ID,
		FirstName:      s.FirstName,
		LastName:       s.LastName,
		Email:          s.Email,
		Phone:          s.Phone,
		DateOfBirth:    s.DateOfBirth.Format(helpers.DateFormat),
		Address:        s.Address,
		DepartmentID:   s.DepartmentID,
		EnrollmentDate: s.EnrollmentDate.Format(helpers.DateFormat),
		Status:         s.Status,
		Deleted:        s.Deleted,
	}
	if s.User != nil {
		resp.Username = s.User.Username
	}
	if s.Department != nil {
		resp.DepartmentName = s.Department.Name
	}
	return resp
}

package dto

import "github.com/edutech/studify/internal/app/models"

// CreateDepartmentRequest creates a department. Code is uppercase
// alphanumeric, unique alongside the name.
type CreateDepartmentRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
	Code string `json:"code" binding:"required,departmentcode"`
}

// UpdateDepartmentRequest renames or recodes a department. Omitted fields
// keep their current value.
type UpdateDepartmentRequest struct {
	Name *string `json:"name,omitempty" binding:"omitempty,min=2,max=100"`
	Code *string `json:"code,omitempty" binding:"omitempty,departmentcode"`
}

// DepartmentResponse includes live membership counts.
type DepartmentResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Code         string `json:"code"`
	StudentCount int64  `json:"studentCount"`
	TeacherCount int64  `json:"teacherCount"`
	CourseCount  int64  `json:"courseCount"`
}

// NewDepartmentResponse maps a department model to its response view.
func NewDepartmentResponse(d *models.Department) DepartmentResponse {
	return DepartmentResponse{
		ID:           d.ID,
		Name:         d.Name,
		Code:         d.Code,
		StudentCount: d.StudentCount,
		TeacherCount: d.TeacherCount,
		CourseCount:  d.CourseCount,
	}
}

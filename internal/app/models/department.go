package models

import "time"

// Department defines the department model based on the 'departments' table
type Department struct {
	ID        int64      `json:"id" db:"id" example:"1"`
	Name      string     `json:"name" db:"name" example:"Computer Science"`
	Code      string     `json:"code" db:"code" example:"CS"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	CreatedBy string     `json:"createdBy,omitempty" db:"created_by"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty" db:"updated_at"`
	UpdatedBy *string    `json:"updatedBy,omitempty" db:"updated_by"`

	// Live counts, computed on read, never persisted
	StudentCount int64 `json:"studentCount" db:"-"`
	TeacherCount int64 `json:"teacherCount" db:"-"`
	CourseCount  int64 `json:"courseCount" db:"-"`
}

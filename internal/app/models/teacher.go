package models

import "time"

// Teacher defines the teacher profile based on the 'teachers' table.
// Soft-delete semantics mirror Student.
type Teacher struct {
	ID             int64      `json:"id" db:"id"`
	UserID         int64      `json:"userId" db:"user_id"`
	FirstName      string     `json:"firstName" db:"first_name"`
	LastName       string     `json:"lastName" db:"last_name"`
	Email          string     `json:"email" db:"email"`
	Phone          *string    `json:"phone,omitempty" db:"phone"`
	DepartmentID   *int64     `json:"departmentId,omitempty" db:"department_id"`
	Specialization *string    `json:"specialization,omitempty" db:"specialization"`
	Deleted        bool       `json:"deleted" db:"deleted"`
	DeletedAt      *time.Time `json:"deletedAt,omitempty" db:"deleted_at"`
	DeletedBy      *string    `json:"deletedBy,omitempty" db:"deleted_by"`
	CreatedAt      time.Time  `json:"createdAt" db:"created_at"`
	CreatedBy      string     `json:"createdBy,omitempty" db:"created_by"`
	UpdatedAt      *time.Time `json:"updatedAt,omitempty" db:"updated_at"`
	UpdatedBy      *string    `json:"updatedBy,omitempty" db:"updated_by"`

	User       *User       `json:"user,omitempty" db:"-"`
	Department *Department `json:"department,omitempty" db:"-"`

	// Live count of courses owned, computed on read
	CourseCount int64 `json:"courseCount" db:"-"`
}

// FullName returns the display name of the teacher.
func (t *Teacher) FullName() string {
	return t.FirstName + " " + t.LastName
}

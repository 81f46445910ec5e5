package models

import "time"

// Student defines the student profile based on the 'students' table.
// Students are soft-deleted: the row is retained with the deleted flag set
// and the linked user account deactivated.
type Student struct {
	ID             int64         `json:"id" db:"id"`
	UserID         int64         `json:"userId" db:"user_id"`
	FirstName      string        `json:"firstName" db:"first_name"`
	LastName       string        `json:"lastName" db:"last_name"`
	Email          string        `json:"email" db:"email"`
	Phone          *string       `json:"phone,omitempty" db:"phone"`
	DateOfBirth    time.Time     `json:"dateOfBirth" db:"date_of_birth"`
	Address        *string       `json:"address,omitempty" db:"address"`
	DepartmentID   *int64        `json:"departmentId,omitempty" db:"department_id"`
	EnrollmentDate time.Time     `json:"enrollmentDate" db:"enrollment_date"`
	Status         StudentStatus `json:"status" db:"status"`
	Deleted        bool          `json:"deleted" db:"deleted"`
	DeletedAt      *time.Time    `json:"deletedAt,omitempty" db:"deleted_at"`
	DeletedBy      *string       `json:"deletedBy,omitempty" db:"deleted_by"`
	CreatedAt      time.Time     `json:"createdAt" db:"created_at"`
	CreatedBy      string        `json:"createdBy,omitempty" db:"created_by"`
	UpdatedAt      *time.Time    `json:"updatedAt,omitempty" db:"updated_at"`
	UpdatedBy      *string       `json:"updatedBy,omitempty" db:"updated_by"`

	User       *User       `json:"user,omitempty" db:"-"`
	Department *Department `json:"department,omitempty" db:"-"`
}

// FullName returns the display name of the student.
func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

package models

import "time"

// Attendance is one mark per (enrollment, date). Re-marking the same pair
// updates the existing row instead of erroring.
type Attendance struct {
	ID           int64            `json:"id" db:"id"`
	EnrollmentID int64            `json:"enrollmentId" db:"enrollment_id"`
	Date         time.Time        `json:"date" db:"date"`
	Status       AttendanceStatus `json:"status" db:"status"`
	CreatedAt    time.Time        `json:"createdAt" db:"created_at"`
	CreatedBy    string           `json:"createdBy,omitempty" db:"created_by"`
	UpdatedAt    *time.Time       `json:"updatedAt,omitempty" db:"updated_at"`
	UpdatedBy    *string          `json:"updatedBy,omitempty" db:"updated_by"`

	Enrollment *Enrollment `json:"enrollment,omitempty" db:"-"`

	// Joined ownership context for authorization checks
	StudentUserID     int64 `json:"-" db:"-"`
	CourseOwnerUserID int64 `json:"-" db:"-"`
	CourseID          int64 `json:"courseId,omitempty" db:"-"`
}

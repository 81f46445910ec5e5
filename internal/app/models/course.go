package models

import "time"

// Course defines the course model based on the 'courses' table.
type Course struct {
	ID           int64      `json:"id" db:"id"`
	CourseCode   string     `json:"courseCode" db:"course_code"`
	Name         string     `json:"name" db:"name"`
	Description  *string    `json:"description,omitempty" db:"description"`
	Credits      int        `json:"credits" db:"credits"`
	Semester     string     `json:"semester" db:"semester"`
	MaxCapacity  int        `json:"maxCapacity" db:"max_capacity"`
	DepartmentID int64      `json:"departmentId" db:"department_id"`
	TeacherID    *int64     `json:"teacherId,omitempty" db:"teacher_id"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	CreatedBy    string     `json:"createdBy,omitempty" db:"created_by"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty" db:"updated_at"`
	UpdatedBy    *string    `json:"updatedBy,omitempty" db:"updated_by"`

	Department *Department `json:"department,omitempty" db:"-"`
	Teacher    *Teacher    `json:"teacher,omitempty" db:"-"`

	// EnrolledCount is the live count of ACTIVE enrollments, recomputed on
	// every read so seat accounting never drifts from stored state.
	EnrolledCount int `json:"enrolledCount" db:"-"`
}

// IsFull reports whether the course has no seats left.
func (c *Course) IsFull() bool {
	return c.EnrolledCount >= c.MaxCapacity
}

// AvailableSeats returns the number of open seats.
func (c *Course) AvailableSeats() int {
	return c.MaxCapacity - c.EnrolledCount
}

// OwnerUserID returns the user id of the owning teacher, or 0 when the
// course has no teacher assigned.
func (c *Course) OwnerUserID() int64 {
	if c.Teacher == nil {
		return 0
	}
	return c.Teacher.UserID
}

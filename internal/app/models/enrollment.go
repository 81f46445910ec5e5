package models

import "time"

// Enrollment ties a student to a course. At most one ACTIVE enrollment may
// exist per (student, course); dropping keeps the row for history so a later
// re-enrollment creates a second row.
type Enrollment struct {
	ID             int64            `json:"id" db:"id"`
	StudentID      int64            `json:"studentId" db:"student_id"`
	CourseID       int64            `json:"courseId" db:"course_id"`
	EnrollmentDate time.Time        `json:"enrollmentDate" db:"enrollment_date"`
	Status         EnrollmentStatus `json:"status" db:"status"`
	CreatedAt      time.Time        `json:"createdAt" db:"created_at"`
	CreatedBy      string           `json:"createdBy,omitempty" db:"created_by"`
	UpdatedAt      *time.Time       `json:"updatedAt,omitempty" db:"updated_at"`
	UpdatedBy      *string          `json:"updatedBy,omitempty" db:"updated_by"`

	Student *Student `json:"student,omitempty" db:"-"`
	Course  *Course  `json:"course,omitempty" db:"-"`

	// StudentUserID is the owning user of the enrolled student, joined on
	// read for ownership checks without a second fetch.
	StudentUserID int64 `json:"-" db:"-"`
	// CourseOwnerUserID is the user of the teacher owning the course, 0 when
	// the course is unassigned.
	CourseOwnerUserID int64 `json:"-" db:"-"`

	// AttendancePercentage is derived from attendance records on read.
	AttendancePercentage float64 `json:"attendancePercentage" db:"-"`
}

// ComputeAttendancePercentage derives the attended share from counts.
// Returns 0 when no attendance has been recorded.
func ComputeAttendancePercentage(present, late, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(present+late) * 100.0 / float64(total)
}

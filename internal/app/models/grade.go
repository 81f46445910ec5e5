package models

import (
	"strings"
	"time"
)

// Grade is the single grade attached to an enrollment. The numeric point is
// always derived from the letter via the fixed lookup table, never accepted
// as input, so letter and point cannot diverge.
type Grade struct {
	ID           int64      `json:"id" db:"id"`
	EnrollmentID int64      `json:"enrollmentId" db:"enrollment_id"`
	Grade        string     `json:"grade" db:"grade"`
	GradePoint   float64    `json:"gradePoint" db:"grade_point"`
	Remarks      *string    `json:"remarks,omitempty" db:"remarks"`
	GradedDate   time.Time  `json:"gradedDate" db:"graded_date"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	CreatedBy    string     `json:"createdBy,omitempty" db:"created_by"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty" db:"updated_at"`
	UpdatedBy    *string    `json:"updatedBy,omitempty" db:"updated_by"`

	Enrollment *Enrollment `json:"enrollment,omitempty" db:"-"`
}

// gradePoints is the authoritative letter-to-point table.
var gradePoints = map[string]float64{
	"A+": 4.0,
	"A":  3.7,
	"A-": 3.5,
	"B+": 3.25,
	"B":  3.0,
	"B-": 2.75,
	"C+": 2.5,
	"C":  2.25,
	"D":  2.0,
	"F":  0.0,
}

// GradePointFor returns the numeric point for a letter grade.
// Unrecognized input maps to 0.0.
func GradePointFor(letter string) float64 {
	return gradePoints[strings.ToUpper(strings.TrimSpace(letter))]
}

// IsValidLetterGrade reports whether letter is one of the accepted grades.
func IsValidLetterGrade(letter string) bool {
	_, ok := gradePoints[strings.ToUpper(strings.TrimSpace(letter))]
	return ok
}

// SetGrade stores the letter and derives its point.
func (g *Grade) SetGrade(letter string) {
	normalized := strings.ToUpper(strings.TrimSpace(letter))
	g.Grade = normalized
	g.GradePoint = GradePointFor(normalized)
}

package models

// Role defines the user role type
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleTeacher Role = "TEACHER"
	RoleStudent Role = "STUDENT"
)

// StudentStatus represents the academic standing of a student
type StudentStatus string

const (
	StudentActive    StudentStatus = "ACTIVE"
	StudentInactive  StudentStatus = "INACTIVE"
	StudentGraduated StudentStatus = "GRADUATED"
)

// EnrollmentStatus represents the state of an enrollment
type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "ACTIVE"
	EnrollmentDropped   EnrollmentStatus = "DROPPED"
	EnrollmentCompleted EnrollmentStatus = "COMPLETED"
)

// AttendanceStatus represents a single attendance mark
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
	AttendanceAbsent  AttendanceStatus = "ABSENT"
	AttendanceLate    AttendanceStatus = "LATE"
)

// IsValidAttendanceStatus reports whether s is a known attendance status.
func IsValidAttendanceStatus(s AttendanceStatus) bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate:
		return true
	}
	return false
}

// IsValidStudentStatus reports whether s is a known student status.
func IsValidStudentStatus(s StudentStatus) bool {
	switch s {
	case StudentActive, StudentInactive, StudentGraduated:
		return true
	}
	return false
}

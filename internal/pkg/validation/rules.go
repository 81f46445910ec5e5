package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`

	// Course code: uppercase alphanumeric, 5-10 characters
	CourseCodePattern = `^[A-Z0-9]{5,10}$`

	// Department code: uppercase alphanumeric
	DepartmentCodePattern = `^[A-Z0-9]{2,10}$`

	// Phone: digits with optional leading + and separators
	PhonePattern = `^\+?[0-9][0-9 \-]{6,19}$`

	// Password min length
	PasswordMinLength = 8

	// Name min/max length
	NameMinLength = 2
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email          *regexp.Regexp
	CourseCode     *regexp.Regexp
	DepartmentCode *regexp.Regexp
	Phone          *regexp.Regexp
}{
	Email:          regexp.MustCompile(EmailPattern),
	CourseCode:     regexp.MustCompile(CourseCodePattern),
	DepartmentCode: regexp.MustCompile(DepartmentCodePattern),
	Phone:          regexp.MustCompile(PhonePattern),
}

// IsValidCourseCode reports whether a course code matches the required shape.
func IsValidCourseCode(code string) bool {
	return CompiledPatterns.CourseCode.MatchString(code)
}

// IsValidDepartmentCode reports whether a department code is uppercase alphanumeric.
func IsValidDepartmentCode(code string) bool {
	return CompiledPatterns.DepartmentCode.MatchString(code)
}

// IsValidEmail reports whether an email matches the accepted pattern.
func IsValidEmail(email string) bool {
	return CompiledPatterns.Email.MatchString(email)
}

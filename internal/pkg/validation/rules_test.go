package validation

import "testing"

func TestIsValidCourseCode(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"CS101", true},
		{"MATH2010", true},
		{"ABCDEFGHIJ", true},
		{"CS1", false},         // too short
		{"cs101", false},       // lowercase
		{"CS 101", false},      // whitespace
		{"CS101MATH20", false}, // too long
		{"", false},
	}
	for _, tt := range tests {
		if got := IsValidCourseCode(tt.code); got != tt.want {
			t.Errorf("IsValidCourseCode(%q) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestIsValidDepartmentCode(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"CS", true},
		{"MATH", true},
		{"EE2", true},
		{"C", false},
		{"cs", false},
		{"LONGDEPTCODE", false},
	}
	for _, tt := range tests {
		if got := IsValidDepartmentCode(tt.code); got != tt.want {
			t.Errorf("IsValidDepartmentCode(%q) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"ada.kaya@studify.local", true},
		{"a+b@example.co", true},
		{"no-at-sign", false},
		{"missing@tld", false},
		{"@example.com", false},
	}
	for _, tt := range tests {
		if got := IsValidEmail(tt.email); got != tt.want {
			t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}

func TestPhonePattern(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"+905551112233", true},
		{"0555 111 22 33", true},
		{"555-1122", true},
		{"12345", false}, // too short
		{"phone", false},
		{"+9,0555", false},
	}
	for _, tt := range tests {
		if got := CompiledPatterns.Phone.MatchString(tt.phone); got != tt.want {
			t.Errorf("Phone.MatchString(%q) = %v, want %v", tt.phone, got, tt.want)
		}
	}
}

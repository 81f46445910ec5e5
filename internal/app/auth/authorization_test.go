package auth

import (
	"errors"
	"testing"

	"github.com/edutech/studify/internal/app/models"
	"github.com/edutech/studify/internal/pkg/apperrors"
)

func TestAuthorize(t *testing.T) {
	admin := Principal{UserID: 1, Role: models.RoleAdmin, Active: true}
	teacher := Principal{UserID: 2, Role: models.RoleTeacher, Active: true}
	student := Principal{UserID: 3, Role: models.RoleStudent, Active: true}

	tests := []struct {
		name      string
		principal Principal
		action    Action
		target    Target
		wantDeny  bool
	}{
		{"admin manages departments", admin, ActionManageDepartment, Target{}, false},
		{"teacher cannot manage departments", teacher, ActionManageDepartment, Target{}, true},
		{"student cannot manage departments", student, ActionManageDepartment, Target{}, true},

		{"admin views any student", admin, ActionViewStudent, Target{OwnerUserID: 99}, false},
		{"teacher views any student", teacher, ActionViewStudent, Target{OwnerUserID: 99}, false},
		{"student views own record", student, ActionViewStudent, Target{OwnerUserID: 3}, false},
		{"student cannot view others", student, ActionViewStudent, Target{OwnerUserID: 99}, true},
		{"student denied on empty target", student, ActionViewStudent, Target{}, true},

		{"student enrolls self", student, ActionEnrollStudent, Target{OwnerUserID: 3}, false},
		{"student cannot enroll others", student, ActionEnrollStudent, Target{OwnerUserID: 99}, true},
		{"teacher cannot enroll", teacher, ActionEnrollStudent, Target{OwnerUserID: 2}, true},

		{"teacher grades own course", teacher, ActionGradeEnrollment, Target{CourseOwnerUserID: 2}, false},
		{"teacher cannot grade foreign course", teacher, ActionGradeEnrollment, Target{CourseOwnerUserID: 99}, true},
		{"teacher denied on unassigned course", teacher, ActionGradeEnrollment, Target{}, true},
		{"student cannot grade", student, ActionGradeEnrollment, Target{OwnerUserID: 3}, true},

		{"teacher marks own course attendance", teacher, ActionMarkAttendance, Target{CourseOwnerUserID: 2}, false},
		{"student cannot mark attendance", student, ActionMarkAttendance, Target{OwnerUserID: 3}, true},

		{"only admin deletes grades", teacher, ActionDeleteGrade, Target{CourseOwnerUserID: 2}, true},
		{"only admin views statistics", teacher, ActionViewStatistics, Target{}, true},
		{"admin views statistics", admin, ActionViewStatistics, Target{}, false},

		{"unknown action denies", admin, Action("nonsense"), Target{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.principal, tt.action, tt.target)
			if tt.wantDeny && err == nil {
				t.Fatal("Authorize() = nil, want permission denied")
			}
			if !tt.wantDeny && err != nil {
				t.Fatalf("Authorize() = %v, want nil", err)
			}
			if tt.wantDeny && !apperrors.Is(err, apperrors.ErrPermissionDenied) {
				t.Errorf("Authorize() = %v, want ErrPermissionDenied", err)
			}
		})
	}
}

func TestAuthorizeInactivePrincipal(t *testing.T) {
	inactive := Principal{UserID: 1, Role: models.RoleAdmin, Active: false}
	if err := Authorize(inactive, ActionManageDepartment, Target{}); err == nil {
		t.Error("Authorize() = nil for inactive principal, want denied")
	}
}

func TestObscureNotFound(t *testing.T) {
	student := Principal{UserID: 3, Role: models.RoleStudent, Active: true}
	teacher := Principal{UserID: 2, Role: models.RoleTeacher, Active: true}
	notFound := apperrors.NewNotFoundError("Enrollment", int64(7))

	if err := ObscureNotFound(student, notFound); !apperrors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("student not-found = %v, want ErrPermissionDenied", err)
	}
	if err := ObscureNotFound(teacher, notFound); !apperrors.IsNotFound(err) {
		t.Errorf("teacher not-found = %v, want not-found preserved", err)
	}
	if err := ObscureNotFound(student, nil); err != nil {
		t.Errorf("nil error = %v, want nil", err)
	}

	other := errors.New("connection reset")
	if err := ObscureNotFound(student, other); !errors.Is(err, other) {
		t.Errorf("unrelated error = %v, want passthrough", err)
	}
}

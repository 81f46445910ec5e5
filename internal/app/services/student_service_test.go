package services

import (
	"context"
	"testing"

	"github.com/edutech/studify/internal/app/models"
	"github.com/edutech/studify/internal/app/models/dto"
	"github.com/edutech/studify/internal/app/repositories"
	"github.com/edutech/studify/internal/pkg/apperrors"
	"github.com/edutech/studify/internal/pkg/helpers"
)

func studentFixture() (*StudentService, *fakeStudentStore, *fakeAccounts) {
	students := newFakeStudentStore(
		&models.Student{ID: 10, UserID: 100, FirstName: "Ada", LastName: "Kaya",
			Email: "ada.kaya@studify.local", Status: models.StudentActive},
		&models.Student{ID: 11, UserID: 101, FirstName: "Mert", LastName: "Demir",
			Email: "mert.demir@studify.local", Status: models.StudentActive},
	)
	accounts := &fakeAccounts{taken: map[string]bool{"ada.kaya": true, "mert.demir": true}}
	return NewStudentService(students, accounts), students, accounts
}

func TestCreateStudent(t *testing.T) {
	ctx := context.Background()

	t.Run("generates username and active account", func(t *testing.T) {
		svc, _, _ := studentFixture()

		student, err := svc.Create(ctx, adminPrincipal, dto.CreateStudentRequest{
			FirstName:   "Jane",
			LastName:    "Doe",
			Email:       "jane.doe@studify.local",
			Password:    "s3cret-pass",
			DateOfBirth: "2004-03-15",
		})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if student.User == nil {
			t.Fatal("User not attached")
		}
		if student.User.Username != "jane.doe" {
			t.Errorf("username = %q, want jane.doe", student.User.Username)
		}
		if student.User.Role != models.RoleStudent || !student.User.IsActive {
			t.Errorf("account = %s/active=%v, want STUDENT/true", student.User.Role, student.User.IsActive)
		}
		if student.Status != models.StudentActive {
			t.Errorf("Status = %s, want ACTIVE", student.Status)
		}
		if student.EnrollmentDate.IsZero() {
			t.Error("EnrollmentDate not set")
		}
	})

	t.Run("collision appends a counter", func(t *testing.T) {
		svc, _, _ := studentFixture()

		student, err := svc.Create(ctx, adminPrincipal, dto.CreateStudentRequest{
			FirstName:   "Ada",
			LastName:    "Kaya",
			Email:       "ada.kaya2@studify.local",
			Password:    "s3cret-pass",
			DateOfBirth: "2004-03-15",
		})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if student.User.Username != "ada.kaya1" {
			t.Errorf("username = %q, want ada.kaya1", student.User.Username)
		}
	})

	t.Run("future birth date rejected", func(t *testing.T) {
		svc, _, _ := studentFixture()

		future := helpers.Today().AddDate(1, 0, 0).Format(helpers.DateFormat)
		_, err := svc.Create(ctx, adminPrincipal, dto.CreateStudentRequest{
			FirstName: "Jane", LastName: "Doe", Email: "jane@studify.local",
			Password: "s3cret-pass", DateOfBirth: future,
		})
		if !apperrors.Is(err, apperrors.ErrValidationFailed) {
			t.Errorf("Create() error = %v, want ErrValidationFailed", err)
		}
	})

	t.Run("non-admin denied", func(t *testing.T) {
		svc, _, _ := studentFixture()

		_, err := svc.Create(ctx, teacherPrincipal(200), dto.CreateStudentRequest{
			FirstName: "Jane", LastName: "Doe", Email: "jane@studify.local",
			Password: "s3cret-pass", DateOfBirth: "2004-03-15",
		})
		if !apperrors.Is(err, apperrors.ErrPermissionDenied) {
			t.Errorf("Create() error = %v, want ErrPermissionDenied", err)
		}
	})
}

func TestStudentGetByID(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := studentFixture()

	if _, err := svc.GetByID(ctx, adminPrincipal, 10); err != nil {
		t.Errorf("admin GetByID() error = %v", err)
	}
	if _, err := svc.GetByID(ctx, teacherPrincipal(200), 10); err != nil {
		t.Errorf("teacher GetByID() error = %v", err)
	}
	if _, err := svc.GetByID(ctx, studentPrincipal(100), 10); err != nil {
		t.Errorf("own GetByID() error = %v", err)
	}

	// A student probing a foreign or missing id gets the same Forbidden, so
	// existence cannot be inferred.
	if _, err := svc.GetByID(ctx, studentPrincipal(100), 11); !apperrors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("foreign GetByID() error = %v, want ErrPermissionDenied", err)
	}
	if _, err := svc.GetByID(ctx, studentPrincipal(100), 404); !apperrors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("missing GetByID() error = %v, want ErrPermissionDenied", err)
	}
	if _, err := svc.GetByID(ctx, adminPrincipal, 404); !apperrors.IsNotFound(err) {
		t.Errorf("admin missing GetByID() error = %v, want not found", err)
	}
}

func TestStudentUpdate(t *testing.T) {
	ctx := context.Background()
	phone := "+905551112233"
	firstName := "Renamed"

	t.Run("student updates own contact fields", func(t *testing.T) {
		svc, students, _ := studentFixture()

		student, err := svc.Update(ctx, studentPrincipal(100), 10, dto.UpdateStudentRequest{Phone: &phone})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if student.Phone == nil || *student.Phone != phone {
			t.Errorf("Phone = %v, want %s", student.Phone, phone)
		}
		if students.students[10].Phone == nil {
			t.Error("update not persisted")
		}
	})

	t.Run("student cannot touch restricted fields", func(t *testing.T) {
		svc, _, _ := studentFixture()

		_, err := svc.Update(ctx, studentPrincipal(100), 10, dto.UpdateStudentRequest{FirstName: &firstName})
		if !apperrors.Is(err, apperrors.ErrPermissionDenied) {
			t.Errorf("Update() error = %v, want ErrPermissionDenied", err)
		}
	})

	t.Run("admin sets any field", func(t *testing.T) {
		svc, _, _ := studentFixture()

		status := "GRADUATED"
		student, err := svc.Update(ctx, adminPrincipal, 10, dto.UpdateStudentRequest{
			FirstName: &firstName, Status: &status,
		})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if student.FirstName != firstName || student.Status != models.StudentGraduated {
			t.Errorf("student = %s/%s, want %s/GRADUATED", student.FirstName, student.Status, firstName)
		}
	})

	t.Run("invalid status rejected", func(t *testing.T) {
		svc, _, _ := studentFixture()

		status := "EXPELLED"
		_, err := svc.Update(ctx, adminPrincipal, 10, dto.UpdateStudentRequest{Status: &status})
		if !apperrors.Is(err, apperrors.ErrValidationFailed) {
			t.Errorf("Update() error = %v, want ErrValidationFailed", err)
		}
	})
}

func TestStudentDeleteRestoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, students, _ := studentFixture()

	if err := svc.Delete(ctx, adminPrincipal, 10); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if !students.students[10].Deleted {
		t.Fatal("student not marked deleted")
	}
	if got := students.students[10].Status; got != models.StudentInactive {
		t.Errorf("Status after delete = %s, want INACTIVE", got)
	}
	if _, err := svc.GetByID(ctx, adminPrincipal, 10); !apperrors.IsNotFound(err) {
		t.Errorf("GetByID() after delete error = %v, want not found", err)
	}

	restored, err := svc.Restore(ctx, adminPrincipal, 10)
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if restored.Deleted {
		t.Error("student still marked deleted after restore")
	}
	if restored.Status != models.StudentActive {
		t.Errorf("Status after restore = %s, want ACTIVE", restored.Status)
	}

	// Restoring again must fail: the student is no longer deleted.
	if _, err := svc.Restore(ctx, adminPrincipal, 10); !apperrors.Is(err, apperrors.ErrBusinessRule) {
		t.Errorf("second Restore() error = %v, want ErrBusinessRule", err)
	}
}

func TestStudentListFiltersDeletedForNonAdmins(t *testing.T) {
	ctx := context.Background()
	svc, students, _ := studentFixture()
	students.students[11].Deleted = true

	if _, _, err := svc.List(ctx, teacherPrincipal(200),
		repositories.StudentFilter{IncludeDeleted: true}, helpers.PageRequest{Page: 0, Size: 20}); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if students.lastFilter.IncludeDeleted {
		t.Error("non-admin list request kept includeDeleted")
	}

	if _, _, err := svc.List(ctx, adminPrincipal,
		repositories.StudentFilter{IncludeDeleted: true}, helpers.PageRequest{Page: 0, Size: 20}); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if !students.lastFilter.IncludeDeleted {
		t.Error("admin list request lost includeDeleted")
	}

	if _, _, err := svc.List(ctx, studentPrincipal(100),
		repositories.StudentFilter{}, helpers.PageRequest{}); !apperrors.Is(err, apperrors.ErrPermissionDenied) {
		t.Error("student List() allowed, want ErrPermissionDenied")
	}
}

package services

import (
	"context"
	"testing"

	"github.com/edutech/studify/internal/app/models"
	"github.com/edutech/studify/internal/app/models/dto"
	"github.com/edutech/studify/internal/pkg/apperrors"
	"github.com/edutech/studify/internal/pkg/helpers"
)

func courseFixture() (*CourseService, *fakeCourseStore) {
	departments := newFakeDepartmentStore(
		&models.Department{ID: 1, Name: "Computer Science", Code: "CS"},
	)
	teachers := newFakeTeacherStore(
		&models.Teacher{ID: 5, UserID: 200, FirstName: "Selin", LastName: "Yildiz"},
	)
	courses := newFakeCourseStore(
		&models.Course{ID: 20, CourseCode: "CS101", Name: "Intro to Programming",
			Credits: 4, Semester: "2026-FALL", MaxCapacity: 30, DepartmentID: 1},
	)
	return NewCourseService(courses, departments, teachers), courses
}

func TestCreateCourse(t *testing.T) {
	ctx := context.Background()
	teacherID := int64(5)

	t.Run("valid references accepted", func(t *testing.T) {
		svc, courses := courseFixture()

		course, err := svc.Create(ctx, adminPrincipal, dto.CreateCourseRequest{
			CourseCode: "CS201", Name: "Data Structures", Credits: 3,
			Semester: "2026-FALL", MaxCapacity: 40, DepartmentID: 1, TeacherID: &teacherID,
		})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if course.ID == 0 {
			t.Error("course id not assigned")
		}
		if _, ok := courses.courses[course.ID]; !ok {
			t.Error("course not persisted")
		}
	})

	t.Run("unknown department rejected", func(t *testing.T) {
		svc, _ := courseFixture()

		_, err := svc.Create(ctx, adminPrincipal, dto.CreateCourseRequest{
			CourseCode: "CS201", Name: "Data Structures", Credits: 3,
			Semester: "2026-FALL", MaxCapacity: 40, DepartmentID: 404,
		})
		if !apperrors.Is(err, apperrors.ErrDepartmentNotFound) {
			t.Errorf("Create() error = %v, want ErrDepartmentNotFound", err)
		}
	})

	t.Run("unknown teacher rejected", func(t *testing.T) {
		svc, _ := courseFixture()

		missing := int64(404)
		_, err := svc.Create(ctx, adminPrincipal, dto.CreateCourseRequest{
			CourseCode: "CS201", Name: "Data Structures", Credits: 3,
			Semester: "2026-FALL", MaxCapacity: 40, DepartmentID: 1, TeacherID: &missing,
		})
		if !apperrors.Is(err, apperrors.ErrTeacherNotFound) {
			t.Errorf("Create() error = %v, want ErrTeacherNotFound", err)
		}
	})

	t.Run("non-admin denied", func(t *testing.T) {
		svc, _ := courseFixture()

		_, err := svc.Create(ctx, teacherPrincipal(200), dto.CreateCourseRequest{
			CourseCode: "CS201", Name: "Data Structures", Credits: 3,
			Semester: "2026-FALL", MaxCapacity: 40, DepartmentID: 1,
		})
		if !apperrors.Is(err, apperrors.ErrPermissionDenied) {
			t.Errorf("Create() error = %v, want ErrPermissionDenied", err)
		}
	})
}

func TestUpdateCourseCapacity(t *testing.T) {
	ctx := context.Background()

	t.Run("reduction below active enrollment rejected", func(t *testing.T) {
		svc, courses := courseFixture()
		courses.activeCounts[20] = 25

		capacity := 20
		_, err := svc.Update(ctx, adminPrincipal, 20, dto.UpdateCourseRequest{MaxCapacity: &capacity})
		if !apperrors.Is(err, apperrors.ErrBusinessRule) {
			t.Errorf("Update() error = %v, want ErrBusinessRule", err)
		}
		if got := courses.courses[20].MaxCapacity; got != 30 {
			t.Errorf("MaxCapacity = %d, want 30 unchanged", got)
		}
	})

	t.Run("reduction down to the active count allowed", func(t *testing.T) {
		svc, courses := courseFixture()
		courses.activeCounts[20] = 25

		capacity := 25
		course, err := svc.Update(ctx, adminPrincipal, 20, dto.UpdateCourseRequest{MaxCapacity: &capacity})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if course.MaxCapacity != 25 {
			t.Errorf("MaxCapacity = %d, want 25", course.MaxCapacity)
		}
	})

	t.Run("unknown department reference rejected", func(t *testing.T) {
		svc, _ := courseFixture()

		missing := int64(404)
		_, err := svc.Update(ctx, adminPrincipal, 20, dto.UpdateCourseRequest{DepartmentID: &missing})
		if !apperrors.Is(err, apperrors.ErrDepartmentNotFound) {
			t.Errorf("Update() error = %v, want ErrDepartmentNotFound", err)
		}
	})

	t.Run("non-admin denied", func(t *testing.T) {
		svc, _ := courseFixture()

		name := "Renamed"
		_, err := svc.Update(ctx, teacherPrincipal(200), 20, dto.UpdateCourseRequest{Name: &name})
		if !apperrors.Is(err, apperrors.ErrPermissionDenied) {
			t.Errorf("Update() error = %v, want ErrPermissionDenied", err)
		}
	})
}

func TestDeleteCourse(t *testing.T) {
	ctx := context.Background()

	t.Run("blocked by enrollment records of any status", func(t *testing.T) {
		svc, courses := courseFixture()
		// Dropped and completed rows count too, only the total matters.
		courses.enrollmentCounts[20] = 3

		err := svc.Delete(ctx, adminPrincipal, 20)
		if !apperrors.Is(err, apperrors.ErrBusinessRule) {
			t.Errorf("Delete() error = %v, want ErrBusinessRule", err)
		}
		if _, ok := courses.courses[20]; !ok {
			t.Error("course deleted despite enrollment records")
		}
	})

	t.Run("unreferenced course deleted", func(t *testing.T) {
		svc, courses := courseFixture()

		if err := svc.Delete(ctx, adminPrincipal, 20); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if _, ok := courses.courses[20]; ok {
			t.Error("course still present after delete")
		}
	})

	t.Run("non-admin denied", func(t *testing.T) {
		svc, _ := courseFixture()

		err := svc.Delete(ctx, teacherPrincipal(200), 20)
		if !apperrors.Is(err, apperrors.ErrPermissionDenied) {
			t.Errorf("Delete() error = %v, want ErrPermissionDenied", err)
		}
	})
}

func TestCourseLookups(t *testing.T) {
	ctx := context.Background()

	t.Run("fetch by course code", func(t *testing.T) {
		svc, _ := courseFixture()

		course, err := svc.GetByCode(ctx, "CS101")
		if err != nil {
			t.Fatalf("GetByCode() error = %v", err)
		}
		if course.ID != 20 {
			t.Errorf("course id = %d, want 20", course.ID)
		}

		if _, err := svc.GetByCode(ctx, "ZZ999"); !apperrors.Is(err, apperrors.ErrCourseNotFound) {
			t.Errorf("GetByCode() error = %v, want ErrCourseNotFound", err)
		}
	})

	t.Run("available list excludes full courses", func(t *testing.T) {
		svc, courses := courseFixture()
		courses.courses[21] = &models.Course{ID: 21, CourseCode: "CS201", Name: "Data Structures",
			MaxCapacity: 30, DepartmentID: 1}
		courses.activeCounts[20] = 30
		courses.activeCounts[21] = 10

		available, total, err := svc.ListAvailable(ctx, helpers.PageRequest{Page: 0, Size: 20})
		if err != nil {
			t.Fatalf("ListAvailable() error = %v", err)
		}
		if total != 1 || len(available) != 1 {
			t.Fatalf("available = %d/%d, want 1/1", len(available), total)
		}
		if available[0].ID != 21 {
			t.Errorf("available course = %d, want 21", available[0].ID)
		}
	})
}

func TestAssignTeacher(t *testing.T) {
	ctx := context.Background()

	t.Run("admin assigns an existing teacher", func(t *testing.T) {
		svc, courses := courseFixture()

		course, err := svc.AssignTeacher(ctx, adminPrincipal, 20, 5)
		if err != nil {
			t.Fatalf("AssignTeacher() error = %v", err)
		}
		if course.TeacherID == nil || *course.TeacherID != 5 {
			t.Errorf("TeacherID = %v, want 5", course.TeacherID)
		}
		if got := courses.courses[20].TeacherID; got == nil || *got != 5 {
			t.Error("assignment not persisted")
		}
	})

	t.Run("unknown teacher rejected", func(t *testing.T) {
		svc, courses := courseFixture()

		_, err := svc.AssignTeacher(ctx, adminPrincipal, 20, 404)
		if !apperrors.Is(err, apperrors.ErrTeacherNotFound) {
			t.Errorf("AssignTeacher() error = %v, want ErrTeacherNotFound", err)
		}
		if courses.courses[20].TeacherID != nil {
			t.Error("course changed despite the rejected assignment")
		}
	})

	t.Run("unknown course rejected", func(t *testing.T) {
		svc, _ := courseFixture()

		if _, err := svc.AssignTeacher(ctx, adminPrincipal, 404, 5); !apperrors.IsNotFound(err) {
			t.Errorf("AssignTeacher() error = %v, want not found", err)
		}
	})

	t.Run("non-admin denied", func(t *testing.T) {
		svc, _ := courseFixture()

		_, err := svc.AssignTeacher(ctx, teacherPrincipal(200), 20, 5)
		if !apperrors.Is(err, apperrors.ErrPermissionDenied) {
			t.Errorf("AssignTeacher() error = %v, want ErrPermissionDenied", err)
		}
	})
}

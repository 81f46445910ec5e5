package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/edutech/studify/internal/app/models"
	"github.com/edutech/studify/internal/app/repositories"
	pkgauth "github.com/edutech/studify/internal/pkg/auth"
)

// Read-side store contracts shared across services. Repositories satisfy
// them; tests substitute in-memory fakes.
type (
	departmentReader interface {
		GetByID(ctx context.Context, id int64) (*models.Department, error)
	}
	studentReader interface {
		GetByID(ctx context.Context, id int64, includeDeleted bool) (*models.Student, error)
	}
	teacherReader interface {
		GetByID(ctx context.Context, id int64, includeDeleted bool) (*models.Teacher, error)
	}
	courseReader interface {
		GetByID(ctx context.Context, id int64) (*models.Course, error)
	}
	usernameChecker interface {
		UsernameExists(ctx context.Context, username string) (bool, error)
	}
)

// generateUsername derives a unique login name from a person's name,
// lowercasing and joining with a dot, appending a counter on collision.
func generateUsername(ctx context.Context, store usernameChecker, firstName, lastName string) (string, error) {
	base := strings.ToLower(strings.ReplaceAll(firstName, " ", "") +
		"." + strings.ReplaceAll(lastName, " ", ""))

	candidate := base
	for i := 1; ; i++ {
		exists, err := store.UsernameExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s%d", base, i)
	}
}

// Services bundles every service for dependency wiring.
type Services struct {
	Auth        *AuthService
	Departments *DepartmentService
	Students    *StudentService
	Teachers    *TeacherService
	Courses     *CourseService
	Enrollments *EnrollmentService
	Grades      *GradeService
	Attendance  *AttendanceService
}

// NewServices wires all services onto the repositories.
func NewServices(repos *repositories.Repositories, jwtService *pkgauth.JWTService) *Services {
	return &Services{
		Auth:        NewAuthService(repos.Users, jwtService),
		Departments: NewDepartmentService(repos.Departments),
		Students:    NewStudentService(repos.Students, repos.Users),
		Teachers:    NewTeacherService(repos.Teachers, repos.Users),
		Courses:     NewCourseService(repos.Courses, repos.Departments, repos.Teachers),
		Enrollments: NewEnrollmentService(repos.Enrollments, repos.Students, repos.Courses),
		Grades:      NewGradeService(repos.Grades, repos.Enrollments, repos.Students, repos.Courses),
		Attendance:  NewAttendanceService(repos.Attendance, repos.Enrollments, repos.Students, repos.Courses),
	}
}

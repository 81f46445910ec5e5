package repositories

import (
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
)

// itoa shortens positional placeholder construction in dynamic queries.
func itoa(n int) string {
	return strconv.Itoa(n)
}

// Repositories bundles every repository over one shared pool.
type Repositories struct {
	Users       *UserRepository
	Departments *DepartmentRepository
	Students    *StudentRepository
	Teachers    *TeacherRepository
	Courses     *CourseRepository
	Enrollments *EnrollmentRepository
	Grades      *GradeRepository
	Attendance  *AttendanceRepository
}

// NewRepositories wires all repositories onto the pool.
func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Users:       NewUserRepository(pool),
		Departments: NewDepartmentRepository(pool),
		Students:    NewStudentRepository(pool),
		Teachers:    NewTeacherRepository(pool),
		Courses:     NewCourseRepository(pool),
		Enrollments: NewEnrollmentRepository(pool),
		Grades:      NewGradeRepository(pool),
		Attendance:  NewAttendanceRepository(pool),
	}
}

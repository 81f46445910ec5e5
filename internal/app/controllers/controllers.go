package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edutech/studify/internal/app/services"
	"github.com/edutech/studify/internal/pkg/apperrors"
)

// Controllers bundles every HTTP controller.
type Controllers struct {
	Auth        *AuthController
	Departments *DepartmentController
	Students    *StudentController
	Teachers    *TeacherController
	Courses     *CourseController
	Enrollments *EnrollmentController
	Grades      *GradeController
	Attendance  *AttendanceController
}

// NewControllers wires all controllers onto the services.
func NewControllers(svcs *services.Services) *Controllers {
	return &Controllers{
		Auth:        NewAuthController(svcs.Auth),
		Departments: NewDepartmentController(svcs.Departments),
		Students:    NewStudentController(svcs.Students),
		Teachers:    NewTeacherController(svcs.Teachers),
		Courses:     NewCourseController(svcs.Courses),
		Enrollments: NewEnrollmentController(svcs.Enrollments),
		Grades:      NewGradeController(svcs.Grades),
		Attendance:  NewAttendanceController(svcs.Attendance),
	}
}

// pathID parses a numeric id path parameter.
func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid id parameter",
			map[string]interface{}{name: c.Param(name)})
	}
	return id, nil
}

// queryInt64 parses an optional numeric query parameter.
func queryInt64(c *gin.Context, name string) *int64 {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &value
}

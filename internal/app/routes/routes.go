package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edutech/studify/internal/app/controllers"
	"github.com/edutech/studify/internal/app/models"
	"github.com/edutech/studify/internal/middleware"
)

// SetupRouter mounts every API route onto the engine. Route groups only
// fence coarse role membership; ownership checks live in the services.
func SetupRouter(router *gin.Engine, ctrl *controllers.Controllers, authenticate gin.HandlerFunc) {
	v1 := router.Group("/api/v1")

	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", ctrl.Auth.Login)
		auth.POST("/refresh", ctrl.Auth.Refresh)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authenticate)

	adminOnly := middleware.RequireRoles(models.RoleAdmin)
	staffOnly := middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher)

	authAccount := authenticated.Group("/auth")
	{
		authAccount.POST("/register", adminOnly, ctrl.Auth.Register)
		authAccount.POST("/change-password", ctrl.Auth.ChangePassword)
	}

	profile := authenticated.Group("/profile")
	{
		profile.GET("/student", ctrl.Students.Me)
		profile.GET("/teacher", ctrl.Teachers.Me)
	}

	departments := authenticated.Group("/departments")
	{
		departments.GET("", ctrl.Departments.List)
		departments.GET("/:id", ctrl.Departments.Get)

		departmentsAdmin := departments.Group("", adminOnly)
		{
			departmentsAdmin.POST("", ctrl.Departments.Create)
			departmentsAdmin.PUT("/:id", ctrl.Departments.Update)
			departmentsAdmin.DELETE("/:id", ctrl.Departments.Delete)
		}
	}

	students := authenticated.Group("/students")
	{
		students.GET("", staffOnly, ctrl.Students.List)
		students.GET("/:id", ctrl.Students.Get)
		students.PUT("/:id", ctrl.Students.Update)
		students.GET("/:id/enrollments", ctrl.Enrollments.ListByStudent)
		students.GET("/:id/enrollments/active", ctrl.Enrollments.ActiveByStudent)
		students.GET("/:id/transcript", ctrl.Grades.Transcript)
		students.GET("/:id/grades", ctrl.Grades.StudentGrades)
		students.GET("/:id/attendance", ctrl.Attendance.StudentHistory)

		studentsAdmin := students.Group("", adminOnly)
		{
			studentsAdmin.POST("", ctrl.Students.Create)
			studentsAdmin.DELETE("/:id", ctrl.Students.Delete)
			studentsAdmin.POST("/:id/restore", ctrl.Students.Restore)
		}
	}

	teachers := authenticated.Group("/teachers")
	{
		teachers.GET("", ctrl.Teachers.List)
		teachers.GET("/:id", ctrl.Teachers.Get)
		teachers.PUT("/:id", ctrl.Teachers.Update)

		teachersAdmin := teachers.Group("", adminOnly)
		{
			teachersAdmin.POST("", ctrl.Teachers.Create)
			teachersAdmin.DELETE("/:id", ctrl.Teachers.Delete)
			teachersAdmin.POST("/:id/restore", ctrl.Teachers.Restore)
		}
	}

	courses := authenticated.Group("/courses")
	{
		courses.GET("", ctrl.Courses.List)
		courses.GET("/:id", ctrl.Courses.Get)
		courses.GET("/:id/enrollments", ctrl.Enrollments.ListByCourse)
		courses.GET("/:id/enrollments/active", ctrl.Enrollments.ActiveByCourse)
		courses.GET("/:id/grades", staffOnly, ctrl.Grades.CourseGrades)
		courses.GET("/:id/grades/distribution", staffOnly, ctrl.Grades.Distribution)
		courses.GET("/:id/attendance", ctrl.Attendance.CourseDay)
		courses.GET("/:id/attendance/summary", ctrl.Attendance.Summary)
		courses.GET("/:id/attendance/statistics", ctrl.Attendance.Statistics)

		coursesAdmin := courses.Group("", adminOnly)
		{
			coursesAdmin.POST("", ctrl.Courses.Create)
			coursesAdmin.PUT("/:id", ctrl.Courses.Update)
			coursesAdmin.PUT("/:id/teacher", ctrl.Courses.AssignTeacher)
			coursesAdmin.DELETE("/:id", ctrl.Courses.Delete)
		}
	}

	// Lookups that would collide with the :id wildcard above get their own
	// prefix; gin rejects static siblings of a path parameter.
	catalog := authenticated.Group("/catalog/courses")
	{
		catalog.GET("/available", ctrl.Courses.ListAvailable)
		catalog.GET("/code/:code", ctrl.Courses.GetByCode)
	}

	enrollments := authenticated.Group("/enrollments")
	{
		enrollments.POST("", ctrl.Enrollments.Enroll)
		enrollments.GET("/:id", ctrl.Enrollments.Get)
		enrollments.POST("/:id/drop", ctrl.Enrollments.Drop)
		enrollments.GET("/:id/grade", ctrl.Grades.GetByEnrollment)
		enrollments.GET("/:id/attendance", ctrl.Attendance.History)
	}

	grades := authenticated.Group("/grades")
	{
		grades.POST("", staffOnly, ctrl.Grades.AddOrUpdate)
		grades.DELETE("/:id", adminOnly, ctrl.Grades.Delete)
	}

	attendance := authenticated.Group("/attendance")
	{
		attendance.POST("", staffOnly, ctrl.Attendance.Mark)
		attendance.PUT("/:id", staffOnly, ctrl.Attendance.Update)
	}

	statistics := authenticated.Group("/statistics", adminOnly)
	{
		statistics.GET("/top-performers", ctrl.Grades.TopPerformers)
	}
}

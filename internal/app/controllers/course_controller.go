package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edutech/studify/internal/app/models/dto"
	"github.com/edutech/studify/internal/app/repositories"
	"github.com/edutech/studify/internal/app/services"
	"github.com/edutech/studify/internal/middleware"
	"github.com/edutech/studify/internal/pkg/helpers"
)

// CourseController handles course endpoints.
type CourseController struct {
	courses *services.CourseService
}

// NewCourseController creates a new course controller.
func NewCourseController(courses *services.CourseService) *CourseController {
	return &CourseController{courses: courses}
}

// Create adds a course.
func (ctrl *CourseController) Create(c *gin.Context) {
	var req dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(middleware.BindError(err))
		return
	}

	course, err := ctrl.courses.Create(c.Request.Context(), middleware.PrincipalFrom(c), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewCourseResponse(course))
}

// Get fetches one course with live occupancy.
func (ctrl *CourseController) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	course, err := ctrl.courses.GetByID(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCourseResponse(course))
}

// GetByCode fetches one course by its course code.
func (ctrl *CourseController) GetByCode(c *gin.Context) {
	course, err := ctrl.courses.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCourseResponse(course))
}

// List returns a page of courses with optional filters.
func (ctrl *CourseController) List(c *gin.Context) {
	page := helpers.ParsePageRequest(c, "courseCode")

	filter := repositories.CourseFilter{
		DepartmentID: queryInt64(c, "departmentId"),
		TeacherID:    queryInt64(c, "teacherId"),
		Semester:     c.Query("semester"),
		NameQuery:    c.Query("q"),
	}

	courses, total, err := ctrl.courses.List(c.Request.Context(), filter, page)
	if err != nil {
		c.Error(err)
		return
	}

	items := make([]dto.CourseResponse, 0, len(courses))
	for _, course := range courses {
		items = append(items, dto.NewCourseResponse(course))
	}
	c.JSON(http.StatusOK, dto.NewPagedResponse(items, total, page.Page, page.Size))
}

// ListAvailable returns a page of courses that still have open seats.
func (ctrl *CourseController) ListAvailable(c *gin.Context) {
	page := helpers.ParsePageRequest(c, "courseCode")

	courses, total, err := ctrl.courses.ListAvailable(c.Request.Context(), page)
	if err != nil {
		c.Error(err)
		return
	}

	items := make([]dto.CourseResponse, 0, len(courses))
	for _, course := range courses {
		items = append(items, dto.NewCourseResponse(course))
	}
	c.JSON(http.StatusOK, dto.NewPagedResponse(items, total, page.Page, page.Size))
}

// AssignTeacher sets or replaces the teacher of a course.
func (ctrl *CourseController) AssignTeacher(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	var req dto.AssignTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(middleware.BindError(err))
		return
	}

	course, err := ctrl.courses.AssignTeacher(c.Request.Context(), middleware.PrincipalFrom(c), id, req.TeacherID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCourseResponse(course))
}

// Update edits a course.
func (ctrl *CourseController) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	var req dto.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(middleware.BindError(err))
		return
	}

	course, err := ctrl.courses.Update(c.Request.Context(), middleware.PrincipalFrom(c), id, req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCourseResponse(course))
}

// Delete removes a course.
func (ctrl *CourseController) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	if err := ctrl.courses.Delete(c.Request.Context(), middleware.PrincipalFrom(c), id); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

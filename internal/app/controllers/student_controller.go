package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edutech/studify/internal/app/models"
	"github.com/edutech/studify/internal/app/models/dto"
	"github.com/edutech/studify/internal/app/repositories"
	"github.com/edutech/studify/internal/app/services"
	"github.com/edutech/studify/internal/middleware"
	"github.com/edutech/studify/internal/pkg/helpers"
)

// StudentController handles student endpoints.
type StudentController struct {
	students *services.StudentService
}

// NewStudentController creates a new student controller.
func NewStudentController(students *services.StudentService) *StudentController {
	return &StudentController{students: students}
}

// Create adds a student with a generated login account.
func (ctrl *StudentController) Create(c *gin.Context) {
	var req dto.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(middleware.BindError(err))
		return
	}

	student, err := ctrl.students.Create(c.Request.Context(), middleware.PrincipalFrom(c), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewStudentResponse(student))
}

// Get fetches one student.
func (ctrl *StudentController) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	student, err := ctrl.students.GetByID(c.Request.Context(), middleware.PrincipalFrom(c), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewStudentResponse(student))
}

// Me fetches the caller's own student profile.
func (ctrl *StudentController) Me(c *gin.Context) {
	student, err := ctrl.students.GetOwnProfile(c.Request.Context(), middleware.PrincipalFrom(c))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewStudentResponse(student))
}

// List returns a page of students with optional filters.
func (ctrl *StudentController) List(c *gin.Context) {
	page := helpers.ParsePageRequest(c, "lastName")

	filter := repositories.StudentFilter{
		DepartmentID:   queryInt64(c, "departmentId"),
		NameQuery:      c.Query("q"),
		IncludeDeleted: c.Query("includeDeleted") == "true",
	}
	if raw := c.Query("status"); raw != "" && models.IsValidStudentStatus(models.StudentStatus(raw)) {
		status := models.StudentStatus(raw)
		filter.Status = &status
	}

	students, total, err := ctrl.students.List(c.Request.Context(), middleware.PrincipalFrom(c), filter, page)
	if err != nil {
		c.Error(err)
		return
	}

	items := make([]dto.StudentResponse, 0, len(students))
	for _, student := range students {
		items = append(items, dto.NewStudentResponse(student))
	}
	c.JSON(http.StatusOK, dto.NewPagedResponse(items, total, page.Page, page.Size))
}

// Update edits a student.
func (ctrl *StudentController) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	var req dto.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(middleware.BindError(err))
		return
	}

	student, err := ctrl.students.Update(c.Request.Context(), middleware.PrincipalFrom(c), id, req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewStudentResponse(student))
}

// Delete soft-deletes a student.
func (ctrl *StudentController) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	if err := ctrl.students.Delete(c.Request.Context(), middleware.PrincipalFrom(c), id); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Restore reverses a soft delete.
func (ctrl *StudentController) Restore(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	student, err := ctrl.students.Restore(c.Request.Context(), middleware.PrincipalFrom(c), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewStudentResponse(student))
}

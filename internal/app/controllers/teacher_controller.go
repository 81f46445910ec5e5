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

// TeacherController handles teacher endpoints.
type TeacherController struct {
	teachers *services.TeacherService
}

// NewTeacherController creates a new teacher controller.
func NewTeacherController(teachers *services.TeacherService) *TeacherController {
	return &TeacherController{teachers: teachers}
}

// Create adds a teacher with a generated login account.
func (ctrl *TeacherController) Create(c *gin.Context) {
	var req dto.CreateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(middleware.BindError(err))
		return
	}

	teacher, err := ctrl.teachers.Create(c.Request.Context(), middleware.PrincipalFrom(c), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewTeacherResponse(teacher))
}

// Get fetches one teacher.
func (ctrl *TeacherController) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	teacher, err := ctrl.teachers.GetByID(c.Request.Context(), middleware.PrincipalFrom(c), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTeacherResponse(teacher))
}

// Me fetches the caller's own teacher profile.
func (ctrl *TeacherController) Me(c *gin.Context) {
	teacher, err := ctrl.teachers.GetOwnProfile(c.Request.Context(), middleware.PrincipalFrom(c))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTeacherResponse(teacher))
}

// List returns a page of teachers with optional filters.
func (ctrl *TeacherController) List(c *gin.Context) {
	page := helpers.ParsePageRequest(c, "lastName")

	filter := repositories.TeacherFilter{
		DepartmentID:   queryInt64(c, "departmentId"),
		NameQuery:      c.Query("q"),
		IncludeDeleted: c.Query("includeDeleted") == "true",
	}

	teachers, total, err := ctrl.teachers.List(c.Request.Context(), middleware.PrincipalFrom(c), filter, page)
	if err != nil {
		c.Error(err)
		return
	}

	items := make([]dto.TeacherResponse, 0, len(teachers))
	for _, teacher := range teachers {
		items = append(items, dto.NewTeacherResponse(teacher))
	}
	c.JSON(http.StatusOK, dto.NewPagedResponse(items, total, page.Page, page.Size))
}

// Update edits a teacher.
func (ctrl *TeacherController) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	var req dto.UpdateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(middleware.BindError(err))
		return
	}

	teacher, err := ctrl.teachers.Update(c.Request.Context(), middleware.PrincipalFrom(c), id, req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTeacherResponse(teacher))
}

// Delete soft-deletes a teacher.
func (ctrl *TeacherController) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	if err := ctrl.teachers.Delete(c.Request.Context(), middleware.PrincipalFrom(c), id); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Restore reverses a soft delete.
func (ctrl *TeacherController) Restore(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	teacher, err := ctrl.teachers.Restore(c.Request.Context(), middleware.PrincipalFrom(c), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTeacherResponse(teacher))
}

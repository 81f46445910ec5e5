package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edutech/studify/internal/app/models/dto"
	"github.com/edutech/studify/internal/app/services"
	"github.com/edutech/studify/internal/middleware"
	"github.com/edutech/studify/internal/pkg/helpers"
)

// DepartmentController handles department endpoints.
type DepartmentController struct {
	departments *services.DepartmentService
}

// NewDepartmentController creates a new department controller.
func NewDepartmentController(departments *services.DepartmentService) *DepartmentController {
	return &DepartmentController{departments: departments}
}

// Create adds a department.
func (ctrl *DepartmentController) Create(c *gin.Context) {
	var req dto.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(middleware.BindError(err))
		return
	}

	dept, err := ctrl.departments.Create(c.Request.Context(), middleware.PrincipalFrom(c), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewDepartmentResponse(dept))
}

// Get fetches one department.
func (ctrl *DepartmentController) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	dept, err := ctrl.departments.GetByID(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewDepartmentResponse(dept))
}

// List returns a page of departments.
func (ctrl *DepartmentController) List(c *gin.Context) {
	page := helpers.ParsePageRequest(c, "name")

	departments, total, err := ctrl.departments.List(c.Request.Context(), page)
	if err != nil {
		c.Error(err)
		return
	}

	items := make([]dto.DepartmentResponse, 0, len(departments))
	for _, dept := range departments {
		items = append(items, dto.NewDepartmentResponse(dept))
	}
	c.JSON(http.StatusOK, dto.NewPagedResponse(items, total, page.Page, page.Size))
}

// Update edits a department.
func (ctrl *DepartmentController) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	var req dto.UpdateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(middleware.BindError(err))
		return
	}

	dept, err := ctrl.departments.Update(c.Request.Context(), middleware.PrincipalFrom(c), id, req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewDepartmentResponse(dept))
}

// Delete removes a department.
func (ctrl *DepartmentController) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	if err := ctrl.departments.Delete(c.Request.Context(), middleware.PrincipalFrom(c), id); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

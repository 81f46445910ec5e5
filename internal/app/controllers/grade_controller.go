package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edutech/studify/internal/app/models/dto"
	"github.com/edutech/studify/internal/app/services"
	"github.com/edutech/studify/internal/middleware"
	"github.com/edutech/studify/internal/pkg/helpers"
)

// GradeController handles grade and statistics endpoints.
type GradeController struct {
	grades *services.GradeService
}

// NewGradeController creates a new grade controller.
func NewGradeController(grades *services.GradeService) *GradeController {
	return &GradeController{grades: grades}
}

// AddOrUpdate records the grade of an enrollment, replacing any existing
// one.
func (ctrl *GradeController) AddOrUpdate(c *gin.Context) {
	var req dto.GradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(middleware.BindError(err))
		return
	}

	grade, err := ctrl.grades.AddOrUpdate(c.Request.Context(), middleware.PrincipalFrom(c), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewGradeResponse(grade))
}

// GetByEnrollment fetches the grade of an enrollment.
func (ctrl *GradeController) GetByEnrollment(c *gin.Context) {
	enrollmentID, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	grade, err := ctrl.grades.GetByEnrollment(c.Request.Context(), middleware.PrincipalFrom(c), enrollmentID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewGradeResponse(grade))
}

// Delete removes a grade.
func (ctrl *GradeController) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	if err := ctrl.grades.Delete(c.Request.Context(), middleware.PrincipalFrom(c), id); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Transcript returns a student's graded courses and GPA.
func (ctrl *GradeController) Transcript(c *gin.Context) {
	studentID, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	transcript, err := ctrl.grades.Transcript(c.Request.Context(), middleware.PrincipalFrom(c), studentID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, transcript)
}

// StudentGrades returns a page of one student's grades, optionally
// narrowed to one semester.
func (ctrl *GradeController) StudentGrades(c *gin.Context) {
	studentID, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	page := helpers.ParsePageRequest(c, "gradedDate")

	grades, total, err := ctrl.grades.StudentGrades(c.Request.Context(), middleware.PrincipalFrom(c),
		studentID, c.Query("semester"), page)
	if err != nil {
		c.Error(err)
		return
	}

	items := make([]dto.GradeResponse, 0, len(grades))
	for _, grade := range grades {
		items = append(items, dto.NewGradeResponse(grade))
	}
	c.JSON(http.StatusOK, dto.NewPagedResponse(items, total, page.Page, page.Size))
}

// CourseGrades lists every grade recorded in a course.
func (ctrl *GradeController) CourseGrades(c *gin.Context) {
	courseID, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	grades, err := ctrl.grades.CourseGrades(c.Request.Context(), middleware.PrincipalFrom(c), courseID)
	if err != nil {
		c.Error(err)
		return
	}

	items := make([]dto.GradeResponse, 0, len(grades))
	for _, grade := range grades {
		items = append(items, dto.NewGradeResponse(grade))
	}
	c.JSON(http.StatusOK, items)
}

// Distribution counts a course's grades per letter.
func (ctrl *GradeController) Distribution(c *gin.Context) {
	courseID, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	distribution, err := ctrl.grades.Distribution(c.Request.Context(), middleware.PrincipalFrom(c), courseID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, distribution)
}

// TopPerformers ranks students by average grade point.
func (ctrl *GradeController) TopPerformers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	performers, err := ctrl.grades.TopPerformers(c.Request.Context(), middleware.PrincipalFrom(c), limit)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, performers)
}

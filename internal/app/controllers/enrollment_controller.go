package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edutech/studify/internal/app/models"
	"github.com/edutech/studify/internal/app/models/dto"
	"github.com/edutech/studify/internal/app/services"
	"github.com/edutech/studify/internal/middleware"
	"github.com/edutech/studify/internal/pkg/helpers"
)

// EnrollmentController handles enrollment endpoints.
type EnrollmentController struct {
	enrollments *services.EnrollmentService
}

// NewEnrollmentController creates a new enrollment controller.
func NewEnrollmentController(enrollments *services.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{enrollments: enrollments}
}

// Enroll creates an ACTIVE enrollment dated today.
func (ctrl *EnrollmentController) Enroll(c *gin.Context) {
	var req dto.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(middleware.BindError(err))
		return
	}

	enrollment, err := ctrl.enrollments.Enroll(c.Request.Context(), middleware.PrincipalFrom(c),
		req.StudentID, req.CourseID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewEnrollmentResponse(enrollment))
}

// Get fetches one enrollment.
func (ctrl *EnrollmentController) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	enrollment, err := ctrl.enrollments.GetByID(c.Request.Context(), middleware.PrincipalFrom(c), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewEnrollmentResponse(enrollment))
}

// Drop transitions an enrollment to DROPPED.
func (ctrl *EnrollmentController) Drop(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	if err := ctrl.enrollments.Drop(c.Request.Context(), middleware.PrincipalFrom(c), id); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func enrollmentStatusFilter(c *gin.Context) *models.EnrollmentStatus {
	raw := c.Query("status")
	switch models.EnrollmentStatus(raw) {
	case models.EnrollmentActive, models.EnrollmentDropped, models.EnrollmentCompleted:
		status := models.EnrollmentStatus(raw)
		return &status
	default:
		return nil
	}
}

// ListByStudent returns a page of one student's enrollments.
func (ctrl *EnrollmentController) ListByStudent(c *gin.Context) {
	studentID, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	page := helpers.ParsePageRequest(c, "enrollmentDate")

	enrollments, total, err := ctrl.enrollments.ListByStudent(c.Request.Context(),
		middleware.PrincipalFrom(c), studentID, enrollmentStatusFilter(c), page)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, pagedEnrollments(enrollments, total, page))
}

// ListByCourse returns a page of one course's roster.
func (ctrl *EnrollmentController) ListByCourse(c *gin.Context) {
	courseID, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	page := helpers.ParsePageRequest(c, "enrollmentDate")

	enrollments, total, err := ctrl.enrollments.ListByCourse(c.Request.Context(),
		middleware.PrincipalFrom(c), courseID, enrollmentStatusFilter(c), page)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, pagedEnrollments(enrollments, total, page))
}

// ActiveByStudent returns one student's current ACTIVE enrollments,
// unpaged.
func (ctrl *EnrollmentController) ActiveByStudent(c *gin.Context) {
	studentID, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	enrollments, err := ctrl.enrollments.ActiveByStudent(c.Request.Context(),
		middleware.PrincipalFrom(c), studentID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, enrollmentItems(enrollments))
}

// ActiveByCourse returns one course's current ACTIVE roster, unpaged.
func (ctrl *EnrollmentController) ActiveByCourse(c *gin.Context) {
	courseID, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	enrollments, err := ctrl.enrollments.ActiveByCourse(c.Request.Context(),
		middleware.PrincipalFrom(c), courseID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, enrollmentItems(enrollments))
}

func enrollmentItems(enrollments []*models.Enrollment) []dto.EnrollmentResponse {
	items := make([]dto.EnrollmentResponse, 0, len(enrollments))
	for _, enrollment := range enrollments {
		items = append(items, dto.NewEnrollmentResponse(enrollment))
	}
	return items
}

func pagedEnrollments(enrollments []*models.Enrollment, total int64, page helpers.PageRequest) dto.PagedResponse[dto.EnrollmentResponse] {
	return dto.NewPagedResponse(enrollmentItems(enrollments), total, page.Page, page.Size)
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edutech/studify/internal/app/models/dto"
	"github.com/edutech/studify/internal/app/services"
	"github.com/edutech/studify/internal/middleware"
)

// AttendanceController handles attendance endpoints.
type AttendanceController struct {
	attendance *services.AttendanceService
}

// NewAttendanceController creates a new attendance controller.
func NewAttendanceController(attendance *services.AttendanceService) *AttendanceController {
	return &AttendanceController{attendance: attendance}
}

// Mark records one course-day of attendance and returns the summary.
func (ctrl *AttendanceController) Mark(c *gin.Context) {
	var req dto.MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(middleware.BindError(err))
		return
	}

	summary, err := ctrl.attendance.Mark(c.Request.Context(), middleware.PrincipalFrom(c), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Update corrects one recorded mark.
func (ctrl *AttendanceController) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	var req dto.UpdateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(middleware.BindError(err))
		return
	}

	record, err := ctrl.attendance.Update(c.Request.Context(), middleware.PrincipalFrom(c), id, req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAttendanceResponse(record))
}

// CourseDay lists a course's marks on one date.
func (ctrl *AttendanceController) CourseDay(c *gin.Context) {
	courseID, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	records, err := ctrl.attendance.CourseDay(c.Request.Context(), middleware.PrincipalFrom(c),
		courseID, c.Query("date"))
	if err != nil {
		c.Error(err)
		return
	}

	items := make([]dto.AttendanceResponse, 0, len(records))
	for _, record := range records {
		items = append(items, dto.NewAttendanceResponse(record))
	}
	c.JSON(http.StatusOK, items)
}

// History lists the attendance record of one enrollment.
func (ctrl *AttendanceController) History(c *gin.Context) {
	enrollmentID, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	records, err := ctrl.attendance.History(c.Request.Context(), middleware.PrincipalFrom(c), enrollmentID)
	if err != nil {
		c.Error(err)
		return
	}

	items := make([]dto.AttendanceResponse, 0, len(records))
	for _, record := range records {
		items = append(items, dto.NewAttendanceResponse(record))
	}
	c.JSON(http.StatusOK, items)
}

// StudentHistory lists one student's marks across courses, with optional
// course and date-range filters.
func (ctrl *AttendanceController) StudentHistory(c *gin.Context) {
	studentID, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	records, err := ctrl.attendance.StudentHistory(c.Request.Context(), middleware.PrincipalFrom(c),
		studentID, queryInt64(c, "courseId"), c.Query("from"), c.Query("to"))
	if err != nil {
		c.Error(err)
		return
	}

	items := make([]dto.AttendanceResponse, 0, len(records))
	for _, record := range records {
		items = append(items, dto.NewAttendanceResponse(record))
	}
	c.JSON(http.StatusOK, items)
}

// Statistics aggregates every recorded mark of a course across all dates.
func (ctrl *AttendanceController) Statistics(c *gin.Context) {
	courseID, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	statistics, err := ctrl.attendance.Statistics(c.Request.Context(), middleware.PrincipalFrom(c), courseID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, statistics)
}

// Summary aggregates one course-day of attendance.
func (ctrl *AttendanceController) Summary(c *gin.Context) {
	courseID, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	summary, err := ctrl.attendance.Summary(c.Request.Context(), middleware.PrincipalFrom(c),
		courseID, c.Query("date"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edutech/studify/internal/app/models/dto"
	"github.com/edutech/studify/internal/app/services"
	"github.com/edutech/studify/internal/middleware"
)

// AuthController handles authentication endpoints.
type AuthController struct {
	auth *services.AuthService
}

// NewAuthController creates a new auth controller.
func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// Login authenticates with username or email plus password and returns a
// token pair.
func (ctrl *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(middleware.BindError(err))
		return
	}

	tokens, err := ctrl.auth.Login(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, tokens)
}

// Refresh exchanges a refresh token for a fresh pair.
func (ctrl *AuthController) Refresh(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(middleware.BindError(err))
		return
	}

	tokens, err := ctrl.auth.Refresh(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, tokens)
}

// Register creates a bare account. ADMIN only.
func (ctrl *AuthController) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(middleware.BindError(err))
		return
	}

	user, err := ctrl.auth.Register(c.Request.Context(), middleware.PrincipalFrom(c), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// ChangePassword rotates the caller's password.
func (ctrl *AuthController) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(middleware.BindError(err))
		return
	}

	if err := ctrl.auth.ChangePassword(c.Request.Context(), middleware.PrincipalFrom(c), req); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

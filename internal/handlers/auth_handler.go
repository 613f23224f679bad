package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/conference-service/internal/services"
	"github.com/SAP-F-2025/conference-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	BaseHandler
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		authService: authService,
	}
}

// Register creates a participant account pending email verification
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if !h.bindJSON(c, &req) {
		return
	}

	user, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusCreated, "Registration successful, check your email", user)
}

// VerifyEmail activates the account owning the token
// @Router /auth/verify [get]
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	user, err := h.authService.VerifyEmail(c.Request.Context(), c.Query("token"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Email verified", user)
}

// Login exchanges credentials for a bearer token
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Refresh rotates a refresh token into a new token pair
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req services.RefreshRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.authService.Refresh(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	if err := h.authService.Logout(c.Request.Context(), actor); err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Logged out", nil)
}

// @Router /auth/resend-verification [post]
func (h *AuthHandler) ResendVerification(c *gin.Context) {
	var req services.EmailRequest
	if !h.bindJSON(c, &req) {
		return
	}

	if err := h.authService.ResendVerification(c.Request.Context(), &req); err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "If the account exists and is not verified, a new link was sent", nil)
}

// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req services.EmailRequest
	if !h.bindJSON(c, &req) {
		return
	}

	if err := h.authService.ForgotPassword(c.Request.Context(), &req); err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "If the account exists, a reset link was sent", nil)
}

// @Router /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req services.ResetPasswordRequest
	if !h.bindJSON(c, &req) {
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), &req); err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Password changed", nil)
}

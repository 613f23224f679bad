package handlers

import (
	"io"
	"net/http"

	"github.com/SAP-F-2025/conference-service/internal/services"
	"github.com/SAP-F-2025/conference-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	BaseHandler
	userService services.UserService
}

func NewProfileHandler(userService services.UserService, logger utils.Logger) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler: NewBaseHandler(logger),
		userService: userService,
	}
}

// @Router /profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	user, err := h.userService.GetProfile(c.Request.Context(), actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateProfile accepts multipart form data: a JSON "data" field and an optional "avatar" image
// @Router /profile [put]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req services.UpdateProfileRequest
	avatar, cleanup, ok := h.bindMultipart(c, "avatar", &req)
	if !ok {
		return
	}
	defer cleanup()

	user, err := h.userService.UpdateProfile(c.Request.Context(), actor, &req, avatar)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetAvatar streams a user's avatar image
// @Router /users/{id}/avatar [get]
func (h *ProfileHandler) GetAvatar(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	rc, name, err := h.userService.OpenAvatar(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	defer rc.Close()

	serveFile(c, rc, name, false)
}

// serveFile writes a stored file to the response
func serveFile(c *gin.Context, r io.Reader, name string, attachment bool) {
	disposition := "inline"
	if attachment {
		disposition = "attachment"
	}
	c.Header("Content-Disposition", disposition+`; filename="`+name+`"`)
	c.DataFromReader(http.StatusOK, -1, contentType(name), r, nil)
}

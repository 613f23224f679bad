package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/conference-service/internal/models"
	"github.com/SAP-F-2025/conference-service/internal/repositories"
	"github.com/SAP-F-2025/conference-service/internal/services"
	"github.com/SAP-F-2025/conference-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type AdminUserHandler struct {
	BaseHandler
	userService services.UserService
}

func NewAdminUserHandler(userService services.UserService, logger utils.Logger) *AdminUserHandler {
	return &AdminUserHandler{
		BaseHandler: NewBaseHandler(logger),
		userService: userService,
	}
}

// ListUsers supports role, status and search filters with page/size pagination
// @Router /admin/users [get]
func (h *AdminUserHandler) ListUsers(c *gin.Context) {
	page, size, limit, offset := pagination(c)
	filters := repositories.UserFilters{
		Search: c.Query("search"),
		Limit:  limit,
		Offset: offset,
	}
	if role := c.Query("role"); role != "" {
		r := models.UserRole(role)
		filters.Role = &r
	}
	if status := c.Query("status"); status != "" {
		s := models.UserStatus(status)
		filters.Status = &s
	}

	users, total, err := h.userService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse{Items: users, Total: total, Page: page, Size: size})
}

// @Router /admin/users/{id} [get]
func (h *AdminUserHandler) GetUser(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// @Router /admin/users [post]
func (h *AdminUserHandler) CreateUser(c *gin.Context) {
	var req services.CreateUserRequest
	if !h.bindJSON(c, &req) {
		return
	}

	user, err := h.userService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// @Router /admin/users/{id} [put]
func (h *AdminUserHandler) UpdateUser(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdateUserRequest
	if !h.bindJSON(c, &req) {
		return
	}

	user, err := h.userService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// @Router /admin/users/{id} [delete]
func (h *AdminUserHandler) DeleteUser(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	h.LogRequest(c, "Deleting user", "target_user_id", id)

	if err := h.userService.Delete(c.Request.Context(), actor, id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

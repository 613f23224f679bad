package handlers

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"path"
	"strconv"

	"github.com/SAP-F-2025/conference-service/internal/middleware"
	"github.com/SAP-F-2025/conference-service/internal/models"
	"github.com/SAP-F-2025/conference-service/internal/services"
	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// HealthCheck reports liveness
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "conference-service",
	})
}

func (h *BaseHandler) actor(c *gin.Context) (models.Actor, bool) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
			Code:    services.CodeUnauthorized,
		})
	}
	return actor, ok
}

func (h *BaseHandler) parseIDParam(c *gin.Context, param string) uint {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
			Code:    services.CodeValidation,
		})
		return 0
	}
	return uint(id)
}

func parseIntQuery(c *gin.Context, param string, defaultValue int) int {
	valueStr := c.Query(param)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func parseUintQueryPtr(c *gin.Context, param string) *uint {
	valueStr := c.Query(param)
	if valueStr == "" {
		return nil
	}
	value, err := strconv.ParseUint(valueStr, 10, 32)
	if err != nil {
		return nil
	}
	id := uint(value)
	return &id
}

// pagination converts page/size query parameters into limit and offset
func pagination(c *gin.Context) (page, size, limit, offset int) {
	page = max(parseIntQuery(c, "page", 1), 1)
	size = parseIntQuery(c, "size", defaultPageSize)
	if size < 1 || size > maxPageSize {
		size = defaultPageSize
	}
	return page, size, size, (page - 1) * size
}

func (h *BaseHandler) bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
			Code:    services.CodeValidation,
		})
		return false
	}
	return true
}

// bindMultipart decodes the JSON "data" form field into req and opens the
// optional file field. The returned cleanup closes the file.
func (h *BaseHandler) bindMultipart(c *gin.Context, fileField string, req any) (*services.FileUpload, func(), bool) {
	noop := func() {}

	if data := c.PostForm("data"); data != "" {
		if err := json.Unmarshal([]byte(data), req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Message: "Invalid request payload",
				Details: err.Error(),
				Code:    services.CodeValidation,
			})
			return nil, noop, false
		}
	}

	header, err := c.FormFile(fileField)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, noop, true
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid file upload",
			Details: err.Error(),
			Code:    services.CodeValidation,
		})
		return nil, noop, false
	}

	file, err := header.Open()
	if err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "Failed to read uploaded file", err)
		return nil, noop, false
	}
	return &services.FileUpload{Name: header.Filename, Reader: file}, func() { file.Close() }, true
}

// handleServiceError maps service errors onto HTTP responses
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	code := services.ErrorCode(err)

	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: validationErrors,
			Code:    code,
		})
		return
	}

	switch {
	case services.IsValidation(err):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error(), Code: code})
	case services.IsNotFound(err):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: err.Error(), Code: code})
	case services.IsUnauthorized(err):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: err.Error(), Code: code})
	case services.IsForbidden(err):
		c.JSON(http.StatusForbidden, ErrorResponse{Message: err.Error(), Code: code})
	case services.IsDeadlineExpired(err):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Message: err.Error(), Code: code})
	case services.IsInvalidState(err), services.IsConflict(err):
		c.JSON(http.StatusConflict, ErrorResponse{Message: err.Error(), Code: code})
	default:
		h.LogError(c, err, "Unexpected service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
			Code:    code,
		})
	}
}

func contentType(name string) string {
	if t := mime.TypeByExtension(path.Ext(name)); t != "" {
		return t
	}
	return "application/octet-stream"
}

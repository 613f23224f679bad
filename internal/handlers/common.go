package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/conference-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// ===== COMMON RESPONSE STRUCTURES =====

type ErrorResponse struct {
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	Code    string `json:"code,omitempty"`
}

type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ListResponse wraps paginated results
type ListResponse struct {
	Items any   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Size  int   `json:"size"`
}

// ===== BASE HANDLER STRUCT =====

// BaseHandler provides common logging functionality for all handlers
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{
		logger: logger,
	}
}

// LogRequest logs incoming HTTP requests with context information
func (h *BaseHandler) LogRequest(c *gin.Context, message string, additionalFields ...any) {
	fields := []any{
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"request_id", c.GetHeader("X-Request-ID"),
		"user_id", h.extractUserID(c),
	}
	fields = append(fields, additionalFields...)

	utils.GetLoggerFromContext(c, h.logger).Info(message, fields...)
}

// LogError logs error details with context information
func (h *BaseHandler) LogError(c *gin.Context, err error, message string, additionalFields ...any) {
	fields := []any{
		"request_id", c.GetHeader("X-Request-ID"),
		"user_id", h.extractUserID(c),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	}
	fields = append(fields, additionalFields...)

	utils.GetLoggerFromContext(c, h.logger).LogError(err, message, fields...)
}

func (h *BaseHandler) extractUserID(c *gin.Context) any {
	if userID, exists := c.Get("user_id"); exists {
		return userID
	}
	return nil
}

// RespondWithError sends a consistent error response and logs it
func (h *BaseHandler) RespondWithError(c *gin.Context, statusCode int, message string, err error, details ...any) {
	errorResp := ErrorResponse{Message: message}
	if len(details) > 0 {
		errorResp.Details = details[0]
	}
	if err != nil && statusCode >= http.StatusInternalServerError {
		h.LogError(c, err, message, "status_code", statusCode)
	}
	c.JSON(statusCode, errorResp)
}

func (h *BaseHandler) RespondWithSuccess(c *gin.Context, statusCode int, message string, data any) {
	c.JSON(statusCode, SuccessResponse{
		Message: message,
		Data:    data,
	})
}

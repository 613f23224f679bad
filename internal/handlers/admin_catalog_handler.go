package handlers

import (
	"net/http"
	"strconv"

	"github.com/SAP-F-2025/conference-service/internal/models"
	"github.com/SAP-F-2025/conference-service/internal/repositories"
	"github.com/SAP-F-2025/conference-service/internal/services"
	"github.com/SAP-F-2025/conference-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// CatalogHandler administers conferences, categories and review questions
type CatalogHandler struct {
	BaseHandler
	conferenceService services.ConferenceService
	categoryService   services.CategoryService
	questionService   services.QuestionService
}

func NewCatalogHandler(
	conferenceService services.ConferenceService,
	categoryService services.CategoryService,
	questionService services.QuestionService,
	logger utils.Logger,
) *CatalogHandler {
	return &CatalogHandler{
		BaseHandler:       NewBaseHandler(logger),
		conferenceService: conferenceService,
		categoryService:   categoryService,
		questionService:   questionService,
	}
}

// ===== CONFERENCES =====

// @Router /admin/conferences [get]
func (h *CatalogHandler) ListConferences(c *gin.Context) {
	page, size, limit, offset := pagination(c)
	filters := repositories.ConferenceFilters{Limit: limit, Offset: offset}
	if status := c.Query("status"); status != "" {
		s := models.ConferenceStatus(status)
		filters.Status = &s
	}
	if year, err := strconv.Atoi(c.Query("year")); err == nil {
		filters.Year = &year
	}

	conferences, total, err := h.conferenceService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse{Items: conferences, Total: total, Page: page, Size: size})
}

// @Router /admin/conferences/{id} [get]
func (h *CatalogHandler) GetConference(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	conference, err := h.conferenceService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, conference)
}

// @Router /admin/conferences [post]
func (h *CatalogHandler) CreateConference(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req services.ConferenceRequest
	if !h.bindJSON(c, &req) {
		return
	}

	conference, err := h.conferenceService.Create(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, conference)
}

// @Router /admin/conferences/{id} [put]
func (h *CatalogHandler) UpdateConference(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.ConferenceRequest
	if !h.bindJSON(c, &req) {
		return
	}

	conference, err := h.conferenceService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, conference)
}

// @Router /admin/conferences/{id} [delete]
func (h *CatalogHandler) DeleteConference(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.conferenceService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ===== CATEGORIES =====

// @Router /admin/categories [get]
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// @Router /admin/categories [post]
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req services.CategoryRequest
	if !h.bindJSON(c, &req) {
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// @Router /admin/categories/{id} [put]
func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.CategoryRequest
	if !h.bindJSON(c, &req) {
		return
	}

	category, err := h.categoryService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// @Router /admin/categories/{id} [delete]
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.categoryService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ===== QUESTIONS =====

// @Router /admin/questions [get]
func (h *CatalogHandler) ListQuestions(c *gin.Context) {
	questions, err := h.questionService.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, questions)
}

// @Router /admin/questions/{id} [get]
func (h *CatalogHandler) GetQuestion(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	question, err := h.questionService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, question)
}

// @Router /admin/questions [post]
func (h *CatalogHandler) CreateQuestion(c *gin.Context) {
	var req services.QuestionRequest
	if !h.bindJSON(c, &req) {
		return
	}

	question, err := h.questionService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, question)
}

// @Router /admin/questions/{id} [put]
func (h *CatalogHandler) UpdateQuestion(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.QuestionRequest
	if !h.bindJSON(c, &req) {
		return
	}

	question, err := h.questionService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, question)
}

// @Router /admin/questions/{id} [delete]
func (h *CatalogHandler) DeleteQuestion(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.questionService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/conference-service/internal/services"
	"github.com/SAP-F-2025/conference-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	BaseHandler
	reviewService   services.ReviewService
	questionService services.QuestionService
}

func NewReviewHandler(reviewService services.ReviewService, questionService services.QuestionService, logger utils.Logger) *ReviewHandler {
	return &ReviewHandler{
		BaseHandler:     NewBaseHandler(logger),
		reviewService:   reviewService,
		questionService: questionService,
	}
}

// ListPendingPapers returns assigned papers the reviewer has not reviewed yet
// @Router /reviewer/papers [get]
func (h *ReviewHandler) ListPendingPapers(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	papers, err := h.reviewService.AssignedPending(c.Request.Context(), actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, papers)
}

// @Router /reviewer/questions [get]
func (h *ReviewHandler) ListQuestions(c *gin.Context) {
	questions, err := h.questionService.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, questions)
}

// SaveDraft creates or overwrites the reviewer's draft for a paper
// @Router /reviewer/papers/{id}/review [put]
func (h *ReviewHandler) SaveDraft(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	paperID := h.parseIDParam(c, "id")
	if paperID == 0 {
		return
	}

	var req services.ReviewRequest
	if !h.bindJSON(c, &req) {
		return
	}

	review, err := h.reviewService.SaveDraft(c.Request.Context(), actor, paperID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

// @Router /reviewer/reviews [get]
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	list := h.reviewService.ListReviews
	if c.Query("sent") == "true" {
		list = h.reviewService.ListSent
	}

	reviews, err := list(c.Request.Context(), actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// @Router /reviewer/reviews/{id} [get]
func (h *ReviewHandler) GetReview(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	review, err := h.reviewService.GetReview(c.Request.Context(), actor, id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

// @Router /reviewer/reviews/{id} [put]
func (h *ReviewHandler) UpdateDraft(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.ReviewRequest
	if !h.bindJSON(c, &req) {
		return
	}

	review, err := h.reviewService.UpdateDraft(c.Request.Context(), actor, id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

// SendReview makes the draft final and applies its recommendation
// @Router /reviewer/reviews/{id}/send [post]
func (h *ReviewHandler) SendReview(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	h.LogRequest(c, "Sending review", "review_id", id)

	review, err := h.reviewService.Send(c.Request.Context(), actor, id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

// @Router /reviewer/reviews/{id} [delete]
func (h *ReviewHandler) DeleteDraft(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.reviewService.DeleteDraft(c.Request.Context(), actor, id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Router /reviewer/admins [get]
func (h *ReviewHandler) ListAdmins(c *gin.Context) {
	admins, err := h.reviewService.ListAdmins(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, admins)
}

// @Router /reviewer/contact [post]
func (h *ReviewHandler) ContactAdmins(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req services.ContactAdminsRequest
	if !h.bindJSON(c, &req) {
		return
	}

	if err := h.reviewService.ContactAdmins(c.Request.Context(), actor, &req); err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Message sent", nil)
}

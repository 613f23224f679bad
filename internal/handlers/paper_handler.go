package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/conference-service/internal/services"
	"github.com/SAP-F-2025/conference-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// PaperHandler serves the participant side of the paper lifecycle
type PaperHandler struct {
	BaseHandler
	paperService      services.PaperService
	conferenceService services.ConferenceService
	categoryService   services.CategoryService
}

func NewPaperHandler(
	paperService services.PaperService,
	conferenceService services.ConferenceService,
	categoryService services.CategoryService,
	logger utils.Logger,
) *PaperHandler {
	return &PaperHandler{
		BaseHandler:       NewBaseHandler(logger),
		paperService:      paperService,
		conferenceService: conferenceService,
		categoryService:   categoryService,
	}
}

// ListOngoingConferences returns the conferences that accept submissions
// @Router /participant/conferences [get]
func (h *PaperHandler) ListOngoingConferences(c *gin.Context) {
	conferences, err := h.conferenceService.ListOngoing(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, conferences)
}

// @Router /participant/categories [get]
func (h *PaperHandler) ListActiveCategories(c *gin.Context) {
	categories, err := h.categoryService.ListActive(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// SubmitPaper creates a paper from multipart form data: a JSON "data" field and the "file" document
// @Router /participant/papers [post]
func (h *PaperHandler) SubmitPaper(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req services.SubmitPaperRequest
	file, cleanup, ok := h.bindMultipart(c, "file", &req)
	if !ok {
		return
	}
	defer cleanup()

	h.LogRequest(c, "Submitting paper", "conference_id", req.ConferenceID, "final", req.Final)

	paper, err := h.paperService.Submit(c.Request.Context(), actor, &req, file)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, paper)
}

// @Router /participant/papers [get]
func (h *PaperHandler) ListMyPapers(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	papers, err := h.paperService.ListMine(c.Request.Context(), actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, papers)
}

// @Router /participant/papers/{id} [get]
func (h *PaperHandler) GetMyPaper(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	paper, err := h.paperService.GetMine(c.Request.Context(), actor, id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, paper)
}

// EditPaper updates the paper and optionally replaces its document
// @Router /participant/papers/{id} [put]
func (h *PaperHandler) EditPaper(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdatePaperRequest
	file, cleanup, ok := h.bindMultipart(c, "file", &req)
	if !ok {
		return
	}
	defer cleanup()

	paper, err := h.paperService.Edit(c.Request.Context(), actor, id, &req, file)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, paper)
}

// @Router /participant/papers/{id} [delete]
func (h *PaperHandler) DeletePaper(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.paperService.Delete(c.Request.Context(), actor, id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetPaperReview returns the sent review of the participant's paper
// @Router /participant/papers/{id}/review [get]
func (h *PaperHandler) GetPaperReview(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	review, err := h.paperService.GetReview(c.Request.Context(), actor, id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

// DownloadPaperFile streams the document to its owner, reviewer or an admin
// @Router /papers/{id}/file [get]
func (h *PaperHandler) DownloadPaperFile(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	rc, name, err := h.paperService.OpenFile(c.Request.Context(), actor, id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	defer rc.Close()

	serveFile(c, rc, name, true)
}

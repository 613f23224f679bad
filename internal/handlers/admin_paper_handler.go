package handlers

import (
	"bytes"
	"net/http"

	"github.com/SAP-F-2025/conference-service/internal/models"
	"github.com/SAP-F-2025/conference-service/internal/repositories"
	"github.com/SAP-F-2025/conference-service/internal/services"
	"github.com/SAP-F-2025/conference-service/internal/utils"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AdminPaperHandler struct {
	BaseHandler
	paperAdminService services.PaperAdminService
	exportService     services.ExportService
}

func NewAdminPaperHandler(paperAdminService services.PaperAdminService, exportService services.ExportService, logger utils.Logger) *AdminPaperHandler {
	return &AdminPaperHandler{
		BaseHandler:       NewBaseHandler(logger),
		paperAdminService: paperAdminService,
		exportService:     exportService,
	}
}

// ListPapers supports conference, category, user, reviewer and status filters
// @Router /admin/papers [get]
func (h *AdminPaperHandler) ListPapers(c *gin.Context) {
	page, size, limit, offset := pagination(c)
	filters := repositories.PaperFilters{
		ConferenceID: parseUintQueryPtr(c, "conference_id"),
		CategoryID:   parseUintQueryPtr(c, "category_id"),
		UserID:       parseUintQueryPtr(c, "user_id"),
		ReviewerID:   parseUintQueryPtr(c, "reviewer_id"),
		Limit:        limit,
		Offset:       offset,
		SortBy:       c.Query("sort_by"),
		SortOrder:    c.Query("sort_order"),
	}
	if status := c.Query("status"); status != "" {
		s := models.PaperStatus(status)
		filters.Status = &s
	}

	papers, total, err := h.paperAdminService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse{Items: papers, Total: total, Page: page, Size: size})
}

// @Router /admin/papers/{id} [get]
func (h *AdminPaperHandler) GetPaper(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	details, err := h.paperAdminService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

// @Router /admin/papers/{id} [put]
func (h *AdminPaperHandler) UpdatePaper(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.AdminUpdatePaperRequest
	if !h.bindJSON(c, &req) {
		return
	}

	paper, err := h.paperAdminService.Update(c.Request.Context(), actor, id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, paper)
}

// @Router /admin/papers/{id} [delete]
func (h *AdminPaperHandler) DeletePaper(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.paperAdminService.Delete(c.Request.Context(), actor, id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AssignReviewer sets or replaces the paper's reviewer
// @Router /admin/papers/{id}/reviewer [put]
func (h *AdminPaperHandler) AssignReviewer(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.AssignReviewerRequest
	if !h.bindJSON(c, &req) {
		return
	}

	h.LogRequest(c, "Assigning reviewer", "paper_id", id, "reviewer_id", req.ReviewerID)

	paper, err := h.paperAdminService.AssignReviewer(c.Request.Context(), actor, id, req.ReviewerID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, paper)
}

// ChangeDeadline resets the paper to draft with a new deadline
// @Router /admin/papers/{id}/deadline [put]
func (h *AdminPaperHandler) ChangeDeadline(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.ChangeDeadlineRequest
	if !h.bindJSON(c, &req) {
		return
	}

	paper, err := h.paperAdminService.ChangeDeadline(c.Request.Context(), actor, id, req.DeadlineDate)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, paper)
}

// ExportExcel downloads the conference paper overview as a workbook
// @Router /admin/conferences/{id}/export/excel [get]
func (h *AdminPaperHandler) ExportExcel(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	data, name, err := h.exportService.ExportConferencePapersExcel(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}

// ExportZip downloads every paper document of the conference.
// The archive is buffered before the response is written.
// @Router /admin/conferences/{id}/export/zip [get]
func (h *AdminPaperHandler) ExportZip(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var buf bytes.Buffer
	name, err := h.exportService.WriteConferencePapersZip(c.Request.Context(), id, &buf)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "application/zip", buf.Bytes())
}

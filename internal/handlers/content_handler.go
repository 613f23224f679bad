package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/conference-service/internal/models"
	"github.com/SAP-F-2025/conference-service/internal/services"
	"github.com/SAP-F-2025/conference-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// ContentHandler serves the public homepage and its admin editing endpoints
type ContentHandler struct {
	BaseHandler
	contentService services.ContentService
}

func NewContentHandler(contentService services.ContentService, logger utils.Logger) *ContentHandler {
	return &ContentHandler{
		BaseHandler:    NewBaseHandler(logger),
		contentService: contentService,
	}
}

// ===== PUBLIC =====

// @Router /homepage [get]
func (h *ContentHandler) GetHomepage(c *gin.Context) {
	page, err := h.contentService.Homepage(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// @Router /files/{kind} [get]
func (h *ContentHandler) DownloadSiteFile(c *gin.Context) {
	rc, name, err := h.contentService.OpenSiteFile(c.Request.Context(), models.SiteFileKind(c.Param("kind")))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	defer rc.Close()

	serveFile(c, rc, name, true)
}

// @Router /documents/{id}/files/{kind} [get]
func (h *ContentHandler) DownloadDocumentFile(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	rc, name, err := h.contentService.OpenDocumentFile(c.Request.Context(), id, models.DocumentKind(c.Param("kind")))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	defer rc.Close()

	serveFile(c, rc, name, true)
}

// ===== COMMITTEE =====

// @Router /admin/committees [get]
func (h *ContentHandler) ListCommittee(c *gin.Context) {
	members, err := h.contentService.ListCommittee(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}

// @Router /admin/committees [post]
func (h *ContentHandler) CreateCommitteeMember(c *gin.Context) {
	var req services.CommitteeMemberRequest
	if !h.bindJSON(c, &req) {
		return
	}

	member, err := h.contentService.CreateCommitteeMember(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, member)
}

// @Router /admin/committees/{id} [put]
func (h *ContentHandler) UpdateCommitteeMember(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.CommitteeMemberRequest
	if !h.bindJSON(c, &req) {
		return
	}

	member, err := h.contentService.UpdateCommitteeMember(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

// @Router /admin/committees/{id} [delete]
func (h *ContentHandler) DeleteCommitteeMember(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.contentService.DeleteCommitteeMember(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ===== PROGRAMME =====

// @Router /admin/program [get]
func (h *ContentHandler) GetProgram(c *gin.Context) {
	program, err := h.contentService.GetProgram(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, program)
}

// @Router /admin/program [put]
func (h *ContentHandler) UpdateProgram(c *gin.Context) {
	var req services.ProgramRequest
	if !h.bindJSON(c, &req) {
		return
	}

	program, err := h.contentService.UpdateProgram(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, program)
}

// @Router /admin/program/items/{id} [delete]
func (h *ContentHandler) DeleteProgramItem(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.contentService.DeleteProgramItem(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Router /admin/program/upload [post]
func (h *ContentHandler) UploadProgramFile(c *gin.Context) {
	h.uploadSiteFile(c, models.SiteFileProgram)
}

// @Router /admin/files/{kind} [post]
func (h *ContentHandler) UploadSiteFile(c *gin.Context) {
	h.uploadSiteFile(c, models.SiteFileKind(c.Param("kind")))
}

func (h *ContentHandler) uploadSiteFile(c *gin.Context, kind models.SiteFileKind) {
	file, cleanup, ok := h.bindMultipart(c, "file", &struct{}{})
	if !ok {
		return
	}
	defer cleanup()

	site, err := h.contentService.UploadSiteFile(c.Request.Context(), kind, file)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, site)
}

// ===== CONFERENCE DOCUMENTS =====

// @Router /admin/documents [get]
func (h *ContentHandler) ListDocuments(c *gin.Context) {
	docs, err := h.contentService.ListDocuments(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

// @Router /admin/documents [post]
func (h *ContentHandler) CreateDocument(c *gin.Context) {
	var req services.ConferenceDocumentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	doc, err := h.contentService.CreateDocument(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, doc)
}

// @Router /admin/documents/{id}/files/{kind} [post]
func (h *ContentHandler) UploadDocumentFile(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	file, cleanup, ok := h.bindMultipart(c, "file", &struct{}{})
	if !ok {
		return
	}
	defer cleanup()

	doc, err := h.contentService.UploadDocumentFile(c.Request.Context(), id, models.DocumentKind(c.Param("kind")), file)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// @Router /admin/documents/{id} [delete]
func (h *ContentHandler) DeleteDocument(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.contentService.DeleteDocument(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SAP-F-2025/conference-service/internal/auth"
	"github.com/SAP-F-2025/conference-service/internal/models"
	"github.com/SAP-F-2025/conference-service/internal/services"
	"github.com/SAP-F-2025/conference-service/internal/utils"
)

// ===== MOCK SERVICES =====

type mockPaperService struct{ mock.Mock }

func (m *mockPaperService) Submit(ctx context.Context, actor models.Actor, req *services.SubmitPaperRequest, file *services.FileUpload) (*models.Paper, error) {
	args := m.Called(ctx, actor, req, file)
	paper, _ := args.Get(0).(*models.Paper)
	return paper, args.Error(1)
}

func (m *mockPaperService) Edit(ctx context.Context, actor models.Actor, id uint, req *services.UpdatePaperRequest, file *services.FileUpload) (*models.Paper, error) {
	args := m.Called(ctx, actor, id, req, file)
	paper, _ := args.Get(0).(*models.Paper)
	return paper, args.Error(1)
}

func (m *mockPaperService) Delete(ctx context.Context, actor models.Actor, id uint) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *mockPaperService) ListMine(ctx context.Context, actor models.Actor) ([]*models.Paper, error) {
	args := m.Called(ctx, actor)
	papers, _ := args.Get(0).([]*models.Paper)
	return papers, args.Error(1)
}

func (m *mockPaperService) GetMine(ctx context.Context, actor models.Actor, id uint) (*models.Paper, error) {
	args := m.Called(ctx, actor, id)
	paper, _ := args.Get(0).(*models.Paper)
	return paper, args.Error(1)
}

func (m *mockPaperService) GetReview(ctx context.Context, actor models.Actor, id uint) (*models.Review, error) {
	args := m.Called(ctx, actor, id)
	review, _ := args.Get(0).(*models.Review)
	return review, args.Error(1)
}

func (m *mockPaperService) OpenFile(ctx context.Context, actor models.Actor, id uint) (io.ReadCloser, string, error) {
	args := m.Called(ctx, actor, id)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.String(1), args.Error(2)
}

type mockReviewService struct{ mock.Mock }

func (m *mockReviewService) SaveDraft(ctx context.Context, actor models.Actor, paperID uint, req *services.ReviewRequest) (*models.Review, error) {
	args := m.Called(ctx, actor, paperID, req)
	review, _ := args.Get(0).(*models.Review)
	return review, args.Error(1)
}

func (m *mockReviewService) UpdateDraft(ctx context.Context, actor models.Actor, reviewID uint, req *services.ReviewRequest) (*models.Review, error) {
	args := m.Called(ctx, actor, reviewID, req)
	review, _ := args.Get(0).(*models.Review)
	return review, args.Error(1)
}

func (m *mockReviewService) Send(ctx context.Context, actor models.Actor, reviewID uint) (*models.Review, error) {
	args := m.Called(ctx, actor, reviewID)
	review, _ := args.Get(0).(*models.Review)
	return review, args.Error(1)
}

func (m *mockReviewService) DeleteDraft(ctx context.Context, actor models.Actor, reviewID uint) error {
	return m.Called(ctx, actor, reviewID).Error(0)
}

func (m *mockReviewService) AssignedPending(ctx context.Context, actor models.Actor) ([]*models.Paper, error) {
	args := m.Called(ctx, actor)
	papers, _ := args.Get(0).([]*models.Paper)
	return papers, args.Error(1)
}

func (m *mockReviewService) ListReviews(ctx context.Context, actor models.Actor) ([]*models.Review, error) {
	args := m.Called(ctx, actor)
	reviews, _ := args.Get(0).([]*models.Review)
	return reviews, args.Error(1)
}

func (m *mockReviewService) ListSent(ctx context.Context, actor models.Actor) ([]*models.Review, error) {
	args := m.Called(ctx, actor)
	reviews, _ := args.Get(0).([]*models.Review)
	return reviews, args.Error(1)
}

func (m *mockReviewService) GetReview(ctx context.Context, actor models.Actor, reviewID uint) (*models.Review, error) {
	args := m.Called(ctx, actor, reviewID)
	review, _ := args.Get(0).(*models.Review)
	return review, args.Error(1)
}

func (m *mockReviewService) ContactAdmins(ctx context.Context, actor models.Actor, req *services.ContactAdminsRequest) error {
	return m.Called(ctx, actor, req).Error(0)
}

func (m *mockReviewService) ListAdmins(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]*models.User)
	return users, args.Error(1)
}

type mockAuthService struct{ mock.Mock }

func (m *mockAuthService) Register(ctx context.Context, req *services.RegisterRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *mockAuthService) VerifyEmail(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, req *services.LoginRequest) (*services.LoginResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*services.LoginResponse)
	return resp, args.Error(1)
}

func (m *mockAuthService) Refresh(ctx context.Context, req *services.RefreshRequest) (*services.LoginResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*services.LoginResponse)
	return resp, args.Error(1)
}

func (m *mockAuthService) Logout(ctx context.Context, actor models.Actor) error {
	return m.Called(ctx, actor).Error(0)
}

func (m *mockAuthService) ResendVerification(ctx context.Context, req *services.EmailRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *mockAuthService) ForgotPassword(ctx context.Context, req *services.EmailRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *mockAuthService) ResetPassword(ctx context.Context, req *services.ResetPasswordRequest) error {
	return m.Called(ctx, req).Error(0)
}

type mockContentService struct{ mock.Mock }

func (m *mockContentService) ListCommittee(ctx context.Context) ([]*models.CommitteeMember, error) {
	args := m.Called(ctx)
	members, _ := args.Get(0).([]*models.CommitteeMember)
	return members, args.Error(1)
}

func (m *mockContentService) CreateCommitteeMember(ctx context.Context, req *services.CommitteeMemberRequest) (*models.CommitteeMember, error) {
	args := m.Called(ctx, req)
	member, _ := args.Get(0).(*models.CommitteeMember)
	return member, args.Error(1)
}

func (m *mockContentService) UpdateCommitteeMember(ctx context.Context, id uint, req *services.CommitteeMemberRequest) (*models.CommitteeMember, error) {
	args := m.Called(ctx, id, req)
	member, _ := args.Get(0).(*models.CommitteeMember)
	return member, args.Error(1)
}

func (m *mockContentService) DeleteCommitteeMember(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockContentService) GetProgram(ctx context.Context) (*services.Program, error) {
	args := m.Called(ctx)
	program, _ := args.Get(0).(*services.Program)
	return program, args.Error(1)
}

func (m *mockContentService) UpdateProgram(ctx context.Context, req *services.ProgramRequest) (*services.Program, error) {
	args := m.Called(ctx, req)
	program, _ := args.Get(0).(*services.Program)
	return program, args.Error(1)
}

func (m *mockContentService) DeleteProgramItem(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockContentService) UploadSiteFile(ctx context.Context, kind models.SiteFileKind, file *services.FileUpload) (*models.SiteFile, error) {
	args := m.Called(ctx, kind, file)
	site, _ := args.Get(0).(*models.SiteFile)
	return site, args.Error(1)
}

func (m *mockContentService) OpenSiteFile(ctx context.Context, kind models.SiteFileKind) (io.ReadCloser, string, error) {
	args := m.Called(ctx, kind)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.String(1), args.Error(2)
}

func (m *mockContentService) ListDocuments(ctx context.Context) ([]*models.ConferenceDocument, error) {
	args := m.Called(ctx)
	docs, _ := args.Get(0).([]*models.ConferenceDocument)
	return docs, args.Error(1)
}

func (m *mockContentService) CreateDocument(ctx context.Context, req *services.ConferenceDocumentRequest) (*models.ConferenceDocument, error) {
	args := m.Called(ctx, req)
	doc, _ := args.Get(0).(*models.ConferenceDocument)
	return doc, args.Error(1)
}

func (m *mockContentService) UploadDocumentFile(ctx context.Context, id uint, kind models.DocumentKind, file *services.FileUpload) (*models.ConferenceDocument, error) {
	args := m.Called(ctx, id, kind, file)
	doc, _ := args.Get(0).(*models.ConferenceDocument)
	return doc, args.Error(1)
}

func (m *mockContentService) OpenDocumentFile(ctx context.Context, id uint, kind models.DocumentKind) (io.ReadCloser, string, error) {
	args := m.Called(ctx, id, kind)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.String(1), args.Error(2)
}

func (m *mockContentService) DeleteDocument(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockContentService) Homepage(ctx context.Context) (*services.Homepage, error) {
	args := m.Called(ctx)
	page, _ := args.Get(0).(*services.Homepage)
	return page, args.Error(1)
}

// stubServices hands out the mocks; services a test does not touch stay nil
type stubServices struct {
	paper   *mockPaperService
	review  *mockReviewService
	auth    *mockAuthService
	content *mockContentService
}

func (s *stubServices) Paper() services.PaperService           { return s.paper }
func (s *stubServices) PaperAdmin() services.PaperAdminService { return nil }
func (s *stubServices) Review() services.ReviewService         { return s.review }
func (s *stubServices) Conference() services.ConferenceService { return nil }
func (s *stubServices) Category() services.CategoryService     { return nil }
func (s *stubServices) Question() services.QuestionService     { return nil }
func (s *stubServices) Content() services.ContentService       { return s.content }
func (s *stubServices) Auth() services.AuthService             { return s.auth }
func (s *stubServices) User() services.UserService             { return nil }
func (s *stubServices) Export() services.ExportService         { return nil }

// ===== HARNESS =====

type harness struct {
	router *gin.Engine
	tokens *auth.TokenManager
	svc    *stubServices
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	h := &harness{
		router: gin.New(),
		tokens: auth.NewTokenManager("handler-test", time.Hour),
		svc: &stubServices{
			paper:   &mockPaperService{},
			review:  &mockReviewService{},
			auth:    &mockAuthService{},
			content: &mockContentService{},
		},
	}
	NewHandlerManager(h.svc, h.tokens, logger).SetupRoutes(h.router)
	t.Cleanup(func() {
		h.svc.paper.AssertExpectations(t)
		h.svc.review.AssertExpectations(t)
		h.svc.auth.AssertExpectations(t)
		h.svc.content.AssertExpectations(t)
	})
	return h
}

func (h *harness) token(t *testing.T, id uint, role models.UserRole) string {
	t.Helper()
	token, _, err := h.tokens.Generate(&models.User{ID: id, Role: role})
	require.NoError(t, err)
	return token
}

func (h *harness) do(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func multipartSubmit(t *testing.T, data, fileName, content string) *http.Request {
	t.Helper()
	return multipartUpload(t, "/api/v1/participant/papers", data, fileName, content)
}

func multipartUpload(t *testing.T, target, data, fileName, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if data != "" {
		require.NoError(t, mw.WriteField("data", data))
	}
	if fileName != "" {
		fw, err := mw.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

// ===== TESTS =====

func TestHealthCheck(t *testing.T) {
	h := newHarness(t)

	w := h.do(httptest.NewRequest(http.MethodGet, "/health", nil), "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestRoutes_RequireAuthAndRole(t *testing.T) {
	h := newHarness(t)

	w := h.do(httptest.NewRequest(http.MethodGet, "/api/v1/reviewer/papers", nil), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = h.do(httptest.NewRequest(http.MethodGet, "/api/v1/reviewer/papers", nil), h.token(t, 1, models.RoleParticipant))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = h.do(httptest.NewRequest(http.MethodGet, "/api/v1/admin/papers", nil), h.token(t, 2, models.RoleReviewer))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSubmitPaper_Multipart(t *testing.T) {
	h := newHarness(t)
	actor := models.Actor{UserID: 7, Role: models.RoleParticipant}

	var upload string
	h.svc.paper.On("Submit", mock.Anything, actor,
		mock.MatchedBy(func(req *services.SubmitPaperRequest) bool {
			return req.ConferenceID == 3 && req.CategoryID == 4 && req.Final && req.Title == "Title"
		}),
		mock.MatchedBy(func(f *services.FileUpload) bool { return f != nil && f.Name == "paper.pdf" }),
	).Run(func(args mock.Arguments) {
		data, _ := io.ReadAll(args.Get(3).(*services.FileUpload).Reader)
		upload = string(data)
	}).Return(&models.Paper{ID: 11, Status: models.PaperSubmitted}, nil).Once()

	req := multipartSubmit(t, `{"title":"Title","conference_id":3,"category_id":4,"final":true}`, "paper.pdf", "%PDF")
	w := h.do(req, h.token(t, 7, models.RoleParticipant))

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var paper models.Paper
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &paper))
	assert.EqualValues(t, 11, paper.ID)
	assert.Equal(t, "%PDF", upload)
}

func TestSubmitPaper_BadDataField(t *testing.T) {
	h := newHarness(t)

	w := h.do(multipartSubmit(t, `{not json`, "paper.pdf", "x"), h.token(t, 7, models.RoleParticipant))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, services.CodeValidation, decodeError(t, w).Code)
}

func TestSubmitPaper_ServiceErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"deadline", services.ErrDeadlineExpired, http.StatusUnprocessableEntity, services.CodeDeadlineExpired},
		{"not ongoing", services.ErrConferenceNotOngoing, http.StatusConflict, services.CodeConferenceNotOngoing},
		{"missing conference", services.ErrConferenceNotFound, http.StatusNotFound, services.CodeNotFound},
		{"forbidden", services.ErrForbidden, http.StatusForbidden, services.CodeForbidden},
		{"unexpected", assert.AnError, http.StatusInternalServerError, services.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.svc.paper.On("Submit", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			w := h.do(multipartSubmit(t, `{"title":"T"}`, "paper.pdf", "x"), h.token(t, 7, models.RoleParticipant))

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantBody, decodeError(t, w).Code)
		})
	}
}

func TestSendReview_AlreadySent(t *testing.T) {
	h := newHarness(t)
	actor := models.Actor{UserID: 5, Role: models.RoleReviewer}
	h.svc.review.On("Send", mock.Anything, actor, uint(9)).Return(nil, services.ErrAlreadySent).Once()

	w := h.do(httptest.NewRequest(http.MethodPost, "/api/v1/reviewer/reviews/9/send", nil), h.token(t, 5, models.RoleReviewer))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, services.CodeAlreadySent, decodeError(t, w).Code)
}

func TestSaveDraft_ValidationDetails(t *testing.T) {
	h := newHarness(t)
	verr := services.ValidationErrors{*services.NewValidationError("responses[0].question_id", "question does not exist", 99)}
	h.svc.review.On("SaveDraft", mock.Anything, mock.Anything, uint(3), mock.Anything).Return(nil, verr).Once()

	req := httptest.NewRequest(http.MethodPut, "/api/v1/reviewer/papers/3/review",
		strings.NewReader(`{"responses":[{"question_id":99,"answer":1}]}`))
	req.Header.Set("Content-Type", "application/json")
	w := h.do(req, h.token(t, 5, models.RoleReviewer))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "responses[0].question_id")
}

func TestInvalidIDParam(t *testing.T) {
	h := newHarness(t)

	w := h.do(httptest.NewRequest(http.MethodPost, "/api/v1/reviewer/reviews/abc/send", nil), h.token(t, 5, models.RoleReviewer))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDownloadPaperFile(t *testing.T) {
	h := newHarness(t)
	h.svc.paper.On("OpenFile", mock.Anything, models.Actor{UserID: 1, Role: models.RoleAdmin}, uint(4)).
		Return(io.NopCloser(strings.NewReader("%PDF-1.4")), "abc-paper.pdf", nil).Once()

	w := h.do(httptest.NewRequest(http.MethodGet, "/api/v1/papers/4/file", nil), h.token(t, 1, models.RoleAdmin))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `filename="abc-paper.pdf"`)
	assert.Equal(t, "%PDF-1.4", w.Body.String())
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestPasswordResetRoutes(t *testing.T) {
	h := newHarness(t)
	h.svc.auth.On("ForgotPassword", mock.Anything, &services.EmailRequest{Email: "jana@example.com"}).Return(nil).Once()
	h.svc.auth.On("ResetPassword", mock.Anything, &services.ResetPasswordRequest{Token: "stale", Password: "new-battery-staple"}).
		Return(services.ErrInvalidResetToken).Once()

	w := h.do(jsonRequest(http.MethodPost, "/api/v1/auth/forgot-password", `{"email":"jana@example.com"}`), "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = h.do(jsonRequest(http.MethodPost, "/api/v1/auth/reset-password", `{"token":"stale","password":"new-battery-staple"}`), "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, services.CodeValidation, decodeError(t, w).Code)
}

func TestRefreshAndLogoutRoutes(t *testing.T) {
	h := newHarness(t)
	h.svc.auth.On("Refresh", mock.Anything, &services.RefreshRequest{RefreshToken: "spent"}).
		Return(nil, services.ErrInvalidRefreshToken).Once()
	h.svc.auth.On("Logout", mock.Anything, models.Actor{UserID: 5, Role: models.RoleReviewer}).Return(nil).Once()

	w := h.do(jsonRequest(http.MethodPost, "/api/v1/auth/refresh", `{"refresh_token":"spent"}`), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, services.CodeUnauthorized, decodeError(t, w).Code)

	assert.Equal(t, http.StatusUnauthorized, h.do(httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil), "").Code)
	w = h.do(httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil), h.token(t, 5, models.RoleReviewer))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHomepage_IsPublic(t *testing.T) {
	h := newHarness(t)
	h.svc.content.On("Homepage", mock.Anything).Return(&services.Homepage{
		Reviewers: []string{"Eva Nová"},
		Committee: []*models.CommitteeMember{{ID: 1, FullName: "prof. Ján Kováč", University: "UKF"}},
	}, nil).Once()

	w := h.do(httptest.NewRequest(http.MethodGet, "/api/v1/homepage", nil), "")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var page services.Homepage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, []string{"Eva Nová"}, page.Reviewers)
	require.Len(t, page.Committee, 1)
	assert.Equal(t, "UKF", page.Committee[0].University)
}

func TestContentRoutes_AdminOnly(t *testing.T) {
	h := newHarness(t)

	for _, target := range []string{"/api/v1/admin/committees", "/api/v1/admin/program", "/api/v1/admin/documents"} {
		w := h.do(httptest.NewRequest(http.MethodGet, target, nil), h.token(t, 3, models.RoleReviewer))
		assert.Equal(t, http.StatusForbidden, w.Code, target)
	}
}

func TestUploadProgramFile(t *testing.T) {
	h := newHarness(t)
	var upload string
	h.svc.content.On("UploadSiteFile", mock.Anything, models.SiteFileProgram,
		mock.MatchedBy(func(f *services.FileUpload) bool { return f != nil && f.Name == "program.pdf" }),
	).Run(func(args mock.Arguments) {
		data, _ := io.ReadAll(args.Get(2).(*services.FileUpload).Reader)
		upload = string(data)
	}).Return(&models.SiteFile{Kind: models.SiteFileProgram, Name: "program.pdf"}, nil).Once()

	req := multipartUpload(t, "/api/v1/admin/program/upload", "", "program.pdf", "%PDF")
	w := h.do(req, h.token(t, 1, models.RoleAdmin))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "%PDF", upload)
	assert.Contains(t, w.Body.String(), `"kind":"program"`)
}

func TestCommitteeRoutes(t *testing.T) {
	h := newHarness(t)
	admin := h.token(t, 1, models.RoleAdmin)
	req := &services.CommitteeMemberRequest{FullName: "doc. Eva Nová", University: "UKF"}
	h.svc.content.On("CreateCommitteeMember", mock.Anything, req).
		Return(&models.CommitteeMember{ID: 9, FullName: req.FullName, University: req.University}, nil).Once()
	h.svc.content.On("DeleteCommitteeMember", mock.Anything, uint(42)).Return(services.ErrCommitteeNotFound).Once()

	w := h.do(jsonRequest(http.MethodPost, "/api/v1/admin/committees", `{"full_name":"doc. Eva Nová","university":"UKF"}`), admin)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = h.do(httptest.NewRequest(http.MethodDelete, "/api/v1/admin/committees/42", nil), admin)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, services.CodeNotFound, decodeError(t, w).Code)
}

func TestDownloadDocumentFile(t *testing.T) {
	h := newHarness(t)
	h.svc.content.On("OpenDocumentFile", mock.Anything, uint(2), models.DocumentAwarded).
		Return(io.NopCloser(strings.NewReader("%PDF-1.7")), "awarded.pdf", nil).Once()
	h.svc.content.On("OpenDocumentFile", mock.Anything, uint(2), models.DocumentWorks).
		Return(nil, "", services.ErrFileNotFound).Once()

	w := h.do(httptest.NewRequest(http.MethodGet, "/api/v1/documents/2/files/awarded", nil), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), `attachment; filename="awarded.pdf"`)
	assert.Equal(t, "%PDF-1.7", w.Body.String())

	w = h.do(httptest.NewRequest(http.MethodGet, "/api/v1/documents/2/files/works", nil), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

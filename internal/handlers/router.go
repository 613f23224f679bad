package handlers

import (
	"github.com/SAP-F-2025/conference-service/internal/middleware"
	"github.com/SAP-F-2025/conference-service/internal/models"
	"github.com/SAP-F-2025/conference-service/internal/services"
	"github.com/SAP-F-2025/conference-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	authHandler       *AuthHandler
	profileHandler    *ProfileHandler
	paperHandler      *PaperHandler
	reviewHandler     *ReviewHandler
	adminUserHandler  *AdminUserHandler
	catalogHandler    *CatalogHandler
	adminPaperHandler *AdminPaperHandler
	contentHandler    *ContentHandler

	tokens middleware.TokenParser
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	tokens middleware.TokenParser,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		authHandler:       NewAuthHandler(serviceManager.Auth(), logger),
		profileHandler:    NewProfileHandler(serviceManager.User(), logger),
		paperHandler:      NewPaperHandler(serviceManager.Paper(), serviceManager.Conference(), serviceManager.Category(), logger),
		reviewHandler:     NewReviewHandler(serviceManager.Review(), serviceManager.Question(), logger),
		adminUserHandler:  NewAdminUserHandler(serviceManager.User(), logger),
		catalogHandler:    NewCatalogHandler(serviceManager.Conference(), serviceManager.Category(), serviceManager.Question(), logger),
		adminPaperHandler: NewAdminPaperHandler(serviceManager.PaperAdmin(), serviceManager.Export(), logger),
		contentHandler:    NewContentHandler(serviceManager.Content(), logger),
		tokens:            tokens,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", HealthCheck)

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", hm.authHandler.Register)
			auth.GET("/verify", hm.authHandler.VerifyEmail)
			auth.POST("/login", hm.authHandler.Login)
			auth.POST("/refresh", hm.authHandler.Refresh)
			auth.POST("/resend-verification", hm.authHandler.ResendVerification)
			auth.POST("/forgot-password", hm.authHandler.ForgotPassword)
			auth.POST("/reset-password", hm.authHandler.ResetPassword)
		}

		v1.GET("/homepage", hm.contentHandler.GetHomepage)
		v1.GET("/files/:kind", hm.contentHandler.DownloadSiteFile)
		v1.GET("/documents/:id/files/:kind", hm.contentHandler.DownloadDocumentFile)

		authed := v1.Group("", middleware.Auth(hm.tokens))

		authed.POST("/auth/logout", hm.authHandler.Logout)

		authed.GET("/profile", hm.profileHandler.GetProfile)
		authed.PUT("/profile", hm.profileHandler.UpdateProfile)
		authed.GET("/users/:id/avatar", hm.profileHandler.GetAvatar)
		authed.GET("/papers/:id/file", hm.paperHandler.DownloadPaperFile)

		participant := authed.Group("/participant", middleware.RequireRole(models.RoleParticipant))
		{
			participant.GET("/conferences", hm.paperHandler.ListOngoingConferences)
			participant.GET("/categories", hm.paperHandler.ListActiveCategories)
			participant.GET("/papers", hm.paperHandler.ListMyPapers)
			participant.POST("/papers", hm.paperHandler.SubmitPaper)
			participant.GET("/papers/:id", hm.paperHandler.GetMyPaper)
			participant.PUT("/papers/:id", hm.paperHandler.EditPaper)
			participant.DELETE("/papers/:id", hm.paperHandler.DeletePaper)
			participant.GET("/papers/:id/review", hm.paperHandler.GetPaperReview)
		}

		reviewer := authed.Group("/reviewer", middleware.RequireRole(models.RoleReviewer))
		{
			reviewer.GET("/papers", hm.reviewHandler.ListPendingPapers)
			reviewer.PUT("/papers/:id/review", hm.reviewHandler.SaveDraft)
			reviewer.GET("/questions", hm.reviewHandler.ListQuestions)
			reviewer.GET("/reviews", hm.reviewHandler.ListReviews)
			reviewer.GET("/reviews/:id", hm.reviewHandler.GetReview)
			reviewer.PUT("/reviews/:id", hm.reviewHandler.UpdateDraft)
			reviewer.DELETE("/reviews/:id", hm.reviewHandler.DeleteDraft)
			reviewer.POST("/reviews/:id/send", hm.reviewHandler.SendReview)
			reviewer.GET("/admins", hm.reviewHandler.ListAdmins)
			reviewer.POST("/contact", hm.reviewHandler.ContactAdmins)
		}

		admin := authed.Group("/admin", middleware.RequireRole(models.RoleAdmin))
		{
			users := admin.Group("/users")
			{
				users.GET("", hm.adminUserHandler.ListUsers)
				users.POST("", hm.adminUserHandler.CreateUser)
				users.GET("/:id", hm.adminUserHandler.GetUser)
				users.PUT("/:id", hm.adminUserHandler.UpdateUser)
				users.DELETE("/:id", hm.adminUserHandler.DeleteUser)
			}

			conferences := admin.Group("/conferences")
			{
				conferences.GET("", hm.catalogHandler.ListConferences)
				conferences.POST("", hm.catalogHandler.CreateConference)
				conferences.GET("/:id", hm.catalogHandler.GetConference)
				conferences.PUT("/:id", hm.catalogHandler.UpdateConference)
				conferences.DELETE("/:id", hm.catalogHandler.DeleteConference)
				conferences.GET("/:id/export/excel", hm.adminPaperHandler.ExportExcel)
				conferences.GET("/:id/export/zip", hm.adminPaperHandler.ExportZip)
			}

			categories := admin.Group("/categories")
			{
				categories.GET("", hm.catalogHandler.ListCategories)
				categories.POST("", hm.catalogHandler.CreateCategory)
				categories.PUT("/:id", hm.catalogHandler.UpdateCategory)
				categories.DELETE("/:id", hm.catalogHandler.DeleteCategory)
			}

			questions := admin.Group("/questions")
			{
				questions.GET("", hm.catalogHandler.ListQuestions)
				questions.POST("", hm.catalogHandler.CreateQuestion)
				questions.GET("/:id", hm.catalogHandler.GetQuestion)
				questions.PUT("/:id", hm.catalogHandler.UpdateQuestion)
				questions.DELETE("/:id", hm.catalogHandler.DeleteQuestion)
			}

			papers := admin.Group("/papers")
			{
				papers.GET("", hm.adminPaperHandler.ListPapers)
				papers.GET("/:id", hm.adminPaperHandler.GetPaper)
				papers.PUT("/:id", hm.adminPaperHandler.UpdatePaper)
				papers.DELETE("/:id", hm.adminPaperHandler.DeletePaper)
				papers.PUT("/:id/reviewer", hm.adminPaperHandler.AssignReviewer)
				papers.PUT("/:id/deadline", hm.adminPaperHandler.ChangeDeadline)
			}

			committees := admin.Group("/committees")
			{
				committees.GET("", hm.contentHandler.ListCommittee)
				committees.POST("", hm.contentHandler.CreateCommitteeMember)
				committees.PUT("/:id", hm.contentHandler.UpdateCommitteeMember)
				committees.DELETE("/:id", hm.contentHandler.DeleteCommitteeMember)
			}

			program := admin.Group("/program")
			{
				program.GET("", hm.contentHandler.GetProgram)
				program.PUT("", hm.contentHandler.UpdateProgram)
				program.DELETE("/items/:id", hm.contentHandler.DeleteProgramItem)
				program.POST("/upload", hm.contentHandler.UploadProgramFile)
			}

			admin.POST("/files/:kind", hm.contentHandler.UploadSiteFile)

			documents := admin.Group("/documents")
			{
				documents.GET("", hm.contentHandler.ListDocuments)
				documents.POST("", hm.contentHandler.CreateDocument)
				documents.POST("/:id/files/:kind", hm.contentHandler.UploadDocumentFile)
				documents.DELETE("/:id", hm.contentHandler.DeleteDocument)
			}
		}
	}
}

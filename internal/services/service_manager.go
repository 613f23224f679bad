package services

import (
	"log/slog"
	"time"

	"github.com/SAP-F-2025/conference-service/internal/auth"
	"github.com/SAP-F-2025/conference-service/internal/cache"
	"github.com/SAP-F-2025/conference-service/internal/repositories"
	"github.com/SAP-F-2025/conference-service/internal/storage"
	"github.com/SAP-F-2025/conference-service/internal/utils"
	"github.com/SAP-F-2025/conference-service/internal/validator"
)

// ServiceManager gives the transport layer access to every service
type ServiceManager interface {
	Paper() PaperService
	PaperAdmin() PaperAdminService
	Review() ReviewService
	Conference() ConferenceService
	Category() CategoryService
	Question() QuestionService
	Content() ContentService
	Auth() AuthService
	User() UserService
	Export() ExportService
}

// Dependencies collects the infrastructure shared by all services
type Dependencies struct {
	Repo      repositories.Repository
	Store     storage.FileStore
	Cache     cache.CacheService
	CacheTTL  time.Duration
	Notifier  Notifier
	Tokens    *auth.TokenManager
	Validator *validator.Validator
	Clock     utils.Clock
	Logger    *slog.Logger
}

type serviceManager struct {
	paper      PaperService
	paperAdmin PaperAdminService
	review     ReviewService
	conference ConferenceService
	category   CategoryService
	question   QuestionService
	content    ContentService
	auth       AuthService
	user       UserService
	export     ExportService
}

func NewServiceManager(d Dependencies) ServiceManager {
	if d.Clock == nil {
		d.Clock = utils.SystemClock{}
	}
	if d.Cache == nil {
		d.Cache = cache.NewNoopCache()
	}

	return &serviceManager{
		paper:      NewPaperService(d.Repo, d.Store, d.Notifier, d.Validator, d.Clock, d.Logger),
		paperAdmin: NewPaperAdminService(d.Repo, d.Store, d.Notifier, d.Validator, d.Clock, d.Logger),
		review:     NewReviewService(d.Repo, d.Notifier, d.Validator, d.Clock, d.Logger),
		conference: NewConferenceService(d.Repo, d.Cache, d.CacheTTL, d.Notifier, d.Validator, d.Clock, d.Logger),
		category:   NewCategoryService(d.Repo, d.Cache, d.CacheTTL, d.Validator, d.Logger),
		question:   NewQuestionService(d.Repo, d.Validator),
		content:    NewContentService(d.Repo, d.Store, d.Cache, d.CacheTTL, d.Validator, d.Logger),
		auth:       NewAuthService(d.Repo, d.Tokens, d.Notifier, d.Validator, d.Clock, d.Logger),
		user:       NewUserService(d.Repo, d.Store, d.Validator, d.Clock, d.Logger),
		export:     NewExportService(d.Repo, d.Store, d.Logger),
	}
}

func (m *serviceManager) Paper() PaperService           { return m.paper }
func (m *serviceManager) PaperAdmin() PaperAdminService { return m.paperAdmin }
func (m *serviceManager) Review() ReviewService         { return m.review }
func (m *serviceManager) Conference() ConferenceService { return m.conference }
func (m *serviceManager) Category() CategoryService     { return m.category }
func (m *serviceManager) Question() QuestionService     { return m.question }
func (m *serviceManager) Content() ContentService       { return m.content }
func (m *serviceManager) Auth() AuthService             { return m.auth }
func (m *serviceManager) User() UserService             { return m.user }
func (m *serviceManager) Export() ExportService         { return m.export }

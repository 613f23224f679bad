package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"path"
	"slices"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/SAP-F-2025/conference-service/internal/cache"
	"github.com/SAP-F-2025/conference-service/internal/events"
	"github.com/SAP-F-2025/conference-service/internal/models"
	"github.com/SAP-F-2025/conference-service/internal/repositories"
	"github.com/SAP-F-2025/conference-service/internal/storage"
	"github.com/SAP-F-2025/conference-service/internal/utils"
	"github.com/SAP-F-2025/conference-service/internal/validator"
)

// ===== IN-MEMORY REPOSITORY =====

type memDB struct {
	mu sync.Mutex
	id uint

	users       map[uint]models.User
	conferences map[uint]models.Conference
	categories  map[uint]models.Category
	questions   map[uint]models.Question
	papers      map[uint]models.Paper
	reviews     map[uint]models.Review
	assignments []models.ReviewerAssignment
	history     []models.PaperStatusHistory
	archived    []models.ArchivedReview
	committee   map[uint]models.CommitteeMember
	program     map[uint]models.ProgramItem
	siteFiles   map[models.SiteFileKind]models.SiteFile
	documents   map[uint]models.ConferenceDocument

	// failPaperWrites makes paper Create/Update fail
	failPaperWrites error
}

func newMemDB() *memDB {
	return &memDB{
		users:       map[uint]models.User{},
		conferences: map[uint]models.Conference{},
		categories:  map[uint]models.Category{},
		questions:   map[uint]models.Question{},
		papers:      map[uint]models.Paper{},
		reviews:     map[uint]models.Review{},
		committee:   map[uint]models.CommitteeMember{},
		program:     map[uint]models.ProgramItem{},
		siteFiles:   map[models.SiteFileKind]models.SiteFile{},
		documents:   map[uint]models.ConferenceDocument{},
	}
}

func (db *memDB) nextID() uint {
	db.id++
	return db.id
}

type memRepo struct{ db *memDB }

func newMemRepo() *memRepo { return &memRepo{db: newMemDB()} }

func (r *memRepo) User() repositories.UserRepository             { return memUsers{r.db} }
func (r *memRepo) Conference() repositories.ConferenceRepository { return memConferences{r.db} }
func (r *memRepo) Category() repositories.CategoryRepository     { return memCategories{r.db} }
func (r *memRepo) Question() repositories.QuestionRepository     { return memQuestions{r.db} }
func (r *memRepo) Paper() repositories.PaperRepository           { return memPapers{r.db} }
func (r *memRepo) Review() repositories.ReviewRepository         { return memReviews{r.db} }
func (r *memRepo) Assignment() repositories.AssignmentRepository { return memAssignments{r.db} }
func (r *memRepo) StatusHistory() repositories.StatusHistoryRepository {
	return memHistory{r.db}
}
func (r *memRepo) Content() repositories.ContentRepository { return memContent{r.db} }
func (r *memRepo) Ping(ctx context.Context) error          { return nil }

// WithTransaction restores a snapshot when fn fails
func (r *memRepo) WithTransaction(ctx context.Context, fn func(tx repositories.Repository) error) error {
	r.db.mu.Lock()
	snapshot := r.db.snapshot()
	r.db.mu.Unlock()

	if err := fn(r); err != nil {
		r.db.mu.Lock()
		r.db.restore(snapshot)
		r.db.mu.Unlock()
		return err
	}
	return nil
}

func (db *memDB) snapshot() *memDB {
	return &memDB{
		users:       cloneMap(db.users),
		conferences: cloneMap(db.conferences),
		categories:  cloneMap(db.categories),
		questions:   cloneMap(db.questions),
		papers:      cloneMap(db.papers),
		reviews:     cloneMap(db.reviews),
		assignments: slices.Clone(db.assignments),
		history:     slices.Clone(db.history),
		archived:    slices.Clone(db.archived),
		committee:   cloneMap(db.committee),
		program:     cloneMap(db.program),
		siteFiles:   cloneMap(db.siteFiles),
		documents:   cloneMap(db.documents),
	}
}

func (db *memDB) restore(s *memDB) {
	db.users, db.conferences, db.categories = s.users, s.conferences, s.categories
	db.questions, db.papers, db.reviews = s.questions, s.papers, s.reviews
	db.assignments, db.history, db.archived = s.assignments, s.history, s.archived
	db.committee, db.program, db.siteFiles, db.documents = s.committee, s.program, s.siteFiles, s.documents
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func sortedValues[V any](m map[uint]V, keep func(V) bool) []*V {
	keys := make([]uint, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	out := make([]*V, 0, len(keys))
	for _, k := range keys {
		v := m[k]
		if keep == nil || keep(v) {
			out = append(out, &v)
		}
	}
	return out
}

// --- users ---

type memUsers struct{ db *memDB }

func (m memUsers) Create(ctx context.Context, u *models.User) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	for _, existing := range m.db.users {
		if existing.Email == u.Email {
			return repositories.ErrDuplicate
		}
	}
	u.ID = m.db.nextID()
	m.db.users[u.ID] = *u
	return nil
}

func (m memUsers) GetByID(ctx context.Context, id uint) (*models.User, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	u, ok := m.db.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &u, nil
}

func (m memUsers) find(match func(models.User) bool) (*models.User, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if found := sortedValues(m.db.users, match); len(found) > 0 {
		return found[0], nil
	}
	return nil, repositories.ErrNotFound
}

func (m memUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.find(func(u models.User) bool { return u.Email == email })
}

func (m memUsers) GetByVerificationToken(ctx context.Context, token string) (*models.User, error) {
	return m.find(func(u models.User) bool { return u.VerificationToken != nil && *u.VerificationToken == token })
}

func (m memUsers) GetByPasswordResetToken(ctx context.Context, token string) (*models.User, error) {
	return m.find(func(u models.User) bool { return u.PasswordResetToken != nil && *u.PasswordResetToken == token })
}

func (m memUsers) Update(ctx context.Context, u *models.User) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if _, ok := m.db.users[u.ID]; !ok {
		return repositories.ErrNotFound
	}
	m.db.users[u.ID] = *u
	return nil
}

func (m memUsers) Delete(ctx context.Context, id uint) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	delete(m.db.users, id)
	return nil
}

func (m memUsers) List(ctx context.Context, f repositories.UserFilters) ([]*models.User, int64, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	out := sortedValues(m.db.users, func(u models.User) bool {
		return (f.Role == nil || u.Role == *f.Role) && (f.Status == nil || u.Status == *f.Status)
	})
	return out, int64(len(out)), nil
}

func (m memUsers) GetByRole(ctx context.Context, role models.UserRole) ([]*models.User, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	return sortedValues(m.db.users, func(u models.User) bool { return u.Role == role }), nil
}

func (m memUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.GetByEmail(ctx, email)
	return err == nil, nil
}

func (m memUsers) UpdateLastLogin(ctx context.Context, id uint, at time.Time) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	u := m.db.users[id]
	u.LastLoginAt = &at
	m.db.users[id] = u
	return nil
}

func (m memUsers) SetRefreshToken(ctx context.Context, id uint, tokenID *string) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	u, ok := m.db.users[id]
	if !ok {
		return repositories.ErrNotFound
	}
	u.RefreshTokenID = tokenID
	m.db.users[id] = u
	return nil
}

// --- conferences ---

type memConferences struct{ db *memDB }

func (m memConferences) Create(ctx context.Context, c *models.Conference) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	c.ID = m.db.nextID()
	m.db.conferences[c.ID] = *c
	return nil
}

func (m memConferences) GetByID(ctx context.Context, id uint) (*models.Conference, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	c, ok := m.db.conferences[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &c, nil
}

func (m memConferences) Update(ctx context.Context, c *models.Conference) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	m.db.conferences[c.ID] = *c
	return nil
}

func (m memConferences) Delete(ctx context.Context, id uint) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	delete(m.db.conferences, id)
	return nil
}

func (m memConferences) List(ctx context.Context, f repositories.ConferenceFilters) ([]*models.Conference, int64, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	out := sortedValues(m.db.conferences, func(c models.Conference) bool {
		return (f.Status == nil || c.Status == *f.Status) && (f.Year == nil || c.Year == *f.Year)
	})
	return out, int64(len(out)), nil
}

func (m memConferences) GetByStatus(ctx context.Context, status models.ConferenceStatus) ([]*models.Conference, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	return sortedValues(m.db.conferences, func(c models.Conference) bool { return c.Status == status }), nil
}

func (m memConferences) GetAll(ctx context.Context) ([]*models.Conference, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	return sortedValues(m.db.conferences, nil), nil
}

func (m memConferences) UpdateStatus(ctx context.Context, id uint, status models.ConferenceStatus) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	c, ok := m.db.conferences[id]
	if !ok {
		return repositories.ErrNotFound
	}
	c.Status = status
	m.db.conferences[id] = c
	return nil
}

// --- categories ---

type memCategories struct{ db *memDB }

func (m memCategories) Create(ctx context.Context, c *models.Category) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	for _, existing := range m.db.categories {
		if existing.Name == c.Name {
			return repositories.ErrDuplicate
		}
	}
	c.ID = m.db.nextID()
	m.db.categories[c.ID] = *c
	return nil
}

func (m memCategories) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	c, ok := m.db.categories[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &c, nil
}

func (m memCategories) Update(ctx context.Context, c *models.Category) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	m.db.categories[c.ID] = *c
	return nil
}

func (m memCategories) Delete(ctx context.Context, id uint) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	delete(m.db.categories, id)
	return nil
}

func (m memCategories) List(ctx context.Context, activeOnly bool) ([]*models.Category, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	return sortedValues(m.db.categories, func(c models.Category) bool { return !activeOnly || c.IsActive }), nil
}

// --- questions ---

type memQuestions struct{ db *memDB }

func (m memQuestions) Create(ctx context.Context, q *models.Question) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	q.ID = m.db.nextID()
	m.db.questions[q.ID] = *q
	return nil
}

func (m memQuestions) GetByID(ctx context.Context, id uint) (*models.Question, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	q, ok := m.db.questions[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &q, nil
}

func (m memQuestions) Update(ctx context.Context, q *models.Question) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	m.db.questions[q.ID] = *q
	return nil
}

func (m memQuestions) Delete(ctx context.Context, id uint) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	delete(m.db.questions, id)
	return nil
}

func (m memQuestions) List(ctx context.Context) ([]*models.Question, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	return sortedValues(m.db.questions, nil), nil
}

func (m memQuestions) ExistingIDs(ctx context.Context, ids []uint) ([]uint, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	var out []uint
	for _, id := range ids {
		if _, ok := m.db.questions[id]; ok {
			out = append(out, id)
		}
	}
	return out, nil
}

// --- papers ---

type memPapers struct{ db *memDB }

func (m memPapers) Create(ctx context.Context, p *models.Paper) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if m.db.failPaperWrites != nil {
		return m.db.failPaperWrites
	}
	p.ID = m.db.nextID()
	m.db.papers[p.ID] = *p
	return nil
}

func (m memPapers) GetByID(ctx context.Context, id uint) (*models.Paper, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	p, ok := m.db.papers[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &p, nil
}

func (m memPapers) GetByIDWithDetails(ctx context.Context, id uint) (*models.Paper, error) {
	p, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	m.db.attach(p)
	return p, nil
}

// attach fills the relations the way the gorm preloads do
func (db *memDB) attach(p *models.Paper) {
	if u, ok := db.users[p.UserID]; ok {
		p.User = &u
	}
	if c, ok := db.conferences[p.ConferenceID]; ok {
		p.Conference = &c
	}
	if c, ok := db.categories[p.CategoryID]; ok {
		p.Category = &c
	}
	if p.ReviewerID != nil {
		if u, ok := db.users[*p.ReviewerID]; ok {
			p.Reviewer = &u
		}
	}
	if p.ReviewID != nil {
		if r, ok := db.reviews[*p.ReviewID]; ok {
			p.Review = &r
		}
	}
}

func (m memPapers) Update(ctx context.Context, p *models.Paper) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if m.db.failPaperWrites != nil {
		return m.db.failPaperWrites
	}
	if _, ok := m.db.papers[p.ID]; !ok {
		return repositories.ErrNotFound
	}
	stored := *p
	stored.User, stored.Conference, stored.Category, stored.Reviewer, stored.Review = nil, nil, nil, nil, nil
	m.db.papers[p.ID] = stored
	return nil
}

func (m memPapers) Delete(ctx context.Context, id uint) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	delete(m.db.papers, id)
	return nil
}

func (m memPapers) filter(keep func(models.Paper) bool) []*models.Paper {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	return sortedValues(m.db.papers, keep)
}

func (m memPapers) List(ctx context.Context, f repositories.PaperFilters) ([]*models.Paper, int64, error) {
	out := m.filter(func(p models.Paper) bool {
		return (f.ConferenceID == nil || p.ConferenceID == *f.ConferenceID) &&
			(f.CategoryID == nil || p.CategoryID == *f.CategoryID) &&
			(f.UserID == nil || p.UserID == *f.UserID) &&
			(f.ReviewerID == nil || (p.ReviewerID != nil && *p.ReviewerID == *f.ReviewerID)) &&
			(f.Status == nil || p.Status == *f.Status)
	})
	return out, int64(len(out)), nil
}

func (m memPapers) GetByUser(ctx context.Context, userID uint) ([]*models.Paper, error) {
	return m.filter(func(p models.Paper) bool { return p.UserID == userID }), nil
}

func (m memPapers) GetByReviewer(ctx context.Context, reviewerID uint) ([]*models.Paper, error) {
	return m.filter(func(p models.Paper) bool { return p.IsAssignedTo(reviewerID) }), nil
}

func (m memPapers) GetByConferenceWithDetails(ctx context.Context, conferenceID uint) ([]*models.Paper, error) {
	papers := m.filter(func(p models.Paper) bool { return p.ConferenceID == conferenceID })
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	for _, p := range papers {
		m.db.attach(p)
	}
	return papers, nil
}

func (m memPapers) CountByCategory(ctx context.Context, categoryID uint) (int64, error) {
	return int64(len(m.filter(func(p models.Paper) bool { return p.CategoryID == categoryID }))), nil
}

func (m memPapers) CountByConference(ctx context.Context, conferenceID uint) (int64, error) {
	return int64(len(m.filter(func(p models.Paper) bool { return p.ConferenceID == conferenceID }))), nil
}

// --- reviews ---

type memReviews struct{ db *memDB }

func (m memReviews) Create(ctx context.Context, r *models.Review) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	for _, existing := range m.db.reviews {
		if existing.PaperID == r.PaperID && existing.ReviewerID == r.ReviewerID {
			return repositories.ErrDuplicate
		}
	}
	r.ID = m.db.nextID()
	m.db.reviews[r.ID] = *r
	return nil
}

func (m memReviews) GetByID(ctx context.Context, id uint) (*models.Review, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	r, ok := m.db.reviews[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &r, nil
}

func (m memReviews) GetByIDWithPaper(ctx context.Context, id uint) (*models.Review, error) {
	r, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if p, ok := m.db.papers[r.PaperID]; ok {
		r.Paper = &p
	}
	return r, nil
}

func (m memReviews) GetByPaperAndReviewer(ctx context.Context, paperID, reviewerID uint) (*models.Review, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	found := sortedValues(m.db.reviews, func(r models.Review) bool {
		return r.PaperID == paperID && r.ReviewerID == reviewerID
	})
	if len(found) > 0 {
		return found[0], nil
	}
	return nil, repositories.ErrNotFound
}

func (m memReviews) Update(ctx context.Context, r *models.Review) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if _, ok := m.db.reviews[r.ID]; !ok {
		return repositories.ErrNotFound
	}
	stored := *r
	stored.Paper = nil
	m.db.reviews[r.ID] = stored
	return nil
}

func (m memReviews) Delete(ctx context.Context, id uint) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	delete(m.db.reviews, id)
	return nil
}

func (m memReviews) List(ctx context.Context, f repositories.ReviewFilters) ([]*models.Review, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	return sortedValues(m.db.reviews, func(r models.Review) bool {
		return (f.ReviewerID == nil || r.ReviewerID == *f.ReviewerID) &&
			(f.PaperID == nil || r.PaperID == *f.PaperID) &&
			(f.IsDraft == nil || r.IsDraft == *f.IsDraft)
	}), nil
}

func (m memReviews) SentPaperIDs(ctx context.Context, reviewerID uint) ([]uint, error) {
	isDraft := false
	reviews, _ := m.List(ctx, repositories.ReviewFilters{ReviewerID: &reviewerID, IsDraft: &isDraft})
	ids := make([]uint, 0, len(reviews))
	for _, r := range reviews {
		ids = append(ids, r.PaperID)
	}
	return ids, nil
}

func (m memReviews) deleteWhere(match func(models.Review) bool) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	for id, r := range m.db.reviews {
		if match(r) {
			delete(m.db.reviews, id)
		}
	}
}

func (m memReviews) DeleteByReviewer(ctx context.Context, reviewerID uint) error {
	m.deleteWhere(func(r models.Review) bool { return r.ReviewerID == reviewerID })
	return nil
}

func (m memReviews) DeleteByPaper(ctx context.Context, paperID uint) error {
	m.deleteWhere(func(r models.Review) bool { return r.PaperID == paperID })
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	m.db.archived = slices.DeleteFunc(m.db.archived, func(a models.ArchivedReview) bool { return a.PaperID == paperID })
	return nil
}

func (m memReviews) ArchiveSent(ctx context.Context, paperID uint, reason string, at time.Time) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	for _, r := range sortedValues(m.db.reviews, func(r models.Review) bool { return r.PaperID == paperID && r.IsSent() }) {
		archived := models.NewArchivedReview(r, reason, at)
		archived.ID = m.db.nextID()
		m.db.archived = append(m.db.archived, *archived)
		delete(m.db.reviews, r.ID)
	}
	return nil
}

func (m memReviews) ArchivedByPaper(ctx context.Context, paperID uint) ([]*models.ArchivedReview, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	var out []*models.ArchivedReview
	for _, a := range m.db.archived {
		if a.PaperID == paperID {
			out = append(out, &a)
		}
	}
	return out, nil
}

// --- assignment log and history ---

type memAssignments struct{ db *memDB }

func (m memAssignments) Create(ctx context.Context, a *models.ReviewerAssignment) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	a.ID = m.db.nextID()
	m.db.assignments = append(m.db.assignments, *a)
	return nil
}

func (m memAssignments) GetByPaper(ctx context.Context, paperID uint) ([]*models.ReviewerAssignment, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	var out []*models.ReviewerAssignment
	for _, a := range m.db.assignments {
		if a.PaperID == paperID {
			out = append(out, &a)
		}
	}
	return out, nil
}

func (m memAssignments) LatestByPapers(ctx context.Context, paperIDs []uint) (map[uint]*models.ReviewerAssignment, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	out := map[uint]*models.ReviewerAssignment{}
	for _, a := range m.db.assignments {
		if slices.Contains(paperIDs, a.PaperID) {
			out[a.PaperID] = &a
		}
	}
	return out, nil
}

type memHistory struct{ db *memDB }

func (m memHistory) Create(ctx context.Context, h *models.PaperStatusHistory) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	h.ID = m.db.nextID()
	m.db.history = append(m.db.history, *h)
	return nil
}

func (m memHistory) GetByPaper(ctx context.Context, paperID uint) ([]*models.PaperStatusHistory, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	var out []*models.PaperStatusHistory
	for _, h := range m.db.history {
		if h.PaperID == paperID {
			out = append(out, &h)
		}
	}
	return out, nil
}

// ===== FILE STORE =====

// --- content ---

type memContent struct{ db *memDB }

func (m memContent) CreateCommitteeMember(ctx context.Context, c *models.CommitteeMember) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	c.ID = m.db.nextID()
	m.db.committee[c.ID] = *c
	return nil
}

func (m memContent) GetCommitteeMember(ctx context.Context, id uint) (*models.CommitteeMember, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	c, ok := m.db.committee[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &c, nil
}

func (m memContent) UpdateCommitteeMember(ctx context.Context, c *models.CommitteeMember) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	m.db.committee[c.ID] = *c
	return nil
}

func (m memContent) DeleteCommitteeMember(ctx context.Context, id uint) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if _, ok := m.db.committee[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.db.committee, id)
	return nil
}

func (m memContent) ListCommitteeMembers(ctx context.Context) ([]*models.CommitteeMember, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	return sortedValues(m.db.committee, nil), nil
}

func (m memContent) ListProgramItems(ctx context.Context) ([]*models.ProgramItem, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	items := sortedValues(m.db.program, nil)
	sort.SliceStable(items, func(i, j int) bool { return items[i].Position < items[j].Position })
	return items, nil
}

func (m memContent) ReplaceProgramItems(ctx context.Context, items []*models.ProgramItem) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	m.db.program = map[uint]models.ProgramItem{}
	for _, item := range items {
		item.ID = m.db.nextID()
		m.db.program[item.ID] = *item
	}
	return nil
}

func (m memContent) DeleteProgramItem(ctx context.Context, id uint) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if _, ok := m.db.program[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.db.program, id)
	return nil
}

func (m memContent) GetSiteFile(ctx context.Context, kind models.SiteFileKind) (*models.SiteFile, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	f, ok := m.db.siteFiles[kind]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &f, nil
}

func (m memContent) SaveSiteFile(ctx context.Context, f *models.SiteFile) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	m.db.siteFiles[f.Kind] = *f
	return nil
}

func (m memContent) ListSiteFiles(ctx context.Context) ([]*models.SiteFile, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	out := make([]*models.SiteFile, 0, len(m.db.siteFiles))
	for _, f := range m.db.siteFiles {
		out = append(out, &f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Kind < out[j].Kind })
	return out, nil
}

func (m memContent) CreateDocument(ctx context.Context, d *models.ConferenceDocument) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	for _, existing := range m.db.documents {
		if existing.ConferenceID == d.ConferenceID {
			return repositories.ErrDuplicate
		}
	}
	d.ID = m.db.nextID()
	m.db.documents[d.ID] = *d
	return nil
}

func (m memContent) GetDocument(ctx context.Context, id uint) (*models.ConferenceDocument, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	d, ok := m.db.documents[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	if c, ok := m.db.conferences[d.ConferenceID]; ok {
		d.Conference = &c
	}
	return &d, nil
}

func (m memContent) UpdateDocument(ctx context.Context, d *models.ConferenceDocument) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	m.db.documents[d.ID] = *d
	return nil
}

func (m memContent) DeleteDocument(ctx context.Context, id uint) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if _, ok := m.db.documents[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.db.documents, id)
	return nil
}

func (m memContent) HasDocument(ctx context.Context, conferenceID uint) (bool, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	for _, d := range m.db.documents {
		if d.ConferenceID == conferenceID {
			return true, nil
		}
	}
	return false, nil
}

func (m memContent) ListDocuments(ctx context.Context) ([]*models.ConferenceDocument, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	docs := sortedValues(m.db.documents, nil)
	for _, d := range docs {
		if c, ok := m.db.conferences[d.ConferenceID]; ok {
			d.Conference = &c
		}
	}
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].Conference != nil && docs[j].Conference != nil && docs[i].Conference.Year > docs[j].Conference.Year
	})
	return docs, nil
}

type memStore struct {
	mu      sync.Mutex
	files   map[string][]byte
	seq     int
	saveErr error
}

func newMemStore() *memStore {
	return &memStore{files: map[string][]byte{}}
}

func (s *memStore) Save(ctx context.Context, r io.Reader, suggestedName, dir string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return "", s.saveErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.seq++
	p := path.Join(dir, strings.Repeat("f", s.seq)+"-"+storage.StoredName(suggestedName))
	s.files[p] = data
	return p, nil
}

func (s *memStore) Delete(ctx context.Context, p string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.files[p]; !ok {
		return storage.ErrFileNotFound
	}
	delete(s.files, p)
	return nil
}

func (s *memStore) Open(ctx context.Context, p string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[p]
	if !ok {
		return nil, storage.ErrFileNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *memStore) Paths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.files))
	for p := range s.files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func (s *memStore) Has(p string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.files[p]
	return ok
}

// ===== MAILER MOCK =====

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(ctx context.Context, to []string, subject, html string) error {
	args := m.Called(ctx, to, subject, html)
	return args.Error(0)
}

// ===== TEST ENVIRONMENT =====

var errBoom = errors.New("boom")

// testEnv wires every service against in-memory infrastructure with a fixed clock
type testEnv struct {
	repo      *memRepo
	store     *memStore
	sender    *mockSender
	publisher *events.MockEventPublisher
	clock     *utils.FixedClock
	cache     *mapCache
	notifier  Notifier
	logger    *slog.Logger
	validator *validator.Validator

	papers     PaperService
	admin      PaperAdminService
	reviews    ReviewService
	conference ConferenceService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	env := &testEnv{
		repo:      newMemRepo(),
		store:     newMemStore(),
		sender:    &mockSender{},
		publisher: events.NewMockEventPublisher(logger),
		clock:     &utils.FixedClock{T: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)},
		cache:     newMapCache(),
		logger:    logger,
		validator: validator.New(),
	}
	env.sender.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	env.notifier = NewNotificationService(env.repo, env.sender, env.publisher, env.clock, logger, NotifierConfig{
		FrontendURL: "http://frontend",
	})

	env.papers = NewPaperService(env.repo, env.store, env.notifier, env.validator, env.clock, logger)
	env.admin = NewPaperAdminService(env.repo, env.store, env.notifier, env.validator, env.clock, logger)
	env.reviews = NewReviewService(env.repo, env.notifier, env.validator, env.clock, logger)
	env.conference = NewConferenceService(env.repo, env.cache, time.Minute, env.notifier, env.validator, env.clock, logger)
	return env
}

func (e *testEnv) ctx() context.Context { return context.Background() }

func (e *testEnv) addUser(t *testing.T, role models.UserRole, email string) models.Actor {
	t.Helper()
	u := &models.User{
		FirstName:  "Test",
		LastName:   string(role),
		Email:      email,
		Role:       role,
		Status:     models.UserStatusActive,
		IsVerified: true,
	}
	if err := e.repo.User().Create(e.ctx(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return models.Actor{UserID: u.ID, Role: role}
}

// addConference creates an ongoing conference whose submission and review
// deadlines fall on the given days
func (e *testEnv) addConference(t *testing.T, submission, review time.Time) *models.Conference {
	t.Helper()
	c := &models.Conference{
		Year:               2025,
		Location:           "Nitra",
		University:         "UKF",
		Status:             models.ConferenceOngoing,
		StartDate:          time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:            time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		DeadlineSubmission: models.EndOfDay(submission),
		DeadlineReview:     models.EndOfDay(review),
	}
	if err := e.repo.Conference().Create(e.ctx(), c); err != nil {
		t.Fatalf("create conference: %v", err)
	}
	return c
}

func (e *testEnv) addCategory(t *testing.T, name string, active bool) *models.Category {
	t.Helper()
	c := &models.Category{Name: name, IsActive: active}
	if err := e.repo.Category().Create(e.ctx(), c); err != nil {
		t.Fatalf("create category: %v", err)
	}
	return c
}

func (e *testEnv) addQuestion(t *testing.T) *models.Question {
	t.Helper()
	q := &models.Question{Text: "Originality", Type: models.QuestionRating}
	if err := e.repo.Question().Create(e.ctx(), q); err != nil {
		t.Fatalf("create question: %v", err)
	}
	return q
}

func (e *testEnv) paper(t *testing.T, id uint) *models.Paper {
	t.Helper()
	p, err := e.repo.Paper().GetByID(e.ctx(), id)
	if err != nil {
		t.Fatalf("load paper %d: %v", id, err)
	}
	return p
}

func pdf(name string) *FileUpload {
	return &FileUpload{Name: name, Reader: strings.NewReader("%PDF-1.4 test")}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ===== CACHE =====

// mapCache is an in-memory CacheService with the same JSON round trip as Redis
type mapCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	hits    int
}

func newMapCache() *mapCache {
	return &mapCache{entries: map[string][]byte{}}
}

func (c *mapCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = data
	return nil
}

func (c *mapCache) Get(ctx context.Context, key string, dest any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.entries[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	c.hits++
	return json.Unmarshal(data, dest)
}

func (c *mapCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

func (c *mapCache) DeletePattern(ctx context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
	return nil
}

func (c *mapCache) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}

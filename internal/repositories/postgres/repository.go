package postgres

import (
	"context"
	"errors"

	"github.com/SAP-F-2025/conference-service/internal/repositories"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

type repository struct {
	db *gorm.DB
}

// NewRepository wires every postgres repository on top of db
func NewRepository(db *gorm.DB) repositories.Repository {
	return &repository{db: db}
}

func (r *repository) User() repositories.UserRepository {
	return NewUserPostgreSQL(r.db)
}

func (r *repository) Conference() repositories.ConferenceRepository {
	return NewConferencePostgreSQL(r.db)
}

func (r *repository) Category() repositories.CategoryRepository {
	return NewCategoryPostgreSQL(r.db)
}

func (r *repository) Question() repositories.QuestionRepository {
	return NewQuestionPostgreSQL(r.db)
}

func (r *repository) Paper() repositories.PaperRepository {
	return NewPaperPostgreSQL(r.db)
}

func (r *repository) Review() repositories.ReviewRepository {
	return NewReviewPostgreSQL(r.db)
}

func (r *repository) Assignment() repositories.AssignmentRepository {
	return NewAssignmentPostgreSQL(r.db)
}

func (r *repository) StatusHistory() repositories.StatusHistoryRepository {
	return NewStatusHistoryPostgreSQL(r.db)
}

func (r *repository) Content() repositories.ContentRepository {
	return NewContentPostgreSQL(r.db)
}

func (r *repository) WithTransaction(ctx context.Context, fn func(tx repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&repository{db: tx})
	})
}

func (r *repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// translateError maps driver errors onto the repository sentinels
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repositories.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return repositories.ErrDuplicate
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return repositories.ErrDuplicate
	}
	return err
}

// requireAffected turns a no-op update or delete into ErrNotFound
func requireAffected(result *gorm.DB) error {
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func paginate(db *gorm.DB, limit, offset int) *gorm.DB {
	if limit > 0 {
		db = db.Limit(limit)
	}
	if offset > 0 {
		db = db.Offset(offset)
	}
	return db
}

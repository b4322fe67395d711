package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/crestline/origination-backend/internal/domain"
	"github.com/crestline/origination-backend/internal/pkg/logger"
)

type DirectorRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.Director) ([]*types.Director, error)
	GetByBorrowerID(ctx context.Context, tx *gorm.DB, borrowerID uuid.UUID) ([]*types.Director, error)
	FullDeleteByBorrowerIDs(ctx context.Context, tx *gorm.DB, borrowerIDs []uuid.UUID) error
}

type directorRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDirectorRepo(db *gorm.DB, baseLog *logger.Logger) DirectorRepo {
	return &directorRepo{db: db, log: baseLog.With("repo", "DirectorRepo")}
}

func (r *directorRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Director) ([]*types.Director, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.Director{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *directorRepo) GetByBorrowerID(ctx context.Context, tx *gorm.DB, borrowerID uuid.UUID) ([]*types.Director, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.Director
	if err := t.WithContext(ctx).Where("borrower_id = ?", borrowerID).Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *directorRepo) FullDeleteByBorrowerIDs(ctx context.Context, tx *gorm.DB, borrowerIDs []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(borrowerIDs) == 0 {
		return nil
	}
	return t.WithContext(ctx).Where("borrower_id IN ?", borrowerIDs).Delete(&types.Director{}).Error
}

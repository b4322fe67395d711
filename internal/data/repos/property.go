package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/crestline/origination-backend/internal/domain"
	"github.com/crestline/origination-backend/internal/pkg/logger"
)

type SecurityPropertyRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.SecurityProperty) ([]*types.SecurityProperty, error)
	GetByApplicationID(ctx context.Context, tx *gorm.DB, appID uuid.UUID) ([]*types.SecurityProperty, error)
	Update(ctx context.Context, tx *gorm.DB, row *types.SecurityProperty) error
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
	FullDeleteByApplicationID(ctx context.Context, tx *gorm.DB, appID uuid.UUID) error
}

type securityPropertyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSecurityPropertyRepo(db *gorm.DB, baseLog *logger.Logger) SecurityPropertyRepo {
	return &securityPropertyRepo{db: db, log: baseLog.With("repo", "SecurityPropertyRepo")}
}

func (r *securityPropertyRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.SecurityProperty) ([]*types.SecurityProperty, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.SecurityProperty{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *securityPropertyRepo) GetByApplicationID(ctx context.Context, tx *gorm.DB, appID uuid.UUID) ([]*types.SecurityProperty, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.SecurityProperty
	if err := t.WithContext(ctx).Where("application_id = ?", appID).Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *securityPropertyRepo) Update(ctx context.Context, tx *gorm.DB, row *types.SecurityProperty) error {
	t := tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(ctx).Save(row).Error
}

func (r *securityPropertyRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(ids) == 0 {
		return nil
	}
	return t.WithContext(ctx).Where("id IN ?", ids).Delete(&types.SecurityProperty{}).Error
}

func (r *securityPropertyRepo) FullDeleteByApplicationID(ctx context.Context, tx *gorm.DB, appID uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(ctx).Where("application_id = ?", appID).Delete(&types.SecurityProperty{}).Error
}

package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/crestline/origination-backend/internal/domain"
	"github.com/crestline/origination-backend/internal/pkg/logger"
)

type GuarantorRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.Guarantor) ([]*types.Guarantor, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Guarantor, error)
	GetByApplicationID(ctx context.Context, tx *gorm.DB, appID uuid.UUID) ([]*types.Guarantor, error)
	Update(ctx context.Context, tx *gorm.DB, row *types.Guarantor) error
	DetachByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type guarantorRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGuarantorRepo(db *gorm.DB, baseLog *logger.Logger) GuarantorRepo {
	return &guarantorRepo{db: db, log: baseLog.With("repo", "GuarantorRepo")}
}

func (r *guarantorRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Guarantor) ([]*types.Guarantor, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.Guarantor{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *guarantorRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Guarantor, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.Guarantor
	if len(ids) == 0 {
		return out, nil
	}
	if err := t.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *guarantorRepo) GetByApplicationID(ctx context.Context, tx *gorm.DB, appID uuid.UUID) ([]*types.Guarantor, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.Guarantor
	if err := t.WithContext(ctx).Where("application_id = ?", appID).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *guarantorRepo) Update(ctx context.Context, tx *gorm.DB, row *types.Guarantor) error {
	t := tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(ctx).Omit("Assets", "Liabilities").Save(row).Error
}

// DetachByIDs clears the application link. The guarantor row and its
// financials stay persisted.
func (r *guarantorRepo) DetachByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(ids) == 0 {
		return nil
	}
	return t.WithContext(ctx).Model(&types.Guarantor{}).Where("id IN ?", ids).Update("application_id", nil).Error
}

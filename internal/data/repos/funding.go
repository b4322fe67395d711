package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/crestline/origination-backend/internal/domain"
	"github.com/crestline/origination-backend/internal/pkg/logger"
)

// FundingCalculationRepo is append-only on purpose: no update or delete
// methods exist. History rows are immutable once written.
type FundingCalculationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.FundingCalculation) (*types.FundingCalculation, error)
	GetByApplicationID(ctx context.Context, tx *gorm.DB, appID uuid.UUID) ([]*types.FundingCalculation, error)
	CountByApplicationID(ctx context.Context, tx *gorm.DB, appID uuid.UUID) (int64, error)
}

type fundingCalculationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFundingCalculationRepo(db *gorm.DB, baseLog *logger.Logger) FundingCalculationRepo {
	return &fundingCalculationRepo{db: db, log: baseLog.With("repo", "FundingCalculationRepo")}
}

func (r *fundingCalculationRepo) Create(ctx context.Context, tx *gorm.DB, row *types.FundingCalculation) (*types.FundingCalculation, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if err := t.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *fundingCalculationRepo) GetByApplicationID(ctx context.Context, tx *gorm.DB, appID uuid.UUID) ([]*types.FundingCalculation, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.FundingCalculation
	if err := t.WithContext(ctx).Where("application_id = ?", appID).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *fundingCalculationRepo) CountByApplicationID(ctx context.Context, tx *gorm.DB, appID uuid.UUID) (int64, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var n int64
	if err := t.WithContext(ctx).Model(&types.FundingCalculation{}).Where("application_id = ?", appID).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/crestline/origination-backend/internal/domain"
	"github.com/crestline/origination-backend/internal/pkg/logger"
)

type LoanRequirementRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.LoanRequirement) ([]*types.LoanRequirement, error)
	GetByApplicationID(ctx context.Context, tx *gorm.DB, appID uuid.UUID) ([]*types.LoanRequirement, error)
	Update(ctx context.Context, tx *gorm.DB, row *types.LoanRequirement) error
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
	FullDeleteByApplicationID(ctx context.Context, tx *gorm.DB, appID uuid.UUID) error
}

type loanRequirementRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLoanRequirementRepo(db *gorm.DB, baseLog *logger.Logger) LoanRequirementRepo {
	return &loanRequirementRepo{db: db, log: baseLog.With("repo", "LoanRequirementRepo")}
}

func (r *loanRequirementRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.LoanRequirement) ([]*types.LoanRequirement, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.LoanRequirement{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *loanRequirementRepo) GetByApplicationID(ctx context.Context, tx *gorm.DB, appID uuid.UUID) ([]*types.LoanRequirement, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.LoanRequirement
	if err := t.WithContext(ctx).Where("application_id = ?", appID).Order("position ASC, created_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *loanRequirementRepo) Update(ctx context.Context, tx *gorm.DB, row *types.LoanRequirement) error {
	t := tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(ctx).Save(row).Error
}

func (r *loanRequirementRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(ids) == 0 {
		return nil
	}
	return t.WithContext(ctx).Where("id IN ?", ids).Delete(&types.LoanRequirement{}).Error
}

func (r *loanRequirementRepo) FullDeleteByApplicationID(ctx context.Context, tx *gorm.DB, appID uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(ctx).Where("application_id = ?", appID).Delete(&types.LoanRequirement{}).Error
}

package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/crestline/origination-backend/internal/domain"
	"github.com/crestline/origination-backend/internal/pkg/logger"
)

// Assets and liabilities share ownership semantics: each row belongs to
// exactly one borrower or one guarantor, and sub-reconciliation always
// replaces an owner's rows wholesale.

type AssetRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.Asset) ([]*types.Asset, error)
	FullDeleteByBorrowerIDs(ctx context.Context, tx *gorm.DB, borrowerIDs []uuid.UUID) error
	FullDeleteByGuarantorIDs(ctx context.Context, tx *gorm.DB, guarantorIDs []uuid.UUID) error
}

type assetRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssetRepo(db *gorm.DB, baseLog *logger.Logger) AssetRepo {
	return &assetRepo{db: db, log: baseLog.With("repo", "AssetRepo")}
}

func (r *assetRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Asset) ([]*types.Asset, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.Asset{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *assetRepo) FullDeleteByBorrowerIDs(ctx context.Context, tx *gorm.DB, borrowerIDs []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(borrowerIDs) == 0 {
		return nil
	}
	return t.WithContext(ctx).Where("borrower_id IN ?", borrowerIDs).Delete(&types.Asset{}).Error
}

func (r *assetRepo) FullDeleteByGuarantorIDs(ctx context.Context, tx *gorm.DB, guarantorIDs []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(guarantorIDs) == 0 {
		return nil
	}
	return t.WithContext(ctx).Where("guarantor_id IN ?", guarantorIDs).Delete(&types.Asset{}).Error
}

type LiabilityRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.Liability) ([]*types.Liability, error)
	FullDeleteByBorrowerIDs(ctx context.Context, tx *gorm.DB, borrowerIDs []uuid.UUID) error
	FullDeleteByGuarantorIDs(ctx context.Context, tx *gorm.DB, guarantorIDs []uuid.UUID) error
}

type liabilityRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLiabilityRepo(db *gorm.DB, baseLog *logger.Logger) LiabilityRepo {
	return &liabilityRepo{db: db, log: baseLog.With("repo", "LiabilityRepo")}
}

func (r *liabilityRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Liability) ([]*types.Liability, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.Liability{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *liabilityRepo) FullDeleteByBorrowerIDs(ctx context.Context, tx *gorm.DB, borrowerIDs []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(borrowerIDs) == 0 {
		return nil
	}
	return t.WithContext(ctx).Where("borrower_id IN ?", borrowerIDs).Delete(&types.Liability{}).Error
}

func (r *liabilityRepo) FullDeleteByGuarantorIDs(ctx context.Context, tx *gorm.DB, guarantorIDs []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(guarantorIDs) == 0 {
		return nil
	}
	return t.WithContext(ctx).Where("guarantor_id IN ?", guarantorIDs).Delete(&types.Liability{}).Error
}

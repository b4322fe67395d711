package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/crestline/origination-backend/internal/domain"
	"github.com/crestline/origination-backend/internal/pkg/logger"
)

// StageHistoryRepo is append-only, like FundingCalculationRepo.
type StageHistoryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.StageHistoryEntry) (*types.StageHistoryEntry, error)
	GetByApplicationID(ctx context.Context, tx *gorm.DB, appID uuid.UUID) ([]*types.StageHistoryEntry, error)
}

type stageHistoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStageHistoryRepo(db *gorm.DB, baseLog *logger.Logger) StageHistoryRepo {
	return &stageHistoryRepo{db: db, log: baseLog.With("repo", "StageHistoryRepo")}
}

func (r *stageHistoryRepo) Create(ctx context.Context, tx *gorm.DB, row *types.StageHistoryEntry) (*types.StageHistoryEntry, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if err := t.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *stageHistoryRepo) GetByApplicationID(ctx context.Context, tx *gorm.DB, appID uuid.UUID) ([]*types.StageHistoryEntry, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.StageHistoryEntry
	if err := t.WithContext(ctx).Where("application_id = ?", appID).Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

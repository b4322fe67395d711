package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/crestline/origination-backend/internal/domain"
	"github.com/crestline/origination-backend/internal/pkg/logger"
)

type LoanServicingRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.LoanServicing) (*types.LoanServicing, error)
	GetByApplicationID(ctx context.Context, tx *gorm.DB, appID uuid.UUID) (*types.LoanServicing, error)
}

type loanServicingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLoanServicingRepo(db *gorm.DB, baseLog *logger.Logger) LoanServicingRepo {
	return &loanServicingRepo{db: db, log: baseLog.With("repo", "LoanServicingRepo")}
}

func (r *loanServicingRepo) Create(ctx context.Context, tx *gorm.DB, row *types.LoanServicing) (*types.LoanServicing, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if err := t.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *loanServicingRepo) GetByApplicationID(ctx context.Context, tx *gorm.DB, appID uuid.UUID) (*types.LoanServicing, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var row types.LoanServicing
	err := t.WithContext(ctx).Where("application_id = ?", appID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

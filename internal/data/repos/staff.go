package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/crestline/origination-backend/internal/domain"
	"github.com/crestline/origination-backend/internal/pkg/logger"
)

type StaffRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.Staff) (*types.Staff, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Staff, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.Staff, error)
}

type staffRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStaffRepo(db *gorm.DB, baseLog *logger.Logger) StaffRepo {
	return &staffRepo{db: db, log: baseLog.With("repo", "StaffRepo")}
}

func (r *staffRepo) Create(ctx context.Context, tx *gorm.DB, row *types.Staff) (*types.Staff, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if err := t.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *staffRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Staff, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var row types.Staff
	err := t.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *staffRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.Staff, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var row types.Staff
	err := t.WithContext(ctx).Where("email = ?", email).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

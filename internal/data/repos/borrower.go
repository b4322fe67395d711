package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/crestline/origination-backend/internal/domain"
	"github.com/crestline/origination-backend/internal/pkg/logger"
)

type BorrowerRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.Borrower) ([]*types.Borrower, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Borrower, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Borrower, error)
	GetByApplicationID(ctx context.Context, tx *gorm.DB, appID uuid.UUID) ([]*types.Borrower, error)
	Update(ctx context.Context, tx *gorm.DB, row *types.Borrower) error
}

type borrowerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBorrowerRepo(db *gorm.DB, baseLog *logger.Logger) BorrowerRepo {
	return &borrowerRepo{db: db, log: baseLog.With("repo", "BorrowerRepo")}
}

func (r *borrowerRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Borrower) ([]*types.Borrower, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.Borrower{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *borrowerRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Borrower, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.Borrower
	if len(ids) == 0 {
		return out, nil
	}
	if err := t.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *borrowerRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Borrower, error) {
	rows, err := r.GetByIDs(ctx, tx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// GetByApplicationID walks the membership join table; it returns both
// individual and company members.
func (r *borrowerRepo) GetByApplicationID(ctx context.Context, tx *gorm.DB, appID uuid.UUID) ([]*types.Borrower, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.Borrower
	err := t.WithContext(ctx).
		Joins("JOIN application_borrowers ab ON ab.borrower_id = borrower.id").
		Where("ab.application_id = ?", appID).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *borrowerRepo) Update(ctx context.Context, tx *gorm.DB, row *types.Borrower) error {
	t := tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(ctx).Omit("Directors", "Assets", "Liabilities").Save(row).Error
}

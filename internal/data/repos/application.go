package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/crestline/origination-backend/internal/domain"
	"github.com/crestline/origination-backend/internal/pkg/logger"
)

type ApplicationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, app *types.Application) (*types.Application, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Application, error)
	GetLeanByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Application, error)
	GetByReferenceNumber(ctx context.Context, tx *gorm.DB, ref string) (*types.Application, error)
	List(ctx context.Context, tx *gorm.DB, limit, offset int) ([]*types.Application, int64, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
	UpdateFundingResult(ctx context.Context, tx *gorm.DB, id uuid.UUID, result datatypes.JSON) error
	ReplaceBorrowers(ctx context.Context, tx *gorm.DB, app *types.Application, borrowers []*types.Borrower) error
	SoftDeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type applicationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewApplicationRepo(db *gorm.DB, baseLog *logger.Logger) ApplicationRepo {
	return &applicationRepo{db: db, log: baseLog.With("repo", "ApplicationRepo")}
}

func (r *applicationRepo) Create(ctx context.Context, tx *gorm.DB, app *types.Application) (*types.Application, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	// Associations are written by the reconciler, never implicitly on create.
	if err := t.WithContext(ctx).Omit(clause.Associations).Create(app).Error; err != nil {
		return nil, err
	}
	return app, nil
}

func (r *applicationRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Application, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var app types.Application
	err := t.WithContext(ctx).
		Preload("Borrowers").
		Preload("Borrowers.Directors").
		Preload("Borrowers.Assets").
		Preload("Borrowers.Liabilities").
		Preload("Guarantors").
		Preload("Guarantors.Assets").
		Preload("Guarantors.Liabilities").
		Preload("SecurityProperties", orderByPosition("created_at ASC")).
		Preload("LoanRequirements", orderByPosition("position ASC, created_at ASC")).
		Preload("Notes", orderByPosition("created_at DESC")).
		Preload("Documents", orderByPosition("created_at DESC")).
		Preload("StageHistory", orderByPosition("created_at ASC")).
		Preload("Servicing").
		Where("id = ?", id).
		First(&app).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func orderByPosition(order string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB { return db.Order(order) }
}

func (r *applicationRepo) GetLeanByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Application, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var app types.Application
	if err := t.WithContext(ctx).Where("id = ?", id).First(&app).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepo) GetByReferenceNumber(ctx context.Context, tx *gorm.DB, ref string) (*types.Application, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var app types.Application
	if err := t.WithContext(ctx).Where("reference_number = ?", ref).First(&app).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepo) List(ctx context.Context, tx *gorm.DB, limit, offset int) ([]*types.Application, int64, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var total int64
	if err := t.WithContext(ctx).Model(&types.Application{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []*types.Application
	q := t.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *applicationRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(updates) == 0 {
		return nil
	}
	return t.WithContext(ctx).Model(&types.Application{}).Where("id = ?", id).Updates(updates).Error
}

func (r *applicationRepo) UpdateFundingResult(ctx context.Context, tx *gorm.DB, id uuid.UUID, result datatypes.JSON) error {
	t := tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(ctx).Model(&types.Application{}).Where("id = ?", id).Update("funding_result", result).Error
}

// ReplaceBorrowers rewrites the membership join rows to exactly the given set.
// Borrower rows themselves are untouched: shared associations are detached,
// never deleted.
func (r *applicationRepo) ReplaceBorrowers(ctx context.Context, tx *gorm.DB, app *types.Application, borrowers []*types.Borrower) error {
	t := tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(ctx).Model(app).Association("Borrowers").Replace(borrowers)
}

func (r *applicationRepo) SoftDeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(ctx).Where("id = ?", id).Delete(&types.Application{}).Error
}

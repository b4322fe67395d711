package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/crestline/origination-backend/internal/domain"
	"github.com/crestline/origination-backend/internal/pkg/logger"
)

type NoteRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.Note) ([]*types.Note, error)
	GetByApplicationID(ctx context.Context, tx *gorm.DB, appID uuid.UUID) ([]*types.Note, error)
}

type noteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNoteRepo(db *gorm.DB, baseLog *logger.Logger) NoteRepo {
	return &noteRepo{db: db, log: baseLog.With("repo", "NoteRepo")}
}

func (r *noteRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Note) ([]*types.Note, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.Note{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *noteRepo) GetByApplicationID(ctx context.Context, tx *gorm.DB, appID uuid.UUID) ([]*types.Note, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.Note
	if err := t.WithContext(ctx).Where("application_id = ?", appID).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

type DocumentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.Document) ([]*types.Document, error)
	GetByApplicationID(ctx context.Context, tx *gorm.DB, appID uuid.UUID) ([]*types.Document, error)
}

type documentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDocumentRepo(db *gorm.DB, baseLog *logger.Logger) DocumentRepo {
	return &documentRepo{db: db, log: baseLog.With("repo", "DocumentRepo")}
}

func (r *documentRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Document) ([]*types.Document, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.Document{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *documentRepo) GetByApplicationID(ctx context.Context, tx *gorm.DB, appID uuid.UUID) ([]*types.Document, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.Document
	if err := t.WithContext(ctx).Where("application_id = ?", appID).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/crestline/origination-backend/internal/data/repos"
	types "github.com/crestline/origination-backend/internal/domain"
	"github.com/crestline/origination-backend/internal/pkg/logger"
)

type ServicingService interface {
	CreateDefaultIfMissing(ctx context.Context, appID uuid.UUID) (*types.LoanServicing, error)
	GetByApplicationID(ctx context.Context, appID uuid.UUID) (*types.LoanServicing, error)
	HandleEvent(ctx context.Context, ev types.Event) error
}

type servicingService struct {
	db      *gorm.DB
	log     *logger.Logger
	appRepo repos.ApplicationRepo
	svcRepo repos.LoanServicingRepo
}

func NewServicingService(db *gorm.DB, baseLog *logger.Logger, appRepo repos.ApplicationRepo, svcRepo repos.LoanServicingRepo) ServicingService {
	return &servicingService{
		db:      db,
		log:     baseLog.With("service", "ServicingService"),
		appRepo: appRepo,
		svcRepo: svcRepo,
	}
}

// HandleEvent is registered on the dispatcher. Only settlement matters here.
func (s *servicingService) HandleEvent(ctx context.Context, ev types.Event) error {
	settled, ok := ev.(types.ApplicationSettled)
	if !ok {
		return nil
	}
	_, err := s.CreateDefaultIfMissing(ctx, settled.ApplicationID)
	return err
}

// CreateDefaultIfMissing is idempotent: settling the same application twice,
// or replaying the settled event, never produces a second servicing record.
func (s *servicingService) CreateDefaultIfMissing(ctx context.Context, appID uuid.UUID) (*types.LoanServicing, error) {
	var out *types.LoanServicing
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.svcRepo.GetByApplicationID(ctx, tx, appID)
		if err != nil {
			return err
		}
		if existing != nil {
			out = existing
			return nil
		}
		app, err := s.appRepo.GetLeanByID(ctx, tx, appID)
		if err != nil {
			return err
		}
		created, err := s.svcRepo.Create(ctx, tx, &types.LoanServicing{
			ID:                   uuid.New(),
			ApplicationID:        app.ID,
			Status:               "active",
			PrincipalOutstanding: app.LoanAmount,
			InterestRate:         app.InterestRate,
		})
		if err != nil {
			return err
		}
		s.log.Info("servicing record created", "application_id", app.ID)
		out = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *servicingService) GetByApplicationID(ctx context.Context, appID uuid.UUID) (*types.LoanServicing, error) {
	return s.svcRepo.GetByApplicationID(ctx, nil, appID)
}

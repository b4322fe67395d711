package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/crestline/origination-backend/internal/data/repos"
	types "github.com/crestline/origination-backend/internal/domain"
	"github.com/crestline/origination-backend/internal/pkg/logger"
	"github.com/crestline/origination-backend/internal/requestdata"
)

type FundingService interface {
	Calculate(ctx context.Context, appID uuid.UUID, rates FundingRatesInput) (*types.FundingCalculation, error)
	History(ctx context.Context, appID uuid.UUID) ([]*types.FundingCalculation, error)
}

type fundingService struct {
	db       *gorm.DB
	log      *logger.Logger
	appRepo  repos.ApplicationRepo
	fundRepo repos.FundingCalculationRepo
}

func NewFundingService(db *gorm.DB, baseLog *logger.Logger, appRepo repos.ApplicationRepo, fundRepo repos.FundingCalculationRepo) FundingService {
	return &fundingService{
		db:       db,
		log:      baseLog.With("service", "FundingService"),
		appRepo:  appRepo,
		fundRepo: fundRepo,
	}
}

func (s *fundingService) Calculate(ctx context.Context, appID uuid.UUID, rates FundingRatesInput) (*types.FundingCalculation, error) {
	actorID := requestdata.ActorID(ctx)
	var row *types.FundingCalculation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		app, err := s.appRepo.GetLeanByID(ctx, tx, appID)
		if err != nil {
			return err
		}
		if !app.LoanAmount.IsPositive() {
			return types.NewValidationError(types.FieldErrors{
				"loan_amount": "must be positive before funding can be calculated",
			})
		}
		created, _, err := recordFundingCalculation(ctx, tx, s.fundRepo, s.appRepo, app, rates, actorID)
		if err != nil {
			return err
		}
		row = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (s *fundingService) History(ctx context.Context, appID uuid.UUID) ([]*types.FundingCalculation, error) {
	if _, err := s.appRepo.GetLeanByID(ctx, nil, appID); err != nil {
		return nil, err
	}
	return s.fundRepo.GetByApplicationID(ctx, nil, appID)
}

// recordFundingCalculation runs the calculator against the application's
// current financial scalars, appends an immutable history row and refreshes
// the cached result on the application. A non-positive loan amount skips the
// run without error so aggregate writes carrying rates stay usable on
// incomplete applications.
func recordFundingCalculation(ctx context.Context, tx *gorm.DB, fundRepo repos.FundingCalculationRepo, appRepo repos.ApplicationRepo, app *types.Application, rates FundingRatesInput, actorID *uuid.UUID) (*types.FundingCalculation, *types.FundingBreakdown, error) {
	if !app.LoanAmount.IsPositive() {
		return nil, nil, nil
	}

	in := types.FundingInput{
		LoanAmount:           app.LoanAmount,
		InterestRate:         app.InterestRate,
		CappedInterestMonths: app.CappedInterestMonths,
		EstablishmentFeeRate: rates.EstablishmentFeeRate,
		MonthlyLineFeeRate:   rates.MonthlyLineFeeRate,
		BrokerageFeeRate:     rates.BrokerageFeeRate,
		ApplicationFee:       rates.ApplicationFee,
		DueDiligenceFee:      rates.DueDiligenceFee,
		LegalFeeBeforeGST:    rates.LegalFeeBeforeGST,
		ValuationFee:         rates.ValuationFee,
		MonthlyAccountFee:    rates.MonthlyAccountFee,
		WorkingFee:           rates.WorkingFee,
	}
	out := types.CalculateFunding(in)

	rawIn, err := json.Marshal(in)
	if err != nil {
		return nil, nil, err
	}
	rawOut, err := json.Marshal(out)
	if err != nil {
		return nil, nil, err
	}

	row, err := fundRepo.Create(ctx, tx, &types.FundingCalculation{
		ID:            uuid.New(),
		ApplicationID: app.ID,
		SchemaVersion: types.FundingSnapshotVersion,
		Input:         datatypes.JSON(rawIn),
		Result:        datatypes.JSON(rawOut),
		ActorID:       actorID,
	})
	if err != nil {
		return nil, nil, err
	}
	if err := appRepo.UpdateFundingResult(ctx, tx, app.ID, datatypes.JSON(rawOut)); err != nil {
		return nil, nil, err
	}
	return row, &out, nil
}

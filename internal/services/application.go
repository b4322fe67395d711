package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/crestline/origination-backend/internal/data/repos"
	types "github.com/crestline/origination-backend/internal/domain"
	"github.com/crestline/origination-backend/internal/events"
	"github.com/crestline/origination-backend/internal/pkg/logger"
	"github.com/crestline/origination-backend/internal/requestdata"
)

// ApplicationRepos groups every repository the orchestrator touches.
type ApplicationRepos struct {
	Applications repos.ApplicationRepo
	Borrowers    repos.BorrowerRepo
	Directors    repos.DirectorRepo
	Assets       repos.AssetRepo
	Liabilities  repos.LiabilityRepo
	Guarantors   repos.GuarantorRepo
	Properties   repos.SecurityPropertyRepo
	Requirements repos.LoanRequirementRepo
	Notes        repos.NoteRepo
	Documents    repos.DocumentRepo
	Fundings     repos.FundingCalculationRepo
	StageHistory repos.StageHistoryRepo
}

type ApplicationService interface {
	Create(ctx context.Context, input ApplicationCreateInput) (*WriteResult, error)
	Update(ctx context.Context, id uuid.UUID, input ApplicationUpdateInput) (*WriteResult, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.Application, error)
	List(ctx context.Context, limit, offset int) ([]*types.Application, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AddNote(ctx context.Context, id uuid.UUID, input NoteInput) (*types.Note, error)
	ListNotes(ctx context.Context, id uuid.UUID) ([]*types.Note, error)
	AddDocument(ctx context.Context, id uuid.UUID, input DocumentInput) (*types.Document, error)
	ListDocuments(ctx context.Context, id uuid.UUID) ([]*types.Document, error)
}

type applicationService struct {
	db         *gorm.DB
	log        *logger.Logger
	repos      ApplicationRepos
	dispatcher *events.Dispatcher
	newRef     func(time.Time) string
}

func NewApplicationService(db *gorm.DB, baseLog *logger.Logger, r ApplicationRepos, dispatcher *events.Dispatcher) ApplicationService {
	return &applicationService{
		db:         db,
		log:        baseLog.With("service", "ApplicationService"),
		repos:      r,
		dispatcher: dispatcher,
		newRef:     newReferenceNumber,
	}
}

// newReferenceNumber derives a short human-quotable reference. Uniqueness is
// enforced by the column index; the caller retries on the rare collision.
func newReferenceNumber(now time.Time) string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return fmt.Sprintf("APP-%s-%s", now.Format("200601"), raw[:6])
}

func (s *applicationService) Create(ctx context.Context, input ApplicationCreateInput) (*WriteResult, error) {
	if err := validateCreateScalars(input); err != nil {
		return nil, err
	}
	actorID := requestdata.ActorID(ctx)

	stage := input.Stage
	if stage == "" {
		stage = types.StageInquiry
	}

	var (
		appID    uuid.UUID
		failures []types.ItemFailure
		pending  []types.Event
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		app := &types.Application{
			ID:                      uuid.New(),
			ReferenceNumber:         s.newRef(now),
			Stage:                   stage,
			Purpose:                 input.Purpose,
			LoanAmount:              decOrZero(input.LoanAmount),
			InterestRate:            decOrZero(input.InterestRate),
			RepaymentFrequency:      input.RepaymentFrequency,
			EstimatedSettlementDate: input.EstimatedSettlementDate,
			BranchName:              input.BranchName,
			BDMName:                 input.BDMName,
		}
		if input.TermMonths != nil {
			app.TermMonths = *input.TermMonths
		}
		if input.CappedInterestMonths != nil {
			app.CappedInterestMonths = *input.CappedInterestMonths
		}

		created, err := s.createWithFreshReference(ctx, tx, app, now)
		if err != nil {
			return err
		}
		appID = created.ID

		if _, err := s.repos.StageHistory.Create(ctx, tx, &types.StageHistoryEntry{
			ID:            uuid.New(),
			ApplicationID: created.ID,
			FromStage:     "",
			ToStage:       stage,
			ActorID:       actorID,
		}); err != nil {
			return err
		}

		fs, err := s.reconcileAggregate(ctx, tx, created, collectionInputs{
			Borrowers:          input.Borrowers,
			CompanyBorrowers:   input.CompanyBorrowers,
			Guarantors:         input.Guarantors,
			SecurityProperties: input.SecurityProperties,
			LoanRequirements:   input.LoanRequirements,
		})
		if err != nil {
			return err
		}
		failures = fs

		if input.FundingRates != nil {
			if _, _, err := recordFundingCalculation(ctx, tx, s.repos.Fundings, s.repos.Applications, created, *input.FundingRates, actorID); err != nil {
				return err
			}
		}

		if stage == types.StageSettled {
			pending = append(pending, types.ApplicationSettled{
				ApplicationID: created.ID,
				ActorID:       actorID,
				OccurredAt:    now,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.dispatcher.Dispatch(pending...)

	return s.loadWriteResult(ctx, appID, failures)
}

// createWithFreshReference retries reference generation when the unique index
// rejects a collision. Each attempt runs in its own savepoint: on Postgres a
// unique violation aborts the surrounding transaction, and the savepoint keeps
// the outer work usable for the retry.
func (s *applicationService) createWithFreshReference(ctx context.Context, tx *gorm.DB, app *types.Application, now time.Time) (*types.Application, error) {
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		err := tx.Transaction(func(stx *gorm.DB) error {
			_, createErr := s.repos.Applications.Create(ctx, stx, app)
			return createErr
		})
		if err == nil {
			return app, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
		lastErr = err
		app.ReferenceNumber = s.newRef(now)
	}
	return nil, lastErr
}

func (s *applicationService) Update(ctx context.Context, id uuid.UUID, input ApplicationUpdateInput) (*WriteResult, error) {
	if err := validateUpdateScalars(input); err != nil {
		return nil, err
	}
	actorID := requestdata.ActorID(ctx)

	var (
		failures []types.ItemFailure
		pending  []types.Event
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		app, err := s.repos.Applications.GetLeanByID(ctx, tx, id)
		if err != nil {
			return err
		}
		now := time.Now().UTC()

		updates := map[string]interface{}{}
		if input.Purpose != nil {
			updates["purpose"] = *input.Purpose
			app.Purpose = *input.Purpose
		}
		if input.LoanAmount != nil {
			updates["loan_amount"] = *input.LoanAmount
			app.LoanAmount = *input.LoanAmount
		}
		if input.InterestRate != nil {
			updates["interest_rate"] = *input.InterestRate
			app.InterestRate = *input.InterestRate
		}
		if input.TermMonths != nil {
			updates["term_months"] = *input.TermMonths
			app.TermMonths = *input.TermMonths
		}
		if input.CappedInterestMonths != nil {
			updates["capped_interest_months"] = *input.CappedInterestMonths
			app.CappedInterestMonths = *input.CappedInterestMonths
		}
		if input.RepaymentFrequency != nil {
			updates["repayment_frequency"] = *input.RepaymentFrequency
			app.RepaymentFrequency = *input.RepaymentFrequency
		}
		if input.EstimatedSettlementDate != nil {
			updates["estimated_settlement_date"] = *input.EstimatedSettlementDate
			app.EstimatedSettlementDate = input.EstimatedSettlementDate
		}
		if input.BranchName != nil {
			updates["branch_name"] = *input.BranchName
			app.BranchName = *input.BranchName
		}
		if input.BDMName != nil {
			updates["bdm_name"] = *input.BDMName
			app.BDMName = *input.BDMName
		}

		if input.Stage != nil && *input.Stage != app.Stage {
			from := app.Stage
			to := *input.Stage
			updates["stage"] = to
			app.Stage = to

			notes := ""
			if input.StageNotes != nil {
				notes = *input.StageNotes
			}
			if _, err := s.repos.StageHistory.Create(ctx, tx, &types.StageHistoryEntry{
				ID:            uuid.New(),
				ApplicationID: app.ID,
				FromStage:     from,
				ToStage:       to,
				ActorID:       actorID,
				Notes:         notes,
			}); err != nil {
				return err
			}
			pending = append(pending, types.StageChanged{
				ApplicationID: app.ID,
				FromStage:     from,
				ToStage:       to,
				ActorID:       actorID,
				OccurredAt:    now,
			})
			if to == types.StageSettled {
				pending = append(pending, types.ApplicationSettled{
					ApplicationID: app.ID,
					ActorID:       actorID,
					OccurredAt:    now,
				})
			}
		}

		if err := s.repos.Applications.UpdateFields(ctx, tx, app.ID, updates); err != nil {
			return err
		}

		fs, err := s.reconcileAggregate(ctx, tx, app, collectionInputs{
			Borrowers:          input.Borrowers,
			CompanyBorrowers:   input.CompanyBorrowers,
			Guarantors:         input.Guarantors,
			SecurityProperties: input.SecurityProperties,
			LoanRequirements:   input.LoanRequirements,
		})
		if err != nil {
			return err
		}
		failures = fs

		if input.FundingRates != nil {
			if _, _, err := recordFundingCalculation(ctx, tx, s.repos.Fundings, s.repos.Applications, app, *input.FundingRates, actorID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.dispatcher.Dispatch(pending...)

	return s.loadWriteResult(ctx, id, failures)
}

// loadWriteResult reloads the full aggregate after a committed write. Funding
// calculations are not preloaded on the aggregate, so their count comes from a
// dedicated query.
func (s *applicationService) loadWriteResult(ctx context.Context, id uuid.UUID, failures []types.ItemFailure) (*WriteResult, error) {
	full, err := s.repos.Applications.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	summary := summarize(full)
	calcCount, err := s.repos.Fundings.CountByApplicationID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	summary.FundingCalculations = int(calcCount)
	return &WriteResult{Application: full, Summary: summary, PartialFailures: failures}, nil
}

// collectionInputs carries the reconcilable collections of one write. A nil
// field means the request never mentioned that collection.
type collectionInputs struct {
	Borrowers          *[]IndividualBorrowerInput
	CompanyBorrowers   *[]CompanyBorrowerInput
	Guarantors         *[]GuarantorInput
	SecurityProperties *[]SecurityPropertyInput
	LoanRequirements   *[]LoanRequirementInput
}

func (s *applicationService) reconcileAggregate(ctx context.Context, tx *gorm.DB, app *types.Application, in collectionInputs) ([]types.ItemFailure, error) {
	var failures []types.ItemFailure

	fs, err := s.reconcileBorrowers(ctx, tx, app, in.Borrowers, in.CompanyBorrowers)
	if err != nil {
		return nil, err
	}
	failures = append(failures, fs...)

	fs, err = s.reconcileGuarantors(ctx, tx, app, in.Guarantors)
	if err != nil {
		return nil, err
	}
	failures = append(failures, fs...)

	fs, err = s.reconcileSecurityProperties(ctx, tx, app, in.SecurityProperties)
	if err != nil {
		return nil, err
	}
	failures = append(failures, fs...)

	fs, err = s.reconcileLoanRequirements(ctx, tx, app, in.LoanRequirements)
	if err != nil {
		return nil, err
	}
	failures = append(failures, fs...)

	if len(failures) > 0 {
		s.log.Warn("write completed with partial failures", "application_id", app.ID, "count", len(failures))
	}
	return failures, nil
}

func (s *applicationService) GetByID(ctx context.Context, id uuid.UUID) (*types.Application, error) {
	return s.repos.Applications.GetByID(ctx, nil, id)
}

func (s *applicationService) List(ctx context.Context, limit, offset int) ([]*types.Application, int64, error) {
	return s.repos.Applications.List(ctx, nil, limit, offset)
}

func (s *applicationService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.repos.Applications.GetLeanByID(ctx, tx, id); err != nil {
			return err
		}
		return s.repos.Applications.SoftDeleteByID(ctx, tx, id)
	})
}

func (s *applicationService) AddNote(ctx context.Context, id uuid.UUID, input NoteInput) (*types.Note, error) {
	if err := validateNote(input); err != nil {
		return nil, err
	}
	var note *types.Note
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		app, err := s.repos.Applications.GetLeanByID(ctx, tx, id)
		if err != nil {
			return err
		}
		rows, err := s.repos.Notes.Create(ctx, tx, []*types.Note{{
			ID:            uuid.New(),
			ApplicationID: app.ID,
			AuthorID:      requestdata.ActorID(ctx),
			Title:         input.Title,
			Body:          input.Body,
		}})
		if err != nil {
			return err
		}
		note = rows[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return note, nil
}

func (s *applicationService) ListNotes(ctx context.Context, id uuid.UUID) ([]*types.Note, error) {
	if _, err := s.repos.Applications.GetLeanByID(ctx, nil, id); err != nil {
		return nil, err
	}
	return s.repos.Notes.GetByApplicationID(ctx, nil, id)
}

func (s *applicationService) AddDocument(ctx context.Context, id uuid.UUID, input DocumentInput) (*types.Document, error) {
	if err := validateDocument(input); err != nil {
		return nil, err
	}
	var doc *types.Document
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		app, err := s.repos.Applications.GetLeanByID(ctx, tx, id)
		if err != nil {
			return err
		}
		rows, err := s.repos.Documents.Create(ctx, tx, []*types.Document{{
			ID:            uuid.New(),
			ApplicationID: app.ID,
			UploadedByID:  requestdata.ActorID(ctx),
			DocumentType:  input.DocumentType,
			FileName:      input.FileName,
			StorageKey:    input.StorageKey,
			SizeBytes:     input.SizeBytes,
		}})
		if err != nil {
			return err
		}
		doc = rows[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *applicationService) ListDocuments(ctx context.Context, id uuid.UUID) ([]*types.Document, error) {
	if _, err := s.repos.Applications.GetLeanByID(ctx, nil, id); err != nil {
		return nil, err
	}
	return s.repos.Documents.GetByApplicationID(ctx, nil, id)
}

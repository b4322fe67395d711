package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/crestline/origination-backend/internal/data/repos"
	"github.com/crestline/origination-backend/internal/data/repos/testutil"
	types "github.com/crestline/origination-backend/internal/domain"
	"github.com/crestline/origination-backend/internal/events"
)

// On Postgres a unique violation aborts the enclosing transaction, so each
// insert attempt runs in its own savepoint. This drives the reference
// generator into a collision and checks that the retry lands and the outer
// transaction stays usable.
func TestCreateRetriesOnReferenceCollision(t *testing.T) {
	conn := testutil.DB(t)
	tx := testutil.Tx(t, conn)
	log := testutil.Logger(t)
	ctx := context.Background()

	svc := NewApplicationService(tx, log, ApplicationRepos{
		Applications: repos.NewApplicationRepo(tx, log),
		Borrowers:    repos.NewBorrowerRepo(tx, log),
		Directors:    repos.NewDirectorRepo(tx, log),
		Assets:       repos.NewAssetRepo(tx, log),
		Liabilities:  repos.NewLiabilityRepo(tx, log),
		Guarantors:   repos.NewGuarantorRepo(tx, log),
		Properties:   repos.NewSecurityPropertyRepo(tx, log),
		Requirements: repos.NewLoanRequirementRepo(tx, log),
		Notes:        repos.NewNoteRepo(tx, log),
		Documents:    repos.NewDocumentRepo(tx, log),
		Fundings:     repos.NewFundingCalculationRepo(tx, log),
		StageHistory: repos.NewStageHistoryRepo(tx, log),
	}, events.NewDispatcher(log)).(*applicationService)

	taken := fmt.Sprintf("APP-TEST-%s", uuid.New().String()[:8])
	fresh := fmt.Sprintf("APP-TEST-%s", uuid.New().String()[:8])
	if _, err := svc.repos.Applications.Create(ctx, tx, &types.Application{
		ID:              uuid.New(),
		ReferenceNumber: taken,
		Stage:           types.StageInquiry,
	}); err != nil {
		t.Fatalf("seed occupied reference: %v", err)
	}

	generated := 0
	svc.newRef = func(time.Time) string {
		generated++
		if generated == 1 {
			return taken
		}
		return fresh
	}

	result, err := svc.Create(ctx, ApplicationCreateInput{Purpose: "bridging"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if result.Application.ReferenceNumber != fresh {
		t.Errorf("reference = %q, want regenerated %q", result.Application.ReferenceNumber, fresh)
	}
	if generated != 2 {
		t.Errorf("reference generations = %d, want 2 (one collision)", generated)
	}

	// The aborted attempt must not take the outer transaction down with it:
	// the stage history row written after the insert has to survive.
	entries, err := svc.repos.StageHistory.GetByApplicationID(ctx, nil, result.Application.ID)
	if err != nil {
		t.Fatalf("stage history: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("stage history entries = %d, want 1", len(entries))
	}
}

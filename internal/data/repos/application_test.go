package repos_test

import (
	"context"
	"testing"

	types "github.com/crestline/origination-backend/internal/domain"

	"github.com/crestline/origination-backend/internal/data/repos"
	"github.com/crestline/origination-backend/internal/data/repos/testutil"
)

func TestBorrowerMembershipQueries(t *testing.T) {
	conn := testutil.DB(t)
	tx := testutil.Tx(t, conn)
	log := testutil.Logger(t)

	appRepo := repos.NewApplicationRepo(tx, log)
	borrowerRepo := repos.NewBorrowerRepo(tx, log)
	ctx := context.Background()

	app := testutil.SeedApplication(t, tx, "")
	other := testutil.SeedApplication(t, tx, "")
	first := testutil.SeedBorrower(t, tx, app.ID, "Ada")
	testutil.SeedBorrower(t, tx, app.ID, "Grace")
	shared := testutil.SeedBorrower(t, tx, other.ID, "Shared")

	members, err := borrowerRepo.GetByApplicationID(ctx, tx, app.ID)
	if err != nil {
		t.Fatalf("GetByApplicationID: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("members = %d, want 2", len(members))
	}

	// Replacing memberships rewrites join rows only; dropped borrowers keep
	// their rows and their other application links.
	if err := appRepo.ReplaceBorrowers(ctx, tx, app, []*types.Borrower{first, shared}); err != nil {
		t.Fatalf("ReplaceBorrowers: %v", err)
	}
	members, err = borrowerRepo.GetByApplicationID(ctx, tx, app.ID)
	if err != nil {
		t.Fatalf("GetByApplicationID after replace: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("members after replace = %d, want 2", len(members))
	}

	otherMembers, err := borrowerRepo.GetByApplicationID(ctx, tx, other.ID)
	if err != nil {
		t.Fatalf("other members: %v", err)
	}
	if len(otherMembers) != 1 || otherMembers[0].ID != shared.ID {
		t.Fatalf("sharing borrower across applications broke the other membership: %+v", otherMembers)
	}

	dropped, err := borrowerRepo.GetByID(ctx, tx, members[0].ID)
	if err != nil || dropped == nil {
		t.Fatalf("borrower row lookup after replace = %v, %v", dropped, err)
	}
}

func TestGetByIDPreloadsAggregate(t *testing.T) {
	conn := testutil.DB(t)
	tx := testutil.Tx(t, conn)
	log := testutil.Logger(t)

	appRepo := repos.NewApplicationRepo(tx, log)
	ctx := context.Background()

	seeded := testutil.SeedApplication(t, tx, types.StageAssessment)
	testutil.SeedBorrower(t, tx, seeded.ID, "Ada")

	app, err := appRepo.GetByID(ctx, tx, seeded.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if app.Stage != types.StageAssessment {
		t.Errorf("stage = %q", app.Stage)
	}
	if len(app.Borrowers) != 1 {
		t.Errorf("borrowers = %d, want 1", len(app.Borrowers))
	}

	byRef, err := appRepo.GetByReferenceNumber(ctx, tx, seeded.ReferenceNumber)
	if err != nil {
		t.Fatalf("GetByReferenceNumber: %v", err)
	}
	if byRef.ID != seeded.ID {
		t.Errorf("reference lookup returned %s, want %s", byRef.ID, seeded.ID)
	}
}

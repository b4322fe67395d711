package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/crestline/origination-backend/internal/data/repos"
	"github.com/crestline/origination-backend/internal/data/repos/testutil"
	types "github.com/crestline/origination-backend/internal/domain"
	"github.com/crestline/origination-backend/internal/events"
	"github.com/crestline/origination-backend/internal/services"
)

type harness struct {
	tx         *gorm.DB
	apps       services.ApplicationService
	funding    services.FundingService
	servicing  services.ServicingService
	appRepo    repos.ApplicationRepo
	borrowers  repos.BorrowerRepo
	directors  repos.DirectorRepo
	guarantors repos.GuarantorRepo
	properties repos.SecurityPropertyRepo
	fundings   repos.FundingCalculationRepo
	history    repos.StageHistoryRepo
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	conn := testutil.DB(t)
	tx := testutil.Tx(t, conn)
	log := testutil.Logger(t)

	appRepo := repos.NewApplicationRepo(tx, log)
	borrowerRepo := repos.NewBorrowerRepo(tx, log)
	directorRepo := repos.NewDirectorRepo(tx, log)
	guarantorRepo := repos.NewGuarantorRepo(tx, log)
	propertyRepo := repos.NewSecurityPropertyRepo(tx, log)
	fundingRepo := repos.NewFundingCalculationRepo(tx, log)
	servicingRepo := repos.NewLoanServicingRepo(tx, log)
	historyRepo := repos.NewStageHistoryRepo(tx, log)

	servicing := services.NewServicingService(tx, log, appRepo, servicingRepo)
	dispatcher := events.NewDispatcher(log)
	dispatcher.Register(servicing.HandleEvent)

	apps := services.NewApplicationService(tx, log, services.ApplicationRepos{
		Applications: appRepo,
		Borrowers:    borrowerRepo,
		Directors:    directorRepo,
		Assets:       repos.NewAssetRepo(tx, log),
		Liabilities:  repos.NewLiabilityRepo(tx, log),
		Guarantors:   guarantorRepo,
		Properties:   propertyRepo,
		Requirements: repos.NewLoanRequirementRepo(tx, log),
		Notes:        repos.NewNoteRepo(tx, log),
		Documents:    repos.NewDocumentRepo(tx, log),
		Fundings:     fundingRepo,
		StageHistory: historyRepo,
	}, dispatcher)

	return &harness{
		tx:         tx,
		apps:       apps,
		funding:    services.NewFundingService(tx, log, appRepo, fundingRepo),
		servicing:  servicing,
		appRepo:    appRepo,
		borrowers:  borrowerRepo,
		directors:  directorRepo,
		guarantors: guarantorRepo,
		properties: propertyRepo,
		fundings:   fundingRepo,
		history:    historyRepo,
	}
}

func slicePtr[T any](items ...T) *[]T { return &items }

func amount(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestCreateMinimalApplication(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	result, err := h.apps.Create(ctx, services.ApplicationCreateInput{Purpose: "bridging finance"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	app := result.Application
	if app.ReferenceNumber == "" {
		t.Error("reference number not assigned")
	}
	if app.Stage != types.StageInquiry {
		t.Errorf("stage = %q, want inquiry", app.Stage)
	}
	if len(app.StageHistory) != 1 || app.StageHistory[0].ToStage != types.StageInquiry {
		t.Errorf("stage history = %+v, want single inquiry entry", app.StageHistory)
	}
	if len(result.PartialFailures) != 0 {
		t.Errorf("partial failures = %+v", result.PartialFailures)
	}
}

func TestCreateWithNestedCollections(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	result, err := h.apps.Create(ctx, services.ApplicationCreateInput{
		LoanAmount:           amount("500000"),
		InterestRate:         amount("12"),
		CappedInterestMonths: intPtr(6),
		Borrowers: slicePtr(services.IndividualBorrowerInput{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Assets:    slicePtr(services.AssetInput{AssetType: "property", Value: amount("900000")}),
		}),
		CompanyBorrowers: slicePtr(services.CompanyBorrowerInput{
			CompanyName: "Acme Pty Ltd",
			Directors:   slicePtr(services.DirectorInput{FirstName: "Grace"}),
		}),
		Guarantors: slicePtr(services.GuarantorInput{
			GuarantorType: "individual",
			FirstName:     "Tom",
			LastName:      "Jones",
		}),
		SecurityProperties: slicePtr(services.SecurityPropertyInput{
			AddressLine:    "1 Example St",
			EstimatedValue: amount("750000"),
		}),
		LoanRequirements: slicePtr(services.LoanRequirementInput{Description: "payout existing facility", Amount: amount("400000")}),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	s := result.Summary
	if s.Borrowers != 1 || s.CompanyBorrowers != 1 || s.Guarantors != 1 || s.SecurityProperties != 1 || s.LoanRequirements != 1 {
		t.Fatalf("summary = %+v", s)
	}
	for _, b := range result.Application.Borrowers {
		if b.IsCompany && len(b.Directors) != 1 {
			t.Errorf("company directors = %d, want 1", len(b.Directors))
		}
		if !b.IsCompany && len(b.Assets) != 1 {
			t.Errorf("individual assets = %d, want 1", len(b.Assets))
		}
	}
}

func TestUpdateOmittedCollectionsStayUntouched(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	created, err := h.apps.Create(ctx, services.ApplicationCreateInput{
		Borrowers:          slicePtr(services.IndividualBorrowerInput{FirstName: "Ada", LastName: "Lovelace"}),
		SecurityProperties: slicePtr(services.SecurityPropertyInput{AddressLine: "1 Example St"}),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	purpose := "expanded purpose"
	updated, err := h.apps.Update(ctx, created.Application.ID, services.ApplicationUpdateInput{Purpose: &purpose})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Application.Purpose != purpose {
		t.Errorf("purpose = %q", updated.Application.Purpose)
	}
	if updated.Summary.Borrowers != 1 || updated.Summary.SecurityProperties != 1 {
		t.Errorf("summary = %+v, collections should be untouched", updated.Summary)
	}
}

func TestUpdateEmptyListClearsAndDetaches(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	created, err := h.apps.Create(ctx, services.ApplicationCreateInput{
		Borrowers:          slicePtr(services.IndividualBorrowerInput{FirstName: "Ada", LastName: "Lovelace"}),
		SecurityProperties: slicePtr(services.SecurityPropertyInput{AddressLine: "1 Example St"}),
		LoanRequirements:   slicePtr(services.LoanRequirementInput{Description: "payout existing facility"}),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	borrowerID := created.Application.Borrowers[0].ID

	empty := []services.IndividualBorrowerInput{}
	emptyProps := []services.SecurityPropertyInput{}
	emptyReqs := []services.LoanRequirementInput{}
	updated, err := h.apps.Update(ctx, created.Application.ID, services.ApplicationUpdateInput{
		Borrowers:          &empty,
		SecurityProperties: &emptyProps,
		LoanRequirements:   &emptyReqs,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Summary.Borrowers != 0 || updated.Summary.SecurityProperties != 0 || updated.Summary.LoanRequirements != 0 {
		t.Fatalf("summary = %+v, want cleared collections", updated.Summary)
	}

	// Borrower rows are shared: membership gone, row survives.
	row, err := h.borrowers.GetByID(ctx, nil, borrowerID)
	if err != nil {
		t.Fatalf("borrower lookup: %v", err)
	}
	if row == nil {
		t.Error("detached borrower row was deleted")
	}

	// Properties are hard-owned: row gone.
	props, err := h.properties.GetByApplicationID(ctx, nil, created.Application.ID)
	if err != nil {
		t.Fatalf("property lookup: %v", err)
	}
	if len(props) != 0 {
		t.Errorf("properties = %d, want 0", len(props))
	}
}

func TestBorrowerVariantsReconcileIndependently(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	created, err := h.apps.Create(ctx, services.ApplicationCreateInput{
		Borrowers: slicePtr(
			services.IndividualBorrowerInput{FirstName: "Ada", LastName: "Lovelace"},
			services.IndividualBorrowerInput{FirstName: "Grace", LastName: "Hopper"},
		),
		CompanyBorrowers: slicePtr(services.CompanyBorrowerInput{CompanyName: "Acme Pty Ltd"}),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Replace the company list only; individuals must survive verbatim.
	updated, err := h.apps.Update(ctx, created.Application.ID, services.ApplicationUpdateInput{
		CompanyBorrowers: slicePtr(services.CompanyBorrowerInput{CompanyName: "Beta Holdings Pty Ltd"}),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Summary.Borrowers != 2 {
		t.Errorf("individual borrowers = %d, want 2", updated.Summary.Borrowers)
	}
	if updated.Summary.CompanyBorrowers != 1 {
		t.Errorf("company borrowers = %d, want 1", updated.Summary.CompanyBorrowers)
	}
	var gotCompany string
	for _, b := range updated.Application.Borrowers {
		if b.IsCompany {
			gotCompany = b.CompanyName
		}
	}
	if gotCompany != "Beta Holdings Pty Ltd" {
		t.Errorf("company = %q", gotCompany)
	}
}

func TestCompanyDirectorsReplacedWholesale(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	created, err := h.apps.Create(ctx, services.ApplicationCreateInput{
		CompanyBorrowers: slicePtr(services.CompanyBorrowerInput{
			CompanyName: "Acme Pty Ltd",
			Directors: slicePtr(
				services.DirectorInput{FirstName: "Grace"},
				services.DirectorInput{FirstName: "Ada"},
			),
		}),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	companyID := created.Application.Borrowers[0].ID

	_, err = h.apps.Update(ctx, created.Application.ID, services.ApplicationUpdateInput{
		CompanyBorrowers: slicePtr(services.CompanyBorrowerInput{
			ID:          &companyID,
			CompanyName: "Acme Pty Ltd",
			Directors:   slicePtr(services.DirectorInput{FirstName: "Marie"}),
		}),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	rows, err := h.directors.GetByBorrowerID(ctx, nil, companyID)
	if err != nil {
		t.Fatalf("director lookup: %v", err)
	}
	if len(rows) != 1 || rows[0].FirstName != "Marie" {
		t.Errorf("directors after replace = %+v, want single Marie", rows)
	}
}

func TestPartialFailureKeepsPersistedValue(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	created, err := h.apps.Create(ctx, services.ApplicationCreateInput{
		Borrowers: slicePtr(services.IndividualBorrowerInput{FirstName: "Ada", LastName: "Lovelace"}),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	id := created.Application.Borrowers[0].ID

	// Invalid update for the known borrower plus an invalid new one: the
	// write succeeds, the existing row is untouched, the new row is omitted.
	updated, err := h.apps.Update(ctx, created.Application.ID, services.ApplicationUpdateInput{
		Borrowers: slicePtr(
			services.IndividualBorrowerInput{ID: &id, FirstName: "", LastName: ""},
			services.IndividualBorrowerInput{FirstName: "", LastName: "Nameless"},
		),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(updated.PartialFailures) != 2 {
		t.Fatalf("partial failures = %+v, want 2", updated.PartialFailures)
	}
	if updated.Summary.Borrowers != 1 {
		t.Fatalf("borrowers = %d, want 1", updated.Summary.Borrowers)
	}
	kept := updated.Application.Borrowers[0]
	if kept.FirstName != "Ada" {
		t.Errorf("first name = %q, persisted value should survive", kept.FirstName)
	}
}

func TestGuarantorDetachKeepsRow(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	created, err := h.apps.Create(ctx, services.ApplicationCreateInput{
		Guarantors: slicePtr(services.GuarantorInput{
			GuarantorType: "individual",
			FirstName:     "Tom",
			LastName:      "Jones",
			Assets:        slicePtr(services.AssetInput{AssetType: "savings", Value: amount("5000")}),
		}),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	gid := created.Application.Guarantors[0].ID

	empty := []services.GuarantorInput{}
	updated, err := h.apps.Update(ctx, created.Application.ID, services.ApplicationUpdateInput{Guarantors: &empty})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Summary.Guarantors != 0 {
		t.Fatalf("guarantors = %d, want 0", updated.Summary.Guarantors)
	}

	rows, err := h.guarantors.GetByIDs(ctx, nil, []uuid.UUID{gid})
	if err != nil {
		t.Fatalf("guarantor lookup: %v", err)
	}
	if len(rows) != 1 {
		t.Fatal("detached guarantor row was deleted")
	}
	if rows[0].ApplicationID != nil {
		t.Error("application link not cleared")
	}
}

func TestSettlementIsIdempotent(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	created, err := h.apps.Create(ctx, services.ApplicationCreateInput{
		LoanAmount:   amount("500000"),
		InterestRate: amount("12"),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	id := created.Application.ID

	settled := types.StageSettled
	if _, err := h.apps.Update(ctx, id, services.ApplicationUpdateInput{Stage: &settled}); err != nil {
		t.Fatalf("first settle: %v", err)
	}
	first, err := h.servicing.GetByApplicationID(ctx, id)
	if err != nil || first == nil {
		t.Fatalf("servicing after settle = %v, %v", first, err)
	}
	if !first.PrincipalOutstanding.Equal(decimal.NewFromInt(500000)) {
		t.Errorf("principal = %s", first.PrincipalOutstanding)
	}

	// Bounce away and settle again; still one servicing record.
	closed := types.StageClosed
	if _, err := h.apps.Update(ctx, id, services.ApplicationUpdateInput{Stage: &closed}); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := h.apps.Update(ctx, id, services.ApplicationUpdateInput{Stage: &settled}); err != nil {
		t.Fatalf("second settle: %v", err)
	}
	second, err := h.servicing.GetByApplicationID(ctx, id)
	if err != nil {
		t.Fatalf("servicing lookup: %v", err)
	}
	if second.ID != first.ID {
		t.Error("second settlement created a new servicing record")
	}
}

func TestStageHistoryAccumulates(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	created, err := h.apps.Create(ctx, services.ApplicationCreateInput{})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	id := created.Application.ID

	for _, stage := range []string{types.StageApplication, types.StageAssessment, types.StageApproval} {
		s := stage
		if _, err := h.apps.Update(ctx, id, services.ApplicationUpdateInput{Stage: &s}); err != nil {
			t.Fatalf("stage %s: %v", stage, err)
		}
	}

	entries, err := h.history.GetByApplicationID(ctx, nil, id)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("history entries = %d, want 4", len(entries))
	}
	if entries[1].FromStage != types.StageInquiry || entries[3].ToStage != types.StageApproval {
		t.Errorf("history order wrong: %+v", entries)
	}
}

func intPtr(v int) *int { return &v }

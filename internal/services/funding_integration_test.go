package services_test

import (
	"context"
	"encoding/json"
	"testing"

	types "github.com/crestline/origination-backend/internal/domain"
	"github.com/crestline/origination-backend/internal/services"
)

func standardRates() services.FundingRatesInput {
	return services.FundingRatesInput{
		EstablishmentFeeRate: *amount("2"),
		MonthlyLineFeeRate:   *amount("0.75"),
		BrokerageFeeRate:     *amount("2"),
		ApplicationFee:       *amount("600"),
		DueDiligenceFee:      *amount("1000"),
		LegalFeeBeforeGST:    *amount("1200"),
		ValuationFee:         *amount("500"),
		MonthlyAccountFee:    *amount("75"),
		WorkingFee:           *amount("200"),
	}
}

func TestFundingCalculationAppendsHistory(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	created, err := h.apps.Create(ctx, services.ApplicationCreateInput{
		LoanAmount:           amount("500000"),
		InterestRate:         amount("12"),
		CappedInterestMonths: intPtr(6),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	id := created.Application.ID

	first, err := h.funding.Calculate(ctx, id, standardRates())
	if err != nil {
		t.Fatalf("first Calculate: %v", err)
	}
	if first.SchemaVersion != types.FundingSnapshotVersion {
		t.Errorf("schema version = %d", first.SchemaVersion)
	}

	var result types.FundingBreakdown
	if err := json.Unmarshal(first.Result, &result); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if !result.TotalFees.Equal(*amount("76570")) {
		t.Errorf("total fees = %s, want 76570", result.TotalFees)
	}
	if !result.FundsAvailable.Equal(*amount("423430")) {
		t.Errorf("funds available = %s, want 423430", result.FundsAvailable)
	}

	// A second run appends; it never rewrites the first row.
	rates := standardRates()
	rates.WorkingFee = *amount("300")
	if _, err := h.funding.Calculate(ctx, id, rates); err != nil {
		t.Fatalf("second Calculate: %v", err)
	}

	rows, err := h.funding.History(ctx, id)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("history rows = %d, want 2", len(rows))
	}
	for _, row := range rows {
		if row.ID == first.ID {
			var again types.FundingBreakdown
			if err := json.Unmarshal(row.Result, &again); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if !again.TotalFees.Equal(result.TotalFees) {
				t.Error("earlier history row was mutated")
			}
		}
	}

	// The application caches the latest result for reads.
	app, err := h.apps.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	var cached types.FundingBreakdown
	if err := json.Unmarshal(app.FundingResult, &cached); err != nil {
		t.Fatalf("unmarshal cached: %v", err)
	}
	if !cached.TotalFees.Equal(*amount("76670")) {
		t.Errorf("cached total = %s, want 76670 after fee bump", cached.TotalFees)
	}
}

func TestFundingRequiresPositiveLoanAmount(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	created, err := h.apps.Create(ctx, services.ApplicationCreateInput{})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = h.funding.Calculate(ctx, created.Application.ID, standardRates())
	if err == nil {
		t.Fatal("Calculate on zero loan amount should fail")
	}
	if _, ok := err.(*types.ValidationError); !ok {
		t.Errorf("error type = %T, want ValidationError", err)
	}
}

func TestAggregateWriteWithRatesSkipsWhenNoLoanAmount(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	rates := standardRates()
	created, err := h.apps.Create(ctx, services.ApplicationCreateInput{
		FundingRates: &rates,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	rows, err := h.funding.History(ctx, created.Application.ID)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("history rows = %d, want 0 without a loan amount", len(rows))
	}
	if created.Summary.FundingCalculations != 0 {
		t.Errorf("summary funding calculations = %d, want 0", created.Summary.FundingCalculations)
	}
}

func TestAggregateWriteWithRatesCountsCalculation(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	rates := standardRates()
	created, err := h.apps.Create(ctx, services.ApplicationCreateInput{
		LoanAmount:           amount("500000"),
		InterestRate:         amount("12"),
		CappedInterestMonths: intPtr(6),
		FundingRates:         &rates,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Summary.FundingCalculations != 1 {
		t.Errorf("summary funding calculations = %d, want 1", created.Summary.FundingCalculations)
	}

	updated, err := h.apps.Update(ctx, created.Application.ID, services.ApplicationUpdateInput{FundingRates: &rates})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Summary.FundingCalculations != 2 {
		t.Errorf("summary funding calculations = %d, want 2", updated.Summary.FundingCalculations)
	}
}

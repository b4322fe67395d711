package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCalculateFunding(t *testing.T) {
	tests := []struct {
		name           string
		in             FundingInput
		totalFees      string
		fundsAvailable string
	}{
		{
			name: "standard six month facility",
			in: FundingInput{
				LoanAmount:           dec("500000"),
				InterestRate:         dec("12"),
				CappedInterestMonths: 6,
				EstablishmentFeeRate: dec("2"),
				MonthlyLineFeeRate:   dec("0.75"),
				BrokerageFeeRate:     dec("2"),
				ApplicationFee:       dec("600"),
				DueDiligenceFee:      dec("1000"),
				LegalFeeBeforeGST:    dec("1200"),
				ValuationFee:         dec("500"),
				MonthlyAccountFee:    dec("75"),
				WorkingFee:           dec("200"),
			},
			totalFees:      "76570",
			fundsAvailable: "423430",
		},
		{
			name: "zero capped months drops time-based fees",
			in: FundingInput{
				LoanAmount:           dec("100000"),
				InterestRate:         dec("10"),
				CappedInterestMonths: 0,
				EstablishmentFeeRate: dec("1"),
				MonthlyLineFeeRate:   dec("0.5"),
				MonthlyAccountFee:    dec("50"),
			},
			totalFees:      "1000",
			fundsAvailable: "99000",
		},
		{
			name: "fees only, no rates",
			in: FundingInput{
				LoanAmount:        dec("250000"),
				ApplicationFee:    dec("500"),
				LegalFeeBeforeGST: dec("1000"),
			},
			totalFees:      "1600",
			fundsAvailable: "248400",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := CalculateFunding(tt.in)
			if !out.TotalFees.Equal(dec(tt.totalFees)) {
				t.Errorf("TotalFees = %s, want %s", out.TotalFees, tt.totalFees)
			}
			if !out.FundsAvailable.Equal(dec(tt.fundsAvailable)) {
				t.Errorf("FundsAvailable = %s, want %s", out.FundsAvailable, tt.fundsAvailable)
			}
		})
	}
}

func TestCalculateFundingBreakdownComponents(t *testing.T) {
	out := CalculateFunding(FundingInput{
		LoanAmount:           dec("500000"),
		InterestRate:         dec("12"),
		CappedInterestMonths: 6,
		EstablishmentFeeRate: dec("2"),
		MonthlyLineFeeRate:   dec("0.75"),
		BrokerageFeeRate:     dec("2"),
		LegalFeeBeforeGST:    dec("1200"),
		MonthlyAccountFee:    dec("75"),
	})

	checks := []struct {
		name string
		got  decimal.Decimal
		want string
	}{
		{"establishment", out.EstablishmentFee, "10000"},
		{"capped interest", out.CappedInterest, "30000"},
		{"line fee", out.LineFee, "22500"},
		{"brokerage", out.BrokerageFee, "10000"},
		{"legal incl GST", out.LegalFee, "1320"},
		{"monthly account total", out.MonthlyAccountTotal, "450"},
	}
	for _, c := range checks {
		if !c.got.Equal(dec(c.want)) {
			t.Errorf("%s = %s, want %s", c.name, c.got, c.want)
		}
	}
}

func TestValidStage(t *testing.T) {
	for _, s := range Stages {
		if !ValidStage(s) {
			t.Errorf("ValidStage(%q) = false", s)
		}
	}
	if ValidStage("funded") {
		t.Error(`ValidStage("funded") = true`)
	}
	if ValidStage("") {
		t.Error(`ValidStage("") = true`)
	}
}

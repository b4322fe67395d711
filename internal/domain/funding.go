package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// FundingSnapshotVersion tags the JSON payloads stored on FundingCalculation
// rows so historical records stay interpretable if the shape ever changes.
const FundingSnapshotVersion = 1

var (
	hundred   = decimal.NewFromInt(100)
	twelve    = decimal.NewFromInt(12)
	gstFactor = decimal.RequireFromString("1.1")
)

// FundingInput carries the fee calculator inputs. Rates are whole percentages
// (2 means 2%).
type FundingInput struct {
	LoanAmount           decimal.Decimal `json:"loan_amount"`
	InterestRate         decimal.Decimal `json:"interest_rate"`
	CappedInterestMonths int             `json:"capped_interest_months"`
	EstablishmentFeeRate decimal.Decimal `json:"establishment_fee_rate"`
	MonthlyLineFeeRate   decimal.Decimal `json:"monthly_line_fee_rate"`
	BrokerageFeeRate     decimal.Decimal `json:"brokerage_fee_rate"`
	ApplicationFee       decimal.Decimal `json:"application_fee"`
	DueDiligenceFee      decimal.Decimal `json:"due_diligence_fee"`
	LegalFeeBeforeGST    decimal.Decimal `json:"legal_fee_before_gst"`
	ValuationFee         decimal.Decimal `json:"valuation_fee"`
	MonthlyAccountFee    decimal.Decimal `json:"monthly_account_fee"`
	WorkingFee           decimal.Decimal `json:"working_fee"`
}

// FundingBreakdown is the itemized calculator output.
type FundingBreakdown struct {
	EstablishmentFee    decimal.Decimal `json:"establishment_fee"`
	CappedInterest      decimal.Decimal `json:"capped_interest"`
	LineFee             decimal.Decimal `json:"line_fee"`
	BrokerageFee        decimal.Decimal `json:"brokerage_fee"`
	ApplicationFee      decimal.Decimal `json:"application_fee"`
	DueDiligenceFee     decimal.Decimal `json:"due_diligence_fee"`
	LegalFee            decimal.Decimal `json:"legal_fee"`
	ValuationFee        decimal.Decimal `json:"valuation_fee"`
	MonthlyAccountTotal decimal.Decimal `json:"monthly_account_total"`
	WorkingFee          decimal.Decimal `json:"working_fee"`
	TotalFees           decimal.Decimal `json:"total_fees"`
	FundsAvailable      decimal.Decimal `json:"funds_available"`
}

// CalculateFunding derives the fee breakdown and funds available. Pure; the
// caller persists the result.
func CalculateFunding(in FundingInput) FundingBreakdown {
	months := decimal.NewFromInt(int64(in.CappedInterestMonths))

	establishment := in.LoanAmount.Mul(in.EstablishmentFeeRate.Div(hundred))
	cappedInterest := in.LoanAmount.Mul(in.InterestRate.Div(hundred)).Mul(months).Div(twelve)
	lineFee := in.LoanAmount.Mul(in.MonthlyLineFeeRate.Div(hundred)).Mul(months)
	brokerage := in.LoanAmount.Mul(in.BrokerageFeeRate.Div(hundred))
	legal := in.LegalFeeBeforeGST.Mul(gstFactor)
	monthlyAccountTotal := in.MonthlyAccountFee.Mul(months)

	total := establishment.
		Add(cappedInterest).
		Add(lineFee).
		Add(brokerage).
		Add(in.ApplicationFee).
		Add(in.DueDiligenceFee).
		Add(legal).
		Add(in.ValuationFee).
		Add(monthlyAccountTotal).
		Add(in.WorkingFee)

	return FundingBreakdown{
		EstablishmentFee:    establishment,
		CappedInterest:      cappedInterest,
		LineFee:             lineFee,
		BrokerageFee:        brokerage,
		ApplicationFee:      in.ApplicationFee,
		DueDiligenceFee:     in.DueDiligenceFee,
		LegalFee:            legal,
		ValuationFee:        in.ValuationFee,
		MonthlyAccountTotal: monthlyAccountTotal,
		WorkingFee:          in.WorkingFee,
		TotalFees:           total,
		FundsAvailable:      in.LoanAmount.Sub(total),
	}
}

// FundingCalculation is an append-only audit row: one per calculator run
// against a persisted application. Never updated after creation.
type FundingCalculation struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ApplicationID uuid.UUID      `gorm:"type:uuid;not null;index" json:"application_id"`
	SchemaVersion int            `gorm:"column:schema_version;not null;default:1" json:"schema_version"`
	Input         datatypes.JSON `gorm:"column:input;not null" json:"input"`
	Result        datatypes.JSON `gorm:"column:result;not null" json:"result"`
	ActorID       *uuid.UUID     `gorm:"type:uuid" json:"actor_id,omitempty"`
	CreatedAt     time.Time      `gorm:"not null;default:now()" json:"created_at"`
}

func (FundingCalculation) TableName() string { return "funding_calculation" }

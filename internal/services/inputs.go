package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	types "github.com/crestline/origination-backend/internal/domain"
)

// Collection fields are pointers to slices so the three request shapes stay
// distinguishable: nil means the key was absent (leave the collection alone),
// an empty slice means clear it, and items mean reconcile against them.

type IndividualBorrowerInput struct {
	ID           *uuid.UUID       `json:"id,omitempty"`
	FirstName    string           `json:"first_name"`
	LastName     string           `json:"last_name"`
	DateOfBirth  *time.Time       `json:"date_of_birth,omitempty"`
	Email        string           `json:"email,omitempty"`
	Phone        string           `json:"phone,omitempty"`
	Employment   string           `json:"employment,omitempty"`
	AnnualIncome *decimal.Decimal `json:"annual_income,omitempty"`

	Assets      *[]AssetInput     `json:"assets,omitempty"`
	Liabilities *[]LiabilityInput `json:"liabilities,omitempty"`
}

func (in IndividualBorrowerInput) ExistingID() *uuid.UUID { return in.ID }

type CompanyBorrowerInput struct {
	ID          *uuid.UUID `json:"id,omitempty"`
	CompanyName string     `json:"company_name"`
	ABN         string     `json:"abn,omitempty"`
	ACN         string     `json:"acn,omitempty"`
	Industry    string     `json:"industry,omitempty"`

	Directors   *[]DirectorInput  `json:"directors,omitempty"`
	Assets      *[]AssetInput     `json:"assets,omitempty"`
	Liabilities *[]LiabilityInput `json:"liabilities,omitempty"`
}

func (in CompanyBorrowerInput) ExistingID() *uuid.UUID { return in.ID }

type DirectorInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Role      string `json:"role,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

type AssetInput struct {
	AssetType   string           `json:"asset_type"`
	Description string           `json:"description,omitempty"`
	Value       *decimal.Decimal `json:"value,omitempty"`
}

type LiabilityInput struct {
	LiabilityType  string           `json:"liability_type"`
	Description    string           `json:"description,omitempty"`
	Amount         *decimal.Decimal `json:"amount,omitempty"`
	MonthlyPayment *decimal.Decimal `json:"monthly_payment,omitempty"`
}

type GuarantorInput struct {
	ID            *uuid.UUID `json:"id,omitempty"`
	GuarantorType string     `json:"guarantor_type"`
	FirstName     string     `json:"first_name,omitempty"`
	LastName      string     `json:"last_name,omitempty"`
	Email         string     `json:"email,omitempty"`
	Phone         string     `json:"phone,omitempty"`
	CompanyName   string     `json:"company_name,omitempty"`
	ABN           string     `json:"abn,omitempty"`

	Assets      *[]AssetInput     `json:"assets,omitempty"`
	Liabilities *[]LiabilityInput `json:"liabilities,omitempty"`
}

func (in GuarantorInput) ExistingID() *uuid.UUID { return in.ID }

type SecurityPropertyInput struct {
	ID             *uuid.UUID       `json:"id,omitempty"`
	AddressLine    string           `json:"address_line"`
	Suburb         string           `json:"suburb,omitempty"`
	State          string           `json:"state,omitempty"`
	Postcode       string           `json:"postcode,omitempty"`
	PropertyType   string           `json:"property_type,omitempty"`
	EstimatedValue *decimal.Decimal `json:"estimated_value,omitempty"`
	CurrentDebt    *decimal.Decimal `json:"current_debt,omitempty"`
}

func (in SecurityPropertyInput) ExistingID() *uuid.UUID { return in.ID }

type LoanRequirementInput struct {
	ID          *uuid.UUID       `json:"id,omitempty"`
	Description string           `json:"description"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Position    int              `json:"position,omitempty"`
}

func (in LoanRequirementInput) ExistingID() *uuid.UUID { return in.ID }

// FundingRatesInput carries the fee-rate side of a funding calculation. Loan
// amount, interest rate and capped interest months come from the application
// itself, after any scalar changes in the same request have been applied.
type FundingRatesInput struct {
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

type ApplicationCreateInput struct {
	Purpose                 string           `json:"purpose,omitempty"`
	Stage                   string           `json:"stage,omitempty"`
	LoanAmount              *decimal.Decimal `json:"loan_amount,omitempty"`
	InterestRate            *decimal.Decimal `json:"interest_rate,omitempty"`
	TermMonths              *int             `json:"term_months,omitempty"`
	CappedInterestMonths    *int             `json:"capped_interest_months,omitempty"`
	RepaymentFrequency      string           `json:"repayment_frequency,omitempty"`
	EstimatedSettlementDate *time.Time       `json:"estimated_settlement_date,omitempty"`
	BranchName              string           `json:"branch_name,omitempty"`
	BDMName                 string           `json:"bdm_name,omitempty"`

	Borrowers          *[]IndividualBorrowerInput `json:"borrowers,omitempty"`
	CompanyBorrowers   *[]CompanyBorrowerInput    `json:"company_borrowers,omitempty"`
	Guarantors         *[]GuarantorInput          `json:"guarantors,omitempty"`
	SecurityProperties *[]SecurityPropertyInput   `json:"security_properties,omitempty"`
	LoanRequirements   *[]LoanRequirementInput    `json:"loan_requirements,omitempty"`

	FundingRates *FundingRatesInput `json:"funding_calculation,omitempty"`
}

type ApplicationUpdateInput struct {
	Purpose                 *string          `json:"purpose,omitempty"`
	Stage                   *string          `json:"stage,omitempty"`
	StageNotes              *string          `json:"stage_notes,omitempty"`
	LoanAmount              *decimal.Decimal `json:"loan_amount,omitempty"`
	InterestRate            *decimal.Decimal `json:"interest_rate,omitempty"`
	TermMonths              *int             `json:"term_months,omitempty"`
	CappedInterestMonths    *int             `json:"capped_interest_months,omitempty"`
	RepaymentFrequency      *string          `json:"repayment_frequency,omitempty"`
	EstimatedSettlementDate *time.Time       `json:"estimated_settlement_date,omitempty"`
	BranchName              *string          `json:"branch_name,omitempty"`
	BDMName                 *string          `json:"bdm_name,omitempty"`

	Borrowers          *[]IndividualBorrowerInput `json:"borrowers,omitempty"`
	CompanyBorrowers   *[]CompanyBorrowerInput    `json:"company_borrowers,omitempty"`
	Guarantors         *[]GuarantorInput          `json:"guarantors,omitempty"`
	SecurityProperties *[]SecurityPropertyInput   `json:"security_properties,omitempty"`
	LoanRequirements   *[]LoanRequirementInput    `json:"loan_requirements,omitempty"`

	FundingRates *FundingRatesInput `json:"funding_calculation,omitempty"`
}

type NoteInput struct {
	Title string `json:"title,omitempty"`
	Body  string `json:"body"`
}

type DocumentInput struct {
	DocumentType string `json:"document_type"`
	FileName     string `json:"file_name"`
	StorageKey   string `json:"storage_key,omitempty"`
	SizeBytes    int64  `json:"size_bytes,omitempty"`
}

// CollectionSummary lets clients sanity-check counts after a write.
type CollectionSummary struct {
	Borrowers           int `json:"borrowers"`
	CompanyBorrowers    int `json:"company_borrowers"`
	Guarantors          int `json:"guarantors"`
	SecurityProperties  int `json:"security_properties"`
	LoanRequirements    int `json:"loan_requirements"`
	Documents           int `json:"documents"`
	Notes               int `json:"notes"`
	FundingCalculations int `json:"funding_calculations"`
}

// WriteResult is returned from Create and Update. PartialFailures lists the
// nested items that were skipped (new items) or left at their persisted value
// (existing items); their presence does not make the write a failure.
type WriteResult struct {
	Application     *types.Application  `json:"application"`
	Summary         CollectionSummary   `json:"summary"`
	PartialFailures []types.ItemFailure `json:"partial_failures"`
}

func summarize(app *types.Application) CollectionSummary {
	s := CollectionSummary{
		Guarantors:         len(app.Guarantors),
		SecurityProperties: len(app.SecurityProperties),
		LoanRequirements:   len(app.LoanRequirements),
		Documents:          len(app.Documents),
		Notes:              len(app.Notes),
	}
	for _, b := range app.Borrowers {
		if b.IsCompany {
			s.CompanyBorrowers++
		} else {
			s.Borrowers++
		}
	}
	return s
}

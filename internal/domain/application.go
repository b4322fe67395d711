package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Application is the aggregate root. Everything below it is either a hard-owned
// child (replaced wholesale by the reconciler) or a shared association
// (borrowers, detached rather than deleted).
type Application struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ReferenceNumber string    `gorm:"column:reference_number;uniqueIndex;not null" json:"reference_number"`
	Stage           string    `gorm:"column:stage;not null;default:'inquiry'" json:"stage"`
	Purpose         string    `gorm:"column:purpose" json:"purpose"`

	LoanAmount           decimal.Decimal `gorm:"column:loan_amount;type:decimal(19,4);not null;default:0" json:"loan_amount"`
	InterestRate         decimal.Decimal `gorm:"column:interest_rate;type:decimal(9,4);not null;default:0" json:"interest_rate"`
	TermMonths           int             `gorm:"column:term_months;not null;default:0" json:"term_months"`
	CappedInterestMonths int             `gorm:"column:capped_interest_months;not null;default:0" json:"capped_interest_months"`
	RepaymentFrequency   string          `gorm:"column:repayment_frequency" json:"repayment_frequency"`

	EstimatedSettlementDate *time.Time `gorm:"column:estimated_settlement_date" json:"estimated_settlement_date,omitempty"`
	BranchName              string     `gorm:"column:branch_name" json:"branch_name"`
	BDMName                 string     `gorm:"column:bdm_name" json:"bdm_name"`

	// FundingResult caches the latest calculation for reads; the
	// FundingCalculations history is the source of truth.
	FundingResult datatypes.JSON `gorm:"column:funding_result" json:"funding_result,omitempty"`

	Borrowers           []*Borrower           `gorm:"many2many:application_borrowers" json:"borrowers"`
	Guarantors          []*Guarantor          `gorm:"foreignKey:ApplicationID" json:"guarantors"`
	SecurityProperties  []*SecurityProperty   `gorm:"foreignKey:ApplicationID;constraint:OnDelete:CASCADE" json:"security_properties"`
	LoanRequirements    []*LoanRequirement    `gorm:"foreignKey:ApplicationID;constraint:OnDelete:CASCADE" json:"loan_requirements"`
	Notes               []*Note               `gorm:"foreignKey:ApplicationID;constraint:OnDelete:CASCADE" json:"notes"`
	Documents           []*Document           `gorm:"foreignKey:ApplicationID;constraint:OnDelete:CASCADE" json:"documents"`
	FundingCalculations []*FundingCalculation `gorm:"foreignKey:ApplicationID;constraint:OnDelete:CASCADE" json:"funding_calculations,omitempty"`
	StageHistory        []*StageHistoryEntry  `gorm:"foreignKey:ApplicationID;constraint:OnDelete:CASCADE" json:"stage_history"`
	Servicing           *LoanServicing        `gorm:"foreignKey:ApplicationID" json:"servicing,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Application) TableName() string { return "application" }

// StageHistoryEntry is append-only; rows are never updated after creation.
type StageHistoryEntry struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ApplicationID uuid.UUID  `gorm:"type:uuid;not null;index" json:"application_id"`
	FromStage     string     `gorm:"column:from_stage" json:"from_stage"`
	ToStage       string     `gorm:"column:to_stage;not null" json:"to_stage"`
	ActorID       *uuid.UUID `gorm:"type:uuid" json:"actor_id,omitempty"`
	Notes         string     `gorm:"column:notes" json:"notes"`
	CreatedAt     time.Time  `gorm:"not null;default:now()" json:"created_at"`
}

func (StageHistoryEntry) TableName() string { return "application_stage_history" }

// LoanServicing is created once when an application first reaches settled.
type LoanServicing struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ApplicationID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex" json:"application_id"`
	Status               string          `gorm:"column:status;not null;default:'active'" json:"status"`
	PrincipalOutstanding decimal.Decimal `gorm:"column:principal_outstanding;type:decimal(19,4);not null;default:0" json:"principal_outstanding"`
	InterestRate         decimal.Decimal `gorm:"column:interest_rate;type:decimal(9,4);not null;default:0" json:"interest_rate"`
	NextReviewAt         *time.Time      `gorm:"column:next_review_at" json:"next_review_at,omitempty"`
	CreatedAt            time.Time       `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt            time.Time       `gorm:"not null;default:now()" json:"updated_at"`
}

func (LoanServicing) TableName() string { return "loan_servicing" }

package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Asset belongs to exactly one of a borrower or a guarantor. Rows are only
// ever written through an owner's sub-collection replacement, which sets
// exactly one owner column.
type Asset struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	BorrowerID  *uuid.UUID      `gorm:"type:uuid;index" json:"borrower_id,omitempty"`
	GuarantorID *uuid.UUID      `gorm:"type:uuid;index" json:"guarantor_id,omitempty"`
	AssetType   string          `gorm:"column:asset_type;not null" json:"asset_type"`
	Description string          `gorm:"column:description" json:"description"`
	Value       decimal.Decimal `gorm:"column:value;type:decimal(19,4);not null;default:0" json:"value"`
	CreatedAt   time.Time       `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null;default:now()" json:"updated_at"`
}

func (Asset) TableName() string { return "asset" }

// Liability has the same exclusive-owner rule as Asset.
type Liability struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	BorrowerID     *uuid.UUID      `gorm:"type:uuid;index" json:"borrower_id,omitempty"`
	GuarantorID    *uuid.UUID      `gorm:"type:uuid;index" json:"guarantor_id,omitempty"`
	LiabilityType  string          `gorm:"column:liability_type;not null" json:"liability_type"`
	Description    string          `gorm:"column:description" json:"description"`
	Amount         decimal.Decimal `gorm:"column:amount;type:decimal(19,4);not null;default:0" json:"amount"`
	MonthlyPayment decimal.Decimal `gorm:"column:monthly_payment;type:decimal(19,4);not null;default:0" json:"monthly_payment"`
	CreatedAt      time.Time       `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"not null;default:now()" json:"updated_at"`
}

func (Liability) TableName() string { return "liability" }

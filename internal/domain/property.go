package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SecurityProperty is hard-owned: no identity outside its application.
type SecurityProperty struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ApplicationID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"application_id"`
	AddressLine    string          `gorm:"column:address_line;not null" json:"address_line"`
	Suburb         string          `gorm:"column:suburb" json:"suburb"`
	State          string          `gorm:"column:state" json:"state"`
	Postcode       string          `gorm:"column:postcode" json:"postcode"`
	PropertyType   string          `gorm:"column:property_type" json:"property_type"`
	EstimatedValue decimal.Decimal `gorm:"column:estimated_value;type:decimal(19,4);not null;default:0" json:"estimated_value"`
	CurrentDebt    decimal.Decimal `gorm:"column:current_debt;type:decimal(19,4);not null;default:0" json:"current_debt"`
	CreatedAt      time.Time       `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"not null;default:now()" json:"updated_at"`
}

func (SecurityProperty) TableName() string { return "security_property" }

// LoanRequirement is hard-owned, like SecurityProperty.
type LoanRequirement struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ApplicationID uuid.UUID       `gorm:"type:uuid;not null;index" json:"application_id"`
	Description   string          `gorm:"column:description;not null" json:"description"`
	Amount        decimal.Decimal `gorm:"column:amount;type:decimal(19,4);not null;default:0" json:"amount"`
	Position      int             `gorm:"column:position;not null;default:0" json:"position"`
	CreatedAt     time.Time       `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null;default:now()" json:"updated_at"`
}

func (LoanRequirement) TableName() string { return "loan_requirement" }

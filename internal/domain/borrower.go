package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Borrower is polymorphic over {individual, company}, discriminated by
// IsCompany. The variant field groups are mutually exclusive; the validators
// only ever populate one side. Borrowers are shared associations: the same row
// may be linked to several applications, so dropping one from an application's
// list removes the membership, never the row.
type Borrower struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	IsCompany bool      `gorm:"column:is_company;not null;default:false" json:"is_company"`

	// Individual fields.
	FirstName    string          `gorm:"column:first_name" json:"first_name,omitempty"`
	LastName     string          `gorm:"column:last_name" json:"last_name,omitempty"`
	DateOfBirth  *time.Time      `gorm:"column:date_of_birth" json:"date_of_birth,omitempty"`
	Email        string          `gorm:"column:email" json:"email,omitempty"`
	Phone        string          `gorm:"column:phone" json:"phone,omitempty"`
	Employment   string          `gorm:"column:employment" json:"employment,omitempty"`
	AnnualIncome decimal.Decimal `gorm:"column:annual_income;type:decimal(19,4);not null;default:0" json:"annual_income"`

	// Company fields.
	CompanyName string `gorm:"column:company_name" json:"company_name,omitempty"`
	ABN         string `gorm:"column:abn" json:"abn,omitempty"`
	ACN         string `gorm:"column:acn" json:"acn,omitempty"`
	Industry    string `gorm:"column:industry" json:"industry,omitempty"`

	Directors   []*Director  `gorm:"foreignKey:BorrowerID;constraint:OnDelete:CASCADE" json:"directors,omitempty"`
	Assets      []*Asset     `gorm:"foreignKey:BorrowerID;constraint:OnDelete:CASCADE" json:"assets,omitempty"`
	Liabilities []*Liability `gorm:"foreignKey:BorrowerID;constraint:OnDelete:CASCADE" json:"liabilities,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Borrower) TableName() string { return "borrower" }

// Director belongs to exactly one company borrower.
type Director struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BorrowerID uuid.UUID `gorm:"type:uuid;not null;index" json:"borrower_id"`
	FirstName  string    `gorm:"column:first_name;not null" json:"first_name"`
	LastName   string    `gorm:"column:last_name" json:"last_name"`
	Role       string    `gorm:"column:role" json:"role"`
	Email      string    `gorm:"column:email" json:"email"`
	Phone      string    `gorm:"column:phone" json:"phone"`
	CreatedAt  time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Director) TableName() string { return "director" }

package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Guarantor hangs off a single application. Removal from the application's
// list clears ApplicationID instead of deleting the row, so the guarantor's
// own assets and liabilities survive.
type Guarantor struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ApplicationID *uuid.UUID `gorm:"type:uuid;index" json:"application_id,omitempty"`
	GuarantorType string     `gorm:"column:guarantor_type;not null;default:'individual'" json:"guarantor_type"`

	FirstName   string `gorm:"column:first_name" json:"first_name,omitempty"`
	LastName    string `gorm:"column:last_name" json:"last_name,omitempty"`
	Email       string `gorm:"column:email" json:"email,omitempty"`
	Phone       string `gorm:"column:phone" json:"phone,omitempty"`
	CompanyName string `gorm:"column:company_name" json:"company_name,omitempty"`
	ABN         string `gorm:"column:abn" json:"abn,omitempty"`

	Assets      []*Asset     `gorm:"foreignKey:GuarantorID;constraint:OnDelete:CASCADE" json:"assets,omitempty"`
	Liabilities []*Liability `gorm:"foreignKey:GuarantorID;constraint:OnDelete:CASCADE" json:"liabilities,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Guarantor) TableName() string { return "guarantor" }

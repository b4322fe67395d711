package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	types "github.com/crestline/origination-backend/internal/domain"
)

func SeedStaff(tb testing.TB, tx *gorm.DB) *types.Staff {
	tb.Helper()
	row := &types.Staff{
		ID:          uuid.New(),
		Email:       fmt.Sprintf("officer-%s@example.com", uuid.New().String()[:8]),
		Password:    "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy",
		DisplayName: "Test Officer",
		Role:        "officer",
	}
	if err := tx.Create(row).Error; err != nil {
		tb.Fatalf("seed staff: %v", err)
	}
	return row
}

func SeedApplication(tb testing.TB, tx *gorm.DB, stage string) *types.Application {
	tb.Helper()
	if stage == "" {
		stage = types.StageInquiry
	}
	row := &types.Application{
		ID:                   uuid.New(),
		ReferenceNumber:      fmt.Sprintf("APP-TEST-%s", uuid.New().String()[:8]),
		Stage:                stage,
		LoanAmount:           decimal.NewFromInt(500000),
		InterestRate:         decimal.NewFromInt(12),
		TermMonths:           12,
		CappedInterestMonths: 6,
	}
	if err := tx.Create(row).Error; err != nil {
		tb.Fatalf("seed application: %v", err)
	}
	return row
}

func SeedBorrower(tb testing.TB, tx *gorm.DB, appID uuid.UUID, firstName string) *types.Borrower {
	tb.Helper()
	row := &types.Borrower{
		ID:        uuid.New(),
		FirstName: firstName,
		LastName:  "Example",
	}
	if err := tx.Create(row).Error; err != nil {
		tb.Fatalf("seed borrower: %v", err)
	}
	if err := tx.Exec("INSERT INTO application_borrowers (application_id, borrower_id) VALUES (?, ?)", appID, row.ID).Error; err != nil {
		tb.Fatalf("seed membership: %v", err)
	}
	return row
}

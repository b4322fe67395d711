package services

import (
	"strings"

	"github.com/shopspring/decimal"

	types "github.com/crestline/origination-backend/internal/domain"
)

func decOrZero(p *decimal.Decimal) decimal.Decimal {
	if p == nil {
		return decimal.Zero
	}
	return *p
}

func checkNonNegative(fe types.FieldErrors, field string, p *decimal.Decimal) {
	if p != nil && p.IsNegative() {
		fe.Add(field, "must not be negative")
	}
}

func checkEmail(fe types.FieldErrors, field, email string) {
	if email != "" && !strings.Contains(email, "@") {
		fe.Add(field, "not a valid email address")
	}
}

func validateIndividualBorrower(in IndividualBorrowerInput) types.FieldErrors {
	fe := types.FieldErrors{}
	if strings.TrimSpace(in.FirstName) == "" {
		fe.Add("first_name", "required")
	}
	if strings.TrimSpace(in.LastName) == "" {
		fe.Add("last_name", "required")
	}
	checkEmail(fe, "email", in.Email)
	checkNonNegative(fe, "annual_income", in.AnnualIncome)
	return fe
}

func validateCompanyBorrower(in CompanyBorrowerInput) types.FieldErrors {
	fe := types.FieldErrors{}
	if strings.TrimSpace(in.CompanyName) == "" {
		fe.Add("company_name", "required")
	}
	if in.ABN != "" && len(onlyDigits(in.ABN)) != 11 {
		fe.Add("abn", "must be 11 digits")
	}
	if in.ACN != "" && len(onlyDigits(in.ACN)) != 9 {
		fe.Add("acn", "must be 9 digits")
	}
	return fe
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func validateDirector(in DirectorInput) types.FieldErrors {
	fe := types.FieldErrors{}
	if strings.TrimSpace(in.FirstName) == "" {
		fe.Add("first_name", "required")
	}
	checkEmail(fe, "email", in.Email)
	return fe
}

func validateAsset(in AssetInput) types.FieldErrors {
	fe := types.FieldErrors{}
	if strings.TrimSpace(in.AssetType) == "" {
		fe.Add("asset_type", "required")
	}
	checkNonNegative(fe, "value", in.Value)
	return fe
}

func validateLiability(in LiabilityInput) types.FieldErrors {
	fe := types.FieldErrors{}
	if strings.TrimSpace(in.LiabilityType) == "" {
		fe.Add("liability_type", "required")
	}
	checkNonNegative(fe, "amount", in.Amount)
	checkNonNegative(fe, "monthly_payment", in.MonthlyPayment)
	return fe
}

func validateGuarantor(in GuarantorInput) types.FieldErrors {
	fe := types.FieldErrors{}
	switch in.GuarantorType {
	case "individual":
		if strings.TrimSpace(in.FirstName) == "" {
			fe.Add("first_name", "required")
		}
		if strings.TrimSpace(in.LastName) == "" {
			fe.Add("last_name", "required")
		}
	case "company":
		if strings.TrimSpace(in.CompanyName) == "" {
			fe.Add("company_name", "required")
		}
	default:
		fe.Add("guarantor_type", "must be individual or company")
	}
	checkEmail(fe, "email", in.Email)
	return fe
}

func validateSecurityProperty(in SecurityPropertyInput) types.FieldErrors {
	fe := types.FieldErrors{}
	if strings.TrimSpace(in.AddressLine) == "" {
		fe.Add("address_line", "required")
	}
	checkNonNegative(fe, "estimated_value", in.EstimatedValue)
	checkNonNegative(fe, "current_debt", in.CurrentDebt)
	return fe
}

func validateLoanRequirement(in LoanRequirementInput) types.FieldErrors {
	fe := types.FieldErrors{}
	if strings.TrimSpace(in.Description) == "" {
		fe.Add("description", "required")
	}
	checkNonNegative(fe, "amount", in.Amount)
	if in.Position < 0 {
		fe.Add("position", "must not be negative")
	}
	return fe
}

// validateCreateScalars aborts the whole create when the top-level fields are
// unusable. Nested collection problems never reach here; those degrade to
// per-item failures instead.
func validateCreateScalars(in ApplicationCreateInput) error {
	fe := types.FieldErrors{}
	if in.Stage != "" && !types.ValidStage(in.Stage) {
		fe.Add("stage", "unknown stage")
	}
	checkNonNegative(fe, "loan_amount", in.LoanAmount)
	checkNonNegative(fe, "interest_rate", in.InterestRate)
	if in.TermMonths != nil && *in.TermMonths < 0 {
		fe.Add("term_months", "must not be negative")
	}
	if in.CappedInterestMonths != nil && *in.CappedInterestMonths < 0 {
		fe.Add("capped_interest_months", "must not be negative")
	}
	if fe.Empty() {
		return nil
	}
	return types.NewValidationError(fe)
}

func validateUpdateScalars(in ApplicationUpdateInput) error {
	fe := types.FieldErrors{}
	if in.Stage != nil && !types.ValidStage(*in.Stage) {
		fe.Add("stage", "unknown stage")
	}
	checkNonNegative(fe, "loan_amount", in.LoanAmount)
	checkNonNegative(fe, "interest_rate", in.InterestRate)
	if in.TermMonths != nil && *in.TermMonths < 0 {
		fe.Add("term_months", "must not be negative")
	}
	if in.CappedInterestMonths != nil && *in.CappedInterestMonths < 0 {
		fe.Add("capped_interest_months", "must not be negative")
	}
	if fe.Empty() {
		return nil
	}
	return types.NewValidationError(fe)
}

func validateNote(in NoteInput) error {
	fe := types.FieldErrors{}
	if strings.TrimSpace(in.Body) == "" {
		fe.Add("body", "required")
	}
	if fe.Empty() {
		return nil
	}
	return types.NewValidationError(fe)
}

func validateDocument(in DocumentInput) error {
	fe := types.FieldErrors{}
	if strings.TrimSpace(in.DocumentType) == "" {
		fe.Add("document_type", "required")
	}
	if strings.TrimSpace(in.FileName) == "" {
		fe.Add("file_name", "required")
	}
	if in.SizeBytes < 0 {
		fe.Add("size_bytes", "must not be negative")
	}
	if fe.Empty() {
		return nil
	}
	return types.NewValidationError(fe)
}

// Apply helpers copy validated input onto rows. They never touch IDs,
// timestamps or ownership columns.

func applyIndividualBorrower(row *types.Borrower, in IndividualBorrowerInput) {
	row.IsCompany = false
	row.FirstName = in.FirstName
	row.LastName = in.LastName
	row.DateOfBirth = in.DateOfBirth
	row.Email = in.Email
	row.Phone = in.Phone
	row.Employment = in.Employment
	row.AnnualIncome = decOrZero(in.AnnualIncome)
}

func applyCompanyBorrower(row *types.Borrower, in CompanyBorrowerInput) {
	row.IsCompany = true
	row.CompanyName = in.CompanyName
	row.ABN = in.ABN
	row.ACN = in.ACN
	row.Industry = in.Industry
}

func applyGuarantor(row *types.Guarantor, in GuarantorInput) {
	row.GuarantorType = in.GuarantorType
	row.FirstName = in.FirstName
	row.LastName = in.LastName
	row.Email = in.Email
	row.Phone = in.Phone
	row.CompanyName = in.CompanyName
	row.ABN = in.ABN
}

func applySecurityProperty(row *types.SecurityProperty, in SecurityPropertyInput) {
	row.AddressLine = in.AddressLine
	row.Suburb = in.Suburb
	row.State = in.State
	row.Postcode = in.Postcode
	row.PropertyType = in.PropertyType
	row.EstimatedValue = decOrZero(in.EstimatedValue)
	row.CurrentDebt = decOrZero(in.CurrentDebt)
}

func applyLoanRequirement(row *types.LoanRequirement, in LoanRequirementInput) {
	row.Description = in.Description
	row.Amount = decOrZero(in.Amount)
	row.Position = in.Position
}

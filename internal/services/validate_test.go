package services

import (
	"testing"

	"github.com/shopspring/decimal"

	types "github.com/crestline/origination-backend/internal/domain"
)

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestValidateIndividualBorrower(t *testing.T) {
	tests := []struct {
		name      string
		in        IndividualBorrowerInput
		badFields []string
	}{
		{
			name: "valid",
			in:   IndividualBorrowerInput{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"},
		},
		{
			name:      "missing names",
			in:        IndividualBorrowerInput{},
			badFields: []string{"first_name", "last_name"},
		},
		{
			name:      "negative income",
			in:        IndividualBorrowerInput{FirstName: "Ada", LastName: "L", AnnualIncome: decPtr("-1")},
			badFields: []string{"annual_income"},
		},
		{
			name:      "bad email",
			in:        IndividualBorrowerInput{FirstName: "Ada", LastName: "L", Email: "not-an-email"},
			badFields: []string{"email"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fe := validateIndividualBorrower(tt.in)
			assertFields(t, fe, tt.badFields)
		})
	}
}

func TestValidateCompanyBorrower(t *testing.T) {
	tests := []struct {
		name      string
		in        CompanyBorrowerInput
		badFields []string
	}{
		{name: "valid", in: CompanyBorrowerInput{CompanyName: "Acme Pty Ltd", ABN: "12 345 678 901", ACN: "123 456 789"}},
		{name: "missing name", in: CompanyBorrowerInput{}, badFields: []string{"company_name"}},
		{name: "short abn", in: CompanyBorrowerInput{CompanyName: "Acme", ABN: "123"}, badFields: []string{"abn"}},
		{name: "short acn", in: CompanyBorrowerInput{CompanyName: "Acme", ACN: "99"}, badFields: []string{"acn"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertFields(t, validateCompanyBorrower(tt.in), tt.badFields)
		})
	}
}

func TestValidateGuarantor(t *testing.T) {
	tests := []struct {
		name      string
		in        GuarantorInput
		badFields []string
	}{
		{name: "individual ok", in: GuarantorInput{GuarantorType: "individual", FirstName: "Tom", LastName: "Jones"}},
		{name: "company ok", in: GuarantorInput{GuarantorType: "company", CompanyName: "Holdings Pty Ltd"}},
		{name: "unknown type", in: GuarantorInput{GuarantorType: "trust"}, badFields: []string{"guarantor_type"}},
		{name: "individual missing names", in: GuarantorInput{GuarantorType: "individual"}, badFields: []string{"first_name", "last_name"}},
		{name: "company missing name", in: GuarantorInput{GuarantorType: "company"}, badFields: []string{"company_name"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertFields(t, validateGuarantor(tt.in), tt.badFields)
		})
	}
}

func TestValidateCreateScalars(t *testing.T) {
	neg := -3
	if err := validateCreateScalars(ApplicationCreateInput{}); err != nil {
		t.Fatalf("empty input should be valid, got %v", err)
	}
	err := validateCreateScalars(ApplicationCreateInput{
		Stage:      "imaginary",
		LoanAmount: decPtr("-500"),
		TermMonths: &neg,
	})
	ve, ok := err.(*types.ValidationError)
	if !ok {
		t.Fatalf("want ValidationError, got %T", err)
	}
	for _, f := range []string{"stage", "loan_amount", "term_months"} {
		if _, found := ve.Fields[f]; !found {
			t.Errorf("missing field error for %q: %v", f, ve.Fields)
		}
	}
}

func TestValidateSecurityProperty(t *testing.T) {
	fe := validateSecurityProperty(SecurityPropertyInput{})
	if _, ok := fe["address_line"]; !ok {
		t.Errorf("missing address_line error: %v", fe)
	}
	fe = validateSecurityProperty(SecurityPropertyInput{AddressLine: "1 Example St", CurrentDebt: decPtr("-10")})
	if _, ok := fe["current_debt"]; !ok {
		t.Errorf("missing current_debt error: %v", fe)
	}
}

func assertFields(t *testing.T, fe types.FieldErrors, want []string) {
	t.Helper()
	if len(want) == 0 {
		if !fe.Empty() {
			t.Fatalf("unexpected field errors: %v", fe)
		}
		return
	}
	if len(fe) != len(want) {
		t.Fatalf("field errors = %v, want keys %v", fe, want)
	}
	for _, f := range want {
		if _, ok := fe[f]; !ok {
			t.Errorf("missing field error for %q: %v", f, fe)
		}
	}
}

package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/crestline/origination-backend/internal/domain"
)

// reconcileGuarantors detaches rather than deletes: a guarantor dropped from
// the list keeps its row and its financials, only the application link is
// cleared.
func (s *applicationService) reconcileGuarantors(ctx context.Context, tx *gorm.DB, app *types.Application, input *[]GuarantorInput) ([]types.ItemFailure, error) {
	if input == nil {
		return nil, nil
	}
	current, err := s.repos.Guarantors.GetByApplicationID(ctx, tx, app.ID)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*types.Guarantor, len(current))
	ids := make([]uuid.UUID, 0, len(current))
	for _, g := range current {
		byID[g.ID] = g
		ids = append(ids, g.ID)
	}

	plan := planCollection("guarantors", *input, ids)
	failures := plan.Failures

	for _, c := range plan.Creates {
		fe := validateGuarantor(c.Item)
		if !fe.Empty() {
			failures = append(failures, itemFailure("guarantors", c.Index, nil, fe))
			continue
		}
		appID := app.ID
		row := &types.Guarantor{ID: uuid.New(), ApplicationID: &appID}
		applyGuarantor(row, c.Item)
		if _, err := s.repos.Guarantors.Create(ctx, tx, []*types.Guarantor{row}); err != nil {
			return nil, err
		}
		fs, err := s.replaceGuarantorFinancials(ctx, tx, row.ID, c.Index, c.Item)
		if err != nil {
			return nil, err
		}
		failures = append(failures, fs...)
	}

	for _, u := range plan.Updates {
		row := byID[u.ID]
		fe := validateGuarantor(u.Item)
		if !fe.Empty() {
			failures = append(failures, itemFailure("guarantors", u.Index, &u.ID, fe))
			continue
		}
		applyGuarantor(row, u.Item)
		if err := s.repos.Guarantors.Update(ctx, tx, row); err != nil {
			return nil, err
		}
		fs, err := s.replaceGuarantorFinancials(ctx, tx, row.ID, u.Index, u.Item)
		if err != nil {
			return nil, err
		}
		failures = append(failures, fs...)
	}

	if err := s.repos.Guarantors.DetachByIDs(ctx, tx, plan.RemoveIDs); err != nil {
		return nil, err
	}
	return failures, nil
}

func (s *applicationService) replaceGuarantorFinancials(ctx context.Context, tx *gorm.DB, guarantorID uuid.UUID, index int, in GuarantorInput) ([]types.ItemFailure, error) {
	var failures []types.ItemFailure
	owner := guarantorID
	if in.Assets != nil {
		fs, err := s.replaceOwnedAssets(ctx, tx, nil, &owner, fmt.Sprintf("guarantors[%d].assets", index), *in.Assets)
		if err != nil {
			return nil, err
		}
		failures = append(failures, fs...)
	}
	if in.Liabilities != nil {
		fs, err := s.replaceOwnedLiabilities(ctx, tx, nil, &owner, fmt.Sprintf("guarantors[%d].liabilities", index), *in.Liabilities)
		if err != nil {
			return nil, err
		}
		failures = append(failures, fs...)
	}
	return failures, nil
}

// reconcileSecurityProperties hard-deletes dropped rows; properties have no
// identity outside their application.
func (s *applicationService) reconcileSecurityProperties(ctx context.Context, tx *gorm.DB, app *types.Application, input *[]SecurityPropertyInput) ([]types.ItemFailure, error) {
	if input == nil {
		return nil, nil
	}
	if len(*input) == 0 {
		// Clearing the collection needs no matching pass.
		return nil, s.repos.Properties.FullDeleteByApplicationID(ctx, tx, app.ID)
	}
	current, err := s.repos.Properties.GetByApplicationID(ctx, tx, app.ID)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*types.SecurityProperty, len(current))
	ids := make([]uuid.UUID, 0, len(current))
	for _, p := range current {
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}

	plan := planCollection("security_properties", *input, ids)
	failures := plan.Failures

	var creates []*types.SecurityProperty
	for _, c := range plan.Creates {
		fe := validateSecurityProperty(c.Item)
		if !fe.Empty() {
			failures = append(failures, itemFailure("security_properties", c.Index, nil, fe))
			continue
		}
		row := &types.SecurityProperty{ID: uuid.New(), ApplicationID: app.ID}
		applySecurityProperty(row, c.Item)
		creates = append(creates, row)
	}
	if _, err := s.repos.Properties.Create(ctx, tx, creates); err != nil {
		return nil, err
	}

	for _, u := range plan.Updates {
		fe := validateSecurityProperty(u.Item)
		if !fe.Empty() {
			failures = append(failures, itemFailure("security_properties", u.Index, &u.ID, fe))
			continue
		}
		row := byID[u.ID]
		applySecurityProperty(row, u.Item)
		if err := s.repos.Properties.Update(ctx, tx, row); err != nil {
			return nil, err
		}
	}

	if err := s.repos.Properties.FullDeleteByIDs(ctx, tx, plan.RemoveIDs); err != nil {
		return nil, err
	}
	return failures, nil
}

func (s *applicationService) reconcileLoanRequirements(ctx context.Context, tx *gorm.DB, app *types.Application, input *[]LoanRequirementInput) ([]types.ItemFailure, error) {
	if input == nil {
		return nil, nil
	}
	if len(*input) == 0 {
		return nil, s.repos.Requirements.FullDeleteByApplicationID(ctx, tx, app.ID)
	}
	current, err := s.repos.Requirements.GetByApplicationID(ctx, tx, app.ID)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*types.LoanRequirement, len(current))
	ids := make([]uuid.UUID, 0, len(current))
	for _, r := range current {
		byID[r.ID] = r
		ids = append(ids, r.ID)
	}

	plan := planCollection("loan_requirements", *input, ids)
	failures := plan.Failures

	var creates []*types.LoanRequirement
	for _, c := range plan.Creates {
		fe := validateLoanRequirement(c.Item)
		if !fe.Empty() {
			failures = append(failures, itemFailure("loan_requirements", c.Index, nil, fe))
			continue
		}
		row := &types.LoanRequirement{ID: uuid.New(), ApplicationID: app.ID}
		applyLoanRequirement(row, c.Item)
		creates = append(creates, row)
	}
	if _, err := s.repos.Requirements.Create(ctx, tx, creates); err != nil {
		return nil, err
	}

	for _, u := range plan.Updates {
		fe := validateLoanRequirement(u.Item)
		if !fe.Empty() {
			failures = append(failures, itemFailure("loan_requirements", u.Index, &u.ID, fe))
			continue
		}
		row := byID[u.ID]
		applyLoanRequirement(row, u.Item)
		if err := s.repos.Requirements.Update(ctx, tx, row); err != nil {
			return nil, err
		}
	}

	if err := s.repos.Requirements.FullDeleteByIDs(ctx, tx, plan.RemoveIDs); err != nil {
		return nil, err
	}
	return failures, nil
}

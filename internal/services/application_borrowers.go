package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/crestline/origination-backend/internal/domain"
)

// reconcileBorrowers handles both membership variants against the shared join
// table. Individuals and companies are planned independently, so a request
// touching only one variant can never disturb the other; the final membership
// set is written once, as the union of the two targets.
func (s *applicationService) reconcileBorrowers(ctx context.Context, tx *gorm.DB, app *types.Application, indiv *[]IndividualBorrowerInput, comp *[]CompanyBorrowerInput) ([]types.ItemFailure, error) {
	if indiv == nil && comp == nil {
		return nil, nil
	}

	current, err := s.repos.Borrowers.GetByApplicationID(ctx, tx, app.ID)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*types.Borrower, len(current))
	var indivRows, compRows []*types.Borrower
	var indivIDs, compIDs []uuid.UUID
	for _, b := range current {
		byID[b.ID] = b
		if b.IsCompany {
			compRows = append(compRows, b)
			compIDs = append(compIDs, b.ID)
		} else {
			indivRows = append(indivRows, b)
			indivIDs = append(indivIDs, b.ID)
		}
	}

	var target []*types.Borrower
	var failures []types.ItemFailure

	if indiv == nil {
		target = append(target, indivRows...)
	} else {
		plan := planCollection("borrowers", *indiv, indivIDs)
		failures = append(failures, plan.Failures...)

		for _, c := range plan.Creates {
			fe := validateIndividualBorrower(c.Item)
			if !fe.Empty() {
				failures = append(failures, itemFailure("borrowers", c.Index, nil, fe))
				continue
			}
			row := &types.Borrower{ID: uuid.New()}
			applyIndividualBorrower(row, c.Item)
			if _, err := s.repos.Borrowers.Create(ctx, tx, []*types.Borrower{row}); err != nil {
				return nil, err
			}
			fs, err := s.replaceBorrowerFinancials(ctx, tx, row.ID, "borrowers", c.Index, c.Item.Assets, c.Item.Liabilities)
			if err != nil {
				return nil, err
			}
			failures = append(failures, fs...)
			target = append(target, row)
		}

		for _, u := range plan.Updates {
			row := byID[u.ID]
			fe := validateIndividualBorrower(u.Item)
			if !fe.Empty() {
				failures = append(failures, itemFailure("borrowers", u.Index, &u.ID, fe))
				target = append(target, row)
				continue
			}
			applyIndividualBorrower(row, u.Item)
			if err := s.repos.Borrowers.Update(ctx, tx, row); err != nil {
				return nil, err
			}
			fs, err := s.replaceBorrowerFinancials(ctx, tx, row.ID, "borrowers", u.Index, u.Item.Assets, u.Item.Liabilities)
			if err != nil {
				return nil, err
			}
			failures = append(failures, fs...)
			target = append(target, row)
		}
		// plan.RemoveIDs drop out of the membership set; the rows themselves
		// stay untouched since borrowers are shared.
	}

	if comp == nil {
		target = append(target, compRows...)
	} else {
		plan := planCollection("company_borrowers", *comp, compIDs)
		failures = append(failures, plan.Failures...)

		for _, c := range plan.Creates {
			fe := validateCompanyBorrower(c.Item)
			if !fe.Empty() {
				failures = append(failures, itemFailure("company_borrowers", c.Index, nil, fe))
				continue
			}
			row := &types.Borrower{ID: uuid.New()}
			applyCompanyBorrower(row, c.Item)
			if _, err := s.repos.Borrowers.Create(ctx, tx, []*types.Borrower{row}); err != nil {
				return nil, err
			}
			fs, err := s.replaceCompanyChildren(ctx, tx, row.ID, c.Index, c.Item)
			if err != nil {
				return nil, err
			}
			failures = append(failures, fs...)
			target = append(target, row)
		}

		for _, u := range plan.Updates {
			row := byID[u.ID]
			fe := validateCompanyBorrower(u.Item)
			if !fe.Empty() {
				failures = append(failures, itemFailure("company_borrowers", u.Index, &u.ID, fe))
				target = append(target, row)
				continue
			}
			applyCompanyBorrower(row, u.Item)
			if err := s.repos.Borrowers.Update(ctx, tx, row); err != nil {
				return nil, err
			}
			fs, err := s.replaceCompanyChildren(ctx, tx, row.ID, u.Index, u.Item)
			if err != nil {
				return nil, err
			}
			failures = append(failures, fs...)
			target = append(target, row)
		}
	}

	if err := s.repos.Applications.ReplaceBorrowers(ctx, tx, app, target); err != nil {
		return nil, err
	}
	return failures, nil
}

func (s *applicationService) replaceCompanyChildren(ctx context.Context, tx *gorm.DB, borrowerID uuid.UUID, index int, in CompanyBorrowerInput) ([]types.ItemFailure, error) {
	var failures []types.ItemFailure
	if in.Directors != nil {
		fs, err := s.replaceDirectors(ctx, tx, borrowerID, fmt.Sprintf("company_borrowers[%d].directors", index), *in.Directors)
		if err != nil {
			return nil, err
		}
		failures = append(failures, fs...)
	}
	fs, err := s.replaceBorrowerFinancials(ctx, tx, borrowerID, "company_borrowers", index, in.Assets, in.Liabilities)
	if err != nil {
		return nil, err
	}
	return append(failures, fs...), nil
}

func (s *applicationService) replaceBorrowerFinancials(ctx context.Context, tx *gorm.DB, borrowerID uuid.UUID, collection string, index int, assets *[]AssetInput, liabilities *[]LiabilityInput) ([]types.ItemFailure, error) {
	var failures []types.ItemFailure
	owner := borrowerID
	if assets != nil {
		fs, err := s.replaceOwnedAssets(ctx, tx, &owner, nil, fmt.Sprintf("%s[%d].assets", collection, index), *assets)
		if err != nil {
			return nil, err
		}
		failures = append(failures, fs...)
	}
	if liabilities != nil {
		fs, err := s.replaceOwnedLiabilities(ctx, tx, &owner, nil, fmt.Sprintf("%s[%d].liabilities", collection, index), *liabilities)
		if err != nil {
			return nil, err
		}
		failures = append(failures, fs...)
	}
	return failures, nil
}

// replaceDirectors rewrites a company's director list wholesale. Directors
// carry no cross-request identity, so there is no matching step.
func (s *applicationService) replaceDirectors(ctx context.Context, tx *gorm.DB, borrowerID uuid.UUID, path string, items []DirectorInput) ([]types.ItemFailure, error) {
	if err := s.repos.Directors.FullDeleteByBorrowerIDs(ctx, tx, []uuid.UUID{borrowerID}); err != nil {
		return nil, err
	}
	var failures []types.ItemFailure
	rows := make([]*types.Director, 0, len(items))
	for i, in := range items {
		fe := validateDirector(in)
		if !fe.Empty() {
			failures = append(failures, itemFailure(path, i, nil, fe))
			continue
		}
		rows = append(rows, &types.Director{
			ID:         uuid.New(),
			BorrowerID: borrowerID,
			FirstName:  in.FirstName,
			LastName:   in.LastName,
			Role:       in.Role,
			Email:      in.Email,
			Phone:      in.Phone,
		})
	}
	if _, err := s.repos.Directors.Create(ctx, tx, rows); err != nil {
		return nil, err
	}
	return failures, nil
}

// replaceOwnedAssets serves both owner kinds; exactly one of borrowerID and
// guarantorID is set.
func (s *applicationService) replaceOwnedAssets(ctx context.Context, tx *gorm.DB, borrowerID, guarantorID *uuid.UUID, path string, items []AssetInput) ([]types.ItemFailure, error) {
	if borrowerID != nil {
		if err := s.repos.Assets.FullDeleteByBorrowerIDs(ctx, tx, []uuid.UUID{*borrowerID}); err != nil {
			return nil, err
		}
	} else {
		if err := s.repos.Assets.FullDeleteByGuarantorIDs(ctx, tx, []uuid.UUID{*guarantorID}); err != nil {
			return nil, err
		}
	}
	var failures []types.ItemFailure
	rows := make([]*types.Asset, 0, len(items))
	for i, in := range items {
		fe := validateAsset(in)
		if !fe.Empty() {
			failures = append(failures, itemFailure(path, i, nil, fe))
			continue
		}
		rows = append(rows, &types.Asset{
			ID:          uuid.New(),
			BorrowerID:  borrowerID,
			GuarantorID: guarantorID,
			AssetType:   in.AssetType,
			Description: in.Description,
			Value:       decOrZero(in.Value),
		})
	}
	if _, err := s.repos.Assets.Create(ctx, tx, rows); err != nil {
		return nil, err
	}
	return failures, nil
}

func (s *applicationService) replaceOwnedLiabilities(ctx context.Context, tx *gorm.DB, borrowerID, guarantorID *uuid.UUID, path string, items []LiabilityInput) ([]types.ItemFailure, error) {
	if borrowerID != nil {
		if err := s.repos.Liabilities.FullDeleteByBorrowerIDs(ctx, tx, []uuid.UUID{*borrowerID}); err != nil {
			return nil, err
		}
	} else {
		if err := s.repos.Liabilities.FullDeleteByGuarantorIDs(ctx, tx, []uuid.UUID{*guarantorID}); err != nil {
			return nil, err
		}
	}
	var failures []types.ItemFailure
	rows := make([]*types.Liability, 0, len(items))
	for i, in := range items {
		fe := validateLiability(in)
		if !fe.Empty() {
			failures = append(failures, itemFailure(path, i, nil, fe))
			continue
		}
		rows = append(rows, &types.Liability{
			ID:             uuid.New(),
			BorrowerID:     borrowerID,
			GuarantorID:    guarantorID,
			LiabilityType:  in.LiabilityType,
			Description:    in.Description,
			Amount:         decOrZero(in.Amount),
			MonthlyPayment: decOrZero(in.MonthlyPayment),
		})
	}
	if _, err := s.repos.Liabilities.Create(ctx, tx, rows); err != nil {
		return nil, err
	}
	return failures, nil
}

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/nurpe/careops-billing/internal/model"
	"github.com/nurpe/careops-billing/internal/repository"
)

// PreviewRateChange shows the rates the request would produce without writing
// anything.
func (s *ContractService) PreviewRateChange(ctx context.Context, req model.RateChangeRequest) ([]model.RateChangePreview, error) {
	_, previews, err := s.planRateChange(ctx, req)
	if err != nil {
		return nil, err
	}
	return previews, nil
}

// ApplyRateChange writes the new rates to every selected contract.
func (s *ContractService) ApplyRateChange(ctx context.Context, req model.RateChangeRequest) ([]model.RateChangePreview, error) {
	contracts, previews, err := s.planRateChange(ctx, req)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Reason) == "" {
		return nil, fmt.Errorf("%w: reason is required", ErrInvalidInput)
	}
	if req.EffectiveFrom.IsZero() {
		return nil, fmt.Errorf("%w: effective_from is required", ErrInvalidInput)
	}

	for i := range contracts {
		p := previews[i]
		contracts[i].SharedRate = p.NewSharedRate
		contracts[i].OneToOneRate = p.NewOneToOneRate
		contracts[i].TwoToOneRate = p.NewTwoToOneRate
		if p.NewNightRate != nil {
			rate := *p.NewNightRate
			contracts[i].NightRate = &rate
		}
	}
	if err := s.contracts.UpdateContracts(ctx, contracts); err != nil {
		return nil, translate(err)
	}
	s.log.Info().
		Str("workflow", string(req.Workflow)).
		Str("method", string(req.Method)).
		Int("contracts", len(contracts)).
		Time("effective_from", req.EffectiveFrom).
		Str("reason", req.Reason).
		Msg("rate change applied")
	return previews, nil
}

func (s *ContractService) planRateChange(ctx context.Context, req model.RateChangeRequest) ([]model.Contract, []model.RateChangePreview, error) {
	if err := validateRateChange(req); err != nil {
		return nil, nil, err
	}
	contracts, err := s.selectContracts(ctx, req)
	if err != nil {
		return nil, nil, err
	}

	previews := make([]model.RateChangePreview, 0, len(contracts))
	for _, c := range contracts {
		preview := previewRates(c, req)
		rates := []float64{preview.NewSharedRate, preview.NewOneToOneRate, preview.NewTwoToOneRate}
		if preview.NewNightRate != nil {
			rates = append(rates, *preview.NewNightRate)
		}
		for _, rate := range rates {
			if rate < 0 {
				return nil, nil, fmt.Errorf("%w: rate change makes %s negative", ErrInvalidInput, c.ID)
			}
		}
		previews = append(previews, preview)
	}
	return contracts, previews, nil
}

func validateRateChange(req model.RateChangeRequest) error {
	if !req.ApplyToShared && !req.ApplyToOneToOne && !req.ApplyToTwoToOne && !req.ApplyToNight {
		return fmt.Errorf("%w: select at least one support type", ErrInvalidInput)
	}
	switch req.Method {
	case model.RateChangePercentage:
		if req.PercentageIncrease <= -100 {
			return fmt.Errorf("%w: percentage must be above -100", ErrInvalidInput)
		}
	case model.RateChangeFixed:
		fixed := []struct {
			apply bool
			rate  float64
		}{
			{req.ApplyToShared, req.NewSharedRate},
			{req.ApplyToOneToOne, req.NewOneToOneRate},
			{req.ApplyToTwoToOne, req.NewTwoToOneRate},
			{req.ApplyToNight, req.NewNightRate},
		}
		for _, f := range fixed {
			if f.apply && f.rate < 0 {
				return fmt.Errorf("%w: fixed rates must be non-negative", ErrInvalidInput)
			}
		}
	default:
		return fmt.Errorf("%w: unknown method %q", ErrInvalidInput, req.Method)
	}
	return nil
}

// selectContracts resolves the request's scope. Authority and lot workflows
// cover active contracts only; an explicit id list narrows that scope.
func (s *ContractService) selectContracts(ctx context.Context, req model.RateChangeRequest) ([]model.Contract, error) {
	var scope []model.Contract
	switch req.Workflow {
	case model.RateChangeAuthority, model.RateChangeLot:
		if strings.TrimSpace(req.AuthorityID) == "" {
			return nil, fmt.Errorf("%w: authority_id is required", ErrInvalidInput)
		}
		filter := repository.ContractFilter{AuthorityID: req.AuthorityID, Status: model.ContractStatusActive}
		if req.Workflow == model.RateChangeLot {
			if strings.TrimSpace(req.LotName) == "" {
				return nil, fmt.Errorf("%w: lot_name is required", ErrInvalidInput)
			}
			filter.LotName = req.LotName
		}
		contracts, err := s.contracts.ListContracts(ctx, filter)
		if err != nil {
			return nil, err
		}
		scope = contracts
	case model.RateChangeIndividual:
		if len(req.ContractIDs) != 1 {
			return nil, fmt.Errorf("%w: individual workflow takes exactly one contract", ErrInvalidInput)
		}
		contract, err := s.contracts.GetContract(ctx, req.ContractIDs[0])
		if err != nil {
			return nil, translate(err)
		}
		if !contract.IsActive() {
			return nil, fmt.Errorf("%w: contract %s is terminated", ErrInvalidState, contract.ID)
		}
		return []model.Contract{*contract}, nil
	default:
		return nil, fmt.Errorf("%w: unknown workflow %q", ErrInvalidInput, req.Workflow)
	}

	if len(req.ContractIDs) == 0 {
		if len(scope) == 0 {
			return nil, fmt.Errorf("%w: no active contracts in scope", ErrInvalidInput)
		}
		return scope, nil
	}

	byID := make(map[string]model.Contract, len(scope))
	for _, c := range scope {
		byID[c.ID] = c
	}
	selected := make([]model.Contract, 0, len(req.ContractIDs))
	for _, id := range req.ContractIDs {
		c, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: contract %s is outside the selected scope", ErrInvalidInput, id)
		}
		selected = append(selected, c)
		delete(byID, id)
	}
	return selected, nil
}

func previewRates(c model.Contract, req model.RateChangeRequest) model.RateChangePreview {
	adjust := func(apply bool, old, fixed float64) float64 {
		if !apply {
			return old
		}
		if req.Method == model.RateChangePercentage {
			return roundMoney(old * (1 + req.PercentageIncrease/100))
		}
		return roundMoney(fixed)
	}

	preview := model.RateChangePreview{
		ContractID:      c.ID,
		ServiceUserName: c.ServiceUserName,
		OldSharedRate:   c.SharedRate,
		NewSharedRate:   adjust(req.ApplyToShared, c.SharedRate, req.NewSharedRate),
		OldOneToOneRate: c.OneToOneRate,
		NewOneToOneRate: adjust(req.ApplyToOneToOne, c.OneToOneRate, req.NewOneToOneRate),
		OldTwoToOneRate: c.TwoToOneRate,
		NewTwoToOneRate: adjust(req.ApplyToTwoToOne, c.TwoToOneRate, req.NewTwoToOneRate),
	}
	if c.NightRate != nil {
		oldNight := *c.NightRate
		newNight := adjust(req.ApplyToNight, oldNight, req.NewNightRate)
		preview.OldNightRate = &oldNight
		preview.NewNightRate = &newNight
	}
	preview.SharedChange = roundMoney(preview.NewSharedRate - preview.OldSharedRate)
	preview.OneToOneChange = roundMoney(preview.NewOneToOneRate - preview.OldOneToOneRate)
	preview.TwoToOneChange = roundMoney(preview.NewTwoToOneRate - preview.OldTwoToOneRate)
	return preview
}

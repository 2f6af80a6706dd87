package repository

import (
	"context"

	"github.com/nurpe/careops-billing/internal/model"
)

// ContractFilter narrows ListContracts. Zero values match everything.
type ContractFilter struct {
	AuthorityID string
	LotName     string
	Status      model.ContractStatus
}

func (f ContractFilter) matches(c model.Contract) bool {
	if f.AuthorityID != "" && c.Authority.ID != f.AuthorityID {
		return false
	}
	if f.LotName != "" && c.LotName != f.LotName {
		return false
	}
	if f.Status != "" && c.Status != f.Status {
		return false
	}
	return true
}

func (s *Store) ListContracts(ctx context.Context, filter ContractFilter) ([]model.Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []model.Contract
	for _, item := range s.contracts {
		if filter.matches(item) {
			result = append(result, cloneContract(item))
		}
	}
	return result, nil
}

func (s *Store) GetContract(ctx context.Context, id string) (*model.Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pos := indexOf(s.contracts, func(item model.Contract) bool { return item.ID == id })
	if pos < 0 {
		return nil, ErrNotFound
	}
	contract := cloneContract(s.contracts[pos])
	return &contract, nil
}

func (s *Store) CreateContract(ctx context.Context, contract model.Contract) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if indexOf(s.contracts, func(item model.Contract) bool { return item.ID == contract.ID }) >= 0 {
		return ErrConflict
	}
	s.contracts = append(s.contracts, cloneContract(contract))
	return nil
}

func (s *Store) UpdateContract(ctx context.Context, contract model.Contract) error {
	return s.UpdateContracts(ctx, []model.Contract{contract})
}

// UpdateContracts replaces several contracts at once. Nothing is written when
// any of them is unknown.
func (s *Store) UpdateContracts(ctx context.Context, contracts []model.Contract) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	positions := make([]int, len(contracts))
	for i, contract := range contracts {
		id := contract.ID
		pos := indexOf(s.contracts, func(item model.Contract) bool { return item.ID == id })
		if pos < 0 {
			return ErrNotFound
		}
		positions[i] = pos
	}
	for i, pos := range positions {
		s.contracts[pos] = cloneContract(contracts[i])
	}
	return nil
}

func cloneContract(c model.Contract) model.Contract {
	if c.Placement != nil {
		placement := *c.Placement
		c.Placement = &placement
	}
	if c.NightHoursPerWeek != nil {
		hours := *c.NightHoursPerWeek
		c.NightHoursPerWeek = &hours
	}
	if c.NightRate != nil {
		rate := *c.NightRate
		c.NightRate = &rate
	}
	if c.TerminatedDate != nil {
		terminated := *c.TerminatedDate
		c.TerminatedDate = &terminated
	}
	return c
}

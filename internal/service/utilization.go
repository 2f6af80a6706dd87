package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/nurpe/careops-billing/internal/model"
	"github.com/nurpe/careops-billing/internal/repository"
)

// PlacementService answers occupancy questions about care services:
// utilization, placement recommendations and stacking estimates.
type PlacementService struct {
	services  ServiceRepository
	contracts ContractRepository
	policy    Policy
	reasoning ReasoningFunc
	log       zerolog.Logger
}

func NewPlacementService(services ServiceRepository, contracts ContractRepository, policy Policy, log zerolog.Logger) *PlacementService {
	return &PlacementService{
		services:  services,
		contracts: contracts,
		policy:    policy,
		reasoning: DefaultReasoning,
		log:       log,
	}
}

// WithReasoning swaps the reasoning text used for recommendations.
func (s *PlacementService) WithReasoning(fn ReasoningFunc) *PlacementService {
	if fn != nil {
		s.reasoning = fn
	}
	return s
}

func (s *PlacementService) ComputeUtilization(ctx context.Context, serviceID string) (*model.ServiceUtilization, error) {
	if serviceID == "" {
		return nil, fmt.Errorf("%w: service id is required", ErrInvalidInput)
	}
	service, err := s.services.GetService(ctx, serviceID)
	if err != nil {
		return nil, translate(err)
	}
	contracts, err := s.contractIndex(ctx)
	if err != nil {
		return nil, err
	}
	util, err := s.utilizationFor(ctx, *service, contracts)
	if err != nil {
		return nil, err
	}
	return &util, nil
}

// ComputeAllUtilizations returns one snapshot per service in store order.
func (s *PlacementService) ComputeAllUtilizations(ctx context.Context) ([]model.ServiceUtilization, error) {
	services, err := s.services.ListServices(ctx)
	if err != nil {
		return nil, err
	}
	contracts, err := s.contractIndex(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]model.ServiceUtilization, 0, len(services))
	for _, service := range services {
		util, err := s.utilizationFor(ctx, service, contracts)
		if err != nil {
			return nil, err
		}
		result = append(result, util)
	}
	return result, nil
}

func (s *PlacementService) utilizationFor(ctx context.Context, service model.Service, contracts map[string]model.Contract) (model.ServiceUtilization, error) {
	assignments, err := s.services.ListActiveAssignments(ctx, service.ID)
	if err != nil {
		return model.ServiceUtilization{}, err
	}
	return computeUtilization(service, assignments, contracts, s.policy), nil
}

func (s *PlacementService) contractIndex(ctx context.Context) (map[string]model.Contract, error) {
	contracts, err := s.contracts.ListContracts(ctx, repository.ContractFilter{})
	if err != nil {
		return nil, err
	}
	index := make(map[string]model.Contract, len(contracts))
	for _, contract := range contracts {
		index[contract.ID] = contract
	}
	return index, nil
}

// computeUtilization aggregates a service's active assignments. Residents whose
// contract cannot be found contribute zero hours. Vacant rooms go negative when
// the service is over-assigned.
func computeUtilization(service model.Service, assignments []model.RoomAssignment, contracts map[string]model.Contract, policy Policy) model.ServiceUtilization {
	residents := make([]model.Resident, 0, len(assignments))
	var shared, oneToOne, twoToOne float64
	for _, assignment := range assignments {
		resident := model.Resident{
			RoomNumber:      assignment.RoomNumber,
			ServiceUserName: assignment.ServiceUserName,
			ContractID:      assignment.ContractID,
		}
		if contract, ok := contracts[assignment.ContractID]; ok {
			resident.AuthorityID = contract.Authority.ID
			resident.SharedHours = contract.SharedHoursPerWeek
			resident.OneToOneHours = contract.OneToOneHoursPerWeek
			resident.TwoToOneHours = contract.TwoToOneHoursPerWeek
		}
		shared += resident.SharedHours
		oneToOne += resident.OneToOneHours
		twoToOne += resident.TwoToOneHours
		residents = append(residents, resident)
	}

	occupied := len(assignments)
	occupancyRate := 0.0
	if service.TotalRooms > 0 {
		occupancyRate = float64(occupied) / float64(service.TotalRooms) * 100
	}
	rating, score := classifyEfficiency(occupied, shared, policy)

	return model.ServiceUtilization{
		ServiceID:           service.ID,
		ServiceName:         service.Name,
		Address:             service.Address,
		RegionID:            service.Region.ID,
		RegionName:          service.Region.Name,
		TotalRooms:          service.TotalRooms,
		OccupiedRooms:       occupied,
		VacantRooms:         service.TotalRooms - occupied,
		OccupancyRate:       occupancyRate,
		TotalSharedHours:    shared,
		TotalOneToOneHours:  oneToOne,
		TotalTwoToOneHours:  twoToOne,
		EfficiencyRating:    rating,
		EfficiencyScore:     score,
		EstimatedWeeklyCost: (shared + oneToOne + twoToOne) * policy.FlatHourlyRate,
		Residents:           residents,
	}
}

// classifyEfficiency applies the rating ladder; the first matching rung wins.
func classifyEfficiency(occupied int, sharedHours float64, policy Policy) (model.EfficiencyRating, float64) {
	switch {
	case occupied >= policy.HighEfficiencyMinResidents && sharedHours > policy.HighEfficiencyMinSharedHours:
		return model.EfficiencyHigh, policy.HighEfficiencyBaseScore + float64(occupied)*policy.HighEfficiencyPerResident
	case occupied == 2:
		return model.EfficiencyMedium, policy.MediumEfficiencyScore
	case occupied == 1:
		return model.EfficiencyLow, policy.LowEfficiencyScore
	default:
		return model.EfficiencyLow, 0
	}
}

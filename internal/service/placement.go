package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/nurpe/careops-billing/internal/model"
)

// ReasoningFunc explains a recommendation given the number of residents the
// candidate service already houses.
type ReasoningFunc func(occupiedRooms int) string

const (
	ReasonHighUtilization = "High shared staff utilization - multiple residents can share support staff"
	ReasonGoodUtilization = "Good utilization - shared staff already present"
	ReasonLowUtilization  = "Low utilization - limited shared staff synergy"
	ReasonDedicatedStaff  = "Would require dedicated staff for single resident"
)

func DefaultReasoning(occupiedRooms int) string {
	switch {
	case occupiedRooms >= 3:
		return ReasonHighUtilization
	case occupiedRooms == 2:
		return ReasonGoodUtilization
	case occupiedRooms == 1:
		return ReasonLowUtilization
	default:
		return ReasonDedicatedStaff
	}
}

// RecommendPlacements scores every service with a vacant room for the
// prospective contract and returns them best first. Equal scores keep store
// order.
func (s *PlacementService) RecommendPlacements(ctx context.Context, req model.PlacementRequest) ([]model.PlacementRecommendation, error) {
	req.RegionID = strings.TrimSpace(req.RegionID)
	req.AuthorityID = strings.TrimSpace(req.AuthorityID)
	if req.RegionID == "" || req.AuthorityID == "" {
		return nil, fmt.Errorf("%w: region_id and authority_id are required", ErrInvalidInput)
	}
	if req.SharedHours < 0 || req.OneToOneHours < 0 {
		return nil, fmt.Errorf("%w: hours must be non-negative", ErrInvalidInput)
	}

	services, err := s.services.ListServices(ctx)
	if err != nil {
		return nil, err
	}
	contracts, err := s.contractIndex(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]model.PlacementRecommendation, 0, len(services))
	for _, service := range services {
		util, err := s.utilizationFor(ctx, service, contracts)
		if err != nil {
			return nil, err
		}
		if util.VacantRooms <= 0 {
			continue
		}
		result = append(result, scorePlacement(service, util, req, s.policy, s.reasoning))
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].EfficiencyScore > result[j].EfficiencyScore
	})

	s.log.Debug().
		Str("region_id", req.RegionID).
		Str("authority_id", req.AuthorityID).
		Int("candidates", len(result)).
		Msg("placement recommendations computed")
	return result, nil
}

func scorePlacement(service model.Service, util model.ServiceUtilization, req model.PlacementRequest, policy Policy, reasoning ReasoningFunc) model.PlacementRecommendation {
	score := 0.0
	if util.TotalRooms > 0 {
		score += float64(util.VacantRooms) / float64(util.TotalRooms) * policy.VacancyWeight
	}
	score += math.Min(float64(util.OccupiedRooms)*policy.SynergyPerResident, policy.SynergyCap)
	if service.Region.ID == req.RegionID {
		score += policy.RegionMatchBonus
	}
	for _, resident := range util.Residents {
		if resident.AuthorityID == req.AuthorityID {
			score += policy.AuthorityMatchBonus
			break
		}
	}

	savings := 0.0
	if util.OccupiedRooms > 0 {
		savings = req.SharedHours * policy.FlatHourlyRate * policy.WeeksPerYear * policy.PlacementSavingsFactor
	}

	return model.PlacementRecommendation{
		ServiceID:              util.ServiceID,
		ServiceName:            util.ServiceName,
		Address:                util.Address,
		RegionName:             util.RegionName,
		AvailableRooms:         util.VacantRooms,
		VacantRoomNumbers:      vacantRooms(service, util.Residents),
		CurrentOccupancy:       util.OccupiedRooms,
		CurrentSharedHours:     util.TotalSharedHours,
		NewOccupancy:           util.OccupiedRooms + 1,
		NewSharedHours:         util.TotalSharedHours + req.SharedHours,
		EfficiencyScore:        int(math.Round(score)),
		EstimatedAnnualSavings: math.Round(savings),
		Reasoning:              reasoning(util.OccupiedRooms),
		Recommendation:         recommendationTier(score, policy),
	}
}

func recommendationTier(score float64, policy Policy) model.RecommendationTier {
	switch {
	case score >= policy.HighlyRecommendedScore:
		return model.TierHighlyRecommended
	case score >= policy.SuitableScore:
		return model.TierSuitable
	default:
		return model.TierNotRecommended
	}
}

// vacantRooms lists the service's room labels not held by a current resident.
// Labels are compared by exact string match.
func vacantRooms(service model.Service, residents []model.Resident) []string {
	occupied := make(map[string]struct{}, len(residents))
	for _, resident := range residents {
		occupied[resident.RoomNumber] = struct{}{}
	}
	vacant := make([]string, 0, service.TotalRooms)
	for _, label := range service.RoomLabels() {
		if _, taken := occupied[label]; !taken {
			vacant = append(vacant, label)
		}
	}
	return vacant
}

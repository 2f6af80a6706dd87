package service

import (
	"context"
	"math"

	"github.com/nurpe/careops-billing/internal/model"
)

func (s *PlacementService) ComputeStacking(ctx context.Context, serviceID string) (*model.StackingAnalysis, error) {
	util, err := s.ComputeUtilization(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	analysis := computeStacking(*util, s.policy)
	return &analysis, nil
}

// computeStacking compares one staff hour per resident hour against stacked
// cover. The floor can exceed the stacked share for lightly used services, so
// the savings figures may be negative; they are reported as is.
func computeStacking(util model.ServiceUtilization, policy Policy) model.StackingAnalysis {
	current := util.TotalSharedHours
	stacked := math.Max(util.TotalSharedHours*policy.StackingFactor, policy.StackingFloorHours)

	currentCost := current * policy.FlatHourlyRate
	stackedCost := stacked * policy.FlatHourlyRate
	weekly := currentCost - stackedCost

	return model.StackingAnalysis{
		ServiceID:         util.ServiceID,
		CurrentStaffHours: current,
		CurrentWeeklyCost: currentCost,
		StackedStaffHours: stacked,
		StackedWeeklyCost: stackedCost,
		HoursSaved:        current - stacked,
		WeeklySavings:     weekly,
		AnnualSavings:     weekly * policy.WeeksPerYear,
	}
}

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/careops-billing/internal/model"
)

func TestComputeStackingAtFloor(t *testing.T) {
	analysis := computeStacking(model.ServiceUtilization{ServiceID: "s", TotalSharedHours: 50}, DefaultPolicy())

	assert.Equal(t, 50.0, analysis.CurrentStaffHours)
	assert.Equal(t, 40.0, analysis.StackedStaffHours)
	assert.Equal(t, 10.0, analysis.HoursSaved)
	assert.Equal(t, 180.0, analysis.WeeklySavings)
	assert.Equal(t, 9360.0, analysis.AnnualSavings)
	assert.Equal(t, 900.0, analysis.CurrentWeeklyCost)
	assert.Equal(t, 720.0, analysis.StackedWeeklyCost)
}

func TestComputeStackingIsNotClamped(t *testing.T) {
	analysis := computeStacking(model.ServiceUtilization{TotalSharedHours: 20}, DefaultPolicy())

	assert.Equal(t, 40.0, analysis.StackedStaffHours)
	assert.Equal(t, -20.0, analysis.HoursSaved)
	assert.Equal(t, -360.0, analysis.WeeklySavings)
	assert.Equal(t, -360.0*52, analysis.AnnualSavings)
}

func TestComputeStackingForSeededService(t *testing.T) {
	svc := newPlacementService(seededStore(t))

	analysis, err := svc.ComputeStacking(context.Background(), "service-1")
	require.NoError(t, err)
	assert.Equal(t, "service-1", analysis.ServiceID)
	assert.Equal(t, 110.0, analysis.CurrentStaffHours)
	assert.InDelta(t, 40.0, analysis.StackedStaffHours, 1e-9)
	assert.GreaterOrEqual(t, analysis.StackedStaffHours, 40.0)

	_, err = svc.ComputeStacking(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/careops-billing/internal/model"
)

func TestComputeUtilizationHighEfficiency(t *testing.T) {
	svc := newPlacementService(seededStore(t))

	util, err := svc.ComputeUtilization(context.Background(), "service-1")
	require.NoError(t, err)

	assert.Equal(t, 4, util.TotalRooms)
	assert.Equal(t, 3, util.OccupiedRooms)
	assert.Equal(t, 1, util.VacantRooms)
	assert.Equal(t, 75.0, util.OccupancyRate)
	assert.Equal(t, 110.0, util.TotalSharedHours)
	assert.Equal(t, 55.0, util.TotalOneToOneHours)
	assert.Equal(t, 10.0, util.TotalTwoToOneHours)
	assert.Equal(t, model.EfficiencyHigh, util.EfficiencyRating)
	assert.Equal(t, 94.0, util.EfficiencyScore)
	assert.Equal(t, 175.0*18, util.EstimatedWeeklyCost)
	require.Len(t, util.Residents, 3)
	assert.Equal(t, "Room 1", util.Residents[0].RoomNumber)
	assert.Equal(t, "auth-1", util.Residents[0].AuthorityID)
}

func TestComputeUtilizationIsIdempotent(t *testing.T) {
	svc := newPlacementService(seededStore(t))
	ctx := context.Background()

	first, err := svc.ComputeAllUtilizations(ctx)
	require.NoError(t, err)
	second, err := svc.ComputeAllUtilizations(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	for _, util := range first {
		assert.Equal(t, util.TotalRooms, util.OccupiedRooms+util.VacantRooms, util.ServiceID)
	}
}

func TestComputeUtilizationErrors(t *testing.T) {
	svc := newPlacementService(seededStore(t))

	_, err := svc.ComputeUtilization(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.ComputeUtilization(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestComputeUtilizationMissingContractCountsZeroHours(t *testing.T) {
	service := model.Service{ID: "s", TotalRooms: 2, RoomNaming: model.RoomNamingNumeric}
	assignments := []model.RoomAssignment{
		{ServiceID: "s", RoomNumber: "Room 1", ContractID: "gone"},
		{ServiceID: "s", RoomNumber: "Room 2", ContractID: "gone-too"},
		{ServiceID: "s", RoomNumber: "Room 3", ContractID: "extra"},
	}

	util := computeUtilization(service, assignments, map[string]model.Contract{}, DefaultPolicy())

	assert.Equal(t, 3, util.OccupiedRooms)
	assert.Equal(t, -1, util.VacantRooms)
	assert.Equal(t, 0.0, util.TotalSharedHours)
	assert.Equal(t, 150.0, util.OccupancyRate)
	assert.Equal(t, model.EfficiencyLow, util.EfficiencyRating)
	assert.Equal(t, 0.0, util.EfficiencyScore)
}

func TestClassifyEfficiency(t *testing.T) {
	policy := DefaultPolicy()
	cases := []struct {
		name     string
		occupied int
		shared   float64
		rating   model.EfficiencyRating
		score    float64
	}{
		{"high", 4, 120, model.EfficiencyHigh, 97},
		{"three residents at threshold", 3, 80, model.EfficiencyLow, 0},
		{"two residents", 2, 200, model.EfficiencyMedium, 60},
		{"one resident", 1, 40, model.EfficiencyLow, 30},
		{"empty", 0, 0, model.EfficiencyLow, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rating, score := classifyEfficiency(tc.occupied, tc.shared, policy)
			assert.Equal(t, tc.rating, rating)
			assert.Equal(t, tc.score, score)
		})
	}
}

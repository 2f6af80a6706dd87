package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/careops-billing/internal/model"
)

func TestScorePlacementSuitableScenario(t *testing.T) {
	service := model.Service{ID: "svc", Region: model.Reference{ID: "region-1"}, TotalRooms: 4, RoomNaming: model.RoomNamingNumeric}
	util := model.ServiceUtilization{
		ServiceID:     "svc",
		TotalRooms:    4,
		OccupiedRooms: 2,
		VacantRooms:   1,
		Residents: []model.Resident{
			{RoomNumber: "Room 1", AuthorityID: "auth-9"},
			{RoomNumber: "Room 2", AuthorityID: "auth-9"},
		},
	}
	req := model.PlacementRequest{SharedHours: 20, RegionID: "region-1", AuthorityID: "auth-1"}

	rec := scorePlacement(service, util, req, DefaultPolicy(), DefaultReasoning)

	assert.Equal(t, 48, rec.EfficiencyScore)
	assert.Equal(t, model.TierSuitable, rec.Recommendation)
	assert.Equal(t, ReasonGoodUtilization, rec.Reasoning)
	assert.Equal(t, 5616.0, rec.EstimatedAnnualSavings)
	assert.Equal(t, []string{"Room 3", "Room 4"}, rec.VacantRoomNumbers)
}

func TestRecommendPlacementsRanksSeededServices(t *testing.T) {
	svc := newPlacementService(seededStore(t))

	recs, err := svc.RecommendPlacements(context.Background(), model.PlacementRequest{
		SharedHours: 20,
		RegionID:    "region-1",
		AuthorityID: "auth-1",
	})
	require.NoError(t, err)
	require.Len(t, recs, 4)

	ids := make([]string, len(recs))
	for i, rec := range recs {
		ids[i] = rec.ServiceID
		assert.Greater(t, rec.AvailableRooms, 0)
		assert.GreaterOrEqual(t, rec.EfficiencyScore, 0)
		assert.LessOrEqual(t, rec.EfficiencyScore, 100)
	}
	assert.Equal(t, []string{"service-1", "service-3", "service-2", "service-4"}, ids)

	top := recs[0]
	assert.Equal(t, 68, top.EfficiencyScore)
	assert.Equal(t, model.TierSuitable, top.Recommendation)
	assert.Equal(t, ReasonHighUtilization, top.Reasoning)
	assert.Equal(t, []string{"Room 4"}, top.VacantRoomNumbers)
	assert.Equal(t, 4, top.NewOccupancy)
	assert.Equal(t, 130.0, top.NewSharedHours)

	oak := recs[1]
	assert.Equal(t, 64, oak.EfficiencyScore)
	assert.Equal(t, []string{"Unit B", "Unit C", "Unit D", "Unit E"}, oak.VacantRoomNumbers)

	empty := recs[3]
	assert.Equal(t, 0.0, empty.EstimatedAnnualSavings)
	assert.Equal(t, ReasonDedicatedStaff, empty.Reasoning)
	assert.Equal(t, model.TierNotRecommended, empty.Recommendation)
}

func TestRecommendPlacementsSkipsFullServices(t *testing.T) {
	store := seededStore(t)
	contracts := newContractService(store)
	ctx := context.Background()
	created, err := contracts.CreateContract(ctx, CreateContractInput{
		Authority:       model.Reference{ID: "auth-1", Name: "City Council"},
		Region:          model.Reference{ID: "region-1", Name: "North"},
		ServiceUserName: "New Resident",
		CycleStartDate:  fixedNow,
	})
	require.NoError(t, err)
	_, err = contracts.AssignRoom(ctx, created.ID, "service-1", "Room 4")
	require.NoError(t, err)

	recs, err := newPlacementService(store).RecommendPlacements(ctx, model.PlacementRequest{RegionID: "region-1", AuthorityID: "auth-1"})
	require.NoError(t, err)
	for _, rec := range recs {
		assert.NotEqual(t, "service-1", rec.ServiceID)
	}
}

func TestRecommendPlacementsValidation(t *testing.T) {
	svc := newPlacementService(seededStore(t))
	ctx := context.Background()

	_, err := svc.RecommendPlacements(ctx, model.PlacementRequest{AuthorityID: "auth-1"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.RecommendPlacements(ctx, model.PlacementRequest{RegionID: "region-1", AuthorityID: "auth-1", SharedHours: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestWithReasoningOverridesText(t *testing.T) {
	svc := newPlacementService(seededStore(t)).WithReasoning(func(int) string { return "custom" })

	recs, err := svc.RecommendPlacements(context.Background(), model.PlacementRequest{RegionID: "region-2", AuthorityID: "auth-2"})
	require.NoError(t, err)
	require.NotEmpty(t, recs)
	for _, rec := range recs {
		assert.Equal(t, "custom", rec.Reasoning)
	}
}

func TestRecommendationTierBands(t *testing.T) {
	policy := DefaultPolicy()
	assert.Equal(t, model.TierHighlyRecommended, recommendationTier(70, policy))
	assert.Equal(t, model.TierSuitable, recommendationTier(69.5, policy))
	assert.Equal(t, model.TierSuitable, recommendationTier(40, policy))
	assert.Equal(t, model.TierNotRecommended, recommendationTier(39.9, policy))
}

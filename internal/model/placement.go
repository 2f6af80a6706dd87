package model

type RecommendationTier string

const (
	TierHighlyRecommended RecommendationTier = "highly_recommended"
	TierSuitable          RecommendationTier = "suitable"
	TierNotRecommended    RecommendationTier = "not_recommended"
)

// PlacementRequest describes the support needs of a prospective contract.
type PlacementRequest struct {
	SharedHours   float64 `json:"shared_hours"`
	OneToOneHours float64 `json:"one_to_one_hours"`
	RegionID      string  `json:"region_id"`
	AuthorityID   string  `json:"authority_id"`
}

type PlacementRecommendation struct {
	ServiceID              string             `json:"service_id"`
	ServiceName            string             `json:"service_name"`
	Address                string             `json:"address"`
	RegionName             string             `json:"region_name"`
	AvailableRooms         int                `json:"available_rooms"`
	VacantRoomNumbers      []string           `json:"vacant_room_numbers"`
	CurrentOccupancy       int                `json:"current_occupancy"`
	CurrentSharedHours     float64            `json:"current_shared_hours"`
	NewOccupancy           int                `json:"new_occupancy"`
	NewSharedHours         float64            `json:"new_shared_hours"`
	EfficiencyScore        int                `json:"efficiency_score"`
	EstimatedAnnualSavings float64            `json:"estimated_annual_savings"`
	Reasoning              string             `json:"reasoning"`
	Recommendation         RecommendationTier `json:"recommendation"`
}

type StackingAnalysis struct {
	ServiceID         string  `json:"service_id"`
	CurrentStaffHours float64 `json:"current_staff_hours"`
	CurrentWeeklyCost float64 `json:"current_weekly_cost"`
	StackedStaffHours float64 `json:"stacked_staff_hours"`
	StackedWeeklyCost float64 `json:"stacked_weekly_cost"`
	HoursSaved        float64 `json:"hours_saved"`
	WeeklySavings     float64 `json:"weekly_savings"`
	AnnualSavings     float64 `json:"annual_savings"`
}

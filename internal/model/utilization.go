package model

type EfficiencyRating string

const (
	EfficiencyHigh   EfficiencyRating = "high"
	EfficiencyMedium EfficiencyRating = "medium"
	EfficiencyLow    EfficiencyRating = "low"
)

type Resident struct {
	RoomNumber      string  `json:"room_number"`
	ServiceUserName string  `json:"service_user_name"`
	ContractID      string  `json:"contract_id"`
	AuthorityID     string  `json:"authority_id,omitempty"`
	SharedHours     float64 `json:"shared_hours"`
	OneToOneHours   float64 `json:"one_to_one_hours"`
	TwoToOneHours   float64 `json:"two_to_one_hours"`
}

// ServiceUtilization is the occupancy and support-hour load of one service.
type ServiceUtilization struct {
	ServiceID           string           `json:"service_id"`
	ServiceName         string           `json:"service_name"`
	Address             string           `json:"address"`
	RegionID            string           `json:"region_id"`
	RegionName          string           `json:"region_name"`
	TotalRooms          int              `json:"total_rooms"`
	OccupiedRooms       int              `json:"occupied_rooms"`
	VacantRooms         int              `json:"vacant_rooms"`
	OccupancyRate       float64          `json:"occupancy_rate"`
	TotalSharedHours    float64          `json:"total_shared_hours"`
	TotalOneToOneHours  float64          `json:"total_one_to_one_hours"`
	TotalTwoToOneHours  float64          `json:"total_two_to_one_hours"`
	EfficiencyRating    EfficiencyRating `json:"efficiency_rating"`
	EfficiencyScore     float64          `json:"efficiency_score"`
	EstimatedWeeklyCost float64          `json:"estimated_weekly_cost"`
	Residents           []Resident       `json:"residents"`
}

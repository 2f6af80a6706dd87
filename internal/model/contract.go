package model

import "time"

type ContractStatus string

const (
	ContractStatusActive     ContractStatus = "active"
	ContractStatusTerminated ContractStatus = "terminated"
)

type SupportType string

const (
	SupportShared   SupportType = "shared"
	SupportOneToOne SupportType = "one_to_one"
	SupportTwoToOne SupportType = "two_to_one"
	SupportNight    SupportType = "night"
)

// Placement is the service room a contract is currently housed in.
type Placement struct {
	ServiceID   string `json:"service_id"`
	ServiceName string `json:"service_name"`
	RoomNumber  string `json:"room_number"`
}

type Contract struct {
	ID                   string         `json:"id"`
	Authority            Reference      `json:"authority"`
	Region               Reference      `json:"region"`
	LotName              string         `json:"lot_name"`
	ServiceUserName      string         `json:"service_user_name"`
	Placement            *Placement     `json:"placement,omitempty"`
	CycleStartDate       time.Time      `json:"cycle_start_date"`
	SharedHoursPerWeek   float64        `json:"shared_hours_per_week"`
	SharedRate           float64        `json:"shared_rate"`
	OneToOneHoursPerWeek float64        `json:"one_to_one_hours_per_week"`
	OneToOneRate         float64        `json:"one_to_one_rate"`
	TwoToOneHoursPerWeek float64        `json:"two_to_one_hours_per_week"`
	TwoToOneRate         float64        `json:"two_to_one_rate"`
	NightHoursPerWeek    *float64       `json:"night_hours_per_week,omitempty"`
	NightRate            *float64       `json:"night_rate,omitempty"`
	Status               ContractStatus `json:"status"`
	TerminatedDate       *time.Time     `json:"terminated_date,omitempty"`
	CreatedAt            time.Time      `json:"created_at"`
}

func (c Contract) IsActive() bool {
	return c.Status == ContractStatusActive
}

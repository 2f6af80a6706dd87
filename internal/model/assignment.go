package model

import "time"

type AssignmentStatus string

const (
	AssignmentStatusActive  AssignmentStatus = "active"
	AssignmentStatusVacated AssignmentStatus = "vacated"
)

// RoomAssignment links one contract to one room of a service.
type RoomAssignment struct {
	ID              string           `json:"id"`
	ServiceID       string           `json:"service_id"`
	ServiceName     string           `json:"service_name"`
	RoomNumber      string           `json:"room_number"`
	ContractID      string           `json:"contract_id"`
	ServiceUserName string           `json:"service_user_name"`
	AssignedDate    time.Time        `json:"assigned_date"`
	VacatedDate     *time.Time       `json:"vacated_date,omitempty"`
	Status          AssignmentStatus `json:"status"`
}

package model

import (
	"strconv"
	"time"
)

// RoomNaming decides how the rooms of a service are labelled.
type RoomNaming string

const (
	// RoomNamingNumeric labels rooms "Room 1" .. "Room N".
	RoomNamingNumeric RoomNaming = "numeric"
	// RoomNamingAlphabetic labels rooms "Unit A", "Unit B", ...
	RoomNamingAlphabetic RoomNaming = "alphabetic"
)

// Service is a physical care location with a fixed number of rooms.
type Service struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Address    string     `json:"address"`
	Region     Reference  `json:"region"`
	TotalRooms int        `json:"total_rooms"`
	RoomNaming RoomNaming `json:"room_naming"`
	CreatedAt  time.Time  `json:"created_at"`
}

// RoomLabels lists every room label of the service in order.
func (s Service) RoomLabels() []string {
	if s.TotalRooms <= 0 {
		return nil
	}
	labels := make([]string, s.TotalRooms)
	for i := range labels {
		labels[i] = s.RoomLabel(i + 1)
	}
	return labels
}

// RoomLabel returns the label of the n-th room (1-based). Alphabetic naming
// continues AA, AB, ... after Z.
func (s Service) RoomLabel(n int) string {
	if s.RoomNaming == RoomNamingAlphabetic {
		return "Unit " + alphaIndex(n)
	}
	return "Room " + strconv.Itoa(n)
}

// HasRoom reports whether label is one of the service's room labels.
func (s Service) HasRoom(label string) bool {
	for _, candidate := range s.RoomLabels() {
		if candidate == label {
			return true
		}
	}
	return false
}

func alphaIndex(n int) string {
	var out []byte
	for n > 0 {
		n--
		out = append([]byte{byte('A' + n%26)}, out...)
		n /= 26
	}
	return string(out)
}

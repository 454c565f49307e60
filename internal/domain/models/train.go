package models

import "time"

// Train is the inventory row for one origin/destination offering.
// TotalSeats is immutable after creation; AvailableSeats only ever moves
// through the reservation transaction and stays within [0, TotalSeats].
type Train struct {
	ID             int64     `json:"trainId"`
	Origin         string    `json:"origin"`
	Destination    string    `json:"destination"`
	TotalSeats     int       `json:"totalSeats"`
	AvailableSeats int       `json:"availableSeats"`
	CreatedAt      time.Time `json:"createdAt,omitempty"`
}

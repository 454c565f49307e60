package models

import "time"

const BookingStatusConfirmed = "confirmed"

// Booking is one confirmed reservation. Rows are immutable after insert;
// every row accounts for exactly one seat already deducted from its train.
type Booking struct {
	ID        string    `json:"bookingId"`
	TrainID   int64     `json:"trainId"`
	UserID    int64     `json:"userId"`
	SeatCount int       `json:"seatCount"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

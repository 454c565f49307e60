package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"railbook/internal/domain"
	"railbook/internal/domain/models"
	"railbook/internal/storage"
)

// ReservationService is the transaction manager for seat bookings. The
// store carries the atomic check-then-decrement-then-insert unit; this
// layer validates input, generates the booking identity, bounds the lock
// wait and enforces ownership on reads.
type ReservationService struct {
	Store storage.Store
	// LockWait bounds one reservation attempt end to end, including the
	// wait for the per-train lock. Zero means no bound.
	LockWait time.Duration
	Logger   zerolog.Logger
}

// ReserveSeat books exactly one seat on the train for the caller. On any
// failure nothing is mutated, so every error here is safe to surface
// directly: capacity exhaustion is terminal, conflicts are retryable.
func (s ReservationService) ReserveSeat(ctx context.Context, trainID, userID int64) (models.Booking, error) {
	if trainID <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "trainId", Msg: "train ID is required"}
	}
	if userID <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "userId", Msg: "caller identity is required"}
	}

	if s.LockWait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.LockWait)
		defer cancel()
	}

	booking := models.Booking{
		ID:        uuid.NewString(),
		TrainID:   trainID,
		UserID:    userID,
		SeatCount: 1,
		Status:    models.BookingStatusConfirmed,
	}

	booked, err := s.Store.ReserveSeat(ctx, booking)
	if err != nil {
		if domain.IsConflict(err) {
			s.Logger.Warn().Err(err).Int64("train_id", trainID).Msg("reservation conflict, safe to retry")
		}
		return models.Booking{}, err
	}

	s.Logger.Info().Str("booking_id", booked.ID).Int64("train_id", trainID).Int64("user_id", userID).Msg("seat booked")
	return booked, nil
}

// GetBooking returns a booking to its owner. A missing booking is a
// not-found; an existing booking owned by someone else is a forbidden. The
// two stay distinct on the wire (404 vs 403).
func (s ReservationService) GetBooking(ctx context.Context, bookingID string, callerID int64) (models.Booking, error) {
	if strings.TrimSpace(bookingID) == "" {
		return models.Booking{}, domain.ValidationError{Field: "bookingId", Msg: "booking ID is required"}
	}

	booking, err := s.Store.GetBooking(ctx, bookingID)
	if err != nil {
		return models.Booking{}, err
	}
	if booking.UserID != callerID {
		return models.Booking{}, domain.ForbiddenError{Resource: "booking"}
	}
	return booking, nil
}

// Package storage defines the persistence seam between the services and the
// database. Two implementations exist: storage/mysql for production and
// storage/memory for tests and local development.
package storage

import (
	"context"

	"railbook/internal/domain/models"
)

// Store handles persistence for users, train inventory and the booking
// ledger.
//
// ReserveSeat is the one operation with real consistency requirements: it
// must run the check-then-decrement-then-insert sequence for a single train
// as an atomic, isolated unit. No reader may ever observe a seat decrement
// without its booking row, or the reverse. Attempts on different trains must
// not serialize against each other.
type Store interface {
	CreateUser(ctx context.Context, u models.User) (models.User, error)
	// GetUserByLogin matches username or email, as the login form accepts
	// either.
	GetUserByLogin(ctx context.Context, login string) (models.User, error)

	CreateTrain(ctx context.Context, t models.Train) (models.Train, error)
	ListTrainsByRoute(ctx context.Context, origin, destination string) ([]models.Train, error)

	// ReserveSeat atomically checks b.TrainID's remaining capacity,
	// decrements it by one and persists b. Returns
	// domain.NotFoundError when the train does not exist,
	// domain.CapacityError when no seats remain and domain.ConflictError
	// when the commit cannot complete; in every failure case no partial
	// state survives.
	ReserveSeat(ctx context.Context, b models.Booking) (models.Booking, error)

	GetBooking(ctx context.Context, bookingID string) (models.Booking, error)
	GetTrain(ctx context.Context, trainID int64) (models.Train, error)
}

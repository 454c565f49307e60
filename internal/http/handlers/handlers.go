// Package handlers contains the gin request handlers. They validate request
// shape, hand validated fields plus the authenticated caller identity to the
// services, and translate results back onto the wire.
package handlers

import (
	"github.com/rs/zerolog"

	"railbook/internal/services"
)

type Handlers struct {
	Auth         services.AuthService
	Trains       services.TrainService
	Reservations services.ReservationService
	Tickets      services.TicketService
	Log          zerolog.Logger
}

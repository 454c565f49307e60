package services

import (
	"context"
	"strings"

	"railbook/internal/domain"
	"railbook/internal/domain/models"
	"railbook/internal/storage"
)

type TrainService struct {
	Store storage.Store
}

// Create adds a train route with its fixed seat pool. Available seats start
// equal to total and only the reservation transaction may move them after
// this point.
func (s TrainService) Create(ctx context.Context, origin, destination string, totalSeats int) (models.Train, error) {
	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)

	if origin == "" || destination == "" {
		return models.Train{}, domain.ValidationError{Msg: "source, destination, and total seats are required"}
	}
	if totalSeats <= 0 {
		return models.Train{}, domain.ValidationError{Field: "totalSeats", Msg: "total seats must be a positive integer"}
	}

	return s.Store.CreateTrain(ctx, models.Train{
		Origin:      origin,
		Destination: destination,
		TotalSeats:  totalSeats,
	})
}

func (s TrainService) Get(ctx context.Context, trainID int64) (models.Train, error) {
	if trainID <= 0 {
		return models.Train{}, domain.ValidationError{Field: "trainId", Msg: "train ID is required"}
	}
	return s.Store.GetTrain(ctx, trainID)
}

// Availability lists trains on a route. Sold-out trains stay in the listing
// with zero available seats; a route with no trains at all is a not-found,
// matching the public API contract.
func (s TrainService) Availability(ctx context.Context, origin, destination string) ([]models.Train, error) {
	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)

	if origin == "" || destination == "" {
		return nil, domain.ValidationError{Msg: "source and destination are required"}
	}

	trains, err := s.Store.ListTrainsByRoute(ctx, origin, destination)
	if err != nil {
		return nil, err
	}
	if len(trains) == 0 {
		return nil, domain.NotFoundError{Resource: "trains for the given source and destination"}
	}
	return trains, nil
}

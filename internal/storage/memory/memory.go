// Package memory provides an in-process Store used by tests and local
// development runs that have no MySQL at hand.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"railbook/internal/domain"
	"railbook/internal/domain/models"
)

// Store keeps everything in maps. Seat reservation takes a per-train
// exclusive lock for the whole check-then-act sequence, so the mutual
// exclusion contract matches the MySQL row lock: attempts on the same train
// serialize, attempts on different trains do not.
type Store struct {
	mu       sync.RWMutex
	users    map[int64]models.User
	trains   map[int64]models.Train
	bookings map[string]models.Booking
	locks    map[int64]chan struct{}

	nextUserID  int64
	nextTrainID int64
}

func New() *Store {
	return &Store{
		users:    make(map[int64]models.User),
		trains:   make(map[int64]models.Train),
		bookings: make(map[string]models.Booking),
		locks:    make(map[int64]chan struct{}),
	}
}

func (s *Store) CreateUser(_ context.Context, u models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return models.User{}, domain.ValidationError{Field: "username", Msg: "username or email already exists"}
		}
	}

	s.nextUserID++
	u.ID = s.nextUserID
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	s.users[u.ID] = u
	return u, nil
}

func (s *Store) GetUserByLogin(_ context.Context, login string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	login = strings.TrimSpace(login)
	for _, u := range s.users {
		if u.Username == login || u.Email == login {
			return u, nil
		}
	}
	return models.User{}, domain.NotFoundError{Resource: "user"}
}

func (s *Store) CreateTrain(_ context.Context, t models.Train) (models.Train, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextTrainID++
	t.ID = s.nextTrainID
	t.AvailableSeats = t.TotalSeats
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	s.trains[t.ID] = t

	lock := make(chan struct{}, 1)
	lock <- struct{}{}
	s.locks[t.ID] = lock
	return t, nil
}

func (s *Store) ListTrainsByRoute(_ context.Context, origin, destination string) ([]models.Train, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Train{}
	for _, t := range s.trains {
		if t.Origin == origin && t.Destination == destination {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *Store) GetTrain(_ context.Context, trainID int64) (models.Train, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.trains[trainID]
	if !ok {
		return models.Train{}, domain.NotFoundError{Resource: "train"}
	}
	return t, nil
}

// ReserveSeat serializes per train. Lock acquisition is bounded by ctx so a
// starved attempt fails with a retryable conflict instead of blocking
// forever.
func (s *Store) ReserveSeat(ctx context.Context, b models.Booking) (models.Booking, error) {
	s.mu.RLock()
	lock, ok := s.locks[b.TrainID]
	s.mu.RUnlock()
	if !ok {
		return models.Booking{}, domain.NotFoundError{Resource: "train"}
	}

	select {
	case <-lock:
	case <-ctx.Done():
		return models.Booking{}, domain.ConflictError{Msg: "timed out waiting for seat lock", Err: ctx.Err()}
	}
	defer func() { lock <- struct{}{} }()

	s.mu.Lock()
	defer s.mu.Unlock()

	train, ok := s.trains[b.TrainID]
	if !ok {
		return models.Booking{}, domain.NotFoundError{Resource: "train"}
	}
	if train.AvailableSeats < 1 {
		return models.Booking{}, domain.CapacityError{TrainID: b.TrainID}
	}
	if _, exists := s.bookings[b.ID]; exists {
		return models.Booking{}, domain.ConflictError{Msg: "duplicate booking id"}
	}

	train.AvailableSeats--
	s.trains[b.TrainID] = train

	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}
	s.bookings[b.ID] = b
	return b, nil
}

func (s *Store) GetBooking(_ context.Context, bookingID string) (models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[bookingID]
	if !ok {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	return b, nil
}

package mysql

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	driver "github.com/go-sql-driver/mysql"

	"railbook/internal/domain"
	"railbook/internal/domain/models"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return New(db), mock
}

func testBooking() models.Booking {
	return models.Booking{
		ID:        "5f0c9b52-9a58-4f83-b8de-2f6a9f6f8b11",
		TrainID:   7,
		UserID:    42,
		SeatCount: 1,
		Status:    models.BookingStatusConfirmed,
	}
}

func TestReserveSeat_Success(t *testing.T) {
	store, mock := newMockStore(t)
	b := testBooking()

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs(b.TrainID).
		WillReturnRows(sqlmock.NewRows([]string{"available_seats"}).AddRow(3))
	mock.ExpectExec("UPDATE trains SET available_seats").WithArgs(b.TrainID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	got, err := store.ReserveSeat(context.Background(), b)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if got.ID != b.ID || got.Status != models.BookingStatusConfirmed {
		t.Fatalf("unexpected booking returned: %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Fatalf("expected created_at to be set")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReserveSeat_TrainNotFound(t *testing.T) {
	store, mock := newMockStore(t)
	b := testBooking()

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs(b.TrainID).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := store.ReserveSeat(context.Background(), b)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

// When no seats remain the transaction aborts before touching anything:
// no decrement, no insert, only a rollback.
func TestReserveSeat_CapacityExhausted(t *testing.T) {
	store, mock := newMockStore(t)
	b := testBooking()

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs(b.TrainID).
		WillReturnRows(sqlmock.NewRows([]string{"available_seats"}).AddRow(0))
	mock.ExpectRollback()

	_, err := store.ReserveSeat(context.Background(), b)
	if !domain.IsCapacity(err) {
		t.Fatalf("expected capacity error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

// A failure between the decrement and the ledger insert must roll the
// decrement back; inventory and ledger never diverge.
func TestReserveSeat_InsertFailureRollsBackDecrement(t *testing.T) {
	store, mock := newMockStore(t)
	b := testBooking()

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs(b.TrainID).
		WillReturnRows(sqlmock.NewRows([]string{"available_seats"}).AddRow(1))
	mock.ExpectExec("UPDATE trains SET available_seats").WithArgs(b.TrainID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err := store.ReserveSeat(context.Background(), b)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReserveSeat_CommitFailureIsConflict(t *testing.T) {
	store, mock := newMockStore(t)
	b := testBooking()

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs(b.TrainID).
		WillReturnRows(sqlmock.NewRows([]string{"available_seats"}).AddRow(2))
	mock.ExpectExec("UPDATE trains SET available_seats").WithArgs(b.TrainID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit().WillReturnError(errors.New("deadlock detected"))

	_, err := store.ReserveSeat(context.Background(), b)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReserveSeat_DuplicateBookingID(t *testing.T) {
	store, mock := newMockStore(t)
	b := testBooking()

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs(b.TrainID).
		WillReturnRows(sqlmock.NewRows([]string{"available_seats"}).AddRow(2))
	mock.ExpectExec("UPDATE trains SET available_seats").WithArgs(b.TrainID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnError(&driver.MySQLError{Number: 1062, Message: "duplicate entry"})
	mock.ExpectRollback()

	_, err := store.ReserveSeat(context.Background(), b)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetBooking(t *testing.T) {
	store, mock := newMockStore(t)
	created := time.Date(2026, 8, 1, 9, 30, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT id, train_id, user_id").WithArgs("abc").
		WillReturnRows(sqlmock.NewRows([]string{"id", "train_id", "user_id", "seat_count", "status", "created_at"}).
			AddRow("abc", int64(7), int64(42), 1, "confirmed", created))

	got, err := store.GetBooking(context.Background(), "abc")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if got.UserID != 42 || got.TrainID != 7 || !got.CreatedAt.Equal(created) {
		t.Fatalf("unexpected booking: %+v", got)
	}
}

func TestGetBooking_NotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT id, train_id, user_id").WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := store.GetBooking(context.Background(), "missing")
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCreateUser_DuplicateIsValidation(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(&driver.MySQLError{Number: 1062, Message: "duplicate entry"})

	_, err := store.CreateUser(context.Background(), models.User{
		Username: "alice", Email: "alice@example.com", PasswordHash: "x", Role: "user",
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListTrainsByRoute_IncludesExhaustedTrains(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT id, origin, destination").WithArgs("A", "B").
		WillReturnRows(sqlmock.NewRows([]string{"id", "origin", "destination", "total_seats", "available_seats"}).
			AddRow(int64(1), "A", "B", 10, 0).
			AddRow(int64(2), "A", "B", 10, 4))

	trains, err := store.ListTrainsByRoute(context.Background(), "A", "B")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if len(trains) != 2 {
		t.Fatalf("expected 2 trains, got %d", len(trains))
	}
	if trains[0].AvailableSeats != 0 {
		t.Fatalf("sold-out train should still be listed with zero seats, got %d", trains[0].AvailableSeats)
	}
}

func TestCreateTrain_InitializesAvailableToTotal(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("INSERT INTO trains").WithArgs("A", "B", 12, 12).
		WillReturnResult(sqlmock.NewResult(5, 1))

	train, err := store.CreateTrain(context.Background(), models.Train{
		Origin: "A", Destination: "B", TotalSeats: 12,
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if train.ID != 5 || train.AvailableSeats != 12 {
		t.Fatalf("unexpected train: %+v", train)
	}
}

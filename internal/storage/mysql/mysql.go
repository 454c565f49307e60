// Package mysql implements storage.Store on a MySQL database. The seat
// reservation runs inside one transaction holding a SELECT ... FOR UPDATE
// row lock on the train, which is what makes the check-then-act sequence
// safe under concurrent demand.
package mysql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"

	"railbook/internal/domain"
	"railbook/internal/domain/models"
)

const dupEntryErrNo = 1062

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Open dials MySQL with the pool settings the service expects and verifies
// the connection before returning.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(10 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func (s *Store) CreateUser(ctx context.Context, u models.User) (models.User, error) {
	res, err := s.db.ExecContext(ctx, `
        INSERT INTO users (username, email, password_hash, role, created_at)
        VALUES (?, ?, ?, ?, NOW())
    `, u.Username, u.Email, u.PasswordHash, u.Role)
	if err != nil {
		if isDuplicate(err) {
			return models.User{}, domain.ValidationError{Field: "username", Msg: "username or email already exists", Err: err}
		}
		return models.User{}, domain.InternalError{Msg: "failed to save user", Err: err}
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.User{}, domain.InternalError{Msg: "failed to read user id", Err: err}
	}
	u.ID = id
	return u, nil
}

func (s *Store) GetUserByLogin(ctx context.Context, login string) (models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx, `
        SELECT id, username, email, password_hash, role
        FROM users
        WHERE username = ? OR email = ?
    `, login, login).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, domain.NotFoundError{Resource: "user", Err: err}
		}
		return models.User{}, domain.InternalError{Msg: "failed to query user", Err: err}
	}
	return u, nil
}

func (s *Store) CreateTrain(ctx context.Context, t models.Train) (models.Train, error) {
	res, err := s.db.ExecContext(ctx, `
        INSERT INTO trains (origin, destination, total_seats, available_seats, created_at)
        VALUES (?, ?, ?, ?, NOW())
    `, t.Origin, t.Destination, t.TotalSeats, t.TotalSeats)
	if err != nil {
		return models.Train{}, domain.InternalError{Msg: "failed to save train", Err: err}
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.Train{}, domain.InternalError{Msg: "failed to read train id", Err: err}
	}
	t.ID = id
	t.AvailableSeats = t.TotalSeats
	return t, nil
}

func (s *Store) ListTrainsByRoute(ctx context.Context, origin, destination string) ([]models.Train, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, origin, destination, total_seats, available_seats
        FROM trains
        WHERE origin = ? AND destination = ?
        ORDER BY id ASC
    `, origin, destination)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to query trains", Err: err}
	}
	defer rows.Close()

	out := []models.Train{}
	for rows.Next() {
		var t models.Train
		if err := rows.Scan(&t.ID, &t.Origin, &t.Destination, &t.TotalSeats, &t.AvailableSeats); err != nil {
			return nil, domain.InternalError{Msg: "failed to scan train", Err: err}
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Msg: "failed to read trains", Err: err}
	}
	return out, nil
}

func (s *Store) GetTrain(ctx context.Context, trainID int64) (models.Train, error) {
	var t models.Train
	err := s.db.QueryRowContext(ctx, `
        SELECT id, origin, destination, total_seats, available_seats
        FROM trains
        WHERE id = ?
    `, trainID).Scan(&t.ID, &t.Origin, &t.Destination, &t.TotalSeats, &t.AvailableSeats)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Train{}, domain.NotFoundError{Resource: "train", Err: err}
		}
		return models.Train{}, domain.InternalError{Msg: "failed to query train", Err: err}
	}
	return t, nil
}

// ReserveSeat runs the whole reserve sequence in one transaction. The FOR
// UPDATE read blocks concurrent attempts on the same train until this
// transaction commits or rolls back, so two callers can never both observe
// the last remaining seat. The deferred rollback is a no-op after commit and
// undoes the decrement on every failure path, keeping inventory and ledger
// in lockstep.
func (s *Store) ReserveSeat(ctx context.Context, b models.Booking) (models.Booking, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Booking{}, domain.ConflictError{Msg: "failed to start reservation transaction", Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	var available int
	err = tx.QueryRowContext(ctx, `
        SELECT available_seats
        FROM trains
        WHERE id = ?
        FOR UPDATE
    `, b.TrainID).Scan(&available)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "train", Err: err}
		}
		return models.Booking{}, domain.ConflictError{Msg: "failed to lock train row", Err: err}
	}

	if available < 1 {
		return models.Booking{}, domain.CapacityError{TrainID: b.TrainID}
	}

	if _, err := tx.ExecContext(ctx, `
        UPDATE trains SET available_seats = available_seats - 1 WHERE id = ?
    `, b.TrainID); err != nil {
		return models.Booking{}, domain.ConflictError{Msg: "failed to decrement seats", Err: err}
	}

	now := time.Now()
	if _, err := tx.ExecContext(ctx, `
        INSERT INTO bookings (id, train_id, user_id, seat_count, status, created_at)
        VALUES (?, ?, ?, ?, ?, ?)
    `, b.ID, b.TrainID, b.UserID, b.SeatCount, b.Status, now); err != nil {
		if isDuplicate(err) {
			return models.Booking{}, domain.ConflictError{Msg: "duplicate booking id", Err: err}
		}
		return models.Booking{}, domain.ConflictError{Msg: "failed to record booking", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return models.Booking{}, domain.ConflictError{Msg: "failed to commit reservation", Err: err}
	}

	b.CreatedAt = now
	return b, nil
}

func (s *Store) GetBooking(ctx context.Context, bookingID string) (models.Booking, error) {
	var b models.Booking
	err := s.db.QueryRowContext(ctx, `
        SELECT id, train_id, user_id, seat_count, status, created_at
        FROM bookings
        WHERE id = ?
    `, bookingID).Scan(&b.ID, &b.TrainID, &b.UserID, &b.SeatCount, &b.Status, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return models.Booking{}, domain.InternalError{Msg: "failed to query booking", Err: err}
	}
	return b, nil
}

func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == dupEntryErrNo
}

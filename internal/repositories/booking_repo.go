package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	intdb "hotelbooking/internal/db"
	"hotelbooking/internal/domain"
	"hotelbooking/internal/domain/models"
)

const bookingColumns = `b.id, b.user_name, b.email, b.room_id, b.check_in, b.check_out, b.total_price, b.status, b.created_at`

type BookingRepo struct {
	DB intdb.Querier
}

// Create inserts a confirmed booking. TotalPrice is stored as given.
func (r BookingRepo) Create(ctx context.Context, in models.CreateBookingInput) (models.Booking, error) {
	id, err := intdb.InsertID(ctx, r.DB, `
		INSERT INTO bookings (user_name, email, room_id, check_in, check_out, total_price, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		in.UserName, in.Email, in.RoomID, in.CheckIn, in.CheckOut, in.TotalPrice, domain.BookingConfirmed,
	)
	if err != nil {
		return models.Booking{}, domain.PersistenceError{Op: "insert booking", Err: err}
	}
	return r.GetByID(ctx, id)
}

func (r BookingRepo) GetByID(ctx context.Context, id int64) (models.Booking, error) {
	var b models.Booking
	err := r.DB.QueryRowxContext(ctx, r.DB.Rebind(`SELECT `+bookingColumns+` FROM bookings b WHERE b.id = ?`), id).StructScan(&b)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "Booking", Err: err}
		}
		return models.Booking{}, domain.PersistenceError{Op: "select booking", Err: err}
	}
	return b, nil
}

// ListActiveByRoom returns every non-cancelled booking of a room.
func (r BookingRepo) ListActiveByRoom(ctx context.Context, roomID int64) ([]models.Booking, error) {
	out := []models.Booking{}
	q := r.DB.Rebind(`SELECT ` + bookingColumns + ` FROM bookings b WHERE b.room_id = ? AND b.status <> ? ORDER BY b.check_in`)
	if err := sqlx.SelectContext(ctx, r.DB, &out, q, roomID, domain.BookingCancelled); err != nil {
		return nil, domain.PersistenceError{Op: "select room bookings", Err: err}
	}
	return out, nil
}

// UpdateStatus overwrites the status and returns the stored row. Setting
// the current value again is not an error.
func (r BookingRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (models.Booking, error) {
	if _, err := r.DB.ExecContext(ctx, r.DB.Rebind(`UPDATE bookings SET status = ? WHERE id = ?`), status, id); err != nil {
		return models.Booking{}, domain.PersistenceError{Op: "update booking status", Err: err}
	}
	return r.GetByID(ctx, id)
}

// ListByEmail joins room and hotel display fields, newest check-in first.
func (r BookingRepo) ListByEmail(ctx context.Context, email string) ([]models.BookingDetail, error) {
	out := []models.BookingDetail{}
	q := r.DB.Rebind(`
		SELECT ` + bookingColumns + `,
			r.type AS room_type, h.name AS hotel_name, h.location AS hotel_location, h.image_url AS hotel_image
		FROM bookings b
		JOIN rooms r ON b.room_id = r.id
		JOIN hotels h ON r.hotel_id = h.id
		WHERE b.email = ?
		ORDER BY b.check_in DESC`)
	if err := sqlx.SelectContext(ctx, r.DB, &out, q, email); err != nil {
		return nil, domain.PersistenceError{Op: "select user bookings", Err: err}
	}
	return out, nil
}

// ListAll is the admin view: every booking with the registered user's name
// when the email matches a user, newest first.
func (r BookingRepo) ListAll(ctx context.Context) ([]models.BookingDetail, error) {
	out := []models.BookingDetail{}
	q := `
		SELECT ` + bookingColumns + `,
			r.type AS room_type, h.name AS hotel_name, u.name AS user_name_full
		FROM bookings b
		JOIN rooms r ON b.room_id = r.id
		JOIN hotels h ON r.hotel_id = h.id
		LEFT JOIN users u ON b.email = u.email
		ORDER BY b.created_at DESC`
	if err := sqlx.SelectContext(ctx, r.DB, &out, q); err != nil {
		return nil, domain.PersistenceError{Op: "select bookings", Err: err}
	}
	return out, nil
}

// GetDetail loads one booking with the fields an invoice needs.
func (r BookingRepo) GetDetail(ctx context.Context, id int64) (models.BookingDetail, error) {
	var d models.BookingDetail
	q := r.DB.Rebind(`
		SELECT ` + bookingColumns + `,
			r.type AS room_type, r.price AS room_price,
			h.name AS hotel_name, h.location AS hotel_location, h.image_url AS hotel_image
		FROM bookings b
		JOIN rooms r ON b.room_id = r.id
		JOIN hotels h ON r.hotel_id = h.id
		WHERE b.id = ?`)
	if err := r.DB.QueryRowxContext(ctx, q, id).StructScan(&d); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.BookingDetail{}, domain.NotFoundError{Resource: "Booking", Err: err}
		}
		return models.BookingDetail{}, domain.PersistenceError{Op: "select booking detail", Err: err}
	}
	return d, nil
}

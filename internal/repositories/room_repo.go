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

const roomColumns = `id, hotel_id, type, price, capacity, amenities, available, image_url`

type RoomRepo struct {
	DB intdb.Querier
}

// LockByID takes a row lock on the room for the rest of the transaction.
// Only meaningful when DB is a *sqlx.Tx.
func (r RoomRepo) LockByID(ctx context.Context, id int64) error {
	var got int64
	err := r.DB.QueryRowxContext(ctx, r.DB.Rebind(`SELECT id FROM rooms WHERE id = ? FOR UPDATE`), id).Scan(&got)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "Room", Err: err}
		}
		return domain.PersistenceError{Op: "lock room", Err: err}
	}
	return nil
}

func (r RoomRepo) GetByID(ctx context.Context, id int64) (models.Room, error) {
	var room models.Room
	err := r.DB.QueryRowxContext(ctx, r.DB.Rebind(`SELECT `+roomColumns+` FROM rooms WHERE id = ?`), id).StructScan(&room)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Room{}, domain.NotFoundError{Resource: "Room", Err: err}
		}
		return models.Room{}, domain.PersistenceError{Op: "select room", Err: err}
	}
	return room, nil
}

func (r RoomRepo) ListByHotel(ctx context.Context, hotelID int64) ([]models.Room, error) {
	out := []models.Room{}
	q := r.DB.Rebind(`SELECT ` + roomColumns + ` FROM rooms WHERE hotel_id = ? ORDER BY price, id`)
	if err := sqlx.SelectContext(ctx, r.DB, &out, q, hotelID); err != nil {
		return nil, domain.PersistenceError{Op: "select hotel rooms", Err: err}
	}
	return out, nil
}

// Create inserts a room and returns it as stored. An unknown hotel_id
// surfaces as the driver's foreign-key error.
func (r RoomRepo) Create(ctx context.Context, in models.RoomInput) (models.Room, error) {
	amenities := in.Amenities
	if amenities == nil {
		amenities = models.Amenities{}
	}
	id, err := intdb.InsertID(ctx, r.DB, `
		INSERT INTO rooms (hotel_id, type, price, capacity, amenities, available, image_url)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		in.HotelID, in.Type, in.Price, in.Capacity, amenities, true, in.ImageURL,
	)
	if err != nil {
		return models.Room{}, domain.PersistenceError{Op: "insert room", Err: err}
	}
	return r.GetByID(ctx, id)
}

// DeleteByHotel removes every room of a hotel and reports how many went.
func (r RoomRepo) DeleteByHotel(ctx context.Context, hotelID int64) (int64, error) {
	res, err := r.DB.ExecContext(ctx, r.DB.Rebind(`DELETE FROM rooms WHERE hotel_id = ?`), hotelID)
	if err != nil {
		return 0, domain.PersistenceError{Op: "delete hotel rooms", Err: err}
	}
	n, _ := res.RowsAffected()
	return n, nil
}

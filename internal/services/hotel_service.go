package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jmoiron/sqlx"

	intdb "hotelbooking/internal/db"
	"hotelbooking/internal/domain"
	"hotelbooking/internal/domain/models"
	"hotelbooking/internal/repositories"
)

type HotelService struct {
	DB  *sqlx.DB
	Log *slog.Logger
}

func (s HotelService) log() *slog.Logger {
	if s.Log != nil {
		return s.Log
	}
	return slog.Default()
}

func (s HotelService) Search(ctx context.Context, f models.HotelFilter) ([]models.Hotel, error) {
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return []models.Hotel{}, nil
	}
	return repositories.HotelRepo{DB: s.DB}.Search(ctx, f)
}

// Get returns the hotel with all its rooms.
func (s HotelService) Get(ctx context.Context, id int64) (models.HotelDetail, error) {
	h, err := repositories.HotelRepo{DB: s.DB}.GetByID(ctx, id)
	if err != nil {
		return models.HotelDetail{}, err
	}
	rooms, err := repositories.RoomRepo{DB: s.DB}.ListByHotel(ctx, id)
	if err != nil {
		return models.HotelDetail{}, err
	}
	return models.HotelDetail{Hotel: h, Rooms: rooms}, nil
}

func (s HotelService) Create(ctx context.Context, in models.HotelInput) (models.Hotel, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Location = strings.TrimSpace(in.Location)
	if in.Name == "" || in.Location == "" {
		return models.Hotel{}, domain.ValidationError{Msg: "name and location are required"}
	}
	if in.Rating < 0 || in.Rating > 5 {
		return models.Hotel{}, domain.ValidationError{Field: "rating", Msg: "must be between 0 and 5"}
	}
	h, err := repositories.HotelRepo{DB: s.DB}.Create(ctx, in)
	if err != nil {
		return models.Hotel{}, err
	}
	s.log().Info("hotel created", slog.Int64("hotel_id", h.ID), slog.String("name", h.Name))
	return h, nil
}

// Delete removes the hotel's rooms and then the hotel in one transaction.
// Bookings still referencing those rooms make the room delete fail with
// the driver's foreign-key error.
func (s HotelService) Delete(ctx context.Context, id int64) error {
	var rooms int64
	err := intdb.WithTx(ctx, s.DB, func(tx *sqlx.Tx) error {
		n, err := repositories.RoomRepo{DB: tx}.DeleteByHotel(ctx, id)
		if err != nil {
			return err
		}
		rooms = n
		return repositories.HotelRepo{DB: tx}.Delete(ctx, id)
	})
	if err != nil {
		if !domain.IsNotFound(err) && !domain.IsPersistence(err) {
			err = domain.PersistenceError{Err: err}
		}
		return err
	}
	s.log().Info("hotel deleted", slog.Int64("hotel_id", id), slog.Int64("rooms", rooms))
	return nil
}

type RoomService struct {
	DB  *sqlx.DB
	Log *slog.Logger
}

// Create adds a room. A hotel_id with no hotel fails on the foreign key.
func (s RoomService) Create(ctx context.Context, in models.RoomInput) (models.Room, error) {
	in.Type = strings.TrimSpace(in.Type)
	if in.Type == "" {
		return models.Room{}, domain.ValidationError{Field: "type", Msg: "is required"}
	}
	cleaned := make(models.Amenities, 0, len(in.Amenities))
	for _, a := range in.Amenities {
		if a = strings.TrimSpace(a); a != "" {
			cleaned = append(cleaned, a)
		}
	}
	in.Amenities = cleaned
	room, err := repositories.RoomRepo{DB: s.DB}.Create(ctx, in)
	if err != nil {
		return models.Room{}, err
	}
	if s.Log != nil {
		s.Log.Info("room created", slog.Int64("room_id", room.ID), slog.Int64("hotel_id", room.HotelID))
	}
	return room, nil
}

package handlers

import (
	"context"

	"hotelbooking/internal/domain/models"
	"hotelbooking/internal/services"
)

type BookingAPI interface {
	CheckAvailability(ctx context.Context, roomID int64, stay models.StayRange) (models.Availability, error)
	Create(ctx context.Context, in models.CreateBookingInput) (models.Booking, error)
	Cancel(ctx context.Context, id int64) (models.Booking, error)
	SetStatus(ctx context.Context, id int64, status string) (models.Booking, error)
	ListByEmail(ctx context.Context, email string) ([]models.BookingDetail, error)
	ListAll(ctx context.Context) ([]models.BookingDetail, error)
}

type HotelAPI interface {
	Search(ctx context.Context, f models.HotelFilter) ([]models.Hotel, error)
	Get(ctx context.Context, id int64) (models.HotelDetail, error)
	Create(ctx context.Context, in models.HotelInput) (models.Hotel, error)
	Delete(ctx context.Context, id int64) error
}

type RoomAPI interface {
	Create(ctx context.Context, in models.RoomInput) (models.Room, error)
}

type UserAPI interface {
	Register(ctx context.Context, in models.RegisterInput) (models.PublicUser, error)
	Login(ctx context.Context, in models.LoginInput) (services.LoginResult, error)
	Profile(ctx context.Context, email string) (models.PublicUser, error)
	UpdateProfile(ctx context.Context, email, name string) (models.PublicUser, error)
}

type StatsAPI interface {
	Summary(ctx context.Context) (models.Stats, error)
}

type DocsAPI interface {
	GenerateInvoice(ctx context.Context, bookingID int64) ([]byte, string, error)
}

type ExportAPI interface {
	BookingsXLSX(ctx context.Context) ([]byte, string, error)
}

// Handler groups the HTTP endpoints. Every field is required except DB,
// which only backs the db-check probe.
type Handler struct {
	Bookings BookingAPI
	Hotels   HotelAPI
	Rooms    RoomAPI
	Users    UserAPI
	Stats    StatsAPI
	Docs     DocsAPI
	Export   ExportAPI
	DB       UserCounter
}

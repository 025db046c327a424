package models

import (
	"time"

	"hotelbooking/internal/domain"
)

// Booking is a stay reservation for one room. Email links it to a user by
// value only; there is no foreign key to users.
type Booking struct {
	ID         int64                `db:"id" json:"id"`
	UserName   string               `db:"user_name" json:"user_name"`
	Email      string               `db:"email" json:"email"`
	RoomID     int64                `db:"room_id" json:"room_id"`
	CheckIn    Date                 `db:"check_in" json:"check_in"`
	CheckOut   Date                 `db:"check_out" json:"check_out"`
	TotalPrice float64              `db:"total_price" json:"total_price"`
	Status     domain.BookingStatus `db:"status" json:"status"`
	CreatedAt  time.Time            `db:"created_at" json:"created_at"`
}

func (b Booking) Stay() StayRange {
	return StayRange{CheckIn: b.CheckIn, CheckOut: b.CheckOut}
}

func (b Booking) Active() bool {
	return b.Status != domain.BookingCancelled
}

// BookingDetail is a booking joined with room and hotel display fields.
// UserNameFull is only populated on the admin listing.
type BookingDetail struct {
	Booking
	RoomType      string  `db:"room_type" json:"room_type"`
	HotelName     string  `db:"hotel_name" json:"hotel_name"`
	HotelLocation *string `db:"hotel_location" json:"hotel_location,omitempty"`
	HotelImage    *string `db:"hotel_image" json:"hotel_image,omitempty"`
	UserNameFull  *string `db:"user_name_full" json:"user_name_full,omitempty"`
	RoomPrice     float64 `db:"room_price" json:"-"`
}

// CreateBookingInput is what a client submits to reserve a room.
// TotalPrice is stored exactly as given.
type CreateBookingInput struct {
	UserName   string  `json:"user_name" binding:"required"`
	Email      string  `json:"email" binding:"required"`
	RoomID     int64   `json:"room_id" binding:"required,gt=0"`
	CheckIn    Date    `json:"check_in"`
	CheckOut   Date    `json:"check_out"`
	TotalPrice float64 `json:"total_price"`
}

func (in CreateBookingInput) Stay() StayRange {
	return StayRange{CheckIn: in.CheckIn, CheckOut: in.CheckOut}
}

// StayRange is a check-in/check-out pair. Both ends count as occupied days.
type StayRange struct {
	CheckIn  Date
	CheckOut Date
}

// Overlaps applies the inclusive-inclusive rule with r as the existing
// stay [a,b] and q as the requested one [c,d]: a<=c<=b, a<=d<=b, or
// c<=a and b<=d. A check-out day equal to a check-in day is a conflict.
func (r StayRange) Overlaps(q StayRange) bool {
	a, b := r.CheckIn, r.CheckOut
	c, d := q.CheckIn, q.CheckOut
	return within(c, a, b) || within(d, a, b) || (!a.Before(c) && !d.Before(b))
}

// Nights counts the nights between check-in and check-out, zero when the
// range is empty or inverted.
func (r StayRange) Nights() int {
	n := r.CheckIn.DaysUntil(r.CheckOut)
	if n < 0 {
		return 0
	}
	return n
}

func within(x, lo, hi Date) bool {
	return !x.Before(lo) && !x.After(hi)
}

// Availability is the answer to an availability query.
type Availability struct {
	Available bool   `json:"available"`
	Message   string `json:"message"`
}

const (
	MsgRoomAvailable   = "Room is available"
	MsgRoomUnavailable = "Room is not available for these dates"
)

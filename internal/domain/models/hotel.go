package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

type Hotel struct {
	ID          int64   `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	Location    string  `db:"location" json:"location"`
	Description *string `db:"description" json:"description"`
	Rating      float64 `db:"rating" json:"rating"`
	ImageURL    *string `db:"image_url" json:"image_url"`
}

// HotelDetail is a hotel with its rooms nested.
type HotelDetail struct {
	Hotel
	Rooms []Room `json:"rooms"`
}

// HotelFilter narrows a hotel search. Nil price bounds are open.
type HotelFilter struct {
	Location string
	MinPrice *float64
	MaxPrice *float64
}

func (f HotelFilter) HasPrice() bool {
	return f.MinPrice != nil || f.MaxPrice != nil
}

type HotelInput struct {
	Name        string  `json:"name" binding:"required"`
	Location    string  `json:"location" binding:"required"`
	Description *string `json:"description"`
	Rating      float64 `json:"rating" binding:"gte=0,lte=5"`
	ImageURL    *string `json:"image_url"`
}

type Room struct {
	ID        int64     `db:"id" json:"id"`
	HotelID   int64     `db:"hotel_id" json:"hotel_id"`
	Type      string    `db:"type" json:"type"`
	Price     float64   `db:"price" json:"price"`
	Capacity  int       `db:"capacity" json:"capacity"`
	Amenities Amenities `db:"amenities" json:"amenities"`
	Available bool      `db:"available" json:"available"`
	ImageURL  *string   `db:"image_url" json:"image_url"`
}

type RoomInput struct {
	HotelID   int64     `json:"hotel_id" binding:"required,gt=0"`
	Type      string    `json:"type" binding:"required"`
	Price     float64   `json:"price" binding:"required"`
	Capacity  int       `json:"capacity" binding:"required"`
	Amenities Amenities `json:"amenities"`
	ImageURL  *string   `json:"image_url"`
}

// Amenities is an ordered list of free-text labels kept in a JSON text
// column so the same schema works on mysql and postgres.
type Amenities []string

func (a *Amenities) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*a = Amenities{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Amenities", src)
	}
	if len(raw) == 0 {
		*a = Amenities{}
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("decode amenities: %w", err)
	}
	*a = out
	return nil
}

func (a Amenities) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(a))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

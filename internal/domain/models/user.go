package models

import (
	"time"

	"hotelbooking/internal/domain"
)

type User struct {
	ID           int64       `db:"id"`
	Name         string      `db:"name"`
	Email        string      `db:"email"`
	PasswordHash string      `db:"password"`
	Role         domain.Role `db:"role"`
	CreatedAt    time.Time   `db:"created_at"`
}

// PublicUser is the user shape sent to clients; it never carries the hash.
type PublicUser struct {
	ID        int64       `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role,omitempty"`
	CreatedAt *time.Time  `json:"created_at,omitempty"`
}

func (u *User) ToPublic() PublicUser {
	out := PublicUser{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
	if !u.CreatedAt.IsZero() {
		created := u.CreatedAt
		out.CreatedAt = &created
	}
	return out
}

type RegisterInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Stats is the admin dashboard summary. Revenue sums non-cancelled bookings.
type Stats struct {
	Users    int64   `db:"users" json:"users"`
	Hotels   int64   `db:"hotels" json:"hotels"`
	Bookings int64   `db:"bookings" json:"bookings"`
	Revenue  float64 `db:"revenue" json:"revenue"`
}

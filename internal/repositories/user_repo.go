package repositories

import (
	"context"
	"database/sql"
	"errors"

	intdb "hotelbooking/internal/db"
	"hotelbooking/internal/domain"
	"hotelbooking/internal/domain/models"
)

type UserRepo struct {
	DB intdb.Querier
}

func (r UserRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := r.DB.QueryRowxContext(ctx,
		r.DB.Rebind(`SELECT id, name, email, password, role, created_at FROM users WHERE email = ?`),
		email,
	).StructScan(&u)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, domain.NotFoundError{Resource: "User", Err: err}
		}
		return models.User{}, domain.PersistenceError{Op: "select user", Err: err}
	}
	return u, nil
}

// Create stores a user whose password is already hashed. A duplicate email
// surfaces as the driver's unique-constraint error.
func (r UserRepo) Create(ctx context.Context, u models.User) (models.User, error) {
	_, err := intdb.InsertID(ctx, r.DB,
		`INSERT INTO users (name, email, password, role) VALUES (?, ?, ?, ?)`,
		u.Name, u.Email, u.PasswordHash, u.Role,
	)
	if err != nil {
		return models.User{}, domain.PersistenceError{Op: "insert user", Err: err}
	}
	return r.GetByEmail(ctx, u.Email)
}

// UpdateName changes the display name; email and role are immutable here.
func (r UserRepo) UpdateName(ctx context.Context, email, name string) (models.User, error) {
	if _, err := r.DB.ExecContext(ctx, r.DB.Rebind(`UPDATE users SET name = ? WHERE email = ?`), name, email); err != nil {
		return models.User{}, domain.PersistenceError{Op: "update user", Err: err}
	}
	return r.GetByEmail(ctx, email)
}

// RoleOf reads the stored role, used when tokens are re-checked live.
func (r UserRepo) RoleOf(ctx context.Context, email string) (domain.Role, error) {
	var role domain.Role
	err := r.DB.QueryRowxContext(ctx, r.DB.Rebind(`SELECT role FROM users WHERE email = ?`), email).Scan(&role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.NotFoundError{Resource: "User", Err: err}
		}
		return "", domain.PersistenceError{Op: "select user role", Err: err}
	}
	return role, nil
}

func (r UserRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.DB.QueryRowxContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, domain.PersistenceError{Op: "count users", Err: err}
	}
	return n, nil
}

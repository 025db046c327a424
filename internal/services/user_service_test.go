package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"hotelbooking/internal/auth"
	"hotelbooking/internal/domain"
	"hotelbooking/internal/domain/models"
)

var userCols = []string{"id", "name", "email", "password", "role", "created_at"}

func userService(t *testing.T) (UserService, sqlmock.Sqlmock) {
	db, mock := newMock(t)
	return UserService{
		DB:     db,
		Tokens: auth.NewTokenManager("0123456789abcdef-secret", time.Hour, "hotelbooking"),
		Log:    quietLogger(),
		Cost:   bcrypt.MinCost,
	}, mock
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, mock := userService(t)
	mock.ExpectExec(`INSERT INTO users \(name, email, password, role\)`).
		WithArgs("Ann Lee", "ann@example.com", sqlmock.AnyArg(), domain.RoleUser).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(`FROM users WHERE email = \?`).WithArgs("ann@example.com").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(1, "Ann Lee", "ann@example.com", "$2a$04$hash", "user", time.Now()))

	u, err := svc.Register(context.Background(), models.RegisterInput{Name: " Ann   Lee ", Email: "Ann@Example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "Ann Lee", u.Name)
	assert.Equal(t, domain.RoleUser, u.Role)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginIssuesTokenWithStoredRole(t *testing.T) {
	svc, mock := userService(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	require.NoError(t, err)
	mock.ExpectQuery(`FROM users WHERE email = \?`).WithArgs("admin@example.com").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(1, "Admin", "admin@example.com", string(hash), "admin", time.Now()))

	res, err := svc.Login(context.Background(), models.LoginInput{Email: "admin@example.com", Password: "admin123"})
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", res.User.Email)

	claims, err := svc.Tokens.Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, mock := userService(t)
	hash, _ := bcrypt.GenerateFromPassword([]byte("right"), bcrypt.MinCost)
	mock.ExpectQuery(`FROM users WHERE email = \?`).
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(1, "Ann", "ann@example.com", string(hash), "user", time.Now()))

	_, err := svc.Login(context.Background(), models.LoginInput{Email: "ann@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrBadLogin)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, mock := userService(t)
	mock.ExpectQuery(`FROM users WHERE email = \?`).WillReturnError(sql.ErrNoRows)

	_, err := svc.Login(context.Background(), models.LoginInput{Email: "ghost@example.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrBadLogin)
}

func TestProfileHidesRole(t *testing.T) {
	svc, mock := userService(t)
	mock.ExpectQuery(`FROM users WHERE email = \?`).WithArgs("ann@example.com").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(1, "Ann", "ann@example.com", "hash", "user", time.Now()))

	u, err := svc.Profile(context.Background(), " Ann@Example.com")
	require.NoError(t, err)
	assert.Empty(t, u.Role)
	assert.NotNil(t, u.CreatedAt)
}

func TestUpdateProfileMissingUser(t *testing.T) {
	svc, mock := userService(t)
	mock.ExpectExec(`UPDATE users SET name = \? WHERE email = \?`).WithArgs("New", "ghost@example.com").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`FROM users WHERE email = \?`).WillReturnError(sql.ErrNoRows)

	_, err := svc.UpdateProfile(context.Background(), "GHOST@example.com", "New")
	assert.True(t, domain.IsNotFound(err))
}

func TestEnsureAdminCreatesOnce(t *testing.T) {
	svc, mock := userService(t)
	mock.ExpectQuery(`FROM users WHERE email = \?`).WithArgs("admin@example.com").WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(`INSERT INTO users`).
		WithArgs("Administrator", "admin@example.com", sqlmock.AnyArg(), domain.RoleAdmin).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(`FROM users WHERE email = \?`).
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(1, "Administrator", "admin@example.com", "hash", "admin", time.Now()))
	require.NoError(t, svc.EnsureAdmin(context.Background(), "admin@example.com", "admin123", ""))

	mock.ExpectQuery(`FROM users WHERE email = \?`).
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(1, "Administrator", "admin@example.com", "hash", "admin", time.Now()))
	require.NoError(t, svc.EnsureAdmin(context.Background(), "admin@example.com", "admin123", ""))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsSummaryPassesThrough(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users`).WithArgs(domain.BookingCancelled).
		WillReturnRows(sqlmock.NewRows([]string{"users", "hotels", "bookings", "revenue"}).AddRow(2, 6, 3, 950.5))

	s, err := StatsService{DB: db}.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 950.5, s.Revenue)
}

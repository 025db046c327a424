package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"hotelbooking/internal/auth"
	"hotelbooking/internal/domain"
	"hotelbooking/internal/domain/models"
	"hotelbooking/internal/repositories"
	"hotelbooking/internal/utils"
)

type UserService struct {
	DB     *sqlx.DB
	Tokens *auth.TokenManager
	Log    *slog.Logger
	// Cost overrides bcrypt.DefaultCost; tests lower it.
	Cost int
}

func (s UserService) users() repositories.UserRepo {
	return repositories.UserRepo{DB: s.DB}
}

func (s UserService) cost() int {
	if s.Cost > 0 {
		return s.Cost
	}
	return bcrypt.DefaultCost
}

type LoginResult struct {
	User  models.PublicUser `json:"user"`
	Token string            `json:"token"`
}

// Register creates a user with role "user". A taken email fails on the
// unique constraint.
func (s UserService) Register(ctx context.Context, in models.RegisterInput) (models.PublicUser, error) {
	name := utils.NormalizeSpace(in.Name)
	email := utils.NormalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return models.PublicUser{}, domain.ValidationError{Msg: "name, email and password are required"}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost())
	if err != nil {
		return models.PublicUser{}, domain.ValidationError{Field: "password", Msg: "cannot be hashed", Err: err}
	}
	u, err := s.users().Create(ctx, models.User{Name: name, Email: email, PasswordHash: string(hash), Role: domain.RoleUser})
	if err != nil {
		return models.PublicUser{}, err
	}
	return u.ToPublic(), nil
}

// Login checks the password and issues a token carrying the stored role.
func (s UserService) Login(ctx context.Context, in models.LoginInput) (LoginResult, error) {
	u, err := s.users().GetByEmail(ctx, utils.NormalizeEmail(in.Email))
	if err != nil {
		if domain.IsNotFound(err) {
			return LoginResult{}, domain.ErrBadLogin
		}
		return LoginResult{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return LoginResult{}, domain.ErrBadLogin
	}
	token, err := s.Tokens.Issue(u.Email, u.Role)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{User: u.ToPublic(), Token: token}, nil
}

func (s UserService) Profile(ctx context.Context, email string) (models.PublicUser, error) {
	u, err := s.users().GetByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		return models.PublicUser{}, err
	}
	out := u.ToPublic()
	out.Role = ""
	return out, nil
}

// UpdateProfile changes only the display name.
func (s UserService) UpdateProfile(ctx context.Context, email, name string) (models.PublicUser, error) {
	name = utils.NormalizeSpace(name)
	if name == "" {
		return models.PublicUser{}, domain.ValidationError{Field: "name", Msg: "is required"}
	}
	u, err := s.users().UpdateName(ctx, utils.NormalizeEmail(email), name)
	if err != nil {
		return models.PublicUser{}, err
	}
	return models.PublicUser{ID: u.ID, Name: u.Name, Email: u.Email}, nil
}

// RoleOf is the live role lookup used when tokens are re-checked.
func (s UserService) RoleOf(ctx context.Context, email string) (domain.Role, error) {
	return s.users().RoleOf(ctx, utils.NormalizeEmail(email))
}

// CountUsers backs the database health probe.
func (s UserService) CountUsers(ctx context.Context) (int64, error) {
	return s.users().Count(ctx)
}

// EnsureAdmin creates the bootstrap admin account when it does not exist
// yet. An existing account is left untouched.
func (s UserService) EnsureAdmin(ctx context.Context, email, password, name string) error {
	email = utils.NormalizeEmail(email)
	if email == "" {
		return nil
	}
	_, err := s.users().GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !domain.IsNotFound(err) {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost())
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	if strings.TrimSpace(name) == "" {
		name = "Administrator"
	}
	if _, err := s.users().Create(ctx, models.User{Name: name, Email: email, PasswordHash: string(hash), Role: domain.RoleAdmin}); err != nil {
		return err
	}
	if s.Log != nil {
		s.Log.Info("admin account created", slog.String("email", email))
	}
	return nil
}

type StatsService struct {
	DB *sqlx.DB
}

func (s StatsService) Summary(ctx context.Context) (models.Stats, error) {
	return repositories.StatsRepo{DB: s.DB}.Summary(ctx)
}

package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"hotelbooking/internal/domain"
)

// Claims is the JWT payload. Role is trusted as issued until the token
// expires.
type Claims struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
	jwt.RegisteredClaims
}

type TokenManager struct {
	Secret []byte
	TTL    time.Duration
	Issuer string
	Now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration, issuer string) *TokenManager {
	return &TokenManager{Secret: []byte(secret), TTL: ttl, Issuer: issuer, Now: time.Now}
}

func (m *TokenManager) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

// Issue signs an HS256 token carrying the user's email and role.
func (m *TokenManager) Issue(email string, role domain.Role) (string, error) {
	now := m.now()
	claims := Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			Issuer:    m.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.TTL)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.Secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry. Every failure is ErrInvalidCredential.
func (m *TokenManager) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return m.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !tok.Valid {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCredential, err)
	}
	if claims.Email == "" {
		return nil, fmt.Errorf("%w: missing email claim", domain.ErrInvalidCredential)
	}
	return claims, nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", domain.ErrUnauthenticated
	}
	return strings.TrimSpace(token), nil
}

// Authorize compares the role claim against the required role.
func Authorize(c *Claims, required domain.Role) error {
	if c == nil {
		return domain.ErrUnauthenticated
	}
	if c.Role != required {
		return domain.ErrForbidden
	}
	return nil
}

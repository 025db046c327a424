package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hotelbooking/internal/auth"
	"hotelbooking/internal/domain"
)

const (
	claimsKey = "auth_claims"
	roleKey   = "userRole"
	emailKey  = "userEmail"
)

type TokenVerifier interface {
	Verify(raw string) (*auth.Claims, error)
}

// RoleLookup reads a user's current role from the store.
type RoleLookup func(ctx context.Context, email string) (domain.Role, error)

// RequireAuth verifies the bearer token and stores its claims on the
// context.
func RequireAuth(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := auth.BearerToken(c.GetHeader("Authorization"))
		if err != nil {
			abortAuth(c, err)
			return
		}
		claims, err := tokens.Verify(raw)
		if err != nil {
			abortAuth(c, err)
			return
		}
		c.Set(claimsKey, claims)
		c.Set(roleKey, string(claims.Role))
		c.Set(emailKey, claims.Email)
		c.Next()
	}
}

// LiveRole replaces the role claim with the stored role, so a demoted
// admin loses access before the token expires.
func LiveRole(lookup RoleLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok {
			abortAuth(c, domain.ErrUnauthenticated)
			return
		}
		role, err := lookup(c.Request.Context(), claims.Email)
		if err != nil {
			if domain.IsNotFound(err) {
				abortAuth(c, domain.ErrInvalidCredential)
				return
			}
			abortJSON(c, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}
		if !role.Valid() {
			abortAuth(c, domain.ErrInvalidCredential)
			return
		}
		live := *claims
		live.Role = role
		c.Set(claimsKey, &live)
		c.Set(roleKey, string(role))
		c.Next()
	}
}

// ClaimsFrom returns the verified claims set by RequireAuth.
func ClaimsFrom(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}

func abortAuth(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrForbidden):
		abortJSON(c, http.StatusForbidden, "forbidden", domain.ErrForbidden.Error())
	case errors.Is(err, domain.ErrInvalidCredential):
		abortJSON(c, http.StatusUnauthorized, "invalid_token", domain.ErrInvalidCredential.Error())
	default:
		abortJSON(c, http.StatusUnauthorized, "unauthenticated", domain.ErrUnauthenticated.Error())
	}
}

func abortJSON(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error":      message,
		"code":       code,
		"request_id": GetRequestID(c),
	})
}

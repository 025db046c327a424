package middleware

import (
	"github.com/gin-gonic/gin"

	"hotelbooking/internal/auth"
	"hotelbooking/internal/domain"
)

// RequireRoles lets the request through when the verified role claim is one
// of allowed. It must run after RequireAuth (and LiveRole, when enabled).
//
//	admin.Use(RequireAuth(tokens), RequireRoles(domain.RoleAdmin))
func RequireRoles(allowed ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok {
			abortAuth(c, domain.ErrUnauthenticated)
			return
		}
		for _, role := range allowed {
			if auth.Authorize(claims, role) == nil {
				c.Next()
				return
			}
		}
		abortAuth(c, domain.ErrForbidden)
	}
}

// RequireAdmin is RequireRoles(domain.RoleAdmin).
func RequireAdmin() gin.HandlerFunc {
	return RequireRoles(domain.RoleAdmin)
}

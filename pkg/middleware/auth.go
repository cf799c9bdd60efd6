package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/aldeanavidad/tienda/pkg/auth"
	"github.com/aldeanavidad/tienda/pkg/response"
)

// claimsKey is the unexported context key for the authenticated claims.
type claimsKey struct{}

// Auth validates the Authorization: Bearer credential and stores the decoded
// claims in the request context for downstream handlers.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			response.Unauthorized(w, "No autenticado")
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" {
			response.Unauthorized(w, "No autenticado")
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Unauthorized(w, "Token inválido")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClaimsFromCtx returns the authenticated claims stored by Auth.
func ClaimsFromCtx(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*auth.Claims)
	return c, ok
}

// UserIDFromCtx returns the authenticated user's id.
func UserIDFromCtx(ctx context.Context) (uint, bool) {
	if c, ok := ClaimsFromCtx(ctx); ok {
		return c.UserID, true
	}
	return 0, false
}

// RoleFromCtx returns the authenticated user's role.
func RoleFromCtx(ctx context.Context) (string, bool) {
	if c, ok := ClaimsFromCtx(ctx); ok {
		return c.Role, true
	}
	return "", false
}

// WithClaims stores claims in ctx. Intended for tests.
func WithClaims(ctx context.Context, c *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, c)
}

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aldeanavidad/tienda/config"
	"github.com/aldeanavidad/tienda/pkg/auth"
	"github.com/aldeanavidad/tienda/pkg/middleware"
	"github.com/aldeanavidad/tienda/pkg/rbac"
)

func protected() http.Handler {
	return middleware.Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, _ := middleware.UserIDFromCtx(r.Context())
		if id == 0 {
			http.Error(w, "no claims in context", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
}

func TestAuthMissingHeader(t *testing.T) {
	config.Set("JWT_SECRET", "secreto")

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()
	protected().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestAuthMalformedHeader(t *testing.T) {
	config.Set("JWT_SECRET", "secreto")

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	protected().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestAuthBadToken(t *testing.T) {
	config.Set("JWT_SECRET", "secreto")

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer basura")
	rec := httptest.NewRecorder()
	protected().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestAuthValidToken(t *testing.T) {
	config.Set("JWT_SECRET", "secreto")

	token, err := auth.GenerateToken(3, "admin", "admin@aldea.es", "Admin")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	protected().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestRBACRejectsNonAdmin(t *testing.T) {
	config.Set("JWT_SECRET", "secreto")

	handler := middleware.Auth(rbac.HasRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	token, err := auth.GenerateToken(9, "empleado", "emp@aldea.es", "Empleado")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/pedidos", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestRBACAllowsAdmin(t *testing.T) {
	config.Set("JWT_SECRET", "secreto")

	handler := middleware.Auth(rbac.HasRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	token, err := auth.GenerateToken(1, "admin", "admin@aldea.es", "Admin")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/pedidos", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

package auth_test

import (
	"testing"

	"github.com/aldeanavidad/tienda/config"
	"github.com/aldeanavidad/tienda/pkg/auth"
)

func TestTokenRoundTrip(t *testing.T) {
	config.Set("JWT_SECRET", "secreto-a")

	token, err := auth.GenerateToken(42, "admin", "admin@aldea.es", "Admin")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("user id = %d, want 42", claims.UserID)
	}
	if claims.Role != "admin" {
		t.Errorf("role = %q, want admin", claims.Role)
	}
	if claims.Email != "admin@aldea.es" {
		t.Errorf("email = %q", claims.Email)
	}
}

func TestTokenRejectedAfterSecretChange(t *testing.T) {
	config.Set("JWT_SECRET", "secreto-a")
	token, err := auth.GenerateToken(1, "admin", "a@b.es", "A")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	config.Set("JWT_SECRET", "secreto-b")
	if _, err := auth.ValidateToken(token); err == nil {
		t.Error("expected a token signed with the old secret to be rejected")
	}
}

func TestMissingSecret(t *testing.T) {
	config.Set("JWT_SECRET", "")

	if err := auth.CheckSecret(); err == nil {
		t.Error("expected CheckSecret to fail without JWT_SECRET")
	}
	if _, err := auth.GenerateToken(1, "admin", "a@b.es", "A"); err == nil {
		t.Error("expected GenerateToken to fail without JWT_SECRET")
	}
}

func TestGarbageToken(t *testing.T) {
	config.Set("JWT_SECRET", "secreto-a")

	if _, err := auth.ValidateToken("not.a.token"); err == nil {
		t.Error("expected garbage token to be rejected")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("contraseña123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "contraseña123" {
		t.Fatal("hash must not equal the plain password")
	}
	if !auth.CheckPassword(hash, "contraseña123") {
		t.Error("correct password rejected")
	}
	if auth.CheckPassword(hash, "otra") {
		t.Error("wrong password accepted")
	}
}

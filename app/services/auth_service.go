// Package services holds the business logic between controllers and
// repositories.
package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/aldeanavidad/tienda/app/models"
	"github.com/aldeanavidad/tienda/app/repositories"
	"github.com/aldeanavidad/tienda/pkg/auth"
)

// Login failure modes. Wrong email and wrong password are deliberately
// indistinguishable; a disabled account is not.
var (
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrUserInactive       = errors.New("usuario desactivado")
)

type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService(users *repositories.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// Login verifies credentials and returns a signed token plus the user.
func (s *AuthService) Login(email, password string) (string, models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", models.User{}, ErrInvalidCredentials
		}
		return "", models.User{}, err
	}

	if !user.Active {
		return "", models.User{}, ErrUserInactive
	}

	if !auth.CheckPassword(user.Password, password) {
		return "", models.User{}, ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Role, user.Email, user.Name)
	if err != nil {
		return "", models.User{}, err
	}
	return token, user, nil
}

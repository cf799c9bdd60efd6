// Package controllers holds the HTTP handlers. Controllers bind and
// validate input, call a service, and translate errors to status codes.
package controllers

import (
	"errors"
	"net/http"

	"github.com/aldeanavidad/tienda/app/services"
	"github.com/aldeanavidad/tienda/pkg/bind"
	"github.com/aldeanavidad/tienda/pkg/middleware"
	"github.com/aldeanavidad/tienda/pkg/response"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login issues a JWT for valid admin credentials.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if errs, err := bind.JSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Cuerpo de la petición inválido")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	token, user, err := c.auth.Login(req.Email, req.Password)
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		response.Unauthorized(w, "Credenciales inválidas")
		return
	case errors.Is(err, services.ErrUserInactive):
		response.Forbidden(w, "Usuario desactivado")
		return
	case err != nil:
		response.Internal(w)
		return
	}

	response.Success(w, map[string]interface{}{
		"token": token,
		"usuario": map[string]interface{}{
			"id":     user.ID,
			"nombre": user.Name,
			"email":  user.Email,
			"rol":    user.Role,
		},
	})
}

// Me echoes the authenticated token's claims.
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w, "No autenticado")
		return
	}
	response.Success(w, map[string]interface{}{
		"id":     claims.UserID,
		"nombre": claims.Name,
		"email":  claims.Email,
		"rol":    claims.Role,
	})
}

package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/farm_shop/internal/models"
	"github.com/Skotchmaster/farm_shop/internal/service"
	"github.com/Skotchmaster/farm_shop/internal/transport"
	"github.com/Skotchmaster/farm_shop/pkg/logging"
	authmw "github.com/Skotchmaster/farm_shop/pkg/middleware/auth"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func userDTO(u *models.User) transport.UserDTO {
	return transport.UserDTO{ID: u.ID.String(), Email: u.Email}
}

func authResponse(res *service.AuthResult) transport.AuthResponse {
	user := userDTO(res.User)
	return transport.AuthResponse{
		User: user,
		Session: transport.Session{
			AccessToken: res.Token,
			ExpiresAt:   res.ExpiresAt,
			User:        user,
		},
	}
}

func (h *AuthHTTP) Signup(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.signup")

	var req transport.CredentialsRequest
	if err := bindAndValidate(c, &req); err != nil {
		l.Warn("signup_error", "status", 400, "reason", "invalid body", "error", err)
		return err
	}

	res, err := h.Svc.Signup(ctx, req.Email, req.Password)
	if err != nil {
		return httpError(l, "signup_error", err)
	}
	return c.JSON(http.StatusCreated, authResponse(res))
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.CredentialsRequest
	if err := bindAndValidate(c, &req); err != nil {
		l.Warn("login_error", "status", 400, "reason", "invalid body", "error", err)
		return err
	}

	res, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return echo.NewHTTPError(http.StatusBadRequest, "user not found")
		}
		return httpError(l, "login_error", err)
	}
	return c.JSON(http.StatusOK, authResponse(res))
}

func (h *AuthHTTP) Me(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.me")

	p, ok := authmw.PrincipalFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	user, err := h.Svc.GetUser(ctx, p.ID)
	if err != nil {
		return httpError(l, "me_error", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"user": userDTO(user)})
}

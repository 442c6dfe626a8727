package authmw

import (
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/farm_shop/pkg/logging"
	"github.com/Skotchmaster/farm_shop/pkg/tokens"
)

const (
	CtxUserID    = "user_id"
	CtxEmail     = "email"
	CtxRole      = "role"
	CtxPrincipal = "principal"

	roleAdmin = "admin"
)

// Gate authenticates bearer tokens and authorizes owner and admin routes.
type Gate struct {
	Issuer      *tokens.Issuer
	AdminEmails []string
}

func NewGate(issuer *tokens.Issuer, adminEmails []string) *Gate {
	return &Gate{Issuer: issuer, AdminEmails: adminEmails}
}

func bearerToken(c echo.Context) string {
	h := c.Request().Header.Get(echo.HeaderAuthorization)
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func (g *Gate) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		l := logging.FromContext(c.Request().Context())

		raw := bearerToken(c)
		if raw == "" {
			l.Warn("auth_error", "status", 401, "reason", "missing bearer token")
			return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
		}

		p, err := g.Issuer.Verify(raw)
		if err != nil {
			if errors.Is(err, tokens.ErrExpired) {
				l.Warn("auth_error", "status", 401, "reason", "token expired")
				return echo.NewHTTPError(http.StatusUnauthorized, "access token expired")
			}
			l.Warn("auth_error", "status", 401, "reason", "invalid token", "error", err)
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
		}

		setUserContext(c, p)
		return next(c)
	}
}

// RequireOwner lets the request through only when the path parameter names
// the authenticated user.
func (g *Gate) RequireOwner(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := PrincipalFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
			}
			if c.Param(param) != p.ID {
				logging.FromContext(c.Request().Context()).Warn("auth_error", "status", 403, "reason", "not the owner", "user_id", p.ID)
				return echo.NewHTTPError(http.StatusForbidden, "you can only access your own data")
			}
			return next(c)
		}
	}
}

func (g *Gate) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		p, ok := PrincipalFrom(c)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
		}
		if !g.IsAdmin(p) {
			logging.FromContext(c.Request().Context()).Warn("auth_error", "status", 403, "reason", "admin access required", "user_id", p.ID)
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		return next(c)
	}
}

func (g *Gate) IsAdmin(p tokens.Principal) bool {
	return p.Role == roleAdmin || slices.Contains(g.AdminEmails, p.Email)
}

func setUserContext(c echo.Context, p *tokens.Principal) {
	c.Set(CtxUserID, p.ID)
	c.Set(CtxEmail, p.Email)
	c.Set(CtxRole, p.Role)
	c.Set(CtxPrincipal, *p)
}

func PrincipalFrom(c echo.Context) (tokens.Principal, bool) {
	p, ok := c.Get(CtxPrincipal).(tokens.Principal)
	return p, ok
}

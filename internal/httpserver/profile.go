package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/farm_shop/internal/service"
	"github.com/Skotchmaster/farm_shop/internal/transport"
	"github.com/Skotchmaster/farm_shop/pkg/logging"
	authmw "github.com/Skotchmaster/farm_shop/pkg/middleware/auth"
)

type ProfileHTTP struct {
	Svc *service.ProfileService
}

func (h *ProfileHTTP) GetProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "profile.get")

	p, _ := authmw.PrincipalFrom(c)
	profile, err := h.Svc.GetProfile(ctx, p, c.Param("userId"))
	if err != nil {
		return httpError(l, "get_profile_error", err)
	}
	return c.JSON(http.StatusOK, profile)
}

func (h *ProfileHTTP) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "profile.update")

	var patch transport.ProfilePatch
	if err := c.Bind(&patch); err != nil {
		l.Warn("update_profile_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	p, _ := authmw.PrincipalFrom(c)
	if err := h.Svc.UpdateProfile(ctx, p, c.Param("userId"), patch); err != nil {
		return httpError(l, "update_profile_error", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "profile updated"})
}

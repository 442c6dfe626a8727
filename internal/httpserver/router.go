package httpserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/Skotchmaster/farm_shop/pkg/db"
	authmw "github.com/Skotchmaster/farm_shop/pkg/middleware/auth"
)

type Deps struct {
	DB      *gorm.DB
	Gate    *authmw.Gate
	Auth    *AuthHTTP
	Profile *ProfileHTTP
	Orders  *OrderHTTP
	Admin   *AdminHTTP

	// AuthRateLimit is requests per second per client IP on /api/auth.
	// Zero disables the limiter.
	AuthRateLimit float64
	AuthRateBurst int
}

func authLimiter(limit float64, burst int) echo.MiddlewareFunc {
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(limit),
		Burst:     burst,
		ExpiresIn: 3 * time.Minute,
	})
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusForbidden, "cannot identify client")
		},
		DenyHandler: func(c echo.Context, id string, err error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
		},
	})
}

func Register(e *echo.Echo, d *Deps) {
	if e.Validator == nil {
		e.Validator = NewValidator()
	}

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.DB != nil {
			if err := db.Ping(c.Request().Context(), d.DB); err != nil {
				return c.NoContent(http.StatusServiceUnavailable)
			}
		}
		return c.NoContent(http.StatusOK)
	})

	api := e.Group("/api")

	var authMW []echo.MiddlewareFunc
	if d.AuthRateLimit > 0 {
		authMW = append(authMW, authLimiter(d.AuthRateLimit, d.AuthRateBurst))
	}
	auth := api.Group("/auth", authMW...)
	auth.POST("/signup", d.Auth.Signup)
	auth.POST("/login", d.Auth.Login)
	auth.GET("/me", d.Auth.Me, d.Gate.RequireAuth)

	profiles := api.Group("/profiles", d.Gate.RequireAuth)
	profiles.GET("/:userId", d.Profile.GetProfile, d.Gate.RequireOwner("userId"))
	profiles.PUT("/:userId", d.Profile.UpdateProfile, d.Gate.RequireOwner("userId"))

	orders := api.Group("/orders", d.Gate.RequireAuth)
	orders.POST("", d.Orders.CreateOrder)
	orders.POST("/checkout", d.Orders.Checkout)
	orders.GET("", d.Orders.ListOrders)
	orders.GET("/:orderId", d.Orders.GetOrder)
	orders.DELETE("/:orderId", d.Orders.CancelOrder)

	admin := api.Group("/admin", d.Gate.RequireAuth, d.Gate.RequireAdmin)
	admin.GET("/profiles", d.Admin.ListProfiles)
	admin.GET("/orders", d.Admin.ListOrders)
}

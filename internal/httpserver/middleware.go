package httpserver

import (
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/tablegames/shop/internal/logging"
	"github.com/tablegames/shop/internal/models"
	"github.com/tablegames/shop/internal/service"
)

const userContextKey = "user"

// TokenAuth resolves the Authorization header to a user before the
// handler runs.
type TokenAuth struct {
	Tokens *service.TokenService
}

func (t *TokenAuth) RequireToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := t.Tokens.Validate(c.Request().Context(), c.Request().Header.Get(echo.HeaderAuthorization))
		if err != nil {
			return fail(c, err)
		}
		c.Set(userContextKey, user)
		return next(c)
	}
}

func (t *TokenAuth) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return t.RequireToken(func(c echo.Context) error {
		if !currentUser(c).Admin {
			return fail(c, fmt.Errorf("%w: admin required", service.ErrPermission))
		}
		return next(c)
	})
}

// currentUser is only valid behind RequireToken/RequireAdmin.
func currentUser(c echo.Context) *models.User {
	return c.Get(userContextKey).(*models.User)
}

// RequestLogger puts the app logger into the request context so handlers
// and services can pull it with logging.FromContext.
func RequestLogger(l *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			reqLogger := l.With(
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
				"method", req.Method,
				"path", req.URL.Path,
			)
			c.SetRequest(req.WithContext(logging.IntoContext(req.Context(), reqLogger)))
			return next(c)
		}
	}
}

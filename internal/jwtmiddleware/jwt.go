package jwtmiddleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/misthy/shop-api/internal/logging"
	"github.com/misthy/shop-api/internal/token"
)

const (
	UserIDKey = "userID"
	EmailKey  = "email"
)

// RequireAuth verifies the bearer token and stores the subject id and email
// on the echo context.
func RequireAuth(issuer *token.Issuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			l := logging.FromContext(c.Request().Context()).With("middleware", "require_auth")

			raw := bearerToken(c)
			if raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}

			claims, err := issuer.Verify(raw)
			if err != nil {
				l.Warn("token_rejected", "status", 401, "error", err)
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}

			userID, err := claims.UserID()
			if err != nil {
				l.Warn("token_rejected", "status", 401, "reason", "bad subject", "error", err)
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}

			c.Set(UserIDKey, userID)
			c.Set(EmailKey, claims.Email)
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) string {
	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

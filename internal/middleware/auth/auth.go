// Package auth holds the two request gates: RequireAuth answers "who are
// you", RequireRole answers "are you allowed". They are separate
// middlewares applied in that order.
package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/toggar/toggar-backend/internal/tokens"
)

const claimsKey = "claims"

func RequireAuth(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Access token required")
			}

			claims, err := tokens.Parse(raw, secret)
			if err != nil {
				return echo.NewHTTPError(http.StatusForbidden, "Invalid token")
			}

			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(claimsKey).(*tokens.Claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Access token required")
			}
			if claims.Role != role {
				return echo.NewHTTPError(http.StatusForbidden, title(role)+" access required")
			}
			return next(c)
		}
	}
}

// ClaimsFromContext returns the claims RequireAuth attached, or nil on a
// route that never went through it.
func ClaimsFromContext(c echo.Context) *tokens.Claims {
	claims, _ := c.Get(claimsKey).(*tokens.Claims)
	return claims
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

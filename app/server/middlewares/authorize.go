package middlewares

import (
	"jwt-auth-service/app/server/security"

	"github.com/labstack/echo/v4"
)

// RequireAuthenticated 要求请求已经由 JWTAuth 建立身份
func RequireAuthenticated(ep EntryPoint) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := security.FromContext(c.Request().Context()); !ok {
				return ep(c, ErrNotAuthenticated)
			}

			return next(c)
		}
	}
}

// RequireAuthority 要求身份至少拥有 authorities 中的一个
func RequireAuthority(ep EntryPoint, denied AccessDeniedHandler, authorities ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := security.FromContext(c.Request().Context())
			if !ok {
				return ep(c, ErrNotAuthenticated)
			}

			if !identity.HasAnyAuthority(authorities...) {
				return denied(c, ErrInsufficientAuthority)
			}

			return next(c)
		}
	}
}

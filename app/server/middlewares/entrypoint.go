package middlewares

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

var (
	ErrNotAuthenticated      = errors.New("authentication required")
	ErrInsufficientAuthority = errors.New("insufficient authority")
)

const (
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
)

type ErrorMessage struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// EntryPoint 处理未认证（没有或无效的令牌）的请求
type EntryPoint func(c echo.Context, err error) error

// AccessDeniedHandler 处理已认证但权限不足的请求
type AccessDeniedHandler func(c echo.Context, err error) error

func DefaultEntryPoint(c echo.Context, _ error) error {
	return c.JSON(http.StatusUnauthorized, &ErrorMessage{
		Message: http.StatusText(http.StatusUnauthorized),
		Code:    CodeUnauthorized,
	})
}

func DefaultAccessDeniedHandler(c echo.Context, _ error) error {
	return c.JSON(http.StatusForbidden, &ErrorMessage{
		Message: http.StatusText(http.StatusForbidden),
		Code:    CodeForbidden,
	})
}

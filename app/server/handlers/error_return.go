package handlers

import (
	"errors"
	"jwt-auth-service/app/server/middlewares"
	"jwt-auth-service/app/server/security"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	CodeBadRequest       = "BAD_REQUEST"
	CodeDuplicateMember  = "DUPLICATE_MEMBER"
	CodeNotFoundMember   = "NOT_FOUND_MEMBER"
	CodeNotFound         = "NOT_FOUND"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeInternalError    = "INTERNAL_ERROR"
)

var statusCodes = map[int]string{
	http.StatusBadRequest:          CodeBadRequest,
	http.StatusUnauthorized:        middlewares.CodeUnauthorized,
	http.StatusForbidden:           middlewares.CodeForbidden,
	http.StatusNotFound:            CodeNotFound,
	http.StatusMethodNotAllowed:    CodeMethodNotAllowed,
	http.StatusInternalServerError: CodeInternalError,
}

func (a *App) er(c echo.Context, statusCode int, code string) error {
	return c.JSON(statusCode, &middlewares.ErrorMessage{
		Message: http.StatusText(statusCode),
		Code:    code,
	})
}

// HTTPErrorHandler 保证框架层面的错误（路由不存在、请求体过大等）也使用同样的响应格式
func (a *App) HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	statusCode := http.StatusInternalServerError
	var he *echo.HTTPError
	if errors.As(err, &he) {
		statusCode = he.Code
	} else {
		a.l.Error("unhandled error", zap.String("URI", c.Request().RequestURI), zap.Error(err))
	}

	// 未匹配到路由（路径或方法）时，未认证的请求一律先交给 EntryPoint
	if statusCode == http.StatusNotFound || statusCode == http.StatusMethodNotAllowed {
		if _, ok := security.FromContext(c.Request().Context()); !ok {
			if epErr := a.ep(c, middlewares.ErrNotAuthenticated); epErr != nil {
				a.l.Error("failed to write error response", zap.Error(epErr))
			}
			return
		}
	}

	code, ok := statusCodes[statusCode]
	if !ok {
		code = CodeBadRequest
		if statusCode >= http.StatusInternalServerError {
			code = CodeInternalError
		}
	}

	var respErr error
	if c.Request().Method == http.MethodHead {
		respErr = c.NoContent(statusCode)
	} else {
		respErr = a.er(c, statusCode, code)
	}
	if respErr != nil {
		a.l.Error("failed to write error response", zap.Error(respErr))
	}
}

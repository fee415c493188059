package handlers

import (
	"errors"
	"jwt-auth-service/app/server/service"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func (a *App) UserInfoGetSelf(c echo.Context) error {
	rctx := c.Request().Context()

	// 从 context 中取得当前用户
	user, err := a.users.GetMyUserWithAuthorities(rctx)
	if err != nil {
		if errors.Is(err, service.ErrNotFoundMember) {
			return a.er(c, http.StatusNotFound, CodeNotFoundMember)
		}
		a.l.Error("failed to get current user", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, CodeInternalError)
	}

	return c.JSON(http.StatusOK, user)
}

// UserInfoGet 仅限管理员，用户不存在时返回 null
func (a *App) UserInfoGet(c echo.Context) error {
	rctx := c.Request().Context()
	username := c.Param("username")

	user, err := a.users.GetUserWithAuthorities(rctx, username)
	if err != nil {
		a.l.Error("failed to get user", zap.String("username", username), zap.Error(err))
		return a.er(c, http.StatusInternalServerError, CodeInternalError)
	}

	return c.JSON(http.StatusOK, user)
}

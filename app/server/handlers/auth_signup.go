package handlers

import (
	"errors"
	"jwt-auth-service/app/server/service"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func (a *App) AuthSignup(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		a.l.Debug("failed to bind json body", zap.Error(err))
		return a.er(c, http.StatusBadRequest, CodeBadRequest)
	}
	req.Normalize()

	if err := req.Validate(); err != nil {
		return a.er(c, http.StatusBadRequest, CodeBadRequest)
	}

	// 创建用户
	user, err := a.users.Signup(rctx, service.SignupInput{
		Username: req.Username,
		Password: req.Password,
		Nickname: req.Nickname,
	})
	if err != nil {
		if errors.Is(err, service.ErrDuplicateMember) {
			return a.er(c, http.StatusConflict, CodeDuplicateMember)
		}
		a.l.Error("failed to create user", zap.String("username", req.Username), zap.Error(err))
		return a.er(c, http.StatusInternalServerError, CodeInternalError)
	}

	return c.JSON(http.StatusCreated, user)
}

package handlers

import (
	"errors"
	"jwt-auth-service/app/server/constants"
	"jwt-auth-service/app/server/security"
	"jwt-auth-service/app/server/service"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func (a *App) AuthAuthenticate(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		a.l.Debug("failed to bind json body", zap.Error(err))
		return a.er(c, http.StatusBadRequest, CodeBadRequest)
	}

	// 没有写用户名或密码
	req.Normalize()
	if err := req.Validate(); err != nil {
		return a.er(c, http.StatusBadRequest, CodeBadRequest)
	}

	// 校验用户名和密码
	identity, err := a.users.Authenticate(rctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return a.ep(c, err)
		}
		a.l.Error("failed to authenticate user", zap.String("username", req.Username), zap.Error(err))
		return a.er(c, http.StatusInternalServerError, CodeInternalError)
	}

	// 设置 context
	c.SetRequest(c.Request().WithContext(security.WithIdentity(rctx, identity)))

	// 签出 JWT
	token, err := a.issueToken(c)
	if err != nil {
		a.l.Error("failed to sign token", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, CodeInternalError)
	}

	// 返回
	c.Response().Header().Set(constants.AuthHeader, constants.AuthBearerPrefix+token)
	return c.JSON(http.StatusOK, &TokenResponse{
		Token: token,
	})
}

// issueToken 为当前请求中的身份签发令牌
func (a *App) issueToken(c echo.Context) (string, error) {
	identity, ok := security.FromContext(c.Request().Context())
	if !ok {
		return "", errors.New("no identity in request context")
	}

	return a.jwt.Issue(identity.Username, identity.Authorities)
}

package middlewares

import (
	"errors"
	"jwt-auth-service/app/server/constants"
	"jwt-auth-service/app/server/jwt"
	"jwt-auth-service/app/server/security"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// ContextKeyClaims 是 echo context 中保存令牌声明的键
const ContextKeyClaims = "user"

type TokenVerifier interface {
	Verify(tokenString string) (*jwt.Claims, error)
	Subject(tokenString string) (string, error)
}

// JWTAuth 从 Authorization 头中提取并校验令牌，成功时把身份放进请求 context 。
// 令牌缺失或无效时不在这里拦截，请求以未认证状态继续，
// 由路由上的 RequireAuthenticated / RequireAuthority 统一交给 EntryPoint 处理。
func JWTAuth(j TokenVerifier, l *zap.Logger, skipper middleware.Skipper) echo.MiddlewareFunc {
	if skipper == nil {
		skipper = middleware.DefaultSkipper
	}

	return echojwt.WithConfig(echojwt.Config{
		Skipper:     skipper,
		ContextKey:  ContextKeyClaims,
		TokenLookup: "header:" + constants.AuthHeader + ":" + constants.AuthBearerPrefix,
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			claims, err := j.Verify(auth)
			if err != nil {
				logRejectedToken(c, j, l, auth, err)
				return nil, err
			}
			return claims, nil
		},
		SuccessHandler: func(c echo.Context) {
			claims, ok := c.Get(ContextKeyClaims).(*jwt.Claims)
			if !ok {
				return
			}

			// 设置 context
			req := c.Request()
			c.SetRequest(req.WithContext(security.WithIdentity(req.Context(), &security.Identity{
				Username:    claims.Subject,
				Authorities: claims.Authorities(),
			})))
		},
		ErrorHandler: func(c echo.Context, err error) error {
			// 忽略错误，继续处理
			return nil
		},
		ContinueOnIgnoredError: true,
	})
}

func logRejectedToken(c echo.Context, j TokenVerifier, l *zap.Logger, auth string, err error) {
	uri := zap.String("URI", c.Request().RequestURI)

	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		subject, _ := j.Subject(auth)
		l.Debug("expired token", uri, zap.String("subject", subject))
	case errors.Is(err, jwt.ErrTokenBadSignature):
		l.Info("token with invalid signature", uri, zap.Error(err))
	default:
		l.Debug("malformed token", uri, zap.Error(err))
	}
}

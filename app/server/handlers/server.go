package handlers

import (
	"jwt-auth-service/app/server/apidocs"
	"jwt-auth-service/app/server/constants"
	"jwt-auth-service/app/server/middlewares"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

type ServerOptions struct {
	CORSOrigins []string
	EnableDocs  bool
}

// NewServer 准备 echo 服务。中间件按列表顺序执行，认证过滤器必须位于所有路由权限检查之前。
func (a *App) NewServer(opts ServerOptions) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = a.HTTPErrorHandler

	// 添加 API 文档
	if opts.EnableDocs {
		if swgJson, err := apidocs.Spec().MarshalJSON(); err != nil {
			a.l.Error("error initializing swagger", zap.Error(err))
		} else {
			e.Pre(apidocs.Doc("/api", swgJson))
		}
	}

	chain := []echo.MiddlewareFunc{
		middleware.Recover(),
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{
			Generator: uuid.NewString,
		}),
		middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
			LogURI:       true,
			LogStatus:    true,
			LogMethod:    true,
			LogLatency:   true,
			LogRequestID: true,
			LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
				a.l.Info("request",
					zap.String("method", v.Method),
					zap.String("URI", v.URI),
					zap.Int("status", v.Status),
					zap.String("requestID", v.RequestID),
					zap.Duration("latency", v.Latency.Round(time.Microsecond)),
				)

				return nil
			},
		}),
		middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:  opts.CORSOrigins,
			AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
			ExposeHeaders: []string{echo.HeaderAuthorization},
		}),
		middleware.BodyLimit("1M"),
		middlewares.JWTAuth(a.jwt, a.l, nil),
	}
	e.Use(chain...)

	a.RegisterHandlers(e)

	return e
}

func (a *App) RegisterHandlers(e *echo.Echo) {
	requireUser := middlewares.RequireAuthority(a.ep, a.denied, constants.AuthorityUser, constants.AuthorityAdmin)
	requireAdmin := middlewares.RequireAuthority(a.ep, a.denied, constants.AuthorityAdmin)

	e.GET("/healthz", a.HealthCheck)

	api := e.Group("/api")

	// 无需认证
	api.GET("/hello", a.Hello)
	api.POST("/authenticate", a.AuthAuthenticate)
	api.POST("/signup", a.AuthSignup)

	// 需要认证
	api.GET("/user", a.UserInfoGetSelf, requireUser)
	api.GET("/user/:username", a.UserInfoGet, requireAdmin)
}

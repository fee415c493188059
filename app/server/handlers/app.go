package handlers

import (
	"jwt-auth-service/app/server/jwt"
	"jwt-auth-service/app/server/middlewares"
	"jwt-auth-service/app/server/service"

	"go.uber.org/zap"
)

type App struct {
	l      *zap.Logger                     // 日志
	jwt    *jwt.JWT                        // JWT ，用于无状态验证
	users  *service.UserService            // 用户相关业务
	ep     middlewares.EntryPoint          // 未认证时的响应
	denied middlewares.AccessDeniedHandler // 权限不足时的响应
}

func NewApp(l *zap.Logger, j *jwt.JWT, users *service.UserService) *App {
	return &App{
		l:      l,
		jwt:    j,
		users:  users,
		ep:     middlewares.DefaultEntryPoint,
		denied: middlewares.DefaultAccessDeniedHandler,
	}
}

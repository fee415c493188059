package main

import (
	"fmt"
	"jwt-auth-service/app/server/handlers"
	"jwt-auth-service/app/server/inits"
	"jwt-auth-service/app/server/jwt"
	"jwt-auth-service/app/server/password"
	"jwt-auth-service/app/server/service"
	"jwt-auth-service/app/server/store"
	"log"

	"go.uber.org/zap"
)

func main() {
	// 初始化配置
	cfg, err := inits.Config()
	if err != nil {
		log.Fatal(fmt.Errorf("error loading config: %w", err))
	}

	// 初始化日志
	l, err := inits.Logger(!cfg.System.IsProd)
	if err != nil {
		log.Fatal(fmt.Errorf("error initializing logger: %w", err))
	}
	defer func() { _ = l.Sync() }()

	// 切换日志系统
	l.Debug("logger initialized")

	// 初始化密码 hash
	hasher := password.New(nil)

	// 初始化数据库连接
	db, err := inits.DB(cfg.System.DBConnectionString, hasher, cfg.Security.AdminPassword)
	if err != nil {
		l.Fatal("error initializing DB connection", zap.Error(err))
	}

	// 初始化 redis 连接
	rdb, err := inits.Redis(cfg.System.RedisConnectionString)
	if err != nil {
		l.Fatal("error initializing Redis connection", zap.Error(err))
	}

	// 初始化 JWT
	j, err := jwt.New(cfg.Security.SignatureSecretKey, cfg.Security.TokenValidity)
	if err != nil {
		l.Fatal("error initializing JWT", zap.Error(err))
	}

	// 准备用户存储，配置了 redis 时加一层缓存
	var users store.UserStore = store.NewGormUserStore(db)
	if rdb != nil {
		users = store.NewCachedUserStore(users, rdb, l)
	} else {
		l.Info("redis not configured, user cache disabled")
	}

	// 准备 handler app
	handlerApp := handlers.NewApp(l, j, service.NewUserService(l, users, hasher))

	// 准备 echo 服务
	e := handlerApp.NewServer(handlers.ServerOptions{
		CORSOrigins: cfg.System.CORSOrigins,
		EnableDocs:  !cfg.System.IsProd,
	})

	// 启动 echo 服务
	if err := e.Start(cfg.System.Listen); err != nil {
		l.Fatal("shutting down the server", zap.Error(err))
	}
}

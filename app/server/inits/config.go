package inits

import (
	"fmt"
	"jwt-auth-service/app/server/config"
	"jwt-auth-service/app/server/constants"
	"os"
	"strings"
	"time"
)

func Config() (*config.Config, error) {
	var cfg config.Config

	// 手动配置映射，和 worker 保持一致
	{
		mode, exist := os.LookupEnv("MODE")
		cfg.System.IsProd = exist && strings.HasPrefix(strings.ToLower(mode), "p")
	}

	if listen, exist := os.LookupEnv("LISTEN"); !exist {
		cfg.System.Listen = ":1323" // 默认监听地址
	} else {
		cfg.System.Listen = listen
	}

	if dbconn, exist := os.LookupEnv("DB_CONN"); !exist {
		return nil, fmt.Errorf("DB_CONN environment variable not set")
	} else {
		cfg.System.DBConnectionString = dbconn
	}

	// redis 是可选的，没有就直接查数据库
	if redisconn, exist := os.LookupEnv("REDIS_CONN"); exist {
		cfg.System.RedisConnectionString = redisconn
	}

	if origins, exist := os.LookupEnv("CORS_ORIGINS"); !exist {
		cfg.System.CORSOrigins = []string{"*"}
	} else {
		for _, origin := range strings.Split(origins, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.System.CORSOrigins = append(cfg.System.CORSOrigins, origin)
			}
		}
	}

	if sigsk, exist := os.LookupEnv("SIGNATURE_SECRET_KEY"); !exist {
		return nil, fmt.Errorf("SIGNATURE_SECRET_KEY environment variable not set")
	} else {
		cfg.Security.SignatureSecretKey = sigsk
	}

	if validityStr, exist := os.LookupEnv("TOKEN_VALIDITY"); !exist {
		cfg.Security.TokenValidity = constants.AuthTokenDuration
	} else if validity, err := time.ParseDuration(validityStr); err != nil {
		return nil, fmt.Errorf("TOKEN_VALIDITY should be a valid duration")
	} else if validity <= 0 {
		return nil, fmt.Errorf("TOKEN_VALIDITY should be positive")
	} else {
		cfg.Security.TokenValidity = validity
	}

	if adminPassword, exist := os.LookupEnv("ADMIN_PASSWORD"); !exist {
		cfg.Security.AdminPassword = constants.DefaultAdminPassword
	} else {
		cfg.Security.AdminPassword = adminPassword
	}

	return &cfg, nil
}

package config

import "time"

type Config struct {
	System struct {
		IsProd                bool     // 是否为生产环境
		Listen                string   // 监听地址
		DBConnectionString    string   // Postgres 数据库的连接字符串
		RedisConnectionString string   // Redis 数据库的连接字符串，留空则不启用缓存
		CORSOrigins           []string // 允许跨域的来源
	}
	Security struct {
		SignatureSecretKey string        // 签名密钥，用于签发 JWT ，更新会导致旧有令牌全部失效
		TokenValidity      time.Duration // 令牌有效期
		AdminPassword      string        // 初始管理员密码，仅在数据库中没有管理员时使用
	}
}

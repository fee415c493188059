package constants

import "time"

const (
	AuthTokenDuration = 1 * time.Hour // 默认令牌有效期

	AuthHeader       = "Authorization"
	AuthBearerPrefix = "Bearer "

	AuthorityDelimiter = ","
)

// 权限
const (
	AuthorityUser  = "ROLE_USER"
	AuthorityAdmin = "ROLE_ADMIN"
)

// 初始数据
const (
	DefaultAdminUsername = "admin"
	DefaultAdminNickname = "admin"
	DefaultAdminPassword = "admin"
)

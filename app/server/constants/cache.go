package constants

import "time"

const (
	CacheKeyUserInfo = "auth:user:info:%s" // %s -> username
)

const (
	CacheExpireUserInfo = 10 * time.Minute
)

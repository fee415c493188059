package inits

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis 连接缓存。连接串为空时不启用缓存，返回 nil
func Redis(conn string) (*redis.Client, error) {
	if conn == "" {
		return nil, nil
	}

	// 解析连接串
	opts, err := redis.ParseURL(conn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis connection string: %w", err)
	}

	rdb := redis.NewClient(opts)

	// 检查连接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err = rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return rdb, nil
}

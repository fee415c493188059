package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"jwt-auth-service/app/server/constants"
	"jwt-auth-service/app/server/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// CachedUserStore 在 UserStore 前加一层 redis 缓存，只缓存命中的记录
type CachedUserStore struct {
	next UserStore
	rdb  *redis.Client
	l    *zap.Logger
}

// cachedUser 是缓存中保存的字段。登录校验需要 hash ，所以它也在缓存里，
// 其余的 gorm 字段（时间戳、软删除）不缓存
type cachedUser struct {
	ID           uint     `json:"id"`
	Username     string   `json:"username"`
	Nickname     string   `json:"nickname"`
	Activated    bool     `json:"activated"`
	PasswordHash string   `json:"password_hash"`
	Authorities  []string `json:"authorities"`
}

func newCachedUser(user *models.User) *cachedUser {
	return &cachedUser{
		ID:           user.ID,
		Username:     user.Username,
		Nickname:     user.Nickname,
		Activated:    user.Activated,
		PasswordHash: user.Password,
		Authorities:  user.AuthorityNames(),
	}
}

func (u *cachedUser) model() *models.User {
	user := &models.User{
		Username:    u.Username,
		Nickname:    u.Nickname,
		Activated:   u.Activated,
		Password:    u.PasswordHash,
		Authorities: make([]models.Authority, 0, len(u.Authorities)),
	}
	user.ID = u.ID
	for _, name := range u.Authorities {
		user.Authorities = append(user.Authorities, models.Authority{Name: name})
	}
	return user
}

func NewCachedUserStore(next UserStore, rdb *redis.Client, l *zap.Logger) *CachedUserStore {
	return &CachedUserStore{
		next: next,
		rdb:  rdb,
		l:    l,
	}
}

func (s *CachedUserStore) FindByUsernameWithAuthorities(ctx context.Context, username string) (*models.User, error) {
	cacheKey := fmt.Sprintf(constants.CacheKeyUserInfo, username)

	// 查询缓存
	var user cachedUser
	if cacheBytes, err := s.rdb.Get(ctx, cacheKey).Bytes(); err != nil {
		if !errors.Is(err, redis.Nil) {
			s.l.Error("failed to query cache for user info", zap.String("username", username), zap.Error(err))
		}
	} else if err = json.Unmarshal(cacheBytes, &user); err != nil {
		s.l.Error("failed to unmarshal user info", zap.String("username", username), zap.Error(err))
		// 可能是无效的缓存，清理掉
		s.rdb.Del(ctx, cacheKey)
	} else {
		return user.model(), nil
	}

	// 查询数据库
	found, err := s.next.FindByUsernameWithAuthorities(ctx, username)
	if err != nil {
		return nil, err
	}

	// 格式化并加入缓存，方便下一次查询
	if cacheBytes, err := json.Marshal(newCachedUser(found)); err != nil {
		s.l.Error("failed to marshal user info", zap.String("username", username), zap.Error(err))
	} else if err = s.rdb.Set(ctx, cacheKey, cacheBytes, constants.CacheExpireUserInfo).Err(); err != nil {
		s.l.Error("failed to cache user info", zap.String("username", username), zap.Error(err))
	}

	return found, nil
}

func (s *CachedUserStore) Save(ctx context.Context, user *models.User) (*models.User, error) {
	saved, err := s.next.Save(ctx, user)
	if err != nil {
		return nil, err
	}

	// 清理旧缓存
	if err = s.rdb.Del(ctx, fmt.Sprintf(constants.CacheKeyUserInfo, saved.Username)).Err(); err != nil {
		s.l.Error("failed to invalidate user info", zap.String("username", saved.Username), zap.Error(err))
	}

	return saved, nil
}

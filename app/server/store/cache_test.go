package store

import (
	"context"
	"fmt"
	"jwt-auth-service/app/server/constants"
	"jwt-auth-service/app/server/models"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// countingStore 记录下层被查询的次数
type countingStore struct {
	UserStore
	finds int
}

func (s *countingStore) FindByUsernameWithAuthorities(ctx context.Context, username string) (*models.User, error) {
	s.finds++
	return s.UserStore.FindByUsernameWithAuthorities(ctx, username)
}

func setupCachedStore(t *testing.T) (*CachedUserStore, *countingStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	next := &countingStore{UserStore: NewMemoryUserStore()}
	return NewCachedUserStore(next, rdb, zap.NewNop()), next, mr
}

func TestCachedUserStoreCachesHits(t *testing.T) {
	ctx := context.Background()
	s, next, mr := setupCachedStore(t)

	_, err := s.Save(ctx, newTestUser(t, "alice", "Al"))
	require.NoError(t, err)

	first, err := s.FindByUsernameWithAuthorities(ctx, "alice")
	require.NoError(t, err)
	second, err := s.FindByUsernameWithAuthorities(ctx, "alice")
	require.NoError(t, err)

	assert.Equal(t, 1, next.finds)
	assert.Equal(t, first.Username, second.Username)
	assert.Equal(t, first.Password, second.Password)
	assert.Equal(t, []string{"ROLE_USER"}, second.AuthorityNames())

	key := fmt.Sprintf(constants.CacheKeyUserInfo, "alice")
	assert.True(t, mr.Exists(key))
	assert.Equal(t, constants.CacheExpireUserInfo, mr.TTL(key))
}

func TestCachedUserStoreEntryFields(t *testing.T) {
	ctx := context.Background()
	s, _, mr := setupCachedStore(t)

	saved, err := s.Save(ctx, newTestUser(t, "alice", "Al"))
	require.NoError(t, err)

	first, err := s.FindByUsernameWithAuthorities(ctx, "alice")
	require.NoError(t, err)

	cached, err := mr.Get(fmt.Sprintf(constants.CacheKeyUserInfo, "alice"))
	require.NoError(t, err)
	assert.JSONEq(t, fmt.Sprintf(
		`{"id":%d,"username":"alice","nickname":"Al","activated":true,"password_hash":"hash","authorities":["ROLE_USER"]}`,
		saved.ID,
	), cached)

	// 命中缓存时得到和数据库相同的结果
	second, err := s.FindByUsernameWithAuthorities(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Password, second.Password)
	assert.Equal(t, first.Activated, second.Activated)
	assert.Equal(t, first.AuthorityNames(), second.AuthorityNames())
}

func TestCachedUserStoreDoesNotCacheMisses(t *testing.T) {
	ctx := context.Background()
	s, next, mr := setupCachedStore(t)

	_, err := s.FindByUsernameWithAuthorities(ctx, "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.FindByUsernameWithAuthorities(ctx, "ghost")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, 2, next.finds)
	assert.False(t, mr.Exists(fmt.Sprintf(constants.CacheKeyUserInfo, "ghost")))
}

func TestCachedUserStoreDropsInvalidEntry(t *testing.T) {
	ctx := context.Background()
	s, next, mr := setupCachedStore(t)

	_, err := s.Save(ctx, newTestUser(t, "alice", "Al"))
	require.NoError(t, err)

	key := fmt.Sprintf(constants.CacheKeyUserInfo, "alice")
	require.NoError(t, mr.Set(key, "{not json"))

	found, err := s.FindByUsernameWithAuthorities(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Al", found.Nickname)
	assert.Equal(t, 1, next.finds)

	// 重新写入了有效的缓存
	cached, err := mr.Get(key)
	require.NoError(t, err)
	assert.Contains(t, cached, `"username":"alice"`)
}

func TestCachedUserStoreSaveInvalidates(t *testing.T) {
	ctx := context.Background()
	s, _, mr := setupCachedStore(t)

	key := fmt.Sprintf(constants.CacheKeyUserInfo, "alice")
	require.NoError(t, mr.Set(key, "stale"))

	_, err := s.Save(ctx, newTestUser(t, "alice", "Al"))
	require.NoError(t, err)
	assert.False(t, mr.Exists(key))

	_, err = s.Save(ctx, newTestUser(t, "alice", "Al2"))
	assert.ErrorIs(t, err, ErrDuplicateUser)
}

func TestCachedUserStoreRedisDown(t *testing.T) {
	ctx := context.Background()
	s, next, mr := setupCachedStore(t)

	_, err := s.Save(ctx, newTestUser(t, "alice", "Al"))
	require.NoError(t, err)

	// redis 不可用时直接回落到下层
	mr.Close()
	found, err := s.FindByUsernameWithAuthorities(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", found.Username)
	assert.Equal(t, 1, next.finds)
}

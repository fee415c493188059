package store

import (
	"context"
	"encoding/json"
	"fmt"
	"jwt-auth-service/app/server/models"
	"sync"
)

// MemoryUserStore 是进程内的 UserStore ，给测试和本地调试使用。
// 读写都返回副本，调用方修改不会影响已保存的数据。
type MemoryUserStore struct {
	lock   sync.RWMutex
	nextID uint
	users  map[string]*models.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		nextID: 1,
		users:  make(map[string]*models.User),
	}
}

func (s *MemoryUserStore) FindByUsernameWithAuthorities(_ context.Context, username string) (*models.User, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	user, ok := s.users[username]
	if !ok {
		return nil, ErrNotFound
	}

	return cloneUser(user)
}

func (s *MemoryUserStore) Save(_ context.Context, user *models.User) (*models.User, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.users[user.Username]; ok {
		return nil, ErrDuplicateUser
	}

	user.ID = s.nextID
	s.nextID++

	stored, err := cloneUser(user)
	if err != nil {
		return nil, err
	}
	s.users[user.Username] = stored

	return user, nil
}

func (s *MemoryUserStore) Len() int {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return len(s.users)
}

func cloneUser(user *models.User) (*models.User, error) {
	b, err := json.Marshal(user)
	if err != nil {
		return nil, fmt.Errorf("clone user: %w", err)
	}

	var clone models.User
	if err = json.Unmarshal(b, &clone); err != nil {
		return nil, fmt.Errorf("clone user: %w", err)
	}

	return &clone, nil
}

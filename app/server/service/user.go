package service

import (
	"context"
	"errors"
	"fmt"
	"jwt-auth-service/app/server/constants"
	"jwt-auth-service/app/server/models"
	"jwt-auth-service/app/server/security"
	"jwt-auth-service/app/server/store"

	"go.uber.org/zap"
)

type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// UserDTO 是对外展示的用户信息，不包含密码
type UserDTO struct {
	Username    string   `json:"username"`
	Nickname    string   `json:"nickname"`
	Authorities []string `json:"authorities"`
}

func NewUserDTO(user *models.User) *UserDTO {
	if user == nil {
		return nil
	}

	return &UserDTO{
		Username:    user.Username,
		Nickname:    user.Nickname,
		Authorities: user.AuthorityNames(),
	}
}

type SignupInput struct {
	Username string
	Password string
	Nickname string
}

type UserService struct {
	l      *zap.Logger
	store  store.UserStore
	hasher PasswordHasher

	// 用户不存在时用来比较的 hash ，让两种失败花费相同的时间
	dummyHash string
}

const dummyPassword = "dummy-password-for-unknown-users"

func NewUserService(l *zap.Logger, s store.UserStore, hasher PasswordHasher) *UserService {
	dummyHash, err := hasher.Hash(dummyPassword)
	if err != nil {
		l.Error("failed to prepare dummy password hash", zap.Error(err))
	}

	return &UserService{
		l:         l,
		store:     s,
		hasher:    hasher,
		dummyHash: dummyHash,
	}
}

func (s *UserService) Signup(ctx context.Context, in SignupInput) (*UserDTO, error) {
	// 检查是否已存在
	if _, err := s.store.FindByUsernameWithAuthorities(ctx, in.Username); err == nil {
		return nil, ErrDuplicateMember
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	// 处理密码
	passwordHash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 创建用户，新用户只有普通权限
	user, err := models.NewUser(in.Username, passwordHash, in.Nickname, models.Authority{Name: constants.AuthorityUser})
	if err != nil {
		return nil, fmt.Errorf("build user: %w", err)
	}

	saved, err := s.store.Save(ctx, user)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateUser) {
			// 并发注册同名用户，被唯一索引拦下
			s.l.Info("signup lost race on unique username", zap.String("username", in.Username))
			return nil, ErrDuplicateMember
		}
		return nil, fmt.Errorf("save user: %w", err)
	}

	return NewUserDTO(saved), nil
}

// Authenticate 校验用户名和密码，失败时不区分用户不存在和密码错误
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*security.Identity, error) {
	user, err := s.store.FindByUsernameWithAuthorities(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.hasher.Verify(password, s.dummyHash)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !s.hasher.Verify(password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	if !user.Activated {
		s.l.Info("deactivated user tried to log in", zap.String("username", username))
		return nil, ErrInvalidCredentials
	}

	return &security.Identity{
		Username:    user.Username,
		Authorities: user.AuthorityNames(),
	}, nil
}

// GetUserWithAuthorities 查询指定用户，不存在时返回 nil
func (s *UserService) GetUserWithAuthorities(ctx context.Context, username string) (*UserDTO, error) {
	user, err := s.store.FindByUsernameWithAuthorities(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	return NewUserDTO(user), nil
}

// GetMyUserWithAuthorities 查询当前请求认证的用户
func (s *UserService) GetMyUserWithAuthorities(ctx context.Context) (*UserDTO, error) {
	username, ok := security.CurrentUsername(ctx)
	if !ok {
		return nil, ErrNotFoundMember
	}

	user, err := s.store.FindByUsernameWithAuthorities(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// 令牌签发后用户被删除
			return nil, ErrNotFoundMember
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	return NewUserDTO(user), nil
}

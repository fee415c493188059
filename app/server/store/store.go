package store

import (
	"context"
	"errors"
	"jwt-auth-service/app/server/models"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrDuplicateUser = errors.New("username already exists")
)

// UserStore 按用户名查询用户（连同权限）和保存用户
type UserStore interface {
	FindByUsernameWithAuthorities(ctx context.Context, username string) (*models.User, error)
	Save(ctx context.Context, user *models.User) (*models.User, error)
}

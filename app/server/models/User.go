package models

import (
	"errors"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model

	// 基础信息
	Username  string `gorm:"column:username;size:50;uniqueIndex;not null"` // 用户名，全局唯一
	Nickname  string `gorm:"column:nickname;size:50"`                      // 昵称
	Activated bool   `gorm:"column:activated"`                             // 是否已激活，未激活的用户不能登录

	// 登录与授权认证相关
	Password    string      `gorm:"column:password;size:100;not null"` // 密码，使用 argon2id 储存
	Authorities []Authority `gorm:"many2many:user_authority"`          // 权限
}

func NewUser(username, passwordHash, nickname string, authorities ...Authority) (*User, error) {
	if username == "" {
		return nil, errors.New("username is required")
	}
	if passwordHash == "" {
		return nil, errors.New("password hash is required")
	}
	if len(authorities) == 0 {
		return nil, errors.New("at least one authority is required")
	}

	return &User{
		Username:    username,
		Nickname:    nickname,
		Activated:   true,
		Password:    passwordHash,
		Authorities: authorities,
	}, nil
}

func (u *User) AuthorityNames() []string {
	names := make([]string, 0, len(u.Authorities))
	for _, authority := range u.Authorities {
		names = append(names, authority.Name)
	}
	return names
}

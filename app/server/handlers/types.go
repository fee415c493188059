package handlers

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Normalize 和注册时使用相同的用户名规则
func (r *LoginRequest) Normalize() {
	r.Username = normalizeUsername(r.Username)
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.By(notBlank), validation.RuneLength(1, 50)),
		validation.Field(&r.Password, validation.Required, validation.By(notBlank), validation.RuneLength(1, 100)),
	)
}

type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
}

func (r *SignupRequest) Normalize() {
	r.Username = normalizeUsername(r.Username)
	r.Nickname = strings.TrimSpace(r.Nickname)
}

func (r SignupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.By(notBlank), validation.RuneLength(1, 50)),
		validation.Field(&r.Password, validation.Required, validation.By(notBlank), validation.RuneLength(1, 100)),
		validation.Field(&r.Nickname, validation.Required, validation.By(notBlank), validation.RuneLength(1, 50)),
	)
}

type TokenResponse struct {
	Token string `json:"token"`
}

// normalizeUsername 去掉首尾空白，注册和登录都经过这里
func normalizeUsername(username string) string {
	return strings.TrimSpace(username)
}

func notBlank(value interface{}) error {
	if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
		return errors.New("cannot be blank")
	}
	return nil
}

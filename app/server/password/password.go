package password

import (
	"errors"
	"fmt"

	"github.com/alexedwards/argon2id"
)

// Hasher 使用 argon2id 产生带随机盐的密码 hash
type Hasher struct {
	params *argon2id.Params
}

func New(params *argon2id.Params) *Hasher {
	if params == nil {
		params = argon2id.DefaultParams
	}

	return &Hasher{params: params}
}

func (h *Hasher) Hash(plaintext string) (string, error) {
	if len(plaintext) == 0 {
		return "", errors.New("password is empty")
	}

	hash, err := argon2id.CreateHash(plaintext, h.params)
	if err != nil {
		return "", fmt.Errorf("create hash: %w", err)
	}

	return hash, nil
}

// Verify 使用 hash 中记录的盐和参数重新计算并比较（常数时间）。
// 无法解析的 hash 视为不匹配。
func (h *Hasher) Verify(plaintext, hash string) bool {
	match, err := argon2id.ComparePasswordAndHash(plaintext, hash)
	if err != nil {
		return false
	}

	return match
}

package jwt

import (
	"errors"
	"fmt"
	"jwt-auth-service/app/server/constants"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenMalformed    = errors.New("token is malformed")
	ErrTokenBadSignature = errors.New("token signature is invalid")
	ErrTokenExpired      = errors.New("token is expired")
)

var signingMethod = jwt.SigningMethodHS512

type JWT struct {
	key      []byte
	validity time.Duration
	now      func() time.Time
}

type Option func(*JWT)

// WithClock 替换时间来源，主要给测试用
func WithClock(now func() time.Time) Option {
	return func(j *JWT) {
		j.now = now
	}
}

// Claims 是令牌中携带的内容
type Claims struct {
	jwt.RegisteredClaims
	Auth string `json:"auth"` // 逗号连接的权限列表
}

// Authorities 把 auth 字段还原为去重后的权限列表
func (c *Claims) Authorities() []string {
	var authorities []string
	seen := make(map[string]struct{})
	for _, authority := range strings.Split(c.Auth, constants.AuthorityDelimiter) {
		authority = strings.TrimSpace(authority)
		if authority == "" {
			continue
		}
		if _, ok := seen[authority]; ok {
			continue
		}
		seen[authority] = struct{}{}
		authorities = append(authorities, authority)
	}
	return authorities
}

func New(key string, validity time.Duration, opts ...Option) (*JWT, error) {
	if len(key) == 0 {
		return nil, errors.New("key is empty")
	}
	if validity <= 0 {
		return nil, errors.New("validity must be positive")
	}

	j := &JWT{
		key:      []byte(key),
		validity: validity,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}

	return j, nil
}

func (j *JWT) Validity() time.Duration {
	return j.validity
}

func (j *JWT) Issue(subject string, authorities []string) (string, error) {
	if len(subject) == 0 {
		return "", errors.New("subject is empty")
	}

	// 创建声明，时间精确到秒
	now := j.now().Truncate(time.Second)
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.validity)),
		},
		Auth: strings.Join(authorities, constants.AuthorityDelimiter),
	}

	// 签名并返回
	token, err := jwt.NewWithClaims(signingMethod, claims).SignedString(j.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return token, nil
}

func (j *JWT) Verify(tokenString string) (*Claims, error) {
	claims, err := j.parse(tokenString,
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return nil, err
	}

	return claims, nil
}

// Subject 只校验签名，不校验有效期，用于读取已过期令牌的主体
func (j *JWT) Subject(tokenString string) (string, error) {
	claims, err := j.parse(tokenString, jwt.WithoutClaimsValidation())
	if err != nil {
		return "", err
	}

	return claims.Subject, nil
}

func (j *JWT) parse(tokenString string, opts ...jwt.ParserOption) (*Claims, error) {
	if len(tokenString) == 0 {
		return nil, fmt.Errorf("%w: token string is empty", ErrTokenMalformed)
	}

	claims := &Claims{}
	opts = append(opts, jwt.WithValidMethods([]string{signingMethod.Alg()}))
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return j.key, nil
	}, opts...)
	if err != nil {
		return nil, translate(err)
	}

	if !token.Valid {
		return nil, ErrTokenMalformed
	}
	if len(claims.Subject) == 0 {
		return nil, fmt.Errorf("%w: missing subject", ErrTokenMalformed)
	}

	return claims, nil
}

// 把库的错误归为三类
func translate(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %w", ErrTokenBadSignature, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %w", ErrTokenExpired, err)
	default:
		return fmt.Errorf("%w: %w", ErrTokenMalformed, err)
	}
}

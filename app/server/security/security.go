// Package security 保存请求范围内的认证身份。
// 身份只挂在请求的 context 上，请求结束即丢弃，不会在请求间共享。
package security

import (
	"context"
	"slices"
)

type Identity struct {
	Username    string
	Authorities []string
}

func (i *Identity) HasAuthority(authority string) bool {
	return slices.Contains(i.Authorities, authority)
}

func (i *Identity) HasAnyAuthority(authorities ...string) bool {
	for _, authority := range authorities {
		if i.HasAuthority(authority) {
			return true
		}
	}
	return false
}

type identityKey struct{}

func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

func FromContext(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(*Identity)
	return identity, ok && identity != nil
}

// CurrentUsername 返回当前请求已认证的用户名
func CurrentUsername(ctx context.Context) (string, bool) {
	identity, ok := FromContext(ctx)
	if !ok || identity.Username == "" {
		return "", false
	}
	return identity.Username, true
}

package jwt

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "unit-test-signature-secret-key"

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func newTestJWT(t *testing.T) (*JWT, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	j, err := New(testKey, time.Hour, WithClock(clock.now))
	require.NoError(t, err)
	return j, clock
}

func TestNew(t *testing.T) {
	_, err := New("", time.Hour)
	assert.Error(t, err)

	_, err = New(testKey, 0)
	assert.Error(t, err)

	j, err := New(testKey, 30*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, j.Validity())
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	j, clock := newTestJWT(t)

	cases := []struct {
		name        string
		subject     string
		authorities []string
	}{
		{"single", "alice", []string{"ROLE_USER"}},
		{"multiple", "admin", []string{"ROLE_USER", "ROLE_ADMIN"}},
		{"none", "bob", nil},
		{"unicode", "용사", []string{"ROLE_USER"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			token, err := j.Issue(tc.subject, tc.authorities)
			require.NoError(t, err)
			assert.Len(t, strings.Split(token, "."), 3)

			claims, err := j.Verify(token)
			require.NoError(t, err)
			assert.Equal(t, tc.subject, claims.Subject)
			assert.ElementsMatch(t, tc.authorities, claims.Authorities())
			assert.Equal(t, clock.t.Unix(), claims.IssuedAt.Unix())
			assert.Equal(t, clock.t.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
		})
	}
}

func TestIssueDeterministic(t *testing.T) {
	j, _ := newTestJWT(t)

	first, err := j.Issue("alice", []string{"ROLE_USER"})
	require.NoError(t, err)
	second, err := j.Issue("alice", []string{"ROLE_USER"})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestIssueEmptySubject(t *testing.T) {
	j, _ := newTestJWT(t)
	_, err := j.Issue("", []string{"ROLE_USER"})
	assert.Error(t, err)
}

func TestVerifyExpired(t *testing.T) {
	j, clock := newTestJWT(t)

	token, err := j.Issue("alice", []string{"ROLE_USER"})
	require.NoError(t, err)

	// 恰好到期也视为过期
	clock.t = clock.t.Add(time.Hour)
	_, err = j.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.NotErrorIs(t, err, ErrTokenBadSignature)

	clock.t = clock.t.Add(24 * time.Hour)
	_, err = j.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)

	// 过期令牌仍能读取主体
	subject, err := j.Subject(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestVerifyJustBeforeExpiry(t *testing.T) {
	j, clock := newTestJWT(t)

	token, err := j.Issue("alice", nil)
	require.NoError(t, err)

	clock.t = clock.t.Add(time.Hour - time.Second)
	_, err = j.Verify(token)
	assert.NoError(t, err)
}

func TestVerifyBadSignature(t *testing.T) {
	j, _ := newTestJWT(t)

	token, err := j.Issue("alice", []string{"ROLE_USER"})
	require.NoError(t, err)

	// 修改签名段的第一个字符（保持合法的 base64url 字符）
	parts := strings.Split(token, ".")
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = j.Verify(tampered)
	assert.ErrorIs(t, err, ErrTokenBadSignature)

	_, err = j.Subject(tampered)
	assert.ErrorIs(t, err, ErrTokenBadSignature)
}

func TestVerifyOtherKey(t *testing.T) {
	j, clock := newTestJWT(t)
	other, err := New("another-secret", time.Hour, WithClock(clock.now))
	require.NoError(t, err)

	token, err := other.Issue("alice", nil)
	require.NoError(t, err)

	_, err = j.Verify(token)
	assert.ErrorIs(t, err, ErrTokenBadSignature)
}

func TestVerifyTamperedPayload(t *testing.T) {
	j, _ := newTestJWT(t)

	token, err := j.Issue("alice", []string{"ROLE_USER"})
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	forged := strings.Replace(string(payload), "ROLE_USER", "ROLE_ADMIN", 1)
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(forged))

	_, err = j.Verify(strings.Join(parts, "."))
	assert.ErrorIs(t, err, ErrTokenBadSignature)
}

func TestVerifyOtherAlgorithm(t *testing.T) {
	j, clock := newTestJWT(t)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice",
			ExpiresAt: jwt.NewNumericDate(clock.t.Add(time.Hour)),
		},
	}

	hs256, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testKey))
	require.NoError(t, err)
	_, err = j.Verify(hs256)
	assert.ErrorIs(t, err, ErrTokenBadSignature)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = j.Verify(none)
	assert.ErrorIs(t, err, ErrTokenBadSignature)
}

func TestVerifyMalformed(t *testing.T) {
	j, clock := newTestJWT(t)

	valid, err := j.Issue("alice", nil)
	require.NoError(t, err)
	parts := strings.Split(valid, ".")

	noExp, err := jwt.NewWithClaims(signingMethod, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "alice"},
	}).SignedString([]byte(testKey))
	require.NoError(t, err)

	noSub, err := jwt.NewWithClaims(signingMethod, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(clock.t.Add(time.Hour))},
	}).SignedString([]byte(testKey))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"empty":         "",
		"one segment":   "abc",
		"two segments":  parts[0] + "." + parts[1],
		"four segments": valid + ".abc",
		"bad header":    "!!!." + parts[1] + "." + parts[2],
		"bad payload":   parts[0] + ".!!!." + parts[2],
		"json garbage":  parts[0] + "." + base64.RawURLEncoding.EncodeToString([]byte("not json")) + "." + parts[2],
		"missing exp":   noExp,
		"missing sub":   noSub,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := j.Verify(token)
			assert.ErrorIs(t, err, ErrTokenMalformed)
		})
	}
}

func TestClaimsAuthorities(t *testing.T) {
	assert.Nil(t, (&Claims{Auth: ""}).Authorities())
	assert.Equal(t, []string{"ROLE_USER"}, (&Claims{Auth: "ROLE_USER"}).Authorities())
	assert.Equal(t,
		[]string{"ROLE_USER", "ROLE_ADMIN"},
		(&Claims{Auth: "ROLE_USER,,ROLE_ADMIN, ROLE_USER"}).Authorities(),
	)
}

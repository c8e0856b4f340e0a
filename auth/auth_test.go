package auth

import (
	"encoding/base64"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"pagecraft/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T, tokens Tokens) *Service {
	t.Helper()
	users := storage.NewUserStore(filepath.Join(t.TempDir(), "users.json"))
	_, err := users.Create("admin", "correct horse")
	require.NoError(t, err)
	return NewService(users, tokens)
}

func TestLoginIssuesOpaqueToken(t *testing.T) {
	fixed := time.UnixMilli(1700000000123)
	svc := newService(t, OpaqueTokens{Now: func() time.Time { return fixed }})

	token, err := svc.Login("admin", "correct horse")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	raw, err := base64.StdEncoding.DecodeString(token)
	require.NoError(t, err)
	assert.Equal(t, "admin:1700000000123", string(raw))
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc := newService(t, OpaqueTokens{})

	_, unknownErr := svc.Login("nobody", "correct horse")
	_, wrongErr := svc.Login("admin", "wrong")
	_, caseErr := svc.Login("ADMIN", "correct horse")

	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, ErrInvalidCredentials)
	assert.ErrorIs(t, caseErr, ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestOpaqueVerifyIsPresenceOnly(t *testing.T) {
	tokens := OpaqueTokens{}
	assert.NoError(t, tokens.Verify("anything at all"))
	assert.NoError(t, tokens.Verify("x"))
	assert.ErrorIs(t, tokens.Verify(""), ErrMissingToken)
	// any non-empty value counts as present, even whitespace
	assert.NoError(t, tokens.Verify("   "))
}

func TestSignedTokens(t *testing.T) {
	now := time.Now()
	tokens := SignedTokens{Secret: []byte("s3cret"), TTL: time.Hour, Now: func() time.Time { return now }}

	token, err := tokens.Issue("admin")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(token, "."))
	assert.NoError(t, tokens.Verify(token))

	t.Run("rejects arbitrary strings", func(t *testing.T) {
		assert.ErrorIs(t, tokens.Verify("not-a-jwt"), ErrInvalidToken)
		assert.ErrorIs(t, tokens.Verify(""), ErrMissingToken)
	})

	t.Run("rejects other secrets", func(t *testing.T) {
		other := SignedTokens{Secret: []byte("different"), TTL: time.Hour}
		assert.ErrorIs(t, other.Verify(token), ErrInvalidToken)
	})

	t.Run("rejects expired tokens", func(t *testing.T) {
		later := SignedTokens{Secret: []byte("s3cret"), TTL: time.Hour, Now: func() time.Time { return now.Add(2 * time.Hour) }}
		assert.ErrorIs(t, later.Verify(token), ErrInvalidToken)
	})
}

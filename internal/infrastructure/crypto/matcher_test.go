package crypto_test

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/argon2"

	"github.com/99minutos/auth-service/internal/core/service"
	"github.com/99minutos/auth-service/internal/infrastructure/crypto"
)

func argon2idHash(password string) string {
	salt := []byte("0123456789abcdef")
	key := argon2.IDKey([]byte(password), salt, 1, 8*1024, 2, 32)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, 8*1024, 1, 2,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key))
}

func TestMatcher_Hash(t *testing.T) {
	m := crypto.NewMatcher(4)

	t.Run("produces bcrypt hash", func(t *testing.T) {
		hash, err := m.Hash("password123")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(hash, "$2a$"))
		assert.NotEqual(t, "password123", hash)
	})

	t.Run("rejects empty password", func(t *testing.T) {
		_, err := m.Hash("")
		assert.ErrorIs(t, err, crypto.ErrEmptyPassword)
	})
}

func TestMatcher_Matches(t *testing.T) {
	ctx := context.Background()
	m := crypto.NewMatcher(4)

	bcryptHash, err := m.Hash("correctpassword")
	require.NoError(t, err)

	t.Run("bcrypt match", func(t *testing.T) {
		ok, err := m.Matches(ctx, "correctpassword", bcryptHash)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("bcrypt mismatch", func(t *testing.T) {
		ok, err := m.Matches(ctx, "wrongpassword", bcryptHash)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("argon2id match", func(t *testing.T) {
		ok, err := m.Matches(ctx, "correctpassword", argon2idHash("correctpassword"))
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("argon2id mismatch", func(t *testing.T) {
		ok, err := m.Matches(ctx, "wrongpassword", argon2idHash("correctpassword"))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("unknown format is an error", func(t *testing.T) {
		_, err := m.Matches(ctx, "password", "hashed_password")
		assert.Error(t, err)
	})

	t.Run("truncated argon2id is an error", func(t *testing.T) {
		_, err := m.Matches(ctx, "password", "$argon2id$v=19$m=65536")
		assert.Error(t, err)
	})

	t.Run("bad argon2id params are an error", func(t *testing.T) {
		_, err := m.Matches(ctx, "password", "$argon2id$v=19$mXX$c2FsdA$aGFzaA")
		assert.Error(t, err)
	})
}

func TestNewMatcher_ClampsCost(t *testing.T) {
	m := crypto.NewMatcher(99)
	hash, err := m.Hash("pw")
	require.NoError(t, err)
	assert.Contains(t, hash, "$10$")
}

func TestMatcher_DummyHashIsWellFormedBcrypt(t *testing.T) {
	ok, err := crypto.NewMatcher(10).Matches(context.Background(), "any_password", service.DummyPasswordHash)
	require.NoError(t, err, "unknown-account compares must run the full bcrypt path")
	assert.False(t, ok)
}

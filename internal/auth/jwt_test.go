package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager(t *testing.T) {
	secretKey := "test-secret-key-for-testing"
	jwtManager := NewJWTManager(secretKey, 1*time.Hour)

	t.Run("GenerateToken creates valid token", func(t *testing.T) {
		token, err := jwtManager.GenerateToken("admin", "admin")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("ValidateToken validates correct token", func(t *testing.T) {
		token, err := jwtManager.GenerateToken("editor-bob", "editor")
		require.NoError(t, err)

		claims, err := jwtManager.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "editor-bob", claims.Username)
		assert.Equal(t, "editor", claims.Role)
		assert.Equal(t, "lodge", claims.Issuer)
	})

	t.Run("ValidateToken rejects invalid token", func(t *testing.T) {
		_, err := jwtManager.ValidateToken("invalid.token.here")
		assert.Error(t, err)
	})

	t.Run("ValidateToken rejects expired token", func(t *testing.T) {
		shortManager := NewJWTManager(secretKey, 1*time.Nanosecond)

		token, err := shortManager.GenerateToken("admin", "admin")
		require.NoError(t, err)

		time.Sleep(10 * time.Millisecond)

		_, err = shortManager.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("ValidateToken rejects token signed with another secret", func(t *testing.T) {
		otherManager := NewJWTManager("another-secret", 1*time.Hour)

		token, err := otherManager.GenerateToken("admin", "admin")
		require.NoError(t, err)

		_, err = jwtManager.ValidateToken(token)
		assert.Error(t, err)
	})
}

func TestTokenFromHeader(t *testing.T) {
	t.Run("extracts bearer token", func(t *testing.T) {
		token, err := TokenFromHeader("Bearer abc.def.ghi")
		require.NoError(t, err)
		assert.Equal(t, "abc.def.ghi", token)
	})

	t.Run("rejects malformed headers", func(t *testing.T) {
		for _, header := range []string{"", "Bearer", "Bearer ", "Basic abc", "abc.def.ghi"} {
			_, err := TokenFromHeader(header)
			assert.ErrorIs(t, err, ErrMissingBearer, "header %q", header)
		}
	})
}

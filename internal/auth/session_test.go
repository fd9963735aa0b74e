package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hal9000y/exec-assistant/internal/auth"
)

func TestSessions(t *testing.T) {
	sessions := auth.NewSessions("0123456789abcdef0123456789abcdef", time.Hour)

	token, exp, err := sessions.Issue("u-1", "one@example.com")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)

	claims, err := sessions.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.Subject)
	assert.Equal(t, "one@example.com", claims.Email)
	assert.Equal(t, "exec-assistant", claims.Issuer)

	t.Run("wrong secret", func(t *testing.T) {
		other := auth.NewSessions("fedcba9876543210fedcba9876543210", time.Hour)
		_, err := other.Parse(token)
		require.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		expired := auth.NewSessions("0123456789abcdef0123456789abcdef", -time.Minute)
		token, _, err := expired.Issue("u-1", "")
		require.NoError(t, err)

		_, err = sessions.Parse(token)
		require.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := sessions.Parse("not-a-jwt")
		require.Error(t, err)
	})
}

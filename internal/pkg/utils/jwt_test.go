package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func TestViewerTokenRoundTrip(t *testing.T) {
	token, err := GenerateViewerToken(7, testSecret, "lil-heart", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseViewerToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), claims.BabyID)
	assert.Equal(t, "lil-heart", claims.Issuer)
	assert.Contains(t, claims.Audience, "viewer")
}

func TestParseViewerTokenRejectsBadInput(t *testing.T) {
	token, err := GenerateViewerToken(7, testSecret, "lil-heart", time.Hour)
	require.NoError(t, err)

	t.Run("密钥不一致", func(t *testing.T) {
		_, err := ParseViewerToken(token, "wrong-secret")
		assert.Error(t, err)
	})

	t.Run("已过期", func(t *testing.T) {
		expired, err := GenerateViewerToken(7, testSecret, "lil-heart", -time.Minute)
		require.NoError(t, err)
		_, err = ParseViewerToken(expired, testSecret)
		assert.Error(t, err)
	})

	t.Run("不是合法Token", func(t *testing.T) {
		_, err := ParseViewerToken("not.a.token", testSecret)
		assert.Error(t, err)
	})

	t.Run("管理员Token不能当访客Token用", func(t *testing.T) {
		adminToken, err := GenerateToken(1, "mama", "mama@example.com", testSecret, "lil-heart", time.Hour)
		require.NoError(t, err)
		// audience 是 admin，访客解析必须拒绝
		_, err = ParseViewerToken(adminToken, testSecret)
		assert.Error(t, err)
	})
}

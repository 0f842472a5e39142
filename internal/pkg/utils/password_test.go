package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("milestone2024")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotContains(t, hash, "milestone2024")

	// 相同密码每次生成的哈希不同
	hash2, err := HashPassword("milestone2024")
	require.NoError(t, err)
	assert.NotEqual(t, hash, hash2)
}

func TestCheckPasswordHash(t *testing.T) {
	hash, err := HashPassword("正确密码abc")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("正确密码abc", hash))
	assert.False(t, CheckPasswordHash("错误密码", hash))
	assert.False(t, CheckPasswordHash("", hash))
	assert.False(t, CheckPasswordHash("正确密码abc", "不是哈希"))
}

package share

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewerSession(t *testing.T) {
	t.Run("新会话未授权", func(t *testing.T) {
		s := NewViewerSession()
		assert.False(t, s.IsGranted())

		babyID, ok := s.CurrentSubject()
		assert.False(t, ok)
		assert.Zero(t, babyID)
	})

	t.Run("授权后返回宝宝ID", func(t *testing.T) {
		s := NewViewerSession()
		s.Grant(7)

		assert.True(t, s.IsGranted())
		babyID, ok := s.CurrentSubject()
		assert.True(t, ok)
		assert.Equal(t, uint64(7), babyID)
	})

	t.Run("新授权覆盖旧授权", func(t *testing.T) {
		s := NewViewerSession()
		s.Grant(7)
		s.Grant(8)

		babyID, _ := s.CurrentSubject()
		assert.Equal(t, uint64(8), babyID)
	})

	t.Run("Clear后回到未授权且可重复调用", func(t *testing.T) {
		s := NewViewerSession()
		s.Grant(7)

		s.Clear()
		assert.False(t, s.IsGranted())
		_, ok := s.CurrentSubject()
		assert.False(t, ok)

		// 再次 Clear 不应有副作用
		s.Clear()
		assert.False(t, s.IsGranted())

		// Clear 之后可以重新授权
		s.Grant(9)
		babyID, ok := s.CurrentSubject()
		assert.True(t, ok)
		assert.Equal(t, uint64(9), babyID)
	})
}

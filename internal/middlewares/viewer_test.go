package middlewares

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/andrebarros6/lil-heart/internal/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLinkChecker 模拟活跃链接查询
type fakeLinkChecker struct {
	active bool
	err    error
}

func (f *fakeLinkChecker) HasActiveLink(_ context.Context, babyID uint64) (bool, error) {
	return f.active, f.err
}

func newViewerTestRouter(checker ActiveLinkChecker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ViewerMiddleware(testConfig(), checker))
	r.GET("/viewer/profile", func(c *gin.Context) {
		session, ok := GetViewerSession(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{})
			return
		}
		babyID, _ := session.CurrentSubject()
		c.JSON(http.StatusOK, gin.H{"baby_id": babyID})
	})
	return r
}

func doViewerRequest(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/viewer/profile", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestViewerMiddleware(t *testing.T) {
	viewerToken, err := utils.GenerateViewerToken(7, testSecret, "lil-heart", time.Hour)
	require.NoError(t, err)

	t.Run("链接活跃时放行并绑定宝宝", func(t *testing.T) {
		r := newViewerTestRouter(&fakeLinkChecker{active: true})
		w := doViewerRequest(r, viewerToken)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"baby_id":7`)
	})

	t.Run("链接撤销后Token立即失效", func(t *testing.T) {
		// 撤销生效不依赖 Token 到期
		r := newViewerTestRouter(&fakeLinkChecker{active: false})
		w := doViewerRequest(r, viewerToken)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("存储异常时拒绝访问", func(t *testing.T) {
		r := newViewerTestRouter(&fakeLinkChecker{err: errors.New("db down")})
		w := doViewerRequest(r, viewerToken)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("管理员Token不能访问访客接口", func(t *testing.T) {
		adminToken, err := utils.GenerateToken(1, "mama", "mama@example.com", testSecret, "lil-heart", time.Hour)
		require.NoError(t, err)

		r := newViewerTestRouter(&fakeLinkChecker{active: true})
		w := doViewerRequest(r, adminToken)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("缺少Token", func(t *testing.T) {
		r := newViewerTestRouter(&fakeLinkChecker{active: true})
		w := doViewerRequest(r, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

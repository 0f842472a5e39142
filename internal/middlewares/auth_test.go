package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/andrebarros6/lil-heart/internal/config"
	"github.com/andrebarros6/lil-heart/internal/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			SecretKey: testSecret,
			Issuer:    "lil-heart",
		},
	}
}

func newAuthTestRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AuthMiddleware(cfg))
	r.GET("/protected", func(c *gin.Context) {
		userID, _ := c.Get("userID")
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	return r
}

func doRequest(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	cfg := testConfig()
	r := newAuthTestRouter(cfg)

	t.Run("管理员Token放行", func(t *testing.T) {
		token, err := utils.GenerateToken(7, "mama", "mama@example.com", testSecret, "lil-heart", time.Hour)
		require.NoError(t, err)

		w := doRequest(r, token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user_id":7`)
	})

	t.Run("访客Token不能访问管理接口", func(t *testing.T) {
		// 访客 Token 任何拿到分享链接的人都能获得，绝不能当管理员 Token 用
		token, err := utils.GenerateViewerToken(7, testSecret, "lil-heart", time.Hour)
		require.NoError(t, err)

		w := doRequest(r, token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("用户ID为零的Token被拒绝", func(t *testing.T) {
		token, err := utils.GenerateToken(0, "", "", testSecret, "lil-heart", time.Hour)
		require.NoError(t, err)

		w := doRequest(r, token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("缺少Authorization头", func(t *testing.T) {
		w := doRequest(r, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("密钥不一致", func(t *testing.T) {
		token, err := utils.GenerateToken(7, "mama", "mama@example.com", "other-secret", "lil-heart", time.Hour)
		require.NoError(t, err)

		w := doRequest(r, token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/andrebarros6/lil-heart/internal/config"
	"github.com/andrebarros6/lil-heart/internal/pkg/utils"
	"github.com/andrebarros6/lil-heart/internal/pkg/xerr"
	"github.com/andrebarros6/lil-heart/internal/services/share"
	"github.com/gin-gonic/gin"
)

// ViewerSessionKey 是访客会话在 Gin Context 中的键
const ViewerSessionKey = "viewerSession"

// ActiveLinkChecker 判断宝宝当前是否还有活跃的分享链接
type ActiveLinkChecker interface {
	HasActiveLink(ctx context.Context, babyID uint64) (bool, error)
}

// ViewerMiddleware 校验访客 Token（分享链接校验成功后签发），
// 通过后在 Context 中放入已授权的访客会话，会话只绑定一个宝宝。
// 每次请求都确认活跃链接仍然存在，链接撤销后 Token 立即失效
func ViewerMiddleware(cfg *config.Config, links ActiveLinkChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractBearerToken(c)
		if tokenString == "" {
			xerr.AbortWithError(c, http.StatusUnauthorized, xerr.ViewerTokenInvalidCode, xerr.ErrViewerTokenInvalid.Error())
			return
		}

		claims, err := utils.ParseViewerToken(tokenString, cfg.JWT.SecretKey)
		if err != nil {
			xerr.AbortWithError(c, http.StatusUnauthorized, xerr.ViewerTokenInvalidCode, xerr.ErrViewerTokenInvalid.Error())
			return
		}

		// 存储层异常时宁可拒绝，不把可能已撤销的相册放出去
		active, err := links.HasActiveLink(c.Request.Context(), claims.BabyID)
		if err != nil || !active {
			xerr.AbortWithError(c, http.StatusUnauthorized, xerr.ShareRevokedCode, "分享已被撤销或失效")
			return
		}

		session := share.NewViewerSession()
		session.Grant(claims.BabyID)
		c.Set(ViewerSessionKey, session)

		c.Next()
	}
}

// GetViewerSession 从 Gin Context 取出访客会话
func GetViewerSession(c *gin.Context) (*share.ViewerSession, bool) {
	v, exists := c.Get(ViewerSessionKey)
	if !exists {
		return nil, false
	}
	session, ok := v.(*share.ViewerSession)
	return session, ok
}

func extractBearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

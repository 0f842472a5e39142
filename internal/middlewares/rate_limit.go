package middlewares

import (
	"net/http"
	"time"

	"github.com/andrebarros6/lil-heart/internal/pkg/cache"
	"github.com/andrebarros6/lil-heart/internal/pkg/logger"
	"github.com/andrebarros6/lil-heart/internal/pkg/xerr"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ValidateRateLimit 用 Redis 计数器限制每个IP对分享校验接口的请求频率，
// 防止对带密码的分享链接做暴力猜测。limit 是每分钟允许的次数
func ValidateRateLimit(c cache.Cache, limit int) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if limit <= 0 {
			ctx.Next()
			return
		}

		key := cache.GenerateValidateRateKey(ctx.ClientIP())
		count, err := c.Incr(ctx.Request.Context(), key)
		if err != nil {
			// 限流器自身故障不应拦住正常请求
			logger.Warn("限流计数失败", zap.String("clientIP", ctx.ClientIP()), zap.Error(err))
			ctx.Next()
			return
		}

		// 第一次计数时设置窗口过期时间
		if count == 1 {
			if err := c.Expire(ctx.Request.Context(), key, time.Minute); err != nil {
				logger.Warn("设置限流窗口失败", zap.String("clientIP", ctx.ClientIP()), zap.Error(err))
			}
		}

		if count > int64(limit) {
			xerr.AbortWithError(ctx, http.StatusTooManyRequests, xerr.TooManyRequestsCode, "请求过于频繁，请稍后再试")
			return
		}

		ctx.Next()
	}
}

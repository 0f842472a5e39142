package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/andrebarros6/lil-heart/internal/config"
	"github.com/andrebarros6/lil-heart/internal/pkg/logger"
	"github.com/andrebarros6/lil-heart/internal/router"
	"github.com/andrebarros6/lil-heart/internal/setup"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Server struct {
	router      *gin.Engine
	httpServer  *http.Server
	db          *gorm.DB
	redisClient *redis.Client
}

// NewServer 负责构建所有依赖
func NewServer(cfg *config.Config) (*Server, error) {
	// 初始化数据库连接并迁移表结构
	setup.InitMySQL(&cfg.MySQL)

	// 初始化 Redis 连接
	setup.InitRedis(cfg)

	// 初始化 Elasticsearch
	setup.InitElasticsearchClient(&cfg.Elasticsearch)

	// 初始化对象存储并确保照片存储桶存在
	photoStorageService := setup.InitStorage(cfg)

	// 初始化 Gin 引擎和注册路由
	// 将所有依赖传入 RouterConfig
	routerCfg := router.NewRouterConfig(
		setup.DB,
		setup.RedisClientGlobal,
		setup.EsClient,
		photoStorageService,
		setup.PhotoBucketName(cfg),
		cfg,
	)
	engine := router.InitRouter(routerCfg)

	addr := ":" + cfg.Server.Port
	logger.Info(fmt.Sprintf("Server is running on %s", addr))
	httpServer := &http.Server{
		Addr:    addr,
		Handler: engine,
	}

	return &Server{
		router:      engine,
		httpServer:  httpServer,
		db:          setup.DB,
		redisClient: setup.RedisClientGlobal,
	}, nil
}

// Run 启动服务器并处理优雅关机
func (s *Server) Run(ctx context.Context, stopChan chan os.Signal) {
	// GORM v2 依赖连接池，通常不需要手动关闭。Redis 需要
	defer setup.CloseRedis()
	defer setup.CloseMySQLDB()

	// 启动 HTTP 服务器
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// 等待停止信号
	<-stopChan
	logger.Info("Shutting down server...")

	// 优雅关机
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	logger.Info("Server exited gracefully")
}

package router

import (
	"net/http"
	"time"

	_ "github.com/andrebarros6/lil-heart/docs"
	"github.com/andrebarros6/lil-heart/internal/config"
	"github.com/andrebarros6/lil-heart/internal/handlers"
	"github.com/andrebarros6/lil-heart/internal/middlewares"
	"github.com/andrebarros6/lil-heart/internal/pkg/cache"
	"github.com/andrebarros6/lil-heart/internal/pkg/search"
	"github.com/andrebarros6/lil-heart/internal/pkg/storage"
	"github.com/andrebarros6/lil-heart/internal/pkg/xerr"
	"github.com/andrebarros6/lil-heart/internal/repositories"
	"github.com/andrebarros6/lil-heart/internal/services/admin"
	"github.com/andrebarros6/lil-heart/internal/services/album"
	"github.com/andrebarros6/lil-heart/internal/services/share"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// RouterConfig 包含初始化路由所需的所有依赖
type RouterConfig struct {
	db                  *gorm.DB
	redisClient         *redis.Client
	esClient            *elasticsearch.Client
	photoStorageService storage.StorageService
	bucketName          string
	cfg                 *config.Config
}

func NewRouterConfig(
	db *gorm.DB,
	redisClient *redis.Client,
	esClient *elasticsearch.Client,
	photoStorageService storage.StorageService,
	bucketName string,
	cfg *config.Config,
) *RouterConfig {
	return &RouterConfig{
		db:                  db,
		redisClient:         redisClient,
		esClient:            esClient,
		photoStorageService: photoStorageService,
		bucketName:          bucketName,
		cfg:                 cfg,
	}
}

func InitRouter(routerCfg *RouterConfig) *gin.Engine {
	router := gin.Default() // 使用默认的 Gin 引擎，包含 Logger 和 Recovery 中间件

	// Health Check 路由
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 仓储和服务
	cacheService := cache.NewRedisCache(routerCfg.redisClient)
	photoIndex := search.NewPhotoIndex(routerCfg.esClient)
	tm := repositories.NewTransactionManager(routerCfg.db)

	userRepo := repositories.NewUserRepository(routerCfg.db)
	babyRepo := repositories.NewBabyRepository(routerCfg.db)
	photoRepo := repositories.NewPhotoRepository(routerCfg.db)
	measurementRepo := repositories.NewMeasurementRepository(routerCfg.db)
	shareLinkRepo := repositories.NewShareLinkRepository(routerCfg.db, tm)

	authService := admin.NewAuthService(userRepo, &routerCfg.cfg.JWT)
	babyService := album.NewBabyService(babyRepo, photoRepo, measurementRepo)
	photoService := album.NewPhotoService(
		photoRepo,
		babyRepo,
		routerCfg.photoStorageService,
		cacheService,
		photoIndex,
		routerCfg.bucketName,
		&routerCfg.cfg.Album,
		time.Duration(routerCfg.cfg.Storage.PresignedURLExpiry)*time.Minute,
	)
	measurementService := album.NewMeasurementService(measurementRepo, babyRepo)
	timelineService := album.NewTimelineService(babyRepo, photoService, measurementService, routerCfg.cfg.Album.TimelineLimit)
	exportService := album.NewExportService(babyRepo, photoRepo, measurementRepo, routerCfg.photoStorageService, routerCfg.bucketName)
	shareService := share.NewShareService(shareLinkRepo, babyRepo)

	authHandler := handlers.NewAuthHandler(authService)
	babyHandler := handlers.NewBabyHandler(babyService, exportService)
	photoHandler := handlers.NewPhotoHandler(photoService, babyService)
	measurementHandler := handlers.NewMeasurementHandler(measurementService, babyService)
	shareHandler := handlers.NewShareHandler(shareService, routerCfg.cfg)
	viewerHandler := handlers.NewViewerHandler(babyService, photoService, measurementService, timelineService)

	v1 := router.Group("/api/v1")
	{
		// 认证相关路由 (无需认证)
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}

		// 分享校验是访客的入口，公开但有限流
		v1.POST("/share/validate",
			middlewares.ValidateRateLimit(cacheService, routerCfg.cfg.Album.ValidateRateLimit),
			shareHandler.ValidateShare)

		// 访客只读路由组，需要有效的访客 Token
		viewerGroup := v1.Group("/viewer")
		viewerGroup.Use(middlewares.ViewerMiddleware(routerCfg.cfg, shareService))
		{
			viewerGroup.GET("/profile", viewerHandler.Profile)
			viewerGroup.GET("/timeline", viewerHandler.Timeline)
			viewerGroup.GET("/photos", viewerHandler.Photos)
			viewerGroup.GET("/measurements", viewerHandler.Measurements)
			viewerGroup.GET("/statistics", viewerHandler.Statistics)
		}

		// 管理端路由组，需要管理员 Token
		authenticated := v1.Group("/")
		authenticated.Use(middlewares.AuthMiddleware(routerCfg.cfg))
		{
			babyGroup := authenticated.Group("/babies")
			{
				babyGroup.POST("", babyHandler.CreateBaby)
				babyGroup.GET("", babyHandler.ListBabies)
				babyGroup.GET("/:baby_id", babyHandler.GetBaby)
				babyGroup.PUT("/:baby_id", babyHandler.UpdateBaby)
				babyGroup.GET("/:baby_id/export", babyHandler.ExportAlbum)

				babyGroup.POST("/:baby_id/photos", photoHandler.UploadPhoto)
				babyGroup.GET("/:baby_id/photos", photoHandler.ListPhotos)
				babyGroup.GET("/:baby_id/photos/search", photoHandler.SearchPhotos)

				babyGroup.POST("/:baby_id/measurements", measurementHandler.CreateMeasurement)
				babyGroup.GET("/:baby_id/measurements", measurementHandler.ListMeasurements)
				babyGroup.GET("/:baby_id/measurements/statistics", measurementHandler.Statistics)

				babyGroup.POST("/:baby_id/shares", shareHandler.IssueShare)
				babyGroup.GET("/:baby_id/shares/active", shareHandler.GetActiveShare)
				babyGroup.DELETE("/:baby_id/shares", shareHandler.RevokeShares)
			}

			photoGroup := authenticated.Group("/photos")
			{
				photoGroup.PUT("/:photo_id", photoHandler.UpdateCaption)
				photoGroup.DELETE("/:photo_id", photoHandler.DeletePhoto)
				photoGroup.GET("/:photo_id/url", photoHandler.RefreshPhotoURL)
			}

			measurementGroup := authenticated.Group("/measurements")
			{
				measurementGroup.PUT("/:measurement_id", measurementHandler.UpdateMeasurement)
				measurementGroup.DELETE("/:measurement_id", measurementHandler.DeleteMeasurement)
			}
		}
	}

	router.NoRoute(func(c *gin.Context) {
		xerr.Error(c, http.StatusNotFound, http.StatusNotFound, "Route not found")
	})

	return router
}

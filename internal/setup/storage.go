package setup

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/andrebarros6/lil-heart/internal/config"
	"github.com/andrebarros6/lil-heart/internal/pkg/logger"
	"github.com/andrebarros6/lil-heart/internal/pkg/storage"
)

// InitMinIOStorage 初始化 MinIO 存储服务并确保照片存储桶存在。
func InitMinIOStorage(cfg *config.Config) (storage.StorageService, error) {
	minioCfg := &cfg.MinIO

	minioSvc, err := storage.NewMinIOStorageService(minioCfg)
	if err != nil {
		return nil, fmt.Errorf("初始化 MinIO 存储服务失败: %w", err)
	}
	logger.Info("MinIO 存储服务已选择并初始化")

	// 检查并创建存储桶，为外部调用使用带超时的上下文
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := minioSvc.IsBucketExist(ctx, minioCfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("检查 MinIO 存储桶存在性失败: %w", err)
	}

	if !exists {
		logger.Info("MinIO 存储桶不存在，尝试创建...", zap.String("bucketName", minioCfg.BucketName))
		if err := minioSvc.MakeBucket(ctx, minioCfg.BucketName); err != nil {
			return nil, fmt.Errorf("创建 MinIO 存储桶失败: %w", err)
		}
		logger.Info("MinIO 存储桶创建成功", zap.String("bucketName", minioCfg.BucketName))
	} else {
		logger.Info("MinIO 存储桶已存在", zap.String("bucketName", minioCfg.BucketName))
	}

	return minioSvc, nil
}

// InitAliyunOSSStorage 初始化阿里云 OSS 存储服务并确保照片存储桶存在。
func InitAliyunOSSStorage(cfg *config.Config) (storage.StorageService, error) {
	aliyunCfg := &cfg.AliyunOSS

	aliyunSvc, err := storage.NewAliyunOSSStorageService(aliyunCfg)
	if err != nil {
		return nil, fmt.Errorf("初始化阿里云 OSS 存储服务失败: %w", err)
	}
	logger.Info("阿里云 OSS 存储服务已选择并初始化")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := aliyunSvc.IsBucketExist(ctx, aliyunCfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("检查阿里云 OSS 存储桶存在性失败: %w", err)
	}

	if !exists {
		logger.Info("阿里云 OSS 存储桶不存在，尝试创建...", zap.String("bucketName", aliyunCfg.BucketName))
		if err := aliyunSvc.MakeBucket(ctx, aliyunCfg.BucketName); err != nil {
			return nil, fmt.Errorf("创建阿里云 OSS 存储桶失败: %w", err)
		}
		logger.Info("阿里云 OSS 存储桶创建成功", zap.String("bucketName", aliyunCfg.BucketName))
	} else {
		logger.Info("阿里云 OSS 存储桶已存在", zap.String("bucketName", aliyunCfg.BucketName))
	}

	return aliyunSvc, nil
}

func InitStorage(cfg *config.Config) storage.StorageService {
	var photoStorageService storage.StorageService
	switch cfg.Storage.Type {
	case "minio":
		minioSvc, err := InitMinIOStorage(cfg)
		if err != nil {
			logger.Fatal("初始化 MinIO 存储服务失败", zap.Error(err))
		}
		photoStorageService = minioSvc
	case "aliyun_oss":
		aliyunSvc, err := InitAliyunOSSStorage(cfg)
		if err != nil {
			logger.Fatal("初始化阿里云 OSS 存储服务失败", zap.Error(err))
		}
		photoStorageService = aliyunSvc
	default:
		logger.Fatal("未知的存储服务类型，请检查配置: " + cfg.Storage.Type)
	}
	return photoStorageService
}

// PhotoBucketName 返回当前存储类型对应的照片存储桶名
func PhotoBucketName(cfg *config.Config) string {
	if cfg.Storage.Type == "aliyun_oss" {
		return cfg.AliyunOSS.BucketName
	}
	return cfg.MinIO.BucketName
}

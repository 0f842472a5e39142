package album

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	"github.com/andrebarros6/lil-heart/internal/config"
	"github.com/andrebarros6/lil-heart/internal/models"
	"github.com/andrebarros6/lil-heart/internal/pkg/cache"
	"github.com/andrebarros6/lil-heart/internal/pkg/imaging"
	"github.com/andrebarros6/lil-heart/internal/pkg/logger"
	"github.com/andrebarros6/lil-heart/internal/pkg/search"
	"github.com/andrebarros6/lil-heart/internal/pkg/storage"
	"github.com/andrebarros6/lil-heart/internal/pkg/utils"
	"github.com/andrebarros6/lil-heart/internal/pkg/xerr"
	"github.com/andrebarros6/lil-heart/internal/repositories"
	"go.uber.org/zap"
)

const maxCaptionLen = 500

// UploadPhotoInput 上传照片的参数
type UploadPhotoInput struct {
	BabyID    uint64
	FileName  string
	Size      int64 // 原始文件大小（字节）
	Reader    io.Reader
	Caption   *string
	PhotoDate time.Time
}

type PhotoService interface {
	// UploadPhoto 压缩并上传照片，写入数据库记录和搜索索引
	UploadPhoto(ctx context.Context, userID uint64, input UploadPhotoInput) (*models.Photo, error)
	// ListPhotos 按拍摄日期倒序返回照片，并刷新过期的访问URL。不做归属校验
	ListPhotos(ctx context.Context, babyID uint64, limit int) ([]models.Photo, error)
	UpdateCaption(ctx context.Context, userID, photoID uint64, caption *string) (*models.Photo, error)
	DeletePhoto(ctx context.Context, userID, photoID uint64) error
	// SearchPhotos 在照片描述里做全文搜索。不做归属校验
	SearchPhotos(ctx context.Context, babyID uint64, query string, limit int) ([]models.Photo, error)
	// RefreshPhotoURL 返回照片的有效访问URL，优先命中缓存，否则重新预签名
	RefreshPhotoURL(ctx context.Context, photoID uint64) (string, error)
}

type photoService struct {
	photoRepo  repositories.PhotoRepository
	babyRepo   repositories.BabyRepository
	storageSvc storage.StorageService
	cache      cache.Cache
	photoIndex search.PhotoIndex
	bucketName string
	albumCfg   *config.AlbumConfig
	urlExpiry  time.Duration
}

var _ PhotoService = (*photoService)(nil)

func NewPhotoService(
	photoRepo repositories.PhotoRepository,
	babyRepo repositories.BabyRepository,
	storageSvc storage.StorageService,
	c cache.Cache,
	photoIndex search.PhotoIndex,
	bucketName string,
	albumCfg *config.AlbumConfig,
	presignedURLExpiry time.Duration,
) PhotoService {
	return &photoService{
		photoRepo:  photoRepo,
		babyRepo:   babyRepo,
		storageSvc: storageSvc,
		cache:      c,
		photoIndex: photoIndex,
		bucketName: bucketName,
		albumCfg:   albumCfg,
		urlExpiry:  presignedURLExpiry,
	}
}

func (s *photoService) UploadPhoto(ctx context.Context, userID uint64, input UploadPhotoInput) (*models.Photo, error) {
	baby, err := s.babyRepo.FindByID(input.BabyID)
	if err != nil {
		return nil, err
	}
	if baby == nil {
		return nil, xerr.ErrBabyNotFound
	}
	if baby.CreatedBy != userID {
		return nil, xerr.ErrPermissionDenied
	}

	if input.Size > s.albumCfg.MaxUploadSizeMB<<20 {
		return nil, xerr.ErrPhotoTooLarge
	}
	if input.Caption != nil && utf8.RuneCountInString(*input.Caption) > maxCaptionLen {
		return nil, xerr.ErrCaptionTooLong
	}
	if input.PhotoDate.IsZero() {
		input.PhotoDate = time.Now()
	}

	// 统一压缩为JPEG，限制最大宽度，节省存储和流量
	optimized, meta, err := imaging.Optimize(input.Reader, s.albumCfg.MaxImageWidth, s.albumCfg.ImageQuality)
	if err != nil {
		logger.Warn("图片压缩失败", zap.String("fileName", input.FileName), zap.Error(err))
		return nil, xerr.ErrPhotoFormatInvalid
	}

	objectKey := fmt.Sprintf("%d/%s/%d_%s.jpg",
		input.BabyID,
		input.PhotoDate.Format("2006/01"),
		time.Now().UnixNano(),
		utils.SanitizeFileName(input.FileName),
	)

	if _, err := s.storageSvc.PutObject(ctx, s.bucketName, objectKey,
		bytes.NewReader(optimized), int64(len(optimized)), "image/jpeg"); err != nil {
		return nil, fmt.Errorf("上传照片到对象存储失败: %w", err)
	}

	fileURL, err := s.storageSvc.PresignGetObjectURL(ctx, s.bucketName, objectKey, s.urlExpiry)
	if err != nil {
		return nil, fmt.Errorf("生成照片访问URL失败: %w", err)
	}

	photo := &models.Photo{
		BabyID:     input.BabyID,
		ObjectKey:  objectKey,
		FileURL:    fileURL,
		Caption:    input.Caption,
		PhotoDate:  input.PhotoDate,
		SizeBytes:  int64(len(optimized)),
		Width:      meta.OptimizedWidth,
		Height:     meta.OptimizedHeight,
		UploadedBy: userID,
	}
	if err := s.photoRepo.Create(photo); err != nil {
		// 数据库写入失败时清掉已上传的对象，避免留下孤儿文件
		if removeErr := s.storageSvc.RemoveObject(ctx, s.bucketName, objectKey); removeErr != nil {
			logger.Error("清理孤儿对象失败", zap.String("objectKey", objectKey), zap.Error(removeErr))
		}
		return nil, fmt.Errorf("保存照片记录失败: %w", err)
	}

	s.cacheURL(ctx, photo.ID, fileURL)
	s.indexCaption(ctx, photo)

	logger.Info("照片上传成功",
		zap.Uint64("photoID", photo.ID),
		zap.Uint64("babyID", photo.BabyID),
		zap.Int("sizeBytes", len(optimized)),
		zap.String("format", meta.OriginalFormat),
	)
	return photo, nil
}

func (s *photoService) ListPhotos(ctx context.Context, babyID uint64, limit int) ([]models.Photo, error) {
	photos, err := s.photoRepo.FindAllByBabyID(babyID, limit)
	if err != nil {
		return nil, err
	}
	s.refreshURLs(ctx, photos)
	return photos, nil
}

func (s *photoService) UpdateCaption(ctx context.Context, userID, photoID uint64, caption *string) (*models.Photo, error) {
	photo, err := s.ownedPhoto(userID, photoID)
	if err != nil {
		return nil, err
	}
	if caption != nil && utf8.RuneCountInString(*caption) > maxCaptionLen {
		return nil, xerr.ErrCaptionTooLong
	}

	photo.Caption = caption
	if err := s.photoRepo.Update(photo); err != nil {
		return nil, fmt.Errorf("更新照片描述失败: %w", err)
	}
	s.indexCaption(ctx, photo)
	return photo, nil
}

func (s *photoService) DeletePhoto(ctx context.Context, userID, photoID uint64) error {
	photo, err := s.ownedPhoto(userID, photoID)
	if err != nil {
		return err
	}

	if err := s.photoRepo.Delete(photoID); err != nil {
		return fmt.Errorf("删除照片记录失败: %w", err)
	}

	// 存储对象、缓存和索引的清理是尽力而为，失败只记日志，不回滚删除
	if err := s.storageSvc.RemoveObject(ctx, s.bucketName, photo.ObjectKey); err != nil {
		logger.Error("删除存储对象失败", zap.String("objectKey", photo.ObjectKey), zap.Error(err))
	}
	if err := s.cache.Del(ctx, cache.GeneratePhotoURLKey(photoID)); err != nil {
		logger.Warn("删除URL缓存失败", zap.Uint64("photoID", photoID), zap.Error(err))
	}
	if err := s.photoIndex.RemovePhoto(ctx, photoID); err != nil {
		logger.Warn("删除照片索引失败", zap.Uint64("photoID", photoID), zap.Error(err))
	}

	logger.Info("照片已删除", zap.Uint64("photoID", photoID), zap.Uint64("userID", userID))
	return nil
}

func (s *photoService) SearchPhotos(ctx context.Context, babyID uint64, query string, limit int) ([]models.Photo, error) {
	if limit <= 0 {
		limit = s.albumCfg.TimelineLimit
	}
	ids, err := s.photoIndex.SearchCaptions(ctx, babyID, query, limit)
	if err != nil {
		return nil, xerr.ErrSearchError
	}

	photos := make([]models.Photo, 0, len(ids))
	for _, id := range ids {
		photo, err := s.photoRepo.FindByID(id)
		if err != nil {
			return nil, err
		}
		// 索引可能落后于数据库，已删除的照片直接跳过
		if photo == nil || photo.BabyID != babyID {
			continue
		}
		photos = append(photos, *photo)
	}
	s.refreshURLs(ctx, photos)
	return photos, nil
}

func (s *photoService) RefreshPhotoURL(ctx context.Context, photoID uint64) (string, error) {
	var cached string
	err := s.cache.Get(ctx, cache.GeneratePhotoURLKey(photoID), &cached)
	if err == nil && cached != "" {
		return cached, nil
	}
	if err != nil && !errors.Is(err, cache.ErrCacheMiss) {
		logger.Warn("读取URL缓存失败", zap.Uint64("photoID", photoID), zap.Error(err))
	}

	photo, err := s.photoRepo.FindByID(photoID)
	if err != nil {
		return "", err
	}
	if photo == nil {
		return "", xerr.ErrPhotoNotFound
	}

	fileURL, err := s.storageSvc.PresignGetObjectURL(ctx, s.bucketName, photo.ObjectKey, s.urlExpiry)
	if err != nil {
		return "", fmt.Errorf("重新生成照片访问URL失败: %w", err)
	}

	s.cacheURL(ctx, photoID, fileURL)
	photo.FileURL = fileURL
	if err := s.photoRepo.Update(photo); err != nil {
		logger.Warn("回写照片URL失败", zap.Uint64("photoID", photoID), zap.Error(err))
	}
	return fileURL, nil
}

// ownedPhoto 查找照片并校验当前用户是其所属宝宝的创建者
func (s *photoService) ownedPhoto(userID, photoID uint64) (*models.Photo, error) {
	photo, err := s.photoRepo.FindByID(photoID)
	if err != nil {
		return nil, err
	}
	if photo == nil {
		return nil, xerr.ErrPhotoNotFound
	}

	baby, err := s.babyRepo.FindByID(photo.BabyID)
	if err != nil {
		return nil, err
	}
	if baby == nil || baby.CreatedBy != userID {
		return nil, xerr.ErrPermissionDenied
	}
	return photo, nil
}

// refreshURLs 为列表中URL缓存已失效的照片重新生成预签名URL
func (s *photoService) refreshURLs(ctx context.Context, photos []models.Photo) {
	for i := range photos {
		var cached string
		if err := s.cache.Get(ctx, cache.GeneratePhotoURLKey(photos[i].ID), &cached); err == nil && cached != "" {
			photos[i].FileURL = cached
			continue
		}
		fileURL, err := s.RefreshPhotoURL(ctx, photos[i].ID)
		if err != nil {
			logger.Warn("刷新照片URL失败", zap.Uint64("photoID", photos[i].ID), zap.Error(err))
			continue
		}
		photos[i].FileURL = fileURL
	}
}

// cacheURL 把预签名URL写入缓存，提前一分钟过期，避免返回临近失效的URL
func (s *photoService) cacheURL(ctx context.Context, photoID uint64, fileURL string) {
	ttl := s.urlExpiry - time.Minute
	if ttl <= 0 {
		ttl = s.urlExpiry / 2
	}
	if err := s.cache.Set(ctx, cache.GeneratePhotoURLKey(photoID), fileURL, ttl); err != nil {
		logger.Warn("写入URL缓存失败", zap.Uint64("photoID", photoID), zap.Error(err))
	}
}

// indexCaption 同步照片描述到搜索索引，失败不影响主流程
func (s *photoService) indexCaption(ctx context.Context, photo *models.Photo) {
	if photo.Caption == nil || *photo.Caption == "" {
		if err := s.photoIndex.RemovePhoto(ctx, photo.ID); err != nil {
			logger.Warn("清理照片索引失败", zap.Uint64("photoID", photo.ID), zap.Error(err))
		}
		return
	}
	doc := search.PhotoDocument{
		PhotoID:   photo.ID,
		BabyID:    photo.BabyID,
		Caption:   *photo.Caption,
		PhotoDate: photo.PhotoDate.Format("2006-01-02"),
	}
	if err := s.photoIndex.IndexPhoto(ctx, doc); err != nil {
		logger.Warn("写入照片索引失败", zap.Uint64("photoID", photo.ID), zap.Error(err))
	}
}

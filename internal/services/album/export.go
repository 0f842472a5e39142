package album

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"

	"github.com/andrebarros6/lil-heart/internal/models"
	"github.com/andrebarros6/lil-heart/internal/pkg/logger"
	"github.com/andrebarros6/lil-heart/internal/pkg/storage"
	"github.com/andrebarros6/lil-heart/internal/pkg/xerr"
	"github.com/andrebarros6/lil-heart/internal/repositories"
	"github.com/klauspost/compress/zip"
	"go.uber.org/zap"
)

type ExportService interface {
	// ExportAlbum 把宝宝的全部照片和成长记录打包成ZIP流返回，
	// 返回的读取器由调用方负责关闭。只有创建者可以导出
	ExportAlbum(ctx context.Context, userID, babyID uint64) (io.ReadCloser, string, error)
}

type exportService struct {
	babyRepo        repositories.BabyRepository
	photoRepo       repositories.PhotoRepository
	measurementRepo repositories.MeasurementRepository
	storageSvc      storage.StorageService
	bucketName      string
}

var _ ExportService = (*exportService)(nil)

func NewExportService(
	babyRepo repositories.BabyRepository,
	photoRepo repositories.PhotoRepository,
	measurementRepo repositories.MeasurementRepository,
	storageSvc storage.StorageService,
	bucketName string,
) ExportService {
	return &exportService{
		babyRepo:        babyRepo,
		photoRepo:       photoRepo,
		measurementRepo: measurementRepo,
		storageSvc:      storageSvc,
		bucketName:      bucketName,
	}
}

func (s *exportService) ExportAlbum(ctx context.Context, userID, babyID uint64) (io.ReadCloser, string, error) {
	baby, err := s.babyRepo.FindByID(babyID)
	if err != nil {
		return nil, "", err
	}
	if baby == nil {
		return nil, "", xerr.ErrBabyNotFound
	}
	if baby.CreatedBy != userID {
		return nil, "", xerr.ErrPermissionDenied
	}

	photos, err := s.photoRepo.FindAllByBabyID(babyID, 0)
	if err != nil {
		return nil, "", err
	}
	measurements, err := s.measurementRepo.FindAllByBabyID(babyID, 0, true)
	if err != nil {
		return nil, "", err
	}

	zipName := fmt.Sprintf("%s_album.zip", baby.Name)

	// 用 pipe 做流式打包，照片从对象存储边读边写进ZIP，不落盘也不占整包内存
	pr, pw := io.Pipe()
	go func() {
		zipWriter := zip.NewWriter(pw)

		if err := s.writeMeasurements(zipWriter, baby, measurements); err != nil {
			pw.CloseWithError(err)
			return
		}

		for i := range photos {
			if err := s.writePhoto(ctx, zipWriter, &photos[i]); err != nil {
				pw.CloseWithError(err)
				return
			}
		}

		if err := zipWriter.Close(); err != nil {
			pw.CloseWithError(fmt.Errorf("关闭ZIP写入器失败: %w", err))
			return
		}
		pw.Close()
		logger.Info("相册导出完成",
			zap.Uint64("babyID", babyID),
			zap.Int("photoCount", len(photos)),
			zap.Int("measurementCount", len(measurements)))
	}()

	return pr, zipName, nil
}

// writeMeasurements 把成长记录以JSON形式放进ZIP，方便导出后查看和二次处理
func (s *exportService) writeMeasurements(zipWriter *zip.Writer, baby *models.Baby, measurements []models.Measurement) error {
	w, err := zipWriter.Create("measurements.json")
	if err != nil {
		return fmt.Errorf("创建成长记录条目失败: %w", err)
	}

	payload := struct {
		BabyName     string               `json:"baby_name"`
		Birthdate    string               `json:"birthdate"`
		Measurements []models.Measurement `json:"measurements"`
	}{
		BabyName:     baby.Name,
		Birthdate:    baby.Birthdate.Format("2006-01-02"),
		Measurements: measurements,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return fmt.Errorf("写入成长记录失败: %w", err)
	}
	return nil
}

func (s *exportService) writePhoto(ctx context.Context, zipWriter *zip.Writer, photo *models.Photo) error {
	obj, err := s.storageSvc.GetObject(ctx, s.bucketName, photo.ObjectKey)
	if err != nil {
		// 个别对象缺失不中断整个导出，记录后跳过
		logger.Warn("导出时读取照片失败，跳过",
			zap.Uint64("photoID", photo.ID),
			zap.String("objectKey", photo.ObjectKey),
			zap.Error(err))
		return nil
	}
	defer obj.Reader.Close()

	// 照片按 photos/日期_原文件名 组织
	entryName := fmt.Sprintf("photos/%s_%s",
		photo.PhotoDate.Format("2006-01-02"),
		path.Base(photo.ObjectKey),
	)
	header := &zip.FileHeader{
		Name:     entryName,
		Method:   zip.Deflate,
		Modified: photo.UpdatedAt,
	}
	if photo.SizeBytes > 0 {
		header.UncompressedSize64 = uint64(photo.SizeBytes)
	}

	w, err := zipWriter.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("创建ZIP条目 %s 失败: %w", entryName, err)
	}
	if _, err := io.Copy(w, obj.Reader); err != nil {
		return fmt.Errorf("写入照片 %s 失败: %w", entryName, err)
	}
	return nil
}

package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/andrebarros6/lil-heart/internal/models"
	"gorm.io/gorm"
)

type PhotoRepository interface {
	Create(photo *models.Photo) error
	FindByID(id uint64) (*models.Photo, error)
	FindAllByBabyID(babyID uint64, limit int) ([]models.Photo, error)
	FindByDateRange(babyID uint64, start, end time.Time) ([]models.Photo, error)
	CountByBabyID(babyID uint64) (int64, error)
	Update(photo *models.Photo) error
	Delete(id uint64) error // 逻辑删除照片记录
}

type photoRepository struct {
	db *gorm.DB
}

var _ PhotoRepository = (*photoRepository)(nil)

// NewPhotoRepository 创建新的 photoRepository 实例
func NewPhotoRepository(db *gorm.DB) PhotoRepository {
	return &photoRepository{db: db}
}

func (r *photoRepository) Create(photo *models.Photo) error {
	return r.db.Create(photo).Error
}

// FindByID 根据ID查找照片，未找到时返回 (nil, nil)
func (r *photoRepository) FindByID(id uint64) (*models.Photo, error) {
	var photo models.Photo
	err := r.db.Where("id = ?", id).First(&photo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("查询照片失败: %w", err)
	}
	return &photo, nil
}

// FindAllByBabyID 按拍摄日期倒序返回照片，limit<=0 表示不限制条数
func (r *photoRepository) FindAllByBabyID(babyID uint64, limit int) ([]models.Photo, error) {
	var photos []models.Photo
	query := r.db.Where("baby_id = ?", babyID).Order("photo_date desc, id desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&photos).Error; err != nil {
		return nil, fmt.Errorf("查询照片列表失败: %w", err)
	}
	return photos, nil
}

func (r *photoRepository) FindByDateRange(babyID uint64, start, end time.Time) ([]models.Photo, error) {
	var photos []models.Photo
	err := r.db.Where("baby_id = ? AND photo_date BETWEEN ? AND ?", babyID, start, end).
		Order("photo_date asc").Find(&photos).Error
	if err != nil {
		return nil, fmt.Errorf("按日期查询照片失败: %w", err)
	}
	return photos, nil
}

func (r *photoRepository) CountByBabyID(babyID uint64) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Photo{}).Where("baby_id = ?", babyID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("统计照片数量失败: %w", err)
	}
	return count, nil
}

func (r *photoRepository) Update(photo *models.Photo) error {
	return r.db.Save(photo).Error
}

// 软删除记录(设置deleted_at字段)
func (r *photoRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Photo{}, id).Error
}

package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/andrebarros6/lil-heart/internal/models"
	"gorm.io/gorm"
)

type MeasurementRepository interface {
	Create(m *models.Measurement) error
	FindByID(id uint64) (*models.Measurement, error)
	FindAllByBabyID(babyID uint64, limit int, ascending bool) ([]models.Measurement, error)
	FindByDateRange(babyID uint64, start, end time.Time) ([]models.Measurement, error)
	CountByBabyID(babyID uint64) (int64, error)
	Update(m *models.Measurement) error
	Delete(id uint64) error
}

type measurementRepository struct {
	db *gorm.DB
}

var _ MeasurementRepository = (*measurementRepository)(nil)

// NewMeasurementRepository 创建新的 measurementRepository 实例
func NewMeasurementRepository(db *gorm.DB) MeasurementRepository {
	return &measurementRepository{db: db}
}

func (r *measurementRepository) Create(m *models.Measurement) error {
	return r.db.Create(m).Error
}

// FindByID 根据ID查找成长记录，未找到时返回 (nil, nil)
func (r *measurementRepository) FindByID(id uint64) (*models.Measurement, error) {
	var m models.Measurement
	err := r.db.Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("查询成长记录失败: %w", err)
	}
	return &m, nil
}

// FindAllByBabyID 返回宝宝的成长记录，limit<=0 表示不限制条数
func (r *measurementRepository) FindAllByBabyID(babyID uint64, limit int, ascending bool) ([]models.Measurement, error) {
	order := "measurement_date desc, id desc"
	if ascending {
		order = "measurement_date asc, id asc"
	}
	var ms []models.Measurement
	query := r.db.Where("baby_id = ?", babyID).Order(order)
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("查询成长记录列表失败: %w", err)
	}
	return ms, nil
}

func (r *measurementRepository) FindByDateRange(babyID uint64, start, end time.Time) ([]models.Measurement, error) {
	var ms []models.Measurement
	err := r.db.Where("baby_id = ? AND measurement_date BETWEEN ? AND ?", babyID, start, end).
		Order("measurement_date asc").Find(&ms).Error
	if err != nil {
		return nil, fmt.Errorf("按日期查询成长记录失败: %w", err)
	}
	return ms, nil
}

func (r *measurementRepository) CountByBabyID(babyID uint64) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Measurement{}).Where("baby_id = ?", babyID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("统计成长记录数量失败: %w", err)
	}
	return count, nil
}

func (r *measurementRepository) Update(m *models.Measurement) error {
	return r.db.Save(m).Error
}

func (r *measurementRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Measurement{}, id).Error
}

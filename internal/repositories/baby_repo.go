package repositories

import (
	"errors"
	"fmt"

	"github.com/andrebarros6/lil-heart/internal/models"
	"gorm.io/gorm"
)

type BabyRepository interface {
	Create(baby *models.Baby) error
	FindByID(id uint64) (*models.Baby, error)
	FindAllByCreator(userID uint64) ([]models.Baby, error)
	Update(baby *models.Baby) error
}

type babyRepository struct {
	db *gorm.DB
}

var _ BabyRepository = (*babyRepository)(nil)

// NewBabyRepository 创建新的 babyRepository 实例
func NewBabyRepository(db *gorm.DB) BabyRepository {
	return &babyRepository{db: db}
}

func (r *babyRepository) Create(baby *models.Baby) error {
	return r.db.Create(baby).Error
}

// FindByID 根据ID查找宝宝档案，未找到时返回 (nil, nil)
func (r *babyRepository) FindByID(id uint64) (*models.Baby, error) {
	var baby models.Baby
	err := r.db.Where("id = ?", id).First(&baby).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("查询宝宝档案失败: %w", err)
	}
	return &baby, nil
}

func (r *babyRepository) FindAllByCreator(userID uint64) ([]models.Baby, error) {
	var babies []models.Baby
	err := r.db.Where("created_by = ?", userID).Order("created_at asc").Find(&babies).Error
	if err != nil {
		return nil, fmt.Errorf("查询宝宝档案列表失败: %w", err)
	}
	return babies, nil
}

func (r *babyRepository) Update(baby *models.Baby) error {
	return r.db.Save(baby).Error
}

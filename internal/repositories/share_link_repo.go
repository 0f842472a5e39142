package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/andrebarros6/lil-heart/internal/models"
	"gorm.io/gorm"
)

type ShareLinkRepository interface {
	// Replace 在同一个事务内停用该宝宝的全部活跃链接并插入新链接
	// 事务保证外界观察不到"两条同时活跃"或"旧链接已失效而新链接尚未生效"的中间状态
	Replace(ctx context.Context, link *models.ShareLink) error
	// DeactivateAllByBabyID 停用宝宝的全部活跃链接，返回受影响行数
	DeactivateAllByBabyID(ctx context.Context, babyID uint64) (int64, error)
	// FindActiveByToken 在活跃链接中查找 token，未找到时返回 (nil, nil)
	FindActiveByToken(ctx context.Context, token string) (*models.ShareLink, error)
	// FindActiveByBabyID 查找宝宝当前的活跃链接，未找到时返回 (nil, nil)
	FindActiveByBabyID(ctx context.Context, babyID uint64) (*models.ShareLink, error)
	// Update 更新链接记录（例如过期时顺手停用）
	Update(ctx context.Context, link *models.ShareLink) error
}

type shareLinkRepository struct {
	db *gorm.DB
	tm TransactionManager
}

var _ ShareLinkRepository = (*shareLinkRepository)(nil)

// NewShareLinkRepository 创建新的 shareLinkRepository 实例
func NewShareLinkRepository(db *gorm.DB, tm TransactionManager) ShareLinkRepository {
	return &shareLinkRepository{db: db, tm: tm}
}

func (r *shareLinkRepository) Replace(ctx context.Context, link *models.ShareLink) error {
	return r.tm.WithTransaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Model(&models.ShareLink{}).
			Where("baby_id = ? AND is_active = ?", link.BabyID, true).
			Update("is_active", false).Error; err != nil {
			return fmt.Errorf("停用旧分享链接失败: %w", err)
		}
		if err := tx.Create(link).Error; err != nil {
			return fmt.Errorf("创建分享链接失败: %w", err)
		}
		return nil
	})
}

func (r *shareLinkRepository) DeactivateAllByBabyID(ctx context.Context, babyID uint64) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.ShareLink{}).
		Where("baby_id = ? AND is_active = ?", babyID, true).
		Update("is_active", false)
	if result.Error != nil {
		return 0, fmt.Errorf("停用分享链接失败: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *shareLinkRepository) FindActiveByToken(ctx context.Context, token string) (*models.ShareLink, error) {
	var link models.ShareLink
	err := r.db.WithContext(ctx).
		Where("token = ? AND is_active = ?", token, true).First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("查询分享链接失败: %w", err)
	}
	return &link, nil
}

func (r *shareLinkRepository) FindActiveByBabyID(ctx context.Context, babyID uint64) (*models.ShareLink, error) {
	var link models.ShareLink
	err := r.db.WithContext(ctx).
		Where("baby_id = ? AND is_active = ?", babyID, true).First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("查询分享链接失败: %w", err)
	}
	return &link, nil
}

func (r *shareLinkRepository) Update(ctx context.Context, link *models.ShareLink) error {
	return r.db.WithContext(ctx).Save(link).Error
}

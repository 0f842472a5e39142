package share

import (
	"context"
	"fmt"
	"time"

	"github.com/andrebarros6/lil-heart/internal/models"
	"github.com/andrebarros6/lil-heart/internal/pkg/logger"
	"github.com/andrebarros6/lil-heart/internal/pkg/xerr"
	"github.com/andrebarros6/lil-heart/internal/repositories"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ShareService 定义了分享链接的生命周期管理和访问校验接口
type ShareService interface {
	// IssueShareLink 为宝宝生成新的分享链接，旧的活跃链接会被原子地停用
	IssueShareLink(ctx context.Context, ownerID, babyID uint64, password *string, expiresInMinutes *int) (*models.ShareLink, error)
	// RevokeShareLinks 停用宝宝的全部活跃链接，返回停用数量，无活跃链接时返回0且不报错
	RevokeShareLinks(ctx context.Context, ownerID, babyID uint64) (int64, error)
	// GetActiveShareLink 查询宝宝当前的活跃链接，没有时返回 (nil, nil)
	GetActiveShareLink(ctx context.Context, ownerID, babyID uint64) (*models.ShareLink, error)
	// Validate 校验访客提交的 token 和密码，永不返回 error，
	// 所有存储层异常都归一为 Denied(validation_error)
	Validate(ctx context.Context, token string, password *string) ValidationResult
	// HasActiveLink 判断宝宝当前是否还有活跃链接，访客读路径据此让撤销即时生效
	HasActiveLink(ctx context.Context, babyID uint64) (bool, error)
}

// shareService 是 ShareService 接口的具体实现
type shareService struct {
	shareRepo repositories.ShareLinkRepository // 分享链接数据仓库
	babyRepo  repositories.BabyRepository      // 宝宝档案数据仓库，用于归属校验
}

var _ ShareService = (*shareService)(nil)

// NewShareService 创建一个新的 ShareService 实例
func NewShareService(shareRepo repositories.ShareLinkRepository, babyRepo repositories.BabyRepository) ShareService {
	return &shareService{
		shareRepo: shareRepo,
		babyRepo:  babyRepo,
	}
}

// IssueShareLink 处理生成分享链接的业务逻辑
func (s *shareService) IssueShareLink(ctx context.Context, ownerID, babyID uint64, password *string, expiresInMinutes *int) (*models.ShareLink, error) {
	// 1. 校验宝宝档案存在且属于当前管理员
	baby, err := s.babyRepo.FindByID(babyID)
	if err != nil {
		return nil, fmt.Errorf("校验宝宝档案失败: %w", err)
	}
	if baby == nil {
		return nil, xerr.ErrBabyNotFound
	}
	if baby.CreatedBy != ownerID {
		return nil, xerr.ErrPermissionDenied
	}

	// 2. 构造新链接，token 为 UUID v4，128位随机足以防猜测
	newLink := &models.ShareLink{
		BabyID:    babyID,
		Token:     uuid.New().String(),
		IsActive:  true,
		CreatedBy: ownerID,
	}

	// 3. 如果设置了密码，只保存 bcrypt 哈希，明文不落库也不写日志
	if password != nil && *password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
		if err != nil {
			logger.Error("IssueShareLink: 分享密码哈希失败", zap.Error(err))
			return nil, fmt.Errorf("密码处理失败: %w", err)
		}
		hashedStr := string(hashed)
		newLink.PasswordHash = &hashedStr
	}

	// 4. 如果设置了有效期，计算绝对过期时间点
	if expiresInMinutes != nil && *expiresInMinutes > 0 {
		expiresAt := time.Now().Add(time.Duration(*expiresInMinutes) * time.Minute)
		newLink.ExpiresAt = &expiresAt
	}

	// 5. 停用旧链接并插入新链接，两步在同一事务内完成，
	// 失败时回滚，旧链接保持有效，不会出现中间状态
	if err := s.shareRepo.Replace(ctx, newLink); err != nil {
		logger.Error("IssueShareLink: 写入分享链接失败", zap.Uint64("babyID", babyID), zap.Error(err))
		return nil, fmt.Errorf("创建分享链接失败: %w", err)
	}

	logger.Info("IssueShareLink: 分享链接创建成功",
		zap.Uint64("babyID", babyID),
		zap.Uint64("linkID", newLink.ID),
		zap.Bool("passwordProtected", newLink.HasPassword()))
	return newLink, nil
}

// RevokeShareLinks 撤销宝宝的全部活跃分享链接
func (s *shareService) RevokeShareLinks(ctx context.Context, ownerID, babyID uint64) (int64, error) {
	baby, err := s.babyRepo.FindByID(babyID)
	if err != nil {
		return 0, fmt.Errorf("校验宝宝档案失败: %w", err)
	}
	if baby == nil {
		return 0, xerr.ErrBabyNotFound
	}
	if baby.CreatedBy != ownerID {
		return 0, xerr.ErrPermissionDenied
	}

	// 幂等操作：没有活跃链接时返回0，不算错误
	count, err := s.shareRepo.DeactivateAllByBabyID(ctx, babyID)
	if err != nil {
		logger.Error("RevokeShareLinks: 停用分享链接失败", zap.Uint64("babyID", babyID), zap.Error(err))
		return 0, fmt.Errorf("撤销分享链接失败: %w", err)
	}

	logger.Info("RevokeShareLinks: 分享链接已撤销", zap.Uint64("babyID", babyID), zap.Int64("count", count))
	return count, nil
}

// GetActiveShareLink 查询当前活跃链接，供管理界面展示
func (s *shareService) GetActiveShareLink(ctx context.Context, ownerID, babyID uint64) (*models.ShareLink, error) {
	baby, err := s.babyRepo.FindByID(babyID)
	if err != nil {
		return nil, fmt.Errorf("校验宝宝档案失败: %w", err)
	}
	if baby == nil {
		return nil, xerr.ErrBabyNotFound
	}
	if baby.CreatedBy != ownerID {
		return nil, xerr.ErrPermissionDenied
	}

	return s.shareRepo.FindActiveByBabyID(ctx, babyID)
}

// Validate 校验访客提交的分享 token 和可选密码
// 检查顺序：token 是否在活跃链接中 → 是否过期 → 密码是否需要/正确
func (s *shareService) Validate(ctx context.Context, token string, password *string) ValidationResult {
	link, err := s.shareRepo.FindActiveByToken(ctx, token)
	if err != nil {
		// 存储层异常不向调用方抛出，归一为校验失败
		logger.Error("Validate: 查询分享链接失败", zap.Error(err))
		return denied(DenyValidationError)
	}
	if link == nil {
		return denied(DenyInvalidOrExpired)
	}

	if link.IsExpired(time.Now()) {
		// 过期的链接顺手停用，失败只记日志，不影响本次结果
		link.IsActive = false
		if err := s.shareRepo.Update(ctx, link); err != nil {
			logger.Warn("Validate: 停用过期链接失败", zap.Uint64("linkID", link.ID), zap.Error(err))
		}
		return denied(DenyExpired)
	}

	if link.HasPassword() {
		if password == nil || *password == "" {
			// 区别于 Denied：调用方据此弹出密码输入而不是直接报错
			return passwordRequired()
		}
		// bcrypt 内部是恒定时间比较
		if bcrypt.CompareHashAndPassword([]byte(*link.PasswordHash), []byte(*password)) != nil {
			return denied(DenyIncorrectPassword)
		}
	}
	// 未设置密码时忽略任何提交的密码参数

	logger.Info("Validate: 分享链接校验通过", zap.Uint64("babyID", link.BabyID), zap.Uint64("linkID", link.ID))
	return granted(link.BabyID)
}

// HasActiveLink 在每次访客读取时被调用，链接撤销后访客 Token 立即失效，
// 不必等 Token 自然过期。过期未停用的链接也视为不可用
func (s *shareService) HasActiveLink(ctx context.Context, babyID uint64) (bool, error) {
	link, err := s.shareRepo.FindActiveByBabyID(ctx, babyID)
	if err != nil {
		return false, fmt.Errorf("查询活跃分享链接失败: %w", err)
	}
	if link == nil {
		return false, nil
	}
	return !link.IsExpired(time.Now()), nil
}

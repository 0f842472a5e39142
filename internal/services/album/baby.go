package album

import (
	"fmt"
	"strings"
	"time"

	"github.com/andrebarros6/lil-heart/internal/models"
	"github.com/andrebarros6/lil-heart/internal/pkg/logger"
	"github.com/andrebarros6/lil-heart/internal/pkg/xerr"
	"github.com/andrebarros6/lil-heart/internal/repositories"
	"go.uber.org/zap"
)

// AgeInfo 描述某个时间点宝宝的年龄，Display 是适合展示的文案，
// 按年龄段自动切换单位：两周内按天，三个月内按周，两岁内按月，之后按岁
type AgeInfo struct {
	Days    int    `json:"days"`
	Weeks   int    `json:"weeks"`
	Months  int    `json:"months"`
	Years   int    `json:"years"`
	Display string `json:"display"`
}

// BabyProfile 宝宝档案和统计信息，管理端和访客端共用
type BabyProfile struct {
	Baby             *models.Baby `json:"baby"`
	Age              AgeInfo      `json:"age"`
	PhotoCount       int64        `json:"photo_count"`
	MeasurementCount int64        `json:"measurement_count"`
}

type BabyService interface {
	CreateBaby(userID uint64, name string, birthdate time.Time) (*models.Baby, error)
	ListBabies(userID uint64) ([]models.Baby, error)
	// GetBaby 校验归属后返回宝宝档案，非创建者返回 ErrPermissionDenied
	GetBaby(userID, babyID uint64) (*models.Baby, error)
	UpdateBaby(userID, babyID uint64, name *string, birthdate *time.Time, profilePhotoURL *string) (*models.Baby, error)
	// Profile 返回档案和统计信息，不做归属校验，调用方需要先确认访问权限
	Profile(babyID uint64) (*BabyProfile, error)
}

type babyService struct {
	babyRepo        repositories.BabyRepository
	photoRepo       repositories.PhotoRepository
	measurementRepo repositories.MeasurementRepository
}

var _ BabyService = (*babyService)(nil)

func NewBabyService(
	babyRepo repositories.BabyRepository,
	photoRepo repositories.PhotoRepository,
	measurementRepo repositories.MeasurementRepository,
) BabyService {
	return &babyService{
		babyRepo:        babyRepo,
		photoRepo:       photoRepo,
		measurementRepo: measurementRepo,
	}
}

func (s *babyService) CreateBaby(userID uint64, name string, birthdate time.Time) (*models.Baby, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, xerr.ErrInvalidParams
	}
	if birthdate.After(time.Now()) {
		return nil, xerr.ErrInvalidParams
	}

	baby := &models.Baby{
		Name:      name,
		Birthdate: birthdate,
		CreatedBy: userID,
	}
	if err := s.babyRepo.Create(baby); err != nil {
		return nil, fmt.Errorf("创建宝宝档案失败: %w", err)
	}

	logger.Info("宝宝档案创建成功", zap.Uint64("babyID", baby.ID), zap.Uint64("userID", userID))
	return baby, nil
}

func (s *babyService) ListBabies(userID uint64) ([]models.Baby, error) {
	return s.babyRepo.FindAllByCreator(userID)
}

func (s *babyService) GetBaby(userID, babyID uint64) (*models.Baby, error) {
	baby, err := s.babyRepo.FindByID(babyID)
	if err != nil {
		return nil, err
	}
	if baby == nil {
		return nil, xerr.ErrBabyNotFound
	}
	if baby.CreatedBy != userID {
		return nil, xerr.ErrPermissionDenied
	}
	return baby, nil
}

func (s *babyService) UpdateBaby(userID, babyID uint64, name *string, birthdate *time.Time, profilePhotoURL *string) (*models.Baby, error) {
	baby, err := s.GetBaby(userID, babyID)
	if err != nil {
		return nil, err
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, xerr.ErrInvalidParams
		}
		baby.Name = trimmed
	}
	if birthdate != nil {
		if birthdate.After(time.Now()) {
			return nil, xerr.ErrInvalidParams
		}
		baby.Birthdate = *birthdate
	}
	if profilePhotoURL != nil {
		baby.ProfilePhotoURL = profilePhotoURL
	}

	if err := s.babyRepo.Update(baby); err != nil {
		return nil, fmt.Errorf("更新宝宝档案失败: %w", err)
	}
	return baby, nil
}

func (s *babyService) Profile(babyID uint64) (*BabyProfile, error) {
	baby, err := s.babyRepo.FindByID(babyID)
	if err != nil {
		return nil, err
	}
	if baby == nil {
		return nil, xerr.ErrBabyNotFound
	}

	photoCount, err := s.photoRepo.CountByBabyID(babyID)
	if err != nil {
		return nil, err
	}
	measurementCount, err := s.measurementRepo.CountByBabyID(babyID)
	if err != nil {
		return nil, err
	}

	return &BabyProfile{
		Baby:             baby,
		Age:              CalculateAge(baby.Birthdate, time.Now()),
		PhotoCount:       photoCount,
		MeasurementCount: measurementCount,
	}, nil
}

// CalculateAge 计算 birthdate 到 at 时刻的年龄
func CalculateAge(birthdate, at time.Time) AgeInfo {
	// 只按日期比较，忽略时分秒
	b := time.Date(birthdate.Year(), birthdate.Month(), birthdate.Day(), 0, 0, 0, 0, time.UTC)
	a := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC)
	if a.Before(b) {
		a = b
	}

	days := int(a.Sub(b).Hours() / 24)

	// 按日历计算整月数
	months := (a.Year()-b.Year())*12 + int(a.Month()) - int(b.Month())
	if a.Day() < b.Day() {
		months--
	}
	if months < 0 {
		months = 0
	}

	info := AgeInfo{
		Days:   days,
		Weeks:  days / 7,
		Months: months,
		Years:  months / 12,
	}
	info.Display = formatAge(info)
	return info
}

// 不满一周按天显示，不满60天按周显示，之后按月，满两岁按岁
func formatAge(info AgeInfo) string {
	switch {
	case info.Days < 7:
		return fmt.Sprintf("%d天", info.Days)
	case info.Days < 60:
		return fmt.Sprintf("%d周", info.Weeks)
	case info.Months < 24:
		return fmt.Sprintf("%d个月", info.Months)
	default:
		years := info.Months / 12
		rem := info.Months % 12
		if rem == 0 {
			return fmt.Sprintf("%d岁", years)
		}
		return fmt.Sprintf("%d岁%d个月", years, rem)
	}
}

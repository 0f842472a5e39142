package album

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/andrebarros6/lil-heart/internal/models"
	"github.com/andrebarros6/lil-heart/internal/pkg/logger"
	"github.com/andrebarros6/lil-heart/internal/pkg/xerr"
	"github.com/andrebarros6/lil-heart/internal/repositories"
	"go.uber.org/zap"
)

// 新生儿到学龄前合理的体重和身高范围
const (
	minWeightKg = 0.5
	maxWeightKg = 50.0
	minHeightCm = 30.0
	maxHeightCm = 200.0
	maxNotesLen = 500
)

// MeasurementInput 新增或修改成长记录的参数
type MeasurementInput struct {
	MeasurementDate time.Time
	WeightKg        *float64
	HeightCm        *float64
	Notes           *string
}

// GrowthStatistics 按时间顺序统计的成长数据，用于成长曲线页的汇总展示
type GrowthStatistics struct {
	Count          int        `json:"count"`
	FirstDate      *time.Time `json:"first_date,omitempty"`
	LatestDate     *time.Time `json:"latest_date,omitempty"`
	FirstWeightKg  *float64   `json:"first_weight_kg,omitempty"`
	LatestWeightKg *float64   `json:"latest_weight_kg,omitempty"`
	WeightGainKg   *float64   `json:"weight_gain_kg,omitempty"`
	FirstHeightCm  *float64   `json:"first_height_cm,omitempty"`
	LatestHeightCm *float64   `json:"latest_height_cm,omitempty"`
	HeightGainCm   *float64   `json:"height_gain_cm,omitempty"`
	AvgWeightKg    *float64   `json:"avg_weight_kg,omitempty"`
	AvgHeightCm    *float64   `json:"avg_height_cm,omitempty"`
}

type MeasurementService interface {
	AddMeasurement(userID, babyID uint64, input MeasurementInput) (*models.Measurement, error)
	UpdateMeasurement(userID, measurementID uint64, input MeasurementInput) (*models.Measurement, error)
	DeleteMeasurement(userID, measurementID uint64) error
	// ListMeasurements 返回成长记录，ascending 为真时按日期升序（成长曲线用）。不做归属校验
	ListMeasurements(babyID uint64, limit int, ascending bool) ([]models.Measurement, error)
	// Statistics 汇总首末记录的体重身高变化。不做归属校验
	Statistics(babyID uint64) (*GrowthStatistics, error)
}

type measurementService struct {
	measurementRepo repositories.MeasurementRepository
	babyRepo        repositories.BabyRepository
}

var _ MeasurementService = (*measurementService)(nil)

func NewMeasurementService(
	measurementRepo repositories.MeasurementRepository,
	babyRepo repositories.BabyRepository,
) MeasurementService {
	return &measurementService{
		measurementRepo: measurementRepo,
		babyRepo:        babyRepo,
	}
}

func (s *measurementService) AddMeasurement(userID, babyID uint64, input MeasurementInput) (*models.Measurement, error) {
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

	if err := validateMeasurementInput(input); err != nil {
		return nil, err
	}
	if input.MeasurementDate.IsZero() {
		input.MeasurementDate = time.Now()
	}

	m := &models.Measurement{
		BabyID:          babyID,
		MeasurementDate: input.MeasurementDate,
		WeightKg:        input.WeightKg,
		HeightCm:        input.HeightCm,
		Notes:           input.Notes,
		RecordedBy:      userID,
	}
	if err := s.measurementRepo.Create(m); err != nil {
		return nil, fmt.Errorf("创建成长记录失败: %w", err)
	}

	logger.Info("成长记录创建成功", zap.Uint64("measurementID", m.ID), zap.Uint64("babyID", babyID))
	return m, nil
}

func (s *measurementService) UpdateMeasurement(userID, measurementID uint64, input MeasurementInput) (*models.Measurement, error) {
	m, err := s.ownedMeasurement(userID, measurementID)
	if err != nil {
		return nil, err
	}

	if err := validateMeasurementInput(input); err != nil {
		return nil, err
	}

	if !input.MeasurementDate.IsZero() {
		m.MeasurementDate = input.MeasurementDate
	}
	m.WeightKg = input.WeightKg
	m.HeightCm = input.HeightCm
	m.Notes = input.Notes

	if err := s.measurementRepo.Update(m); err != nil {
		return nil, fmt.Errorf("更新成长记录失败: %w", err)
	}
	return m, nil
}

func (s *measurementService) DeleteMeasurement(userID, measurementID uint64) error {
	if _, err := s.ownedMeasurement(userID, measurementID); err != nil {
		return err
	}
	if err := s.measurementRepo.Delete(measurementID); err != nil {
		return fmt.Errorf("删除成长记录失败: %w", err)
	}
	logger.Info("成长记录已删除", zap.Uint64("measurementID", measurementID), zap.Uint64("userID", userID))
	return nil
}

func (s *measurementService) ListMeasurements(babyID uint64, limit int, ascending bool) ([]models.Measurement, error) {
	return s.measurementRepo.FindAllByBabyID(babyID, limit, ascending)
}

func (s *measurementService) Statistics(babyID uint64) (*GrowthStatistics, error) {
	ms, err := s.measurementRepo.FindAllByBabyID(babyID, 0, true)
	if err != nil {
		return nil, err
	}

	stats := &GrowthStatistics{Count: len(ms)}
	if len(ms) == 0 {
		return stats, nil
	}

	first := ms[0].MeasurementDate
	latest := ms[len(ms)-1].MeasurementDate
	stats.FirstDate = &first
	stats.LatestDate = &latest

	// 体重和身高可能缺测，首末值各自取第一条/最后一条非空记录，均值只统计非空记录
	var weightSum, heightSum float64
	var weightCount, heightCount int
	for i := range ms {
		if stats.FirstWeightKg == nil && ms[i].WeightKg != nil {
			stats.FirstWeightKg = ms[i].WeightKg
		}
		if stats.FirstHeightCm == nil && ms[i].HeightCm != nil {
			stats.FirstHeightCm = ms[i].HeightCm
		}
		if ms[i].WeightKg != nil {
			weightSum += *ms[i].WeightKg
			weightCount++
		}
		if ms[i].HeightCm != nil {
			heightSum += *ms[i].HeightCm
			heightCount++
		}
	}
	if weightCount > 0 {
		avg := weightSum / float64(weightCount)
		stats.AvgWeightKg = &avg
	}
	if heightCount > 0 {
		avg := heightSum / float64(heightCount)
		stats.AvgHeightCm = &avg
	}
	for i := len(ms) - 1; i >= 0; i-- {
		if stats.LatestWeightKg == nil && ms[i].WeightKg != nil {
			stats.LatestWeightKg = ms[i].WeightKg
		}
		if stats.LatestHeightCm == nil && ms[i].HeightCm != nil {
			stats.LatestHeightCm = ms[i].HeightCm
		}
	}

	if stats.FirstWeightKg != nil && stats.LatestWeightKg != nil {
		gain := *stats.LatestWeightKg - *stats.FirstWeightKg
		stats.WeightGainKg = &gain
	}
	if stats.FirstHeightCm != nil && stats.LatestHeightCm != nil {
		gain := *stats.LatestHeightCm - *stats.FirstHeightCm
		stats.HeightGainCm = &gain
	}
	return stats, nil
}

func (s *measurementService) ownedMeasurement(userID, measurementID uint64) (*models.Measurement, error) {
	m, err := s.measurementRepo.FindByID(measurementID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, xerr.ErrMeasurementNotFound
	}

	baby, err := s.babyRepo.FindByID(m.BabyID)
	if err != nil {
		return nil, err
	}
	if baby == nil || baby.CreatedBy != userID {
		return nil, xerr.ErrPermissionDenied
	}
	return m, nil
}

func validateMeasurementInput(input MeasurementInput) error {
	if input.WeightKg == nil && input.HeightCm == nil {
		return xerr.ErrMeasurementEmpty
	}
	if input.WeightKg != nil && (*input.WeightKg < minWeightKg || *input.WeightKg > maxWeightKg) {
		return xerr.ErrWeightOutOfRange
	}
	if input.HeightCm != nil && (*input.HeightCm < minHeightCm || *input.HeightCm > maxHeightCm) {
		return xerr.ErrHeightOutOfRange
	}
	if input.Notes != nil && utf8.RuneCountInString(*input.Notes) > maxNotesLen {
		return xerr.ErrNotesTooLong
	}
	return nil
}

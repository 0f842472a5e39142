package album

import (
	"context"
	"sort"
	"time"

	"github.com/andrebarros6/lil-heart/internal/models"
	"github.com/andrebarros6/lil-heart/internal/pkg/xerr"
)

// 时间线条目类型
const (
	EntryTypePhoto       = "photo"
	EntryTypeMeasurement = "measurement"
)

// TimelineEntry 时间线上的一条内容，照片和成长记录二选一
type TimelineEntry struct {
	Type        string              `json:"type"` // photo 或 measurement
	Date        time.Time           `json:"date"`
	Age         AgeInfo             `json:"age"`
	Photo       *models.Photo       `json:"photo,omitempty"`
	Measurement *models.Measurement `json:"measurement,omitempty"`
}

type TimelineService interface {
	// Timeline 把照片和成长记录按日期倒序合并成一条时间线。不做归属校验
	Timeline(ctx context.Context, babyID uint64, limit int) ([]TimelineEntry, error)
}

type timelineService struct {
	babyRepo       repositoriesBabyFinder
	photoSvc       PhotoService
	measurementSvc MeasurementService
	defaultLimit   int
}

// repositoriesBabyFinder 时间线只需要按ID查档案
type repositoriesBabyFinder interface {
	FindByID(id uint64) (*models.Baby, error)
}

var _ TimelineService = (*timelineService)(nil)

func NewTimelineService(
	babyRepo repositoriesBabyFinder,
	photoSvc PhotoService,
	measurementSvc MeasurementService,
	defaultLimit int,
) TimelineService {
	return &timelineService{
		babyRepo:       babyRepo,
		photoSvc:       photoSvc,
		measurementSvc: measurementSvc,
		defaultLimit:   defaultLimit,
	}
}

func (s *timelineService) Timeline(ctx context.Context, babyID uint64, limit int) ([]TimelineEntry, error) {
	if limit <= 0 {
		limit = s.defaultLimit
	}

	baby, err := s.babyRepo.FindByID(babyID)
	if err != nil {
		return nil, err
	}
	if baby == nil {
		return nil, xerr.ErrBabyNotFound
	}

	// 两边都取limit条再合并截断，保证截断后仍然是最新的limit条
	photos, err := s.photoSvc.ListPhotos(ctx, babyID, limit)
	if err != nil {
		return nil, err
	}
	measurements, err := s.measurementSvc.ListMeasurements(babyID, limit, false)
	if err != nil {
		return nil, err
	}

	entries := make([]TimelineEntry, 0, len(photos)+len(measurements))
	for i := range photos {
		entries = append(entries, TimelineEntry{
			Type:  EntryTypePhoto,
			Date:  photos[i].PhotoDate,
			Age:   CalculateAge(baby.Birthdate, photos[i].PhotoDate),
			Photo: &photos[i],
		})
	}
	for i := range measurements {
		entries = append(entries, TimelineEntry{
			Type:        EntryTypeMeasurement,
			Date:        measurements[i].MeasurementDate,
			Age:         CalculateAge(baby.Birthdate, measurements[i].MeasurementDate),
			Measurement: &measurements[i],
		})
	}

	// 日期相同时照片排在成长记录前面，保持展示顺序稳定
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Type == EntryTypePhoto && entries[j].Type == EntryTypeMeasurement
		}
		return entries[i].Date.After(entries[j].Date)
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

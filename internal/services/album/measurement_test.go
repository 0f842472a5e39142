package album

import (
	"strings"
	"testing"
	"time"

	"github.com/andrebarros6/lil-heart/internal/models"
	"github.com/andrebarros6/lil-heart/internal/pkg/xerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMeasurementRepo 用内存切片模拟成长记录仓库
type fakeMeasurementRepo struct {
	records []*models.Measurement
	nextID  uint64
}

func newFakeMeasurementRepo() *fakeMeasurementRepo {
	return &fakeMeasurementRepo{nextID: 1}
}

func (f *fakeMeasurementRepo) Create(m *models.Measurement) error {
	m.ID = f.nextID
	f.nextID++
	f.records = append(f.records, m)
	return nil
}

func (f *fakeMeasurementRepo) FindByID(id uint64) (*models.Measurement, error) {
	for _, m := range f.records {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeMeasurementRepo) FindAllByBabyID(babyID uint64, limit int, ascending bool) ([]models.Measurement, error) {
	var out []models.Measurement
	for _, m := range f.records {
		if m.BabyID == babyID {
			out = append(out, *m)
		}
	}
	// 记录在本测试里按插入顺序就是日期升序
	if !ascending {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeMeasurementRepo) FindByDateRange(babyID uint64, start, end time.Time) ([]models.Measurement, error) {
	return nil, nil
}

func (f *fakeMeasurementRepo) CountByBabyID(babyID uint64) (int64, error) {
	var count int64
	for _, m := range f.records {
		if m.BabyID == babyID {
			count++
		}
	}
	return count, nil
}

func (f *fakeMeasurementRepo) Update(m *models.Measurement) error { return nil }

func (f *fakeMeasurementRepo) Delete(id uint64) error {
	for i, m := range f.records {
		if m.ID == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return nil
}

// fakeBabyRepo 用内存 map 模拟宝宝档案仓库
type fakeBabyRepo struct {
	babies map[uint64]*models.Baby
}

func newFakeBabyRepo(babies ...*models.Baby) *fakeBabyRepo {
	f := &fakeBabyRepo{babies: make(map[uint64]*models.Baby)}
	for _, b := range babies {
		f.babies[b.ID] = b
	}
	return f
}

func (f *fakeBabyRepo) Create(baby *models.Baby) error {
	baby.ID = uint64(len(f.babies) + 1)
	f.babies[baby.ID] = baby
	return nil
}

func (f *fakeBabyRepo) FindByID(id uint64) (*models.Baby, error) {
	return f.babies[id], nil
}

func (f *fakeBabyRepo) FindAllByCreator(userID uint64) ([]models.Baby, error) {
	var out []models.Baby
	for _, b := range f.babies {
		if b.CreatedBy == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBabyRepo) Update(baby *models.Baby) error {
	f.babies[baby.ID] = baby
	return nil
}

func floatPtr(v float64) *float64 { return &v }

func newMeasurementTestService() (MeasurementService, *fakeMeasurementRepo) {
	repo := newFakeMeasurementRepo()
	babyRepo := newFakeBabyRepo(&models.Baby{ID: 1, Name: "小宝", CreatedBy: 10})
	return NewMeasurementService(repo, babyRepo), repo
}

func TestAddMeasurement(t *testing.T) {
	t.Run("体重身高都合法", func(t *testing.T) {
		svc, _ := newMeasurementTestService()

		m, err := svc.AddMeasurement(10, 1, MeasurementInput{
			MeasurementDate: date(2024, time.June, 1),
			WeightKg:        floatPtr(6.8),
			HeightCm:        floatPtr(62.5),
		})
		require.NoError(t, err)
		assert.Equal(t, 6.8, *m.WeightKg)
		assert.Equal(t, uint64(10), m.RecordedBy)
	})

	t.Run("只填一项也可以", func(t *testing.T) {
		svc, _ := newMeasurementTestService()

		_, err := svc.AddMeasurement(10, 1, MeasurementInput{WeightKg: floatPtr(7.2)})
		assert.NoError(t, err)
	})

	t.Run("两项都缺失被拒绝", func(t *testing.T) {
		svc, _ := newMeasurementTestService()

		_, err := svc.AddMeasurement(10, 1, MeasurementInput{})
		assert.ErrorIs(t, err, xerr.ErrMeasurementEmpty)
	})

	t.Run("体重超出范围", func(t *testing.T) {
		svc, _ := newMeasurementTestService()

		_, err := svc.AddMeasurement(10, 1, MeasurementInput{WeightKg: floatPtr(0.2)})
		assert.ErrorIs(t, err, xerr.ErrWeightOutOfRange)

		_, err = svc.AddMeasurement(10, 1, MeasurementInput{WeightKg: floatPtr(55)})
		assert.ErrorIs(t, err, xerr.ErrWeightOutOfRange)
	})

	t.Run("身高超出范围", func(t *testing.T) {
		svc, _ := newMeasurementTestService()

		_, err := svc.AddMeasurement(10, 1, MeasurementInput{HeightCm: floatPtr(20)})
		assert.ErrorIs(t, err, xerr.ErrHeightOutOfRange)

		_, err = svc.AddMeasurement(10, 1, MeasurementInput{HeightCm: floatPtr(250)})
		assert.ErrorIs(t, err, xerr.ErrHeightOutOfRange)
	})

	t.Run("边界值被接受", func(t *testing.T) {
		svc, _ := newMeasurementTestService()

		_, err := svc.AddMeasurement(10, 1, MeasurementInput{
			WeightKg: floatPtr(0.5),
			HeightCm: floatPtr(30),
		})
		assert.NoError(t, err)

		_, err = svc.AddMeasurement(10, 1, MeasurementInput{
			WeightKg: floatPtr(50),
			HeightCm: floatPtr(200),
		})
		assert.NoError(t, err)
	})

	t.Run("备注过长被拒绝", func(t *testing.T) {
		svc, _ := newMeasurementTestService()

		long := strings.Repeat("长", 501)
		_, err := svc.AddMeasurement(10, 1, MeasurementInput{
			WeightKg: floatPtr(7),
			Notes:    &long,
		})
		assert.ErrorIs(t, err, xerr.ErrNotesTooLong)
	})

	t.Run("非创建者不能记录", func(t *testing.T) {
		svc, _ := newMeasurementTestService()

		_, err := svc.AddMeasurement(99, 1, MeasurementInput{WeightKg: floatPtr(7)})
		assert.ErrorIs(t, err, xerr.ErrPermissionDenied)
	})
}

func TestDeleteMeasurement(t *testing.T) {
	svc, repo := newMeasurementTestService()

	m, err := svc.AddMeasurement(10, 1, MeasurementInput{WeightKg: floatPtr(7)})
	require.NoError(t, err)

	t.Run("非创建者不能删除", func(t *testing.T) {
		err := svc.DeleteMeasurement(99, m.ID)
		assert.ErrorIs(t, err, xerr.ErrPermissionDenied)
	})

	t.Run("创建者删除成功", func(t *testing.T) {
		require.NoError(t, svc.DeleteMeasurement(10, m.ID))
		assert.Empty(t, repo.records)
	})

	t.Run("删除不存在的记录", func(t *testing.T) {
		err := svc.DeleteMeasurement(10, 999)
		assert.ErrorIs(t, err, xerr.ErrMeasurementNotFound)
	})
}

func TestGrowthStatistics(t *testing.T) {
	t.Run("没有记录时只返回计数", func(t *testing.T) {
		svc, _ := newMeasurementTestService()

		stats, err := svc.Statistics(1)
		require.NoError(t, err)
		assert.Zero(t, stats.Count)
		assert.Nil(t, stats.WeightGainKg)
		assert.Nil(t, stats.AvgWeightKg)
		assert.Nil(t, stats.AvgHeightCm)
	})

	t.Run("首末记录的增量", func(t *testing.T) {
		svc, _ := newMeasurementTestService()

		_, err := svc.AddMeasurement(10, 1, MeasurementInput{
			MeasurementDate: date(2024, time.April, 1),
			WeightKg:        floatPtr(4.0),
			HeightCm:        floatPtr(54.0),
		})
		require.NoError(t, err)
		_, err = svc.AddMeasurement(10, 1, MeasurementInput{
			MeasurementDate: date(2024, time.June, 1),
			WeightKg:        floatPtr(6.5),
		})
		require.NoError(t, err)
		_, err = svc.AddMeasurement(10, 1, MeasurementInput{
			MeasurementDate: date(2024, time.August, 1),
			WeightKg:        floatPtr(8.0),
			HeightCm:        floatPtr(68.0),
		})
		require.NoError(t, err)

		stats, err := svc.Statistics(1)
		require.NoError(t, err)
		assert.Equal(t, 3, stats.Count)
		assert.InDelta(t, 4.0, *stats.WeightGainKg, 0.001)
		assert.InDelta(t, 14.0, *stats.HeightGainCm, 0.001)
		assert.InDelta(t, 6.1667, *stats.AvgWeightKg, 0.001)  // (4.0+6.5+8.0)/3
		assert.InDelta(t, 61.0, *stats.AvgHeightCm, 0.001)    // (54.0+68.0)/2
		assert.Equal(t, date(2024, time.April, 1), *stats.FirstDate)
		assert.Equal(t, date(2024, time.August, 1), *stats.LatestDate)
	})

	t.Run("缺测的项取最近的非空值", func(t *testing.T) {
		svc, _ := newMeasurementTestService()

		// 第一条只有体重，最后一条只有身高
		_, err := svc.AddMeasurement(10, 1, MeasurementInput{
			MeasurementDate: date(2024, time.April, 1),
			WeightKg:        floatPtr(4.0),
		})
		require.NoError(t, err)
		_, err = svc.AddMeasurement(10, 1, MeasurementInput{
			MeasurementDate: date(2024, time.May, 1),
			WeightKg:        floatPtr(5.0),
			HeightCm:        floatPtr(58.0),
		})
		require.NoError(t, err)
		_, err = svc.AddMeasurement(10, 1, MeasurementInput{
			MeasurementDate: date(2024, time.June, 1),
			HeightCm:        floatPtr(61.0),
		})
		require.NoError(t, err)

		stats, err := svc.Statistics(1)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, *stats.WeightGainKg, 0.001)  // 5.0 - 4.0
		assert.InDelta(t, 3.0, *stats.HeightGainCm, 0.001)  // 61.0 - 58.0
		assert.InDelta(t, 5.0, *stats.LatestWeightKg, 0.001)
		assert.InDelta(t, 4.5, *stats.AvgWeightKg, 0.001)   // (4.0+5.0)/2
		assert.InDelta(t, 59.5, *stats.AvgHeightCm, 0.001)  // (58.0+61.0)/2
	})
}

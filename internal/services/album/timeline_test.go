package album

import (
	"context"
	"testing"
	"time"

	"github.com/andrebarros6/lil-heart/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePhotoService 只实现时间线需要的 ListPhotos
type fakePhotoService struct {
	photos []models.Photo
}

func (f *fakePhotoService) UploadPhoto(ctx context.Context, userID uint64, input UploadPhotoInput) (*models.Photo, error) {
	return nil, nil
}

func (f *fakePhotoService) ListPhotos(ctx context.Context, babyID uint64, limit int) ([]models.Photo, error) {
	out := f.photos
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakePhotoService) UpdateCaption(ctx context.Context, userID, photoID uint64, caption *string) (*models.Photo, error) {
	return nil, nil
}

func (f *fakePhotoService) DeletePhoto(ctx context.Context, userID, photoID uint64) error {
	return nil
}

func (f *fakePhotoService) SearchPhotos(ctx context.Context, babyID uint64, query string, limit int) ([]models.Photo, error) {
	return nil, nil
}

func (f *fakePhotoService) RefreshPhotoURL(ctx context.Context, photoID uint64) (string, error) {
	return "", nil
}

func TestTimeline(t *testing.T) {
	birthdate := date(2024, time.March, 15)
	babyRepo := newFakeBabyRepo(&models.Baby{ID: 1, Name: "小宝", Birthdate: birthdate, CreatedBy: 10})

	photoSvc := &fakePhotoService{photos: []models.Photo{
		{ID: 3, BabyID: 1, PhotoDate: date(2024, time.July, 1)},
		{ID: 2, BabyID: 1, PhotoDate: date(2024, time.May, 1)},
		{ID: 1, BabyID: 1, PhotoDate: date(2024, time.April, 1)},
	}}

	measurementRepo := newFakeMeasurementRepo()
	measurementSvc := NewMeasurementService(measurementRepo, babyRepo)
	_, err := measurementSvc.AddMeasurement(10, 1, MeasurementInput{
		MeasurementDate: date(2024, time.April, 1),
		WeightKg:        floatPtr(4.2),
	})
	require.NoError(t, err)
	_, err = measurementSvc.AddMeasurement(10, 1, MeasurementInput{
		MeasurementDate: date(2024, time.June, 1),
		HeightCm:        floatPtr(60.0),
	})
	require.NoError(t, err)

	svc := NewTimelineService(babyRepo, photoSvc, measurementSvc, 50)

	t.Run("按日期倒序合并两类内容", func(t *testing.T) {
		entries, err := svc.Timeline(context.Background(), 1, 0)
		require.NoError(t, err)
		require.Len(t, entries, 5)

		assert.Equal(t, EntryTypePhoto, entries[0].Type)
		assert.Equal(t, date(2024, time.July, 1), entries[0].Date)
		assert.Equal(t, EntryTypeMeasurement, entries[1].Type)
		assert.Equal(t, date(2024, time.June, 1), entries[1].Date)
		assert.Equal(t, date(2024, time.May, 1), entries[2].Date)

		// 同一天照片排在成长记录前
		assert.Equal(t, date(2024, time.April, 1), entries[3].Date)
		assert.Equal(t, EntryTypePhoto, entries[3].Type)
		assert.Equal(t, EntryTypeMeasurement, entries[4].Type)
	})

	t.Run("条目带当时的月龄", func(t *testing.T) {
		entries, err := svc.Timeline(context.Background(), 1, 0)
		require.NoError(t, err)
		// 2024-07-01 距出生 2024-03-15 为3个月
		assert.Equal(t, "3个月", entries[0].Age.Display)
	})

	t.Run("limit截断后保留最新条目", func(t *testing.T) {
		entries, err := svc.Timeline(context.Background(), 1, 2)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, date(2024, time.July, 1), entries[0].Date)
		assert.Equal(t, date(2024, time.June, 1), entries[1].Date)
	})

	t.Run("档案不存在", func(t *testing.T) {
		_, err := svc.Timeline(context.Background(), 42, 0)
		assert.Error(t, err)
	})
}

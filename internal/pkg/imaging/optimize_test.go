package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, width, height int, c color.Color) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &buf
}

func TestOptimize(t *testing.T) {
	t.Run("宽图按最大宽度等比缩小", func(t *testing.T) {
		src := encodePNG(t, 400, 200, color.RGBA{R: 200, G: 100, B: 50, A: 255})

		data, meta, err := Optimize(src, 100, 85)
		require.NoError(t, err)

		assert.Equal(t, 400, meta.OriginalWidth)
		assert.Equal(t, 200, meta.OriginalHeight)
		assert.Equal(t, "png", meta.OriginalFormat)
		assert.Equal(t, 100, meta.OptimizedWidth)
		assert.Equal(t, 50, meta.OptimizedHeight)
		assert.Equal(t, 85, meta.Quality)

		out, err := jpeg.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, 100, out.Bounds().Dx())
		assert.Equal(t, 50, out.Bounds().Dy())
	})

	t.Run("小图不放大", func(t *testing.T) {
		src := encodePNG(t, 80, 60, color.White)

		_, meta, err := Optimize(src, 1920, 85)
		require.NoError(t, err)
		assert.Equal(t, 80, meta.OptimizedWidth)
		assert.Equal(t, 60, meta.OptimizedHeight)
	})

	t.Run("透明像素落在白色背景上", func(t *testing.T) {
		src := encodePNG(t, 10, 10, color.RGBA{})

		data, _, err := Optimize(src, 1920, 95)
		require.NoError(t, err)

		out, err := jpeg.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		r, g, b, _ := out.At(5, 5).RGBA()
		// JPEG 有损，允许少量偏差
		assert.Greater(t, r>>8, uint32(240))
		assert.Greater(t, g>>8, uint32(240))
		assert.Greater(t, b>>8, uint32(240))
	})

	t.Run("非图片内容返回错误", func(t *testing.T) {
		_, _, err := Optimize(strings.NewReader("这不是图片"), 1920, 85)
		assert.Error(t, err)
	})
}

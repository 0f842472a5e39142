package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"io"

	_ "image/gif"
	_ "image/png"

	xdraw "golang.org/x/image/draw"
)

// Meta 记录一次压缩的前后信息，随照片元数据保存
type Meta struct {
	OriginalWidth   int    `json:"original_width"`
	OriginalHeight  int    `json:"original_height"`
	OriginalFormat  string `json:"original_format"`
	OptimizedWidth  int    `json:"optimized_width"`
	OptimizedHeight int    `json:"optimized_height"`
	Quality         int    `json:"quality"`
}

// Optimize 将上传的图片压缩为适合相册存储的 JPEG：
// 宽度超过 maxWidth 时等比缩小，带透明通道的图片平铺到白色背景上，
// 最后按 quality 重新编码。返回编码后的字节和压缩元信息。
func Optimize(r io.Reader, maxWidth, quality int) ([]byte, Meta, error) {
	src, format, err := image.Decode(r)
	if err != nil {
		return nil, Meta{}, fmt.Errorf("解码图片失败: %w", err)
	}

	bounds := src.Bounds()
	meta := Meta{
		OriginalWidth:  bounds.Dx(),
		OriginalHeight: bounds.Dy(),
		OriginalFormat: format,
		Quality:        quality,
	}

	width := bounds.Dx()
	height := bounds.Dy()
	if maxWidth > 0 && width > maxWidth {
		// 等比缩放，CatmullRom 插值的缩小质量接近 Lanczos
		height = height * maxWidth / width
		width = maxWidth
	}

	// 平铺到白色背景，同时完成缩放和透明通道的丢弃
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)

	meta.OptimizedWidth = width
	meta.OptimizedHeight = height

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: quality}); err != nil {
		return nil, Meta{}, fmt.Errorf("编码 JPEG 失败: %w", err)
	}
	return buf.Bytes(), meta, nil
}

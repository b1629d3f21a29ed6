package utils

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"

	"golang.org/x/image/draw"
)

// 缩略图参数对齐商品卡片尺寸（服务端投影提供 170x170 缩略图）
const (
	ThumbnailMaxDimension = 170
	ThumbnailJPEGQuality  = 85
)

// MakeThumbnail 读取图片、按需缩小并重编码为 JPEG
// 仅接受 JPEG/PNG（按字节嗅探判断，不信任扩展名）
func MakeThumbnail(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("读取图片失败: %v", err)
	}

	detected := http.DetectContentType(data)
	if detected != "image/jpeg" && detected != "image/png" {
		return nil, fmt.Errorf("不支持的图片格式: %s", detected)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("解码图片失败: %v", err)
	}

	img = downscale(img, ThumbnailMaxDimension)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: ThumbnailJPEGQuality}); err != nil {
		return nil, fmt.Errorf("编码 JPEG 失败: %v", err)
	}
	return buf.Bytes(), nil
}

// MakeThumbnailFile 从源文件生成缩略图写入 dst
func MakeThumbnailFile(src, dst string) error {
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := MakeThumbnail(f)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}

// downscale 等比缩小到最长边不超过 maxDim，小图不放大
func downscale(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxDim && h <= maxDim {
		return img
	}

	var nw, nh int
	if w > h {
		nw = maxDim
		nh = h * maxDim / w
	} else {
		nh = maxDim
		nw = w * maxDim / h
	}
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

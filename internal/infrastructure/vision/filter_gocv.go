//go:build gocv
// +build gocv

package vision

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"gocv.io/x/gocv"

	"harpy-detect/internal/domain/entity"
	"harpy-detect/internal/domain/port"
)

// GoCVFilter фильтр на OpenCV.
type GoCVFilter struct {
	Sigma float64
}

// NewGoCVFilter создаёт фильтр на OpenCV.
func NewGoCVFilter() (*GoCVFilter, error) {
	return &GoCVFilter{Sigma: BlurSigma}, nil
}

// Apply переносит обрезанную область в gocv.Mat, обрабатывает её и
// вклеивает обратно в dst.
func (f *GoCVFilter) Apply(dst draw.Image, box entity.BoundingBox, mode entity.FilterMode) (bool, error) {
	if err := checkMode(mode); err != nil {
		return false, err
	}

	rect, ok := box.Clamp(dst.Bounds())
	if !ok {
		return false, nil
	}
	rect = rect.Intersect(dst.Bounds())
	if rect.Empty() {
		return false, nil
	}

	region, err := gocv.ImageToMatRGB(imaging.Crop(dst, rect))
	if err != nil {
		return false, fmt.Errorf("region to mat: %w", err)
	}
	defer region.Close()

	out := gocv.NewMat()
	defer out.Close()

	switch mode {
	case entity.FilterRedact:
		region.CopyTo(&out)
		black := color.RGBA{A: 255}
		gocv.Rectangle(&out, image.Rect(0, 0, out.Cols(), out.Rows()), black, -1)
	case entity.FilterBlur:
		// Размер ядра 0x0: OpenCV выводит его из sigma.
		gocv.GaussianBlur(region, &out, image.Pt(0, 0), f.Sigma, f.Sigma, gocv.BorderReflect101)
	}

	img, err := out.ToImage()
	if err != nil {
		return false, fmt.Errorf("mat to image: %w", err)
	}
	draw.Draw(dst, rect, img, image.Point{}, draw.Src)

	return true, nil
}

// Проверка реализации интерфейса
var _ port.RegionFilter = (*GoCVFilter)(nil)

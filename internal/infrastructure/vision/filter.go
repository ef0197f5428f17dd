package vision

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"

	"harpy-detect/internal/domain/entity"
	"harpy-detect/internal/domain/port"
)

// BlurSigma стандартное отклонение гауссова размытия.
const BlurSigma = 12.0

// Движки фильтрации
const (
	EngineImaging = "imaging"
	EngineGoCV    = "gocv"
)

// NewFilter создаёт фильтр выбранного движка.
func NewFilter(engine string) (port.RegionFilter, error) {
	switch engine {
	case EngineImaging, "":
		return NewImagingFilter(), nil
	case EngineGoCV:
		f, err := NewGoCVFilter()
		if err != nil {
			return nil, err
		}
		return f, nil
	default:
		return nil, fmt.Errorf("unsupported filter engine: %s (supported: %s, %s)", engine, EngineImaging, EngineGoCV)
	}
}

// ImagingFilter фильтр на чистом Go.
type ImagingFilter struct {
	Sigma float64
}

// NewImagingFilter создаёт фильтр с фиксированным радиусом размытия.
func NewImagingFilter() *ImagingFilter {
	return &ImagingFilter{Sigma: BlurSigma}
}

// Apply размывает или закрашивает область box. Пиксели вне обрезанной
// области не меняются, размеры изображения сохраняются.
func (f *ImagingFilter) Apply(dst draw.Image, box entity.BoundingBox, mode entity.FilterMode) (bool, error) {
	if err := checkMode(mode); err != nil {
		return false, err
	}

	rect, ok := box.Clamp(dst.Bounds())
	if !ok {
		return false, nil
	}
	// Отрицательные X/Y отсекаются на границе схемы, но Crop и Draw должны
	// работать с одним и тем же прямоугольником.
	rect = rect.Intersect(dst.Bounds())
	if rect.Empty() {
		return false, nil
	}

	switch mode {
	case entity.FilterRedact:
		draw.Draw(dst, rect, image.NewUniform(color.Black), image.Point{}, draw.Src)
	case entity.FilterBlur:
		region := imaging.Crop(dst, rect)
		blurred := imaging.Blur(region, f.Sigma)
		draw.Draw(dst, rect, blurred, image.Point{}, draw.Src)
	}

	return true, nil
}

func checkMode(mode entity.FilterMode) error {
	switch mode {
	case entity.FilterBlur, entity.FilterRedact:
		return nil
	default:
		return fmt.Errorf("%w: %q", entity.ErrUnknownFilterMode, mode)
	}
}

// Проверка реализации интерфейса
var _ port.RegionFilter = (*ImagingFilter)(nil)

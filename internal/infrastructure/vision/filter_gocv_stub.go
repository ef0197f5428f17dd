//go:build !gocv
// +build !gocv

package vision

import (
	"errors"
	"image/draw"

	"harpy-detect/internal/domain/entity"
)

var errGoCVDisabled = errors.New("gocv build tag is not enabled")

// GoCVFilter заглушка для сборки без OpenCV.
type GoCVFilter struct {
	Sigma float64
}

// NewGoCVFilter возвращает ошибку, если сборка без тега gocv.
func NewGoCVFilter() (*GoCVFilter, error) {
	return nil, errGoCVDisabled
}

// Apply возвращает ошибку, если сборка без тега gocv.
func (f *GoCVFilter) Apply(dst draw.Image, box entity.BoundingBox, mode entity.FilterMode) (bool, error) {
	_ = dst
	_ = box
	_ = mode
	return false, errGoCVDisabled
}

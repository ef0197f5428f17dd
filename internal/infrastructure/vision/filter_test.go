package vision

import (
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"

	"harpy-detect/internal/domain/entity"
)

// gradient создаёт неоднородное изображение.
func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(0)
			if (x/4+y/4)%2 == 0 {
				v = 255
			}
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: uint8(x * 2), B: uint8(y * 2), A: 255})
		}
	}
	return img
}

// requireUnchangedOutside проверяет, что пиксели вне rect совпадают.
func requireUnchangedOutside(t *testing.T, before, after *image.NRGBA, rect image.Rectangle) {
	t.Helper()
	require.Equal(t, before.Bounds(), after.Bounds())
	b := before.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if image.Pt(x, y).In(rect) {
				continue
			}
			require.Equal(t, before.NRGBAAt(x, y), after.NRGBAAt(x, y), "pixel (%d,%d) changed", x, y)
		}
	}
}

func TestImagingFilter_RedactFillsBlack(t *testing.T) {
	img := gradient(100, 100)
	before := imaging.Clone(img)
	f := NewImagingFilter()

	applied, err := f.Apply(img, entity.BoundingBox{X: 10, Y: 20, Width: 30, Height: 15}, entity.FilterRedact)
	require.NoError(t, err)
	require.True(t, applied)

	rect := image.Rect(10, 20, 40, 35)
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			require.Equal(t, color.NRGBA{A: 255}, img.NRGBAAt(x, y))
		}
	}
	requireUnchangedOutside(t, before, img, rect)
}

func TestImagingFilter_BlurChangesOnlyRegion(t *testing.T) {
	img := gradient(100, 100)
	before := imaging.Clone(img)
	f := NewImagingFilter()

	applied, err := f.Apply(img, entity.BoundingBox{X: 20, Y: 20, Width: 40, Height: 40}, entity.FilterBlur)
	require.NoError(t, err)
	require.True(t, applied)

	rect := image.Rect(20, 20, 60, 60)
	requireUnchangedOutside(t, before, img, rect)

	changed := 0
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if img.NRGBAAt(x, y) != before.NRGBAAt(x, y) {
				changed++
			}
		}
	}
	require.Greater(t, changed, 0)
}

func TestImagingFilter_BlurUniformRegionKeepsColor(t *testing.T) {
	img := imaging.New(50, 50, color.NRGBA{R: 40, G: 80, B: 120, A: 255})
	f := NewImagingFilter()

	applied, err := f.Apply(img, entity.BoundingBox{X: 5, Y: 5, Width: 20, Height: 20}, entity.FilterBlur)
	require.NoError(t, err)
	require.True(t, applied)
	require.Equal(t, color.NRGBA{R: 40, G: 80, B: 120, A: 255}, img.NRGBAAt(10, 10))
}

func TestImagingFilter_OutsideIsNoop(t *testing.T) {
	for _, mode := range []entity.FilterMode{entity.FilterBlur, entity.FilterRedact} {
		img := gradient(100, 100)
		before := imaging.Clone(img)

		applied, err := NewImagingFilter().Apply(img, entity.BoundingBox{X: 1000, Y: 1000, Width: 10, Height: 10}, mode)
		require.NoError(t, err)
		require.False(t, applied)
		require.Equal(t, before.Pix, img.Pix)
	}
}

func TestImagingFilter_StraddlingEdgeIsClamped(t *testing.T) {
	for _, mode := range []entity.FilterMode{entity.FilterBlur, entity.FilterRedact} {
		img := gradient(100, 100)
		before := imaging.Clone(img)

		applied, err := NewImagingFilter().Apply(img, entity.BoundingBox{X: 90, Y: 90, Width: 50, Height: 50}, mode)
		require.NoError(t, err)
		require.True(t, applied)
		require.Equal(t, image.Rect(0, 0, 100, 100), img.Bounds())
		requireUnchangedOutside(t, before, img, image.Rect(90, 90, 100, 100))
	}

	img := gradient(100, 100)
	_, err := NewImagingFilter().Apply(img, entity.BoundingBox{X: 90, Y: 90, Width: 50, Height: 50}, entity.FilterRedact)
	require.NoError(t, err)
	require.Equal(t, color.NRGBA{A: 255}, img.NRGBAAt(99, 99))
	require.Equal(t, color.NRGBA{A: 255}, img.NRGBAAt(90, 90))
}

func TestImagingFilter_NegativeOriginIsClipped(t *testing.T) {
	box := entity.BoundingBox{X: -5, Y: 0, Width: 10, Height: 10}
	rect := image.Rect(0, 0, 5, 10)

	for _, mode := range []entity.FilterMode{entity.FilterBlur, entity.FilterRedact} {
		img := gradient(40, 40)
		before := imaging.Clone(img)

		applied, err := NewImagingFilter().Apply(img, box, mode)
		require.NoError(t, err)
		require.True(t, applied)
		requireUnchangedOutside(t, before, img, rect)
	}
}

func TestImagingFilter_OverlappingBoxesCompose(t *testing.T) {
	img := gradient(60, 60)
	f := NewImagingFilter()

	_, err := f.Apply(img, entity.BoundingBox{X: 0, Y: 0, Width: 30, Height: 30}, entity.FilterRedact)
	require.NoError(t, err)
	// Размытие поверх чёрного квадрата оставляет его чёрным в глубине.
	_, err = f.Apply(img, entity.BoundingBox{X: 0, Y: 0, Width: 20, Height: 20}, entity.FilterBlur)
	require.NoError(t, err)

	require.Equal(t, color.NRGBA{A: 255}, img.NRGBAAt(5, 5))
}

func TestImagingFilter_UnknownMode(t *testing.T) {
	img := gradient(10, 10)
	before := imaging.Clone(img)

	_, err := NewImagingFilter().Apply(img, entity.BoundingBox{X: 0, Y: 0, Width: 5, Height: 5}, entity.FilterMode("pixelate"))
	require.ErrorIs(t, err, entity.ErrUnknownFilterMode)
	require.Equal(t, before.Pix, img.Pix)
}

func TestNewFilter(t *testing.T) {
	f, err := NewFilter(EngineImaging)
	require.NoError(t, err)
	require.IsType(t, &ImagingFilter{}, f)

	f, err = NewFilter("")
	require.NoError(t, err)
	require.IsType(t, &ImagingFilter{}, f)

	_, err = NewFilter("cuda")
	require.Error(t, err)
}

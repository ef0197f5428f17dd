package entity

import "image"

// BoundingBox представляет прямоугольную область на исходном изображении
type BoundingBox struct {
	X      int `json:"x" validate:"min=0"`      // координата X левого верхнего угла
	Y      int `json:"y" validate:"min=0"`      // координата Y левого верхнего угла
	Width  int `json:"width" validate:"gt=0"`  // ширина области в пикселях
	Height int `json:"height" validate:"gt=0"` // высота области в пикселях
}

// Clamp обрезает область по границам изображения.
// Левый и верхний край не сдвигаются: если область целиком за пределами
// изображения, она вырождается и ok == false.
func (b BoundingBox) Clamp(bounds image.Rectangle) (rect image.Rectangle, ok bool) {
	width, height := bounds.Dx(), bounds.Dy()

	left := b.X
	top := b.Y
	right := left + minInt(b.Width, width-left)
	bottom := top + minInt(b.Height, height-top)

	if left >= right || top >= bottom {
		return image.Rectangle{}, false
	}

	return image.Rect(left, top, right, bottom).Add(bounds.Min), true
}

// Detection найденный объект: метка, уверенность и область
type Detection struct {
	Label      string      `json:"label"`
	Confidence float64     `json:"confidence" validate:"gte=0,lte=1"`
	BBox       BoundingBox `json:"bbox"`
}

// Boxes возвращает области детекций в исходном порядке.
func Boxes(detections []Detection) []BoundingBox {
	boxes := make([]BoundingBox, 0, len(detections))
	for _, d := range detections {
		boxes = append(boxes, d.BBox)
	}
	return boxes
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

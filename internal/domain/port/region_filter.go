package port

import (
	"image/draw"

	"harpy-detect/internal/domain/entity"
)

// RegionFilter интерфейс фильтра приватности
type RegionFilter interface {
	// Apply применяет фильтр к области box изображения dst на месте.
	// Вырожденная после обрезки область пропускается: applied == false, ошибки нет.
	Apply(dst draw.Image, box entity.BoundingBox, mode entity.FilterMode) (applied bool, err error)
}

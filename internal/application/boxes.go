package app

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"harpy-detect/internal/domain/entity"
)

// ErrNoBoxes в тексте нет ни одной области.
var ErrNoBoxes = errors.New("no boxes given")

var boxValidator = validator.New()

// ParseBoxes разбирает текст вида "x,y,w,h; x,y,w,h" с теми же правилами
// проверки, что и у HTTP-запроса. Области разделяются точкой с запятой или
// переводом строки.
func ParseBoxes(text string) ([]entity.BoundingBox, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ';' || r == '\n'
	})

	boxes := make([]entity.BoundingBox, 0, len(fields))
	for i, field := range fields {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		parts := strings.Split(field, ",")
		if len(parts) != 4 {
			return nil, fmt.Errorf("box %d: expected x,y,w,h, got %q", i+1, field)
		}

		var nums [4]int
		for j, p := range parts {
			n, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil {
				return nil, fmt.Errorf("box %d: %q is not an integer", i+1, strings.TrimSpace(p))
			}
			nums[j] = n
		}

		box := entity.BoundingBox{X: nums[0], Y: nums[1], Width: nums[2], Height: nums[3]}
		if err := boxValidator.Struct(box); err != nil {
			return nil, fmt.Errorf("box %d: x and y must be >= 0, width and height > 0", i+1)
		}
		boxes = append(boxes, box)
	}

	if len(boxes) == 0 {
		return nil, ErrNoBoxes
	}
	return boxes, nil
}

package entity

import "errors"

var (
	// ErrInvalidImagePayload изображение не удалось декодировать (base64 или формат).
	ErrInvalidImagePayload = errors.New("invalid image payload")

	// ErrUnknownFilterMode режим фильтра не поддерживается.
	ErrUnknownFilterMode = errors.New("unknown privacy mode")
)

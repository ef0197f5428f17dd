package entity

import "fmt"

// FilterMode способ скрытия области
type FilterMode string

const (
	FilterBlur   FilterMode = "blur"   // размытие по Гауссу
	FilterRedact FilterMode = "redact" // заливка чёрным
)

// DefaultFilterMode применяется, если режим не указан.
const DefaultFilterMode = FilterBlur

// ParseFilterMode разбирает режим фильтра из строки.
func ParseFilterMode(s string) (FilterMode, error) {
	switch FilterMode(s) {
	case FilterBlur, FilterRedact:
		return FilterMode(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFilterMode, s)
	}
}

func (m FilterMode) String() string {
	return string(m)
}

// MarshalText реализует encoding.TextMarshaler.
func (m FilterMode) MarshalText() ([]byte, error) {
	return []byte(m), nil
}

// UnmarshalText принимает только blur и redact.
func (m *FilterMode) UnmarshalText(text []byte) error {
	mode, err := ParseFilterMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

package vision

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"harpy-detect/internal/domain/entity"
	"harpy-detect/internal/domain/port"
)

// JPEGQuality качество JPEG для отфильтрованных изображений.
const JPEGQuality = 88

// Codec декодирует входящие изображения и кодирует результат в JPEG.
// Поддерживаются JPEG, PNG, GIF, BMP, TIFF и WebP.
type Codec struct{}

// NewCodec создаёт кодек
func NewCodec() *Codec {
	return &Codec{}
}

// DecodeBase64 декодирует base64 и затем само изображение. Символы вне
// алфавита base64 (пробелы, переводы строк) отбрасываются, паддинг обязателен.
func (c *Codec) DecodeBase64(payload string) (image.Image, error) {
	raw, err := base64.StdEncoding.DecodeString(stripNonAlphabet(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrInvalidImagePayload, err)
	}
	return c.Decode(raw)
}

// Decode превращает байты изображения в непрозрачный RGB-битмап.
func (c *Codec) Decode(raw []byte) (img image.Image, err error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty image data", entity.ErrInvalidImagePayload)
	}

	// Некоторые декодеры паникуют на битых данных.
	defer func() {
		if r := recover(); r != nil {
			img = nil
			err = fmt.Errorf("%w: decoder panic: %v", entity.ErrInvalidImagePayload, r)
		}
	}()

	decoded, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrInvalidImagePayload, err)
	}

	return toRGB(decoded), nil
}

// EncodeJPEG кодирует изображение в JPEG с качеством JPEGQuality.
func (c *Codec) EncodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(JPEGQuality)); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

func stripNonAlphabet(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == '+', r == '/', r == '=':
			return r
		default:
			return -1
		}
	}, s)
}

// toRGB отбрасывает альфа-канал (без смешивания с фоном).
func toRGB(img image.Image) *image.NRGBA {
	dst := imaging.Clone(img)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xff
	}
	return dst
}

// Проверка реализации интерфейса
var _ port.ImageCodec = (*Codec)(nil)

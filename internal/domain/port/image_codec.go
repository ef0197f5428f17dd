package port

import "image"

// ImageCodec интерфейс декодирования и кодирования изображений
type ImageCodec interface {
	// Decode декодирует байты изображения в RGB-битмап
	Decode(raw []byte) (image.Image, error)

	// DecodeBase64 декодирует изображение из base64-строки
	DecodeBase64(payload string) (image.Image, error)

	// EncodeJPEG кодирует изображение в JPEG с фиксированным качеством
	EncodeJPEG(img image.Image) ([]byte, error)
}

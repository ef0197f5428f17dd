package vision

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"harpy-detect/internal/domain/entity"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestCodec_DecodeBase64PNG(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: 200, G: 10, B: 30, A: 255})
		}
	}
	payload := base64.StdEncoding.EncodeToString(encodePNG(t, src))

	img, err := NewCodec().DecodeBase64(payload)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 2, 2), img.Bounds())

	r, g, b, a := img.At(1, 1).RGBA()
	require.Equal(t, []uint32{200, 10, 30, 255}, []uint32{r >> 8, g >> 8, b >> 8, a >> 8})
}

func TestCodec_DropsAlpha(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 100, G: 150, B: 200, A: 10})

	img, err := NewCodec().Decode(encodePNG(t, src))
	require.NoError(t, err)

	nrgba, ok := img.(*image.NRGBA)
	require.True(t, ok)
	// Альфа отбрасывается без смешивания с фоном: цвет остаётся прежним.
	require.Equal(t, color.NRGBA{R: 100, G: 150, B: 200, A: 255}, nrgba.NRGBAAt(0, 0))
}

func TestCodec_DecodeBase64IgnoresWhitespace(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	payload := base64.StdEncoding.EncodeToString(encodePNG(t, src))

	var spaced strings.Builder
	for i, r := range payload {
		if i > 0 && i%16 == 0 {
			spaced.WriteString("\n ")
		}
		spaced.WriteRune(r)
	}

	img, err := NewCodec().DecodeBase64(" " + spaced.String() + "\r\n")
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())
}

func TestCodec_InvalidPayloads(t *testing.T) {
	codec := NewCodec()

	_, err := codec.DecodeBase64("not-base64!!")
	require.ErrorIs(t, err, entity.ErrInvalidImagePayload)

	_, err = codec.DecodeBase64(base64.StdEncoding.EncodeToString([]byte("definitely not an image")))
	require.ErrorIs(t, err, entity.ErrInvalidImagePayload)

	_, err = codec.DecodeBase64("")
	require.ErrorIs(t, err, entity.ErrInvalidImagePayload)

	_, err = codec.Decode([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0})
	require.ErrorIs(t, err, entity.ErrInvalidImagePayload)
}

func TestCodec_EncodeJPEG(t *testing.T) {
	img := gradient(32, 16)

	out, err := NewCodec().EncodeJPEG(img)
	require.NoError(t, err)

	decoded, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 32, 16), decoded.Bounds())

	// Для непрозрачного изображения NRGBA и RGBA совпадают побайтно.
	rgba := &image.RGBA{Pix: img.Pix, Stride: img.Stride, Rect: img.Rect}
	encodeAt := func(quality int) []byte {
		var buf bytes.Buffer
		require.NoError(t, jpeg.Encode(&buf, rgba, &jpeg.Options{Quality: quality}))
		return buf.Bytes()
	}
	require.Equal(t, encodeAt(88), out)
	require.NotEqual(t, encodeAt(90), out)
}

package transcode_test

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gemtrove/internal/domain"
	"gemtrove/internal/transcode"
)

func solidImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: 40, G: 90, B: 160, A: 255})
		}
	}
	return img
}

func encodeJPEG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}))
	return buf.Bytes()
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestTranscode_ThumbnailFillsTargetBox(t *testing.T) {
	src := encodeJPEG(t, solidImage(640, 480))

	out, err := transcode.Transcode(src, domain.ImageVariants[0], "image/jpeg")
	require.NoError(t, err)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 150, cfg.Width)
	assert.Equal(t, 150, cfg.Height)
}

func TestTranscode_OriginalKeepsDimensions(t *testing.T) {
	src := encodeJPEG(t, solidImage(640, 480))

	var original domain.ImageVariant
	for _, v := range domain.ImageVariants {
		if v.Name == domain.VariantOriginal {
			original = v
		}
	}

	out, err := transcode.Transcode(src, original, "image/jpeg")
	require.NoError(t, err)

	cfg, _, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 640, cfg.Width)
	assert.Equal(t, 480, cfg.Height)
}

func TestTranscode_PNGStaysPNG(t *testing.T) {
	src := encodePNG(t, solidImage(320, 320))

	out, err := transcode.Transcode(src, domain.ImageVariants[1], "image/png")
	require.NoError(t, err)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 600, cfg.Width)
	assert.Equal(t, 600, cfg.Height)
}

func TestTranscode_GarbageInput(t *testing.T) {
	_, err := transcode.Transcode([]byte("definitely not an image"), domain.ImageVariants[0], "image/jpeg")
	assert.ErrorIs(t, err, domain.ErrTranscodeFailed)
}

func TestInspect_JPEG(t *testing.T) {
	src := encodeJPEG(t, solidImage(800, 600))

	info, err := transcode.Inspect(src)
	require.NoError(t, err)
	assert.Equal(t, 800, info.Width)
	assert.Equal(t, 600, info.Height)
	assert.Equal(t, "jpeg", info.Format)
	assert.Equal(t, len(src), info.Size)
	assert.False(t, info.HasAlpha)
	assert.Equal(t, 3, info.Channels)
}

func TestInspect_PNGHasAlpha(t *testing.T) {
	img := solidImage(16, 16)
	img.Set(0, 0, color.NRGBA{R: 40, G: 90, B: 160, A: 128})
	src := encodePNG(t, img)

	info, err := transcode.Inspect(src)
	require.NoError(t, err)
	assert.Equal(t, "png", info.Format)
	assert.True(t, info.HasAlpha)
	assert.Equal(t, 4, info.Channels)
}

func TestInspect_Garbage(t *testing.T) {
	_, err := transcode.Inspect([]byte{0x00, 0x01})
	assert.ErrorIs(t, err, domain.ErrTranscodeFailed)
}

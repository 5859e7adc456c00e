package transcode

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/webp"

	"gemtrove/internal/domain"
)

// Transcode re-encodes buf for one variant. Sized variants are cropped to
// fill the target box, centered. The output format mirrors the input MIME
// family; webp and unrecognized types fall back to the JPEG encoder since
// the Validator has already rejected anything truly unsupported upstream.
func Transcode(buf []byte, variant domain.ImageVariant, mimeType string) ([]byte, error) {
	img, err := decode(buf, mimeType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTranscodeFailed, err)
	}

	if variant.Width > 0 && variant.Height > 0 {
		img = imaging.Fill(img, variant.Width, variant.Height, imaging.Center, imaging.Lanczos)
	}

	var out bytes.Buffer
	switch mimeType {
	case "image/png":
		err = imaging.Encode(&out, img, imaging.PNG)
	default:
		err = imaging.Encode(&out, img, imaging.JPEG, imaging.JPEGQuality(variant.Quality))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTranscodeFailed, err)
	}
	return out.Bytes(), nil
}

// Inspect decodes image headers and reports dimensions and pixel layout
// without storing anything.
func Inspect(buf []byte) (*domain.ImageInfo, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTranscodeFailed, err)
	}

	hasAlpha, channels := pixelLayout(cfg.ColorModel)
	return &domain.ImageInfo{
		Width:    cfg.Width,
		Height:   cfg.Height,
		Format:   format,
		Size:     len(buf),
		HasAlpha: hasAlpha,
		Channels: channels,
	}, nil
}

func decode(buf []byte, mimeType string) (image.Image, error) {
	if mimeType == "image/webp" {
		return webp.Decode(bytes.NewReader(buf))
	}
	return imaging.Decode(bytes.NewReader(buf))
}

func pixelLayout(model color.Model) (hasAlpha bool, channels int) {
	switch model {
	case color.NRGBAModel, color.RGBAModel, color.NRGBA64Model, color.RGBA64Model:
		return true, 4
	case color.GrayModel, color.Gray16Model:
		return false, 1
	default:
		return false, 3
	}
}

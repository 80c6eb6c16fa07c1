package repkg

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/ftrvxmtrx/tga"

	"github.com/KibbeWater/repkg/dxt"
	"github.com/KibbeWater/repkg/tex"

	// Embedded-image decoders.
	"image/gif"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// DecodeTexture produces an RGBA8 image at the first mipmap's dimensions by
// dispatching on the resolved texture format: embedded images go through
// the standard image decoders, raw formats are expanded to RGBA8, and
// BC1/BC3 payloads are block-decoded. Video containers cannot be decoded
// to pixels.
func DecodeTexture(t *tex.Texture) (*image.NRGBA, error) {
	if t.IsVideo {
		return nil, ErrVideoTexture
	}

	first := t.Mipmaps[0]
	w, h := int(first.Width), int(first.Height)

	if t.IsEmbedded() {
		return decodeEmbedded(t.Embedded, first.Data)
	}

	switch t.Header.Format {
	case tex.FormatRGBA8888:
		return expandRaw(first.Data, w, h, 4)
	case tex.FormatRG88:
		return expandRaw(first.Data, w, h, 2)
	case tex.FormatR8:
		return expandRaw(first.Data, w, h, 1)
	case tex.FormatDXT1:
		return decodeBlocks(first.Data, w, h, dxt.BC1)
	case tex.FormatDXT5:
		return decodeBlocks(first.Data, w, h, dxt.BC3)
	case tex.FormatDXT3:
		return nil, fmt.Errorf("%w: DXT3/BC2 decoding is not implemented", ErrUnsupportedFormat)
	default:
		return nil, fmt.Errorf("%w: texture format %s", ErrUnsupportedFormat, t.Header.Format)
	}
}

// decodeEmbedded hands an embedded image payload to the decoder for its
// detected format, calling that format's package decoder directly rather
// than going through the image.Decode registry.
func decodeEmbedded(format string, data []byte) (*image.NRGBA, error) {
	decoders := map[string]func(io.Reader) (image.Image, error){
		"png": png.Decode, "jpeg": jpeg.Decode, "gif": gif.Decode, "webp": webp.Decode,
		"bmp": bmp.Decode, "tiff": tiff.Decode, "tga": tga.Decode,
	}

	decode, ok := decoders[format]
	if !ok {
		return nil, fmt.Errorf("%w: embedded %s", ErrUnsupportedFormat, format)
	}

	img, err := decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: embedded %s: %w", ErrMalformedPayload, format, err)
	}

	return toNRGBA(img), nil
}

// decodeBlocks runs the BC decoders over the mipmap payload.
func decodeBlocks(data []byte, w, h int, format dxt.Format) (*image.NRGBA, error) {
	img, err := dxt.DecodeImage(data, w, h, format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}

	return img, nil
}

// expandRaw widens raw top-down pixel rows to RGBA8. R8 replicates the
// channel to RGB with alpha 255; RG88 fills R and G with B=0, alpha 255.
func expandRaw(data []byte, w, h, bytesPerTexel int) (*image.NRGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: invalid dimensions %dx%d", ErrMalformedPayload, w, h)
	}

	total := w * h
	if len(data) < total*bytesPerTexel {
		return nil, fmt.Errorf("%w: %dx%d at %d bytes/texel needs %d bytes, have %d",
			ErrMalformedPayload, w, h, bytesPerTexel, total*bytesPerTexel, len(data))
	}

	img := image.NewNRGBA(image.Rect(0, 0, w, h))

	for i := 0; i < total; i++ {
		src := i * bytesPerTexel
		dst := i * 4

		switch bytesPerTexel {
		case 4:
			copy(img.Pix[dst:dst+4], data[src:src+4])
		case 2:
			img.Pix[dst+0] = data[src+0]
			img.Pix[dst+1] = data[src+1]
			img.Pix[dst+3] = 255
		case 1:
			v := data[src]
			img.Pix[dst+0] = v
			img.Pix[dst+1] = v
			img.Pix[dst+2] = v
			img.Pix[dst+3] = 255
		}
	}

	return img, nil
}

// toNRGBA converts a decoded image to NRGBA without copying when possible.
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		return n
	}

	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			out.SetNRGBA(x, y, color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA))
		}
	}

	return out
}

// Decode reads a TEX stream and returns the first mip level as an image.
// It implements the signature required by image.RegisterFormat.
func Decode(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	t, err := tex.Parse(data)
	if err != nil {
		return nil, err
	}

	return DecodeTexture(t)
}

// DecodeConfig reads only the dimensions of the first mip level.
// It implements the signature required by image.RegisterFormat.
func DecodeConfig(r io.Reader) (image.Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return image.Config{}, err
	}

	t, err := tex.Parse(data)
	if err != nil {
		return image.Config{}, err
	}

	return image.Config{
		ColorModel: color.NRGBAModel,
		Width:      int(t.Width()),
		Height:     int(t.Height()),
	}, nil
}

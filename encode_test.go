package repkg

import (
	"bytes"
	"errors"
	"image"
	"testing"

	"github.com/ftrvxmtrx/tga"
)

func gradientImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			off := img.PixOffset(x, y)
			img.Pix[off+0] = byte(x * 16)
			img.Pix[off+1] = byte(y * 16)
			img.Pix[off+2] = 0x40
			img.Pix[off+3] = 255
		}
	}

	return img
}

func TestEncodeImage_Formats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format string
		detect string
	}{
		{"png", "png"},
		{"jpg", "jpeg"},
		{"jpeg", "jpeg"},
		{"gif", "gif"},
		{"webp", "webp"},
		{"bmp", "bmp"},
		{"tiff", "tiff"},
	}

	src := gradientImage()

	for _, tt := range tests {
		tt := tt
		t.Run(tt.format, func(t *testing.T) {
			t.Parallel()

			out, err := EncodeImage(src, tt.format, 0)
			if err != nil {
				t.Fatalf("EncodeImage: %v", err)
			}

			decoded, name, err := image.Decode(bytes.NewReader(out))
			if err != nil {
				t.Fatalf("decode back: %v", err)
			}
			if name != tt.detect {
				t.Errorf("decoded format = %q, want %q", name, tt.detect)
			}
			if decoded.Bounds().Dx() != 16 || decoded.Bounds().Dy() != 16 {
				t.Errorf("decoded bounds = %v, want 16x16", decoded.Bounds())
			}
		})
	}
}

func TestEncodeImage_TGA(t *testing.T) {
	t.Parallel()

	out, err := EncodeImage(gradientImage(), "tga", 0)
	if err != nil {
		t.Fatalf("EncodeImage: %v", err)
	}

	decoded, err := tga.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("tga.Decode: %v", err)
	}
	if decoded.Bounds().Dx() != 16 {
		t.Errorf("decoded width = %d, want 16", decoded.Bounds().Dx())
	}
}

func TestEncodeImage_JPEGQuality(t *testing.T) {
	t.Parallel()

	src := gradientImage()

	low, err := EncodeImage(src, "jpeg", 1)
	if err != nil {
		t.Fatalf("quality 1: %v", err)
	}

	high, err := EncodeImage(src, "jpeg", 100)
	if err != nil {
		t.Fatalf("quality 100: %v", err)
	}

	if len(low) >= len(high) {
		t.Errorf("quality 1 emitted %d bytes, quality 100 emitted %d; expected the low-quality file to be smaller", len(low), len(high))
	}

	// Out-of-range quality values clamp instead of failing.
	if _, err := EncodeImage(src, "jpeg", 400); err != nil {
		t.Errorf("quality 400: %v, want clamped success", err)
	}
}

func TestEncodeImage_Unknown(t *testing.T) {
	t.Parallel()

	if _, err := EncodeImage(gradientImage(), "exr", 0); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestMIMEType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format string
		want   string
	}{
		{"png", "image/png"},
		{"jpg", "image/jpeg"},
		{"JPEG", "image/jpeg"},
		{"tga", "image/x-tga"},
		{"mp4", "video/mp4"},
		{"nope", ""},
	}

	for _, tt := range tests {
		if got := MIMEType(tt.format); got != tt.want {
			t.Errorf("MIMEType(%q) = %q, want %q", tt.format, got, tt.want)
		}
	}
}

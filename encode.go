package repkg

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"strings"

	"github.com/deepteams/webp"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// DefaultJPEGQuality is used when no quality is given. Quality applies only
// to JPEG and is clamped to 1..100.
const DefaultJPEGQuality = 90

// NormalizeFormat maps a target format name to its canonical form
// ("jpg" and "jpeg" both mean JPEG). Unknown names pass through unchanged.
func NormalizeFormat(format string) string {
	f := strings.ToLower(format)
	if f == "jpg" {
		return "jpeg"
	}

	return f
}

// MIMEType returns the MIME type for a canonical format name, or "" for an
// unknown one.
func MIMEType(format string) string {
	switch NormalizeFormat(format) {
	case "png":
		return "image/png"
	case "jpeg":
		return "image/jpeg"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	case "bmp":
		return "image/bmp"
	case "tiff":
		return "image/tiff"
	case "tga":
		return "image/x-tga"
	case "mp4":
		return "video/mp4"
	default:
		return ""
	}
}

// EncodeImage writes img in the named format. Encoder failures are wrapped
// as a malformed-payload error with the encoder's message preserved.
func EncodeImage(img image.Image, format string, quality int) ([]byte, error) {
	if quality <= 0 {
		quality = DefaultJPEGQuality
	}
	if quality > 100 {
		quality = 100
	}

	var buf bytes.Buffer
	var err error

	switch NormalizeFormat(format) {
	case "png":
		err = png.Encode(&buf, img)
	case "jpeg":
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality})
	case "gif":
		err = gif.Encode(&buf, img, nil)
	case "webp":
		err = webp.Encode(&buf, img, nil)
	case "bmp":
		err = bmp.Encode(&buf, img)
	case "tiff":
		err = tiff.Encode(&buf, img, nil)
	case "tga":
		err = tga.Encode(&buf, img)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %s encoder: %w", ErrMalformedPayload, NormalizeFormat(format), err)
	}

	return buf.Bytes(), nil
}

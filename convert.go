package repkg

import (
	"fmt"

	"github.com/KibbeWater/repkg/tex"
)

// ConvertOptions tunes Convert. The zero value (or nil) uses defaults.
type ConvertOptions struct {
	// Quality is the JPEG quality, 1..100; 0 means DefaultJPEGQuality.
	Quality int
}

// Convert turns a TEX buffer into a standard artifact in the target format
// and returns the bytes with their MIME type. Target is a format name
// (png, jpg, gif, webp, bmp, tiff, tga) or "auto".
func Convert(data []byte, target string) ([]byte, string, error) {
	return ConvertWithOptions(data, target, nil)
}

// ConvertWithOptions is Convert with explicit options.
//
// Auto mode picks: the MP4 payload for video textures, an assembled GIF for
// animated ones, the smaller of the original embedded bytes and a PNG
// re-encode for embedded-image textures, and PNG otherwise. An explicit
// target matching an embedded payload's own format passes the payload
// through unchanged.
func ConvertWithOptions(data []byte, target string, opts *ConvertOptions) ([]byte, string, error) {
	quality := 0
	if opts != nil {
		quality = opts.Quality
	}

	t, err := tex.Parse(data)
	if err != nil {
		return nil, "", err
	}

	target = NormalizeFormat(target)

	if t.IsVideo {
		if target == "auto" || target == "mp4" {
			payload, err := VideoPayload(t)
			if err != nil {
				return nil, "", err
			}

			return payload, "video/mp4", nil
		}

		return nil, "", fmt.Errorf("%w: cannot convert a video texture to %q", ErrUnsupportedFormat, target)
	}

	if target == "auto" {
		return convertAuto(t, quality)
	}

	if mime := MIMEType(target); mime == "" || target == "mp4" {
		return nil, "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, target)
	}

	// The embedded payload already is the requested format: pass it through.
	if t.IsEmbedded() && NormalizeFormat(t.Embedded) == target {
		return t.Mipmaps[0].Data, MIMEType(target), nil
	}

	if target == "gif" && t.IsAnimated() {
		out, err := AssembleGIF(t)
		if err != nil {
			return nil, "", err
		}

		return out, "image/gif", nil
	}

	img, err := DecodeTexture(t)
	if err != nil {
		return nil, "", err
	}

	out, err := EncodeImage(img, target, quality)
	if err != nil {
		return nil, "", err
	}

	return out, MIMEType(target), nil
}

func convertAuto(t *tex.Texture, quality int) ([]byte, string, error) {
	if t.IsAnimated() {
		out, err := AssembleGIF(t)
		if err != nil {
			return nil, "", err
		}

		return out, "image/gif", nil
	}

	img, err := DecodeTexture(t)
	if err != nil {
		return nil, "", err
	}

	reencoded, err := EncodeImage(img, "png", quality)
	if err != nil {
		return nil, "", err
	}

	// For embedded static images keep whichever is strictly smaller: the
	// untouched original or the PNG re-encode.
	if t.IsEmbedded() {
		original := t.Mipmaps[0].Data
		if len(reencoded) < len(original) {
			return reencoded, "image/png", nil
		}

		return original, MIMEType(NormalizeFormat(t.Embedded)), nil
	}

	return reencoded, "image/png", nil
}

package tex

import "bytes"

// Embedded-image signature names returned by sniffImage.
const (
	imagePNG  = "png"
	imageJPEG = "jpeg"
	imageGIF  = "gif"
	imageWebP = "webp"
	imageBMP  = "bmp"
	imageTIFF = "tiff"
	imageTGA  = "tga"
)

// tgaFooter is the TGA v2 file footer signature; TGA has no leading magic.
var tgaFooter = []byte("TRUEVISION-XFILE")

// sniffImage returns the name of the standard image format whose signature
// opens the payload, or "" when none matches. Some containers carry a
// mismatched format discriminant, so this runs before any decoder dispatch.
func sniffImage(data []byte) string {
	switch {
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return imagePNG
	case bytes.HasPrefix(data, []byte{0xFF, 0xD8, 0xFF}):
		return imageJPEG
	case bytes.HasPrefix(data, []byte("GIF87a")), bytes.HasPrefix(data, []byte("GIF89a")):
		return imageGIF
	case len(data) >= 12 && bytes.Equal(data[0:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")):
		return imageWebP
	case bytes.HasPrefix(data, []byte("BM")):
		return imageBMP
	case bytes.HasPrefix(data, []byte("II*\x00")), bytes.HasPrefix(data, []byte("MM\x00*")):
		return imageTIFF
	case len(data) >= 26 && bytes.Equal(data[len(data)-18:len(data)-2], tgaFooter):
		return imageTGA
	default:
		return ""
	}
}

// isVideoPayload reports whether the payload opens with an ISO-BMFF box,
// i.e. "ftyp" at byte offset 4. Such containers carry an MP4 stream.
func isVideoPayload(data []byte) bool {
	return len(data) >= 8 && bytes.Equal(data[4:8], []byte("ftyp"))
}

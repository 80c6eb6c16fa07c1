package repkg

import "errors"

// Assembly and conversion errors. Use errors.Is to check.
var (
	// ErrUnsupportedFormat is returned for unknown or undecodable formats
	// (including DXT3/BC2 textures and unknown encode target names).
	ErrUnsupportedFormat = errors.New("repkg: unsupported format")
	// ErrMalformedPayload is returned when pixel data is shorter than the
	// declared dimensions require, or when an image encoder fails; the
	// encoder's message is preserved in the chain.
	ErrMalformedPayload = errors.New("repkg: malformed payload")
	// ErrNoFrameInfo is returned when GIF assembly is asked for a texture
	// without a frame-info block.
	ErrNoFrameInfo = errors.New("repkg: texture has no frame info")
	// ErrNotVideo is returned when a video payload is requested from a
	// texture that is not a video container.
	ErrNotVideo = errors.New("repkg: texture is not a video")
	// ErrVideoTexture is returned when pixel decoding is asked for a video
	// container.
	ErrVideoTexture = errors.New("repkg: cannot decode a video texture to pixels")
)

package tex

import "errors"

// TEX parse errors. Use errors.Is to check.
var (
	// ErrInvalidMagic is returned when the container magic is not part of
	// the TEXV family.
	ErrInvalidMagic = errors.New("tex: invalid magic")
	// ErrUnsupportedVersion is returned for unknown TEXI or TEXB magics.
	ErrUnsupportedVersion = errors.New("tex: unsupported version")
	// ErrUnexpectedEOF is returned when a header or payload is truncated.
	ErrUnexpectedEOF = errors.New("tex: unexpected end of data")
	// ErrMalformedPayload is returned for inconsistent declared lengths,
	// failed mipmap decompression, or frame rectangles outside the sheet.
	ErrMalformedPayload = errors.New("tex: malformed payload")
)

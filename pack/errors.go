package pack

import "errors"

// PKG parse and extraction errors. Use errors.Is to check.
var (
	// ErrInvalidMagic is returned when the magic string is not part of the
	// PKGV family.
	ErrInvalidMagic = errors.New("pack: invalid magic")
	// ErrUnexpectedEOF is returned when the header table is truncated.
	ErrUnexpectedEOF = errors.New("pack: unexpected end of data")
	// ErrMalformedPayload is returned when an entry range falls outside the
	// source buffer.
	ErrMalformedPayload = errors.New("pack: malformed payload")
	// ErrNotFound is returned when a requested entry path does not exist.
	ErrNotFound = errors.New("pack: entry not found")
)

// Package lz4block decodes raw LZ4 blocks — the unframed variant used
// per-mipmap inside TEX containers, not the framed stream format.
//
// Block layout, per sequence: a token byte whose high nibble is the literal
// length and low nibble the match length, optional extra literal-length
// bytes (0xFF repeats), the literal bytes, then a 2-byte little-endian match
// offset (1..65535) and optional extra match-length bytes, producing a
// back-reference copy of 4+matchLength bytes from offset bytes earlier in
// the output. The final sequence carries literals only and is
// signalled by the input ending after them.
package lz4block

import (
	"errors"
	"fmt"
)

// ErrInvalidLZ4 is returned for any malformed block. Use errors.Is to check.
var ErrInvalidLZ4 = errors.New("lz4block: invalid block")

// Decompress decodes a single LZ4 block into exactly expectedLen bytes.
// A zero match offset, an offset reaching before the start of the output,
// truncated input, or a final length other than expectedLen all fail.
func Decompress(src []byte, expectedLen int) ([]byte, error) {
	if expectedLen < 0 {
		return nil, fmt.Errorf("%w: negative expected length %d", ErrInvalidLZ4, expectedLen)
	}

	dst := make([]byte, 0, expectedLen)
	si := 0

	for si < len(src) {
		token := src[si]
		si++

		litLen, n, err := extendLen(int(token>>4), src, si)
		if err != nil {
			return nil, err
		}
		si += n

		if litLen > len(src)-si {
			return nil, fmt.Errorf("%w: literal run of %d bytes exceeds input at offset %d",
				ErrInvalidLZ4, litLen, si)
		}

		dst = append(dst, src[si:si+litLen]...)
		si += litLen

		// Input exhausted after literals: this was the final sequence.
		if si == len(src) {
			break
		}

		if len(src)-si < 2 {
			return nil, fmt.Errorf("%w: truncated match offset at input offset %d", ErrInvalidLZ4, si)
		}

		offset := int(src[si]) | int(src[si+1])<<8
		si += 2

		if offset == 0 {
			return nil, fmt.Errorf("%w: zero match offset at input offset %d", ErrInvalidLZ4, si-2)
		}
		if offset > len(dst) {
			return nil, fmt.Errorf("%w: match offset %d exceeds output position %d",
				ErrInvalidLZ4, offset, len(dst))
		}

		matchLen, n, err := extendLen(int(token&0x0F), src, si)
		if err != nil {
			return nil, err
		}
		si += n
		matchLen += 4

		// Byte-wise copy: the match may overlap its own output.
		pos := len(dst) - offset
		for i := 0; i < matchLen; i++ {
			dst = append(dst, dst[pos+i])
		}
	}

	if len(dst) != expectedLen {
		return nil, fmt.Errorf("%w: decoded %d bytes, expected %d", ErrInvalidLZ4, len(dst), expectedLen)
	}

	return dst, nil
}

// extendLen applies the 0xFF-repeat length extension to a 4-bit base value
// of 15, returning the final length and the number of input bytes consumed.
func extendLen(base int, src []byte, si int) (length, consumed int, err error) {
	length = base
	if base != 15 {
		return length, 0, nil
	}

	for {
		if si+consumed >= len(src) {
			return 0, 0, fmt.Errorf("%w: truncated length extension at input offset %d",
				ErrInvalidLZ4, si+consumed)
		}

		b := src[si+consumed]
		consumed++
		length += int(b)

		if b != 0xFF {
			return length, consumed, nil
		}
	}
}

// Package dxt decodes BC1 (DXT1) and BC3 (DXT5) block-compressed texture
// data into RGBA8 pixels. BC2 (DXT3) is recognised but not decodable.
package dxt

import (
	"errors"
	"fmt"
	"image"
)

// Format selects a block-compression scheme.
type Format int

// Supported block-compression formats.
const (
	BC1 Format = iota // DXT1: 8 bytes per 4x4 block, 1-bit punch-through alpha
	BC2               // DXT3: recognised, decode not implemented
	BC3               // DXT5: 16 bytes per 4x4 block, interpolated alpha
)

// String returns the DXT-style name of the format.
func (f Format) String() string {
	switch f {
	case BC1:
		return "DXT1"
	case BC2:
		return "DXT3"
	case BC3:
		return "DXT5"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// BlockSize returns the encoded size of one 4x4 block, or -1 if unknown.
func (f Format) BlockSize() int {
	switch f {
	case BC1:
		return 8
	case BC2, BC3:
		return 16
	default:
		return -1
	}
}

// Decode errors. Use errors.Is to check.
var (
	// ErrUnsupportedFormat is returned for BC2 and unknown formats.
	ErrUnsupportedFormat = errors.New("dxt: unsupported format")
	// ErrTruncated is returned when the payload holds fewer blocks than the
	// image dimensions require.
	ErrTruncated = errors.New("dxt: truncated block data")
)

// Pixel is one decoded RGBA8 texel.
type Pixel struct {
	R, G, B, A uint8
}

// decode565 expands a 5-6-5 packed color to 8-bit channels by bit replication.
func decode565(v uint16) Pixel {
	r := uint8(v >> 11 & 0x1F)
	g := uint8(v >> 5 & 0x3F)
	b := uint8(v & 0x1F)

	return Pixel{
		R: r<<3 | r>>2,
		G: g<<2 | g>>4,
		B: b<<3 | b>>2,
		A: 255,
	}
}

func lerpThird(a, b Pixel, num uint16) Pixel {
	mix := func(x, y uint8) uint8 {
		return uint8(((3-num)*uint16(x) + num*uint16(y)) / 3)
	}

	return Pixel{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}

// DecodeBC1Block decodes one 8-byte BC1 block into 16 row-major pixels.
//
// When c0 > c1 the palette holds two interpolants at 1/3 and 2/3; otherwise
// it holds one midpoint and the fourth palette slot is transparent black.
func DecodeBC1Block(src []byte) ([16]Pixel, error) {
	var out [16]Pixel
	if len(src) < 8 {
		return out, fmt.Errorf("%w: BC1 block needs 8 bytes, have %d", ErrTruncated, len(src))
	}

	c0 := uint16(src[0]) | uint16(src[1])<<8
	c1 := uint16(src[2]) | uint16(src[3])<<8
	idx := uint32(src[4]) | uint32(src[5])<<8 | uint32(src[6])<<16 | uint32(src[7])<<24

	var palette [4]Pixel
	palette[0] = decode565(c0)
	palette[1] = decode565(c1)

	if c0 > c1 {
		palette[2] = lerpThird(palette[0], palette[1], 1)
		palette[3] = lerpThird(palette[0], palette[1], 2)
	} else {
		palette[2] = Pixel{
			R: uint8((uint16(palette[0].R) + uint16(palette[1].R)) / 2),
			G: uint8((uint16(palette[0].G) + uint16(palette[1].G)) / 2),
			B: uint8((uint16(palette[0].B) + uint16(palette[1].B)) / 2),
			A: 255,
		}
		palette[3] = Pixel{} // transparent black
	}

	for i := 0; i < 16; i++ {
		out[i] = palette[idx>>(2*uint(i))&0x3]
	}

	return out, nil
}

// DecodeBC3Block decodes one 16-byte BC3 block into 16 row-major pixels.
//
// The first 8 bytes are two alpha endpoints and a 48-bit stream of 3-bit
// indices; the last 8 bytes are a BC1-style color block decoded without the
// punch-through branch: two thirds-point interpolants regardless of endpoint
// order, with alpha taken from the alpha stream.
func DecodeBC3Block(src []byte) ([16]Pixel, error) {
	var out [16]Pixel
	if len(src) < 16 {
		return out, fmt.Errorf("%w: BC3 block needs 16 bytes, have %d", ErrTruncated, len(src))
	}

	a0 := uint16(src[0])
	a1 := uint16(src[1])

	var alphas [8]uint8
	alphas[0] = uint8(a0)
	alphas[1] = uint8(a1)

	if a0 > a1 {
		for i := uint16(1); i <= 6; i++ {
			alphas[i+1] = uint8(((7-i)*a0 + i*a1) / 7)
		}
	} else {
		for i := uint16(1); i <= 4; i++ {
			alphas[i+1] = uint8(((5-i)*a0 + i*a1) / 5)
		}
		alphas[6] = 0
		alphas[7] = 255
	}

	var aIdx uint64
	for i := 0; i < 6; i++ {
		aIdx |= uint64(src[2+i]) << (8 * uint(i))
	}

	c0 := uint16(src[8]) | uint16(src[9])<<8
	c1 := uint16(src[10]) | uint16(src[11])<<8
	idx := uint32(src[12]) | uint32(src[13])<<8 | uint32(src[14])<<16 | uint32(src[15])<<24

	var palette [4]Pixel
	palette[0] = decode565(c0)
	palette[1] = decode565(c1)
	palette[2] = lerpThird(palette[0], palette[1], 1)
	palette[3] = lerpThird(palette[0], palette[1], 2)

	for i := 0; i < 16; i++ {
		p := palette[idx>>(2*uint(i))&0x3]
		p.A = alphas[aIdx>>(3*uint(i))&0x7]
		out[i] = p
	}

	return out, nil
}

// DecodeImage decodes a block-compressed payload of w x h pixels into an
// NRGBA image. Blocks are laid out left-to-right, top-to-bottom; images
// whose dimensions are not multiples of 4 are handled by decoding the full
// 4x4 tile and clipping writes at the image boundary.
func DecodeImage(data []byte, w, h int, format Format) (*image.NRGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: invalid dimensions %dx%d", ErrTruncated, w, h)
	}

	blockSize := format.BlockSize()
	if blockSize < 0 || format == BC2 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	blocksX := (w + 3) / 4
	blocksY := (h + 3) / 4
	if need := blocksX * blocksY * blockSize; len(data) < need {
		return nil, fmt.Errorf("%w: %dx%d %s needs %d bytes, have %d",
			ErrTruncated, w, h, format, need, len(data))
	}

	img := image.NewNRGBA(image.Rect(0, 0, w, h))

	for by := 0; by < blocksY; by++ {
		for bx := 0; bx < blocksX; bx++ {
			block := data[(by*blocksX+bx)*blockSize:]

			var (
				tile [16]Pixel
				err  error
			)
			if format == BC1 {
				tile, err = DecodeBC1Block(block)
			} else {
				tile, err = DecodeBC3Block(block)
			}
			if err != nil {
				return nil, fmt.Errorf("block (%d,%d): %w", bx, by, err)
			}

			copyTile(img, tile, bx*4, by*4, w, h)
		}
	}

	return img, nil
}

// copyTile writes a decoded 4x4 tile at (x0,y0), clipping at image bounds.
func copyTile(img *image.NRGBA, tile [16]Pixel, x0, y0, w, h int) {
	for ty := 0; ty < 4 && y0+ty < h; ty++ {
		for tx := 0; tx < 4 && x0+tx < w; tx++ {
			p := tile[ty*4+tx]
			off := img.PixOffset(x0+tx, y0+ty)
			img.Pix[off+0] = p.R
			img.Pix[off+1] = p.G
			img.Pix[off+2] = p.B
			img.Pix[off+3] = p.A
		}
	}
}

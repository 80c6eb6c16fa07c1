// Package tex reads TEX texture containers: three nested versioned headers
// (TEXV container magic, TEXI image-container version, TEXB body version),
// per-mipmap payloads with optional LZ4 block compression, and an optional
// frame-info block for animated textures.
package tex

import "fmt"

// Format is the texture format discriminant from the container header.
type Format int32

// Texture format wire values.
const (
	FormatRGBA8888 Format = 0 // raw, 4 bytes per texel
	FormatDXT5     Format = 1 // BC3, interpolated alpha
	FormatDXT3     Format = 2 // BC2, recognised but decoding is not implemented
	FormatDXT1     Format = 3 // BC1, 1-bit punch-through alpha
	FormatRG88     Format = 4 // raw, 2 bytes per texel
	FormatR8       Format = 5 // raw, 1 byte per texel
)

// String returns the canonical format name.
func (f Format) String() string {
	switch f {
	case FormatRGBA8888:
		return "RGBA8888"
	case FormatDXT5:
		return "DXT5"
	case FormatDXT3:
		return "DXT3"
	case FormatDXT1:
		return "DXT1"
	case FormatRG88:
		return "RG88"
	case FormatR8:
		return "R8"
	default:
		return fmt.Sprintf("Format(%d)", int32(f))
	}
}

// Flags is the container header flags word. Reserved bits are preserved
// but unused.
type Flags uint32

// Known flag bits.
const (
	// FlagNoInterpolation is a sampling hint; the reader carries it unused.
	FlagNoInterpolation Flags = 1 << 0
	// FlagHasFrameInfo marks an animated texture with a trailing frame block.
	FlagHasFrameInfo Flags = 1 << 20
)

// Has reports whether all bits of f2 are set.
func (f Flags) Has(f2 Flags) bool { return f&f2 == f2 }

// Header is the parsed container header. The image dimensions describe the
// meaningful crop; the texture dimensions describe the stored (often
// power-of-two padded) pixel data, so image <= texture in each axis for
// well-formed files.
type Header struct {
	// Magic is the TEXV container magic, e.g. "TEXV0005".
	Magic string
	// ImageVersion is the TEXI image-container version (TEXI0001..TEXI0003).
	// It does not affect classification: the embedded-image sniff of the
	// first mipmap payload applies to every version.
	ImageVersion string
	// Version is the TEXB body version (TEXB0001..TEXB0004).
	Version string
	// Format is the declared texture format discriminant.
	Format Format
	// Flags is the raw flags word.
	Flags Flags
	// ImageWidth and ImageHeight are the meaningful image dimensions.
	ImageWidth  uint32
	ImageHeight uint32
	// TextureWidth and TextureHeight are the stored texture dimensions.
	TextureWidth  uint32
	TextureHeight uint32
	// MipmapCount is the number of mipmap records in the body.
	MipmapCount uint32
}

// Mipmap is one resolution level, stored largest first. Data holds the
// payload after LZ4 decompression; for uncompressed mips it is a view into
// the source buffer.
type Mipmap struct {
	// Level is the mip level index; level 0 is the full-resolution image.
	Level int
	// Width and Height are the declared dimensions of this level.
	Width  uint32
	Height uint32
	// Compressed records whether the payload was stored as an LZ4 block.
	Compressed bool
	// DecompressedLength is the declared post-LZ4 length when Compressed.
	DecompressedLength uint32
	// Data is the raw payload: raw pixels, BC blocks, an embedded image
	// file, or an MP4 stream.
	Data []byte
}

// Frame places one animation frame on the sheet timeline.
type Frame struct {
	// ImageIndex is the frame's image index as stored. It is not
	// range-checked, and GIF assembly does not use it: every frame is cut
	// from the first mipmap's sheet.
	ImageIndex uint32
	// Time is how long the frame is shown, in seconds.
	Time float32
	// X, Y, Width, Height is the frame's sub-rectangle of the sheet in
	// pixels. Width and Height may be negative for mirrored frames.
	X      float32
	Y      float32
	Width  float32
	Height float32
}

// FrameInfo is the animation block of a TEXB0003+ container.
type FrameInfo struct {
	// SheetWidth and SheetHeight are the frame sheet dimensions in pixels.
	SheetWidth  uint32
	SheetHeight uint32
	// Frames lists the frames in playback order.
	Frames []Frame
}

// Texture is a fully parsed TEX container.
type Texture struct {
	Header  Header
	Mipmaps []*Mipmap
	// FrameInfo is non-nil for animated textures.
	FrameInfo *FrameInfo
	// Embedded names the standard image signature found at the start of the
	// first mipmap payload ("png", "jpeg", ...); empty when the payload is
	// pixel or block data to decode.
	Embedded string
	// IsVideo marks a container whose payload is an MP4 byte stream to be
	// passed through untouched.
	IsVideo bool
}

// IsEmbedded reports whether the payload is a standard image file to pass
// to an image decoder instead of the texture format pipeline.
func (t *Texture) IsEmbedded() bool { return t.Embedded != "" }

// IsAnimated reports whether the container carries a frame-info block.
func (t *Texture) IsAnimated() bool { return t.FrameInfo != nil }

// Width returns the authoritative pixel width: the first mipmap's declared
// width, which wins over the header when the two disagree.
func (t *Texture) Width() uint32 { return t.Mipmaps[0].Width }

// Height returns the authoritative pixel height.
func (t *Texture) Height() uint32 { return t.Mipmaps[0].Height }

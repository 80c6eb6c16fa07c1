package tex

import (
	"errors"
	"fmt"
	"strings"

	"github.com/KibbeWater/repkg/binread"
	"github.com/KibbeWater/repkg/lz4block"
)

// Parse reads a TEX container from data.
//
// Layout: TEXV container magic, TEXI image-container magic, format (i32),
// flags (u32), image width/height (u32), texture width/height (u32), then a
// TEXB body magic dispatching one of the versioned body layouts, the mipmap
// records, and for TEXB0003+ an optional trailing frame-info block when the
// animation flag is set.
func Parse(data []byte) (*Texture, error) {
	r := binread.New(data)

	var h Header

	magic, err := r.String()
	if err != nil {
		return nil, wrapEOF(fmt.Errorf("container magic: %w", err))
	}
	if !strings.HasPrefix(magic, "TEXV") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMagic, magic)
	}
	h.Magic = magic

	imageVersion, err := r.String()
	if err != nil {
		return nil, wrapEOF(fmt.Errorf("image container magic: %w", err))
	}
	switch imageVersion {
	case "TEXI0001", "TEXI0002", "TEXI0003":
	default:
		return nil, fmt.Errorf("%w: image container magic %q", ErrUnsupportedVersion, imageVersion)
	}
	h.ImageVersion = imageVersion

	format, err := r.Int32()
	if err != nil {
		return nil, wrapEOF(fmt.Errorf("format: %w", err))
	}
	h.Format = Format(format)

	flags, err := r.Uint32()
	if err != nil {
		return nil, wrapEOF(fmt.Errorf("flags: %w", err))
	}
	h.Flags = Flags(flags)

	for _, dim := range []*uint32{&h.ImageWidth, &h.ImageHeight, &h.TextureWidth, &h.TextureHeight} {
		if *dim, err = r.Uint32(); err != nil {
			return nil, wrapEOF(fmt.Errorf("dimensions: %w", err))
		}
	}

	version, err := r.String()
	if err != nil {
		return nil, wrapEOF(fmt.Errorf("body magic: %w", err))
	}
	h.Version = version

	var withCompression bool
	switch version {
	case "TEXB0001":
		withCompression = false
	case "TEXB0002", "TEXB0003", "TEXB0004":
		withCompression = true
	default:
		return nil, fmt.Errorf("%w: body magic %q", ErrUnsupportedVersion, version)
	}

	count, err := r.Uint32()
	if err != nil {
		return nil, wrapEOF(fmt.Errorf("mipmap count: %w", err))
	}
	if count == 0 {
		return nil, fmt.Errorf("%w: mipmap count is zero", ErrMalformedPayload)
	}
	h.MipmapCount = count

	t := &Texture{Header: h, Mipmaps: make([]*Mipmap, 0, count)}

	for i := uint32(0); i < count; i++ {
		mm, err := readMipmap(r, int(i), withCompression)
		if err != nil {
			return nil, err
		}

		t.Mipmaps = append(t.Mipmaps, mm)
	}

	if (version == "TEXB0003" || version == "TEXB0004") && h.Flags.Has(FlagHasFrameInfo) {
		if version == "TEXB0004" {
			// Reserved byte; value is ignored (treated as reserved-zero).
			if err := r.Skip(1); err != nil {
				return nil, wrapEOF(fmt.Errorf("reserved byte: %w", err))
			}
		}

		fi, err := readFrameInfo(r)
		if err != nil {
			return nil, err
		}

		t.FrameInfo = fi
	}

	// Classify the payload before any decoder dispatch: some files carry a
	// format discriminant that disagrees with the bytes in the first mipmap.
	first := t.Mipmaps[0].Data
	if isVideoPayload(first) {
		t.IsVideo = true
	} else {
		t.Embedded = sniffImage(first)
	}

	return t, nil
}

// readMipmap reads one mipmap record at the cursor. TEXB0002+ records carry
// a compressed flag and, when set, the declared decompressed length ahead of
// the payload length; the payload is decompressed here so Data always holds
// the usable bytes.
func readMipmap(r *binread.Reader, level int, withCompression bool) (*Mipmap, error) {
	mm := &Mipmap{Level: level}

	var err error
	if mm.Width, err = r.Uint32(); err != nil {
		return nil, wrapEOF(fmt.Errorf("mipmap %d width: %w", level, err))
	}
	if mm.Height, err = r.Uint32(); err != nil {
		return nil, wrapEOF(fmt.Errorf("mipmap %d height: %w", level, err))
	}

	if withCompression {
		c, err := r.Uint8()
		if err != nil {
			return nil, wrapEOF(fmt.Errorf("mipmap %d compression flag: %w", level, err))
		}
		mm.Compressed = c != 0

		if mm.Compressed {
			if mm.DecompressedLength, err = r.Uint32(); err != nil {
				return nil, wrapEOF(fmt.Errorf("mipmap %d decompressed length: %w", level, err))
			}
		}
	}

	payloadLen, err := r.Uint32()
	if err != nil {
		return nil, wrapEOF(fmt.Errorf("mipmap %d payload length: %w", level, err))
	}

	payload, err := r.Bytes(int(payloadLen))
	if err != nil {
		return nil, wrapEOF(fmt.Errorf("mipmap %d payload: %w", level, err))
	}

	if !mm.Compressed {
		mm.Data = payload

		return mm, nil
	}

	dec, err := lz4block.Decompress(payload, int(mm.DecompressedLength))
	if err != nil {
		return nil, fmt.Errorf("mipmap %d: %w", level, errors.Join(ErrMalformedPayload, err))
	}
	mm.Data = dec

	return mm, nil
}

// readFrameInfo reads the animation block: frame count, sheet dimensions,
// then one (image index, time, x, y, width, height) record per frame. Frame
// rectangles must lie within the sheet.
func readFrameInfo(r *binread.Reader) (*FrameInfo, error) {
	count, err := r.Uint32()
	if err != nil {
		return nil, wrapEOF(fmt.Errorf("frame count: %w", err))
	}

	fi := &FrameInfo{Frames: make([]Frame, 0, count)}

	if fi.SheetWidth, err = r.Uint32(); err != nil {
		return nil, wrapEOF(fmt.Errorf("sheet width: %w", err))
	}
	if fi.SheetHeight, err = r.Uint32(); err != nil {
		return nil, wrapEOF(fmt.Errorf("sheet height: %w", err))
	}

	for i := uint32(0); i < count; i++ {
		var f Frame

		if f.ImageIndex, err = r.Uint32(); err != nil {
			return nil, wrapEOF(fmt.Errorf("frame %d image index: %w", i, err))
		}

		for _, v := range []*float32{&f.Time, &f.X, &f.Y, &f.Width, &f.Height} {
			if *v, err = r.Float32(); err != nil {
				return nil, wrapEOF(fmt.Errorf("frame %d: %w", i, err))
			}
		}

		if err := validateFrameRect(f, fi.SheetWidth, fi.SheetHeight); err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}

		fi.Frames = append(fi.Frames, f)
	}

	return fi, nil
}

// validateFrameRect checks the frame sub-rectangle against the sheet.
// Width and height may be negative for mirrored frames; the normalised
// rectangle must still fall inside the sheet.
func validateFrameRect(f Frame, sheetW, sheetH uint32) error {
	x0, x1 := f.X, f.X+f.Width
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	y0, y1 := f.Y, f.Y+f.Height
	if y1 < y0 {
		y0, y1 = y1, y0
	}

	if x0 < 0 || y0 < 0 || x1 > float32(sheetW) || y1 > float32(sheetH) {
		return fmt.Errorf("%w: rect (%g,%g)x(%g,%g) outside %dx%d sheet",
			ErrMalformedPayload, f.X, f.Y, f.Width, f.Height, sheetW, sheetH)
	}

	return nil
}

// wrapEOF folds binread cursor errors into the package-level EOF kind while
// keeping the original chain intact.
func wrapEOF(err error) error {
	if errors.Is(err, binread.ErrUnexpectedEOF) || errors.Is(err, binread.ErrStringTerminator) {
		return fmt.Errorf("%w: %w", ErrUnexpectedEOF, err)
	}

	return err
}

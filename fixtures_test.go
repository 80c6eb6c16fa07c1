package repkg

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/pierrec/lz4/v4"

	"github.com/KibbeWater/repkg/tex"
)

// Fixture builders shared by the facade tests. They mirror the wire layout
// the readers consume: little-endian throughout, strings stored as
// (len u32, bytes, null).

func putString(buf *bytes.Buffer, s string) {
	_ = binary.Write(buf, binary.LittleEndian, uint32(len(s)))
	buf.WriteString(s)
	buf.WriteByte(0)
}

type texMip struct {
	w, h     uint32
	data     []byte
	compress bool
}

type texOpts struct {
	version string
	format  tex.Format
	flags   tex.Flags
	imgW    uint32
	imgH    uint32
	frames  *tex.FrameInfo
}

func buildTex(t *testing.T, o texOpts, mips []texMip) []byte {
	t.Helper()

	if o.version == "" {
		o.version = "TEXB0002"
	}

	var buf bytes.Buffer
	putString(&buf, "TEXV0005")
	putString(&buf, "TEXI0001")
	_ = binary.Write(&buf, binary.LittleEndian, int32(o.format))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(o.flags))
	for _, v := range []uint32{o.imgW, o.imgH, o.imgW, o.imgH} {
		_ = binary.Write(&buf, binary.LittleEndian, v)
	}

	putString(&buf, o.version)
	_ = binary.Write(&buf, binary.LittleEndian, uint32(len(mips)))

	for _, m := range mips {
		_ = binary.Write(&buf, binary.LittleEndian, m.w)
		_ = binary.Write(&buf, binary.LittleEndian, m.h)

		payload := m.data
		if o.version != "TEXB0001" {
			if m.compress {
				buf.WriteByte(1)
				_ = binary.Write(&buf, binary.LittleEndian, uint32(len(m.data)))

				dst := make([]byte, lz4.CompressBlockBound(len(m.data)))
				var c lz4.Compressor
				n, err := c.CompressBlock(m.data, dst)
				if err != nil || n == 0 {
					t.Fatalf("CompressBlock: n=%d err=%v", n, err)
				}
				payload = dst[:n]
			} else {
				buf.WriteByte(0)
			}
		}

		_ = binary.Write(&buf, binary.LittleEndian, uint32(len(payload)))
		buf.Write(payload)
	}

	if o.frames != nil {
		_ = binary.Write(&buf, binary.LittleEndian, uint32(len(o.frames.Frames)))
		_ = binary.Write(&buf, binary.LittleEndian, o.frames.SheetWidth)
		_ = binary.Write(&buf, binary.LittleEndian, o.frames.SheetHeight)
		for _, fr := range o.frames.Frames {
			_ = binary.Write(&buf, binary.LittleEndian, fr.ImageIndex)
			for _, v := range []float32{fr.Time, fr.X, fr.Y, fr.Width, fr.Height} {
				_ = binary.Write(&buf, binary.LittleEndian, v)
			}
		}
	}

	return buf.Bytes()
}

type pkgEntry struct {
	path string
	data []byte
}

func buildPkg(magic string, entries []pkgEntry) []byte {
	var buf bytes.Buffer
	putString(&buf, magic)
	_ = binary.Write(&buf, binary.LittleEndian, uint32(len(entries)))

	offset := uint32(0)
	for _, e := range entries {
		putString(&buf, e.path)
		_ = binary.Write(&buf, binary.LittleEndian, offset)
		_ = binary.Write(&buf, binary.LittleEndian, uint32(len(e.data)))
		offset += uint32(len(e.data))
	}
	for _, e := range entries {
		buf.Write(e.data)
	}

	return buf.Bytes()
}

// bc1UniformBlock encodes one BC1 block that decodes to 16 copies of the
// c0 endpoint color.
func bc1UniformBlock(c0 uint16) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint16(b[0:], c0)
	binary.LittleEndian.PutUint16(b[2:], 0)

	return b
}

package pack

import (
	"errors"
	"fmt"
	"strings"

	"github.com/KibbeWater/repkg/binread"
)

// MagicCurrent is the magic string written by current packaging tools.
// Older PKGV magics share the same table layout and parse identically.
const MagicCurrent = "PKGV0019"

// Parse reads a PKG archive from data in a single pass.
//
// The header is a length-prefixed magic string, a uint32 entry count, and
// one (path, offset, length) record per entry. The cursor position after
// the last record is the base of the data region: each entry's absolute
// position is base + offset. Every entry range is validated against the
// source buffer; overlap and ordering are not validated.
func Parse(data []byte) (*Package, error) {
	r := binread.New(data)

	magic, err := r.String()
	if err != nil {
		return nil, wrapEOF(fmt.Errorf("magic: %w", err))
	}

	if !strings.HasPrefix(magic, "PKGV") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMagic, magic)
	}

	count, err := r.Uint32()
	if err != nil {
		return nil, wrapEOF(fmt.Errorf("entry count: %w", err))
	}

	entries := make([]Entry, 0, count)
	for i := uint32(0); i < count; i++ {
		p, err := r.String()
		if err != nil {
			return nil, wrapEOF(fmt.Errorf("entry %d path: %w", i, err))
		}

		offset, err := r.Uint32()
		if err != nil {
			return nil, wrapEOF(fmt.Errorf("entry %d offset: %w", i, err))
		}

		length, err := r.Uint32()
		if err != nil {
			return nil, wrapEOF(fmt.Errorf("entry %d length: %w", i, err))
		}

		entries = append(entries, Entry{
			Path:   p,
			Offset: offset,
			Length: length,
			Kind:   KindOf(p),
		})
	}

	base := r.Pos()
	for i := range entries {
		e := &entries[i]
		end := uint64(base) + uint64(e.Offset) + uint64(e.Length)
		if end > uint64(len(data)) {
			return nil, fmt.Errorf("%w: entry %q range [%d:%d) exceeds source of %d bytes",
				ErrMalformedPayload, e.Path, base+int(e.Offset), end, len(data))
		}
	}

	return &Package{
		Magic:      magic,
		HeaderSize: base,
		Entries:    entries,
		src:        data,
	}, nil
}

// wrapEOF folds binread cursor errors into the package-level EOF kind while
// keeping the original chain intact.
func wrapEOF(err error) error {
	if errors.Is(err, binread.ErrUnexpectedEOF) || errors.Is(err, binread.ErrStringTerminator) {
		return fmt.Errorf("%w: %w", ErrUnexpectedEOF, err)
	}

	return err
}

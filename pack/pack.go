// Package pack reads PKG package archives: a magic string, an entry table
// of (path, offset, length) headers, and a contiguous data region holding
// the entry payloads.
package pack

import (
	"path"
	"strings"
)

// Kind classifies an entry by its path suffix.
type Kind string

// Entry kinds.
const (
	KindTexture Kind = "texture"
	KindJSON    Kind = "json"
	KindShader  Kind = "shader"
	KindOther   Kind = "other"
)

// KindOf infers an entry kind from its path suffix.
func KindOf(p string) Kind {
	switch strings.ToLower(path.Ext(p)) {
	case ".tex":
		return KindTexture
	case ".json":
		return KindJSON
	case ".frag", ".vert", ".glsl", ".hlsl":
		return KindShader
	default:
		return KindOther
	}
}

// Entry is one named file inside a package. Offset is relative to the data
// region base; the descriptor stays valid only while the source buffer lives.
type Entry struct {
	// Path is the full entry path, slashes as separators.
	Path string
	// Offset is the payload position relative to the end of the header table.
	Offset uint32
	// Length is the payload size in bytes.
	Length uint32
	// Kind is inferred from the path suffix.
	Kind Kind
}

// Package is a parsed PKG archive. Entries preserve insertion order, which
// is also the iteration order exposed to consumers. Duplicate paths are
// accepted; lookups return the first match.
type Package struct {
	// Magic is the archive magic string, e.g. "PKGV0019".
	Magic string
	// HeaderSize is the byte length of the magic plus the entry table;
	// it is also the base of the data region within the source buffer.
	HeaderSize int
	// Entries lists the archive contents in file order.
	Entries []Entry

	src []byte
}

// Bytes returns the entry payload as a view into the source buffer.
// The view stays valid only while the source buffer lives; use Materialize
// for an owned copy.
func (p *Package) Bytes(e *Entry) []byte {
	base := p.HeaderSize + int(e.Offset)

	return p.src[base : base+int(e.Length)]
}

// Materialize returns an owned copy of the entry payload, independent of
// the source buffer's lifetime.
func (p *Package) Materialize(e *Entry) []byte {
	out := make([]byte, e.Length)
	copy(out, p.Bytes(e))

	return out
}

// Find returns the first entry with the given path, or nil.
func (p *Package) Find(entryPath string) *Entry {
	for i := range p.Entries {
		if p.Entries[i].Path == entryPath {
			return &p.Entries[i]
		}
	}

	return nil
}

package repkg

import (
	"github.com/KibbeWater/repkg/pack"
	"github.com/KibbeWater/repkg/tex"
)

// Kind labels what a byte buffer turned out to be.
type Kind string

// File kinds reported by Describe.
const (
	KindPackage Kind = "package"
	KindTexture Kind = "texture"
	KindUnknown Kind = "unknown"
)

// EntryInfo summarises one package entry.
type EntryInfo struct {
	Path string    `json:"path"`
	Size uint32    `json:"size"`
	Kind pack.Kind `json:"kind"`
}

// PackageInfo summarises a parsed PKG archive.
type PackageInfo struct {
	Magic      string      `json:"magic"`
	EntryCount int         `json:"entry_count"`
	Entries    []EntryInfo `json:"entries"`
}

// TextureInfo summarises a parsed TEX container. Format is the resolved
// format: the embedded image name when the payload carries a standard
// image file, the header discriminant's name otherwise.
type TextureInfo struct {
	Width         uint32 `json:"width"`
	Height        uint32 `json:"height"`
	TextureWidth  uint32 `json:"texture_width"`
	TextureHeight uint32 `json:"texture_height"`
	Format        string `json:"format"`
	IsAnimated    bool   `json:"is_animated"`
	IsVideo       bool   `json:"is_video"`
	MipmapCount   int    `json:"mipmap_count"`
}

// FileKind is Describe's answer: the detected kind plus the matching
// summary.
type FileKind struct {
	Kind    Kind         `json:"kind"`
	Package *PackageInfo `json:"package,omitempty"`
	Texture *TextureInfo `json:"texture,omitempty"`
}

// Describe reports what an arbitrary byte buffer is. Buffers that parse as
// neither a PKG archive nor a TEX container come back as KindUnknown.
func Describe(data []byte) FileKind {
	if p, err := pack.Parse(data); err == nil {
		info := &PackageInfo{
			Magic:      p.Magic,
			EntryCount: len(p.Entries),
			Entries:    make([]EntryInfo, 0, len(p.Entries)),
		}
		for i := range p.Entries {
			e := &p.Entries[i]
			info.Entries = append(info.Entries, EntryInfo{Path: e.Path, Size: e.Length, Kind: e.Kind})
		}

		return FileKind{Kind: KindPackage, Package: info}
	}

	if t, err := tex.Parse(data); err == nil {
		format := t.Header.Format.String()
		if t.IsEmbedded() {
			format = t.Embedded
		}

		return FileKind{Kind: KindTexture, Texture: &TextureInfo{
			Width:         t.Header.ImageWidth,
			Height:        t.Header.ImageHeight,
			TextureWidth:  t.Header.TextureWidth,
			TextureHeight: t.Header.TextureHeight,
			Format:        format,
			IsAnimated:    t.IsAnimated(),
			IsVideo:       t.IsVideo,
			MipmapCount:   len(t.Mipmaps),
		}}
	}

	return FileKind{Kind: KindUnknown}
}

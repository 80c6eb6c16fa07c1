package repkg

import "github.com/KibbeWater/repkg/tex"

// VideoPayload returns the raw MP4 byte stream of a video texture without
// re-encoding. For uncompressed containers the slice is a view into the
// source buffer; callers that outlive it should copy.
func VideoPayload(t *tex.Texture) ([]byte, error) {
	if !t.IsVideo {
		return nil, ErrNotVideo
	}

	return t.Mipmaps[0].Data, nil
}

// Package img registers the TEX texture format with the standard image package.
// Import it with a blank import to enable image.Decode and image.DecodeConfig for TEX:
//
//	import _ "github.com/KibbeWater/repkg/img"
package img

import (
	"image"

	"github.com/KibbeWater/repkg"
)

func init() {
	// A TEX stream opens with the length-prefixed magic string, so the
	// first bytes on the wire are the uint32 length 8 followed by "TEXV".
	image.RegisterFormat("tex", "\x08\x00\x00\x00TEXV", repkg.Decode, repkg.DecodeConfig)
}

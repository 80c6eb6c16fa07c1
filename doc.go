/*
Package repkg reads the PKG package archives and TEX texture containers
used by a desktop wallpaper product and converts them into standard
artifacts.

High-level usage:
  - Describe reports what an arbitrary byte buffer is (package, texture,
    or unknown) together with its headline metadata.
  - Convert turns a TEX buffer into a standard image or video artifact,
    either in an explicit format or in "auto" mode.
  - DecodeTexture, EncodeImage, AssembleGIF, and VideoPayload expose the
    individual assembly steps for callers that need them.
  - Decode/DecodeConfig implement image.Decode/image.DecodeConfig. To
    register with image.Decode, import the img subpackage:
    _ "github.com/KibbeWater/repkg/img".

The parsing layers live in the subpackages: pack (PKG archives), tex (TEX
containers), dxt (BC1/BC3 block decoding), lz4block (per-mipmap LZ4
blocks), and binread (little-endian cursor primitives).

Texture classification:

A TEX payload is one of four things, resolved in this order before any
decoder dispatch:

 1. Video: the first mipmap payload carries "ftyp" at byte offset 4
    (ISO-BMFF). The MP4 bytes pass through untouched.
 2. Embedded image: the payload opens with a standard image signature
    (PNG, JPEG, GIF, WebP, BMP, TIFF, or a TGA footer). The declared
    format discriminant is ignored; some files carry a discriminant that
    disagrees with the actual bytes.
 3. Block-compressed pixels: DXT1/BC1 or DXT5/BC3. DXT3/BC2 is
    recognised but decoding is not implemented.
 4. Raw pixels: RGBA8888, RG88, or R8, stored top-down, left-to-right.

The core is synchronous and thread-unaware: it performs no I/O, spawns
nothing, and holds no shared state, so callers compose their own
parallelism around it (see cmd/repkg for the worker-pool CLI).
*/
package repkg

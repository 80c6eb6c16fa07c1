package repkg

import (
	"bytes"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"math"

	"github.com/KibbeWater/repkg/tex"
)

// lastFrameFallbackDelay is applied when the final frame declares a zero
// display time, in GIF centiseconds (100 ms).
const lastFrameFallbackDelay = 10

// AssembleGIF composites the frame-info block of an animated texture into
// an animated GIF. Each frame's sub-rectangle is cut from the decoded
// sheet and quantized with Floyd-Steinberg dithering; per-frame delays come
// from the declared display times.
func AssembleGIF(t *tex.Texture) ([]byte, error) {
	fi := t.FrameInfo
	if fi == nil {
		return nil, ErrNoFrameInfo
	}

	sheet, err := DecodeTexture(t)
	if err != nil {
		return nil, err
	}

	g := &gif.GIF{
		Image: make([]*image.Paletted, 0, len(fi.Frames)),
		Delay: make([]int, 0, len(fi.Frames)),
	}

	for i, f := range fi.Frames {
		frame := cutFrame(sheet, f)

		p := image.NewPaletted(frame.Bounds(), palette.Plan9)
		draw.FloydSteinberg.Draw(p, frame.Bounds(), frame, image.Point{})

		delay := int(math.Round(float64(f.Time) * 100))
		if i == len(fi.Frames)-1 && delay == 0 {
			delay = lastFrameFallbackDelay
		}

		g.Image = append(g.Image, p)
		g.Delay = append(g.Delay, delay)
	}

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, g); err != nil {
		return nil, fmt.Errorf("%w: gif encoder: %w", ErrMalformedPayload, err)
	}

	return buf.Bytes(), nil
}

// cutFrame copies the frame's sub-rectangle out of the sheet, flipping
// mirrored frames (negative width or height) back to a positive rectangle.
func cutFrame(sheet *image.NRGBA, f tex.Frame) *image.NRGBA {
	x, y := int(f.X), int(f.Y)
	w, h := int(f.Width), int(f.Height)

	flipX, flipY := false, false
	if w < 0 {
		x, w = x+w, -w
		flipX = true
	}
	if h < 0 {
		y, h = y+h, -h
		flipY = true
	}

	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			sx, sy := x+dx, y+dy
			if flipX {
				sx = x + w - 1 - dx
			}
			if flipY {
				sy = y + h - 1 - dy
			}

			out.SetNRGBA(dx, dy, sheet.NRGBAAt(sx, sy))
		}
	}

	return out
}

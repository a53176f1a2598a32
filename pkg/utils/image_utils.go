package utils

import (
	"image"

	"golang.org/x/image/draw"
)

// ScaleImage resamples src to w x h pixels on the CPU.
//
// Sprites are scaled before upload so the collision mask can be generated
// from the same pixels that end up on screen. Sizes below one pixel are
// clamped to 1x1.
//
// Usage Example (meteor variants):
//
//	scaled := utils.ScaleImage(asset.Source, int(float64(asset.Width)*scale), int(float64(asset.Height)*scale))
//	m := mask.FromImage(scaled, mask.DefaultAlphaThreshold)
func ScaleImage(src image.Image, w, h int) *image.RGBA {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if src == nil {
		return dst
	}

	b := src.Bounds()
	if b.Dx() == w && b.Dy() == h {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
		return dst
	}

	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

// ScaledSize returns w and h multiplied by scale, truncated to whole pixels.
func ScaledSize(w, h int, scale float64) (int, int) {
	return int(float64(w) * scale), int(float64(h) * scale)
}

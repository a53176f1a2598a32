// Package mask provides per-pixel collision masks for sprites.
// A Mask is a packed bitmap where a set bit marks an opaque pixel.
// Masks are built from decoded images before they are uploaded to the GPU,
// so collision checks never need to read pixels back from an ebiten.Image.
package mask

import (
	"image"
	"math"
)

// DefaultAlphaThreshold is the alpha value a pixel must exceed (on the 0-255
// scale) to be treated as solid.
const DefaultAlphaThreshold = 127

const wordBits = 64

// Mask is a width x height bitmap of solid pixels.
// The zero value is an empty 0x0 mask.
type Mask struct {
	width  int
	height int
	stride int // words per row
	bits   []uint64
}

// New returns an empty mask of the given size.
// Negative sizes are clamped to zero.
func New(width, height int) *Mask {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	stride := (width + wordBits - 1) / wordBits
	return &Mask{
		width:  width,
		height: height,
		stride: stride,
		bits:   make([]uint64, stride*height),
	}
}

// Filled returns a mask of the given size with every pixel set.
func Filled(width, height int) *Mask {
	m := New(width, height)
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			m.Set(x, y)
		}
	}
	return m
}

// FromImage builds a mask from img, marking pixels whose alpha exceeds threshold.
// The mask origin is img.Bounds().Min.
func FromImage(img image.Image, threshold uint8) *Mask {
	b := img.Bounds()
	m := New(b.Dx(), b.Dy())
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			_, _, _, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			if a>>8 > uint32(threshold) {
				m.Set(x, y)
			}
		}
	}
	return m
}

// Width returns the mask width in pixels.
func (m *Mask) Width() int { return m.width }

// Height returns the mask height in pixels.
func (m *Mask) Height() int { return m.height }

// Bounds returns the mask rectangle anchored at the origin.
func (m *Mask) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.width, m.height)
}

// Get reports whether the pixel at (x, y) is solid.
// Coordinates outside the mask are never solid.
func (m *Mask) Get(x, y int) bool {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return false
	}
	return m.bits[y*m.stride+x/wordBits]&(1<<uint(x%wordBits)) != 0
}

// Set marks the pixel at (x, y) solid. Out of range coordinates are ignored.
func (m *Mask) Set(x, y int) {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return
	}
	m.bits[y*m.stride+x/wordBits] |= 1 << uint(x%wordBits)
}

// Clear marks the pixel at (x, y) empty. Out of range coordinates are ignored.
func (m *Mask) Clear(x, y int) {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return
	}
	m.bits[y*m.stride+x/wordBits] &^= 1 << uint(x%wordBits)
}

// Count returns the number of solid pixels.
func (m *Mask) Count() int {
	n := 0
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if m.Get(x, y) {
				n++
			}
		}
	}
	return n
}

// Overlap reports whether m and other share at least one solid pixel when
// other's top-left corner is placed at (offsetX, offsetY) in m's coordinates.
func (m *Mask) Overlap(other *Mask, offsetX, offsetY int) bool {
	_, _, ok := m.OverlapPoint(other, offsetX, offsetY)
	return ok
}

// OverlapPoint is like Overlap but also returns the first overlapping pixel
// in m's coordinates, scanning rows top to bottom.
func (m *Mask) OverlapPoint(other *Mask, offsetX, offsetY int) (int, int, bool) {
	if other == nil {
		return 0, 0, false
	}
	r := m.Bounds().Intersect(other.Bounds().Add(image.Pt(offsetX, offsetY)))
	if r.Empty() {
		return 0, 0, false
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if m.Get(x, y) && other.Get(x-offsetX, y-offsetY) {
				return x, y, true
			}
		}
	}
	return 0, 0, false
}

// Rotate returns a new mask rotated counter-clockwise (as seen on a y-down
// screen) by degrees about its centre. The result is sized to the rotated
// bounding box, so its centre coincides with the centre of m.
func (m *Mask) Rotate(degrees float64) *Mask {
	sin, cos := math.Sincos(degrees * math.Pi / 180)
	w, h := RotatedSize(m.width, m.height, degrees)
	out := New(w, h)

	cx, cy := float64(m.width)/2, float64(m.height)/2
	rcx, rcy := float64(w)/2, float64(h)/2
	for y := 0; y < h; y++ {
		py := float64(y) + 0.5 - rcy
		for x := 0; x < w; x++ {
			px := float64(x) + 0.5 - rcx
			// inverse rotation maps the destination pixel back into m
			sx := px*cos - py*sin + cx
			sy := px*sin + py*cos + cy
			if m.Get(int(math.Floor(sx)), int(math.Floor(sy))) {
				out.Set(x, y)
			}
		}
	}
	return out
}

// RotatedSize returns the size of the bounding box of a width x height
// rectangle rotated by degrees.
func RotatedSize(width, height int, degrees float64) (int, int) {
	sin, cos := math.Sincos(degrees * math.Pi / 180)
	sin, cos = math.Abs(sin), math.Abs(cos)
	w, h := float64(width), float64(height)
	// 1e-9 absorbs float noise around multiples of 90 degrees
	rw := int(math.Ceil(w*cos + h*sin - 1e-9))
	rh := int(math.Ceil(w*sin + h*cos - 1e-9))
	return rw, rh
}

package utils

import (
	"image"
	"image/color"
	"testing"
)

func opaqueSquare(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	return img
}

func TestScaleImage(t *testing.T) {
	src := opaqueSquare(10)

	tests := []struct {
		name  string
		w, h  int
		wantW int
		wantH int
	}{
		{name: "identity", w: 10, h: 10, wantW: 10, wantH: 10},
		{name: "half", w: 5, h: 5, wantW: 5, wantH: 5},
		{name: "double", w: 20, h: 20, wantW: 20, wantH: 20},
		{name: "clamped to one pixel", w: 0, h: -3, wantW: 1, wantH: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := ScaleImage(src, tt.w, tt.h)
			b := dst.Bounds()
			if b.Dx() != tt.wantW || b.Dy() != tt.wantH {
				t.Fatalf("expected %dx%d, got %dx%d", tt.wantW, tt.wantH, b.Dx(), b.Dy())
			}
			// an opaque source stays opaque in the centre after resampling
			if _, _, _, a := dst.At(b.Dx()/2, b.Dy()/2).RGBA(); a>>8 != 255 {
				t.Errorf("expected opaque centre, got alpha %d", a>>8)
			}
		})
	}
}

func TestScaleImageNilSource(t *testing.T) {
	dst := ScaleImage(nil, 4, 3)
	if dst.Bounds().Dx() != 4 || dst.Bounds().Dy() != 3 {
		t.Errorf("unexpected bounds %v", dst.Bounds())
	}
}

func TestScaledSize(t *testing.T) {
	tests := []struct {
		w, h         int
		scale        float64
		wantW, wantH int
	}{
		{101, 84, 1.0, 101, 84},
		{101, 84, 0.5, 50, 42},
		{101, 84, 2.0, 202, 168},
		{101, 84, 1.37, 138, 115},
	}
	for _, tt := range tests {
		w, h := ScaledSize(tt.w, tt.h, tt.scale)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("ScaledSize(%d, %d, %.2f) = %dx%d, want %dx%d",
				tt.w, tt.h, tt.scale, w, h, tt.wantW, tt.wantH)
		}
	}
}

package entities

import (
	"image"
	"image/color"

	"github.com/decker502/asteroids/pkg/game"
)

// newTestSprite 创建一个完全不透明的 w x h 精灵（不上传 GPU）
func newTestSprite(w, h int) *game.SpriteAsset {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	return game.NewSpriteAsset(img, false)
}

package components

import "github.com/hajimehoshi/ebiten/v2"

// SpriteComponent 存储实体的视觉表现(当前绘制的图像)
//
// Width/Height 是绘制尺寸（缩放后），可能与 Image 的原始尺寸不同；
// Rotation 为逆时针旋转角度（度），绕图像中心旋转
type SpriteComponent struct {
	Image    *ebiten.Image
	Width    int
	Height   int
	Rotation float64
}

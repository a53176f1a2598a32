package systems

import (
	"math"

	"github.com/decker502/asteroids/pkg/components"
	"github.com/decker502/asteroids/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
)

// drawOrder 实体绘制顺序（从底到顶）：飞船 → 激光 → 陨石
var drawOrder = []components.BehaviorType{
	components.BehaviorShip,
	components.BehaviorLaser,
	components.BehaviorMeteor,
}

// RenderSystem 绘制所有带精灵的游戏实体
//
// 精灵按 SpriteComponent.Width/Height 缩放绘制，
// 非零 Rotation 时绕图像中心逆时针旋转，与碰撞掩码的旋转方向一致。
type RenderSystem struct {
	entityManager *ecs.EntityManager
}

// NewRenderSystem 创建一个新的渲染系统
func NewRenderSystem(em *ecs.EntityManager) *RenderSystem {
	return &RenderSystem{entityManager: em}
}

// Draw 按 drawOrder 绘制所有实体
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	for _, behaviorType := range drawOrder {
		for _, id := range EntitiesWithBehavior(s.entityManager, behaviorType) {
			s.drawEntity(screen, id)
		}
	}
}

func (s *RenderSystem) drawEntity(screen *ebiten.Image, id ecs.EntityID) {
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
	if !ok {
		return
	}
	sprite, ok := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id)
	if !ok || sprite.Image == nil {
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM = SpriteGeoM(pos, sprite)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(sprite.Image, op)
}

// SpriteGeoM 计算精灵的绘制变换：缩放到目标尺寸 → 绕中心旋转 → 平移到四舍五入后的位置
func SpriteGeoM(pos *components.PositionComponent, sprite *components.SpriteComponent) ebiten.GeoM {
	var geoM ebiten.GeoM

	if sprite.Image != nil {
		b := sprite.Image.Bounds()
		if b.Dx() > 0 && b.Dy() > 0 && (b.Dx() != sprite.Width || b.Dy() != sprite.Height) {
			geoM.Scale(float64(sprite.Width)/float64(b.Dx()), float64(sprite.Height)/float64(b.Dy()))
		}
	}

	if sprite.Rotation != 0 {
		halfW, halfH := float64(sprite.Width)/2, float64(sprite.Height)/2
		geoM.Translate(-halfW, -halfH)
		// GeoM.Rotate 在 y 轴向下的屏幕上是顺时针，取负得到逆时针
		geoM.Rotate(-sprite.Rotation * math.Pi / 180)
		geoM.Translate(halfW, halfH)
	}

	x, y := roundedPosition(pos)
	geoM.Translate(float64(x), float64(y))
	return geoM
}

package systems

import (
	"github.com/decker502/asteroids/pkg/components"
	"github.com/decker502/asteroids/pkg/ecs"
)

// MeteorSystem 陨石系统
//
// 陨石沿随机方向下落并绕自身中心持续旋转。旋转不改变位置，
// 但每次旋转后都从基准掩码重新生成碰撞掩码，并调整偏移使掩码中心与图像中心重合。
type MeteorSystem struct {
	entityManager *ecs.EntityManager
	screenHeight  int
}

// NewMeteorSystem 创建陨石系统
func NewMeteorSystem(em *ecs.EntityManager, screenHeight int) *MeteorSystem {
	return &MeteorSystem{
		entityManager: em,
		screenHeight:  screenHeight,
	}
}

// Update 移动、旋转陨石，销毁完全离开屏幕底部的陨石
func (s *MeteorSystem) Update(deltaTime float64) {
	meteors := EntitiesWithBehavior(s.entityManager, components.BehaviorMeteor)
	for _, meteorID := range meteors {
		s.updateMeteor(meteorID, deltaTime)
	}
}

func (s *MeteorSystem) updateMeteor(meteorID ecs.EntityID, deltaTime float64) {
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, meteorID)
	if !ok {
		return
	}
	vel, ok := ecs.GetComponent[*components.VelocityComponent](s.entityManager, meteorID)
	if !ok {
		return
	}

	pos.X += vel.DirX * vel.Speed * deltaTime
	pos.Y += vel.DirY * vel.Speed * deltaTime

	s.rotate(meteorID, deltaTime)

	top := s.visualTop(meteorID, pos)
	if top > s.screenHeight {
		s.entityManager.DestroyEntity(meteorID)
	}
}

// rotate 累加旋转角度并重新生成碰撞掩码
func (s *MeteorSystem) rotate(meteorID ecs.EntityID, deltaTime float64) {
	rot, ok := ecs.GetComponent[*components.RotationComponent](s.entityManager, meteorID)
	if !ok || rot.BaseMask == nil {
		return
	}
	sprite, ok := ecs.GetComponent[*components.SpriteComponent](s.entityManager, meteorID)
	if !ok {
		return
	}
	coll, ok := ecs.GetComponent[*components.CollisionComponent](s.entityManager, meteorID)
	if !ok {
		return
	}

	rot.Angle += rot.Speed * deltaTime
	sprite.Rotation = rot.Angle

	rotated := rot.BaseMask.Rotate(rot.Angle)
	coll.Mask = rotated
	coll.OffsetX = centeredOffset(sprite.Width, rotated.Width())
	coll.OffsetY = centeredOffset(sprite.Height, rotated.Height())
}

// visualTop 返回陨石当前（旋转后）外框的顶边
func (s *MeteorSystem) visualTop(meteorID ecs.EntityID, pos *components.PositionComponent) int {
	_, y := roundedPosition(pos)
	if coll, ok := ecs.GetComponent[*components.CollisionComponent](s.entityManager, meteorID); ok {
		return y + coll.OffsetY
	}
	return y
}

// centeredOffset 返回把长度为 inner 的区间居中放进长度为 outer 的区间时的起点偏移
// 两个长度各自向下取半再相减，outer 为偶数且 inner 为奇数时比整体取半多 1
func centeredOffset(outer, inner int) int {
	return floorHalf(outer) - floorHalf(inner)
}

// floorHalf 向下取整的 v/2
func floorHalf(v int) int {
	if v < 0 {
		return -((-v + 1) / 2)
	}
	return v / 2
}

package systems

import (
	"github.com/decker502/asteroids/pkg/components"
	"github.com/decker502/asteroids/pkg/ecs"
)

// LaserSystem 激光系统
//
// 激光匀速向上飞行；底边越过屏幕顶部时销毁。
// 击中陨石时销毁激光和第一个被击中的陨石（每束激光至多摧毁一颗），并播放爆炸音效。
type LaserSystem struct {
	entityManager *ecs.EntityManager
	sounds        SoundPlayer
}

// NewLaserSystem 创建激光系统，sounds 可为 nil
func NewLaserSystem(em *ecs.EntityManager, sounds SoundPlayer) *LaserSystem {
	return &LaserSystem{
		entityManager: em,
		sounds:        sounds,
	}
}

// Update 移动所有激光并处理激光与陨石的碰撞
func (s *LaserSystem) Update(deltaTime float64) {
	lasers := EntitiesWithBehavior(s.entityManager, components.BehaviorLaser)
	for _, laserID := range lasers {
		s.updateLaser(laserID, deltaTime)
	}
}

func (s *LaserSystem) updateLaser(laserID ecs.EntityID, deltaTime float64) {
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, laserID)
	if !ok {
		return
	}
	vel, ok := ecs.GetComponent[*components.VelocityComponent](s.entityManager, laserID)
	if !ok {
		return
	}
	sprite, ok := ecs.GetComponent[*components.SpriteComponent](s.entityManager, laserID)
	if !ok {
		return
	}

	pos.X += vel.DirX * vel.Speed * deltaTime
	pos.Y += vel.DirY * vel.Speed * deltaTime

	_, top := roundedPosition(pos)
	if top+sprite.Height < 0 {
		s.entityManager.DestroyEntity(laserID)
	}

	// 已飞出屏幕的激光本帧仍参与碰撞检测（DestroyEntity 幂等）
	meteors := EntitiesWithBehavior(s.entityManager, components.BehaviorMeteor)
	meteorID, hit := FirstCollision(s.entityManager, laserID, meteors)
	if !hit {
		return
	}

	s.entityManager.DestroyEntity(meteorID)
	s.entityManager.DestroyEntity(laserID)
	if s.sounds != nil {
		s.sounds.PlaySound(SoundExplosion)
	}
}

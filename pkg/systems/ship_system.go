package systems

import (
	"log"

	"github.com/decker502/asteroids/pkg/components"
	"github.com/decker502/asteroids/pkg/ecs"
	"github.com/decker502/asteroids/pkg/entities"
	"github.com/decker502/asteroids/pkg/game"
)

// ShipSystem 飞船系统
//
// 每帧按顺序执行：
//  1. 冷却结束检查（基于时钟毫秒数，与帧率无关）
//  2. 飞船中心跟随指针
//  3. 主按键按住且可以射击时，在飞船顶边中点发射激光并播放音效
//  4. 与所有存活陨石做像素碰撞检测（不销毁陨石）
type ShipSystem struct {
	entityManager *ecs.EntityManager
	clock         game.Clock
	input         PointerInput
	sounds        SoundPlayer
	laserSprite   *game.SpriteAsset
	laserSpeed    float64
}

// NewShipSystem 创建飞船系统
//
// 参数:
//   - em: 实体管理器
//   - clock: 冷却计时使用的时钟
//   - input: 指针输入（nil 时使用 DefaultPointerInput）
//   - sounds: 音效播放器（可为 nil）
//   - laserSprite: 激光精灵
//   - laserSpeed: 激光速率（像素/秒）
func NewShipSystem(em *ecs.EntityManager, clock game.Clock, input PointerInput, sounds SoundPlayer,
	laserSprite *game.SpriteAsset, laserSpeed float64) *ShipSystem {
	if input == nil {
		input = DefaultPointerInput
	}
	return &ShipSystem{
		entityManager: em,
		clock:         clock,
		input:         input,
		sounds:        sounds,
		laserSprite:   laserSprite,
		laserSpeed:    laserSpeed,
	}
}

// Update 更新飞船
// 返回 true 表示飞船撞上陨石，本局必须立即结束
func (s *ShipSystem) Update(deltaTime float64) bool {
	ships := EntitiesWithBehavior(s.entityManager, components.BehaviorShip)
	for _, shipID := range ships {
		if s.updateShip(shipID) {
			return true
		}
	}
	return false
}

func (s *ShipSystem) updateShip(shipID ecs.EntityID) bool {
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, shipID)
	if !ok {
		return false
	}
	sprite, ok := ecs.GetComponent[*components.SpriteComponent](s.entityManager, shipID)
	if !ok {
		return false
	}
	cooldown, _ := ecs.GetComponent[*components.ShootCooldownComponent](s.entityManager, shipID)

	now := s.clock.Ticks()

	// 1. 冷却
	if cooldown != nil && !cooldown.CanShoot && now-cooldown.LastShotTick >= cooldown.CooldownMs {
		cooldown.CanShoot = true
	}

	// 2. 跟随指针（指针位置即飞船中心）
	pointerX, pointerY := s.input.CursorPosition()
	pos.X = float64(pointerX - sprite.Width/2)
	pos.Y = float64(pointerY - sprite.Height/2)

	// 3. 射击
	if cooldown != nil && cooldown.CanShoot && s.input.IsPointerPressed() {
		s.fire(pos, sprite)
		cooldown.CanShoot = false
		cooldown.LastShotTick = now
	}

	// 4. 碰撞
	meteors := EntitiesWithBehavior(s.entityManager, components.BehaviorMeteor)
	_, hit := FirstCollision(s.entityManager, shipID, meteors)
	return hit
}

// fire 在飞船顶边中点生成激光
func (s *ShipSystem) fire(pos *components.PositionComponent, sprite *components.SpriteComponent) {
	x, y := roundedPosition(pos)
	if _, err := entities.NewLaserEntity(s.entityManager, s.laserSprite, x+sprite.Width/2, y, s.laserSpeed); err != nil {
		log.Printf("[ShipSystem] Warning: failed to create laser: %v", err)
		return
	}
	if s.sounds != nil {
		s.sounds.PlaySound(SoundLaser)
	}
}

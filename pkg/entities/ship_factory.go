package entities

import (
	"fmt"

	"github.com/decker502/asteroids/pkg/components"
	"github.com/decker502/asteroids/pkg/ecs"
	"github.com/decker502/asteroids/pkg/game"
)

// NewShipEntity 创建飞船实体
// 飞船没有速度组件，位置每帧由指针位置决定
//
// 参数:
//   - em: 实体管理器
//   - sprite: 飞船精灵（图像 + 碰撞掩码）
//   - centerX, centerY: 初始中心位置（通常为窗口中心）
//   - cooldownMs: 射击冷却时长（毫秒）
//
// 返回:
//   - ecs.EntityID: 飞船实体ID
//   - error: 参数无效时返回错误
func NewShipEntity(em *ecs.EntityManager, sprite *game.SpriteAsset, centerX, centerY int, cooldownMs int64) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if sprite == nil {
		return 0, fmt.Errorf("ship sprite cannot be nil")
	}

	entityID := em.CreateEntity()

	em.AddComponent(entityID, &components.PositionComponent{
		X: float64(centerX - sprite.Width/2),
		Y: float64(centerY - sprite.Height/2),
	})
	em.AddComponent(entityID, &components.SpriteComponent{
		Image:  sprite.Image,
		Width:  sprite.Width,
		Height: sprite.Height,
	})
	em.AddComponent(entityID, &components.CollisionComponent{
		Mask: sprite.Mask,
	})
	em.AddComponent(entityID, &components.ShootCooldownComponent{
		CanShoot:   true,
		CooldownMs: cooldownMs,
	})
	em.AddComponent(entityID, &components.BehaviorComponent{
		Type: components.BehaviorShip,
	})

	return entityID, nil
}

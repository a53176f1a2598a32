package entities

import (
	"fmt"

	"github.com/decker502/asteroids/pkg/components"
	"github.com/decker502/asteroids/pkg/ecs"
	"github.com/decker502/asteroids/pkg/game"
)

// NewLaserEntity 创建激光实体
// 激光底边中点位于 (midBottomX, midBottomY)，以 speed 像素/秒向上飞行
//
// 参数:
//   - em: 实体管理器
//   - sprite: 激光精灵
//   - midBottomX, midBottomY: 激光底边中点（飞船顶边中点）
//   - speed: 飞行速率（像素/秒）
func NewLaserEntity(em *ecs.EntityManager, sprite *game.SpriteAsset, midBottomX, midBottomY int, speed float64) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if sprite == nil {
		return 0, fmt.Errorf("laser sprite cannot be nil")
	}

	entityID := em.CreateEntity()

	em.AddComponent(entityID, &components.PositionComponent{
		X: float64(midBottomX - sprite.Width/2),
		Y: float64(midBottomY - sprite.Height),
	})
	em.AddComponent(entityID, &components.VelocityComponent{
		DirX:  0,
		DirY:  -1,
		Speed: speed,
	})
	em.AddComponent(entityID, &components.SpriteComponent{
		Image:  sprite.Image,
		Width:  sprite.Width,
		Height: sprite.Height,
	})
	em.AddComponent(entityID, &components.CollisionComponent{
		Mask: sprite.Mask,
	})
	em.AddComponent(entityID, &components.BehaviorComponent{
		Type: components.BehaviorLaser,
	})

	return entityID, nil
}

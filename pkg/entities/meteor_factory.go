package entities

import (
	"fmt"
	"math/rand"

	"github.com/decker502/asteroids/internal/mask"
	"github.com/decker502/asteroids/pkg/components"
	"github.com/decker502/asteroids/pkg/config"
	"github.com/decker502/asteroids/pkg/ecs"
	"github.com/decker502/asteroids/pkg/game"
	"github.com/decker502/asteroids/pkg/utils"
)

// MeteorParams 陨石创建时采样的随机参数
type MeteorParams struct {
	Scale         float64 // 缩放倍数
	DirX          float64 // 方向X分量（DirY 固定为 1，不归一化）
	Speed         int     // 速率（像素/秒）
	RotationSpeed int     // 角速度（度/秒）
}

// SampleMeteorParams 从 rng 均匀采样陨石参数
// 缩放和方向为连续分布，速率和角速度为整数分布（含两端）
func SampleMeteorParams(rng *rand.Rand, cfg config.MeteorConfig) MeteorParams {
	return MeteorParams{
		Scale:         uniformFloat(rng, cfg.Scale),
		DirX:          uniformFloat(rng, cfg.DriftX),
		Speed:         uniformInt(rng, cfg.Speed),
		RotationSpeed: uniformInt(rng, cfg.RotationSpeed),
	}
}

func uniformFloat(rng *rand.Rand, r config.FloatRange) float64 {
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

func uniformInt(rng *rand.Rand, r config.IntRange) int {
	return r.Min + rng.Intn(r.Max-r.Min+1)
}

// NewMeteorEntity 创建陨石实体，中心位于 (centerX, centerY)
//
// 陨石图像按 params.Scale 缩放（尺寸截断为整数像素），
// 碰撞掩码从缩放后的像素生成，并作为后续旋转的基准掩码。
//
// 参数:
//   - em: 实体管理器
//   - sprite: 陨石原始精灵
//   - centerX, centerY: 出生点中心
//   - params: 随机参数（见 SampleMeteorParams）
func NewMeteorEntity(em *ecs.EntityManager, sprite *game.SpriteAsset, centerX, centerY int, params MeteorParams) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if sprite == nil {
		return 0, fmt.Errorf("meteor sprite cannot be nil")
	}
	if params.Scale <= 0 {
		return 0, fmt.Errorf("meteor scale must be > 0, got %.2f", params.Scale)
	}

	width, height := utils.ScaledSize(sprite.Width, sprite.Height, params.Scale)
	var baseMask *mask.Mask
	if sprite.Source != nil {
		baseMask = mask.FromImage(utils.ScaleImage(sprite.Source, width, height), mask.DefaultAlphaThreshold)
		// ScaleImage 把尺寸钳制到至少 1x1
		width, height = baseMask.Width(), baseMask.Height()
	} else {
		baseMask = mask.Filled(width, height)
	}

	entityID := em.CreateEntity()

	em.AddComponent(entityID, &components.PositionComponent{
		X: float64(centerX - width/2),
		Y: float64(centerY - height/2),
	})
	em.AddComponent(entityID, &components.VelocityComponent{
		DirX:  params.DirX,
		DirY:  1,
		Speed: float64(params.Speed),
	})
	em.AddComponent(entityID, &components.SpriteComponent{
		Image:  sprite.Image,
		Width:  width,
		Height: height,
	})
	em.AddComponent(entityID, &components.CollisionComponent{
		Mask: baseMask,
	})
	em.AddComponent(entityID, &components.RotationComponent{
		Speed:    float64(params.RotationSpeed),
		BaseMask: baseMask,
	})
	em.AddComponent(entityID, &components.BehaviorComponent{
		Type: components.BehaviorMeteor,
	})

	return entityID, nil
}

package components

import "github.com/decker502/asteroids/internal/mask"

// RotationComponent 管理持续旋转的实体（陨石）
type RotationComponent struct {
	Angle    float64    // 累计旋转角度（度）
	Speed    float64    // 旋转速度（度/秒）
	BaseMask *mask.Mask // 未旋转时的掩码，每次旋转都从它重新生成，避免误差累积
}

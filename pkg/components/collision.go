package components

import "github.com/decker502/asteroids/internal/mask"

// CollisionComponent 存储实体的像素碰撞掩码
// 用于逐像素检测实体之间的碰撞（如激光与陨石）
//
// 掩码左上角 = 四舍五入后的位置 + (OffsetX, OffsetY)。
// 未旋转的实体偏移为 0；旋转后的包围盒变大，偏移为负值，保证中心不变
type CollisionComponent struct {
	Mask    *mask.Mask
	OffsetX int
	OffsetY int
}

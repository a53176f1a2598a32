package components

// VelocityComponent 存储实体的运动方向和速率
// 每帧位移 = (DirX, DirY) * Speed * dt
// 方向向量不要求归一化（陨石的 DirY 固定为 1）
type VelocityComponent struct {
	DirX  float64 // 方向向量X分量
	DirY  float64 // 方向向量Y分量
	Speed float64 // 速率（像素/秒）
}

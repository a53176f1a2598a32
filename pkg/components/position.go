package components

// PositionComponent 存储实体的浮点位置
// X, Y 是未旋转图像的左上角坐标（像素），绘制和碰撞时四舍五入为整数
type PositionComponent struct {
	X float64
	Y float64
}

package components

// BehaviorType 定义实体的行为类型
// 用于各系统区分飞船、激光和陨石
type BehaviorType int

const (
	// BehaviorShip 飞船行为：跟随指针移动，按下主按钮时发射激光
	BehaviorShip BehaviorType = iota
	// BehaviorLaser 激光行为：向上匀速移动，击中陨石后与其一同销毁
	BehaviorLaser
	// BehaviorMeteor 陨石行为：向下漂移并持续旋转，离开屏幕底部后销毁
	BehaviorMeteor
)

// String 返回行为类型名称（用于日志）
func (b BehaviorType) String() string {
	switch b {
	case BehaviorShip:
		return "ship"
	case BehaviorLaser:
		return "laser"
	case BehaviorMeteor:
		return "meteor"
	default:
		return "unknown"
	}
}

// BehaviorComponent 标识实体的行为类型
type BehaviorComponent struct {
	Type BehaviorType
}

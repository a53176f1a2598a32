package components

// ShootCooldownComponent 飞船射击冷却
//
// 冷却基于时钟毫秒数而非帧数，因此与帧率无关
type ShootCooldownComponent struct {
	CanShoot     bool  // 是否可以射击
	LastShotTick int64 // 上次射击时的时钟毫秒数
	CooldownMs   int64 // 冷却时长（毫秒）
}

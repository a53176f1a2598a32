package systems

import (
	"github.com/decker502/asteroids/pkg/utils"
)

// PointerInput 指针输入接口
// 用于依赖注入，支持测试时 mock
type PointerInput interface {
	CursorPosition() (int, int)
	IsPointerPressed() bool
}

// ebitenPointerInput Ebitengine 默认实现（鼠标或触摸）
type ebitenPointerInput struct{}

func (e *ebitenPointerInput) CursorPosition() (int, int) {
	return utils.GetPointerPosition()
}

func (e *ebitenPointerInput) IsPointerPressed() bool {
	return utils.IsPointerPressed()
}

// DefaultPointerInput 默认指针输入实例
var DefaultPointerInput PointerInput = &ebitenPointerInput{}

// SoundPlayer 音效播放接口，由 game.AudioManager 实现
type SoundPlayer interface {
	PlaySound(soundID string) bool
}

// 音效资源ID
const (
	SoundLaser     = "SOUND_LASER"
	SoundExplosion = "SOUND_EXPLOSION"
)

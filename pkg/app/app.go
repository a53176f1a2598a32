// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"io/fs"
	"log"

	"github.com/decker502/asteroids/pkg/config"
	"github.com/decker502/asteroids/pkg/game"
	"github.com/decker502/asteroids/pkg/scenes"
	"github.com/decker502/asteroids/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// AudioSampleRate 音频上下文采样率
const AudioSampleRate = 48000

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// AssetFS 资源文件来源，为 nil 时从工作目录读取（移动端传入嵌入的资源）
	AssetFS fs.FS
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	gameScene                *scenes.GameScene
	audioManager             *game.AudioManager
	frameTimer               *game.FrameTimer
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入数据文件。
// 任何资源缺失或解码失败都会返回错误，游戏不会启动。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	// 初始化音频上下文
	audioContext := audio.NewContext(AudioSampleRate)

	// 创建资源管理器
	resourceManager := game.NewResourceManager(audioContext)
	if cfg.AssetFS != nil {
		resourceManager.SetAssetFS(cfg.AssetFS)
	}

	// 加载资源配置
	if err := resourceManager.LoadResourceConfig(config.ResourceConfigPath); err != nil {
		return nil, fmt.Errorf("资源配置加载失败: %w", err)
	}

	// 加载玩法参数
	gameplayConfig, err := config.LoadGameplayConfig(config.GameplayConfigPath)
	if err != nil {
		return nil, fmt.Errorf("玩法参数加载失败: %w", err)
	}
	log.Printf("[Config] Gameplay config loaded from %s", config.GameplayConfigPath)

	// 加载图片和字体
	assets, err := scenes.LoadGameAssets(resourceManager, gameplayConfig.Score)
	if err != nil {
		return nil, fmt.Errorf("游戏资源加载失败: %w", err)
	}

	// 音效和背景音乐在会话开始前全部解码，缺失即启动失败
	audioManager := game.NewAudioManager(resourceManager)
	if err := audioManager.PreloadSounds(scenes.GameSounds); err != nil {
		return nil, fmt.Errorf("音频资源加载失败: %w", err)
	}
	log.Printf("[App] AudioManager initialized")

	clock := game.NewSystemClock()
	gameScene, err := scenes.NewGameScene(assets, scenes.GameSceneOptions{
		Clock:        clock,
		Sounds:       audioManager,
		Config:       gameplayConfig,
		ScreenWidth:  config.GameWindowWidth,
		ScreenHeight: config.GameWindowHeight,
	})
	if err != nil {
		return nil, fmt.Errorf("游戏场景创建失败: %w", err)
	}

	// 创建场景管理器
	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(gameScene)

	// 背景音乐在会话开始时循环播放
	audioManager.PlayMusic(scenes.SoundMusic)

	return &App{
		sceneManager: sceneManager,
		gameScene:    gameScene,
		audioManager: audioManager,
		frameTimer:   game.NewFrameTimer(clock),
	}, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
// 会话结束（飞船被撞、关闭窗口或按 Esc）时返回 ebiten.Termination
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	if ebiten.IsWindowBeingClosed() || utils.IsQuitKeyJustPressed() {
		a.gameScene.Quit()
	}

	deltaTime := a.frameTimer.Tick()
	if err := a.sceneManager.Update(deltaTime); err != nil {
		return a.finish(err)
	}
	return nil
}

// finish 将会话结束原因映射为 ebiten.Termination，其他错误原样返回
func (a *App) finish(err error) error {
	a.audioManager.StopMusic()
	if errors.Is(err, scenes.ErrGameOver) || errors.Is(err, scenes.ErrQuit) {
		log.Printf("[App] Session ended: %v", err)
		return ebiten.Termination
	}
	return err
}

func (a *App) toggleFullscreen() {
	if !ebiten.IsFullscreen() {
		ebiten.SetFullscreen(true)
		return
	}
	ebiten.SetFullscreen(false)
	if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
		ebiten.RestoreWindow()
	}
	// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
	a.pendingWindowSizeReset = true
	a.windowSizeResetCountdown = 3
	log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	// 先填充黑色背景（全屏时左右两边为黑色）
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

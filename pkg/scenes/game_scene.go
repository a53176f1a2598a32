package scenes

import (
	"errors"
	"fmt"
	"log"
	"math/rand"

	"github.com/decker502/asteroids/pkg/config"
	"github.com/decker502/asteroids/pkg/ecs"
	"github.com/decker502/asteroids/pkg/entities"
	"github.com/decker502/asteroids/pkg/game"
	"github.com/decker502/asteroids/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

// SessionState 会话状态
type SessionState int

const (
	// SessionRunning 游戏进行中
	SessionRunning SessionState = iota
	// SessionTerminated 会话已结束（飞船被撞或玩家退出），不再更新
	SessionTerminated
)

func (s SessionState) String() string {
	switch s {
	case SessionRunning:
		return "RUNNING"
	case SessionTerminated:
		return "TERMINATED"
	default:
		return fmt.Sprintf("SessionState(%d)", int(s))
	}
}

var (
	// ErrGameOver 飞船与陨石碰撞，会话结束
	ErrGameOver = errors.New("game over: ship hit by meteor")
	// ErrQuit 玩家请求退出（关闭窗口或按 Esc）
	ErrQuit = errors.New("quit requested")
)

var _ Scene = (*GameScene)(nil)

// GameSceneOptions 游戏场景的可注入依赖
// 零值字段使用真实实现：系统时钟、ebiten 指针、按当前时间播种的随机源、默认参数表。
type GameSceneOptions struct {
	Clock        game.Clock
	Input        systems.PointerInput
	Sounds       systems.SoundPlayer
	Rand         *rand.Rand
	Config       *config.GameplayConfig
	ScreenWidth  int
	ScreenHeight int
}

// GameScene 一局游戏
//
// 每帧更新顺序：陨石生成 → 飞船（移动/射击/碰撞） → 激光 → 陨石 → 清理已销毁实体。
// 飞船碰撞后立即结束，本帧剩余的激光和陨石不再更新。
// 绘制顺序：背景 → 分数 → 飞船 → 激光 → 陨石。
type GameScene struct {
	entityManager *ecs.EntityManager
	assets        *GameAssets
	clock         game.Clock
	startTick     int64
	state         SessionState
	exitErr       error
	shipID        ecs.EntityID

	// Systems
	spawnSystem  *systems.MeteorSpawnSystem
	shipSystem   *systems.ShipSystem
	laserSystem  *systems.LaserSystem
	meteorSystem *systems.MeteorSystem
	renderSystem *systems.RenderSystem
	scoreSystem  *systems.ScoreRenderSystem
}

// NewGameScene creates a new game session with the ship centred in the window.
// The spawner's first meteor appears one interval after the session starts.
func NewGameScene(assets *GameAssets, opts GameSceneOptions) (*GameScene, error) {
	if err := assets.validate(); err != nil {
		return nil, err
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultGameplayConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid gameplay config: %w", err)
	}
	clock := opts.Clock
	if clock == nil {
		clock = game.NewSystemClock()
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(clock.Ticks()))
	}
	width, height := opts.ScreenWidth, opts.ScreenHeight
	if width <= 0 || height <= 0 {
		width, height = config.GameWindowWidth, config.GameWindowHeight
	}

	em := ecs.NewEntityManager()
	shipID, err := entities.NewShipEntity(em, assets.Ship, width/2, height/2, cfg.Ship.ShootCooldownMs)
	if err != nil {
		return nil, fmt.Errorf("failed to create ship: %w", err)
	}

	startTick := clock.Ticks()
	scene := &GameScene{
		entityManager: em,
		assets:        assets,
		clock:         clock,
		startTick:     startTick,
		state:         SessionRunning,
		shipID:        shipID,
		spawnSystem:   systems.NewMeteorSpawnSystem(em, rng, assets.Meteor, cfg, width, startTick),
		shipSystem:    systems.NewShipSystem(em, clock, opts.Input, opts.Sounds, assets.Laser, cfg.Laser.Speed),
		laserSystem:   systems.NewLaserSystem(em, opts.Sounds),
		meteorSystem:  systems.NewMeteorSystem(em, height),
		renderSystem:  systems.NewRenderSystem(em),
		scoreSystem:   systems.NewScoreRenderSystem(assets.ScoreFace, cfg.Score, width, height),
	}

	log.Printf("[GameScene] Session started (window %dx%d, ship %d)", width, height, shipID)
	return scene, nil
}

// Update advances the session by one frame.
// It returns ErrGameOver on the frame the ship is hit and keeps returning the
// terminating error on every later call.
func (s *GameScene) Update(deltaTime float64) error {
	if s.state == SessionTerminated {
		return s.exitErr
	}

	s.spawnSystem.Update(s.clock.Ticks())

	if s.shipSystem.Update(deltaTime) {
		log.Printf("[GameScene] Ship destroyed, final %s", systems.FormatScore(s.Ticks()))
		s.terminate(ErrGameOver)
		return ErrGameOver
	}

	s.laserSystem.Update(deltaTime)
	s.meteorSystem.Update(deltaTime)

	s.entityManager.RemoveMarkedEntities()
	return nil
}

// Draw renders background, score and entities.
func (s *GameScene) Draw(screen *ebiten.Image) {
	if bg := s.assets.Background; bg != nil && bg.Image != nil {
		screen.DrawImage(bg.Image, &ebiten.DrawImageOptions{})
	}
	s.scoreSystem.Draw(screen, s.Ticks())
	s.renderSystem.Draw(screen)
}

// Quit ends a running session. Later Update calls return ErrQuit.
func (s *GameScene) Quit() {
	if s.state == SessionTerminated {
		return
	}
	log.Printf("[GameScene] Quit requested")
	s.terminate(ErrQuit)
}

func (s *GameScene) terminate(err error) {
	s.state = SessionTerminated
	s.exitErr = err
}

// State 返回当前会话状态
func (s *GameScene) State() SessionState {
	return s.state
}

// Ticks 返回会话开始以来经过的毫秒数（分数来源）
func (s *GameScene) Ticks() int64 {
	return s.clock.Ticks() - s.startTick
}

// ShipID 返回飞船实体ID
func (s *GameScene) ShipID() ecs.EntityID {
	return s.shipID
}

// EntityManager 返回场景的实体管理器
func (s *GameScene) EntityManager() *ecs.EntityManager {
	return s.entityManager
}

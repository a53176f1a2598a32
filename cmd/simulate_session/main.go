// simulate_session 以无图形设备的方式运行一局游戏
//
// 使用手动时钟按固定帧间隔推进，指针在屏幕底部左右往返并持续开火，
// 直到飞船被撞或达到最大帧数。用于检查生成节奏和碰撞是否正常。
//
// 用法：
//
//	go run ./cmd/simulate_session -seed 42 -frames 3600
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"

	"github.com/decker502/asteroids/pkg/components"
	"github.com/decker502/asteroids/pkg/config"
	"github.com/decker502/asteroids/pkg/embedded"
	"github.com/decker502/asteroids/pkg/game"
	"github.com/decker502/asteroids/pkg/scenes"
	"github.com/decker502/asteroids/pkg/systems"
)

var (
	verbose   = flag.Bool("verbose", false, "显示详细调试信息")
	seed      = flag.Int64("seed", 1, "随机种子")
	maxFrames = flag.Int("frames", 3600, "最大帧数")
	frameMs   = flag.Int64("frame-ms", 16, "每帧毫秒数")
	sweepPx   = flag.Int("sweep", 8, "指针每帧水平移动的像素")
)

// sweepInput 在屏幕底部左右往返的指针，始终按下
type sweepInput struct {
	x, y, dx    int
	minX, maxX  int
	pressedDown bool
}

func (s *sweepInput) CursorPosition() (int, int) {
	return s.x, s.y
}

func (s *sweepInput) IsPointerPressed() bool {
	return s.pressedDown
}

func (s *sweepInput) step() {
	s.x += s.dx
	if s.x < s.minX || s.x > s.maxX {
		s.dx = -s.dx
		s.x += 2 * s.dx
	}
}

// soundCounter 统计音效播放次数
type soundCounter map[string]int

func (c soundCounter) PlaySound(soundID string) bool {
	c[soundID]++
	return true
}

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	embedded.Init(os.DirFS("."))

	rm := game.NewHeadlessResourceManager()
	if err := rm.LoadResourceConfig(config.ResourceConfigPath); err != nil {
		log.Fatalf("资源清单加载失败: %v", err)
	}
	cfg, err := config.LoadGameplayConfig(config.GameplayConfigPath)
	if err != nil {
		log.Fatalf("玩法参数加载失败: %v", err)
	}
	assets, err := scenes.LoadGameAssets(rm, cfg.Score)
	if err != nil {
		log.Fatalf("游戏资源加载失败: %v", err)
	}

	clock := game.NewManualClock(0)
	input := &sweepInput{
		x:           config.GameWindowWidth / 2,
		y:           config.GameWindowHeight - 100,
		dx:          *sweepPx,
		minX:        50,
		maxX:        config.GameWindowWidth - 50,
		pressedDown: true,
	}
	sounds := soundCounter{}

	scene, err := scenes.NewGameScene(assets, scenes.GameSceneOptions{
		Clock:        clock,
		Input:        input,
		Sounds:       sounds,
		Rand:         rand.New(rand.NewSource(*seed)),
		Config:       cfg,
		ScreenWidth:  config.GameWindowWidth,
		ScreenHeight: config.GameWindowHeight,
	})
	if err != nil {
		log.Fatalf("游戏场景创建失败: %v", err)
	}

	dt := float64(*frameMs) / 1000.0
	frame := 0
	for ; frame < *maxFrames; frame++ {
		clock.Advance(*frameMs)
		input.step()
		if err := scene.Update(dt); err != nil {
			if !errors.Is(err, scenes.ErrGameOver) {
				log.Fatalf("unexpected error: %v", err)
			}
			fmt.Printf("ship destroyed at frame %d\n", frame)
			break
		}
	}

	em := scene.EntityManager()
	fmt.Printf("frames:     %d\n", frame)
	fmt.Printf("state:      %s\n", scene.State())
	fmt.Printf("%s\n", systems.FormatScore(scene.Ticks()))
	fmt.Printf("shots:      %d\n", sounds[systems.SoundLaser])
	fmt.Printf("hits:       %d\n", sounds[systems.SoundExplosion])
	fmt.Printf("meteors:    %d alive\n", len(systems.EntitiesWithBehavior(em, components.BehaviorMeteor)))
	fmt.Printf("lasers:     %d alive\n", len(systems.EntitiesWithBehavior(em, components.BehaviorLaser)))
}

package systems

import (
	"log"
	"math/rand"

	"github.com/decker502/asteroids/pkg/config"
	"github.com/decker502/asteroids/pkg/ecs"
	"github.com/decker502/asteroids/pkg/entities"
	"github.com/decker502/asteroids/pkg/game"
)

// MeteorSpawnSystem 陨石生成系统
//
// 以固定周期（默认 200ms 时钟毫秒）生成陨石。
// 出生点中心 x ∈ [-MarginX, screenWidth+MarginX]，y ∈ [Y.Min, Y.Max]（整数均匀分布），
// 始终位于屏幕上方，可能超出左右边界。
// 若一帧内经过了多个周期，会补齐每个周期的生成。
type MeteorSpawnSystem struct {
	entityManager *ecs.EntityManager
	rng           *rand.Rand
	sprite        *game.SpriteAsset
	meteorConfig  config.MeteorConfig
	spawnConfig   config.SpawnConfig
	screenWidth   int
	nextSpawnTick int64
}

// NewMeteorSpawnSystem 创建陨石生成系统，第一颗陨石在 startTick + 周期时生成
//
// 参数:
//   - em: 实体管理器
//   - rng: 随机源（测试时传入固定种子）
//   - sprite: 陨石原始精灵
//   - cfg: 玩法参数
//   - screenWidth: 窗口宽度
//   - startTick: 会话开始时的时钟毫秒数
func NewMeteorSpawnSystem(em *ecs.EntityManager, rng *rand.Rand, sprite *game.SpriteAsset,
	cfg *config.GameplayConfig, screenWidth int, startTick int64) *MeteorSpawnSystem {
	return &MeteorSpawnSystem{
		entityManager: em,
		rng:           rng,
		sprite:        sprite,
		meteorConfig:  cfg.Meteor,
		spawnConfig:   cfg.Spawn,
		screenWidth:   screenWidth,
		nextSpawnTick: startTick + cfg.Spawn.IntervalMs,
	}
}

// Update 在到期时生成陨石
// 返回本次生成的陨石数量
func (s *MeteorSpawnSystem) Update(now int64) int {
	spawned := 0
	for now >= s.nextSpawnTick {
		s.nextSpawnTick += s.spawnConfig.IntervalMs
		if _, err := s.Spawn(); err != nil {
			log.Printf("[Spawner] Warning: failed to spawn meteor: %v", err)
			continue
		}
		spawned++
	}
	return spawned
}

// NextSpawnTick 返回下一次生成的时钟毫秒数
func (s *MeteorSpawnSystem) NextSpawnTick() int64 {
	return s.nextSpawnTick
}

// SpawnPosition 采样一个出生点中心
func (s *MeteorSpawnSystem) SpawnPosition() (int, int) {
	minX := -s.spawnConfig.MarginX
	maxX := s.screenWidth + s.spawnConfig.MarginX
	x := minX + s.rng.Intn(maxX-minX+1)
	y := s.spawnConfig.Y.Min + s.rng.Intn(s.spawnConfig.Y.Max-s.spawnConfig.Y.Min+1)
	return x, y
}

// Spawn 立即在随机位置生成一颗陨石
func (s *MeteorSpawnSystem) Spawn() (ecs.EntityID, error) {
	x, y := s.SpawnPosition()
	params := entities.SampleMeteorParams(s.rng, s.meteorConfig)
	return entities.NewMeteorEntity(s.entityManager, s.sprite, x, y, params)
}

package config

import (
	"fmt"

	"github.com/decker502/asteroids/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// GameplayConfig 玩法参数
//
// 配置文件位置: data/gameplay.yaml（编译时嵌入）
type GameplayConfig struct {
	Ship   ShipConfig   `yaml:"ship"`
	Laser  LaserConfig  `yaml:"laser"`
	Meteor MeteorConfig `yaml:"meteor"`
	Spawn  SpawnConfig  `yaml:"spawn"`
	Score  ScoreConfig  `yaml:"score"`
}

// ShipConfig 飞船参数
type ShipConfig struct {
	// ShootCooldownMs 两次射击之间的最小间隔（毫秒）
	ShootCooldownMs int64 `yaml:"shootCooldownMs"`
}

// LaserConfig 激光参数
type LaserConfig struct {
	// Speed 激光向上飞行速度（像素/秒）
	Speed float64 `yaml:"speed"`
}

// MeteorConfig 陨石随机参数范围
type MeteorConfig struct {
	Scale         FloatRange `yaml:"scale"`         // 缩放倍数，连续均匀分布
	DriftX        FloatRange `yaml:"driftX"`        // 方向X分量，连续均匀分布
	Speed         IntRange   `yaml:"speed"`         // 速率，整数均匀分布（含两端）
	RotationSpeed IntRange   `yaml:"rotationSpeed"` // 角速度，整数均匀分布（含两端）
}

// SpawnConfig 陨石生成参数
type SpawnConfig struct {
	// IntervalMs 生成周期（毫秒）
	IntervalMs int64 `yaml:"intervalMs"`
	// MarginX 水平出生范围向屏幕两侧外扩的距离
	MarginX int `yaml:"marginX"`
	// Y 出生点中心的Y坐标范围（屏幕上方）
	Y IntRange `yaml:"y"`
}

// ScoreConfig 分数显示参数
type ScoreConfig struct {
	FontSize        float64 `yaml:"fontSize"`        // 字号（像素）
	BottomOffset    float64 `yaml:"bottomOffset"`    // 文本底边距屏幕底部的距离
	BoxInflate      float64 `yaml:"boxInflate"`      // 边框相对文本包围盒的总扩展量（两侧之和）
	BoxStrokeWidth  float64 `yaml:"boxStrokeWidth"`  // 边框线宽
	BoxCornerRadius float64 `yaml:"boxCornerRadius"` // 边框圆角半径
}

// FloatRange 浮点数范围 [Min, Max]
type FloatRange struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// IntRange 整数范围 [Min, Max]，两端都包含
type IntRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// DefaultGameplayConfig 返回默认玩法参数，与 data/gameplay.yaml 保持一致
func DefaultGameplayConfig() *GameplayConfig {
	return &GameplayConfig{
		Ship:  ShipConfig{ShootCooldownMs: 500},
		Laser: LaserConfig{Speed: 600},
		Meteor: MeteorConfig{
			Scale:         FloatRange{Min: 0.5, Max: 2.0},
			DriftX:        FloatRange{Min: -0.5, Max: 0.5},
			Speed:         IntRange{Min: 400, Max: 600},
			RotationSpeed: IntRange{Min: 20, Max: 50},
		},
		Spawn: SpawnConfig{
			IntervalMs: 200,
			MarginX:    100,
			Y:          IntRange{Min: -150, Max: -50},
		},
		Score: ScoreConfig{
			FontSize:        50,
			BottomOffset:    80,
			BoxInflate:      30,
			BoxStrokeWidth:  8,
			BoxCornerRadius: 5,
		},
	}
}

// LoadGameplayConfig 从嵌入资源加载玩法参数
//
// 参数:
//   - path: 配置文件路径（如 "data/gameplay.yaml"）
//
// 返回:
//   - *GameplayConfig: 加载并校验后的配置
//   - error: 读取、解析或校验失败时返回错误
func LoadGameplayConfig(path string) (*GameplayConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read gameplay config: %w", err)
	}
	return ParseGameplayConfig(data)
}

// ParseGameplayConfig 解析 YAML 格式的玩法参数
func ParseGameplayConfig(data []byte) (*GameplayConfig, error) {
	var cfg GameplayConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse gameplay config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid gameplay config: %w", err)
	}

	return &cfg, nil
}

// Validate 验证配置有效性
//
// 检查：
//   - 冷却、生成周期、速度必须为正
//   - 所有范围的 Min 不大于 Max
//   - 缩放倍数必须为正
//   - 出生点必须完全位于屏幕上方
func (c *GameplayConfig) Validate() error {
	if c.Ship.ShootCooldownMs <= 0 {
		return fmt.Errorf("ship shootCooldownMs must be > 0, got %d", c.Ship.ShootCooldownMs)
	}
	if c.Laser.Speed <= 0 {
		return fmt.Errorf("laser speed must be > 0, got %.1f", c.Laser.Speed)
	}
	if c.Spawn.IntervalMs <= 0 {
		return fmt.Errorf("spawn intervalMs must be > 0, got %d", c.Spawn.IntervalMs)
	}

	if err := c.Meteor.Scale.validate("meteor scale"); err != nil {
		return err
	}
	if c.Meteor.Scale.Min <= 0 {
		return fmt.Errorf("meteor scale min must be > 0, got %.2f", c.Meteor.Scale.Min)
	}
	if err := c.Meteor.DriftX.validate("meteor driftX"); err != nil {
		return err
	}
	if err := c.Meteor.Speed.validate("meteor speed"); err != nil {
		return err
	}
	if c.Meteor.Speed.Min <= 0 {
		return fmt.Errorf("meteor speed min must be > 0, got %d", c.Meteor.Speed.Min)
	}
	if err := c.Meteor.RotationSpeed.validate("meteor rotationSpeed"); err != nil {
		return err
	}

	if c.Spawn.MarginX < 0 {
		return fmt.Errorf("spawn marginX must be >= 0, got %d", c.Spawn.MarginX)
	}
	if err := c.Spawn.Y.validate("spawn y"); err != nil {
		return err
	}
	if c.Spawn.Y.Max >= 0 {
		return fmt.Errorf("spawn y max must be above the screen (< 0), got %d", c.Spawn.Y.Max)
	}

	if c.Score.FontSize <= 0 {
		return fmt.Errorf("score fontSize must be > 0, got %.1f", c.Score.FontSize)
	}

	return nil
}

func (r FloatRange) validate(name string) error {
	if r.Min > r.Max {
		return fmt.Errorf("%s range invalid: min(%.2f) > max(%.2f)", name, r.Min, r.Max)
	}
	return nil
}

func (r IntRange) validate(name string) error {
	if r.Min > r.Max {
		return fmt.Errorf("%s range invalid: min(%d) > max(%d)", name, r.Min, r.Max)
	}
	return nil
}

// Contains 检查 v 是否位于 [Min, Max] 内
func (r FloatRange) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Contains 检查 v 是否位于 [Min, Max] 内
func (r IntRange) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

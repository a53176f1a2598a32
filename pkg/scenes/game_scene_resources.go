package scenes

import (
	"fmt"

	"github.com/decker502/asteroids/pkg/config"
	"github.com/decker502/asteroids/pkg/game"
	"github.com/decker502/asteroids/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// 资源ID（见 data/resources.yaml）
const (
	ImageShip       = "IMAGE_SHIP"
	ImageLaser      = "IMAGE_LASER"
	ImageMeteor     = "IMAGE_METEOR"
	ImageBackground = "IMAGE_BACKGROUND"
	FontSubatomic   = "FONT_SUBATOMIC"
	SoundMusic      = "SOUND_MUSIC"

	// ResourceGroupGame 游戏场景资源组
	ResourceGroupGame = "game"
)

// GameSounds 会话开始前需要预加载的音频
var GameSounds = []string{systems.SoundLaser, systems.SoundExplosion, SoundMusic}

// GameAssets holds every asset the game session needs.
// Ship, laser and meteor sprites carry their collision masks.
type GameAssets struct {
	Ship       *game.SpriteAsset
	Laser      *game.SpriteAsset
	Meteor     *game.SpriteAsset
	Background *game.SpriteAsset
	ScoreFace  *text.GoTextFace // nil when no font is available (headless)
}

// LoadGameAssets loads the "game" resource group and resolves every asset by ID.
// Any missing or undecodable file is returned as an error; there is no fallback.
func LoadGameAssets(rm *game.ResourceManager, scoreCfg config.ScoreConfig) (*GameAssets, error) {
	if err := rm.LoadResourceGroup(ResourceGroupGame); err != nil {
		return nil, fmt.Errorf("failed to load resource group %s: %w", ResourceGroupGame, err)
	}

	assets := &GameAssets{}
	sprites := []struct {
		id   string
		dest **game.SpriteAsset
	}{
		{ImageShip, &assets.Ship},
		{ImageLaser, &assets.Laser},
		{ImageMeteor, &assets.Meteor},
		{ImageBackground, &assets.Background},
	}
	for _, s := range sprites {
		sprite, err := rm.LoadSpriteByID(s.id)
		if err != nil {
			return nil, err
		}
		*s.dest = sprite
	}

	face, err := rm.LoadFontByID(FontSubatomic, scoreCfg.FontSize)
	if err != nil {
		return nil, err
	}
	assets.ScoreFace = face

	return assets, nil
}

// validate checks that the sprites the session cannot run without are present.
func (a *GameAssets) validate() error {
	if a == nil {
		return fmt.Errorf("game assets cannot be nil")
	}
	if a.Ship == nil || a.Laser == nil || a.Meteor == nil {
		return fmt.Errorf("ship, laser and meteor sprites are required")
	}
	return nil
}

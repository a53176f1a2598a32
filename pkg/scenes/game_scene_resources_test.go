package scenes

import (
	"os"
	"testing"

	"github.com/decker502/asteroids/pkg/config"
	"github.com/decker502/asteroids/pkg/embedded"
	"github.com/decker502/asteroids/pkg/game"
)

// TestGameSoundsDeclaredInManifest 启动时预加载的每个音频都必须在资源清单中登记
func TestGameSoundsDeclaredInManifest(t *testing.T) {
	embedded.Init(os.DirFS("../.."))

	rm := game.NewHeadlessResourceManager()
	if err := rm.LoadResourceConfig(config.ResourceConfigPath); err != nil {
		t.Fatalf("LoadResourceConfig failed: %v", err)
	}

	if len(GameSounds) != 3 {
		t.Errorf("expected laser, explosion and music, got %v", GameSounds)
	}
	for _, id := range GameSounds {
		if _, ok := rm.ResolvePath(id); !ok {
			t.Errorf("sound %s missing from %s", id, config.ResourceConfigPath)
		}
	}
}

package systems

import (
	"image"
	"image/color"
	"testing"

	"github.com/decker502/asteroids/pkg/components"
	"github.com/decker502/asteroids/pkg/ecs"
	"github.com/decker502/asteroids/pkg/entities"
	"github.com/decker502/asteroids/pkg/game"
)

// mockPointerInput 用于测试的 mock 指针输入
type mockPointerInput struct {
	x, y    int
	pressed bool
}

func (m *mockPointerInput) CursorPosition() (int, int) {
	return m.x, m.y
}

func (m *mockPointerInput) IsPointerPressed() bool {
	return m.pressed
}

// mockSoundPlayer 记录每个音效的播放次数
type mockSoundPlayer struct {
	played map[string]int
}

func newMockSoundPlayer() *mockSoundPlayer {
	return &mockSoundPlayer{played: make(map[string]int)}
}

func (m *mockSoundPlayer) PlaySound(soundID string) bool {
	m.played[soundID]++
	return true
}

// newFilledSprite 创建完全不透明的 w x h 精灵（不上传 GPU）
func newFilledSprite(w, h int) *game.SpriteAsset {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	return game.NewSpriteAsset(img, false)
}

// newDiagonalSprite 创建只有主对角线不透明的 n x n 精灵
func newDiagonalSprite(n int) *game.SpriteAsset {
	img := image.NewRGBA(image.Rect(0, 0, n, n))
	for i := 0; i < n; i++ {
		img.Set(i, i, color.RGBA{A: 255})
	}
	return game.NewSpriteAsset(img, false)
}

// spawnStillMeteor 在 (cx, cy) 生成一颗不移动不旋转的陨石
func spawnStillMeteor(t *testing.T, em *ecs.EntityManager, sprite *game.SpriteAsset, cx, cy int) ecs.EntityID {
	t.Helper()
	id, err := entities.NewMeteorEntity(em, sprite, cx, cy, entities.MeteorParams{Scale: 1})
	if err != nil {
		t.Fatalf("NewMeteorEntity() error = %v", err)
	}
	return id
}

func mustPosition(t *testing.T, em *ecs.EntityManager, id ecs.EntityID) *components.PositionComponent {
	t.Helper()
	pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
	if !ok {
		t.Fatalf("entity %d has no PositionComponent", id)
	}
	return pos
}

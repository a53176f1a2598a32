package game

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/decker502/asteroids/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// Global audio context shared by all tests
// Ebitengine only allows one audio context to be created
var testAudioContext *audio.Context

// TestMain sets up the shared audio context before running tests
func TestMain(m *testing.M) {
	testAudioContext = audio.NewContext(48000)
	os.Exit(m.Run())
}

// createTestImage writes a 10x10 PNG whose left half is opaque blue and right half transparent.
func createTestImage(t *testing.T, path string) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	blue := color.RGBA{R: 0, G: 0, B: 255, A: 255}
	for y := 0; y < 10; y++ {
		for x := 0; x < 5; x++ {
			img.Set(x, y, blue)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create test image: %v", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}
}

// createTestWAV writes a short silent 16-bit stereo PCM file at 48kHz.
func createTestWAV(t *testing.T, path string) {
	t.Helper()

	const (
		sampleRate = 48000
		channels   = 2
		bits       = 16
		frames     = 480
	)
	dataSize := frames * channels * bits / 8

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(channels))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate*channels*bits/8))
	binary.Write(&buf, binary.LittleEndian, uint16(channels*bits/8))
	binary.Write(&buf, binary.LittleEndian, uint16(bits))
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(dataSize))
	buf.Write(make([]byte, dataSize))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("Failed to write test wav: %v", err)
	}
}

// TestNewResourceManager tests the creation of a new ResourceManager instance.
func TestNewResourceManager(t *testing.T) {
	rm := NewResourceManager(testAudioContext)

	if rm == nil {
		t.Fatal("NewResourceManager returned nil")
	}
	if rm.spriteCache == nil {
		t.Error("spriteCache is nil")
	}
	if rm.audioCache == nil {
		t.Error("audioCache is nil")
	}
	if rm.soundCache == nil {
		t.Error("soundCache is nil")
	}
	if rm.audioContext != testAudioContext {
		t.Error("audioContext not set correctly")
	}
	if !rm.uploadToGPU {
		t.Error("default ResourceManager should upload sprites")
	}
}

// TestLoadSprite_Success tests sprite loading and mask generation.
func TestLoadSprite_Success(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ship.png")
	createTestImage(t, path)

	rm := NewHeadlessResourceManager()
	sprite, err := rm.LoadSprite(path)
	if err != nil {
		t.Fatalf("LoadSprite failed: %v", err)
	}

	if sprite.Width != 10 || sprite.Height != 10 {
		t.Errorf("Sprite dimensions incorrect: got %dx%d, want 10x10", sprite.Width, sprite.Height)
	}
	if sprite.Image != nil {
		t.Error("headless ResourceManager should not create GPU images")
	}
	if sprite.Mask == nil {
		t.Fatal("sprite mask is nil")
	}
	if got := sprite.Mask.Count(); got != 50 {
		t.Errorf("expected 50 opaque pixels in mask, got %d", got)
	}
	if !sprite.Mask.Get(0, 0) || sprite.Mask.Get(9, 0) {
		t.Error("mask should follow the alpha channel of the image")
	}
}

// TestLoadSprite_CachingMechanism tests that sprites are cached properly.
func TestLoadSprite_CachingMechanism(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meteor.png")
	createTestImage(t, path)

	rm := NewHeadlessResourceManager()

	first, err := rm.LoadSprite(path)
	if err != nil {
		t.Fatalf("First LoadSprite failed: %v", err)
	}
	second, err := rm.LoadSprite(path)
	if err != nil {
		t.Fatalf("Second LoadSprite failed: %v", err)
	}

	if first != second {
		t.Error("Sprites are not cached - different instances returned")
	}
	if rm.spriteCache[path] != first {
		t.Error("sprite should be cached by path")
	}
}

// TestLoadSprite_Errors tests missing and corrupted image files.
func TestLoadSprite_Errors(t *testing.T) {
	dir := t.TempDir()
	corrupted := filepath.Join(dir, "broken.png")
	if err := os.WriteFile(corrupted, []byte("not an image"), 0644); err != nil {
		t.Fatalf("Failed to write corrupted file: %v", err)
	}

	tests := []struct {
		name        string
		path        string
		errContains string
	}{
		{
			name:        "file not found",
			path:        filepath.Join(dir, "nonexistent.png"),
			errContains: "failed to open image file",
		},
		{
			name:        "invalid format",
			path:        corrupted,
			errContains: "failed to decode image",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rm := NewHeadlessResourceManager()
			_, err := rm.LoadSprite(tt.path)
			if err == nil {
				t.Fatal("expected an error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.errContains)
			}
		})
	}
}

// TestLoadSoundEffect_WAV tests decoding a WAV sound effect into cached PCM.
func TestLoadSoundEffect_WAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "explosion.wav")
	createTestWAV(t, path)

	rm := NewResourceManager(testAudioContext)
	pcm, err := rm.LoadSoundEffect(path)
	if err != nil {
		t.Fatalf("LoadSoundEffect failed: %v", err)
	}
	// 480 frames of 16-bit stereo
	if len(pcm) != 480*4 {
		t.Errorf("expected %d PCM bytes, got %d", 480*4, len(pcm))
	}

	again, err := rm.LoadSoundEffect(path)
	if err != nil || len(again) != len(pcm) || &again[0] != &pcm[0] {
		t.Error("second LoadSoundEffect should return the cached samples")
	}
}

// TestNewSoundPlayer tests that each call returns an independent player.
func TestNewSoundPlayer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "laser.wav")
	createTestWAV(t, path)

	rm := NewResourceManager(testAudioContext)
	first, err := rm.NewSoundPlayer(path)
	if err != nil {
		t.Fatalf("NewSoundPlayer failed: %v", err)
	}
	second, err := rm.NewSoundPlayer(path)
	if err != nil {
		t.Fatalf("NewSoundPlayer failed: %v", err)
	}
	if first == second {
		t.Error("NewSoundPlayer must not share players between calls")
	}
	if len(rm.soundCache) != 1 {
		t.Errorf("expected samples decoded once, got %d cache entries", len(rm.soundCache))
	}

	if _, err := NewHeadlessResourceManager().NewSoundPlayer(path); err == nil ||
		!strings.Contains(err.Error(), "no audio context") {
		t.Errorf("expected no audio context error, got %v", err)
	}
}

// TestLoadAudio_Errors tests audio loading failures.
func TestLoadAudio_Errors(t *testing.T) {
	dir := t.TempDir()
	unsupported := filepath.Join(dir, "music.xyz")
	if err := os.WriteFile(unsupported, []byte("data"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	mp3File := filepath.Join(dir, "music.mp3")
	if err := os.WriteFile(mp3File, []byte("ID3"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	corrupted := filepath.Join(dir, "laser.ogg")
	if err := os.WriteFile(corrupted, []byte("not vorbis"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	tests := []struct {
		name        string
		rm          *ResourceManager
		path        string
		errContains string
	}{
		{
			name:        "file not found",
			rm:          NewResourceManager(testAudioContext),
			path:        filepath.Join(dir, "nonexistent.ogg"),
			errContains: "failed to open audio file",
		},
		{
			name:        "unsupported format",
			rm:          NewResourceManager(testAudioContext),
			path:        unsupported,
			errContains: "unsupported audio format",
		},
		{
			name:        "corrupted ogg",
			rm:          NewResourceManager(testAudioContext),
			path:        corrupted,
			errContains: "failed to decode OGG audio",
		},
		{
			name:        "mp3 not supported",
			rm:          NewResourceManager(testAudioContext),
			path:        mp3File,
			errContains: "unsupported audio format",
		},
		{
			name:        "no audio context",
			rm:          NewHeadlessResourceManager(),
			path:        corrupted,
			errContains: "no audio context",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.rm.LoadAudio(tt.path)
			if err == nil {
				t.Fatal("expected an error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.errContains)
			}
		})
	}
}

// TestLoadFont_Errors tests font loading failures.
func TestLoadFont_Errors(t *testing.T) {
	dir := t.TempDir()
	corrupted := filepath.Join(dir, "broken.ttf")
	if err := os.WriteFile(corrupted, []byte("not a font"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	rm := NewHeadlessResourceManager()

	if _, err := rm.LoadFont(filepath.Join(dir, "missing.ttf"), 50); err == nil ||
		!strings.Contains(err.Error(), "failed to read font file") {
		t.Errorf("expected read error, got %v", err)
	}
	if _, err := rm.LoadFont(corrupted, 50); err == nil ||
		!strings.Contains(err.Error(), "failed to create font source") {
		t.Errorf("expected parse error, got %v", err)
	}
	if _, ok := rm.fontSourceCache[corrupted]; ok {
		t.Error("failed font load must not be cached")
	}
}

const testManifest = `
version: "1.0"
base_path: %s
groups:
  game:
    images:
      - id: IMAGE_SHIP
        path: graphics/ship
      - id: IMAGE_METEOR
        path: graphics/meteor.png
    sounds:
      - id: SOUND_EXPLOSION
        path: audio/explosion.wav
      - id: SOUND_LASER
        path: audio/laser
      - id: SOUND_MUSIC
        path: audio/music.wav
        loop: true
`

func parseTestManifest(t *testing.T, rm *ResourceManager, basePath string) {
	t.Helper()
	manifest := strings.Replace(testManifest, "%s", basePath, 1)
	if err := rm.ParseResourceConfig([]byte(manifest)); err != nil {
		t.Fatalf("ParseResourceConfig failed: %v", err)
	}
}

// TestParseResourceConfig_BuildsResourceMap tests ID to path resolution.
func TestParseResourceConfig_BuildsResourceMap(t *testing.T) {
	rm := NewHeadlessResourceManager()
	if rm.GetConfig() != nil {
		t.Fatal("expected nil config before parsing")
	}
	parseTestManifest(t, rm, "assets")
	if cfg := rm.GetConfig(); cfg == nil || cfg.BasePath != "assets" {
		t.Fatalf("expected parsed config with base path assets, got %+v", cfg)
	}

	tests := []struct {
		id   string
		want string
	}{
		{"IMAGE_SHIP", "assets/graphics/ship.png"},
		{"IMAGE_METEOR", "assets/graphics/meteor.png"},
		{"SOUND_LASER", "assets/audio/laser.ogg"},
		{"SOUND_EXPLOSION", "assets/audio/explosion.wav"},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, ok := rm.ResolvePath(tt.id)
			if !ok {
				t.Fatalf("resource %s not registered", tt.id)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}

	if _, ok := rm.ResolvePath("IMAGE_UNKNOWN"); ok {
		t.Error("unknown ID should not resolve")
	}
	if !rm.loopMap["SOUND_MUSIC"] || rm.loopMap["SOUND_LASER"] {
		t.Error("loop flags not recorded from manifest")
	}
}

// TestParseResourceConfig_Invalid tests malformed YAML.
func TestParseResourceConfig_Invalid(t *testing.T) {
	rm := NewHeadlessResourceManager()
	err := rm.ParseResourceConfig([]byte("groups: [unterminated"))
	if err == nil || !strings.Contains(err.Error(), "failed to parse resource config") {
		t.Errorf("expected parse error, got %v", err)
	}
}

// TestLoadSpriteByID tests loading through the manifest.
func TestLoadSpriteByID(t *testing.T) {
	base := t.TempDir()
	createTestImage(t, filepath.Join(base, "graphics", "ship.png"))

	rm := NewHeadlessResourceManager()
	parseTestManifest(t, rm, base)

	sprite, err := rm.LoadSpriteByID("IMAGE_SHIP")
	if err != nil {
		t.Fatalf("LoadSpriteByID failed: %v", err)
	}
	if sprite.Width != 10 {
		t.Errorf("expected width 10, got %d", sprite.Width)
	}

	if _, err := rm.LoadSpriteByID("IMAGE_UNKNOWN"); err == nil ||
		!strings.Contains(err.Error(), "resource ID not found") {
		t.Errorf("expected unknown ID error, got %v", err)
	}

	// IMAGE_METEOR is registered but missing on disk
	if _, err := rm.LoadSpriteByID("IMAGE_METEOR"); err == nil ||
		!strings.Contains(err.Error(), "IMAGE_METEOR") {
		t.Errorf("expected error naming IMAGE_METEOR, got %v", err)
	}
}

// TestLoadResourceGroup tests fail-fast group loading.
func TestLoadResourceGroup(t *testing.T) {
	base := t.TempDir()
	createTestImage(t, filepath.Join(base, "graphics", "ship.png"))

	rm := NewResourceManager(testAudioContext)
	if err := rm.LoadResourceGroup("game"); err == nil {
		t.Error("expected error before config is loaded")
	}

	parseTestManifest(t, rm, base)

	if err := rm.LoadResourceGroup("menu"); err == nil ||
		!strings.Contains(err.Error(), "resource group not found") {
		t.Errorf("expected missing group error, got %v", err)
	}

	// meteor image is missing: the whole group must fail
	if err := rm.LoadResourceGroup("game"); err == nil {
		t.Fatal("expected error for missing meteor image")
	}

	// sounds are missing on disk too, but the group loads only images and fonts
	createTestImage(t, filepath.Join(base, "graphics", "meteor.png"))
	if err := rm.LoadResourceGroup("game"); err != nil {
		t.Fatalf("LoadResourceGroup failed: %v", err)
	}
	if len(rm.soundCache) != 0 || len(rm.audioCache) != 0 {
		t.Error("LoadResourceGroup should leave sounds to PreloadSounds")
	}
}

// TestLoadAudioByID tests that manifest sounds load and unknown IDs fail.
func TestLoadAudioByID(t *testing.T) {
	base := t.TempDir()
	createTestWAV(t, filepath.Join(base, "audio", "explosion.wav"))
	createTestWAV(t, filepath.Join(base, "audio", "music.wav"))

	rm := NewResourceManager(testAudioContext)
	parseTestManifest(t, rm, base)

	if err := rm.LoadAudioByID("SOUND_EXPLOSION"); err != nil {
		t.Fatalf("LoadAudioByID failed: %v", err)
	}
	if err := rm.LoadAudioByID("SOUND_MUSIC"); err != nil {
		t.Fatalf("LoadAudioByID failed: %v", err)
	}
	if len(rm.soundCache) != 1 || len(rm.audioCache) != 1 {
		t.Errorf("expected 1 sound effect and 1 music player, got %d/%d",
			len(rm.soundCache), len(rm.audioCache))
	}

	if err := rm.LoadAudioByID("SOUND_UNKNOWN"); err == nil {
		t.Error("expected error for unknown sound ID")
	}
}

// TestLoadResourceConfig_Embedded tests that the shipped manifest declares every game asset.
func TestLoadResourceConfig_Embedded(t *testing.T) {
	embedded.Init(os.DirFS("../.."))

	rm := NewHeadlessResourceManager()
	if err := rm.LoadResourceConfig("data/resources.yaml"); err != nil {
		t.Fatalf("LoadResourceConfig failed: %v", err)
	}

	required := []string{
		"IMAGE_SHIP", "IMAGE_LASER", "IMAGE_METEOR", "IMAGE_BACKGROUND",
		"FONT_SUBATOMIC",
		"SOUND_LASER", "SOUND_EXPLOSION", "SOUND_MUSIC",
	}
	for _, id := range required {
		if _, ok := rm.ResolvePath(id); !ok {
			t.Errorf("resource %s missing from data/resources.yaml", id)
		}
	}

	if !rm.loopMap["SOUND_MUSIC"] {
		t.Error("SOUND_MUSIC should be declared as looping")
	}
	if path, _ := rm.ResolvePath("SOUND_EXPLOSION"); filepath.Ext(path) != ".wav" {
		t.Errorf("SOUND_EXPLOSION should be a wav file, got %s", path)
	}
}

// TestSetAssetFS tests loading assets from an fs.FS instead of the disk.
func TestSetAssetFS(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 6, 4))
	img.Set(0, 0, color.RGBA{A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}

	rm := NewHeadlessResourceManager()
	rm.SetAssetFS(fstest.MapFS{
		"assets/graphics/ship.png": &fstest.MapFile{Data: buf.Bytes()},
	})
	parseTestManifest(t, rm, "assets")

	sprite, err := rm.LoadSpriteByID("IMAGE_SHIP")
	if err != nil {
		t.Fatalf("LoadSpriteByID from fs failed: %v", err)
	}
	if sprite.Width != 6 || sprite.Height != 4 {
		t.Errorf("expected 6x4 sprite, got %dx%d", sprite.Width, sprite.Height)
	}
	if sprite.Mask.Count() != 1 {
		t.Errorf("expected 1 opaque pixel in mask, got %d", sprite.Mask.Count())
	}

	if _, err := rm.LoadSpriteByID("IMAGE_METEOR"); err == nil {
		t.Error("expected error for file missing from fs")
	}
}

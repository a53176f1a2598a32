package game

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/decker502/asteroids/internal/mask"
	"github.com/decker502/asteroids/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"gopkg.in/yaml.v3"
)

// SpriteAsset bundles everything an entity needs from one image file:
// the GPU image used for drawing, the decoded CPU-side source used for
// resampling, and the collision mask built from the source alpha channel.
//
// Masks are generated from the decoded image before it is uploaded, because
// pixels of an ebiten.Image cannot be read back before the game loop starts.
type SpriteAsset struct {
	Image  *ebiten.Image // GPU image for drawing (nil in headless tests)
	Source image.Image   // Decoded image, used for resampling scaled variants
	Mask   *mask.Mask    // Collision mask at the natural size
	Width  int           // Natural width in pixels
	Height int           // Natural height in pixels
}

// NewSpriteAsset builds a SpriteAsset from a decoded image.
// When upload is false no ebiten.Image is created, which lets tests and
// tools work without a graphics device.
func NewSpriteAsset(src image.Image, upload bool) *SpriteAsset {
	b := src.Bounds()
	asset := &SpriteAsset{
		Source: src,
		Mask:   mask.FromImage(src, mask.DefaultAlphaThreshold),
		Width:  b.Dx(),
		Height: b.Dy(),
	}
	if upload {
		asset.Image = ebiten.NewImageFromImage(src)
	}
	return asset
}

// ResourceManager is responsible for centralized management of game resources.
// It provides loading and caching mechanisms for sprites, fonts and audio assets,
// ensuring that resources are loaded only once and reused throughout the game.
//
// The ResourceManager implements the following key features:
// - Sprite loading and caching (PNG/JPEG) with collision masks
// - Audio loading (OGG/WAV): looping music players, decoded PCM for sound effects
// - Font loading with per-size face caching
// - Resource ID lookup through the embedded YAML manifest
//
// Asset files are read from disk relative to the working directory. A missing
// or corrupted file is reported as an error; there is no fallback asset.
//
// Thread Safety Note:
// This implementation is NOT thread-safe. The internal caches use standard Go maps.
// For the single-threaded game loop, no synchronization is needed.
//
// Usage:
//
//	audioContext := audio.NewContext(48000)
//	rm := NewResourceManager(audioContext)
//	if err := rm.LoadResourceConfig("data/resources.yaml"); err != nil {
//	    return err
//	}
//	ship, err := rm.LoadSpriteByID("IMAGE_SHIP")
type ResourceManager struct {
	spriteCache      map[string]*SpriteAsset           // Cache for loaded sprites: path -> SpriteAsset
	audioCache       map[string]*audio.Player          // Cache for looping music players: path -> Player
	soundCache       map[string][]byte                 // Cache for decoded sound effect PCM: path -> bytes
	audioContext     *audio.Context                    // Global audio context for audio decoding
	fontSourceCache  map[string]*text.GoTextFaceSource // Cache for parsed font files: path -> source
	fontFaceCache    map[string]*text.GoTextFace       // Cache for text faces: "path:size" -> face
	uploadToGPU      bool                              // Whether sprites get an ebiten.Image
	readFile         func(path string) ([]byte, error) // Asset file reader, os.ReadFile by default

	// YAML resource configuration
	config      *ResourceConfig   // Parsed YAML configuration
	resourceMap map[string]string // Resource ID -> file path mapping for quick lookup
	loopMap     map[string]bool   // Resource ID -> whether the sound loops
}

// NewResourceManager creates and initializes a new ResourceManager instance.
// The audioContext parameter is required for audio decoding and playback.
// It should be created once at game startup with a sample rate of 48000 Hz.
// A nil audioContext is accepted; audio loading then fails with an error.
//
// Example:
//
//	audioContext := audio.NewContext(48000)
//	resourceManager := NewResourceManager(audioContext)
func NewResourceManager(audioContext *audio.Context) *ResourceManager {
	return &ResourceManager{
		spriteCache:     make(map[string]*SpriteAsset),
		audioCache:      make(map[string]*audio.Player),
		soundCache:      make(map[string][]byte),
		audioContext:    audioContext,
		fontSourceCache: make(map[string]*text.GoTextFaceSource),
		fontFaceCache:   make(map[string]*text.GoTextFace),
		uploadToGPU:     true,
		readFile:        os.ReadFile,
		resourceMap:     make(map[string]string),
		loopMap:         make(map[string]bool),
	}
}

// NewHeadlessResourceManager creates a ResourceManager that never touches the
// graphics device: sprites carry only their decoded source and mask.
// It is used by command line tools and tests.
func NewHeadlessResourceManager() *ResourceManager {
	rm := NewResourceManager(nil)
	rm.uploadToGPU = false
	return rm
}

// SetAssetFS makes the manager read asset files from fsys instead of the
// working directory. Mobile builds pass their embedded assets here.
func (rm *ResourceManager) SetAssetFS(fsys fs.FS) {
	rm.readFile = func(path string) ([]byte, error) {
		return fs.ReadFile(fsys, filepath.ToSlash(filepath.Clean(path)))
	}
}

// LoadSprite loads an image file, builds its collision mask and caches the result.
// If the sprite has already been loaded, it returns the cached version.
//
// Error handling:
//   - Returns an error if the file does not exist or cannot be read.
//   - Returns an error if the image format is not supported or the file is corrupted.
func (rm *ResourceManager) LoadSprite(path string) (*SpriteAsset, error) {
	// Check if the sprite is already cached
	if cached, exists := rm.spriteCache[path]; exists {
		return cached, nil
	}

	data, err := rm.readFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", path, err)
	}

	// Decode the image
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	asset := NewSpriteAsset(img, rm.uploadToGPU)

	// Store in cache
	rm.spriteCache[path] = asset

	return asset, nil
}

// decodeAudio decodes an in-memory audio file, resampling it to the context sample rate.
// Supported formats: OGG Vorbis (.ogg) and WAV (.wav).
func (rm *ResourceManager) decodeAudio(path string, data []byte) (io.ReadSeeker, int64, error) {
	if rm.audioContext == nil {
		return nil, 0, fmt.Errorf("no audio context available to decode %s", path)
	}

	reader := bytes.NewReader(data)
	sampleRate := rm.audioContext.SampleRate()

	// Determine the file format by extension
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".ogg":
		stream, err := vorbis.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to decode OGG audio %s: %w", path, err)
		}
		return stream, stream.Length(), nil
	case ".wav":
		stream, err := wav.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to decode WAV audio %s: %w", path, err)
		}
		return stream, stream.Length(), nil
	default:
		return nil, 0, fmt.Errorf("unsupported audio format: %s (supported: .ogg, .wav)", ext)
	}
}

// LoadAudio loads an audio file from the specified path and caches it for future use.
// The audio is wrapped in an infinite loop, making it suitable for background music.
// Use NewSoundPlayer for one-shot sounds.
//
// Example:
//
//	player, err := rm.LoadAudio("assets/audio/music.wav")
//	if err != nil {
//	    return err
//	}
//	player.Play()
func (rm *ResourceManager) LoadAudio(path string) (*audio.Player, error) {
	if cachedPlayer, exists := rm.audioCache[path]; exists {
		return cachedPlayer, nil
	}

	stream, length, err := rm.openAudio(path)
	if err != nil {
		return nil, err
	}

	player, err := rm.audioContext.NewPlayer(audio.NewInfiniteLoop(stream, length))
	if err != nil {
		return nil, fmt.Errorf("failed to create audio player for %s: %w", path, err)
	}

	rm.audioCache[path] = player
	return player, nil
}

// LoadSoundEffect decodes a one-shot sound into PCM bytes at the context
// sample rate and caches them. Every player created by NewSoundPlayer shares
// these bytes, so overlapping plays of one sound mix instead of restarting.
func (rm *ResourceManager) LoadSoundEffect(path string) ([]byte, error) {
	if pcm, exists := rm.soundCache[path]; exists {
		return pcm, nil
	}

	stream, _, err := rm.openAudio(path)
	if err != nil {
		return nil, err
	}

	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to decode audio samples %s: %w", path, err)
	}

	rm.soundCache[path] = pcm
	return pcm, nil
}

// NewSoundPlayer returns a fresh player for a one-shot sound.
// The decoded samples are loaded once; each call gets an independent player.
func (rm *ResourceManager) NewSoundPlayer(path string) (*audio.Player, error) {
	pcm, err := rm.LoadSoundEffect(path)
	if err != nil {
		return nil, err
	}
	return rm.audioContext.NewPlayerFromBytes(pcm), nil
}

// openAudio reads and decodes an audio file.
// The whole file is read into memory so the stream can seek without keeping the file open.
func (rm *ResourceManager) openAudio(path string) (io.ReadSeeker, int64, error) {
	audioData, err := rm.readFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open audio file %s: %w", path, err)
	}
	return rm.decodeAudio(path, audioData)
}

// LoadFontSource reads and parses a TrueType/OpenType font file.
// The parsed source is cached per path; faces of any size can be created from it.
func (rm *ResourceManager) LoadFontSource(path string) (*text.GoTextFaceSource, error) {
	if cached, exists := rm.fontSourceCache[path]; exists {
		return cached, nil
	}

	fontData, err := rm.readFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file %s: %w", path, err)
	}

	source, err := text.NewGoTextFaceSource(bytes.NewReader(fontData))
	if err != nil {
		return nil, fmt.Errorf("failed to create font source for %s: %w", path, err)
	}

	rm.fontSourceCache[path] = source
	return source, nil
}

// LoadFont loads a TrueType/OpenType font from the specified path and creates a text face with the given size.
// The font face is cached for future use with a cache key combining path and size.
//
// Example:
//
//	fontFace, err := rm.LoadFont("assets/graphics/subatomic.ttf", 50)
//	if err != nil {
//	    return err
//	}
func (rm *ResourceManager) LoadFont(path string, size float64) (*text.GoTextFace, error) {
	// Create cache key combining path and size
	cacheKey := fmt.Sprintf("%s:%.1f", path, size)

	// Check if the font face is already cached
	if cachedFace, exists := rm.fontFaceCache[cacheKey]; exists {
		return cachedFace, nil
	}

	source, err := rm.LoadFontSource(path)
	if err != nil {
		return nil, err
	}

	goTextFace := &text.GoTextFace{
		Source:    source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}

	// Store in cache
	rm.fontFaceCache[cacheKey] = goTextFace

	return goTextFace, nil
}

// LoadResourceConfig loads the resource manifest from the embedded data files.
// This method should be called once during game initialization, before loading any resources.
//
// Parameters:
//   - configPath: Path to the YAML manifest (e.g., "data/resources.yaml")
//
// Example:
//
//	rm := NewResourceManager(audioContext)
//	if err := rm.LoadResourceConfig("data/resources.yaml"); err != nil {
//	    log.Fatal("Failed to load resource config:", err)
//	}
func (rm *ResourceManager) LoadResourceConfig(configPath string) error {
	data, err := embedded.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read resource config %s: %w", configPath, err)
	}
	return rm.ParseResourceConfig(data)
}

// ParseResourceConfig parses a YAML manifest and rebuilds the ID lookup table.
func (rm *ResourceManager) ParseResourceConfig(data []byte) error {
	var config ResourceConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("failed to parse resource config: %w", err)
	}

	// Store the parsed configuration
	rm.config = &config

	// Build resource ID -> path mapping for quick lookup
	rm.buildResourceMap()

	return nil
}

// buildResourceMap constructs a mapping from resource IDs to full file paths.
//
// For example:
//
//	IMAGE_SHIP -> assets/graphics/ship.png
//	SOUND_LASER -> assets/sounds/laser.ogg
func (rm *ResourceManager) buildResourceMap() {
	if rm.config == nil {
		return
	}

	// Clear existing mapping
	rm.resourceMap = make(map[string]string)
	rm.loopMap = make(map[string]bool)

	for _, group := range rm.config.Groups {
		for _, img := range group.Images {
			fullPath := buildFullPath(rm.config.BasePath, img.Path)
			if filepath.Ext(fullPath) == "" {
				fullPath += ".png" // Default to PNG for images
			}
			rm.resourceMap[img.ID] = fullPath
		}

		for _, sound := range group.Sounds {
			fullPath := buildFullPath(rm.config.BasePath, sound.Path)
			if filepath.Ext(fullPath) == "" {
				fullPath += ".ogg" // Default to OGG for sounds
			}
			rm.resourceMap[sound.ID] = fullPath
			rm.loopMap[sound.ID] = sound.Loop
		}

		for _, font := range group.Fonts {
			rm.resourceMap[font.ID] = buildFullPath(rm.config.BasePath, font.Path)
		}
	}
}

// ResolvePath returns the file path registered for a resource ID.
func (rm *ResourceManager) ResolvePath(resourceID string) (string, bool) {
	path, ok := rm.resourceMap[resourceID]
	return path, ok
}

// GetConfig returns the parsed manifest, or nil before LoadResourceConfig.
func (rm *ResourceManager) GetConfig() *ResourceConfig {
	return rm.config
}

// LoadSpriteByID loads a sprite using its resource ID from the manifest.
func (rm *ResourceManager) LoadSpriteByID(resourceID string) (*SpriteAsset, error) {
	path, ok := rm.resourceMap[resourceID]
	if !ok {
		return nil, fmt.Errorf("resource ID not found: %s", resourceID)
	}
	asset, err := rm.LoadSprite(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load image %s: %w", resourceID, err)
	}
	return asset, nil
}

// LoadFontByID loads a font face of the given size using its resource ID.
func (rm *ResourceManager) LoadFontByID(resourceID string, size float64) (*text.GoTextFace, error) {
	path, ok := rm.resourceMap[resourceID]
	if !ok {
		return nil, fmt.Errorf("resource ID not found: %s", resourceID)
	}
	face, err := rm.LoadFont(path, size)
	if err != nil {
		return nil, fmt.Errorf("failed to load font %s: %w", resourceID, err)
	}
	return face, nil
}

// LoadAudioByID loads a sound using its resource ID.
// Sounds marked `loop: true` in the manifest are loaded as looping music;
// the others are decoded into the sound effect cache.
func (rm *ResourceManager) LoadAudioByID(resourceID string) error {
	path, ok := rm.resourceMap[resourceID]
	if !ok {
		return fmt.Errorf("resource ID not found: %s", resourceID)
	}
	var err error
	if rm.loopMap[resourceID] {
		_, err = rm.LoadAudio(path)
	} else {
		_, err = rm.LoadSoundEffect(path)
	}
	if err != nil {
		return fmt.Errorf("failed to load sound %s: %w", resourceID, err)
	}
	return nil
}

// LoadResourceGroup loads every image and font of a group.
// Resources are loaded in ID order; the first failure aborts the load.
// Sounds are left to AudioManager.PreloadSounds, which needs an audio context.
func (rm *ResourceManager) LoadResourceGroup(groupName string) error {
	if rm.config == nil {
		return fmt.Errorf("resource config not loaded")
	}

	group, ok := rm.config.Groups[groupName]
	if !ok {
		return fmt.Errorf("resource group not found: %s", groupName)
	}

	for _, id := range sortedImageIDs(group.Images) {
		if _, err := rm.LoadSpriteByID(id); err != nil {
			return err
		}
	}

	for _, font := range group.Fonts {
		if _, err := rm.LoadFontSource(rm.resourceMap[font.ID]); err != nil {
			return fmt.Errorf("failed to load font %s: %w", font.ID, err)
		}
	}

	log.Printf("[ResourceManager] Loaded group %q: %d images, %d fonts",
		groupName, len(group.Images), len(group.Fonts))
	return nil
}

func sortedImageIDs(images []ImageResource) []string {
	ids := make([]string, 0, len(images))
	for _, img := range images {
		ids = append(ids, img.ID)
	}
	sort.Strings(ids)
	return ids
}

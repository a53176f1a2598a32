package game

// ResourceConfig represents the top-level resource configuration loaded from YAML.
// It defines the structure of data/resources.yaml.
//
// Structure:
//
//	version: "1.0"
//	base_path: assets
//	groups:
//	  group_name:
//	    images: [...]
//	    sounds: [...]
//	    fonts: [...]
type ResourceConfig struct {
	Version  string                   `yaml:"version"`   // Configuration file version
	BasePath string                   `yaml:"base_path"` // Base path for all resources (e.g., "assets")
	Groups   map[string]ResourceGroup `yaml:"groups"`    // Resource groups keyed by group name
}

// ResourceGroup represents a collection of related resources that can be loaded together.
// Each group contains lists of images, sounds, and fonts.
//
// Example from resources.yaml:
//
//	game:
//	  images:
//	    - id: IMAGE_SHIP
//	      path: graphics/ship
type ResourceGroup struct {
	Images []ImageResource `yaml:"images"` // List of image resources in this group
	Sounds []SoundResource `yaml:"sounds"` // List of sound resources in this group
	Fonts  []FontResource  `yaml:"fonts"`  // List of font resources in this group
}

// ImageResource represents a single image resource definition.
//
// Example:
//
//	- id: IMAGE_METEOR
//	  path: graphics/meteor
type ImageResource struct {
	ID   string `yaml:"id"`   // Resource ID (unique identifier)
	Path string `yaml:"path"` // Relative file path from base_path
}

// SoundResource represents a single sound/audio resource definition.
// Loop marks background music that is wrapped in an infinite loop.
//
// Example:
//   - id: SOUND_MUSIC
//     path: sounds/music.wav
//     loop: true
type SoundResource struct {
	ID   string `yaml:"id"`             // Resource ID (unique identifier)
	Path string `yaml:"path"`           // Relative file path from base_path
	Loop bool   `yaml:"loop,omitempty"` // Whether the clip loops forever
}

// FontResource represents a single TrueType/OpenType font definition.
// The face size is chosen by the caller when the font is used.
//
// Example:
//   - id: FONT_SUBATOMIC
//     path: graphics/subatomic.ttf
type FontResource struct {
	ID   string `yaml:"id"`   // Resource ID (unique identifier)
	Path string `yaml:"path"` // Relative file path from base_path
}

// buildFullPath constructs the full file path for a resource.
// It combines the base path with the resource's relative path.
//
// Parameters:
//   - basePath: The base path from ResourceConfig (e.g., "assets")
//   - relativePath: The resource's relative path (e.g., "graphics/ship.png")
//
// Returns:
//   - The full file path (e.g., "assets/graphics/ship.png")
func buildFullPath(basePath, relativePath string) string {
	if basePath == "" {
		return relativePath
	}
	// Simple path joining - handles the case where relative path might start with /
	if len(relativePath) > 0 && relativePath[0] == '/' {
		return basePath + relativePath
	}
	return basePath + "/" + relativePath
}

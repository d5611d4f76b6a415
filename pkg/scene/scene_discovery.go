package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Identifier accepted by Create
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Type        string `json:"type"`        // "builtin" or "file"
	FilePath    string `json:"filePath"`    // Path to the TOML file (file type only)
}

type builtinScene struct {
	info    SceneInfo
	factory func() *Scene
}

var builtinScenes = []builtinScene{
	{
		info: SceneInfo{
			ID:          "single",
			DisplayName: "Single Sphere",
			Description: "One matte ivory sphere and one light",
		},
		factory: NewSingleSphereScene,
	},
	{
		info: SceneInfo{
			ID:          "default",
			DisplayName: "Default Scene",
			Description: "Ivory and red rubber spheres under three lights",
		},
		factory: NewDefaultScene,
	},
	{
		info: SceneInfo{
			ID:          "mirror",
			DisplayName: "Mirror Spheres",
			Description: "Default layout with mirror spheres, reflections and shadows",
		},
		factory: NewMirrorScene,
	},
	{
		info: SceneInfo{
			ID:          "empty",
			DisplayName: "Empty Scene",
			Description: "No spheres or lights; renders the background only",
		},
		factory: NewEmptyScene,
	},
}

// DefaultSceneDirs are searched, in order, for scene files referenced by name
var DefaultSceneDirs = []string{"scenes", "../scenes"}

// Create builds a scene by built-in name, by path to a .toml file, or by the
// name of a .toml file in one of the scene directories
func Create(name string, sceneDirs ...string) (*Scene, error) {
	if name == "" {
		return nil, fmt.Errorf("scene name is required")
	}

	for _, b := range builtinScenes {
		if b.info.ID == name {
			return b.factory(), nil
		}
	}

	if strings.HasSuffix(name, ".toml") {
		return Load(name)
	}

	if len(sceneDirs) == 0 {
		sceneDirs = DefaultSceneDirs
	}
	for _, dir := range sceneDirs {
		path := filepath.Join(dir, name+".toml")
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}

	return nil, fmt.Errorf("unknown scene: %s", name)
}

// ListScenes returns the built-in scenes followed by the scene files found in
// the first existing scene directory
func ListScenes(sceneDirs ...string) ([]SceneInfo, error) {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for _, b := range builtinScenes {
		info := b.info
		info.Type = "builtin"
		scenes = append(scenes, info)
	}

	if len(sceneDirs) == 0 {
		sceneDirs = DefaultSceneDirs
	}
	var scenesDir string
	for _, dir := range sceneDirs {
		if _, err := os.Stat(dir); err == nil {
			scenesDir = dir
			break
		}
	}
	if scenesDir == "" {
		return scenes, nil
	}

	files, err := filepath.Glob(filepath.Join(scenesDir, "*.toml"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}
	sort.Strings(files)

	for _, path := range files {
		id := strings.TrimSuffix(filepath.Base(path), ".toml")
		scenes = append(scenes, SceneInfo{
			ID:          id,
			DisplayName: titleCase(id),
			Type:        "file",
			FilePath:    path,
		})
	}

	return scenes, nil
}

// titleCase converts a filename-style string to title case
// e.g., "two-mirrors" -> "Two Mirrors"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}

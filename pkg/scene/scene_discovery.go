package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrUnknownScene is returned when a scene name resolves to neither a built-in
// scene nor a JSON scene file
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID       string `json:"id"`       // Name accepted by CreateScene
	Type     string `json:"type"`     // "builtin" or "json"
	FilePath string `json:"filePath"` // Path to the JSON file (json type only)
}

// builtinScenes maps scene names to their constructors
var builtinScenes = map[string]func() *Scene{
	"default": NewDefaultScene,
}

// scenesDirs lists the directories searched for JSON scene files
var scenesDirs = []string{"scenes", "../scenes"}

// ListScenes returns the built-in scenes followed by the JSON scenes found in
// the scenes directory, each group sorted by ID
func ListScenes() ([]SceneInfo, error) {
	var scenes []SceneInfo
	for name := range builtinScenes {
		scenes = append(scenes, SceneInfo{ID: name, Type: "builtin"})
	}
	sort.Slice(scenes, func(i, j int) bool { return scenes[i].ID < scenes[j].ID })

	dir := findScenesDir()
	if dir == "" {
		return scenes, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}
	sort.Strings(files)

	for _, filePath := range files {
		scenes = append(scenes, SceneInfo{
			ID:       strings.TrimSuffix(filepath.Base(filePath), ".json"),
			Type:     "json",
			FilePath: filePath,
		})
	}
	return scenes, nil
}

// CreateScene resolves a scene by built-in name, by JSON file path, or by the
// base name of a file in the scenes directory
func CreateScene(name string) (*Scene, error) {
	if constructor, ok := builtinScenes[name]; ok {
		return constructor(), nil
	}

	if strings.HasSuffix(name, ".json") {
		return LoadScene(name)
	}

	if name != "" {
		if dir := findScenesDir(); dir != "" {
			path := filepath.Join(dir, name+".json")
			if _, err := os.Stat(path); err == nil {
				return LoadScene(path)
			}
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
}

func findScenesDir() string {
	for _, path := range scenesDirs {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return path
		}
	}
	return ""
}

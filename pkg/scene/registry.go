package scene

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/df07/go-anytime-raytracer/pkg/renderer"
)

// ErrUnknownScene is returned by Lookup for names not in the registry
var ErrUnknownScene = errors.New("unknown scene")

// Options parameterize scene construction
type Options struct {
	Seed        int64                 // Layout seed for generated scenes
	TexturePath string                // Image for textured scenes; empty uses a checkerboard
	Camera      renderer.CameraConfig // Non-zero fields override the scene camera
}

// SceneInfo describes a registered scene
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier, used with Lookup
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

const (
	builtInGroup   = "Built-in Scenes"
	generatedGroup = "Generated Scenes"
)

type registryEntry struct {
	info  SceneInfo
	build func(Options) (*Scene, error)
}

var registry = []registryEntry{
	{
		info: SceneInfo{ID: "default", Description: "Diffuse sphere on a large ground sphere", Group: builtInGroup},
		build: func(o Options) (*Scene, error) {
			return NewDefaultScene(o.Camera), nil
		},
	},
	{
		info: SceneInfo{ID: "materials", Description: "Glass, textured and metal spheres side by side", Group: builtInGroup},
		build: func(o Options) (*Scene, error) {
			return NewMaterialsScene(o.TexturePath, o.Camera)
		},
	},
	{
		info: SceneInfo{ID: "mirrors", Description: "Perfect mirror spheres on a mirrored ground", Group: builtInGroup},
		build: func(o Options) (*Scene, error) {
			return NewMirrorScene(o.Camera), nil
		},
	},
	{
		info: SceneInfo{ID: "texture", Description: "Textured panel and spheres", Group: builtInGroup},
		build: func(o Options) (*Scene, error) {
			return NewTextureScene(o.TexturePath, o.Camera)
		},
	},
	{
		info: SceneInfo{ID: "poisson", Description: "Glass spheres with Poisson-disc spacing and one odd sphere out", Group: generatedGroup},
		build: func(o Options) (*Scene, error) {
			return NewPoissonScene(o.Seed, o.Camera), nil
		},
	},
}

// Names returns the registered scene identifiers in registration order
func Names() []string {
	names := make([]string, len(registry))
	for i, entry := range registry {
		names[i] = entry.info.ID
	}
	return names
}

// Lookup builds the named scene. Names are matched case-insensitively.
func Lookup(name string, options Options) (*Scene, error) {
	id := strings.ToLower(strings.TrimSpace(name))
	for _, entry := range registry {
		if entry.info.ID != id {
			continue
		}
		s, err := entry.build(options)
		if err != nil {
			return nil, fmt.Errorf("failed to build scene %q: %w", id, err)
		}
		return s, nil
	}
	return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownScene, name, strings.Join(Names(), ", "))
}

// ListScenes returns metadata for every registered scene
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, len(registry))
	for i, entry := range registry {
		info := entry.info
		info.DisplayName = titleCase(info.ID)
		scenes[i] = info
	}
	return scenes
}

// ListAllScenes returns the registered scenes grouped by category, built-in scenes first
func ListAllScenes() ScenesResponse {
	var response ScenesResponse

	groupMap := make(map[string][]SceneInfo)
	for _, info := range ListScenes() {
		groupMap[info.Group] = append(groupMap[info.Group], info)
	}

	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtInGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	if scenes, exists := groupMap[builtInGroup]; exists {
		response.Groups = append(response.Groups, SceneGroup{Name: builtInGroup, Scenes: scenes})
	}
	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{Name: groupName, Scenes: groupMap[groupName]})
	}

	return response
}

// titleCase converts an identifier to title case
// e.g., "cornell-empty" -> "Cornell Empty"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}

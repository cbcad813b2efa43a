package scene

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownScene is returned by Load for an unregistered scene ID
var ErrUnknownScene = errors.New("scene: unknown scene")

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description

	build func(aspectRatio float64) *Scene
}

var builtins = map[string]SceneInfo{
	"cornell": {
		ID:          "cornell",
		DisplayName: "Cornell Box",
		Description: "Cornell box with a mirror and a diffuse sphere under an area light",
		build:       NewCornellScene,
	},
	"cornell-mesh": {
		ID:          "cornell-mesh",
		DisplayName: "Cornell Box (mesh)",
		Description: "Cornell box around a smooth triangle-mesh sphere under a point light",
		build:       NewCornellMeshScene,
	},
	"sphere-grid": {
		ID:          "sphere-grid",
		DisplayName: "Sphere Grid",
		Description: "10x10 spheres on a ground plane under sky and sun",
		build:       NewSphereGridScene,
	},
	"enclosure": {
		ID:          "enclosure",
		DisplayName: "Emissive Enclosure",
		Description: "Camera inside a uniformly emissive sphere (zero variance)",
		build:       NewEnclosureScene,
	},
}

// List returns the built-in scenes sorted by ID
func List() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtins))
	for _, info := range builtins {
		scenes = append(scenes, info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// Load builds the built-in scene with the given ID
func Load(id string, aspectRatio float64) (*Scene, error) {
	info, ok := builtins[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, id)
	}
	return info.build(aspectRatio), nil
}

package loaders

import (
	"fmt"
	"strings"

	"github.com/df07/go-pathtracer/pkg/scene"
)

// ResolveScene creates a scene from a built-in ID or a "file:<name>" ID found in dir
func ResolveScene(id, dir string) (*scene.Scene, error) {
	if !strings.HasPrefix(id, scene.FilePrefix) {
		return scene.CreateScene(id)
	}

	info, err := scene.FindScene(id, dir)
	if err != nil {
		return nil, err
	}
	sc, err := LoadScene(info.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load scene %s: %w", id, err)
	}
	return sc, nil
}

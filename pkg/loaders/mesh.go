package loaders

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// MeshExtensions lists the file extensions LoadMesh understands
var MeshExtensions = []string{".obj", ".ply"}

// IsMeshFile reports whether path has a supported mesh extension
func IsMeshFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range MeshExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// LoadMesh loads an OBJ or PLY file as a group of triangles
func LoadMesh(path string) (*geometry.Object, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		result, err := LoadOBJ(path)
		if err != nil {
			return nil, err
		}
		return result.ToGroup(), nil
	case ".ply":
		data, err := LoadPLY(path)
		if err != nil {
			return nil, err
		}
		return data.ToGroup(), nil
	default:
		return nil, fmt.Errorf("unsupported mesh format: %s", path)
	}
}

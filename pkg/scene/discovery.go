package scene

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/loaders"
)

const (
	builtinGroup = "Built-in Scenes"
	meshGroup    = "Mesh Scenes"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Scene name
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "mesh"
	FilePath    string `json:"filePath"`    // Path to the mesh file (mesh type only)
	Variant     string `json:"variant"`     // Variant name (optional)
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

// BuiltinScenes describes the scenes New can build
func BuiltinScenes() []SceneInfo {
	infos := make([]SceneInfo, 0, len(builtins))
	for _, s := range builtins {
		infos = append(infos, SceneInfo{
			ID:          s.id,
			Name:        s.name,
			DisplayName: s.name,
			Description: s.description,
			Group:       builtinGroup,
			Type:        "builtin",
		})
	}
	return infos
}

// ListMeshScenes scans dir for OBJ and PLY files. A missing directory yields
// no scenes rather than an error.
func ListMeshScenes(dir string) ([]SceneInfo, error) {
	if dir == "" {
		return []SceneInfo{}, nil
	}
	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan mesh directory: %w", err)
	}

	scenes := []SceneInfo{}
	for _, entry := range entries {
		if entry.IsDir() || !loaders.IsMeshFile(entry.Name()) {
			continue
		}
		filePath := filepath.Join(dir, entry.Name())
		sceneInfo, err := ParseMeshMetadata(filePath)
		if err != nil {
			// Keep the fallback values and move on
			fmt.Printf("Warning: failed to parse metadata for %s: %v\n", filePath, err)
		}
		scenes = append(scenes, sceneInfo)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// ParseMeshMetadata extracts Scene, Variant, Description and Group entries
// from the header comments of an OBJ ("# Key: value") or PLY
// ("comment Key: value") file
func ParseMeshMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	ext := strings.ToLower(filepath.Ext(filename))
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	sceneInfo := SceneInfo{
		ID:          fmt.Sprintf("mesh:%s%s", nameWithoutExt, ext),
		Name:        titleCase(nameWithoutExt),
		DisplayName: titleCase(nameWithoutExt),
		Group:       meshGroup,
		Type:        "mesh",
		FilePath:    filePath,
	}

	file, err := os.Open(filePath)
	if err != nil {
		return sceneInfo, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		var content string
		if ext == ".ply" {
			if line == "end_header" {
				break
			}
			if !strings.HasPrefix(line, "comment ") {
				continue
			}
			content = strings.TrimSpace(strings.TrimPrefix(line, "comment "))
		} else {
			if line == "" {
				continue
			}
			// Metadata only lives in the leading comment block
			if !strings.HasPrefix(line, "#") {
				break
			}
			content = strings.TrimSpace(strings.TrimPrefix(line, "#"))
		}

		if key, value, ok := strings.Cut(content, ":"); ok {
			value = strings.TrimSpace(value)
			switch key {
			case "Scene":
				sceneInfo.Name = value
			case "Variant":
				sceneInfo.Variant = value
			case "Description":
				sceneInfo.Description = value
			case "Group":
				sceneInfo.Group = value
			}
		}
	}

	if sceneInfo.Variant != "" {
		sceneInfo.DisplayName = fmt.Sprintf("%s - %s", sceneInfo.Name, sceneInfo.Variant)
	} else {
		sceneInfo.DisplayName = sceneInfo.Name
	}

	return sceneInfo, scanner.Err()
}

// ListAllScenes returns built-in and mesh scenes, built-ins first and the
// other groups alphabetically
func ListAllScenes(meshDir string) (ScenesResponse, error) {
	var response ScenesResponse

	meshScenes, err := ListMeshScenes(meshDir)
	if err != nil {
		return response, fmt.Errorf("failed to list mesh scenes: %w", err)
	}

	allScenes := append(BuiltinScenes(), meshScenes...)

	groupMap := make(map[string][]SceneInfo)
	for _, s := range allScenes {
		groupMap[s.Group] = append(groupMap[s.Group], s)
	}

	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtinGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	response.Groups = append(response.Groups, SceneGroup{
		Name:   builtinGroup,
		Scenes: groupMap[builtinGroup],
	})
	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   groupName,
			Scenes: groupMap[groupName],
		})
	}

	return response, nil
}

// Find resolves a scene ID from ListAllScenes
func Find(id, meshDir string) (SceneInfo, error) {
	response, err := ListAllScenes(meshDir)
	if err != nil {
		return SceneInfo{}, err
	}
	for _, group := range response.Groups {
		for _, s := range group.Scenes {
			if s.ID == id {
				return s, nil
			}
		}
	}
	return SceneInfo{}, fmt.Errorf("%w: %q", ErrUnknownScene, id)
}

// Load builds the scene described by info
func Load(info SceneInfo, size int) (*Scene, error) {
	if info.Type == "mesh" {
		return NewMeshScene(info.FilePath, size)
	}
	return New(info.ID, size)
}

// NewMeshScene loads an OBJ or PLY file and stands it on a checkered floor
func NewMeshScene(path string, size int) (*Scene, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid canvas size %d", size)
	}
	mesh, err := loaders.LoadMesh(path)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	b := newBuilder(name, size, math.Pi/3)
	meshScene(b, mesh)
	return b.build()
}

// titleCase converts a filename-style string to title case
// e.g., "utah-teapot" -> "Utah Teapot"
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

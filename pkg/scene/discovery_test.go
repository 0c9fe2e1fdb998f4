package scene

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testPLY = `ply
format ascii 1.0
comment Scene: Flat Square
comment Group: Test Meshes
element vertex 4
property float x
property float y
property float z
element face 1
property list uchar int vertex_indices
end_header
0 0 0
1 0 0
1 1 0
0 1 0
4 0 1 2 3
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"utah-teapot", "Utah Teapot"},
		{"stanford_bunny", "Stanford Bunny"},
		{"my-custom-mesh", "My Custom Mesh"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

func TestParseMeshMetadata(t *testing.T) {
	testCases := []struct {
		name     string
		content  string
		expected SceneInfo
	}{
		{
			name: "complete_metadata.obj",
			content: `# Scene: Teapot
# Variant: Low Poly
# Description: The classic teapot
# Group: Kitchen

v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3`,
			expected: SceneInfo{
				ID:          "mesh:complete_metadata.obj",
				Name:        "Teapot",
				DisplayName: "Teapot - Low Poly",
				Description: "The classic teapot",
				Group:       "Kitchen",
				Type:        "mesh",
				Variant:     "Low Poly",
			},
		},
		{
			name: "partial_metadata.obj",
			content: `# Scene: Bunny
# Description: Stanford bunny

v 0 0 0`,
			expected: SceneInfo{
				ID:          "mesh:partial_metadata.obj",
				Name:        "Bunny",
				DisplayName: "Bunny",
				Description: "Stanford bunny",
				Group:       "Mesh Scenes", // Default group
				Type:        "mesh",
			},
		},
		{
			name:    "no_metadata.obj",
			content: "v 0 0 0\n# Scene: Too Late\n",
			expected: SceneInfo{
				ID:          "mesh:no_metadata.obj",
				Name:        "No Metadata", // From filename
				DisplayName: "No Metadata",
				Group:       "Mesh Scenes",
				Type:        "mesh",
			},
		},
		{
			name:    "flat_square.ply",
			content: testPLY,
			expected: SceneInfo{
				ID:          "mesh:flat_square.ply",
				Name:        "Flat Square",
				DisplayName: "Flat Square",
				Group:       "Test Meshes",
				Type:        "mesh",
			},
		},
	}

	dir := t.TempDir()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, dir, tc.name, tc.content)

			result, err := ParseMeshMetadata(path)
			if err != nil {
				t.Fatalf("ParseMeshMetadata() error: %v", err)
			}

			tc.expected.FilePath = path

			if result.ID != tc.expected.ID {
				t.Errorf("ID = %q, want %q", result.ID, tc.expected.ID)
			}
			if result.Name != tc.expected.Name {
				t.Errorf("Name = %q, want %q", result.Name, tc.expected.Name)
			}
			if result.DisplayName != tc.expected.DisplayName {
				t.Errorf("DisplayName = %q, want %q", result.DisplayName, tc.expected.DisplayName)
			}
			if result.Description != tc.expected.Description {
				t.Errorf("Description = %q, want %q", result.Description, tc.expected.Description)
			}
			if result.Group != tc.expected.Group {
				t.Errorf("Group = %q, want %q", result.Group, tc.expected.Group)
			}
			if result.Type != tc.expected.Type {
				t.Errorf("Type = %q, want %q", result.Type, tc.expected.Type)
			}
			if result.Variant != tc.expected.Variant {
				t.Errorf("Variant = %q, want %q", result.Variant, tc.expected.Variant)
			}
			if result.FilePath != tc.expected.FilePath {
				t.Errorf("FilePath = %q, want %q", result.FilePath, tc.expected.FilePath)
			}
		})
	}
}

func TestParseMeshMetadata_MissingFile(t *testing.T) {
	result, err := ParseMeshMetadata(filepath.Join(t.TempDir(), "missing.obj"))
	if err == nil {
		t.Error("Expected an error for a missing file")
	}
	// Fallback values are still filled in
	if result.ID != "mesh:missing.obj" || result.DisplayName != "Missing" {
		t.Errorf("Unexpected fallback info: %+v", result)
	}
}

func TestListMeshScenes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "zebra.obj", "# Scene: Zebra\nv 0 0 0\n")
	writeFile(t, dir, "apple.ply", testPLY)
	writeFile(t, dir, "notes.txt", "not a mesh")
	if err := os.Mkdir(filepath.Join(dir, "nested.obj"), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	scenes, err := ListMeshScenes(dir)
	if err != nil {
		t.Fatalf("ListMeshScenes() error: %v", err)
	}
	if len(scenes) != 2 {
		t.Fatalf("Expected 2 scenes, got %d: %+v", len(scenes), scenes)
	}
	// Sorted by display name
	if scenes[0].DisplayName != "Flat Square" || scenes[1].DisplayName != "Zebra" {
		t.Errorf("Unexpected order: %q, %q", scenes[0].DisplayName, scenes[1].DisplayName)
	}
}

func TestListMeshScenes_MissingDirectory(t *testing.T) {
	for _, dir := range []string{"", filepath.Join(t.TempDir(), "does-not-exist")} {
		scenes, err := ListMeshScenes(dir)
		if err != nil {
			t.Errorf("ListMeshScenes(%q) error: %v", dir, err)
		}
		if scenes == nil || len(scenes) != 0 {
			t.Errorf("ListMeshScenes(%q) = %v, expected empty slice", dir, scenes)
		}
	}
}

func TestListAllScenes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "square.ply", testPLY)
	writeFile(t, dir, "tetra.obj", "# Scene: Tetra\nv 0 0 0\n")

	response, err := ListAllScenes(dir)
	if err != nil {
		t.Fatalf("ListAllScenes() error: %v", err)
	}

	expectedGroups := []string{"Built-in Scenes", "Mesh Scenes", "Test Meshes"}
	if len(response.Groups) != len(expectedGroups) {
		t.Fatalf("Groups count = %d, want %d", len(response.Groups), len(expectedGroups))
	}
	for i, name := range expectedGroups {
		if response.Groups[i].Name != name {
			t.Errorf("Group %d = %q, want %q", i, response.Groups[i].Name, name)
		}
	}

	if got := len(response.Groups[0].Scenes); got != len(Names()) {
		t.Errorf("Built-in scenes count = %d, want %d", got, len(Names()))
	}

	for _, group := range response.Groups {
		for _, s := range group.Scenes {
			if s.ID == "" || s.DisplayName == "" {
				t.Errorf("Scene missing ID or DisplayName: %+v", s)
			}
			if s.Type != "builtin" && s.Type != "mesh" {
				t.Errorf("Invalid scene type: %s", s.Type)
			}
			if s.Type == "mesh" && (s.FilePath == "" || !strings.HasPrefix(s.ID, "mesh:")) {
				t.Errorf("Mesh scene should have a file path and a mesh: ID: %+v", s)
			}
		}
	}
}

func TestFindAndLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "square.ply", testPLY)

	info, err := Find("mesh:square.ply", dir)
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	s, err := Load(info, 10)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if s.Name != "square" || len(s.World.Objects) != 2 {
		t.Errorf("Unexpected mesh scene %q with %d objects", s.Name, len(s.World.Objects))
	}

	info, err = Find("cube", dir)
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	if s, err = Load(info, 10); err != nil || s.Name != "cube" {
		t.Errorf("Load(cube) = %v, %v", s, err)
	}

	if _, err := Find("mesh:missing.obj", dir); !errors.Is(err, ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
}

func TestNewMeshScene_Errors(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "square.ply", testPLY)

	if _, err := NewMeshScene(path, 0); err == nil {
		t.Error("Expected an error for a zero size")
	}
	if _, err := NewMeshScene(filepath.Join(dir, "missing.obj"), 10); err == nil {
		t.Error("Expected an error for a missing file")
	}
}

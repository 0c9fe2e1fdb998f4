package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// DefaultOBJGroup names the group that collects faces before any "g" line
const DefaultOBJGroup = ""

// OBJGroup is a named set of triangles from an OBJ file
type OBJGroup struct {
	Name      string
	Triangles []*geometry.Object
}

// OBJResult holds everything recognized in a Wavefront OBJ file
type OBJResult struct {
	Vertices []core.Tuple // "v" lines in file order; file index i is Vertices[i-1]
	Normals  []core.Tuple // "vn" lines in file order
	Groups   []*OBJGroup  // Default group first, then in order of first appearance
	Ignored  int          // Lines that were unrecognized or malformed
	Material material.Material

	current *OBJGroup
}

// objVertex is one resolved face reference
type objVertex struct {
	point     core.Tuple
	normal    core.Tuple
	hasNormal bool
}

// LoadOBJ parses the OBJ file at path
func LoadOBJ(path string) (*OBJResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open OBJ file: %w", err)
	}
	defer file.Close()

	result, err := ParseOBJ(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return result, nil
}

// ParseOBJ reads vertices, vertex normals, faces and groups. Faces are
// fan-triangulated about their first vertex. Unrecognized or malformed lines
// are counted in Ignored; only read errors are returned.
func ParseOBJ(r io.Reader) (*OBJResult, error) {
	result := &OBJResult{Material: material.Default()}
	result.current = &OBJGroup{Name: DefaultOBJGroup}
	result.Groups = []*OBJGroup{result.current}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		var ok bool
		switch fields[0] {
		case "v":
			var p core.Tuple
			if p, ok = parseOBJTriple(fields[1:]); ok {
				result.Vertices = append(result.Vertices, core.Point(p.X, p.Y, p.Z))
			}
		case "vn":
			var n core.Tuple
			if n, ok = parseOBJTriple(fields[1:]); ok {
				result.Normals = append(result.Normals, core.Vector(n.X, n.Y, n.Z))
			}
		case "f":
			ok = result.addFace(fields[1:])
		case "g":
			if len(fields) > 1 {
				result.useGroup(strings.Join(fields[1:], " "))
				ok = true
			}
		}

		if !ok {
			result.Ignored++
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading OBJ data: %w", err)
	}

	return result, nil
}

// parseOBJTriple parses exactly three floats
func parseOBJTriple(args []string) (core.Tuple, bool) {
	if len(args) != 3 {
		return core.Tuple{}, false
	}
	var v [3]float64
	for i, arg := range args {
		f, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return core.Tuple{}, false
		}
		v[i] = f
	}
	return core.Vector(v[0], v[1], v[2]), true
}

func (r *OBJResult) useGroup(name string) {
	if g := r.Group(name); g != nil {
		r.current = g
		return
	}
	r.current = &OBJGroup{Name: name}
	r.Groups = append(r.Groups, r.current)
}

// addFace resolves the references of an "f" line and appends its triangles.
// A face with fewer than three vertices or any bad reference is rejected whole.
func (r *OBJResult) addFace(args []string) bool {
	if len(args) < 3 {
		return false
	}

	vertices := make([]objVertex, 0, len(args))
	for _, arg := range args {
		v, ok := r.resolve(arg)
		if !ok {
			return false
		}
		vertices = append(vertices, v)
	}

	for i := 1; i+1 < len(vertices); i++ {
		a, b, c := vertices[0], vertices[i], vertices[i+1]
		var tri *geometry.Object
		if a.hasNormal && b.hasNormal && c.hasNormal {
			tri = geometry.NewSmoothTriangle(a.point, b.point, c.point, a.normal, b.normal, c.normal)
		} else {
			tri = geometry.NewTriangle(a.point, b.point, c.point)
		}
		r.current.Triangles = append(r.current.Triangles, tri)
	}
	return true
}

// resolve parses one face reference: i, i/t, i/t/n or i//n
func (r *OBJResult) resolve(ref string) (objVertex, bool) {
	parts := strings.Split(ref, "/")
	if len(parts) > 3 {
		return objVertex{}, false
	}

	vi, ok := objIndex(parts[0], len(r.Vertices))
	if !ok {
		return objVertex{}, false
	}
	v := objVertex{point: r.Vertices[vi]}

	if len(parts) == 3 && parts[2] != "" {
		ni, ok := objIndex(parts[2], len(r.Normals))
		if !ok {
			return objVertex{}, false
		}
		v.normal = r.Normals[ni]
		v.hasNormal = true
	}
	return v, true
}

// objIndex converts a 1-based (or negative, relative) OBJ index to a slice index
func objIndex(s string, n int) (int, bool) {
	i, err := strconv.Atoi(s)
	if err != nil || i == 0 {
		return 0, false
	}
	if i < 0 {
		i = n + i
	} else {
		i--
	}
	return i, i >= 0 && i < n
}

// Group returns the named group, or nil if the file never declared it
func (r *OBJResult) Group(name string) *OBJGroup {
	for _, g := range r.Groups {
		if g.Name == name {
			return g
		}
	}
	return nil
}

// DefaultGroup returns the group holding faces declared before any "g" line
func (r *OBJResult) DefaultGroup() *OBJGroup {
	return r.Groups[0]
}

// TriangleCount returns the number of triangles across all groups
func (r *OBJResult) TriangleCount() int {
	count := 0
	for _, g := range r.Groups {
		count += len(g.Triangles)
	}
	return count
}

// ToGroup nests every OBJ group, as a group of its triangles, inside a single
// group. Triangles take the result's Material.
func (r *OBJResult) ToGroup() *geometry.Object {
	children := make([]*geometry.Object, 0, len(r.Groups))
	for _, g := range r.Groups {
		for _, tri := range g.Triangles {
			tri.Material = r.Material
		}
		children = append(children, geometry.NewGroup(g.Triangles...))
	}
	return geometry.NewGroup(children...)
}

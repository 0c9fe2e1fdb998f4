package loaders

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// PLYHeader represents the parsed header information from a PLY file
type PLYHeader struct {
	Format   string // "binary_little_endian", "binary_big_endian", or "ascii"
	Version  string // Usually "1.0"
	Elements []PLYElement
	Comments []string

	VertexCount int
	FaceCount   int
}

// PLYElement is one element block declared in the header
type PLYElement struct {
	Name       string
	Count      int
	Properties []PLYProperty
}

// PLYProperty represents a property definition in the PLY header
type PLYProperty struct {
	Name     string
	Type     string
	IsList   bool
	ListType string // For list properties, the type of the count
	DataType string // For list properties, the type of the data
}

// PLYData contains the vertex and face data loaded from a PLY file
type PLYData struct {
	Header   *PLYHeader
	Vertices []core.Tuple // Vertex positions as points
	Normals  []core.Tuple // Per-vertex normals - empty if not present
	Faces    [][]int      // Vertex indices per face (0-based), any arity >= 3
}

// LoadPLY loads a PLY file and returns its vertex and face data
func LoadPLY(filename string) (*PLYData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	data, err := ParsePLY(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return data, nil
}

// ParsePLY reads ascii, binary_little_endian or binary_big_endian PLY data
func ParsePLY(r io.Reader) (*PLYData, error) {
	reader := bufio.NewReader(r)

	header, err := parsePLYHeader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PLY header: %w", err)
	}

	var values plyValueReader
	switch header.Format {
	case "ascii":
		scanner := bufio.NewScanner(reader)
		scanner.Split(bufio.ScanWords)
		values = &asciiValueReader{scanner: scanner}
	case "binary_little_endian":
		values = &binaryValueReader{r: reader, order: binary.LittleEndian}
	case "binary_big_endian":
		values = &binaryValueReader{r: reader, order: binary.BigEndian}
	default:
		return nil, fmt.Errorf("unsupported PLY format: %s", header.Format)
	}

	data := &PLYData{
		Header:   header,
		Vertices: make([]core.Tuple, 0, header.VertexCount),
		Faces:    make([][]int, 0, header.FaceCount),
	}

	for _, element := range header.Elements {
		switch element.Name {
		case "vertex":
			err = readPLYVertices(values, element, data)
		case "face":
			err = readPLYFaces(values, element, data)
		default:
			err = skipPLYElement(values, element)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read PLY %s data: %w", element.Name, err)
		}
	}

	for i, face := range data.Faces {
		for _, index := range face {
			if index < 0 || index >= len(data.Vertices) {
				return nil, fmt.Errorf("face %d references vertex %d of %d", i, index, len(data.Vertices))
			}
		}
	}

	return data, nil
}

// parsePLYHeader reads up to and including the end_header line
func parsePLYHeader(reader *bufio.Reader) (*PLYHeader, error) {
	header := &PLYHeader{}
	var current *PLYElement

	first := true
	for {
		line, err := reader.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			if err == io.EOF {
				return nil, fmt.Errorf("missing end_header")
			}
			return nil, fmt.Errorf("error reading header: %w", err)
		}
		line = strings.TrimSpace(line)

		if first {
			if line != "ply" {
				return nil, fmt.Errorf("not a PLY file")
			}
			first = false
			continue
		}
		if line == "end_header" {
			break
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "format":
			if len(parts) >= 3 {
				header.Format = parts[1]
				header.Version = parts[2]
			}
		case "comment", "obj_info":
			header.Comments = append(header.Comments, strings.TrimSpace(strings.TrimPrefix(line, parts[0])))
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid element definition: %q", line)
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("invalid element count: %s", parts[2])
			}
			header.Elements = append(header.Elements, PLYElement{Name: parts[1], Count: count})
			current = &header.Elements[len(header.Elements)-1]

			switch parts[1] {
			case "vertex":
				header.VertexCount = count
			case "face":
				header.FaceCount = count
			}
		case "property":
			if current == nil {
				return nil, fmt.Errorf("property before any element: %q", line)
			}
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, fmt.Errorf("failed to parse property: %w", err)
			}
			current.Properties = append(current.Properties, prop)
		}
	}

	return header, nil
}

// parsePLYProperty parses a property line from the PLY header
func parsePLYProperty(parts []string) (PLYProperty, error) {
	if len(parts) < 2 {
		return PLYProperty{}, fmt.Errorf("invalid property definition")
	}

	prop := PLYProperty{}

	if parts[0] == "list" {
		if len(parts) < 4 {
			return PLYProperty{}, fmt.Errorf("invalid list property definition")
		}
		prop.IsList = true
		prop.ListType = parts[1]
		prop.DataType = parts[2]
		prop.Name = parts[3]
	} else {
		prop.Type = parts[0]
		prop.Name = parts[1]
	}

	for _, typ := range []string{prop.Type, prop.ListType, prop.DataType} {
		if typ != "" && getTypeSize(typ) == 0 {
			return PLYProperty{}, fmt.Errorf("unsupported data type: %s", typ)
		}
	}

	return prop, nil
}

func readPLYVertices(values plyValueReader, element PLYElement, data *PLYData) error {
	index := make(map[string]int, len(element.Properties))
	for i, prop := range element.Properties {
		index[prop.Name] = i
	}
	hasNormals := hasAll(index, "nx", "ny", "nz")
	if !hasAll(index, "x", "y", "z") {
		return fmt.Errorf("vertex element needs x, y and z properties")
	}

	row := make([]float64, len(element.Properties))
	for i := 0; i < element.Count; i++ {
		for j, prop := range element.Properties {
			if prop.IsList {
				if err := skipPLYList(values, prop); err != nil {
					return fmt.Errorf("vertex %d: %w", i, err)
				}
				continue
			}
			v, err := values.read(prop.Type)
			if err != nil {
				return fmt.Errorf("vertex %d: %w", i, err)
			}
			row[j] = v
		}

		data.Vertices = append(data.Vertices, core.Point(row[index["x"]], row[index["y"]], row[index["z"]]))
		if hasNormals {
			data.Normals = append(data.Normals, core.Vector(row[index["nx"]], row[index["ny"]], row[index["nz"]]))
		}
	}
	return nil
}

func readPLYFaces(values plyValueReader, element PLYElement, data *PLYData) error {
	for i := 0; i < element.Count; i++ {
		for _, prop := range element.Properties {
			if !prop.IsList || (prop.Name != "vertex_indices" && prop.Name != "vertex_index") {
				if err := skipPLYProperty(values, prop); err != nil {
					return fmt.Errorf("face %d: %w", i, err)
				}
				continue
			}

			count, err := values.read(prop.ListType)
			if err != nil {
				return fmt.Errorf("face %d: %w", i, err)
			}
			if count < 3 {
				return fmt.Errorf("face %d has %d vertices", i, int(count))
			}

			face := make([]int, int(count))
			for j := range face {
				v, err := values.read(prop.DataType)
				if err != nil {
					return fmt.Errorf("face %d: %w", i, err)
				}
				face[j] = int(v)
			}
			data.Faces = append(data.Faces, face)
		}
	}
	return nil
}

func skipPLYElement(values plyValueReader, element PLYElement) error {
	for i := 0; i < element.Count; i++ {
		for _, prop := range element.Properties {
			if err := skipPLYProperty(values, prop); err != nil {
				return err
			}
		}
	}
	return nil
}

func skipPLYProperty(values plyValueReader, prop PLYProperty) error {
	if prop.IsList {
		return skipPLYList(values, prop)
	}
	_, err := values.read(prop.Type)
	return err
}

func skipPLYList(values plyValueReader, prop PLYProperty) error {
	count, err := values.read(prop.ListType)
	if err != nil {
		return err
	}
	for i := 0; i < int(count); i++ {
		if _, err := values.read(prop.DataType); err != nil {
			return err
		}
	}
	return nil
}

func hasAll(index map[string]int, names ...string) bool {
	for _, name := range names {
		if _, ok := index[name]; !ok {
			return false
		}
	}
	return true
}

// getTypeSize returns the size in bytes of a PLY data type, or 0 if unknown
func getTypeSize(dataType string) int {
	switch dataType {
	case "float", "float32", "int", "int32", "uint", "uint32":
		return 4
	case "double", "float64":
		return 8
	case "short", "int16", "ushort", "uint16":
		return 2
	case "char", "int8", "uchar", "uint8":
		return 1
	default:
		return 0
	}
}

// plyValueReader reads one scalar of the given PLY type
type plyValueReader interface {
	read(dataType string) (float64, error)
}

type asciiValueReader struct {
	scanner *bufio.Scanner
}

func (a *asciiValueReader) read(dataType string) (float64, error) {
	if !a.scanner.Scan() {
		if err := a.scanner.Err(); err != nil {
			return 0, err
		}
		return 0, io.ErrUnexpectedEOF
	}
	v, err := strconv.ParseFloat(a.scanner.Text(), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q", dataType, a.scanner.Text())
	}
	return v, nil
}

type binaryValueReader struct {
	r     io.Reader
	order binary.ByteOrder
	buf   [8]byte
}

func (b *binaryValueReader) read(dataType string) (float64, error) {
	size := getTypeSize(dataType)
	if size == 0 {
		return 0, fmt.Errorf("unsupported data type: %s", dataType)
	}
	buf := b.buf[:size]
	if _, err := io.ReadFull(b.r, buf); err != nil {
		return 0, err
	}

	switch dataType {
	case "float", "float32":
		return float64(math.Float32frombits(b.order.Uint32(buf))), nil
	case "double", "float64":
		return math.Float64frombits(b.order.Uint64(buf)), nil
	case "int", "int32":
		return float64(int32(b.order.Uint32(buf))), nil
	case "uint", "uint32":
		return float64(b.order.Uint32(buf)), nil
	case "short", "int16":
		return float64(int16(b.order.Uint16(buf))), nil
	case "ushort", "uint16":
		return float64(b.order.Uint16(buf)), nil
	case "char", "int8":
		return float64(int8(buf[0])), nil
	default: // uchar, uint8
		return float64(buf[0]), nil
	}
}

// ToGroup builds a group of triangles, fan-triangulating faces about their
// first vertex. Vertex normals, when present, produce smooth triangles.
func (d *PLYData) ToGroup() *geometry.Object {
	smooth := len(d.Normals) == len(d.Vertices) && len(d.Normals) > 0

	var triangles []*geometry.Object
	for _, face := range d.Faces {
		for i := 1; i+1 < len(face); i++ {
			a, b, c := face[0], face[i], face[i+1]
			if smooth {
				triangles = append(triangles, geometry.NewSmoothTriangle(
					d.Vertices[a], d.Vertices[b], d.Vertices[c],
					d.Normals[a], d.Normals[b], d.Normals[c]))
			} else {
				triangles = append(triangles, geometry.NewTriangle(d.Vertices[a], d.Vertices[b], d.Vertices[c]))
			}
		}
	}
	return geometry.NewGroup(triangles...)
}

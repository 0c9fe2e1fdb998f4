package scene

import (
	"math"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

var builtins = []builtin{
	{"default", "Default World", "Two concentric spheres lit from the upper left", buildDefault},
	{"spheres", "Spheres", "Three spheres in a corner made of flattened spheres", buildSpheres},
	{"plane", "Plane", "Three spheres on an infinite floor", buildPlane},
	{"pattern", "Patterns", "Stripe, gradient, ring and checker patterns", buildPattern},
	{"reflection", "Reflection", "Mirror and glass spheres over a reflective floor", buildReflection},
	{"cube", "Cubes", "A table of cubes inside a checkered cube room", buildCube},
	{"cylinder", "Cylinders", "Open, closed and tilted cylinders", buildCylinder},
	{"cone", "Cones", "Closed and double-napped cones", buildCone},
	{"hexagon", "Hexagon", "A hexagon of spheres and cylinders built from nested groups", buildHexagon},
	{"grouped-spheres", "Grouped Spheres", "A ring of spheres transformed as one group", buildGroupedSpheres},
	{"triangle", "Triangles", "A pyramid made of triangles", buildTriangle},
	{"object", "OBJ Object", "A tetrahedron parsed from OBJ text", buildObject},
}

func matte(color core.Color) material.Material {
	m := material.Default()
	m.Color = color
	m.Diffuse = 0.7
	m.Specular = 0.3
	return m
}

func standardLight(b *builder) {
	b.light(core.Point(-10, 10, -10), core.White)
}

func standardView(b *builder) {
	b.view(core.Point(0, 1.5, -5), core.Point(0, 1, 0), core.Vector(0, 1, 0))
}

// threeSpheres adds the large green, small lime and smallest yellow spheres
func threeSpheres(b *builder) (middle, right, left *geometry.Object) {
	middle = b.place(geometry.NewSphere(), core.Translation(-0.5, 1, 0.5))
	middle.Material = matte(core.NewColor(0.1, 1, 0.5))

	right = b.place(geometry.NewSphere(), core.Identity().Scale(0.5, 0.5, 0.5).Translate(1.5, 0.5, -0.5))
	right.Material = matte(core.NewColor(0.5, 1, 0.1))

	left = b.place(geometry.NewSphere(), core.Identity().Scale(0.33, 0.33, 0.33).Translate(-1.5, 0.33, -0.75))
	left.Material = matte(core.NewColor(1, 0.8, 0.1))

	b.add(middle, right, left)
	return middle, right, left
}

func checkeredFloor(b *builder) *geometry.Object {
	floor := geometry.NewPlane()
	floor.Material.Color = core.NewColor(1, 0.9, 0.9)
	floor.Material.Specular = 0
	floor.Material.Pattern = b.pattern(
		material.NewCheckers(core.NewColor(0.9, 0.9, 0.9), core.NewColor(0.2, 0.2, 0.25)),
		core.Identity(),
	)
	b.add(floor)
	return floor
}

func buildDefault(b *builder) {
	b.world = DefaultWorld()
	b.fieldOfView(math.Pi / 2)
	b.view(core.Point(0, 0, -5), core.Point(0, 0, 0), core.Vector(0, 1, 0))
}

func buildSpheres(b *builder) {
	wall := material.Default()
	wall.Color = core.NewColor(1, 0.9, 0.9)
	wall.Specular = 0

	floor := b.place(geometry.NewSphere(), core.Scaling(10, 0.01, 10))
	floor.Material = wall

	leftWall := b.place(geometry.NewSphere(),
		core.Identity().Scale(10, 0.01, 10).RotateX(math.Pi/2).RotateY(-math.Pi/4).Translate(0, 0, 5))
	leftWall.Material = wall

	rightWall := b.place(geometry.NewSphere(),
		core.Identity().Scale(10, 0.01, 10).RotateX(math.Pi/2).RotateY(math.Pi/4).Translate(0, 0, 5))
	rightWall.Material = wall

	b.add(floor, leftWall, rightWall)
	threeSpheres(b)
	standardLight(b)
	standardView(b)
}

func buildPlane(b *builder) {
	floor := geometry.NewPlane()
	floor.Material.Color = core.NewColor(1, 0.9, 0.9)
	floor.Material.Specular = 0

	backdrop := b.place(geometry.NewPlane(), core.Identity().RotateX(math.Pi/2).Translate(0, 0, 10))
	backdrop.Material = floor.Material

	b.add(floor, backdrop)
	threeSpheres(b)
	standardLight(b)
	standardView(b)
}

func buildPattern(b *builder) {
	checkeredFloor(b)
	middle, right, left := threeSpheres(b)

	middle.Material.Pattern = b.pattern(
		material.NewStripe(core.NewColor(0.1, 1, 0.5), core.NewColor(0.1, 0.4, 0.2)),
		core.Identity().Scale(0.2, 0.2, 0.2).RotateZ(math.Pi/4),
	)
	right.Material.Pattern = b.pattern(
		material.NewRing(core.NewColor(0.5, 1, 0.1), core.NewColor(0.9, 0.9, 0.9)),
		core.Identity().Scale(0.2, 0.2, 0.2).RotateX(math.Pi/2),
	)
	left.Material.Pattern = b.pattern(
		material.NewGradient(core.NewColor(1, 0.8, 0.1), core.NewColor(0.8, 0.1, 0.1)),
		core.Identity().Scale(2, 1, 1).Translate(-1, 0, 0),
	)

	standardLight(b)
	standardView(b)
}

func buildReflection(b *builder) {
	floor := checkeredFloor(b)
	floor.Material.Reflective = 0.3

	mirror := b.place(geometry.NewSphere(), core.Translation(-0.5, 1, 0.5))
	mirror.Material = matte(core.NewColor(0.1, 0.1, 0.1))
	mirror.Material.Specular = 1
	mirror.Material.Shininess = 300
	mirror.Material.Reflective = 0.9

	glass := b.place(geometry.NewGlassSphere(), core.Identity().Scale(0.6, 0.6, 0.6).Translate(1.2, 0.6, -0.8))
	glass.Material.Color = core.NewColor(0.05, 0.05, 0.1)
	glass.Material.Ambient = 0.1
	glass.Material.Diffuse = 0.1
	glass.Material.Specular = 1
	glass.Material.Shininess = 300
	glass.Material.Reflective = 0.9
	glass.Material.Transparency = 0.9
	glass.Material.RefractiveIndex = 1.52
	glass.CastsShadow = false

	bubble := b.place(geometry.NewGlassSphere(), core.Identity().Scale(0.3, 0.3, 0.3).Translate(1.2, 0.6, -0.8))
	bubble.Material = glass.Material
	bubble.Material.RefractiveIndex = 1.0000034
	bubble.CastsShadow = false

	small := b.place(geometry.NewSphere(), core.Identity().Scale(0.33, 0.33, 0.33).Translate(-1.5, 0.33, -0.75))
	small.Material = matte(core.NewColor(1, 0.8, 0.1))

	b.add(mirror, glass, bubble, small)
	standardLight(b)
	standardView(b)
}

func buildCube(b *builder) {
	room := b.place(geometry.NewCube(), core.Identity().Scale(10, 10, 10).Translate(0, 9.99, 0))
	room.Material.Specular = 0
	room.Material.Pattern = b.pattern(
		material.NewCheckers(core.NewColor(0.85, 0.85, 0.8), core.NewColor(0.4, 0.45, 0.5)),
		core.Scaling(0.1, 0.1, 0.1),
	)

	top := b.place(geometry.NewCube(), core.Identity().Scale(1.5, 0.05, 1).Translate(0, 1, 0))
	top.Material = matte(core.NewColor(0.55, 0.35, 0.2))

	legs := make([]*geometry.Object, 0, 4)
	for _, corner := range [][2]float64{{-1.4, -0.9}, {1.4, -0.9}, {-1.4, 0.9}, {1.4, 0.9}} {
		leg := b.place(geometry.NewCube(), core.Identity().Scale(0.05, 0.5, 0.05).Translate(corner[0], 0.5, corner[1]))
		leg.Material = top.Material
		legs = append(legs, leg)
	}

	red := b.place(geometry.NewCube(), core.Identity().Scale(0.2, 0.2, 0.2).RotateY(math.Pi/5).Translate(-0.6, 1.25, 0))
	red.Material = matte(core.NewColor(0.9, 0.2, 0.2))
	red.Material.Reflective = 0.2

	blue := b.place(geometry.NewCube(), core.Identity().Scale(0.3, 0.15, 0.3).RotateY(-math.Pi/8).Translate(0.5, 1.2, 0.2))
	blue.Material = matte(core.NewColor(0.2, 0.3, 0.9))

	b.add(room, top, red, blue)
	b.add(legs...)
	b.light(core.Point(-4, 8, -6), core.White)
	b.view(core.Point(0, 2.5, -5), core.Point(0, 1, 0), core.Vector(0, 1, 0))
}

func buildCylinder(b *builder) {
	checkeredFloor(b)

	closed := b.place(geometry.NewCylinder(0, 1.5, true), core.Identity().Scale(0.6, 1, 0.6).Translate(-1, 0, 0.5))
	closed.Material = matte(core.NewColor(0.2, 0.5, 0.9))

	open := b.place(geometry.NewCylinder(0, 1, false), core.Identity().Scale(0.5, 1, 0.5).Translate(1, 0, -0.5))
	open.Material = matte(core.NewColor(0.9, 0.6, 0.2))

	tilted := b.place(geometry.NewCylinder(-1, 1, true),
		core.Identity().Scale(0.15, 1, 0.15).RotateZ(math.Pi/2).RotateY(math.Pi/6).Translate(0.3, 0.15, -1.5))
	tilted.Material = matte(core.NewColor(0.8, 0.8, 0.8))
	tilted.Material.Reflective = 0.4

	b.add(closed, open, tilted)
	standardLight(b)
	standardView(b)
}

func buildCone(b *builder) {
	checkeredFloor(b)

	// Apex at the top, base resting on the floor
	closed := b.place(geometry.NewCone(-1, 0, true), core.Identity().Scale(0.7, 1.5, 0.7).Translate(-1, 1.5, 0.5))
	closed.Material = matte(core.NewColor(0.9, 0.3, 0.3))

	hourglass := b.place(geometry.NewCone(-1, 1, false), core.Identity().Scale(0.5, 0.75, 0.5).Translate(1, 0.75, -0.3))
	hourglass.Material = matte(core.NewColor(0.3, 0.8, 0.4))

	b.add(closed, hourglass)
	standardLight(b)
	standardView(b)
}

func hexagonCorner(b *builder) *geometry.Object {
	corner := b.place(geometry.NewSphere(), core.Identity().Scale(0.25, 0.25, 0.25).Translate(0, 0, -1))
	corner.Material = matte(core.NewColor(0.9, 0.2, 0.3))
	return corner
}

func hexagonEdge(b *builder) *geometry.Object {
	edge := b.place(geometry.NewCylinder(0, 1, false),
		core.Identity().Scale(0.25, 1, 0.25).RotateZ(-math.Pi/2).RotateY(-math.Pi/6).Translate(0, 0, -1))
	edge.Material = matte(core.NewColor(0.3, 0.4, 0.9))
	return edge
}

func buildHexagon(b *builder) {
	checkeredFloor(b)

	sides := make([]*geometry.Object, 0, 6)
	for n := 0; n < 6; n++ {
		side := b.group(core.RotationY(float64(n)*math.Pi/3), hexagonCorner(b), hexagonEdge(b))
		sides = append(sides, side)
	}
	hexagon := b.group(core.Identity().RotateX(-math.Pi/6).Translate(0, 1, 0), sides...)

	b.add(hexagon)
	standardLight(b)
	b.view(core.Point(0, 2.5, -4), core.Point(0, 1, 0), core.Vector(0, 1, 0))
}

func buildGroupedSpheres(b *builder) {
	checkeredFloor(b)

	const count = 8
	ring := make([]*geometry.Object, 0, count)
	for i := 0; i < count; i++ {
		angle := float64(i) * 2 * math.Pi / count
		s := b.place(geometry.NewSphere(), core.Identity().Scale(0.2, 0.2, 0.2).Translate(math.Cos(angle), 0, math.Sin(angle)))
		s.Material = matte(core.NewColor(0.5+0.5*math.Cos(angle), 0.5+0.5*math.Sin(angle), 0.6))
		ring = append(ring, s)
	}

	center := b.place(geometry.NewSphere(), core.Scaling(0.4, 0.4, 0.4))
	center.Material = matte(core.NewColor(0.9, 0.9, 0.9))
	center.Material.Reflective = 0.5

	inner := b.group(core.RotationX(math.Pi/8), ring...)
	outer := b.group(core.Identity().Scale(1.2, 1.2, 1.2).Translate(0, 1, 0), inner, center)

	b.add(outer)
	standardLight(b)
	standardView(b)
}

func buildTriangle(b *builder) {
	checkeredFloor(b)

	apex := core.Point(0, 1.5, 0)
	base := []core.Tuple{
		core.Point(-1, 0, -1),
		core.Point(1, 0, -1),
		core.Point(1, 0, 1),
		core.Point(-1, 0, 1),
	}
	colors := []core.Color{
		core.NewColor(0.9, 0.3, 0.3),
		core.NewColor(0.3, 0.9, 0.3),
		core.NewColor(0.3, 0.3, 0.9),
		core.NewColor(0.9, 0.9, 0.3),
	}

	faces := make([]*geometry.Object, 0, len(base))
	for i := range base {
		face := geometry.NewTriangle(apex, base[i], base[(i+1)%len(base)])
		face.Material = matte(colors[i])
		faces = append(faces, face)
	}

	b.add(b.group(core.RotationY(math.Pi/7), faces...))
	standardLight(b)
	standardView(b)
}

// tetrahedronOBJ is a unit tetrahedron used when no mesh file is given
const tetrahedronOBJ = `# Scene: Tetrahedron
v 0 1.632993 0
v -1 0 -0.57735
v 1 0 -0.57735
v 0 0 1.154701
g sides
f 1 2 3
f 1 3 4
f 1 4 2
g base
f 2 4 3
`

func buildObject(b *builder) {
	result, err := loaders.ParseOBJ(strings.NewReader(tetrahedronOBJ))
	if err != nil {
		b.fail(err)
		return
	}
	meshScene(b, result.ToGroup())
}

// meshScene scales a mesh to stand two units tall on a checkered floor
func meshScene(b *builder, mesh *geometry.Object) {
	checkeredFloor(b)

	m := matte(core.NewColor(1, 0.3, 0.2))
	m.Specular = 0.6
	setMaterial(mesh, m)
	b.add(b.place(mesh, fitTransform(mesh.Bounds(), 2)))

	standardLight(b)
	b.view(core.Point(0, 2.5, -5), core.Point(0, 1, 0), core.Vector(0, 1, 0))
}

// fitTransform centers bounds on the y axis, resting on y=0 with the largest
// extent scaled to size. Empty or unbounded boxes are left in place.
func fitTransform(bounds core.BoundingBox, size float64) core.Matrix4 {
	if bounds.IsEmpty() {
		return core.Identity()
	}
	extent := bounds.Max.Subtract(bounds.Min)
	largest := math.Max(extent.X, math.Max(extent.Y, extent.Z))
	if largest <= 0 || math.IsInf(largest, 0) || math.IsNaN(largest) {
		return core.Identity()
	}

	s := size / largest
	cx := (bounds.Min.X + bounds.Max.X) / 2
	cz := (bounds.Min.Z + bounds.Max.Z) / 2
	return core.Identity().Translate(-cx, -bounds.Min.Y, -cz).Scale(s, s, s)
}

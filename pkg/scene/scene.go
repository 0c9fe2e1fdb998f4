package scene

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// ErrUnknownScene is returned by New for names that are not built in
var ErrUnknownScene = errors.New("unknown scene")

// Scene pairs a world with the camera that views it
type Scene struct {
	Name   string
	World  *World
	Camera *renderer.Camera
}

// Render traces the scene in parallel tiles
func (s *Scene) Render(ctx context.Context, options renderer.RenderOptions) (*renderer.Canvas, renderer.RenderStats, error) {
	return renderer.Render(ctx, s.Camera, s.World, options)
}

// builder assembles a scene, keeping the first error from any transform
type builder struct {
	name   string
	world  *World
	camera *renderer.Camera
	err    error
}

func newBuilder(name string, size int, fov float64) *builder {
	return &builder{
		name:   name,
		world:  NewWorld(),
		camera: renderer.NewCamera(size, size, fov),
	}
}

func (b *builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// place sets an object's transform and returns the object
func (b *builder) place(obj *geometry.Object, m core.Matrix4) *geometry.Object {
	if err := obj.SetTransform(m); err != nil {
		b.fail(err)
	}
	return obj
}

// pattern wraps a texture with a transform
func (b *builder) pattern(texture material.Texture, m core.Matrix4) *material.Pattern {
	p := material.NewPattern(texture)
	if err := p.SetTransform(m); err != nil {
		b.fail(err)
	}
	return p
}

// group creates a transformed group of children
func (b *builder) group(m core.Matrix4, children ...*geometry.Object) *geometry.Object {
	return b.place(geometry.NewGroup(children...), m)
}

func (b *builder) light(position core.Tuple, intensity core.Color) {
	b.world.Light = lights.NewPointLight(position, intensity)
}

// fieldOfView replaces the camera; call it before view
func (b *builder) fieldOfView(fov float64) {
	b.camera = renderer.NewCamera(b.camera.HSize, b.camera.VSize, fov)
}

func (b *builder) view(from, to, up core.Tuple) {
	if err := b.camera.SetTransform(core.ViewTransform(from, to, up)); err != nil {
		b.fail(err)
	}
}

func (b *builder) add(objects ...*geometry.Object) {
	b.world.Add(objects...)
}

// build validates every material and returns the finished scene
func (b *builder) build() (*Scene, error) {
	if b.err != nil {
		return nil, fmt.Errorf("scene %q: %w", b.name, b.err)
	}
	for _, obj := range b.world.Objects {
		if err := validateMaterials(obj); err != nil {
			return nil, fmt.Errorf("scene %q: %w", b.name, err)
		}
	}
	return &Scene{Name: b.name, World: b.world, Camera: b.camera}, nil
}

func validateMaterials(obj *geometry.Object) error {
	if children := obj.Children(); children != nil {
		for _, child := range children {
			if err := validateMaterials(child); err != nil {
				return err
			}
		}
		return nil
	}
	return obj.Material.Validate()
}

// setMaterial applies m to every leaf below obj
func setMaterial(obj *geometry.Object, m material.Material) {
	if _, ok := obj.Shape.(*geometry.Group); ok {
		for _, child := range obj.Children() {
			setMaterial(child, m)
		}
		return
	}
	obj.Material = m
}

// builtin is a named scene constructor
type builtin struct {
	id          string
	name        string
	description string
	build       func(b *builder)
}

// Names returns the identifiers of the built-in scenes
func Names() []string {
	names := make([]string, len(builtins))
	for i, s := range builtins {
		names[i] = s.id
	}
	return names
}

// New builds the named built-in scene on a size x size canvas
func New(name string, size int) (*Scene, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid canvas size %d", size)
	}
	for _, s := range builtins {
		if s.id == name {
			b := newBuilder(s.id, size, math.Pi/3)
			s.build(b)
			return b.build()
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
}

package display

import (
	"image"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// Window shows a canvas that may still be filling in. Tiles are published
// with Update and copied to the screen on the next frame.
type Window struct {
	title  string
	width  int
	height int
	scale  int

	mu    sync.Mutex
	img   *image.RGBA
	dirty bool

	screenImg *ebiten.Image
}

// NewWindow creates a window for a width x height canvas, magnified by scale
func NewWindow(title string, width, height, scale int) *Window {
	if scale < 1 {
		scale = 1
	}
	return &Window{
		title:  title,
		width:  width,
		height: height,
		scale:  scale,
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// Update copies the pixels inside bounds from the canvas.
// Safe to call from render workers.
func (w *Window) Update(canvas *renderer.Canvas, bounds image.Rectangle) {
	r := bounds.Intersect(w.img.Bounds())
	// SubImage is anchored at the origin
	src := canvas.SubImage(r)
	r = r.Intersect(src.Bounds().Add(r.Min))

	w.mu.Lock()
	defer w.mu.Unlock()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		sy := y - r.Min.Y
		copy(w.img.Pix[w.img.PixOffset(r.Min.X, y):w.img.PixOffset(r.Max.X, y)],
			src.Pix[src.PixOffset(0, sy):src.PixOffset(r.Dx(), sy)])
	}
	w.dirty = true
}

// Show replaces the whole image with the canvas
func (w *Window) Show(canvas *renderer.Canvas) {
	w.Update(canvas, image.Rect(0, 0, canvas.Width, canvas.Height))
}

// Snapshot returns a copy of the image currently displayed
func (w *Window) Snapshot() *image.RGBA {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := image.NewRGBA(w.img.Bounds())
	copy(out.Pix, w.img.Pix)
	return out
}

// Run opens the window and blocks until it is closed
func (w *Window) Run() error {
	ebiten.SetWindowTitle(w.title)
	ebiten.SetWindowSize(w.width*w.scale, w.height*w.scale)
	ebiten.SetTPS(30)
	return ebiten.RunGame(&game{w: w})
}

// game adapts a Window to ebiten.Game
type game struct {
	w *Window
}

func (g *game) Update() error {
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	w := g.w
	w.mu.Lock()
	if w.screenImg == nil {
		w.screenImg = ebiten.NewImage(w.width, w.height)
		w.dirty = true
	}
	if w.dirty {
		w.screenImg.WritePixels(w.img.Pix)
		w.dirty = false
	}
	w.mu.Unlock()

	screen.DrawImage(w.screenImg, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.w.width, g.w.height
}

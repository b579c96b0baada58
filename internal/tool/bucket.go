package tool

import (
	"image"
	"math"

	"github.com/example/sketchpad/internal/geom"
	"github.com/example/sketchpad/internal/render"
)

// Bucket flood fills the region under its seed point when painted.
type Bucket struct {
	base
	seed   geom.Point
	region image.Rectangle
}

func (b *Bucket) Begin(p geom.Point) {
	b.seed = p
}

// Move is ignored; the fill happens where the gesture started.
func (b *Bucket) Move(_, _ geom.Point) {}

// Seed is the pixel the fill starts from.
func (b *Bucket) Seed() image.Point {
	return image.Pt(int(math.Floor(b.seed.X)), int(math.Floor(b.seed.Y)))
}

// Bounds is the region covered by the most recent paint.
func (b *Bucket) Bounds() image.Rectangle {
	return b.region
}

func (b *Bucket) Paint(t render.Target) {
	b.region = t.FloodFill(b.Seed(), b.style.paint(), b.style.Tolerance)
}

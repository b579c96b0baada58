// Package cache holds the composited raster of a drawing: the background and
// every committed tool, plus a scratch surface for previewing the tool that
// is still being drawn.
package cache

import (
	"fmt"
	"image"
	"image/draw"
	"strings"

	"github.com/example/sketchpad/internal/render"
	"github.com/example/sketchpad/internal/tool"
)

// RenderingMode controls how the background image is placed.
type RenderingMode int

const (
	// ModeOriginal draws the background at the origin at its own size.
	ModeOriginal RenderingMode = iota
	// ModeScale stretches the background over the whole surface.
	ModeScale
)

func (m RenderingMode) String() string {
	switch m {
	case ModeOriginal:
		return "original"
	case ModeScale:
		return "scale"
	}
	return fmt.Sprintf("RenderingMode(%d)", int(m))
}

// ParseRenderingMode maps "original" or "scale" to a RenderingMode.
func ParseRenderingMode(s string) (RenderingMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "original", "":
		return ModeOriginal, nil
	case "scale":
		return ModeScale, nil
	}
	return ModeOriginal, fmt.Errorf("unknown rendering mode %q", s)
}

// Stats counts how the snapshot has been rebuilt.
type Stats struct {
	Recomposites int
	Flattens     int
}

type surface struct {
	img    *image.RGBA
	canvas *render.Canvas
}

func newSurface(r image.Rectangle) *surface {
	img := image.NewRGBA(r)
	return &surface{img: img, canvas: render.NewCanvas(img)}
}

// Cache owns the snapshot. It is not safe for concurrent use.
type Cache struct {
	bounds     image.Rectangle
	front      *surface
	back       *surface
	live       *surface
	background *image.RGBA
	mode       RenderingMode
	stats      Stats
}

// New returns an empty cache covering a w by h surface.
func New(size image.Point) *Cache {
	r := image.Rectangle{Max: size}
	return &Cache{
		bounds: r,
		front:  newSurface(r),
		back:   newSurface(r),
		live:   newSurface(r),
	}
}

func (c *Cache) Bounds() image.Rectangle {
	return c.bounds
}

func (c *Cache) Stats() Stats {
	return c.stats
}

// SetBackground stores a private copy of img as the base layer. A nil image
// removes the background. The snapshot is not rebuilt; call Recomposite.
func (c *Cache) SetBackground(img image.Image, mode RenderingMode) {
	c.mode = mode
	if img == nil {
		c.background = nil
		return
	}
	c.background = render.Clone(img)
}

// Background returns the stored background, or nil.
func (c *Cache) Background() image.Image {
	if c.background == nil {
		return nil
	}
	return c.background
}

func (c *Cache) Mode() RenderingMode {
	return c.mode
}

// withTarget hands fn the back buffer and publishes it as the snapshot on
// every exit from fn.
func (c *Cache) withTarget(fn func(t *render.Canvas, dst *image.RGBA)) {
	defer func() {
		c.front, c.back = c.back, c.front
	}()
	fn(c.back.canvas, c.back.img)
}

func (c *Cache) paintBackground(dst *image.RGBA) {
	if c.background == nil {
		return
	}
	switch c.mode {
	case ModeScale:
		render.Scale(dst, c.bounds, c.background, draw.Over)
	default:
		draw.Draw(dst, c.background.Bounds().Intersect(c.bounds), c.background, image.Point{}, draw.Over)
	}
}

// Recomposite rebuilds the snapshot from the background and every tool in
// committed, in order.
func (c *Cache) Recomposite(committed []tool.Tool) {
	c.stats.Recomposites++
	c.withTarget(func(t *render.Canvas, dst *image.RGBA) {
		t.Clear()
		c.paintBackground(dst)
		for _, tl := range committed {
			tl.Paint(t)
		}
	})
}

// Flatten bakes tl into the snapshot on top of what is already there.
func (c *Cache) Flatten(tl tool.Tool) {
	if tl == nil {
		return
	}
	c.stats.Flattens++
	c.withTarget(func(t *render.Canvas, dst *image.RGBA) {
		copy(dst.Pix, c.front.img.Pix)
		tl.Paint(t)
	})
}

// Render draws the region clip of the current frame into dst: the snapshot
// and, when live is not nil, the in-progress tool on top. The snapshot is
// left untouched.
func (c *Cache) Render(dst draw.Image, clip image.Rectangle, live tool.Tool) {
	clip = clip.Intersect(c.bounds)
	if clip.Empty() {
		return
	}
	if live == nil {
		draw.Draw(dst, clip, c.front.img, clip.Min, draw.Src)
		return
	}
	copyRect(c.live.img, c.front.img, c.liveArea(clip, live))
	live.Paint(c.live.canvas)
	draw.Draw(dst, clip, c.live.img, clip.Min, draw.Src)
}

// liveArea is the part of the live surface that must match the snapshot
// before live paints. Freehand tools only blend over what they cover; any
// other tool, the fill in particular, may read the whole surface.
func (c *Cache) liveArea(clip image.Rectangle, live tool.Tool) image.Rectangle {
	if _, ok := live.(tool.Smoother); ok {
		return clip.Union(live.Bounds()).Intersect(c.bounds)
	}
	return c.bounds
}

// Snapshot returns a copy of the composited image.
func (c *Cache) Snapshot() *image.RGBA {
	return render.Clone(c.front.img)
}

func copyRect(dst, src *image.RGBA, r image.Rectangle) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := src.PixOffset(r.Min.X, y)
		copy(dst.Pix[i:i+4*r.Dx()], src.Pix[i:i+4*r.Dx()])
	}
}

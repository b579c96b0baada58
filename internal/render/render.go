// Package render rasterizes drawing primitives into an RGBA surface.
//
// Every primitive is first scanned into a coverage mask by rasterx and then
// composited onto the surface with the requested blend.
package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// Blend selects how coverage is combined with the surface.
type Blend uint8

const (
	// BlendSourceOver paints colour on top of the surface.
	BlendSourceOver Blend = iota
	// BlendDestinationOut removes surface coverage where the shape is painted.
	BlendDestinationOut
)

func (b Blend) String() string {
	switch b {
	case BlendSourceOver:
		return "source-over"
	case BlendDestinationOut:
		return "destination-out"
	}
	return "unknown"
}

// Paint describes the colour side of a draw call.
type Paint struct {
	Color color.Color
	// Alpha scales the colour's own alpha. Zero is treated as opaque.
	Alpha float64
	Blend Blend
	// Soften blurs the edge of the shape by the given radius in pixels.
	Soften int
}

func (p Paint) nrgba() color.NRGBA {
	c := color.NRGBAModel.Convert(p.color()).(color.NRGBA)
	a := p.Alpha
	if a <= 0 || a > 1 {
		a = 1
	}
	c.A = uint8(float64(c.A)*a + 0.5)
	return c
}

func (p Paint) color() color.Color {
	if p.Color == nil {
		return color.Black
	}
	return p.Color
}

// Stroke describes the outline side of a draw call.
type Stroke struct {
	Width float64
}

// Target is the surface a tool paints into.
type Target interface {
	Bounds() image.Rectangle
	StrokePath(p *Path, s Stroke, paint Paint)
	FillPath(p *Path, paint Paint)
	DrawImage(img image.Image, dst image.Rectangle, alpha float64)
	FloodFill(seed image.Point, paint Paint, tolerance uint8) image.Rectangle
}

// Canvas is a Target backed by an *image.RGBA.
type Canvas struct {
	img     *image.RGBA
	mask    *image.Alpha
	scanner *rasterx.ScannerGV
	stroker *rasterx.Stroker
	filler  *rasterx.Filler
}

// NewCanvas wraps img. The image must have a zero origin.
func NewCanvas(img *image.RGBA) *Canvas {
	b := img.Bounds()
	mask := image.NewAlpha(b)
	scanner := rasterx.NewScannerGV(b.Dx(), b.Dy(), mask, b)
	scanner.SetColor(color.White)
	return &Canvas{
		img:     img,
		mask:    mask,
		scanner: scanner,
		stroker: rasterx.NewStroker(b.Dx(), b.Dy(), scanner),
		filler:  rasterx.NewFiller(b.Dx(), b.Dy(), scanner),
	}
}

// Image returns the surface the canvas draws on.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

func (c *Canvas) Bounds() image.Rectangle {
	return c.img.Bounds()
}

// StrokePath strokes p with round caps and joins. A path without extent
// is drawn as a dot of the stroke width.
func (c *Canvas) StrokePath(p *Path, s Stroke, paint Paint) {
	if p == nil || p.Empty() {
		return
	}
	w := s.Width
	if w <= 0 {
		w = 1
	}
	if p.Degenerate() {
		c.FillPath(Circle(p.Start(), w/2), paint)
		return
	}
	c.stroker.SetStroke(fixed.Int26_6(w*64), 4<<6, rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.Round)
	p.replay(c.stroker, false)
	r := p.Bounds().Inset(-(int(w/2) + 2))
	c.scan(r, paint)
}

// FillPath fills the interior of p.
func (c *Canvas) FillPath(p *Path, paint Paint) {
	if p == nil || p.Empty() {
		return
	}
	p.replay(c.filler, true)
	c.scan(p.Bounds().Inset(-2), paint)
}

func (c *Canvas) scan(r image.Rectangle, paint Paint) {
	c.scanner.Draw()
	c.scanner.Clear()
	c.composite(r, paint)
}

// composite blends the coverage mask inside r onto the surface and clears it.
func (c *Canvas) composite(r image.Rectangle, paint Paint) {
	if paint.Soften > 0 {
		r = r.Inset(-paint.Soften)
	}
	r = r.Intersect(c.img.Bounds())
	if r.Empty() {
		return
	}
	var cov *image.Alpha
	if paint.Soften > 0 {
		cov = blurAlpha(c.mask.SubImage(r).(*image.Alpha), paint.Soften)
	} else {
		cov = c.mask.SubImage(r).(*image.Alpha)
	}
	col := paint.nrgba()
	switch paint.Blend {
	case BlendDestinationOut:
		destinationOut(c.img, cov, r, col.A)
	default:
		draw.DrawMask(c.img, r, image.NewUniform(col), image.Point{}, cov, r.Min, draw.Over)
	}
	clearAlpha(c.mask, r)
}

// destinationOut scales every pixel in r by one minus the mask coverage.
// image/draw has no destination-out operator.
func destinationOut(dst *image.RGBA, mask *image.Alpha, r image.Rectangle, alpha uint8) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			m := uint32(mask.AlphaAt(x, y).A) * uint32(alpha) / 255
			if m == 0 {
				continue
			}
			keep := 255 - m
			i := dst.PixOffset(x, y)
			px := dst.Pix[i : i+4 : i+4]
			for k := range px {
				px[k] = uint8((uint32(px[k])*keep + 127) / 255)
			}
		}
	}
}

func clearAlpha(m *image.Alpha, r image.Rectangle) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := m.PixOffset(r.Min.X, y)
		clear(m.Pix[i : i+r.Dx()])
	}
}

// DrawImage paints img scaled into dst with the given opacity.
func (c *Canvas) DrawImage(img image.Image, dst image.Rectangle, alpha float64) {
	if img == nil || dst.Empty() {
		return
	}
	drawImage(c.img, img, dst, alpha)
}

// FloodFill paints the 4-connected region around seed whose pixels are
// within tolerance of the seed colour. It returns the filled bounds.
func (c *Canvas) FloodFill(seed image.Point, paint Paint, tolerance uint8) image.Rectangle {
	r := floodRegion(c.img, c.mask, seed, tolerance)
	if r.Empty() {
		return r
	}
	paint.Soften = 0
	c.composite(r, paint)
	return r
}

// Clear resets every pixel of the surface to transparent.
func (c *Canvas) Clear() {
	clear(c.img.Pix)
}

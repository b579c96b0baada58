package tool

import (
	"image"
	"image/color"

	"github.com/example/sketchpad/internal/geom"
	"github.com/example/sketchpad/internal/render"
)

// Freehand is the pen and eraser. Consecutive points are joined by quadratic
// curves running from mid(p0,p1) to mid(p1,p2) with p1 as control point.
type Freehand struct {
	base
	erase  bool
	points []geom.Point
	path   render.Path
	end    geom.Point
	bounds image.Rectangle
}

func (f *Freehand) Begin(p geom.Point) {
	f.points = append(f.points[:0], p)
	f.path = render.Path{}
	f.path.MoveTo(p)
	f.end = p
	f.bounds = geom.Outset(geom.Rect(p), f.margin())
}

// Move extends the curve using the last recorded point as the point before prev.
func (f *Freehand) Move(prev, cur geom.Point) {
	pp := prev
	if n := len(f.points); n > 1 {
		pp = f.points[n-2]
	}
	f.Extend(pp, prev, cur)
}

// Extend appends the smoothed segment for pp, p, cur and returns the
// rectangle that must be repainted to show it. The whole path is stroked
// again on every paint, so antialiasing next to an earlier join may shift by
// one alpha step just outside the rectangle.
func (f *Freehand) Extend(pp, p, cur geom.Point) image.Rectangle {
	if len(f.points) == 0 {
		f.Begin(pp)
	}
	f.points = append(f.points, cur)
	m1 := geom.Mid(pp, p)
	m2 := geom.Mid(p, cur)
	if m1 != f.end {
		f.path.LineTo(m1)
	}
	f.path.QuadTo(p, m2)
	f.end = m2
	dirty := geom.Outset(geom.Rect(m1, p, m2), f.margin())
	f.bounds = f.bounds.Union(dirty)
	return dirty
}

// Points returns the recorded input points.
func (f *Freehand) Points() []geom.Point {
	return append([]geom.Point(nil), f.points...)
}

func (f *Freehand) Bounds() image.Rectangle {
	return f.bounds
}

func (f *Freehand) margin() int {
	return geom.HalfWidth(f.widest()) + f.soften()
}

// widest is the largest stroke width Paint uses.
func (f *Freehand) widest() float64 {
	if !f.erase && f.style.Pen == PenNeon {
		return f.style.Width * neonHalo
	}
	return f.style.Width
}

func (f *Freehand) soften() int {
	if f.erase {
		return 0
	}
	switch f.style.Pen {
	case PenBlur:
		return max(int(f.style.Width/2), 1)
	case PenNeon:
		return max(int(f.style.Width), 1)
	}
	return 0
}

func (f *Freehand) Paint(t render.Target) {
	if len(f.points) == 0 {
		return
	}
	paint := f.style.paint()
	stroke := f.style.stroke()
	if f.erase {
		paint.Blend = render.BlendDestinationOut
		t.StrokePath(&f.path, stroke, paint)
		return
	}
	switch f.style.Pen {
	case PenBlur:
		paint.Soften = f.soften()
		t.StrokePath(&f.path, stroke, paint)
	case PenNeon:
		halo := paint
		halo.Soften = f.soften()
		t.StrokePath(&f.path, render.Stroke{Width: stroke.Width * neonHalo}, halo)
		core := render.Paint{Color: lighten(paint.Color), Alpha: paint.Alpha}
		t.StrokePath(&f.path, render.Stroke{Width: max(stroke.Width/3, 1)}, core)
	default:
		t.StrokePath(&f.path, stroke, paint)
	}
}

const neonHalo = 1.5

// lighten mixes c two thirds of the way towards white.
func lighten(c color.Color) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	mix := func(v uint8) uint8 {
		return uint8((uint16(v) + 2*255) / 3)
	}
	return color.NRGBA{R: mix(n.R), G: mix(n.G), B: mix(n.B), A: n.A}
}

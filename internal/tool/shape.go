package tool

import (
	"image"
	"math"

	"github.com/example/sketchpad/internal/geom"
	"github.com/example/sketchpad/internal/render"
)

// Segment is the line and arrow tool. Its geometry is recomputed from the
// first and last point on every paint.
type Segment struct {
	base
	span
	arrow bool
}

func (s *Segment) headLength() float64 {
	return math.Max(4*s.style.Width, 10)
}

func (s *Segment) Bounds() image.Rectangle {
	m := geom.HalfWidth(s.style.Width)
	if s.arrow {
		m += int(math.Ceil(s.headLength()))
	}
	return geom.Outset(geom.Rect(s.first, s.last), m)
}

func (s *Segment) Paint(t render.Target) {
	paint := s.style.paint()
	stroke := s.style.stroke()
	if !s.arrow || s.degenerate() {
		t.StrokePath(render.Line(s.first, s.last), stroke, paint)
		return
	}
	head := arrowHead(s.first, s.last, s.headLength())
	dir := s.last.Sub(s.first).Unit()
	shaftEnd := s.last.Sub(dir.Scale(s.headLength() / 2))
	if geom.Distance(s.first, s.last) <= s.headLength()/2 {
		shaftEnd = s.first
	}
	t.StrokePath(render.Line(s.first, shaftEnd), stroke, paint)
	t.FillPath(render.Polygon(head[:]...), paint)
}

// arrowHead returns the triangle with its tip at to, opening back along the
// line at thirty degrees either side.
func arrowHead(from, to geom.Point, length float64) [3]geom.Point {
	back := from.Sub(to).Unit().Scale(length)
	return [3]geom.Point{
		to,
		to.Add(back.Rotate(math.Pi / 6)),
		to.Add(back.Rotate(-math.Pi / 6)),
	}
}

type shape uint8

const (
	shapeRect shape = iota
	shapeEllipse
	shapeStar
)

// Box is a shape inscribed in the rectangle spanned by the first and last
// point: rectangle, ellipse or star.
type Box struct {
	base
	span
	shape shape
	fill  bool
}

func (b *Box) Bounds() image.Rectangle {
	return geom.Outset(geom.Rect(b.first, b.last), geom.HalfWidth(b.style.Width))
}

func (b *Box) path() *render.Path {
	switch b.shape {
	case shapeEllipse:
		return render.Ellipse(b.first, b.last)
	case shapeStar:
		return render.Polygon(starPoints(b.first, b.last, 5)...)
	}
	return render.Rectangle(b.first, b.last)
}

func (b *Box) Paint(t render.Target) {
	paint := b.style.paint()
	stroke := b.style.stroke()
	if b.degenerate() {
		t.StrokePath(render.Line(b.first, b.first), stroke, paint)
		return
	}
	flat := b.first.X == b.last.X || b.first.Y == b.last.Y
	if b.fill && !flat {
		t.FillPath(b.path(), paint)
		return
	}
	if flat {
		// A box with no area is drawn as the segment it collapses to.
		t.StrokePath(render.Line(b.first, b.last), stroke, paint)
		return
	}
	t.StrokePath(b.path(), stroke, paint)
}

const starInnerRatio = 0.382

// starPoints returns the vertices of an n pointed star inscribed in the box
// spanned by a and b, first point straight up.
func starPoints(a, b geom.Point, n int) []geom.Point {
	c := geom.Mid(a, b)
	rx := math.Abs(b.X-a.X) / 2
	ry := math.Abs(b.Y-a.Y) / 2
	pts := make([]geom.Point, 0, 2*n)
	for i := 0; i < 2*n; i++ {
		theta := -math.Pi/2 + float64(i)*math.Pi/float64(n)
		r := 1.0
		if i%2 == 1 {
			r = starInnerRatio
		}
		pts = append(pts, geom.Pt(c.X+rx*r*math.Cos(theta), c.Y+ry*r*math.Sin(theta)))
	}
	return pts
}

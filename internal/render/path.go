package render

import (
	"image"
	"math"

	"github.com/example/sketchpad/internal/geom"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

type opKind uint8

const (
	opMove opKind = iota
	opLine
	opQuad
	opCube
	opClose
)

type pathOp struct {
	kind opKind
	pts  [3]geom.Point
}

// Path is a sequence of subpaths in surface coordinates.
type Path struct {
	ops []pathOp
	pts []geom.Point
}

// MoveTo starts a new subpath at p.
func (p *Path) MoveTo(pt geom.Point) *Path {
	p.ops = append(p.ops, pathOp{kind: opMove, pts: [3]geom.Point{pt}})
	p.pts = append(p.pts, pt)
	return p
}

// LineTo adds a straight segment.
func (p *Path) LineTo(pt geom.Point) *Path {
	p.ops = append(p.ops, pathOp{kind: opLine, pts: [3]geom.Point{pt}})
	p.pts = append(p.pts, pt)
	return p
}

// QuadTo adds a quadratic Bézier segment with control point c.
func (p *Path) QuadTo(c, pt geom.Point) *Path {
	p.ops = append(p.ops, pathOp{kind: opQuad, pts: [3]geom.Point{c, pt}})
	p.pts = append(p.pts, c, pt)
	return p
}

// CubeTo adds a cubic Bézier segment.
func (p *Path) CubeTo(c1, c2, pt geom.Point) *Path {
	p.ops = append(p.ops, pathOp{kind: opCube, pts: [3]geom.Point{c1, c2, pt}})
	p.pts = append(p.pts, c1, c2, pt)
	return p
}

// Close closes the current subpath.
func (p *Path) Close() *Path {
	p.ops = append(p.ops, pathOp{kind: opClose})
	return p
}

// Empty reports whether the path has no points.
func (p *Path) Empty() bool {
	return len(p.pts) == 0
}

// Start is the first point of the path.
func (p *Path) Start() geom.Point {
	if len(p.pts) == 0 {
		return geom.Point{}
	}
	return p.pts[0]
}

// Degenerate reports whether every point of the path coincides.
func (p *Path) Degenerate() bool {
	for _, pt := range p.pts[1:] {
		if pt != p.pts[0] {
			return false
		}
	}
	return true
}

// Bounds is the integer bounding box of all points, control points included.
func (p *Path) Bounds() image.Rectangle {
	return geom.Rect(p.pts...)
}

// replay feeds the path to a. Open subpaths are closed when fill is set.
func (p *Path) replay(a rasterx.Adder, fill bool) {
	open := false
	for _, op := range p.ops {
		switch op.kind {
		case opMove:
			if open {
				a.Stop(fill)
			}
			a.Start(fixedP(op.pts[0]))
			open = true
		case opLine:
			a.Line(fixedP(op.pts[0]))
		case opQuad:
			a.QuadBezier(fixedP(op.pts[0]), fixedP(op.pts[1]))
		case opCube:
			a.CubeBezier(fixedP(op.pts[0]), fixedP(op.pts[1]), fixedP(op.pts[2]))
		case opClose:
			if open {
				a.Stop(true)
				open = false
			}
		}
	}
	if open {
		a.Stop(fill)
	}
}

// Line returns the segment from a to b.
func Line(a, b geom.Point) *Path {
	return new(Path).MoveTo(a).LineTo(b)
}

// Polygon returns the closed polygon through pts.
func Polygon(pts ...geom.Point) *Path {
	p := new(Path)
	for i, pt := range pts {
		if i == 0 {
			p.MoveTo(pt)
			continue
		}
		p.LineTo(pt)
	}
	if len(pts) > 0 {
		p.Close()
	}
	return p
}

// Rectangle returns the closed rectangle spanned by two corners.
func Rectangle(a, b geom.Point) *Path {
	return Polygon(a, geom.Pt(b.X, a.Y), b, geom.Pt(a.X, b.Y))
}

const kappa = 0.5522847498307936

// Ellipse returns the ellipse inscribed in the box spanned by a and b.
func Ellipse(a, b geom.Point) *Path {
	c := geom.Mid(a, b)
	rx := math.Abs(b.X-a.X) / 2
	ry := math.Abs(b.Y-a.Y) / 2
	if rx == 0 && ry == 0 {
		return new(Path).MoveTo(c)
	}
	kx, ky := rx*kappa, ry*kappa
	p := new(Path).MoveTo(geom.Pt(c.X+rx, c.Y))
	p.CubeTo(geom.Pt(c.X+rx, c.Y+ky), geom.Pt(c.X+kx, c.Y+ry), geom.Pt(c.X, c.Y+ry))
	p.CubeTo(geom.Pt(c.X-kx, c.Y+ry), geom.Pt(c.X-rx, c.Y+ky), geom.Pt(c.X-rx, c.Y))
	p.CubeTo(geom.Pt(c.X-rx, c.Y-ky), geom.Pt(c.X-kx, c.Y-ry), geom.Pt(c.X, c.Y-ry))
	p.CubeTo(geom.Pt(c.X+kx, c.Y-ry), geom.Pt(c.X+rx, c.Y-ky), geom.Pt(c.X+rx, c.Y))
	return p.Close()
}

// Circle returns a circle of radius r around c.
func Circle(c geom.Point, r float64) *Path {
	return Ellipse(geom.Pt(c.X-r, c.Y-r), geom.Pt(c.X+r, c.Y+r))
}

func fixedP(p geom.Point) fixed.Point26_6 {
	return rasterx.ToFixedP(p.X, p.Y)
}

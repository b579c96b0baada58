// Package geom holds the small amount of planar math the drawing tools need.
package geom

import (
	"image"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Point is a position in surface coordinates.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) vec() r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

func fromVec(v r2.Vec) Point {
	return Point{X: v.X, Y: v.Y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return fromVec(r2.Add(p.vec(), q.vec()))
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return fromVec(r2.Sub(p.vec(), q.vec()))
}

// Scale returns p multiplied by f.
func (p Point) Scale(f float64) Point {
	return fromVec(r2.Scale(f, p.vec()))
}

// Len is the distance of p from the origin.
func (p Point) Len() float64 {
	return r2.Norm(p.vec())
}

// Unit returns p scaled to length one, or the zero point when p is zero.
func (p Point) Unit() Point {
	if p.X == 0 && p.Y == 0 {
		return Point{}
	}
	return fromVec(r2.Unit(p.vec()))
}

// Rotate turns p around the origin by theta radians.
func (p Point) Rotate(theta float64) Point {
	s, c := math.Sincos(theta)
	return Point{X: p.X*c - p.Y*s, Y: p.X*s + p.Y*c}
}

// Image rounds p to the nearest pixel.
func (p Point) Image() image.Point {
	return image.Pt(int(math.Round(p.X)), int(math.Round(p.Y)))
}

// In reports whether p lies inside r.
func (p Point) In(r image.Rectangle) bool {
	return p.X >= float64(r.Min.X) && p.X < float64(r.Max.X) &&
		p.Y >= float64(r.Min.Y) && p.Y < float64(r.Max.Y)
}

// Distance is the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return r2.Norm(r2.Sub(a.vec(), b.vec()))
}

// Mid returns the point halfway between a and b.
func Mid(a, b Point) Point {
	return fromVec(r2.Scale(0.5, r2.Add(a.vec(), b.vec())))
}

// Rect returns the smallest integer rectangle containing every point.
// The minimum is floored and the maximum ceiled so a zero-extent set
// still yields a one pixel rectangle.
func Rect(pts ...Point) image.Rectangle {
	if len(pts) == 0 {
		return image.Rectangle{}
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	r := image.Rect(int(math.Floor(minX)), int(math.Floor(minY)), int(math.Ceil(maxX)), int(math.Ceil(maxY)))
	if r.Dx() == 0 {
		r.Max.X++
	}
	if r.Dy() == 0 {
		r.Max.Y++
	}
	return r
}

// Outset grows r by n pixels on every side.
func Outset(r image.Rectangle, n int) image.Rectangle {
	if n <= 0 {
		return r
	}
	return r.Inset(-n)
}

// HalfWidth is the pixel margin needed around a stroke of the given width.
func HalfWidth(width float64) int {
	return int(math.Ceil(width/2)) + 2
}

package tool

import (
	"image"

	"github.com/example/sketchpad/internal/geom"
	"github.com/example/sketchpad/internal/render"
)

// Stamper paints a copy of the style's stamp image centred on every
// recorded placement.
type Stamper struct {
	base
	places []geom.Point
}

func (s *Stamper) Begin(p geom.Point) {
	s.places = append(s.places[:0], p)
}

func (s *Stamper) Move(_, cur geom.Point) {
	if n := len(s.places); n > 0 && s.style.StampSpacing > 0 &&
		geom.Distance(s.places[n-1], cur) < s.style.StampSpacing {
		return
	}
	s.places = append(s.places, cur)
}

// Placements returns the recorded stamp centres.
func (s *Stamper) Placements() []geom.Point {
	return append([]geom.Point(nil), s.places...)
}

func (s *Stamper) rect(p geom.Point) image.Rectangle {
	size := s.style.Stamp.Bounds().Size()
	origin := p.Image().Sub(size.Div(2))
	return image.Rectangle{Min: origin, Max: origin.Add(size)}
}

func (s *Stamper) Bounds() image.Rectangle {
	var r image.Rectangle
	if s.style.Stamp == nil {
		return r
	}
	for _, p := range s.places {
		r = r.Union(s.rect(p))
	}
	return r
}

func (s *Stamper) Paint(t render.Target) {
	if s.style.Stamp == nil {
		return
	}
	for _, p := range s.places {
		t.DrawImage(s.style.Stamp, s.rect(p), s.style.Alpha)
	}
}

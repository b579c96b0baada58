package tool

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/example/sketchpad/internal/geom"
	"github.com/example/sketchpad/internal/render"
)

func canvas(w, h int) (*render.Canvas, *image.RGBA) {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	return render.NewCanvas(img), img
}

func mustNew(t *testing.T, k Kind, s Style) Tool {
	t.Helper()
	tl, err := New(k, s)
	if err != nil {
		t.Fatalf("New(%v): %v", k, err)
	}
	return tl
}

func TestParseKindRoundTrip(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Fatalf("ParseKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if k, err := ParseKind("Rect_Fill"); err != nil || k != RectFill {
		t.Fatalf("ParseKind(Rect_Fill) = %v, %v", k, err)
	}
	if _, err := ParseKind("spray"); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestParsePenType(t *testing.T) {
	for _, p := range []PenType{PenNormal, PenBlur, PenNeon} {
		got, err := ParsePenType(p.String())
		if err != nil || got != p {
			t.Fatalf("ParsePenType(%q) = %v, %v", p, got, err)
		}
	}
	if _, err := ParsePenType("marker"); !errors.Is(err, ErrUnknownPen) {
		t.Fatalf("expected ErrUnknownPen, got %v", err)
	}
}

func TestNewValidatesStyle(t *testing.T) {
	bad := []Style{
		{Width: 0, Alpha: 1},
		{Width: 2, Alpha: 1.5},
		{Width: 2, Alpha: 0},
	}
	for _, s := range bad {
		if _, err := New(Pen, s); !errors.Is(err, ErrInvalidStyle) {
			t.Errorf("New with %+v: got %v", s, err)
		}
	}
	if _, err := New(Kind(99), DefaultStyle()); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestToolIDsAreUnique(t *testing.T) {
	a := mustNew(t, Pen, DefaultStyle())
	b := mustNew(t, Pen, DefaultStyle())
	if a.ID() == "" || a.ID() == b.ID() {
		t.Fatalf("ids %q and %q", a.ID(), b.ID())
	}
}

func TestZeroLengthGesturesPaintADot(t *testing.T) {
	for _, k := range []Kind{Pen, Line, Arrow, RectStroke, RectFill, EllipseStroke, EllipseFill, Star} {
		c, img := canvas(40, 40)
		tl := mustNew(t, k, Style{Color: color.Black, Width: 6, Alpha: 1})
		tl.Begin(geom.Pt(20, 20))
		tl.Move(geom.Pt(20, 20), geom.Pt(20, 20))
		tl.Paint(c)
		if img.RGBAAt(20, 20).A == 0 {
			t.Errorf("%v: zero length gesture left no mark", k)
		}
	}
}

func TestFreehandDirtyRectContainsSegment(t *testing.T) {
	style := Style{Color: color.Black, Width: 8, Alpha: 1}
	a, b, c := geom.Pt(10, 10), geom.Pt(30, 40), geom.Pt(50, 12)

	pen := mustNew(t, Pen, style).(*Freehand)
	pen.Begin(a)
	pen.Extend(a, a, b)
	before, beforeImg := canvas(80, 80)
	pen.Paint(before)

	dirty := pen.Extend(a, b, c)
	after, afterImg := canvas(80, 80)
	pen.Paint(after)

	changed := render.Diff(beforeImg, afterImg)
	if changed.Empty() {
		t.Fatalf("segment painted nothing")
	}
	if !changed.In(dirty) {
		t.Fatalf("changed pixels %v escape dirty rect %v", changed, dirty)
	}
	want := geom.Outset(geom.Rect(geom.Mid(a, b), b, geom.Mid(b, c)), geom.HalfWidth(8))
	if dirty != want {
		t.Fatalf("dirty = %v, want %v", dirty, want)
	}
}

func TestFreehandMoveTracksPreviousPoints(t *testing.T) {
	pen := mustNew(t, Pen, DefaultStyle()).(*Freehand)
	pen.Begin(geom.Pt(0, 0))
	pen.Move(geom.Pt(0, 0), geom.Pt(10, 0))
	pen.Move(geom.Pt(10, 0), geom.Pt(20, 5))
	if got := len(pen.Points()); got != 3 {
		t.Fatalf("recorded %d points, want 3", got)
	}
	if b := pen.Bounds(); !image.Pt(15, 2).In(b) {
		t.Fatalf("bounds %v miss the curve", b)
	}
}

func TestEraserRemovesInk(t *testing.T) {
	c, img := canvas(40, 40)
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{0, 0, 255, 255}), image.Point{}, draw.Src)
	e := mustNew(t, Eraser, Style{Color: color.Black, Width: 8, Alpha: 1})
	e.Begin(geom.Pt(5, 20))
	e.Move(geom.Pt(5, 20), geom.Pt(35, 20))
	e.Paint(c)
	if img.RGBAAt(12, 20).A != 0 {
		t.Fatalf("eraser left alpha %d", img.RGBAAt(12, 20).A)
	}
	if img.RGBAAt(20, 2).A != 255 {
		t.Fatalf("eraser touched pixels away from the stroke")
	}
}

func TestPenTypesDiffer(t *testing.T) {
	render1 := func(p PenType) *image.RGBA {
		c, img := canvas(60, 60)
		pen := mustNew(t, Pen, Style{Color: color.RGBA{200, 0, 0, 255}, Width: 6, Alpha: 1, Pen: p})
		pen.Begin(geom.Pt(10, 30))
		pen.Move(geom.Pt(10, 30), geom.Pt(50, 30))
		pen.Paint(c)
		return img
	}
	normal, blur, neon := render1(PenNormal), render1(PenBlur), render1(PenNeon)
	if render.Equal(normal, blur) || render.Equal(normal, neon) || render.Equal(blur, neon) {
		t.Fatalf("pen types render identically")
	}
	if normal.RGBAAt(30, 35).A != 0 || blur.RGBAAt(30, 35).A == 0 {
		t.Fatalf("blur pen should spread past the stroke edge")
	}
}

func TestLineRecomputesFromEndpoints(t *testing.T) {
	l := mustNew(t, Line, DefaultStyle()).(*Segment)
	l.Begin(geom.Pt(1, 1))
	l.Move(geom.Pt(1, 1), geom.Pt(5, 5))
	l.Move(geom.Pt(5, 5), geom.Pt(9, 2))
	if l.First() != geom.Pt(1, 1) || l.Last() != geom.Pt(9, 2) {
		t.Fatalf("endpoints %v %v", l.First(), l.Last())
	}
}

func TestArrowPaintsHead(t *testing.T) {
	c, img := canvas(100, 60)
	a := mustNew(t, Arrow, Style{Color: color.Black, Width: 2, Alpha: 1})
	a.Begin(geom.Pt(10, 30))
	a.Move(geom.Pt(10, 30), geom.Pt(90, 30))
	a.Paint(c)
	// the head is ten pixels long and wider than the shaft near its base
	if img.RGBAAt(84, 28).A == 0 || img.RGBAAt(84, 32).A == 0 {
		t.Fatalf("arrow head missing")
	}
	if img.RGBAAt(40, 27).A != 0 {
		t.Fatalf("shaft wider than its stroke")
	}
	if !image.Pt(90, 30).In(a.Bounds()) {
		t.Fatalf("unexpected bounds %v", a.Bounds())
	}
}

func TestRectStrokeAndFill(t *testing.T) {
	style := Style{Color: color.Black, Width: 2, Alpha: 1}
	for _, tt := range []struct {
		kind       Kind
		centreInk  bool
		outlineInk bool
	}{
		{RectStroke, false, true},
		{RectFill, true, true},
		{EllipseStroke, false, true},
		{EllipseFill, true, true},
	} {
		c, img := canvas(60, 60)
		tl := mustNew(t, tt.kind, style)
		tl.Begin(geom.Pt(10, 10))
		tl.Move(geom.Pt(10, 10), geom.Pt(50, 50))
		tl.Paint(c)
		if got := img.RGBAAt(30, 30).A != 0; got != tt.centreInk {
			t.Errorf("%v: centre ink = %v", tt.kind, got)
		}
		if got := img.RGBAAt(30, 10).A != 0; got != tt.outlineInk {
			t.Errorf("%v: outline ink = %v", tt.kind, got)
		}
	}
}

func TestStarPoints(t *testing.T) {
	pts := starPoints(geom.Pt(0, 0), geom.Pt(100, 100), 5)
	if len(pts) != 10 {
		t.Fatalf("got %d vertices", len(pts))
	}
	if d := geom.Distance(pts[0], geom.Pt(50, 0)); d > 1e-9 {
		t.Fatalf("first vertex %v is not at the top", pts[0])
	}
	c, img := canvas(100, 100)
	s := mustNew(t, Star, Style{Color: color.Black, Width: 1, Alpha: 1})
	s.Begin(geom.Pt(0, 0))
	s.Move(geom.Pt(0, 0), geom.Pt(100, 100))
	s.Paint(c)
	if img.RGBAAt(50, 50).A == 0 {
		t.Fatalf("star centre not filled")
	}
	if img.RGBAAt(2, 2).A != 0 {
		t.Fatalf("star covers its corner")
	}
}

func TestStampPaintsEveryPlacement(t *testing.T) {
	stamp := image.NewRGBA(image.Rect(0, 0, 4, 4))
	draw.Draw(stamp, stamp.Bounds(), image.NewUniform(color.RGBA{0, 200, 0, 255}), image.Point{}, draw.Src)
	c, img := canvas(60, 20)
	s := mustNew(t, Stamp, Style{Color: color.Black, Width: 1, Alpha: 1, Stamp: stamp, StampSpacing: 5})
	s.Begin(geom.Pt(10, 10))
	s.Move(geom.Pt(10, 10), geom.Pt(12, 10))
	s.Move(geom.Pt(12, 10), geom.Pt(30, 10))
	s.Move(geom.Pt(30, 10), geom.Pt(50, 10))
	if got := len(s.(*Stamper).Placements()); got != 3 {
		t.Fatalf("placements = %d, want 3", got)
	}
	s.Paint(c)
	for _, x := range []int{10, 30, 50} {
		if img.RGBAAt(x, 10).G != 200 {
			t.Fatalf("no stamp at x=%d", x)
		}
	}
	if img.RGBAAt(20, 10).A != 0 {
		t.Fatalf("stamp painted between placements")
	}
}

func TestStampWithoutImagePaintsNothing(t *testing.T) {
	c, img := canvas(20, 20)
	s := mustNew(t, Stamp, DefaultStyle())
	s.Begin(geom.Pt(10, 10))
	s.Paint(c)
	if !render.Diff(img, image.NewRGBA(img.Bounds())).Empty() {
		t.Fatalf("nil stamp painted pixels")
	}
	if !s.Bounds().Empty() {
		t.Fatalf("nil stamp has bounds %v", s.Bounds())
	}
}

func TestBucketFillsUnderSeed(t *testing.T) {
	c, img := canvas(10, 10)
	for y := 0; y < 10; y++ {
		img.SetRGBA(5, y, color.RGBA{A: 255})
	}
	b := mustNew(t, Fill, Style{Color: color.RGBA{255, 0, 0, 255}, Width: 1, Alpha: 1})
	b.Begin(geom.Pt(2.7, 3.2))
	b.Move(geom.Pt(2.7, 3.2), geom.Pt(8, 8))
	b.Paint(c)
	if img.RGBAAt(0, 0).R != 255 || img.RGBAAt(8, 8).R != 0 {
		t.Fatalf("fill crossed the wall or missed the seed side")
	}
	if b.Bounds() != image.Rect(0, 0, 5, 10) {
		t.Fatalf("fill bounds = %v", b.Bounds())
	}
}

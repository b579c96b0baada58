// Package tool implements the drawing tools. Each gesture creates one Tool
// which records its geometry and paints itself into a render.Target.
package tool

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/example/sketchpad/internal/geom"
	"github.com/example/sketchpad/internal/render"
	"github.com/google/uuid"
)

var (
	// ErrUnknownKind is returned for tool names that do not map to a Kind.
	ErrUnknownKind = errors.New("unknown tool")
	// ErrUnknownPen is returned for unrecognised pen type names.
	ErrUnknownPen = errors.New("unknown pen type")
	// ErrInvalidStyle is returned when a Style cannot be painted.
	ErrInvalidStyle = errors.New("invalid style")
)

// Kind identifies a tool variant.
type Kind int

const (
	Pen Kind = iota
	Eraser
	Stamp
	Line
	Arrow
	RectStroke
	RectFill
	EllipseStroke
	EllipseFill
	Star
	Fill
)

var kindNames = [...]string{
	Pen:           "pen",
	Eraser:        "eraser",
	Stamp:         "stamp",
	Line:          "line",
	Arrow:         "arrow",
	RectStroke:    "rect",
	RectFill:      "rect-fill",
	EllipseStroke: "ellipse",
	EllipseFill:   "ellipse-fill",
	Star:          "star",
	Fill:          "fill",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Kinds lists every tool variant in declaration order.
func Kinds() []Kind {
	out := make([]Kind, len(kindNames))
	for i := range kindNames {
		out[i] = Kind(i)
	}
	return out
}

// ParseKind maps a tool name to its Kind. Matching ignores case and
// accepts underscores in place of dashes.
func ParseKind(s string) (Kind, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// PenType selects how pen strokes are blended.
type PenType int

const (
	PenNormal PenType = iota
	PenBlur
	PenNeon
)

var penNames = [...]string{"normal", "blur", "neon"}

func (p PenType) String() string {
	if p < 0 || int(p) >= len(penNames) {
		return fmt.Sprintf("PenType(%d)", int(p))
	}
	return penNames[p]
}

// PenTypes lists every pen type in declaration order.
func PenTypes() []PenType {
	out := make([]PenType, len(penNames))
	for i := range penNames {
		out[i] = PenType(i)
	}
	return out
}

// ParsePenType maps a pen type name to its PenType.
func ParsePenType(s string) (PenType, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range penNames {
		if n == name {
			return PenType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPen, s)
}

// Style is the paint configuration a tool captures when its gesture begins.
type Style struct {
	Color color.Color
	Width float64
	Alpha float64
	Pen   PenType
	// Stamp is painted by the stamp tool. A nil stamp paints nothing.
	Stamp image.Image
	// StampSpacing is the minimum distance between two stamp placements.
	StampSpacing float64
	// Tolerance is the per channel difference the fill tool still treats
	// as the same colour.
	Tolerance uint8
}

// DefaultStyle is a black, fully opaque, ten pixel wide pen.
func DefaultStyle() Style {
	return Style{Color: color.Black, Width: 10, Alpha: 1}
}

// Validate reports whether s can be painted.
func (s Style) Validate() error {
	if s.Width <= 0 {
		return fmt.Errorf("%w: width %v must be positive", ErrInvalidStyle, s.Width)
	}
	if s.Alpha <= 0 || s.Alpha > 1 {
		return fmt.Errorf("%w: alpha %v outside (0,1]", ErrInvalidStyle, s.Alpha)
	}
	return nil
}

func (s Style) paint() render.Paint {
	c := s.Color
	if c == nil {
		c = color.Black
	}
	return render.Paint{Color: c, Alpha: s.Alpha}
}

func (s Style) stroke() render.Stroke {
	return render.Stroke{Width: s.Width}
}

// Tool is one in-progress or committed drawing operation.
type Tool interface {
	ID() string
	Kind() Kind
	Style() Style
	// Begin records the first point of the gesture.
	Begin(p geom.Point)
	// Move records motion from prev to cur.
	Move(prev, cur geom.Point)
	// Paint draws the tool's current geometry into t.
	Paint(t render.Target)
	// Bounds is the area the tool paints into.
	Bounds() image.Rectangle
}

// Smoother is implemented by freehand tools that build smoothed curves and
// can report the dirty rectangle of each new segment.
type Smoother interface {
	Tool
	Extend(pp, p, cur geom.Point) image.Rectangle
}

// Endpoints is implemented by tools defined by a first and last point.
type Endpoints interface {
	Tool
	First() geom.Point
	Last() geom.Point
}

// New creates a tool of the given kind painting with style.
func New(kind Kind, style Style) (Tool, error) {
	if err := style.Validate(); err != nil {
		return nil, err
	}
	b := base{id: uuid.NewString(), kind: kind, style: style}
	switch kind {
	case Pen:
		return &Freehand{base: b}, nil
	case Eraser:
		return &Freehand{base: b, erase: true}, nil
	case Stamp:
		return &Stamper{base: b}, nil
	case Line:
		return &Segment{base: b}, nil
	case Arrow:
		return &Segment{base: b, arrow: true}, nil
	case RectStroke, RectFill:
		return &Box{base: b, shape: shapeRect, fill: kind == RectFill}, nil
	case EllipseStroke, EllipseFill:
		return &Box{base: b, shape: shapeEllipse, fill: kind == EllipseFill}, nil
	case Star:
		return &Box{base: b, shape: shapeStar, fill: true}, nil
	case Fill:
		return &Bucket{base: b}, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownKind, kind)
}

type base struct {
	id    string
	kind  Kind
	style Style
}

func (b *base) ID() string {
	return b.id
}

func (b *base) Kind() Kind {
	return b.kind
}

func (b *base) Style() Style {
	return b.style
}

// span holds the first and last point of a two-point gesture.
type span struct {
	first, last geom.Point
}

func (s *span) Begin(p geom.Point) {
	s.first, s.last = p, p
}

func (s *span) Move(_, cur geom.Point) {
	s.last = cur
}

func (s *span) First() geom.Point {
	return s.first
}

func (s *span) Last() geom.Point {
	return s.last
}

func (s *span) degenerate() bool {
	return s.first == s.last
}

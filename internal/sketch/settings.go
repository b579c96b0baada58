package sketch

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"github.com/example/sketchpad/internal/tool"
)

// DefaultSnapRadius is how close, in pixels, a line end must come to an
// existing line end to join it.
const DefaultSnapRadius = 8

// Settings is the mutable configuration a new gesture copies its style from.
type Settings struct {
	Tool         tool.Kind
	Color        color.Color
	Width        float64
	Alpha        float64
	SnapRadius   float64
	Pen          tool.PenType
	Stamp        image.Image
	StampSpacing float64
	Tolerance    uint8
}

// DefaultSettings is a black ten pixel pen.
func DefaultSettings() Settings {
	s := tool.DefaultStyle()
	return Settings{
		Tool:       tool.Pen,
		Color:      s.Color,
		Width:      s.Width,
		Alpha:      s.Alpha,
		SnapRadius: DefaultSnapRadius,
	}
}

// Style is the snapshot handed to a tool when its gesture begins.
func (s Settings) Style() tool.Style {
	return tool.Style{
		Color:        s.Color,
		Width:        s.Width,
		Alpha:        s.Alpha,
		Pen:          s.Pen,
		Stamp:        s.Stamp,
		StampSpacing: s.StampSpacing,
		Tolerance:    s.Tolerance,
	}
}

// Validate checks the settings can produce a tool.
func (s Settings) Validate() error {
	if s.SnapRadius < 0 {
		return fmt.Errorf("snap radius %v must not be negative", s.SnapRadius)
	}
	if s.Tool < 0 || int(s.Tool) >= len(tool.Kinds()) {
		return fmt.Errorf("%w: %v", tool.ErrUnknownKind, s.Tool)
	}
	return s.Style().Validate()
}

// Option modifies a View during creation.
type Option func(*View)

// WithSettings replaces every setting at once.
func WithSettings(s Settings) Option { return func(v *View) { v.settings = s } }

// WithTool selects the tool used by new gestures.
func WithTool(k tool.Kind) Option { return func(v *View) { v.settings.Tool = k } }

// WithColor sets the line colour.
func WithColor(c color.Color) Option { return func(v *View) { v.settings.Color = c } }

// WithWidth sets the line width.
func WithWidth(w float64) Option { return func(v *View) { v.settings.Width = w } }

// WithAlpha sets the line opacity.
func WithAlpha(a float64) Option { return func(v *View) { v.settings.Alpha = a } }

// WithSnapRadius sets how far line ends reach to snap.
func WithSnapRadius(r float64) Option { return func(v *View) { v.settings.SnapRadius = r } }

// WithPenType selects the pen blending style.
func WithPenType(p tool.PenType) Option { return func(v *View) { v.settings.Pen = p } }

// WithStamp sets the stamp image.
func WithStamp(img image.Image) Option { return func(v *View) { v.settings.Stamp = img } }

// WithStampSpacing sets the minimum distance between stamps.
func WithStampSpacing(d float64) Option { return func(v *View) { v.settings.StampSpacing = d } }

// WithTolerance sets the fill tolerance.
func WithTolerance(t uint8) Option { return func(v *View) { v.settings.Tolerance = t } }

// WithObserver registers the gesture observer.
func WithObserver(o Observer) Option { return func(v *View) { v.observer = o } }

// WithRepaint registers the repaint callback.
func WithRepaint(fn RepaintFunc) Option { return func(v *View) { v.repaint = fn } }

// WithLogger overrides the package logger for this view.
func WithLogger(l *slog.Logger) Option { return func(v *View) { v.log = l } }

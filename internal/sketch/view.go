// Package sketch turns pointer gestures into drawing tools and keeps the
// resulting raster, history and live preview in step.
package sketch

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log/slog"

	"github.com/example/sketchpad/internal/cache"
	"github.com/example/sketchpad/internal/geom"
	"github.com/example/sketchpad/internal/history"
	"github.com/example/sketchpad/internal/tool"
)

// State is the gesture state of a View.
type State int

const (
	Idle State = iota
	Drawing
)

func (s State) String() string {
	if s == Drawing {
		return "drawing"
	}
	return "idle"
}

// ErrEmptySurface is returned by New for a surface without area.
var ErrEmptySurface = errors.New("surface has no area")

// View is a drawing surface driven by a single pointer. All methods must be
// called from one goroutine.
type View struct {
	settings Settings
	cache    *cache.Cache
	history  history.History[tool.Tool]
	observer Observer
	repaint  RepaintFunc
	log      *slog.Logger

	active       tool.Tool
	prev2, prev1 geom.Point
	current      geom.Point
	terminal     bool
}

// New returns an empty view of the given size.
func New(size image.Point, opts ...Option) (*View, error) {
	if size.X <= 0 || size.Y <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrEmptySurface, size)
	}
	v := &View{
		settings: DefaultSettings(),
		cache:    cache.New(size),
		log:      Logger(),
	}
	for _, o := range opts {
		o(v)
	}
	if err := v.settings.Validate(); err != nil {
		return nil, fmt.Errorf("settings: %w", err)
	}
	v.cache.Recomposite(nil)
	return v, nil
}

// Bounds is the drawing surface, with its origin at zero.
func (v *View) Bounds() image.Rectangle {
	return v.cache.Bounds()
}

// State reports whether a gesture is in progress.
func (v *View) State() State {
	if v.active != nil {
		return Drawing
	}
	return Idle
}

// Active returns the tool of the gesture in progress, or nil.
func (v *View) Active() tool.Tool {
	return v.active
}

// Settings returns the current settings.
func (v *View) Settings() Settings {
	return v.settings
}

// SetSettings replaces the settings used by the next gesture. A gesture in
// progress keeps the style it started with.
func (v *View) SetSettings(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	v.settings = s
	return nil
}

func (v *View) update(fn func(*Settings)) error {
	s := v.settings
	fn(&s)
	return v.SetSettings(s)
}

// SetTool selects the tool created by the next Begin.
func (v *View) SetTool(k tool.Kind) error {
	return v.update(func(s *Settings) { s.Tool = k })
}

// SetColor sets the stroke and fill colour.
func (v *View) SetColor(c color.Color) error {
	return v.update(func(s *Settings) { s.Color = c })
}

// SetWidth sets the line width in pixels. It must be positive.
func (v *View) SetWidth(w float64) error {
	return v.update(func(s *Settings) { s.Width = w })
}

// SetAlpha sets the opacity, in (0,1].
func (v *View) SetAlpha(a float64) error {
	return v.update(func(s *Settings) { s.Alpha = a })
}

// SetSnapRadius sets how close a line end must be to join another line.
func (v *View) SetSnapRadius(r float64) error {
	return v.update(func(s *Settings) { s.SnapRadius = r })
}

// SetPenType selects how pen strokes are blended.
func (v *View) SetPenType(p tool.PenType) error {
	return v.update(func(s *Settings) { s.Pen = p })
}

// SetStamp sets the image placed by the stamp tool. Nil stamps nothing.
func (v *View) SetStamp(img image.Image) error {
	return v.update(func(s *Settings) { s.Stamp = img })
}

// SetStampSpacing sets the minimum distance between stamp placements.
func (v *View) SetStampSpacing(d float64) error {
	return v.update(func(s *Settings) { s.StampSpacing = d })
}

// SetTolerance sets the per channel difference the fill tool ignores.
func (v *View) SetTolerance(t uint8) error {
	return v.update(func(s *Settings) { s.Tolerance = t })
}

// Begin starts a gesture at p. A gesture still in progress is finished first.
func (v *View) Begin(p geom.Point) {
	if v.active != nil {
		v.log.Debug("begin while drawing, finishing previous gesture", "tool", v.active.Kind())
		v.finish()
	}
	tl, err := tool.New(v.settings.Tool, v.settings.Style())
	if err != nil {
		v.log.Warn("cannot create tool", "tool", v.settings.Tool, "err", err)
		return
	}
	v.active = tl
	v.prev2, v.prev1, v.current = p, p, p
	if s, ok := v.snap(p); ok {
		v.prev2, v.prev1, v.current = s, s, s
	}
	v.log.Debug("begin", "tool", tl.Kind(), "id", tl.ID(), "x", v.current.X, "y", v.current.Y)
	if v.observer != nil {
		v.observer.WillBeginDrawing(tl, v.current)
	}
	tl.Begin(v.current)
	v.requestRepaint(v.dirty(tl))
}

// Move feeds the next pointer position of the gesture. It is ignored when no
// gesture is in progress.
func (v *View) Move(p geom.Point) {
	tl := v.active
	if tl == nil {
		return
	}
	v.prev2 = v.prev1
	v.prev1 = v.current
	v.current = p
	if v.terminal {
		if s, ok := v.snap(p); ok {
			v.prev1, v.current = s, s
		}
	}
	if sm, ok := tl.(tool.Smoother); ok {
		v.requestRepaint(sm.Extend(v.prev2, v.prev1, v.current))
	} else {
		tl.Move(v.prev1, v.current)
		v.requestRepaint(v.Bounds())
	}
	if v.observer != nil {
		v.observer.DidContinueDrawing(tl, v.current)
	}
}

// End finishes the gesture at p and commits its tool.
func (v *View) End(p geom.Point) {
	if v.active == nil {
		return
	}
	v.terminal = true
	v.Move(p)
	v.terminal = false
	v.finish()
}

// Cancel drops the gesture in progress without committing it.
func (v *View) Cancel() {
	tl := v.active
	if tl == nil {
		return
	}
	v.active = nil
	v.log.Debug("cancel", "tool", tl.Kind(), "id", tl.ID())
	v.requestRepaint(v.dirty(tl))
}

func (v *View) finish() {
	tl := v.active
	v.cache.Flatten(tl)
	v.history.Push(tl)
	v.active = nil
	v.log.Debug("commit", "tool", tl.Kind(), "id", tl.ID(), "strokes", v.history.Len())
	if v.observer != nil {
		v.observer.DidEndDrawing(tl)
	}
	v.requestRepaint(v.dirty(tl))
}

// abandon finishes any gesture in progress before the history is changed.
func (v *View) abandon() {
	if v.active != nil {
		v.finish()
	}
}

// snap replaces p with the first committed line end within the snap radius.
// Only line gestures snap.
func (v *View) snap(p geom.Point) (geom.Point, bool) {
	if v.active == nil || v.active.Kind() != tool.Line {
		return p, false
	}
	r := v.settings.SnapRadius
	for _, t := range v.history.Committed() {
		if t.Kind() != tool.Line || t == v.active {
			continue
		}
		e, ok := t.(tool.Endpoints)
		if !ok {
			continue
		}
		if geom.Distance(p, e.First()) <= r {
			return e.First(), true
		}
		if geom.Distance(p, e.Last()) <= r {
			return e.Last(), true
		}
	}
	return p, false
}

// dirty is the region to present after tl changed. Freehand tools know
// their extent; everything else repaints the whole surface.
func (v *View) dirty(tl tool.Tool) image.Rectangle {
	if _, ok := tl.(tool.Smoother); ok {
		return tl.Bounds().Intersect(v.Bounds())
	}
	return v.Bounds()
}

func (v *View) requestRepaint(r image.Rectangle) {
	if v.repaint != nil && !r.Empty() {
		v.repaint(r)
	}
}

func (v *View) rebuild() {
	v.cache.Recomposite(v.history.Committed())
	v.requestRepaint(v.Bounds())
}

// Undo removes the most recent stroke. It does nothing when there is none.
func (v *View) Undo() {
	v.abandon()
	if t, ok := v.history.Undo(); ok {
		v.log.Debug("undo", "tool", t.Kind(), "id", t.ID())
		v.rebuild()
	}
}

// Redo restores the most recently undone stroke.
func (v *View) Redo() {
	v.abandon()
	if t, ok := v.history.Redo(); ok {
		v.log.Debug("redo", "tool", t.Kind(), "id", t.ID())
		v.rebuild()
	}
}

// CanUndo reports whether there is a stroke to undo.
func (v *View) CanUndo() bool {
	return v.history.CanUndo()
}

// CanRedo reports whether there is an undone stroke to restore.
func (v *View) CanRedo() bool {
	return v.history.CanRedo()
}

// Clear removes every stroke and the redo history. A loaded background
// stays.
func (v *View) Clear() {
	v.abandon()
	v.history.Clear()
	v.log.Debug("clear")
	v.rebuild()
}

// Reset clears the view and drops the background as well.
func (v *View) Reset() {
	v.cache.SetBackground(nil, v.cache.Mode())
	v.Clear()
}

// LoadImage makes img the background and discards all strokes.
func (v *View) LoadImage(img image.Image, mode cache.RenderingMode) {
	v.abandon()
	v.history.Clear()
	v.cache.SetBackground(img, mode)
	if img != nil {
		v.log.Debug("load image", "bounds", img.Bounds(), "mode", mode)
	}
	v.rebuild()
}

// Background returns the loaded background image, or nil.
func (v *View) Background() image.Image {
	return v.cache.Background()
}

// SaveImage returns a copy of the committed drawing.
func (v *View) SaveImage() *image.RGBA {
	return v.cache.Snapshot()
}

// Committed returns the committed tools in draw order.
func (v *View) Committed() []tool.Tool {
	return v.history.Committed()
}

// Render draws the current frame, committed strokes and the gesture in
// progress, into the clip region of dst.
func (v *View) Render(dst draw.Image, clip image.Rectangle) {
	v.cache.Render(dst, clip, v.active)
}

// CacheStats exposes how often the raster has been rebuilt.
func (v *View) CacheStats() cache.Stats {
	return v.cache.Stats()
}

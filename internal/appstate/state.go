// Package appstate hosts a drawing view in a desktop window.
package appstate

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/sketchpad/internal/cache"
	"github.com/example/sketchpad/internal/clipboard"
	"github.com/example/sketchpad/internal/geom"
	"github.com/example/sketchpad/internal/notify"
	"github.com/example/sketchpad/internal/sketch"
	"github.com/example/sketchpad/internal/theme"
	"github.com/example/sketchpad/internal/tool"
)

// DefaultSize is the page size used when neither a size nor a background
// is given.
var DefaultSize = image.Pt(800, 600)

var (
	copyImage  = clipboard.WriteImage
	pasteImage = clipboard.ReadImage
)

// AppState owns the window side of a drawing session.
type AppState struct {
	view     *sketch.View
	page     *image.RGBA
	pending  image.Rectangle
	backdrop *image.RGBA

	size       image.Point
	settings   sketch.Settings
	background image.Image
	mode       cache.RenderingMode
	output     string
	saveDir    string
	theme      *theme.Theme
	notifier   *notify.Notifier

	message      string
	messageUntil time.Time
	actions      map[string]func()
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithSize sets the page size. It defaults to the background size.
func WithSize(sz image.Point) Option { return func(a *AppState) { a.size = sz } }

// WithSettings sets the initial tool settings.
func WithSettings(s sketch.Settings) Option { return func(a *AppState) { a.settings = s } }

// WithBackground loads img under the drawing.
func WithBackground(img image.Image, mode cache.RenderingMode) Option {
	return func(a *AppState) { a.background, a.mode = img, mode }
}

// WithOutput sets the file ctrl+s writes to.
func WithOutput(path string) Option { return func(a *AppState) { a.output = path } }

// WithSaveDir sets where ctrl+s writes when no output file is set.
func WithSaveDir(dir string) Option { return func(a *AppState) { a.saveDir = dir } }

// WithTheme sets the window colours.
func WithTheme(t *theme.Theme) Option {
	return func(a *AppState) {
		if t != nil {
			a.theme = t
		}
	}
}

// WithNotifier sets the notifier used after save, copy and paste.
func WithNotifier(n *notify.Notifier) Option { return func(a *AppState) { a.notifier = n } }

// New creates the drawing view for a window session.
func New(opts ...Option) (*AppState, error) {
	a := &AppState{
		settings: sketch.DefaultSettings(),
		theme:    theme.Default(),
	}
	for _, o := range opts {
		o(a)
	}
	if a.size == (image.Point{}) {
		a.size = DefaultSize
		if a.background != nil {
			a.size = a.background.Bounds().Size()
		}
	}
	v, err := sketch.New(a.size,
		sketch.WithSettings(a.settings),
		sketch.WithRepaint(a.invalidate),
	)
	if err != nil {
		return nil, err
	}
	a.view = v
	a.page = image.NewRGBA(v.Bounds())
	if a.background != nil {
		v.LoadImage(a.background, a.mode)
	}
	a.pending = v.Bounds()
	a.actions = a.buildActions()
	return a, nil
}

// View returns the drawing view.
func (a *AppState) View() *sketch.View { return a.view }

func (a *AppState) invalidate(r image.Rectangle) {
	a.pending = a.pending.Union(r)
}

func (a *AppState) setMessage(format string, args ...interface{}) {
	a.message = fmt.Sprintf(format, args...)
	a.messageUntil = time.Now().Add(messageTTL)
	log.Print(a.message)
}

func (a *AppState) buildActions() map[string]func() {
	m := map[string]func(){
		"undo":       a.view.Undo,
		"redo":       a.view.Redo,
		"clear":      a.view.Clear,
		"reset":      a.view.Reset,
		"cancel":     a.view.Cancel,
		"save":       func() { a.save() },
		"copy":       a.copy,
		"paste":      a.paste,
		"thinner":    func() { a.apply(a.view.SetWidth(nextWidth(a.view.Settings().Width, -1))) },
		"thicker":    func() { a.apply(a.view.SetWidth(nextWidth(a.view.Settings().Width, 1))) },
		"pen-type":   a.cyclePen,
		"next-color": func() { a.cycleColor(1) },
		"prev-color": func() { a.cycleColor(-1) },
	}
	for _, k := range tool.Kinds() {
		k := k
		m["tool:"+k.String()] = func() { a.apply(a.view.SetTool(k)) }
	}
	return m
}

func (a *AppState) apply(err error) {
	if err != nil {
		a.setMessage("%v", err)
	}
}

func (a *AppState) cyclePen() {
	p := (a.view.Settings().Pen + 1) % tool.PenType(len(tool.PenTypes()))
	a.apply(a.view.SetPenType(p))
}

func (a *AppState) cycleColor(dir int) {
	i := paletteIndex(a.view.Settings().Color)
	if i < 0 {
		i = 0
	} else {
		i = (i + dir + len(palette)) % len(palette)
	}
	a.apply(a.view.SetColor(palette[i].Color))
}

// savePath picks the file ctrl+s writes to.
func (a *AppState) savePath(now time.Time) string {
	if a.output != "" {
		return a.output
	}
	dir := a.saveDir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, "sketch-"+now.Format("20060102-150405")+".png")
}

func (a *AppState) save() string {
	path := a.savePath(time.Now())
	if err := writePNG(path, a.view.SaveImage()); err != nil {
		a.setMessage("save: %v", err)
		return ""
	}
	a.setMessage("saved %s", path)
	a.notifier.Save(a.summary(path))
	return path
}

// summary describes the current drawing for notifications.
func (a *AppState) summary(path string) notify.Drawing {
	return notify.Drawing{Path: path, Size: a.view.Bounds().Size(), Strokes: len(a.view.Committed())}
}

func writePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (a *AppState) copy() {
	if err := copyImage(a.view.SaveImage()); err != nil {
		a.setMessage("copy: %v", err)
		return
	}
	a.setMessage("copied drawing")
	a.notifier.Copy(a.summary(""))
}

func (a *AppState) paste() {
	img, err := pasteImage()
	if err != nil {
		if errors.Is(err, clipboard.ErrUnavailable) {
			a.setMessage("clipboard unavailable")
		} else {
			a.setMessage("paste: %v", err)
		}
		return
	}
	a.view.LoadImage(img, a.mode)
	a.setMessage("pasted background %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
}

// handleShortcut runs the named action and reports whether it exists.
func (a *AppState) handleShortcut(action string) bool {
	fn, ok := a.actions[action]
	if ok {
		fn()
	}
	return ok
}

// handleMouse feeds pointer events to the view. The left button draws.
// It reports whether the window needs repainting.
func (a *AppState) handleMouse(e mouse.Event) bool {
	p := geom.Pt(float64(e.X)-margin, float64(e.Y)-margin)
	drawing := a.view.State() == sketch.Drawing
	switch {
	case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress:
		// Presses on the margin or the status bar do not start a stroke.
		if !p.In(a.view.Bounds()) {
			return false
		}
		a.view.Begin(p)
	case e.Direction == mouse.DirNone && drawing:
		a.view.Move(p)
	case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirRelease && drawing:
		a.view.End(p)
	case e.Button == mouse.ButtonRight && e.Direction == mouse.DirPress && drawing:
		a.view.Cancel()
	default:
		return false
	}
	return true
}

// handleKey runs the shortcut bound to e. It reports whether the window
// needs repainting and whether it should close.
func (a *AppState) handleKey(e key.Event) (changed, quit bool) {
	if e.Direction != key.DirPress {
		return false, false
	}
	action, ok := keyAction[eventKeys(e)]
	if !ok {
		return false, false
	}
	if action == "quit" {
		return false, true
	}
	return a.handleShortcut(action), false
}

// Run executes the UI loop using shiny's driver.
func (a *AppState) Run() { driver.Main(a.Main) }

// Main runs the window event loop on s until the window closes.
func (a *AppState) Main(s screen.Screen) {
	sz := windowSize(a.view.Bounds())
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: sz.X, Height: sz.Y, Title: "Sketchpad"})
	if err != nil {
		log.Printf("new window: %v", err)
		return
	}
	defer w.Release()

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			sz = e.Size()
			w.Send(paint.Event{})
		case paint.Event:
			a.paint(s, w, sz)
		case mouse.Event:
			if a.handleMouse(e) {
				w.Send(paint.Event{})
			}
		case key.Event:
			changed, quit := a.handleKey(e)
			if quit {
				return
			}
			if changed {
				w.Send(paint.Event{})
			}
		case error:
			log.Printf("window: %v", e)
		}
	}
}

func (a *AppState) paint(s screen.Screen, w screen.Window, sz image.Point) {
	if sz.X <= 0 || sz.Y <= 0 {
		return
	}
	b, err := s.NewBuffer(sz)
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()
	a.compose(b.RGBA(), time.Now())
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

// Package notify sends desktop notifications when a drawing is captured,
// saved or copied.
package notify

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/sketchpad/internal/config"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventCapture fires when a screenshot is loaded as the drawing background.
	EventCapture Event = "capture"
	// EventSave fires when the drawing is written to disk.
	EventSave Event = "save"
	// EventCopy fires when the drawing is copied to the clipboard.
	EventCopy Event = "copy"
)

// Options configures how a notification is displayed.
type Options struct {
	// IconPath points to an image shown alongside the message where supported.
	IconPath string
}

// Drawing summarises the sketch a notification is about.
type Drawing struct {
	// Source names where a background came from, such as "desktop".
	Source string
	// Path is the file the drawing was written to.
	Path    string
	Size    image.Point
	Strokes int
}

// expand replaces the {source}, {path}, {size} and {strokes} placeholders
// of template with the fields of d.
func (d Drawing) expand(template string) string {
	strokes := fmt.Sprintf("%d strokes", d.Strokes)
	if d.Strokes == 1 {
		strokes = "1 stroke"
	}
	source := d.Source
	if source == "" {
		source = "screenshot"
	}
	return strings.NewReplacer(
		"{source}", source,
		"{path}", d.Path,
		"{size}", fmt.Sprintf("%dx%d", d.Size.X, d.Size.Y),
		"{strokes}", strokes,
	).Replace(template)
}

// Preferences holds the title and per-event message templates. Templates
// may use the placeholders understood by Drawing.
type Preferences struct {
	Title     string
	Templates map[Event]string
}

// DefaultPreferences returns the built-in notification text.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: "Sketchpad",
		Templates: map[Event]string{
			EventCapture: "Drawing on {source} ({size})",
			EventSave:    "Saved {path} ({size}, {strokes})",
			EventCopy:    "Copied {size} drawing with {strokes} to clipboard",
		},
	}
}

// LoadPreferences applies SKETCHPAD_NOTIFY_* overrides to the defaults.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(os.Getenv("SKETCHPAD_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	for event, key := range map[Event]string{
		EventCapture: "SKETCHPAD_NOTIFY_CAPTURE_TEXT",
		EventSave:    "SKETCHPAD_NOTIFY_SAVE_TEXT",
		EventCopy:    "SKETCHPAD_NOTIFY_COPY_TEXT",
	} {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			prefs.Templates[event] = v
		}
	}
	return prefs
}

// send delivers a notification through the host platform.
var send = platformNotify

// Notifier sends notifications for the events it has been enabled for.
// A nil Notifier is valid and does nothing.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
}

// New creates a Notifier with every event disabled.
func New(prefs Preferences) *Notifier {
	templates := make(map[Event]string, len(prefs.Templates))
	for k, v := range prefs.Templates {
		templates[k] = v
	}
	return &Notifier{
		prefs:   Preferences{Title: prefs.Title, Templates: templates},
		enabled: make(map[Event]bool),
	}
}

// FromConfig creates a Notifier enabled per the [notify] config section.
func FromConfig(cfg config.Notify) *Notifier {
	n := New(LoadPreferences())
	n.Enable(EventCapture, cfg.Capture)
	n.Enable(EventSave, cfg.Save)
	n.Enable(EventCopy, cfg.Copy)
	return n
}

// Enable toggles the notifier for event.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	n.enabled[event] = enabled
}

// Capture announces a screenshot loaded as background. The image doubles as
// the notification icon.
func (n *Notifier) Capture(source string, img image.Image) {
	if !n.enabledFor(EventCapture) {
		return
	}
	d := Drawing{Source: source}
	opts := Options{}
	if img != nil {
		d.Size = img.Bounds().Size()
		if path, cleanup, err := createPreview(img); err != nil {
			log.Printf("notification preview: %v", err)
		} else {
			defer cleanup()
			opts.IconPath = path
		}
	}
	n.dispatch(EventCapture, d, opts)
}

// Save announces a drawing written to d.Path. The saved file is used as the
// icon when it exists.
func (n *Notifier) Save(d Drawing) {
	if !n.enabledFor(EventSave) {
		return
	}
	opts := Options{}
	if abs, err := filepath.Abs(d.Path); err == nil {
		d.Path = abs
		if _, err := os.Stat(abs); err == nil {
			opts.IconPath = abs
		}
	}
	n.dispatch(EventSave, d, opts)
}

// Copy announces a drawing placed on the clipboard.
func (n *Notifier) Copy(d Drawing) {
	if !n.enabledFor(EventCopy) {
		return
	}
	n.dispatch(EventCopy, d, Options{})
}

func (n *Notifier) enabledFor(event Event) bool {
	return n != nil && n.enabled[event]
}

func (n *Notifier) dispatch(event Event, d Drawing, opts Options) {
	template := strings.TrimSpace(n.prefs.Templates[event])
	if template == "" {
		return
	}
	if err := send(n.prefs.Title, d.expand(template), opts); err != nil {
		log.Printf("notification %s: %v", event, err)
	}
}

func createPreview(img image.Image) (string, func(), error) {
	f, err := os.CreateTemp("", "sketchpad-preview-*.png")
	if err != nil {
		return "", nil, err
	}
	path := f.Name()
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", nil, err
	}
	cleanup := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("remove preview: %v", err)
		}
	}
	return path, cleanup, nil
}

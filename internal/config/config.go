package config

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/example/sketchpad/internal/cache"
	"github.com/example/sketchpad/internal/sketch"
	"github.com/example/sketchpad/internal/theme"
	"github.com/example/sketchpad/internal/tool"
)

// Notify holds notification settings.
type Notify struct {
	Capture bool
	Save    bool
	Copy    bool
}

// Sketch holds the drawing defaults applied to a new view.
type Sketch struct {
	Tool         tool.Kind
	Color        color.RGBA
	Width        float64
	Alpha        float64
	Snap         float64
	Pen          tool.PenType
	Mode         cache.RenderingMode
	Tolerance    uint8
	Stamp        string // path to an image file
	StampSpacing float64
}

// Config holds the application configuration.
type Config struct {
	Theme   string
	SaveDir string
	Notify  Notify
	Sketch  Sketch
	Themes  map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	d := sketch.DefaultSettings()
	return &Config{
		Sketch: Sketch{
			Tool:  d.Tool,
			Color: color.RGBA{A: 255},
			Width: d.Width,
			Alpha: d.Alpha,
			Snap:  d.SnapRadius,
			Pen:   d.Pen,
			Mode:  cache.ModeOriginal,
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// Settings converts the [sketch] section to view settings. The stamp image
// is not included; see LoadStamp.
func (s Sketch) Settings() sketch.Settings {
	return sketch.Settings{
		Tool:         s.Tool,
		Color:        s.Color,
		Width:        s.Width,
		Alpha:        s.Alpha,
		SnapRadius:   s.Snap,
		Pen:          s.Pen,
		StampSpacing: s.StampSpacing,
		Tolerance:    s.Tolerance,
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "capture = %v\n", c.Notify.Capture)
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	s := c.Sketch
	sb.WriteString("[sketch]\n")
	fmt.Fprintf(&sb, "tool = %s\n", s.Tool)
	fmt.Fprintf(&sb, "color = %s\n", theme.FormatColor(s.Color))
	fmt.Fprintf(&sb, "width = %g\n", s.Width)
	fmt.Fprintf(&sb, "alpha = %g\n", s.Alpha)
	fmt.Fprintf(&sb, "snap = %g\n", s.Snap)
	fmt.Fprintf(&sb, "pen = %s\n", s.Pen)
	fmt.Fprintf(&sb, "mode = %s\n", s.Mode)
	fmt.Fprintf(&sb, "tolerance = %d\n", s.Tolerance)
	if s.Stamp != "" {
		fmt.Fprintf(&sb, "stamp = %s\n", s.Stamp)
	}
	if s.StampSpacing != 0 {
		fmt.Fprintf(&sb, "stamp_spacing = %g\n", s.StampSpacing)
	}
	sb.WriteString("\n")

	// Sort keys for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		for _, f := range theme.Fields(t) {
			fmt.Fprintf(&sb, "%s: %s\n", f.Name, theme.FormatColor(f.Color))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// Save writes the configuration to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(c.String()), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

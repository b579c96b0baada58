package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"os"

	"github.com/example/sketchpad/internal/cache"
	"github.com/example/sketchpad/internal/geom"
	"github.com/example/sketchpad/internal/notify"
	"github.com/example/sketchpad/internal/sketch"
	"github.com/example/sketchpad/internal/theme"
	"github.com/example/sketchpad/internal/tool"
)

// Script is a recorded drawing session.
type Script struct {
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Background string `json:"background"`
	Mode       string `json:"mode"`
	Steps      []Step `json:"steps"`
}

// Step is one gesture event or command of a Script.
type Step struct {
	Op     string       `json:"op"`
	X      float64      `json:"x"`
	Y      float64      `json:"y"`
	Points [][2]float64 `json:"points"`

	// set
	Tool         string   `json:"tool"`
	Color        string   `json:"color"`
	Width        *float64 `json:"width"`
	Alpha        *float64 `json:"alpha"`
	Pen          string   `json:"pen"`
	Snap         *float64 `json:"snap"`
	Tolerance    *uint8   `json:"tolerance"`
	Stamp        string   `json:"stamp"`
	StampSpacing *float64 `json:"stamp_spacing"`
}

// renderCmd replays a Script without opening a window.
type renderCmd struct {
	*root
	fs *flag.FlagSet

	input  string
	output string
	mode   string
	size   string
	style  styleFlags
	trace  bool
}

func (c *renderCmd) Program() string {
	return c.subcommand("render")
}

func (c *renderCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func newRenderCmd(r *root) *renderCmd {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	c := &renderCmd{root: r, fs: fs}
	fs.StringVar(&c.input, "input", "", "script file (JSON), - for stdin")
	fs.StringVar(&c.output, "output", "", "output PNG file")
	fs.StringVar(&c.mode, "mode", "", "background rendering: original or scale")
	fs.StringVar(&c.size, "size", "", "page size when the script has none, e.g. 800x600")
	fs.BoolVar(&c.trace, "trace", false, "log every gesture as it is replayed")
	c.style.register(fs)
	fs.Usage = usageFunc(c)
	return c
}

func parseRenderCmd(args []string, r *root) (*renderCmd, error) {
	c := newRenderCmd(r)
	if err := c.fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, &UsageError{of: c}
		}
		return nil, &UsageError{of: c, err: err}
	}
	if c.input == "" || c.output == "" {
		return nil, &UsageError{of: c, err: errors.New("-input and -output are required")}
	}
	return c, nil
}

func (c *renderCmd) readScript() (*Script, error) {
	var in io.Reader = os.Stdin
	if c.input != "-" {
		f, err := os.Open(c.input)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		in = f
	}
	var s Script
	dec := json.NewDecoder(in)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decode input: %w", err)
	}
	return &s, nil
}

// view creates the surface a script is replayed on.
func (c *renderCmd) view(s *Script) (*sketch.View, error) {
	settings, err := c.style.apply(c.config.Sketch.Settings())
	if err != nil {
		return nil, err
	}
	if settings.Stamp, err = c.config.Sketch.LoadStamp(); err != nil {
		return nil, err
	}

	mode := c.config.Sketch.Mode
	for _, m := range []string{s.Mode, c.mode} {
		if m == "" {
			continue
		}
		if mode, err = cache.ParseRenderingMode(m); err != nil {
			return nil, err
		}
	}

	var bg image.Image
	if s.Background != "" {
		if bg, err = loadImage(s.Background); err != nil {
			return nil, err
		}
	}

	size := image.Pt(s.Width, s.Height)
	if c.size != "" {
		if size, err = parseSize(c.size); err != nil {
			return nil, err
		}
	}
	if size.X <= 0 || size.Y <= 0 {
		if bg == nil {
			return nil, errors.New("script needs a width and height or a background")
		}
		size = bg.Bounds().Size()
	}

	opts := []sketch.Option{sketch.WithSettings(settings)}
	if c.trace {
		opts = append(opts, sketch.WithObserver(traceObserver()))
	}
	v, err := sketch.New(size, opts...)
	if err != nil {
		return nil, err
	}
	if bg != nil {
		v.LoadImage(bg, mode)
	}
	return v, nil
}

func traceObserver() sketch.ObserverFuncs {
	return sketch.ObserverFuncs{
		WillBegin: func(t tool.Tool, p geom.Point) {
			log.Printf("begin %s %s at %.1f,%.1f", t.Kind(), t.ID(), p.X, p.Y)
		},
		DidEnd: func(t tool.Tool) {
			log.Printf("end %s %s bounds %v", t.Kind(), t.ID(), t.Bounds())
		},
	}
}

// replay applies the steps of a script to v in order.
func replay(v *sketch.View, steps []Step) error {
	for i, st := range steps {
		if err := apply(v, st); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, st.Op, err)
		}
	}
	return nil
}

func apply(v *sketch.View, st Step) error {
	p := geom.Pt(st.X, st.Y)
	switch st.Op {
	case "begin":
		v.Begin(p)
	case "move":
		v.Move(p)
	case "end":
		v.End(p)
	case "stroke":
		if len(st.Points) == 0 {
			return errors.New("stroke needs at least one point")
		}
		pts := make([]geom.Point, len(st.Points))
		for i, xy := range st.Points {
			pts[i] = geom.Pt(xy[0], xy[1])
		}
		v.Begin(pts[0])
		for _, q := range pts[1:] {
			v.Move(q)
		}
		v.End(pts[len(pts)-1])
	case "cancel":
		v.Cancel()
	case "undo":
		v.Undo()
	case "redo":
		v.Redo()
	case "clear":
		v.Clear()
	case "reset":
		v.Reset()
	case "set":
		return applySet(v, st)
	default:
		return fmt.Errorf("unknown op %q", st.Op)
	}
	return nil
}

func applySet(v *sketch.View, st Step) error {
	s := v.Settings()
	var err error
	if st.Tool != "" {
		if s.Tool, err = tool.ParseKind(st.Tool); err != nil {
			return err
		}
	}
	if st.Color != "" {
		if s.Color, err = theme.ParseColor(st.Color); err != nil {
			return err
		}
	}
	if st.Pen != "" {
		if s.Pen, err = tool.ParsePenType(st.Pen); err != nil {
			return err
		}
	}
	if st.Width != nil {
		s.Width = *st.Width
	}
	if st.Alpha != nil {
		s.Alpha = *st.Alpha
	}
	if st.Snap != nil {
		s.SnapRadius = *st.Snap
	}
	if st.Tolerance != nil {
		s.Tolerance = *st.Tolerance
	}
	if st.StampSpacing != nil {
		s.StampSpacing = *st.StampSpacing
	}
	if st.Stamp != "" {
		if s.Stamp, err = loadImage(st.Stamp); err != nil {
			return err
		}
	}
	return v.SetSettings(s)
}

func (c *renderCmd) Run() error {
	s, err := c.readScript()
	if err != nil {
		return err
	}
	v, err := c.view(s)
	if err != nil {
		return err
	}
	if err := replay(v, s.Steps); err != nil {
		return err
	}

	outF, err := os.Create(c.output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer outF.Close()
	if err := png.Encode(outF, v.SaveImage()); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	c.notifier.Save(notify.Drawing{Path: c.output, Size: v.Bounds().Size(), Strokes: len(v.Committed())})
	return nil
}

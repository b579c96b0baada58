package main

import (
	"flag"
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/example/sketchpad/internal/sketch"
	"github.com/example/sketchpad/internal/theme"
	"github.com/example/sketchpad/internal/tool"
)

// styleFlags are the drawing settings shared by draw and render. Empty or
// zero values keep the configured setting.
type styleFlags struct {
	tool  string
	color string
	width float64
	alpha float64
	pen   string
	snap  float64
}

func (s *styleFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&s.tool, "tool", "", "initial tool")
	fs.StringVar(&s.color, "color", "", "stroke colour (hex or colour name)")
	fs.Float64Var(&s.width, "stroke", 0, "stroke width in pixels")
	fs.Float64Var(&s.alpha, "alpha", 0, "stroke opacity in (0,1]")
	fs.StringVar(&s.pen, "pen", "", "pen type: normal, blur or neon")
	fs.Float64Var(&s.snap, "snap", -1, "line snapping radius in pixels")
}

func (s *styleFlags) apply(set sketch.Settings) (sketch.Settings, error) {
	if s.tool != "" {
		k, err := tool.ParseKind(s.tool)
		if err != nil {
			return set, err
		}
		set.Tool = k
	}
	if s.color != "" {
		c, err := theme.ParseColor(s.color)
		if err != nil {
			return set, err
		}
		set.Color = c
	}
	if s.width != 0 {
		set.Width = s.width
	}
	if s.alpha != 0 {
		set.Alpha = s.alpha
	}
	if s.pen != "" {
		p, err := tool.ParsePenType(s.pen)
		if err != nil {
			return set, err
		}
		set.Pen = p
	}
	if s.snap >= 0 {
		set.SnapRadius = s.snap
	}
	return set, set.Validate()
}

// parseSize parses a "WIDTHxHEIGHT" page size.
func parseSize(s string) (image.Point, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return image.Point{}, fmt.Errorf("size %q must look like 800x600", s)
	}
	x, err := strconv.Atoi(w)
	if err != nil {
		return image.Point{}, fmt.Errorf("size %q: %w", s, err)
	}
	y, err := strconv.Atoi(h)
	if err != nil {
		return image.Point{}, fmt.Errorf("size %q: %w", s, err)
	}
	if x <= 0 || y <= 0 {
		return image.Point{}, fmt.Errorf("size %q must be positive", s)
	}
	return image.Pt(x, y), nil
}

// parseRegion reads "x,y,w,h" into a rectangle.
func parseRegion(s string) (image.Rectangle, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return image.Rectangle{}, fmt.Errorf("region %q must look like x,y,w,h", s)
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return image.Rectangle{}, fmt.Errorf("region %q: %w", s, err)
		}
		v[i] = n
	}
	if v[2] <= 0 || v[3] <= 0 {
		return image.Rectangle{}, fmt.Errorf("region %q must have a positive size", s)
	}
	return image.Rect(v[0], v[1], v[0]+v[2], v[1]+v[3]), nil
}

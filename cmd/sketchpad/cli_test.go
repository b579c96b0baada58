package main

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/sketchpad/internal/appstate"
	"github.com/example/sketchpad/internal/capture"
	"github.com/example/sketchpad/internal/sketch"
	"github.com/example/sketchpad/internal/tool"
)

// testRoot isolates a root from the user's configuration.
func testRoot(t *testing.T) (*root, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("SKETCHPAD_CONFIG", "")
	t.Setenv("SKETCHPAD_THEME", "")
	r := newRoot()
	var out bytes.Buffer
	r.stdout = &out
	return r, &out
}

func writePNGFile(t *testing.T, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bg.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunWithoutCommandIsUsageError(t *testing.T) {
	r, _ := testRoot(t)
	err := r.Run(nil)
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if !strings.Contains(uerr.Error(), "Usage: sketchpad") {
		t.Fatalf("usage text missing: %s", uerr.Error())
	}
}

func TestUnknownCommand(t *testing.T) {
	r, _ := testRoot(t)
	err := r.Run([]string{"paint"})
	var uerr *UsageError
	if !errors.As(err, &uerr) || !strings.Contains(err.Error(), `unknown command "paint"`) {
		t.Fatalf("expected unknown command usage error, got %v", err)
	}
}

func TestHelpTopics(t *testing.T) {
	for _, topic := range []string{"", "draw", "render", "tools", "config", "version"} {
		r, out := testRoot(t)
		args := []string{"help"}
		if topic != "" {
			args = append(args, topic)
		}
		if err := r.Run(args); err != nil {
			t.Fatalf("help %s: %v", topic, err)
		}
		want := strings.TrimSpace("Usage: sketchpad " + topic)
		if !strings.Contains(out.String(), want) {
			t.Fatalf("help %s: missing %q in %s", topic, want, out.String())
		}
	}
	r, out := testRoot(t)
	if err := r.Run([]string{"help", "render"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "ellipse-fill") || !strings.Contains(out.String(), "-trace") {
		t.Fatalf("render help should list tools and flags: %s", out.String())
	}
}

func TestParseDrawSourcesAreExclusive(t *testing.T) {
	r, _ := testRoot(t)
	_, err := parseDrawCmd([]string{"-file", "x.png", "-capture"}, r)
	if err == nil || !strings.Contains(err.Error(), "mutually exclusive") {
		t.Fatalf("expected exclusivity error, got %v", err)
	}
}

func TestDrawCaptureError(t *testing.T) {
	original := captureScreenshotFn
	sentinel := errors.New("denied")
	captureScreenshotFn = func(context.Context, capture.Options) (*image.RGBA, error) { return nil, sentinel }
	t.Cleanup(func() { captureScreenshotFn = original })

	r, _ := testRoot(t)
	cmd, err := parseDrawCmd([]string{"-capture"}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped capture error, got %v", err)
	} else if !strings.Contains(err.Error(), "failed to capture screen") {
		t.Fatalf("expected message context, got %v", err)
	}
}

func TestDrawCapturesRegionWithCursor(t *testing.T) {
	var gotRect image.Rectangle
	var gotOpts capture.Options
	originalRegion := captureRegionFn
	captureRegionFn = func(_ context.Context, rect image.Rectangle, opts capture.Options) (*image.RGBA, error) {
		gotRect, gotOpts = rect, opts
		return image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy())), nil
	}
	originalShot := captureScreenshotFn
	captureScreenshotFn = func(context.Context, capture.Options) (*image.RGBA, error) {
		t.Fatalf("full screenshot taken for a region capture")
		return nil, nil
	}
	var got *appstate.AppState
	originalRun := runWindowFn
	runWindowFn = func(a *appstate.AppState) { got = a }
	t.Cleanup(func() {
		captureRegionFn = originalRegion
		captureScreenshotFn = originalShot
		runWindowFn = originalRun
	})

	r, _ := testRoot(t)
	if err := r.Run([]string{"draw", "-capture", "-cursor", "-region", "10,20,64,48"}); err != nil {
		t.Fatalf("draw: %v", err)
	}
	if gotRect != image.Rect(10, 20, 74, 68) || !gotOpts.IncludeCursor || gotOpts.Interactive {
		t.Fatalf("region capture called with %v %+v", gotRect, gotOpts)
	}
	if got == nil || got.View().Bounds() != image.Rect(0, 0, 64, 48) {
		t.Fatalf("page not sized to the region: %v", got)
	}
}

func TestDrawCaptureFlagsNeedCapture(t *testing.T) {
	r, _ := testRoot(t)
	for _, args := range [][]string{
		{"-region", "0,0,10,10"},
		{"-cursor"},
		{"-interactive"},
		{"-capture", "-interactive", "-region", "0,0,10,10"},
	} {
		var ue *UsageError
		if _, err := parseDrawCmd(args, r); !errors.As(err, &ue) {
			t.Errorf("parseDrawCmd(%q) = %v, want usage error", args, err)
		}
	}
}

func TestParseRegion(t *testing.T) {
	if r, err := parseRegion("5, 6, 7, 8"); err != nil || r != image.Rect(5, 6, 12, 14) {
		t.Fatalf("parseRegion = %v, %v", r, err)
	}
	for _, bad := range []string{"", "1,2,3", "a,0,1,1", "0,0,0,5", "0,0,5,-1"} {
		if _, err := parseRegion(bad); err == nil {
			t.Errorf("parseRegion(%q) should fail", bad)
		}
	}
}

func TestDrawBuildsWindowState(t *testing.T) {
	var got *appstate.AppState
	original := runWindowFn
	runWindowFn = func(a *appstate.AppState) { got = a }
	t.Cleanup(func() { runWindowFn = original })

	bg := image.NewRGBA(image.Rect(0, 0, 30, 20))
	path := writePNGFile(t, bg)
	r, _ := testRoot(t)
	if err := r.Run([]string{"draw", "-file", path, "-tool", "star", "-color", "red", "-stroke", "3"}); err != nil {
		t.Fatalf("draw: %v", err)
	}
	if got == nil {
		t.Fatalf("window was not started")
	}
	v := got.View()
	if v.Bounds() != image.Rect(0, 0, 30, 20) {
		t.Fatalf("page bounds = %v", v.Bounds())
	}
	if v.Background() == nil {
		t.Fatalf("background not loaded")
	}
	s := v.Settings()
	if s.Tool != tool.Star || s.Width != 3 || s.Color != (color.RGBA{255, 0, 0, 255}) {
		t.Fatalf("flags not applied: %+v", s)
	}
}

func TestDrawRejectsBadStyle(t *testing.T) {
	r, _ := testRoot(t)
	cmd, err := parseDrawCmd([]string{"-alpha", "2"}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := cmd.state(); !errors.Is(err, tool.ErrInvalidStyle) {
		t.Fatalf("expected invalid style, got %v", err)
	}
}

func TestRenderScript(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "script.json")
	out := filepath.Join(dir, "out.png")
	const src = `{
  "width": 40, "height": 30,
  "steps": [
    {"op": "set", "tool": "rect-fill", "color": "#ff0000"},
    {"op": "stroke", "points": [[5, 5], [20, 20]]},
    {"op": "set", "tool": "line", "width": 2},
    {"op": "stroke", "points": [[0, 25], [39, 25]]},
    {"op": "undo"}
  ]
}`
	if err := os.WriteFile(script, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	r, _ := testRoot(t)
	if err := r.Run([]string{"render", "-input", script, "-output", out}); err != nil {
		t.Fatalf("render: %v", err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds() != image.Rect(0, 0, 40, 30) {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if r, g, b, a := img.At(10, 10).RGBA(); r>>8 != 255 || g != 0 || b != 0 || a>>8 != 255 {
		t.Fatalf("filled rect pixel = %v", img.At(10, 10))
	}
	if _, _, _, a := img.At(30, 25).RGBA(); a != 0 {
		t.Fatalf("undone line still drawn: %v", img.At(30, 25))
	}
}

func TestRenderRequiresInputAndOutput(t *testing.T) {
	r, _ := testRoot(t)
	err := r.Run([]string{"render", "-input", "x.json"})
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestReplayErrors(t *testing.T) {
	tests := []struct {
		step Step
		want string
	}{
		{Step{Op: "paint"}, "unknown op"},
		{Step{Op: "stroke"}, "at least one point"},
		{Step{Op: "set", Tool: "brush"}, "unknown tool"},
		{Step{Op: "set", Color: "nope"}, "nope"},
	}
	for _, tt := range tests {
		v, err := sketch.New(image.Pt(10, 10))
		if err != nil {
			t.Fatal(err)
		}
		err = replay(v, []Step{tt.step})
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("replay(%+v) = %v, want error containing %q", tt.step, err, tt.want)
			continue
		}
		if !strings.Contains(err.Error(), "step 1") {
			t.Errorf("error should name the step: %v", err)
		}
	}
}

func TestReplayGestureSteps(t *testing.T) {
	v, err := sketch.New(image.Pt(50, 50))
	if err != nil {
		t.Fatal(err)
	}
	steps := []Step{
		{Op: "begin", X: 5, Y: 5},
		{Op: "move", X: 10, Y: 10},
		{Op: "cancel"},
		{Op: "begin", X: 5, Y: 5},
		{Op: "move", X: 20, Y: 20},
		{Op: "end", X: 30, Y: 30},
		{Op: "stroke", Points: [][2]float64{{40, 40}}},
		{Op: "undo"},
		{Op: "redo"},
	}
	if err := replay(v, steps); err != nil {
		t.Fatalf("replay: %v", err)
	}
	if n := len(v.Committed()); n != 2 {
		t.Fatalf("committed = %d, want 2", n)
	}
	if err := replay(v, []Step{{Op: "clear"}}); err != nil || v.CanUndo() {
		t.Fatalf("clear step failed: %v", err)
	}
}

func TestToolsListsEverything(t *testing.T) {
	r, out := testRoot(t)
	if err := r.Run([]string{"tools"}); err != nil {
		t.Fatalf("tools: %v", err)
	}
	for _, want := range []string{"rect-fill", "neon", "Magenta", "ctrl+shift+z"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("tools output missing %q:\n%s", want, out.String())
		}
	}
}

func TestConfigPrintUsesConfigFile(t *testing.T) {
	r, out := testRoot(t)
	path := filepath.Join(t.TempDir(), "config")
	if err := os.WriteFile(path, []byte("[sketch]\ntool = arrow\nwidth = 6\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := r.Run([]string{"-config", path, "config", "print"}); err != nil {
		t.Fatalf("config print: %v", err)
	}
	if !strings.Contains(out.String(), "tool = arrow") || !strings.Contains(out.String(), "width = 6") {
		t.Fatalf("config not printed:\n%s", out.String())
	}
}

func TestConfigSaveWritesOverridePath(t *testing.T) {
	r, _ := testRoot(t)
	path := filepath.Join(t.TempDir(), "nested", "config")
	if err := r.Run([]string{"-config", path, "config", "save"}); err != nil {
		t.Fatalf("config save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved config: %v", err)
	}
	if !strings.Contains(string(data), "[sketch]") {
		t.Fatalf("saved config missing [sketch]:\n%s", data)
	}
}

func TestVersion(t *testing.T) {
	r, out := testRoot(t)
	if err := r.Run([]string{"version"}); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "sketchpad version dev\n" {
		t.Fatalf("version output = %q", got)
	}
}

func TestParseSize(t *testing.T) {
	if p, err := parseSize("800x600"); err != nil || p != image.Pt(800, 600) {
		t.Fatalf("parseSize = %v, %v", p, err)
	}
	for _, bad := range []string{"800", "0x10", "ax10", "10x-1"} {
		if _, err := parseSize(bad); err == nil {
			t.Errorf("parseSize(%q) should fail", bad)
		}
	}
}

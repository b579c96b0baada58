package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/example/sketchpad/internal/appstate"
	"github.com/example/sketchpad/internal/cache"
	"github.com/example/sketchpad/internal/capture"
	"github.com/example/sketchpad/internal/clipboard"
)

var (
	captureScreenshotFn = capture.Screenshot
	captureRegionFn     = capture.Region
	readClipboardFn     = clipboard.ReadImage
	runWindowFn         = (*appstate.AppState).Run
)

// drawCmd opens the drawing window.
type drawCmd struct {
	*root
	fs *flag.FlagSet

	file          string
	capture       bool
	interactive   bool
	cursor        bool
	region        string
	fromClipboard bool
	mode          string
	output        string
	saveDir       string
	size          string
	style         styleFlags
}

func (d *drawCmd) Program() string {
	return d.subcommand("draw")
}

func (d *drawCmd) FlagSet() *flag.FlagSet {
	return d.fs
}

func newDrawCmd(r *root) *drawCmd {
	fs := flag.NewFlagSet("draw", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	d := &drawCmd{root: r, fs: fs}
	fs.StringVar(&d.file, "file", "", "background image file")
	fs.BoolVar(&d.capture, "capture", false, "use a desktop screenshot as background")
	fs.BoolVar(&d.interactive, "interactive", false, "let the screenshot portal ask which area to capture")
	fs.BoolVar(&d.cursor, "cursor", false, "include the mouse pointer in the screenshot")
	fs.StringVar(&d.region, "region", "", "crop the screenshot to x,y,w,h in screen coordinates")
	fs.BoolVar(&d.fromClipboard, "from-clipboard", false, "use the clipboard image as background")
	fs.StringVar(&d.mode, "mode", "", "background rendering: original or scale")
	fs.StringVar(&d.output, "output", "", "file ctrl+s writes to")
	fs.StringVar(&d.saveDir, "save-dir", "", "directory ctrl+s writes to when -output is not set")
	fs.StringVar(&d.size, "size", "", "page size, e.g. 800x600 (default: background size)")
	d.style.register(fs)
	fs.Usage = usageFunc(d)
	return d
}

func parseDrawCmd(args []string, r *root) (*drawCmd, error) {
	d := newDrawCmd(r)
	if err := d.fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, &UsageError{of: d}
		}
		return nil, &UsageError{of: d, err: err}
	}
	sources := 0
	for _, set := range []bool{d.file != "", d.capture, d.fromClipboard} {
		if set {
			sources++
		}
	}
	if sources > 1 {
		return nil, &UsageError{of: d, err: errors.New("-file, -capture and -from-clipboard are mutually exclusive")}
	}
	if (d.region != "" || d.cursor || d.interactive) && !d.capture {
		return nil, &UsageError{of: d, err: errors.New("-interactive, -cursor and -region need -capture")}
	}
	if d.region != "" && d.interactive {
		return nil, &UsageError{of: d, err: errors.New("-region cannot be combined with -interactive")}
	}
	if d.fs.NArg() > 0 {
		return nil, &UsageError{of: d, err: fmt.Errorf("unexpected argument %q", d.fs.Arg(0))}
	}
	return d, nil
}

func (d *drawCmd) background() (image.Image, error) {
	switch {
	case d.file != "":
		return loadImage(d.file)
	case d.capture:
		return d.screenshot()
	case d.fromClipboard:
		img, err := readClipboardFn()
		if err != nil {
			return nil, fmt.Errorf("failed to read clipboard: %w", err)
		}
		return img, nil
	}
	return nil, nil
}

func (d *drawCmd) screenshot() (image.Image, error) {
	opts := capture.Options{Interactive: d.interactive, IncludeCursor: d.cursor}
	var (
		img  *image.RGBA
		err  error
		what = "desktop"
	)
	if d.region != "" {
		rect, perr := parseRegion(d.region)
		if perr != nil {
			return nil, perr
		}
		what = fmt.Sprintf("region %d,%d %dx%d", rect.Min.X, rect.Min.Y, rect.Dx(), rect.Dy())
		img, err = captureRegionFn(context.Background(), rect, opts)
	} else {
		img, err = captureScreenshotFn(context.Background(), opts)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to capture screen: %w", err)
	}
	d.notifier.Capture(what, img)
	return img, nil
}

// state builds the window session from config and flags.
func (d *drawCmd) state() (*appstate.AppState, error) {
	sk := d.config.Sketch
	mode := sk.Mode
	if d.mode != "" {
		m, err := cache.ParseRenderingMode(d.mode)
		if err != nil {
			return nil, err
		}
		mode = m
	}
	settings, err := d.style.apply(sk.Settings())
	if err != nil {
		return nil, err
	}
	if settings.Stamp, err = sk.LoadStamp(); err != nil {
		return nil, err
	}
	bg, err := d.background()
	if err != nil {
		return nil, err
	}

	saveDir := d.saveDir
	if saveDir == "" {
		saveDir = d.config.SaveDir
	}
	opts := []appstate.Option{
		appstate.WithSettings(settings),
		appstate.WithBackground(bg, mode),
		appstate.WithOutput(d.output),
		appstate.WithSaveDir(saveDir),
		appstate.WithTheme(d.activeTheme),
		appstate.WithNotifier(d.notifier),
	}
	if d.size != "" {
		sz, err := parseSize(d.size)
		if err != nil {
			return nil, err
		}
		opts = append(opts, appstate.WithSize(sz))
	}
	return appstate.New(opts...)
}

func (d *drawCmd) Run() error {
	st, err := d.state()
	if err != nil {
		return err
	}
	runWindowFn(st)
	return nil
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

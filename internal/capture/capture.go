// Package capture grabs a screenshot of the desktop to draw on.
package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
)

// ErrUnsupported is returned on platforms without a screenshot portal.
var ErrUnsupported = errors.New("screenshot capture is not supported on this platform")

// Options configures a screenshot request.
type Options struct {
	// Interactive lets the user pick the region in the portal dialog.
	Interactive bool
	// IncludeCursor embeds the mouse pointer in the image.
	IncludeCursor bool
}

var portalScreenshotFn = portalScreenshot

// Screenshot captures the desktop through the screenshot portal.
func Screenshot(ctx context.Context, opts Options) (*image.RGBA, error) {
	img, err := portalScreenshotFn(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("capture screenshot: %w", err)
	}
	return img, nil
}

// Region captures the desktop and crops it to rect, in screen coordinates.
func Region(ctx context.Context, rect image.Rectangle, opts Options) (*image.RGBA, error) {
	if rect.Empty() {
		return nil, fmt.Errorf("region is empty")
	}
	opts.Interactive = false
	shot, err := Screenshot(ctx, opts)
	if err != nil {
		return nil, err
	}
	return cropToRect(shot, rect)
}

func cropToRect(src *image.RGBA, rect image.Rectangle) (*image.RGBA, error) {
	rect = rect.Intersect(src.Bounds())
	if rect.Empty() {
		return nil, fmt.Errorf("requested region outside captured image")
	}
	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(dst, dst.Bounds(), src, rect.Min, draw.Src)
	return dst, nil
}

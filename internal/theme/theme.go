// Package theme holds the colours of the drawing window around the page.
package theme

import (
	"embed"
	"image/color"
)

// EmbeddedThemes are the themes compiled into the binary.
//
//go:embed defaults/*.theme
var EmbeddedThemes embed.FS

// Theme defines the palette of the window host.
type Theme struct {
	Name string

	Background color.RGBA // Window area around the page
	Foreground color.RGBA // Page border

	StatusBackground color.RGBA
	StatusText       color.RGBA

	// Transparent parts of the page
	CheckerLight color.RGBA
	CheckerDark  color.RGBA
}

// Default returns the light theme used when nothing else is configured.
func Default() *Theme {
	return &Theme{
		Name:             "Default",
		Background:       color.RGBA{200, 200, 200, 255},
		Foreground:       color.RGBA{60, 60, 60, 255},
		StatusBackground: color.RGBA{230, 230, 230, 255},
		StatusText:       color.RGBA{0, 0, 0, 255},
		CheckerLight:     color.RGBA{255, 255, 255, 255},
		CheckerDark:      color.RGBA{224, 224, 224, 255},
	}
}

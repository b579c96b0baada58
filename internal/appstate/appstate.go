package appstate

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"strings"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/example/sketchpad/internal/render"
	"github.com/example/sketchpad/internal/theme"
	"github.com/example/sketchpad/internal/tool"
)

const (
	// margin is the gap between the window edge and the page.
	margin       = 16
	statusHeight = 24
	checkerSize  = 8
	messageTTL   = 3 * time.Second
)

// PaletteColor is a named drawing colour.
type PaletteColor struct {
	Name  string
	Color color.RGBA
}

var palette = []PaletteColor{
	{"Black", color.RGBA{0, 0, 0, 255}},
	{"White", color.RGBA{255, 255, 255, 255}},
	{"Red", color.RGBA{255, 0, 0, 255}},
	{"Lime", color.RGBA{0, 255, 0, 255}},
	{"Blue", color.RGBA{0, 0, 255, 255}},
	{"Yellow", color.RGBA{255, 255, 0, 255}},
	{"Cyan", color.RGBA{0, 255, 255, 255}},
	{"Magenta", color.RGBA{255, 0, 255, 255}},
	{"Maroon", color.RGBA{128, 0, 0, 255}},
	{"Green", color.RGBA{0, 128, 0, 255}},
	{"Navy", color.RGBA{0, 0, 128, 255}},
	{"Olive", color.RGBA{128, 128, 0, 255}},
	{"Teal", color.RGBA{0, 128, 128, 255}},
	{"Purple", color.RGBA{128, 0, 128, 255}},
	{"Silver", color.RGBA{192, 192, 192, 255}},
	{"Gray", color.RGBA{128, 128, 128, 255}},
}

// Palette returns a copy of the colours the colour keys cycle through.
func Palette() []PaletteColor {
	out := make([]PaletteColor, len(palette))
	copy(out, palette)
	return out
}

// paletteIndex returns the palette slot holding c, or -1.
func paletteIndex(c color.Color) int {
	if c == nil {
		return -1
	}
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	for i, p := range palette {
		if p.Color == rgba {
			return i
		}
	}
	return -1
}

func colorName(c color.Color) string {
	if i := paletteIndex(c); i >= 0 {
		return palette[i].Name
	}
	if c == nil {
		return "none"
	}
	return theme.FormatColor(c)
}

var widths = []float64{1, 2, 4, 6, 8, 10, 14, 20, 28, 40}

// nextWidth steps to the next preset width in direction dir (+1 or -1).
// Widths outside the presets snap to the nearest preset in that direction.
func nextWidth(cur float64, dir int) float64 {
	if dir > 0 {
		for _, w := range widths {
			if w > cur {
				return w
			}
		}
		return widths[len(widths)-1]
	}
	for i := len(widths) - 1; i >= 0; i-- {
		if widths[i] < cur {
			return widths[i]
		}
	}
	return widths[0]
}

var statusFace font.Face = basicfont.Face7x13

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Printf("parse font: %v", err)
		return
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: 13, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Printf("font face: %v", err)
		return
	}
	statusFace = face
}

// pageRect is where the view is shown inside the window.
func pageRect(view image.Rectangle) image.Rectangle {
	return view.Add(image.Pt(margin, margin))
}

// windowSize fits the page, its margins and the status bar.
func windowSize(view image.Rectangle) image.Point {
	return image.Pt(view.Dx()+2*margin, view.Dy()+2*margin+statusHeight)
}

func drawCheckerboard(dst *image.RGBA, rect image.Rectangle, size int, light, dark color.Color) {
	l, d := image.NewUniform(light), image.NewUniform(dark)
	for y := rect.Min.Y; y < rect.Max.Y; y += size {
		for x := rect.Min.X; x < rect.Max.X; x += size {
			src := l
			if (((x-rect.Min.X)/size)+((y-rect.Min.Y)/size))%2 == 1 {
				src = d
			}
			draw.Draw(dst, image.Rect(x, y, x+size, y+size).Intersect(rect), src, image.Point{}, draw.Src)
		}
	}
}

func drawRect(img *image.RGBA, rect image.Rectangle, col color.Color, thick int) {
	u := image.NewUniform(col)
	draw.Draw(img, image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+thick), u, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(rect.Min.X, rect.Max.Y-thick, rect.Max.X, rect.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+thick, rect.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(rect.Max.X-thick, rect.Min.Y, rect.Max.X, rect.Max.Y), u, image.Point{}, draw.Src)
}

// statusText summarises the current settings and history.
func (a *AppState) statusText(now time.Time) string {
	if a.message != "" && now.Before(a.messageUntil) {
		return a.message
	}
	s := a.view.Settings()
	parts := []string{s.Tool.String()}
	if s.Tool == tool.Pen {
		parts = append(parts, s.Pen.String())
	}
	parts = append(parts,
		fmt.Sprintf("width %g", s.Width),
		colorName(s.Color),
	)
	var hist []string
	if a.view.CanUndo() {
		hist = append(hist, "undo")
	}
	if a.view.CanRedo() {
		hist = append(hist, "redo")
	}
	if len(hist) > 0 {
		parts = append(parts, strings.Join(hist, "/"))
	}
	return strings.Join(parts, "  |  ")
}

func (a *AppState) drawStatus(dst *image.RGBA, now time.Time) {
	b := dst.Bounds()
	bar := image.Rect(b.Min.X, b.Max.Y-statusHeight, b.Max.X, b.Max.Y)
	draw.Draw(dst, bar, image.NewUniform(a.theme.StatusBackground), image.Point{}, draw.Src)
	ascent := statusFace.Metrics().Ascent.Ceil()
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(a.theme.StatusText),
		Face: statusFace,
		Dot:  fixed.P(bar.Min.X+margin, bar.Min.Y+(statusHeight+ascent)/2-1),
	}
	d.DrawString(a.statusText(now))
}

// compose renders one window frame into dst. Only the parts of the page
// the view reported dirty are re-rendered.
func (a *AppState) compose(dst *image.RGBA, now time.Time) {
	if !a.pending.Empty() {
		a.view.Render(a.page, a.pending)
		a.pending = image.Rectangle{}
	}
	page := pageRect(a.page.Bounds())
	draw.Draw(dst, dst.Bounds(), image.NewUniform(a.theme.Background), image.Point{}, draw.Src)
	render.DropShadow(dst, page, render.DefaultShadowOptions())
	if a.backdrop == nil || a.backdrop.Bounds() != page {
		a.backdrop = image.NewRGBA(page)
		drawCheckerboard(a.backdrop, page, checkerSize, a.theme.CheckerLight, a.theme.CheckerDark)
	}
	draw.Draw(dst, page, a.backdrop, page.Min, draw.Src)
	draw.Draw(dst, page, a.page, image.Point{}, draw.Over)
	drawRect(dst, page.Inset(-1), a.theme.Foreground, 1)
	a.drawStatus(dst, now)
}

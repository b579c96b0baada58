package render

import (
	"image"
	"image/color"
	"image/draw"
)

// ShadowOptions configures the drop shadow drawn under the page.
type ShadowOptions struct {
	Radius  int
	Offset  image.Point
	Opacity float64
}

// DefaultShadowOptions returns the shadow used by the window host.
func DefaultShadowOptions() ShadowOptions {
	return ShadowOptions{
		Radius:  12,
		Offset:  image.Pt(6, 6),
		Opacity: 0.45,
	}
}

// DropShadow paints a blurred shadow of the rectangle page onto dst.
func DropShadow(dst draw.Image, page image.Rectangle, opts ShadowOptions) {
	if page.Empty() || opts.Opacity <= 0 {
		return
	}
	opacity := min(opts.Opacity, 1)
	radius := max(opts.Radius, 0)

	padded := page.Inset(-radius)
	mask := image.NewAlpha(padded)
	inner := page
	for y := inner.Min.Y; y < inner.Max.Y; y++ {
		i := mask.PixOffset(inner.Min.X, y)
		for x := 0; x < inner.Dx(); x++ {
			mask.Pix[i+x] = 0xff
		}
	}
	blurred := blurAlpha(mask, radius)
	a := uint8(opacity*255 + 0.5)
	draw.DrawMask(dst, padded.Add(opts.Offset), image.NewUniform(color.RGBA{A: a}), image.Point{}, blurred, padded.Min, draw.Over)
}

// blurAlpha box blurs src with the given radius using running sums along
// rows and then columns. The result has the same bounds as src.
func blurAlpha(src *image.Alpha, radius int) *image.Alpha {
	bounds := src.Bounds()
	dst := image.NewAlpha(bounds)
	if radius <= 0 {
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			copy(dst.Pix[dst.PixOffset(bounds.Min.X, y):], src.Pix[src.PixOffset(bounds.Min.X, y):src.PixOffset(bounds.Max.X, y)])
		}
		return dst
	}
	w, h := bounds.Dx(), bounds.Dy()
	tmp := make([]uint8, w*h)
	prefix := make([]int, max(w, h)+1)

	for y := 0; y < h; y++ {
		row := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
		for x := 0; x < w; x++ {
			prefix[x+1] = prefix[x] + int(src.Pix[row+x])
		}
		for x := 0; x < w; x++ {
			x0 := max(x-radius, 0)
			x1 := min(x+radius, w-1)
			tmp[y*w+x] = uint8((prefix[x1+1] - prefix[x0]) / (2*radius + 1))
		}
	}

	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			prefix[y+1] = prefix[y] + int(tmp[y*w+x])
		}
		for y := 0; y < h; y++ {
			y0 := max(y-radius, 0)
			y1 := min(y+radius, h-1)
			dst.Pix[dst.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)] = uint8((prefix[y1+1] - prefix[y0]) / (2*radius + 1))
		}
	}
	return dst
}

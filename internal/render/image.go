package render

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

var opaqueAlpha = color.Alpha{A: 0xff}

// Clone returns a zero-origin RGBA copy of img.
func Clone(img image.Image) *image.RGBA {
	if img == nil {
		return nil
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// Equal reports whether a and b have the same bounds and pixels.
func Equal(a, b *image.RGBA) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Bounds() != b.Bounds() {
		return false
	}
	r := a.Bounds()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		ia := a.PixOffset(r.Min.X, y)
		ib := b.PixOffset(r.Min.X, y)
		if !bytes.Equal(a.Pix[ia:ia+4*r.Dx()], b.Pix[ib:ib+4*r.Dx()]) {
			return false
		}
	}
	return true
}

// Diff returns the bounds of every pixel that differs between a and b.
func Diff(a, b *image.RGBA) image.Rectangle {
	var out image.Rectangle
	r := a.Bounds().Intersect(b.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if a.RGBAAt(x, y) != b.RGBAAt(x, y) {
				out = out.Union(image.Rect(x, y, x+1, y+1))
			}
		}
	}
	return out
}

// Scale draws src stretched to fill dst using bilinear filtering.
func Scale(dst draw.Image, r image.Rectangle, src image.Image, op draw.Op) {
	xdraw.ApproxBiLinear.Scale(dst, r, src, src.Bounds(), op, nil)
}

func drawImage(dst *image.RGBA, src image.Image, r image.Rectangle, alpha float64) {
	if alpha <= 0 || alpha > 1 {
		alpha = 1
	}
	sb := src.Bounds()
	if sb.Size() != r.Size() {
		scaled := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
		Scale(scaled, scaled.Bounds(), src, draw.Src)
		src, sb = scaled, scaled.Bounds()
	}
	if alpha == 1 {
		draw.Draw(dst, r, src, sb.Min, draw.Over)
		return
	}
	m := image.NewUniform(color.Alpha{A: uint8(alpha*255 + 0.5)})
	draw.DrawMask(dst, r, src, sb.Min, m, image.Point{}, draw.Over)
}

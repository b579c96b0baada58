package render

import (
	"image"
)

// floodRegion marks in mask every pixel 4-connected to seed whose colour is
// within tol of the seed colour on each channel, and returns their bounds.
func floodRegion(img *image.RGBA, mask *image.Alpha, seed image.Point, tol uint8) image.Rectangle {
	b := img.Bounds()
	if !seed.In(b) {
		return image.Rectangle{}
	}
	w, h := b.Dx(), b.Dy()
	i0 := img.PixOffset(seed.X, seed.Y)
	var ref [4]uint8
	copy(ref[:], img.Pix[i0:i0+4])

	match := func(x, y int) bool {
		i := img.PixOffset(x, y)
		for k := 0; k < 4; k++ {
			d := int(img.Pix[i+k]) - int(ref[k])
			if d < 0 {
				d = -d
			}
			if d > int(tol) {
				return false
			}
		}
		return true
	}

	visited := make([]bool, w*h)
	queue := []image.Point{seed}
	visited[(seed.Y-b.Min.Y)*w+seed.X-b.Min.X] = true
	region := image.Rectangle{Min: seed, Max: seed.Add(image.Pt(1, 1))}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		mask.SetAlpha(p.X, p.Y, opaqueAlpha)
		region = region.Union(image.Rectangle{Min: p, Max: p.Add(image.Pt(1, 1))})
		for _, d := range neighbours {
			n := p.Add(d)
			if !n.In(b) {
				continue
			}
			vi := (n.Y-b.Min.Y)*w + n.X - b.Min.X
			if visited[vi] || !match(n.X, n.Y) {
				continue
			}
			visited[vi] = true
			queue = append(queue, n)
		}
	}
	return region
}

var neighbours = [4]image.Point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

package rasterizer

import (
	"image"
	"image/color"

	"github.com/tdewolff/pathgraph"
	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// Draw draws the path in black on a white image with given resolution (in pixels per unit). The image covers the bounds of the path, with the y-axis pointing up.
func Draw(p *pathgraph.Path, resolution float64) *image.RGBA {
	mask := Mask(p, resolution)
	img := image.NewRGBA(mask.Bounds())
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	draw.DrawMask(img, img.Bounds(), image.NewUniform(color.Black), image.Point{}, mask, image.Point{}, draw.Over)
	return img
}

// Mask returns the coverage of the path under the non-zero fill rule, with given resolution (in pixels per unit).
func Mask(p *pathgraph.Path, resolution float64) *image.Alpha {
	bounds := p.Bounds()
	w := int(bounds.W*resolution + 0.5)
	h := int(bounds.H*resolution + 0.5)
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	if w == 0 || h == 0 {
		return mask
	}

	ras := vector.NewRasterizer(w, h)
	ToRasterizer(p, ras, bounds, resolution)
	ras.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}

// ToRasterizer adds the path to the rasterizer, where the rectangle view is mapped to the rasterizer's size.
func ToRasterizer(p *pathgraph.Path, ras *vector.Rasterizer, view pathgraph.Rect, resolution float64) {
	pos := func(pt pathgraph.Point) (float32, float32) {
		return float32((pt.X - view.X) * resolution), float32((view.Y + view.H - pt.Y) * resolution)
	}
	for _, cs := range p.Cubics() {
		ras.MoveTo(pos(cs[0].P0))
		for _, c := range cs {
			x3, y3 := pos(c.P3)
			if c.IsLine() {
				ras.LineTo(x3, y3)
			} else {
				x1, y1 := pos(c.P1)
				x2, y2 := pos(c.P2)
				ras.CubeTo(x1, y1, x2, y2, x3, y3)
			}
		}
		ras.ClosePath()
	}
}

// Coverage returns the covered area of the mask in pixels.
func Coverage(mask *image.Alpha) float64 {
	area := 0.0
	for _, a := range mask.Pix {
		area += float64(a) / 255.0
	}
	return area
}

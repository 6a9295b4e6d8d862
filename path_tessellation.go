package pathgraph

import (
	"fmt"

	"github.com/ByteArena/poly2tri-go"
	"github.com/paulmach/orb"
)

func ringContour(r orb.Ring) []*poly2tri.Point {
	contour := make([]*poly2tri.Point, 0, len(r))
	for _, pt := range r[:len(r)-1] {
		contour = append(contour, poly2tri.NewPoint(pt[0], pt[1]))
	}
	return contour
}

// Tessellate flattens the path and returns a triangulation of the area it encloses. The path must be free of self-intersections and overlapping subpaths, which holds for the result of any boolean operation or Settle. ErrEmptyPath is returned when the path encloses no area.
func (p *Path) Tessellate(tolerance float64) (triangles [][3]Point, err error) {
	defer func() {
		if r := recover(); r != nil {
			triangles, err = nil, fmt.Errorf("tessellate: %v", r)
		}
	}()

	mp := p.ToOrb(tolerance)
	if len(mp) == 0 {
		return nil, ErrEmptyPath
	}
	for _, polygon := range mp {
		swctx := poly2tri.NewSweepContext(ringContour(polygon[0]), false)
		for _, hole := range polygon[1:] {
			swctx.AddHole(ringContour(hole))
		}
		swctx.Triangulate()

		for _, tr := range swctx.GetTriangles() {
			p0 := Point{tr.Points[0].X, tr.Points[0].Y}
			p1 := Point{tr.Points[1].X, tr.Points[1].Y}
			p2 := Point{tr.Points[2].X, tr.Points[2].Y}
			triangles = append(triangles, [3]Point{p0, p1, p2})
		}
	}
	return triangles, nil
}

package pathgraph

import (
	"fmt"
	"math"
	"testing"

	"github.com/tdewolff/test"
)

func triangleArea(tr [3]Point) float64 {
	return math.Abs(tr[1].Sub(tr[0]).PerpDot(tr[2].Sub(tr[0]))) / 2.0
}

func TestPathTessellate(t *testing.T) {
	var tests = []struct {
		p    *Path
		n    int
		area float64
	}{
		{Rectangle(0, 0, 10, 10), 2, 100.0},
		{MustParseSVGPath("M0 0L10 0L10 10L0 10zM8 2L2 2L2 8L8 8z"), 8, 64.0},
		{MustParseSVGPath("M0 0L10 0L10 10L0 10zM20 0L30 0L25 10z"), 3, 150.0},
		{RegularPolygon(6, 0, 0, 10), 4, RegularPolygon(6, 0, 0, 10).Area()},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			triangles, err := tt.p.Tessellate(0.01)
			test.Error(t, err)
			test.T(t, len(triangles), tt.n)

			area := 0.0
			for _, tr := range triangles {
				area += triangleArea(tr)
			}
			test.FloatDiff(t, area, tt.area, 1e-9)
		})
	}
}

func TestPathTessellateCurves(t *testing.T) {
	p, err := Subtract(Circle(0, 0, 5), Rectangle(-1, -1, 2, 2))
	test.Error(t, err)

	triangles, err := p.Tessellate(0.01)
	test.Error(t, err)
	area := 0.0
	for _, tr := range triangles {
		area += triangleArea(tr)
	}
	test.FloatDiff(t, area, p.Flatten(0.01).Area(), 1e-9)
}

func TestPathTessellateEmpty(t *testing.T) {
	_, err := (&Path{}).Tessellate(0.01)
	test.T(t, err, ErrEmptyPath)

	_, err = MustParseSVGPath("M0 0L0 10L10 10L10 0z").Tessellate(0.01)
	test.T(t, err, ErrEmptyPath)
}

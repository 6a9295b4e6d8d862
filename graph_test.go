package pathgraph

import (
	"errors"
	"fmt"
	"testing"

	"github.com/tdewolff/test"
)

func TestGraphFromPath(t *testing.T) {
	g := FromPath(MustParseSVGPath("M0 0L10 0L10 10L0 10z"), 0)
	test.T(t, g.NumPoints(), 4)
	test.T(t, g.NumEdges(), 4)
	test.T(t, g.NumPaths(), 1)
	test.Error(t, g.Validate())
	for i := 0; i < 4; i++ {
		edges := g.EdgesForPoint(i)
		test.T(t, len(edges), 1)
		test.T(t, edges[0].End, (i+1)%4)
		test.T(t, edges[0].Following, 0)
		test.T(t, edges[0].Label, PathLabel{0, Anticlockwise})
		test.T(t, edges[0].Kind, Uncategorised)
		test.That(t, edges[0].Curve.IsLine())
	}
	test.T(t, g.Point(2), Point{10, 10})
	test.T(t, g.Bounds(), Rect{0, 0, 10, 10})

	g = FromPath(MustParseSVGPath("M0 0L0 10L10 10L10 0z"), 3)
	test.T(t, g.Edge(EdgeRef{0, 0}).Label, PathLabel{3, Clockwise})
	test.T(t, g.NumPaths(), 4)

	// implicitly closed, zero-length segments are dropped
	g = FromPath(MustParseSVGPath("M0 0L10 0L10 0L10 10"), 0)
	test.T(t, g.NumEdges(), 3)
	test.T(t, g.Edge(EdgeRef{2, 0}).End, 0)

	// subpaths are independent cycles
	g = FromPath(MustParseSVGPath("M0 0L10 0L10 10zM20 0L30 0L30 10z"), 0)
	test.T(t, g.NumPoints(), 6)
	test.T(t, g.Edge(EdgeRef{2, 0}).End, 0)
	test.T(t, g.Edge(EdgeRef{5, 0}).End, 3)

	g = FromPath(&Path{}, 0)
	test.T(t, g.NumEdges(), 0)
	test.T(t, g.NumPaths(), 0)
}

func TestGraphCurves(t *testing.T) {
	g := FromPath(MustParseSVGPath("M0 0C0 5 10 5 10 0Q5 -5 0 0z"), 0)
	test.T(t, g.NumEdges(), 2)
	test.T(t, g.Edge(EdgeRef{0, 0}).Curve, Cubic{Point{0, 0}, Point{0, 5}, Point{10, 5}, Point{10, 0}})
	test.T(t, g.Edge(EdgeRef{1, 0}).Curve, QuadCubic(Point{10, 0}, Point{5, -5}, Point{0, 0}))
	test.T(t, g.Edge(EdgeRef{0, 0}).Label.Direction, Clockwise)
}

func TestGraphMerge(t *testing.T) {
	g := FromPath(MustParseSVGPath("M0 0L10 0L10 10z"), 0)
	h := FromPath(MustParseSVGPath("M20 0L30 0L30 10z"), 1)
	c := g.Copy()
	g.Merge(h)
	test.T(t, g.NumPoints(), 6)
	test.T(t, g.NumEdges(), 6)
	test.T(t, g.NumPaths(), 2)
	test.T(t, g.Edge(EdgeRef{3, 0}).End, 4)
	test.T(t, g.Edge(EdgeRef{5, 0}).End, 3)
	test.T(t, g.Edge(EdgeRef{5, 0}).Label, PathLabel{1, Anticlockwise})
	test.Error(t, g.Validate())

	// the copy is not affected
	test.T(t, c.NumPoints(), 3)
	test.T(t, h.NumPoints(), 3)
}

func TestGraphEdges(t *testing.T) {
	g := FromPath(MustParseSVGPath("M0 0L10 0L10 10L0 10z"), 0)
	n := 0
	for e := range g.Edges() {
		test.T(t, e.Ref, EdgeRef{n, 0})
		n++
	}
	test.T(t, n, 4)

	n = 0
	for range g.Edges() {
		n++
		break
	}
	test.T(t, n, 1)

	g.edge(EdgeRef{1, 0}).kind = Exterior
	g.edge(EdgeRef{3, 0}).kind = Exterior
	refs := []EdgeRef{}
	for e := range g.EdgesOfKind(Exterior) {
		refs = append(refs, e.Ref)
	}
	test.T(t, refs, []EdgeRef{{1, 0}, {3, 0}})

	g.ResetEdgeKinds()
	for e := range g.Edges() {
		test.T(t, e.Kind, Uncategorised)
	}
}

func TestGraphValidate(t *testing.T) {
	var tests = []struct {
		corrupt func(*GraphPath)
		ref     EdgeRef
	}{
		{func(g *GraphPath) { g.points[0].edges[0].end = 7 }, EdgeRef{0, 0}},
		{func(g *GraphPath) { g.points[1].edges[0].following = 1 }, EdgeRef{1, 0}},
		{func(g *GraphPath) { g.points[0].edges[0].end = 2 }, EdgeRef{1, 0}},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			g := FromPath(MustParseSVGPath("M0 0L10 0L10 10L0 10z"), 0)
			tt.corrupt(g)
			err := g.Validate()
			test.That(t, errors.Is(err, ErrInconsistentGraph))

			var continuityErr *ContinuityError
			test.That(t, errors.As(err, &continuityErr))
			test.T(t, continuityErr.Edge, tt.ref)
		})
	}

	// orphaned points are fine
	g := FromPath(MustParseSVGPath("M0 0L10 0L10 10L0 10z"), 0)
	g.points = append(g.points, graphPoint{pos: Point{5, 5}})
	test.Error(t, g.Validate())
}

func TestEdgeKindString(t *testing.T) {
	test.String(t, Uncategorised.String(), "Uncategorised")
	test.String(t, Visited.String(), "Visited")
	test.String(t, Interior.String(), "Interior")
	test.String(t, Exterior.String(), "Exterior")
	test.String(t, EdgeKind(9).String(), "EdgeKind(9)")
	test.String(t, PathLabel{2, Anticlockwise}.String(), "2/Anticlockwise")
	test.String(t, EdgeRef{3, 1}.String(), "3:1")
}

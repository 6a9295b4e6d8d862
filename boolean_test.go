package pathgraph

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/tdewolff/test"
)

func TestBoolean(t *testing.T) {
	var tests = []struct {
		p, q                            string
		union, intersect, subtract, xor string
	}{
		{"M1 1L5 1L5 5L1 5z", "M4 4L9 4L9 9L4 9z",
			"M1 1L5 1L5 4L9 4L9 9L4 9L4 5L1 5z",
			"M5 5L4 5L4 4L5 4z",
			"M1 1L5 1L5 4L4 4L4 5L1 5z",
			"M1 1L5 1L5 4L4 4L4 5L1 5zM4 5L5 5L5 4L9 4L9 9L4 9z"},
		{"M0 0L10 0L10 10L0 10z", "M2 2L8 2L8 8L2 8z",
			"M0 0L10 0L10 10L0 10z",
			"M2 2L8 2L8 8L2 8z",
			"M0 0L10 0L10 10L0 10zM8 2L2 2L2 8L8 8z",
			"M0 0L10 0L10 10L0 10zM8 2L2 2L2 8L8 8z"},
		{"M0 0L10 0L10 10L0 10z", "M20 0L25 0L25 5L20 5z",
			"M0 0L10 0L10 10L0 10zM20 0L25 0L25 5L20 5z",
			"",
			"M0 0L10 0L10 10L0 10z",
			"M0 0L10 0L10 10L0 10zM20 0L25 0L25 5L20 5z"},
		{"M1 1L5 1L5 5L1 5z", "M1 1L5 1L5 5L1 5z",
			"M1 1L5 1L5 5L1 5z",
			"M1 1L5 1L5 5L1 5z",
			"",
			""},
		{"M0 0L5 0L5 5L0 5z", "M5 0L10 0L10 5L5 5z",
			"M0 0L5 0L10 0L10 5L5 5L0 5z",
			"",
			"M0 0L5 0L5 5L0 5z",
			"M0 0L5 0L10 0L10 5L5 5L0 5z"},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			p, q := MustParseSVGPath(tt.p), MustParseSVGPath(tt.q)

			r, err := Union(p, q)
			test.Error(t, err)
			test.T(t, r, MustParseSVGPath(tt.union), "union")

			r, err = Intersect(p, q)
			test.Error(t, err)
			test.T(t, r, MustParseSVGPath(tt.intersect), "intersect")

			r, err = Subtract(p, q)
			test.Error(t, err)
			test.T(t, r, MustParseSVGPath(tt.subtract), "subtract")

			r, err = Xor(p, q)
			test.Error(t, err)
			test.T(t, r, MustParseSVGPath(tt.xor), "xor")
		})
	}
}

func TestBooleanCurves(t *testing.T) {
	var tests = []struct {
		p, q                            *Path
		union, intersect, subtract, xor float64
	}{
		{Circle(0, 0, 5), Rectangle(0, 0, 10, 10), 158.9213562373095, 19.64045207910317, 58.92135623730951, 139.28090415820634},
		{Circle(0, 0, 5), Circle(3, 0, 5), 108.10965625507373, 49.013960377751715, 29.54784793866095, 59.095695877322},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			areaP, areaQ := tt.p.Area(), tt.q.Area()

			union, err := Union(tt.p, tt.q)
			test.Error(t, err)
			test.FloatDiff(t, union.Area(), tt.union, 1e-6)
			test.T(t, len(union.Split()), 1)

			intersect, err := Intersect(tt.p, tt.q)
			test.Error(t, err)
			test.FloatDiff(t, intersect.Area(), tt.intersect, 1e-6)
			test.FloatDiff(t, union.Area()+intersect.Area(), areaP+areaQ, 1e-6)

			subtract, err := Subtract(tt.p, tt.q)
			test.Error(t, err)
			test.FloatDiff(t, subtract.Area(), tt.subtract, 1e-6)
			test.FloatDiff(t, subtract.Area(), areaP-intersect.Area(), 1e-6)

			xor, err := Xor(tt.p, tt.q)
			test.Error(t, err)
			test.FloatDiff(t, xor.Area(), tt.xor, 1e-6)
			test.T(t, len(xor.Split()), 2)
		})
	}
}

func TestBooleanCircleRectangle(t *testing.T) {
	// disjoint
	p, q := Circle(6.1647, 1.8928, 6.8021), Rectangle(3.5654, 9.3081, 5.9232, 6.4042)
	r, err := Union(p, q)
	test.Error(t, err)
	test.T(t, len(r.Split()), 2)
	test.FloatDiff(t, r.Area(), p.Area()+q.Area(), 1e-6)

	// overlapping
	p, q = Circle(8.0775, 7.2086, 4.7292), Rectangle(2.5067, 3.5795, 8.1295, 7.3952)
	union, err := Union(p, q)
	test.Error(t, err)
	test.T(t, len(union.Split()), 1)
	intersection, err := Intersect(p, q)
	test.Error(t, err)
	test.FloatDiff(t, union.Area()+intersection.Area(), p.Area()+q.Area(), 1e-6)
}

func TestBooleanCommutative(t *testing.T) {
	p, q := Circle(0, 0, 5), Circle(3, 0, 5)
	for _, op := range []func(*Path, *Path, ...Option) (*Path, error){Union, Intersect, Xor} {
		a, err := op(p, q)
		test.Error(t, err)
		b, err := op(q, p)
		test.Error(t, err)
		test.FloatDiff(t, a.Area(), b.Area(), 1e-6)
	}

	r, err := Union(MustParseSVGPath("M4 4L9 4L9 9L4 9z"), MustParseSVGPath("M1 1L5 1L5 5L1 5z"))
	test.Error(t, err)
	test.T(t, r, MustParseSVGPath("M9 4L9 9L4 9L4 5L1 5L1 1L5 1L5 4z"))
}

func sortedCoords(p *Path) []Point {
	coords := p.Coords()
	slices.SortFunc(coords, func(a, b Point) int {
		if a.X != b.X {
			return cmp.Compare(a.X, b.X)
		}
		return cmp.Compare(a.Y, b.Y)
	})
	return coords
}

func TestBooleanPermutation(t *testing.T) {
	q := MustParseSVGPath("M4 4L9 4L9 9L4 9z")
	r, err := Union(MustParseSVGPath("M1 1L5 1L5 5L1 5z"), q)
	test.Error(t, err)
	test.Float(t, r.Area(), 40.0)

	for _, p := range []string{
		"M5 1L5 5L1 5L1 1z", // rotated
		"M1 1L1 5L5 5L5 1z", // reversed
		"M5 5L5 1L1 1L1 5z", // rotated and reversed
	} {
		t.Run(p, func(t *testing.T) {
			r2, err := Union(MustParseSVGPath(p), q)
			test.Error(t, err)
			test.Float(t, r2.Area(), 40.0)
			test.T(t, len(r2.Split()), 1)
			test.T(t, sortedCoords(r2), sortedCoords(r))
		})
	}
}

func TestBooleanIdempotent(t *testing.T) {
	union, err := Union(Circle(0, 0, 5), Circle(3, 0, 5))
	test.Error(t, err)

	r, err := Settle(union)
	test.Error(t, err)
	test.T(t, r, union)

	r, err = Union(union, union)
	test.Error(t, err)
	test.FloatDiff(t, r.Area(), union.Area(), 1e-6)

	r, err = Subtract(union, union)
	test.Error(t, err)
	test.That(t, r.Empty())
}

func TestSettle(t *testing.T) {
	var tests = []struct {
		p        *Path
		fillRule FillRule
		r        string
	}{
		{MustParseSVGPath("M0 0L10 10L10 0L0 10z"), NonZero, "M0 0L5 5L0 10zM10 0L10 10L5 5z"},
		{MustParseSVGPath("M0 0L10 10L10 0L0 10z"), EvenOdd, "M0 0L5 5L0 10zM10 0L10 10L5 5z"},
		{MustParseSVGPath("M0 0L10 0L10 10L0 10zM5 5L15 5L15 15L5 15z"), NonZero, "M0 0L10 0L10 5L15 5L15 15L5 15L5 10L0 10z"},
		{MustParseSVGPath("M0 0L10 0L10 10L0 10zM5 5L15 5L15 15L5 15z"), EvenOdd, "M0 0L10 0L10 5L5 5L5 10L0 10zM5 10L10 10L10 5L15 5L15 15L5 15z"},
		{MustParseSVGPath("M0 0L10 0L10 10L0 10z"), NonZero, "M0 0L10 0L10 10L0 10z"},
		{MustParseSVGPath("M0 0L0 10L10 10L10 0z"), NonZero, "M0 10L0 0L10 0L10 10z"},
		{&Path{}, NonZero, ""},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			r, err := Settle(tt.p, WithFillRule(tt.fillRule))
			test.Error(t, err)
			test.T(t, r, MustParseSVGPath(tt.r))
		})
	}
}

func TestSettleStar(t *testing.T) {
	star := RegularStarPolygon(5, 2, 0, 0, 10)

	r, err := Settle(star)
	test.Error(t, err)
	test.FloatDiff(t, r.Area(), 112.25699414489635, 1e-6)
	test.T(t, len(r.Split()), 1)
	test.T(t, len(r.Coords()), 10)

	r, err = Settle(star, WithFillRule(EvenOdd))
	test.Error(t, err)
	test.FloatDiff(t, r.Area(), 77.56767521667442, 1e-6)
	test.T(t, len(r.Split()), 5)
	for _, q := range r.Split() {
		test.That(t, q.CCW())
	}
}

func TestSettleEvenOddTwice(t *testing.T) {
	p := MustParseSVGPath("M0 0L10 0L10 10L0 10zM5 5L15 5L15 15L5 15z")
	r, err := Settle(p, WithFillRule(EvenOdd))
	test.Error(t, err)
	r, err = Settle(r, WithFillRule(EvenOdd))
	test.Error(t, err)
	test.T(t, r, MustParseSVGPath("M0 0L10 0L10 5L5 5L5 10L0 10zM10 5L15 5L15 15L5 15L5 10L10 10z"))
	test.Float(t, r.Area(), 150.0)
}

func TestCut(t *testing.T) {
	var tests = []struct {
		p, q               *Path
		interior, exterior string
	}{
		{Rectangle(5, 5, 5, 5), Rectangle(7.5, 7.5, 7.5, 7.5), "M10 10L7.5 10L7.5 7.5L10 7.5z", "M5 5L10 5L10 7.5L7.5 7.5L7.5 10L5 10z"},
		{Rectangle(5, 5, 5, 5), Rectangle(0, 0, 20, 20), "M5 5L10 5L10 10L5 10z", ""},
		{Rectangle(5, 5, 5, 5), Rectangle(20, 20, 5, 5), "", "M5 5L10 5L10 10L5 10z"},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			interior, exterior, err := Cut(tt.p, tt.q)
			test.Error(t, err)
			test.T(t, interior, MustParseSVGPath(tt.interior), "interior")
			test.T(t, exterior, MustParseSVGPath(tt.exterior), "exterior")
		})
	}

	// both halves of a circle share their boundary
	interior, exterior, err := Cut(Circle(0, 0, 5), Rectangle(0, -10, 10, 20))
	test.Error(t, err)
	test.FloatDiff(t, interior.Area(), 39.28090415820634, 1e-6)
	test.FloatDiff(t, exterior.Area(), 39.28090415820634, 1e-6)
	test.FloatDiff(t, interior.Area()+exterior.Area(), Circle(0, 0, 5).Area(), 1e-6)
}

func TestBooleanMethods(t *testing.T) {
	p := MustParseSVGPath("M1 1L5 1L5 5L1 5z")
	q := MustParseSVGPath("M4 4L9 4L9 9L4 9z")
	test.T(t, p.Or(q), MustParseSVGPath("M1 1L5 1L5 4L9 4L9 9L4 9L4 5L1 5z"))
	test.T(t, p.And(q), MustParseSVGPath("M5 5L4 5L4 4L5 4z"))
	test.T(t, p.Not(q), MustParseSVGPath("M1 1L5 1L5 4L4 4L4 5L1 5z"))
	test.Float(t, p.Xor(q).Area(), 39.0)
	test.T(t, MustParseSVGPath("M0 0L10 10L10 0L0 10z").Settle(), MustParseSVGPath("M0 0L5 5L0 10zM10 0L10 10L5 5z"))
}

func TestBooleanOptions(t *testing.T) {
	o := newOptions(nil)
	test.Float(t, o.accuracy, DefaultAccuracy)
	test.T(t, o.fillRule, NonZero)
	test.That(t, o.validate)
	test.That(t, !o.repair)

	o = newOptions([]Option{WithAccuracy(-1.0), WithFillRule(EvenOdd), WithRepair(), WithoutValidation()})
	test.Float(t, o.accuracy, DefaultAccuracy)
	test.T(t, o.fillRule, EvenOdd)
	test.That(t, !o.validate)
	test.That(t, o.repair)

	test.Float(t, newOptions([]Option{WithAccuracy(0.5)}).accuracy, 0.5)

	test.That(t, NonZero.Inside(-1))
	test.That(t, !NonZero.Inside(0))
	test.That(t, EvenOdd.Inside(-1))
	test.That(t, !EvenOdd.Inside(2))
	test.String(t, EvenOdd.String(), "EvenOdd")
	test.String(t, NonZero.String(), "NonZero")

	// a coarse accuracy snaps nearby corners together
	r, err := Union(MustParseSVGPath("M0 0L10 0L10 10L0 10z"), MustParseSVGPath("M10.2 0L20 0L20 10L10.2 10z"), WithAccuracy(0.5))
	test.Error(t, err)
	test.T(t, len(r.Split()), 1)
}

func TestBooleanRepair(t *testing.T) {
	g := FromPath(MustParseSVGPath("M0 0L10 0L10 10L0 10z"), 0)
	g.edge(EdgeRef{1, 0}).label.Direction = Clockwise

	_, err := classify(g, nonZero, newOptions(nil), "test")
	test.That(t, errors.Is(err, ErrInconsistentGraph))

	g.ResetEdgeKinds()
	r, err := classify(g, nonZero, newOptions([]Option{WithRepair()}), "test")
	test.Error(t, err)
	test.That(t, r != nil)

	test.That(t, orEmpty(nil, err) == nil)
	test.That(t, orEmpty(nil, ErrEmptyPath).Empty())
}

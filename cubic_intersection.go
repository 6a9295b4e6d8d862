package pathgraph

import (
	"math"
	"slices"
)

// cubicIntersection is an intersection between curves A and B at TA and TB respectively.
type cubicIntersection struct {
	TA, TB float64
	Pos    Point
}

// lineIntersection is an intersection between a curve at T and an unbounded line at S, where S=0 is the line's first point and S=1 its second.
type lineIntersection struct {
	T, S    float64
	Pos     Point
	Tangent bool // the curve touches the line without crossing it
}

// maximum depth of bounding box subdivision, each level halves the parameter interval
const maxSubdivisionDepth = 40

// closestT returns the parameter of the point on the curve closest to p and its distance.
func (c Cubic) closestT(p Point) (float64, float64) {
	if c.IsLine() {
		d := c.P3.Sub(c.P0)
		t := 0.0
		if dd := d.Dot(d); dd != 0.0 {
			t = math.Max(0.0, math.Min(1.0, p.Sub(c.P0).Dot(d)/dd))
		}
		return t, c.Pos(t).Sub(p).Length()
	}

	const n = 16
	tBest, dBest := 0.0, math.Inf(1)
	for i := 0; i <= n; i++ {
		t := float64(i) / n
		if d := c.Pos(t).Sub(p).Length(); d < dBest {
			tBest, dBest = t, d
		}
	}

	// Newton iteration on (B(t)-p).B'(t) = 0
	t := tBest
	for range 8 {
		v := c.Pos(t).Sub(p)
		d1 := c.Deriv(t)
		f := v.Dot(d1)
		df := d1.Dot(d1) + v.Dot(c.Deriv2(t))
		if df == 0.0 {
			break
		}
		tNext := math.Max(0.0, math.Min(1.0, t-f/df))
		if math.Abs(tNext-t) < 1e-14 {
			t = tNext
			break
		}
		t = tNext
	}
	if d := c.Pos(t).Sub(p).Length(); d < dBest {
		tBest, dBest = t, d
	}
	return tBest, dBest
}

// intersectLine returns the intersections of the curve with the unbounded line through l0 and l1, ordered by T.
// see https://www.particleincell.com/2013/cubic-line-intersection/
func (c Cubic) intersectLine(l0, l1 Point) []lineIntersection {
	if l0.Equals(l1) {
		return nil
	}
	dir := l1.Sub(l0)
	n := dir.Rot90CCW().Norm(1.0)

	// signed distances of the control points to the line
	d0 := c.P0.Sub(l0).Dot(n)
	d1 := c.P1.Sub(l0).Dot(n)
	d2 := c.P2.Sub(l0).Dot(n)
	d3 := c.P3.Sub(l0).Dot(n)

	var roots []float64
	if c.IsLine() {
		if Equal(d0-d3, 0.0) {
			return nil // parallel or on the line
		}
		roots = append(roots, d0/(d0-d3))
	} else {
		a := -d0 + 3.0*d1 - 3.0*d2 + d3
		b := 3.0*d0 - 6.0*d1 + 3.0*d2
		cc := -3.0*d0 + 3.0*d1
		if Equal(a, 0.0) && Equal(b, 0.0) && Equal(cc, 0.0) {
			return nil // curve lies on the line
		}

		// coefficients that vanish relative to the others only add noise to the roots
		if math.Abs(a) <= 1e-6*max(math.Abs(b), math.Abs(cc), math.Abs(d0)) {
			a = 0.0
			if math.Abs(b) <= 1e-6*max(math.Abs(cc), math.Abs(d0)) {
				b = 0.0
			}
		}
		r0, r1, r2 := solveCubicFormula(a, b, cc, d0)
		for _, r := range []float64{r0, r1, r2} {
			if !math.IsNaN(r) {
				roots = append(roots, r)
			}
		}
	}

	// polish roots on the curve itself and drop those that are not on the line
	dist := func(t float64) float64 {
		return c.Pos(t).Sub(l0).Dot(n)
	}
	tolerance := 1e-9 * (1.0 + max(math.Abs(d0), math.Abs(d1), math.Abs(d2), math.Abs(d3)))
	ts := roots[:0]
	for _, t := range roots {
		if !Interval(t, 0.0, 1.0) {
			continue
		}
		t = math.Max(0.0, math.Min(1.0, t))
		for range 8 {
			f, df := dist(t), c.Deriv(t).Dot(n)
			if math.Abs(f) <= Epsilon || df == 0.0 {
				break
			}
			t = math.Max(0.0, math.Min(1.0, t-f/df))
		}
		if math.Abs(dist(t)) <= tolerance {
			ts = append(ts, t)
		}
	}
	slices.Sort(ts)

	var zs []lineIntersection
	for _, t := range ts {
		if 0 < len(zs) && math.Abs(zs[len(zs)-1].T-t) < 1e-9 {
			continue // double root
		}
		pos := c.Pos(t)
		s := pos.Sub(l0).Dot(dir) / dir.Dot(dir)
		tangent := math.Abs(c.Tangent(t).Dot(n)) < 1e-9
		zs = append(zs, lineIntersection{T: t, S: s, Pos: pos, Tangent: tangent})
	}
	return zs
}

// intersectCubics returns all intersections between curves A and B within accuracy. Where the curves overlap over a stretch, only the end points of that stretch are returned.
func intersectCubics(a, b Cubic, accuracy float64) []cubicIntersection {
	if !a.hullBounds().Overlaps(b.hullBounds(), accuracy) {
		return nil
	}

	if zs, ok := overlappingCubics(a, b, accuracy); ok {
		return zs
	}

	// end point contacts go first so that they win when clustering
	zs := endpointContacts(a, b, accuracy)
	if a.IsLine() && b.IsLine() {
		zs = append(zs, intersectLines(a, b, accuracy)...)
	} else if a.IsLine() {
		zs = append(zs, intersectLineCubic(a, b, accuracy, false)...)
	} else if b.IsLine() {
		zs = append(zs, intersectLineCubic(b, a, accuracy, true)...)
	} else {
		intersectCubicsRecursive(&zs, a, b, a, b, 0.0, 1.0, 0.0, 1.0, 0, accuracy)
	}
	return clusterIntersections(zs, accuracy)
}

// intersectLines intersects two straight cubics. Parallel lines have no intersections here, as collinear overlaps are found by overlappingCubics.
// see https://www.geometrictools.com/GTE/Mathematics/IntrLine2Line2.h
func intersectLines(a, b Cubic, accuracy float64) []cubicIntersection {
	da := a.P3.Sub(a.P0)
	db := b.P3.Sub(b.P0)
	div := da.PerpDot(db)
	la, lb := da.Length(), db.Length()
	if la == 0.0 || lb == 0.0 || math.Abs(div) <= 1e-12*la*lb {
		return nil
	}

	ta := db.PerpDot(a.P0.Sub(b.P0)) / div
	tb := da.PerpDot(a.P0.Sub(b.P0)) / div
	if !Interval(ta, -accuracy/la, 1.0+accuracy/la) || !Interval(tb, -accuracy/lb, 1.0+accuracy/lb) {
		return nil
	}
	ta = math.Max(0.0, math.Min(1.0, ta))
	tb = math.Max(0.0, math.Min(1.0, tb))
	return []cubicIntersection{{ta, tb, a.Pos(ta)}}
}

// intersectLineCubic intersects the straight cubic l with curve c, swap reverses the roles of the returned parameters.
func intersectLineCubic(l, c Cubic, accuracy float64, swap bool) []cubicIntersection {
	ll := l.P3.Sub(l.P0).Length()
	if ll == 0.0 {
		return nil
	}
	var zs []cubicIntersection
	for _, z := range c.intersectLine(l.P0, l.P3) {
		if !Interval(z.S, -accuracy/ll, 1.0+accuracy/ll) {
			continue
		}
		s := math.Max(0.0, math.Min(1.0, z.S))
		if swap {
			zs = append(zs, cubicIntersection{z.T, s, z.Pos})
		} else {
			zs = append(zs, cubicIntersection{s, z.T, z.Pos})
		}
	}
	return zs
}

// intersectCubicsRecursive subdivides both curves while their control polygons overlap, and refines candidate intersections of the original curves oa and ob by Newton iteration.
func intersectCubicsRecursive(zs *[]cubicIntersection, oa, ob, a, b Cubic, ta0, ta1, tb0, tb1 float64, depth int, accuracy float64) {
	ra, rb := a.hullBounds(), b.hullBounds()
	if !ra.Overlaps(rb, accuracy/8.0) {
		return
	}

	small := accuracy / 8.0
	if depth == maxSubdivisionDepth || math.Max(ra.W, ra.H) < small && math.Max(rb.W, rb.H) < small {
		ta, tb := refineIntersection(oa, ob, (ta0+ta1)/2.0, (tb0+tb1)/2.0)
		pos := oa.Pos(ta)
		if pos.Sub(ob.Pos(tb)).Length() <= accuracy {
			*zs = append(*zs, cubicIntersection{ta, tb, pos})
		}
		return
	}

	tam, tbm := (ta0+ta1)/2.0, (tb0+tb1)/2.0
	a0, a1 := a.Split(0.5)
	b0, b1 := b.Split(0.5)
	intersectCubicsRecursive(zs, oa, ob, a0, b0, ta0, tam, tb0, tbm, depth+1, accuracy)
	intersectCubicsRecursive(zs, oa, ob, a0, b1, ta0, tam, tbm, tb1, depth+1, accuracy)
	intersectCubicsRecursive(zs, oa, ob, a1, b0, tam, ta1, tb0, tbm, depth+1, accuracy)
	intersectCubicsRecursive(zs, oa, ob, a1, b1, tam, ta1, tbm, tb1, depth+1, accuracy)
}

// refineIntersection solves A(ta) = B(tb) by Newton iteration.
func refineIntersection(a, b Cubic, ta, tb float64) (float64, float64) {
	for range 10 {
		r := b.Pos(tb).Sub(a.Pos(ta))
		if r.Length() < Epsilon {
			break
		}
		u, v := a.Deriv(ta), b.Deriv(tb).Neg()
		det := u.PerpDot(v)
		if Equal(det, 0.0) {
			break // tangent
		}
		ta = math.Max(0.0, math.Min(1.0, ta+r.PerpDot(v)/det))
		tb = math.Max(0.0, math.Min(1.0, tb+u.PerpDot(r)/det))
	}
	return ta, tb
}

// endpointContacts returns the places where an end point of one curve lies on the other curve.
func endpointContacts(a, b Cubic, accuracy float64) []cubicIntersection {
	var zs []cubicIntersection
	for i, p := range []Point{a.P0, a.P3} {
		if tb, d := b.closestT(p); d <= accuracy {
			zs = append(zs, cubicIntersection{float64(i), tb, p})
		}
	}
	for i, p := range []Point{b.P0, b.P3} {
		if ta, d := a.closestT(p); d <= accuracy {
			zs = append(zs, cubicIntersection{ta, float64(i), p})
		}
	}
	return zs
}

// overlappingCubics detects curves that run along each other for a stretch, and returns the end points of that stretch.
func overlappingCubics(a, b Cubic, accuracy float64) ([]cubicIntersection, bool) {
	zs := clusterIntersections(endpointContacts(a, b, accuracy), accuracy)
	if len(zs) < 2 {
		return nil, false
	}
	slices.SortFunc(zs, func(z0, z1 cubicIntersection) int {
		if z0.TA < z1.TA {
			return -1
		} else if z1.TA < z0.TA {
			return 1
		}
		return 0
	})

	overlap := false
	for i := 1; i < len(zs); i++ {
		ta0, ta1 := zs[i-1].TA, zs[i].TA
		tb0, tb1 := zs[i-1].TB, zs[i].TB
		onB := true
		for _, f := range []float64{0.25, 0.5, 0.75} {
			ta := ta0 + f*(ta1-ta0)
			tb, d := b.closestT(a.Pos(ta))
			if accuracy < d || tb < math.Min(tb0, tb1)-Epsilon || math.Max(tb0, tb1)+Epsilon < tb {
				onB = false
				break
			}
		}
		if onB {
			overlap = true
			break
		}
	}
	if !overlap {
		return nil, false
	}
	return zs, true
}

// clusterIntersections removes intersections that lie within accuracy of a previous one.
func clusterIntersections(zs []cubicIntersection, accuracy float64) []cubicIntersection {
	out := zs[:0:0]
Outer:
	for _, z := range zs {
		for _, o := range out {
			if z.Pos.Near(o.Pos, accuracy) {
				continue Outer
			}
		}
		out = append(out, z)
	}
	return out
}

// selfIntersection returns the parameters t1 < t2 at which the curve crosses itself, if it forms a loop.
func (c Cubic) selfIntersection() (float64, float64, bool) {
	// power basis B(t) = a.t^3 + b.t^2 + c.t + d
	a := c.P3.Sub(c.P0).Add(c.P1.Sub(c.P2).Mul(3.0))
	b := c.P0.Sub(c.P1.Mul(2.0)).Add(c.P2).Mul(3.0)
	d := c.P1.Sub(c.P0).Mul(3.0)

	// B(t1) = B(t2) with t1 != t2 gives a.(s^2-p) + b.s + d = 0 for s = t1+t2 and p = t1.t2
	axb := a.PerpDot(b)
	aa := a.Dot(a)
	if Equal(axb, 0.0) || Equal(aa, 0.0) {
		return 0.0, 0.0, false
	}
	s := -a.PerpDot(d) / axb
	p := s*s + b.Mul(s).Add(d).Dot(a)/aa

	t1, t2 := solveQuadraticFormula(1.0, -s, p)
	if math.IsNaN(t1) || math.IsNaN(t2) || Equal(t1, t2) {
		return 0.0, 0.0, false
	} else if !Interval(t1, 0.0, 1.0) || !Interval(t2, 0.0, 1.0) {
		return 0.0, 0.0, false
	}
	return math.Max(0.0, t1), math.Min(1.0, t2), true
}

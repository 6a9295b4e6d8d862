package pathgraph

import (
	"fmt"
	"math"
)

// Cubic is a cubic Bézier curve from P0 to P3 with control points P1 and P2. Lines and quadratic Béziers are raised to cubics so that the graph only deals with one kind of segment.
type Cubic struct {
	P0, P1, P2, P3 Point
}

// LineCubic returns the straight cubic from p0 to p1 with linear parameterization, ie. control points at one and two thirds.
func LineCubic(p0, p1 Point) Cubic {
	return Cubic{p0, p0.Interpolate(p1, 1.0/3.0), p0.Interpolate(p1, 2.0/3.0), p1}
}

// QuadCubic raises the quadratic Bézier p0, p1, p2 to a cubic.
func QuadCubic(p0, p1, p2 Point) Cubic {
	c1 := p0.Interpolate(p1, 2.0/3.0)
	c2 := p2.Interpolate(p1, 2.0/3.0)
	return Cubic{p0, c1, c2, p2}
}

// Pos returns the position at t.
func (c Cubic) Pos(t float64) Point {
	s := 1.0 - t
	p := c.P0.Mul(s * s * s)
	p = p.Add(c.P1.Mul(3.0 * s * s * t))
	p = p.Add(c.P2.Mul(3.0 * s * t * t))
	return p.Add(c.P3.Mul(t * t * t))
}

// Deriv returns the derivative at t.
func (c Cubic) Deriv(t float64) Point {
	s := 1.0 - t
	p := c.P1.Sub(c.P0).Mul(3.0 * s * s)
	p = p.Add(c.P2.Sub(c.P1).Mul(6.0 * s * t))
	return p.Add(c.P3.Sub(c.P2).Mul(3.0 * t * t))
}

// Deriv2 returns the second derivative at t.
func (c Cubic) Deriv2(t float64) Point {
	a := c.P2.Sub(c.P1.Mul(2.0)).Add(c.P0)
	b := c.P3.Sub(c.P2.Mul(2.0)).Add(c.P1)
	return a.Mul(6.0 * (1.0 - t)).Add(b.Mul(6.0 * t))
}

// Tangent returns the unit tangent at t. Where the derivative vanishes (coinciding control points), the direction of approach is used instead.
func (c Cubic) Tangent(t float64) Point {
	d := c.Deriv(t)
	if d.Length() < Epsilon {
		d = c.Deriv2(t)
		if 0.5 < t {
			d = d.Neg()
		}
		if d.Length() < Epsilon {
			d = c.P3.Sub(c.P0)
		}
	}
	return d.Norm(1.0)
}

// Normal returns the unit normal at t, pointing to the right of the direction of travel.
func (c Cubic) Normal(t float64) Point {
	return c.Tangent(t).Rot90CW()
}

// Bounds returns the tight bounding box.
func (c Cubic) Bounds() Rect {
	r := RectFromPoints(c.P0, c.P3)
	// extrema where the derivative is zero, B'(t)/3 = a.t^2 + b.t + c
	a := c.P3.Sub(c.P0).Add(c.P1.Sub(c.P2).Mul(3.0))
	b := c.P0.Sub(c.P1.Mul(2.0)).Add(c.P2).Mul(2.0)
	d := c.P1.Sub(c.P0)
	tx1, tx2 := solveQuadraticFormula(a.X, b.X, d.X)
	ty1, ty2 := solveQuadraticFormula(a.Y, b.Y, d.Y)
	for _, t := range []float64{tx1, tx2, ty1, ty2} {
		if !math.IsNaN(t) && 0.0 < t && t < 1.0 {
			r = r.AddPoint(c.Pos(t))
		}
	}
	return r
}

// hullBounds returns the bounding box of the control polygon, which contains the curve.
func (c Cubic) hullBounds() Rect {
	return RectFromPoints(c.P0, c.P1, c.P2, c.P3)
}

// Split splits the curve at t using De Casteljau's algorithm.
func (c Cubic) Split(t float64) (Cubic, Cubic) {
	pm := c.P1.Interpolate(c.P2, t)

	q1 := c.P0.Interpolate(c.P1, t)
	q2 := q1.Interpolate(pm, t)

	r2 := c.P2.Interpolate(c.P3, t)
	r1 := pm.Interpolate(r2, t)

	r0 := q2.Interpolate(r1, t)
	return Cubic{c.P0, q1, q2, r0}, Cubic{r0, r1, r2, c.P3}
}

// Subsegment returns the part of the curve between t0 and t1.
func (c Cubic) Subsegment(t0, t1 float64) Cubic {
	if t1 < t0 {
		return c.Subsegment(t1, t0).Reverse()
	}
	if 0.0 < t0 {
		_, c = c.Split(t0)
		t1 = (t1 - t0) / (1.0 - t0)
	}
	if t1 < 1.0 {
		c, _ = c.Split(t1)
	}
	return c
}

// Reverse returns the same curve traversed from P3 to P0.
func (c Cubic) Reverse() Cubic {
	return Cubic{c.P3, c.P2, c.P1, c.P0}
}

// IsLine returns true if the curve is a straight line with linear parameterization. Subsegments of such lines are lines as well.
func (c Cubic) IsLine() bool {
	tolerance := 1e-9 * (1.0 + c.P3.Sub(c.P0).Length())
	return c.P1.Near(c.P0.Interpolate(c.P3, 1.0/3.0), tolerance) && c.P2.Near(c.P0.Interpolate(c.P3, 2.0/3.0), tolerance)
}

// Length returns the arc length.
func (c Cubic) Length() float64 {
	if c.IsLine() {
		return c.P3.Sub(c.P0).Length()
	}
	speed := func(t float64) float64 {
		return c.Deriv(t).Length()
	}
	return gaussLegendre5(speed, 0.0, 0.5) + gaussLegendre5(speed, 0.5, 1.0)
}

// Equals returns true if both curves have the same control points with tolerance Epsilon.
func (c Cubic) Equals(q Cubic) bool {
	return c.P0.Equals(q.P0) && c.P1.Equals(q.P1) && c.P2.Equals(q.P2) && c.P3.Equals(q.P3)
}

// near returns true if all control points are within d of each other.
func (c Cubic) near(q Cubic, d float64) bool {
	return c.P0.Near(q.P0, d) && c.P1.Near(q.P1, d) && c.P2.Near(q.P2, d) && c.P3.Near(q.P3, d)
}

// signedArea returns the area between the curve and the origin, so that the sum over a closed path is its signed area (Green's theorem). Positive is counter clockwise.
func (c Cubic) signedArea() float64 {
	p0, p1, p2, p3 := c.P0, c.P1, c.P2, c.P3
	return (p0.X*(6.0*p1.Y+3.0*p2.Y+p3.Y) +
		3.0*p1.X*(-2.0*p0.Y+p2.Y+p3.Y) +
		3.0*p2.X*(-p0.Y-p1.Y+2.0*p3.Y) +
		p3.X*(-p0.Y-3.0*p1.Y-6.0*p2.Y)) / 20.0
}

// flatten appends the end points of line segments approximating the curve within tolerance, excluding P0.
func (c Cubic) flatten(ps []Point, tolerance float64) []Point {
	if c.IsLine() {
		return append(ps, c.P3)
	}

	// deviation of n line segments is bounded by max|B''|/(8.n^2)
	dd := math.Max(c.P0.Sub(c.P1.Mul(2.0)).Add(c.P2).Length(), c.P1.Sub(c.P2.Mul(2.0)).Add(c.P3).Length())
	n := int(math.Ceil(math.Sqrt(0.75 * dd / tolerance)))
	n = max(1, min(n, 1000))
	for i := 1; i < n; i++ {
		ps = append(ps, c.Pos(float64(i)/float64(n)))
	}
	return append(ps, c.P3)
}

func (c Cubic) String() string {
	return fmt.Sprintf("C(%v %v %v %v)", c.P0, c.P1, c.P2, c.P3)
}

////////////////////////////////////////////////////////////////

// arcToCenter changes the SVG arc format to the center and angles format, angles are in radians.
// see https://www.w3.org/TR/SVG/implnote.html#ArcImplementationNotes
func arcToCenter(x1, y1, rx, ry, phi float64, large, sweep bool, x2, y2 float64) (float64, float64, float64, float64, float64, float64) {
	rx, ry = math.Abs(rx), math.Abs(ry)
	sinphi, cosphi := math.Sincos(phi)
	x1p := cosphi*(x1-x2)/2.0 + sinphi*(y1-y2)/2.0
	y1p := -sinphi*(x1-x2)/2.0 + cosphi*(y1-y2)/2.0

	// scale up radii that are too small
	lambda := x1p*x1p/rx/rx + y1p*y1p/ry/ry
	if 1.0 < lambda {
		rx *= math.Sqrt(lambda)
		ry *= math.Sqrt(lambda)
	}

	sq := (rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p) / (rx*rx*y1p*y1p + ry*ry*x1p*x1p)
	coef := math.Sqrt(math.Max(sq, 0.0))
	if large == sweep {
		coef = -coef
	}
	cxp := coef * rx * y1p / ry
	cyp := coef * -ry * x1p / rx
	cx := cosphi*cxp - sinphi*cyp + (x1+x2)/2.0
	cy := sinphi*cxp + cosphi*cyp + (y1+y2)/2.0

	u := Point{(x1p - cxp) / rx, (y1p - cyp) / ry}
	v := Point{-(x1p + cxp) / rx, -(y1p + cyp) / ry}
	theta := u.Angle()
	delta := u.AngleBetween(v)
	if !sweep && 0.0 < delta {
		delta -= 2.0 * math.Pi
	} else if sweep && delta < 0.0 {
		delta += 2.0 * math.Pi
	}
	return cx, cy, rx, ry, theta, theta + delta
}

// arcCubics approximates an elliptical arc in SVG format by cubic Béziers that span at most 90 degrees each.
func arcCubics(start Point, rx, ry, phi float64, large, sweep bool, end Point) []Cubic {
	if start.Equals(end) {
		return nil
	} else if Equal(rx, 0.0) || Equal(ry, 0.0) {
		return []Cubic{LineCubic(start, end)}
	}

	cx, cy, rx, ry, theta0, theta1 := arcToCenter(start.X, start.Y, rx, ry, phi, large, sweep, end.X, end.Y)
	sinphi, cosphi := math.Sincos(phi)
	pos := func(theta float64) Point {
		sintheta, costheta := math.Sincos(theta)
		return Point{
			cx + rx*costheta*cosphi - ry*sintheta*sinphi,
			cy + rx*costheta*sinphi + ry*sintheta*cosphi,
		}
	}
	deriv := func(theta float64) Point {
		sintheta, costheta := math.Sincos(theta)
		return Point{
			-rx*sintheta*cosphi - ry*costheta*sinphi,
			-rx*sintheta*sinphi + ry*costheta*cosphi,
		}
	}

	n := int(math.Ceil(math.Abs(theta1-theta0)/(math.Pi/2.0) - 1e-6))
	n = max(n, 1)
	dtheta := (theta1 - theta0) / float64(n)
	kappa := 4.0 / 3.0 * math.Tan(dtheta/4.0)

	cs := make([]Cubic, 0, n)
	p0 := start
	for i := 0; i < n; i++ {
		t0 := theta0 + float64(i)*dtheta
		t1 := t0 + dtheta
		p3 := pos(t1)
		if i == n-1 {
			p3 = end
		}
		p1 := p0.Add(deriv(t0).Mul(kappa))
		p2 := p3.Sub(deriv(t1).Mul(kappa))
		cs = append(cs, Cubic{p0, p1, p2, p3})
		p0 = p3
	}
	return cs
}

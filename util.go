package pathgraph

import (
	"fmt"
	"math"
	"strconv"
)

// Epsilon is the numerical tolerance used for exact-looking comparisons, such as points that coincide. It is much smaller than any graph accuracy.
const Epsilon = 1e-10

// Equal returns true if a and b are equal with tolerance Epsilon.
func Equal(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Interval returns true if f is in [lower-Epsilon,upper+Epsilon].
func Interval(f, lower, upper float64) bool {
	return lower-Epsilon <= f && f <= upper+Epsilon
}

// angleNorm returns the angle theta in the range [0,2PI).
func angleNorm(theta float64) float64 {
	theta = math.Mod(theta, 2.0*math.Pi)
	if theta < 0.0 {
		theta += 2.0 * math.Pi
	}
	return theta
}

// ftos formats a float for SVG path data using the shortest representation.
func ftos(f float64) string {
	if f == 0.0 {
		// also catches -0
		return "0"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

////////////////////////////////////////////////////////////////

// Point is a coordinate in 2D space. OP refers to the line that goes through the origin (0,0) and this point (x,y). The coordinate system is y-up, so that positive areas are counter clockwise.
type Point struct {
	X, Y float64
}

// IsZero returns true if P is exactly zero.
func (p Point) IsZero() bool {
	return p.X == 0.0 && p.Y == 0.0
}

// Equals returns true if P and Q are equal with tolerance Epsilon.
func (p Point) Equals(q Point) bool {
	return Equal(p.X, q.X) && Equal(p.Y, q.Y)
}

// Near returns true if P and Q are no further than d apart.
func (p Point) Near(q Point, d float64) bool {
	return p.Sub(q).Length() <= d
}

// Neg negates x and y.
func (p Point) Neg() Point {
	return Point{-p.X, -p.Y}
}

// Add adds Q to P.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub subtracts Q from P.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Mul multiplies x and y by f.
func (p Point) Mul(f float64) Point {
	return Point{f * p.X, f * p.Y}
}

// Div divides x and y by f.
func (p Point) Div(f float64) Point {
	return Point{p.X / f, p.Y / f}
}

// Rot90CW rotates the line OP by 90 degrees CW.
func (p Point) Rot90CW() Point {
	return Point{p.Y, -p.X}
}

// Rot90CCW rotates the line OP by 90 degrees CCW.
func (p Point) Rot90CCW() Point {
	return Point{-p.Y, p.X}
}

// Dot returns the dot product between OP and OQ, ie. zero if perpendicular and |OP|*|OQ| if aligned.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// PerpDot returns the perp dot product between OP and OQ, ie. zero if aligned and |OP|*|OQ| if perpendicular. It is positive when OQ lies counter clockwise of OP.
func (p Point) PerpDot(q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}

// Length returns the length of OP.
func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Angle returns the angle between the x-axis and OP.
func (p Point) Angle() float64 {
	return math.Atan2(p.Y, p.X)
}

// AngleBetween returns the angle between OP and OQ in (-PI,PI].
func (p Point) AngleBetween(q Point) float64 {
	return math.Atan2(p.PerpDot(q), p.Dot(q))
}

// Norm normalizes OP to be of certain length.
func (p Point) Norm(length float64) Point {
	d := p.Length()
	if Equal(d, 0.0) {
		return Point{}
	}
	return Point{p.X / d * length, p.Y / d * length}
}

// Interpolate returns a point on PQ that is linearly interpolated by t, ie. t=0 returns P and t=1 returns Q.
func (p Point) Interpolate(q Point, t float64) Point {
	return Point{(1-t)*p.X + t*q.X, (1-t)*p.Y + t*q.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("[%g; %g]", p.X, p.Y)
}

////////////////////////////////////////////////////////////////

// Rect is an axis-aligned rectangle with its origin in the bottom-left corner.
type Rect struct {
	X, Y, W, H float64
}

// RectFromPoints returns the smallest rectangle containing all points.
func RectFromPoints(ps ...Point) Rect {
	if len(ps) == 0 {
		return Rect{}
	}
	x0, y0, x1, y1 := ps[0].X, ps[0].Y, ps[0].X, ps[0].Y
	for _, p := range ps[1:] {
		x0 = math.Min(x0, p.X)
		y0 = math.Min(y0, p.Y)
		x1 = math.Max(x1, p.X)
		y1 = math.Max(y1, p.Y)
	}
	return Rect{x0, y0, x1 - x0, y1 - y0}
}

// Equals returns true if both rectangles are equal with tolerance Epsilon.
func (r Rect) Equals(q Rect) bool {
	return Equal(r.X, q.X) && Equal(r.Y, q.Y) && Equal(r.W, q.W) && Equal(r.H, q.H)
}

// Max returns the top-right corner.
func (r Rect) Max() Point {
	return Point{r.X + r.W, r.Y + r.H}
}

// Add returns the smallest rectangle containing both rectangles. Degenerate rectangles (lines or points) are kept.
func (r Rect) Add(q Rect) Rect {
	x0 := math.Min(r.X, q.X)
	y0 := math.Min(r.Y, q.Y)
	x1 := math.Max(r.X+r.W, q.X+q.W)
	y1 := math.Max(r.Y+r.H, q.Y+q.H)
	return Rect{x0, y0, x1 - x0, y1 - y0}
}

// AddPoint extends the rectangle to contain P.
func (r Rect) AddPoint(p Point) Rect {
	return r.Add(Rect{p.X, p.Y, 0.0, 0.0})
}

// Expand grows the rectangle by d in all directions.
func (r Rect) Expand(d float64) Rect {
	return Rect{r.X - d, r.Y - d, r.W + 2.0*d, r.H + 2.0*d}
}

// Overlaps returns true if both rectangles overlap or touch, allowing for a margin.
func (r Rect) Overlaps(q Rect, margin float64) bool {
	return r.X-margin <= q.X+q.W && q.X-margin <= r.X+r.W && r.Y-margin <= q.Y+q.H && q.Y-margin <= r.Y+r.H
}

// Contains returns true if P lies inside or on the rectangle.
func (r Rect) Contains(p Point) bool {
	return r.X <= p.X && p.X <= r.X+r.W && r.Y <= p.Y && p.Y <= r.Y+r.H
}

func (r Rect) String() string {
	return fmt.Sprintf("(%g,%g)-(%g,%g)", r.X, r.Y, r.X+r.W, r.Y+r.H)
}

////////////////////////////////////////////////////////////////

// solveQuadraticFormula returns the real roots of a.x^2 + b.x + c = 0 in ascending order, missing roots are NaN.
func solveQuadraticFormula(a, b, c float64) (float64, float64) {
	if a == 0.0 {
		if b == 0.0 {
			if c == 0.0 {
				// all x satisfy the equation
				return 0.0, math.NaN()
			}
			return math.NaN(), math.NaN()
		}
		return -c / b, math.NaN()
	}

	if c == 0.0 {
		x := -b / a
		if x < 0.0 {
			return x, 0.0
		}
		return 0.0, x
	}

	discriminant := b*b - 4.0*a*c
	if discriminant < 0.0 {
		return math.NaN(), math.NaN()
	} else if discriminant == 0.0 {
		return -b / (2.0 * a), math.NaN()
	}

	// Citardauq formula, avoids catastrophic cancellation when 4.a.c is small compared to b^2
	q := math.Sqrt(discriminant)
	if b < 0.0 {
		q = -q
	}
	x1 := -(b + q) / (2.0 * a)
	x2 := c / (a * x1)
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	return x1, x2
}

// solveCubicFormula returns the real roots of a.x^3 + b.x^2 + c.x + d = 0 in ascending order, missing roots are NaN and come last.
// see https://www.geometrictools.com/Documentation/LowDegreePolynomialRoots.pdf
func solveCubicFormula(a, b, c, d float64) (float64, float64, float64) {
	var x1, x2, x3 float64
	x2, x3 = math.NaN(), math.NaN()
	if Equal(a, 0.0) {
		x1, x2 = solveQuadraticFormula(b, c, d)
	} else {
		// monic polynomial x^3 + b.x^2 + c.x + d
		b /= a
		c /= a
		d /= a

		// depressed polynomial x^3 + c1.x + c0
		bthird := b / 3.0
		c0 := d - bthird*(c-2.0*bthird*bthird)
		c1 := c - b*bthird
		if Equal(c0, 0.0) {
			if c1 < 0.0 {
				tmp := math.Sqrt(-c1)
				x1 = -tmp - bthird
				x2 = tmp - bthird
				x3 = -bthird
			} else {
				x1 = -bthird
			}
		} else if Equal(c1, 0.0) {
			x1 = math.Cbrt(-c0) - bthird
		} else {
			delta := -(4.0*c1*c1*c1 + 27.0*c0*c0)
			if Equal(delta, 0.0) {
				delta = 0.0
			}

			if delta < 0.0 {
				betaRe := -c0 / 2.0
				betaIm := math.Sqrt(-delta / 108.0)
				x1 = math.Cbrt(betaRe-betaIm) + math.Cbrt(betaRe+betaIm) - bthird
			} else if 0.0 < delta {
				betaRe := -c0 / 2.0
				betaIm := math.Sqrt(delta / 108.0)
				theta := math.Atan2(betaIm, betaRe) / 3.0
				sintheta, costheta := math.Sincos(theta)
				distance := math.Sqrt(-c1 / 3.0)
				tmp := distance * sintheta * math.Sqrt(3.0)
				x1 = 2.0*distance*costheta - bthird
				x2 = -distance*costheta - tmp - bthird
				x3 = -distance*costheta + tmp - bthird
			} else {
				tmp := -3.0 * c0 / (2.0 * c1)
				x1 = tmp - bthird
				x2 = -2.0*tmp - bthird
			}
		}
	}

	// sort, NaNs last
	if x3 < x2 || math.IsNaN(x2) {
		x2, x3 = x3, x2
	}
	if x2 < x1 || math.IsNaN(x1) {
		x1, x2 = x2, x1
	}
	if x3 < x2 || math.IsNaN(x2) {
		x2, x3 = x3, x2
	}
	return x1, x2, x3
}

// gaussLegendre5 integrates f from a to b by Gauss-Legendre quadrature with n=5.
// see https://pomax.github.io/bezierinfo/legendre-gauss.html
func gaussLegendre5(f func(float64) float64, a, b float64) float64 {
	c := (b - a) / 2.0
	d := (a + b) / 2.0
	Qd1 := f(-0.906179845938664*c + d)
	Qd2 := f(-0.538469310105683*c + d)
	Qd3 := f(d)
	Qd4 := f(0.538469310105683*c + d)
	Qd5 := f(0.906179845938664*c + d)
	return c * (0.236926885056189*(Qd1+Qd5) + 0.478628670499366*(Qd2+Qd4) + 0.568888888888889*Qd3)
}

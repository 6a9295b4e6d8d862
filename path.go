package pathgraph

import (
	"math"
	"strings"
)

// Path commands, stored as the first and last value of each segment so that paths can be traversed in both directions.
const (
	MoveToCmd = 1.0
	LineToCmd = 2.0
	QuadToCmd = 4.0
	CubeToCmd = 8.0
	ArcToCmd  = 16.0
	CloseCmd  = 32.0
)

// cmdLen returns the number of values of a segment including the two command values.
func cmdLen(cmd float64) int {
	switch cmd {
	case MoveToCmd, LineToCmd, CloseCmd:
		return 4
	case QuadToCmd:
		return 6
	case CubeToCmd, ArcToCmd:
		return 8
	}
	panic("unknown path command")
}

func fromArcFlags(large, sweep bool) float64 {
	f := 0.0
	if large {
		f += 1.0
	}
	if sweep {
		f += 2.0
	}
	return f
}

func toArcFlags(f float64) (bool, bool) {
	large := (f == 1.0 || f == 3.0)
	sweep := (f == 2.0 || f == 3.0)
	return large, sweep
}

// Path is a collection of MoveTo, LineTo, QuadTo, CubeTo, ArcTo and Close commands, each followed by their values. Every segment is stored as cmd, values..., cmd. Close stores the start position of its subpath.
type Path struct {
	d []float64
}

// Empty returns true if P contains no segments other than MoveTos.
func (p *Path) Empty() bool {
	for i := 0; i < len(p.d); i += cmdLen(p.d[i]) {
		if p.d[i] != MoveToCmd {
			return false
		}
	}
	return true
}

// Len returns the number of segments including MoveTos.
func (p *Path) Len() int {
	n := 0
	for i := 0; i < len(p.d); i += cmdLen(p.d[i]) {
		n++
	}
	return n
}

// Equals returns true if P and Q are equal with tolerance Epsilon.
func (p *Path) Equals(q *Path) bool {
	if len(p.d) != len(q.d) {
		return false
	}
	for i := range p.d {
		if !Equal(p.d[i], q.d[i]) {
			return false
		}
	}
	return true
}

// Copy returns a copy of P.
func (p *Path) Copy() *Path {
	return &Path{append([]float64{}, p.d...)}
}

// Append appends path Q to P and returns P.
func (p *Path) Append(qs ...*Path) *Path {
	for _, q := range qs {
		if q != nil && !q.Empty() {
			p.d = append(p.d, q.d...)
		}
	}
	return p
}

// Pos returns the current position of the path, which is the end point of the last command.
func (p *Path) Pos() Point {
	if 0 < len(p.d) {
		return Point{p.d[len(p.d)-3], p.d[len(p.d)-2]}
	}
	return Point{}
}

// StartPos returns the start point of the current subpath, ie. it returns the position of the last MoveTo command.
func (p *Path) StartPos() Point {
	for i := len(p.d); 0 < i; {
		cmd := p.d[i-1]
		if cmd == MoveToCmd {
			return Point{p.d[i-3], p.d[i-2]}
		}
		i -= cmdLen(cmd)
	}
	return Point{}
}

// Closed returns true if the last subpath of P is closed.
func (p *Path) Closed() bool {
	return 0 < len(p.d) && p.d[len(p.d)-1] == CloseCmd
}

// Coords returns the end points of all segments, excluding the end point of Close commands.
func (p *Path) Coords() []Point {
	coords := []Point{}
	for i := 0; i < len(p.d); {
		cmd := p.d[i]
		i += cmdLen(cmd)
		if cmd != CloseCmd {
			coords = append(coords, Point{p.d[i-3], p.d[i-2]})
		}
	}
	return coords
}

////////////////////////////////////////////////////////////////

// MoveTo moves the path to (x,y) without connecting the path. It starts a new independent subpath.
func (p *Path) MoveTo(x, y float64) {
	if 0 < len(p.d) && p.d[len(p.d)-1] == MoveToCmd {
		p.d[len(p.d)-3] = x
		p.d[len(p.d)-2] = y
		return
	}
	p.d = append(p.d, MoveToCmd, x, y, MoveToCmd)
}

// beginSegment makes sure a subpath is open before a drawing command is added.
func (p *Path) beginSegment() {
	if len(p.d) == 0 {
		p.MoveTo(0.0, 0.0)
	} else if p.d[len(p.d)-1] == CloseCmd {
		p.MoveTo(p.d[len(p.d)-3], p.d[len(p.d)-2])
	}
}

// LineTo adds a linear path to (x,y).
func (p *Path) LineTo(x, y float64) {
	p.beginSegment()
	p.d = append(p.d, LineToCmd, x, y, LineToCmd)
}

// QuadTo adds a quadratic Bézier path with control point (cpx,cpy) and end point (x,y).
func (p *Path) QuadTo(cpx, cpy, x, y float64) {
	p.beginSegment()
	p.d = append(p.d, QuadToCmd, cpx, cpy, x, y, QuadToCmd)
}

// CubeTo adds a cubic Bézier path with control points (cpx1,cpy1) and (cpx2,cpy2) and end point (x,y).
func (p *Path) CubeTo(cpx1, cpy1, cpx2, cpy2, x, y float64) {
	p.beginSegment()
	p.d = append(p.d, CubeToCmd, cpx1, cpy1, cpx2, cpy2, x, y, CubeToCmd)
}

// ArcTo adds an arc with radii rx and ry, with rot the counter clockwise rotation with respect to the coordinate system in degrees, large and sweep booleans (see https://developer.mozilla.org/en-US/docs/Web/SVG/Tutorial/Paths#Arcs), and (x,y) the end position of the pen. The start position of the pen was given by a previous command's end point.
func (p *Path) ArcTo(rx, ry, rot float64, large, sweep bool, x, y float64) {
	p.beginSegment()
	phi := angleNorm(rot * math.Pi / 180.0)
	if math.Pi <= phi {
		phi -= math.Pi
	}
	p.d = append(p.d, ArcToCmd, math.Abs(rx), math.Abs(ry), phi, fromArcFlags(large, sweep), x, y, ArcToCmd)
}

// Close closes a (sub)path with a LineTo to the start of the path (the most recent MoveTo command).
func (p *Path) Close() {
	if len(p.d) == 0 || p.d[len(p.d)-1] == CloseCmd {
		return
	} else if p.d[len(p.d)-1] == MoveToCmd {
		p.d = p.d[:len(p.d)-cmdLen(MoveToCmd)]
		return
	}

	start := p.StartPos()
	if p.d[len(p.d)-1] == LineToCmd && start.Equals(p.Pos()) {
		// replace the final LineTo to the start by Close
		p.d[len(p.d)-4] = CloseCmd
		p.d[len(p.d)-1] = CloseCmd
		return
	}
	p.d = append(p.d, CloseCmd, start.X, start.Y, CloseCmd)
}

////////////////////////////////////////////////////////////////

// Split splits the path into its independent subpaths.
func (p *Path) Split() []*Path {
	var ps []*Path
	var q *Path
	for i := 0; i < len(p.d); {
		cmd := p.d[i]
		n := cmdLen(cmd)
		if cmd == MoveToCmd {
			q = &Path{}
			ps = append(ps, q)
		}
		q.d = append(q.d, p.d[i:i+n]...)
		i += n
	}
	return ps
}

// Cubics returns for each subpath its outline as cubic Béziers. Subpaths are implicitly closed and zero-length segments are dropped, subpaths without any length are omitted.
func (p *Path) Cubics() [][]Cubic {
	var css [][]Cubic
	var cs []Cubic
	var start Point
	flush := func(end Point) {
		if !end.Equals(start) {
			cs = append(cs, LineCubic(end, start))
		}
		if 0 < len(cs) {
			css = append(css, cs)
		}
		cs = nil
	}

	scanner := p.Scanner()
	for scanner.Scan() {
		switch scanner.Cmd() {
		case MoveToCmd:
			if 0 < len(cs) {
				flush(cs[len(cs)-1].P3)
			}
			start = scanner.End()
		case LineToCmd, CloseCmd:
			if !scanner.Start().Equals(scanner.End()) {
				cs = append(cs, LineCubic(scanner.Start(), scanner.End()))
			}
		case QuadToCmd:
			c := QuadCubic(scanner.Start(), scanner.CP1(), scanner.End())
			if !c.Equals(Cubic{c.P0, c.P0, c.P0, c.P0}) {
				cs = append(cs, c)
			}
		case CubeToCmd:
			c := Cubic{scanner.Start(), scanner.CP1(), scanner.CP2(), scanner.End()}
			if !c.Equals(Cubic{c.P0, c.P0, c.P0, c.P0}) {
				cs = append(cs, c)
			}
		case ArcToCmd:
			rx, ry, rot, large, sweep := scanner.Arc()
			cs = append(cs, arcCubics(scanner.Start(), rx, ry, rot*math.Pi/180.0, large, sweep, scanner.End())...)
		}
	}
	if 0 < len(cs) {
		flush(cs[len(cs)-1].P3)
	}
	return css
}

// fromCubics returns a path with one closed subpath per list of cubics, straight cubics are written as LineTo.
func fromCubics(css [][]Cubic) *Path {
	p := &Path{}
	for _, cs := range css {
		if len(cs) == 0 {
			continue
		}
		p.MoveTo(cs[0].P0.X, cs[0].P0.Y)
		for _, c := range cs {
			if c.IsLine() {
				p.LineTo(c.P3.X, c.P3.Y)
			} else {
				p.CubeTo(c.P1.X, c.P1.Y, c.P2.X, c.P2.Y, c.P3.X, c.P3.Y)
			}
		}
		p.Close()
	}
	return p
}

// Reverse returns a new path that is the same path as P but in the reverse direction. All subpaths are closed and curves are expressed as cubic Béziers.
func (p *Path) Reverse() *Path {
	css := p.Cubics()
	for _, cs := range css {
		for i, j := 0, len(cs)-1; i <= j; i, j = i+1, j-1 {
			cs[i], cs[j] = cs[j].Reverse(), cs[i].Reverse()
		}
	}
	return fromCubics(css)
}

// Translate translates the path by (x,y).
func (p *Path) Translate(x, y float64) *Path {
	for i := 0; i < len(p.d); {
		cmd := p.d[i]
		n := cmdLen(cmd)
		switch cmd {
		case ArcToCmd:
			p.d[i+5] += x
			p.d[i+6] += y
		default:
			for j := i + 1; j < i+n-1; j += 2 {
				p.d[j] += x
				p.d[j+1] += y
			}
		}
		i += n
	}
	return p
}

// Bounds returns the exact bounding box rectangle of the path.
func (p *Path) Bounds() Rect {
	first := true
	var r Rect
	for _, cs := range p.Cubics() {
		for _, c := range cs {
			if first {
				r = c.Bounds()
				first = false
			} else {
				r = r.Add(c.Bounds())
			}
		}
	}
	return r
}

// Area returns the signed area of the path, where subpaths are implicitly closed. Counter clockwise subpaths have a positive area.
func (p *Path) Area() float64 {
	area := 0.0
	for _, cs := range p.Cubics() {
		area += cubicsArea(cs)
	}
	return area
}

func cubicsArea(cs []Cubic) float64 {
	area := 0.0
	for _, c := range cs {
		area += c.signedArea()
	}
	return area
}

// CCW returns true when the path is counter clockwise oriented.
func (p *Path) CCW() bool {
	return 0.0 <= p.Area()
}

// Flatten returns a path where all curves are replaced by line segments that deviate at most tolerance from the curve. Subpaths are closed.
func (p *Path) Flatten(tolerance float64) *Path {
	q := &Path{}
	for _, poly := range p.polylines(tolerance) {
		q.MoveTo(poly[0].X, poly[0].Y)
		for _, pt := range poly[1:] {
			q.LineTo(pt.X, pt.Y)
		}
		q.Close()
	}
	return q
}

// polylines returns the flattened subpaths as closed polygons, the last point is not a repetition of the first.
func (p *Path) polylines(tolerance float64) [][]Point {
	var polys [][]Point
	for _, cs := range p.Cubics() {
		poly := []Point{cs[0].P0}
		for _, c := range cs {
			poly = c.flatten(poly, tolerance)
		}
		if 1 < len(poly) && poly[len(poly)-1].Equals(poly[0]) {
			poly = poly[:len(poly)-1]
		}
		if 3 <= len(poly) {
			polys = append(polys, poly)
		}
	}
	return polys
}

// String returns a string that represents the path similar to the SVG path data format (but not necessarily valid SVG).
func (p *Path) String() string {
	sb := strings.Builder{}
	for i := 0; i < len(p.d); {
		cmd := p.d[i]
		switch cmd {
		case MoveToCmd:
			sb.WriteString("M" + ftos(p.d[i+1]) + " " + ftos(p.d[i+2]))
		case LineToCmd:
			sb.WriteString("L" + ftos(p.d[i+1]) + " " + ftos(p.d[i+2]))
		case QuadToCmd:
			sb.WriteString("Q" + ftos(p.d[i+1]) + " " + ftos(p.d[i+2]) + " " + ftos(p.d[i+3]) + " " + ftos(p.d[i+4]))
		case CubeToCmd:
			sb.WriteString("C" + ftos(p.d[i+1]) + " " + ftos(p.d[i+2]) + " " + ftos(p.d[i+3]) + " " + ftos(p.d[i+4]) + " " + ftos(p.d[i+5]) + " " + ftos(p.d[i+6]))
		case ArcToCmd:
			rot := p.d[i+3] * 180.0 / math.Pi
			large, sweep := toArcFlags(p.d[i+4])
			sLarge, sSweep := "0", "0"
			if large {
				sLarge = "1"
			}
			if sweep {
				sSweep = "1"
			}
			sb.WriteString("A" + ftos(p.d[i+1]) + " " + ftos(p.d[i+2]) + " " + ftos(rot) + " " + sLarge + " " + sSweep + " " + ftos(p.d[i+5]) + " " + ftos(p.d[i+6]))
		case CloseCmd:
			sb.WriteString("z")
		}
		i += cmdLen(cmd)
	}
	return sb.String()
}

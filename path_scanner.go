package pathgraph

import "math"

// Scanner iterates over the segments of a path.
type Scanner struct {
	p *Path
	i int // index of the last value of the current segment
}

// Scanner returns a path scanner.
func (p *Path) Scanner() *Scanner {
	return &Scanner{p, -1}
}

// Scan advances to the next segment and returns false when there are no more segments.
func (s *Scanner) Scan() bool {
	if s.i+1 < len(s.p.d) {
		s.i += cmdLen(s.p.d[s.i+1])
		return true
	}
	return false
}

// Cmd returns the command of the current segment.
func (s *Scanner) Cmd() float64 {
	return s.p.d[s.i]
}

// Values returns the values of the current segment.
func (s *Scanner) Values() []float64 {
	return s.p.d[s.i-cmdLen(s.p.d[s.i])+2 : s.i]
}

// Start returns the start point of the current segment, which is the end point of the previous one.
func (s *Scanner) Start() Point {
	i := s.i - cmdLen(s.p.d[s.i])
	if i == -1 {
		return Point{}
	}
	return Point{s.p.d[i-2], s.p.d[i-1]}
}

// CP1 returns the first control point for quadratic and cubic Béziers.
func (s *Scanner) CP1() Point {
	if s.p.d[s.i] != QuadToCmd && s.p.d[s.i] != CubeToCmd {
		panic("must be quadratic or cubic Bézier")
	}
	i := s.i - cmdLen(s.p.d[s.i]) + 1
	return Point{s.p.d[i+1], s.p.d[i+2]}
}

// CP2 returns the second control point for cubic Béziers.
func (s *Scanner) CP2() Point {
	if s.p.d[s.i] != CubeToCmd {
		panic("must be cubic Bézier")
	}
	i := s.i - cmdLen(s.p.d[s.i]) + 1
	return Point{s.p.d[i+3], s.p.d[i+4]}
}

// Arc returns the arguments for arcs (rx,ry,rot,large,sweep), rot is in degrees.
func (s *Scanner) Arc() (float64, float64, float64, bool, bool) {
	if s.p.d[s.i] != ArcToCmd {
		panic("must be arc")
	}
	i := s.i - cmdLen(s.p.d[s.i]) + 1
	large, sweep := toArcFlags(s.p.d[i+4])
	return s.p.d[i+1], s.p.d[i+2], s.p.d[i+3] * 180.0 / math.Pi, large, sweep
}

// End returns the end point of the current segment.
func (s *Scanner) End() Point {
	return Point{s.p.d[s.i-2], s.p.d[s.i-1]}
}

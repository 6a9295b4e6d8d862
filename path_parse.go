package pathgraph

import (
	"fmt"

	"github.com/tdewolff/parse/v2/strconv"
)

func skipCommaWhitespace(path []byte) int {
	i := 0
	for i < len(path) && (path[i] == ' ' || path[i] == ',' || path[i] == '\n' || path[i] == '\r' || path[i] == '\t') {
		i++
	}
	return i
}

// pathParser reads numbers from SVG path data and remembers the first error.
type pathParser struct {
	path []byte
	i    int
	err  error
}

func (p *pathParser) num() float64 {
	if p.err != nil {
		return 0.0
	}
	p.i += skipCommaWhitespace(p.path[p.i:])
	f, n := strconv.ParseFloat(p.path[p.i:])
	if n == 0 {
		p.err = &ParseError{p.i, "expected number"}
		return 0.0
	}
	p.i += n
	return f
}

// flag reads an arc flag, which may be written without separators as in "A1 1 0 01 5 5".
func (p *pathParser) flag() bool {
	if p.err != nil {
		return false
	}
	p.i += skipCommaWhitespace(p.path[p.i:])
	if p.i == len(p.path) || p.path[p.i] != '0' && p.path[p.i] != '1' {
		p.err = &ParseError{p.i, "expected flag"}
		return false
	}
	p.i++
	return p.path[p.i-1] == '1'
}

func (p *pathParser) point() Point {
	x := p.num()
	y := p.num()
	return Point{x, y}
}

// ParseSVGPath parses an SVG path data string.
func ParseSVGPath(s string) (*Path, error) {
	parser := &pathParser{path: []byte(s)}
	path := parser.path
	p := &Path{}

	var prevCmd byte
	cp := Point{} // reflected control point for S and T
	for {
		parser.i += skipCommaWhitespace(path[parser.i:])
		if len(path) <= parser.i {
			break
		}

		cmd := prevCmd
		if 'A' <= path[parser.i] && path[parser.i] != 'e' && path[parser.i] != 'E' {
			cmd = path[parser.i]
			parser.i++
		} else if prevCmd == 0 {
			return nil, &ParseError{parser.i, "path data must start with a command"}
		} else if prevCmd == 'Z' || prevCmd == 'z' {
			return nil, &ParseError{parser.i, "unexpected number after close"}
		}

		start := p.Pos()
		rel := Point{}
		if 'a' <= cmd {
			rel = start
		}
		switch cmd {
		case 'M', 'm':
			end := parser.point().Add(rel)
			p.MoveTo(end.X, end.Y)
		case 'Z', 'z':
			p.Close()
		case 'L', 'l':
			end := parser.point().Add(rel)
			p.LineTo(end.X, end.Y)
		case 'H', 'h':
			x := parser.num() + rel.X
			p.LineTo(x, start.Y)
		case 'V', 'v':
			y := parser.num() + rel.Y
			p.LineTo(start.X, y)
		case 'C', 'c':
			cp1 := parser.point().Add(rel)
			cp2 := parser.point().Add(rel)
			end := parser.point().Add(rel)
			p.CubeTo(cp1.X, cp1.Y, cp2.X, cp2.Y, end.X, end.Y)
			cp = cp2
		case 'S', 's':
			cp1 := start
			if prevCmd == 'C' || prevCmd == 'c' || prevCmd == 'S' || prevCmd == 's' {
				cp1 = start.Mul(2.0).Sub(cp)
			}
			cp2 := parser.point().Add(rel)
			end := parser.point().Add(rel)
			p.CubeTo(cp1.X, cp1.Y, cp2.X, cp2.Y, end.X, end.Y)
			cp = cp2
		case 'Q', 'q':
			cp1 := parser.point().Add(rel)
			end := parser.point().Add(rel)
			p.QuadTo(cp1.X, cp1.Y, end.X, end.Y)
			cp = cp1
		case 'T', 't':
			cp1 := start
			if prevCmd == 'Q' || prevCmd == 'q' || prevCmd == 'T' || prevCmd == 't' {
				cp1 = start.Mul(2.0).Sub(cp)
			}
			end := parser.point().Add(rel)
			p.QuadTo(cp1.X, cp1.Y, end.X, end.Y)
			cp = cp1
		case 'A', 'a':
			rx := parser.num()
			ry := parser.num()
			rot := parser.num()
			large := parser.flag()
			sweep := parser.flag()
			end := parser.point().Add(rel)
			p.ArcTo(rx, ry, rot, large, sweep, end.X, end.Y)
		default:
			return nil, &ParseError{parser.i - 1, fmt.Sprintf("unknown command '%c'", cmd)}
		}
		if parser.err != nil {
			return nil, parser.err
		}

		// subsequent coordinate pairs after a MoveTo are LineTos
		if cmd == 'M' {
			cmd = 'L'
		} else if cmd == 'm' {
			cmd = 'l'
		}
		prevCmd = cmd
	}
	return p, nil
}

// MustParseSVGPath parses an SVG path data string and panics if it fails.
func MustParseSVGPath(s string) *Path {
	p, err := ParseSVGPath(s)
	if err != nil {
		panic(err)
	}
	return p
}

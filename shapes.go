package pathgraph

import "math"

// Rectangle returns a counter clockwise rectangle with its bottom-left corner at (x,y) and of width w and height h.
func Rectangle(x, y, w, h float64) *Path {
	if Equal(w, 0.0) || Equal(h, 0.0) {
		return &Path{}
	}

	p := &Path{}
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
	return p
}

// Circle returns a counter clockwise circle of radius r centered at (x,y).
func Circle(x, y, r float64) *Path {
	return Ellipse(x, y, r, r)
}

// Ellipse returns a counter clockwise ellipse of radii rx and ry centered at (x,y).
func Ellipse(x, y, rx, ry float64) *Path {
	if Equal(rx, 0.0) || Equal(ry, 0.0) {
		return &Path{}
	}

	p := &Path{}
	p.MoveTo(x+rx, y)
	p.ArcTo(rx, ry, 0.0, false, true, x-rx, y)
	p.ArcTo(rx, ry, 0.0, false, true, x+rx, y)
	p.Close()
	return p
}

// RegularPolygon returns a counter clockwise regular polygon of n vertices centered at (x,y) with radius r, the first vertex points north. n must be 3 or more.
func RegularPolygon(n int, x, y, r float64) *Path {
	return RegularStarPolygon(n, 1, x, y, r)
}

// RegularStarPolygon returns a regular star polygon of n vertices and density d centered at (x,y) with radius r. For 1 < d the star intersects itself, which makes it a good input for Settle. n must be 3 or more.
func RegularStarPolygon(n, d int, x, y, r float64) *Path {
	if n < 3 || d < 1 || n == d*2 || Equal(r, 0.0) {
		return &Path{}
	}

	dtheta := 2.0 * math.Pi / float64(n)
	theta0 := 0.5 * math.Pi

	p := &Path{}
	for i := 0; i == 0 || i%n != 0; i += d {
		theta := theta0 + float64(i)*dtheta
		sintheta, costheta := math.Sincos(theta)
		if i == 0 {
			p.MoveTo(x+r*costheta, y+r*sintheta)
		} else {
			p.LineTo(x+r*costheta, y+r*sintheta)
		}
	}
	p.Close()
	return p
}

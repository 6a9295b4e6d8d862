package pathgraph

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

func toRing(poly []Point) orb.Ring {
	r := make(orb.Ring, 0, len(poly)+1)
	for _, p := range poly {
		r = append(r, orb.Point{p.X, p.Y})
	}
	return append(r, r[0])
}

// ToOrb flattens the path and returns it as polygons, where counter clockwise subpaths are outer rings and clockwise subpaths are holes. Each hole belongs to the smallest outer ring that contains it, holes outside of any outer ring are dropped. The path is expected to be free of self-intersections, such as the result of a boolean operation.
func (p *Path) ToOrb(tolerance float64) orb.MultiPolygon {
	var outers, holes []orb.Ring
	for _, poly := range p.polylines(tolerance) {
		r := toRing(poly)
		switch r.Orientation() {
		case orb.CCW:
			outers = append(outers, r)
		case orb.CW:
			holes = append(holes, r)
		}
	}

	mp := make(orb.MultiPolygon, len(outers))
	for i, outer := range outers {
		mp[i] = orb.Polygon{outer}
	}
	for _, hole := range holes {
		best, bestArea := -1, math.Inf(1)
		for i, outer := range outers {
			if area := math.Abs(planar.Area(outer)); area < bestArea && planar.RingContains(outer, hole[0]) {
				best, bestArea = i, area
			}
		}
		if best != -1 {
			mp[best] = append(mp[best], hole)
		}
	}
	return mp
}

// FromOrb returns the polygon as a path. The outer ring is made counter clockwise and the holes clockwise.
func FromOrb(polygon orb.Polygon) *Path {
	p := &Path{}
	for i, r := range polygon {
		if len(r) < 3 {
			continue
		}
		q := &Path{}
		q.MoveTo(r[0][0], r[0][1])
		for _, pt := range r[1:] {
			q.LineTo(pt[0], pt[1])
		}
		q.Close()
		if ccw := r.Orientation() == orb.CCW; ccw != (i == 0) {
			q = q.Reverse()
		}
		p = p.Append(q)
	}
	return p
}

// FromOrbMultiPolygon returns all polygons as a single path.
func FromOrbMultiPolygon(mp orb.MultiPolygon) *Path {
	p := &Path{}
	for _, polygon := range mp {
		p = p.Append(FromOrb(polygon))
	}
	return p
}

// GeoJSON returns the flattened path as a GeoJSON MultiPolygon geometry.
func (p *Path) GeoJSON(tolerance float64) ([]byte, error) {
	return geojson.NewGeometry(p.ToOrb(tolerance)).MarshalJSON()
}

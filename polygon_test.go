package pathgraph

import (
	"bytes"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/tdewolff/test"
)

func TestPathToOrb(t *testing.T) {
	p := MustParseSVGPath("M0 0L10 0L10 10L0 10zM8 2L2 2L2 8L8 8z")
	mp := p.ToOrb(0.01)
	test.T(t, len(mp), 1)
	test.T(t, len(mp[0]), 2)
	test.T(t, mp[0][0], orb.Ring{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}})
	test.T(t, mp[0][1], orb.Ring{{8, 2}, {2, 2}, {2, 8}, {8, 8}, {8, 2}})
	test.Float(t, planar.Area(mp), 64.0)

	// holes go to the smallest outer ring containing them
	p = MustParseSVGPath("M0 0L10 0L10 10L0 10zM8 2L2 2L2 8L8 8zM4 4L6 4L6 6L4 6zM20 0L40 0L40 20L20 20z")
	mp = p.ToOrb(0.01)
	test.T(t, len(mp), 3)
	test.T(t, len(mp[0]), 2)
	test.T(t, len(mp[1]), 1)
	test.T(t, len(mp[2]), 1)
	test.Float(t, planar.Area(mp), 64.0+4.0+400.0)

	// holes without outer ring are dropped
	test.T(t, len(MustParseSVGPath("M0 0L0 10L10 10L10 0z").ToOrb(0.01)), 0)
	test.T(t, len((&Path{}).ToOrb(0.01)), 0)

	// curves are flattened
	mp = Circle(0, 0, 5).ToOrb(0.001)
	test.T(t, len(mp), 1)
	test.FloatDiff(t, planar.Area(mp), Circle(0, 0, 5).Area(), 0.01)
}

func TestPathFromOrb(t *testing.T) {
	polygon := orb.Polygon{
		{{0, 0}, {0, 10}, {10, 10}, {10, 0}, {0, 0}},
		{{2, 2}, {8, 2}, {8, 8}, {2, 8}, {2, 2}},
		{{1, 1}, {2, 1}}, // degenerate
	}
	p := FromOrb(polygon)
	test.T(t, p, MustParseSVGPath("M0 0L10 0L10 10L0 10zM2 2L2 8L8 8L8 2z"))
	test.Float(t, p.Area(), 64.0)

	mp := orb.MultiPolygon{polygon, {{{20, 0}, {30, 0}, {30, 10}, {20, 0}}}}
	p = FromOrbMultiPolygon(mp)
	test.T(t, len(p.Split()), 3)
	test.Float(t, p.Area(), 64.0+50.0)

	// round trip
	q := MustParseSVGPath("M0 0L10 0L10 10L0 10zM8 2L2 2L2 8L8 8z")
	test.T(t, FromOrbMultiPolygon(q.ToOrb(0.01)), q)
}

func TestPathGeoJSON(t *testing.T) {
	b, err := MustParseSVGPath("M0 0L10 0L10 10L0 10z").GeoJSON(0.01)
	test.Error(t, err)
	test.That(t, bytes.Contains(b, []byte(`"type":"MultiPolygon"`)), string(b))
	test.That(t, bytes.Contains(b, []byte(`[[[[0,0],[10,0],[10,10],[0,10],[0,0]]]]`)), string(b))
}

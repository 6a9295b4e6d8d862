package pathgraph

import (
	"cmp"
	"math"
	"slices"
)

// RayCollision is a crossing of a ray with an edge of the graph.
type RayCollision struct {
	Edge EdgeRef
	T    float64 // curve parameter
	S    float64 // ray parameter, zero at the ray's origin and one at its second point
	Pos  Point

	side         int  // +1 when the edge crosses from right to left of the ray, -1 otherwise
	intersection bool // crossing at a graph point rather than through an edge
}

// IsIntersection returns true when the ray crosses the graph at a point where edges meet, in which case Edge is the edge leaving that point.
func (z RayCollision) IsIntersection() bool {
	return z.intersection
}

// Side returns +1 when the edge crosses the ray from its right to its left, that is when the ray passes from the edge's left to its right, and -1 otherwise.
func (z RayCollision) Side() int {
	return z.side
}

// rayCast is the result of casting a ray through the graph.
type rayCast struct {
	hits []RayCollision

	// minimum distance of the ray to a graph point in front of its origin, and the smallest sine of the crossing angle
	vertexDist float64
	minSine    float64
}

// RayCollisions returns the crossings of the half-line starting at from and passing through to with the edges of the graph, ordered along the ray. Crossings behind from are dropped. A ray through a graph point reports one crossing when the subpath passes from one side of the ray to the other at that point, and none when it merely touches the ray. Tangential touches are not crossings.
func (g *GraphPath) RayCollisions(from, to Point) []RayCollision {
	return g.castRay(from, to).hits
}

func (g *GraphPath) vertexTolerance() float64 {
	r := g.Bounds()
	return 1e-9 * (1.0 + math.Max(math.Abs(r.X)+r.W, math.Abs(r.Y)+r.H))
}

func (g *GraphPath) castRay(from, to Point) rayCast {
	dir := to.Sub(from)
	if dir.IsZero() {
		return rayCast{}
	}
	unit := dir.Norm(1.0)
	vertexTol := g.vertexTolerance()
	cast := rayCast{vertexDist: math.Inf(1), minSine: 1.0}

	// graph points on the ray are handled separately from edge crossings
	onRay := map[int]bool{}
	for i, p := range g.points {
		if len(p.edges) == 0 {
			continue
		}
		v := p.pos.Sub(from)
		if v.Dot(unit) < -vertexTol {
			continue
		}
		d := math.Abs(unit.PerpDot(v))
		cast.vertexDist = math.Min(cast.vertexDist, d)
		if d <= vertexTol {
			onRay[i] = true
		}
	}

	dropRadius := 1e3 * vertexTol
	for _, ref := range g.edgeRefs() {
		e := g.edge(ref)
		c := g.curve(ref)
		for _, z := range c.intersectLine(from, to) {
			if z.S*dir.Length() < -vertexTol {
				continue
			} else if onRay[ref.Point] && z.Pos.Near(c.P0, dropRadius) || onRay[e.end] && z.Pos.Near(c.P3, dropRadius) {
				continue
			}
			sine := unit.PerpDot(c.Tangent(z.T))
			cast.minSine = math.Min(cast.minSine, math.Abs(sine))
			if z.Tangent {
				continue
			}
			cast.hits = append(cast.hits, RayCollision{
				Edge: ref,
				T:    z.T,
				S:    z.S,
				Pos:  z.Pos,
				side: sign(sine),
			})
		}
	}

	// subpaths passing through graph points on the ray
	for _, ref := range g.edgeRefs() {
		e := g.edge(ref)
		if !onRay[e.end] {
			continue
		}
		next := EdgeRef{e.end, e.following}
		in := g.curve(ref).Tangent(1.0).Neg()
		out := g.curve(next).Tangent(0.0)
		sideIn, sideOut := sign(unit.PerpDot(in)), sign(unit.PerpDot(out))
		if sideIn == 0 || sideOut == 0 || sideIn == sideOut {
			continue // touches the ray
		}
		pos := g.points[e.end].pos
		cast.hits = append(cast.hits, RayCollision{
			Edge:         next,
			T:            0.0,
			S:            pos.Sub(from).Dot(dir) / dir.Dot(dir),
			Pos:          pos,
			side:         sideOut,
			intersection: true,
		})
	}

	slices.SortStableFunc(cast.hits, func(a, b RayCollision) int {
		return cmp.Compare(a.S, b.S)
	})
	return cast
}

func sign(f float64) int {
	if f < 0.0 {
		return -1
	} else if 0.0 < f {
		return 1
	}
	return 0
}

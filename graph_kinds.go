package pathgraph

import (
	"errors"
	"log/slog"
	"slices"
)

// parameters along an edge tried for the classification ray, in order
var rayParameters = []float64{0.5, 0.3, 0.7, 0.4, 0.6, 0.2, 0.8, 0.35, 0.65, 0.25, 0.75, 0.15, 0.85}

// SetEdgeKindsByRayCasting classifies every Uncategorised edge as Interior or Exterior. For each such edge a ray is cast along its normal through its middle, from outside the graph, and the signed crossings with every path are counted. The inside predicate receives the crossing count of each path, indexed by path number, and an edge is Exterior when crossing it changes the predicate. Edges that lie on top of each other are classified together.
//
// When the counts do not return to zero after a ray, a missing intersection left the graph inconsistent. The edge is forced to Exterior if it was not reached and a WindingError is returned, after all other edges have been classified.
func (g *GraphPath) SetEdgeKindsByRayCasting(inside func(counts []int) bool) error {
	var errs []error
	bounds := g.Bounds()
	numPaths := g.NumPaths()
	for i := range g.points {
		for j := range g.points[i].edges {
			if g.points[i].edges[j].kind != Uncategorised {
				continue
			}
			if err := g.classifyEdge(EdgeRef{i, j}, inside, bounds, numPaths); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// classificationRay returns a ray that crosses the edge along its normal, starting outside the graph bounds. Rays passing close to graph points or touching edges are avoided when possible.
func (g *GraphPath) classificationRay(ref EdgeRef, bounds Rect) (Point, Point, rayCast) {
	c := g.curve(ref)
	reach := bounds.W + bounds.H + 2.0*g.accuracy + 1.0

	var fallback rayCast
	var fallbackFrom, fallbackTo Point
	for k, t := range rayParameters {
		mid, normal := c.Pos(t), c.Normal(t)
		from := mid.Sub(normal.Mul(reach))
		cast := g.castRay(from, mid)
		if g.accuracy < cast.vertexDist && 1e-3 < cast.minSine {
			return from, mid, cast
		} else if k == 0 {
			fallback, fallbackFrom, fallbackTo = cast, from, mid
		}
	}
	Logger().Debug("no clean classification ray", slog.String("edge", ref.String()))
	return fallbackFrom, fallbackTo, fallback
}

func (g *GraphPath) classifyEdge(ref EdgeRef, inside func([]int) bool, bounds Rect, numPaths int) error {
	g.edge(ref).kind = Visited
	from, to, cast := g.classificationRay(ref, bounds)
	dir := to.Sub(from)

	counts := make([]int, numPaths)
	hits := cast.hits
	for 0 < len(hits) {
		// edges on top of each other are crossed at once
		n := 1
		for n < len(hits) && hits[0].Pos.Near(hits[n].Pos, g.accuracy) && g.coincident(hits[0].Edge, hits[n].Edge) {
			n++
		}
		group := hits[:n]
		hits = hits[n:]

		before := inside(counts)
		for _, z := range group {
			e := g.edge(z.Edge)
			delta := z.side
			if e.label.Direction == Anticlockwise {
				delta = -delta
			}
			counts[e.label.Path] += delta
		}
		after := inside(counts)

		for _, z := range group {
			e := g.edge(z.Edge)
			if z.intersection || e.kind != Uncategorised && e.kind != Visited {
				continue
			}
			if before == after {
				e.kind = Interior
			} else {
				// keep the result on the left of the edge
				interiorAhead := !before && after
				leftAhead := z.side < 0
				e.kind = Exterior
				e.reversed = interiorAhead != leftAhead
			}
		}
	}

	var err error
	if slices.ContainsFunc(counts, func(count int) bool { return count != 0 }) {
		err = &WindingError{ref, counts}
		Logger().Debug("crossing counts do not return to zero",
			slog.String("edge", ref.String()),
			slog.Any("counts", counts),
			slog.String("ray", from.String()+"->"+dir.String()))
	}
	if e := g.edge(ref); e.kind == Visited {
		// the ray missed its own edge
		e.kind = Exterior
		if err == nil {
			err = &WindingError{ref, counts}
		}
	}
	return err
}

// coincident returns true if both edges connect the same points, in either direction, along the same curve within accuracy.
func (g *GraphPath) coincident(a, b EdgeRef) bool {
	if a == b {
		return true
	}
	ea, eb := g.edge(a), g.edge(b)
	ca, cb := g.curve(a), g.curve(b)
	if a.Point == b.Point && ea.end == eb.end {
		return ca.near(cb, g.accuracy)
	} else if a.Point == eb.end && ea.end == b.Point {
		return ca.near(cb.Reverse(), g.accuracy)
	}
	return false
}

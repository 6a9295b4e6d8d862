package pathgraph

import (
	"math"
	"slices"
)

// orientedEdge is an exterior edge in the direction that keeps the result on its left.
type orientedEdge struct {
	ref      EdgeRef
	from, to int
	curve    Cubic
}

func (g *GraphPath) orientedEdge(ref EdgeRef) orientedEdge {
	e := g.edge(ref)
	if e.reversed {
		return orientedEdge{ref, e.end, ref.Point, g.curve(ref).Reverse()}
	}
	return orientedEdge{ref, ref.Point, e.end, g.curve(ref)}
}

// ExteriorPaths walks the Exterior edges and returns them as closed subpaths. Subpaths are oriented so that the result lies on their left, ie. outer boundaries are counter clockwise and holes clockwise. Where edges lie on top of each other only one of them is emitted.
func (g *GraphPath) ExteriorPaths() *Path {
	visited := map[EdgeRef]bool{}
	outgoing := map[int][]EdgeRef{} // oriented exterior edges per point
	refs := []EdgeRef{}
	for _, ref := range g.edgeRefs() {
		if g.edge(ref).kind == Exterior {
			oe := g.orientedEdge(ref)
			outgoing[oe.from] = append(outgoing[oe.from], ref)
			refs = append(refs, ref)
		}
	}
	pred := g.predecessors()

	visit := func(ref EdgeRef) {
		visited[ref] = true
		oe := g.orientedEdge(ref)
		for _, other := range slices.Concat(outgoing[oe.from], outgoing[oe.to]) {
			if g.coincident(ref, other) {
				visited[other] = true
			}
		}
	}

	css := [][]Cubic{}
	for _, start := range refs {
		if visited[start] {
			continue
		}

		var cs []Cubic
		cur := start
		for {
			visit(cur)
			oe := g.orientedEdge(cur)
			cs = append(cs, oe.curve)
			if oe.to == g.orientedEdge(start).from {
				break
			}
			next, ok := g.nextExterior(cur, outgoing[oe.to], pred, visited)
			if !ok {
				break
			}
			cur = next
		}
		css = append(css, cs)
	}
	return fromCubics(css)
}

// nextExterior returns the edge continuing the boundary after cur. The edge continuing the same subpath is preferred, otherwise the unvisited edge making the sharpest left turn.
func (g *GraphPath) nextExterior(cur EdgeRef, candidates []EdgeRef, pred map[EdgeRef][]EdgeRef, visited map[EdgeRef]bool) (EdgeRef, bool) {
	e := g.edge(cur)
	var continuations []EdgeRef
	if !e.reversed {
		continuations = []EdgeRef{{e.end, e.following}}
	} else {
		continuations = pred[cur]
	}
	for _, next := range continuations {
		ne := g.edge(next)
		if !visited[next] && ne.kind == Exterior && ne.reversed == e.reversed {
			return next, true
		}
	}

	dirIn := g.orientedEdge(cur).curve.Tangent(1.0)
	best, bestAngle := EdgeRef{}, math.Inf(-1)
	for _, next := range candidates {
		if visited[next] {
			continue
		}
		dirOut := g.orientedEdge(next).curve.Tangent(0.0)
		if angle := dirIn.AngleBetween(dirOut); bestAngle < angle {
			best, bestAngle = next, angle
		}
	}
	return best, !math.IsInf(bestAngle, -1)
}

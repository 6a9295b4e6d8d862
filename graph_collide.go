package pathgraph

import (
	"cmp"
	"log/slog"
	"slices"
)

// maximum number of rounds in which new edge pieces are tested again for intersections
var maxCollisionRounds = 8

type edgeSplit struct {
	t     float64
	point int
}

// Collide merges Q into G and subdivides the edges of both at every intersection between an edge from G and an edge from Q. Points within accuracy of each other are combined and edges shorter than accuracy are removed. It returns G.
func (g *GraphPath) Collide(q *GraphPath, accuracy float64) *GraphPath {
	g.setSides(0)
	q.setSides(1)
	g.Merge(q)
	g.collide(accuracy, false)
	return g
}

// SelfCollide subdivides the edges of G at all their mutual intersections, including loops within a single edge.
func (g *GraphPath) SelfCollide(accuracy float64) {
	g.setSides(0)
	g.collide(accuracy, true)
}

func (g *GraphPath) setSides(side int) {
	for i := range g.points {
		for j := range g.points[i].edges {
			g.points[i].edges[j].side = side
		}
	}
}

// collide finds and splits intersections until no new ones are found. When self is false, only pairs of edges on different sides are tested.
func (g *GraphPath) collide(accuracy float64, self bool) {
	if accuracy <= 0.0 {
		accuracy = DefaultAccuracy
	}
	g.accuracy = accuracy

	var dirty map[EdgeRef]bool // nil in the first round, ie. all edges
	numSplits := 0
	converged := false
	for round := 0; round < maxCollisionRounds; round++ {
		refs := g.edgeRefs()
		curves := make([]Cubic, len(refs))
		bounds := make([]Rect, len(refs))
		for k, ref := range refs {
			curves[k] = g.curve(ref)
			bounds[k] = curves[k].hullBounds()
		}

		newFrom := len(g.points)
		splits := map[EdgeRef][]edgeSplit{}
		for i, a := range refs {
			if self && dirty == nil {
				if t1, t2, ok := curves[i].selfIntersection(); ok {
					pos := curves[i].Pos(t1).Interpolate(curves[i].Pos(t2), 0.5)
					v := g.intersectionPoint(pos, accuracy, newFrom, a.Point, g.edge(a).end)
					g.addSplit(splits, a, curves[i], t1, v, accuracy)
					g.addSplit(splits, a, curves[i], t2, v, accuracy)
				}
			}
			for j := i + 1; j < len(refs); j++ {
				b := refs[j]
				if dirty != nil && !dirty[a] && !dirty[b] {
					continue
				} else if !self && g.edge(a).side == g.edge(b).side {
					continue
				} else if !bounds[i].Overlaps(bounds[j], accuracy) {
					continue
				}
				for _, z := range intersectCubics(curves[i], curves[j], accuracy) {
					v := g.intersectionPoint(z.Pos, accuracy, newFrom, a.Point, g.edge(a).end, b.Point, g.edge(b).end)
					g.addSplit(splits, a, curves[i], z.TA, v, accuracy)
					g.addSplit(splits, b, curves[j], z.TB, v, accuracy)
				}
			}
		}
		if len(splits) == 0 {
			converged = true
			break
		}
		numSplits += len(splits)
		dirty = g.applySplits(splits, accuracy)
	}

	if !converged {
		// pieces of the last round were not tested again
		Logger().Warn("collision rounds exhausted",
			slog.Int("rounds", maxCollisionRounds),
			slog.Int("untested", len(dirty)))
	}

	g.combineOverlappingPoints(accuracy)
	g.removeShortEdges(accuracy)
	Logger().Debug("collide",
		slog.Int("points", len(g.points)),
		slog.Int("edges", g.NumEdges()),
		slog.Int("splits", numSplits),
		slog.Bool("self", self))
}

// intersectionPoint returns the point to use for an intersection at pos. The end points of the intersecting edges take precedence, then any existing point within accuracy, otherwise a new point is added. Points from index newFrom onwards were added in this round and have no edges yet.
func (g *GraphPath) intersectionPoint(pos Point, accuracy float64, newFrom int, ends ...int) int {
	best, dBest := -1, accuracy
	for _, i := range ends {
		if d := g.points[i].pos.Sub(pos).Length(); d <= dBest {
			best, dBest = i, d
		}
	}
	if best != -1 {
		return best
	}

	dBest = accuracy
	for i, p := range g.points {
		if len(p.edges) == 0 && i < newFrom {
			continue // orphaned
		}
		if d := p.pos.Sub(pos).Length(); d <= dBest {
			best, dBest = i, d
		}
	}
	if best != -1 {
		return best
	}
	g.points = append(g.points, graphPoint{pos: pos})
	return len(g.points) - 1
}

// addSplit records that the edge ref is to be split at t through point v, unless v lies at one of its end points.
func (g *GraphPath) addSplit(splits map[EdgeRef][]edgeSplit, ref EdgeRef, c Cubic, t float64, v int, accuracy float64) {
	pos := g.points[v].pos
	if pos.Near(c.P0, accuracy) || pos.Near(c.P3, accuracy) {
		return
	}
	splits[ref] = append(splits[ref], edgeSplit{t, v})
}

// applySplits replaces every split edge by its pieces. The first piece takes the place of the original edge so that references to it stay valid, the other pieces are appended to the edges of the split points. It returns the references of all pieces.
func (g *GraphPath) applySplits(splits map[EdgeRef][]edgeSplit, accuracy float64) map[EdgeRef]bool {
	refs := make([]EdgeRef, 0, len(splits))
	for ref := range splits {
		refs = append(refs, ref)
	}
	slices.SortFunc(refs, func(a, b EdgeRef) int {
		if a.Point != b.Point {
			return cmp.Compare(a.Point, b.Point)
		}
		return cmp.Compare(a.Edge, b.Edge)
	})

	dirty := map[EdgeRef]bool{}
	for _, ref := range refs {
		c := g.curve(ref)
		ss := splits[ref]
		slices.SortFunc(ss, func(a, b edgeSplit) int {
			return cmp.Compare(a.t, b.t)
		})

		// drop repeated splits through the same point, but keep loops that return to it
		ts := []float64{0.0}
		vs := []int{ref.Point}
		for _, s := range ss {
			last := len(ts) - 1
			if s.point == vs[last] && c.Subsegment(ts[last], s.t).Length() < accuracy {
				continue
			}
			ts = append(ts, s.t)
			vs = append(vs, s.point)
		}
		if len(ts) == 1 {
			continue
		}

		e := *g.edge(ref)
		ts = append(ts, 1.0)
		vs = append(vs, e.end)
		line := c.IsLine()

		pieces := make([]EdgeRef, len(ts)-1)
		pieces[0] = ref
		for k := 0; k < len(ts)-1; k++ {
			start, end := g.points[vs[k]].pos, g.points[vs[k+1]].pos
			var piece Cubic
			if line {
				piece = LineCubic(start, end)
			} else {
				piece = c.Subsegment(ts[k], ts[k+1])
				piece.P1 = piece.P1.Add(start.Sub(piece.P0))
				piece.P2 = piece.P2.Add(end.Sub(piece.P3))
			}

			pe := graphEdge{
				label: e.label,
				kind:  e.kind,
				cp1:   piece.P1,
				cp2:   piece.P2,
				end:   vs[k+1],
				side:  e.side,
			}
			if k == 0 {
				*g.edge(ref) = pe
			} else {
				g.points[vs[k]].edges = append(g.points[vs[k]].edges, pe)
				pieces[k] = EdgeRef{vs[k], len(g.points[vs[k]].edges) - 1}
			}
		}

		// link the pieces, the last one continues where the original edge did
		for k := 0; k < len(pieces)-1; k++ {
			g.edge(pieces[k]).following = pieces[k+1].Edge
		}
		g.edge(pieces[len(pieces)-1]).following = e.following
		for _, piece := range pieces {
			dirty[piece] = true
		}
	}
	return dirty
}

// combineOverlappingPoints merges points within accuracy of each other. The edges of the merged point are moved and all references are updated, the merged point is left without edges.
func (g *GraphPath) combineOverlappingPoints(accuracy float64) {
	for i := range g.points {
		if len(g.points[i].edges) == 0 {
			continue
		}
		for j := i + 1; j < len(g.points); j++ {
			if len(g.points[j].edges) != 0 && g.points[i].pos.Near(g.points[j].pos, accuracy) {
				g.mergePoint(j, i)
			}
		}
	}
}

// mergePoint moves all edges of point j to point i. Straight edges are kept straight.
func (g *GraphPath) mergePoint(j, i int) {
	offset := len(g.points[i].edges)
	for p := range g.points {
		if p == j {
			continue
		}
		for k := range g.points[p].edges {
			e := &g.points[p].edges[k]
			if e.end != j {
				continue
			}
			line := g.curve(EdgeRef{p, k}).IsLine()
			e.end = i
			e.following += offset
			if line {
				g.straighten(e, g.points[p].pos)
			}
		}
	}
	for _, e := range g.points[j].edges {
		line := Cubic{g.points[j].pos, e.cp1, e.cp2, g.points[e.end].pos}.IsLine()
		if e.end == j {
			e.end = i
			e.following += offset
		}
		g.points[i].edges = append(g.points[i].edges, e)
		if line {
			g.straighten(&g.points[i].edges[len(g.points[i].edges)-1], g.points[i].pos)
		}
	}
	g.points[j].edges = nil
}

// straighten puts the control points of e on the line from start to its end point.
func (g *GraphPath) straighten(e *graphEdge, start Point) {
	lc := LineCubic(start, g.points[e.end].pos)
	e.cp1, e.cp2 = lc.P1, lc.P2
}

// removeShortEdges removes edges that start and end at the same point and are shorter than accuracy, which are left over after combining points. Edges continuing into a removed edge continue into its following edge instead.
func (g *GraphPath) removeShortEdges(accuracy float64) {
	for p := range g.points {
		for i := 0; i < len(g.points[p].edges); {
			e := g.points[p].edges[i]
			if e.end != p || accuracy <= g.curve(EdgeRef{p, i}).Length() {
				i++
				continue
			}

			following := e.following
			if following == i {
				following = -1 // isolated loop
			}
			g.points[p].edges = slices.Delete(g.points[p].edges, i, i+1)
			for q := range g.points {
				for k := range g.points[q].edges {
					f := &g.points[q].edges[k]
					if f.end != p {
						continue
					}
					if f.following == i {
						f.following = following
					}
					if i < f.following {
						f.following--
					}
				}
			}
		}
	}
}

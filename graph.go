package pathgraph

import (
	"fmt"
	"iter"
	"strings"
)

// EdgeKind is the classification state of an edge. Edges start Uncategorised, are marked Visited when they are the target of a classification ray, and end up either Interior or Exterior.
type EdgeKind int

// see EdgeKind
const (
	Uncategorised EdgeKind = iota
	Visited
	Interior
	Exterior
)

func (kind EdgeKind) String() string {
	switch kind {
	case Uncategorised:
		return "Uncategorised"
	case Visited:
		return "Visited"
	case Interior:
		return "Interior"
	case Exterior:
		return "Exterior"
	}
	return fmt.Sprintf("EdgeKind(%d)", int(kind))
}

// PathDirection is the winding direction of an input path.
type PathDirection int

// see PathDirection
const (
	Clockwise PathDirection = iota
	Anticlockwise
)

func (dir PathDirection) String() string {
	if dir == Anticlockwise {
		return "Anticlockwise"
	}
	return "Clockwise"
}

// PathLabel identifies the input path an edge originates from together with that path's winding direction.
type PathLabel struct {
	Path      int
	Direction PathDirection
}

func (label PathLabel) String() string {
	return fmt.Sprintf("%d/%v", label.Path, label.Direction)
}

// EdgeRef refers to an edge by the index of its start point and its index in that point's edge list.
type EdgeRef struct {
	Point, Edge int
}

func (ref EdgeRef) String() string {
	return fmt.Sprintf("%d:%d", ref.Point, ref.Edge)
}

type graphEdge struct {
	label     PathLabel
	kind      EdgeKind
	cp1, cp2  Point
	end       int
	following int // index into the end point's edges of the edge continuing the subpath

	side     int  // collision side, only meaningful during Collide
	reversed bool // the result lies to the right of an exterior edge
}

type graphPoint struct {
	pos   Point
	edges []graphEdge
}

// GraphPath is a planar graph of points connected by directed cubic Bézier edges. It is built from one or more paths, subdivided at their intersections, classified by ray casting, and finally walked to extract the result of a boolean operation. A GraphPath is not safe for concurrent use.
type GraphPath struct {
	points   []graphPoint
	accuracy float64
}

// NewGraphPath returns an empty graph.
func NewGraphPath() *GraphPath {
	return &GraphPath{accuracy: DefaultAccuracy}
}

// FromPath returns a graph of the closed outline of P where every edge is labelled with path. Subpaths are implicitly closed and zero-length segments are skipped. The direction of the label follows the signed area of the whole path.
func FromPath(p *Path, path int) *GraphPath {
	g := NewGraphPath()
	css := p.Cubics()

	area := 0.0
	for _, cs := range css {
		area += cubicsArea(cs)
	}
	label := PathLabel{path, Anticlockwise}
	if area < 0.0 {
		label.Direction = Clockwise
	}

	for _, cs := range css {
		offset := len(g.points)
		for i, c := range cs {
			end := offset + (i+1)%len(cs)
			g.points = append(g.points, graphPoint{
				pos: c.P0,
				edges: []graphEdge{{
					label: label,
					cp1:   c.P1,
					cp2:   c.P2,
					end:   end,
				}},
			})
		}
	}
	return g
}

// Merge appends the points and edges of Q to G and returns G. No intersections are detected.
func (g *GraphPath) Merge(q *GraphPath) *GraphPath {
	offset := len(g.points)
	for _, qp := range q.points {
		edges := make([]graphEdge, len(qp.edges))
		for i, e := range qp.edges {
			e.end += offset
			edges[i] = e
		}
		g.points = append(g.points, graphPoint{qp.pos, edges})
	}
	return g
}

// Copy returns a deep copy of the graph.
func (g *GraphPath) Copy() *GraphPath {
	q := &GraphPath{accuracy: g.accuracy}
	return q.Merge(g)
}

// Accuracy returns the tolerance the graph was last collided with.
func (g *GraphPath) Accuracy() float64 {
	return g.accuracy
}

// NumPoints returns the number of points, including points without edges.
func (g *GraphPath) NumPoints() int {
	return len(g.points)
}

// NumEdges returns the number of edges.
func (g *GraphPath) NumEdges() int {
	n := 0
	for _, p := range g.points {
		n += len(p.edges)
	}
	return n
}

// NumPaths returns one more than the highest path number of the edge labels.
func (g *GraphPath) NumPaths() int {
	n := 0
	for _, p := range g.points {
		for _, e := range p.edges {
			n = max(n, e.label.Path+1)
		}
	}
	return n
}

// Point returns the position of point i.
func (g *GraphPath) Point(i int) Point {
	return g.points[i].pos
}

// Edge is a read-only view of an edge of the graph.
type Edge struct {
	Ref       EdgeRef
	End       int // index of the end point
	Following int // index into the end point's edges of the next edge along the subpath
	Curve     Cubic
	Label     PathLabel
	Kind      EdgeKind
}

func (e Edge) String() string {
	return fmt.Sprintf("%v->%d %v %v %v", e.Ref, e.End, e.Label, e.Kind, e.Curve)
}

func (g *GraphPath) edge(ref EdgeRef) *graphEdge {
	return &g.points[ref.Point].edges[ref.Edge]
}

func (g *GraphPath) curve(ref EdgeRef) Cubic {
	e := g.edge(ref)
	return Cubic{g.points[ref.Point].pos, e.cp1, e.cp2, g.points[e.end].pos}
}

// Edge returns the edge referred to by ref.
func (g *GraphPath) Edge(ref EdgeRef) Edge {
	e := g.edge(ref)
	return Edge{
		Ref:       ref,
		End:       e.end,
		Following: e.following,
		Curve:     g.curve(ref),
		Label:     e.label,
		Kind:      e.kind,
	}
}

// EdgesForPoint returns the outgoing edges of point i.
func (g *GraphPath) EdgesForPoint(i int) []Edge {
	edges := make([]Edge, len(g.points[i].edges))
	for j := range g.points[i].edges {
		edges[j] = g.Edge(EdgeRef{i, j})
	}
	return edges
}

// Edges iterates over all edges.
func (g *GraphPath) Edges() iter.Seq[Edge] {
	return func(yield func(Edge) bool) {
		for _, ref := range g.edgeRefs() {
			if !yield(g.Edge(ref)) {
				return
			}
		}
	}
}

// EdgesOfKind iterates over all edges of the given kind.
func (g *GraphPath) EdgesOfKind(kind EdgeKind) iter.Seq[Edge] {
	return func(yield func(Edge) bool) {
		for _, ref := range g.edgeRefs() {
			if g.edge(ref).kind == kind && !yield(g.Edge(ref)) {
				return
			}
		}
	}
}

func (g *GraphPath) edgeRefs() []EdgeRef {
	refs := make([]EdgeRef, 0, g.NumEdges())
	for i, p := range g.points {
		for j := range p.edges {
			refs = append(refs, EdgeRef{i, j})
		}
	}
	return refs
}

// predecessors returns for each edge the edges that continue into it.
func (g *GraphPath) predecessors() map[EdgeRef][]EdgeRef {
	pred := map[EdgeRef][]EdgeRef{}
	for _, ref := range g.edgeRefs() {
		e := g.edge(ref)
		next := EdgeRef{e.end, e.following}
		pred[next] = append(pred[next], ref)
	}
	return pred
}

// Bounds returns the bounding box of all edges.
func (g *GraphPath) Bounds() Rect {
	first := true
	var r Rect
	for _, ref := range g.edgeRefs() {
		if first {
			r = g.curve(ref).Bounds()
			first = false
		} else {
			r = r.Add(g.curve(ref).Bounds())
		}
	}
	return r
}

// ResetEdgeKinds sets all edges back to Uncategorised so that the graph can be classified again.
func (g *GraphPath) ResetEdgeKinds() {
	for i := range g.points {
		for j := range g.points[i].edges {
			g.points[i].edges[j].kind = Uncategorised
			g.points[i].edges[j].reversed = false
		}
	}
}

// Validate checks that all edges refer to existing points and edges, and that no two edges continue into the same edge. Points without edges are allowed.
func (g *GraphPath) Validate() error {
	claimed := map[EdgeRef]EdgeRef{}
	for _, ref := range g.edgeRefs() {
		e := g.edge(ref)
		if e.end < 0 || len(g.points) <= e.end {
			return &ContinuityError{ref, fmt.Sprintf("end point %d out of range", e.end)}
		} else if e.following < 0 || len(g.points[e.end].edges) <= e.following {
			return &ContinuityError{ref, fmt.Sprintf("following edge %d out of range at point %d", e.following, e.end)}
		}
		next := EdgeRef{e.end, e.following}
		if other, ok := claimed[next]; ok {
			return &ContinuityError{ref, fmt.Sprintf("following edge %v already claimed by %v", next, other)}
		}
		claimed[next] = ref
	}
	return nil
}

func (g *GraphPath) String() string {
	sb := strings.Builder{}
	for i, p := range g.points {
		fmt.Fprintf(&sb, "%d %v:", i, p.pos)
		for j := range p.edges {
			e := p.edges[j]
			fmt.Fprintf(&sb, " ->%d(%d,%v,%v)", e.end, e.following, e.label, e.kind)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

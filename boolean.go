package pathgraph

import (
	"errors"
	"log/slog"
)

// count returns the crossing count of path i, paths that were never crossed have a count of zero.
func count(counts []int, i int) int {
	if i < len(counts) {
		return counts[i]
	}
	return 0
}

// booleanGraph builds the collided graph of P (path 0) and Q (path 1).
func booleanGraph(p, q *Path, o options) (*GraphPath, error) {
	g := FromPath(p, 0)
	g.SelfCollide(o.accuracy)
	if q != nil {
		h := FromPath(q, 1)
		h.SelfCollide(o.accuracy)
		g = g.Collide(h, o.accuracy)
	}
	if o.validate {
		if err := g.Validate(); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// classify runs the classification and extracts the result, inconsistencies are returned unless repairs are accepted.
func classify(g *GraphPath, inside func([]int) bool, o options, op string) (*Path, error) {
	err := g.SetEdgeKindsByRayCasting(inside)
	r := g.ExteriorPaths()
	if err != nil {
		if !o.repair {
			return nil, err
		}
		Logger().Warn("repaired inconsistent graph", slog.String("op", op), slog.Any("err", err))
	}
	return r, nil
}

func boolean(p, q *Path, op string, inside func(bool, bool) bool, opts []Option) (*Path, error) {
	o := newOptions(opts)
	g, err := booleanGraph(p, q, o)
	if err != nil {
		return nil, err
	}
	return classify(g, func(counts []int) bool {
		return inside(o.fillRule.Inside(count(counts, 0)), o.fillRule.Inside(count(counts, 1)))
	}, o, op)
}

// Union returns the area covered by P or Q.
func Union(p, q *Path, opts ...Option) (*Path, error) {
	return boolean(p, q, "union", func(a, b bool) bool { return a || b }, opts)
}

// Intersect returns the area covered by both P and Q.
func Intersect(p, q *Path, opts ...Option) (*Path, error) {
	return boolean(p, q, "intersect", func(a, b bool) bool { return a && b }, opts)
}

// Subtract returns the area covered by P but not by Q.
func Subtract(p, q *Path, opts ...Option) (*Path, error) {
	return boolean(p, q, "subtract", func(a, b bool) bool { return a && !b }, opts)
}

// Xor returns the area covered by either P or Q but not both.
func Xor(p, q *Path, opts ...Option) (*Path, error) {
	return boolean(p, q, "xor", func(a, b bool) bool { return a != b }, opts)
}

// Settle returns the outline of the area covered by P according to the fill rule, without self-intersections or overlapping subpaths.
func Settle(p *Path, opts ...Option) (*Path, error) {
	return boolean(p, nil, "settle", func(a, _ bool) bool { return a }, opts)
}

// Cut splits P by Q and returns the parts of P inside and outside of Q. Both parts come from a single graph, so that their shared boundary is identical.
func Cut(p, q *Path, opts ...Option) (*Path, *Path, error) {
	o := newOptions(opts)
	g, err := booleanGraph(p, q, o)
	if err != nil {
		return nil, nil, err
	}

	inP := func(counts []int) bool { return o.fillRule.Inside(count(counts, 0)) }
	inQ := func(counts []int) bool { return o.fillRule.Inside(count(counts, 1)) }
	interior, errInterior := classify(g, func(counts []int) bool {
		return inP(counts) && inQ(counts)
	}, o, "cut")

	g.ResetEdgeKinds()
	exterior, errExterior := classify(g, func(counts []int) bool {
		return inP(counts) && !inQ(counts)
	}, o, "cut")
	if err := errors.Join(errInterior, errExterior); err != nil {
		return nil, nil, err
	}
	return interior, exterior, nil
}

////////////////////////////////////////////////////////////////

// And returns the boolean path operation of path P AND Q, ie. the intersection. Inconsistencies are logged and repaired.
func (p *Path) And(q *Path) *Path {
	return orEmpty(Intersect(p, q, WithRepair()))
}

// Or returns the boolean path operation of path P OR Q, ie. the union. Inconsistencies are logged and repaired.
func (p *Path) Or(q *Path) *Path {
	return orEmpty(Union(p, q, WithRepair()))
}

// Xor returns the boolean path operation of path P XOR Q, ie. the symmetric difference. Inconsistencies are logged and repaired.
func (p *Path) Xor(q *Path) *Path {
	return orEmpty(Xor(p, q, WithRepair()))
}

// Not returns the boolean path operation of path P NOT Q, ie. the difference. Inconsistencies are logged and repaired.
func (p *Path) Not(q *Path) *Path {
	return orEmpty(Subtract(p, q, WithRepair()))
}

// Settle returns the outline of the area covered by P under the non-zero fill rule. Inconsistencies are logged and repaired.
func (p *Path) Settle() *Path {
	return orEmpty(Settle(p, WithRepair()))
}

// orEmpty logs the error of a failed operation and returns an empty path instead.
func orEmpty(r *Path, err error) *Path {
	if err != nil {
		Logger().Warn("boolean operation failed", slog.Any("err", err))
		return &Path{}
	}
	return r
}

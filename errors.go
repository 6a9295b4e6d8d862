package pathgraph

import (
	"errors"
	"fmt"
)

// Sentinel errors for the pathgraph package.
var (
	// ErrInconsistentGraph is returned when the graph violates a topological invariant, usually because an intersection was missed.
	ErrInconsistentGraph = errors.New("pathgraph: inconsistent graph")

	// ErrEmptyPath is returned when a path has no area to operate on.
	ErrEmptyPath = errors.New("pathgraph: empty path")
)

// WindingError is returned when the crossing counts along a classification ray do not return to zero.
type WindingError struct {
	Edge   EdgeRef // edge whose ray was being cast
	Counts []int   // crossing count per path after the ray
}

func (e *WindingError) Error() string {
	return fmt.Sprintf("pathgraph: crossing counts %v do not return to zero along ray of edge %v", e.Counts, e.Edge)
}

func (e *WindingError) Unwrap() error {
	return ErrInconsistentGraph
}

// ContinuityError is returned by Validate when an edge refers to a missing point or edge, or when two edges claim the same following edge.
type ContinuityError struct {
	Edge   EdgeRef
	Reason string
}

func (e *ContinuityError) Error() string {
	return fmt.Sprintf("pathgraph: edge %v: %s", e.Edge, e.Reason)
}

func (e *ContinuityError) Unwrap() error {
	return ErrInconsistentGraph
}

// ParseError is returned for malformed SVG path data.
type ParseError struct {
	Pos int
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("pathgraph: bad path data at position %d: %s", e.Pos, e.Msg)
}

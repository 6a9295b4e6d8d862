package pathgraph

import (
	"errors"
	"testing"

	"github.com/tdewolff/test"
)

func TestErrors(t *testing.T) {
	var err error = &WindingError{EdgeRef{1, 0}, []int{2, 0}}
	test.That(t, errors.Is(err, ErrInconsistentGraph))
	test.String(t, err.Error(), "pathgraph: crossing counts [2 0] do not return to zero along ray of edge 1:0")

	err = &ContinuityError{EdgeRef{3, 1}, "end point 7 out of range"}
	test.That(t, errors.Is(err, ErrInconsistentGraph))
	test.String(t, err.Error(), "pathgraph: edge 3:1: end point 7 out of range")

	err = &ParseError{4, "expected number"}
	test.That(t, !errors.Is(err, ErrInconsistentGraph))
	test.String(t, err.Error(), "pathgraph: bad path data at position 4: expected number")
}

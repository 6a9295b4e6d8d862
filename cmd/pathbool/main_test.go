package main

import (
	"bytes"
	"testing"

	"github.com/tdewolff/pathgraph"
	"github.com/tdewolff/test"
)

func TestPathData(t *testing.T) {
	var tests = []struct {
		p string
		d string
	}{
		{"M0 0L10 0L10 10L0 10z", "M0 0L10 0L10 10L0 10z"},
		{"M0.5 0L1 -0.5z", "M.5 0L1-.5z"},
		{"M0 0C1 2 3 4 5 6z", "M0 0C1 2 3 4 5 6z"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.p, func(t *testing.T) {
			test.String(t, pathData(pathgraph.MustParseSVGPath(tt.p)), tt.d)
		})
	}
}

func TestWriteSVG(t *testing.T) {
	buf := &bytes.Buffer{}
	test.Error(t, writeSVG(buf, pathgraph.MustParseSVGPath("M0 0L10 0L10 5z")))
	test.String(t, buf.String(), `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 -5 10 5"><path transform="scale(1,-1)" d="M0 0L10 0L10 5z"/></svg>`)
}

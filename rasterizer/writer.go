package rasterizer

import (
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/tdewolff/pathgraph"
)

// Writer writes a path to an output stream.
type Writer func(w io.Writer, p *pathgraph.Path) error

// PNGWriter writes the path as a PNG file
func PNGWriter(resolution float64) Writer {
	return func(w io.Writer, p *pathgraph.Path) error {
		return png.Encode(w, Draw(p, resolution))
	}
}

// JPGWriter writes the path as a JPG file
func JPGWriter(resolution float64, opts *jpeg.Options) Writer {
	return func(w io.Writer, p *pathgraph.Path) error {
		return jpeg.Encode(w, Draw(p, resolution), opts)
	}
}

// GIFWriter writes the path as a GIF file
func GIFWriter(resolution float64, opts *gif.Options) Writer {
	return func(w io.Writer, p *pathgraph.Path) error {
		return gif.Encode(w, Draw(p, resolution), opts)
	}
}

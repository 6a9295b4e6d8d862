package main

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/tdewolff/argp"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/pathgraph"
	"github.com/tdewolff/pathgraph/rasterizer"
)

type Op struct {
	Output     string  `short:"o" desc:"Output file, its extension selects the format (.svg, .png, .jpg, .gif, .geojson), path data is written to stdout otherwise"`
	Accuracy   float64 `short:"a" default:"0.01" desc:"Distance below which points are considered equal"`
	EvenOdd    bool    `desc:"Use the even-odd fill rule instead of non-zero"`
	Repair     bool    `desc:"Accept and repair inconsistent graphs"`
	Resolution float64 `short:"r" default:"10" desc:"Pixels per unit for PNG output"`
	Tolerance  float64 `short:"t" default:"0.01" desc:"Flattening tolerance for GeoJSON output"`
	Verbose    bool    `short:"v" desc:"Log progress to stderr"`
	Name       string  `index:"0" desc:"Operation: union, intersect, subtract, xor, cut (writes <output>-interior and <output>-exterior) or settle"`
	A          string  `index:"1" desc:"Path P, as SVG path data or a file containing it"`
	B          string  `index:"2" desc:"Path Q, as SVG path data or a file containing it"`
}

func main() {
	root := argp.NewCmd(&Op{}, "Boolean operations on paths of cubic Béziers")
	root.Parse()
	root.PrintHelp()
}

func (cmd *Op) Run() error {
	switch cmd.Name {
	case "union", "intersect", "subtract", "xor", "cut":
		if cmd.A == "" || cmd.B == "" {
			return argp.ShowUsage
		}
	case "settle":
		if cmd.A == "" {
			return argp.ShowUsage
		}
	default:
		return argp.ShowUsage
	}
	if cmd.Verbose {
		pathgraph.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	opts := []pathgraph.Option{pathgraph.WithAccuracy(cmd.Accuracy)}
	if cmd.EvenOdd {
		opts = append(opts, pathgraph.WithFillRule(pathgraph.EvenOdd))
	}
	if cmd.Repair {
		opts = append(opts, pathgraph.WithRepair())
	}

	p, err := readPath(cmd.A)
	if err != nil {
		return err
	}
	if cmd.Name == "settle" {
		r, err := pathgraph.Settle(p, opts...)
		if err != nil {
			return err
		}
		return cmd.write(cmd.Output, r)
	}

	q, err := readPath(cmd.B)
	if err != nil {
		return err
	}

	var r *pathgraph.Path
	switch cmd.Name {
	case "union":
		r, err = pathgraph.Union(p, q, opts...)
	case "intersect":
		r, err = pathgraph.Intersect(p, q, opts...)
	case "subtract":
		r, err = pathgraph.Subtract(p, q, opts...)
	case "xor":
		r, err = pathgraph.Xor(p, q, opts...)
	case "cut":
		interior, exterior, err := pathgraph.Cut(p, q, opts...)
		if err != nil {
			return err
		} else if cmd.Output == "" {
			fmt.Println(interior)
			fmt.Println(exterior)
			return nil
		}
		ext := filepath.Ext(cmd.Output)
		base := strings.TrimSuffix(cmd.Output, ext)
		if err := cmd.write(base+"-interior"+ext, interior); err != nil {
			return err
		}
		return cmd.write(base+"-exterior"+ext, exterior)
	}
	if err != nil {
		return err
	}
	return cmd.write(cmd.Output, r)
}

func readPath(arg string) (*pathgraph.Path, error) {
	if b, err := os.ReadFile(arg); err == nil {
		arg = string(b)
	}
	return pathgraph.ParseSVGPath(strings.TrimSpace(arg))
}

func (cmd *Op) write(filename string, p *pathgraph.Path) error {
	if filename == "" {
		fmt.Println(p)
		return nil
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".svg":
		err = writeSVG(f, p)
	case ".png":
		err = rasterizer.PNGWriter(cmd.Resolution)(f, p)
	case ".jpg", ".jpeg":
		err = rasterizer.JPGWriter(cmd.Resolution, nil)(f, p)
	case ".gif":
		err = rasterizer.GIFWriter(cmd.Resolution, nil)(f, p)
	case ".geojson", ".json":
		var b []byte
		if b, err = p.GeoJSON(cmd.Tolerance); err == nil {
			_, err = f.Write(b)
		}
	default:
		_, err = io.WriteString(f, p.String())
	}
	if err != nil {
		return err
	}
	return f.Close()
}

func writeSVG(w io.Writer, p *pathgraph.Path) error {
	r := p.Bounds()
	_, err := fmt.Fprintf(w, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%v %v %v %v"><path transform="scale(1,-1)" d="%s"/></svg>`,
		num(r.X), num(-r.Y-r.H), num(r.W), num(r.H), pathData(p))
	return err
}

// precision is the number of significant digits of coordinates in SVG output.
const precision = 8

type num float64

func (f num) String() string {
	s := fmt.Sprintf("%.*g", precision, f)
	if num(math.MaxInt32) < f || f < num(math.MinInt32) {
		if i := strings.IndexAny(s, ".eE"); i == -1 {
			s += ".0"
		}
	}
	return string(minify.Number([]byte(s), precision))
}

// pathData writes minified SVG path data.
func pathData(p *pathgraph.Path) string {
	sb := strings.Builder{}
	writeNums := func(vals ...float64) {
		for i, val := range vals {
			if i != 0 && 0.0 <= val {
				sb.WriteByte(' ')
			}
			sb.WriteString(num(val).String())
		}
	}
	for s := p.Scanner(); s.Scan(); {
		vals := s.Values()
		switch s.Cmd() {
		case pathgraph.MoveToCmd:
			sb.WriteByte('M')
			writeNums(vals...)
		case pathgraph.LineToCmd:
			sb.WriteByte('L')
			writeNums(vals...)
		case pathgraph.QuadToCmd:
			sb.WriteByte('Q')
			writeNums(vals...)
		case pathgraph.CubeToCmd:
			sb.WriteByte('C')
			writeNums(vals...)
		case pathgraph.ArcToCmd:
			rx, ry, rot, large, sweep := s.Arc()
			end := s.End()
			sb.WriteByte('A')
			writeNums(rx, ry, rot)
			sb.WriteString(" " + flag(large) + " " + flag(sweep) + " ")
			sb.WriteString(num(end.X).String() + " " + num(end.Y).String())
		case pathgraph.CloseCmd:
			sb.WriteByte('z')
		}
	}
	return sb.String()
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

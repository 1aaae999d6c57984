package paths

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"io/ioutil"
	"strconv"
	"strings"

	"github.com/JoshVarga/svgparser"
	"github.com/rustyoz/svg"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html/charset"
)

func parseBounds(width, height string) (Bounds, error) {
	w, err := strconv.ParseFloat(strings.TrimSuffix(width, "px"), 64)
	if err != nil {
		return Bounds{}, fmt.Errorf("bad svg width: %w", err)
	}
	h, err := strconv.ParseFloat(strings.TrimSuffix(height, "px"), 64)
	if err != nil {
		return Bounds{}, fmt.Errorf("bad svg height: %w", err)
	}
	return Bounds{Max: Vec2{w, h}}, nil
}

// floatParser parses a sequence of floats, remembering the first error.
type floatParser struct {
	err error
}

func (fp *floatParser) parse(s string) float64 {
	if fp.err != nil {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	fp.err = err
	return f
}

// splitNumbers splits a list of numbers separated by whitespace and/or commas.
func splitNumbers(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
}

// affine is an svg transform matrix [a b c d e f], mapping (x, y)
// to (a*x + c*y + e, b*x + d*y + f).
type affine [6]float64

var identity = affine{1, 0, 0, 1, 0, 0}

// then returns the transform that applies n and then m.
func (m affine) then(n affine) affine {
	return affine{
		m[0]*n[0] + m[2]*n[1],
		m[1]*n[0] + m[3]*n[1],
		m[0]*n[2] + m[2]*n[3],
		m[1]*n[2] + m[3]*n[3],
		m[0]*n[4] + m[2]*n[5] + m[4],
		m[1]*n[4] + m[3]*n[5] + m[5],
	}
}

func (m affine) apply(v Vec2) Vec2 {
	return Vec2{m[0]*v[0] + m[2]*v[1] + m[4], m[1]*v[0] + m[3]*v[1] + m[5]}
}

func transformFunc(name string, args []float64) (affine, error) {
	switch {
	case name == "translate" && len(args) == 1:
		return affine{1, 0, 0, 1, args[0], 0}, nil
	case name == "translate" && len(args) == 2:
		return affine{1, 0, 0, 1, args[0], args[1]}, nil
	case name == "scale" && len(args) == 1:
		return affine{args[0], 0, 0, args[0], 0, 0}, nil
	case name == "scale" && len(args) == 2:
		return affine{args[0], 0, 0, args[1], 0, 0}, nil
	case name == "matrix" && len(args) == 6:
		var m affine
		copy(m[:], args)
		return m, nil
	}
	return affine{}, fmt.Errorf("unsupported transform %s%v", name, args)
}

// parseTransform parses a transform attribute such as
// "translate(10, 20) scale(2)".
func parseTransform(s string) (affine, error) {
	xf := identity
	rest := strings.TrimSpace(s)
	for rest != "" {
		open := strings.IndexByte(rest, '(')
		end := strings.IndexByte(rest, ')')
		if open < 0 || end < open {
			return affine{}, fmt.Errorf("failed to parse transform %q", s)
		}
		var fp floatParser
		var args []float64
		for _, a := range splitNumbers(rest[open+1 : end]) {
			args = append(args, fp.parse(a))
		}
		if fp.err != nil {
			return affine{}, fmt.Errorf("transform %q: %w", s, fp.err)
		}
		t, err := transformFunc(strings.TrimSpace(rest[:open]), args)
		if err != nil {
			return affine{}, err
		}
		xf = xf.then(t)
		rest = strings.TrimLeft(rest[end+1:], ", \t\n\r")
	}
	return xf, nil
}

func parseLine(ps *Paths, xf affine, e *svgparser.Element) error {
	var fp floatParser
	x1 := fp.parse(e.Attributes["x1"])
	y1 := fp.parse(e.Attributes["y1"])
	x2 := fp.parse(e.Attributes["x2"])
	y2 := fp.parse(e.Attributes["y2"])
	if fp.err != nil {
		return fp.err
	}
	ps.move(xf.apply(Vec2{x1, y1}))
	ps.line(xf.apply(Vec2{x2, y2}))
	return nil
}

func parsePolyline(ps *Paths, xf affine, e *svgparser.Element) error {
	fields := splitNumbers(e.Attributes["points"])
	if len(fields)%2 != 0 {
		return fmt.Errorf("polyline has an odd number of coordinates: %d", len(fields))
	}
	var fp floatParser
	p := Path{}
	for i := 0; i < len(fields); i += 2 {
		v := Vec2{fp.parse(fields[i]), fp.parse(fields[i+1])}
		p.V = append(p.V, xf.apply(v))
	}
	if fp.err != nil {
		return fp.err
	}
	if len(p.V) > 0 {
		ps.P = append(ps.P, p)
	}
	return nil
}

// parsePath understands absolute move and line commands only.
// A Z command closes the current path by repeating its first point.
func parsePath(ps *Paths, xf affine, e *svgparser.Element) error {
	move := false
	var xy Vec2
	var xyp int
	for _, tok := range splitNumbers(e.Attributes["d"]) {
		switch tok {
		case "M", "L", "Z":
			if xyp != 0 {
				return fmt.Errorf("got odd number of components before %s", tok)
			}
			if tok == "M" {
				move = true
			}
			if n := len(ps.P); tok == "Z" && n > 0 && len(ps.P[n-1].V) > 1 {
				ps.line(ps.P[n-1].V[0])
			}
			continue
		}
		if strings.HasPrefix(tok, "M") {
			if xyp != 0 {
				return fmt.Errorf("got odd number of components before M")
			}
			move = true
			tok = tok[1:]
		}
		x, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return err
		}
		xy[xyp] = x
		xyp++
		if xyp == 2 {
			if move || len(ps.P) == 0 {
				ps.P = append(ps.P, Path{})
			}
			ps.line(xf.apply(xy))
			move = false
			xyp = 0
		}
	}
	if xyp != 0 {
		return fmt.Errorf("got stray component in path")
	}
	return nil
}

func parseElements(ps *Paths, xf affine, e *svgparser.Element) error {
	for _, c := range e.Children {
		var err error
		switch c.Name {
		case "g":
			var gxf affine
			if gxf, err = parseTransform(c.Attributes["transform"]); err == nil {
				err = parseElements(ps, xf.then(gxf), c)
			}
		case "path":
			err = parsePath(ps, xf, c)
		case "line":
			err = parseLine(ps, xf, c)
		case "polyline":
			err = parsePolyline(ps, xf, c)
		case "defs", "title", "desc":
		default:
			logrus.Warnf("skipping unknown svg element %q", c.Name)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// FromSVG parses an SVG file, extracting paths.
// This provides only limited SVG parsing support, and
// will fail or produce incorrect results if the SVG file
// uses features that it doesn't understand.
func FromSVG(r io.Reader) (*Paths, error) {
	raw, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	decoder := xml.NewDecoder(bytes.NewReader(raw))
	decoder.CharsetReader = charset.NewReaderLabel
	elt, err := svgparser.DecodeFirst(decoder)
	if err != nil {
		return nil, err
	}
	if err := elt.Decode(decoder); err != nil && err != io.EOF {
		return nil, err
	}
	bs, err := parseBounds(elt.Attributes["width"], elt.Attributes["height"])
	if err != nil {
		return nil, err
	}
	ps := &Paths{Bounds: bs}
	if err := parseElements(ps, identity, elt); err != nil {
		return nil, err
	}
	return ps, nil
}

// FromSVGDrawing parses an SVG file using its drawing instructions,
// which copes with relative and curved path commands. Curves are
// replaced by a straight line to their end point.
func FromSVGDrawing(r io.Reader) (*Paths, error) {
	s, err := svg.ParseSvgFromReader(r, "", 1.0)
	if err != nil {
		return nil, err
	}
	bs, err := parseBounds(s.Width, s.Height)
	if err != nil {
		return nil, err
	}
	ps := &Paths{Bounds: bs}

	// Both channels are read until closed, so the parser's
	// goroutines always finish.
	var perr error
	dis, errs := s.ParseDrawingInstructions()
	for dis != nil || errs != nil {
		select {
		case di, ok := <-dis:
			if !ok {
				dis = nil
				continue
			}
			if perr == nil {
				drawInstruction(ps, di)
			}
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			if perr == nil {
				perr = err
			}
		}
	}
	if perr != nil {
		return nil, perr
	}
	return ps, nil
}

func drawInstruction(ps *Paths, di *svg.DrawingInstruction) {
	switch di.Kind {
	case svg.LineInstruction, svg.CurveInstruction, svg.CloseInstruction:
		if len(ps.P) == 0 {
			ps.P = append(ps.P, Path{})
		}
	}
	switch di.Kind {
	case svg.MoveInstruction:
		ps.P = append(ps.P, Path{V: []Vec2{Vec2(*di.M)}})
	case svg.LineInstruction:
		ps.line(Vec2(*di.M))
	case svg.CurveInstruction:
		ps.line(Vec2(*di.CurvePoints.T))
	case svg.CloseInstruction:
		v := ps.P[len(ps.P)-1].V
		if len(v) > 1 && v[len(v)-1] != v[0] {
			ps.line(v[0])
		}
	}
}

// SVG writes an SVG file that contains black strokes along the paths.
func (ps *Paths) SVG(w io.Writer) error {
	var buf bytes.Buffer
	b := ps.Bounds
	fmt.Fprintf(&buf, `<svg width="%g" height="%g" viewBox="%g %g %g %g" version="1.1" xmlns="http://www.w3.org/2000/svg">`+"\n",
		b.Max[0], b.Max[1], b.Min[0], b.Min[1], b.Max[0]-b.Min[0], b.Max[1]-b.Min[1])
	buf.WriteString(`<g fill="none" stroke="black" stroke-width="0.1">` + "\n")
	for _, p := range ps.P {
		if len(p.V) == 0 {
			continue
		}
		buf.WriteString(`<path d="`)
		for i, v := range p.V {
			cmd := " L"
			if i == 0 {
				cmd = "M"
			}
			fmt.Fprintf(&buf, "%s %g %g", cmd, v[0], v[1])
		}
		buf.WriteString("\"/>\n")
	}
	buf.WriteString("</g>\n</svg>\n")
	_, err := w.Write(buf.Bytes())
	return err
}

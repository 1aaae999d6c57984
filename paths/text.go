package paths

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// FromText reads paths written one "x y" point per line.
// A blank line ends a path.
func FromText(r io.Reader) (*Paths, error) {
	ps := &Paths{}
	scanner := bufio.NewScanner(r)
	var cur Path
	flush := func() {
		if len(cur.V) > 0 {
			ps.P = append(ps.P, cur)
			cur = Path{}
		}
	}
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			flush()
			continue
		}
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: want x y, got %q", line, scanner.Text())
		}
		var fp floatParser
		v := Vec2{fp.parse(fields[0]), fp.parse(fields[1])}
		if fp.err != nil {
			return nil, fmt.Errorf("line %d: %w", line, fp.err)
		}
		cur.V = append(cur.V, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flush()
	ps.TightenBounds()
	return ps, nil
}

// Text writes the paths in the format read by FromText. If extra is not
// nil, extra[i][j] is written as a third column after point j of path i.
func (ps *Paths) Text(w io.Writer, extra [][]float64) error {
	bi := bufio.NewWriter(w)
	for i, p := range ps.P {
		if i > 0 {
			bi.WriteString("\n")
		}
		for j, v := range p.V {
			bi.WriteString(strconv.FormatFloat(v[0], 'g', -1, 64))
			bi.WriteString(" ")
			bi.WriteString(strconv.FormatFloat(v[1], 'g', -1, 64))
			if i < len(extra) && j < len(extra[i]) {
				bi.WriteString(" ")
				bi.WriteString(strconv.FormatFloat(extra[i][j], 'g', -1, 64))
			}
			bi.WriteString("\n")
		}
	}
	return bi.Flush()
}

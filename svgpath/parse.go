// seehuhn.de/go/picosvg - reduce SVG documents to a minimal subset
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package svgpath

import (
	tstrconv "github.com/tdewolff/parse/v2/strconv"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/picosvg/svgerr"
)

// Parse parses SVG path data. Relative commands are made absolute and the
// shorthand commands H, V, S and T are expanded into lines and curves.
// The empty string gives an empty path. Invalid data gives an error with
// code [svgerr.MalformedPathData] which reports the byte offset of the
// problem.
func Parse(d string) (*Path, error) {
	ps := &pathParser{b: []byte(d), p: &Path{}}
	for {
		ps.skipSpace()
		if ps.pos >= len(ps.b) {
			break
		}
		cmd := ps.b[ps.pos]
		if !isCommand(cmd) {
			return nil, ps.errorf("unexpected character %q", cmd)
		}
		if ps.lastCmd == 0 && cmd != 'M' && cmd != 'm' {
			return nil, ps.errorf("path data must start with a moveto")
		}
		ps.pos++
		if err := ps.command(cmd); err != nil {
			return nil, err
		}
	}
	return ps.p, nil
}

// MustParse is like [Parse] but panics on error. It is intended for tests
// and for constant path data.
func MustParse(d string) *Path {
	p, err := Parse(d)
	if err != nil {
		panic(err)
	}
	return p
}

type pathParser struct {
	b   []byte
	pos int
	p   *Path

	lastCmd  byte
	lastCtrl vec.Vec2 // second control point of the previous curve
}

func isCommand(c byte) bool {
	switch c {
	case 'M', 'm', 'L', 'l', 'H', 'h', 'V', 'v', 'C', 'c', 'S', 's',
		'Q', 'q', 'T', 't', 'A', 'a', 'Z', 'z':
		return true
	}
	return false
}

func (ps *pathParser) errorf(format string, args ...any) error {
	return svgerr.New(svgerr.MalformedPathData, "offset %d: "+format, append([]any{ps.pos}, args...)...)
}

func (ps *pathParser) skipSpace() {
	for ps.pos < len(ps.b) {
		switch ps.b[ps.pos] {
		case ' ', '\t', '\n', '\r', '\f':
			ps.pos++
		default:
			return
		}
	}
}

// skipSeparator skips whitespace and at most one comma.
func (ps *pathParser) skipSeparator() {
	ps.skipSpace()
	if ps.pos < len(ps.b) && ps.b[ps.pos] == ',' {
		ps.pos++
		ps.skipSpace()
	}
}

// hasNumber reports whether another argument follows.
func (ps *pathParser) hasNumber() bool {
	i := ps.pos
	for i < len(ps.b) && (ps.b[i] == ' ' || ps.b[i] == '\t' || ps.b[i] == '\n' || ps.b[i] == '\r' || ps.b[i] == '\f') {
		i++
	}
	if i < len(ps.b) && ps.b[i] == ',' {
		return true
	}
	if i >= len(ps.b) {
		return false
	}
	c := ps.b[i]
	return c >= '0' && c <= '9' || c == '.' || c == '-' || c == '+'
}

func (ps *pathParser) number() (float64, error) {
	ps.skipSeparator()
	if ps.pos >= len(ps.b) {
		return 0, ps.errorf("unexpected end of path data")
	}
	v, n := tstrconv.ParseFloat(ps.b[ps.pos:])
	if n == 0 {
		return 0, ps.errorf("expected number, found %q", ps.b[ps.pos])
	}
	ps.pos += n
	return v, nil
}

func (ps *pathParser) flag() (bool, error) {
	ps.skipSeparator()
	if ps.pos >= len(ps.b) {
		return false, ps.errorf("unexpected end of path data")
	}
	switch ps.b[ps.pos] {
	case '0':
		ps.pos++
		return false, nil
	case '1':
		ps.pos++
		return true, nil
	}
	return false, ps.errorf("expected arc flag, found %q", ps.b[ps.pos])
}

func (ps *pathParser) point(rel bool) (vec.Vec2, error) {
	x, err := ps.number()
	if err != nil {
		return vec.Vec2{}, err
	}
	y, err := ps.number()
	if err != nil {
		return vec.Vec2{}, err
	}
	pt := vec.Vec2{X: x, Y: y}
	if rel {
		pt = pt.Add(ps.p.CurrentPoint())
	}
	return pt, nil
}

// command parses the arguments of one command letter, including implicit
// repetitions.
func (ps *pathParser) command(cmd byte) error {
	rel := cmd >= 'a'
	upper := cmd &^ 0x20

	if upper == 'Z' {
		ps.p.Close()
		ps.lastCmd = 'Z'
		return nil
	}

	for first := true; first || ps.hasNumber(); first = false {
		cur := ps.p.CurrentPoint()
		switch upper {
		case 'M':
			pt, err := ps.point(rel)
			if err != nil {
				return err
			}
			if first {
				ps.p.MoveTo(pt)
			} else {
				// further coordinate pairs are implicit lineto commands
				ps.p.LineTo(pt)
			}
		case 'L':
			pt, err := ps.point(rel)
			if err != nil {
				return err
			}
			ps.p.LineTo(pt)
		case 'H':
			x, err := ps.number()
			if err != nil {
				return err
			}
			if rel {
				x += cur.X
			}
			ps.p.LineTo(vec.Vec2{X: x, Y: cur.Y})
		case 'V':
			y, err := ps.number()
			if err != nil {
				return err
			}
			if rel {
				y += cur.Y
			}
			ps.p.LineTo(vec.Vec2{X: cur.X, Y: y})
		case 'C':
			c1, err := ps.point(rel)
			if err != nil {
				return err
			}
			c2, err := ps.point(rel)
			if err != nil {
				return err
			}
			pt, err := ps.point(rel)
			if err != nil {
				return err
			}
			ps.p.CubeTo(c1, c2, pt)
			ps.lastCtrl = c2
		case 'S':
			c1 := cur
			if ps.lastCmd == 'C' || ps.lastCmd == 'S' {
				c1 = cur.Mul(2).Sub(ps.lastCtrl)
			}
			c2, err := ps.point(rel)
			if err != nil {
				return err
			}
			pt, err := ps.point(rel)
			if err != nil {
				return err
			}
			ps.p.CubeTo(c1, c2, pt)
			ps.lastCtrl = c2
		case 'Q':
			c, err := ps.point(rel)
			if err != nil {
				return err
			}
			pt, err := ps.point(rel)
			if err != nil {
				return err
			}
			ps.p.Append(QuadTo{C: c, P: pt})
			ps.lastCtrl = c
		case 'T':
			c := cur
			if ps.lastCmd == 'Q' || ps.lastCmd == 'T' {
				c = cur.Mul(2).Sub(ps.lastCtrl)
			}
			pt, err := ps.point(rel)
			if err != nil {
				return err
			}
			ps.p.Append(QuadTo{C: c, P: pt})
			ps.lastCtrl = c
		case 'A':
			rx, err := ps.number()
			if err != nil {
				return err
			}
			ry, err := ps.number()
			if err != nil {
				return err
			}
			rot, err := ps.number()
			if err != nil {
				return err
			}
			large, err := ps.flag()
			if err != nil {
				return err
			}
			sweep, err := ps.flag()
			if err != nil {
				return err
			}
			pt, err := ps.point(rel)
			if err != nil {
				return err
			}
			ps.p.Append(ArcTo{RX: rx, RY: ry, Rotation: rot, LargeArc: large, Sweep: sweep, P: pt})
		}
		ps.lastCmd = upper
		if upper == 'M' {
			ps.lastCmd = 'L'
			if first {
				ps.lastCmd = 'M'
			}
		}
	}
	return nil
}

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
	"strings"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/picosvg/num"
)

// DefaultDigits is the number of fractional digits used by [Path.String].
const DefaultDigits = 3

// Format returns the path data for p, using absolute commands only and
// the given number of fractional digits for every number. Commands are
// separated by single spaces and coordinate pairs are written as "x,y",
// for example "M0,0 L10,0 L10,10 Z".
func (p *Path) Format(digits int) string {
	var sb strings.Builder
	pt := func(v vec.Vec2) {
		sb.WriteString(num.Format(v.X, digits))
		sb.WriteByte(',')
		sb.WriteString(num.Format(v.Y, digits))
	}
	sep := func() {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
	}
	flag := func(b bool) {
		if b {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}

	for _, sp := range p.Subpaths {
		sep()
		sb.WriteByte('M')
		pt(sp.Start)
		for _, seg := range sp.Segments {
			sep()
			switch s := seg.(type) {
			case LineTo:
				sb.WriteByte('L')
				pt(s.P)
			case QuadTo:
				sb.WriteByte('Q')
				pt(s.C)
				sb.WriteByte(' ')
				pt(s.P)
			case CubeTo:
				sb.WriteByte('C')
				pt(s.C1)
				sb.WriteByte(' ')
				pt(s.C2)
				sb.WriteByte(' ')
				pt(s.P)
			case ArcTo:
				sb.WriteByte('A')
				sb.WriteString(num.Format(s.RX, digits))
				sb.WriteByte(',')
				sb.WriteString(num.Format(s.RY, digits))
				sb.WriteByte(' ')
				sb.WriteString(num.Format(s.Rotation, digits))
				sb.WriteByte(' ')
				flag(s.LargeArc)
				sb.WriteByte(',')
				flag(s.Sweep)
				sb.WriteByte(' ')
				pt(s.P)
			}
		}
		if sp.Closed {
			sb.WriteString(" Z")
		}
	}
	return sb.String()
}

// String returns the path data with [DefaultDigits] fractional digits.
func (p *Path) String() string {
	return p.Format(DefaultDigits)
}

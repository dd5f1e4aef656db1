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

package paint

import (
	"strings"

	"seehuhn.de/go/picosvg/affine"
	"seehuhn.de/go/picosvg/num"
	"seehuhn.de/go/picosvg/svg"
)

// TransformDigits is the number of fractional digits used for
// gradientTransform coefficients, which need more precision than
// coordinates.
const TransformDigits = 6

// Node returns the <linearGradient> or <radialGradient> element for g,
// with all numbers rounded to digits fractional digits. Attributes equal
// to their defaults are omitted, apart from gradientUnits, which is
// always written because the default is objectBoundingBox.
func (g *Gradient) Node(id string, digits int) *svg.Node {
	f := func(x float64) string { return num.Format(x, digits) }

	var n *svg.Node
	switch g.Kind {
	case Linear:
		n = svg.NewNode("linearGradient")
		if id != "" {
			n.Set("id", id)
		}
		n.Set("x1", f(g.X1))
		n.Set("y1", f(g.Y1))
		n.Set("x2", f(g.X2))
		n.Set("y2", f(g.Y2))
	case Radial:
		n = svg.NewNode("radialGradient")
		if id != "" {
			n.Set("id", id)
		}
		n.Set("cx", f(g.CX))
		n.Set("cy", f(g.CY))
		n.Set("r", f(g.R))
		if f(g.FX) != f(g.CX) || f(g.FY) != f(g.CY) {
			n.Set("fx", f(g.FX))
			n.Set("fy", f(g.FY))
		}
		if f(g.FR) != "0" {
			n.Set("fr", f(g.FR))
		}
	}
	if g.Units == UserSpaceOnUse {
		n.Set("gradientUnits", "userSpaceOnUse")
	} else {
		n.Set("gradientUnits", "objectBoundingBox")
	}
	if g.Spread != "" && g.Spread != "pad" {
		n.Set("spreadMethod", g.Spread)
	}
	if t := affine.Format(g.Transform, TransformDigits); t != "" {
		n.Set("gradientTransform", t)
	}
	for _, st := range g.Stops {
		sn := svg.NewNode("stop")
		sn.Set("offset", f(st.Offset))
		sn.Set("stop-color", st.Color.String())
		if o := f(st.Opacity); o != "1" {
			sn.Set("stop-opacity", o)
		}
		n.Children = append(n.Children, sn)
	}
	return n
}

// Key returns a string which is equal for two gradients exactly if their
// elements, ignoring the id, are the same after rounding.
func (g *Gradient) Key(digits int) string {
	n := g.Node("", digits)
	var sb strings.Builder
	sb.WriteString(n.Name)
	for _, a := range n.Attrs {
		sb.WriteString(" " + a.Name + "=" + a.Value)
	}
	for _, c := range n.Children {
		sb.WriteString(" |")
		for _, a := range c.Attrs {
			sb.WriteString(" " + a.Name + "=" + a.Value)
		}
	}
	return sb.String()
}

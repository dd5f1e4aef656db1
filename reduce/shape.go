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

package reduce

import (
	"math"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/picosvg/num"
	"seehuhn.de/go/picosvg/svg"
	"seehuhn.de/go/picosvg/svgerr"
	"seehuhn.de/go/picosvg/svgpath"
)

// Geometry returns the outline of a shape element in its own coordinate
// system. Percentages are resolved against the viewport vp. Elements which
// are not shapes give an empty path.
func Geometry(n *svg.Node, vp rect.Rect) (*svgpath.Path, error) {
	w, h := vp.URx-vp.LLx, vp.URy-vp.LLy
	diag := math.Sqrt((w*w + h*h) / 2)
	length := func(name string, ref float64) float64 {
		v, err := num.ParseLength(n.Get(name), ref)
		if err != nil {
			return 0
		}
		return v
	}

	switch n.Kind {
	case svg.KindPath:
		return svgpath.Parse(n.Get("d"))
	case svg.KindRect:
		rx, hasRX := n.Attr("rx")
		ry, hasRY := n.Attr("ry")
		var rxv, ryv float64
		if hasRX && rx != "auto" {
			rxv = length("rx", w)
		}
		if hasRY && ry != "auto" {
			ryv = length("ry", h)
		}
		switch {
		case hasRX && !hasRY:
			ryv = rxv
		case hasRY && !hasRX:
			rxv = ryv
		}
		return svgpath.Rect(length("x", w), length("y", h), length("width", w), length("height", h), rxv, ryv), nil
	case svg.KindCircle:
		return svgpath.Circle(length("cx", w), length("cy", h), length("r", diag)), nil
	case svg.KindEllipse:
		return svgpath.Ellipse(length("cx", w), length("cy", h), length("rx", w), length("ry", h)), nil
	case svg.KindLine:
		return svgpath.Line(length("x1", w), length("y1", h), length("x2", w), length("y2", h)), nil
	case svg.KindPolygon, svg.KindPolyline:
		coords, err := num.ParseList(n.Get("points"))
		if err != nil {
			return nil, svgerr.Wrap(svgerr.MalformedPathData, err, "invalid points")
		}
		return svgpath.Poly(coords, n.Kind == svg.KindPolygon), nil
	}
	return &svgpath.Path{}, nil
}

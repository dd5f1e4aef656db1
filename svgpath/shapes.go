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
	"seehuhn.de/go/geom/vec"
)

// Rect returns the outline of a rectangle. The corner radii are clamped to
// half the width and height. A rectangle without area gives an empty path.
func Rect(x, y, w, h, rx, ry float64) *Path {
	p := &Path{}
	if w <= 0 || h <= 0 {
		return p
	}
	rx = min(max(rx, 0), w/2)
	ry = min(max(ry, 0), h/2)

	if rx == 0 || ry == 0 {
		p.MoveTo(vec.Vec2{X: x, Y: y})
		p.LineTo(vec.Vec2{X: x + w, Y: y})
		p.LineTo(vec.Vec2{X: x + w, Y: y + h})
		p.LineTo(vec.Vec2{X: x, Y: y + h})
		p.Close()
		return p
	}

	corner := func(to vec.Vec2) {
		p.Append(ArcTo{RX: rx, RY: ry, Sweep: true, P: to})
	}
	line := func(to vec.Vec2) {
		if p.CurrentPoint() != to {
			p.LineTo(to)
		}
	}
	p.MoveTo(vec.Vec2{X: x + rx, Y: y})
	line(vec.Vec2{X: x + w - rx, Y: y})
	corner(vec.Vec2{X: x + w, Y: y + ry})
	line(vec.Vec2{X: x + w, Y: y + h - ry})
	corner(vec.Vec2{X: x + w - rx, Y: y + h})
	line(vec.Vec2{X: x + rx, Y: y + h})
	corner(vec.Vec2{X: x, Y: y + h - ry})
	line(vec.Vec2{X: x, Y: y + ry})
	corner(vec.Vec2{X: x + rx, Y: y})
	p.Close()
	return p
}

// Ellipse returns the outline of an axis-aligned ellipse, as two half arcs
// starting at the rightmost point. Non-positive radii give an empty path.
func Ellipse(cx, cy, rx, ry float64) *Path {
	p := &Path{}
	if rx <= 0 || ry <= 0 {
		return p
	}
	p.MoveTo(vec.Vec2{X: cx + rx, Y: cy})
	p.Append(ArcTo{RX: rx, RY: ry, LargeArc: true, Sweep: true, P: vec.Vec2{X: cx - rx, Y: cy}})
	p.Append(ArcTo{RX: rx, RY: ry, LargeArc: true, Sweep: true, P: vec.Vec2{X: cx + rx, Y: cy}})
	p.Close()
	return p
}

// Circle returns the outline of a circle.
func Circle(cx, cy, r float64) *Path {
	return Ellipse(cx, cy, r, r)
}

// Line returns a single straight segment.
func Line(x1, y1, x2, y2 float64) *Path {
	p := &Path{}
	p.MoveTo(vec.Vec2{X: x1, Y: y1})
	p.LineTo(vec.Vec2{X: x2, Y: y2})
	return p
}

// Poly returns the polyline through the given coordinate pairs, closed if
// closed is set. A trailing unpaired coordinate is ignored.
func Poly(coords []float64, closed bool) *Path {
	p := &Path{}
	n := len(coords) / 2
	if n == 0 {
		return p
	}
	p.MoveTo(vec.Vec2{X: coords[0], Y: coords[1]})
	for i := 1; i < n; i++ {
		p.LineTo(vec.Vec2{X: coords[2*i], Y: coords[2*i+1]})
	}
	if closed {
		p.Close()
	}
	return p
}

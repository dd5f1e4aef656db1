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

package pathops

import (
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/picosvg/svgpath"
)

// flattenQuadratic approximates a quadratic Bézier curve by line segments
// and calls emit for each of them.
func flattenQuadratic(p0, p1, p2 vec.Vec2, tol float64, emit func(from, to vec.Vec2)) {
	// e = (P0 - 2*P1 + P2) / 4 bounds the distance to the chord
	e := p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25)

	n := 1
	if errLen := e.Length(); errLen > tol {
		n = int(math.Ceil(math.Sqrt(errLen / tol)))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		omt := 1 - t
		pt := p0.Mul(omt * omt).Add(p1.Mul(2 * omt * t)).Add(p2.Mul(t * t))
		emit(prev, pt)
		prev = pt
	}
}

// flattenCubic approximates a cubic Bézier curve by line segments and calls
// emit for each of them. The number of segments is given by Wang's
// formula.
func flattenCubic(p0, p1, p2, p3 vec.Vec2, tol float64, emit func(from, to vec.Vec2)) {
	d1 := p0.Sub(p1.Mul(2)).Add(p2)
	d2 := p1.Sub(p2.Mul(2)).Add(p3)

	n := 1
	if m := max(d1.Length(), d2.Length()); m > 0 {
		// n = ceil(sqrt(3 * m / (4 * ε)))
		if nf := math.Sqrt(3 * m / (4 * tol)); nf > 1 {
			n = int(math.Ceil(nf))
		}
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		omt := 1 - t
		omt2 := omt * omt
		t2 := t * t
		pt := p0.Mul(omt2 * omt).Add(p1.Mul(3 * omt2 * t)).Add(p2.Mul(3 * omt * t2)).Add(p3.Mul(t2 * t))
		emit(prev, pt)
		prev = pt
	}
}

// flatten converts the subpaths of p into closed polygons, as used for
// filling. Open subpaths are closed implicitly and subpaths which enclose
// no area are dropped.
func flatten(p *svgpath.Path, tol float64) [][]vec.Vec2 {
	if p == nil {
		return nil
	}

	var res [][]vec.Vec2
	var cur []vec.Vec2
	finish := func() {
		// the closing vertex is implicit
		if len(cur) > 1 && cur[len(cur)-1] == cur[0] {
			cur = cur[:len(cur)-1]
		}
		if len(cur) >= 3 && polygonArea(cur) != 0 {
			res = append(res, cur)
		}
		cur = nil
	}
	add := func(_, to vec.Vec2) {
		if to != cur[len(cur)-1] {
			cur = append(cur, to)
		}
	}

	for cmd, pts := range p.Iter() {
		switch cmd {
		case path.CmdMoveTo:
			finish()
			cur = []vec.Vec2{pts[0]}
		case path.CmdLineTo:
			add(cur[len(cur)-1], pts[0])
		case path.CmdQuadTo:
			flattenQuadratic(cur[len(cur)-1], pts[0], pts[1], tol, add)
		case path.CmdCubeTo:
			flattenCubic(cur[len(cur)-1], pts[0], pts[1], pts[2], tol, add)
		case path.CmdClose:
			start := cur[0]
			finish()
			cur = []vec.Vec2{start}
		}
	}
	finish()
	return res
}

// polygonArea returns the signed area of a closed polygon. The area is
// positive if the vertices run counter-clockwise in a y-up coordinate
// system.
func polygonArea(pts []vec.Vec2) float64 {
	var a float64
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		a += p.X*q.Y - q.X*p.Y
	}
	return a / 2
}

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
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/vec"
)

// maxEdges bounds the number of polygon edges which are untangled in one
// go.
const maxEdges = 1 << 15

// piece is a directed part of an input edge which crosses no other edge.
type piece struct {
	a, b vec.Vec2
}

// arrange returns the boundary of the set of points whose winding number
// with respect to the contours satisfies inside. All edges are cut at
// their mutual intersections, and a piece is part of the boundary if
// inside holds on exactly one side of it. The resulting contours have the
// inside on their left, so that the winding number is 1 inside and 0
// outside.
func arrange(contours [][]vec.Vec2, inside func(w int) bool) (polygon, error) {
	var edges []piece
	for _, c := range contours {
		for i, a := range c {
			if b := c[(i+1)%len(c)]; a != b {
				edges = append(edges, piece{a, b})
			}
		}
	}
	if len(edges) > maxEdges {
		return nil, errTooComplex
	}

	cuts := splitPoints(edges)

	// pieces shared by several edges are classified only once
	seen := make(map[piece]bool)
	var boundary []piece
	scale := extent(contours)
	for i, e := range edges {
		pts := cuts[i]
		d := e.b.Sub(e.a)
		slices.SortFunc(pts, func(p, q vec.Vec2) int {
			return cmp.Compare(p.Sub(e.a).Dot(d), q.Sub(e.a).Dot(d))
		})
		pts = slices.Compact(pts)
		for k := 1; k < len(pts); k++ {
			p := piece{pts[k-1], pts[k]}
			if p.a.X > p.b.X || p.a.X == p.b.X && p.a.Y > p.b.Y {
				p.a, p.b = p.b, p.a
			}
			if seen[p] {
				continue
			}
			seen[p] = true

			inL, inR := sides(contours, p, scale, inside)
			switch {
			case inL && !inR:
				boundary = append(boundary, p)
			case inR && !inL:
				boundary = append(boundary, piece{p.b, p.a})
			}
		}
	}

	return chain(boundary), nil
}

// splitPoints returns, for every edge, its endpoints together with all
// points where other edges meet it. A crossing point is computed once and
// shared by both edges, so that the pieces fit together exactly.
func splitPoints(edges []piece) [][]vec.Vec2 {
	cuts := make([][]vec.Vec2, len(edges))
	for i, e := range edges {
		cuts[i] = append(cuts[i], e.a, e.b)
	}

	order := make([]int, len(edges))
	for i := range order {
		order[i] = i
	}
	xMin := func(e piece) float64 { return min(e.a.X, e.b.X) }
	slices.SortFunc(order, func(i, j int) int {
		return cmp.Compare(xMin(edges[i]), xMin(edges[j]))
	})

	for k, i := range order {
		p := edges[i]
		pxMax := max(p.a.X, p.b.X)
		pyMin, pyMax := min(p.a.Y, p.b.Y), max(p.a.Y, p.b.Y)
		for _, j := range order[k+1:] {
			q := edges[j]
			if xMin(q) > pxMax {
				break
			}
			if max(q.a.Y, q.b.Y) < pyMin || min(q.a.Y, q.b.Y) > pyMax {
				continue
			}

			d1 := orient(q.a, q.b, p.a)
			d2 := orient(q.a, q.b, p.b)
			d3 := orient(p.a, p.b, q.a)
			d4 := orient(p.a, p.b, q.b)
			if (d1 > 0 && d2 < 0 || d1 < 0 && d2 > 0) && (d3 > 0 && d4 < 0 || d3 < 0 && d4 > 0) {
				x := p.a.Add(p.b.Sub(p.a).Mul(d1 / (d1 - d2)))
				cuts[i] = append(cuts[i], x)
				cuts[j] = append(cuts[j], x)
				continue
			}
			if d1 == 0 && between(q.a, q.b, p.a) {
				cuts[j] = append(cuts[j], p.a)
			}
			if d2 == 0 && between(q.a, q.b, p.b) {
				cuts[j] = append(cuts[j], p.b)
			}
			if d3 == 0 && between(p.a, p.b, q.a) {
				cuts[i] = append(cuts[i], q.a)
			}
			if d4 == 0 && between(p.a, p.b, q.b) {
				cuts[i] = append(cuts[i], q.b)
			}
		}
	}
	return cuts
}

// between reports whether p, which is collinear with a and b, lies on the
// segment from a to b.
func between(a, b, p vec.Vec2) bool {
	return min(a.X, b.X) <= p.X && p.X <= max(a.X, b.X) &&
		min(a.Y, b.Y) <= p.Y && p.Y <= max(a.Y, b.Y)
}

// extent returns the size of the bounding box of the contours.
func extent(contours [][]vec.Vec2) float64 {
	xMin, yMin := math.Inf(1), math.Inf(1)
	xMax, yMax := math.Inf(-1), math.Inf(-1)
	for _, c := range contours {
		for _, p := range c {
			xMin, xMax = min(xMin, p.X), max(xMax, p.X)
			yMin, yMax = min(yMin, p.Y), max(yMax, p.Y)
		}
	}
	return max(xMax-xMin, yMax-yMin, 1)
}

// sides evaluates inside just left and just right of the middle of p.
func sides(contours [][]vec.Vec2, p piece, scale float64, inside func(int) bool) (left, right bool) {
	d := p.b.Sub(p.a)
	l := d.Length()
	n := vec.Vec2{X: -d.Y / l, Y: d.X / l}
	delta := max(min(l*1e-3, scale*1e-6), scale*1e-12)

	m := vec.Middle(p.a, p.b)
	wL, wR := 0, 0
	pL, pR := m.Add(n.Mul(delta)), m.Sub(n.Mul(delta))
	for _, c := range contours {
		wL += windingNumber(c, pL)
		wR += windingNumber(c, pR)
	}
	return inside(wL), inside(wR)
}

// chain joins the boundary pieces into closed contours. Where several
// pieces leave the same point, the walk turns as far left as possible, so
// that regions which only touch at a vertex get separate contours.
func chain(boundary []piece) polygon {
	from := make(map[vec.Vec2][]int)
	for i, p := range boundary {
		from[p.a] = append(from[p.a], i)
	}

	used := make([]bool, len(boundary))
	var res polygon
	for i := range boundary {
		if used[i] {
			continue
		}
		start := boundary[i].a
		var loop []vec.Vec2
		cur := i
		closed := false
		for {
			used[cur] = true
			loop = append(loop, boundary[cur].a)
			end := boundary[cur].b
			if end == start {
				closed = true
				break
			}

			dIn := end.Sub(boundary[cur].a)
			next, best := -1, math.Inf(-1)
			for _, k := range from[end] {
				if used[k] {
					continue
				}
				dOut := boundary[k].b.Sub(end)
				if angle := math.Atan2(turn(dIn, dOut), dIn.Dot(dOut)); angle > best {
					next, best = k, angle
				}
			}
			if next < 0 {
				break
			}
			cur = next
		}
		if closed && len(loop) >= 3 {
			res = append(res, toContour(loop))
		}
	}
	return res
}
